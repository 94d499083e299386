package resp

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a protocol error
type ErrorKind int

// Protocol error kinds, shared by the encoder and the decoder
const (
	InvalidPayload ErrorKind = iota + 1
	UnknownType
	LineTooLong
	InvalidInteger
	InvalidLength
	PayloadTooLarge
	TooManyElements
	MissingTerminator
	TooDeep
)

var kindNames = map[ErrorKind]string{
	InvalidPayload:    "invalid payload",
	UnknownType:       "unknown type",
	LineTooLong:       "line too long",
	InvalidInteger:    "invalid integer",
	InvalidLength:     "invalid length",
	PayloadTooLarge:   "payload too large",
	TooManyElements:   "too many elements",
	MissingTerminator: "missing terminator",
	TooDeep:           "nesting too deep",
}

// String returns the name of the kind
func (k ErrorKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

var (
	// ErrIncomplete is returned when the buffer holds a valid prefix but not a whole value
	ErrIncomplete = errors.New("incomplete value")

	// ErrInvalidProtocol matches every malformed-input error
	ErrInvalidProtocol = errors.New("invalid protocol")

	// ErrInvalidPayload a simple string or error contains CR or LF
	ErrInvalidPayload = &ProtocolError{Kind: InvalidPayload}
	// ErrUnknownType the marker byte is not one of + - : $ *
	ErrUnknownType = &ProtocolError{Kind: UnknownType}
	// ErrLineTooLong no CRLF within the line limit
	ErrLineTooLong = &ProtocolError{Kind: LineTooLong}
	// ErrInvalidInteger the integer line is not [+|-]digits within int64
	ErrInvalidInteger = &ProtocolError{Kind: InvalidInteger}
	// ErrInvalidLength a length or count that is neither -1 nor non-negative
	ErrInvalidLength = &ProtocolError{Kind: InvalidLength}
	// ErrPayloadTooLarge a bulk string longer than the limit
	ErrPayloadTooLarge = &ProtocolError{Kind: PayloadTooLarge}
	// ErrTooManyElements an array count above the limit
	ErrTooManyElements = &ProtocolError{Kind: TooManyElements}
	// ErrMissingTerminator a bulk payload not followed by CRLF
	ErrMissingTerminator = &ProtocolError{Kind: MissingTerminator}
	// ErrTooDeep arrays nested beyond the depth limit
	ErrTooDeep = &ProtocolError{Kind: TooDeep}
)

// ProtocolError is a terminal encode or decode failure.
// Two ProtocolErrors match with errors.Is when their kinds are equal,
// so callers can compare against the package sentinels.
type ProtocolError struct {
	Kind   ErrorKind
	Detail string
}

func (e *ProtocolError) Error() string {
	if e.Detail == "" {
		return "resp: " + e.Kind.String()
	}
	return "resp: " + e.Kind.String() + ": " + e.Detail
}

// Is reports whether target is a ProtocolError of the same kind, or ErrInvalidProtocol
func (e *ProtocolError) Is(target error) bool {
	if target == ErrInvalidProtocol {
		return true
	}
	t, ok := target.(*ProtocolError)
	return ok && t.Kind == e.Kind
}

func newError(kind ErrorKind, format string, args ...interface{}) error {
	return &ProtocolError{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// IsIncomplete reports whether err asks for more bytes
func IsIncomplete(err error) bool {
	return errors.Is(err, ErrIncomplete)
}

// IsMalformed reports whether err is a terminal protocol error
func IsMalformed(err error) bool {
	var pe *ProtocolError
	return errors.As(err, &pe)
}

// KindOf returns the kind of a protocol error, or 0 if err is not one
func KindOf(err error) ErrorKind {
	var pe *ProtocolError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return 0
}
