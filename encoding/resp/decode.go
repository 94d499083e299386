package resp

import (
	"bytes"
	"math"
)

// Default decoder limits
const (
	DefaultMaxBulkLen  = 512 << 20
	DefaultMaxElements = 1 << 20
	DefaultMaxDepth    = 64
	DefaultMaxLineLen  = 64 << 10
)

var crlf = []byte("\r\n")

// Limits bound the memory and stack a peer can make the decoder use.
// A zero field takes its default.
type Limits struct {
	MaxBulkLen  int64 // longest bulk string payload
	MaxElements int64 // largest array count
	MaxDepth    int   // deepest array nesting
	MaxLineLen  int   // longest simple string, error or length line
}

// DefaultLimits returns the limits used by Decode
func DefaultLimits() Limits {
	return Limits{
		MaxBulkLen:  DefaultMaxBulkLen,
		MaxElements: DefaultMaxElements,
		MaxDepth:    DefaultMaxDepth,
		MaxLineLen:  DefaultMaxLineLen,
	}
}

// Decoder decodes RESP values from a byte buffer.
// It holds no state besides its limits and can be shared between goroutines.
type Decoder struct {
	limits Limits
}

// NewDecoder creates a decoder with the given limits
func NewDecoder(l Limits) *Decoder {
	def := DefaultLimits()
	if l.MaxBulkLen <= 0 {
		l.MaxBulkLen = def.MaxBulkLen
	}
	// a payload and its CRLF must be addressable by int
	if l.MaxBulkLen > math.MaxInt-2 {
		l.MaxBulkLen = math.MaxInt - 2
	}
	if l.MaxElements <= 0 {
		l.MaxElements = def.MaxElements
	}
	if l.MaxDepth <= 0 {
		l.MaxDepth = def.MaxDepth
	}
	if l.MaxLineLen <= 0 {
		l.MaxLineLen = def.MaxLineLen
	}
	return &Decoder{limits: l}
}

// Limits returns the limits of the decoder
func (d *Decoder) Limits() Limits {
	return d.limits
}

var defaultDecoder = NewDecoder(DefaultLimits())

// Decode decodes one value from the head of buf with the default limits
func Decode(buf []byte) (Value, int, error) {
	return defaultDecoder.Decode(buf)
}

// Decode decodes one value from the head of buf.
//
// It returns the value and the number of bytes it occupies when buf holds a whole value.
// When buf is a valid prefix it returns ErrIncomplete, the caller should append more bytes
// to the same buffer and call again. Any other error is a *ProtocolError and the stream
// can not be trusted anymore. On error nothing is consumed.
//
// The returned value does not share memory with buf.
func (d *Decoder) Decode(buf []byte) (Value, int, error) {
	// Validate the whole value before allocating anything, so a value
	// that arrives in many pieces is only built once.
	n, _, err := d.decode(buf, 0, 0, false)
	if err != nil {
		return Value{}, 0, err
	}
	_, v, _ := d.decode(buf[:n], 0, 0, true)
	return v, n, nil
}

// decode parses the value starting at pos and returns the position after it.
// The value is only built when build is set.
func (d *Decoder) decode(buf []byte, pos, depth int, build bool) (int, Value, error) {
	if pos >= len(buf) {
		return 0, Value{}, ErrIncomplete
	}
	marker := Kind(buf[pos])
	pos++

	switch marker {
	case KindSimpleString, KindError:
		line, next, err := d.readLine(buf, pos)
		if err != nil {
			return 0, Value{}, err
		}
		var v Value
		if build {
			v = Value{Kind: marker, Str: clone(line)}
		}
		return next, v, nil

	case KindInteger:
		line, next, err := d.readLine(buf, pos)
		if err != nil {
			return 0, Value{}, err
		}
		n, ok := parseInt(line)
		if !ok {
			return 0, Value{}, newError(InvalidInteger, "%q", line)
		}
		return next, Integer(n), nil

	case KindBulkString:
		size, next, err := d.readLength(buf, pos)
		if err != nil {
			return 0, Value{}, err
		}
		if size == -1 {
			return next, NullBulkString(), nil
		}
		if size > d.limits.MaxBulkLen {
			return 0, Value{}, newError(PayloadTooLarge, "%d > %d", size, d.limits.MaxBulkLen)
		}
		if int64(len(buf)-next-2) < size {
			return 0, Value{}, ErrIncomplete
		}
		n := int(size)
		if buf[next+n] != '\r' || buf[next+n+1] != '\n' {
			return 0, Value{}, newError(MissingTerminator, "bulk string of %d bytes", n)
		}
		var v Value
		if build {
			v = BulkBytes(clone(buf[next : next+n]))
		}
		return next + n + 2, v, nil

	case KindArray:
		if depth >= d.limits.MaxDepth {
			return 0, Value{}, newError(TooDeep, "limit %d", d.limits.MaxDepth)
		}
		count, next, err := d.readLength(buf, pos)
		if err != nil {
			return 0, Value{}, err
		}
		if count == -1 {
			return next, NullArray(), nil
		}
		if count > d.limits.MaxElements {
			return 0, Value{}, newError(TooManyElements, "%d > %d", count, d.limits.MaxElements)
		}
		var elems []Value
		if build {
			// count is trusted here, the value has been validated
			elems = make([]Value, 0, int(count))
		}
		for i := int64(0); i < count; i++ {
			var elem Value
			next, elem, err = d.decode(buf, next, depth+1, build)
			if err != nil {
				return 0, Value{}, err
			}
			if build {
				elems = append(elems, elem)
			}
		}
		var v Value
		if build {
			v = Array(elems...)
		}
		return next, v, nil
	}
	return 0, Value{}, newError(UnknownType, "marker %q", byte(marker))
}

// readLine returns the bytes from pos up to the first CRLF and the position after the CRLF
func (d *Decoder) readLine(buf []byte, pos int) ([]byte, int, error) {
	i := bytes.Index(buf[pos:], crlf)
	if i < 0 {
		n := len(buf) - pos
		// a trailing CR may still be completed by LF
		if n > 0 && buf[len(buf)-1] == '\r' {
			n--
		}
		if n > d.limits.MaxLineLen {
			return nil, 0, newError(LineTooLong, "limit %d", d.limits.MaxLineLen)
		}
		return nil, 0, ErrIncomplete
	}
	if i > d.limits.MaxLineLen {
		return nil, 0, newError(LineTooLong, "%d > %d", i, d.limits.MaxLineLen)
	}
	return buf[pos : pos+i], pos + i + 2, nil
}

// readLength reads a bulk length or array count, which is -1 or non-negative
func (d *Decoder) readLength(buf []byte, pos int) (int64, int, error) {
	line, next, err := d.readLine(buf, pos)
	if err != nil {
		return 0, 0, err
	}
	n, ok := parseInt(line)
	if !ok || n < -1 {
		return 0, 0, newError(InvalidLength, "%q", line)
	}
	return n, next, nil
}

// parseInt parses [+|-]digits into an int64 and rejects everything else
func parseInt(b []byte) (int64, bool) {
	if len(b) == 0 {
		return 0, false
	}
	neg := false
	switch b[0] {
	case '-':
		neg = true
		b = b[1:]
	case '+':
		b = b[1:]
	}
	if len(b) == 0 {
		return 0, false
	}

	const cutoff = uint64(1) << 63
	var n uint64
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, false
		}
		if n > cutoff/10 {
			return 0, false
		}
		n = n*10 + uint64(c-'0')
		if n > cutoff {
			return 0, false
		}
	}
	if neg {
		if n == cutoff {
			return -1 << 63, true
		}
		return -int64(n), true
	}
	if n == cutoff {
		return 0, false
	}
	return int64(n), true
}

func clone(b []byte) []byte {
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
