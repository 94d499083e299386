package resp

import (
	"bytes"
	"strconv"
	"strings"
)

// Kind is the type of a RESP value, its value is the wire marker
type Kind byte

// RESP value kinds
const (
	KindSimpleString Kind = '+'
	KindError        Kind = '-'
	KindInteger      Kind = ':'
	KindBulkString   Kind = '$'
	KindArray        Kind = '*'
)

// String returns the name of the kind
func (k Kind) String() string {
	switch k {
	case KindSimpleString:
		return "simplestring"
	case KindError:
		return "error"
	case KindInteger:
		return "integer"
	case KindBulkString:
		return "bulkstring"
	case KindArray:
		return "array"
	}
	return "unknown"
}

// Value is a RESP value. Only the fields of its Kind are meaningful,
// Null marks the nil bulk string and the nil array.
// Values are not modified after construction.
type Value struct {
	Kind  Kind
	Str   []byte
	Int   int64
	Elems []Value
	Null  bool
}

// SimpleString builds a simple string
func SimpleString(s string) Value {
	return Value{Kind: KindSimpleString, Str: []byte(s)}
}

// Error builds a simple error
func Error(s string) Value {
	return Value{Kind: KindError, Str: []byte(s)}
}

// Integer builds an integer
func Integer(v int64) Value {
	return Value{Kind: KindInteger, Int: v}
}

// BulkString builds a bulk string from s
func BulkString(s string) Value {
	return Value{Kind: KindBulkString, Str: []byte(s)}
}

// BulkBytes builds a bulk string holding b, a nil b is still an empty (not nil) bulk string
func BulkBytes(b []byte) Value {
	if b == nil {
		b = []byte{}
	}
	return Value{Kind: KindBulkString, Str: b}
}

// NullBulkString builds the nil bulk string
func NullBulkString() Value {
	return Value{Kind: KindBulkString, Null: true}
}

// Array builds an array of elems
func Array(elems ...Value) Value {
	if elems == nil {
		elems = []Value{}
	}
	return Value{Kind: KindArray, Elems: elems}
}

// NullArray builds the nil array
func NullArray() Value {
	return Value{Kind: KindArray, Null: true}
}

// IsNull reports whether v is the nil bulk string or the nil array
func (v Value) IsNull() bool {
	return v.Null && (v.Kind == KindBulkString || v.Kind == KindArray)
}

// Equal reports whether v and o are the same value
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindSimpleString, KindError:
		return bytes.Equal(v.Str, o.Str)
	case KindInteger:
		return v.Int == o.Int
	case KindBulkString:
		if v.Null || o.Null {
			return v.Null == o.Null
		}
		return bytes.Equal(v.Str, o.Str)
	case KindArray:
		if v.Null || o.Null {
			return v.Null == o.Null
		}
		if len(v.Elems) != len(o.Elems) {
			return false
		}
		for i := range v.Elems {
			if !v.Elems[i].Equal(o.Elems[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// Strings returns the elements of an array of bulk strings,
// ok is false if v is anything else
func (v Value) Strings() (ss []string, ok bool) {
	if v.Kind != KindArray || v.Null {
		return nil, false
	}
	ss = make([]string, len(v.Elems))
	for i, e := range v.Elems {
		if e.Kind != KindBulkString || e.Null {
			return nil, false
		}
		ss[i] = string(e.Str)
	}
	return ss, true
}

// String renders v for logs and debugging, it is not the wire format
func (v Value) String() string {
	switch v.Kind {
	case KindSimpleString:
		return string(v.Str)
	case KindError:
		return "(error) " + string(v.Str)
	case KindInteger:
		return "(integer) " + strconv.FormatInt(v.Int, 10)
	case KindBulkString:
		if v.Null {
			return "(nil)"
		}
		return strconv.Quote(string(v.Str))
	case KindArray:
		if v.Null {
			return "(nil array)"
		}
		parts := make([]string, len(v.Elems))
		for i := range v.Elems {
			parts[i] = v.Elems[i].String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return "(unknown)"
}
