package resp

import (
	"bytes"
	"io"
	"strconv"
)

// ReplyError replies an error
func ReplyError(w io.Writer, msg string) error {
	return NewEncoder(w).Error(msg)
}

// ReplySimpleString replies a simplestring
func ReplySimpleString(w io.Writer, msg string) error {
	return NewEncoder(w).SimpleString(msg)
}

// ReplyBulkString replies a bulkstring
func ReplyBulkString(w io.Writer, msg string) error {
	return NewEncoder(w).BulkString(msg)
}

// ReplyNullBulkString replies a null bulkstring
func ReplyNullBulkString(w io.Writer) error {
	return NewEncoder(w).NullBulkString()
}

// ReplyInteger replies an integer
func ReplyInteger(w io.Writer, val int64) error {
	return NewEncoder(w).Integer(val)
}

// ReplyArray replies an array header, the caller writes the size elements after it
func ReplyArray(w io.Writer, size int) (*Encoder, error) {
	r := NewEncoder(w)
	if err := r.Array(size); err != nil {
		return nil, err
	}
	return r, nil
}

// ReplyValue replies a whole value
func ReplyValue(w io.Writer, v Value) error {
	return NewEncoder(w).Value(v)
}

// Marshal returns the wire form of v
func Marshal(v Value) ([]byte, error) {
	return Append(nil, v)
}

// Append appends the wire form of v to dst.
// It fails with ErrInvalidPayload when a simple string or error holds CR or LF,
// in which case dst is returned unchanged.
func Append(dst []byte, v Value) ([]byte, error) {
	out, err := appendValue(dst, v)
	if err != nil {
		return dst, err
	}
	return out, nil
}

func appendValue(dst []byte, v Value) ([]byte, error) {
	switch v.Kind {
	case KindSimpleString, KindError:
		if err := checkLine(v.Str); err != nil {
			return nil, err
		}
		dst = append(dst, byte(v.Kind))
		dst = append(dst, v.Str...)
		return append(dst, '\r', '\n'), nil
	case KindInteger:
		return appendHeader(dst, KindInteger, v.Int), nil
	case KindBulkString:
		if v.Null {
			return append(dst, "$-1\r\n"...), nil
		}
		dst = appendHeader(dst, KindBulkString, int64(len(v.Str)))
		dst = append(dst, v.Str...)
		return append(dst, '\r', '\n'), nil
	case KindArray:
		if v.Null {
			return append(dst, "*-1\r\n"...), nil
		}
		dst = appendHeader(dst, KindArray, int64(len(v.Elems)))
		var err error
		for i := range v.Elems {
			if dst, err = appendValue(dst, v.Elems[i]); err != nil {
				return nil, err
			}
		}
		return dst, nil
	}
	return nil, newError(InvalidPayload, "unknown kind %q", byte(v.Kind))
}

func appendHeader(dst []byte, k Kind, n int64) []byte {
	dst = append(dst, byte(k))
	dst = strconv.AppendInt(dst, n, 10)
	return append(dst, '\r', '\n')
}

func checkLine(s []byte) error {
	if i := bytes.IndexAny(s, "\r\n"); i >= 0 {
		return newError(InvalidPayload, "line break at offset %d", i)
	}
	return nil
}

// Encoder writes RESP values to a writer, every method issues a single Write
type Encoder struct {
	w   io.Writer
	buf []byte
}

// NewEncoder creates a RESP encoder
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

func (r *Encoder) write(v Value) error {
	out, err := Append(r.buf[:0], v)
	if err != nil {
		return err
	}
	r.buf = out
	_, err = r.w.Write(out)
	return err
}

// Error writes a RESP error
func (r *Encoder) Error(s string) error {
	return r.write(Error(s))
}

// SimpleString writes a RESP simplestring
func (r *Encoder) SimpleString(s string) error {
	return r.write(SimpleString(s))
}

// BulkString writes a RESP bulkstring
func (r *Encoder) BulkString(s string) error {
	return r.write(BulkString(s))
}

// BulkBytes writes a RESP bulkstring
func (r *Encoder) BulkBytes(b []byte) error {
	return r.write(BulkBytes(b))
}

// NullBulkString writes a RESP null bulkstring
func (r *Encoder) NullBulkString() error {
	return r.write(NullBulkString())
}

// Integer writes a RESP integer
func (r *Encoder) Integer(v int64) error {
	return r.write(Integer(v))
}

// Array writes a RESP array header of size elements
func (r *Encoder) Array(size int) error {
	r.buf = appendHeader(r.buf[:0], KindArray, int64(size))
	_, err := r.w.Write(r.buf)
	return err
}

// NullArray writes a RESP null array
func (r *Encoder) NullArray() error {
	return r.write(NullArray())
}

// Value writes a whole value
func (r *Encoder) Value(v Value) error {
	return r.write(v)
}
