package encoding

import "github.com/distributedio/respd/encoding/resp"

// Encoder defines the interface of a RESP encoder
type Encoder interface {
	Error(s string) error
	SimpleString(s string) error
	BulkString(s string) error
	BulkBytes(b []byte) error
	NullBulkString() error
	Integer(v int64) error
	Array(size int) error
	NullArray() error
	Value(v resp.Value) error
}

// Decoder defines the interface of a buffer RESP decoder
type Decoder interface {
	Decode(buf []byte) (resp.Value, int, error)
}

// ValueReader defines the interface of a stream RESP reader
type ValueReader interface {
	ReadValue() (resp.Value, error)
}

var (
	_ Encoder     = (*resp.Encoder)(nil)
	_ Decoder     = (*resp.Decoder)(nil)
	_ ValueReader = (*resp.Reader)(nil)
)
