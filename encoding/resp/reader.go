package resp

import "io"

const (
	initialBufferSize = 4096
	maxReadSize       = 64 << 10
)

// Reader reads RESP values from a stream.
//
// Received bytes are kept in a buffer that grows until a whole value is
// available, the decoded bytes are then dropped from its head and the rest
// is kept for the next value. A malformed value poisons the reader, every
// later call returns the same error.
type Reader struct {
	r   io.Reader
	d   *Decoder
	buf []byte
	off int // start of the unconsumed bytes
	err error
}

// NewReader creates a reader on r, a nil decoder uses the default limits
func NewReader(r io.Reader, d *Decoder) *Reader {
	if d == nil {
		d = defaultDecoder
	}
	return &Reader{r: r, d: d, buf: make([]byte, 0, initialBufferSize)}
}

// ReadValue returns the next value, reading from the stream only when the
// buffered bytes do not hold a whole value.
// It returns io.EOF when the stream ends between values and
// io.ErrUnexpectedEOF when it ends inside one.
func (r *Reader) ReadValue() (Value, error) {
	for {
		v, err := r.Next()
		if err == nil || !IsIncomplete(err) {
			return v, err
		}
		if r.r == nil {
			return Value{}, err
		}
		if err := r.fill(); err != nil {
			if err == io.EOF && r.Buffered() > 0 {
				err = io.ErrUnexpectedEOF
			}
			return Value{}, err
		}
	}
}

// Next decodes the next value from the buffered bytes only, it returns
// ErrIncomplete when they do not hold a whole value
func (r *Reader) Next() (Value, error) {
	if r.err != nil {
		return Value{}, r.err
	}
	v, n, err := r.d.Decode(r.buf[r.off:])
	if err != nil {
		if !IsIncomplete(err) {
			r.err = err
		}
		return Value{}, err
	}
	r.discard(n)
	return v, nil
}

// Feed appends received bytes to the buffer
func (r *Reader) Feed(p []byte) {
	r.compact(len(p))
	r.buf = append(r.buf, p...)
}

// Buffered returns the number of bytes received but not decoded yet
func (r *Reader) Buffered() int {
	return len(r.buf) - r.off
}

// Err returns the error that poisoned the reader, if any
func (r *Reader) Err() error {
	return r.err
}

func (r *Reader) discard(n int) {
	r.off += n
	if r.off == len(r.buf) {
		r.buf = r.buf[:0]
		r.off = 0
	}
}

// compact makes room for n more bytes, moving the unconsumed bytes to the
// head of the buffer before growing it
func (r *Reader) compact(n int) {
	if cap(r.buf)-len(r.buf) >= n {
		return
	}
	if r.off > 0 {
		m := copy(r.buf, r.buf[r.off:])
		r.buf = r.buf[:m]
		r.off = 0
	}
	if cap(r.buf)-len(r.buf) >= n {
		return
	}
	grown := make([]byte, len(r.buf), 2*cap(r.buf)+n)
	copy(grown, r.buf)
	r.buf = grown
}

func (r *Reader) fill() error {
	size := cap(r.buf) - len(r.buf)
	if size < initialBufferSize {
		r.compact(initialBufferSize)
		size = cap(r.buf) - len(r.buf)
	}
	if size > maxReadSize {
		size = maxReadSize
	}
	for i := 0; i < 100; i++ {
		n, err := r.r.Read(r.buf[len(r.buf) : len(r.buf)+size])
		r.buf = r.buf[:len(r.buf)+n]
		if n > 0 {
			return nil
		}
		if err != nil {
			return err
		}
	}
	return io.ErrNoProgress
}
