package resp

import (
	"bytes"
	"io"
	"math/rand"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReader_ReadValue(t *testing.T) {
	assert := assert.New(t)
	r := NewReader(bytes.NewBufferString("*1\r\n$5\r\nhello\r\n+OK\r\n"), nil)

	v, err := r.ReadValue()
	assert.NoError(err)
	assert.True(Array(BulkString("hello")).Equal(v))

	v, err = r.ReadValue()
	assert.NoError(err)
	assert.True(SimpleString("OK").Equal(v))

	_, err = r.ReadValue()
	assert.Equal(io.EOF, err)
}

func TestReader_OneByteAtATime(t *testing.T) {
	var stream []byte
	for _, v := range roundTripValues {
		data, err := Marshal(v)
		require.NoError(t, err)
		stream = append(stream, data...)
	}

	r := NewReader(iotest.OneByteReader(bytes.NewReader(stream)), nil)
	for _, want := range roundTripValues {
		v, err := r.ReadValue()
		require.NoError(t, err)
		assert.True(t, want.Equal(v), "got %s want %s", v, want)
	}
	_, err := r.ReadValue()
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, 0, r.Buffered())
}

func TestReader_RandomSplits(t *testing.T) {
	in := Array(BulkString("SET"), BulkString(strings.Repeat("k", 100)), BulkBytes(bytes.Repeat([]byte("\r\n"), 5000)))
	data, err := Marshal(in)
	require.NoError(t, err)

	rnd := rand.New(rand.NewSource(1))
	for round := 0; round < 50; round++ {
		r := NewReader(nil, nil)
		rest := data
		var got Value
		for len(rest) > 0 {
			n := 1 + rnd.Intn(len(rest))
			r.Feed(rest[:n])
			rest = rest[n:]

			v, err := r.Next()
			if len(rest) > 0 {
				require.Equal(t, ErrIncomplete, err)
				continue
			}
			require.NoError(t, err)
			got = v
		}
		assert.True(t, in.Equal(got))
		assert.Equal(t, 0, r.Buffered())
	}
}

func TestReader_UnexpectedEOF(t *testing.T) {
	r := NewReader(bytes.NewBufferString("$5\r\nhel"), nil)
	_, err := r.ReadValue()
	assert.Equal(t, io.ErrUnexpectedEOF, err)
}

func TestReader_Poisoned(t *testing.T) {
	assert := assert.New(t)
	r := NewReader(bytes.NewBufferString("+OK\r\n:12x\r\n+OK\r\n"), nil)

	_, err := r.ReadValue()
	assert.NoError(err)

	_, err = r.ReadValue()
	assert.Equal(InvalidInteger, KindOf(err))
	assert.Equal(err, r.Err())

	_, err = r.ReadValue()
	assert.Equal(InvalidInteger, KindOf(err))
}

func TestReader_Limits(t *testing.T) {
	d := NewDecoder(Limits{MaxBulkLen: 3})
	r := NewReader(bytes.NewBufferString("$4\r\nabcd\r\n"), d)
	_, err := r.ReadValue()
	assert.Equal(t, PayloadTooLarge, KindOf(err))
}

func TestReader_Pipeline(t *testing.T) {
	assert := assert.New(t)
	r := NewReader(nil, nil)
	r.Feed([]byte("*1\r\n$4\r\nPING\r\n*1\r\n$4\r\nPI"))

	v, err := r.Next()
	assert.NoError(err)
	ss, ok := v.Strings()
	assert.True(ok)
	assert.Equal([]string{"PING"}, ss)

	_, err = r.Next()
	assert.Equal(ErrIncomplete, err)
	assert.Equal(10, r.Buffered())

	r.Feed([]byte("NG\r\n"))
	v, err = r.Next()
	assert.NoError(err)
	ss, _ = v.Strings()
	assert.Equal([]string{"PING"}, ss)
	assert.Equal(0, r.Buffered())
}
