package autotest

import (
	"bufio"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/distributedio/respd/tools/autotest/cmd"
)

//Abnormal check error message
type Abnormal struct {
	es   *cmd.ExampleString
	ek   *cmd.ExampleKey
	ess  *cmd.ExampleSystem
	conn redis.Conn
	addr string
	auth string
}

//NewAbnormal create object
func NewAbnormal() *Abnormal {
	return &Abnormal{}
}

//Start  create abnormal client
func (an *Abnormal) Start(addr, auth string) {
	conn, err := redis.Dial("tcp", addr)
	if err != nil {
		panic(err)
	}
	an.conn = conn
	an.addr = addr
	an.auth = auth
	an.es = cmd.NewExampleString(conn)
	an.ek = cmd.NewExampleKey(conn)
	an.ess = cmd.NewExampleSystem(conn)
}

//Close close annormal client
func (an *Abnormal) Close() {
	an.conn.Close()
}

//AuthCase check auth case
func (an *Abnormal) AuthCase(t *testing.T) {
	an.es.GetEqualErr(t, "NOAUTH Authentication required.", "key")
	an.ess.AuthEqualErr(t, "ERR invalid password", "wrong")
	an.ess.AuthEqualErr(t, "ERR wrong number of arguments for 'auth' command")
	an.ess.AuthEqual(t, an.auth)
}

//StringCase check string case
func (an *Abnormal) StringCase(t *testing.T) {
	an.es.SetEqualErr(t, "ERR wrong number of arguments for 'set' command", "key")
	an.es.SetEqualErr(t, "ERR value is not an integer or out of range", "key", "v", "ex", "second")
	an.es.SetEqualErr(t, "ERR syntax error", "key", "v", "nx", "second")
	an.es.SetEqualErr(t, "ERR invalid expire time in set", "key", "v", "px", "0")
	an.es.GetEqualErr(t, "ERR wrong number of arguments for 'get' command", "hello", "world")
}

//KeyCase check key case
func (an *Abnormal) KeyCase(t *testing.T) {
	an.ek.DelEqualErr(t, "ERR wrong number of arguments for 'del' command")
	an.ek.ExistsEqualErr(t, "ERR wrong number of arguments for 'exists' command")
}

//SystemCase check system case
func (an *Abnormal) SystemCase(t *testing.T) {
	an.ess.PingEqualErr(t, "ERR wrong number of arguments for 'ping' command", "a", "b")
}

// raw dials a plain connection, authenticates it and returns it with a reader
func (an *Abnormal) raw(t *testing.T) (net.Conn, *bufio.Reader) {
	conn, err := net.Dial("tcp", an.addr)
	require.NoError(t, err)
	conn.SetDeadline(time.Now().Add(3 * time.Second))
	r := bufio.NewReader(conn)
	_, err = conn.Write([]byte("*2\r\n$4\r\nAUTH\r\n$" + strconv.Itoa(len(an.auth)) + "\r\n" + an.auth + "\r\n"))
	require.NoError(t, err)
	line, err := r.ReadString('\n')
	require.NoError(t, err)
	require.Equal(t, "+OK\r\n", line)
	return conn, r
}

//ProtocolCase check that malformed requests are answered and the connection is closed
func (an *Abnormal) ProtocolCase(t *testing.T) {
	cases := []struct {
		req  string
		resp string
	}{
		{"*1\r\n$4\r\nPINGx\r\n", "-ERR Protocol error: missing terminator: bulk string of 4 bytes\r\n"},
		{"*1\r\n$-2\r\n", "-ERR Protocol error: invalid length: \"-2\"\r\n"},
		{"*1\r\n:12a\r\n", "-ERR Protocol error: invalid integer: \"12a\"\r\n"},
		{"!oops\r\n", "-ERR Protocol error: unknown type: marker '!'\r\n"},
	}
	for _, c := range cases {
		conn, r := an.raw(t)
		_, err := conn.Write([]byte(c.req))
		require.NoError(t, err)
		line, err := r.ReadString('\n')
		assert.NoError(t, err)
		assert.Equal(t, c.resp, line, c.req)
		_, err = r.ReadByte()
		assert.Error(t, err, "connection should be closed after %q", c.req)
		conn.Close()
	}
}

//NotCommandCase check that a value which is not a command is rejected and the connection kept
func (an *Abnormal) NotCommandCase(t *testing.T) {
	conn, r := an.raw(t)
	defer conn.Close()

	_, err := conn.Write([]byte(":1\r\n*2\r\n$4\r\nECHO\r\n:1\r\n*0\r\n*1\r\n$4\r\nPING\r\n"))
	require.NoError(t, err)
	for _, expect := range []string{
		"-ERR Protocol error: expected array of bulk strings\r\n",
		"-ERR Protocol error: expected array of bulk strings\r\n",
		"+PONG\r\n",
	} {
		line, err := r.ReadString('\n')
		assert.NoError(t, err)
		assert.Equal(t, expect, line)
	}
}

//SplitCase check that a request split in many writes is served once complete
func (an *Abnormal) SplitCase(t *testing.T) {
	conn, r := an.raw(t)
	defer conn.Close()

	req := "*2\r\n$4\r\nECHO\r\n$5\r\nhello\r\n"
	for i := 0; i < len(req); i++ {
		_, err := conn.Write([]byte{req[i]})
		require.NoError(t, err)
		time.Sleep(time.Millisecond)
	}
	line, err := r.ReadString('\n')
	assert.NoError(t, err)
	assert.Equal(t, "$5\r\n", line)
	line, err = r.ReadString('\n')
	assert.NoError(t, err)
	assert.Equal(t, "hello\r\n", line)
}
