package cmd

import (
	"testing"

	"github.com/gomodule/redigo/redis"
	"github.com/stretchr/testify/assert"
)

//ExampleSystem verify the connection and server commands
type ExampleSystem struct {
	conn redis.Conn
}

//NewExampleSystem create system object
func NewExampleSystem(conn redis.Conn) *ExampleSystem {
	return &ExampleSystem{
		conn: conn,
	}
}

//AuthEqual verify that the auth succeeds
func (es *ExampleSystem) AuthEqual(t *testing.T, password string) {
	reply, err := redis.String(es.conn.Do("auth", password))
	assert.NoError(t, err)
	assert.Equal(t, "OK", reply)
}

//AuthEqualErr verify that the auth fails with errValue
func (es *ExampleSystem) AuthEqualErr(t *testing.T, errValue string, args ...interface{}) {
	_, err := es.conn.Do("auth", args...)
	assert.EqualError(t, err, errValue)
}

//PingEqual verify ping with and without a message
func (es *ExampleSystem) PingEqual(t *testing.T) {
	reply, err := redis.String(es.conn.Do("ping", "hello"))
	assert.NoError(t, err)
	assert.Equal(t, "hello", reply)

	reply, err = redis.String(es.conn.Do("ping"))
	assert.NoError(t, err)
	assert.Equal(t, "PONG", reply)
}

//PingEqualErr verify that the ping fails with errValue
func (es *ExampleSystem) PingEqualErr(t *testing.T, errValue string, args ...interface{}) {
	_, err := es.conn.Do("ping", args...)
	assert.EqualError(t, err, errValue)
}

//EchoEqual verify that echo replies its argument
func (es *ExampleSystem) EchoEqual(t *testing.T, msg string) {
	reply, err := redis.String(es.conn.Do("echo", msg))
	assert.NoError(t, err)
	assert.Equal(t, msg, reply)
}

//CommandEqual verify the command count and info
func (es *ExampleSystem) CommandEqual(t *testing.T) {
	count, err := redis.Int(es.conn.Do("command", "count"))
	assert.NoError(t, err)
	all, err := redis.Values(es.conn.Do("command"))
	assert.NoError(t, err)
	assert.Len(t, all, count)

	info, err := redis.Values(es.conn.Do("command", "info", "set"))
	assert.NoError(t, err)
	assert.Len(t, info, 1)
	detail, err := redis.Values(info[0], nil)
	assert.NoError(t, err)
	name, _ := redis.String(detail[0], nil)
	arity, _ := redis.Int(detail[1], nil)
	assert.Equal(t, "set", name)
	assert.Equal(t, -3, arity)
}

//UnknownEqualErr verify the error of an unknown command
func (es *ExampleSystem) UnknownEqualErr(t *testing.T, name string) {
	_, err := es.conn.Do(name)
	assert.EqualError(t, err, "ERR unknown command '"+name+"'")
}
