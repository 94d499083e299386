package cmd

import (
	"testing"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/stretchr/testify/assert"
)

//ExampleString verify the string command
type ExampleString struct {
	values map[string]string
	conn   redis.Conn
}

//NewExampleString create new string object
func NewExampleString(conn redis.Conn) *ExampleString {
	return &ExampleString{
		values: make(map[string]string),
		conn:   conn,
	}
}

//SetEqual verify that the return value of the set operation is correct
func (es *ExampleString) SetEqual(t *testing.T, key string, value string) {
	es.values[key] = value
	reply, err := redis.String(es.conn.Do("SET", key, value))
	assert.Equal(t, "OK", reply)
	assert.NoError(t, err)
	data, err := redis.Bytes(es.conn.Do("GET", key))
	assert.Equal(t, value, string(data))
	assert.NoError(t, err)
}

//GetEqual verify that the return value of the get operation is correct
func (es *ExampleString) GetEqual(t *testing.T, key string) {
	data, err := redis.Bytes(es.conn.Do("GET", key))
	assert.Equal(t, es.values[key], string(data))
	assert.NoError(t, err)
}

//GetNil verify that get replies the nil bulk string for a missing key
func (es *ExampleString) GetNil(t *testing.T, key string) {
	reply, err := es.conn.Do("GET", key)
	assert.NoError(t, err)
	assert.Nil(t, reply)
	_, err = redis.String(reply, err)
	assert.EqualError(t, err, "redigo: nil returned")
}

//SetEqualErr verify that the return value of the set operation is correct
func (es *ExampleString) SetEqualErr(t *testing.T, errValue string, args ...interface{}) {
	_, err := es.conn.Do("set", args...)
	assert.EqualError(t, err, errValue)
}

//GetEqualErr verify that the return value of the set operation is correct
func (es *ExampleString) GetEqualErr(t *testing.T, errValue string, args ...interface{}) {
	_, err := es.conn.Do("get", args...)
	assert.EqualError(t, err, errValue)
}

//SetExEqual verify that set with EX expires the key
func (es *ExampleString) SetExEqual(t *testing.T, key string, value string, delta int) {
	reply, err := redis.String(es.conn.Do("SET", key, value, "EX", delta))
	assert.Equal(t, "OK", reply)
	assert.NoError(t, err)
	data, err := redis.Bytes(es.conn.Do("GET", key))
	assert.Equal(t, value, string(data))
	assert.NoError(t, err)
	time.Sleep(time.Second*time.Duration(delta) + 100*time.Millisecond)
	es.GetNil(t, key)
}

//SetPxEqual verify that set with PX expires the key
func (es *ExampleString) SetPxEqual(t *testing.T, key string, value string, delta int) {
	reply, err := redis.String(es.conn.Do("SET", key, value, "PX", delta))
	assert.Equal(t, "OK", reply)
	assert.NoError(t, err)
	data, err := redis.Bytes(es.conn.Do("GET", key))
	assert.Equal(t, value, string(data))
	assert.NoError(t, err)
	time.Sleep(time.Millisecond*time.Duration(delta) + 100*time.Millisecond)
	es.GetNil(t, key)
}

//BinaryEqual verify that binary values with CR and LF survive a round trip
func (es *ExampleString) BinaryEqual(t *testing.T, key string) {
	value := []byte("a\r\nb\x00c\r\n")
	reply, err := redis.String(es.conn.Do("SET", key, value))
	assert.Equal(t, "OK", reply)
	assert.NoError(t, err)
	data, err := redis.Bytes(es.conn.Do("GET", key))
	assert.NoError(t, err)
	assert.Equal(t, value, data)
	es.values[key] = string(value)
}
