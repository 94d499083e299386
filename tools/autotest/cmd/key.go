package cmd

import (
	"testing"

	"github.com/gomodule/redigo/redis"
	"github.com/stretchr/testify/assert"
)

//ExampleKey verify the key command
type ExampleKey struct {
	conn redis.Conn
}

//NewExampleKey create key object
func NewExampleKey(conn redis.Conn) *ExampleKey {
	return &ExampleKey{
		conn: conn,
	}
}

//DelEqual verify that the return value of the del operation is correct
func (ek *ExampleKey) DelEqual(t *testing.T, expectReply int, keys ...string) {
	req := make([]interface{}, len(keys))
	for i, eveKey := range keys {
		req[i] = eveKey
	}
	reply, err := redis.Int(ek.conn.Do("del", req...))
	assert.Equal(t, expectReply, reply)
	assert.NoError(t, err)
	for _, eveKey := range keys {
		reply, err := redis.Int(ek.conn.Do("exists", eveKey))
		assert.Equal(t, 0, reply)
		assert.NoError(t, err)
	}
}

//ExistsEqual verify that the return value of the exists operation is correct
func (ek *ExampleKey) ExistsEqual(t *testing.T, expectReply int, keys ...string) {
	req := make([]interface{}, len(keys))
	for i, eveKey := range keys {
		req[i] = eveKey
	}
	reply, err := redis.Int(ek.conn.Do("exists", req...))
	assert.Equal(t, expectReply, reply)
	assert.NoError(t, err)
}

//DelEqualErr verify that the return value of the del operation is correct
func (ek *ExampleKey) DelEqualErr(t *testing.T, errValue string, args ...interface{}) {
	_, err := ek.conn.Do("del", args...)
	assert.EqualError(t, err, errValue)
}

//ExistsEqualErr verify that the return value of the exists operation is correct
func (ek *ExampleKey) ExistsEqualErr(t *testing.T, errValue string, args ...interface{}) {
	_, err := ek.conn.Do("exists", args...)
	assert.EqualError(t, err, errValue)
}
