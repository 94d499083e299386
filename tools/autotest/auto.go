package autotest

import (
	"testing"

	"github.com/distributedio/respd/tools/autotest/cmd"

	redigo "github.com/gomodule/redigo/redis"
	"github.com/redis/go-redis/v9"
)

//AutoClient check redis comman
type AutoClient struct {
	es *cmd.ExampleString
	ek *cmd.ExampleKey
	ep *cmd.ExamplePubsub
	*cmd.ExampleSystem
	conn   redigo.Conn
	client *redis.Client
}

//NewAutoClient creat auto client
func NewAutoClient() *AutoClient {
	return &AutoClient{}
}

//Start run client
func (ac *AutoClient) Start(addr, auth string) {
	conn, err := redigo.Dial("tcp", addr)
	if err != nil {
		panic(err)
	}
	_, err = redigo.String(conn.Do("auth", auth))
	if err != nil {
		panic(err)
	}
	ac.conn = conn
	ac.client = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: auth,
		Protocol: 2,
	})
	ac.es = cmd.NewExampleString(conn)
	ac.ek = cmd.NewExampleKey(conn)
	ac.ep = cmd.NewExamplePubsub(ac.client)
	ac.ExampleSystem = cmd.NewExampleSystem(conn)
}

//Close shut client
func (ac *AutoClient) Close() {
	ac.client.Close()
	ac.conn.Close()
}

//StringCase check string case
func (ac *AutoClient) StringCase(t *testing.T) {
	ac.es.SetEqual(t, "key-set", "value")
	ac.es.SetEqual(t, "key-set", "")
	ac.es.GetEqual(t, "key-set")
	ac.es.GetNil(t, "key-not-exist")
	ac.es.BinaryEqual(t, "key-binary")
	ac.es.SetPxEqual(t, "key-setpx", "v1", 50)
	ac.es.SetExEqual(t, "key-setex", "v2", 1)
}

//KeyCase check key case
func (ac *AutoClient) KeyCase(t *testing.T) {
	ac.es.SetEqual(t, "key1", "value")
	ac.es.SetEqual(t, "key2", "value")
	ac.ek.ExistsEqual(t, 2, "key1", "key2", "key3")
	ac.ek.ExistsEqual(t, 2, "key1", "key1")
	ac.ek.DelEqual(t, 2, "key1", "key2", "key3")
	ac.ek.DelEqual(t, 0, "key1")
}

//SystemCase check system case
func (ac *AutoClient) SystemCase(t *testing.T) {
	ac.PingEqual(t)
	ac.EchoEqual(t, "hello world")
	ac.EchoEqual(t, "")
	ac.CommandEqual(t)
	ac.UnknownEqualErr(t, "flushall")
}

//PubsubCase check pub/sub case
func (ac *AutoClient) PubsubCase(t *testing.T) {
	ac.ep.PublishEqual(t, "news", "hello")
	ac.ep.PublishEqual(t, "news", "line\r\nbreak")
	ac.ep.PublishNoneEqual(t, "nobody-listens")
}
