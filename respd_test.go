package respd

import (
	"bufio"
	"net"
	"testing"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/distributedio/respd/conf"
	"github.com/distributedio/respd/context"
	"github.com/distributedio/respd/db"
)

func startServer(t *testing.T, cfg *conf.Respd) (*Server, string) {
	store := db.Open()
	s := New(&context.ServerContext{
		RequirePass: cfg.Server.Auth,
		Store:       store,
		Broker:      db.NewBroker(),
	}, &cfg.Server, &cfg.Codec)

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go s.Serve(lis)
	t.Cleanup(func() {
		lis.Close()
		store.Close()
	})
	return s, lis.Addr().String()
}

func TestServeCommands(t *testing.T) {
	_, addr := startServer(t, conf.MockConf())
	conn, err := redis.Dial("tcp", addr)
	require.NoError(t, err)
	defer conn.Close()

	reply, err := redis.String(conn.Do("SET", "k", "v"))
	assert.NoError(t, err)
	assert.Equal(t, "OK", reply)
	reply, err = redis.String(conn.Do("GET", "k"))
	assert.NoError(t, err)
	assert.Equal(t, "v", reply)
	_, err = redis.String(conn.Do("GET", "missing"))
	assert.Equal(t, redis.ErrNil, err)
}

func TestQuit(t *testing.T) {
	_, addr := startServer(t, conf.MockConf())
	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(3 * time.Second))

	// the ping after quit is never answered
	_, err = conn.Write([]byte("*1\r\n$4\r\nQUIT\r\n*1\r\n$4\r\nPING\r\n"))
	require.NoError(t, err)
	r := bufio.NewReader(conn)
	line, err := r.ReadString('\n')
	assert.NoError(t, err)
	assert.Equal(t, "+OK\r\n", line)
	_, err = r.ReadString('\n')
	assert.Error(t, err)
}

func TestMaxConnection(t *testing.T) {
	cfg := conf.MockConf()
	cfg.Server.MaxConnection = 1
	_, addr := startServer(t, cfg)

	first, err := redis.Dial("tcp", addr)
	require.NoError(t, err)
	defer first.Close()
	_, err = first.Do("PING")
	require.NoError(t, err)

	second, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer second.Close()
	second.SetDeadline(time.Now().Add(3 * time.Second))
	line, err := bufio.NewReader(second).ReadString('\n')
	assert.NoError(t, err)
	assert.Equal(t, "-ERR max number of clients reached\r\n", line)

	// the slot is released once the first client leaves
	first.Close()
	assert.Eventually(t, func() bool {
		third, err := redis.Dial("tcp", addr)
		if err != nil {
			return false
		}
		defer third.Close()
		_, err = third.Do("PING")
		return err == nil
	}, 3*time.Second, 20*time.Millisecond)
}

func TestCodecLimits(t *testing.T) {
	cfg := conf.MockConf()
	cfg.Codec.MaxBulkLen = 8
	_, addr := startServer(t, cfg)

	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(3 * time.Second))

	_, err = conn.Write([]byte("*2\r\n$4\r\nECHO\r\n$9\r\n"))
	require.NoError(t, err)
	line, err := bufio.NewReader(conn).ReadString('\n')
	assert.NoError(t, err)
	assert.Equal(t, "-ERR Protocol error: payload too large: 9 > 8\r\n", line)
}

func TestPubsubPush(t *testing.T) {
	_, addr := startServer(t, conf.MockConf())
	sub, err := redis.Dial("tcp", addr)
	require.NoError(t, err)
	defer sub.Close()
	pub, err := redis.Dial("tcp", addr)
	require.NoError(t, err)
	defer pub.Close()

	psc := redis.PubSubConn{Conn: sub}
	require.NoError(t, psc.Subscribe("news"))
	switch v := psc.Receive().(type) {
	case redis.Subscription:
		assert.Equal(t, "subscribe", v.Kind)
		assert.Equal(t, 1, v.Count)
	default:
		require.Fail(t, "unexpected reply", "%v", v)
	}

	n, err := redis.Int(pub.Do("PUBLISH", "news", "hello"))
	assert.NoError(t, err)
	assert.Equal(t, 1, n)

	switch v := psc.Receive().(type) {
	case redis.Message:
		assert.Equal(t, "news", v.Channel)
		assert.Equal(t, []byte("hello"), v.Data)
	default:
		require.Fail(t, "unexpected reply", "%v", v)
	}
}

func TestGracefulStop(t *testing.T) {
	s, addr := startServer(t, conf.MockConf())
	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(3 * time.Second))

	_, err = conn.Write([]byte("*1\r\n$4\r\nPING\r\n"))
	require.NoError(t, err)
	r := bufio.NewReader(conn)
	line, err := r.ReadString('\n')
	require.NoError(t, err)
	require.Equal(t, "+PONG\r\n", line)

	assert.NoError(t, s.GracefulStop())
	_, err = r.ReadByte()
	assert.Error(t, err)
}

func TestGetClientID(t *testing.T) {
	idgen := GetClientID()
	assert.Equal(t, int64(2), idgen())
	assert.Equal(t, int64(3), idgen())
}

func TestGenerateTraceID(t *testing.T) {
	assert.NotEqual(t, GenerateTraceID(), GenerateTraceID())
	assert.Len(t, GenerateTraceID(), 36)
}
