package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPing(t *testing.T) {
	assert.Equal(t, "+PONG\r\n", CallTest("ping").String())
	assert.Equal(t, "$5\r\nhello\r\n", CallTest("PING", "hello").String())
	assert.Equal(t, "-ERR wrong number of arguments for 'ping' command\r\n", CallTest("ping", "a", "b").String())
}

func TestEcho(t *testing.T) {
	assert.Equal(t, "$5\r\nhello\r\n", CallTest("echo", "hello").String())
	assert.Equal(t, "$0\r\n\r\n", CallTest("echo", "").String())
	assert.Equal(t, "-ERR wrong number of arguments for 'echo' command\r\n", CallTest("echo").String())
}

func TestAuth(t *testing.T) {
	ctx := ContextTest("get", "k")
	assert.Equal(t, "-"+ErrAuthUnSet.Error()+"\r\n", callOn(ctx, "auth", "secret"))

	ctx.Server.RequirePass = "secret"

	assert.Equal(t, "-"+ErrNoAuth.Error()+"\r\n", callOn(ctx, "get", "k"))
	assert.Equal(t, "-"+ErrAuthInvalid.Error()+"\r\n", callOn(ctx, "auth", "wrong"))
	assert.False(t, ctx.Client.Authenticated)
	assert.Equal(t, "+OK\r\n", callOn(ctx, "auth", "secret"))
	assert.True(t, ctx.Client.Authenticated)
	assert.Equal(t, "$-1\r\n", callOn(ctx, "get", "auth-missing"))
}

func TestQuit(t *testing.T) {
	ctx := ContextTest("quit")
	Call(ctx)
	assert.Equal(t, "+OK\r\n", ctxString(ctx.Out))
	select {
	case <-ctx.Client.Done:
	default:
		require.Fail(t, "client not done after quit")
	}
}

func TestUnknownCommand(t *testing.T) {
	assert.Equal(t, "-ERR unknown command 'foo'\r\n", CallTest("FOO", "bar").String())
}
