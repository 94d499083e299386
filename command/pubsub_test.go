package command

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/distributedio/respd/db"
	"github.com/distributedio/respd/encoding/resp"
)

func TestSubscribe(t *testing.T) {
	ctx := ContextTest("subscribe")
	out := callOn(ctx, "subscribe", "pubsub-a", "pubsub-b")
	assert.Equal(t, "*3\r\n$9\r\nsubscribe\r\n$8\r\npubsub-a\r\n:1\r\n"+
		"*3\r\n$9\r\nsubscribe\r\n$8\r\npubsub-b\r\n:2\r\n", out)
	require.NotNil(t, ctx.Client.Subscriber)

	// subscribing twice to a channel does not count it twice
	out = callOn(ctx, "subscribe", "pubsub-a")
	assert.Equal(t, "*3\r\n$9\r\nsubscribe\r\n$8\r\npubsub-a\r\n:2\r\n", out)

	// only pub/sub commands are allowed in subscribe mode
	out = callOn(ctx, "get", "k")
	assert.Equal(t, "-"+ErrSubscribeMode("get").Error()+"\r\n", out)
	out = callOn(ctx, "ping")
	assert.Equal(t, "*2\r\n$4\r\npong\r\n$0\r\n\r\n", out)

	assert.Equal(t, ":1\r\n", CallTest("publish", "pubsub-a", "hello").String())

	select {
	case msg := <-ctx.Client.Subscriber.C:
		assert.Equal(t, db.Message{Channel: "pubsub-a", Payload: []byte("hello")}, msg)
		wire, err := resp.Marshal(MessageValue(msg))
		require.NoError(t, err)
		assert.Equal(t, "*3\r\n$7\r\nmessage\r\n$8\r\npubsub-a\r\n$5\r\nhello\r\n", string(wire))
	case <-time.After(time.Second):
		require.Fail(t, "message not delivered")
	}

	out = callOn(ctx, "unsubscribe", "pubsub-a")
	assert.Equal(t, "*3\r\n$11\r\nunsubscribe\r\n$8\r\npubsub-a\r\n:1\r\n", out)
	out = callOn(ctx, "unsubscribe")
	assert.Equal(t, "*3\r\n$11\r\nunsubscribe\r\n$8\r\npubsub-b\r\n:0\r\n", out)

	// back to normal mode
	out = callOn(ctx, "ping")
	assert.Equal(t, "+PONG\r\n", out)
	assert.Equal(t, ":0\r\n", CallTest("publish", "pubsub-a", "hello").String())
}

func TestUnsubscribeWithoutSubscriptions(t *testing.T) {
	out := CallTest("unsubscribe")
	assert.Equal(t, "*3\r\n$11\r\nunsubscribe\r\n$-1\r\n:0\r\n", out.String())

	out = CallTest("unsubscribe", "pubsub-none")
	assert.Equal(t, "*3\r\n$11\r\nunsubscribe\r\n$11\r\npubsub-none\r\n:0\r\n", out.String())
}

func TestUnsubscribeAll(t *testing.T) {
	ctx := ContextTest("subscribe")
	callOn(ctx, "subscribe", "pubsub-all-a", "pubsub-all-b")
	UnsubscribeAll(ctx)
	assert.Equal(t, 0, ctx.Server.Broker.Count(ctx.Client.Subscriber))
	assert.Equal(t, ":0\r\n", CallTest("publish", "pubsub-all-a", "x").String())
}

func TestPublishInSubscribeMode(t *testing.T) {
	ctx := ContextTest("subscribe")
	callOn(ctx, "subscribe", "pubsub-mode")
	defer UnsubscribeAll(ctx)
	out := callOn(ctx, "publish", "pubsub-mode", "x")
	assert.Equal(t, "-"+ErrSubscribeMode("publish").Error()+"\r\n", out)
}
