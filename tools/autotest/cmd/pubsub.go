package cmd

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//ExamplePubsub verify the pub/sub commands with a go-redis client
type ExamplePubsub struct {
	client *redis.Client
}

//NewExamplePubsub create pubsub object
func NewExamplePubsub(client *redis.Client) *ExamplePubsub {
	return &ExamplePubsub{
		client: client,
	}
}

//PublishEqual verify that every subscriber of a channel gets a published message
func (ep *ExamplePubsub) PublishEqual(t *testing.T, channel string, payload string) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	sub := ep.client.Subscribe(ctx, channel)
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	n, err := ep.client.Publish(ctx, channel, payload).Result()
	assert.NoError(t, err)
	assert.Equal(t, int64(1), n)

	msg, err := sub.ReceiveMessage(ctx)
	require.NoError(t, err)
	assert.Equal(t, channel, msg.Channel)
	assert.Equal(t, payload, msg.Payload)

	require.NoError(t, sub.Unsubscribe(ctx, channel))
}

//PublishNoneEqual verify that publishing on a channel without subscribers reaches no one
func (ep *ExamplePubsub) PublishNoneEqual(t *testing.T, channel string) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	n, err := ep.client.Publish(ctx, channel, "nobody").Result()
	assert.NoError(t, err)
	assert.Equal(t, int64(0), n)
}
