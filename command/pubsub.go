package command

import (
	"github.com/distributedio/respd/db"
	"github.com/distributedio/respd/encoding/resp"
)

// Publish posts a message to the given channel
func Publish(ctx *Context) {
	n := ctx.Server.Broker.Publish(ctx.Args[0], []byte(ctx.Args[1]))
	resp.ReplyInteger(ctx.Out, int64(n))
}

// Subscribe the client to the specified channels
func Subscribe(ctx *Context) {
	if ctx.Client.Subscriber == nil {
		ctx.Client.Subscriber = db.NewSubscriber(ctx.Server.PubsubBuffer)
	}
	sub := ctx.Client.Subscriber
	for _, channel := range ctx.Args {
		n := ctx.Server.Broker.Subscribe(channel, sub)
		resp.ReplyValue(ctx.Out, subscription("subscribe", channel, n))
	}
}

// Unsubscribe the client from the given channels, or from all of them if none is given
func Unsubscribe(ctx *Context) {
	sub := ctx.Client.Subscriber
	channels := ctx.Args
	if len(channels) == 0 && sub != nil {
		channels = ctx.Server.Broker.Channels(sub)
	}
	if len(channels) == 0 {
		resp.ReplyValue(ctx.Out, resp.Array(
			resp.BulkString("unsubscribe"),
			resp.NullBulkString(),
			resp.Integer(0),
		))
		return
	}
	for _, channel := range channels {
		n := 0
		if sub != nil {
			n = ctx.Server.Broker.Unsubscribe(channel, sub)
		}
		resp.ReplyValue(ctx.Out, subscription("unsubscribe", channel, n))
	}
}

// UnsubscribeAll drops every subscription of a closing client
func UnsubscribeAll(ctx *Context) {
	sub := ctx.Client.Subscriber
	if sub == nil {
		return
	}
	for _, channel := range ctx.Server.Broker.Channels(sub) {
		ctx.Server.Broker.Unsubscribe(channel, sub)
	}
}

// MessageValue is the push a subscriber receives for a published message
func MessageValue(msg db.Message) resp.Value {
	return resp.Array(
		resp.BulkString("message"),
		resp.BulkString(msg.Channel),
		resp.BulkBytes(msg.Payload),
	)
}

func subscription(kind, channel string, count int) resp.Value {
	return resp.Array(
		resp.BulkString(kind),
		resp.BulkString(channel),
		resp.Integer(int64(count)),
	)
}
