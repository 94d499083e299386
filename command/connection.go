package command

import (
	"crypto/subtle"

	"github.com/distributedio/respd/encoding/resp"
)

// Auth verifies the client
func Auth(ctx *Context) {
	serverauth := []byte(ctx.Server.RequirePass)
	if len(serverauth) == 0 {
		resp.ReplyError(ctx.Out, ErrAuthUnSet.Error())
		return
	}

	if subtle.ConstantTimeCompare([]byte(ctx.Args[0]), serverauth) != 1 {
		ctx.Client.Authenticated = false
		resp.ReplyError(ctx.Out, ErrAuthInvalid.Error())
		return
	}
	ctx.Client.Authenticated = true
	resp.ReplySimpleString(ctx.Out, OK)
}

// Echo the given string
func Echo(ctx *Context) {
	resp.ReplyBulkString(ctx.Out, ctx.Args[0])
}

// Ping the server
func Ping(ctx *Context) {
	args := ctx.Args
	if len(args) > 1 {
		resp.ReplyError(ctx.Out, ErrWrongArgs(ctx.Name).Error())
		return
	}
	// A subscribed client gets the pong as a pub/sub message
	if subscribed(ctx) {
		msg := ""
		if len(args) == 1 {
			msg = args[0]
		}
		resp.ReplyValue(ctx.Out, resp.Array(resp.BulkString("pong"), resp.BulkString(msg)))
		return
	}
	if len(args) == 1 {
		resp.ReplyBulkString(ctx.Out, args[0])
		return
	}
	resp.ReplySimpleString(ctx.Out, "PONG")
}

// Quit asks the server to close the connection
func Quit(ctx *Context) {
	resp.ReplySimpleString(ctx.Out, OK)
	ctx.Client.Shutdown()
}
