package command

import (
	"github.com/distributedio/respd/encoding/resp"
)

// Delete removes the specified keys
func Delete(ctx *Context) {
	n := ctx.Server.Store.Delete(ctx.Args...)
	resp.ReplyInteger(ctx.Out, int64(n))
}

// Exists returns if the key exists
func Exists(ctx *Context) {
	n := ctx.Server.Store.Exists(ctx.Args...)
	resp.ReplyInteger(ctx.Out, int64(n))
}
