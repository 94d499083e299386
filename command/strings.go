package command

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/distributedio/respd/db"
	"github.com/distributedio/respd/encoding/resp"
)

// Get the value of key
func Get(ctx *Context) {
	key := ctx.Args[0]

	val, err := ctx.Server.Store.Get(key)
	if err != nil {
		if db.IsErrNotFound(err) {
			resp.ReplyNullBulkString(ctx.Out)
			return
		}
		resp.ReplyError(ctx.Out, "ERR "+err.Error())
		return
	}
	resp.NewEncoder(ctx.Out).BulkBytes(val)
}

// Set key to hold the string value
func Set(ctx *Context) {
	key := ctx.Args[0]
	val := ctx.Args[1]

	ttl := time.Duration(0)
	options := ctx.Args[2:]
	for i := 0; i < len(options); i++ {
		var unit time.Duration
		switch strings.ToLower(options[i]) {
		case "ex":
			unit = time.Second
		case "px":
			unit = time.Millisecond
		default:
			resp.ReplyError(ctx.Out, ErrSyntax.Error())
			return
		}
		if ttl != 0 || i+1 >= len(options) {
			resp.ReplyError(ctx.Out, ErrSyntax.Error())
			return
		}
		i++
		n, err := strconv.ParseInt(options[i], 10, 64)
		if err != nil {
			resp.ReplyError(ctx.Out, ErrInteger.Error())
			return
		}
		if n <= 0 || n > math.MaxInt64/int64(unit) {
			resp.ReplyError(ctx.Out, ErrExpireTime.Error())
			return
		}
		ttl = time.Duration(n) * unit
	}

	ctx.Server.Store.Set(key, []byte(val), ttl)
	resp.ReplySimpleString(ctx.Out, OK)
}
