package command

import (
	"bytes"
	"io"

	"github.com/distributedio/respd/context"
	"github.com/distributedio/respd/db"
)

var mockdb = db.Open()
var mockBroker = db.NewBroker()

func ContextTest(name string, args ...string) *Context {
	cliCtx := &context.ClientContext{
		Done: make(chan struct{}),
	}
	servCtx := &context.ServerContext{
		RequirePass:  "",
		Store:        mockdb,
		Broker:       mockBroker,
		PubsubBuffer: 16,
	}
	rootCtx, _ := context.WithCancel(context.New(cliCtx, servCtx))
	return &Context{
		Name:    name,
		Args:    args,
		Out:     &bytes.Buffer{},
		Context: rootCtx,
	}
}

func CallTest(name string, args ...string) *bytes.Buffer {
	ctx := ContextTest(name, args...)
	Call(ctx)
	return ctx.Out.(*bytes.Buffer)
}

// callOn runs a command on an existing context, reusing its client and server
func callOn(ctx *Context, name string, args ...string) string {
	out := &bytes.Buffer{}
	ctx.Name = name
	ctx.Args = args
	ctx.Out = out
	Call(ctx)
	return out.String()
}

func ctxString(buf io.Writer) string {
	return buf.(*bytes.Buffer).String()
}
