package command

import (
	"io"
	"strings"
	"time"

	"github.com/distributedio/respd/context"
	"github.com/distributedio/respd/encoding/resp"
	"github.com/distributedio/respd/metrics"
)

// Context is the runtime context of a command
type Context struct {
	Name    string
	Args    []string
	Out     io.Writer
	TraceID string
	*context.Context
}

// Command is a redis command implementation
type Command func(ctx *Context)

// Call a command
func Call(ctx *Context) {
	ctx.Name = strings.ToLower(ctx.Name)

	if ctx.Name != "auth" &&
		ctx.Server.RequirePass != "" &&
		!ctx.Client.Authenticated {
		resp.ReplyError(ctx.Out, ErrNoAuth.Error())
		return
	}

	desc, ok := commands[ctx.Name]
	if !ok {
		resp.ReplyError(ctx.Out, ErrUnKnownCommand(ctx.Name).Error())
		return
	}
	argc := len(ctx.Args) + 1 // include the command name
	arity := desc.Cons.Arity

	if arity > 0 && argc != arity {
		resp.ReplyError(ctx.Out, ErrWrongArgs(ctx.Name).Error())
		return
	}

	if arity < 0 && argc < -arity {
		resp.ReplyError(ctx.Out, ErrWrongArgs(ctx.Name).Error())
		return
	}

	// Only pub/sub commands are allowed once the client subscribes
	if subscribed(ctx) && !subscribeModeCommands[ctx.Name] {
		resp.ReplyError(ctx.Out, ErrSubscribeMode(ctx.Name).Error())
		return
	}

	start := time.Now()
	desc.Proc(ctx)
	cost := time.Since(start)

	desc.Stat.record(cost)
}

var subscribeModeCommands = map[string]bool{
	"subscribe":   true,
	"unsubscribe": true,
	"ping":        true,
	"quit":        true,
}

func subscribed(ctx *Context) bool {
	return ctx.Client.Subscriber != nil && ctx.Server.Broker.Count(ctx.Client.Subscriber) > 0
}

// Executor execute any command
type Executor struct {
	commands map[string]Desc
}

// NewExecutor new a Executor object
func NewExecutor() *Executor {
	return &Executor{commands: commands}
}

// Execute a command
func (e *Executor) Execute(ctx *Context) {
	start := time.Now()
	Call(ctx)
	cost := time.Since(start).Seconds()

	name := ctx.Name
	if _, ok := e.commands[name]; !ok {
		name = "unknown"
	}
	metrics.GetMetrics().CommandCallHistogramVec.WithLabelValues(name).Observe(cost)
}

// Desc combines command procedure, constraint and statistics
type Desc struct {
	Proc Command
	Stat *Statistic
	Cons Constraint
}
