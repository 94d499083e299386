package context

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/distributedio/respd/db"
)

// Version information.
var (
	ReleaseVersion = "None"
	BuildTS        = "None"
	GitHash        = "None"
	GitBranch      = "None"
	GitLog         = "None"
	GolangVersion  = "None"
)

// ClientContext is the runtime context of a client
type ClientContext struct {
	Authenticated bool   // Client has be authenticated
	RemoteAddr    string // Client remote address
	ID            int64  // Client uniq ID
	Created       time.Time
	Updated       time.Time
	LastCmd       string
	Close         func() error

	// Subscriber is set once the client subscribes to a channel,
	// the client is in subscribe mode while it has subscriptions
	Subscriber *db.Subscriber

	Done     chan struct{}
	doneOnce sync.Once
}

// Shutdown closes Done, it can be called more than once
func (c *ClientContext) Shutdown() {
	c.doneOnce.Do(func() { close(c.Done) })
}

// NewClientContext new client context object ,id must be uniq
func NewClientContext(id int64, conn net.Conn) *ClientContext {
	now := time.Now()
	cli := &ClientContext{
		ID:            id,
		Created:       now,
		Updated:       now,
		RemoteAddr:    conn.RemoteAddr().String(),
		Authenticated: false,
		Done:          make(chan struct{}),
		Close:         conn.Close,
	}
	return cli
}

// ServerContext is the runtime context of the server
type ServerContext struct {
	RequirePass  string
	Store        *db.Store
	Broker       *db.Broker
	PubsubBuffer int // messages buffered per subscriber
	Clients      sync.Map
	StartAt      time.Time
}

// Context combines the client and server context
type Context struct {
	context.Context
	Client *ClientContext
	Server *ServerContext
}

// New a context
func New(c *ClientContext, s *ServerContext) *Context {
	return &Context{Context: context.Background(), Client: c, Server: s}
}

// CancelFunc tells an operation to abandon its work
type CancelFunc context.CancelFunc

// WithCancel returns a copy of parent with a new Done channel
func WithCancel(parent *Context) (*Context, CancelFunc) {
	ctx := *parent
	child, cancel := context.WithCancel(parent.Context)
	ctx.Context = child
	return &ctx, CancelFunc(cancel)
}
