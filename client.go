package respd

import (
	"io"
	"net"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/distributedio/respd/command"
	"github.com/distributedio/respd/context"
	"github.com/distributedio/respd/db"
	"github.com/distributedio/respd/encoding/resp"
	"github.com/distributedio/respd/metrics"
)

// ErrNotCommand is replied to a value that is not an array of bulk strings
var ErrNotCommand = errors.New("ERR Protocol error: expected array of bulk strings")

// request is a value read from the connection, or the error that ended the reading
type request struct {
	value resp.Value
	err   error
}

type client struct {
	cliCtx  *context.ClientContext
	server  *Server
	conn    net.Conn
	exec    *command.Executor
	r       *resp.Reader
	limiter *rate.Limiter
}

func newClient(cliCtx *context.ClientContext, s *Server, exec *command.Executor) *client {
	limit := rate.Inf
	if s.conf.CommandRate > 0 {
		limit = rate.Limit(s.conf.CommandRate)
	}
	burst := s.conf.CommandBurst
	if burst < 1 {
		burst = 1
	}
	return &client{
		cliCtx:  cliCtx,
		server:  s,
		exec:    exec,
		limiter: rate.NewLimiter(limit, burst),
	}
}

// Write to conn and log error if needed
func (c *client) Write(p []byte) (int, error) {
	n, err := c.conn.Write(p)
	if err != nil {
		zap.L().Error("write net failed", zap.String("addr", c.cliCtx.RemoteAddr),
			zap.Int64("clientid", c.cliCtx.ID),
			zap.String("command", c.cliCtx.LastCmd),
			zap.Error(err))
		c.conn.Close()
	}
	return n, err
}

func (c *client) serve(conn net.Conn) error {
	c.conn = conn
	c.r = resp.NewReader(conn, c.server.decoder)

	rootCtx, rootCancel := context.WithCancel(context.New(c.cliCtx, c.server.servCtx))
	defer rootCancel()
	defer command.UnsubscribeAll(&command.Context{Context: rootCtx})

	// Use a separate goroutine to keep reading commands
	// then we can detect a closed connection as soon as possible.
	// It only works when the cmd channel is not blocked.
	// A read error is queued behind the values read before it.
	cmdc := make(chan request, 128)
	go func() {
		for {
			v, err := c.r.ReadValue()
			if err != nil {
				select {
				case cmdc <- request{err: err}:
				case <-rootCtx.Done():
				}
				return
			}
			metrics.GetMetrics().DecodedValuesCounterVec.WithLabelValues(v.Kind.String()).Inc()
			select {
			case cmdc <- request{value: v}:
			case <-rootCtx.Done():
				return
			}
		}
	}()

	for {
		// commands pipelined after QUIT are not run
		select {
		case <-c.cliCtx.Done:
			return c.conn.Close()
		default:
		}

		// nil until the client subscribes
		var msgc chan db.Message
		if c.cliCtx.Subscriber != nil {
			msgc = c.cliCtx.Subscriber.C
		}

		var req request
		select {
		case <-c.cliCtx.Done:
			return c.conn.Close()
		case msg := <-msgc:
			resp.ReplyValue(c, command.MessageValue(msg))
			continue
		case req = <-cmdc:
		}
		if req.err != nil {
			return c.readFailed(req.err)
		}
		v := req.value

		argv, ok := v.Strings()
		if !ok {
			metrics.GetMetrics().ProtocolErrorsCounterVec.WithLabelValues("notcommand").Inc()
			resp.ReplyError(c, ErrNotCommand.Error())
			continue
		}
		if len(argv) == 0 {
			continue
		}

		if err := c.limiter.Wait(rootCtx); err != nil {
			c.conn.Close()
			return errors.Wrap(err, "wait command rate")
		}

		c.cliCtx.Updated = time.Now()
		c.cliCtx.LastCmd = argv[0]

		ctx := &command.Context{
			Name:    argv[0],
			Args:    argv[1:],
			Out:     c,
			TraceID: GenerateTraceID(),
		}
		ctx.Context = rootCtx

		if env := zap.L().Check(zap.DebugLevel, "recv client command"); env != nil {
			env.Write(zap.String("addr", c.cliCtx.RemoteAddr),
				zap.Int64("clientid", c.cliCtx.ID),
				zap.String("traceid", ctx.TraceID),
				zap.String("command", ctx.Name))
		}
		c.exec.Execute(ctx)
	}
}

// readFailed closes the connection after a read error,
// a malformed value is answered before closing
func (c *client) readFailed(err error) error {
	defer c.conn.Close()
	if err == io.EOF {
		zap.L().Info("client closed connection", zap.String("addr", c.cliCtx.RemoteAddr),
			zap.Int64("clientid", c.cliCtx.ID))
		return nil
	}
	if resp.IsMalformed(err) {
		kind := resp.KindOf(err)
		metrics.GetMetrics().ProtocolErrorsCounterVec.WithLabelValues(kind.String()).Inc()
		zap.L().Warn("malformed request", zap.String("addr", c.cliCtx.RemoteAddr),
			zap.Int64("clientid", c.cliCtx.ID), zap.Error(err))
		resp.ReplyError(c, "ERR Protocol error: "+strings.TrimPrefix(err.Error(), "resp: "))
		return nil
	}
	return errors.Wrap(err, "read command")
}
