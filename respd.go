package respd

import (
	stdctx "context"
	"net"
	"sync"
	"time"

	"github.com/shafreeck/retry"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/distributedio/respd/command"
	"github.com/distributedio/respd/conf"
	"github.com/distributedio/respd/context"
	"github.com/distributedio/respd/encoding/resp"
	"github.com/distributedio/respd/metrics"
)

const maxAcceptDelay = time.Second

//Server implements the redis prototol server
type Server struct {
	servCtx *context.ServerContext
	conf    *conf.Server
	decoder *resp.Decoder
	mu      sync.Mutex
	lis     net.Listener
	idgen   func() int64
	sem     *semaphore.Weighted
	retry   *retry.Retry
}

//New a server instance
func New(ctx *context.ServerContext, server *conf.Server, codec *conf.Codec) *Server {
	if ctx.PubsubBuffer == 0 {
		ctx.PubsubBuffer = server.PubsubBuffer
	}
	// id generator starts from 1(the first client's id is 2, the same as redis)
	return &Server{
		servCtx: ctx,
		conf:    server,
		decoder: resp.NewDecoder(codec.Limits()),
		idgen:   GetClientID(),
		sem:     semaphore.NewWeighted(server.MaxConnection),
		retry: retry.New(retry.WithBaseDelay(5*time.Millisecond),
			retry.WithBackoff(func(last time.Duration) time.Duration {
				if last *= 2; last > maxAcceptDelay {
					last = maxAcceptDelay
				}
				return last
			})),
	}
}

//Serve the redis requests
func (s *Server) Serve(lis net.Listener) error {
	zap.L().Info("respd server start", zap.String("addr", lis.Addr().String()))
	s.servCtx.StartAt = time.Now()
	s.mu.Lock()
	s.lis = lis
	s.mu.Unlock()
	for {
		conn, err := s.accept(lis)
		if err != nil {
			zap.L().Error("server accept failed", zap.String("addr", lis.Addr().String()), zap.Error(err))
			return err
		}

		if !s.sem.TryAcquire(1) {
			metrics.GetMetrics().ConnectionRejectedCounter.Inc()
			zap.L().Warn("max number of clients reached", zap.String("addr", conn.RemoteAddr().String()),
				zap.Int64("max", s.conf.MaxConnection))
			resp.ReplyError(conn, "ERR max number of clients reached")
			conn.Close()
			continue
		}

		cliCtx := context.NewClientContext(s.idgen(), conn)
		s.servCtx.Clients.Store(cliCtx.ID, cliCtx)

		cli := newClient(cliCtx, s, command.NewExecutor())

		zap.L().Info("recv connection", zap.String("addr", cliCtx.RemoteAddr),
			zap.Int64("clientid", cliCtx.ID))

		go func(cli *client, conn net.Conn) {
			defer s.sem.Release(1)
			metrics.GetMetrics().ConnectionOnlineGauge.Inc()
			if err := cli.serve(conn); err != nil {
				zap.L().Error("serve conn failed", zap.String("addr", cli.cliCtx.RemoteAddr),
					zap.Int64("clientid", cli.cliCtx.ID), zap.Error(err))
			}
			metrics.GetMetrics().ConnectionOnlineGauge.Dec()
			s.servCtx.Clients.Delete(cli.cliCtx.ID)
		}(cli, conn)
	}
}

// accept retries temporary errors such as running out of file descriptors
func (s *Server) accept(lis net.Listener) (net.Conn, error) {
	var conn net.Conn
	err := s.retry.Ensure(stdctx.Background(), func() error {
		var err error
		conn, err = lis.Accept()
		if ne, ok := err.(net.Error); ok && ne.Temporary() {
			zap.L().Warn("accept temporary error", zap.String("addr", lis.Addr().String()), zap.Error(err))
			return retry.Retriable(err)
		}
		return err
	})
	return conn, err
}

// ListenAndServe serves on a specified address
func (s *Server) ListenAndServe(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(lis)
}

func (s *Server) listener() net.Listener {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lis
}

//Stop the server
func (s *Server) Stop() error {
	lis := s.listener()
	zap.L().Info("respd serve stop", zap.String("addr", lis.Addr().String()))
	return lis.Close()
}

//GracefulStop closes the listener and asks every client to finish
func (s *Server) GracefulStop() error {
	lis := s.listener()
	zap.L().Info("respd serve graceful", zap.String("addr", lis.Addr().String()))
	err := lis.Close()
	s.servCtx.Clients.Range(func(k, v interface{}) bool {
		v.(*context.ClientContext).Shutdown()
		return true
	})
	return err
}
