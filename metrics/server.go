package metrics

import (
	"context"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/distributedio/respd/conf"
)

//Server status server
//export go pprof ane promtheus monitor
type Server struct {
	statusServer *http.Server
	addr         string
}

//NewServer creat status server
func NewServer(config *conf.Status) *Server {
	s := &Server{
		addr:         config.Listen,
		statusServer: &http.Server{Handler: http.DefaultServeMux},
	}
	return s
}

// Serve accepts incoming connections on the Listener l
func (s *Server) Serve(lis net.Listener) error {
	zap.L().Info("status server start", zap.String("addr", lis.Addr().String()))
	err := s.statusServer.Serve(lis)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

//Stop Close serve fd
func (s *Server) Stop() error {
	zap.L().Info("status server stop", zap.String("addr", s.addr))
	if err := s.statusServer.Close(); err != nil {
		zap.L().Error("status server stop failed", zap.Error(err))
		return err
	}
	return nil
}

//GracefulStop serve graceful stop
func (s *Server) GracefulStop() error {
	zap.L().Info("status serve graceful stop", zap.String("addr", s.addr))
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.statusServer.Shutdown(ctx); err != nil {
		zap.L().Error("status server graceful stop failed", zap.Error(err))
		return err
	}
	return nil
}

//ListenAndServe start the service by address
func (s *Server) ListenAndServe(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		zap.L().Error("status server listen failed", zap.String("addr", addr), zap.Error(err))
		return err
	}
	return s.Serve(lis)
}
