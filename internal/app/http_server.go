package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/storefront-next/internal/config"
)

// apiServer 店铺 REST API 的 HTTP 服务
type apiServer struct {
	srv *http.Server
}

func newAPIServer(cfg config.ServerConfig, handler http.Handler) *apiServer {
	return &apiServer{srv: &http.Server{
		Addr:              listenAddr(cfg),
		Handler:           handler,
		ReadHeaderTimeout: seconds(cfg.ReadHeaderTimeoutSeconds, 10*time.Second),
		ReadTimeout:       seconds(cfg.ReadTimeoutSeconds, 30*time.Second),
		WriteTimeout:      seconds(cfg.WriteTimeoutSeconds, time.Minute),
		IdleTimeout:       seconds(cfg.IdleTimeoutSeconds, 2*time.Minute),
	}}
}

func (s *apiServer) Name() string { return "api" }

func (s *apiServer) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.srv.Addr, err)
	}
	return s.serve(ln)
}

func (s *apiServer) serve(ln net.Listener) error {
	if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *apiServer) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func listenAddr(cfg config.ServerConfig) string {
	port := cfg.Port
	if port == "" {
		port = "8080"
	}
	return net.JoinHostPort(cfg.Host, port)
}

func seconds(value int, fallback time.Duration) time.Duration {
	if value <= 0 {
		return fallback
	}
	return time.Duration(value) * time.Second
}
