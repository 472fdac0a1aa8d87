package worker

import (
	"context"
	"errors"

	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/queue"

	"github.com/hibiken/asynq"
)

// Service asynq 任务消费进程
type Service struct {
	server *asynq.Server
	mux    *asynq.ServeMux
}

// NewService 队列未启用时返回错误
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	opt, serverCfg := queue.BuildServerConfig(cfg)
	return &Service{server: asynq.NewServer(opt, serverCfg), mux: mux}, nil
}

func (s *Service) Name() string { return "worker" }

// Start asynq.Server.Run 自己监听信号，这里改用 Start 由外层 ctx 控制生命周期
func (s *Service) Start(ctx context.Context) error {
	if err := s.server.Start(s.mux); err != nil {
		return err
	}
	<-ctx.Done()
	return nil
}

func (s *Service) Stop(context.Context) error {
	s.server.Shutdown()
	return nil
}
