package app

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Service 可由 Runner 托管的长驻服务
type Service interface {
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// Runner 并行运行一组服务，任一服务出错或上层 ctx 结束时全部停止
type Runner struct {
	services    []Service
	logger      *zap.SugaredLogger
	stopTimeout time.Duration
}

// NewRunner 创建运行器，logger 为空时不输出
func NewRunner(logger *zap.SugaredLogger, stopTimeout time.Duration, services ...Service) *Runner {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if stopTimeout <= 0 {
		stopTimeout = defaultShutdownTimeout
	}
	return &Runner{services: services, logger: logger, stopTimeout: stopTimeout}
}

// Run 阻塞直到所有服务退出，ctx 取消视为正常退出
func (r *Runner) Run(ctx context.Context) error {
	if r == nil || len(r.services) == 0 {
		return errors.New("no services to run")
	}
	for _, svc := range r.services {
		if svc == nil {
			return errors.New("service is nil")
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, svc := range r.services {
		svc := svc
		g.Go(func() error {
			r.logger.Infow("service_start", "service", svc.Name())
			err := svc.Start(gctx)
			r.logger.Infow("service_exit", "service", svc.Name(), "error", err)
			return err
		})
	}

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-gctx.Done()
		r.stopAll()
	}()

	err := g.Wait()
	<-stopped
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (r *Runner) stopAll() {
	ctx, cancel := context.WithTimeout(context.Background(), r.stopTimeout)
	defer cancel()
	for i := len(r.services) - 1; i >= 0; i-- {
		svc := r.services[i]
		if err := svc.Stop(ctx); err != nil {
			r.logger.Errorw("service_stop_failed", "service", svc.Name(), "error", err)
		}
	}
}
