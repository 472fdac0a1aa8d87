package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/provider"
	"github.com/storefront-next/internal/router"
	"github.com/storefront-next/internal/worker"

	"go.uber.org/zap"
)

// 启动模式
const (
	ModeAll    = "all"
	ModeAPI    = "api"
	ModeWorker = "worker"
)

const defaultShutdownTimeout = 10 * time.Second

// Options 启动参数
type Options struct {
	Config  *config.Config
	Logger  *zap.SugaredLogger
	Signals []os.Signal
	Mode    string
}

// Run 按模式组装 API 与 worker 并阻塞运行，收到信号后优雅退出
func Run(opts Options) error {
	if opts.Config == nil {
		return errors.New("config is nil")
	}
	if opts.Logger == nil {
		opts.Logger = logger.S()
	}
	if opts.Mode == "" {
		opts.Mode = ModeAll
	}

	services, err := buildServices(opts.Config, opts.Mode, provider.NewContainer(opts.Config))
	if err != nil {
		return err
	}

	ctx := context.Background()
	if len(opts.Signals) > 0 {
		var stop context.CancelFunc
		ctx, stop = signal.NotifyContext(ctx, opts.Signals...)
		defer stop()
	}

	opts.Logger.Infow("app_start", "addr", listenAddr(opts.Config.Server), "mode", opts.Mode)
	shutdown := seconds(opts.Config.Server.ShutdownTimeoutSeconds, defaultShutdownTimeout)
	return NewRunner(opts.Logger, shutdown, services...).Run(ctx)
}

// buildServices 队列未启用时 all 模式不起 asynq，只保留订单超时扫描
func buildServices(cfg *config.Config, mode string, container *provider.Container) ([]Service, error) {
	withAPI := mode == ModeAll || mode == ModeAPI
	withWorker := mode == ModeWorker || (mode == ModeAll && cfg.Queue.Enabled)
	if !withAPI && mode != ModeWorker {
		return nil, fmt.Errorf("unknown mode %q", mode)
	}
	if mode == ModeAll && !cfg.Queue.Enabled {
		logger.Warnw("app_worker_skipped_queue_disabled")
	}

	var services []Service
	if withAPI {
		services = append(services, newAPIServer(cfg.Server, router.SetupRouter(cfg, container)))
	}
	if withWorker {
		svc, err := worker.NewService(&cfg.Queue, worker.NewConsumer(container))
		if err != nil {
			return nil, fmt.Errorf("init worker: %w", err)
		}
		services = append(services, svc)
	}
	if mode != ModeAPI {
		services = append(services, worker.NewOrderSweeper(container.OrderService))
	}
	return services, nil
}
