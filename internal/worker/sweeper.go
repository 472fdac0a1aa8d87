package worker

import (
	"context"
	"sync"
	"time"

	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/service"
)

const (
	defaultSweepInterval = time.Minute
	defaultSweepBatch    = 100
)

// ExpiredOrderCanceler 批量关闭超时未支付订单
type ExpiredOrderCanceler interface {
	CancelExpiredOrders(limit int) (int, error)
}

// Sweeper 定时扫描超时订单，覆盖延迟任务丢失以及未启用队列的部署
type Sweeper struct {
	orders   ExpiredOrderCanceler
	interval time.Duration
	batch    int

	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewSweeper interval 非正数时按一分钟
func NewSweeper(orders ExpiredOrderCanceler, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	return &Sweeper{
		orders:   orders,
		interval: interval,
		batch:    defaultSweepBatch,
		stopCh:   make(chan struct{}),
	}
}

// NewOrderSweeper 从容器中取订单服务
func NewOrderSweeper(orders *service.OrderService) *Sweeper {
	if orders == nil {
		return NewSweeper(nil, defaultSweepInterval)
	}
	return NewSweeper(orders, defaultSweepInterval)
}

func (s *Sweeper) Name() string { return "order_sweeper" }

// Start 启动时先扫一轮，之后按间隔重复
func (s *Sweeper) Start(ctx context.Context) error {
	s.sweep()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.stopCh:
			return nil
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *Sweeper) Stop(context.Context) error {
	s.stopOnce.Do(func() { close(s.stopCh) })
	return nil
}

// sweep 单批最多 batch 条，积压时剩余的留给下一轮
func (s *Sweeper) sweep() int {
	if s.orders == nil {
		return 0
	}
	canceled, err := s.orders.CancelExpiredOrders(s.batch)
	if err != nil {
		logger.Warnw("worker_expired_order_sweep_failed", "error", err)
		return canceled
	}
	if canceled > 0 {
		logger.Infow("worker_expired_order_sweep_done", "canceled", canceled)
	}
	return canceled
}
