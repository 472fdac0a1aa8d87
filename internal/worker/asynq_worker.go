package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/provider"
	"github.com/storefront-next/internal/queue"
	"github.com/storefront-next/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderTimeoutCancel, c.handleOrderTimeoutCancel)
	mux.HandleFunc(queue.TaskDealCacheInvalidate, c.handleDealCacheInvalidate)
}

// decodePayload 载荷损坏时重试也不会成功，标记 SkipRetry 直接进归档
func decodePayload[T any](task *asynq.Task) (T, error) {
	var payload T
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_payload_unmarshal_failed", "task", task.Type(), "error", err)
		return payload, fmt.Errorf("decode %s payload: %v: %w", task.Type(), err, asynq.SkipRetry)
	}
	return payload, nil
}

// handleOrderTimeoutCancel 超时未支付订单取消并回补库存，订单已不在待支付状态时视为完成
func (c *Consumer) handleOrderTimeoutCancel(_ context.Context, task *asynq.Task) error {
	payload, err := decodePayload[queue.OrderTimeoutCancelPayload](task)
	if err != nil {
		return err
	}
	if payload.OrderID == 0 || c.OrderService == nil {
		logger.Debugw("worker_order_timeout_cancel_skip", "order_id", payload.OrderID, "service_nil", c.OrderService == nil)
		return nil
	}

	order, err := c.OrderService.CancelExpiredOrder(payload.OrderID)
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		logger.Debugw("worker_order_timeout_cancel_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	case err != nil:
		logger.Warnw("worker_order_timeout_cancel_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	logger.Debugw("worker_order_timeout_cancel_done", "order_id", payload.OrderID, "status", order.Status)
	return nil
}

func (c *Consumer) handleDealCacheInvalidate(ctx context.Context, task *asynq.Task) error {
	payload, err := decodePayload[queue.DealCacheInvalidatePayload](task)
	if err != nil {
		return err
	}
	if c.DealService == nil {
		logger.Warnw("worker_deal_cache_invalidate_skip", "deal_id", payload.DealID)
		return nil
	}
	if err := c.DealService.RefreshCache(ctx); err != nil {
		logger.Warnw("worker_deal_cache_invalidate_failed", "deal_id", payload.DealID, "reason", payload.Reason, "error", err)
		return err
	}
	logger.Infow("worker_deal_cache_invalidated", "deal_id", payload.DealID, "reason", payload.Reason)
	return nil
}
