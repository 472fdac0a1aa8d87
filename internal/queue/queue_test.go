package queue

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/storefront-next/internal/config"
)

func TestDisabledClientIsNoop(t *testing.T) {
	client, err := NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if client.Enabled() {
		t.Fatalf("client should be disabled")
	}
	if err := client.EnqueueOrderTimeoutCancel(OrderTimeoutCancelPayload{OrderID: 1}, time.Minute); err != nil {
		t.Fatalf("disabled enqueue should be noop: %v", err)
	}
	if err := client.EnqueueDealCacheInvalidate(DealCacheInvalidatePayload{DealID: 1}); err != nil {
		t.Fatalf("disabled enqueue should be noop: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
}

func TestTaskPayloadRoundTrip(t *testing.T) {
	task, err := NewOrderTimeoutCancelTask(OrderTimeoutCancelPayload{OrderID: 42})
	if err != nil {
		t.Fatalf("new task failed: %v", err)
	}
	if task.Type() != TaskOrderTimeoutCancel {
		t.Fatalf("unexpected task type: %s", task.Type())
	}
	var payload OrderTimeoutCancelPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil || payload.OrderID != 42 {
		t.Fatalf("unexpected payload: %+v err=%v", payload, err)
	}
}

func TestBuildServerConfigDefaults(t *testing.T) {
	opt, cfg := BuildServerConfig(&config.QueueConfig{Host: " redis ", Port: 6380, DB: 2})
	if opt.Addr != "redis:6380" || opt.DB != 2 {
		t.Fatalf("unexpected redis opt: %+v", opt)
	}
	if cfg.Concurrency != 10 {
		t.Fatalf("unexpected concurrency: %d", cfg.Concurrency)
	}
	if cfg.Queues[DefaultQueue] != 1 || cfg.Queues[CriticalQueue] != 1 {
		t.Fatalf("unexpected queues: %+v", cfg.Queues)
	}
}

func TestOrderTimeoutTaskID(t *testing.T) {
	if got := orderTimeoutTaskID(17); got != TaskOrderTimeoutCancel+":17" {
		t.Fatalf("unexpected task id: %s", got)
	}
}

func TestBuildRedisOptNilConfig(t *testing.T) {
	if opt := buildRedisOpt(nil); opt.Addr != "127.0.0.1:6379" || opt.DB != 0 {
		t.Fatalf("unexpected default opt: %+v", opt)
	}
}
