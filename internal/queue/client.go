package queue

import (
	"errors"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/constants"

	"github.com/hibiken/asynq"
)

// 队列名
const (
	DefaultQueue  = constants.QueueDefault
	CriticalQueue = constants.QueueCritical
)

const (
	defaultConcurrency   = 10
	dealInvalidateWindow = 30 * time.Second
)

// Client 任务投递，队列未启用时所有投递都是空操作
type Client struct {
	client *asynq.Client
}

// NewClient cfg 为空或未启用时返回空操作客户端
func NewClient(cfg *config.QueueConfig) (*Client, error) {
	if cfg == nil || !cfg.Enabled {
		return &Client{}, nil
	}
	return &Client{client: asynq.NewClient(buildRedisOpt(cfg))}, nil
}

func (c *Client) Enabled() bool {
	return c != nil && c.client != nil
}

func (c *Client) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}

// EnqueueOrderTimeoutCancel 订单到期时关闭，重复投递同一订单视为成功
func (c *Client) EnqueueOrderTimeoutCancel(payload OrderTimeoutCancelPayload, delay time.Duration) error {
	if !c.Enabled() {
		return nil
	}
	task, err := NewOrderTimeoutCancelTask(payload)
	if err != nil {
		return err
	}
	return c.enqueue(task,
		asynq.Queue(CriticalQueue),
		asynq.ProcessIn(max(delay, 0)),
		asynq.TaskID(orderTimeoutTaskID(payload.OrderID)),
	)
}

// EnqueueDealCacheInvalidate 窗口内多次变更合并成一次重建
func (c *Client) EnqueueDealCacheInvalidate(payload DealCacheInvalidatePayload) error {
	if !c.Enabled() {
		return nil
	}
	task, err := NewDealCacheInvalidateTask(payload)
	if err != nil {
		return err
	}
	return c.enqueue(task,
		asynq.Queue(DefaultQueue),
		asynq.MaxRetry(5),
		asynq.Unique(dealInvalidateWindow),
	)
}

func (c *Client) enqueue(task *asynq.Task, opts ...asynq.Option) error {
	_, err := c.client.Enqueue(task, opts...)
	if errors.Is(err, asynq.ErrTaskIDConflict) || errors.Is(err, asynq.ErrDuplicateTask) {
		return nil
	}
	return err
}

// BuildServerConfig worker 端连接与并发配置
func BuildServerConfig(cfg *config.QueueConfig) (asynq.RedisClientOpt, asynq.Config) {
	serverCfg := asynq.Config{
		Concurrency: defaultConcurrency,
		Queues:      map[string]int{CriticalQueue: 1, DefaultQueue: 1},
	}
	if cfg != nil && cfg.Concurrency > 0 {
		serverCfg.Concurrency = cfg.Concurrency
	}
	if cfg != nil && len(cfg.Queues) > 0 {
		serverCfg.Queues = cfg.Queues
	}
	return buildRedisOpt(cfg), serverCfg
}

func buildRedisOpt(cfg *config.QueueConfig) asynq.RedisClientOpt {
	opt := asynq.RedisClientOpt{Addr: "127.0.0.1:6379"}
	if cfg == nil {
		return opt
	}
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	opt.Addr = net.JoinHostPort(host, strconv.Itoa(port))
	opt.Password = cfg.Password
	opt.DB = cfg.DB
	return opt
}
