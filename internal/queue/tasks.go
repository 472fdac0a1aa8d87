package queue

import (
	"encoding/json"
	"fmt"

	"github.com/storefront-next/internal/constants"

	"github.com/hibiken/asynq"
)

// 任务类型
const (
	TaskOrderTimeoutCancel  = constants.TaskOrderTimeoutCancel
	TaskDealCacheInvalidate = constants.TaskDealCacheInvalidate
)

// OrderTimeoutCancelPayload 待支付订单到期后关闭
type OrderTimeoutCancelPayload struct {
	OrderID uint `json:"order_id"`
}

// DealCacheInvalidatePayload 活动变更后重建缓存
type DealCacheInvalidatePayload struct {
	DealID uint   `json:"deal_id"`
	Reason string `json:"reason"`
}

func NewOrderTimeoutCancelTask(payload OrderTimeoutCancelPayload) (*asynq.Task, error) {
	return newJSONTask(TaskOrderTimeoutCancel, payload)
}

func NewDealCacheInvalidateTask(payload DealCacheInvalidatePayload) (*asynq.Task, error) {
	return newJSONTask(TaskDealCacheInvalidate, payload)
}

// orderTimeoutTaskID 同一订单只排一个超时任务
func orderTimeoutTaskID(orderID uint) string {
	return fmt.Sprintf("%s:%d", TaskOrderTimeoutCancel, orderID)
}

func newJSONTask(taskType string, payload interface{}) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", taskType, err)
	}
	return asynq.NewTask(taskType, body), nil
}
