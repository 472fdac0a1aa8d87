package cache

import (
	"context"
	"time"

	"github.com/storefront-next/internal/models"
)

// 活动列表缓存种类
const (
	DealListAll       = "all"
	DealListFeatured  = "featured"
	DealListFlashSale = "flash"
)

var dealListKinds = []string{DealListAll, DealListFeatured, DealListFlashSale}

func dealListKey(kind string) string {
	return "deals:list:" + kind
}

// GetDealList 读取活动原始数据缓存
// 只缓存数据库行，是否进行中与剩余时间始终在读取时计算。
func (s *Store) GetDealList(ctx context.Context, kind string) ([]models.Deal, bool, error) {
	var deals []models.Deal
	hit, err := s.GetJSON(ctx, dealListKey(kind), &deals)
	if err != nil || !hit {
		return nil, hit, err
	}
	return deals, true, nil
}

// SetDealList 写入活动原始数据缓存
func (s *Store) SetDealList(ctx context.Context, kind string, deals []models.Deal, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.SetJSON(ctx, dealListKey(kind), deals, ttl)
}

// InvalidateDeals 清除全部活动列表缓存
func (s *Store) InvalidateDeals(ctx context.Context) error {
	keys := make([]string, 0, len(dealListKinds))
	for _, kind := range dealListKinds {
		keys = append(keys, dealListKey(kind))
	}
	return s.Del(ctx, keys...)
}
