package service

import (
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"

	"gorm.io/gorm"
)

// WishlistService 收藏夹服务
type WishlistService struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
}

// NewWishlistService 创建收藏夹服务
func NewWishlistService(wishlistRepo repository.WishlistRepository, productRepo repository.ProductRepository) *WishlistService {
	return &WishlistService{wishlistRepo: wishlistRepo, productRepo: productRepo}
}

// Toggle 未收藏则加入，已收藏则移除，返回操作后是否处于收藏状态
func (s *WishlistService) Toggle(userID, productID uint) (bool, error) {
	added := false
	err := s.wishlistRepo.Transaction(func(tx *gorm.DB) error {
		wishlistRepo := s.wishlistRepo.WithTx(tx)
		exists, err := wishlistRepo.Exists(userID, productID)
		if err != nil {
			return err
		}
		if exists {
			return wishlistRepo.Remove(userID, productID)
		}
		product, err := s.productRepo.WithTx(tx).GetByID(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return ErrProductNotFound
		}
		added = true
		return wishlistRepo.Add(userID, productID)
	})
	if err != nil {
		return false, err
	}
	return added, nil
}

// List 用户收藏的商品
func (s *WishlistService) List(userID uint) ([]models.Product, error) {
	items, err := s.wishlistRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	products := make([]models.Product, 0, len(items))
	for _, item := range items {
		if item.Product.ID == 0 {
			continue
		}
		products = append(products, item.Product)
	}
	return products, nil
}
