package service

import (
	"strings"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"

	"gorm.io/gorm"
)

// ReviewService 商品评价服务
type ReviewService struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
}

// NewReviewService 创建评价服务
func NewReviewService(reviewRepo repository.ReviewRepository, productRepo repository.ProductRepository) *ReviewService {
	return &ReviewService{reviewRepo: reviewRepo, productRepo: productRepo}
}

// CreateReviewInput 创建评价输入
type CreateReviewInput struct {
	ProductID uint
	UserID    uint
	Name      string
	Rating    int
	Comment   string
}

// Create 创建评价并在同一事务内重算商品评分
func (s *ReviewService) Create(input CreateReviewInput) (*models.Review, error) {
	if input.Rating < constants.ReviewRatingMin || input.Rating > constants.ReviewRatingMax {
		return nil, ErrInvalidRating
	}
	review := &models.Review{
		ProductID: input.ProductID,
		UserID:    input.UserID,
		Name:      strings.TrimSpace(input.Name),
		Rating:    input.Rating,
		Comment:   strings.TrimSpace(input.Comment),
	}
	err := s.productRepo.Transaction(func(tx *gorm.DB) error {
		productRepo := s.productRepo.WithTx(tx)
		reviewRepo := s.reviewRepo.WithTx(tx)

		product, err := productRepo.GetByID(input.ProductID)
		if err != nil {
			return err
		}
		if product == nil || !product.IsActive {
			return ErrProductNotFound
		}
		exists, err := reviewRepo.ExistsByProductAndUser(input.ProductID, input.UserID)
		if err != nil {
			return err
		}
		if exists {
			return ErrReviewExists
		}
		if err := reviewRepo.Create(review); err != nil {
			return err
		}
		agg, err := reviewRepo.Aggregate(input.ProductID)
		if err != nil {
			return err
		}
		return productRepo.UpdateRating(input.ProductID, agg.Average, int(agg.Count))
	})
	if err != nil {
		return nil, err
	}
	logger.Infow("review_created", "product_id", input.ProductID, "user_id", input.UserID, "rating", input.Rating)
	return review, nil
}

// ListByProduct 商品评价列表
func (s *ReviewService) ListByProduct(productID uint) ([]models.Review, error) {
	return s.reviewRepo.ListByProduct(productID)
}
