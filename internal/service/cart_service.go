package service

import (
	"time"

	"github.com/storefront-next/internal/cart"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CartService 购物车服务
// 每次变更都是一个事务内的读取、合并、写回；两个并发事务之间可能丢失更新，未加行锁。
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// CartProductSummary 购物车行中的商品摘要
type CartProductSummary struct {
	ID           uint         `json:"id"`
	Slug         string       `json:"slug"`
	Name         string       `json:"name"`
	Image        string       `json:"image"`
	Price        models.Money `json:"price"`
	CountInStock int          `json:"count_in_stock"`
}

// CartLineView 购物车行响应
type CartLineView struct {
	ID        uint               `json:"id"`
	ProductID uint               `json:"product_id"`
	Product   CartProductSummary `json:"product"`
	Variant   models.Attributes  `json:"variant"`
	Quantity  int                `json:"quantity"`
	UnitPrice models.Money       `json:"unit_price"`
	LineTotal models.Money       `json:"line_total"`
}

// CartView 购物车响应
type CartView struct {
	Items     []CartLineView `json:"items"`
	ItemCount int            `json:"item_count"`
	Subtotal  models.Money   `json:"subtotal"`
}

// AddCartItemInput 加购输入
type AddCartItemInput struct {
	UserID    uint
	ProductID uint
	Quantity  int
	Variant   map[string]string
}

// Get 获取用户购物车
func (s *CartService) Get(userID uint) (*CartView, error) {
	items, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	return buildCartView(items), nil
}

// AddItem 加入购物车，相同商品与规格合并数量
func (s *CartService) AddItem(input AddCartItemInput) (*CartView, error) {
	if input.Quantity < 1 {
		return nil, ErrCartInvalidQuantity
	}
	err := s.cartRepo.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		product, err := s.loadAvailableProduct(tx, input.ProductID)
		if err != nil {
			return err
		}
		items, err := cartRepo.ListByUser(input.UserID)
		if err != nil {
			return err
		}
		result, err := cart.Add(toCartLines(items), cart.Incoming{
			ProductID: input.ProductID,
			Quantity:  input.Quantity,
			Variant:   cart.Variant(input.Variant),
		}, stockOf(product))
		if err != nil {
			return err
		}

		line := result.Line()
		now := time.Now()
		if result.Merged {
			return cartRepo.UpdateLine(&models.CartItem{
				ID:        line.ID,
				UserID:    input.UserID,
				Quantity:  line.Quantity,
				UnitPrice: models.NewMoneyFromDecimal(line.UnitPrice),
				UpdatedAt: now,
			})
		}
		return cartRepo.Create(&models.CartItem{
			UserID:     input.UserID,
			ProductID:  line.ProductID,
			VariantKey: line.Variant.Key(),
			Variant:    models.Attributes(line.Variant),
			Quantity:   line.Quantity,
			UnitPrice:  models.NewMoneyFromDecimal(line.UnitPrice),
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	})
	if err != nil {
		return nil, err
	}
	logger.Debugw("cart_item_added", "user_id", input.UserID, "product_id", input.ProductID, "quantity", input.Quantity)
	return s.Get(input.UserID)
}

// UpdateQuantity 设置购物车行数量
func (s *CartService) UpdateQuantity(userID, itemID uint, quantity int) (*CartView, error) {
	err := s.cartRepo.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		items, err := cartRepo.ListByUser(userID)
		if err != nil {
			return err
		}
		lines := toCartLines(items)
		current, ok := cart.Find(lines, itemID)
		if !ok {
			return ErrCartItemNotFound
		}
		if quantity < 1 {
			return ErrCartInvalidQuantity
		}
		product, err := s.loadAvailableProduct(tx, current.ProductID)
		if err != nil {
			return err
		}
		result, err := cart.SetQuantity(lines, itemID, quantity, stockOf(product))
		if err != nil {
			return err
		}
		line := result.Line()
		return cartRepo.UpdateLine(&models.CartItem{
			ID:        line.ID,
			UserID:    userID,
			Quantity:  line.Quantity,
			UnitPrice: models.NewMoneyFromDecimal(line.UnitPrice),
			UpdatedAt: time.Now(),
		})
	})
	if err != nil {
		return nil, err
	}
	return s.Get(userID)
}

// RemoveItem 删除购物车行
func (s *CartService) RemoveItem(userID, itemID uint) (*CartView, error) {
	affected, err := s.cartRepo.DeleteByUserAndID(userID, itemID)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrCartItemNotFound
	}
	return s.Get(userID)
}

// Clear 清空购物车
func (s *CartService) Clear(userID uint) error {
	return s.cartRepo.ClearByUser(userID)
}

func (s *CartService) loadAvailableProduct(tx *gorm.DB, productID uint) (*models.Product, error) {
	if productID == 0 {
		return nil, ErrProductNotFound
	}
	product, err := s.productRepo.WithTx(tx).GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if !product.IsActive {
		return nil, ErrProductNotAvailable
	}
	return product, nil
}

func stockOf(product *models.Product) cart.Stock {
	return cart.Stock{Available: product.CountInStock, Price: product.Price.Decimal}
}

func toCartLines(items []models.CartItem) []cart.Line {
	lines := make([]cart.Line, 0, len(items))
	for _, item := range items {
		lines = append(lines, cart.Line{
			ID:        item.ID,
			ProductID: item.ProductID,
			Variant:   cart.Variant(item.Variant),
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.Decimal,
		})
	}
	return lines
}

func buildCartView(items []models.CartItem) *CartView {
	view := &CartView{Items: make([]CartLineView, 0, len(items))}
	subtotal := decimal.Zero
	for _, item := range items {
		lineTotal := item.UnitPrice.Times(item.Quantity)
		subtotal = subtotal.Add(lineTotal.Decimal)
		view.ItemCount += item.Quantity
		view.Items = append(view.Items, CartLineView{
			ID:        item.ID,
			ProductID: item.ProductID,
			Product: CartProductSummary{
				ID:           item.Product.ID,
				Slug:         item.Product.Slug,
				Name:         item.Product.Name,
				Image:        item.Product.PrimaryImage(),
				Price:        item.Product.Price,
				CountInStock: item.Product.CountInStock,
			},
			Variant:   item.Variant,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: lineTotal,
		})
	}
	view.Subtotal = models.NewMoneyFromDecimal(subtotal)
	return view
}
