package service

import (
	"strings"

	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"
)

// CategoryService 分类业务服务
type CategoryService struct {
	repo repository.CategoryRepository
}

// NewCategoryService 创建分类服务
func NewCategoryService(repo repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// CategoryInput 创建/更新分类输入
type CategoryInput struct {
	Slug        string
	Name        string
	Description string
	Image       string
	SortOrder   int
}

// List 获取分类列表
func (s *CategoryService) List() ([]models.Category, error) {
	return s.repo.List()
}

// Create 创建分类
func (s *CategoryService) Create(input CategoryInput) (*models.Category, error) {
	if err := normalizeCategoryInput(&input); err != nil {
		return nil, err
	}
	count, err := s.repo.CountBySlug(input.Slug, 0)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrCategorySlugExists
	}

	category := models.Category{
		Slug:        input.Slug,
		Name:        input.Name,
		Description: input.Description,
		Image:       input.Image,
		SortOrder:   input.SortOrder,
	}
	if err := s.repo.Create(&category); err != nil {
		return nil, err
	}
	return &category, nil
}

// Update 更新分类
func (s *CategoryService) Update(id uint, input CategoryInput) (*models.Category, error) {
	if err := normalizeCategoryInput(&input); err != nil {
		return nil, err
	}
	category, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	count, err := s.repo.CountBySlug(input.Slug, id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrCategorySlugExists
	}

	category.Slug = input.Slug
	category.Name = input.Name
	category.Description = input.Description
	category.Image = input.Image
	category.SortOrder = input.SortOrder

	if err := s.repo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete 删除分类，仍有商品引用时拒绝
func (s *CategoryService) Delete(id uint) error {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}

	count, err := s.repo.CountProducts(category.Slug)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}
	return s.repo.Delete(id)
}

func normalizeCategoryInput(input *CategoryInput) error {
	input.Slug = strings.ToLower(strings.TrimSpace(input.Slug))
	input.Name = strings.TrimSpace(input.Name)
	if input.Slug == "" || input.Name == "" {
		return ErrInvalidInput
	}
	return nil
}
