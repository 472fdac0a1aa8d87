package repository

import (
	"strings"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/models"

	"gorm.io/gorm"
)

// PostRepository 文章与评论数据访问接口
type PostRepository interface {
	List(filter PostListFilter) ([]models.Post, int64, error)
	GetBySlug(slug string, onlyPublished bool) (*models.Post, error)
	GetByID(id uint) (*models.Post, error)
	Create(post *models.Post) error
	Update(post *models.Post) error
	Delete(id uint) error
	CountBySlug(slug string, excludeID uint) (int64, error)
	CreateComment(comment *models.PostComment) error
}

// GormPostRepository GORM 实现
type GormPostRepository struct {
	db *gorm.DB
}

// NewPostRepository 创建文章仓库
func NewPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

// List 文章列表
func (r *GormPostRepository) List(filter PostListFilter) ([]models.Post, int64, error) {
	query := r.db.Model(&models.Post{})
	if filter.OnlyPublished {
		query = query.Where("status = ?", constants.PostStatusPublished)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		condition, argCount := buildLikeCondition(r.db, []string{"title", "summary"})
		query = query.Where(condition, repeatLikeArgs(containsPattern(search), argCount)...)
	}
	if tag := strings.TrimSpace(filter.Tag); tag != "" {
		// tags 以 JSON 数组文本存储，按带引号的元素做子串匹配
		query = query.Where("tags LIKE ?", containsPattern(`"`+tag+`"`))
	}
	var posts []models.Post
	total, err := countAndFind(query, filter.Page, filter.PageSize, []string{"published_at DESC", "id DESC"}, &posts)
	if err != nil {
		return nil, 0, err
	}
	if posts == nil {
		posts = []models.Post{}
	}
	return posts, total, nil
}

// GetBySlug 根据 slug 获取文章（附带评论）
func (r *GormPostRepository) GetBySlug(slug string, onlyPublished bool) (*models.Post, error) {
	query := r.db.Preload("Comments", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	}).Where("slug = ?", slug)
	if onlyPublished {
		query = query.Where("status = ?", constants.PostStatusPublished)
	}
	return firstOrNil[models.Post](query)
}

// GetByID 根据 ID 获取文章
func (r *GormPostRepository) GetByID(id uint) (*models.Post, error) {
	return firstOrNil[models.Post](r.db, id)
}

// Create 创建文章
func (r *GormPostRepository) Create(post *models.Post) error {
	return r.db.Create(post).Error
}

// Update 更新文章
func (r *GormPostRepository) Update(post *models.Post) error {
	return r.db.Omit("Comments").Save(post).Error
}

// Delete 删除文章
func (r *GormPostRepository) Delete(id uint) error {
	return r.db.Delete(&models.Post{}, id).Error
}

// CountBySlug 统计 slug 数量
func (r *GormPostRepository) CountBySlug(slug string, excludeID uint) (int64, error) {
	return countSlug[models.Post](r.db, slug, excludeID)
}

// CreateComment 创建评论
func (r *GormPostRepository) CreateComment(comment *models.PostComment) error {
	return r.db.Create(comment).Error
}
