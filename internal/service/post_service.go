package service

import (
	"strings"
	"time"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"
)

// PostService 文章业务服务
type PostService struct {
	repo repository.PostRepository
	now  func() time.Time
}

// NewPostService 创建文章服务
func NewPostService(repo repository.PostRepository) *PostService {
	return &PostService{repo: repo, now: time.Now}
}

// PostInput 创建/更新文章输入
type PostInput struct {
	Slug        string
	Title       string
	Summary     string
	Content     string
	Thumbnail   string
	Author      string
	Tags        []string
	IsPublished *bool
}

// CreateCommentInput 发表评论输入
type CreateCommentInput struct {
	Slug   string
	UserID uint
	Name   string
	Body   string
}

// ListPublic 获取公开文章列表
func (s *PostService) ListPublic(tag, search string, page, pageSize int) ([]models.Post, int64, error) {
	return s.repo.List(repository.PostListFilter{
		Page:          page,
		PageSize:      pageSize,
		Tag:           tag,
		Search:        search,
		OnlyPublished: true,
	})
}

// GetPublicBySlug 获取公开文章详情
func (s *PostService) GetPublicBySlug(slug string) (*models.Post, error) {
	post, err := s.repo.GetBySlug(strings.TrimSpace(slug), true)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// ListAdmin 获取后台文章列表
func (s *PostService) ListAdmin(search string, page, pageSize int) ([]models.Post, int64, error) {
	return s.repo.List(repository.PostListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   search,
	})
}

// GetAdminByID 获取后台文章详情
func (s *PostService) GetAdminByID(id uint) (*models.Post, error) {
	post, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// Create 创建文章
func (s *PostService) Create(input PostInput) (*models.Post, error) {
	if err := normalizePostInput(&input); err != nil {
		return nil, err
	}
	count, err := s.repo.CountBySlug(input.Slug, 0)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrPostSlugExists
	}

	post := &models.Post{Status: constants.PostStatusDraft}
	s.applyPostInput(post, input)
	if err := s.repo.Create(post); err != nil {
		return nil, err
	}
	return post, nil
}

// Update 更新文章
func (s *PostService) Update(id uint, input PostInput) (*models.Post, error) {
	if err := normalizePostInput(&input); err != nil {
		return nil, err
	}
	post, err := s.GetAdminByID(id)
	if err != nil {
		return nil, err
	}
	count, err := s.repo.CountBySlug(input.Slug, id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrPostSlugExists
	}

	s.applyPostInput(post, input)
	if err := s.repo.Update(post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete 删除文章
func (s *PostService) Delete(id uint) error {
	if _, err := s.GetAdminByID(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

// AddComment 对已发布文章发表评论
func (s *PostService) AddComment(input CreateCommentInput) (*models.PostComment, error) {
	body := strings.TrimSpace(input.Body)
	if body == "" {
		return nil, ErrCommentEmpty
	}
	post, err := s.GetPublicBySlug(input.Slug)
	if err != nil {
		return nil, err
	}
	comment := &models.PostComment{
		PostID:    post.ID,
		UserID:    input.UserID,
		Name:      strings.TrimSpace(input.Name),
		Body:      body,
		CreatedAt: s.now(),
	}
	if err := s.repo.CreateComment(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *PostService) applyPostInput(post *models.Post, input PostInput) {
	post.Slug = input.Slug
	post.Title = input.Title
	post.Summary = input.Summary
	post.Content = input.Content
	post.Thumbnail = input.Thumbnail
	post.Author = input.Author
	post.Tags = models.StringArray(input.Tags)
	if input.IsPublished == nil {
		return
	}
	if *input.IsPublished {
		if post.Status != constants.PostStatusPublished || post.PublishedAt == nil {
			now := s.now()
			post.PublishedAt = &now
		}
		post.Status = constants.PostStatusPublished
		return
	}
	post.Status = constants.PostStatusDraft
}

func normalizePostInput(input *PostInput) error {
	input.Slug = strings.ToLower(strings.TrimSpace(input.Slug))
	input.Title = strings.TrimSpace(input.Title)
	if input.Slug == "" || input.Title == "" {
		return ErrInvalidInput
	}
	tags := make([]string, 0, len(input.Tags))
	seen := make(map[string]struct{}, len(input.Tags))
	for _, tag := range input.Tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	input.Tags = tags
	return nil
}
