package admin

import (
	"bytes"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/storefront-next/internal/constants"
	handlershared "github.com/storefront-next/internal/http/handlers/shared"
	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/repository"
	"github.com/storefront-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// LoginRequest 登录请求
type LoginRequest struct {
	Username       string                              `json:"username" binding:"required"`
	Password       string                              `json:"password" binding:"required"`
	CaptchaPayload handlershared.CaptchaPayloadRequest `json:"captcha_payload"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token     string                 `json:"token"`
	User      map[string]interface{} `json:"user"`
	ExpiresAt string                 `json:"expires_at"`
}

// AdminLogin 管理员登录
func (h *Handler) AdminLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if captchaErr := h.CaptchaService.Verify(constants.CaptchaSceneLogin, req.CaptchaPayload.ToServicePayload()); captchaErr != nil {
		switch {
		case errors.Is(captchaErr, service.ErrCaptchaRequired):
			respondError(c, response.CodeBadRequest, "error.captcha_required", nil)
		case errors.Is(captchaErr, service.ErrCaptchaInvalid):
			respondError(c, response.CodeBadRequest, "error.captcha_invalid", nil)
		default:
			respondError(c, response.CodeInternal, "error.captcha_config_invalid", captchaErr)
		}
		return
	}

	admin, token, expiresAt, err := h.AuthService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(c, response.CodeUnauthorized, "error.invalid_credentials", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.login_failed", err)
		return
	}
	response.Success(c, LoginResponse{
		Token: token,
		User: map[string]interface{}{
			"id":       admin.ID,
			"username": admin.Username,
			"is_super": admin.IsSuper,
		},
		ExpiresAt: expiresAt.Format(time.RFC3339),
	})
}

// GetAdminMe 当前管理员信息与权限快照
func (h *Handler) GetAdminMe(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	admin, err := h.AdminRepo.GetByID(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.user_fetch_failed", err)
		return
	}
	if admin == nil {
		respondError(c, response.CodeNotFound, "error.admin_not_found", nil)
		return
	}

	roles, err := h.AuthzService.RolesOf(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_failed", err)
		return
	}
	policies, err := h.AuthzService.PoliciesOf(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_failed", err)
		return
	}

	response.Success(c, gin.H{
		"id":            admin.ID,
		"username":      admin.Username,
		"is_super":      admin.IsSuper,
		"last_login_at": admin.LastLoginAt,
		"roles":         roles,
		"policies":      policies,
	})
}

// UpdatePasswordRequest 修改密码请求
type UpdatePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// UpdateAdminPassword 修改管理员密码
func (h *Handler) UpdateAdminPassword(c *gin.Context) {
	id, ok := getAdminID(c)
	if !ok {
		return
	}

	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.AuthService.ChangePassword(c.Request.Context(), id, req.OldPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPassword):
			respondError(c, response.CodeBadRequest, "error.password_old_invalid", nil)
		case errors.Is(err, service.ErrWeakPassword):
			handlershared.RespondPasswordPolicyError(c, err)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "error.admin_not_found", nil)
		default:
			respondError(c, response.CodeInternal, "error.password_change_failed", err)
		}
		return
	}

	response.Success(c, nil)
}

// ====================  商品管理  ====================

// ProductRequest 创建/更新商品请求
type ProductRequest struct {
	Slug         string                 `json:"slug" binding:"required"`
	Name         string                 `json:"name" binding:"required"`
	Description  string                 `json:"description"`
	Brand        string                 `json:"brand"`
	Category     string                 `json:"category"`
	Images       []string               `json:"images"`
	Options      map[string]interface{} `json:"options"`
	Price        decimal.Decimal        `json:"price"`
	CountInStock int                    `json:"count_in_stock"`
	IsActive     *bool                  `json:"is_active"`
	IsFeatured   bool                   `json:"is_featured"`
}

func (r ProductRequest) toInput() service.ProductInput {
	return service.ProductInput{
		Slug:         r.Slug,
		Name:         r.Name,
		Description:  r.Description,
		Brand:        r.Brand,
		Category:     r.Category,
		Images:       r.Images,
		Options:      r.Options,
		Price:        r.Price,
		CountInStock: r.CountInStock,
		IsActive:     r.IsActive,
		IsFeatured:   r.IsFeatured,
	}
}

// GetAdminProducts 获取商品列表 (Admin)
func (h *Handler) GetAdminProducts(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)
	products, total, err := h.ProductService.ListAdmin(repository.ProductListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(c.Query("search")),
		Category: strings.TrimSpace(c.Query("category")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, products, handlershared.BuildPagination(page, pageSize, total))
}

// GetAdminProduct 获取商品详情 (Admin)
func (h *Handler) GetAdminProduct(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	product, err := h.ProductService.GetAdminByID(id)
	if err != nil {
		respondMapped(c, err, productErrorRules, "error.product_fetch_failed")
		return
	}
	response.Success(c, product)
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	product, err := h.ProductService.Create(req.toInput())
	if err != nil {
		respondMapped(c, err, productErrorRules, "error.product_save_failed")
		return
	}
	response.Success(c, product)
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	product, err := h.ProductService.Update(id, req.toInput())
	if err != nil {
		respondMapped(c, err, productErrorRules, "error.product_save_failed")
		return
	}
	response.Success(c, product)
}

// UpdateStockRequest 调整库存请求
type UpdateStockRequest struct {
	CountInStock *int `json:"count_in_stock" binding:"required"`
}

// UpdateProductStock 调整商品库存
func (h *Handler) UpdateProductStock(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req UpdateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	product, err := h.ProductService.UpdateStock(id, *req.CountInStock)
	if err != nil {
		respondMapped(c, err, productErrorRules, "error.product_save_failed")
		return
	}
	response.Success(c, product)
}

// DeleteProduct 删除商品（软删除）
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.ProductService.Delete(id); err != nil {
		respondMapped(c, err, productErrorRules, "error.product_delete_failed")
		return
	}
	response.Success(c, nil)
}

// ExportProducts 导出商品为 xlsx
func (h *Handler) ExportProducts(c *gin.Context) {
	var buf bytes.Buffer
	count, err := h.ExportService.WriteProductsXLSX(&buf)
	if err != nil {
		respondError(c, response.CodeInternal, "error.product_export_failed", err)
		return
	}
	filename := "products-" + time.Now().Format("20060102150405") + ".xlsx"
	requestLog(c).Infow("admin_products_exported", "count", count, "filename", filename)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ====================  分类管理  ====================

// CategoryRequest 创建/更新分类请求
type CategoryRequest struct {
	Slug        string `json:"slug" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Image       string `json:"image"`
	SortOrder   int    `json:"sort_order"`
}

func (r CategoryRequest) toInput() service.CategoryInput {
	return service.CategoryInput{
		Slug:        r.Slug,
		Name:        r.Name,
		Description: r.Description,
		Image:       r.Image,
		SortOrder:   r.SortOrder,
	}
}

// GetAdminCategories 获取分类列表 (Admin)
func (h *Handler) GetAdminCategories(c *gin.Context) {
	categories, err := h.CategoryService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "error.category_fetch_failed", err)
		return
	}
	response.Success(c, categories)
}

// CreateCategory 创建分类
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	category, err := h.CategoryService.Create(req.toInput())
	if err != nil {
		respondMapped(c, err, categoryErrorRules, "error.category_save_failed")
		return
	}
	response.Success(c, category)
}

// UpdateCategory 更新分类
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	category, err := h.CategoryService.Update(id, req.toInput())
	if err != nil {
		respondMapped(c, err, categoryErrorRules, "error.category_save_failed")
		return
	}
	response.Success(c, category)
}

// DeleteCategory 删除分类，仍有商品引用时拒绝
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.CategoryService.Delete(id); err != nil {
		respondMapped(c, err, categoryErrorRules, "error.category_delete_failed")
		return
	}
	response.Success(c, nil)
}

// ====================  文章管理  ====================

// PostRequest 创建/更新文章请求
type PostRequest struct {
	Slug        string   `json:"slug" binding:"required"`
	Title       string   `json:"title" binding:"required"`
	Summary     string   `json:"summary"`
	Content     string   `json:"content"`
	Thumbnail   string   `json:"thumbnail"`
	Author      string   `json:"author"`
	Tags        []string `json:"tags"`
	IsPublished *bool    `json:"is_published"`
}

func (r PostRequest) toInput() service.PostInput {
	return service.PostInput{
		Slug:        r.Slug,
		Title:       r.Title,
		Summary:     r.Summary,
		Content:     r.Content,
		Thumbnail:   r.Thumbnail,
		Author:      r.Author,
		Tags:        r.Tags,
		IsPublished: r.IsPublished,
	}
}

// GetAdminPosts 获取文章列表 (Admin)
func (h *Handler) GetAdminPosts(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)
	posts, total, err := h.PostService.ListAdmin(strings.TrimSpace(c.Query("search")), page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.post_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, posts, handlershared.BuildPagination(page, pageSize, total))
}

// GetAdminPost 获取文章详情 (Admin)
func (h *Handler) GetAdminPost(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	post, err := h.PostService.GetAdminByID(id)
	if err != nil {
		respondMapped(c, err, postErrorRules, "error.post_fetch_failed")
		return
	}
	response.Success(c, post)
}

// CreatePost 创建文章
func (h *Handler) CreatePost(c *gin.Context) {
	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	post, err := h.PostService.Create(req.toInput())
	if err != nil {
		respondMapped(c, err, postErrorRules, "error.post_save_failed")
		return
	}
	response.Success(c, post)
}

// UpdatePost 更新文章
func (h *Handler) UpdatePost(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	post, err := h.PostService.Update(id, req.toInput())
	if err != nil {
		respondMapped(c, err, postErrorRules, "error.post_save_failed")
		return
	}
	response.Success(c, post)
}

// DeletePost 删除文章（软删除）
func (h *Handler) DeletePost(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.PostService.Delete(id); err != nil {
		respondMapped(c, err, postErrorRules, "error.post_delete_failed")
		return
	}
	response.Success(c, nil)
}

// ====================  文件上传  ====================

// UploadFile 文件上传
func (h *Handler) UploadFile(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.upload_file_missing", nil)
		return
	}
	scene := c.DefaultPostForm("scene", "common")

	url, err := h.UploadService.SaveFile(file, scene)
	if err != nil {
		respondMapped(c, err, uploadErrorRules, "error.upload_failed")
		return
	}

	response.Success(c, gin.H{
		"url":      url,
		"filename": file.Filename,
		"size":     file.Size,
	})
}

// GetUploadSignature 生成 Cloudinary 直传签名
func (h *Handler) GetUploadSignature(c *gin.Context) {
	signature, err := h.UploadService.CloudinarySignature(c.DefaultQuery("scene", "common"))
	if err != nil {
		respondMapped(c, err, uploadErrorRules, "error.upload_failed")
		return
	}
	response.Success(c, signature)
}
