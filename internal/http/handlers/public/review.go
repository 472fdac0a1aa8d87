package public

import (
	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateReviewRequest 评价请求
type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

// CreateReview 发表商品评价，每个用户对同一商品只能评价一次
func (h *Handler) CreateReview(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.rating_invalid", err)
		return
	}

	name := ""
	if user, err := h.UserAuthService.GetUserByID(uid); err == nil {
		name = user.Name
	}
	review, err := h.ReviewService.Create(service.CreateReviewInput{
		ProductID: productID,
		UserID:    uid,
		Name:      name,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		respondWithMappedError(c, err, reviewErrorRules, response.CodeInternal, "error.review_create_failed")
		return
	}
	response.Success(c, review)
}

// CreateCommentRequest 文章评论请求
type CreateCommentRequest struct {
	Body string `json:"body"`
}

// CreatePostComment 发表文章评论
func (h *Handler) CreatePostComment(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	name := ""
	if user, err := h.UserAuthService.GetUserByID(uid); err == nil {
		name = user.Name
	}
	comment, err := h.PostService.AddComment(service.CreateCommentInput{
		Slug:   c.Param("slug"),
		UserID: uid,
		Name:   name,
		Body:   req.Body,
	})
	if err != nil {
		respondWithMappedError(c, err, commentErrorRules, response.CodeInternal, "error.comment_create_failed")
		return
	}
	response.Success(c, comment)
}
