package admin

import (
	"context"
	"errors"

	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/service"

	"github.com/gin-gonic/gin"
)

// dashboardQuery from/to 为 RFC3339，仅 range=custom 时使用
type dashboardQuery struct {
	Range        string `form:"range"`
	From         string `form:"from"`
	To           string `form:"to"`
	Timezone     string `form:"tz"`
	ForceRefresh bool   `form:"force_refresh"`
}

func (q dashboardQuery) toInput() (service.DashboardQueryInput, error) {
	from, err := parseTimeNullable(q.From)
	if err != nil {
		return service.DashboardQueryInput{}, err
	}
	to, err := parseTimeNullable(q.To)
	if err != nil {
		return service.DashboardQueryInput{}, err
	}
	return service.DashboardQueryInput{
		Range:        q.Range,
		From:         from,
		To:           to,
		Timezone:     q.Timezone,
		ForceRefresh: q.ForceRefresh,
	}, nil
}

// GetDashboardOverview 订单、销售额、顾客与库存预警
func (h *Handler) GetDashboardOverview(c *gin.Context) {
	serveDashboard(c, h.DashboardService.GetOverview)
}

// GetDashboardTrends 按天的订单与销售额
func (h *Handler) GetDashboardTrends(c *gin.Context) {
	serveDashboard(c, h.DashboardService.GetTrends)
}

// GetDashboardRankings 热销商品
func (h *Handler) GetDashboardRankings(c *gin.Context) {
	serveDashboard(c, h.DashboardService.GetRankings)
}

func serveDashboard[T any](c *gin.Context, load func(context.Context, service.DashboardQueryInput) (*T, error)) {
	var query dashboardQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondError(c, response.CodeBadRequest, "error.dashboard_range_invalid", err)
		return
	}
	input, err := query.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.dashboard_range_invalid", err)
		return
	}
	data, err := load(c.Request.Context(), input)
	if errors.Is(err, service.ErrDashboardRangeInvalid) {
		respondError(c, response.CodeBadRequest, "error.dashboard_range_invalid", nil)
		return
	}
	if err != nil {
		respondError(c, response.CodeInternal, "error.dashboard_fetch_failed", err)
		return
	}
	response.Success(c, data)
}
