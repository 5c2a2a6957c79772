package handler

import (
	"errors"
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/pagination"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

// RevenueHandler exposes derived revenue to the admin dashboard.
type RevenueHandler struct {
	revenueService service.RevenueService
	auth           *middleware.Auth
}

func NewRevenueHandler(revenueService service.RevenueService, auth *middleware.Auth) *RevenueHandler {
	return &RevenueHandler{revenueService: revenueService, auth: auth}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *RevenueHandler) RegisterRoutes(router *gin.RouterGroup) {
	admin := router.Group("/api/admin/revenue")
	{
		admin.GET("", h.auth.RequireRole("admin"), h.ListEntries)
		admin.GET("/summary", h.auth.RequireRole("admin"), h.Summary)
	}
}

// ListEntries returns revenue entries, newest first
// @Summary      List revenue entries
// @Tags         revenue
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page"
// @Param        limit  query     int  false  "Limit"
// @Success      200    {object}  response.Response
// @Router       /api/admin/revenue [get]
func (h *RevenueHandler) ListEntries(c *gin.Context) {
	params := pagination.Parse(c)

	entries, total, err := h.revenueService.ListEntries(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, entries, total, params.Page, params.Limit))
}

// Summary returns revenue grouped by period
// @Summary      Revenue summary
// @Tags         revenue
// @Produce      json
// @Security     BearerAuth
// @Param        group_by    query     string  false  "day, week or month"  default(day)
// @Param        start_date  query     string  false  "YYYY-MM-DD"
// @Param        end_date    query     string  false  "YYYY-MM-DD"
// @Success      200         {object}  response.Response
// @Failure      400         {object}  response.Response
// @Router       /api/admin/revenue/summary [get]
func (h *RevenueHandler) Summary(c *gin.Context) {
	rows, err := h.revenueService.Summary(
		c.Request.Context(),
		c.DefaultQuery("group_by", "day"),
		c.Query("start_date"),
		c.Query("end_date"),
	)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPayload) {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, rows))
}
