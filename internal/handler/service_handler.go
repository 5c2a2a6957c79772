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

// ServiceHandler serves the offered-services catalog.
type ServiceHandler struct {
	catalogService service.CatalogService
	auth           *middleware.Auth
}

func NewServiceHandler(catalogService service.CatalogService, auth *middleware.Auth) *ServiceHandler {
	return &ServiceHandler{catalogService: catalogService, auth: auth}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *ServiceHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/api/services", h.ListServices)
	router.GET("/api/services/:id", h.GetService)

	admin := router.Group("/api/admin")
	{
		admin.POST("/services", h.auth.RequireRole("admin"), h.CreateService)
	}
}

// ListServices returns the active service catalog
// @Summary      List services
// @Tags         services
// @Produce      json
// @Param        page   query     int  false  "Page"
// @Param        limit  query     int  false  "Limit"
// @Success      200    {object}  response.Response
// @Router       /api/services [get]
func (h *ServiceHandler) ListServices(c *gin.Context) {
	params := pagination.Parse(c)

	services, total, err := h.catalogService.ListServices(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, services, total, params.Page, params.Limit))
}

// GetService returns one service by id
// @Summary      Get service
// @Tags         services
// @Produce      json
// @Param        id   path      string  true  "Service ID"
// @Success      200  {object}  response.Response{data=model.Service}
// @Failure      404  {object}  response.Response
// @Router       /api/services/{id} [get]
func (h *ServiceHandler) GetService(c *gin.Context) {
	svc, err := h.catalogService.GetService(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrServiceNotFound) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "Service not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, svc))
}

// CreateService adds a service to the catalog
// @Summary      Create service
// @Tags         services
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateServiceRequest  true  "Service"
// @Success      201      {object}  response.Response{data=model.Service}
// @Failure      400      {object}  response.Response
// @Router       /api/admin/services [post]
func (h *ServiceHandler) CreateService(c *gin.Context) {
	var req service.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	svc, err := h.catalogService.CreateService(c.Request.Context(), req, actorID(c))
	if err != nil {
		if errors.Is(err, service.ErrInvalidPayload) {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, svc))
}
