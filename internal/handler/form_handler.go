package handler

import (
	"errors"
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// FormHandler serves a service's form schema and the admin editor endpoint.
type FormHandler struct {
	schemaService service.SchemaService
	auth          *middleware.Auth
}

func NewFormHandler(schemaService service.SchemaService, auth *middleware.Auth) *FormHandler {
	return &FormHandler{schemaService: schemaService, auth: auth}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *FormHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/api/services/:id/form", h.GetForm)

	admin := router.Group("/api/admin")
	{
		admin.PUT("/services/:id/form", h.auth.RequireRole("admin"), h.ReplaceFields)
	}
}

// GetForm returns the render payload for a service's intake form
// @Summary      Get a service's form schema
// @Description  Returns title, subtitle and the ordered field definitions for the service's intake form
// @Tags         forms
// @Produce      json
// @Param        id   path      string  true  "Service ID"
// @Success      200  {object}  response.Response{data=service.FormResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/services/{id}/form [get]
func (h *FormHandler) GetForm(c *gin.Context) {
	form, err := h.schemaService.GetForm(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrServiceNotFound) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "Service not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, form))
}

// ReplaceFields replaces a service's form schema wholesale
// @Summary      Replace a service's form schema
// @Description  Deletes every existing field row and inserts the submitted ordered list. Field IDs do not survive a save.
// @Tags         forms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                         true  "Service ID"
// @Param        payload  body      service.ReplaceFieldsRequest   true  "New field list"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/admin/services/{id}/form [put]
func (h *FormHandler) ReplaceFields(c *gin.Context) {
	var req service.ReplaceFieldsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	err := h.schemaService.ReplaceFields(c.Request.Context(), c.Param("id"), req, actorID(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrServiceNotFound):
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "Service not found"))
		case errors.Is(err, service.ErrFixedFieldRemoved), errors.Is(err, service.ErrInvalidField):
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Form schema updated"}))
}

// actorID extracts the authenticated operator's ID set by the auth middleware.
func actorID(c *gin.Context) *uuid.UUID {
	raw, ok := c.Get("userID")
	if !ok {
		return nil
	}
	str, ok := raw.(string)
	if !ok {
		return nil
	}
	id, err := uuid.Parse(str)
	if err != nil {
		return nil
	}
	return &id
}
