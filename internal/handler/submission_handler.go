package handler

import (
	"errors"
	"net/http"

	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

// SubmissionHandler accepts filled-in form payloads from end users.
type SubmissionHandler struct {
	submissionService service.SubmissionService
}

func NewSubmissionHandler(submissionService service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionService: submissionService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *SubmissionHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/api/submissions", h.CreateSubmission)
}

// CreateSubmission reconciles a form payload into durable records
// @Summary      Submit a filled-in form
// @Description  Upserts the customer by email, creates a request with price/title snapshots and stores the submission payload, atomically
// @Tags         submissions
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateSubmissionRequest  true  "Submission payload"
// @Success      201      {object}  response.Response{data=service.SubmissionResult}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /api/submissions [post]
func (h *SubmissionHandler) CreateSubmission(c *gin.Context) {
	var req service.CreateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	result, err := h.submissionService.CreateSubmission(c.Request.Context(), req)
	if err != nil {
		var validationErr *service.ValidationError
		switch {
		case errors.As(err, &validationErr):
			c.JSON(http.StatusBadRequest, gin.H{
				"status": "error",
				"error":  "validation failed",
				"fields": validationErr.Fields,
			})
		case errors.Is(err, service.ErrInvalidPayload):
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		case errors.Is(err, service.ErrServiceNotFound):
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "Service not found"))
		default:
			c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to store submission"))
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    result,
	})
}
