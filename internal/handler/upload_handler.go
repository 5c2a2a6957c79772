package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"backend/internal/storage"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// maxUploadBytes caps a single uploaded file at 20 MiB.
const maxUploadBytes = 20 << 20

// UploadHandler forwards one multipart file to object storage and returns its
// public URL.
type UploadHandler struct {
	store storage.ObjectStorage
}

func NewUploadHandler(store storage.ObjectStorage) *UploadHandler {
	return &UploadHandler{store: store}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *UploadHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/api/upload", h.Upload)
}

// Upload stores a file and returns its public URL
// @Summary      Upload a file
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "File to upload"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  response.Response
// @Failure      500   {object}  response.Response
// @Router       /api/upload [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Missing file part"))
		return
	}
	if fileHeader.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "File exceeds the 20MB limit"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to read file"))
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	// Uploaded objects are keyed by date and a fresh uuid so names never
	// collide; the original extension is kept for content-type sniffing.
	key := fmt.Sprintf("%s/%s%s",
		time.Now().UTC().Format("2006/01/02"),
		uuid.NewString(),
		filepath.Ext(fileHeader.Filename),
	)

	url, err := h.store.Upload(c.Request.Context(), key, file, contentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Upload failed"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
