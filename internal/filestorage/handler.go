// File: internal/filestorage/handler.go
package filestorage

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dreamhome_backend/internal/common"
	"dreamhome_backend/internal/config"
)

const maxUploadFiles = 10

// Handler exposes image upload and serving endpoints.
type Handler struct {
	service *Service
	cfg     *config.Config
	logger  *zap.Logger
}

// NewHandler creates a new file storage handler.
func NewHandler(service *Service, cfg *config.Config, logger *zap.Logger) *Handler {
	return &Handler{service: service, cfg: cfg, logger: logger.Named("filestorage-handler")}
}

// RegisterRoutes sets up the upload routes. Uploading requires
// authentication; serving stored images is public.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	uploadGroup := router.Group("/uploads")
	{
		uploadGroup.POST("/images", authMW, h.uploadImages)
		uploadGroup.Static("/images", h.service.StoragePath())
	}
}

// uploadImages accepts a multipart form with one or more files under the
// "files" field and returns the public URLs of the stored images.
func (h *Handler) uploadImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid multipart form."))
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("No files provided under the 'files' field."))
		return
	}
	if len(files) > maxUploadFiles {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(
			fmt.Sprintf("At most %d files may be uploaded at once.", maxUploadFiles)))
		return
	}

	urls := make([]string, 0, len(files))
	for _, fileHeader := range files {
		relativePath, err := h.service.SaveUploadedFile(fileHeader, "listings")
		if err != nil {
			h.logger.Warn("Failed to store uploaded file",
				zap.String("filename", fileHeader.Filename),
				zap.Error(err),
			)
			common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
			return
		}
		urls = append(urls, h.publicURL(relativePath))
	}

	common.RespondCreated(c, "Images uploaded successfully.", gin.H{"urls": urls})
}

func (h *Handler) publicURL(relativePath string) string {
	base := strings.TrimSuffix(h.cfg.ImagePublicBaseURL, "/")
	return base + "/" + filepath.ToSlash(relativePath)
}
