package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	appErrors "github.com/vmaksimov/appstore-backend/internal/errors"
	"github.com/vmaksimov/appstore-backend/internal/middleware"
	"github.com/vmaksimov/appstore-backend/internal/storage"
)

type UploadController struct {
	storage *storage.S3Storage
}

func NewUploadController(s3 *storage.S3Storage) *UploadController {
	return &UploadController{storage: s3}
}

type presignRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
	Folder      string `json:"folder" binding:"required"`
}

// PresignImageUpload handles POST /api/upload/image (admin only). The
// client uploads directly to S3 using the returned URL.
func (ctrl *UploadController) PresignImageUpload(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req presignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErrors.BadRequest(c, appErrors.ValidationInvalidInput, "Filename, content_type and folder are required")
		return
	}

	response, err := ctrl.storage.GeneratePresignedURL(c.Request.Context(), req.Filename, req.ContentType, req.Folder)
	if err != nil {
		log.Warn("Presign rejected", map[string]interface{}{
			"filename":     req.Filename,
			"content_type": req.ContentType,
			"folder":       req.Folder,
			"error":        err.Error(),
		})
		appErrors.BadRequest(c, appErrors.UploadInvalidFileType, err.Error())
		return
	}

	c.JSON(http.StatusOK, response)
}
