package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/kmayhew/propfolio/propfolio-backend/internal/domain"
	"github.com/kmayhew/propfolio/propfolio-backend/internal/middleware"
	"github.com/kmayhew/propfolio/propfolio-backend/internal/service"
)

// PhotoHandler handles property photo HTTP requests
type PhotoHandler struct {
	photoService *service.PhotoService
}

// NewPhotoHandler creates a new PhotoHandler
func NewPhotoHandler(photoService *service.PhotoService) *PhotoHandler {
	return &PhotoHandler{photoService: photoService}
}

// UploadPhoto handles POST /api/v1/analyses/:id/photos
func (h *PhotoHandler) UploadPhoto(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	if h.photoService == nil || !h.photoService.IsEnabled() {
		return NewServiceUnavailableError(c, "Photo uploads are disabled (storage not configured)")
	}

	id, err := analysisID(c)
	if err != nil {
		return NewValidationError(c, "Invalid analysis id", nil)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return NewValidationError(c, "No file provided", []ValidationError{
			{Field: "file", Message: "File is required"},
		})
	}
	caption := c.FormValue("caption")

	src, err := file.Open()
	if err != nil {
		log.Error().Err(err).Msg("Failed to open uploaded file")
		return NewInternalError(c, "Failed to process file")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read uploaded file")
		return NewInternalError(c, "Failed to read file")
	}

	metadata, err := h.photoService.Upload(c.Request().Context(), workspaceID, id, data, file.Filename, caption)
	if err != nil {
		switch err {
		case service.ErrPhotoTooLarge, service.ErrInvalidPhotoFormat,
			service.ErrPhotoTooSmall, service.ErrInvalidPhotoData:
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "file", Message: err.Error()},
			})
		default:
			log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to upload photo")
			return NewInternalError(c, "Failed to upload photo")
		}
	}

	log.Info().
		Int32("workspace_id", workspaceID).
		Int32("analysis_id", id).
		Str("photo_id", metadata.ID).
		Msg("Photo uploaded")

	return c.JSON(http.StatusCreated, metadata)
}

// GetPhotos handles GET /api/v1/analyses/:id/photos
func (h *PhotoHandler) GetPhotos(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	if h.photoService == nil || !h.photoService.IsEnabled() {
		return NewServiceUnavailableError(c, "Photo storage is not configured")
	}

	id, err := analysisID(c)
	if err != nil {
		return NewValidationError(c, "Invalid analysis id", nil)
	}

	photos, err := h.photoService.List(c.Request().Context(), workspaceID, id)
	if err != nil {
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to list photos")
		return NewInternalError(c, "Failed to list photos")
	}
	if photos == nil {
		photos = []service.PhotoMetadata{}
	}

	return c.JSON(http.StatusOK, photos)
}

// DeletePhoto handles DELETE /api/v1/photos/:photoId
func (h *PhotoHandler) DeletePhoto(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	if h.photoService == nil || !h.photoService.IsEnabled() {
		return NewServiceUnavailableError(c, "Photo storage is not configured")
	}

	photoID := c.Param("photoId")
	if photoID == "" {
		return NewValidationError(c, "Invalid photo id", nil)
	}

	if err := h.photoService.Delete(c.Request().Context(), workspaceID, photoID); err != nil {
		if err == domain.ErrPhotoNotFound {
			return NewNotFoundError(c, "Photo not found")
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Str("photo_id", photoID).Msg("Failed to delete photo")
		return NewInternalError(c, "Failed to delete photo")
	}

	return c.NoContent(http.StatusNoContent)
}
