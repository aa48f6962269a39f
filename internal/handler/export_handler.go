package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/kmayhew/propfolio/propfolio-backend/internal/middleware"
	"github.com/kmayhew/propfolio/propfolio-backend/internal/service"
)

// ExportHandler handles report export HTTP requests
type ExportHandler struct {
	analysisService *service.AnalysisService
	exportService   *service.ExportService
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(analysisService *service.AnalysisService, exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{
		analysisService: analysisService,
		exportService:   exportService,
	}
}

// ExportAnalysis handles POST /api/v1/analyses/:id/export
func (h *ExportHandler) ExportAnalysis(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	if h.exportService == nil || !h.exportService.IsEnabled() {
		return NewServiceUnavailableError(c, "Report exports are disabled (storage not configured)")
	}

	id, err := analysisID(c)
	if err != nil {
		return NewValidationError(c, "Invalid analysis id", nil)
	}

	analysis, err := h.analysisService.GetAnalysis(workspaceID, id)
	if err != nil {
		return respondSectionError(c, err, workspaceID)
	}

	result, err := h.exportService.Export(c.Request().Context(), analysis)
	if err != nil {
		if errors.Is(err, service.ErrExportStorageNotConfigured) {
			return NewServiceUnavailableError(c, "Report exports are disabled (storage not configured)")
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Int32("analysis_id", id).Msg("Failed to export report")
		return NewInternalError(c, "Failed to export report")
	}

	log.Info().
		Int32("workspace_id", workspaceID).
		Int32("analysis_id", id).
		Str("object_path", result.ObjectPath).
		Msg("Report exported")

	return c.JSON(http.StatusCreated, result)
}
