package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/kmayhew/propfolio/propfolio-backend/internal/domain"
	"github.com/kmayhew/propfolio/propfolio-backend/internal/middleware"
	"github.com/kmayhew/propfolio/propfolio-backend/internal/service"
)

// AnalysisHandler handles analysis-related HTTP requests
type AnalysisHandler struct {
	analysisService *service.AnalysisService
}

// NewAnalysisHandler creates a new AnalysisHandler
func NewAnalysisHandler(analysisService *service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService}
}

// CreateAnalysisRequest represents the create analysis request body
type CreateAnalysisRequest struct {
	Name string `json:"name"`
}

// StepRequest represents a workflow navigation request body
type StepRequest struct {
	Step string `json:"step"`
}

// analysisID parses the :id path parameter
func analysisID(c echo.Context) (int32, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil || id < 1 {
		return 0, errors.New("invalid analysis id")
	}
	return int32(id), nil
}

// parseStep resolves a step name from its wire form
func parseStep(name string) (domain.Step, bool) {
	for s := domain.StepPropertyInfo; s <= domain.LastStep; s++ {
		if s.String() == name {
			return s, true
		}
	}
	return 0, false
}

// sectionValidationErrors maps domain validation sentinels onto field names
var sectionValidationErrors = map[error]string{
	domain.ErrPropertyAddressEmpty:     "address",
	domain.ErrPropertyCityEmpty:        "city",
	domain.ErrPropertyStateInvalid:     "state",
	domain.ErrPropertySquareFootage:    "squareFootage",
	domain.ErrPropertyBedroomsInvalid:  "bedrooms",
	domain.ErrPropertyTypeInvalid:      "propertyType",
	domain.ErrInterestRateRange:        "interestRate",
	domain.ErrLoanTermRange:            "loanTermYears",
	domain.ErrDownPaymentRange:         "downPaymentPercent",
	domain.ErrFinancePercentRange:      "financePercentOfARV",
	domain.ErrMonthlyRentNegative:      "monthlyRent",
	domain.ErrOccupancyRateRange:       "occupancyRate",
	domain.ErrCapexDescriptionEmpty:    "description",
	domain.ErrCapexUnitCostNegative:    "unitCost",
	domain.ErrCapexQuantityInvalid:     "quantity",
	domain.ErrCapexCategoryInvalid:     "category",
	domain.ErrPurchasePriceNegative:    "purchasePrice",
	domain.ErrContingencyPercentRange:  "contingencyPercent",
	domain.ErrAfterRepairValueNegative: "afterRepairValue",
	domain.ErrAppreciationRateRange:    "annualAppreciationRate",
	domain.ErrRentGrowthRateRange:      "annualRentGrowthRate",
	domain.ErrExpenseIncreaseRateRange: "annualExpenseIncreaseRate",
	domain.ErrHoldingPeriodInvalid:     "holdingPeriodYears",
	domain.ErrAnalysisNameEmpty:        "name",
	domain.ErrAnalysisNameTooLong:      "name",
}

// respondSectionError translates service errors into problem responses
func respondSectionError(c echo.Context, err error, workspaceID int32) error {
	if errors.Is(err, domain.ErrAnalysisNotFound) {
		return NewNotFoundError(c, "Analysis not found")
	}
	if errors.Is(err, domain.ErrStepNotReachable) {
		return NewConflictError(c, "Step has not been reached yet")
	}
	for sentinel, field := range sectionValidationErrors {
		if errors.Is(err, sentinel) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: field, Message: sentinel.Error()},
			})
		}
	}
	log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Analysis operation failed")
	return NewInternalError(c, "Operation failed")
}

// CreateAnalysis handles POST /api/v1/analyses
func (h *AnalysisHandler) CreateAnalysis(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	var req CreateAnalysisRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	analysis, err := h.analysisService.CreateAnalysis(workspaceID, req.Name)
	if err != nil {
		return respondSectionError(c, err, workspaceID)
	}

	log.Info().Int32("workspace_id", workspaceID).Int32("analysis_id", analysis.ID).Str("name", analysis.Name).Msg("Analysis created")

	return c.JSON(http.StatusCreated, analysis)
}

// GetAnalyses handles GET /api/v1/analyses
func (h *AnalysisHandler) GetAnalyses(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	analyses, err := h.analysisService.GetAnalyses(workspaceID)
	if err != nil {
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to list analyses")
		return NewInternalError(c, "Failed to list analyses")
	}
	if analyses == nil {
		analyses = []*domain.Analysis{}
	}

	return c.JSON(http.StatusOK, analyses)
}

// GetAnalysis handles GET /api/v1/analyses/:id
func (h *AnalysisHandler) GetAnalysis(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, err := analysisID(c)
	if err != nil {
		return NewValidationError(c, "Invalid analysis id", nil)
	}

	analysis, err := h.analysisService.GetAnalysis(workspaceID, id)
	if err != nil {
		return respondSectionError(c, err, workspaceID)
	}

	return c.JSON(http.StatusOK, analysis)
}

// DeleteAnalysis handles DELETE /api/v1/analyses/:id
func (h *AnalysisHandler) DeleteAnalysis(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, err := analysisID(c)
	if err != nil {
		return NewValidationError(c, "Invalid analysis id", nil)
	}

	if err := h.analysisService.DeleteAnalysis(workspaceID, id); err != nil {
		return respondSectionError(c, err, workspaceID)
	}

	log.Info().Int32("workspace_id", workspaceID).Int32("analysis_id", id).Msg("Analysis deleted")

	return c.NoContent(http.StatusNoContent)
}

// UpdatePropertyInfo handles PUT /api/v1/analyses/:id/property-info
func (h *AnalysisHandler) UpdatePropertyInfo(c echo.Context) error {
	return h.updateSection(c, func(workspaceID, id int32) (*domain.Analysis, error) {
		var section domain.PropertyInformation
		if err := c.Bind(&section); err != nil {
			return nil, errBadBody
		}
		return h.analysisService.UpdatePropertyInfo(workspaceID, id, section)
	})
}

// UpdateMortgage handles PUT /api/v1/analyses/:id/mortgage
func (h *AnalysisHandler) UpdateMortgage(c echo.Context) error {
	return h.updateSection(c, func(workspaceID, id int32) (*domain.Analysis, error) {
		var section domain.Mortgage
		if err := c.Bind(&section); err != nil {
			return nil, errBadBody
		}
		return h.analysisService.UpdateMortgage(workspaceID, id, section)
	})
}

// UpdateRentOccupancy handles PUT /api/v1/analyses/:id/rent-occupancy
func (h *AnalysisHandler) UpdateRentOccupancy(c echo.Context) error {
	return h.updateSection(c, func(workspaceID, id int32) (*domain.Analysis, error) {
		var section domain.RentOccupancy
		if err := c.Bind(&section); err != nil {
			return nil, errBadBody
		}
		return h.analysisService.UpdateRentOccupancy(workspaceID, id, section)
	})
}

// UpdateOperatingExpenses handles PUT /api/v1/analyses/:id/operating-expenses
func (h *AnalysisHandler) UpdateOperatingExpenses(c echo.Context) error {
	return h.updateSection(c, func(workspaceID, id int32) (*domain.Analysis, error) {
		var section domain.OperatingExpenses
		if err := c.Bind(&section); err != nil {
			return nil, errBadBody
		}
		return h.analysisService.UpdateOperatingExpenses(workspaceID, id, section)
	})
}

// CapexItemsRequest represents the capital expenditure replacement body
type CapexItemsRequest struct {
	Items []domain.CapexItem `json:"items"`
}

// UpdateCapitalExpenditures handles PUT /api/v1/analyses/:id/capital-expenditures
func (h *AnalysisHandler) UpdateCapitalExpenditures(c echo.Context) error {
	return h.updateSection(c, func(workspaceID, id int32) (*domain.Analysis, error) {
		var req CapexItemsRequest
		if err := c.Bind(&req); err != nil {
			return nil, errBadBody
		}
		return h.analysisService.UpdateCapitalExpenditures(workspaceID, id, req.Items)
	})
}

// UpdatePurchaseCosts handles PUT /api/v1/analyses/:id/purchase-costs
func (h *AnalysisHandler) UpdatePurchaseCosts(c echo.Context) error {
	return h.updateSection(c, func(workspaceID, id int32) (*domain.Analysis, error) {
		var section domain.PurchaseCosts
		if err := c.Bind(&section); err != nil {
			return nil, errBadBody
		}
		return h.analysisService.UpdatePurchaseCosts(workspaceID, id, section)
	})
}

// UpdateContingency handles PUT /api/v1/analyses/:id/contingency
func (h *AnalysisHandler) UpdateContingency(c echo.Context) error {
	return h.updateSection(c, func(workspaceID, id int32) (*domain.Analysis, error) {
		var section domain.ContingencyPurchase
		if err := c.Bind(&section); err != nil {
			return nil, errBadBody
		}
		return h.analysisService.UpdateContingency(workspaceID, id, section)
	})
}

// UpdateAppreciation handles PUT /api/v1/analyses/:id/appreciation
func (h *AnalysisHandler) UpdateAppreciation(c echo.Context) error {
	return h.updateSection(c, func(workspaceID, id int32) (*domain.Analysis, error) {
		var section domain.AppreciationAssumptions
		if err := c.Bind(&section); err != nil {
			return nil, errBadBody
		}
		return h.analysisService.UpdateAppreciation(workspaceID, id, section)
	})
}

// CompleteStep handles POST /api/v1/analyses/:id/steps/complete
func (h *AnalysisHandler) CompleteStep(c echo.Context) error {
	return h.stepOperation(c, h.analysisService.CompleteStep)
}

// EnterStep handles POST /api/v1/analyses/:id/steps/enter
func (h *AnalysisHandler) EnterStep(c echo.Context) error {
	return h.stepOperation(c, h.analysisService.GoToStep)
}

// GetSummary handles GET /api/v1/analyses/:id/summary
func (h *AnalysisHandler) GetSummary(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, err := analysisID(c)
	if err != nil {
		return NewValidationError(c, "Invalid analysis id", nil)
	}

	analysis, err := h.analysisService.GetAnalysis(workspaceID, id)
	if err != nil {
		return respondSectionError(c, err, workspaceID)
	}

	return c.JSON(http.StatusOK, toSummaryResponse(analysis))
}

var errBadBody = errors.New("invalid request body")

func (h *AnalysisHandler) updateSection(c echo.Context, apply func(workspaceID, id int32) (*domain.Analysis, error)) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, err := analysisID(c)
	if err != nil {
		return NewValidationError(c, "Invalid analysis id", nil)
	}

	analysis, err := apply(workspaceID, id)
	if err != nil {
		if errors.Is(err, errBadBody) {
			return NewValidationError(c, "Invalid request body", nil)
		}
		return respondSectionError(c, err, workspaceID)
	}

	return c.JSON(http.StatusOK, analysis)
}

func (h *AnalysisHandler) stepOperation(c echo.Context, apply func(workspaceID, id int32, step domain.Step) (*domain.Analysis, error)) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, err := analysisID(c)
	if err != nil {
		return NewValidationError(c, "Invalid analysis id", nil)
	}

	var req StepRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	step, ok := parseStep(req.Step)
	if !ok {
		return NewValidationError(c, "Unknown workflow step", []ValidationError{
			{Field: "step", Message: "Must be a valid workflow step name"},
		})
	}

	analysis, err := apply(workspaceID, id, step)
	if err != nil {
		return respondSectionError(c, err, workspaceID)
	}

	return c.JSON(http.StatusOK, analysis)
}
