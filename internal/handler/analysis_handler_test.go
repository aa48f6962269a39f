package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/kmayhew/propfolio/propfolio-backend/internal/domain"
	"github.com/kmayhew/propfolio/propfolio-backend/internal/service"
	"github.com/kmayhew/propfolio/propfolio-backend/internal/testutil"
)

func newAnalysisHandler() (*AnalysisHandler, *service.AnalysisService) {
	repo := testutil.NewMockAnalysisRepository()
	svc := service.NewAnalysisService(repo, nil)
	return NewAnalysisHandler(svc), svc
}

func doJSON(t *testing.T, h echo.HandlerFunc, method, target, body string, pathParams map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	names := make([]string, 0, len(pathParams))
	values := make([]string, 0, len(pathParams))
	for name, value := range pathParams {
		names = append(names, name)
		values = append(values, value)
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	setupAuthContextWithWorkspace(c, "auth0|analyst", "analyst@example.com", "Analyst", "", 1)

	if err := h(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	return rec
}

func TestCreateAnalysis_Handler(t *testing.T) {
	h, _ := newAnalysisHandler()

	rec := doJSON(t, h.CreateAnalysis, http.MethodPost, "/api/v1/analyses",
		`{"name": "12 Oak St duplex"}`, nil)

	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var response domain.Analysis
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Name != "12 Oak St duplex" {
		t.Errorf("Expected name '12 Oak St duplex', got %s", response.Name)
	}
	if response.Status != domain.StatusDraft {
		t.Errorf("Expected draft status, got %s", response.Status)
	}
}

func TestCreateAnalysis_EmptyName(t *testing.T) {
	h, _ := newAnalysisHandler()

	rec := doJSON(t, h.CreateAnalysis, http.MethodPost, "/api/v1/analyses", `{"name": "  "}`, nil)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestCreateAnalysis_NoWorkspace(t *testing.T) {
	h, _ := newAnalysisHandler()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyses", strings.NewReader(`{"name": "x"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreateAnalysis(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}

func TestGetAnalysis_NotFound(t *testing.T) {
	h, _ := newAnalysisHandler()

	rec := doJSON(t, h.GetAnalysis, http.MethodGet, "/api/v1/analyses/99", "",
		map[string]string{"id": "99"})

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestGetAnalysis_BadID(t *testing.T) {
	h, _ := newAnalysisHandler()

	rec := doJSON(t, h.GetAnalysis, http.MethodGet, "/api/v1/analyses/abc", "",
		map[string]string{"id": "abc"})

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestUpdateMortgage_Handler(t *testing.T) {
	h, svc := newAnalysisHandler()
	analysis, _ := svc.CreateAnalysis(1, "mortgage test")
	if _, err := svc.CompleteStep(1, analysis.ID, domain.StepPropertyInfo); err != nil {
		t.Fatalf("Failed to complete step: %v", err)
	}

	body := `{"financePercentOfARV": "70", "interestRate": "7.5", "loanTermYears": 30, "downPaymentPercent": "20"}`
	rec := doJSON(t, h.UpdateMortgage, http.MethodPut, "/api/v1/analyses/1/mortgage", body,
		map[string]string{"id": "1"})

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var response domain.Analysis
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Mortgage == nil {
		t.Fatal("Expected mortgage section in response")
	}
	if response.Mortgage.LoanTermYears != 30 {
		t.Errorf("Expected loan term 30, got %d", response.Mortgage.LoanTermYears)
	}
}

func TestUpdateMortgage_OutOfRange(t *testing.T) {
	h, svc := newAnalysisHandler()
	analysis, _ := svc.CreateAnalysis(1, "mortgage test")
	if _, err := svc.CompleteStep(1, analysis.ID, domain.StepPropertyInfo); err != nil {
		t.Fatalf("Failed to complete step: %v", err)
	}

	body := `{"interestRate": "55", "loanTermYears": 30, "downPaymentPercent": "20"}`
	rec := doJSON(t, h.UpdateMortgage, http.MethodPut, "/api/v1/analyses/1/mortgage", body,
		map[string]string{"id": "1"})

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}

	var problem ProblemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("Failed to unmarshal problem details: %v", err)
	}
	if len(problem.Errors) != 1 || problem.Errors[0].Field != "interestRate" {
		t.Errorf("Expected interestRate validation error, got %+v", problem.Errors)
	}
}

func TestUpdateAppreciation_StepNotReached(t *testing.T) {
	h, svc := newAnalysisHandler()
	if _, err := svc.CreateAnalysis(1, "gated"); err != nil {
		t.Fatalf("Failed to create analysis: %v", err)
	}

	body := `{"annualAppreciationRate": "3", "annualRentGrowthRate": "2", "annualExpenseIncreaseRate": "2", "holdingPeriodYears": 5}`
	rec := doJSON(t, h.UpdateAppreciation, http.MethodPut, "/api/v1/analyses/1/appreciation", body,
		map[string]string{"id": "1"})

	if rec.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", rec.Code)
	}
}

func TestCompleteStep_Handler(t *testing.T) {
	h, svc := newAnalysisHandler()
	if _, err := svc.CreateAnalysis(1, "steps"); err != nil {
		t.Fatalf("Failed to create analysis: %v", err)
	}

	rec := doJSON(t, h.CompleteStep, http.MethodPost, "/api/v1/analyses/1/steps/complete",
		`{"step": "property-info"}`, map[string]string{"id": "1"})

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var response domain.Analysis
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Workflow.CurrentStep != domain.StepMortgage {
		t.Errorf("Expected workflow to advance to mortgage, got %s", response.Workflow.CurrentStep)
	}
}

func TestCompleteStep_UnknownStep(t *testing.T) {
	h, svc := newAnalysisHandler()
	if _, err := svc.CreateAnalysis(1, "steps"); err != nil {
		t.Fatalf("Failed to create analysis: %v", err)
	}

	rec := doJSON(t, h.CompleteStep, http.MethodPost, "/api/v1/analyses/1/steps/complete",
		`{"step": "teleport"}`, map[string]string{"id": "1"})

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestGetSummary_Handler(t *testing.T) {
	h, svc := newAnalysisHandler()
	analysis, _ := svc.CreateAnalysis(1, "summary test")
	for step := domain.StepPropertyInfo; step <= domain.StepContingency; step++ {
		if _, err := svc.CompleteStep(1, analysis.ID, step); err != nil {
			t.Fatalf("Failed to complete step %s: %v", step, err)
		}
	}

	contingencyBody := `{"purchasePrice": "450000", "contingencyPercent": "10", "afterRepairValue": "520000"}`
	rec := doJSON(t, h.UpdateContingency, http.MethodPut, "/api/v1/analyses/1/contingency",
		contingencyBody, map[string]string{"id": "1"})
	if rec.Code != http.StatusOK {
		t.Fatalf("Failed to set contingency: %d %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, h.GetSummary, http.MethodGet, "/api/v1/analyses/1/summary", "",
		map[string]string{"id": "1"})

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var summary SummaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("Failed to unmarshal summary: %v", err)
	}
	if summary.PurchasePrice == nil || *summary.PurchasePrice != "$450,000.00" {
		t.Errorf("Expected formatted purchase price, got %v", summary.PurchasePrice)
	}
	// The financing section has not been filled in, so no DSCR yet
	if summary.DSCR != nil {
		t.Errorf("Expected no DSCR for incomplete inputs, got %v", *summary.DSCR)
	}
}

func TestDeleteAnalysis_Handler(t *testing.T) {
	h, svc := newAnalysisHandler()
	if _, err := svc.CreateAnalysis(1, "doomed"); err != nil {
		t.Fatalf("Failed to create analysis: %v", err)
	}

	rec := doJSON(t, h.DeleteAnalysis, http.MethodDelete, "/api/v1/analyses/1", "",
		map[string]string{"id": "1"})

	if rec.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", rec.Code)
	}

	rec = doJSON(t, h.GetAnalysis, http.MethodGet, "/api/v1/analyses/1", "",
		map[string]string{"id": "1"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 after delete, got %d", rec.Code)
	}
}
