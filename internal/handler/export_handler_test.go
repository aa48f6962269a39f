package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/kmayhew/propfolio/propfolio-backend/internal/service"
	"github.com/kmayhew/propfolio/propfolio-backend/internal/testutil"
)

func TestExportAnalysis_Handler(t *testing.T) {
	repo := testutil.NewMockAnalysisRepository()
	svc := service.NewAnalysisService(repo, nil)
	store := testutil.NewMockObjectStore()
	exportSvc := service.NewExportService(store, nil)
	h := NewExportHandler(svc, exportSvc)

	if _, err := svc.CreateAnalysis(1, "export target"); err != nil {
		t.Fatalf("Failed to create analysis: %v", err)
	}

	rec := doJSON(t, h.ExportAnalysis, http.MethodPost, "/api/v1/analyses/1/export", "",
		map[string]string{"id": "1"})

	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var result service.ExportResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to unmarshal result: %v", err)
	}
	if !strings.HasPrefix(result.ObjectPath, "reports/1/1/") {
		t.Errorf("Expected object path under reports/1/1/, got %s", result.ObjectPath)
	}
	if result.URL == "" {
		t.Error("Expected a presigned URL")
	}
	if _, ok := store.Objects[result.ObjectPath]; !ok {
		t.Error("Expected the report blob to be stored")
	}
}

func TestExportAnalysis_StorageDisabled(t *testing.T) {
	repo := testutil.NewMockAnalysisRepository()
	svc := service.NewAnalysisService(repo, nil)
	h := NewExportHandler(svc, service.NewExportService(nil, nil))

	if _, err := svc.CreateAnalysis(1, "export target"); err != nil {
		t.Fatalf("Failed to create analysis: %v", err)
	}

	rec := doJSON(t, h.ExportAnalysis, http.MethodPost, "/api/v1/analyses/1/export", "",
		map[string]string{"id": "1"})

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", rec.Code)
	}
}

func TestExportAnalysis_NotFound(t *testing.T) {
	repo := testutil.NewMockAnalysisRepository()
	svc := service.NewAnalysisService(repo, nil)
	store := testutil.NewMockObjectStore()
	h := NewExportHandler(svc, service.NewExportService(store, nil))

	rec := doJSON(t, h.ExportAnalysis, http.MethodPost, "/api/v1/analyses/42/export", "",
		map[string]string{"id": "42"})

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}
