package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmayhew/propfolio/propfolio-backend/internal/domain"
	"github.com/kmayhew/propfolio/propfolio-backend/internal/testutil"
)

func reportAnalysis() *domain.Analysis {
	a := &domain.Analysis{
		ID:          7,
		WorkspaceID: 1,
		Name:        "12 Oak St duplex",
		Status:      domain.StatusDraft,
		Workflow:    domain.NewWorkflow(),
		Contingency: &domain.ContingencyPurchase{
			PurchasePrice:      decimal.NewFromInt(450000),
			ContingencyPercent: decimal.NewFromInt(10),
			AfterRepairValue:   decimal.NewFromInt(520000),
		},
		Mortgage: &domain.Mortgage{
			InterestRate:       decimal.NewFromFloat(7.5),
			LoanTermYears:      30,
			DownPaymentPercent: decimal.NewFromInt(20),
		},
		RentOccupancy: &domain.RentOccupancy{
			MonthlyRent:   decimal.NewFromInt(2500),
			OccupancyRate: decimal.NewFromInt(95),
		},
		OperatingExpenses: &domain.OperatingExpenses{
			Maintenance: decimal.NewFromInt(600),
		},
		PurchaseCosts: &domain.PurchaseCosts{
			ClosingCost: decimal.NewFromInt(5000),
		},
		Appreciation: &domain.AppreciationAssumptions{
			AnnualAppreciationRate:    decimal.NewFromInt(3),
			AnnualRentGrowthRate:      decimal.NewFromInt(2),
			AnnualExpenseIncreaseRate: decimal.NewFromInt(2),
			HoldingPeriodYears:        5,
		},
	}
	Recalculate(a)
	return a
}

func TestRenderReportPDF(t *testing.T) {
	pdf, err := RenderReportPDF(reportAnalysis())
	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")), "output should be a PDF document")
}

func TestRenderReportPDF_PartialAnalysis(t *testing.T) {
	a := &domain.Analysis{
		ID:          3,
		WorkspaceID: 1,
		Name:        "early draft",
		Workflow:    domain.NewWorkflow(),
	}

	pdf, err := RenderReportPDF(a)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestExport_UploadsAndPresigns(t *testing.T) {
	store := testutil.NewMockObjectStore()
	publisher := &testutil.RecordingPublisher{}
	svc := NewExportService(store, publisher)

	result, err := svc.Export(context.Background(), reportAnalysis())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(result.ObjectPath, "reports/1/7/"))
	assert.True(t, strings.HasSuffix(result.ObjectPath, ".pdf"))
	assert.Contains(t, result.URL, result.ObjectPath)
	assert.False(t, result.ExpiresAt.IsZero())

	stored, ok := store.Objects[result.ObjectPath]
	require.True(t, ok, "report should be uploaded")
	assert.True(t, bytes.HasPrefix(stored, []byte("%PDF")))
	assert.Equal(t, []string{"report.exported"}, publisher.EventTypes())
}

func TestExport_StorageNotConfigured(t *testing.T) {
	svc := NewExportService(nil, nil)

	_, err := svc.Export(context.Background(), reportAnalysis())
	assert.ErrorIs(t, err, ErrExportStorageNotConfigured)
}
