package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/kmayhew/propfolio/propfolio-backend/internal/domain"
	"github.com/kmayhew/propfolio/propfolio-backend/internal/repository/storage"
	"github.com/kmayhew/propfolio/propfolio-backend/internal/util"
	"github.com/kmayhew/propfolio/propfolio-backend/internal/websocket"
)

// ErrExportStorageNotConfigured is returned when no object store is wired
var ErrExportStorageNotConfigured = errors.New("report storage not configured")

// ReportURLExpiry is how long a presigned report link stays valid
const ReportURLExpiry = 24 * time.Hour

// ExportResult describes a generated report
type ExportResult struct {
	ObjectPath string    `json:"objectPath"`
	URL        string    `json:"url"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

// ExportService renders an analysis summary as a PDF report and stores it
type ExportService struct {
	store     storage.ObjectStore
	publisher websocket.EventPublisher
}

// NewExportService creates a new ExportService
func NewExportService(store storage.ObjectStore, publisher websocket.EventPublisher) *ExportService {
	if publisher == nil {
		publisher = &websocket.NoOpPublisher{}
	}
	return &ExportService{store: store, publisher: publisher}
}

// IsEnabled indicates whether exports are supported (storage configured).
func (s *ExportService) IsEnabled() bool {
	return s != nil && s.store != nil
}

// Export renders the report, uploads it and returns a presigned link.
func (s *ExportService) Export(ctx context.Context, analysis *domain.Analysis) (*ExportResult, error) {
	if !s.IsEnabled() {
		return nil, ErrExportStorageNotConfigured
	}

	pdf, err := RenderReportPDF(analysis)
	if err != nil {
		return nil, err
	}

	objectPath := storage.ReportObjectPath(analysis.WorkspaceID, analysis.ID)
	if _, err := s.store.Upload(ctx, objectPath, bytes.NewReader(pdf), "application/pdf", int64(len(pdf))); err != nil {
		return nil, err
	}

	url, err := s.store.GeneratePresignedURL(ctx, objectPath, ReportURLExpiry)
	if err != nil {
		return nil, err
	}

	result := &ExportResult{
		ObjectPath: objectPath,
		URL:        url,
		ExpiresAt:  time.Now().UTC().Add(ReportURLExpiry),
	}

	s.publisher.Publish(analysis.WorkspaceID, websocket.ReportExported(result))
	return result, nil
}

// RenderReportPDF builds the summary report. Sections for which the
// questionnaire has no data yet are simply omitted.
func RenderReportPDF(analysis *domain.Analysis) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(14, 14, 14)
	pdf.SetAutoPageBreak(true, 14)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "Property ROI Report", "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, analysis.Name, "", 1, "L", false, 0, "")
	if analysis.PropertyInfo != nil {
		p := analysis.PropertyInfo
		pdf.CellFormat(0, 6, fmt.Sprintf("%s, %s, %s %s", p.Address, p.City, p.State, p.ZipCode), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	writeRow := func(label, value string) {
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(70, 6, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, value, "", 1, "L", false, 0, "")
	}
	writeHeading := func(text string) {
		pdf.Ln(2)
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 8, text, "", 1, "L", false, 0, "")
	}

	if analysis.Contingency != nil {
		writeHeading("Purchase")
		writeRow("Purchase Price", util.FormatUSD(analysis.Contingency.PurchasePrice))
		writeRow("After Repair Value", util.FormatUSD(analysis.Contingency.AfterRepairValue))
		writeRow("Contingency", util.FormatUSD(analysis.Contingency.ContingencyAmount))
	}

	if analysis.Mortgage != nil {
		writeHeading("Financing")
		writeRow("Loan Amount", util.FormatUSD(analysis.Mortgage.LoanAmount))
		writeRow("Interest Rate", util.FormatPercent(analysis.Mortgage.InterestRate))
		writeRow("Loan Term", fmt.Sprintf("%d years", analysis.Mortgage.LoanTermYears))
		writeRow("Monthly Payment", util.FormatUSD(analysis.Mortgage.MonthlyPayment))
	}

	if analysis.PurchaseCosts != nil {
		writeHeading("Acquisition Costs")
		writeRow("Total Acquisition Cost", util.FormatUSD(analysis.PurchaseCosts.TotalAcquisitionCost))
	}

	if analysis.CapitalExpenditures != nil {
		writeHeading("Capital Expenditures")
		for _, c := range domain.MACRSCategories {
			writeRow(fmt.Sprintf("%s property", c), util.FormatUSD(analysis.CapitalExpenditures.TotalByCategory[c]))
		}
		writeRow("Grand Total", util.FormatUSD(analysis.CapitalExpenditures.GrandTotal))
	}

	if analysis.DSCR != nil {
		writeHeading("Debt Service Coverage")
		writeRow("Net Operating Income", util.FormatUSD(analysis.DSCR.NetOperatingIncome))
		writeRow("Annual Debt Service", util.FormatUSD(analysis.DSCR.DebtService))
		writeRow("DSCR", util.FormatRatio(analysis.DSCR.DSCR))
		writeRow("Year One Cash Flow", util.FormatUSD(analysis.DSCR.CashFlow))
	}

	if analysis.ROI != nil {
		writeHeading("Return on Investment")
		writeRow("Total Investment", util.FormatUSD(analysis.ROI.TotalInvestment))
		writeRow("Cap Rate", util.FormatPercent(analysis.ROI.CapRate))
		writeRow("Cash-on-Cash Return", util.FormatPercent(analysis.ROI.CashOnCashReturn))

		if len(analysis.ROI.ProjectedEquity) > 0 {
			writeHeading("Projections")
			pdf.SetFont("Arial", "B", 10)
			pdf.CellFormat(20, 6, "Year", "B", 0, "L", false, 0, "")
			pdf.CellFormat(50, 6, "Cash Flow", "B", 0, "R", false, 0, "")
			pdf.CellFormat(50, 6, "Equity", "B", 1, "R", false, 0, "")
			pdf.SetFont("Arial", "", 10)
			for year, equity := range analysis.ROI.ProjectedEquity {
				cashFlow := analysis.ROI.ProjectedCashFlows[year+1]
				pdf.CellFormat(20, 6, fmt.Sprintf("%d", year+1), "", 0, "L", false, 0, "")
				pdf.CellFormat(50, 6, util.FormatUSD(cashFlow), "", 0, "R", false, 0, "")
				pdf.CellFormat(50, 6, util.FormatUSD(equity), "", 1, "R", false, 0, "")
			}
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF output: %w", err)
	}
	return buf.Bytes(), nil
}
