package service

import (
	"strings"

	"github.com/kmayhew/propfolio/propfolio-backend/internal/domain"
	"github.com/kmayhew/propfolio/propfolio-backend/internal/websocket"
	"github.com/shopspring/decimal"
)

// AnalysisService owns the questionnaire workflow and the derivation
// pipeline. Every section update replaces that section wholesale, reruns
// the full recalculation in stage order, persists the result and notifies
// any dashboard listening on the workspace.
type AnalysisService struct {
	analysisRepo domain.AnalysisRepository
	publisher    websocket.EventPublisher
}

// NewAnalysisService creates a new AnalysisService
func NewAnalysisService(analysisRepo domain.AnalysisRepository, publisher websocket.EventPublisher) *AnalysisService {
	if publisher == nil {
		publisher = &websocket.NoOpPublisher{}
	}
	return &AnalysisService{
		analysisRepo: analysisRepo,
		publisher:    publisher,
	}
}

// CreateAnalysis starts a fresh draft analysis at the first workflow step.
func (s *AnalysisService) CreateAnalysis(workspaceID int32, name string) (*domain.Analysis, error) {
	name = strings.TrimSpace(name)

	analysis := &domain.Analysis{
		WorkspaceID: workspaceID,
		Name:        name,
		Status:      domain.StatusDraft,
		Workflow:    domain.NewWorkflow(),
	}
	if err := analysis.Validate(); err != nil {
		return nil, err
	}

	created, err := s.analysisRepo.Create(analysis)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(workspaceID, websocket.AnalysisCreated(created))
	return created, nil
}

// GetAnalysis loads an analysis and re-derives every derived field, so a
// previously persisted record always comes back with deterministic,
// freshly computed results.
func (s *AnalysisService) GetAnalysis(workspaceID, id int32) (*domain.Analysis, error) {
	analysis, err := s.analysisRepo.GetByID(workspaceID, id)
	if err != nil {
		return nil, err
	}
	Recalculate(analysis)
	return analysis, nil
}

// GetAnalyses lists all analyses in the workspace with derived fields
// recomputed.
func (s *AnalysisService) GetAnalyses(workspaceID int32) ([]*domain.Analysis, error) {
	analyses, err := s.analysisRepo.GetAllByWorkspace(workspaceID)
	if err != nil {
		return nil, err
	}
	for _, a := range analyses {
		Recalculate(a)
	}
	return analyses, nil
}

// DeleteAnalysis soft-deletes an analysis.
func (s *AnalysisService) DeleteAnalysis(workspaceID, id int32) error {
	if err := s.analysisRepo.SoftDelete(workspaceID, id); err != nil {
		return err
	}
	s.publisher.Publish(workspaceID, websocket.AnalysisDeleted(map[string]int32{"id": id}))
	return nil
}

// UpdatePropertyInfo replaces the property description section.
func (s *AnalysisService) UpdatePropertyInfo(workspaceID, id int32, info domain.PropertyInformation) (*domain.Analysis, error) {
	if err := info.Validate(); err != nil {
		return nil, err
	}
	return s.updateSection(workspaceID, id, domain.StepPropertyInfo, func(a *domain.Analysis) {
		a.PropertyInfo = &info
	})
}

// UpdateMortgage replaces the financing terms. LoanAmount and
// MonthlyPayment are ignored on input and re-derived.
func (s *AnalysisService) UpdateMortgage(workspaceID, id int32, mortgage domain.Mortgage) (*domain.Analysis, error) {
	if err := mortgage.Validate(); err != nil {
		return nil, err
	}
	return s.updateSection(workspaceID, id, domain.StepMortgage, func(a *domain.Analysis) {
		mortgage.LoanAmount = decimal.Zero
		mortgage.MonthlyPayment = decimal.Zero
		a.Mortgage = &mortgage
	})
}

// UpdateRentOccupancy replaces the rent and occupancy assumptions.
func (s *AnalysisService) UpdateRentOccupancy(workspaceID, id int32, rent domain.RentOccupancy) (*domain.Analysis, error) {
	if err := rent.Validate(); err != nil {
		return nil, err
	}
	return s.updateSection(workspaceID, id, domain.StepRentOccupancy, func(a *domain.Analysis) {
		rent.EffectiveMonthlyRent = decimal.Zero
		a.RentOccupancy = &rent
	})
}

// UpdateOperatingExpenses replaces the monthly operating expense section.
func (s *AnalysisService) UpdateOperatingExpenses(workspaceID, id int32, expenses domain.OperatingExpenses) (*domain.Analysis, error) {
	return s.updateSection(workspaceID, id, domain.StepOperatingExpenses, func(a *domain.Analysis) {
		expenses.Total = decimal.Zero
		a.OperatingExpenses = &expenses
	})
}

// UpdateCapitalExpenditures replaces the capital improvement item list.
func (s *AnalysisService) UpdateCapitalExpenditures(workspaceID, id int32, items []domain.CapexItem) (*domain.Analysis, error) {
	for i := range items {
		if err := items[i].Validate(); err != nil {
			return nil, err
		}
	}
	return s.updateSection(workspaceID, id, domain.StepCapitalExpenditures, func(a *domain.Analysis) {
		a.CapitalExpenditures = &domain.CapitalExpenditures{Items: items}
	})
}

// UpdatePurchaseCosts replaces the acquisition cost section.
func (s *AnalysisService) UpdatePurchaseCosts(workspaceID, id int32, costs domain.PurchaseCosts) (*domain.Analysis, error) {
	return s.updateSection(workspaceID, id, domain.StepPurchaseCosts, func(a *domain.Analysis) {
		costs.TotalAcquisitionCost = decimal.Zero
		a.PurchaseCosts = &costs
	})
}

// UpdateContingency replaces the price/contingency section. Because the
// purchase price feeds the mortgage derivation, the whole pipeline reruns.
func (s *AnalysisService) UpdateContingency(workspaceID, id int32, contingency domain.ContingencyPurchase) (*domain.Analysis, error) {
	if err := contingency.Validate(); err != nil {
		return nil, err
	}
	return s.updateSection(workspaceID, id, domain.StepContingency, func(a *domain.Analysis) {
		contingency.ContingencyAmount = decimal.Zero
		a.Contingency = &contingency
	})
}

// UpdateAppreciation replaces the growth assumptions.
func (s *AnalysisService) UpdateAppreciation(workspaceID, id int32, appreciation domain.AppreciationAssumptions) (*domain.Analysis, error) {
	if err := appreciation.Validate(); err != nil {
		return nil, err
	}
	return s.updateSection(workspaceID, id, domain.StepAppreciation, func(a *domain.Analysis) {
		a.Appreciation = &appreciation
	})
}

// CompleteStep marks a workflow step completed. Completing the final
// summary step moves the analysis out of draft.
func (s *AnalysisService) CompleteStep(workspaceID, id int32, step domain.Step) (*domain.Analysis, error) {
	analysis, err := s.analysisRepo.GetByID(workspaceID, id)
	if err != nil {
		return nil, err
	}
	if !analysis.Workflow.CanEnter(step) {
		return nil, domain.ErrStepNotReachable
	}

	analysis.Workflow.Complete(step)
	if step == domain.StepSummary && analysis.Status == domain.StatusDraft {
		analysis.Status = domain.StatusCompleted
	}

	Recalculate(analysis)
	updated, err := s.analysisRepo.Update(analysis)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(workspaceID, websocket.AnalysisUpdated(updated))
	return updated, nil
}

// GoToStep navigates the questionnaire. Backward navigation never
// un-completes a step.
func (s *AnalysisService) GoToStep(workspaceID, id int32, step domain.Step) (*domain.Analysis, error) {
	analysis, err := s.analysisRepo.GetByID(workspaceID, id)
	if err != nil {
		return nil, err
	}
	if err := analysis.Workflow.GoTo(step); err != nil {
		return nil, err
	}

	Recalculate(analysis)
	updated, err := s.analysisRepo.Update(analysis)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// updateSection applies mutate under workflow gating, reruns the pipeline
// and persists.
func (s *AnalysisService) updateSection(workspaceID, id int32, step domain.Step, mutate func(*domain.Analysis)) (*domain.Analysis, error) {
	analysis, err := s.analysisRepo.GetByID(workspaceID, id)
	if err != nil {
		return nil, err
	}
	if !analysis.Workflow.CanEnter(step) {
		return nil, domain.ErrStepNotReachable
	}

	mutate(analysis)
	Recalculate(analysis)

	updated, err := s.analysisRepo.Update(analysis)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(workspaceID, websocket.SummaryRecalculated(updated))
	return updated, nil
}

// Recalculate re-derives every derived field of the analysis from its raw
// sections, in stage order. It is deterministic and touches nothing outside
// the record, so it is safe to run on every load and after every update.
func Recalculate(a *domain.Analysis) {
	purchasePrice := decimal.Zero
	if a.Contingency != nil {
		purchasePrice = a.Contingency.PurchasePrice
	}

	if a.Mortgage != nil {
		m := ComputeMortgage(purchasePrice, *a.Mortgage)
		a.Mortgage = &m
	}
	if a.RentOccupancy != nil {
		r := *a.RentOccupancy
		r.EffectiveMonthlyRent = EffectiveMonthlyRent(r.MonthlyRent, r.OccupancyRate)
		a.RentOccupancy = &r
	}
	if a.OperatingExpenses != nil {
		e := SumOperatingExpenses(*a.OperatingExpenses)
		a.OperatingExpenses = &e
	}
	if a.CapitalExpenditures != nil {
		c := AggregateCapitalExpenditures(a.CapitalExpenditures.Items)
		a.CapitalExpenditures = &c
	}
	if a.PurchaseCosts != nil {
		p := SumPurchaseCosts(*a.PurchaseCosts)
		a.PurchaseCosts = &p
	}
	if a.Contingency != nil {
		c := *a.Contingency
		c.ContingencyAmount = c.ContingencyPercent.Div(hundred).Mul(c.PurchasePrice)
		a.Contingency = &c
	}

	downPayment := decimal.Zero
	if a.Mortgage != nil {
		downPayment = a.Mortgage.DownPaymentPercent
	}
	acquisitionCost := decimal.Zero
	if a.PurchaseCosts != nil {
		acquisitionCost = a.PurchaseCosts.TotalAcquisitionCost
	}

	a.DSCR = ComputeDSCR(a.RentOccupancy, a.OperatingExpenses, a.Mortgage,
		downPayment, purchasePrice, acquisitionCost)
	a.ROI = ComputeROI(a.RentOccupancy, a.OperatingExpenses, a.Mortgage,
		a.Contingency, a.PurchaseCosts, a.Appreciation)
}
