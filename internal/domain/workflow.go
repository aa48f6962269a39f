package domain

import "errors"

var ErrStepNotReachable = errors.New("step has not been reached yet")

// Step identifies one screen of the guided questionnaire, in order.
type Step int

const (
	StepPropertyInfo Step = iota
	StepMortgage
	StepRentOccupancy
	StepOperatingExpenses
	StepCapitalExpenditures
	StepPurchaseCosts
	StepContingency
	StepAppreciation
	StepPriceConfirmation
	StepSummary

	stepCount
)

// LastStep is the final workflow step.
const LastStep = StepSummary

// ValidStep reports whether s names one of the ten workflow steps.
func ValidStep(s Step) bool {
	return s >= StepPropertyInfo && s < stepCount
}

func (s Step) String() string {
	names := [...]string{
		"property-info",
		"mortgage",
		"rent-occupancy",
		"operating-expenses",
		"capital-expenditures",
		"purchase-costs",
		"contingency",
		"appreciation",
		"price-confirmation",
		"summary",
	}
	if !ValidStep(s) {
		return "unknown"
	}
	return names[s]
}

// Workflow tracks questionnaire progress. Completion is monotonic: once a
// step is completed it stays completed no matter where the analyst
// navigates afterwards.
type Workflow struct {
	CurrentStep    Step          `json:"currentStep"`
	CompletedSteps map[Step]bool `json:"completedSteps"`
}

// NewWorkflow starts at the first step with nothing completed.
func NewWorkflow() Workflow {
	return Workflow{
		CurrentStep:    StepPropertyInfo,
		CompletedSteps: make(map[Step]bool),
	}
}

// IsCompleted reports whether the step has been completed.
func (w *Workflow) IsCompleted(s Step) bool {
	return w.CompletedSteps[s]
}

// CanEnter reports whether the analyst may navigate to s: the current step
// and any previously completed step are reachable.
func (w *Workflow) CanEnter(s Step) bool {
	if !ValidStep(s) {
		return false
	}
	return s == w.CurrentStep || w.CompletedSteps[s]
}

// Complete marks s completed and, when s is the current step, advances to
// the next step, clamped at the last one.
func (w *Workflow) Complete(s Step) {
	if !ValidStep(s) {
		return
	}
	if w.CompletedSteps == nil {
		w.CompletedSteps = make(map[Step]bool)
	}
	w.CompletedSteps[s] = true
	if s == w.CurrentStep && w.CurrentStep < LastStep {
		w.CurrentStep++
	}
}

// GoTo moves the current step to s when it is reachable. Navigating
// backward never un-completes anything.
func (w *Workflow) GoTo(s Step) error {
	if !w.CanEnter(s) {
		return ErrStepNotReachable
	}
	w.CurrentStep = s
	return nil
}

// CompletedList returns the completed steps in ascending order, suitable
// for persistence.
func (w *Workflow) CompletedList() []Step {
	steps := make([]Step, 0, len(w.CompletedSteps))
	for s := StepPropertyInfo; s < stepCount; s++ {
		if w.CompletedSteps[s] {
			steps = append(steps, s)
		}
	}
	return steps
}
