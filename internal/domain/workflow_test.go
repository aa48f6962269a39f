package domain

import "testing"

func TestWorkflow_CompleteAdvances(t *testing.T) {
	w := NewWorkflow()

	w.Complete(StepPropertyInfo)

	if !w.IsCompleted(StepPropertyInfo) {
		t.Error("Expected property-info to be completed")
	}
	if w.CurrentStep != StepMortgage {
		t.Errorf("Expected current step %v, got %v", StepMortgage, w.CurrentStep)
	}
}

func TestWorkflow_CompleteClampsAtLastStep(t *testing.T) {
	w := NewWorkflow()
	for s := StepPropertyInfo; s <= StepSummary; s++ {
		w.Complete(s)
	}

	if w.CurrentStep != StepSummary {
		t.Errorf("Expected current step clamped at %v, got %v", StepSummary, w.CurrentStep)
	}

	// Completing the last step again must not move past it
	w.Complete(StepSummary)
	if w.CurrentStep != StepSummary {
		t.Errorf("Expected current step to stay at %v, got %v", StepSummary, w.CurrentStep)
	}
}

func TestWorkflow_CanEnterOnlyCurrentOrCompleted(t *testing.T) {
	w := NewWorkflow()
	w.Complete(StepPropertyInfo)
	w.Complete(StepMortgage)

	if !w.CanEnter(StepPropertyInfo) {
		t.Error("Expected completed step to be enterable")
	}
	if !w.CanEnter(StepRentOccupancy) {
		t.Error("Expected current step to be enterable")
	}
	if w.CanEnter(StepSummary) {
		t.Error("Expected future step to be blocked")
	}
}

func TestWorkflow_CompletionIsMonotonic(t *testing.T) {
	w := NewWorkflow()
	w.Complete(StepPropertyInfo)
	w.Complete(StepMortgage)
	w.Complete(StepRentOccupancy)

	// Navigate backward and forward again
	if err := w.GoTo(StepPropertyInfo); err != nil {
		t.Fatalf("Expected back navigation to succeed, got %v", err)
	}
	if err := w.GoTo(StepRentOccupancy); err != nil {
		t.Fatalf("Expected forward navigation to completed step to succeed, got %v", err)
	}

	for _, s := range []Step{StepPropertyInfo, StepMortgage, StepRentOccupancy} {
		if !w.IsCompleted(s) {
			t.Errorf("Expected step %v to remain completed after navigation", s)
		}
	}
}

func TestWorkflow_GoToUnreachableStep(t *testing.T) {
	w := NewWorkflow()

	if err := w.GoTo(StepAppreciation); err != ErrStepNotReachable {
		t.Errorf("Expected ErrStepNotReachable, got %v", err)
	}
	if err := w.GoTo(Step(99)); err != ErrStepNotReachable {
		t.Errorf("Expected ErrStepNotReachable for out-of-range step, got %v", err)
	}
}

func TestWorkflow_CompletedList(t *testing.T) {
	w := NewWorkflow()
	w.Complete(StepMortgage)
	w.Complete(StepPropertyInfo)

	list := w.CompletedList()
	if len(list) != 2 || list[0] != StepPropertyInfo || list[1] != StepMortgage {
		t.Errorf("Expected ordered completed list [0 1], got %v", list)
	}
}
