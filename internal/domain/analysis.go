package domain

import (
	"errors"
	"time"
)

var (
	ErrAnalysisNotFound    = errors.New("analysis not found")
	ErrAnalysisNameEmpty   = errors.New("analysis name is required")
	ErrAnalysisNameTooLong = errors.New("analysis name must be 200 characters or less")
	ErrInvalidStatus       = errors.New("invalid analysis status")
)

type AnalysisStatus string

const (
	StatusDraft     AnalysisStatus = "draft"
	StatusCompleted AnalysisStatus = "completed"
	StatusArchived  AnalysisStatus = "archived"
)

// Analysis is the accumulated state of one property deal walkthrough. Each
// section pointer is nil until its questionnaire step has been completed,
// then replaced wholesale on every change. DSCR and ROI are re-derived from
// the raw sections; they are never stored authoritative.
type Analysis struct {
	ID          int32          `json:"id"`
	WorkspaceID int32          `json:"workspaceId"`
	Name        string         `json:"name"`
	Status      AnalysisStatus `json:"status"`

	PropertyInfo        *PropertyInformation     `json:"propertyInfo,omitempty"`
	Mortgage            *Mortgage                `json:"mortgage,omitempty"`
	RentOccupancy       *RentOccupancy           `json:"rentOccupancy,omitempty"`
	OperatingExpenses   *OperatingExpenses       `json:"operatingExpenses,omitempty"`
	CapitalExpenditures *CapitalExpenditures     `json:"capitalExpenditures,omitempty"`
	PurchaseCosts       *PurchaseCosts           `json:"purchaseCosts,omitempty"`
	Contingency         *ContingencyPurchase     `json:"contingency,omitempty"`
	Appreciation        *AppreciationAssumptions `json:"appreciation,omitempty"`

	Workflow Workflow `json:"workflow"`

	DSCR *DSCRResult `json:"dscr,omitempty"`
	ROI  *ROIResult  `json:"roi,omitempty"`

	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

func (a *Analysis) Validate() error {
	if a.Name == "" {
		return ErrAnalysisNameEmpty
	}
	if len(a.Name) > 200 {
		return ErrAnalysisNameTooLong
	}
	switch a.Status {
	case StatusDraft, StatusCompleted, StatusArchived:
	default:
		return ErrInvalidStatus
	}
	return nil
}

// AnalysisRepository defines persistence for analyses. Stored rows carry the
// raw sections; derived fields are recomputed on load.
type AnalysisRepository interface {
	Create(analysis *Analysis) (*Analysis, error)
	GetByID(workspaceID, id int32) (*Analysis, error)
	GetAllByWorkspace(workspaceID int32) ([]*Analysis, error)
	Update(analysis *Analysis) (*Analysis, error)
	SoftDelete(workspaceID, id int32) error
}
