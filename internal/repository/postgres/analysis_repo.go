package postgres

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kmayhew/propfolio/propfolio-backend/internal/domain"
)

// AnalysisRepository implements domain.AnalysisRepository using PostgreSQL.
// Each questionnaire section is stored as its own jsonb column so partial
// drafts round-trip without schema churn; derived results are persisted
// too, but the service recomputes them on every load.
type AnalysisRepository struct {
	pool *pgxpool.Pool
}

// NewAnalysisRepository creates a new AnalysisRepository
func NewAnalysisRepository(pool *pgxpool.Pool) *AnalysisRepository {
	return &AnalysisRepository{pool: pool}
}

const analysisColumns = `id, workspace_id, name, status,
	property_info, mortgage, rent_occupancy, operating_expenses,
	capital_expenditures, purchase_costs, contingency, appreciation,
	current_step, completed_steps, dscr, roi,
	created_at, updated_at, deleted_at`

// sectionJSON encodes an optional section pointer for a jsonb column,
// mapping a nil section to SQL NULL.
func sectionJSON[T any](v *T) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

func analysisRow(a *domain.Analysis) ([]interface{}, error) {
	sections := make([][]byte, 0, 10)
	var err error
	appendSection := func(data []byte, e error) {
		if err == nil {
			err = e
		}
		sections = append(sections, data)
	}

	appendSection(sectionJSON(a.PropertyInfo))
	appendSection(sectionJSON(a.Mortgage))
	appendSection(sectionJSON(a.RentOccupancy))
	appendSection(sectionJSON(a.OperatingExpenses))
	appendSection(sectionJSON(a.CapitalExpenditures))
	appendSection(sectionJSON(a.PurchaseCosts))
	appendSection(sectionJSON(a.Contingency))
	appendSection(sectionJSON(a.Appreciation))
	appendSection(sectionJSON(a.DSCR))
	appendSection(sectionJSON(a.ROI))
	if err != nil {
		return nil, err
	}

	completed := a.Workflow.CompletedList()
	completedInts := make([]int32, 0, len(completed))
	for _, s := range completed {
		completedInts = append(completedInts, int32(s))
	}

	return []interface{}{
		a.WorkspaceID, a.Name, string(a.Status),
		sections[0], sections[1], sections[2], sections[3],
		sections[4], sections[5], sections[6], sections[7],
		int32(a.Workflow.CurrentStep), completedInts,
		sections[8], sections[9],
	}, nil
}

func scanAnalysis(row pgx.Row) (*domain.Analysis, error) {
	var a domain.Analysis
	var status string
	var propertyInfo, mortgage, rentOccupancy, operatingExpenses []byte
	var capitalExpenditures, purchaseCosts, contingency, appreciation []byte
	var dscr, roi []byte
	var currentStep int32
	var completedSteps []int32

	err := row.Scan(&a.ID, &a.WorkspaceID, &a.Name, &status,
		&propertyInfo, &mortgage, &rentOccupancy, &operatingExpenses,
		&capitalExpenditures, &purchaseCosts, &contingency, &appreciation,
		&currentStep, &completedSteps, &dscr, &roi,
		&a.CreatedAt, &a.UpdatedAt, &a.DeletedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrAnalysisNotFound
		}
		return nil, err
	}

	a.Status = domain.AnalysisStatus(status)
	a.Workflow = domain.NewWorkflow()
	a.Workflow.CurrentStep = domain.Step(currentStep)
	for _, s := range completedSteps {
		a.Workflow.CompletedSteps[domain.Step(s)] = true
	}

	for _, section := range []struct {
		data []byte
		dst  interface{}
	}{
		{propertyInfo, &a.PropertyInfo},
		{mortgage, &a.Mortgage},
		{rentOccupancy, &a.RentOccupancy},
		{operatingExpenses, &a.OperatingExpenses},
		{capitalExpenditures, &a.CapitalExpenditures},
		{purchaseCosts, &a.PurchaseCosts},
		{contingency, &a.Contingency},
		{appreciation, &a.Appreciation},
		{dscr, &a.DSCR},
		{roi, &a.ROI},
	} {
		if err := unmarshalSection(section.data, section.dst); err != nil {
			return nil, err
		}
	}

	return &a, nil
}

// Create inserts a new analysis
func (r *AnalysisRepository) Create(analysis *domain.Analysis) (*domain.Analysis, error) {
	args, err := analysisRow(analysis)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO analyses (workspace_id, name, status,
			property_info, mortgage, rent_occupancy, operating_expenses,
			capital_expenditures, purchase_costs, contingency, appreciation,
			current_step, completed_steps, dscr, roi)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING `+analysisColumns, args...)
	return scanAnalysis(row)
}

// GetByID retrieves a live analysis scoped to a workspace
func (r *AnalysisRepository) GetByID(workspaceID, id int32) (*domain.Analysis, error) {
	row := r.pool.QueryRow(context.Background(), `
		SELECT `+analysisColumns+`
		FROM analyses
		WHERE id = $1 AND workspace_id = $2 AND deleted_at IS NULL`,
		id, workspaceID)
	return scanAnalysis(row)
}

// GetAllByWorkspace retrieves all live analyses in a workspace, newest first
func (r *AnalysisRepository) GetAllByWorkspace(workspaceID int32) ([]*domain.Analysis, error) {
	rows, err := r.pool.Query(context.Background(), `
		SELECT `+analysisColumns+`
		FROM analyses
		WHERE workspace_id = $1 AND deleted_at IS NULL
		ORDER BY updated_at DESC`,
		workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var analyses []*domain.Analysis
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		analyses = append(analyses, a)
	}
	return analyses, rows.Err()
}

// Update rewrites every section of an existing live analysis
func (r *AnalysisRepository) Update(analysis *domain.Analysis) (*domain.Analysis, error) {
	args, err := analysisRow(analysis)
	if err != nil {
		return nil, err
	}
	args = append(args, analysis.ID)

	row := r.pool.QueryRow(context.Background(), `
		UPDATE analyses SET
			workspace_id = $1, name = $2, status = $3,
			property_info = $4, mortgage = $5, rent_occupancy = $6,
			operating_expenses = $7, capital_expenditures = $8,
			purchase_costs = $9, contingency = $10, appreciation = $11,
			current_step = $12, completed_steps = $13, dscr = $14, roi = $15,
			updated_at = now()
		WHERE id = $16 AND deleted_at IS NULL
		RETURNING `+analysisColumns, args...)
	return scanAnalysis(row)
}

// SoftDelete marks an analysis deleted without removing the row
func (r *AnalysisRepository) SoftDelete(workspaceID, id int32) error {
	tag, err := r.pool.Exec(context.Background(), `
		UPDATE analyses SET deleted_at = now(), updated_at = now()
		WHERE id = $1 AND workspace_id = $2 AND deleted_at IS NULL`,
		id, workspaceID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAnalysisNotFound
	}
	return nil
}
