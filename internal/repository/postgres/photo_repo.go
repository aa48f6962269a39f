package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kmayhew/propfolio/propfolio-backend/internal/domain"
)

// PhotoRepository implements domain.PhotoRepository using PostgreSQL
type PhotoRepository struct {
	pool *pgxpool.Pool
}

// NewPhotoRepository creates a new PhotoRepository
func NewPhotoRepository(pool *pgxpool.Pool) *PhotoRepository {
	return &PhotoRepository{pool: pool}
}

const photoColumns = `id, analysis_id, workspace_id, caption,
	thumbnail_path, display_path, original_path, created_at`

func scanPhoto(row pgx.Row) (*domain.PropertyPhoto, error) {
	var p domain.PropertyPhoto
	if err := row.Scan(&p.ID, &p.AnalysisID, &p.WorkspaceID, &p.Caption,
		&p.ThumbnailPath, &p.DisplayPath, &p.OriginalPath, &p.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrPhotoNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Create stores a photo metadata row
func (r *PhotoRepository) Create(ctx context.Context, photo *domain.PropertyPhoto) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO property_photos (id, analysis_id, workspace_id, caption,
			thumbnail_path, display_path, original_path, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		photo.ID, photo.AnalysisID, photo.WorkspaceID, photo.Caption,
		photo.ThumbnailPath, photo.DisplayPath, photo.OriginalPath, photo.CreatedAt)
	return err
}

// GetByID retrieves a photo scoped to a workspace
func (r *PhotoRepository) GetByID(ctx context.Context, workspaceID int32, id string) (*domain.PropertyPhoto, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+photoColumns+`
		FROM property_photos
		WHERE id = $1 AND workspace_id = $2`,
		id, workspaceID)
	return scanPhoto(row)
}

// GetAllByAnalysis retrieves all photos for an analysis, newest first
func (r *PhotoRepository) GetAllByAnalysis(ctx context.Context, workspaceID, analysisID int32) ([]domain.PropertyPhoto, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+photoColumns+`
		FROM property_photos
		WHERE workspace_id = $1 AND analysis_id = $2
		ORDER BY created_at DESC`,
		workspaceID, analysisID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var photos []domain.PropertyPhoto
	for rows.Next() {
		p, err := scanPhoto(rows)
		if err != nil {
			return nil, err
		}
		photos = append(photos, *p)
	}
	return photos, rows.Err()
}

// Delete removes a photo metadata row
func (r *PhotoRepository) Delete(ctx context.Context, workspaceID int32, id string) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM property_photos
		WHERE id = $1 AND workspace_id = $2`,
		id, workspaceID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPhotoNotFound
	}
	return nil
}
