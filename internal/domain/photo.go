package domain

import (
	"context"
	"errors"
	"time"
)

var ErrPhotoNotFound = errors.New("photo not found")

// PropertyPhoto is a stored photo attached to an analysis. The path fields
// are object-store keys; presigned URLs are derived from them on read.
type PropertyPhoto struct {
	ID            string    `json:"id"`
	AnalysisID    int32     `json:"analysisId"`
	WorkspaceID   int32     `json:"workspaceId"`
	Caption       string    `json:"caption"`
	ThumbnailPath string    `json:"-"`
	DisplayPath   string    `json:"-"`
	OriginalPath  string    `json:"-"`
	CreatedAt     time.Time `json:"createdAt"`
}

// PhotoRepository defines the interface for photo metadata persistence
type PhotoRepository interface {
	Create(ctx context.Context, photo *PropertyPhoto) error
	GetByID(ctx context.Context, workspaceID int32, id string) (*PropertyPhoto, error)
	GetAllByAnalysis(ctx context.Context, workspaceID, analysisID int32) ([]PropertyPhoto, error)
	Delete(ctx context.Context, workspaceID int32, id string) error
}
