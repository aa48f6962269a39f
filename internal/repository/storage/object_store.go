package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"
)

// ObjectStore defines the interface for report and photo blob storage
type ObjectStore interface {
	Upload(ctx context.Context, objectPath string, data io.Reader, contentType string, size int64) (string, error)
	Delete(ctx context.Context, objectPath string) error
	GeneratePresignedURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error)
}

// ReportObjectPath creates a unique object path for an exported report.
func ReportObjectPath(workspaceID, analysisID int32) string {
	return path.Join("reports", fmt.Sprintf("%d", workspaceID), fmt.Sprintf("%d", analysisID),
		uuid.New().String()+".pdf")
}

// PhotoObjectPath creates a unique object path for a property photo variant.
func PhotoObjectPath(workspaceID, analysisID int32, photoID, variant, ext string) string {
	filename := fmt.Sprintf("%s_%s%s", photoID, variant, ext)
	return path.Join("photos", fmt.Sprintf("%d", workspaceID), fmt.Sprintf("%d", analysisID), filename)
}
