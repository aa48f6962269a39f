package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // registered for image.Decode
	"path/filepath"
	"strings"
	"time"

	_ "golang.org/x/image/webp" // registered for image.Decode

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/kmayhew/propfolio/propfolio-backend/internal/domain"
	"github.com/kmayhew/propfolio/propfolio-backend/internal/repository/storage"
)

const (
	MaxPhotoSize   = 5 * 1024 * 1024 // 5MB
	MinPhotoWidth  = 50
	MinPhotoHeight = 50
	ThumbnailWidth = 200
	DisplayWidth   = 800
	JPEGQuality    = 85

	// PhotoURLExpiry is how long presigned photo links stay valid
	PhotoURLExpiry = time.Hour
)

var (
	ErrPhotoTooLarge             = errors.New("file too large. Maximum size is 5MB")
	ErrInvalidPhotoFormat        = errors.New("invalid format. Supported: JPEG, PNG, WebP")
	ErrPhotoTooSmall             = errors.New("image too small. Minimum 50x50 pixels")
	ErrInvalidPhotoData          = errors.New("invalid image data")
	ErrPhotoStorageNotConfigured = errors.New("photo storage not configured")
)

// AllowedPhotoExtensions maps extensions to content types
var AllowedPhotoExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// PhotoMetadata carries presigned links for the stored size variants
type PhotoMetadata struct {
	ID           string    `json:"id"`
	Caption      string    `json:"caption"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	DisplayURL   string    `json:"displayUrl"`
	OriginalURL  string    `json:"originalUrl"`
	CreatedAt    time.Time `json:"createdAt"`
}

// PhotoService handles photo processing, storage and metadata
type PhotoService struct {
	store storage.ObjectStore
	repo  domain.PhotoRepository
}

// NewPhotoService creates a new PhotoService
func NewPhotoService(store storage.ObjectStore, repo domain.PhotoRepository) *PhotoService {
	return &PhotoService{store: store, repo: repo}
}

// IsEnabled indicates whether uploads/deletes are supported (storage configured).
func (s *PhotoService) IsEnabled() bool {
	return s != nil && s.store != nil
}

// ValidatePhoto validates photo format, size and dimensions
func (s *PhotoService) ValidatePhoto(data []byte, filename string) error {
	_, err := validateAndDecodePhoto(data, filename)
	return err
}

func validateAndDecodePhoto(data []byte, filename string) (image.Image, error) {
	if len(data) > MaxPhotoSize {
		return nil, ErrPhotoTooLarge
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := AllowedPhotoExtensions[ext]; !ok {
		return nil, ErrInvalidPhotoFormat
	}

	// Decode to verify the payload is a real image and check dimensions
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ErrInvalidPhotoData
	}

	bounds := img.Bounds()
	if bounds.Dx() < MinPhotoWidth || bounds.Dy() < MinPhotoHeight {
		return nil, ErrPhotoTooSmall
	}

	return img, nil
}

// Upload processes a photo (resize variants), uploads them and records metadata
func (s *PhotoService) Upload(ctx context.Context, workspaceID, analysisID int32, data []byte, filename, caption string) (*PhotoMetadata, error) {
	if !s.IsEnabled() {
		return nil, ErrPhotoStorageNotConfigured
	}

	img, err := validateAndDecodePhoto(data, filename)
	if err != nil {
		return nil, err
	}

	photoID := uuid.New().String()

	variants := []struct {
		name     string
		maxWidth int
	}{
		{"thumb", ThumbnailWidth},
		{"display", DisplayWidth},
		{"original", 0}, // 0 means keep original size
	}

	paths := make(map[string]string)

	for _, variant := range variants {
		var processed image.Image
		if variant.maxWidth > 0 && img.Bounds().Dx() > variant.maxWidth {
			// Resize maintaining aspect ratio
			processed = imaging.Resize(img, variant.maxWidth, 0, imaging.Lanczos)
		} else {
			processed = img
		}

		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, processed, &jpeg.Options{Quality: JPEGQuality}); err != nil {
			return nil, fmt.Errorf("failed to encode image: %w", err)
		}

		objectPath := storage.PhotoObjectPath(workspaceID, analysisID, photoID, variant.name, ".jpg")
		if _, err := s.store.Upload(ctx, objectPath, bytes.NewReader(buf.Bytes()), "image/jpeg", int64(buf.Len())); err != nil {
			// Clean up any already uploaded variants, best effort
			s.cleanupVariants(ctx, paths)
			return nil, fmt.Errorf("failed to upload %s variant: %w", variant.name, err)
		}

		paths[variant.name] = objectPath
	}

	photo := &domain.PropertyPhoto{
		ID:            photoID,
		AnalysisID:    analysisID,
		WorkspaceID:   workspaceID,
		Caption:       caption,
		ThumbnailPath: paths["thumb"],
		DisplayPath:   paths["display"],
		OriginalPath:  paths["original"],
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, photo); err != nil {
		s.cleanupVariants(ctx, paths)
		return nil, err
	}

	return s.toMetadata(ctx, photo)
}

// List returns the photos attached to an analysis, newest first
func (s *PhotoService) List(ctx context.Context, workspaceID, analysisID int32) ([]PhotoMetadata, error) {
	if !s.IsEnabled() {
		return nil, ErrPhotoStorageNotConfigured
	}

	photos, err := s.repo.GetAllByAnalysis(ctx, workspaceID, analysisID)
	if err != nil {
		return nil, err
	}

	result := make([]PhotoMetadata, 0, len(photos))
	for i := range photos {
		meta, err := s.toMetadata(ctx, &photos[i])
		if err != nil {
			return nil, err
		}
		result = append(result, *meta)
	}
	return result, nil
}

// Delete removes a photo's stored variants and its metadata row
func (s *PhotoService) Delete(ctx context.Context, workspaceID int32, photoID string) error {
	if !s.IsEnabled() {
		return ErrPhotoStorageNotConfigured
	}

	photo, err := s.repo.GetByID(ctx, workspaceID, photoID)
	if err != nil {
		return err
	}

	for _, objectPath := range []string{photo.ThumbnailPath, photo.DisplayPath, photo.OriginalPath} {
		if objectPath == "" {
			continue
		}
		// Best effort, a dangling blob is preferable to a stuck delete
		_ = s.store.Delete(ctx, objectPath)
	}

	return s.repo.Delete(ctx, workspaceID, photoID)
}

func (s *PhotoService) cleanupVariants(ctx context.Context, paths map[string]string) {
	for _, objectPath := range paths {
		_ = s.store.Delete(ctx, objectPath)
	}
}

func (s *PhotoService) toMetadata(ctx context.Context, photo *domain.PropertyPhoto) (*PhotoMetadata, error) {
	thumbURL, err := s.store.GeneratePresignedURL(ctx, photo.ThumbnailPath, PhotoURLExpiry)
	if err != nil {
		return nil, err
	}
	displayURL, err := s.store.GeneratePresignedURL(ctx, photo.DisplayPath, PhotoURLExpiry)
	if err != nil {
		return nil, err
	}
	originalURL, err := s.store.GeneratePresignedURL(ctx, photo.OriginalPath, PhotoURLExpiry)
	if err != nil {
		return nil, err
	}

	return &PhotoMetadata{
		ID:           photo.ID,
		Caption:      photo.Caption,
		ThumbnailURL: thumbURL,
		DisplayURL:   displayURL,
		OriginalURL:  originalURL,
		CreatedAt:    photo.CreatedAt,
	}, nil
}
