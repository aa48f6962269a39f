package testutil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kmayhew/propfolio/propfolio-backend/internal/domain"
	"github.com/kmayhew/propfolio/propfolio-backend/internal/websocket"
)

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	Users    map[string]*domain.User
	ByID     map[uuid.UUID]*domain.User
	CreateFn func(auth0ID, email string, name, pictureURL *string) (*domain.User, error)
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users: make(map[string]*domain.User),
		ByID:  make(map[uuid.UUID]*domain.User),
	}
}

// GetByID retrieves a user by ID
func (m *MockUserRepository) GetByID(id uuid.UUID) (*domain.User, error) {
	if user, ok := m.ByID[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// GetByAuth0ID retrieves a user by Auth0 ID
func (m *MockUserRepository) GetByAuth0ID(auth0ID string) (*domain.User, error) {
	if user, ok := m.Users[auth0ID]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// CreateOrGetByAuth0ID creates or retrieves a user by Auth0 ID
func (m *MockUserRepository) CreateOrGetByAuth0ID(auth0ID, email string, name, pictureURL *string) (*domain.User, error) {
	if m.CreateFn != nil {
		return m.CreateFn(auth0ID, email, name, pictureURL)
	}
	if user, ok := m.Users[auth0ID]; ok {
		return user, nil
	}
	user := &domain.User{
		ID:         uuid.New(),
		Auth0ID:    auth0ID,
		Email:      email,
		Name:       name,
		PictureURL: pictureURL,
		CreatedAt:  time.Now(),
	}
	m.Users[auth0ID] = user
	m.ByID[user.ID] = user
	return user, nil
}

// MockWorkspaceRepository is a mock implementation of domain.WorkspaceRepository
type MockWorkspaceRepository struct {
	Workspaces map[int32]*domain.Workspace
	ByUserID   map[uuid.UUID]*domain.Workspace
	ByAuth0ID  map[string]*domain.Workspace
	NextID     int32
	CreateErr  error
}

// NewMockWorkspaceRepository creates a new MockWorkspaceRepository
func NewMockWorkspaceRepository() *MockWorkspaceRepository {
	return &MockWorkspaceRepository{
		Workspaces: make(map[int32]*domain.Workspace),
		ByUserID:   make(map[uuid.UUID]*domain.Workspace),
		ByAuth0ID:  make(map[string]*domain.Workspace),
		NextID:     1,
	}
}

// GetByID retrieves a workspace by ID
func (m *MockWorkspaceRepository) GetByID(id int32) (*domain.Workspace, error) {
	if ws, ok := m.Workspaces[id]; ok {
		return ws, nil
	}
	return nil, domain.ErrWorkspaceNotFound
}

// GetByUserID retrieves a workspace by the owning user's ID
func (m *MockWorkspaceRepository) GetByUserID(userID uuid.UUID) (*domain.Workspace, error) {
	if ws, ok := m.ByUserID[userID]; ok {
		return ws, nil
	}
	return nil, domain.ErrWorkspaceNotFound
}

// GetByUserAuth0ID retrieves a workspace by the owning user's Auth0 ID.
// Tests register entries in ByAuth0ID directly.
func (m *MockWorkspaceRepository) GetByUserAuth0ID(auth0ID string) (*domain.Workspace, error) {
	if ws, ok := m.ByAuth0ID[auth0ID]; ok {
		return ws, nil
	}
	return nil, domain.ErrWorkspaceNotFound
}

// Create creates a new workspace
func (m *MockWorkspaceRepository) Create(workspace *domain.Workspace) (*domain.Workspace, error) {
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	workspace.ID = m.NextID
	m.NextID++
	workspace.CreatedAt = time.Now()
	m.Workspaces[workspace.ID] = workspace
	m.ByUserID[workspace.UserID] = workspace
	return workspace, nil
}

// MockAnalysisRepository is a mock implementation of domain.AnalysisRepository
type MockAnalysisRepository struct {
	Analyses  map[int32]*domain.Analysis
	NextID    int32
	CreateErr error
	UpdateErr error
}

// NewMockAnalysisRepository creates a new MockAnalysisRepository
func NewMockAnalysisRepository() *MockAnalysisRepository {
	return &MockAnalysisRepository{
		Analyses: make(map[int32]*domain.Analysis),
		NextID:   1,
	}
}

// Create creates a new analysis
func (m *MockAnalysisRepository) Create(analysis *domain.Analysis) (*domain.Analysis, error) {
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	analysis.ID = m.NextID
	m.NextID++
	analysis.CreatedAt = time.Now()
	analysis.UpdatedAt = analysis.CreatedAt
	m.Analyses[analysis.ID] = analysis
	return analysis, nil
}

// GetByID retrieves an analysis scoped to a workspace
func (m *MockAnalysisRepository) GetByID(workspaceID, id int32) (*domain.Analysis, error) {
	analysis, ok := m.Analyses[id]
	if !ok || analysis.WorkspaceID != workspaceID || analysis.DeletedAt != nil {
		return nil, domain.ErrAnalysisNotFound
	}
	return analysis, nil
}

// GetAllByWorkspace retrieves all live analyses in a workspace
func (m *MockAnalysisRepository) GetAllByWorkspace(workspaceID int32) ([]*domain.Analysis, error) {
	var result []*domain.Analysis
	for _, a := range m.Analyses {
		if a.WorkspaceID == workspaceID && a.DeletedAt == nil {
			result = append(result, a)
		}
	}
	return result, nil
}

// Update updates an existing analysis
func (m *MockAnalysisRepository) Update(analysis *domain.Analysis) (*domain.Analysis, error) {
	if m.UpdateErr != nil {
		return nil, m.UpdateErr
	}
	existing, ok := m.Analyses[analysis.ID]
	if !ok || existing.DeletedAt != nil {
		return nil, domain.ErrAnalysisNotFound
	}
	analysis.UpdatedAt = time.Now()
	m.Analyses[analysis.ID] = analysis
	return analysis, nil
}

// SoftDelete marks an analysis deleted
func (m *MockAnalysisRepository) SoftDelete(workspaceID, id int32) error {
	analysis, ok := m.Analyses[id]
	if !ok || analysis.WorkspaceID != workspaceID || analysis.DeletedAt != nil {
		return domain.ErrAnalysisNotFound
	}
	now := time.Now()
	analysis.DeletedAt = &now
	return nil
}

// MockPhotoRepository is a mock implementation of domain.PhotoRepository
type MockPhotoRepository struct {
	Photos map[string]*domain.PropertyPhoto
}

// NewMockPhotoRepository creates a new MockPhotoRepository
func NewMockPhotoRepository() *MockPhotoRepository {
	return &MockPhotoRepository{Photos: make(map[string]*domain.PropertyPhoto)}
}

// Create stores a photo metadata row
func (m *MockPhotoRepository) Create(_ context.Context, photo *domain.PropertyPhoto) error {
	m.Photos[photo.ID] = photo
	return nil
}

// GetByID retrieves a photo scoped to a workspace
func (m *MockPhotoRepository) GetByID(_ context.Context, workspaceID int32, id string) (*domain.PropertyPhoto, error) {
	photo, ok := m.Photos[id]
	if !ok || photo.WorkspaceID != workspaceID {
		return nil, domain.ErrPhotoNotFound
	}
	return photo, nil
}

// GetAllByAnalysis retrieves all photos for an analysis
func (m *MockPhotoRepository) GetAllByAnalysis(_ context.Context, workspaceID, analysisID int32) ([]domain.PropertyPhoto, error) {
	var result []domain.PropertyPhoto
	for _, p := range m.Photos {
		if p.WorkspaceID == workspaceID && p.AnalysisID == analysisID {
			result = append(result, *p)
		}
	}
	return result, nil
}

// Delete removes a photo metadata row
func (m *MockPhotoRepository) Delete(_ context.Context, workspaceID int32, id string) error {
	photo, ok := m.Photos[id]
	if !ok || photo.WorkspaceID != workspaceID {
		return domain.ErrPhotoNotFound
	}
	delete(m.Photos, id)
	return nil
}

// MockObjectStore is an in-memory object store for tests
type MockObjectStore struct {
	mu        sync.Mutex
	Objects   map[string][]byte
	UploadErr error
	Deleted   []string
}

// NewMockObjectStore creates a new MockObjectStore
func NewMockObjectStore() *MockObjectStore {
	return &MockObjectStore{Objects: make(map[string][]byte)}
}

// Upload stores the object bytes in memory
func (m *MockObjectStore) Upload(_ context.Context, objectPath string, data io.Reader, _ string, _ int64) (string, error) {
	if m.UploadErr != nil {
		return "", m.UploadErr
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(data); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Objects[objectPath] = buf.Bytes()
	return objectPath, nil
}

// Delete removes the object and records the path
func (m *MockObjectStore) Delete(_ context.Context, objectPath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Objects, objectPath)
	m.Deleted = append(m.Deleted, objectPath)
	return nil
}

// GeneratePresignedURL returns a deterministic fake URL for the object
func (m *MockObjectStore) GeneratePresignedURL(_ context.Context, objectPath string, _ time.Duration) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Objects[objectPath]; !ok {
		return "", fmt.Errorf("object not found: %s", objectPath)
	}
	return "https://storage.test/" + objectPath + "?signed=1", nil
}

// RecordingPublisher captures published events for assertions
type RecordingPublisher struct {
	mu     sync.Mutex
	Events []websocket.Event
}

// Publish records the event
func (p *RecordingPublisher) Publish(_ int32, event websocket.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, event)
}

// EventTypes lists the combined type strings of all recorded events in order
func (p *RecordingPublisher) EventTypes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, 0, len(p.Events))
	for _, e := range p.Events {
		types = append(types, e.Type)
	}
	return types
}
