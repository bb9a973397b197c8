package application

import (
	"context"
	"io"

	"github.com/jobrunner/meridian/internal/domain"
	"github.com/jobrunner/meridian/internal/ports/output"
)

// mockRepository implements output.CollectionRepository for testing.
type mockRepository struct {
	collections map[string]*domain.Collection
	features    map[string][]domain.Feature
	openErr     error
	queryErr    error
}

func (m *mockRepository) Open(_ context.Context, path string) (*domain.Collection, error) {
	if m.openErr != nil {
		return nil, m.openErr
	}
	if m.collections != nil {
		if col, ok := m.collections[path]; ok {
			return col, nil
		}
	}
	id := deriveCollectionID(path)
	return &domain.Collection{
		ID:      id,
		Name:    id,
		Path:    path,
		Indexed: true,
	}, nil
}

func (m *mockRepository) Close(_ context.Context, _ string) error {
	return nil
}

func (m *mockRepository) QueryPoint(_ context.Context, collectionID string, point domain.Point) ([]domain.Feature, error) {
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	var matches []domain.Feature
	for _, f := range m.features[collectionID] {
		if f.Geometry.Contains(point) {
			matches = append(matches, f)
		}
	}
	return matches, nil
}

func (m *mockRepository) QueryRadius(_ context.Context, collectionID string, point domain.Point, radiusKm float64) ([]domain.Feature, error) {
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	var matches []domain.Feature
	for _, f := range m.features[collectionID] {
		if domain.Distance(point, f.Anchor()) <= radiusKm {
			matches = append(matches, f)
		}
	}
	return matches, nil
}

func (m *mockRepository) Features(_ context.Context, collectionID string) ([]domain.Feature, error) {
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	features, ok := m.features[collectionID]
	if !ok {
		return nil, domain.ErrCollectionNotFound
	}
	return features, nil
}

// mockStorage implements output.ObjectStorage for testing.
type mockStorage struct {
	objects     []output.StorageObject
	downloadErr error
	listErr     error
}

func (m *mockStorage) List(_ context.Context) ([]output.StorageObject, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.objects, nil
}

func (m *mockStorage) Download(_ context.Context, _, _ string) error {
	return m.downloadErr
}

func (m *mockStorage) GetReader(_ context.Context, _ string) (io.ReadCloser, error) {
	return nil, nil
}

func (m *mockStorage) Exists(_ context.Context, _ string) (bool, error) {
	return true, nil
}
