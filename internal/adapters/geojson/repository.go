package geojson

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/jobrunner/meridian/internal/domain"
)

// Repository implements the CollectionRepository port over GeoJSON
// documents held in memory.
type Repository struct {
	mu          sync.RWMutex
	collections map[string]*domain.Collection
	features    map[string][]domain.Feature
}

// NewRepository creates a new GeoJSON repository.
func NewRepository() *Repository {
	return &Repository{
		collections: make(map[string]*domain.Collection),
		features:    make(map[string][]domain.Feature),
	}
}

// Open parses a GeoJSON document from disk and registers it as a
// collection. Re-opening an already loaded collection is a no-op and
// returns the existing metadata.
func (r *Repository) Open(ctx context.Context, path string) (*domain.Collection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	collectionID := DeriveCollectionID(path)

	if col, ok := r.collections[collectionID]; ok {
		return col, nil
	}

	data, err := os.ReadFile(path) //#nosec G304 -- path comes from the configured storage root
	if err != nil {
		return nil, &domain.StorageError{
			Operation: "open",
			Key:       path,
			Err:       err,
		}
	}

	col, features, err := r.parseCollection(ctx, collectionID, path, data)
	if err != nil {
		return nil, err
	}

	r.collections[collectionID] = col
	r.features[collectionID] = features

	return col, nil
}

// Close releases a loaded collection.
func (r *Repository) Close(_ context.Context, collectionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.collections, collectionID)
	delete(r.features, collectionID)
	return nil
}

// QueryPoint returns the features whose geometry contains the point.
// The collection bounding box acts as a cheap pre-filter.
func (r *Repository) QueryPoint(ctx context.Context, collectionID string, point domain.Point) ([]domain.Feature, error) {
	r.mu.RLock()
	col, ok := r.collections[collectionID]
	features := r.features[collectionID]
	r.mu.RUnlock()

	if !ok {
		return nil, domain.ErrCollectionNotFound
	}
	if !col.BBox.Contains(point) {
		return nil, nil
	}

	var matches []domain.Feature
	for i := range features {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		f := &features[i]
		if !f.BBox.Contains(point) {
			continue
		}
		if f.Geometry.Contains(point) {
			matches = append(matches, *f)
		}
	}
	return matches, nil
}

// QueryRadius returns the features whose anchor point lies within
// radiusKm of the point.
func (r *Repository) QueryRadius(ctx context.Context, collectionID string, point domain.Point, radiusKm float64) ([]domain.Feature, error) {
	r.mu.RLock()
	_, ok := r.collections[collectionID]
	features := r.features[collectionID]
	r.mu.RUnlock()

	if !ok {
		return nil, domain.ErrCollectionNotFound
	}
	if radiusKm < 0 {
		return nil, &domain.ValidationError{
			Field:      "radius",
			Value:      radiusKm,
			Constraint: ">= 0",
			Message:    "radius must not be negative",
		}
	}

	var matches []domain.Feature
	for i := range features {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		f := &features[i]
		if domain.Distance(point, f.Anchor()) <= radiusKm {
			matches = append(matches, *f)
		}
	}
	return matches, nil
}

// Features returns all features of a collection.
func (r *Repository) Features(_ context.Context, collectionID string) ([]domain.Feature, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	features, ok := r.features[collectionID]
	if !ok {
		return nil, domain.ErrCollectionNotFound
	}

	out := make([]domain.Feature, len(features))
	copy(out, features)
	return out, nil
}

// parseCollection decodes the full GeoJSON feature collection document.
func (r *Repository) parseCollection(ctx context.Context, collectionID, path string, data []byte) (*domain.Collection, []domain.Feature, error) {
	var raw rawCollection
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("parsing %s: %w", path, domain.ErrInvalidGeoJSON)
	}
	if raw.Type != "FeatureCollection" {
		return nil, nil, &domain.DecodeError{Expected: "FeatureCollection", Got: raw.Type}
	}

	features := make([]domain.Feature, 0, len(raw.Features))
	bbox := domain.BoundingBox{}
	for i, rawFeat := range raw.Features {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		feature, err := DecodeFeature(rawFeat)
		if err != nil {
			return nil, nil, fmt.Errorf("feature %d in %s: %w", i, path, err)
		}
		feature.ID = int64(i)
		feature.CollectionID = collectionID

		if i == 0 {
			bbox = feature.BBox
		} else {
			bbox = bbox.Union(feature.BBox)
		}
		features = append(features, *feature)
	}

	info, err := os.Stat(path)
	var size int64
	if err == nil {
		size = info.Size()
	}

	name := raw.Name
	if name == "" {
		name = collectionID
	}

	col := &domain.Collection{
		ID:           collectionID,
		Name:         name,
		Path:         path,
		Size:         size,
		FeatureCount: len(features),
		BBox:         bbox,
		Indexed:      true,
		LoadedAt:     time.Now(),
	}
	if raw.Metadata != nil {
		col.Metadata = domain.Metadata{
			Title:       raw.Metadata.Title,
			Description: raw.Metadata.Description,
			Creator:     raw.Metadata.Creator,
			Version:     raw.Metadata.Version,
			Keywords:    raw.Metadata.Keywords,
			Custom:      raw.Metadata.Custom,
		}
	}
	if raw.License != nil {
		col.License = domain.License{
			Name:        raw.License.Name,
			URL:         raw.License.URL,
			Attribution: raw.License.Attribution,
		}
	}

	return col, features, nil
}

// DeriveCollectionID derives a collection ID from the file path. It
// extracts the filename without extension as the identifier.
func DeriveCollectionID(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext)
}
