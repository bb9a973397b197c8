package output

import (
	"context"

	"github.com/jobrunner/meridian/internal/domain"
)

// CollectionRepository defines the secondary port for feature collection
// data access.
type CollectionRepository interface {
	// Open parses a GeoJSON document and returns the collection metadata.
	Open(ctx context.Context, path string) (*domain.Collection, error)

	// Close releases a loaded collection.
	Close(ctx context.Context, collectionID string) error

	// QueryPoint returns the features of a collection whose geometry
	// contains the point.
	QueryPoint(ctx context.Context, collectionID string, point domain.Point) ([]domain.Feature, error)

	// QueryRadius returns the features of a collection whose anchor
	// point lies within radiusKm of the point.
	QueryRadius(ctx context.Context, collectionID string, point domain.Point, radiusKm float64) ([]domain.Feature, error)

	// Features returns all features of a collection.
	Features(ctx context.Context, collectionID string) ([]domain.Feature, error)
}
