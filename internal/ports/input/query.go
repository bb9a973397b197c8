// Package input defines the primary/driving ports of the application.
package input

import (
	"context"

	"github.com/jobrunner/meridian/internal/domain"
)

// QueryService defines the primary port for spatial queries.
type QueryService interface {
	// QueryPoint performs a point-containment query across all
	// registered collections.
	QueryPoint(ctx context.Context, req domain.QueryRequest) (*domain.QueryResponse, error)

	// QueryPointInCollection performs a point-containment query in a
	// specific collection.
	QueryPointInCollection(ctx context.Context, collectionID string, req domain.QueryRequest) (*domain.QueryResult, error)

	// QueryRadius returns features whose anchor point lies within the
	// request radius of the request point.
	QueryRadius(ctx context.Context, req domain.QueryRequest) (*domain.QueryResponse, error)
}

// CollectionRegistry defines the primary port for collection management.
type CollectionRegistry interface {
	// ListCollections returns all registered collections.
	ListCollections(ctx context.Context) ([]domain.Collection, error)

	// GetCollection returns a specific collection by ID.
	GetCollection(ctx context.Context, id string) (*domain.Collection, error)

	// GetCollectionStatus returns the status of a collection.
	GetCollectionStatus(ctx context.Context, id string) (domain.CollectionStatus, error)
}

// RasterService defines the primary port for raster generation.
type RasterService interface {
	// BuildDensityRaster rasterizes the feature anchors of a collection
	// onto a width x height grid over the collection's bounding box.
	// The caller owns the returned raster and must Close it.
	BuildDensityRaster(ctx context.Context, collectionID string, width, height int) (*domain.Raster, error)
}

// HealthChecker defines the primary port for health checks.
type HealthChecker interface {
	// IsHealthy returns true if the service is healthy.
	IsHealthy(ctx context.Context) bool

	// IsReady returns true if the service is ready to accept requests.
	IsReady(ctx context.Context) bool

	// GetHealthDetails returns detailed health information.
	GetHealthDetails(ctx context.Context) HealthDetails
}

// HealthDetails contains detailed health information.
type HealthDetails struct {
	Healthy           bool              // Overall health status
	Ready             bool              // Ready to accept requests
	CollectionsLoaded int               // Number of loaded collections
	CollectionsReady  int               // Number of ready collections
	Components        map[string]string // Component statuses
}
