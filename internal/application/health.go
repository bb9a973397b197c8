package application

import (
	"context"

	"github.com/jobrunner/meridian/internal/domain"
	"github.com/jobrunner/meridian/internal/ports/input"
)

// HealthService provides health check functionality.
type HealthService struct {
	registry *CollectionRegistry
}

// NewHealthService creates a new health service.
func NewHealthService(registry *CollectionRegistry) *HealthService {
	return &HealthService{
		registry: registry,
	}
}

// IsHealthy returns true if the service is healthy.
func (s *HealthService) IsHealthy(ctx context.Context) bool {
	return true // Basic health check
}

// IsReady returns true if the service is ready to accept requests.
func (s *HealthService) IsReady(ctx context.Context) bool {
	collections, err := s.registry.ListCollections(ctx)
	if err != nil {
		return false
	}

	// Ready if at least one collection is ready
	for _, col := range collections {
		if col.IsReady() {
			return true
		}
	}

	// Also ready if no collections are configured (empty state)
	return len(collections) == 0
}

// GetHealthDetails returns detailed health information.
func (s *HealthService) GetHealthDetails(ctx context.Context) input.HealthDetails {
	collections, _ := s.registry.ListCollections(ctx)

	loaded := len(collections)
	ready := 0
	for _, col := range collections {
		if col.IsReady() {
			ready++
		}
	}

	components := map[string]string{
		"storage": "ok",
	}

	return input.HealthDetails{
		Healthy:           s.IsHealthy(ctx),
		Ready:             s.IsReady(ctx),
		CollectionsLoaded: loaded,
		CollectionsReady:  ready,
		Components:        components,
	}
}

// CollectionHealth contains health info for a single collection.
type CollectionHealth struct {
	ID     string
	Status domain.CollectionStatus
	Ready  bool
}

// GetCollectionHealth returns health info for all collections.
func (s *HealthService) GetCollectionHealth(ctx context.Context) []CollectionHealth {
	collections, _ := s.registry.ListCollections(ctx)

	health := make([]CollectionHealth, len(collections))
	for i, col := range collections {
		status, _ := s.registry.GetCollectionStatus(ctx, col.ID)
		health[i] = CollectionHealth{
			ID:     col.ID,
			Status: status,
			Ready:  col.IsReady(),
		}
	}

	return health
}
