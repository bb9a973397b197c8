package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/jobrunner/meridian/internal/domain"
	"github.com/jobrunner/meridian/internal/ports/output"
)

// QueryService handles spatial queries across collections.
type QueryService struct {
	registry      *CollectionRegistry
	repo          output.CollectionRepository
	metrics       output.MetricsCollector
	logger        *slog.Logger
	maxFeatures   int
	defaultRadius float64
}

// QueryServiceConfig holds configuration for the query service.
type QueryServiceConfig struct {
	MaxFeatures     int
	DefaultRadiusKm float64
}

// NewQueryService creates a new query service.
func NewQueryService(
	registry *CollectionRegistry,
	repo output.CollectionRepository,
	metrics output.MetricsCollector,
	logger *slog.Logger,
	cfg QueryServiceConfig,
) *QueryService {
	if cfg.MaxFeatures == 0 {
		cfg.MaxFeatures = 1000
	}
	if cfg.DefaultRadiusKm == 0 {
		cfg.DefaultRadiusKm = 10.0
	}

	return &QueryService{
		registry:      registry,
		repo:          repo,
		metrics:       metrics,
		logger:        logger,
		maxFeatures:   cfg.MaxFeatures,
		defaultRadius: cfg.DefaultRadiusKm,
	}
}

// QueryPoint performs a point-containment query across all registered
// collections.
func (s *QueryService) QueryPoint(ctx context.Context, req domain.QueryRequest) (*domain.QueryResponse, error) {
	return s.queryAll(ctx, req, s.QueryPointInCollection)
}

// QueryRadius returns features whose anchor point lies within the
// request radius of the request point across all registered collections.
func (s *QueryService) QueryRadius(ctx context.Context, req domain.QueryRequest) (*domain.QueryResponse, error) {
	if req.RadiusKm == 0 {
		req.RadiusKm = s.defaultRadius
	}
	return s.queryAll(ctx, req, s.queryRadiusInCollection)
}

// queryAll fans a per-collection query out over the ready collections.
func (s *QueryService) queryAll(
	ctx context.Context,
	req domain.QueryRequest,
	query func(context.Context, string, domain.QueryRequest) (*domain.QueryResult, error),
) (*domain.QueryResponse, error) {
	start := time.Now()

	response := &domain.QueryResponse{
		Point: req.Point,
	}

	if err := req.Point.Validate(); err != nil {
		return nil, err
	}

	collectionIDs := s.registry.ReadyCollectionIDs()

	// Filter by specific collection if requested
	if req.CollectionID != "" {
		found := false
		for _, id := range collectionIDs {
			if id == req.CollectionID {
				collectionIDs = []string{req.CollectionID}
				found = true
				break
			}
		}
		if !found {
			return nil, domain.ErrCollectionNotFound
		}
	}

	for _, colID := range collectionIDs {
		result, err := query(ctx, colID, req)
		if err != nil {
			s.logger.Warn("query failed for collection", "collection", colID, "error", err)
			s.metrics.IncQueryCount(colID, false)
			continue
		}

		if result.HasFeatures() {
			response.AddResult(*result)
		}
		s.metrics.IncQueryCount(colID, true)
	}

	response.ProcessingTime = time.Since(start)
	return response, nil
}

// QueryPointInCollection performs a point-containment query in a
// specific collection.
func (s *QueryService) QueryPointInCollection(ctx context.Context, collectionID string, req domain.QueryRequest) (*domain.QueryResult, error) {
	return s.queryCollection(ctx, collectionID, func(ctx context.Context) ([]domain.Feature, error) {
		return s.repo.QueryPoint(ctx, collectionID, req.Point)
	}, req.Properties)
}

// queryRadiusInCollection performs a radius query in a specific
// collection.
func (s *QueryService) queryRadiusInCollection(ctx context.Context, collectionID string, req domain.QueryRequest) (*domain.QueryResult, error) {
	return s.queryCollection(ctx, collectionID, func(ctx context.Context) ([]domain.Feature, error) {
		return s.repo.QueryRadius(ctx, collectionID, req.Point, req.RadiusKm)
	}, req.Properties)
}

// queryCollection runs a repository query against one collection and
// assembles the result with license and timing information.
func (s *QueryService) queryCollection(
	ctx context.Context,
	collectionID string,
	query func(context.Context) ([]domain.Feature, error),
	properties []string,
) (*domain.QueryResult, error) {
	start := time.Now()

	col, err := s.registry.GetCollection(ctx, collectionID)
	if err != nil {
		return nil, err
	}

	result := &domain.QueryResult{
		CollectionID:   col.ID,
		CollectionName: col.Name,
		License:        col.License,
	}

	features, err := query(ctx)
	if err != nil {
		return nil, &domain.QueryError{CollectionID: collectionID, Err: err}
	}

	if len(properties) > 0 {
		features = s.filterProperties(features, properties)
	}
	if len(features) > s.maxFeatures {
		features = features[:s.maxFeatures]
	}
	result.Features = features

	result.QueryTime = time.Since(start)
	s.metrics.ObserveQueryDuration(collectionID, result.QueryTime)

	return result, nil
}

// filterProperties filters feature properties to only include requested ones.
func (s *QueryService) filterProperties(features []domain.Feature, properties []string) []domain.Feature {
	propSet := make(map[string]bool, len(properties))
	for _, p := range properties {
		propSet[p] = true
	}

	for i := range features {
		filtered := make(map[string]interface{})
		for key, value := range features[i].Properties {
			if propSet[key] {
				filtered[key] = value
			}
		}
		features[i].Properties = filtered
	}

	return features
}
