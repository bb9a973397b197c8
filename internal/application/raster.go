package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/jobrunner/meridian/internal/domain"
	"github.com/jobrunner/meridian/internal/ports/output"
)

// RasterService builds density rasters over collections.
type RasterService struct {
	registry  *CollectionRegistry
	repo      output.CollectionRepository
	metrics   output.MetricsCollector
	logger    *slog.Logger
	maxWidth  int
	maxHeight int
}

// RasterServiceConfig holds configuration for the raster service.
type RasterServiceConfig struct {
	MaxWidth  int
	MaxHeight int
}

// NewRasterService creates a new raster service.
func NewRasterService(
	registry *CollectionRegistry,
	repo output.CollectionRepository,
	metrics output.MetricsCollector,
	logger *slog.Logger,
	cfg RasterServiceConfig,
) *RasterService {
	if cfg.MaxWidth == 0 {
		cfg.MaxWidth = 4096
	}
	if cfg.MaxHeight == 0 {
		cfg.MaxHeight = 4096
	}

	return &RasterService{
		registry:  registry,
		repo:      repo,
		metrics:   metrics,
		logger:    logger,
		maxWidth:  cfg.MaxWidth,
		maxHeight: cfg.MaxHeight,
	}
}

// BuildDensityRaster rasterizes the feature anchors of a collection onto
// a width x height grid over the collection's bounding box. Each cell
// holds the number of anchors that fall into it. The caller owns the
// returned raster and must Close it.
func (s *RasterService) BuildDensityRaster(ctx context.Context, collectionID string, width, height int) (*domain.Raster, error) {
	start := time.Now()

	if width <= 0 || width > s.maxWidth {
		return nil, &domain.ValidationError{
			Field:      "width",
			Value:      width,
			Constraint: "1 <= width <= max",
			Message:    "raster width out of range",
		}
	}
	if height <= 0 || height > s.maxHeight {
		return nil, &domain.ValidationError{
			Field:      "height",
			Value:      height,
			Constraint: "1 <= height <= max",
			Message:    "raster height out of range",
		}
	}

	col, err := s.registry.GetCollection(ctx, collectionID)
	if err != nil {
		return nil, err
	}

	features, err := s.repo.Features(ctx, collectionID)
	if err != nil {
		return nil, &domain.QueryError{CollectionID: collectionID, Err: err}
	}

	bounds := col.BBox
	raster := domain.NewRaster(width, height, bounds)

	cellWidth := bounds.Width() / float64(width)
	cellHeight := bounds.Height() / float64(height)

	for i := range features {
		if err := ctx.Err(); err != nil {
			raster.Close()
			return nil, err
		}

		anchor := features[i].Anchor()
		if !bounds.Contains(anchor) {
			continue
		}

		x, y := 0, 0
		if cellWidth > 0 {
			x = int((anchor.Lng - bounds.MinLng) / cellWidth)
		}
		if cellHeight > 0 {
			y = int((anchor.Lat - bounds.MinLat) / cellHeight)
		}
		// Anchors on the max edge land in the last cell.
		if x == width {
			x = width - 1
		}
		if y == height {
			y = height - 1
		}

		raster.Add(x, y, 1)
	}

	duration := time.Since(start)
	s.metrics.ObserveRasterBuildDuration(collectionID, duration)
	s.logger.Debug("density raster built",
		"collection", collectionID, "width", width, "height", height,
		"features", len(features), "duration", duration)

	return raster, nil
}
