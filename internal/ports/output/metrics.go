package output

import "time"

// MetricsCollector defines the secondary port for metrics collection.
type MetricsCollector interface {
	// IncQueryCount increments the query counter.
	IncQueryCount(collectionID string, success bool)

	// ObserveQueryDuration records query duration.
	ObserveQueryDuration(collectionID string, duration time.Duration)

	// SetCollectionsLoaded sets the number of loaded collections.
	SetCollectionsLoaded(count int)

	// SetCollectionsReady sets the number of ready collections.
	SetCollectionsReady(count int)

	// IncGeometryOps increments the geometry operation counter.
	IncGeometryOps(operation string)

	// ObserveRasterBuildDuration records raster build duration.
	ObserveRasterBuildDuration(collectionID string, duration time.Duration)

	// IncStorageOperations increments storage operation counter.
	IncStorageOperations(operation string, success bool)

	// ObserveStorageDuration records storage operation duration.
	ObserveStorageDuration(operation string, duration time.Duration)
}

// NoOpMetrics is a no-op implementation of MetricsCollector.
type NoOpMetrics struct{}

// IncQueryCount implements MetricsCollector.
func (n *NoOpMetrics) IncQueryCount(_ string, _ bool) {}

// ObserveQueryDuration implements MetricsCollector.
func (n *NoOpMetrics) ObserveQueryDuration(_ string, _ time.Duration) {}

// SetCollectionsLoaded implements MetricsCollector.
func (n *NoOpMetrics) SetCollectionsLoaded(_ int) {}

// SetCollectionsReady implements MetricsCollector.
func (n *NoOpMetrics) SetCollectionsReady(_ int) {}

// IncGeometryOps implements MetricsCollector.
func (n *NoOpMetrics) IncGeometryOps(_ string) {}

// ObserveRasterBuildDuration implements MetricsCollector.
func (n *NoOpMetrics) ObserveRasterBuildDuration(_ string, _ time.Duration) {}

// IncStorageOperations implements MetricsCollector.
func (n *NoOpMetrics) IncStorageOperations(_ string, _ bool) {}

// ObserveStorageDuration implements MetricsCollector.
func (n *NoOpMetrics) ObserveStorageDuration(_ string, _ time.Duration) {}
