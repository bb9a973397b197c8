package domain

import "time"

// Collection represents a registered GeoJSON feature collection.
type Collection struct {
	ID           string      // Unique identifier (derived from filename)
	Name         string      // Display name
	Path         string      // File path
	Size         int64       // File size in bytes
	FeatureCount int         // Number of parsed features
	BBox         BoundingBox // Bounding box over all features
	Metadata     Metadata    // Collection metadata
	License      License     // License information
	Indexed      bool        // Are per-feature bounding boxes computed?
	LoadedAt     time.Time   // Load timestamp
	LastQueried  time.Time   // Last query timestamp
}

// IsReady returns true if the collection is indexed and ready for
// queries.
func (c *Collection) IsReady() bool {
	return c.Indexed
}

// CollectionStatus represents the lifecycle state of a collection.
type CollectionStatus string

const (
	StatusLoading   CollectionStatus = "loading"
	StatusIndexing  CollectionStatus = "indexing"
	StatusReady     CollectionStatus = "ready"
	StatusError     CollectionStatus = "error"
	StatusUnloading CollectionStatus = "unloading"
)
