// Package application contains the application services.
package application

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/jobrunner/meridian/internal/domain"
	"github.com/jobrunner/meridian/internal/ports/output"
)

// CollectionRegistry manages loaded feature collections.
type CollectionRegistry struct {
	mu          sync.RWMutex
	collections map[string]*collectionEntry
	repo        output.CollectionRepository
	storage     output.ObjectStorage
	metrics     output.MetricsCollector
	logger      *slog.Logger
	localPath   string
}

type collectionEntry struct {
	Collection *domain.Collection
	Status     domain.CollectionStatus
	Error      error
}

// NewCollectionRegistry creates a new collection registry.
func NewCollectionRegistry(
	repo output.CollectionRepository,
	storage output.ObjectStorage,
	metrics output.MetricsCollector,
	logger *slog.Logger,
	localPath string,
) *CollectionRegistry {
	return &CollectionRegistry{
		collections: make(map[string]*collectionEntry),
		repo:        repo,
		storage:     storage,
		metrics:     metrics,
		logger:      logger,
		localPath:   localPath,
	}
}

// LoadCollection loads a GeoJSON collection from the given path.
func (r *CollectionRegistry) LoadCollection(ctx context.Context, path string) error {
	r.logger.Info("loading collection", "path", path)

	col, err := r.repo.Open(ctx, path)
	if err != nil {
		r.logger.Error("failed to open collection", "path", path, "error", err)
		return err
	}

	r.mu.Lock()
	r.collections[col.ID] = &collectionEntry{
		Collection: col,
		Status:     domain.StatusReady,
	}
	r.mu.Unlock()

	r.updateMetrics()
	r.logger.Info("collection loaded", "id", col.ID, "features", col.FeatureCount)

	return nil
}

// UnloadCollection unloads a collection.
func (r *CollectionRegistry) UnloadCollection(ctx context.Context, collectionID string) error {
	r.logger.Info("unloading collection", "id", collectionID)

	r.mu.Lock()
	if entry, ok := r.collections[collectionID]; ok {
		entry.Status = domain.StatusUnloading
	}
	r.mu.Unlock()

	if err := r.repo.Close(ctx, collectionID); err != nil {
		r.logger.Error("failed to close collection", "id", collectionID, "error", err)
		return err
	}

	r.mu.Lock()
	delete(r.collections, collectionID)
	r.mu.Unlock()

	r.updateMetrics()
	return nil
}

// ListCollections returns all registered collections.
func (r *CollectionRegistry) ListCollections(_ context.Context) ([]domain.Collection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	collections := make([]domain.Collection, 0, len(r.collections))
	for _, entry := range r.collections {
		collections = append(collections, *entry.Collection)
	}

	return collections, nil
}

// GetCollection returns a specific collection by ID.
func (r *CollectionRegistry) GetCollection(_ context.Context, id string) (*domain.Collection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.collections[id]
	if !ok {
		return nil, domain.ErrCollectionNotFound
	}

	return entry.Collection, nil
}

// GetCollectionStatus returns the status of a collection.
func (r *CollectionRegistry) GetCollectionStatus(_ context.Context, id string) (domain.CollectionStatus, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.collections[id]
	if !ok {
		return "", domain.ErrCollectionNotFound
	}

	return entry.Status, nil
}

// IsReady returns true if a collection is ready for queries.
func (r *CollectionRegistry) IsReady(collectionID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.collections[collectionID]
	if !ok {
		return false
	}

	return entry.Status == domain.StatusReady
}

// ReadyCollectionIDs returns IDs of all ready collections.
func (r *CollectionRegistry) ReadyCollectionIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0)
	for id, entry := range r.collections {
		if entry.Status == domain.StatusReady {
			ids = append(ids, id)
		}
	}
	return ids
}

// updateMetrics updates the metrics collector with current collection counts.
func (r *CollectionRegistry) updateMetrics() {
	r.mu.RLock()
	total := len(r.collections)
	ready := 0
	for _, entry := range r.collections {
		if entry.Status == domain.StatusReady {
			ready++
		}
	}
	r.mu.RUnlock()

	r.metrics.SetCollectionsLoaded(total)
	r.metrics.SetCollectionsReady(ready)
}

// LoadAll loads all collections from storage.
func (r *CollectionRegistry) LoadAll(ctx context.Context) error {
	r.logger.Info("loading all collections from storage")

	objects, err := r.storage.List(ctx)
	if err != nil {
		return err
	}

	for _, obj := range objects {
		localPath := filepath.Join(r.localPath, obj.Key)
		if err := r.storage.Download(ctx, obj.Key, localPath); err != nil {
			r.logger.Error("failed to download collection", "key", obj.Key, "error", err)
			continue
		}

		if err := r.LoadCollection(ctx, localPath); err != nil {
			r.logger.Error("failed to load collection", "path", localPath, "error", err)
		}
	}

	return nil
}

// IsLoaded returns true if a collection with the given ID is already loaded.
func (r *CollectionRegistry) IsLoaded(collectionID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.collections[collectionID]
	return ok
}

// CollectionCount returns the number of loaded collections.
func (r *CollectionRegistry) CollectionCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.collections)
}

// SyncStats contains statistics from a sync operation.
type SyncStats struct {
	Added   int
	Removed int
}

// Sync synchronizes with remote storage, downloading new collections and
// removing collections that no longer exist in remote storage.
// Returns statistics about added and removed collections.
func (r *CollectionRegistry) Sync(ctx context.Context) (SyncStats, error) {
	r.logger.Info("syncing collections from storage")

	objects, err := r.storage.List(ctx)
	if err != nil {
		return SyncStats{}, err
	}

	// Build set of remote collection IDs
	remoteCollections := make(map[string]string) // collectionID -> objectKey
	for _, obj := range objects {
		collectionID := deriveCollectionID(obj.Key)
		remoteCollections[collectionID] = obj.Key
	}

	stats := SyncStats{}

	// Add new collections
	for collectionID, objectKey := range remoteCollections {
		if r.IsLoaded(collectionID) {
			r.logger.Debug("collection already loaded, skipping", "id", collectionID)
			continue
		}

		localPath := filepath.Join(r.localPath, objectKey)
		if err := r.storage.Download(ctx, objectKey, localPath); err != nil {
			r.logger.Error("failed to download collection", "key", objectKey, "error", err)
			continue
		}

		if err := r.LoadCollection(ctx, localPath); err != nil {
			r.logger.Error("failed to load collection", "path", localPath, "error", err)
			continue
		}

		stats.Added++
		r.logger.Info("new collection synced", "id", collectionID)
	}

	// Remove collections that no longer exist in remote storage
	collectionsToRemove := r.findCollectionsToRemove(remoteCollections)
	for _, collectionID := range collectionsToRemove {
		r.logger.Info("removing collection not in remote storage", "id", collectionID)

		localPath := r.getCollectionPath(collectionID)

		if err := r.UnloadCollection(ctx, collectionID); err != nil {
			r.logger.Error("failed to unload removed collection", "id", collectionID, "error", err)
			continue
		}

		// Delete local cache file
		if localPath != "" {
			if err := os.Remove(localPath); err != nil && !os.IsNotExist(err) {
				r.logger.Warn("failed to delete local cache file", "path", localPath, "error", err)
			} else {
				r.logger.Debug("deleted local cache file", "path", localPath)
			}
		}

		stats.Removed++
	}

	r.logger.Info("sync completed", "added", stats.Added, "removed", stats.Removed, "total", r.CollectionCount())
	return stats, nil
}

// findCollectionsToRemove returns collection IDs that are loaded but not in remote storage.
func (r *CollectionRegistry) findCollectionsToRemove(remoteCollections map[string]string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var toRemove []string
	for collectionID := range r.collections {
		if _, exists := remoteCollections[collectionID]; !exists {
			toRemove = append(toRemove, collectionID)
		}
	}
	return toRemove
}

// getCollectionPath returns the local file path for a loaded collection.
func (r *CollectionRegistry) getCollectionPath(collectionID string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if entry, ok := r.collections[collectionID]; ok && entry.Collection != nil {
		return entry.Collection.Path
	}
	return ""
}

// deriveCollectionID extracts a collection ID from a file path or object key.
func deriveCollectionID(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return base[:len(base)-len(ext)]
}
