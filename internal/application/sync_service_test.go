package application

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/jobrunner/meridian/internal/ports/output"
)

func newSyncTestRegistry(storage *mockStorage) *CollectionRegistry {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return &CollectionRegistry{
		collections: make(map[string]*collectionEntry),
		repo:        &mockRepository{},
		logger:      logger,
		localPath:   "/tmp",
		storage:     storage,
		metrics:     &output.NoOpMetrics{},
	}
}

func TestSyncService_RateLimiting(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	registry := newSyncTestRegistry(&mockStorage{})

	service := NewSyncService(registry, time.Hour, logger)

	ctx := context.Background()

	// First call should succeed (sync will return 0 added since storage is empty)
	result, err := service.TriggerSync(ctx)
	if err != nil {
		t.Errorf("first sync should succeed, got error: %v", err)
	}
	if result.CollectionsAdded != 0 {
		t.Errorf("expected 0 collections added with empty storage, got %d", result.CollectionsAdded)
	}

	// Immediate second call should be rate limited
	_, err = service.TriggerSync(ctx)
	if err != ErrRateLimited {
		t.Errorf("expected ErrRateLimited, got %v", err)
	}
}

func TestSyncService_StartStop(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	registry := newSyncTestRegistry(&mockStorage{})

	// Use a short interval for testing
	service := NewSyncService(registry, 100*time.Millisecond, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start the service
	service.Start(ctx)

	// Give it a moment to start
	time.Sleep(50 * time.Millisecond)

	// Stop the service
	service.Stop()

	// Should complete without hanging
}

func TestSyncService_Interval(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	registry := newSyncTestRegistry(&mockStorage{})

	interval := 2 * time.Hour
	service := NewSyncService(registry, interval, logger)

	if service.Interval() != interval {
		t.Errorf("expected interval %v, got %v", interval, service.Interval())
	}
}

func TestSyncService_SyncAddsNewCollections(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	storage := &mockStorage{
		objects: []output.StorageObject{
			{Key: "districts.geojson"},
			{Key: "pois.geojson"},
		},
	}
	registry := newSyncTestRegistry(storage)

	service := NewSyncService(registry, time.Hour, logger)

	ctx := context.Background()

	// First sync should add collections
	result, err := service.TriggerSync(ctx)
	if err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	if result.CollectionsAdded != 2 {
		t.Errorf("expected 2 collections added, got %d", result.CollectionsAdded)
	}
	if result.CollectionsTotal != 2 {
		t.Errorf("expected 2 total collections, got %d", result.CollectionsTotal)
	}
}

func TestRegistry_IsLoaded(t *testing.T) {
	registry := newSyncTestRegistry(&mockStorage{})

	// Initially not loaded
	if registry.IsLoaded("districts") {
		t.Error("expected collection to not be loaded initially")
	}

	// Add a collection manually
	registry.collections["districts"] = &collectionEntry{}

	// Now it should be loaded
	if !registry.IsLoaded("districts") {
		t.Error("expected collection to be loaded after adding")
	}
}

func TestRegistry_CollectionCount(t *testing.T) {
	registry := newSyncTestRegistry(&mockStorage{})

	if registry.CollectionCount() != 0 {
		t.Errorf("expected 0 collections, got %d", registry.CollectionCount())
	}

	registry.collections["col1"] = &collectionEntry{}
	registry.collections["col2"] = &collectionEntry{}

	if registry.CollectionCount() != 2 {
		t.Errorf("expected 2 collections, got %d", registry.CollectionCount())
	}
}

func TestRegistry_SyncRemovesDeletedCollections(t *testing.T) {
	storage := &mockStorage{
		objects: []output.StorageObject{
			{Key: "districts.geojson"},
			{Key: "pois.geojson"},
		},
	}
	registry := newSyncTestRegistry(storage)

	ctx := context.Background()

	// First sync should add both collections
	stats, err := registry.Sync(ctx)
	if err != nil {
		t.Fatalf("first sync failed: %v", err)
	}
	if stats.Added != 2 {
		t.Errorf("expected 2 collections added, got %d", stats.Added)
	}
	if stats.Removed != 0 {
		t.Errorf("expected 0 collections removed, got %d", stats.Removed)
	}

	// Remove one collection from storage
	storage.objects = []output.StorageObject{
		{Key: "districts.geojson"},
	}

	// Second sync should remove the deleted collection
	stats, err = registry.Sync(ctx)
	if err != nil {
		t.Fatalf("second sync failed: %v", err)
	}
	if stats.Added != 0 {
		t.Errorf("expected 0 collections added, got %d", stats.Added)
	}
	if stats.Removed != 1 {
		t.Errorf("expected 1 collection removed, got %d", stats.Removed)
	}
	if registry.CollectionCount() != 1 {
		t.Errorf("expected 1 total collection, got %d", registry.CollectionCount())
	}
}

func TestRegistry_FindCollectionsToRemove(t *testing.T) {
	registry := newSyncTestRegistry(&mockStorage{})

	// Add some collections locally
	registry.collections["col1"] = &collectionEntry{}
	registry.collections["col2"] = &collectionEntry{}
	registry.collections["col3"] = &collectionEntry{}

	// Only col1 and col3 are in remote
	remoteCollections := map[string]string{
		"col1": "col1.geojson",
		"col3": "col3.geojson",
	}

	toRemove := registry.findCollectionsToRemove(remoteCollections)

	if len(toRemove) != 1 {
		t.Errorf("expected 1 collection to remove, got %d", len(toRemove))
	}
	if len(toRemove) > 0 && toRemove[0] != "col2" {
		t.Errorf("expected col2 to be removed, got %s", toRemove[0])
	}
}
