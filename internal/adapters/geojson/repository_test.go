package geojson

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jobrunner/meridian/internal/domain"
)

const districtsDocument = `{
	"type": "FeatureCollection",
	"name": "Districts",
	"license": {"name": "CC BY 4.0", "attribution": "City of Linden"},
	"metadata": {"title": "City districts", "creator": "survey office"},
	"features": [
		{
			"type": "Feature",
			"geometry": {"type":"Polygon","coordinates":[[[0,0],[10,0],[10,10],[0,10],[0,0]]]},
			"properties": {"name": "north"}
		},
		{
			"type": "Feature",
			"geometry": {"type":"Polygon","coordinates":[[[20,20],[30,20],[30,30],[20,30],[20,20]]]},
			"properties": {"name": "south"}
		},
		{
			"type": "Feature",
			"geometry": {"type":"Point","coordinates":[5,5]},
			"properties": {"name": "town hall"}
		}
	]
}`

func writeCollection(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestRepositoryOpen(t *testing.T) {
	repo := NewRepository()
	path := writeCollection(t, "districts.geojson", districtsDocument)

	col, err := repo.Open(context.Background(), path)
	if err != nil {
		t.Fatalf("Open() unexpected error: %v", err)
	}

	if col.ID != "districts" {
		t.Errorf("collection ID = %q, want districts", col.ID)
	}
	if col.Name != "Districts" {
		t.Errorf("collection name = %q, want Districts", col.Name)
	}
	if col.FeatureCount != 3 {
		t.Errorf("feature count = %d, want 3", col.FeatureCount)
	}
	if col.License.Name != "CC BY 4.0" {
		t.Errorf("license = %q", col.License.Name)
	}
	if col.Metadata.Title != "City districts" {
		t.Errorf("metadata title = %q", col.Metadata.Title)
	}

	want := domain.BoundingBox{MinLat: 0, MaxLat: 30, MinLng: 0, MaxLng: 30}
	if col.BBox != want {
		t.Errorf("bbox = %+v, want %+v", col.BBox, want)
	}
}

func TestRepositoryOpenIsIdempotent(t *testing.T) {
	repo := NewRepository()
	path := writeCollection(t, "districts.geojson", districtsDocument)

	first, err := repo.Open(context.Background(), path)
	if err != nil {
		t.Fatalf("first Open(): %v", err)
	}
	second, err := repo.Open(context.Background(), path)
	if err != nil {
		t.Fatalf("second Open(): %v", err)
	}
	if first != second {
		t.Error("expected the same collection instance on re-open")
	}
}

func TestRepositoryOpenErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", `{{{`},
		{"wrong root type", `{"type":"Feature","geometry":null}`},
		{"broken feature", `{"type":"FeatureCollection","features":[{"type":"Feature"}]}`},
		{"out of range coordinate", `{"type":"FeatureCollection","features":[
			{"type":"Feature","geometry":{"type":"Point","coordinates":[0,91]},"properties":{}}
		]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewRepository()
			path := writeCollection(t, "bad.geojson", tt.content)

			if _, err := repo.Open(context.Background(), path); err == nil {
				t.Fatal("expected Open() to fail")
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		repo := NewRepository()
		_, err := repo.Open(context.Background(), "/nonexistent/districts.geojson")

		var storageErr *domain.StorageError
		if !errors.As(err, &storageErr) {
			t.Fatalf("expected *StorageError, got %v", err)
		}
	})
}

func TestRepositoryQueryPoint(t *testing.T) {
	repo := NewRepository()
	path := writeCollection(t, "districts.geojson", districtsDocument)
	if _, err := repo.Open(context.Background(), path); err != nil {
		t.Fatalf("Open(): %v", err)
	}

	tests := []struct {
		name      string
		point     domain.Point
		wantNames []string
	}{
		{
			name:      "inside north district",
			point:     domain.Point{Lat: 5, Lng: 5},
			wantNames: []string{"north"},
		},
		{
			name:      "inside south district",
			point:     domain.Point{Lat: 25, Lng: 25},
			wantNames: []string{"south"},
		},
		{
			name:  "outside all districts",
			point: domain.Point{Lat: 15, Lng: 15},
		},
		{
			name:  "outside collection bbox",
			point: domain.Point{Lat: -50, Lng: -50},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			features, err := repo.QueryPoint(context.Background(), "districts", tt.point)
			if err != nil {
				t.Fatalf("QueryPoint() unexpected error: %v", err)
			}
			if len(features) != len(tt.wantNames) {
				t.Fatalf("got %d features, want %d", len(features), len(tt.wantNames))
			}
			for i, want := range tt.wantNames {
				if got := features[i].GetStringProperty("name"); got != want {
					t.Errorf("feature %d name = %q, want %q", i, got, want)
				}
			}
		})
	}

	t.Run("unknown collection", func(t *testing.T) {
		_, err := repo.QueryPoint(context.Background(), "nope", domain.Point{})
		if !errors.Is(err, domain.ErrCollectionNotFound) {
			t.Fatalf("expected ErrCollectionNotFound, got %v", err)
		}
	})
}

func TestRepositoryQueryRadius(t *testing.T) {
	repo := NewRepository()
	path := writeCollection(t, "districts.geojson", districtsDocument)
	if _, err := repo.Open(context.Background(), path); err != nil {
		t.Fatalf("Open(): %v", err)
	}

	// The town hall point sits at (5,5); the north polygon's anchor is
	// its bbox center (5,5) as well. A small radius around (5,5) finds
	// both, a radius around (25,25) finds the south polygon's anchor.
	features, err := repo.QueryRadius(context.Background(), "districts", domain.Point{Lat: 5, Lng: 5}, 10)
	if err != nil {
		t.Fatalf("QueryRadius() unexpected error: %v", err)
	}
	if len(features) != 2 {
		t.Errorf("got %d features within 10km of (5,5), want 2", len(features))
	}

	features, err = repo.QueryRadius(context.Background(), "districts", domain.Point{Lat: 25, Lng: 25}, 10)
	if err != nil {
		t.Fatalf("QueryRadius() unexpected error: %v", err)
	}
	if len(features) != 1 {
		t.Errorf("got %d features within 10km of (25,25), want 1", len(features))
	}

	t.Run("negative radius", func(t *testing.T) {
		_, err := repo.QueryRadius(context.Background(), "districts", domain.Point{}, -1)
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestRepositoryClose(t *testing.T) {
	repo := NewRepository()
	path := writeCollection(t, "districts.geojson", districtsDocument)
	if _, err := repo.Open(context.Background(), path); err != nil {
		t.Fatalf("Open(): %v", err)
	}

	if err := repo.Close(context.Background(), "districts"); err != nil {
		t.Fatalf("Close(): %v", err)
	}
	if _, err := repo.QueryPoint(context.Background(), "districts", domain.Point{}); !errors.Is(err, domain.ErrCollectionNotFound) {
		t.Fatalf("expected ErrCollectionNotFound after Close, got %v", err)
	}

	// Closing twice is harmless.
	if err := repo.Close(context.Background(), "districts"); err != nil {
		t.Fatalf("second Close(): %v", err)
	}
}

func TestDeriveCollectionID(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/data/districts.geojson", "districts"},
		{"districts.geojson", "districts"},
		{"/data/nested/pois.json", "pois"},
		{"noext", "noext"},
	}

	for _, tt := range tests {
		if got := DeriveCollectionID(tt.path); got != tt.want {
			t.Errorf("DeriveCollectionID(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
