package domain

import "testing"

func TestNewRasterZeroFilled(t *testing.T) {
	bounds := BoundingBox{MinLat: 0, MaxLat: 10, MinLng: 0, MaxLng: 10}
	r := NewRaster(10, 10, bounds)
	defer r.Close()

	if r.Width() != 10 || r.Height() != 10 {
		t.Fatalf("expected 10x10 raster, got %dx%d", r.Width(), r.Height())
	}
	if r.Bounds() != bounds {
		t.Errorf("Bounds() = %+v, want %+v", r.Bounds(), bounds)
	}

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if v := r.Get(x, y); v != 0.0 {
				t.Fatalf("cell (%d,%d) = %f, want 0.0", x, y, v)
			}
		}
	}
}

func TestRasterSetGet(t *testing.T) {
	r := NewRaster(10, 10, BoundingBox{})
	defer r.Close()

	r.Set(5, 5, 42.0)
	if got := r.Get(5, 5); got != 42.0 {
		t.Errorf("Get(5,5) = %f, want 42.0", got)
	}
	if got := r.Get(5, 6); got != 0.0 {
		t.Errorf("neighboring cell = %f, want 0.0", got)
	}
}

func TestRasterOutOfRange(t *testing.T) {
	r := NewRaster(10, 10, BoundingBox{})
	defer r.Close()

	tests := []struct {
		name string
		x, y int
	}{
		{"x at width", 10, 0},
		{"y at height", 0, 10},
		{"negative x", -1, 0},
		{"negative y", 0, -1},
		{"far out", 100, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Writes outside the grid are dropped, reads come back zero.
			r.Set(tt.x, tt.y, 99.0)
			if got := r.Get(tt.x, tt.y); got != 0.0 {
				t.Errorf("Get(%d,%d) = %f, want 0.0", tt.x, tt.y, got)
			}
		})
	}

	// The in-range cells are untouched by the dropped writes.
	for _, v := range r.Cells() {
		if v != 0.0 {
			t.Fatal("out-of-range write leaked into the grid")
		}
	}
}

func TestRasterAdd(t *testing.T) {
	r := NewRaster(4, 4, BoundingBox{})
	defer r.Close()

	r.Add(1, 2, 1.0)
	r.Add(1, 2, 2.5)
	if got := r.Get(1, 2); got != 3.5 {
		t.Errorf("Get(1,2) = %f, want 3.5", got)
	}

	r.Add(-1, 0, 7.0) // dropped
	if got := r.Get(-1, 0); got != 0.0 {
		t.Errorf("out-of-range Add leaked: %f", got)
	}
}

func TestRasterClose(t *testing.T) {
	r := NewRaster(10, 10, BoundingBox{})
	r.Set(3, 3, 1.0)
	r.Close()

	if r.Width() != 0 || r.Height() != 0 {
		t.Errorf("expected zero dimensions after Close, got %dx%d", r.Width(), r.Height())
	}
	if r.Cells() != nil {
		t.Error("expected nil backing slice after Close")
	}
	// Reads after Close fall under the out-of-range policy.
	if got := r.Get(3, 3); got != 0.0 {
		t.Errorf("Get after Close = %f, want 0.0", got)
	}
}
