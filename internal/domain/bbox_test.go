package domain

import "testing"

func TestBoundingBoxFromPolygon(t *testing.T) {
	tests := []struct {
		name    string
		polygon Polygon
		want    BoundingBox
	}{
		{
			name:    "triangle",
			polygon: Polygon{{Lat: 10, Lng: 10}, {Lat: 20, Lng: 20}, {Lat: 10, Lng: 20}},
			want:    BoundingBox{MinLat: 10, MaxLat: 20, MinLng: 10, MaxLng: 20},
		},
		{
			name:    "empty polygon collapses to zero box",
			polygon: Polygon{},
			want:    BoundingBox{},
		},
		{
			name:    "single point",
			polygon: Polygon{{Lat: 5, Lng: -3}},
			want:    BoundingBox{MinLat: 5, MaxLat: 5, MinLng: -3, MaxLng: -3},
		},
		{
			name:    "negative coordinates",
			polygon: Polygon{{Lat: -10, Lng: -20}, {Lat: -30, Lng: -5}},
			want:    BoundingBox{MinLat: -30, MaxLat: -10, MinLng: -20, MaxLng: -5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BoundingBoxFromPolygon(tt.polygon)
			if got != tt.want {
				t.Errorf("BoundingBoxFromPolygon() = %+v, want %+v", got, tt.want)
			}
			if !got.IsValid() {
				t.Errorf("derived box %+v is not min<=max", got)
			}
		})
	}
}

func TestMultiPolygonBoundingBox(t *testing.T) {
	tests := []struct {
		name string
		mp   MultiPolygon
		want BoundingBox
	}{
		{
			name: "empty multipolygon",
			mp:   MultiPolygon{},
			want: BoundingBox{},
		},
		{
			name: "empty first ring",
			mp:   MultiPolygon{{}, {{Lat: 1, Lng: 1}}},
			want: BoundingBox{},
		},
		{
			name: "single polygon",
			mp:   MultiPolygon{{{Lat: 10, Lng: 10}, {Lat: 20, Lng: 20}}},
			want: BoundingBox{MinLat: 10, MaxLat: 20, MinLng: 10, MaxLng: 20},
		},
		{
			name: "two disjoint polygons fold per axis",
			mp: MultiPolygon{
				{{Lat: 0, Lng: 0}, {Lat: 10, Lng: 10}},
				{{Lat: -5, Lng: 20}, {Lat: 5, Lng: 30}},
			},
			want: BoundingBox{MinLat: -5, MaxLat: 10, MinLng: 0, MaxLng: 30},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MultiPolygonBoundingBox(tt.mp); got != tt.want {
				t.Errorf("MultiPolygonBoundingBox() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBoundingBoxContains(t *testing.T) {
	box := BoundingBox{MinLat: 0, MaxLat: 100, MinLng: 0, MaxLng: 100}

	tests := []struct {
		name  string
		point Point
		want  bool
	}{
		{"inside", Point{Lat: 50, Lng: 50}, true},
		{"on min corner", Point{Lat: 0, Lng: 0}, true},
		{"on max corner", Point{Lat: 100, Lng: 100}, true},
		{"outside lat", Point{Lat: 101, Lng: 50}, false},
		{"outside lng", Point{Lat: 50, Lng: 101}, false},
		{"outside both", Point{Lat: -1, Lng: -1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := box.Contains(tt.point); got != tt.want {
				t.Errorf("Contains() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBoundingBoxUnion(t *testing.T) {
	a := BoundingBox{MinLat: 0, MaxLat: 10, MinLng: 0, MaxLng: 10}
	b := BoundingBox{MinLat: -5, MaxLat: 5, MinLng: 5, MaxLng: 20}

	want := BoundingBox{MinLat: -5, MaxLat: 10, MinLng: 0, MaxLng: 20}
	if got := a.Union(b); got != want {
		t.Errorf("Union() = %+v, want %+v", got, want)
	}
}

func TestBoundingBoxDimensions(t *testing.T) {
	box := BoundingBox{MinLat: 20, MaxLat: 80, MinLng: 10, MaxLng: 50}

	if got := box.Width(); got != 40 {
		t.Errorf("Width() = %f, want 40", got)
	}
	if got := box.Height(); got != 60 {
		t.Errorf("Height() = %f, want 60", got)
	}

	center := box.Center()
	if center.Lat != 50 || center.Lng != 30 {
		t.Errorf("Center() = %+v, want lat=50 lng=30", center)
	}
}

func TestBoundingBoxIsValid(t *testing.T) {
	tests := []struct {
		name string
		box  BoundingBox
		want bool
	}{
		{"valid", BoundingBox{MinLat: 0, MaxLat: 10, MinLng: 0, MaxLng: 10}, true},
		{"degenerate zero box", BoundingBox{}, true},
		{"inverted lat", BoundingBox{MinLat: 10, MaxLat: 0}, false},
		{"inverted lng", BoundingBox{MinLng: 10, MaxLng: 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.box.IsValid(); got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}
