package domain

import "testing"

func TestGeometryBoundingBox(t *testing.T) {
	tests := []struct {
		name     string
		geometry Geometry
		want     BoundingBox
	}{
		{
			name:     "point collapses to degenerate box",
			geometry: NewPointGeometry(Point{Lat: 5, Lng: -3}),
			want:     BoundingBox{MinLat: 5, MaxLat: 5, MinLng: -3, MaxLng: -3},
		},
		{
			name:     "line",
			geometry: NewLineGeometry(Line{{Lat: 0, Lng: 0}, {Lat: 10, Lng: -10}}),
			want:     BoundingBox{MinLat: 0, MaxLat: 10, MinLng: -10, MaxLng: 0},
		},
		{
			name:     "polygon",
			geometry: NewPolygonGeometry(Polygon{{Lat: 10, Lng: 10}, {Lat: 20, Lng: 20}, {Lat: 10, Lng: 20}}),
			want:     BoundingBox{MinLat: 10, MaxLat: 20, MinLng: 10, MaxLng: 20},
		},
		{
			name:     "multipoint",
			geometry: NewMultiPointGeometry(MultiPoint{{Lat: -1, Lng: 1}, {Lat: 1, Lng: -1}}),
			want:     BoundingBox{MinLat: -1, MaxLat: 1, MinLng: -1, MaxLng: 1},
		},
		{
			name: "multilinestring spans all lines",
			geometry: NewMultiLineGeometry(MultiLineString{
				{{Lat: 0, Lng: 0}, {Lat: 5, Lng: 5}},
				{{Lat: -5, Lng: 10}},
			}),
			want: BoundingBox{MinLat: -5, MaxLat: 5, MinLng: 0, MaxLng: 10},
		},
		{
			name: "multipolygon",
			geometry: NewMultiPolygonGeometry(MultiPolygon{
				{{Lat: 0, Lng: 0}, {Lat: 10, Lng: 10}},
				{{Lat: -5, Lng: 20}, {Lat: 5, Lng: 30}},
			}),
			want: BoundingBox{MinLat: -5, MaxLat: 10, MinLng: 0, MaxLng: 30},
		},
		{
			name:     "unknown type yields zero box",
			geometry: Geometry{Type: "Unknown"},
			want:     BoundingBox{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.geometry.BoundingBox(); got != tt.want {
				t.Errorf("BoundingBox() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestGeometryContains(t *testing.T) {
	square := Polygon{
		{Lat: 0, Lng: 0}, {Lat: 10, Lng: 0},
		{Lat: 10, Lng: 10}, {Lat: 0, Lng: 10},
	}

	tests := []struct {
		name     string
		geometry Geometry
		point    Point
		want     bool
	}{
		{
			name:     "polygon contains inner point",
			geometry: NewPolygonGeometry(square),
			point:    Point{Lat: 5, Lng: 5},
			want:     true,
		},
		{
			name:     "polygon excludes outer point",
			geometry: NewPolygonGeometry(square),
			point:    Point{Lat: 15, Lng: 5},
			want:     false,
		},
		{
			name: "multipolygon matches any ring",
			geometry: NewMultiPolygonGeometry(MultiPolygon{
				{{Lat: 100, Lng: 100}, {Lat: 110, Lng: 100}, {Lat: 110, Lng: 110}},
				square,
			}),
			point: Point{Lat: 5, Lng: 5},
			want:  true,
		},
		{
			name:     "point geometry never contains",
			geometry: NewPointGeometry(Point{Lat: 5, Lng: 5}),
			point:    Point{Lat: 5, Lng: 5},
			want:     false,
		},
		{
			name:     "line geometry never contains",
			geometry: NewLineGeometry(Line(square)),
			point:    Point{Lat: 5, Lng: 5},
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.geometry.Contains(tt.point); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.point, got, tt.want)
			}
		})
	}
}

func TestGeometryKindPredicates(t *testing.T) {
	point := NewPointGeometry(Point{})
	line := NewLineGeometry(Line{})
	polygon := NewPolygonGeometry(Polygon{})
	multiLine := NewMultiLineGeometry(MultiLineString{})
	multiPolygon := NewMultiPolygonGeometry(MultiPolygon{})

	if !point.IsPoint() || point.IsLine() || point.IsPolygon() {
		t.Error("point geometry misclassified")
	}
	if !line.IsLine() || !multiLine.IsLine() {
		t.Error("line variants not recognized as lines")
	}
	if !polygon.IsPolygon() || !multiPolygon.IsPolygon() {
		t.Error("polygon variants not recognized as polygons")
	}
	if polygon.IsPoint() || polygon.IsLine() {
		t.Error("polygon geometry misclassified")
	}
}
