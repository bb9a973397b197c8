package domain

import (
	"math"
	"testing"
)

func TestPolygonContainsPoint(t *testing.T) {
	square := Polygon{
		{Lat: 0, Lng: 0}, {Lat: 10, Lng: 0},
		{Lat: 10, Lng: 10}, {Lat: 0, Lng: 10},
	}

	tests := []struct {
		name    string
		polygon Polygon
		point   Point
		want    bool
	}{
		{
			name:    "center of square",
			polygon: square,
			point:   Point{Lat: 5, Lng: 5},
			want:    true,
		},
		{
			name:    "outside square",
			polygon: square,
			point:   Point{Lat: 15, Lng: 5},
			want:    false,
		},
		{
			name:    "outside in longitude",
			polygon: square,
			point:   Point{Lat: 5, Lng: 15},
			want:    false,
		},
		{
			name:    "fewer than three points",
			polygon: Polygon{{Lat: 0, Lng: 0}, {Lat: 10, Lng: 10}},
			point:   Point{Lat: 5, Lng: 5},
			want:    false,
		},
		{
			name:    "empty polygon",
			polygon: Polygon{},
			point:   Point{Lat: 0, Lng: 0},
			want:    false,
		},
		{
			name: "concave polygon notch excluded",
			polygon: Polygon{
				{Lat: 0, Lng: 0}, {Lat: 10, Lng: 0}, {Lat: 10, Lng: 10},
				{Lat: 5, Lng: 5}, {Lat: 0, Lng: 10},
			},
			point: Point{Lat: 5, Lng: 8},
			want:  false,
		},
		{
			name: "concave polygon body included",
			polygon: Polygon{
				{Lat: 0, Lng: 0}, {Lat: 10, Lng: 0}, {Lat: 10, Lng: 10},
				{Lat: 5, Lng: 5}, {Lat: 0, Lng: 10},
			},
			point: Point{Lat: 5, Lng: 2},
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PolygonContainsPoint(tt.polygon, tt.point); got != tt.want {
				t.Errorf("PolygonContainsPoint(%v) = %v, want %v", tt.point, got, tt.want)
			}
		})
	}
}

func TestLineSegmentIntersection(t *testing.T) {
	tests := []struct {
		name           string
		p1, p2, p3, p4 Point
		wantPoint      Point
		wantOK         bool
	}{
		{
			name:      "crossing diagonals",
			p1:        Point{Lat: 0, Lng: 0},
			p2:        Point{Lat: 10, Lng: 10},
			p3:        Point{Lat: 0, Lng: 10},
			p4:        Point{Lat: 10, Lng: 0},
			wantPoint: Point{Lat: 5, Lng: 5},
			wantOK:    true,
		},
		{
			name:   "parallel segments",
			p1:     Point{Lat: 0, Lng: 0},
			p2:     Point{Lat: 10, Lng: 10},
			p3:     Point{Lat: 1, Lng: 0},
			p4:     Point{Lat: 11, Lng: 10},
			wantOK: false,
		},
		{
			name:   "coincident segments",
			p1:     Point{Lat: 0, Lng: 0},
			p2:     Point{Lat: 10, Lng: 10},
			p3:     Point{Lat: 2, Lng: 2},
			p4:     Point{Lat: 8, Lng: 8},
			wantOK: false,
		},
		{
			name:   "lines cross outside segments",
			p1:     Point{Lat: 0, Lng: 0},
			p2:     Point{Lat: 1, Lng: 1},
			p3:     Point{Lat: 0, Lng: 10},
			p4:     Point{Lat: 10, Lng: 0},
			wantOK: false,
		},
		{
			name:      "shared endpoint counts as intersection",
			p1:        Point{Lat: 0, Lng: 0},
			p2:        Point{Lat: 10, Lng: 10},
			p3:        Point{Lat: 10, Lng: 10},
			p4:        Point{Lat: 20, Lng: 0},
			wantPoint: Point{Lat: 10, Lng: 10},
			wantOK:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := LineSegmentIntersection(tt.p1, tt.p2, tt.p3, tt.p4)
			if ok != tt.wantOK {
				t.Fatalf("LineSegmentIntersection() ok = %v, want %v", ok, tt.wantOK)
			}
			if !tt.wantOK {
				return
			}
			if math.Abs(got.Lat-tt.wantPoint.Lat) > 0.1 || math.Abs(got.Lng-tt.wantPoint.Lng) > 0.1 {
				t.Errorf("LineSegmentIntersection() = %+v, want %+v", got, tt.wantPoint)
			}
		})
	}
}
