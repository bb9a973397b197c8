package domain

import "fmt"

// BoundingBox is an axis-aligned rectangle in latitude/longitude space.
// The derivation functions always emit min <= max; a box built from an
// empty input collapses to all-zero, which is a documented degenerate
// case rather than an error.
type BoundingBox struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

// BoundingBoxFromPolygon folds min/max latitude and longitude over all
// ring points. An empty polygon yields the zero box.
func BoundingBoxFromPolygon(p Polygon) BoundingBox {
	return BoundingBoxFromPoints(p)
}

// BoundingBoxFromPoints folds min/max over an arbitrary point sequence.
func BoundingBoxFromPoints(points []Point) BoundingBox {
	if len(points) == 0 {
		return BoundingBox{}
	}

	box := BoundingBox{
		MinLat: points[0].Lat,
		MaxLat: points[0].Lat,
		MinLng: points[0].Lng,
		MaxLng: points[0].Lng,
	}

	for _, p := range points[1:] {
		if p.Lat < box.MinLat {
			box.MinLat = p.Lat
		}
		if p.Lat > box.MaxLat {
			box.MaxLat = p.Lat
		}
		if p.Lng < box.MinLng {
			box.MinLng = p.Lng
		}
		if p.Lng > box.MaxLng {
			box.MaxLng = p.Lng
		}
	}

	return box
}

// MultiPolygonBoundingBox folds the per-polygon boxes of a multipolygon
// into one. An empty multipolygon, or one whose first ring is empty,
// yields the zero box.
func MultiPolygonBoundingBox(mp MultiPolygon) BoundingBox {
	if len(mp) == 0 || len(mp[0]) == 0 {
		return BoundingBox{}
	}

	box := BoundingBoxFromPolygon(mp[0])
	for _, ring := range mp[1:] {
		if len(ring) == 0 {
			continue
		}
		box = box.Union(BoundingBoxFromPolygon(ring))
	}

	return box
}

// Union returns the smallest box covering both boxes.
func (b BoundingBox) Union(o BoundingBox) BoundingBox {
	u := b
	if o.MinLat < u.MinLat {
		u.MinLat = o.MinLat
	}
	if o.MaxLat > u.MaxLat {
		u.MaxLat = o.MaxLat
	}
	if o.MinLng < u.MinLng {
		u.MinLng = o.MinLng
	}
	if o.MaxLng > u.MaxLng {
		u.MaxLng = o.MaxLng
	}
	return u
}

// Contains checks if a point is within the box, inclusive on both axes.
func (b BoundingBox) Contains(p Point) bool {
	return p.Lat >= b.MinLat && p.Lat <= b.MaxLat &&
		p.Lng >= b.MinLng && p.Lng <= b.MaxLng
}

// IsValid checks if the box has valid dimensions.
func (b BoundingBox) IsValid() bool {
	return b.MinLat <= b.MaxLat && b.MinLng <= b.MaxLng
}

// IsZero returns true if the box is the all-zero degenerate box.
func (b BoundingBox) IsZero() bool {
	return b == BoundingBox{}
}

// Width returns the longitude span of the box in degrees.
func (b BoundingBox) Width() float64 {
	return b.MaxLng - b.MinLng
}

// Height returns the latitude span of the box in degrees.
func (b BoundingBox) Height() float64 {
	return b.MaxLat - b.MinLat
}

// Center returns the center point of the box. The result is not
// range-validated; derived boxes always stay inside the valid domain.
func (b BoundingBox) Center() Point {
	return Point{
		Lat: (b.MinLat + b.MaxLat) / 2,
		Lng: (b.MinLng + b.MaxLng) / 2,
	}
}

// String returns a string representation of the box.
func (b BoundingBox) String() string {
	return fmt.Sprintf("BBOX(%f %f, %f %f)", b.MinLng, b.MinLat, b.MaxLng, b.MaxLat)
}
