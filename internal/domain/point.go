// Package domain contains the core geometry model and spatial algorithms.
package domain

import "fmt"

// WGS84 coordinate limits.
const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
)

// Point is a WGS84 geographic coordinate. A Point obtained through
// NewPoint always satisfies the latitude/longitude range constraints.
type Point struct {
	Lat float64 // Latitude in degrees, [-90, 90]
	Lng float64 // Longitude in degrees, [-180, 180]
}

// NewPoint creates a validated Point. Latitude is checked before
// longitude, so a point that is invalid on both axes reports the
// latitude error.
func NewPoint(lat, lng float64) (Point, error) {
	if lat < MinLatitude || lat > MaxLatitude {
		return Point{}, &ValidationError{
			Field:      "latitude",
			Value:      lat,
			Constraint: "[-90, 90]",
			Message:    "latitude must be between -90 and 90",
			Err:        ErrInvalidLatitude,
		}
	}
	if lng < MinLongitude || lng > MaxLongitude {
		return Point{}, &ValidationError{
			Field:      "longitude",
			Value:      lng,
			Constraint: "[-180, 180]",
			Message:    "longitude must be between -180 and 180",
			Err:        ErrInvalidLongitude,
		}
	}
	return Point{Lat: lat, Lng: lng}, nil
}

// Validate checks the range constraints on an existing point. Points
// built by NewPoint always pass; this exists for values decoded from
// untrusted struct literals.
func (p Point) Validate() error {
	_, err := NewPoint(p.Lat, p.Lng)
	return err
}

// IsZero returns true if the point is the zero value.
func (p Point) IsZero() bool {
	return p.Lat == 0 && p.Lng == 0
}

// String returns a string representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("POINT(%f %f)", p.Lng, p.Lat)
}

// WebMercatorPoint is a planar coordinate in EPSG:3857 meters.
// Unlike Point its components are unconstrained.
type WebMercatorPoint struct {
	X float64 // Easting in meters
	Y float64 // Northing in meters
}

// String returns a string representation of the projected point.
func (p WebMercatorPoint) String() string {
	return fmt.Sprintf("POINT(%f %f) SRID=3857", p.X, p.Y)
}
