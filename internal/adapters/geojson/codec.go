// Package geojson provides the GeoJSON-backed feature collection
// repository and the codec between GeoJSON documents and domain
// geometries.
package geojson

import (
	"encoding/json"
	"fmt"

	"github.com/jobrunner/meridian/internal/domain"
)

// rawGeometry is the decoded shape of a GeoJSON geometry object. The
// coordinates member is kept as a raw JSON tree because its nesting
// depth depends on the geometry type.
type rawGeometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// rawFeature is the decoded shape of a GeoJSON feature object.
type rawFeature struct {
	Type       string                 `json:"type"`
	Geometry   json.RawMessage        `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

// rawCollection is the decoded shape of a GeoJSON feature collection,
// including the foreign members the repository reads as metadata.
type rawCollection struct {
	Type     string            `json:"type"`
	Name     string            `json:"name"`
	Features []json.RawMessage `json:"features"`
	Metadata *rawMetadata      `json:"metadata"`
	License  *rawLicense       `json:"license"`
}

type rawMetadata struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Creator     string            `json:"creator"`
	Version     string            `json:"version"`
	Keywords    []string          `json:"keywords"`
	Custom      map[string]string `json:"custom"`
}

type rawLicense struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Attribution string `json:"attribution"`
}

// decodePosition converts a GeoJSON position into a validated point.
// A position is exactly two numbers ordered [longitude, latitude].
// Out-of-range coordinates surface as latitude/longitude validation
// errors rather than structural GeoJSON errors.
func decodePosition(raw json.RawMessage) (domain.Point, error) {
	var pos []float64
	if err := json.Unmarshal(raw, &pos); err != nil {
		return domain.Point{}, &domain.DecodeError{
			Expected: "position array of numbers",
			Got:      truncate(raw),
		}
	}
	if len(pos) != 2 {
		return domain.Point{}, &domain.DecodeError{
			Expected: "position with 2 elements",
			Got:      fmt.Sprintf("%d elements", len(pos)),
		}
	}
	p, err := domain.NewPoint(pos[1], pos[0])
	if err != nil {
		return domain.Point{}, err
	}
	return p, nil
}

// decodePositions converts an array of GeoJSON positions.
func decodePositions(raw json.RawMessage) ([]domain.Point, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, &domain.DecodeError{
			Expected: "array of positions",
			Got:      truncate(raw),
		}
	}
	points := make([]domain.Point, 0, len(elems))
	for _, e := range elems {
		p, err := decodePosition(e)
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, nil
}

// decodeRings converts a GeoJSON ring list and returns the first ring.
// Interior rings (holes) are not supported and are dropped. An empty
// ring list is a structural error.
func decodeRings(raw json.RawMessage) (domain.Polygon, error) {
	var rings []json.RawMessage
	if err := json.Unmarshal(raw, &rings); err != nil {
		return nil, &domain.DecodeError{
			Expected: "array of rings",
			Got:      truncate(raw),
		}
	}
	if len(rings) == 0 {
		return nil, fmt.Errorf("polygon without rings: %w", domain.ErrInvalidGeoJSON)
	}
	points, err := decodePositions(rings[0])
	if err != nil {
		return nil, err
	}
	return domain.Polygon(points), nil
}

// DecodePoint decodes a GeoJSON Point geometry.
func DecodePoint(data []byte) (*domain.Point, error) {
	geom, err := unmarshalGeometry(data)
	if err != nil {
		return nil, err
	}
	if geom.Type != string(domain.GeometryPoint) {
		return nil, &domain.DecodeError{Expected: "Point", Got: geom.Type}
	}
	p, err := decodePosition(geom.Coordinates)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// DecodeLineString decodes a GeoJSON LineString geometry.
func DecodeLineString(data []byte) (domain.Line, error) {
	geom, err := unmarshalGeometry(data)
	if err != nil {
		return nil, err
	}
	if geom.Type != string(domain.GeometryLineString) {
		return nil, &domain.DecodeError{Expected: "LineString", Got: geom.Type}
	}
	points, err := decodePositions(geom.Coordinates)
	if err != nil {
		return nil, err
	}
	return domain.Line(points), nil
}

// DecodePolygon decodes a GeoJSON Polygon geometry. Only the exterior
// ring is retained.
func DecodePolygon(data []byte) (domain.Polygon, error) {
	geom, err := unmarshalGeometry(data)
	if err != nil {
		return nil, err
	}
	if geom.Type != string(domain.GeometryPolygon) {
		return nil, &domain.DecodeError{Expected: "Polygon", Got: geom.Type}
	}
	return decodeRings(geom.Coordinates)
}

// DecodeGeometry decodes any supported GeoJSON geometry into the
// domain's tagged union.
func DecodeGeometry(data []byte) (domain.Geometry, error) {
	geom, err := unmarshalGeometry(data)
	if err != nil {
		return domain.Geometry{}, err
	}
	return decodeGeometry(geom)
}

func decodeGeometry(geom *rawGeometry) (domain.Geometry, error) {
	switch geom.Type {
	case string(domain.GeometryPoint):
		p, err := decodePosition(geom.Coordinates)
		if err != nil {
			return domain.Geometry{}, err
		}
		return domain.NewPointGeometry(p), nil

	case string(domain.GeometryLineString):
		points, err := decodePositions(geom.Coordinates)
		if err != nil {
			return domain.Geometry{}, err
		}
		return domain.NewLineGeometry(domain.Line(points)), nil

	case string(domain.GeometryPolygon):
		ring, err := decodeRings(geom.Coordinates)
		if err != nil {
			return domain.Geometry{}, err
		}
		return domain.NewPolygonGeometry(ring), nil

	case string(domain.GeometryMultiPoint):
		points, err := decodePositions(geom.Coordinates)
		if err != nil {
			return domain.Geometry{}, err
		}
		return domain.NewMultiPointGeometry(domain.MultiPoint(points)), nil

	case string(domain.GeometryMultiLineString):
		var lines []json.RawMessage
		if err := json.Unmarshal(geom.Coordinates, &lines); err != nil {
			return domain.Geometry{}, &domain.DecodeError{
				Expected: "array of linestrings",
				Got:      truncate(geom.Coordinates),
			}
		}
		ml := make(domain.MultiLineString, 0, len(lines))
		for _, l := range lines {
			points, err := decodePositions(l)
			if err != nil {
				return domain.Geometry{}, err
			}
			ml = append(ml, domain.Line(points))
		}
		return domain.NewMultiLineGeometry(ml), nil

	case string(domain.GeometryMultiPolygon):
		var polys []json.RawMessage
		if err := json.Unmarshal(geom.Coordinates, &polys); err != nil {
			return domain.Geometry{}, &domain.DecodeError{
				Expected: "array of polygons",
				Got:      truncate(geom.Coordinates),
			}
		}
		mp := make(domain.MultiPolygon, 0, len(polys))
		for _, poly := range polys {
			ring, err := decodeRings(poly)
			if err != nil {
				return domain.Geometry{}, err
			}
			mp = append(mp, ring)
		}
		return domain.NewMultiPolygonGeometry(mp), nil

	default:
		return domain.Geometry{}, &domain.DecodeError{
			Expected: "supported geometry type",
			Got:      geom.Type,
		}
	}
}

// DecodeFeature decodes a GeoJSON Feature object.
func DecodeFeature(data []byte) (*domain.Feature, error) {
	var raw rawFeature
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing feature: %w", domain.ErrInvalidGeoJSON)
	}
	if raw.Type != "Feature" {
		return nil, &domain.DecodeError{Expected: "Feature", Got: raw.Type}
	}
	if len(raw.Geometry) == 0 {
		return nil, fmt.Errorf("feature without geometry: %w", domain.ErrInvalidGeoJSON)
	}

	geometry, err := DecodeGeometry(raw.Geometry)
	if err != nil {
		return nil, err
	}

	return &domain.Feature{
		Geometry:   geometry,
		BBox:       geometry.BoundingBox(),
		Properties: raw.Properties,
	}, nil
}

// EncodePoint encodes a point as a GeoJSON Point geometry with
// coordinates formatted to six decimal places, [longitude, latitude].
func EncodePoint(p domain.Point) []byte {
	return []byte(fmt.Sprintf(
		`{"type":"Point","coordinates":[%.6f,%.6f]}`,
		p.Lng, p.Lat,
	))
}

// unmarshalGeometry parses the outer geometry object.
func unmarshalGeometry(data []byte) (*rawGeometry, error) {
	var geom rawGeometry
	if err := json.Unmarshal(data, &geom); err != nil {
		return nil, fmt.Errorf("parsing geometry: %w", domain.ErrInvalidGeoJSON)
	}
	if geom.Type == "" {
		return nil, fmt.Errorf("geometry without type: %w", domain.ErrInvalidGeoJSON)
	}
	return &geom, nil
}

// truncate shortens raw JSON for error messages.
func truncate(raw json.RawMessage) string {
	const max = 48
	if len(raw) > max {
		return string(raw[:max]) + "..."
	}
	return string(raw)
}
