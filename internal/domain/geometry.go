package domain

// Line is an ordered polyline. There is no closure requirement and the
// slice is a non-owning view over the caller's points.
type Line []Point

// Polygon is a single ring of points. By convention exterior rings wind
// counter-clockwise, but neither winding nor closure is enforced.
type Polygon []Point

// MultiPoint is an ordered sequence of points.
type MultiPoint []Point

// MultiLineString is an ordered sequence of polylines.
type MultiLineString []Line

// MultiPolygon is an ordered sequence of polygon rings.
type MultiPolygon []Polygon

// GeometryType tags a Geometry variant.
type GeometryType string

// Geometry type constants, matching the GeoJSON type names.
const (
	GeometryPoint           GeometryType = "Point"
	GeometryLineString      GeometryType = "LineString"
	GeometryPolygon         GeometryType = "Polygon"
	GeometryMultiPoint      GeometryType = "MultiPoint"
	GeometryMultiLineString GeometryType = "MultiLineString"
	GeometryMultiPolygon    GeometryType = "MultiPolygon"
)

// Geometry is a tagged union over the six geometry variants. The
// algorithms in this package operate on the concrete types directly;
// Geometry exists as a convenience wrapper for callers that hold mixed
// geometries, such as parsed feature collections.
type Geometry struct {
	Type            GeometryType
	Point           Point
	Line            Line
	Polygon         Polygon
	MultiPoint      MultiPoint
	MultiLineString MultiLineString
	MultiPolygon    MultiPolygon
}

// NewPointGeometry wraps a point.
func NewPointGeometry(p Point) Geometry {
	return Geometry{Type: GeometryPoint, Point: p}
}

// NewLineGeometry wraps a polyline.
func NewLineGeometry(l Line) Geometry {
	return Geometry{Type: GeometryLineString, Line: l}
}

// NewPolygonGeometry wraps a polygon ring.
func NewPolygonGeometry(p Polygon) Geometry {
	return Geometry{Type: GeometryPolygon, Polygon: p}
}

// NewMultiPointGeometry wraps a point sequence.
func NewMultiPointGeometry(mp MultiPoint) Geometry {
	return Geometry{Type: GeometryMultiPoint, MultiPoint: mp}
}

// NewMultiLineGeometry wraps a polyline sequence.
func NewMultiLineGeometry(ml MultiLineString) Geometry {
	return Geometry{Type: GeometryMultiLineString, MultiLineString: ml}
}

// NewMultiPolygonGeometry wraps a polygon sequence.
func NewMultiPolygonGeometry(mp MultiPolygon) Geometry {
	return Geometry{Type: GeometryMultiPolygon, MultiPolygon: mp}
}

// IsPoint returns true if the geometry is a point.
func (g *Geometry) IsPoint() bool {
	return g.Type == GeometryPoint
}

// IsLine returns true if the geometry is a line variant.
func (g *Geometry) IsLine() bool {
	return g.Type == GeometryLineString || g.Type == GeometryMultiLineString
}

// IsPolygon returns true if the geometry is a polygon variant.
func (g *Geometry) IsPolygon() bool {
	return g.Type == GeometryPolygon || g.Type == GeometryMultiPolygon
}

// BoundingBox derives the axis-aligned bounding box of the geometry.
func (g *Geometry) BoundingBox() BoundingBox {
	switch g.Type {
	case GeometryPoint:
		return BoundingBox{
			MinLat: g.Point.Lat, MaxLat: g.Point.Lat,
			MinLng: g.Point.Lng, MaxLng: g.Point.Lng,
		}
	case GeometryLineString:
		return BoundingBoxFromPoints(g.Line)
	case GeometryPolygon:
		return BoundingBoxFromPolygon(g.Polygon)
	case GeometryMultiPoint:
		return BoundingBoxFromPoints(g.MultiPoint)
	case GeometryMultiLineString:
		var all []Point
		for _, l := range g.MultiLineString {
			all = append(all, l...)
		}
		return BoundingBoxFromPoints(all)
	case GeometryMultiPolygon:
		return MultiPolygonBoundingBox(g.MultiPolygon)
	default:
		return BoundingBox{}
	}
}

// Contains reports whether the geometry contains the point. Only
// polygon variants can contain; other variants always return false.
func (g *Geometry) Contains(p Point) bool {
	switch g.Type {
	case GeometryPolygon:
		return PolygonContainsPoint(g.Polygon, p)
	case GeometryMultiPolygon:
		for _, ring := range g.MultiPolygon {
			if PolygonContainsPoint(ring, p) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
