package domain

import "math"

// parallelEpsilon is the denominator magnitude below which two segments
// are treated as parallel or coincident.
const parallelEpsilon = 1e-10

// PolygonContainsPoint reports whether the ring contains the point,
// using the ray-casting crossing-number test with longitude as the
// horizontal axis. Rings with fewer than 3 points contain nothing.
// Points exactly on an edge or vertex get whatever the floating-point
// crossing test yields; boundary behavior is implementation-defined.
func PolygonContainsPoint(poly Polygon, pt Point) bool {
	if len(poly) < 3 {
		return false
	}

	inside := false
	j := len(poly) - 1
	for i := range poly {
		if (poly[i].Lng > pt.Lng) != (poly[j].Lng > pt.Lng) {
			crossLat := (poly[j].Lat-poly[i].Lat)*(pt.Lng-poly[i].Lng)/
				(poly[j].Lng-poly[i].Lng) + poly[i].Lat
			if pt.Lat < crossLat {
				inside = !inside
			}
		}
		j = i
	}

	return inside
}

// LineSegmentIntersection returns the intersection of segments p1-p2
// and p3-p4, if any. Parallel or coincident segments (denominator
// magnitude below 1e-10) yield no intersection, as does an intersection
// point falling outside either segment. An intersection whose computed
// coordinates fall outside the valid latitude/longitude domain is also
// reported as no intersection rather than as an error.
func LineSegmentIntersection(p1, p2, p3, p4 Point) (Point, bool) {
	denom := (p1.Lng-p2.Lng)*(p3.Lat-p4.Lat) - (p1.Lat-p2.Lat)*(p3.Lng-p4.Lng)
	if math.Abs(denom) < parallelEpsilon {
		return Point{}, false
	}

	t := ((p1.Lng-p3.Lng)*(p3.Lat-p4.Lat) - (p1.Lat-p3.Lat)*(p3.Lng-p4.Lng)) / denom
	u := ((p1.Lng-p3.Lng)*(p1.Lat-p2.Lat) - (p1.Lat-p3.Lat)*(p1.Lng-p2.Lng)) / denom

	if t < 0 || t > 1 || u < 0 || u > 1 {
		return Point{}, false
	}

	cross, err := NewPoint(
		p1.Lat+t*(p2.Lat-p1.Lat),
		p1.Lng+t*(p2.Lng-p1.Lng),
	)
	if err != nil {
		return Point{}, false
	}

	return cross, true
}
