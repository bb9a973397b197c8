package domain

import "math"

// EarthRadiusKm is the mean Earth radius used for great-circle distances.
const EarthRadiusKm = 6371.0

// Distance returns the great-circle distance between two points in
// kilometers using the haversine formula on a spherical Earth.
func Distance(a, b Point) float64 {
	dLat := toRadians(b.Lat - a.Lat)
	dLng := toRadians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(a.Lat))*math.Cos(toRadians(b.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusKm * c
}

// PolygonArea returns the shoelace area of the ring in square degrees.
// No geographic correction is applied; the unit is a documented
// limitation. Rings with fewer than 3 points have zero area.
func PolygonArea(p Polygon) float64 {
	if len(p) < 3 {
		return 0
	}

	sum := 0.0
	j := len(p) - 1
	for i := range p {
		sum += (p[j].Lng - p[i].Lng) * (p[j].Lat + p[i].Lat)
		j = i
	}

	return math.Abs(sum) / 2
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
