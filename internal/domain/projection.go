package domain

import "math"

// WebMercatorRadius is the WGS84 equatorial radius in meters used by
// the EPSG:3857 projection.
const WebMercatorRadius = 6378137.0

// ProjectToWebMercator projects a WGS84 point onto the Web Mercator
// plane. The projection is total over the valid Point domain; Y
// diverges toward +/-Inf as latitude approaches the poles, which is an
// accepted, unclamped property of the projection.
func ProjectToWebMercator(p Point) WebMercatorPoint {
	latRad := toRadians(p.Lat)
	return WebMercatorPoint{
		X: p.Lng * (WebMercatorRadius * math.Pi / 180),
		Y: WebMercatorRadius * math.Log(math.Tan(math.Pi/4+latRad/2)),
	}
}
