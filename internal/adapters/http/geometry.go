package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/jobrunner/meridian/internal/adapters/geojson"
	"github.com/jobrunner/meridian/internal/domain"
)

// maxGeometryBody caps request bodies on the geometry endpoints.
const maxGeometryBody = 8 << 20 // 8 MiB

// handleDistance computes the great-circle distance between two points.
// Parameters: lat1, lng1, lat2, lng2.
func (s *Server) handleDistance(w http.ResponseWriter, r *http.Request) {
	from, err := parsePointParams(r, "lat1", "lng1")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	to, err := parsePointParams(r, "lat2", "lng2")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.metrics.IncGeometryOps("distance")

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"from":        pointJSON(from),
		"to":          pointJSON(to),
		"distance_km": domain.Distance(from, to),
	})
}

// handleProject projects a point to Web Mercator.
// Parameters: lat, lng.
func (s *Server) handleProject(w http.ResponseWriter, r *http.Request) {
	p, err := parsePointParams(r, "lat", "lng")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.metrics.IncGeometryOps("project")

	projected := domain.ProjectToWebMercator(p)
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"point": pointJSON(p),
		"x":     projected.X,
		"y":     projected.Y,
	})
}

// handleArea computes the shoelace area of a GeoJSON Polygon posted in
// the request body.
func (s *Server) handleArea(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	polygon, err := geojson.DecodePolygon(body)
	if err != nil {
		s.handleGeometryDecodeError(w, err)
		return
	}

	s.metrics.IncGeometryOps("area")

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"area":         domain.PolygonArea(polygon),
		"vertex_count": len(polygon),
	})
}

// intersectRequest carries two line segments as GeoJSON LineStrings.
// Only the first two positions of each line are considered.
type intersectRequest struct {
	First  json.RawMessage `json:"first"`
	Second json.RawMessage `json:"second"`
}

// handleIntersect computes the intersection point of two line segments
// posted as GeoJSON LineStrings.
func (s *Server) handleIntersect(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	var req intersectRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.First == nil || req.Second == nil {
		s.writeError(w, http.StatusBadRequest, "Both first and second line segments are required")
		return
	}

	first, err := decodeSegment(req.First)
	if err != nil {
		s.handleGeometryDecodeError(w, err)
		return
	}
	second, err := decodeSegment(req.Second)
	if err != nil {
		s.handleGeometryDecodeError(w, err)
		return
	}

	s.metrics.IncGeometryOps("intersect")

	point, ok := domain.LineSegmentIntersection(first[0], first[1], second[0], second[1])
	response := map[string]interface{}{
		"intersects": ok,
	}
	if ok {
		response["point"] = json.RawMessage(geojson.EncodePoint(point))
	}

	s.writeJSON(w, http.StatusOK, response)
}

// handleBBox computes the bounding box of any GeoJSON geometry posted in
// the request body.
func (s *Server) handleBBox(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	geometry, err := geojson.DecodeGeometry(body)
	if err != nil {
		s.handleGeometryDecodeError(w, err)
		return
	}

	s.metrics.IncGeometryOps("bbox")

	bbox := geometry.BoundingBox()
	center := bbox.Center()
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"type": string(geometry.Type),
		"bbox": map[string]interface{}{
			"min_lat": bbox.MinLat,
			"max_lat": bbox.MaxLat,
			"min_lng": bbox.MinLng,
			"max_lng": bbox.MaxLng,
		},
		"center": pointJSON(center),
	})
}

// decodeSegment decodes a GeoJSON LineString with at least two positions
// into a segment.
func decodeSegment(raw json.RawMessage) ([2]domain.Point, error) {
	var seg [2]domain.Point

	line, err := geojson.DecodeLineString(raw)
	if err != nil {
		return seg, err
	}
	if len(line) < 2 {
		return seg, &domain.ValidationError{
			Field:      "segment",
			Value:      len(line),
			Constraint: "at least 2 positions",
			Message:    "line segment requires two positions",
		}
	}

	seg[0] = line[0]
	seg[1] = line[1]
	return seg, nil
}

// handleGeometryDecodeError maps decode failures to HTTP status codes.
func (s *Server) handleGeometryDecodeError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		s.writeError(w, http.StatusBadRequest, validationErr.Message)
		return
	}

	if errors.Is(err, domain.ErrInvalidInput) {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.logger.Error("geometry decode error", "error", err)
	s.writeError(w, http.StatusInternalServerError, "Failed to decode geometry")
}

// parsePointParams parses and validates a lat/lng pair from query
// parameters.
func parsePointParams(r *http.Request, latName, lngName string) (domain.Point, error) {
	q := r.URL.Query()

	latRaw := q.Get(latName)
	lngRaw := q.Get(lngName)
	if latRaw == "" || lngRaw == "" {
		return domain.Point{}, errors.New("coordinates required: use " + latName + " and " + lngName)
	}

	lat, err := strconv.ParseFloat(latRaw, 64)
	if err != nil {
		return domain.Point{}, errors.New("invalid " + latName + " parameter")
	}
	lng, err := strconv.ParseFloat(lngRaw, 64)
	if err != nil {
		return domain.Point{}, errors.New("invalid " + lngName + " parameter")
	}

	p, err := domain.NewPoint(lat, lng)
	if err != nil {
		return domain.Point{}, err
	}
	return p, nil
}

func pointJSON(p domain.Point) map[string]interface{} {
	return map[string]interface{}{
		"lat": p.Lat,
		"lng": p.Lng,
	}
}

func readBody(r *http.Request) ([]byte, error) {
	defer func() { _ = r.Body.Close() }()
	return io.ReadAll(io.LimitReader(r.Body, maxGeometryBody))
}
