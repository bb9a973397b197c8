package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/jobrunner/meridian/internal/adapters/geojson"
	"github.com/jobrunner/meridian/internal/application"
	"github.com/jobrunner/meridian/internal/domain"
)

// QueryParams represents the query parameters for a spatial query.
type QueryParams struct {
	Lat        float64  `json:"lat"`
	Lng        float64  `json:"lng"`
	RadiusKm   float64  `json:"radius_km,omitempty"`
	Properties []string `json:"properties,omitempty"`
}

// handleQuery handles point queries across all collections.
func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	params, err := s.parseQueryParams(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	req := domain.QueryRequest{
		Point:      domain.Point{Lat: params.Lat, Lng: params.Lng},
		Properties: params.Properties,
	}

	response, err := s.queryService.QueryPoint(r.Context(), req)
	if err != nil {
		s.handleQueryError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, s.formatQueryResponse(response))
}

// handleQueryCollection handles point queries for a specific collection.
func (s *Server) handleQueryCollection(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	collectionID := vars["collectionId"]

	params, err := s.parseQueryParams(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	req := domain.QueryRequest{
		Point:        domain.Point{Lat: params.Lat, Lng: params.Lng},
		Properties:   params.Properties,
		CollectionID: collectionID,
	}

	response, err := s.queryService.QueryPoint(r.Context(), req)
	if err != nil {
		s.handleQueryError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, s.formatQueryResponse(response))
}

// handleRadius handles radius queries across all collections.
func (s *Server) handleRadius(w http.ResponseWriter, r *http.Request) {
	params, err := s.parseQueryParams(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	req := domain.QueryRequest{
		Point:      domain.Point{Lat: params.Lat, Lng: params.Lng},
		RadiusKm:   params.RadiusKm,
		Properties: params.Properties,
	}

	response, err := s.queryService.QueryRadius(r.Context(), req)
	if err != nil {
		s.handleQueryError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, s.formatQueryResponse(response))
}

// handleHealth returns detailed health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	details := s.health.GetHealthDetails(r.Context())

	status := http.StatusOK
	if !details.Healthy {
		status = http.StatusServiceUnavailable
	}

	s.writeJSON(w, status, map[string]interface{}{
		"status":             boolToStatus(details.Healthy),
		"ready":              details.Ready,
		"collections_loaded": details.CollectionsLoaded,
		"collections_ready":  details.CollectionsReady,
		"components":         details.Components,
	})
}

// handleLiveness returns liveness status.
func (s *Server) handleLiveness(w http.ResponseWriter, r *http.Request) {
	if s.health.IsHealthy(r.Context()) {
		s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	} else {
		s.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
	}
}

// handleReadiness returns readiness status.
func (s *Server) handleReadiness(w http.ResponseWriter, r *http.Request) {
	if s.health.IsReady(r.Context()) {
		s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	} else {
		s.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
	}
}

// handleListCollections returns all registered collections.
func (s *Server) handleListCollections(w http.ResponseWriter, r *http.Request) {
	collections, err := s.registry.ListCollections(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "Failed to list collections")
		return
	}

	response := make([]map[string]interface{}, len(collections))
	for i := range collections {
		response[i] = s.formatCollection(&collections[i])
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"collections": response,
		"count":       len(collections),
	})
}

// handleGetCollection returns a specific collection.
func (s *Server) handleGetCollection(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	collectionID := vars["collectionId"]

	col, err := s.registry.GetCollection(r.Context(), collectionID)
	if err != nil {
		if errors.Is(err, domain.ErrCollectionNotFound) {
			s.writeError(w, http.StatusNotFound, "Collection not found")
			return
		}
		s.writeError(w, http.StatusInternalServerError, "Failed to get collection")
		return
	}

	s.writeJSON(w, http.StatusOK, s.formatCollection(col))
}

// handleCollectionStatus returns the lifecycle status of a collection.
func (s *Server) handleCollectionStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	collectionID := vars["collectionId"]

	status, err := s.registry.GetCollectionStatus(r.Context(), collectionID)
	if err != nil {
		if errors.Is(err, domain.ErrCollectionNotFound) {
			s.writeError(w, http.StatusNotFound, "Collection not found")
			return
		}
		s.writeError(w, http.StatusInternalServerError, "Failed to get collection status")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"collection_id": collectionID,
		"status":        string(status),
	})
}

// handleRaster builds a density raster for a collection.
func (s *Server) handleRaster(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	collectionID := vars["collectionId"]

	width, err := parseIntParam(r, "width", 256)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	height, err := parseIntParam(r, "height", 256)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	raster, err := s.rasterService.BuildDensityRaster(r.Context(), collectionID, width, height)
	if err != nil {
		s.handleQueryError(w, err)
		return
	}
	defer raster.Close()

	bounds := raster.Bounds()
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"collection_id": collectionID,
		"width":         raster.Width(),
		"height":        raster.Height(),
		"bounds": map[string]interface{}{
			"min_lat": bounds.MinLat,
			"max_lat": bounds.MaxLat,
			"min_lng": bounds.MinLng,
			"max_lng": bounds.MaxLng,
		},
		"cells": raster.Cells(),
	})
}

// handleOpenAPI returns the OpenAPI specification.
func (s *Server) handleOpenAPI(w http.ResponseWriter, _ *http.Request) {
	spec, err := getOpenAPIJSON()
	if err != nil {
		s.logger.Error("failed to get OpenAPI spec", "error", err)
		s.writeError(w, http.StatusInternalServerError, "Failed to load OpenAPI specification")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(spec)
}

// parseQueryParams parses query parameters from the request.
func (s *Server) parseQueryParams(r *http.Request) (*QueryParams, error) {
	params := &QueryParams{}

	q := r.URL.Query()

	lat := q.Get("lat")
	lng := q.Get("lng")
	if lng == "" {
		lng = q.Get("lon") // Accept both spellings
	}

	if lat == "" || lng == "" {
		return nil, errors.New("coordinates required: use lat and lng")
	}

	v, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return nil, errors.New("invalid lat parameter")
	}
	params.Lat = v

	v, err = strconv.ParseFloat(lng, 64)
	if err != nil {
		return nil, errors.New("invalid lng parameter")
	}
	params.Lng = v

	if radius := q.Get("radius_km"); radius != "" {
		v, err := strconv.ParseFloat(radius, 64)
		if err != nil {
			return nil, errors.New("invalid radius_km parameter")
		}
		params.RadiusKm = v
	}

	// Parse properties filter
	if props := q.Get("properties"); props != "" {
		params.Properties = strings.Split(props, ",")
	}

	return params, nil
}

// parseIntParam parses an optional positive integer query parameter.
func parseIntParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("invalid " + name + " parameter")
	}
	return v, nil
}

// formatQueryResponse formats the query response for JSON output.
func (s *Server) formatQueryResponse(resp *domain.QueryResponse) map[string]interface{} {
	results := make([]map[string]interface{}, len(resp.Results))
	for i := range resp.Results {
		r := &resp.Results[i]
		features := make([]map[string]interface{}, len(r.Features))
		for j := range r.Features {
			f := &r.Features[j]
			features[j] = map[string]interface{}{
				"id":         f.ID,
				"properties": f.Properties,
			}
			// Only include geometry if explicitly enabled via --with-geometry
			// or MERIDIAN_RESULTS_WITH_GEOMETRY
			if s.withGeometry {
				anchor := f.Anchor()
				features[j]["anchor"] = json.RawMessage(geojson.EncodePoint(anchor))
			}
		}

		results[i] = map[string]interface{}{
			"collection_id":   r.CollectionID,
			"collection_name": r.CollectionName,
			"features":        features,
			"feature_count":   r.FeatureCount(),
			"query_time_ms":   r.QueryTime.Milliseconds(),
		}

		if !r.License.IsEmpty() {
			results[i]["license"] = map[string]interface{}{
				"name":        r.License.Name,
				"url":         r.License.URL,
				"attribution": r.License.Attribution,
			}
		}
	}

	return map[string]interface{}{
		"point": map[string]interface{}{
			"lat": resp.Point.Lat,
			"lng": resp.Point.Lng,
		},
		"results":            results,
		"total_features":     resp.TotalFeatures,
		"processing_time_ms": resp.ProcessingTime.Milliseconds(),
	}
}

// formatCollection formats a collection for JSON output.
func (s *Server) formatCollection(col *domain.Collection) map[string]interface{} {
	out := map[string]interface{}{
		"id":            col.ID,
		"name":          col.Name,
		"path":          col.Path,
		"size":          col.Size,
		"feature_count": col.FeatureCount,
		"indexed":       col.Indexed,
		"ready":         col.IsReady(),
		"loaded_at":     col.LoadedAt,
		"last_queried":  col.LastQueried,
	}
	if !col.BBox.IsZero() {
		out["bbox"] = map[string]interface{}{
			"min_lat": col.BBox.MinLat,
			"max_lat": col.BBox.MaxLat,
			"min_lng": col.BBox.MinLng,
			"max_lng": col.BBox.MaxLng,
		}
	}
	return out
}

// handleQueryError handles query errors and returns appropriate HTTP status.
func (s *Server) handleQueryError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		s.writeError(w, http.StatusBadRequest, validationErr.Message)
		return
	}

	if errors.Is(err, domain.ErrCollectionNotFound) {
		s.writeError(w, http.StatusNotFound, "Collection not found")
		return
	}

	if errors.Is(err, domain.ErrInvalidInput) {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.logger.Error("query error", "error", err)
	s.writeError(w, http.StatusInternalServerError, "Query failed")
}

// writeJSON writes a JSON response.
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]interface{}{
		"error":   http.StatusText(status),
		"message": message,
	})
}

func boolToStatus(b bool) string {
	if b {
		return "ok"
	}
	return "unhealthy"
}

// handleSync handles the sync trigger endpoint.
func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	if s.syncService == nil {
		s.writeError(w, http.StatusNotFound, "Sync service not available")
		return
	}

	result, err := s.syncService.TriggerSync(r.Context())
	if err != nil {
		if errors.Is(err, application.ErrRateLimited) {
			w.Header().Set("Retry-After", "30")
			s.writeError(w, http.StatusTooManyRequests, "Rate limit exceeded. Try again in 30 seconds.")
			return
		}
		s.logger.Error("sync failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "Sync failed")
		return
	}

	s.writeJSON(w, http.StatusOK, result)
}
