package domain

import "time"

// Metadata contains collection metadata, read from the GeoJSON
// document's foreign members when present.
type Metadata struct {
	Title       string            // Title
	Description string            // Description
	Creator     string            // Creator/Author
	Version     string            // Version string
	Keywords    []string          // Keywords/Tags
	Custom      map[string]string // Custom metadata fields
}

// HasKeyword checks if a keyword is present.
func (m *Metadata) HasKeyword(keyword string) bool {
	for _, k := range m.Keywords {
		if k == keyword {
			return true
		}
	}
	return false
}

// GetCustom returns a custom metadata value.
func (m *Metadata) GetCustom(key string) (string, bool) {
	if m.Custom == nil {
		return "", false
	}
	v, ok := m.Custom[key]
	return v, ok
}

// License contains license information for a collection.
type License struct {
	Name        string // License name (e.g., "CC BY 4.0")
	URL         string // Link to the license text
	Attribution string // Attribution text to display
}

// IsEmpty returns true if no license information is set.
func (l *License) IsEmpty() bool {
	return l.Name == "" && l.URL == "" && l.Attribution == ""
}

// String returns the attribution text or license name.
func (l *License) String() string {
	if l.Attribution != "" {
		return l.Attribution
	}
	return l.Name
}

// QueryResult represents the result of a spatial query against one
// collection.
type QueryResult struct {
	CollectionID   string        // Collection identifier
	CollectionName string        // Collection display name
	Features       []Feature     // Found features
	License        License       // License information
	QueryTime      time.Duration // Query execution time
}

// FeatureCount returns the number of features in the result.
func (r *QueryResult) FeatureCount() int {
	return len(r.Features)
}

// HasFeatures returns true if features were found.
func (r *QueryResult) HasFeatures() bool {
	return len(r.Features) > 0
}

// QueryRequest represents a spatial query request.
type QueryRequest struct {
	Point        Point    // Query point
	RadiusKm     float64  // Search radius in km (radius queries only)
	Properties   []string // Properties to return (empty = all)
	CollectionID string   // Specific collection (empty = all)
}

// QueryResponse represents the full query response.
type QueryResponse struct {
	Results        []QueryResult // Results per collection
	TotalFeatures  int           // Total feature count
	ProcessingTime time.Duration // Total processing time
	Point          Point         // Queried point
}

// AddResult adds a query result to the response.
func (r *QueryResponse) AddResult(result QueryResult) {
	r.Results = append(r.Results, result)
	r.TotalFeatures += result.FeatureCount()
}
