package domain

// Feature is a geometry with attribute data, parsed from a GeoJSON
// feature collection.
type Feature struct {
	ID           int64                  // Feature index within its collection
	CollectionID string                 // Owning collection
	Geometry     Geometry               // Geometry data
	BBox         BoundingBox            // Precomputed bounding box
	Properties   map[string]interface{} // Attribute data
}

// GetProperty returns a property value by key.
func (f *Feature) GetProperty(key string) (interface{}, bool) {
	if f.Properties == nil {
		return nil, false
	}
	v, ok := f.Properties[key]
	return v, ok
}

// GetStringProperty returns a property as string.
func (f *Feature) GetStringProperty(key string) string {
	if v, ok := f.GetProperty(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetIntProperty returns a property as int.
func (f *Feature) GetIntProperty(key string) int {
	if v, ok := f.GetProperty(key); ok {
		switch i := v.(type) {
		case int:
			return i
		case int64:
			return int(i)
		case float64:
			return int(i)
		}
	}
	return 0
}

// GetFloatProperty returns a property as float64.
func (f *Feature) GetFloatProperty(key string) float64 {
	if v, ok := f.GetProperty(key); ok {
		switch i := v.(type) {
		case float64:
			return i
		case float32:
			return float64(i)
		case int:
			return float64(i)
		case int64:
			return float64(i)
		}
	}
	return 0
}

// Anchor returns the representative point of the feature used for
// distance queries and rasterization: the point itself for point
// geometries, the bounding-box center otherwise.
func (f *Feature) Anchor() Point {
	if f.Geometry.IsPoint() {
		return f.Geometry.Point
	}
	return f.BBox.Center()
}
