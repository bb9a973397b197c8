package domain

import "testing"

func TestFeatureGetProperty(t *testing.T) {
	f := Feature{
		Properties: map[string]interface{}{
			"name":     "Linden",
			"zone":     float64(3),
			"density":  42.5,
			"resident": true,
		},
	}

	if v, ok := f.GetProperty("name"); !ok || v != "Linden" {
		t.Errorf("GetProperty(name) = %v, %v", v, ok)
	}
	if _, ok := f.GetProperty("missing"); ok {
		t.Error("expected missing property to report !ok")
	}

	var empty Feature
	if _, ok := empty.GetProperty("name"); ok {
		t.Error("expected nil property map to report !ok")
	}
}

func TestFeatureTypedProperties(t *testing.T) {
	f := Feature{
		Properties: map[string]interface{}{
			"name":    "Linden",
			"zone":    float64(3), // JSON numbers decode as float64
			"density": 42.5,
			"count":   int64(7),
		},
	}

	if got := f.GetStringProperty("name"); got != "Linden" {
		t.Errorf("GetStringProperty(name) = %q", got)
	}
	if got := f.GetStringProperty("zone"); got != "" {
		t.Errorf("GetStringProperty on a number = %q, want empty", got)
	}
	if got := f.GetIntProperty("zone"); got != 3 {
		t.Errorf("GetIntProperty(zone) = %d, want 3", got)
	}
	if got := f.GetIntProperty("count"); got != 7 {
		t.Errorf("GetIntProperty(count) = %d, want 7", got)
	}
	if got := f.GetFloatProperty("density"); got != 42.5 {
		t.Errorf("GetFloatProperty(density) = %f, want 42.5", got)
	}
	if got := f.GetFloatProperty("missing"); got != 0 {
		t.Errorf("GetFloatProperty(missing) = %f, want 0", got)
	}
}

func TestFeatureAnchor(t *testing.T) {
	point := Feature{
		Geometry: NewPointGeometry(Point{Lat: 52.5, Lng: 9.9}),
	}
	if got := point.Anchor(); got != (Point{Lat: 52.5, Lng: 9.9}) {
		t.Errorf("Anchor() = %+v, want the point itself", got)
	}

	polygon := Feature{
		Geometry: NewPolygonGeometry(Polygon{
			{Lat: 0, Lng: 0}, {Lat: 10, Lng: 0},
			{Lat: 10, Lng: 10}, {Lat: 0, Lng: 10},
		}),
		BBox: BoundingBox{MinLat: 0, MaxLat: 10, MinLng: 0, MaxLng: 10},
	}
	if got := polygon.Anchor(); got != (Point{Lat: 5, Lng: 5}) {
		t.Errorf("Anchor() = %+v, want the bbox center", got)
	}
}
