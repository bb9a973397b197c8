package domain

// Raster is a dense, fixed-size 2-D grid of float64 cells in row-major
// order, georeferenced by a bounding box. The raster owns its backing
// storage exclusively: it is allocated by NewRaster and released by a
// single Close call from the owner. Access after Close is undefined.
// Concurrent mutation is not synchronized; callers must serialize.
type Raster struct {
	width  int
	height int
	data   []float64
	bounds BoundingBox
}

// NewRaster allocates a zero-filled width x height raster covering the
// given bounds.
func NewRaster(width, height int, bounds BoundingBox) *Raster {
	return &Raster{
		width:  width,
		height: height,
		data:   make([]float64, width*height),
		bounds: bounds,
	}
}

// Width returns the raster width in cells.
func (r *Raster) Width() int { return r.width }

// Height returns the raster height in cells.
func (r *Raster) Height() int { return r.height }

// Bounds returns the georeferenced bounding box.
func (r *Raster) Bounds() BoundingBox { return r.bounds }

// Get returns the cell value at (x, y). Out-of-range coordinates read
// as 0.0; this is a clamp-to-default policy, not an error.
func (r *Raster) Get(x, y int) float64 {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return 0.0
	}
	return r.data[y*r.width+x]
}

// Set writes the cell value at (x, y). Out-of-range coordinates are
// silently ignored.
func (r *Raster) Set(x, y int, value float64) {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return
	}
	r.data[y*r.width+x] = value
}

// Add increments the cell value at (x, y), with the same out-of-range
// policy as Set.
func (r *Raster) Add(x, y int, delta float64) {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return
	}
	r.data[y*r.width+x] += delta
}

// Cells returns the backing row-major cell slice. The raster retains
// ownership; the slice is only valid until Close.
func (r *Raster) Cells() []float64 {
	return r.data
}

// Close releases the backing storage. It must be called exactly once by
// the raster's owner.
func (r *Raster) Close() {
	r.data = nil
	r.width = 0
	r.height = 0
}
