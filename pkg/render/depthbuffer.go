package render

import (
	"math"
	"sync"
)

// DepthBuffer is a width*height array of depth values, initialized and
// cleared to negative infinity, with one lock per pixel guarding the
// read-modify-write depth test against concurrent workers. The policy is
// "greater-than": a larger stored value means a point nearer the camera.
type DepthBuffer struct {
	Width, Height int
	depth         []float64
	locks         []sync.Mutex
}

// NewDepthBuffer allocates a DepthBuffer cleared to -Inf.
func NewDepthBuffer(width, height int) *DepthBuffer {
	db := &DepthBuffer{
		Width:  width,
		Height: height,
		depth:  make([]float64, width*height),
		locks:  make([]sync.Mutex, width*height),
	}
	db.Clear()
	return db
}

// Clear resets every depth value to -Inf.
func (db *DepthBuffer) Clear() {
	for i := range db.depth {
		db.depth[i] = math.Inf(-1)
	}
}

// Get returns the depth at (x,y). Out-of-bounds reads return -Inf rather
// than failing, matching the rasterizer's silent-clamp policy for pixel
// access.
func (db *DepthBuffer) Get(x, y int) float64 {
	if !db.inBounds(x, y) {
		return math.Inf(-1)
	}
	return db.depth[y*db.Width+x]
}

func (db *DepthBuffer) inBounds(x, y int) bool {
	return x >= 0 && x < db.Width && y >= 0 && y < db.Height
}

// lock returns the per-pixel mutex for (x,y) without acquiring it.
// Out-of-bounds coordinates are a caller error; TestAndSet never calls lock
// for an out-of-bounds pixel.
func (db *DepthBuffer) lock(x, y int) *sync.Mutex {
	return &db.locks[y*db.Width+x]
}

// TestAndSet performs the depth test and, on a pass, writes newDepth and
// invokes onPass under the per-pixel lock. It returns whether the test
// passed. Out-of-bounds pixels are silently skipped (return false).
func (db *DepthBuffer) TestAndSet(x, y int, newDepth float64, onPass func()) bool {
	if !db.inBounds(x, y) {
		return false
	}
	mu := db.lock(x, y)
	mu.Lock()
	defer mu.Unlock()

	idx := y*db.Width + x
	if newDepth > db.depth[idx] {
		db.depth[idx] = newDepth
		if onPass != nil {
			onPass()
		}
		return true
	}
	return false
}
