package render

import (
	"math"

	"github.com/taigrr/rasterctl/pkg/vecmath"
)

// SceneBounds returns the combined world-space center of every drawable's
// bounding box and a radius large enough to frame all of them, computed by
// transforming each mesh's local AABB corners through its own ModelMatrix.
// An empty scene returns the origin and a default radius of 3.
func SceneBounds(drawables []Drawable) (center vecmath.Vec3, radius float64) {
	if len(drawables) == 0 {
		return vecmath.Zero3(), 3
	}

	min, max := meshWorldBounds(drawables[0])
	for _, d := range drawables[1:] {
		lo, hi := meshWorldBounds(d)
		min = min.Min(lo)
		max = max.Max(hi)
	}

	center = min.Add(max).Scale(0.5)
	size := max.Sub(min)
	maxDim := math.Max(size.X, math.Max(size.Y, size.Z))
	radius = maxDim*1.5 + 2
	return center, radius
}

func meshWorldBounds(m Drawable) (min, max vecmath.Vec3) {
	localMin, localMax := m.Bounds()
	corners := [8]vecmath.Vec3{
		vecmath.V3(localMin.X, localMin.Y, localMin.Z),
		vecmath.V3(localMax.X, localMin.Y, localMin.Z),
		vecmath.V3(localMin.X, localMax.Y, localMin.Z),
		vecmath.V3(localMin.X, localMin.Y, localMax.Z),
		vecmath.V3(localMax.X, localMax.Y, localMin.Z),
		vecmath.V3(localMax.X, localMin.Y, localMax.Z),
		vecmath.V3(localMin.X, localMax.Y, localMax.Z),
		vecmath.V3(localMax.X, localMax.Y, localMax.Z),
	}
	min = m.ModelMatrix.MulVec3(corners[0])
	max = min
	for _, c := range corners[1:] {
		w := m.ModelMatrix.MulVec3(c)
		min = min.Min(w)
		max = max.Max(w)
	}
	return min, max
}
