package render

import (
	"math"

	"github.com/taigrr/rasterctl/pkg/vecmath"
)

// projectToScreen maps an NDC point into screen space: x=(ndc.x+1)/2*width,
// y=(1-ndc.y)/2*height (Y flipped so the origin is top-left). The NDC z is
// carried through unchanged for the depth test.
func projectToScreen(ndc vecmath.Vec3, width, height int) (x, y, z float64) {
	x = (ndc.X + 1) / 2 * float64(width)
	y = (1 - ndc.Y) / 2 * float64(height)
	z = ndc.Z
	return
}

// DrawLine draws a DDA line between two screen-space points. Points with
// float components are rounded to integer pixels first. When the line is
// steeper than 45 degrees the axes are transposed so iteration always
// advances along the longer axis, and endpoints are swapped so the
// iteration axis increases. Pixels outside the framebuffer are skipped,
// never an error. Wireframe edges do not participate in the depth buffer.
func DrawLine(fb *FrameBuffer, x0, y0, x1, y1 float64, color Color3) {
	ix0, iy0 := int(math.Round(x0)), int(math.Round(y0))
	ix1, iy1 := int(math.Round(x1)), int(math.Round(y1))

	steep := abs(iy1-iy0) > abs(ix1-ix0)
	if steep {
		ix0, iy0 = iy0, ix0
		ix1, iy1 = iy1, ix1
	}
	if ix0 > ix1 {
		ix0, ix1 = ix1, ix0
		iy0, iy1 = iy1, iy0
	}

	dx := ix1 - ix0
	dy := iy1 - iy0
	for x := ix0; x <= ix1; x++ {
		var t float64
		if dx != 0 {
			t = float64(x-ix0) / float64(dx)
		}
		y := iy0 + int(math.Round(t*float64(dy)))
		if steep {
			fb.setClamped(y, x, color)
		} else {
			fb.setClamped(x, y, color)
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// DrawTriangleWireframe draws the three edges of an NDC-space triangle as
// screen-space lines; it never touches the depth buffer, so overlapping
// wireframes always show every edge.
func DrawTriangleWireframe(fb *FrameBuffer, a, b, c vecmath.Vec3, color Color3) {
	ax, ay, _ := projectToScreen(a, fb.Width, fb.Height)
	bx, by, _ := projectToScreen(b, fb.Width, fb.Height)
	cx, cy, _ := projectToScreen(c, fb.Width, fb.Height)

	DrawLine(fb, ax, ay, bx, by, color)
	DrawLine(fb, bx, by, cx, cy, color)
	DrawLine(fb, cx, cy, ax, ay, color)
}

// edgeArea2 returns twice the signed area of triangle (p0,p1,p2) by the
// shoelace formula; the sign encodes winding and the magnitude is used
// directly as a barycentric weight numerator.
func edgeArea2(p0x, p0y, p1x, p1y, p2x, p2y float64) float64 {
	return (p1y-p0y)*(p1x+p0x) + (p2y-p1y)*(p2x+p1x) + (p0y-p2y)*(p0x+p2x)
}

// DrawTriangleFilled rasterizes an NDC-space triangle with the
// edge-function/barycentric method: project to screen space, walk the
// clamped integer bounding box, and for each pixel center compute
// barycentric weights from sub-triangle areas. A pixel is inside iff all
// three weights share the sign of the full triangle's area. Depth is
// interpolated linearly across the weights and tested per pixel against
// db before the color is written. Degenerate (zero-area) triangles
// produce no pixels.
func DrawTriangleFilled(fb *FrameBuffer, db *DepthBuffer, a, b, c vecmath.Vec3, color Color3) {
	ax, ay, az := projectToScreen(a, fb.Width, fb.Height)
	bx, by, bz := projectToScreen(b, fb.Width, fb.Height)
	cx, cy, cz := projectToScreen(c, fb.Width, fb.Height)

	area := edgeArea2(ax, ay, bx, by, cx, cy)
	if area == 0 {
		return
	}

	minX := int(math.Floor(minOf3(ax, bx, cx)))
	maxX := int(math.Ceil(maxOf3(ax, bx, cx)))
	minY := int(math.Floor(minOf3(ay, by, cy)))
	maxY := int(math.Ceil(maxOf3(ay, by, cy)))
	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX > fb.Width-1 {
		maxX = fb.Width - 1
	}
	if maxY > fb.Height-1 {
		maxY = fb.Height - 1
	}

	invArea := 1 / area
	for y := minY; y <= maxY; y++ {
		py := float64(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float64(x) + 0.5

			alpha := edgeArea2(px, py, bx, by, cx, cy) * invArea
			beta := edgeArea2(ax, ay, px, py, cx, cy) * invArea
			gamma := edgeArea2(ax, ay, bx, by, px, py) * invArea

			if alpha < 0 || beta < 0 || gamma < 0 {
				continue
			}

			z := alpha*az + beta*bz + gamma*cz
			db.TestAndSet(x, y, z, func() {
				fb.setClamped(x, y, color)
			})
		}
	}
}

func minOf3(a, b, c float64) float64 {
	return math.Min(a, math.Min(b, c))
}

func maxOf3(a, b, c float64) float64 {
	return math.Max(a, math.Max(b, c))
}
