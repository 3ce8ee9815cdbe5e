package render

import (
	"testing"

	"github.com/taigrr/rasterctl/pkg/vecmath"
)

func TestDrawLineFidelity(t *testing.T) {
	fb := NewFrameBuffer(16, 16)
	red := Color3{X: 1}
	DrawLine(fb, 2, 2, 10, 2, red)

	count := 0
	for x := 0; x < 16; x++ {
		c, _ := fb.Get(x, 2)
		if c == red {
			count++
		}
	}
	if count != 9 {
		t.Fatalf("got %d colored pixels on y=2, want 9", count)
	}
}

func TestDrawTriangleFilledCoversInterior(t *testing.T) {
	fb := NewFrameBuffer(11, 11)
	db := NewDepthBuffer(11, 11)
	color := Color3{X: 1}

	a := ndcFor(0, 0, 0, 11, 11)
	b := ndcFor(10, 0, 0, 11, 11)
	c := ndcFor(0, 10, 0, 11, 11)
	DrawTriangleFilled(fb, db, a, b, c, color)

	// Pixel centers are tested at (x+0.5,y+0.5); the hypotenuse x+y=10
	// passes through those centers at x+y=9, so that is the filled
	// region's boundary, not x+y=10.
	for y := 0; y <= 9; y++ {
		for x := 0; x <= 9-y; x++ {
			got, _ := fb.Get(x, y)
			if got != color {
				t.Fatalf("pixel (%d,%d) not filled", x, y)
			}
		}
	}
}

func TestDrawTriangleWireframeDrawsThreeEdges(t *testing.T) {
	fb := NewFrameBuffer(11, 11)
	color := Color3{X: 1}

	a := ndcFor(0, 0, 0, 11, 11)
	b := ndcFor(10, 0, 0, 11, 11)
	c := ndcFor(0, 10, 0, 11, 11)
	DrawTriangleWireframe(fb, a, b, c, color)

	// Every vertex and the midpoint of each axis-aligned edge must be lit.
	for _, p := range [][2]int{{0, 0}, {10, 0}, {0, 10}, {5, 0}, {0, 5}} {
		got, _ := fb.Get(p[0], p[1])
		if got != color {
			t.Fatalf("expected edge pixel (%d,%d) to be lit", p[0], p[1])
		}
	}
}

// ndcFor returns the NDC point that projectToScreen maps to the screen
// point (px,py), the top-left corner of that pixel, for constructing test
// fixtures directly in screen space.
func ndcFor(px, py int, z float64, width, height int) vecmath.Vec3 {
	x := float64(px)/float64(width)*2 - 1
	y := 1 - float64(py)/float64(height)*2
	return vecmath.V3(x, y, z)
}

func TestDepthBufferGreaterThanWins(t *testing.T) {
	fb := NewFrameBuffer(1, 1)
	db := NewDepthBuffer(1, 1)
	near := Color3{X: 1}
	far := Color3{Y: 1}

	db.TestAndSet(0, 0, -0.5, func() { fb.setClamped(0, 0, far) })
	db.TestAndSet(0, 0, 0.5, func() { fb.setClamped(0, 0, near) })

	got, _ := fb.Get(0, 0)
	if got != near {
		t.Fatalf("expected the nearer (larger z) write to win, got %v", got)
	}
}

func TestDepthBufferTieDoesNotOverwrite(t *testing.T) {
	fb := NewFrameBuffer(1, 1)
	db := NewDepthBuffer(1, 1)
	first := Color3{X: 1}
	second := Color3{Y: 1}

	db.TestAndSet(0, 0, 0.5, func() { fb.setClamped(0, 0, first) })
	db.TestAndSet(0, 0, 0.5, func() { fb.setClamped(0, 0, second) })

	got, _ := fb.Get(0, 0)
	if got != first {
		t.Fatalf("expected a tied depth to leave the first write in place, got %v", got)
	}
}
