package render

import (
	"context"
	"testing"

	"github.com/taigrr/rasterctl/pkg/mesh"
	"github.com/taigrr/rasterctl/pkg/vecmath"
)

func TestDrawTriangleFilledSinglePixel(t *testing.T) {
	fb := NewFrameBuffer(1, 1)
	db := NewDepthBuffer(1, 1)

	a := vecmath.V3(-1, -1, 0)
	b := vecmath.V3(1, -1, 0)
	c := vecmath.V3(0, 1, 0)
	DrawTriangleFilled(fb, db, a, b, c, vecmath.V3(1, 0, 0))

	got, _ := fb.Get(0, 0)
	if got == (Color3{}) {
		t.Fatal("expected the single pixel to be non-black")
	}
}

func TestDrawEmptySceneLeavesClearColor(t *testing.T) {
	fb := NewFrameBuffer(16, 16)
	db := NewDepthBuffer(16, 16)
	r := NewRenderer()

	if err := r.Draw(context.Background(), nil, DefaultCamera(), fb, db, Shaded); err != nil {
		t.Fatalf("Draw returned an error for an empty scene: %v", err)
	}
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			got, _ := fb.Get(x, y)
			if got != (Color3{}) {
				t.Fatalf("pixel (%d,%d) = %v, want the clear color", x, y, got)
			}
		}
	}
}

// frontFacingQuadMesh returns a single triangle at depth z, wound
// counter-clockwise in the XY plane, so it faces a camera on the +z side
// looking toward -z.
func frontFacingQuadMesh(t *testing.T, z float64) *mesh.Mesh {
	t.Helper()
	verts := []mesh.Vertex{
		{Position: vecmath.V3(-1, -1, z)},
		{Position: vecmath.V3(1, -1, z)},
		{Position: vecmath.V3(0, 1, z)},
	}
	m, err := mesh.New("tri", verts, []mesh.Face{{V: [3]int{0, 1, 2}}})
	if err != nil {
		t.Fatalf("mesh.New: %v", err)
	}
	return m
}

func TestDrawDepthOcclusionKeepsFrontTriangle(t *testing.T) {
	cam := DefaultCamera()
	cam.SetPosition(vecmath.V3(0, 0, -5))
	cam.SetTarget(vecmath.Zero3())

	// The camera sits at z=-5 looking toward +z, so the triangle translated to
	// z=-1 (distance 4 from the camera) is physically nearer than the one
	// at z=+1 (distance 6) and must be the one that survives occlusion.
	front := frontFacingQuadMesh(t, 0).WithModelMatrix(vecmath.Translate(vecmath.V3(0, 0, -1)))
	back := frontFacingQuadMesh(t, 0).WithModelMatrix(vecmath.Translate(vecmath.V3(0, 0, 1)))

	fbBoth := NewFrameBuffer(32, 32)
	dbBoth := NewDepthBuffer(32, 32)
	r := NewRenderer()
	r.Cull = false
	if err := r.Draw(context.Background(), []Drawable{back, front}, cam, fbBoth, dbBoth, Shaded); err != nil {
		t.Fatalf("Draw: %v", err)
	}

	fbFrontOnly := NewFrameBuffer(32, 32)
	dbFrontOnly := NewDepthBuffer(32, 32)
	if err := r.Draw(context.Background(), []Drawable{front}, cam, fbFrontOnly, dbFrontOnly, Shaded); err != nil {
		t.Fatalf("Draw: %v", err)
	}

	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			both, _ := fbBoth.Get(x, y)
			only, _ := fbFrontOnly.Get(x, y)
			if both != only {
				t.Fatalf("pixel (%d,%d) differs between occluded and front-only renders: %v vs %v", x, y, both, only)
			}
		}
	}
}

func TestDrawBackFaceCullWritesNoPixels(t *testing.T) {
	cam := DefaultCamera()
	cam.SetPosition(vecmath.V3(0, 0, 5))
	cam.SetTarget(vecmath.Zero3())

	// The camera sits at z=+5 looking toward -z. Reversed winding relative
	// to frontFacingQuadMesh faces away from it (view-space normal z < 0)
	// and should be culled entirely.
	verts := []mesh.Vertex{
		{Position: vecmath.V3(-1, -1, 0)},
		{Position: vecmath.V3(0, 1, 0)},
		{Position: vecmath.V3(1, -1, 0)},
	}
	m, err := mesh.New("reversed", verts, []mesh.Face{{V: [3]int{0, 1, 2}}})
	if err != nil {
		t.Fatalf("mesh.New: %v", err)
	}

	fb := NewFrameBuffer(32, 32)
	db := NewDepthBuffer(32, 32)
	r := NewRenderer()
	r.Cull = true
	if err := r.Draw(context.Background(), []Drawable{m}, cam, fb, db, Shaded); err != nil {
		t.Fatalf("Draw: %v", err)
	}

	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			got, _ := fb.Get(x, y)
			if got != (Color3{}) {
				t.Fatalf("pixel (%d,%d) was written despite back-face culling", x, y)
			}
		}
	}
}

func TestDrawInvalidModeIsAnError(t *testing.T) {
	fb := NewFrameBuffer(4, 4)
	db := NewDepthBuffer(4, 4)
	r := NewRenderer()
	err := r.Draw(context.Background(), nil, DefaultCamera(), fb, db, Mode(99))
	if err == nil {
		t.Fatal("expected an error for an invalid mode")
	}
}
