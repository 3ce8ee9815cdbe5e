package render

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/taigrr/rasterctl/pkg/mesh"
	"github.com/taigrr/rasterctl/pkg/profile"
	"github.com/taigrr/rasterctl/pkg/vecmath"
)

// ErrEmptyFrameBuffer is returned by Draw when the target framebuffer has
// zero width or height, since aspect = width/height is then undefined.
var ErrEmptyFrameBuffer = errors.New("render: framebuffer has zero width or height")

var lightDirection = vecmath.V3(1, 1, 1).Normalize()

// Drawable is a mesh carrying its own world placement in ModelMatrix. A
// scene is an ordered slice of these rather than a single mesh, so the
// same geometry can appear multiple times with different placements via
// mesh.WithModelMatrix.
type Drawable = *mesh.Mesh

// Renderer walks one or more meshes and rasterizes them into a framebuffer
// and depth buffer, dispatching vertex and face work across a Dispatcher.
type Renderer struct {
	Dispatcher  *Dispatcher
	Cull        bool
	WireColor   Color3
	ProfileSink profile.Sink
}

// NewRenderer returns a Renderer with back-face culling enabled, white
// wireframe edges, and a GOMAXPROCS-sized dispatcher.
func NewRenderer() *Renderer {
	return &Renderer{
		Dispatcher:  NewDispatcher(),
		Cull:        true,
		WireColor:   vecmath.V3(1, 1, 1),
		ProfileSink: profile.Noop{},
	}
}

// Draw renders every mesh in meshes against camera into fb/db under mode.
// It borrows all inputs and returns nothing but an error; an unrecognized
// mode is a programmer error reported through err rather than panicking.
func (r *Renderer) Draw(ctx context.Context, drawables []Drawable, camera *Camera, fb *FrameBuffer, db *DepthBuffer, mode Mode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidMode, mode)
	}
	if fb.Width == 0 || fb.Height == 0 {
		return ErrEmptyFrameBuffer
	}

	stop := profile.Scope(r.ProfileSink, "Renderer.Draw")
	defer stop()

	aspect := float64(fb.Width) / float64(fb.Height)
	view := camera.View()
	proj := camera.Projection(aspect)

	for _, m := range drawables {
		if err := r.drawMesh(ctx, m, view, proj, fb, db, mode); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) drawMesh(ctx context.Context, m *mesh.Mesh, view, proj vecmath.Mat4, fb *FrameBuffer, db *DepthBuffer, mode Mode) error {
	worldFromModel := m.ModelMatrix
	viewFromModel := view.Mul(worldFromModel)

	viewSpace := make([]vecmath.Vec3, m.VertexCount())
	ndc := make([]vecmath.Vec3, m.VertexCount())

	err := r.Dispatcher.ParallelFor(ctx, 0, m.VertexCount(), func(_ context.Context, i int) error {
		v, err := m.Vertex(i)
		if err != nil {
			return err
		}
		vs := viewFromModel.MulVec3(v.Position)
		viewSpace[i] = vs

		clip := proj.MulVec4(vecmath.V4FromV3(vs, 1))
		ndc[i] = clip.PerspectiveDivide()
		return nil
	})
	if err != nil {
		return err
	}

	return r.Dispatcher.ParallelFor(ctx, 0, m.TriangleCount(), func(_ context.Context, i int) error {
		face, err := m.Face(i)
		if err != nil {
			return err
		}

		v0, v1, v2 := viewSpace[face[0]], viewSpace[face[1]], viewSpace[face[2]]
		n := v1.Sub(v0).Cross(v2.Sub(v0))
		unitN, err := n.Unit()
		if err != nil {
			// Degenerate (zero-area) triangle in view space; nothing to draw.
			return nil
		}

		if r.Cull && unitN.Z <= 0 {
			return nil
		}

		ndc0, ndc1, ndc2 := ndc[face[0]], ndc[face[1]], ndc[face[2]]

		switch mode {
		case Wireframe:
			DrawTriangleWireframe(fb, ndc0, ndc1, ndc2, r.WireColor)
		case Shaded:
			intensity := math.Max(0.01, unitN.Dot(lightDirection))
			DrawTriangleFilled(fb, db, ndc0, ndc1, ndc2, vecmath.V3(intensity, intensity, intensity))
		case Normals:
			color := vecmath.V3(math.Abs(unitN.X), math.Abs(unitN.Y), math.Abs(unitN.Z))
			DrawTriangleFilled(fb, db, ndc0, ndc1, ndc2, color)
		default:
			return fmt.Errorf("%w: %v", ErrInvalidMode, mode)
		}
		return nil
	})
}
