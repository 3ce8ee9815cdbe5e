package render

import (
	"errors"
	"math"

	"github.com/taigrr/rasterctl/pkg/vecmath"
)

// ErrDegenerateCamera is returned by Validate when position and
// target coincide, or when up is parallel to the view direction — either
// case leaves the look-at basis undefined.
var ErrDegenerateCamera = errors.New("render: camera position/target/up does not define a basis")

// Camera holds the eye, target, and up vectors plus projection parameters,
// and emits view and projection matrices.
type Camera struct {
	Position vecmath.Vec3
	Target   vecmath.Vec3
	Up       vecmath.Vec3
	FOVDeg   float64
	Near     float64
	Far      float64

	viewMatrix Mat4Cache
}

// Mat4Cache caches a derived matrix behind a dirty flag; Camera uses it so
// the view matrix is not recomputed on every access.
type Mat4Cache struct {
	value vecmath.Mat4
	dirty bool
}

// DefaultCamera returns a camera with the pipeline's default framing:
// position (0,0,-2), target the origin, up +Y, a 45 degree vertical FOV,
// and near/far of 0.1/100.
func DefaultCamera() *Camera {
	c := &Camera{
		Position: vecmath.V3(0, 0, -2),
		Target:   vecmath.Zero3(),
		Up:       vecmath.V3(0, 1, 0),
		FOVDeg:   45,
		Near:     0.1,
		Far:      100,
	}
	c.invalidate()
	return c
}

// Validate checks the camera's invariants: the position-to-target distance
// is non-zero, and up is not parallel to the view direction.
func (c *Camera) Validate() error {
	dir := c.Target.Sub(c.Position)
	if dir.LenSq() == 0 {
		return ErrDegenerateCamera
	}
	dirUnit, err := dir.Unit()
	if err != nil {
		return ErrDegenerateCamera
	}
	upUnit, err := c.Up.Unit()
	if err != nil {
		return ErrDegenerateCamera
	}
	if cross := dirUnit.Cross(upUnit); cross.LenSq() < 1e-12 {
		return ErrDegenerateCamera
	}
	return nil
}

func (c *Camera) invalidate() {
	c.viewMatrix.dirty = true
}

// SetPosition moves the camera.
func (c *Camera) SetPosition(pos vecmath.Vec3) {
	c.Position = pos
	c.viewMatrix.dirty = true
}

// SetTarget retargets the camera.
func (c *Camera) SetTarget(target vecmath.Vec3) {
	c.Target = target
	c.viewMatrix.dirty = true
}

// SetFOV sets the vertical field of view in degrees.
func (c *Camera) SetFOV(fovDeg float64) {
	c.FOVDeg = fovDeg
}

// SetClipPlanes sets the near and far clip distances.
func (c *Camera) SetClipPlanes(near, far float64) {
	c.Near = near
	c.Far = far
}

// View returns the view matrix, built per the forward/right/up convention:
// forward = unit(target-position), right = unit(forward x up),
// up' = right x forward.
func (c *Camera) View() vecmath.Mat4 {
	if c.viewMatrix.dirty {
		c.viewMatrix.value = vecmath.LookAt(c.Position, c.Target, c.Up)
		c.viewMatrix.dirty = false
	}
	return c.viewMatrix.value
}

// Projection returns the perspective projection matrix for the given
// aspect ratio (width/height). The projection is not cached across aspect
// ratios since the renderer recomputes aspect per draw call from the
// framebuffer's current dimensions.
func (c *Camera) Projection(aspect float64) vecmath.Mat4 {
	return vecmath.Perspective(c.fovRadians(), aspect, c.Near, c.Far)
}

func (c *Camera) fovRadians() float64 {
	return c.FOVDeg * math.Pi / 180
}

// ViewProjection returns Projection(aspect) * View().
func (c *Camera) ViewProjection(aspect float64) vecmath.Mat4 {
	return c.Projection(aspect).Mul(c.View())
}
