// Package render provides the camera, depth buffer, rasterizer primitives,
// and renderer that make up the core CPU rasterization pipeline.
package render

import (
	"errors"

	"github.com/taigrr/rasterctl/pkg/vecmath"
)

// ErrPixelOutOfBounds is returned by FrameBuffer's indexed accessors (Get/Set)
// when (x,y) is outside [0,width) x [0,height). Rasterizer primitives never
// return this error for an out-of-bounds write; they silently clamp or skip
// instead.
var ErrPixelOutOfBounds = errors.New("render: pixel access out of bounds")

// Color3 is a linear RGB color with components in [0,1]. FrameBuffer stores
// it unclamped; the gamma-correcting PNG writer clamps each channel to
// [0,1] when encoding.
type Color3 = vecmath.Vec3

// FrameBuffer is a width*height array of linear Color3 pixels, origin at
// the top-left, row-major so (x,y) maps to index y*width+x.
type FrameBuffer struct {
	Width, Height int
	pixels        []Color3
}

// NewFrameBuffer allocates a FrameBuffer cleared to black.
func NewFrameBuffer(width, height int) *FrameBuffer {
	return &FrameBuffer{
		Width:  width,
		Height: height,
		pixels: make([]Color3, width*height),
	}
}

// Clear resets every pixel to c. A new FrameBuffer starts out black.
func (fb *FrameBuffer) Clear(c Color3) {
	for i := range fb.pixels {
		fb.pixels[i] = c
	}
}

// Set writes a pixel, or returns ErrPixelOutOfBounds if (x,y) is outside
// the buffer. Use this from code paths where an out-of-range index is a
// programmer error; the rasterizer's own fill loops clamp to the bounding
// box instead of calling this.
func (fb *FrameBuffer) Set(x, y int, c Color3) error {
	if !fb.inBounds(x, y) {
		return ErrPixelOutOfBounds
	}
	fb.pixels[y*fb.Width+x] = c
	return nil
}

// Get reads a pixel, or returns ErrPixelOutOfBounds if (x,y) is outside the
// buffer.
func (fb *FrameBuffer) Get(x, y int) (Color3, error) {
	if !fb.inBounds(x, y) {
		return Color3{}, ErrPixelOutOfBounds
	}
	return fb.pixels[y*fb.Width+x], nil
}

// setClamped writes a pixel, silently doing nothing if out of bounds. This
// is what the rasterizer's fill loops call; rendering outside the
// framebuffer is a no-op.
func (fb *FrameBuffer) setClamped(x, y int, c Color3) {
	if !fb.inBounds(x, y) {
		return
	}
	fb.pixels[y*fb.Width+x] = c
}

func (fb *FrameBuffer) inBounds(x, y int) bool {
	return x >= 0 && x < fb.Width && y >= 0 && y < fb.Height
}

// Clone returns an independent deep copy; mutating the clone never affects
// the original.
func (fb *FrameBuffer) Clone() *FrameBuffer {
	clone := &FrameBuffer{Width: fb.Width, Height: fb.Height, pixels: make([]Color3, len(fb.pixels))}
	copy(clone.pixels, fb.pixels)
	return clone
}
