// Package pngio writes a render.FrameBuffer to an 8-bit RGBA PNG, applying
// gamma correction on the way out since the framebuffer stores linear
// color.
package pngio

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/taigrr/rasterctl/pkg/render"
)

// Gamma is the encoding gamma applied to each linear channel before
// quantizing to 8 bits: output = linear^(1/Gamma).
const Gamma = 2.2

// Encode converts fb to an image.RGBA, gamma-correcting every channel and
// fixing alpha at 255.
func Encode(fb *render.FrameBuffer) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			c, _ := fb.Get(x, y)
			img.SetRGBA(x, y, color.RGBA{
				R: encodeChannel(c.X),
				G: encodeChannel(c.Y),
				B: encodeChannel(c.Z),
				A: 255,
			})
		}
	}
	return img
}

func encodeChannel(linear float64) uint8 {
	if linear <= 0 {
		return 0
	}
	if linear >= 1 {
		return 255
	}
	return uint8(math.Pow(linear, 1/Gamma) * 255)
}

// Write gamma-encodes fb and writes it to path as a PNG.
func Write(fb *render.FrameBuffer, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, Encode(fb)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
