package render

import (
	"errors"
	"fmt"
)

// ErrInvalidMode is returned by ParseMode when given a string naming
// none of the three defined modes.
var ErrInvalidMode = errors.New("render: invalid mode")

// Mode selects how the renderer shades each triangle. It is a closed set:
// every Renderer.Draw call must dispatch on exactly these three.
type Mode int

const (
	// Wireframe draws only triangle edges, with no depth test or shading.
	Wireframe Mode = iota
	// Shaded fills triangles with flat Lambertian shading from the face
	// normal and a single directional light.
	Shaded
	// Normals fills triangles with a color derived from the face normal,
	// useful for debugging geometry independent of lighting.
	Normals
)

func (m Mode) String() string {
	switch m {
	case Wireframe:
		return "wireframe"
	case Shaded:
		return "shaded"
	case Normals:
		return "normals"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Valid reports whether m is one of the three defined modes.
func (m Mode) Valid() bool {
	switch m {
	case Wireframe, Shaded, Normals:
		return true
	default:
		return false
	}
}

// ParseMode maps a CLI flag string to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "wireframe":
		return Wireframe, nil
	case "shaded":
		return Shaded, nil
	case "normals":
		return Normals, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}
