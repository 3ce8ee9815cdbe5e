// Package preview implements the optional live terminal viewer: instead
// of writing one PNG, it orbits the camera around the scene and redraws
// the framebuffer to the terminal every frame using half-block cells.
package preview

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/rasterctl/pkg/pngio"
	"github.com/taigrr/rasterctl/pkg/render"
	"github.com/taigrr/rasterctl/pkg/vecmath"
)

// Options controls the orbit preview loop.
type Options struct {
	Mode      render.Mode
	Cull      bool
	Workers   int
	TargetFPS int
}

// Run orbits the camera around drawables' combined bounds at a fixed
// angular velocity, redrawing the terminal at Options.TargetFPS until ctx
// is canceled. Orbit easing uses a critically damped harmonica spring so
// the camera ramps up to speed smoothly instead of snapping to it.
func Run(ctx context.Context, drawables []render.Drawable, opts Options) error {
	if opts.TargetFPS <= 0 {
		opts.TargetFPS = 30
	}

	term := uv.DefaultTerminal()
	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("preview: get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("preview: start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}
	defer cleanup()

	cam := render.DefaultCamera()
	center, radius := render.SceneBounds(drawables)
	cam.SetTarget(center)

	r := render.NewRenderer()
	r.Cull = opts.Cull
	if opts.Workers > 0 {
		r.Dispatcher = &render.Dispatcher{Workers: opts.Workers}
	}

	angularVelocity := 0.6 // radians/sec at full speed
	spring := harmonica.NewSpring(harmonica.FPS(opts.TargetFPS), 4.0, 1.0)
	var speed, speedVelocity float64

	angle := 0.0
	frameDuration := time.Second / time.Duration(opts.TargetFPS)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
			case uv.KeyPressEvent:
				if ev.MatchString("escape", "ctrl+c", "q") {
					cancel()
					return
				}
			}
		}
	}()

	for {
		select {
		case <-runCtx.Done():
			return nil
		default:
		}

		speed, speedVelocity = spring.Update(speed, speedVelocity, angularVelocity)
		angle += speed / float64(opts.TargetFPS)

		orbitPos := center.Add(vecmath.V3(radius*math.Sin(angle), radius*0.4, -radius*math.Cos(angle)))
		cam.SetPosition(orbitPos)

		fbWidth, fbHeight := width, height*2
		fb := render.NewFrameBuffer(fbWidth, fbHeight)
		db := render.NewDepthBuffer(fbWidth, fbHeight)

		if err := r.Draw(ctx, drawables, cam, fb, db, opts.Mode); err != nil {
			return fmt.Errorf("preview: draw: %w", err)
		}

		drawHalfBlocks(term, fb, width, height)

		time.Sleep(frameDuration)
	}
}

// drawHalfBlocks renders fb (height = 2*termHeight) to the terminal using
// the upper-half-block trick: each terminal cell's foreground shows the
// even framebuffer row and its background shows the odd row below it.
func drawHalfBlocks(scr uv.Screen, fb *render.FrameBuffer, termWidth, termHeight int) {
	for row := 0; row < termHeight; row++ {
		topY := row * 2
		botY := topY + 1
		for col := 0; col < termWidth && col < fb.Width; col++ {
			top, _ := fb.Get(col, topY)
			bot, _ := fb.Get(col, botY)

			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: gammaColor(top),
					Bg: gammaColor(bot),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

func gammaColor(c render.Color3) color.Color {
	encode := func(v float64) uint8 {
		if v <= 0 {
			return 0
		}
		if v >= 1 {
			return 255
		}
		return uint8(math.Pow(v, 1/pngio.Gamma) * 255)
	}
	return color.RGBA{R: encode(c.X), G: encode(c.Y), B: encode(c.Z), A: 255}
}
