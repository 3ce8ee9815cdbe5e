// rasterctl rasterizes one or more OBJ/glTF meshes into a gamma-corrected
// PNG, or, with -preview, orbits the camera around the scene live in the
// terminal instead of writing a file.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"

	"github.com/taigrr/rasterctl/internal/preview"
	"github.com/taigrr/rasterctl/pkg/mesh"
	"github.com/taigrr/rasterctl/pkg/pngio"
	"github.com/taigrr/rasterctl/pkg/profile"
	"github.com/taigrr/rasterctl/pkg/render"
)

// meshPaths collects repeated -mesh flags.
type meshPaths []string

func (m *meshPaths) String() string { return strings.Join(*m, ",") }

func (m *meshPaths) Set(path string) error {
	*m = append(*m, path)
	return nil
}

func main() {
	var meshes meshPaths
	flag.Var(&meshes, "mesh", "path to a .obj or .glb mesh (repeatable)")
	modeFlag := flag.String("mode", "shaded", "shading mode: wireframe|shaded|normals")
	width := flag.Int("width", 1500, "output width in pixels")
	height := flag.Int("height", 1500, "output height in pixels")
	out := flag.String("out", "output.png", "output PNG path")
	cull := flag.Bool("cull", true, "enable back-face culling")
	workers := flag.Int("workers", runtime.GOMAXPROCS(0), "worker count; 1 disables parallelism")
	previewFlag := flag.Bool("preview", false, "live-orbit terminal preview instead of writing a PNG")
	profileFlag := flag.Bool("profile", false, "attach a stderr timing sink")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "rasterctl - CPU triangle rasterizer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: rasterctl -mesh model.obj [-mesh more.glb ...] [options]\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(meshes, *modeFlag, *width, *height, *out, *cull, *workers, *previewFlag, *profileFlag); err != nil {
		fmt.Fprintf(os.Stderr, "rasterctl: %v\n", err)
		os.Exit(1)
	}
}

func run(meshPathsArg []string, modeStr string, width, height int, out string, cull bool, workers int, doPreview, doProfile bool) error {
	if len(meshPathsArg) == 0 {
		flag.Usage()
		return fmt.Errorf("at least one -mesh is required")
	}

	mode, err := render.ParseMode(modeStr)
	if err != nil {
		return err
	}

	drawables := make([]render.Drawable, 0, len(meshPathsArg))
	for _, path := range meshPathsArg {
		m, err := loadMesh(path)
		if err != nil {
			return err
		}
		drawables = append(drawables, m)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if doPreview {
		return preview.Run(ctx, drawables, preview.Options{
			Mode:    mode,
			Cull:    cull,
			Workers: workers,
		})
	}

	cam := render.DefaultCamera()
	center, _ := render.SceneBounds(drawables)
	cam.SetTarget(center)

	r := render.NewRenderer()
	r.Cull = cull
	r.Dispatcher = &render.Dispatcher{Workers: workers}
	if doProfile {
		r.ProfileSink = profile.Writer{W: os.Stderr}
	}

	fb := render.NewFrameBuffer(width, height)
	db := render.NewDepthBuffer(width, height)

	if err := r.Draw(ctx, drawables, cam, fb, db, mode); err != nil {
		return fmt.Errorf("render: %w", err)
	}

	if err := pngio.Write(fb, out); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	return nil
}

// loadMesh dispatches on path's extension to the OBJ or glTF loader.
func loadMesh(path string) (*mesh.Mesh, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return mesh.LoadOBJ(path)
	case ".glb":
		return mesh.LoadGLB(path)
	default:
		return nil, fmt.Errorf("mesh: unrecognized extension %q (want .obj or .glb)", filepath.Ext(path))
	}
}
