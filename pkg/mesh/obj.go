package mesh

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/taigrr/rasterctl/pkg/vecmath"
)

// LoadOBJ reads a Wavefront OBJ subset from path: "v x y z" vertex lines and
// triangular "f a/... b/... c/..." face lines. Only the substring before the
// first '/' of each face field is read as the vertex index; texture and
// normal indices are ignored. Polygons with more than three vertices are
// not supported. Empty lines and any other directive are skipped.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mesh: open %s: %w", path, err)
	}
	defer f.Close()

	m, err := parseOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("mesh: parse %s: %w", path, err)
	}
	m.Name = path
	return m, nil
}

func parseOBJ(r io.Reader) (*Mesh, error) {
	var vertices []Vertex
	var faces []Face

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: malformed vertex %q", lineNo, line)
			}
			x, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			y, err := strconv.ParseFloat(fields[2], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			z, err := strconv.ParseFloat(fields[3], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			vertices = append(vertices, Vertex{Position: vecmath.V3(x, y, z)})

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face with fewer than 3 vertices", lineNo)
			}
			if len(fields) > 4 {
				return nil, fmt.Errorf("line %d: polygons with more than three vertices are not supported", lineNo)
			}
			var face Face
			for i := 1; i <= 3; i++ {
				idxField := fields[i]
				if slash := strings.IndexByte(idxField, '/'); slash >= 0 {
					idxField = idxField[:slash]
				}
				idx, err := strconv.Atoi(idxField)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				face.V[i-1] = idx - 1 // OBJ indices are 1-based
			}
			faces = append(faces, face)

		default:
			// vt, vn, o, g, s, comments, material directives, etc. are
			// outside the supported subset and are skipped.
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return New("", vertices, faces)
}
