// Package mesh loads and represents triangle meshes for the rasterizer.
package mesh

import (
	"errors"
	"fmt"

	"github.com/taigrr/rasterctl/pkg/vecmath"
)

// ErrInvalidFace is returned when a face references a vertex index outside
// the mesh's vertex list.
var ErrInvalidFace = errors.New("mesh: face references an out-of-range vertex index")

// ErrOutOfBounds is returned by indexed accessors when the index is outside
// the valid range.
var ErrOutOfBounds = errors.New("mesh: index out of bounds")

// Vertex holds the per-vertex attributes the renderer consumes.
type Vertex struct {
	Position vecmath.Vec3
	Normal   vecmath.Vec3
	UV       vecmath.Vec2
}

// Face is a triangle, given as indices into a Mesh's vertex list.
type Face struct {
	V [3]int
}

// Mesh is an ordered sequence of vertices and triangular faces. Once built
// it is immutable: loaders build a Mesh once and callers do not mutate its
// vertex data afterwards. Per-instance placement is carried separately in
// ModelMatrix, which defaults to the identity matrix and is set with
// WithModelMatrix rather than by mutating vertex positions in place.
type Mesh struct {
	Name        string
	vertices    []Vertex
	faces       []Face
	boundsMin   vecmath.Vec3
	boundsMax   vecmath.Vec3
	ModelMatrix vecmath.Mat4
}

// New builds a Mesh from vertices and faces, validating that every face
// index is in range. If every vertex has a zero normal (the common case for
// a freshly parsed OBJ file, which carries no vertex normals), flat per-face
// normals are computed and assigned.
func New(name string, vertices []Vertex, faces []Face) (*Mesh, error) {
	for i, f := range faces {
		for _, idx := range f.V {
			if idx < 0 || idx >= len(vertices) {
				return nil, fmt.Errorf("mesh %q: face %d: %w", name, i, ErrInvalidFace)
			}
		}
	}

	m := &Mesh{
		Name:        name,
		vertices:    vertices,
		faces:       faces,
		ModelMatrix: vecmath.Identity(),
	}
	m.computeMissingNormals()
	m.computeBounds()
	return m, nil
}

func (m *Mesh) computeMissingNormals() {
	// A mesh parsed from an OBJ file (which carries no normals) has every
	// vertex normal left at the zero value; only then do we derive flat
	// per-face normals. A mesh with at least one real normal is assumed to
	// have them all (glTF sources always populate NORMAL).
	for _, v := range m.vertices {
		if v.Normal != (vecmath.Vec3{}) {
			return
		}
	}
	for _, f := range m.faces {
		v0 := m.vertices[f.V[0]].Position
		v1 := m.vertices[f.V[1]].Position
		v2 := m.vertices[f.V[2]].Position
		normal := v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()
		m.vertices[f.V[0]].Normal = normal
		m.vertices[f.V[1]].Normal = normal
		m.vertices[f.V[2]].Normal = normal
	}
}

func (m *Mesh) computeBounds() {
	if len(m.vertices) == 0 {
		return
	}
	m.boundsMin = m.vertices[0].Position
	m.boundsMax = m.vertices[0].Position
	for _, v := range m.vertices[1:] {
		m.boundsMin = m.boundsMin.Min(v.Position)
		m.boundsMax = m.boundsMax.Max(v.Position)
	}
}

// WithModelMatrix returns a shallow copy of the mesh (sharing vertex and
// face storage) with ModelMatrix replaced. This is how multiple placements
// of one mesh are expressed without mutating shared vertex data.
func (m *Mesh) WithModelMatrix(mat vecmath.Mat4) *Mesh {
	clone := *m
	clone.ModelMatrix = mat
	return &clone
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.vertices)
}

// TriangleCount returns the number of faces.
func (m *Mesh) TriangleCount() int {
	return len(m.faces)
}

// Vertex returns vertex i.
func (m *Mesh) Vertex(i int) (Vertex, error) {
	if i < 0 || i >= len(m.vertices) {
		return Vertex{}, ErrOutOfBounds
	}
	return m.vertices[i], nil
}

// Face returns the vertex indices of face i.
func (m *Mesh) Face(i int) ([3]int, error) {
	if i < 0 || i >= len(m.faces) {
		return [3]int{}, ErrOutOfBounds
	}
	return m.faces[i].V, nil
}

// Bounds returns the mesh's axis-aligned bounding box in model space.
func (m *Mesh) Bounds() (min, max vecmath.Vec3) {
	return m.boundsMin, m.boundsMax
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() vecmath.Vec3 {
	return m.boundsMin.Add(m.boundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() vecmath.Vec3 {
	return m.boundsMax.Sub(m.boundsMin)
}
