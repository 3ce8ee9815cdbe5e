package mesh

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/taigrr/rasterctl/pkg/vecmath"
)

func TestNewRejectsOutOfRangeFace(t *testing.T) {
	verts := []Vertex{{Position: vecmath.V3(0, 0, 0)}, {Position: vecmath.V3(1, 0, 0)}}
	_, err := New("bad", verts, []Face{{V: [3]int{0, 1, 5}}})
	if err == nil {
		t.Fatal("expected an error for an out-of-range face index")
	}
}

func TestNewComputesFlatNormals(t *testing.T) {
	verts := []Vertex{
		{Position: vecmath.V3(0, 0, 0)},
		{Position: vecmath.V3(1, 0, 0)},
		{Position: vecmath.V3(0, 1, 0)},
	}
	m, err := New("tri", verts, []Face{{V: [3]int{0, 1, 2}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, _ := m.Vertex(0)
	if v.Normal.LenSq() == 0 {
		t.Fatal("expected a non-zero computed normal")
	}
}

func TestWithModelMatrixDoesNotMutateOriginal(t *testing.T) {
	verts := []Vertex{
		{Position: vecmath.V3(0, 0, 0)},
		{Position: vecmath.V3(1, 0, 0)},
		{Position: vecmath.V3(0, 1, 0)},
	}
	m, err := New("tri", verts, []Face{{V: [3]int{0, 1, 2}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	placed := m.WithModelMatrix(vecmath.Translate(vecmath.V3(5, 0, 0)))
	if m.ModelMatrix != vecmath.Identity() {
		t.Fatalf("original mesh's ModelMatrix was mutated: %v", m.ModelMatrix)
	}
	if placed.ModelMatrix == vecmath.Identity() {
		t.Fatal("placed mesh should carry a non-identity model matrix")
	}

	v0, _ := m.Vertex(0)
	pv0, _ := placed.Vertex(0)
	if v0.Position != pv0.Position {
		t.Fatal("WithModelMatrix must not bake the matrix into shared vertex storage")
	}
}

func TestLoadOBJTriangle(t *testing.T) {
	const obj = `
v 0.0 0.0 0.0
v 1.0 0.0 0.0
v 0.0 1.0 0.0
f 1 2 3
`
	m, err := parseOBJ(strings.NewReader(obj))
	if err != nil {
		t.Fatalf("parseOBJ failed: %v", err)
	}
	if m.VertexCount() != 3 {
		t.Fatalf("VertexCount() = %d, want 3", m.VertexCount())
	}
	if m.TriangleCount() != 1 {
		t.Fatalf("TriangleCount() = %d, want 1", m.TriangleCount())
	}
	face, err := m.Face(0)
	if err != nil {
		t.Fatalf("Face(0) error: %v", err)
	}
	if face != [3]int{0, 1, 2} {
		t.Fatalf("Face(0) = %v, want {0,1,2}", face)
	}
}

func TestLoadOBJFaceWithTextureAndNormalIndices(t *testing.T) {
	const obj = `
v 0.0 0.0 0.0
v 1.0 0.0 0.0
v 0.0 1.0 0.0
f 1/1/1 2/2/1 3/3/1
`
	m, err := parseOBJ(strings.NewReader(obj))
	if err != nil {
		t.Fatalf("parseOBJ failed: %v", err)
	}
	face, _ := m.Face(0)
	if face != [3]int{0, 1, 2} {
		t.Fatalf("Face(0) = %v, want {0,1,2}", face)
	}
}

func TestLoadOBJRoundTripPreservesVertices(t *testing.T) {
	const obj = `
v 1.5 -2.25 3.0
v 4.0 5.0 6.0
v -1.0 0.0 1.0
f 1 2 3
`
	m, err := parseOBJ(strings.NewReader(obj))
	if err != nil {
		t.Fatalf("parseOBJ failed: %v", err)
	}

	want := []vecmath.Vec3{
		vecmath.V3(1.5, -2.25, 3.0),
		vecmath.V3(4.0, 5.0, 6.0),
		vecmath.V3(-1.0, 0.0, 1.0),
	}
	var got []vecmath.Vec3
	for i := range m.VertexCount() {
		v, _ := m.Vertex(i)
		got = append(got, v.Position)
	}
	if diff := cmp.Diff(want, got, cmp.Comparer(func(a, b vecmath.Vec3) bool { return a.Equal(b) })); diff != "" {
		t.Fatalf("vertex positions mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadOBJRejectsPolygonsOverThreeVertices(t *testing.T) {
	const obj = `
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3 4
`
	if _, err := parseOBJ(strings.NewReader(obj)); err == nil {
		t.Fatal("expected an error for a quad face")
	}
}

func TestLoadGLBInvalidPath(t *testing.T) {
	_, err := LoadGLB("/nonexistent/path.glb")
	if err == nil {
		t.Fatal("expected error for nonexistent file")
	}
}
