package vecmath

import "testing"

func matAlmostEqual(a, b Mat4) bool {
	for i := range a {
		if !almostEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

func TestMat4IdentityLaw(t *testing.T) {
	m := Translate(V3(1, 2, 3)).Mul(RotateY(0.7))
	if got := m.Mul(Identity()); !matAlmostEqual(got, m) {
		t.Fatalf("M * identity = %v, want %v", got, m)
	}
	if got := Identity().Mul(m); !matAlmostEqual(got, m) {
		t.Fatalf("identity * M = %v, want %v", got, m)
	}
}

func TestMat4Associativity(t *testing.T) {
	a := RotateX(0.3)
	b := RotateY(0.6)
	v := V3(1, 2, 3)

	lhs := a.Mul(b).MulVec3(v)
	rhs := a.MulVec3(b.MulVec3(v))
	if !lhs.Equal(rhs) {
		// Floating point matmul order can differ at the ULP level; use
		// tolerance rather than exact equality.
		if !almostEqual(lhs.X, rhs.X) || !almostEqual(lhs.Y, rhs.Y) || !almostEqual(lhs.Z, rhs.Z) {
			t.Fatalf("(A*B)*v = %v, A*(B*v) = %v", lhs, rhs)
		}
	}
}

func TestMat4TransposeInvolution(t *testing.T) {
	m := Translate(V3(1, 2, 3)).Mul(RotateZ(1.1))
	if got := m.Transpose().Transpose(); !matAlmostEqual(got, m) {
		t.Fatalf("transpose(transpose(M)) = %v, want %v", got, m)
	}
}

func TestLookAtHandedness(t *testing.T) {
	// A camera at (0,0,-2) looking at the origin should place the origin
	// directly in front of it: negative view-space z, since -z points into
	// the screen and the origin is 2 units into the view.
	view := LookAt(V3(0, 0, -2), V3(0, 0, 0), V3(0, 1, 0))
	p := view.MulVec3(V3(0, 0, 0))
	if p.Z >= 0 {
		t.Fatalf("expected origin to have negative view-space z, got %v", p.Z)
	}
}

func TestPerspectiveProducesNDCRange(t *testing.T) {
	proj := Perspective(degToRad(45), 1, 0.1, 100)
	view := LookAt(V3(0, 0, -2), V3(0, 0, 0), V3(0, 1, 0))

	clip := proj.MulVec4(V4FromV3(view.MulVec3(V3(0, 0, 0)), 1))
	if clip.W == 0 {
		t.Fatal("unexpected zero w")
	}
	ndc := clip.Vec3().Scale(1 / clip.W)
	for _, c := range []float64{ndc.X, ndc.Y} {
		if c < -1.0001 || c > 1.0001 {
			t.Errorf("NDC component %v outside [-1,1]", c)
		}
	}
}

func degToRad(deg float64) float64 {
	return deg * 3.141592653589793 / 180
}
