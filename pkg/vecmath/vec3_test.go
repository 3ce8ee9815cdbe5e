package vecmath

import (
	"math"
	"testing"
)

const epsilon = 1e-6

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestVec3DotCommutes(t *testing.T) {
	a := V3(1, 2, 3)
	b := V3(4, -5, 6)
	if !almostEqual(a.Dot(b), b.Dot(a)) {
		t.Fatalf("dot(a,b)=%v dot(b,a)=%v, want equal", a.Dot(b), b.Dot(a))
	}
}

func TestVec3CrossAnticommutes(t *testing.T) {
	a := V3(1, 0, 0)
	b := V3(0, 1, 0)
	got := a.Cross(b)
	want := b.Cross(a).Negate()
	if !got.Equal(want) {
		t.Fatalf("cross(a,b)=%v, want -cross(b,a)=%v", got, want)
	}
}

func TestVec3UnitLength(t *testing.T) {
	cases := []Vec3{
		V3(3, 4, 0),
		V3(1, 1, 1),
		V3(-2, 5, -9),
	}
	for _, v := range cases {
		u, err := v.Unit()
		if err != nil {
			t.Fatalf("Unit(%v) returned error: %v", v, err)
		}
		if !almostEqual(u.Len(), 1) {
			t.Errorf("Unit(%v).Len() = %v, want 1", v, u.Len())
		}
	}
}

func TestVec3UnitZeroLengthFails(t *testing.T) {
	_, err := Zero3().Unit()
	if err == nil {
		t.Fatal("Unit of zero vector should fail")
	}
}

func TestVec3NormalizeNeverFails(t *testing.T) {
	if got := Zero3().Normalize(); !got.Equal(Zero3()) {
		t.Fatalf("Normalize of zero vector = %v, want zero vector", got)
	}
}

func TestVec2Unit(t *testing.T) {
	v := V2(3, 4)
	u, err := v.Unit()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(u.Len(), 1) {
		t.Errorf("Len() = %v, want 1", u.Len())
	}

	if _, err := Zero2().Unit(); err == nil {
		t.Fatal("Unit of zero Vec2 should fail")
	}
}
