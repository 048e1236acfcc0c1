package core

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func vecNear(a, b Vec3) bool {
	return a.Subtract(b).Length() <= tolerance
}

func TestVec3_Arithmetic(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	tests := []struct {
		name     string
		got      Vec3
		expected Vec3
	}{
		{"add", a.Add(b), NewVec3(5, -3, 9)},
		{"subtract", a.Subtract(b), NewVec3(-3, 7, -3)},
		{"scale", a.Multiply(2), NewVec3(2, 4, 6)},
		{"component-wise", a.MultiplyVec(b), NewVec3(4, -10, 18)},
		{"negate", a.Negate(), NewVec3(-1, -2, -3)},
		{"cross", NewVec3(1, 0, 0).Cross(NewVec3(0, 1, 0)), NewVec3(0, 0, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !vecNear(tt.got, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, tt.got)
			}
		})
	}

	if dot := a.Dot(b); dot != 12 {
		t.Errorf("Expected dot product 12, got %f", dot)
	}
}

func TestVec3_Normalize(t *testing.T) {
	v := NewVec3(3, 0, 4).Normalize()
	if math.Abs(v.Length()-1) > tolerance {
		t.Errorf("Expected unit length, got %f", v.Length())
	}
	if !vecNear(v, NewVec3(0.6, 0, 0.8)) {
		t.Errorf("Expected (0.6, 0, 0.8), got %v", v)
	}

	if zero := (Vec3{}).Normalize(); zero != (Vec3{}) {
		t.Errorf("Expected zero vector to stay zero, got %v", zero)
	}
}

func TestVec3_Clamp(t *testing.T) {
	v := NewVec3(-0.5, 0.25, 3).Clamp(0, 1)
	if v != NewVec3(0, 0.25, 1) {
		t.Errorf("Expected (0, 0.25, 1), got %v", v)
	}
}

func TestVec3_Reflect(t *testing.T) {
	incoming := NewVec3(1, -1, 0).Normalize()
	normal := NewVec3(0, 1, 0)

	reflected := incoming.Reflect(normal)
	expected := NewVec3(1, 1, 0).Normalize()
	if !vecNear(reflected, expected) {
		t.Errorf("Expected %v, got %v", expected, reflected)
	}
}

func TestVec3_Lerp(t *testing.T) {
	a := NewVec3(1, 0, 0)
	b := NewVec3(0, 1, 0)

	if got := a.Lerp(b, 0); got != a {
		t.Errorf("Expected t=0 to return start, got %v", got)
	}
	if got := a.Lerp(b, 1); got != b {
		t.Errorf("Expected t=1 to return end, got %v", got)
	}
	if got := a.Lerp(b, 0.25); !vecNear(got, NewVec3(0.75, 0.25, 0)) {
		t.Errorf("Expected (0.75, 0.25, 0), got %v", got)
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(1, 1, 1), NewVec3(0, 0, -1))
	if p := ray.At(2.5); !vecNear(p, NewVec3(1, 1, -1.5)) {
		t.Errorf("Expected (1, 1, -1.5), got %v", p)
	}
}
