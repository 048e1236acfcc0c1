package geometry

import "github.com/df07/go-whitted-raytracer/pkg/core"

// Triangle represents a single triangle defined by three vertices.
// Triangles are two-sided: the reported normal always faces the incoming ray.
type Triangle struct {
	V0, V1, V2 core.Vec3
}

// NewTriangle creates a new triangle from three vertices
func NewTriangle(v0, v1, v2 core.Vec3) *Triangle {
	return &Triangle{V0: v0, V1: v1, V2: v2}
}

func (t *Triangle) primitive() {}

// Normal returns the geometric normal (V1-V0)×(V2-V0), normalized
func (t *Triangle) Normal() core.Vec3 {
	return t.V1.Subtract(t.V0).Cross(t.V2.Subtract(t.V0)).Normalize()
}

// Intersect tests if a ray intersects with the triangle using the Möller-Trumbore algorithm
func (t *Triangle) Intersect(ray core.Ray) (Hit, bool) {
	const epsilon = 1e-12

	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)

	// Ray lies in (or parallel to) the plane of the triangle
	if a > -epsilon && a < epsilon {
		return Hit{}, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return Hit{}, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return Hit{}, false
	}

	tParam := f * edge2.Dot(q)
	if tParam < MinHitDistance {
		return Hit{}, false
	}

	normal := edge1.Cross(edge2)
	if ray.Direction.Dot(normal) > 0 {
		normal = normal.Negate()
	}

	return Hit{
		T:      tParam,
		Point:  ray.At(tParam),
		Normal: normal,
	}, true
}
