package geometry

import "github.com/df07/go-whitted-raytracer/pkg/core"

// MinHitDistance is the smallest ray parameter reported as a hit.
const MinHitDistance = 1e-6

// Hit contains information about a ray-primitive intersection
type Hit struct {
	T      float64   // Parameter t along the ray
	Point  core.Vec3 // Point of intersection, origin + T*direction
	Normal core.Vec3 // Surface normal at Point, not necessarily unit length
}

// Primitive is a geometric shape that can be intersected by a ray.
// The set of primitives is closed: only Sphere and Triangle implement it.
type Primitive interface {
	// Intersect reports the nearest hit in front of the ray origin, or false.
	Intersect(ray core.Ray) (Hit, bool)

	primitive()
}
