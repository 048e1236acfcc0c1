package material

import "github.com/df07/go-whitted-raytracer/pkg/core"

// DefaultShininess is the Phong exponent given to every material built by New.
// The shading model does not compute a highlight; it is carried as data.
const DefaultShininess = 32.0

// Material describes how a surface responds to light
type Material struct {
	Ambient      core.Vec3 // Response to the scene's ambient light
	Diffuse      core.Vec3 // Lambertian reflectance
	Specular     core.Vec3 // Highlight color (data only)
	Shininess    float64   // Highlight exponent (data only)
	Reflectivity float64   // 0 = no mirror, 1 = perfect mirror
}

// New creates a material with the default shininess
func New(ambient, diffuse, specular core.Vec3, reflectivity float64) Material {
	return Material{
		Ambient:      ambient,
		Diffuse:      diffuse,
		Specular:     specular,
		Shininess:    DefaultShininess,
		Reflectivity: reflectivity,
	}
}

// IsReflective reports whether the surface spawns mirror rays
func (m Material) IsReflective() bool {
	return m.Reflectivity > 0
}

// Red is the matte red of the left box wall
func Red() Material {
	return New(core.NewVec3(0.1, 0, 0), core.NewVec3(0.7, 0, 0), core.NewVec3(0, 0, 0), 0)
}

// Green is the matte green of the right box wall
func Green() Material {
	return New(core.NewVec3(0, 0.2, 0), core.NewVec3(0, 0.7, 0), core.NewVec3(0, 0, 0), 0)
}

// White is the matte white of floor, ceiling and back wall
func White() Material {
	return New(core.NewVec3(0.1, 0.1, 0.1), core.NewVec3(0.7, 0.7, 0.7), core.NewVec3(0, 0, 0), 0)
}

// MirrorBall is a mostly reflective white surface
func MirrorBall() Material {
	return New(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1), core.NewVec3(1, 1, 1), 0.8)
}

// RedBall is a saturated matte red
func RedBall() Material {
	return New(core.NewVec3(0.1, 0, 0), core.NewVec3(0.9, 0, 0), core.NewVec3(0, 0, 0), 0)
}
