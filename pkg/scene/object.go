package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Object pairs exactly one geometric primitive with the material of its surface
type Object struct {
	Shape    geometry.Primitive
	Material material.Material
}

// NewObject creates a scene object. shape must not be nil.
func NewObject(shape geometry.Primitive, mat material.Material) *Object {
	return &Object{Shape: shape, Material: mat}
}

// Intersect dispatches the ray to the object's primitive
func (o *Object) Intersect(ray core.Ray) (geometry.Hit, bool) {
	return o.Shape.Intersect(ray)
}

// PointLight is an infinitely small light source
type PointLight struct {
	Position core.Vec3
	Color    core.Vec3
}

// NewPointLight creates a point light
func NewPointLight(position, color core.Vec3) PointLight {
	return PointLight{Position: position, Color: color}
}
