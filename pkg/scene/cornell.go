package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewCornellScene creates the box spanning [-1,1]³ with a red left wall, a green right
// wall, white floor/ceiling/back wall, a mirror ball, a red ball and a ceiling light.
// The front of the box is open toward the camera.
func NewCornellScene() *Scene {
	s := NewScene("cornell", geometry.CameraConfig{
		LookFrom: core.NewVec3(0, 0, 2),
		LookAt:   core.NewVec3(0, 0, 0),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     90,
	})

	red := material.Red()
	green := material.Green()
	white := material.White()

	// Floor (y=-1)
	s.AddTriangle(core.NewVec3(-1, -1, -1), core.NewVec3(1, -1, -1), core.NewVec3(1, -1, 1), white)
	s.AddTriangle(core.NewVec3(-1, -1, -1), core.NewVec3(1, -1, 1), core.NewVec3(-1, -1, 1), white)

	// Ceiling (y=1)
	s.AddTriangle(core.NewVec3(-1, 1, -1), core.NewVec3(1, 1, 1), core.NewVec3(1, 1, -1), white)
	s.AddTriangle(core.NewVec3(-1, 1, -1), core.NewVec3(-1, 1, 1), core.NewVec3(1, 1, 1), white)

	// Back wall (z=-1)
	s.AddTriangle(core.NewVec3(-1, -1, -1), core.NewVec3(1, -1, -1), core.NewVec3(1, 1, -1), white)
	s.AddTriangle(core.NewVec3(-1, -1, -1), core.NewVec3(1, 1, -1), core.NewVec3(-1, 1, -1), white)

	// Left wall (x=-1)
	s.AddTriangle(core.NewVec3(-1, -1, -1), core.NewVec3(-1, 1, -1), core.NewVec3(-1, 1, 1), red)
	s.AddTriangle(core.NewVec3(-1, -1, -1), core.NewVec3(-1, 1, 1), core.NewVec3(-1, -1, 1), red)

	// Right wall (x=1)
	s.AddTriangle(core.NewVec3(1, -1, -1), core.NewVec3(1, 1, 1), core.NewVec3(1, 1, -1), green)
	s.AddTriangle(core.NewVec3(1, -1, -1), core.NewVec3(1, -1, 1), core.NewVec3(1, 1, 1), green)

	// Spheres inside the box
	s.AddSphere(core.NewVec3(-0.4, -0.6, -0.4), 0.3, material.MirrorBall())
	s.AddSphere(core.NewVec3(0.4, -0.8, 0.2), 0.2, material.RedBall())

	s.AddPointLight(core.NewVec3(0, 0.9, 0), core.NewVec3(1, 1, 1))

	return s
}
