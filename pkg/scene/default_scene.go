package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewSphereScene creates a single unit sphere at the origin lit from directly above,
// seen by a camera on the +z axis looking down -z.
func NewSphereScene() *Scene {
	s := NewScene("sphere", geometry.CameraConfig{
		LookFrom: core.NewVec3(0, 0, 3),
		LookAt:   core.NewVec3(0, 0, 0),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     90,
	})
	s.SetResolution(300, 300)

	s.AddSphere(core.NewVec3(0, 0, 0), 1, material.RedBall())
	s.AddPointLight(core.NewVec3(0, 5, 0), core.NewVec3(1, 1, 1))

	return s
}

// NewMirrorsScene places a red ball between two parallel mirrors so that reflections
// bounce until the recursion depth runs out.
func NewMirrorsScene() *Scene {
	s := NewScene("mirrors", geometry.CameraConfig{
		LookFrom: core.NewVec3(0, 0.5, 3),
		LookAt:   core.NewVec3(0, -0.2, 0),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     70,
	})
	s.MaxDepth = 6

	mirror := material.New(core.NewVec3(0.02, 0.02, 0.05), core.NewVec3(0.1, 0.1, 0.2), core.NewVec3(1, 1, 1), 0.9)

	// Floor
	s.AddQuad(
		core.NewVec3(-3, -1, -3), core.NewVec3(3, -1, -3),
		core.NewVec3(3, -1, 3), core.NewVec3(-3, -1, 3),
		material.White(),
	)

	// Facing mirrors at x=±1.5
	s.AddQuad(
		core.NewVec3(-1.5, -1, -3), core.NewVec3(-1.5, 2, -3),
		core.NewVec3(-1.5, 2, 3), core.NewVec3(-1.5, -1, 3),
		mirror,
	)
	s.AddQuad(
		core.NewVec3(1.5, -1, -3), core.NewVec3(1.5, -1, 3),
		core.NewVec3(1.5, 2, 3), core.NewVec3(1.5, 2, -3),
		mirror,
	)

	s.AddSphere(core.NewVec3(0, -0.5, 0), 0.5, material.RedBall())
	s.AddSphere(core.NewVec3(0.6, -0.8, 1), 0.2, material.Green())

	s.AddPointLight(core.NewVec3(0, 1.8, 1), core.NewVec3(0.8, 0.8, 0.8))
	s.AddPointLight(core.NewVec3(-1, 1.5, 2), core.NewVec3(0.3, 0.3, 0.3))

	return s
}
