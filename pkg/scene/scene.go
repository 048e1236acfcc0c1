package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// DefaultAmbientLight is the ambient intensity applied to every surface
var DefaultAmbientLight = core.NewVec3(0.2, 0.2, 0.2)

const (
	DefaultWidth    = 400
	DefaultHeight   = 300
	DefaultMaxDepth = 3
)

// Scene contains all the elements needed for rendering.
// A scene is read-only once rendering starts.
type Scene struct {
	Name         string
	CameraConfig geometry.CameraConfig
	Objects      []*Object    // Objects in the scene, in intersection order
	Lights       []PointLight // Lights in the scene
	AmbientLight core.Vec3    // Global ambient intensity
	Width        int          // Image width in pixels
	Height       int          // Image height in pixels
	MaxDepth     int          // Maximum reflection recursion depth
}

// NewScene creates an empty scene with default ambient light, resolution and depth
func NewScene(name string, cameraConfig geometry.CameraConfig) *Scene {
	return &Scene{
		Name:         name,
		CameraConfig: cameraConfig,
		Objects:      make([]*Object, 0),
		Lights:       make([]PointLight, 0),
		AmbientLight: DefaultAmbientLight,
		Width:        DefaultWidth,
		Height:       DefaultHeight,
		MaxDepth:     DefaultMaxDepth,
	}
}

// AddObject appends an object to the scene
func (s *Scene) AddObject(obj *Object) {
	s.Objects = append(s.Objects, obj)
}

// AddSphere adds a sphere with the given material
func (s *Scene) AddSphere(center core.Vec3, radius float64, mat material.Material) {
	s.AddObject(NewObject(geometry.NewSphere(center, radius), mat))
}

// AddTriangle adds a triangle with the given material
func (s *Scene) AddTriangle(v0, v1, v2 core.Vec3, mat material.Material) {
	s.AddObject(NewObject(geometry.NewTriangle(v0, v1, v2), mat))
}

// AddQuad adds the planar quad v0-v1-v2-v3 as the two triangles (v0,v1,v2) and (v0,v2,v3)
func (s *Scene) AddQuad(v0, v1, v2, v3 core.Vec3, mat material.Material) {
	s.AddTriangle(v0, v1, v2, mat)
	s.AddTriangle(v0, v2, v3, mat)
}

// AddPointLight adds a point light
func (s *Scene) AddPointLight(position, color core.Vec3) {
	s.Lights = append(s.Lights, NewPointLight(position, color))
}

// SetResolution changes the image size
func (s *Scene) SetResolution(width, height int) {
	s.Width = width
	s.Height = height
}

// AspectRatio returns the configured aspect ratio, or width/height when unset
func (s *Scene) AspectRatio() float64 {
	if s.CameraConfig.AspectRatio > 0 {
		return s.CameraConfig.AspectRatio
	}
	if s.Height == 0 {
		return 1
	}
	return float64(s.Width) / float64(s.Height)
}

// Camera builds the camera for the scene's current resolution
func (s *Scene) Camera() *geometry.Camera {
	config := s.CameraConfig
	config.AspectRatio = s.AspectRatio()
	return geometry.NewCamera(config)
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Objects)
}
