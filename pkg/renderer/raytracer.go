package renderer

import (
	"image"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// noHitDistance is the initial closest distance of the nearest-hit search
const noHitDistance = 1e30

// ShadingConfig contains the constants of the shading model
type ShadingConfig struct {
	ShadowAttenuation float64 // Multiplier applied to a light's diffuse term when occluded
	ShadowBias        float64 // Offset along the normal for shadow ray origins
	ReflectionBias    float64 // Offset along the normal for reflection ray origins
	AverageLights     bool    // Divide the summed diffuse term by the number of lights
}

// DefaultShadingConfig returns the standard shading constants.
// Diffuse contributions of several lights are summed, not averaged.
func DefaultShadingConfig() ShadingConfig {
	return ShadingConfig{
		ShadowAttenuation: 0.5,
		ShadowBias:        1e-4,
		ReflectionBias:    1e-3,
		AverageLights:     false,
	}
}

// Raytracer resolves the color seen along a ray.
// A Raytracer keeps ray counters and must not be shared between goroutines;
// the scene it reads is never modified.
type Raytracer struct {
	scene  *scene.Scene
	camera *geometry.Camera
	config ShadingConfig
	stats  TraceStats
}

// NewRaytracer creates a raytracer for the scene at its current resolution
func NewRaytracer(s *scene.Scene, config ShadingConfig) *Raytracer {
	return &Raytracer{
		scene:  s,
		camera: s.Camera(),
		config: config,
	}
}

// Stats returns the ray counters accumulated since the last reset
func (rt *Raytracer) Stats() TraceStats {
	return rt.stats
}

// ResetStats clears the ray counters
func (rt *Raytracer) ResetStats() {
	rt.stats = TraceStats{}
}

// closestHit scans every object and returns the index and hit of the nearest one.
// Ties keep the object that comes first.
func (rt *Raytracer) closestHit(ray core.Ray) (int, geometry.Hit, bool) {
	closestIndex := -1
	var closest geometry.Hit
	closestSoFar := noHitDistance

	for i, obj := range rt.scene.Objects {
		if hit, isHit := obj.Intersect(ray); isHit && hit.T < closestSoFar {
			closestSoFar = hit.T
			closest = hit
			closestIndex = i
		}
	}

	return closestIndex, closest, closestIndex >= 0
}

// shadowFactor returns ShadowAttenuation if any object other than the one at skip
// blocks the shadow ray before it reaches the light, and 1 otherwise.
func (rt *Raytracer) shadowFactor(shadowRay core.Ray, distToLight float64, skip int) float64 {
	rt.stats.ShadowRays++

	for i, obj := range rt.scene.Objects {
		if i == skip {
			continue
		}
		if hit, isHit := obj.Intersect(shadowRay); isHit && hit.T < distToLight {
			return rt.config.ShadowAttenuation
		}
	}
	return 1.0
}

// Trace returns the color for a ray at the given reflection depth.
// Every returned channel lies in [0, 1].
func (rt *Raytracer) Trace(ray core.Ray, depth int) core.Vec3 {
	if depth > rt.scene.MaxDepth {
		return core.Black
	}
	if depth == 0 {
		rt.stats.PrimaryRays++
	}

	hitIndex, hit, isHit := rt.closestHit(ray)
	if !isHit {
		return core.Black
	}

	mat := rt.scene.Objects[hitIndex].Material
	normal := hit.Normal.Normalize()

	color := mat.Ambient.MultiplyVec(rt.scene.AmbientLight)

	diffuse := core.Black
	for _, light := range rt.scene.Lights {
		toLight := light.Position.Subtract(hit.Point)
		distToLight := toLight.Length()
		toLight = toLight.Normalize()

		shadowRay := core.NewRay(hit.Point.Add(normal.Multiply(rt.config.ShadowBias)), toLight)
		factor := rt.shadowFactor(shadowRay, distToLight, hitIndex)

		lambert := max(0, normal.Dot(toLight))
		diffuse = diffuse.Add(mat.Diffuse.MultiplyVec(light.Color).Multiply(factor * lambert))
	}
	if rt.config.AverageLights && len(rt.scene.Lights) > 0 {
		diffuse = diffuse.Multiply(1.0 / float64(len(rt.scene.Lights)))
	}
	color = color.Add(diffuse)

	if mat.IsReflective() {
		reflected := ray.Direction.Reflect(normal).Normalize()
		reflectedRay := core.NewRay(hit.Point.Add(normal.Multiply(rt.config.ReflectionBias)), reflected)
		rt.stats.ReflectionRays++

		reflectedColor := rt.Trace(reflectedRay, depth+1)
		color = color.Lerp(reflectedColor, mat.Reflectivity)
	}

	return color.Clamp(0, 1)
}

// pixelCoords maps output pixel (x, y) to image-plane coordinates at the pixel center.
// Scanline j = height-1-y is counted from the bottom, so row 0 is the top of the picture.
func pixelCoords(x, y, width, height int) (s, t float64) {
	j := height - 1 - y
	s = (float64(x) + 0.5) / float64(width)
	t = (float64(j) + 0.5) / float64(height)
	return s, t
}

// RenderBounds traces one ray per pixel inside bounds and writes the results to fb
func (rt *Raytracer) RenderBounds(fb *Framebuffer, bounds image.Rectangle) {
	width, height := fb.Width(), fb.Height()
	bounds = bounds.Intersect(fb.Bounds())

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			s, t := pixelCoords(x, y, width, height)
			fb.SetPixel(x, y, rt.Trace(rt.camera.GetRay(s, t), 0))
		}
	}
}

// RenderFrame renders the whole image on the calling goroutine
func (rt *Raytracer) RenderFrame() *Framebuffer {
	fb := NewFramebuffer(rt.scene.Width, rt.scene.Height)
	rt.RenderBounds(fb, fb.Bounds())
	return fb
}
