package renderer

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// PixelInfo describes what the primary ray through a pixel sees
type PixelInfo struct {
	Hit         bool
	ObjectIndex int           // Index into Scene.Objects, -1 on a miss
	Object      *scene.Object // Object hit, nil on a miss
	Record      geometry.Hit  // Intersection with a unit normal
	Color       core.Vec3     // Shaded color of the pixel
}

// InspectPixel casts the primary ray for output pixel (x, y) using the same
// mapping as RenderBounds and reports the nearest object along it.
func (rt *Raytracer) InspectPixel(x, y int) PixelInfo {
	ray := rt.camera.GetRay(pixelCoords(x, y, rt.scene.Width, rt.scene.Height))

	info := PixelInfo{ObjectIndex: -1, Color: rt.Trace(ray, 0)}

	index, hit, isHit := rt.closestHit(ray)
	if !isHit {
		return info
	}

	hit.Normal = hit.Normal.Normalize()
	info.Hit = true
	info.ObjectIndex = index
	info.Object = rt.scene.Objects[index]
	info.Record = hit
	return info
}
