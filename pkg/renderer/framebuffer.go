package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Framebuffer is a fixed-size grid of linear colors, initially black.
// Concurrent writers are safe as long as they write disjoint pixels.
type Framebuffer struct {
	width, height int
	pixels        []core.Vec3
}

// NewFramebuffer creates a black framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		width:  width,
		height: height,
		pixels: make([]core.Vec3, width*height),
	}
}

// Width returns the number of columns
func (fb *Framebuffer) Width() int { return fb.width }

// Height returns the number of rows
func (fb *Framebuffer) Height() int { return fb.height }

// Bounds returns the pixel rectangle covered by the framebuffer
func (fb *Framebuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, fb.width, fb.height)
}

func (fb *Framebuffer) inBounds(x, y int) bool {
	return x >= 0 && x < fb.width && y >= 0 && y < fb.height
}

// SetPixel stores a color. Writes outside the framebuffer are ignored.
func (fb *Framebuffer) SetPixel(x, y int, c core.Vec3) {
	if !fb.inBounds(x, y) {
		return
	}
	fb.pixels[y*fb.width+x] = c
}

// Pixel returns the stored color, or black outside the framebuffer
func (fb *Framebuffer) Pixel(x, y int) core.Vec3 {
	if !fb.inBounds(x, y) {
		return core.Black
	}
	return fb.pixels[y*fb.width+x]
}

// vec3ToColor converts a color to 8-bit RGBA by clamping to [0,1],
// multiplying by 255 and truncating
func vec3ToColor(colorVec core.Vec3) color.RGBA {
	colorVec = colorVec.Clamp(0.0, 1.0)

	return color.RGBA{
		R: uint8(255 * colorVec.X),
		G: uint8(255 * colorVec.Y),
		B: uint8(255 * colorVec.Z),
		A: 255,
	}
}

// Image converts the whole framebuffer to an 8-bit image
func (fb *Framebuffer) Image() *image.RGBA {
	return fb.SubImage(fb.Bounds())
}

// SubImage converts the pixels inside bounds to an image whose origin is bounds.Min
func (fb *Framebuffer) SubImage(bounds image.Rectangle) *image.RGBA {
	bounds = bounds.Intersect(fb.Bounds())
	img := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			img.SetRGBA(x-bounds.Min.X, y-bounds.Min.Y, vec3ToColor(fb.pixels[y*fb.width+x]))
		}
	}

	return img
}
