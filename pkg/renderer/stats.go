package renderer

import (
	"image"
	"time"
)

// TraceStats counts the rays cast by a Raytracer
type TraceStats struct {
	PrimaryRays    int // Camera rays
	ShadowRays     int // One per light per shaded hit
	ReflectionRays int // Mirror bounces
}

// Add returns the sum of two sets of counters
func (s TraceStats) Add(other TraceStats) TraceStats {
	return TraceStats{
		PrimaryRays:    s.PrimaryRays + other.PrimaryRays,
		ShadowRays:     s.ShadowRays + other.ShadowRays,
		ReflectionRays: s.ReflectionRays + other.ReflectionRays,
	}
}

// TotalRays returns the number of rays of every kind
func (s TraceStats) TotalRays() int {
	return s.PrimaryRays + s.ShadowRays + s.ReflectionRays
}

// RenderStats contains statistics about a finished render
type RenderStats struct {
	TotalPixels int           // Total number of pixels rendered
	Tiles       int           // Number of tiles
	Workers     int           // Number of parallel workers
	Rays        TraceStats    // Ray counters summed over all workers
	Duration    time.Duration // Wall-clock render time

	AverageLuminance float64 // Mean Rec. 709 luminance of the finished 8-bit image
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of an image in [0, 1]
func CalculateAverageLuminance(img image.Image) float64 {
	bounds := img.Bounds()
	pixelCount := bounds.Dx() * bounds.Dy()
	if pixelCount == 0 {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			// RGBA returns uint32 in [0, 65535]
			total += (0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)) / 65535.0
		}
	}

	return total / float64(pixelCount)
}
