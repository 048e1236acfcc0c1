package output

import (
	"image"

	"github.com/nfnt/resize"
)

// DefaultThumbnailSize is the longest edge of a preview image
const DefaultThumbnailSize = 128

// Thumbnail downscales img to fit within maxWidth x maxHeight, preserving the
// aspect ratio. Images already inside the box are returned unchanged.
func Thumbnail(img image.Image, maxWidth, maxHeight int) image.Image {
	if maxWidth <= 0 || maxHeight <= 0 {
		return img
	}
	return resize.Thumbnail(uint(maxWidth), uint(maxHeight), img, resize.Bilinear)
}
