package output

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// FormatPPM is the extension handled by WritePPM rather than the imaging encoders
const FormatPPM = "ppm"

// DefaultFormat is used when no format is configured
const DefaultFormat = "png"

// NormalizeFormat lower-cases a format name or file extension and strips the leading dot
func NormalizeFormat(format string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(format)), ".")
}

// ValidateFormat reports whether format can be encoded
func ValidateFormat(format string) error {
	format = NormalizeFormat(format)
	if format == FormatPPM {
		return nil
	}
	if _, err := imaging.FormatFromExtension(format); err != nil {
		return fmt.Errorf("unsupported image format %q: %w", format, err)
	}
	return nil
}

// ContentType returns the MIME type for an image format
func ContentType(format string) string {
	switch NormalizeFormat(format) {
	case FormatPPM:
		return "image/x-portable-pixmap"
	case "jpg", "jpeg":
		return "image/jpeg"
	case "gif":
		return "image/gif"
	case "bmp":
		return "image/bmp"
	case "tif", "tiff":
		return "image/tiff"
	default:
		return "image/png"
	}
}

// Encode writes img to w in the named format (ppm, png, jpg, gif, bmp or tiff)
func Encode(w io.Writer, img image.Image, format string) error {
	format = NormalizeFormat(format)
	if format == FormatPPM {
		return WritePPM(w, img)
	}

	f, err := imaging.FormatFromExtension(format)
	if err != nil {
		return fmt.Errorf("unsupported image format %q: %w", format, err)
	}
	if err := imaging.Encode(w, img, f); err != nil {
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	return nil
}

// Save writes img to path, choosing the encoder from the file extension
func Save(img image.Image, path string) error {
	format := NormalizeFormat(filepath.Ext(path))
	if format != FormatPPM {
		if err := imaging.Save(img, path); err != nil {
			return fmt.Errorf("failed to save image %s: %w", path, err)
		}
		return nil
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}
	if err := WritePPM(file, img); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
