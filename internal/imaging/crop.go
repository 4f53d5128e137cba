package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// CropRect extracts r from img.
//
// r is clamped to the image bounds; a rectangle that does not overlap the image (or has
// no area) is an error. The result always starts at (0,0).
func CropRect(img image.Image, r image.Rectangle) (image.Image, error) {
	bounds := img.Bounds()

	if r.Empty() {
		return nil, fmt.Errorf("invalid crop region: %v has no area", r)
	}

	clipped := r.Intersect(bounds)
	if clipped.Empty() {
		return nil, fmt.Errorf("crop region %v outside image bounds %v", r, bounds)
	}

	return imaging.Crop(img, clipped), nil
}

// Upscale resizes img so its height is at least minHeight, keeping the aspect ratio.
// Images already tall enough are returned unchanged.
func Upscale(img image.Image, minHeight int) image.Image {
	if minHeight <= 0 || img.Bounds().Dy() >= minHeight {
		return img
	}
	return imaging.Resize(img, 0, minHeight, imaging.Lanczos)
}
