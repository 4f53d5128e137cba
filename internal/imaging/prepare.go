package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/effect"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// darkBackgroundL is the Lab lightness below which a capture is treated as light text
// on a dark background.
const darkBackgroundL = 0.5

// PrepareOptions controls PrepareForOCR.
type PrepareOptions struct {
	// MinHeight is the height small captures are upscaled to. Zero disables upscaling.
	MinHeight int

	// Contrast is passed to bild's adjust.Contrast, in the range -1 to 1. Zero leaves
	// contrast unchanged.
	Contrast float64

	// AutoInvert inverts captures whose border is dark, so the engine always sees
	// dark text on a light background.
	AutoInvert bool
}

// DefaultPrepareOptions returns the options used by the pipeline.
func DefaultPrepareOptions() PrepareOptions {
	return PrepareOptions{
		MinHeight:  64,
		Contrast:   0.2,
		AutoInvert: true,
	}
}

// PrepareForOCR turns a raw screen capture into an image Tesseract reads reliably.
//
// Parameters:
//   - img: The captured region.
//   - opts: Preprocessing options; see PrepareOptions.
//
// Returns:
//   - *image.RGBA: A grayscale copy of the capture with origin (0,0).
//
// # Steps
//
// Captures shorter than MinHeight are upscaled with a Lanczos filter, since screen text is
// often smaller than the engine's preferred glyph size. The border luminance is then
// measured in CIE Lab; a dark border means light-on-dark text, which is inverted when
// AutoInvert is set. Finally the image is converted to grayscale and its contrast is
// adjusted. The input image is never modified.
func PrepareForOCR(img image.Image, opts PrepareOptions) *image.RGBA {
	out := Upscale(img, opts.MinHeight)

	if opts.AutoInvert && BorderLightness(out) < darkBackgroundL {
		out = effect.Invert(out)
	}

	gray := effect.Grayscale(out)
	if opts.Contrast != 0 {
		return adjust.Contrast(gray, opts.Contrast)
	}
	return gray
}

// BorderLightness returns the mean CIE Lab lightness (0 black to 1 white) of the
// outermost pixel ring of img. An empty image reports 1.
func BorderLightness(img image.Image) float64 {
	b := img.Bounds()
	if b.Empty() {
		return 1
	}

	var sum float64
	var n int
	sample := func(x, y int) {
		c, ok := colorful.MakeColor(img.At(x, y))
		if !ok {
			// Fully transparent pixels read as background.
			sum++
			n++
			return
		}
		l, _, _ := c.Lab()
		sum += l
		n++
	}

	for x := b.Min.X; x < b.Max.X; x++ {
		sample(x, b.Min.Y)
		if b.Dy() > 1 {
			sample(x, b.Max.Y-1)
		}
	}
	for y := b.Min.Y + 1; y < b.Max.Y-1; y++ {
		sample(b.Min.X, y)
		if b.Dx() > 1 {
			sample(b.Max.X-1, y)
		}
	}

	return sum / float64(n)
}
