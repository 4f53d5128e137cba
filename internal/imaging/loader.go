package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	"image/png"
	"os"
)

// Screen is a source of screen pixels that can be grabbed by rectangle.
type Screen interface {
	// Grab returns the pixels inside r, in screen coordinates.
	Grab(r image.Rectangle) (image.Image, error)

	// Bounds returns the screen rectangle.
	Bounds() image.Rectangle
}

// StaticScreen is a Screen backed by a single screenshot held in memory.
//
// The screenshot is owned by the capture session that created it and is replaced
// wholesale on the next capture; it is never cached across sessions.
type StaticScreen struct {
	img image.Image
}

// NewStaticScreen wraps an already decoded screenshot.
func NewStaticScreen(img image.Image) *StaticScreen {
	return &StaticScreen{img: img}
}

// LoadScreen decodes a screenshot file and returns it as a Screen.
//
// Supported formats are PNG, JPEG and GIF.
func LoadScreen(path string) (*StaticScreen, error) {
	img, err := Load(path)
	if err != nil {
		return nil, err
	}
	return NewStaticScreen(img), nil
}

// Grab crops r out of the screenshot.
func (s *StaticScreen) Grab(r image.Rectangle) (image.Image, error) {
	return CropRect(s.img, r)
}

// Bounds returns the screenshot bounds.
func (s *StaticScreen) Bounds() image.Rectangle {
	return s.img.Bounds()
}

// Load opens and decodes an image file.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	return img, nil
}

// EncodePNG encodes img as PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}
