// Package imaging holds the bitmap side of a capture: grabbing a region of the screen,
// and preparing it for the OCR engine.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with the origin at the top-left corner, X increasing
// rightward and Y increasing downward. Rectangles follow image.Rectangle: Min is
// inclusive and Max is exclusive.
//
// # Screens
//
// A Screen is anything that can hand out pixels by rectangle. StaticScreen wraps one
// decoded screenshot; it is how the CLI and the MCP tools feed a capture, since the
// process never reads the live framebuffer itself.
//
// # Preprocessing
//
// PrepareForOCR upscales short captures (disintegration/imaging), inverts light-on-dark
// text based on the border's Lab lightness (go-colorful, bild), and converts to
// grayscale with a contrast boost (bild). None of the operations mutate their input.
//
// # Thread Safety
//
// All functions are stateless and safe to call concurrently. StaticScreen is read-only
// after construction.
package imaging
