package pictdb

import "image"

// Codec is the single varying dependency the core depends on behind a
// small capability set (spec §9 "Polymorphism"): decode a JPEG buffer to
// pixels and report intrinsic size, scale to fit a bounding box
// preserving aspect ratio, and encode pixels back to JPEG. The concrete
// implementation (package imagecodec) wraps image/jpeg and
// golang.org/x/image/draw; the core only ever sees this interface.
type Codec interface {
	// Decode parses jpegBytes and reports the intrinsic (width, height).
	Decode(jpegBytes []byte) (img image.Image, width, height int, err error)

	// ScaleToFit resizes img to fit within maxW x maxH, preserving aspect
	// ratio and never upscaling.
	ScaleToFit(img image.Image, maxW, maxH int) image.Image

	// Encode serializes img back to JPEG bytes.
	Encode(img image.Image) (jpegBytes []byte, err error)
}
