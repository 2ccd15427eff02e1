// Package imagecodec is the concrete image codec adapter (C2/C13): it
// implements the decode/scale/encode capability set the core database
// depends on (pictdb.Codec), wrapping image/jpeg for decode/encode and
// golang.org/x/image/draw for scaling. Grounded on the reference image
// pipelines in the retrieved pack: perkeep's thumbnail server
// (pkg/server/image.go, decode via image/jpeg, scale, re-encode) for the
// overall shape, and wuffs's handsum tool (lib/handsum/handsum.go) for
// using golang.org/x/image/draw.CatmullRom as the resampling kernel.
package imagecodec

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"

	"golang.org/x/image/draw"
)

// ErrNotJPEG is returned when Decode is given a buffer that isn't a valid
// JPEG stream.
var ErrNotJPEG = errors.New("imagecodec: not a valid JPEG payload")

// defaultQuality matches typical thumbnail-service defaults: high enough
// to avoid visible block artifacts on downscaled images, low enough to
// keep derived payloads small.
const defaultQuality = 87

// JPEG is the production pictdb.Codec implementation.
type JPEG struct {
	// Quality is the JPEG encode quality (1-100). Zero means
	// defaultQuality.
	Quality int
}

// New returns a JPEG codec using the default encode quality.
func New() *JPEG {
	return &JPEG{Quality: defaultQuality}
}

func (c *JPEG) quality() int {
	if c.Quality <= 0 {
		return defaultQuality
	}

	return c.Quality
}

// Decode parses jpegBytes and reports the intrinsic (width, height).
func (c *JPEG) Decode(jpegBytes []byte) (image.Image, int, int, error) {
	img, err := jpeg.Decode(bytes.NewReader(jpegBytes))
	if err != nil {
		return nil, 0, 0, fmt.Errorf("%w: %v", ErrNotJPEG, err)
	}

	b := img.Bounds()

	return img, b.Dx(), b.Dy(), nil
}

// ScaleToFit resizes img to fit within maxW x maxH, preserving aspect
// ratio. The scale ratio is min(maxW/w, maxH/h), clamped to never exceed
// 1: this codec never upscales, regardless of what the caller asks for
// (spec §4.4 leaves "never upscale" as the codec's concern).
func (c *JPEG) ScaleToFit(img image.Image, maxW, maxH int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	if w <= 0 || h <= 0 || maxW <= 0 || maxH <= 0 {
		return img
	}

	ratio := minFloat(float64(maxW)/float64(w), float64(maxH)/float64(h))
	if ratio >= 1 {
		return img
	}

	dstW := maxInt(1, int(float64(w)*ratio))
	dstH := maxInt(1, int(float64(h)*ratio))

	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)

	return dst
}

// Encode serializes img back to JPEG bytes at the configured quality.
func (c *JPEG) Encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer

	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: c.quality()}); err != nil {
		return nil, fmt.Errorf("imagecodec: encoding: %w", err)
	}

	return buf.Bytes(), nil
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}

	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}

	return b
}
