package imagecodec

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"github.com/stretchr/testify/require"
)

func solidJPEG(t *testing.T, w, h int, c color.RGBA) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}))

	return buf.Bytes()
}

func TestDecodeReportsIntrinsicSize(t *testing.T) {
	c := New()

	jpg := solidJPEG(t, 123, 45, color.RGBA{R: 200, A: 255})

	img, w, h, err := c.Decode(jpg)
	require.NoError(t, err)
	require.NotNil(t, img)
	require.Equal(t, 123, w)
	require.Equal(t, 45, h)
}

func TestDecodeRejectsNonJPEG(t *testing.T) {
	c := New()

	_, _, _, err := c.Decode([]byte("not a jpeg"))
	require.ErrorIs(t, err, ErrNotJPEG)
}

func TestScaleToFitPreservesAspectRatio(t *testing.T) {
	c := New()

	img := image.NewRGBA(image.Rect(0, 0, 400, 200))
	scaled := c.ScaleToFit(img, 100, 100)

	b := scaled.Bounds()
	require.Equal(t, 100, b.Dx())
	require.Equal(t, 50, b.Dy())
}

func TestScaleToFitNeverUpscales(t *testing.T) {
	c := New()

	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	scaled := c.ScaleToFit(img, 400, 400)

	b := scaled.Bounds()
	require.Equal(t, 40, b.Dx())
	require.Equal(t, 20, b.Dy())
}

func TestScaleToFitHandlesDegenerateBounds(t *testing.T) {
	c := New()

	img := image.NewRGBA(image.Rect(0, 0, 40, 20))

	require.Equal(t, img, c.ScaleToFit(img, 0, 0))
	require.Equal(t, img, c.ScaleToFit(img, -1, 50))
}

func TestEncodeRoundTripsThroughDecode(t *testing.T) {
	c := New()

	img := image.NewRGBA(image.Rect(0, 0, 30, 30))
	encoded, err := c.Encode(img)
	require.NoError(t, err)
	require.NotEmpty(t, encoded)

	_, w, h, err := c.Decode(encoded)
	require.NoError(t, err)
	require.Equal(t, 30, w)
	require.Equal(t, 30, h)
}

func TestQualityFallsBackToDefault(t *testing.T) {
	c := &JPEG{}
	require.Equal(t, defaultQuality, c.quality())

	c.Quality = 42
	require.Equal(t, 42, c.quality())
}
