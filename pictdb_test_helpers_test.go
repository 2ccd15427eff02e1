package pictdb

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"github.com/pictdb/pictdb/imagecodec"
	"github.com/pictdb/pictdb/internal/storagefs"
)

// newTestJPEG encodes a solid-color w x h JPEG, used throughout the test
// suite in place of fixture files on disk (SPEC_FULL.md §8).
func newTestJPEG(t *testing.T, w, h int, c color.RGBA) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("encoding test jpeg: %v", err)
	}

	return buf.Bytes()
}

// newTestDB creates a fresh in-memory database with small bounds suitable
// for exercising dedup/resize/GC without real disk I/O.
func newTestDB(t *testing.T, cfg CreateConfig) (*DB, storagefs.FS, string) {
	t.Helper()

	fsys := storagefs.NewMemFS()
	path := "/test.pictdb"

	db, err := Create(fsys, path, cfg, WithCodec(imagecodec.New()))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })

	return db, fsys, path
}
