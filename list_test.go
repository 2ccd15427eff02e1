package pictdb

import (
	"bytes"
	"encoding/hex"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListStructuredOrderAndContent(t *testing.T) {
	db, _, _ := newTestDB(t, CreateConfig{MaxFiles: 4})

	require.NoError(t, db.Insert(newTestJPEG(t, 10, 10, color.RGBA{A: 255}), "a"))
	require.NoError(t, db.Insert(newTestJPEG(t, 11, 11, color.RGBA{R: 1, A: 255}), "b"))
	require.NoError(t, db.Insert(newTestJPEG(t, 12, 12, color.RGBA{G: 1, A: 255}), "c"))
	require.NoError(t, db.Delete("b"))

	listing := db.ListStructured()
	require.Equal(t, []string{"a", "c"}, listing.Pictures)
}

func TestListStructuredEmptyIsNotNil(t *testing.T) {
	db, _, _ := newTestDB(t, CreateConfig{MaxFiles: 4})

	listing := db.ListStructured()
	require.NotNil(t, listing.Pictures)
	require.Empty(t, listing.Pictures)
}

func TestListTextIncludesHeaderAndSlotFields(t *testing.T) {
	db, _, _ := newTestDB(t, CreateConfig{MaxFiles: 4, ThumbW: 32, ThumbH: 32})

	jpg := newTestJPEG(t, 64, 48, color.RGBA{B: 9, A: 255})
	require.NoError(t, db.Insert(jpg, "vacation"))

	idx, err := db.Find("vacation")
	require.NoError(t, err)
	sha := hex.EncodeToString(db.slots[idx].SHA[:])

	var buf bytes.Buffer
	db.ListText(&buf)
	out := buf.String()

	require.Contains(t, out, "DB NAME: "+DBNameTag)
	require.Contains(t, out, "PICTURE ID: vacation")
	require.Contains(t, out, "SHA: "+sha)
	require.Contains(t, out, "ORIGINAL: 64 x 48")
	require.Contains(t, out, "THUMBNAIL: 32 x 32")
	require.NotContains(t, out, "<< empty database >>")
}
