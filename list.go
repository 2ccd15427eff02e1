package pictdb

import (
	"encoding/hex"
	"fmt"
	"io"
)

// Find returns the slot index of the non-empty slot whose PictID exactly
// matches id, or ErrFileNotFound. Linear scan, strict less-than bound
// (spec §9: the source's "<= max_files" scan is an off-by-one; this uses
// strict "<").
func (db *DB) Find(id string) (int, error) {
	for i := 0; i < len(db.slots); i++ {
		if db.slots[i].IsValid() && db.slots[i].PictID == id {
			return i, nil
		}
	}

	return -1, fmt.Errorf("%w: %q", ErrFileNotFound, id)
}

// Listing is the STRUCTURED list document (spec §4.2): the ids of
// non-empty slots in slot-index order.
type Listing struct {
	Pictures []string `json:"Pictures"`
}

// ListStructured returns the ids of all non-empty slots, in slot-index
// order.
func (db *DB) ListStructured() Listing {
	listing := Listing{Pictures: []string{}}

	for i := 0; i < len(db.slots); i++ {
		if db.slots[i].IsValid() {
			listing.Pictures = append(listing.Pictures, db.slots[i].PictID)
		}
	}

	return listing
}

// ListText prints the header then every non-empty slot's fields in a
// fixed, human-readable layout (SHA as lowercase hex), to w. Mirrors the
// "<< empty database >>" sentinel scenario from spec §8 scenario 1.
func (db *DB) ListText(w io.Writer) {
	h := db.header

	fmt.Fprintf(w, "*****************************************\n")
	fmt.Fprintf(w, "**********DATABASE HEADER START*********\n")
	fmt.Fprintf(w, "DB NAME: %s\n", h.DBName)
	fmt.Fprintf(w, "VERSION: %d\n", h.DBVersion)
	fmt.Fprintf(w, "IMAGE COUNT: %d\tMAX IMAGES: %d\n", h.NumFiles, h.MaxFiles)
	fmt.Fprintf(w, "THUMBNAIL: %d x %d\n", h.ResResized[0], h.ResResized[1])
	fmt.Fprintf(w, "SMALL: %d x %d\n", h.ResResized[2], h.ResResized[3])
	fmt.Fprintf(w, "**********DATABASE HEADER END**********\n")

	any := false

	for i := 0; i < len(db.slots); i++ {
		s := db.slots[i]
		if !s.IsValid() {
			continue
		}

		any = true

		fmt.Fprintf(w, "PICTURE ID: %s\n", s.PictID)
		fmt.Fprintf(w, "SHA: %s\n", hex.EncodeToString(s.SHA[:]))
		fmt.Fprintf(w, "ORIGINAL: %d x %d\n", s.OrigW, s.OrigH)

		for res := 0; res < numResolutions; res++ {
			fmt.Fprintf(w, "  %-5s size=%d offset=%d\n", ResolutionName(res), s.Size[res], s.Offset[res])
		}
	}

	if !any {
		fmt.Fprintf(w, "<< empty database >>\n")
	}

	fmt.Fprintf(w, "*****************************************\n")
}
