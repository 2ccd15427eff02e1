package pictdb

// Resolution codes, used to index Slot.Size/Offset and res_resized pairs.
const (
	ResThumb = 0
	ResSmall = 1
	ResOrig  = 2
)

// numResolutions is the width of the Size/Offset arrays in a Slot.
const numResolutions = 3

// Bounds from spec §6 "Defaults and bounds".
const (
	DefaultMaxFiles = 10
	MaxMaxFiles     = 100_000

	DefaultThumbW, DefaultThumbH = 64, 64
	MaxThumbW, MaxThumbH         = 128, 128

	DefaultSmallW, DefaultSmallH = 256, 256
	MaxSmallW, MaxSmallH         = 512, 512
)

const (
	maxDBNameLen = 32
	maxPictIDLen = 128
)

// validFlag values for Slot.Valid.
const (
	slotEmpty    uint16 = 0
	slotNonEmpty uint16 = 1
)

// Header mirrors the fixed on-disk header (spec §3): one per file, at
// offset 0.
type Header struct {
	// DBName is the fixed 32-byte zero-terminated identifying string.
	DBName string

	// DBVersion increments on every logical mutation (insert, delete).
	DBVersion uint32

	// NumFiles is the count of currently live (non-empty) slots.
	NumFiles uint32

	// MaxFiles is the fixed capacity decided at create time.
	MaxFiles uint32

	// ResResized holds (thumb_w, thumb_h, small_w, small_h), fixed at
	// create time.
	ResResized [4]uint16
}

// ThumbRes returns the configured (width, height) bound for RES_THUMB.
func (h Header) ThumbRes() (w, hgt uint16) {
	return h.ResResized[0], h.ResResized[1]
}

// SmallRes returns the configured (width, height) bound for RES_SMALL.
func (h Header) SmallRes() (w, hgt uint16) {
	return h.ResResized[2], h.ResResized[3]
}

// resBound returns the (maxW, maxH) bound configured for a derived
// resolution code. Only valid for ResThumb/ResSmall.
func (h Header) resBound(resCode int) (w, hgt uint16) {
	switch resCode {
	case ResThumb:
		return h.ThumbRes()
	case ResSmall:
		return h.SmallRes()
	default:
		return 0, 0
	}
}

// Slot mirrors one fixed on-disk metadata record (spec §3).
type Slot struct {
	// PictID is the fixed 128-byte zero-terminated identifier.
	PictID string

	// SHA is the 32-byte SHA-256 digest of the original payload.
	SHA [32]byte

	// OrigW, OrigH are the intrinsic dimensions of the original image.
	OrigW, OrigH uint32

	// Size holds payload byte lengths per resolution, indexed by
	// ResThumb/ResSmall/ResOrig.
	Size [numResolutions]uint32

	// Offset holds absolute byte offsets of each resolution's payload in
	// the file, indexed by ResThumb/ResSmall/ResOrig.
	Offset [numResolutions]uint64

	// Valid is slotEmpty or slotNonEmpty.
	Valid uint16
}

// IsValid reports whether the slot currently holds a live entry.
func (s *Slot) IsValid() bool {
	return s.Valid == slotNonEmpty
}

// Materialized reports whether resCode has already been persisted for
// this slot.
func (s *Slot) Materialized(resCode int) bool {
	return s.Offset[resCode] != 0 && s.Size[resCode] != 0
}
