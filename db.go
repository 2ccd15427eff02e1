package pictdb

import (
	"fmt"
	"os"

	"github.com/pictdb/pictdb/internal/storagefs"
)

// DBNameTag is the fixed identifying string stamped into every database's
// header at create time.
const DBNameTag = "PictDB"

// CreateConfig holds the create-time parameters validated against spec §6
// "Defaults and bounds".
type CreateConfig struct {
	MaxFiles uint32 // 0 means DefaultMaxFiles
	ThumbW   uint16 // 0 means DefaultThumbW
	ThumbH   uint16 // 0 means DefaultThumbH
	SmallW   uint16 // 0 means DefaultSmallW
	SmallH   uint16 // 0 means DefaultSmallH
}

// resolved fills in zero fields with their documented defaults.
func (c CreateConfig) resolved() CreateConfig {
	if c.MaxFiles == 0 {
		c.MaxFiles = DefaultMaxFiles
	}

	if c.ThumbW == 0 {
		c.ThumbW = DefaultThumbW
	}

	if c.ThumbH == 0 {
		c.ThumbH = DefaultThumbH
	}

	if c.SmallW == 0 {
		c.SmallW = DefaultSmallW
	}

	if c.SmallH == 0 {
		c.SmallH = DefaultSmallH
	}

	return c
}

// validate enforces spec §6 bounds, returning ErrMaxFiles/ErrResolutions.
func (c CreateConfig) validate() error {
	if c.MaxFiles == 0 || c.MaxFiles > MaxMaxFiles {
		return fmt.Errorf("%w: max_files=%d (must be 1..%d)", ErrMaxFiles, c.MaxFiles, MaxMaxFiles)
	}

	if c.ThumbW > MaxThumbW || c.ThumbH > MaxThumbH {
		return fmt.Errorf("%w: thumb=%dx%d (must be <= %dx%d)", ErrResolutions, c.ThumbW, c.ThumbH, MaxThumbW, MaxThumbH)
	}

	if c.SmallW > MaxSmallW || c.SmallH > MaxSmallH {
		return fmt.Errorf("%w: small=%dx%d (must be <= %dx%d)", ErrResolutions, c.SmallW, c.SmallH, MaxSmallW, MaxSmallH)
	}

	return nil
}

// DB is the database handle (C3). It owns the open file and the
// in-memory slot table exclusively for its lifetime: the in-memory state
// is authoritative, and every mutating operation writes the affected
// on-disk records before reporting success (spec §4.1).
type DB struct {
	fs   storagefs.FS
	path string
	file storagefs.File

	header Header
	slots  []Slot

	codec Codec
}

// Option configures a DB at Create/Open time.
type Option func(*DB)

// WithCodec sets the image codec (C2) the database uses for lazy-resize
// and for learning an original's intrinsic size at insert time. The core
// depends only on the Codec interface; see package imagecodec for the
// production implementation.
func WithCodec(codec Codec) Option {
	return func(db *DB) { db.codec = codec }
}

func applyOptions(db *DB, opts []Option) {
	for _, opt := range opts {
		opt(db)
	}
}

// Create truncate-creates the database file at path, writes a zeroed
// header with num_files=0, db_version=0, the fixed DBNameTag, and
// max_files zeroed slots. The file is left open read-write.
func Create(fsys storagefs.FS, path string, cfg CreateConfig, opts ...Option) (*DB, error) {
	cfg = cfg.resolved()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	file, err := fsys.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("%w: creating %q: %v", ErrIO, path, err)
	}

	header := Header{
		DBName:     DBNameTag,
		DBVersion:  0,
		NumFiles:   0,
		MaxFiles:   cfg.MaxFiles,
		ResResized: [4]uint16{cfg.ThumbW, cfg.ThumbH, cfg.SmallW, cfg.SmallH},
	}

	size := dataRegionStart(cfg.MaxFiles)
	if err := file.Truncate(size); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("%w: sizing %q: %v", ErrIO, path, err)
	}

	if _, err := file.WriteAt(encodeHeader(header), 0); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("%w: writing header: %v", ErrIO, err)
	}

	slots := make([]Slot, cfg.MaxFiles)
	emptySlot := encodeSlot(Slot{Valid: slotEmpty})

	for i := range slots {
		if _, err := file.WriteAt(emptySlot, slotByteOffset(i)); err != nil {
			_ = file.Close()
			return nil, fmt.Errorf("%w: writing slot %d: %v", ErrIO, i, err)
		}
	}

	if err := file.Sync(); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("%w: syncing %q: %v", ErrIO, path, err)
	}

	db := &DB{fs: fsys, path: path, file: file, header: header, slots: slots}
	applyOptions(db, opts)

	return db, nil
}

// Open opens an existing database file, reading the header and the full
// slot table into memory. Fails if any read is short or the file is
// smaller than the header+slot-table prefix its own header describes.
func Open(fsys storagefs.FS, path string, opts ...Option) (*DB, error) {
	file, err := fsys.OpenFile(path, os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %q: %v", ErrIO, path, err)
	}

	headerBuf := make([]byte, HeaderSize)
	if _, err := file.ReadAt(headerBuf, 0); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("%w: reading header of %q: %v", ErrIO, path, err)
	}

	header := decodeHeader(headerBuf)

	slots := make([]Slot, header.MaxFiles)

	for i := range slots {
		buf := make([]byte, SlotSize)
		if _, err := file.ReadAt(buf, slotByteOffset(i)); err != nil {
			_ = file.Close()
			return nil, fmt.Errorf("%w: reading slot %d of %q: %v", ErrIO, i, path, err)
		}

		slots[i] = decodeSlot(buf)
	}

	db := &DB{fs: fsys, path: path, file: file, header: header, slots: slots}
	applyOptions(db, opts)

	return db, nil
}

// Close releases the in-memory table and closes the file. No flush
// guarantees beyond what the underlying file system provides.
func (db *DB) Close() error {
	return db.file.Close()
}

// Header returns a copy of the in-memory header.
func (db *DB) Header() Header {
	return db.header
}

// NumFiles returns the live-slot count, recomputed from the in-memory
// table (invariant 2: num_files always equals the count of non-empty
// slots).
func (db *DB) NumFiles() int {
	n := 0

	for i := range db.slots {
		if db.slots[i].IsValid() {
			n++
		}
	}

	return n
}

// writeHeader persists the in-memory header to its fixed offset.
func (db *DB) writeHeader() error {
	if _, err := db.file.WriteAt(encodeHeader(db.header), 0); err != nil {
		return fmt.Errorf("%w: writing header: %v", ErrIO, err)
	}

	return nil
}

// writeSlot persists in-memory slot i to its fixed offset.
func (db *DB) writeSlot(i int) error {
	if _, err := db.file.WriteAt(encodeSlot(db.slots[i]), slotByteOffset(i)); err != nil {
		return fmt.Errorf("%w: writing slot %d: %v", ErrIO, i, err)
	}

	return nil
}

// readPayload reads size bytes at off from the data region into a fresh
// buffer.
func (db *DB) readPayload(off int64, size uint32) ([]byte, error) {
	buf := make([]byte, size)
	if _, err := db.file.ReadAt(buf, off); err != nil {
		return nil, fmt.Errorf("%w: reading payload at %d: %v", ErrIO, off, err)
	}

	return buf, nil
}

// appendPayload writes payload at the current end of file and returns the
// offset it was written at.
func (db *DB) appendPayload(payload []byte) (int64, error) {
	size, err := db.file.Size()
	if err != nil {
		return 0, fmt.Errorf("%w: stat: %v", ErrIO, err)
	}

	if _, err := db.file.WriteAt(payload, size); err != nil {
		return 0, fmt.Errorf("%w: appending payload: %v", ErrIO, err)
	}

	return size, nil
}
