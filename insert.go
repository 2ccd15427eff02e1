package pictdb

import (
	"crypto/sha256"
	"fmt"
)

// Insert allocates a slot, hashes the payload, merges with an existing
// byte-identical original if one exists, or appends the payload if novel,
// then atomically (from the in-memory table's point of view) marks the
// slot live. Preconditions and algorithm per spec §4.3.
func (db *DB) Insert(payload []byte, id string) error {
	if err := validatePictID(id); err != nil {
		return err
	}

	if len(payload) == 0 {
		return fmt.Errorf("%w: payload is empty", ErrInvalidArgument)
	}

	// Step 3a: name dedup scan happens before slot allocation so a
	// duplicate id never consumes a slot.
	for i := 0; i < len(db.slots); i++ {
		if db.slots[i].IsValid() && db.slots[i].PictID == id {
			return fmt.Errorf("%w: %q", ErrDuplicateID, id)
		}
	}

	slotIdx := -1

	for i := 0; i < len(db.slots); i++ {
		if !db.slots[i].IsValid() {
			slotIdx = i
			break
		}
	}

	if slotIdx < 0 {
		return fmt.Errorf("%w: capacity %d reached", ErrFullDatabase, db.header.MaxFiles)
	}

	sum := sha256.Sum256(payload)

	candidate := Slot{
		PictID: id,
		SHA:    sum,
	}
	candidate.Size[ResOrig] = uint32(len(payload))

	// Step 3b/3c: content dedup scan against every other non-empty slot.
	dedupIdx := -1

	for i := 0; i < len(db.slots); i++ {
		if i == slotIdx || !db.slots[i].IsValid() {
			continue
		}

		if db.slots[i].SHA == sum {
			dedupIdx = i
			break
		}
	}

	if dedupIdx >= 0 {
		src := db.slots[dedupIdx]
		candidate.Offset = src.Offset
		candidate.Size = src.Size
		candidate.OrigW = src.OrigW
		candidate.OrigH = src.OrigH
	} else {
		// Sentinel: offset[RES_ORIG] == 0 means "needs append" (spec §9:
		// offset zero only ever denotes the header region, never a real
		// payload, so this is safe to use as a sentinel).
		candidate.Offset[ResOrig] = 0

		off, err := db.appendPayload(payload)
		if err != nil {
			return err
		}

		candidate.Offset[ResOrig] = uint64(off)

		w, h, err := db.decodeIntrinsicSize(payload)
		if err != nil {
			return err
		}

		candidate.OrigW, candidate.OrigH = w, h
	}

	candidate.Valid = slotNonEmpty

	db.slots[slotIdx] = candidate

	db.header.NumFiles++
	db.header.DBVersion++

	// Ordering rationale (spec §4.3): header before slot biases the
	// in-memory/on-disk copies toward the same transition direction. On
	// any failure in this persist step, the candidate's Valid flag is
	// rolled back to empty in memory; appended payload bytes, if any,
	// are left for GC to reclaim.
	if err := db.writeHeader(); err != nil {
		db.rollbackInsert(slotIdx)
		return err
	}

	if err := db.writeSlot(slotIdx); err != nil {
		db.rollbackInsert(slotIdx)
		return err
	}

	return nil
}

// rollbackInsert undoes the in-memory bookkeeping for a failed insert so
// the slot can be reused by a later call, and re-persists the header so a
// header write that succeeded before a later failure (e.g. the slot
// write) doesn't leave num_files/db_version permanently overcounted on
// disk relative to the retired slot.
func (db *DB) rollbackInsert(slotIdx int) {
	db.slots[slotIdx].Valid = slotEmpty
	db.header.NumFiles--
	db.header.DBVersion--

	_ = db.writeHeader()
}

// decodeIntrinsicSize asks the configured image codec for the original's
// dimensions. The core depends on the Codec abstraction (C2), not a
// concrete image library: see imagecodec for the production
// implementation.
func (db *DB) decodeIntrinsicSize(payload []byte) (uint32, uint32, error) {
	if db.codec == nil {
		return 0, 0, fmt.Errorf("%w: no image codec configured", ErrCodec)
	}

	_, w, h, err := db.codec.Decode(payload)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrCodec, err)
	}

	return uint32(w), uint32(h), nil
}
