package pictdb

import "fmt"

// Read returns the payload bytes for id at the given resolution code,
// synthesising and persisting a derived resolution on first demand (spec
// §4.4).
func (db *DB) Read(id string, resCode int) ([]byte, error) {
	if resCode != ResThumb && resCode != ResSmall && resCode != ResOrig {
		return nil, fmt.Errorf("%w: invalid resolution code %d", ErrInvalidArgument, resCode)
	}

	idx, err := db.Find(id)
	if err != nil {
		return nil, err
	}

	slot := db.slots[idx]

	if !slot.Materialized(resCode) {
		if resCode == ResOrig {
			// Invariant violation recovery: a valid slot must always
			// have RES_ORIG materialized. Should not occur.
			return nil, fmt.Errorf("%w: %q has no original payload", ErrFileNotFound, id)
		}

		if err := db.lazyResize(resCode, idx); err != nil {
			return nil, err
		}

		slot = db.slots[idx]
	}

	return db.readPayload(int64(slot.Offset[resCode]), slot.Size[resCode])
}

// lazyResize derives and persists resCode for the slot at idx on first
// demand. Idempotent: a second call against an already-materialized
// resolution is a no-op success (spec §4.4 / property P6).
func (db *DB) lazyResize(resCode int, idx int) error {
	if resCode == ResOrig {
		return nil
	}

	if resCode != ResThumb && resCode != ResSmall {
		return fmt.Errorf("%w: invalid resolution code %d", ErrInvalidArgument, resCode)
	}

	slot := db.slots[idx]

	if !slot.IsValid() {
		return fmt.Errorf("%w: slot %d is not live", ErrInvalidPicID, idx)
	}

	if slot.Materialized(resCode) {
		return nil
	}

	if db.codec == nil {
		return fmt.Errorf("%w: no image codec configured", ErrCodec)
	}

	orig, err := db.readPayload(int64(slot.Offset[ResOrig]), slot.Size[ResOrig])
	if err != nil {
		return err
	}

	img, _, _, err := db.codec.Decode(orig)
	if err != nil {
		return fmt.Errorf("%w: decoding original for %q: %v", ErrCodec, slot.PictID, err)
	}

	maxW, maxH := db.header.resBound(resCode)

	scaled := db.codec.ScaleToFit(img, int(maxW), int(maxH))

	encoded, err := db.codec.Encode(scaled)
	if err != nil {
		return fmt.Errorf("%w: encoding resized image for %q: %v", ErrCodec, slot.PictID, err)
	}

	off, err := db.appendPayload(encoded)
	if err != nil {
		return err
	}

	slot.Offset[resCode] = uint64(off)
	slot.Size[resCode] = uint32(len(encoded))
	db.slots[idx] = slot

	// Header is untouched; db_version is not bumped (spec §4.4, §9 open
	// question: lazy-resize is documented as not bumping db_version).
	return db.writeSlot(idx)
}
