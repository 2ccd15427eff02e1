package pictdb

// Delete retires the slot for id. No payload bytes are freed; GC reclaims
// them. A deleted slot's dedup partners remain intact because each slot
// holds its own copy of offset/size (spec §4.5, invariant 6 is maintained
// passively).
func (db *DB) Delete(id string) error {
	idx, err := db.Find(id)
	if err != nil {
		return err
	}

	if db.header.NumFiles > 0 {
		db.header.NumFiles--
	}

	db.header.DBVersion++

	// Header before slot, mirroring Insert's ordering (spec §4.3): if the
	// header write fails, nothing on disk has changed yet, so rolling
	// back the in-memory counts alone is sufficient.
	if err := db.writeHeader(); err != nil {
		db.header.NumFiles++
		db.header.DBVersion--
		return err
	}

	db.slots[idx].Valid = slotEmpty

	if err := db.writeSlot(idx); err != nil {
		// The header was already persisted with the decremented count;
		// roll back both the in-memory slot and the on-disk header so
		// num_files/db_version don't outlive the (still-live) slot.
		db.slots[idx].Valid = slotNonEmpty
		db.header.NumFiles++
		db.header.DBVersion--
		_ = db.writeHeader()

		return err
	}

	return nil
}
