package pictdb

import (
	"fmt"

	"github.com/pictdb/pictdb/internal/storagefs"
)

// GC compacts the database at srcPath into a fresh file at dstPath that
// contains only live entries and their already-materialized derived
// resolutions, then atomically swaps dstPath into srcPath's place (spec
// §4.6).
//
// On any failure, dstPath is unlinked and srcPath is left untouched.
func GC(fsys storagefs.FS, srcPath, dstPath string, codec Codec) error {
	src, err := Open(fsys, srcPath, WithCodec(codec))
	if err != nil {
		return err
	}
	defer src.Close()

	srcHeader := src.Header()

	dst, err := Create(fsys, dstPath, CreateConfig{
		MaxFiles: srcHeader.MaxFiles,
		ThumbW:   srcHeader.ResResized[0],
		ThumbH:   srcHeader.ResResized[1],
		SmallW:   srcHeader.ResResized[2],
		SmallH:   srcHeader.ResResized[3],
	}, WithCodec(codec))
	if err != nil {
		_ = fsys.Remove(dstPath)
		return err
	}

	if err := gcCopyEntries(src, dst); err != nil {
		_ = dst.Close()
		_ = fsys.Remove(dstPath)

		return err
	}

	// Overwrite the destination's db_version with the source's, for
	// observability (spec §4.6 step 3): the destination has been
	// mutating its own counter during the rebuild.
	dst.header.DBVersion = srcHeader.DBVersion

	if err := dst.writeHeader(); err != nil {
		_ = dst.Close()
		_ = fsys.Remove(dstPath)

		return err
	}

	if err := dst.Close(); err != nil {
		_ = fsys.Remove(dstPath)
		return fmt.Errorf("%w: closing compacted database: %v", ErrIO, err)
	}

	// Rename directly onto srcPath: both Real (os.Rename) and MemFS
	// overwrite an existing destination in a single step, so there is no
	// window where neither file holds valid data.
	if err := fsys.Rename(dstPath, srcPath); err != nil {
		_ = fsys.Remove(dstPath)
		return fmt.Errorf("%w: renaming %q to %q: %v", ErrIO, dstPath, srcPath, err)
	}

	return nil
}

// gcCopyEntries replays every live source slot into dst: read the
// original, re-insert under the same id (dedup reruns and naturally
// collapses slots that shared a SHA in the source), then rematerialize
// any derived resolution the source had already produced.
func gcCopyEntries(src, dst *DB) error {
	for i := 0; i < len(src.slots); i++ {
		slot := src.slots[i]
		if !slot.IsValid() {
			continue
		}

		orig, err := src.readPayload(int64(slot.Offset[ResOrig]), slot.Size[ResOrig])
		if err != nil {
			return err
		}

		if err := dst.Insert(orig, slot.PictID); err != nil {
			return err
		}

		newIdx, err := dst.Find(slot.PictID)
		if err != nil {
			return err
		}

		for _, res := range []int{ResThumb, ResSmall} {
			if slot.Materialized(res) {
				if err := dst.lazyResize(res, newIdx); err != nil {
					return err
				}
			}
		}
	}

	return nil
}
