package pictdb

import "encoding/binary"

// On-disk layout constants (spec §3, §6). Field widths and byte offsets
// are named explicitly, mirroring the teacher's slc1* offset-constant
// style, so reserved-byte zeroing and fixed-width string handling stay
// visible at the call site rather than hiding inside a single
// binary.Write(struct) call.
const (
	// Header layout.
	headerOffDBName     = 0
	headerOffDBVersion  = headerOffDBName + maxDBNameLen // 32
	headerOffNumFiles   = headerOffDBVersion + 4          // 36
	headerOffMaxFiles   = headerOffNumFiles + 4           // 40
	headerOffResResized = headerOffMaxFiles + 4           // 44, 4x uint16 = 8 bytes
	headerOffReserved32 = headerOffResResized + 8         // 52
	headerOffReserved64 = headerOffReserved32 + 4         // 56
	HeaderSize          = headerOffReserved64 + 8         // 64

	// Slot layout.
	slotOffPictID  = 0
	slotOffSHA     = slotOffPictID + maxPictIDLen // 128
	slotOffOrigW   = slotOffSHA + 32              // 160
	slotOffOrigH   = slotOffOrigW + 4             // 164
	slotOffSize    = slotOffOrigH + 4             // 168, 3x uint32 = 12 bytes
	slotOffOffset  = slotOffSize + 4*numResolutions // 180, 3x uint64 = 24 bytes
	slotOffValid   = slotOffOffset + 8*numResolutions // 204
	slotOffReserve = slotOffValid + 2                 // 206
	SlotSize       = slotOffReserve + 2               // 208
)

// putFixedString zeroes dst then copies s into it, truncated so at least
// one trailing NUL byte remains. This fixes the "db_name truncated to its
// own length without writing past" bug noted as an open question in
// spec.md §9: the full field is always zeroed first.
func putFixedString(dst []byte, s string) {
	for i := range dst {
		dst[i] = 0
	}

	max := len(dst) - 1
	if max < 0 {
		return
	}

	if len(s) > max {
		s = s[:max]
	}

	copy(dst, s)
}

// getFixedString reads a zero-terminated fixed-width field, ignoring
// everything past the first NUL.
func getFixedString(src []byte) string {
	for i, b := range src {
		if b == 0 {
			return string(src[:i])
		}
	}

	return string(src)
}

// encodeHeader serializes h into a HeaderSize-byte buffer.
func encodeHeader(h Header) []byte {
	buf := make([]byte, HeaderSize)

	putFixedString(buf[headerOffDBName:headerOffDBName+maxDBNameLen], h.DBName)
	binary.LittleEndian.PutUint32(buf[headerOffDBVersion:], h.DBVersion)
	binary.LittleEndian.PutUint32(buf[headerOffNumFiles:], h.NumFiles)
	binary.LittleEndian.PutUint32(buf[headerOffMaxFiles:], h.MaxFiles)

	for i, v := range h.ResResized {
		binary.LittleEndian.PutUint16(buf[headerOffResResized+2*i:], v)
	}

	// Reserved fields are left zero.
	return buf
}

// decodeHeader parses a HeaderSize-byte buffer into a Header.
func decodeHeader(buf []byte) Header {
	var h Header

	h.DBName = getFixedString(buf[headerOffDBName : headerOffDBName+maxDBNameLen])
	h.DBVersion = binary.LittleEndian.Uint32(buf[headerOffDBVersion:])
	h.NumFiles = binary.LittleEndian.Uint32(buf[headerOffNumFiles:])
	h.MaxFiles = binary.LittleEndian.Uint32(buf[headerOffMaxFiles:])

	for i := range h.ResResized {
		h.ResResized[i] = binary.LittleEndian.Uint16(buf[headerOffResResized+2*i:])
	}

	return h
}

// encodeSlot serializes s into a SlotSize-byte buffer.
func encodeSlot(s Slot) []byte {
	buf := make([]byte, SlotSize)

	putFixedString(buf[slotOffPictID:slotOffPictID+maxPictIDLen], s.PictID)
	copy(buf[slotOffSHA:slotOffSHA+32], s.SHA[:])
	binary.LittleEndian.PutUint32(buf[slotOffOrigW:], s.OrigW)
	binary.LittleEndian.PutUint32(buf[slotOffOrigH:], s.OrigH)

	for i, v := range s.Size {
		binary.LittleEndian.PutUint32(buf[slotOffSize+4*i:], v)
	}

	for i, v := range s.Offset {
		binary.LittleEndian.PutUint64(buf[slotOffOffset+8*i:], v)
	}

	binary.LittleEndian.PutUint16(buf[slotOffValid:], s.Valid)
	// Reserved field left zero.

	return buf
}

// decodeSlot parses a SlotSize-byte buffer into a Slot.
func decodeSlot(buf []byte) Slot {
	var s Slot

	s.PictID = getFixedString(buf[slotOffPictID : slotOffPictID+maxPictIDLen])
	copy(s.SHA[:], buf[slotOffSHA:slotOffSHA+32])
	s.OrigW = binary.LittleEndian.Uint32(buf[slotOffOrigW:])
	s.OrigH = binary.LittleEndian.Uint32(buf[slotOffOrigH:])

	for i := range s.Size {
		s.Size[i] = binary.LittleEndian.Uint32(buf[slotOffSize+4*i:])
	}

	for i := range s.Offset {
		s.Offset[i] = binary.LittleEndian.Uint64(buf[slotOffOffset+8*i:])
	}

	s.Valid = binary.LittleEndian.Uint16(buf[slotOffValid:])

	return s
}

// slotByteOffset returns the absolute file offset of slot i, given the
// header precedes the slot table.
func slotByteOffset(i int) int64 {
	return int64(HeaderSize) + int64(i)*int64(SlotSize)
}

// dataRegionStart returns the first byte offset past the fixed
// header+slot-table prefix, for a database with the given capacity.
func dataRegionStart(maxFiles uint32) int64 {
	return int64(HeaderSize) + int64(maxFiles)*int64(SlotSize)
}
