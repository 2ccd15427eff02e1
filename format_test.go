package pictdb

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHeaderRoundTrip(t *testing.T) {
	cases := []Header{
		{},
		{
			DBName:     "PictDB",
			DBVersion:  7,
			NumFiles:   3,
			MaxFiles:   10,
			ResResized: [4]uint16{64, 64, 256, 256},
		},
		{
			DBName:     "this name is exactly thirty one", // 31 bytes, fits with NUL
			DBVersion:  4294967295,
			NumFiles:   100000,
			MaxFiles:   100000,
			ResResized: [4]uint16{128, 128, 512, 512},
		},
	}

	for _, h := range cases {
		got := decodeHeader(encodeHeader(h))
		if diff := cmp.Diff(h, got); diff != "" {
			t.Errorf("header round trip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestHeaderEncodeIsFixedSize(t *testing.T) {
	buf := encodeHeader(Header{DBName: "x"})
	if len(buf) != HeaderSize {
		t.Fatalf("encodeHeader produced %d bytes, want %d", len(buf), HeaderSize)
	}
}

func TestHeaderDBNameTruncatedSafely(t *testing.T) {
	// A name longer than the fixed field must not overflow into
	// neighboring fields and must still zero-terminate (spec §9: the
	// db_name truncation bug).
	long := ""
	for i := 0; i < maxDBNameLen*2; i++ {
		long += "x"
	}

	h := Header{DBName: long, DBVersion: 42}
	buf := encodeHeader(h)
	got := decodeHeader(buf)

	if len(got.DBName) >= maxDBNameLen {
		t.Fatalf("decoded DBName length %d, want < %d", len(got.DBName), maxDBNameLen)
	}

	if got.DBVersion != 42 {
		t.Fatalf("DBVersion corrupted by oversized DBName: got %d", got.DBVersion)
	}
}

func TestHeaderReservedFieldsAreZero(t *testing.T) {
	buf := encodeHeader(Header{DBName: "x", DBVersion: 1, NumFiles: 1, MaxFiles: 1})

	for i := headerOffReserved32; i < HeaderSize; i++ {
		if buf[i] != 0 {
			t.Fatalf("reserved byte %d is non-zero: %d", i, buf[i])
		}
	}
}

func TestSlotRoundTrip(t *testing.T) {
	cases := []Slot{
		{},
		{
			PictID: "vacation",
			SHA:    [32]byte{1, 2, 3, 4, 5},
			OrigW:  800,
			OrigH:  600,
			Size:   [3]uint32{512, 2048, 40000},
			Offset: [3]uint64{64208, 64720, 66768},
			Valid:  slotNonEmpty,
		},
		{
			PictID: "a",
			Valid:  slotEmpty,
		},
	}

	for _, s := range cases {
		got := decodeSlot(encodeSlot(s))
		if diff := cmp.Diff(s, got); diff != "" {
			t.Errorf("slot round trip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestSlotEncodeIsFixedSize(t *testing.T) {
	buf := encodeSlot(Slot{PictID: "x"})
	if len(buf) != SlotSize {
		t.Fatalf("encodeSlot produced %d bytes, want %d", len(buf), SlotSize)
	}
}

func TestSlotPictIDTruncatedSafely(t *testing.T) {
	long := ""
	for i := 0; i < maxPictIDLen*2; i++ {
		long += "y"
	}

	s := Slot{PictID: long, OrigW: 99}
	got := decodeSlot(encodeSlot(s))

	if len(got.PictID) >= maxPictIDLen {
		t.Fatalf("decoded PictID length %d, want < %d", len(got.PictID), maxPictIDLen)
	}

	if got.OrigW != 99 {
		t.Fatalf("OrigW corrupted by oversized PictID: got %d", got.OrigW)
	}
}

func TestSlotByteOffsetIsPacked(t *testing.T) {
	if got := slotByteOffset(0); got != int64(HeaderSize) {
		t.Fatalf("slotByteOffset(0) = %d, want %d", got, HeaderSize)
	}

	if got := slotByteOffset(3); got != int64(HeaderSize)+3*int64(SlotSize) {
		t.Fatalf("slotByteOffset(3) = %d, want %d", got, int64(HeaderSize)+3*int64(SlotSize))
	}
}

func TestDataRegionStart(t *testing.T) {
	got := dataRegionStart(10)
	want := int64(HeaderSize) + 10*int64(SlotSize)

	if got != want {
		t.Fatalf("dataRegionStart(10) = %d, want %d", got, want)
	}
}
