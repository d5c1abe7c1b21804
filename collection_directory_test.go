package font

import (
	"testing"

	"github.com/tdewolff/test"
)

func TestParseCollectionHeader(t *testing.T) {
	w := newBufWriter(32)
	w.writeUint32(collectionHeaderVersionV1)
	w.writeUint255(2) // numFonts
	// font 0: 2 tables, flavor TrueType
	w.writeUint255(2)
	w.writeFourCC(flavorTrueType)
	w.writeUint255(0)
	w.writeUint255(1)
	// font 1: 1 table (shares table 0)
	w.writeUint255(1)
	w.writeFourCC(flavorTrueType)
	w.writeUint255(0)

	r := newBufReader(w.bytes())
	h, err := parseCollectionHeader(r, 2)
	test.Error(t, err)
	test.T(t, len(h.Fonts), 2)
	test.T(t, len(h.Fonts[0].TableIndices), 2)
	test.T(t, h.Fonts[0].TableIndices[0], uint16(0))
	test.T(t, h.Fonts[1].TableIndices[0], uint16(0))
}

func TestParseCollectionHeaderBadVersion(t *testing.T) {
	w := newBufWriter(8)
	w.writeUint32(0xDEADBEEF)
	r := newBufReader(w.bytes())
	if _, err := parseCollectionHeader(r, 1); err == nil {
		t.Fatal("expected error for bad collection version")
	}
}

func TestParseCollectionHeaderTableIndexOutOfRange(t *testing.T) {
	w := newBufWriter(16)
	w.writeUint32(collectionHeaderVersionV1)
	w.writeUint255(1)
	w.writeUint255(1)
	w.writeFourCC(flavorTrueType)
	w.writeUint255(5) // out of range: totalNumTables is 1
	r := newBufReader(w.bytes())
	if _, err := parseCollectionHeader(r, 1); err == nil {
		t.Fatal("expected out-of-range table index error")
	}
}

func TestCalculateHeaderSize(t *testing.T) {
	h := &collectionHeader{Fonts: []collectionFontEntry{
		{TableIndices: []uint16{0, 1, 2}},
		{TableIndices: []uint16{0}},
	}}
	// 12 (ttcf+version+numFonts) + 2*4 (per-font directory offsets)
	// + (12+16*3) + (12+16*1)
	want := 12 + 2*4 + (12 + 16*3) + (12 + 16*1)
	test.T(t, h.calculateHeaderSize(), want)
}
