package font

import (
	"testing"

	"github.com/tdewolff/test"
)

func buildHeadTableBytes(unitsPerEm uint16, indexToLocFormat int16) []byte {
	w := newBufWriter(54)
	w.writeUint16(1) // majorVersion
	w.writeUint16(0) // minorVersion
	w.writeUint32(0x00010000) // fontRevision
	w.writeUint32(0)          // checkSumAdjustment
	w.writeUint32(0x5F0F3CF5) // magic
	w.writeUint16(0)          // flags
	w.writeUint16(unitsPerEm)
	w.writeUint32(0) // created (high)
	w.writeUint32(0) // created (low)
	w.writeUint32(0) // modified (high)
	w.writeUint32(0) // modified (low)
	w.writeInt16(-10)
	w.writeInt16(-20)
	w.writeInt16(100)
	w.writeInt16(200)
	w.writeUint16(0) // macStyle
	w.writeUint16(8) // lowestRecPPEM
	w.writeInt16(1)  // fontDirectionHint
	w.writeInt16(indexToLocFormat)
	w.writeUint16(0) // glyphDataFormat
	return w.bytes()
}

func TestParseHeadTable(t *testing.T) {
	b := buildHeadTableBytes(1000, 1)
	h, err := parseHeadTable(b)
	test.Error(t, err)
	test.T(t, h.UnitsPerEm, uint16(1000))
	test.T(t, h.IndexToLocFormat, int16(1))
	test.T(t, h.XMin, int16(-10))
	test.T(t, h.YMax, int16(200))
}

func TestParseHeadTableBadMagic(t *testing.T) {
	b := buildHeadTableBytes(1000, 0)
	b[12] = 0x00 // corrupt magic
	if _, err := parseHeadTable(b); err == nil {
		t.Fatal("expected error for bad magic number")
	}
}

func TestParseHeadTableWrongLength(t *testing.T) {
	if _, err := parseHeadTable(make([]byte, 10)); err == nil {
		t.Fatal("expected error for short head table")
	}
}

func buildMaxpBytesTrueType(numGlyphs uint16) []byte {
	w := newBufWriter(32)
	w.writeUint32(0x00010000)
	w.writeUint16(numGlyphs)
	w.writeBytes(make([]byte, 32-6))
	return w.bytes()
}

func TestParseMaxpTableTrueType(t *testing.T) {
	b := buildMaxpBytesTrueType(10)
	m, err := parseMaxpTable(b, true)
	test.Error(t, err)
	test.T(t, m.NumGlyphs, uint16(10))
}

func TestParseMaxpTableCFF(t *testing.T) {
	w := newBufWriter(6)
	w.writeUint32(0x00005000)
	w.writeUint16(5)
	m, err := parseMaxpTable(w.bytes(), false)
	test.Error(t, err)
	test.T(t, m.NumGlyphs, uint16(5))
}

func TestParseMaxpTableVersionMismatch(t *testing.T) {
	b := buildMaxpBytesTrueType(10)
	if _, err := parseMaxpTable(b, false); err == nil {
		t.Fatal("expected error for TrueType-versioned maxp with isTrueType=false")
	}
}

func buildHheaBytes(numberOfHMetrics uint16) []byte {
	w := newBufWriter(36)
	w.writeUint16(1)
	w.writeUint16(0)
	w.writeInt16(800)  // ascender
	w.writeInt16(-200) // descender
	w.writeInt16(0)    // lineGap
	w.writeUint16(600) // advanceWidthMax
	w.writeBytes(make([]byte, 2*11))
	w.writeUint16(numberOfHMetrics)
	return w.bytes()
}

func TestParseHheaTable(t *testing.T) {
	maxp := &MaxpTable{NumGlyphs: 5}
	h, err := parseHheaTable(buildHheaBytes(3), maxp)
	test.Error(t, err)
	test.T(t, h.Ascender, int16(800))
	test.T(t, h.NumberOfHMetrics, uint16(3))
}

func TestParseHheaTableExceedsNumGlyphs(t *testing.T) {
	maxp := &MaxpTable{NumGlyphs: 2}
	if _, err := parseHheaTable(buildHheaBytes(3), maxp); err == nil {
		t.Fatal("expected error for numberOfHMetrics exceeding numGlyphs")
	}
}

func TestParseHmtxTableAndAdvance(t *testing.T) {
	hhea := &HheaTable{NumberOfHMetrics: 2}
	maxp := &MaxpTable{NumGlyphs: 3}

	w := newBufWriter(10)
	w.writeUint16(500)
	w.writeInt16(10)
	w.writeUint16(600)
	w.writeInt16(20)
	w.writeInt16(5) // trailing lsb for glyph 2

	hmtx, err := parseHmtxTable(w.bytes(), hhea, maxp)
	test.Error(t, err)
	test.T(t, hmtx.Advance(0), uint16(500))
	test.T(t, hmtx.Advance(1), uint16(600))
	test.T(t, hmtx.Advance(2), uint16(600)) // carried forward
	test.T(t, hmtx.LeftSideBearings[2], int16(5))
}

func buildNameTableBytes(records []NameRecord) []byte {
	headerLen := 6 + 12*len(records)
	storage := newBufWriter(64)
	entries := newBufWriter(headerLen)
	entries.writeUint16(0) // format
	entries.writeUint16(uint16(len(records)))
	entries.writeUint16(uint16(headerLen)) // storageOffset: storage follows the records

	for _, r := range records {
		entries.writeUint16(uint16(r.Platform))
		entries.writeUint16(uint16(r.Encoding))
		entries.writeUint16(r.Language)
		entries.writeUint16(uint16(r.Name))
		entries.writeUint16(uint16(len(r.Value)))
		entries.writeUint16(uint16(storage.len()))
		storage.writeBytes(r.Value)
	}
	return append(entries.bytes(), storage.bytes()...)
}

func TestParseNameTableAndPreferredString(t *testing.T) {
	familyUTF16 := []byte{0x00, 'T', 0x00, 'e', 0x00, 's', 0x00, 't'}
	records := []NameRecord{
		{Platform: PlatformWindows, Encoding: 1, Language: 0x0409, Name: NameFamily, Value: familyUTF16},
	}
	b := buildNameTableBytes(records)

	nt, err := parseNameTable(b)
	test.Error(t, err)
	test.T(t, len(nt.Records), 1)

	s, ok := nt.PreferredString(NameFamily)
	if !ok {
		t.Fatal("expected a family name to be found")
	}
	test.T(t, s, "Test")

	if _, ok := nt.PreferredString(NameVersion); ok {
		t.Fatal("expected no version name record")
	}
}

func buildCmapFormat4Bytes(startCode, endCode []uint16, idDelta []int16) []byte {
	segCount := len(startCode)
	sub := newBufWriter(64)
	sub.writeUint16(4) // format
	length := uint16(14 + 8*segCount)
	sub.writeUint16(length)
	sub.writeUint16(0) // language
	sub.writeUint16(uint16(2 * segCount))
	sub.writeUint16(0) // searchRange
	sub.writeUint16(0) // entrySelector
	sub.writeUint16(0) // rangeShift
	for _, e := range endCode {
		sub.writeUint16(e)
	}
	sub.writeUint16(0) // reservedPad
	for _, s := range startCode {
		sub.writeUint16(s)
	}
	for _, d := range idDelta {
		sub.writeInt16(d)
	}
	for range startCode {
		sub.writeUint16(0) // idRangeOffset: all direct-delta segments
	}

	table := newBufWriter(64)
	table.writeUint16(0) // version
	table.writeUint16(1) // numTables
	table.writeUint16(3) // platformID (Windows)
	table.writeUint16(1) // encodingID
	table.writeUint32(12) // offset to subtable
	return append(table.bytes(), sub.bytes()...)
}

func TestParseCmapFormat4Lookup(t *testing.T) {
	b := buildCmapFormat4Bytes([]uint16{0x41, 0xFFFF}, []uint16{0x5A, 0xFFFF}, []int16{-64, 0})

	cm, err := parseCmapFormat4(b)
	test.Error(t, err)

	gid, ok := cm.Lookup('A') // 0x41 - 64 = 1
	if !ok {
		t.Fatal("expected 'A' to be mapped")
	}
	test.T(t, gid, uint16(1))

	if _, ok := cm.Lookup('a'); ok { // 0x61, past the [0x41,0x5A] segment's end but before 0xFFFF's start of 0xFFFF
		t.Fatal("expected lowercase 'a' to be unmapped")
	}
}

func TestParseCmapFormat4NoFormat4Subtable(t *testing.T) {
	table := newBufWriter(16)
	table.writeUint16(0)
	table.writeUint16(1)
	table.writeUint16(3)
	table.writeUint16(1)
	table.writeUint32(12)
	sub := newBufWriter(4)
	sub.writeUint16(6) // format 6, not 4
	sub.writeUint16(0)
	b := append(table.bytes(), sub.bytes()...)

	if _, err := parseCmapFormat4(b); err == nil {
		t.Fatal("expected unsupported-feature error")
	}
}
