package font

import (
	"testing"

	"github.com/tdewolff/test"
)

func buildMinimalSfnt(t *testing.T, flavor string, tag string, data []byte) []byte {
	t.Helper()
	records := []sfntTableRecord{{Tag: tag, Checksum: tableChecksum(data), Offset: uint32(calculateTableDirectorySize(1)), Length: uint32(len(data))}}
	w := newBufWriter(64)
	writeSfntTableDirectory(w, flavor, records)
	return append(w.bytes(), data...)
}

func TestExtractTablesSingleFont(t *testing.T) {
	data := []byte{1, 2, 3, 4}
	b := buildMinimalSfnt(t, flavorTrueType, "glyf", data)

	tables, flavor, err := ExtractTables(b, 0)
	test.Error(t, err)
	test.T(t, flavor, flavorTrueType)
	test.T(t, len(tables["glyf"]), 4)
}

func TestExtractTablesTruncated(t *testing.T) {
	if _, _, err := ExtractTables([]byte{0x00, 0x01}, 0); err == nil {
		t.Fatal("expected error for truncated sfnt")
	}
}

func TestExtractTablesCollectionIndexOutOfRange(t *testing.T) {
	w := newBufWriter(16)
	w.writeFourCC(flavorCollection)
	w.writeUint32(0x00010000)
	w.writeUint32(1) // numFonts
	w.writeUint32(12)
	if _, _, err := ExtractTables(w.bytes(), 5); err == nil {
		t.Fatal("expected out-of-range collection index error")
	}
}

func TestExtractTablesTableOutOfBounds(t *testing.T) {
	records := []sfntTableRecord{{Tag: "glyf", Offset: 1000, Length: 4}}
	w := newBufWriter(32)
	writeSfntTableDirectory(w, flavorTrueType, records)
	if _, _, err := ExtractTables(w.bytes(), 0); err == nil {
		t.Fatal("expected out-of-bounds table record error")
	}
}
