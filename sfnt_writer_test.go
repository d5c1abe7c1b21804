package font

import (
	"testing"

	"github.com/tdewolff/test"
)

func TestCalculateTableDirectorySize(t *testing.T) {
	test.T(t, calculateTableDirectorySize(0), 12)
	test.T(t, calculateTableDirectorySize(3), 12+16*3)
}

func TestSearchHints(t *testing.T) {
	// numTables=4: entrySelector=2 (2^2=4), searchRange=4*16=64, rangeShift=4*16-64=0
	sr, es, rs := searchHints(4)
	test.T(t, es, uint16(2))
	test.T(t, sr, uint16(64))
	test.T(t, rs, uint16(0))

	// numTables=5: entrySelector=2 (largest power of two <=5 is 4), searchRange=64, rangeShift=5*16-64=16
	sr, es, rs = searchHints(5)
	test.T(t, es, uint16(2))
	test.T(t, sr, uint16(64))
	test.T(t, rs, uint16(16))
}

func TestWriteSfntTableDirectorySortsByTag(t *testing.T) {
	records := []sfntTableRecord{
		{Tag: "glyf", Checksum: 1, Offset: 100, Length: 10},
		{Tag: "head", Checksum: 2, Offset: 50, Length: 54},
	}
	w := newBufWriter(64)
	writeSfntTableDirectory(w, flavorTrueType, records)

	r := newBufReader(w.bytes())
	flavor, err := r.readFourCC()
	test.Error(t, err)
	test.T(t, flavor, flavorTrueType)
	numTables, err := r.readUint16()
	test.Error(t, err)
	test.T(t, numTables, uint16(2))
	if _, err := r.readUint16(); err != nil { // searchRange
		t.Fatal(err)
	}
	if _, err := r.readUint16(); err != nil { // entrySelector
		t.Fatal(err)
	}
	if _, err := r.readUint16(); err != nil { // rangeShift
		t.Fatal(err)
	}

	firstTag, err := r.readFourCC()
	test.Error(t, err)
	test.T(t, firstTag, "glyf") // 'glyf' < 'head' byte-lexically
}

func TestFindTableRecord(t *testing.T) {
	records := []sfntTableRecord{{Tag: "head"}, {Tag: "glyf"}}
	rec := findTableRecord(records, "glyf")
	if rec == nil {
		t.Fatal("expected to find glyf record")
	}
	if findTableRecord(records, "loca") != nil {
		t.Fatal("expected nil for missing tag")
	}
}
