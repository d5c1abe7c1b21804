package font

import (
	"testing"

	"github.com/tdewolff/test"
)

func writeDirEntryKnown(w *bufWriter, transformVersion byte, tagIndex byte, origLength uint32, transformLength *uint32) {
	w.writeByte((transformVersion << 6) | tagIndex)
	w.writeBase128(origLength)
	if transformLength != nil {
		w.writeBase128(*transformLength)
	}
}

func tagIndexOf(tag string) byte {
	for i, t := range knownTableTags {
		if t == tag {
			return byte(i)
		}
	}
	panic("unknown tag: " + tag)
}

func TestTableDirectoryGlyfNullTransformIsVersion3(t *testing.T) {
	w := newBufWriter(16)
	writeDirEntryKnown(w, 0b11, tagIndexOf("glyf"), 100, nil)
	r := newBufReader(w.bytes())
	dir, err := parseWoff2TableDirectory(r, 1)
	test.Error(t, err)
	test.T(t, len(dir.Entries), 1)
	test.T(t, dir.Entries[0].Tag, "glyf")
	test.T(t, dir.Entries[0].Transformed, false)
	test.T(t, dir.Entries[0].SrcLength, uint32(100))
}

func TestTableDirectoryGlyfTransformedIsVersion0(t *testing.T) {
	transformLen := uint32(50)
	w := newBufWriter(16)
	writeDirEntryKnown(w, 0b00, tagIndexOf("glyf"), 100, &transformLen)
	r := newBufReader(w.bytes())
	dir, err := parseWoff2TableDirectory(r, 1)
	test.Error(t, err)
	test.T(t, dir.Entries[0].Transformed, true)
	test.T(t, dir.Entries[0].SrcLength, uint32(50))
	test.T(t, dir.Entries[0].DestLength, uint32(100))
}

func TestTableDirectoryOtherTableNullTransformIsVersion0(t *testing.T) {
	w := newBufWriter(16)
	writeDirEntryKnown(w, 0b00, tagIndexOf("head"), 54, nil)
	r := newBufReader(w.bytes())
	dir, err := parseWoff2TableDirectory(r, 1)
	test.Error(t, err)
	test.T(t, dir.Entries[0].Transformed, false)
	test.T(t, dir.Entries[0].SrcLength, uint32(54))
}

func TestTableDirectoryOtherTableTransformedIsNonzeroVersion(t *testing.T) {
	transformLen := uint32(40)
	w := newBufWriter(16)
	writeDirEntryKnown(w, 0b01, tagIndexOf("head"), 54, &transformLen)
	r := newBufReader(w.bytes())
	dir, err := parseWoff2TableDirectory(r, 1)
	test.Error(t, err)
	test.T(t, dir.Entries[0].Transformed, true)
	test.T(t, dir.Entries[0].SrcLength, uint32(40))
}

func TestTableDirectoryLiteralTag(t *testing.T) {
	w := newBufWriter(16)
	w.writeByte((0b00 << 6) | 63)
	w.writeFourCC("Zzzz")
	w.writeBase128(10)
	r := newBufReader(w.bytes())
	dir, err := parseWoff2TableDirectory(r, 1)
	test.Error(t, err)
	test.T(t, dir.Entries[0].Tag, "Zzzz")
}

func TestTableDirectoryRunningOffsets(t *testing.T) {
	w := newBufWriter(32)
	writeDirEntryKnown(w, 0b00, tagIndexOf("head"), 54, nil)
	writeDirEntryKnown(w, 0b00, tagIndexOf("hhea"), 36, nil)
	r := newBufReader(w.bytes())
	dir, err := parseWoff2TableDirectory(r, 2)
	test.Error(t, err)
	test.T(t, dir.Entries[0].SrcOffset, uint32(0))
	test.T(t, dir.Entries[1].SrcOffset, uint32(54))
	test.T(t, dir.UncompressedLength, uint32(90))
}

func TestTableDirectoryTagIndex62IsValid(t *testing.T) {
	w := newBufWriter(4)
	w.writeByte(62) // valid index (< 63), but chosen to exercise the boundary
	w.writeBase128(1)
	r := newBufReader(w.bytes())
	if _, err := parseWoff2TableDirectory(r, 1); err != nil {
		t.Fatalf("tagIndex 62 should be valid: %v", err)
	}
}

func TestWoff2TableDirectoryFind(t *testing.T) {
	w := newBufWriter(16)
	writeDirEntryKnown(w, 0b00, tagIndexOf("head"), 54, nil)
	r := newBufReader(w.bytes())
	dir, err := parseWoff2TableDirectory(r, 1)
	test.Error(t, err)
	test.T(t, dir.find("head"), 0)
	test.T(t, dir.find("glyf"), -1)
}
