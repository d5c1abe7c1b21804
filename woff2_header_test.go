package font

import (
	"testing"

	"github.com/tdewolff/test"
)

func makeWoff2Header(numTables uint16, totalCompressedSize, length uint32) []byte {
	w := newBufWriter(48)
	w.writeFourCC(woff2Signature)
	w.writeFourCC(flavorTrueType)
	w.writeUint32(length)
	w.writeUint16(numTables)
	w.writeUint16(0) // reserved
	w.writeUint32(0) // totalSfntSize
	w.writeUint32(totalCompressedSize)
	w.writeUint16(1) // majorVersion
	w.writeUint16(0) // minorVersion
	w.writeUint32(0) // metaOffset
	w.writeUint32(0) // metaLength
	w.writeUint32(0) // metaOrigLength
	w.writeUint32(0) // privOffset
	w.writeUint32(0) // privLength
	return w.bytes()
}

func TestIsWOFF2(t *testing.T) {
	test.T(t, IsWOFF2([]byte("wOF2....")), true)
	test.T(t, IsWOFF2([]byte("wOFF....")), false)
	test.T(t, IsWOFF2([]byte("wO")), false)
}

func TestParseWoff2Header(t *testing.T) {
	b := makeWoff2Header(3, 100, 48+100)
	r := newBufReader(b)
	h, err := parseWoff2Header(r)
	test.Error(t, err)
	test.Error(t, h.validate())
	test.T(t, h.NumTables, uint16(3))
	test.T(t, h.TotalCompressedSize, uint32(100))
	test.T(t, h.Flavor, flavorTrueType)
}

func TestParseWoff2HeaderBadSignature(t *testing.T) {
	b := makeWoff2Header(1, 10, 58)
	copy(b[:4], "xxxx")
	r := newBufReader(b)
	h, err := parseWoff2Header(r)
	test.Error(t, err)
	if err := h.validate(); err == nil {
		t.Fatal("expected signature validation error")
	}
}

func TestParseWoff2HeaderTruncated(t *testing.T) {
	r := newBufReader(make([]byte, 10))
	if _, err := parseWoff2Header(r); err == nil {
		t.Fatal("expected truncation error")
	}
}

func TestWoff2HeaderMetaBoundsRejected(t *testing.T) {
	w := newBufReader(makeWoff2Header(0, 0, 48))
	h, err := parseWoff2Header(w)
	test.Error(t, err)
	h.MetaLength = 10
	h.MetaOffset = 1 << 31
	if err := h.validate(); err == nil {
		t.Fatal("expected metadata bounds error")
	}
}
