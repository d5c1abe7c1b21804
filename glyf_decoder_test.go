package font

import (
	"testing"

	"github.com/tdewolff/test"
)

// buildTransformedGlyf assembles a transformed-glyf byte blob from its seven
// logical substreams plus the bbox/overlap bitmaps, mirroring the header
// SPEC_FULL.md §4.6 and newGlyfDecoder describe.
func buildTransformedGlyf(numGlyphs, indexFormat uint16, overlapBitmap []byte, nContour, nPoints, flag, glyph, composite, bboxBitmap, bboxStream, instruction []byte) []byte {
	optionFlags := uint16(0)
	if overlapBitmap != nil {
		optionFlags = 1
	}

	w := newBufWriter(128)
	w.writeUint16(0) // reserved
	w.writeUint16(optionFlags)
	w.writeUint16(numGlyphs)
	w.writeUint16(indexFormat)
	w.writeUint32(uint32(len(nContour)))
	w.writeUint32(uint32(len(nPoints)))
	w.writeUint32(uint32(len(flag)))
	w.writeUint32(uint32(len(glyph)))
	w.writeUint32(uint32(len(composite)))
	w.writeUint32(uint32(len(bboxBitmap) + len(bboxStream)))
	w.writeUint32(uint32(len(instruction)))
	w.writeBytes(nContour)
	w.writeBytes(nPoints)
	w.writeBytes(flag)
	w.writeBytes(glyph)
	w.writeBytes(composite)
	w.writeBytes(bboxBitmap)
	w.writeBytes(bboxStream)
	w.writeBytes(instruction)
	if overlapBitmap != nil {
		w.writeBytes(overlapBitmap)
	}
	return w.bytes()
}

func TestDecodeGlyfLocaEmptyAndSimpleGlyph(t *testing.T) {
	nContour := []byte{0x00, 0x00, 0x00, 0x01} // glyph0: 0 contours, glyph1: 1 contour
	nPoints := []byte{0x02}                    // glyph1's contour has 2 points (255UInt16)
	flag := []byte{23, 20}                     // point0 on-curve idx23 (dx=1,dy=1); point1 idx20 (dx=-1,dy=-1)
	glyph := []byte{0x00, 0x00, 0x00}           // two 1-byte coordinate words, then instrLen=0
	bboxBitmap := []byte{0x00, 0x00, 0x00, 0x00}

	b := buildTransformedGlyf(2, 0, nil, nContour, nPoints, flag, glyph, nil, bboxBitmap, nil, nil)

	glyf, loca, err := decodeGlyfLoca(b)
	test.Error(t, err)

	test.T(t, len(glyf), 20)

	r := newBufReader(loca)
	off0, err := r.readUint16()
	test.Error(t, err)
	off1, err := r.readUint16()
	test.Error(t, err)
	off2, err := r.readUint16()
	test.Error(t, err)
	test.T(t, off0, uint16(0))
	test.T(t, off1, uint16(0))
	test.T(t, off2, uint16(10)) // 20 bytes / 2 (short loca format)

	gr := newBufReader(glyf)
	numContours, err := gr.readInt16()
	test.Error(t, err)
	test.T(t, numContours, int16(1))
	xMin, _ := gr.readInt16()
	yMin, _ := gr.readInt16()
	xMax, _ := gr.readInt16()
	yMax, _ := gr.readInt16()
	test.T(t, xMin, int16(0))
	test.T(t, yMin, int16(0))
	test.T(t, xMax, int16(1))
	test.T(t, yMax, int16(1))
}

func TestDecodeGlyfLocaLongFormat(t *testing.T) {
	nContour := []byte{0x00, 0x00}
	bboxBitmap := []byte{0x00, 0x00, 0x00, 0x00}
	b := buildTransformedGlyf(1, 1, nil, nContour, nil, nil, nil, nil, bboxBitmap, nil, nil)

	glyf, loca, err := decodeGlyfLoca(b)
	test.Error(t, err)
	test.T(t, len(glyf), 0)
	test.T(t, len(loca), 8) // two uint32 offsets
}

func TestDecodeGlyfLocaCompositeGlyph(t *testing.T) {
	nContour := []byte{0xFF, 0xFF} // -1: composite
	bboxBitmap := []byte{0x80, 0x00, 0x00, 0x00} // bit 0 set: bbox present for glyph 0

	bboxW := newBufWriter(8)
	bboxW.writeInt16(-10) // xMin
	bboxW.writeInt16(-20) // yMin
	bboxW.writeInt16(10)  // xMax
	bboxW.writeInt16(20)  // yMax

	// One component: flagWord without ARGS_ARE_WORDS/scale bits (4 bytes of
	// component data), MORE_COMPONENTS clear.
	compositeW := newBufWriter(8)
	flagWord := uint16(0) // no MORE_COMPONENTS, no WE_HAVE_INSTRUCTIONS
	compositeW.writeUint16(flagWord)
	compositeW.writeBytes([]byte{0x00, 0x01, 0x00, 0x00}) // glyphIndex + args (arbitrary, 4 bytes)

	b := buildTransformedGlyf(1, 0, nil, nContour, nil, nil, nil, compositeW.bytes(), bboxBitmap, bboxW.bytes(), nil)

	glyf, _, err := decodeGlyfLoca(b)
	test.Error(t, err)

	gr := newBufReader(glyf)
	numContours, err := gr.readInt16()
	test.Error(t, err)
	test.T(t, numContours, int16(-1))
	xMin, err := gr.readInt16()
	test.Error(t, err)
	test.T(t, xMin, int16(-10))
}

func TestDecodeGlyfLocaCompositeMissingBboxErrors(t *testing.T) {
	nContour := []byte{0xFF, 0xFF}
	bboxBitmap := []byte{0x00, 0x00, 0x00, 0x00} // bit 0 clear: no bbox for composite glyph 0
	compositeW := newBufWriter(8)
	compositeW.writeUint16(0)
	compositeW.writeBytes([]byte{0x00, 0x01, 0x00, 0x00})

	b := buildTransformedGlyf(1, 0, nil, nContour, nil, nil, nil, compositeW.bytes(), bboxBitmap, nil, nil)
	if _, _, err := decodeGlyfLoca(b); err == nil {
		t.Fatal("expected error for composite glyph missing mandatory bbox")
	}
}

func TestDecodeGlyfLocaExtraDataRejected(t *testing.T) {
	nContour := []byte{0x00, 0x00, 0xAA} // one extra byte beyond what numGlyphs=1 needs
	bboxBitmap := []byte{0x00, 0x00, 0x00, 0x00}
	b := buildTransformedGlyf(1, 0, nil, nContour, nil, nil, nil, nil, bboxBitmap, nil, nil)
	if _, _, err := decodeGlyfLoca(b); err == nil {
		t.Fatal("expected error for unconsumed trailing substream bytes")
	}
}

func TestDecodeGlyfLocaTruncatedHeaderRejected(t *testing.T) {
	if _, _, err := decodeGlyfLoca([]byte{0x00, 0x01}); err == nil {
		t.Fatal("expected error for truncated transform header")
	}
}

func TestDecodeGlyfLocaOverlapBitmap(t *testing.T) {
	nContour := []byte{0x00, 0x00, 0x00, 0x01}
	nPoints := []byte{0x01}
	flag := []byte{23}
	glyph := []byte{0x00, 0x00}
	bboxBitmap := []byte{0x00, 0x00, 0x00, 0x00}
	overlap := []byte{0x40, 0x00, 0x00, 0x00} // bit 1 set: glyph 1's points overlap

	b := buildTransformedGlyf(2, 0, overlap, nContour, nPoints, flag, glyph, nil, bboxBitmap, nil, nil)
	glyf, _, err := decodeGlyfLoca(b)
	test.Error(t, err)

	gr := newBufReader(glyf)
	numContours, err := gr.readInt16()
	test.Error(t, err)
	test.T(t, numContours, int16(1))
}
