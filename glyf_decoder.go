package font

// glyfDecoder inverts the WOFF2 glyf/loca transform. Grounded on
// original_source/src/glyf_decoder/mod.rs's Woff2GlyfDecoder, reusing the
// teacher's overall per-glyph/loca-building Go control flow from
// reconstructGlyfLoca (woff2.go) but driven by the bit-exact coordinate LUT
// instead of the teacher's arithmetic range tests (see DESIGN.md).
type glyfDecoder struct {
	numGlyphs   uint16
	indexFormat uint16

	nContourStream    *bufReader
	nPointsStream     *bufReader
	flagStream        *bufReader
	glyphStream       *bufReader
	compositeStream   *bufReader
	bboxStream        *bufReader
	instructionStream *bufReader

	bboxBitmap    *bitmapReader
	overlapBitmap *bitmapReader // nil if option_flags bit 0 is clear
}

// TrueType simple-glyph point flag bits.
const (
	ptFlagOnCurve  = 0x01
	ptFlagXShort   = 0x02
	ptFlagYShort   = 0x04
	ptFlagXSame    = 0x10
	ptFlagYSame    = 0x20
	ptFlagOverlap  = 0x40
)

// Composite-glyph component flag word bits (OpenType spec).
const (
	compArgsAreWords     = 0x0001
	compHaveScale        = 0x0008
	compMoreComponents   = 0x0020
	compHaveXYScale      = 0x0040
	compHaveTwoByTwo     = 0x0080
	compHaveInstructions = 0x0100
)

// newGlyfDecoder parses the transformed-glyf header (36 bytes) and slices
// the seven substreams plus the bbox/overlap bitmaps out of b, per
// SPEC_FULL.md §4.6's field table.
func newGlyfDecoder(b []byte) (*glyfDecoder, error) {
	r := newBufReader(b)

	if _, err := r.readUint16(); err != nil { // reserved
		return nil, invalidErr("glyf: truncated header", err)
	}
	optionFlags, err := r.readUint16()
	if err != nil {
		return nil, invalidErr("glyf: truncated header", err)
	}
	numGlyphs, err := r.readUint16()
	if err != nil {
		return nil, invalidErr("glyf: truncated header", err)
	}
	indexFormat, err := r.readUint16()
	if err != nil {
		return nil, invalidErr("glyf: truncated header", err)
	}

	sizes := make([]uint32, 7)
	for i := range sizes {
		sizes[i], err = r.readUint32()
		if err != nil {
			return nil, invalidErr("glyf: truncated header", err)
		}
	}
	nContourSize, nPointsSize, flagSize := sizes[0], sizes[1], sizes[2]
	glyphSize, compositeSize, bboxTotalSize, instructionSize := sizes[3], sizes[4], sizes[5], sizes[6]

	bboxBitmapLen := bitmapBytesForCount(int(numGlyphs))
	if bboxTotalSize < uint32(bboxBitmapLen) {
		return nil, invalidf("glyf: bbox stream size smaller than bitmap")
	}
	bboxStreamSize := bboxTotalSize - uint32(bboxBitmapLen)

	d := &glyfDecoder{numGlyphs: numGlyphs, indexFormat: indexFormat}

	readSub := func(n uint32) ([]byte, error) {
		return r.readBytes(int(n))
	}

	nContourBytes, err := readSub(nContourSize)
	if err != nil {
		return nil, invalidErr("glyf: truncated nContour stream", err)
	}
	nPointsBytes, err := readSub(nPointsSize)
	if err != nil {
		return nil, invalidErr("glyf: truncated nPoints stream", err)
	}
	flagBytes, err := readSub(flagSize)
	if err != nil {
		return nil, invalidErr("glyf: truncated flag stream", err)
	}
	glyphBytes, err := readSub(glyphSize)
	if err != nil {
		return nil, invalidErr("glyf: truncated glyph stream", err)
	}
	compositeBytes, err := readSub(compositeSize)
	if err != nil {
		return nil, invalidErr("glyf: truncated composite stream", err)
	}
	bboxBitmapBytes, err := readSub(uint32(bboxBitmapLen))
	if err != nil {
		return nil, invalidErr("glyf: truncated bbox bitmap", err)
	}
	bboxBytes, err := readSub(bboxStreamSize)
	if err != nil {
		return nil, invalidErr("glyf: truncated bbox stream", err)
	}
	instructionBytes, err := readSub(instructionSize)
	if err != nil {
		return nil, invalidErr("glyf: truncated instruction stream", err)
	}

	d.nContourStream = newBufReader(nContourBytes)
	d.nPointsStream = newBufReader(nPointsBytes)
	d.flagStream = newBufReader(flagBytes)
	d.glyphStream = newBufReader(glyphBytes)
	d.compositeStream = newBufReader(compositeBytes)
	d.bboxStream = newBufReader(bboxBytes)
	d.instructionStream = newBufReader(instructionBytes)
	d.bboxBitmap = newBitmapReader(bboxBitmapBytes)

	if optionFlags&0x1 != 0 {
		overlapBytes, err := readSub(uint32(bboxBitmapLen))
		if err != nil {
			return nil, invalidErr("glyf: truncated overlap bitmap", err)
		}
		d.overlapBitmap = newBitmapReader(overlapBytes)
	}

	return d, nil
}

// decodeGlyfLoca runs the full per-glyph decode and returns the reconstructed
// glyf table bytes and loca table bytes.
func decodeGlyfLoca(transformed []byte) (glyf []byte, loca []byte, err error) {
	d, err := newGlyfDecoder(transformed)
	if err != nil {
		return nil, nil, err
	}
	return d.parseAllGlyphs()
}

func (d *glyfDecoder) parseAllGlyphs() ([]byte, []byte, error) {
	w := newBufWriter(4096)
	offsets := make([]uint32, int(d.numGlyphs)+1)

	for g := 0; g < int(d.numGlyphs); g++ {
		offsets[g] = uint32(w.len())
		if err := d.parseNextGlyph(w, g); err != nil {
			return nil, nil, err
		}
		w.padTo4()
	}
	offsets[d.numGlyphs] = uint32(w.len())

	if !d.hasReadAll() {
		return nil, nil, invalidf("glyf: extra data remaining in transformed substreams")
	}

	locaW := newBufWriter(4 * len(offsets))
	if d.indexFormat == 0 {
		for _, off := range offsets {
			if off%2 != 0 {
				return nil, nil, invalidf("glyf: odd offset with short loca format")
			}
			locaW.writeUint16(uint16(off / 2))
		}
	} else {
		for _, off := range offsets {
			locaW.writeUint32(off)
		}
	}

	return w.bytes(), locaW.bytes(), nil
}

// hasReadAll reports whether every one of the seven byte-cursor substreams
// has been fully consumed. The bbox/overlap bitmaps are excluded since they
// are bit-indexed, not cursor-advanced.
func (d *glyfDecoder) hasReadAll() bool {
	return d.nContourStream.eof() &&
		d.nPointsStream.eof() &&
		d.flagStream.eof() &&
		d.glyphStream.eof() &&
		d.compositeStream.eof() &&
		d.bboxStream.eof() &&
		d.instructionStream.eof()
}

func (d *glyfDecoder) parseNextGlyph(w *bufWriter, g int) error {
	numContours, err := d.nContourStream.readInt16()
	if err != nil {
		return invalidErr("glyf: truncated nContour stream", err)
	}
	switch {
	case numContours == 0:
		return nil
	case numContours > 0:
		return d.parseSimpleGlyph(w, g, numContours)
	default:
		return d.parseCompositeGlyph(w, g)
	}
}

func (d *glyfDecoder) parseSimpleGlyph(w *bufWriter, g int, numContours int16) error {
	endPts := make([]uint16, numContours)
	var runningTotal uint32
	for i := int16(0); i < numContours; i++ {
		n, err := d.nPointsStream.readUint255()
		if err != nil {
			return invalidErr("glyf: truncated nPoints stream", err)
		}
		runningTotal += uint32(n)
		if runningTotal > 0xFFFF {
			return invalidf("glyf: glyph %d has too many points", g)
		}
		endPts[i] = uint16(runningTotal) - 1
	}
	numPoints := int(runningTotal)

	overlap := d.overlapBitmap != nil && d.overlapBitmap.get(g)

	var x, y int16
	haveExtent := false
	var xMin, yMin, xMax, yMax int16

	flags := make([]byte, 0, numPoints)
	xBytes := make([]byte, 0, numPoints)
	yBytes := make([]byte, 0, numPoints)

	for i := 0; i < numPoints; i++ {
		flagByte, err := d.flagStream.readByte()
		if err != nil {
			return invalidErr("glyf: truncated flag stream", err)
		}
		onCurve := flagByte&0x80 == 0
		t := coordLUT[flagByte&0x7F]

		data, err := readBigEndianN(d.glyphStream, int(t.byteCount))
		if err != nil {
			return invalidErr("glyf: truncated glyph stream", err)
		}
		dx := t.dx(data)
		dy := t.dy(data)
		x += dx
		y += dy

		if !haveExtent {
			xMin, xMax, yMin, yMax = x, x, y, y
			haveExtent = true
		} else {
			if x < xMin {
				xMin = x
			}
			if xMax < x {
				xMax = x
			}
			if y < yMin {
				yMin = y
			}
			if yMax < y {
				yMax = y
			}
		}

		var flag byte
		if onCurve {
			flag |= ptFlagOnCurve
		}
		if overlap {
			flag |= ptFlagOverlap
		}

		switch {
		case dx == 0:
			flag |= ptFlagXSame
		case 0 < dx && dx <= 255:
			flag |= ptFlagXShort | ptFlagXSame
			xBytes = append(xBytes, byte(dx))
		case -255 <= dx && dx < 0:
			flag |= ptFlagXShort
			xBytes = append(xBytes, byte(-dx))
		default:
			xBytes = append(xBytes, byte(dx>>8), byte(dx))
		}

		switch {
		case dy == 0:
			flag |= ptFlagYSame
		case 0 < dy && dy <= 255:
			flag |= ptFlagYShort | ptFlagYSame
			yBytes = append(yBytes, byte(dy))
		case -255 <= dy && dy < 0:
			flag |= ptFlagYShort
			yBytes = append(yBytes, byte(-dy))
		default:
			yBytes = append(yBytes, byte(dy>>8), byte(dy))
		}

		flags = append(flags, flag)
	}

	instrLen, err := d.glyphStream.readUint255()
	if err != nil {
		return invalidErr("glyf: truncated glyph stream (instruction length)", err)
	}
	instructions, err := d.instructionStream.readBytes(int(instrLen))
	if err != nil {
		return invalidErr("glyf: truncated instruction stream", err)
	}

	if d.bboxBitmap.get(g) {
		xMin, err = d.bboxStream.readInt16()
		if err == nil {
			yMin, err = d.bboxStream.readInt16()
		}
		if err == nil {
			xMax, err = d.bboxStream.readInt16()
		}
		if err == nil {
			yMax, err = d.bboxStream.readInt16()
		}
		if err != nil {
			return invalidErr("glyf: truncated bbox stream", err)
		}
	}

	w.writeInt16(numContours)
	w.writeInt16(xMin)
	w.writeInt16(yMin)
	w.writeInt16(xMax)
	w.writeInt16(yMax)
	for _, e := range endPts {
		w.writeUint16(e)
	}
	w.writeUint16(instrLen)
	w.writeBytes(instructions)
	w.writeBytes(flags)
	w.writeBytes(xBytes)
	w.writeBytes(yBytes)
	return nil
}

func (d *glyfDecoder) parseCompositeGlyph(w *bufWriter, g int) error {
	if !d.bboxBitmap.get(g) {
		return invalidf("glyf: composite glyph %d missing bbox entry", g)
	}
	xMin, err := d.bboxStream.readInt16()
	if err != nil {
		return invalidErr("glyf: truncated bbox stream", err)
	}
	yMin, err := d.bboxStream.readInt16()
	if err != nil {
		return invalidErr("glyf: truncated bbox stream", err)
	}
	xMax, err := d.bboxStream.readInt16()
	if err != nil {
		return invalidErr("glyf: truncated bbox stream", err)
	}
	yMax, err := d.bboxStream.readInt16()
	if err != nil {
		return invalidErr("glyf: truncated bbox stream", err)
	}

	w.writeInt16(-1)
	w.writeInt16(xMin)
	w.writeInt16(yMin)
	w.writeInt16(xMax)
	w.writeInt16(yMax)

	haveInstructions := false
	for {
		flagWord, err := d.compositeStream.readUint16()
		if err != nil {
			return invalidErr("glyf: truncated composite stream", err)
		}
		w.writeUint16(flagWord)

		numBytes := 4
		if flagWord&compArgsAreWords != 0 {
			numBytes += 2
		}
		switch {
		case flagWord&compHaveScale != 0:
			numBytes += 2
		case flagWord&compHaveXYScale != 0:
			numBytes += 4
		case flagWord&compHaveTwoByTwo != 0:
			numBytes += 8
		}

		data, err := d.compositeStream.readBytes(numBytes)
		if err != nil {
			return invalidErr("glyf: truncated composite stream", err)
		}
		w.writeBytes(data)

		if flagWord&compHaveInstructions != 0 {
			haveInstructions = true
		}
		if flagWord&compMoreComponents == 0 {
			break
		}
	}

	if haveInstructions {
		instrLen, err := d.glyphStream.readUint255()
		if err != nil {
			return invalidErr("glyf: truncated glyph stream (instruction length)", err)
		}
		instructions, err := d.instructionStream.readBytes(int(instrLen))
		if err != nil {
			return invalidErr("glyf: truncated instruction stream", err)
		}
		w.writeUint16(instrLen)
		w.writeBytes(instructions)
	}

	return nil
}
