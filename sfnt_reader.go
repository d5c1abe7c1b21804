package font

// ExtractTables splits an already-assembled SFNT (or, for a WOFF2
// collection's output, TTC) byte blob back into its tag->bytes table map,
// for consumption by ParseInfo. For a TTC, collectionIndex selects which
// font's table directory to read; it is ignored for a plain SFNT file.
// Grounded on the teacher's directory-reading loop in sfnt.go's ParseSFNT
// (the read side of the same table directory format writeSfntTableDirectory
// produces), generalized to also walk a collection header.
func ExtractTables(b []byte, collectionIndex int) (tables map[string][]byte, flavor string, err error) {
	r := newBufReader(b)
	tag, err := r.readFourCC()
	if err != nil {
		return nil, "", invalidErr("sfnt: truncated", err)
	}

	directoryOffset := 0
	if tag == flavorCollection {
		_, err := r.readUint32() // ttc version
		if err != nil {
			return nil, "", invalidErr("ttc: truncated header", err)
		}
		numFonts, err := r.readUint32()
		if err != nil {
			return nil, "", invalidErr("ttc: truncated header", err)
		}
		if collectionIndex < 0 || uint32(collectionIndex) >= numFonts {
			return nil, "", invalidf("ttc: collection index %d out of range (numFonts=%d)", collectionIndex, numFonts)
		}
		offsets := make([]uint32, numFonts)
		for i := range offsets {
			offsets[i], err = r.readUint32()
			if err != nil {
				return nil, "", invalidErr("ttc: truncated font offset table", err)
			}
		}
		directoryOffset = int(offsets[collectionIndex])
		if directoryOffset < 0 || len(b) < directoryOffset {
			return nil, "", invalidf("ttc: font offset out of range")
		}
	}

	dr := newBufReader(b[directoryOffset:])
	sfntFlavor, err := dr.readFourCC()
	if err != nil {
		return nil, "", invalidErr("sfnt: truncated table directory", err)
	}
	numTables, err := dr.readUint16()
	if err != nil {
		return nil, "", invalidErr("sfnt: truncated table directory", err)
	}
	if _, err := dr.readUint16(); err != nil { // searchRange
		return nil, "", invalidErr("sfnt: truncated table directory", err)
	}
	if _, err := dr.readUint16(); err != nil { // entrySelector
		return nil, "", invalidErr("sfnt: truncated table directory", err)
	}
	if _, err := dr.readUint16(); err != nil { // rangeShift
		return nil, "", invalidErr("sfnt: truncated table directory", err)
	}

	tables = make(map[string][]byte, numTables)
	for i := uint16(0); i < numTables; i++ {
		recTag, err := dr.readFourCC()
		if err != nil {
			return nil, "", invalidErr("sfnt: truncated table record", err)
		}
		if _, err := dr.readUint32(); err != nil { // checksum
			return nil, "", invalidErr("sfnt: truncated table record", err)
		}
		offset, err := dr.readUint32()
		if err != nil {
			return nil, "", invalidErr("sfnt: truncated table record", err)
		}
		length, err := dr.readUint32()
		if err != nil {
			return nil, "", invalidErr("sfnt: truncated table record", err)
		}
		if uint64(offset)+uint64(length) > uint64(len(b)) {
			return nil, "", invalidf("%s: table record out of bounds", recTag)
		}
		tables[recTag] = b[offset : offset+length]
	}

	return tables, sfntFlavor, nil
}
