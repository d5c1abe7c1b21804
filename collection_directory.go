package font

// Collection header version magic numbers. A WOFF2 collection's output is
// always downgraded to v1, since v1 has no DSIG fields to invalidate; see
// DESIGN.md's "Collection v2 DSIG" decision.
const (
	collectionHeaderVersionV1 uint32 = 0x00010000
	collectionHeaderVersionV2 uint32 = 0x00020000
)

// collectionFontEntry is one font within a WOFF2 collection: its SFNT
// flavor and the indices (into the shared Woff2TableDirectory) of the
// tables it uses.
type collectionFontEntry struct {
	Flavor       string
	TableIndices []uint16
}

// collectionHeader is the WOFF2-collection-specific directory that follows
// the Woff2TableDirectory when the file's flavor is "ttcf". No teacher
// equivalent exists (woff2.go rejects ttcf outright); grounded on
// original_source/src/woff2/collection_directory.rs's CollectionHeader.
type collectionHeader struct {
	Version uint32
	Fonts   []collectionFontEntry
}

// parseCollectionHeader reads the collection directory. totalNumTables
// bounds the table_idx values against the shared Woff2TableDirectory's
// entry count.
func parseCollectionHeader(r *bufReader, totalNumTables uint16) (*collectionHeader, error) {
	version, err := r.readUint32()
	if err != nil {
		return nil, invalidErr("collection header: truncated version", err)
	}
	if version != collectionHeaderVersionV1 && version != collectionHeaderVersionV2 {
		return nil, invalidf("collection header: invalid version 0x%08x", version)
	}

	numFonts, err := r.readUint255()
	if err != nil {
		return nil, invalidErr("collection header: truncated numFonts", err)
	}

	fonts := make([]collectionFontEntry, 0, numFonts)
	for i := uint16(0); i < numFonts; i++ {
		numTables, err := r.readUint255()
		if err != nil {
			return nil, invalidErr("collection header: truncated numTables", err)
		}
		if numTables == 0 {
			return nil, invalidf("collection header: font %d has no tables", i)
		}
		flavor, err := r.readFourCC()
		if err != nil {
			return nil, invalidErr("collection header: truncated flavor", err)
		}
		indices := make([]uint16, numTables)
		for j := uint16(0); j < numTables; j++ {
			idx, err := r.readUint255()
			if err != nil {
				return nil, invalidErr("collection header: truncated table index", err)
			}
			if idx >= totalNumTables {
				return nil, invalidf("collection header: table index %d out of range (num_tables=%d)", idx, totalNumTables)
			}
			indices[j] = idx
		}
		fonts = append(fonts, collectionFontEntry{Flavor: flavor, TableIndices: indices})
	}

	return &collectionHeader{Version: version, Fonts: fonts}, nil
}

// calculateHeaderSize returns the total byte size of the OpenType Font
// Collection header, including every per-font table directory.
func (h *collectionHeader) calculateHeaderSize() int {
	// 12: 'ttcf' tag + version + numFonts.
	size := 12
	for _, f := range h.Fonts {
		// 4: this font's table-directory offset.
		size += 4 + calculateTableDirectorySize(len(f.TableIndices))
	}
	return size
}
