package font

// knownTableTags is the 63-entry known-tag table. Index 63 (all-ones in the
// 6-bit tagIndex field) signals that a literal FourCC follows instead.
// Grounded on the teacher's woff2TableTags (woff2.go) and
// original_source/src/woff2/table_directory.rs's KNOWN_TABLE_TAGS — identical
// order and content in both.
var knownTableTags = []string{
	"cmap", "head", "hhea", "hmtx",
	"maxp", "name", "OS/2", "post",
	"cvt ", "fpgm", "glyf", "loca",
	"prep", "CFF ", "VORG", "EBDT",
	"EBLC", "gasp", "hdmx", "kern",
	"LTSH", "PCLT", "VDMX", "vhea",
	"vmtx", "BASE", "GDEF", "GPOS",
	"GSUB", "EBSC", "JSTF", "MATH",
	"CBDT", "CBLC", "COLR", "CPAL",
	"SVG ", "sbix", "acnt", "avar",
	"bdat", "bloc", "bsln", "cvar",
	"fdsc", "feat", "fmtx", "fvar",
	"gvar", "hsty", "just", "lcar",
	"mort", "morx", "opbd", "prop",
	"trak", "Zapf", "Silf", "Glat",
	"Gloc", "Feat", "Sill",
}

const (
	tagGlyf = "glyf"
	tagLoca = "loca"
	tagHead = "head"
	tagHmtx = "hmtx"
)

// woff2TableDirectoryEntry is one logical record of the variable-length
// WOFF2 table directory, after its varints have been resolved against the
// running decompressed-stream offset accumulator.
type woff2TableDirectoryEntry struct {
	Transformed bool
	Tag         string
	DestLength  uint32 // == orig_length
	SrcLength   uint32
	SrcOffset   uint32
}

// woff2TableDirectory is the fully parsed table directory: one entry per
// table, in the file's original (insertion) order.
type woff2TableDirectory struct {
	Entries            []woff2TableDirectoryEntry
	UncompressedLength uint32
}

// parseWoff2TableDirectory reads numTables entries, grounded on
// original_source/src/woff2/table_directory.rs's Woff2TableDirectory::from_buf
// and the teacher's directory-parsing loop in woff2.go's ParseWOFF2.
func parseWoff2TableDirectory(r *bufReader, numTables uint16) (*woff2TableDirectory, error) {
	dir := &woff2TableDirectory{Entries: make([]woff2TableDirectoryEntry, 0, numTables)}
	var runningOffset uint32
	for i := uint16(0); i < numTables; i++ {
		flags, err := r.readByte()
		if err != nil {
			return nil, invalidErr("table directory: truncated", err)
		}
		transformVersion := (flags >> 6) & 0b11
		tagIndex := flags & 0b00111111

		var tag string
		if tagIndex == 63 {
			tag, err = r.readFourCC()
			if err != nil {
				return nil, invalidErr("table directory: truncated tag", err)
			}
		} else if int(tagIndex) < len(knownTableTags) {
			tag = knownTableTags[tagIndex]
		} else {
			return nil, invalidf("table directory: invalid known-tag index %d", tagIndex)
		}

		origLength, err := r.readBase128()
		if err != nil {
			return nil, invalidErr(tag+": invalid orig_length", err)
		}

		var nullTransform bool
		if tag == tagGlyf || tag == tagLoca {
			nullTransform = transformVersion == 0b11
		} else {
			nullTransform = transformVersion == 0b00
		}

		var srcLength uint32
		if nullTransform {
			srcLength = origLength
		} else {
			srcLength, err = r.readBase128()
			if err != nil {
				return nil, invalidErr(tag+": invalid transform_length", err)
			}
		}

		entry := woff2TableDirectoryEntry{
			Transformed: !nullTransform,
			Tag:         tag,
			DestLength:  origLength,
			SrcLength:   srcLength,
			SrcOffset:   runningOffset,
		}

		newOffset := runningOffset + srcLength
		if newOffset < runningOffset {
			return nil, invalidf("%s: uncompressed length overflows", tag)
		}
		runningOffset = newOffset

		dir.Entries = append(dir.Entries, entry)
	}
	dir.UncompressedLength = runningOffset
	return dir, nil
}

// find returns the index of the first entry with the given tag, or -1.
func (d *woff2TableDirectory) find(tag string) int {
	for i := range d.Entries {
		if d.Entries[i].Tag == tag {
			return i
		}
	}
	return -1
}
