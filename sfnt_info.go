package font

import (
	"math"
	"time"

	"github.com/tdewolff/parse/v2"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Info is a trimmed, read-only view over a decoded SFNT file's most commonly
// inspected tables: head, hhea, hmtx, maxp, name, and cmap format 4. It does
// not reach into glyph outlines, hinting programs, or any table CLI tooling
// has no use for. Grounded on the teacher's SFNT struct and its parseHead/
// parseHhea/parseHmtx/parseMaxp/parseName methods (sfnt.go), and on its
// cmapFormat4 (sfnt_cmap.go), adapted from eager full-font parsing into a
// standalone inspector over an already-decoded table map.
type Info struct {
	Flavor string
	Tables map[string][]byte

	Head *HeadTable
	Hhea *HheaTable
	Maxp *MaxpTable
	Hmtx *HmtxTable
	Name *NameTable
	Cmap *CmapFormat4
}

// ParseInfo builds an Info from the SFNT table set produced by
// ConvertWOFF2ToTTF (or any other SFNT byte source split into a tag->bytes
// map by the caller). head, maxp, hhea and hmtx are required: a missing or
// malformed one fails the whole parse. name and cmap are optional and are
// left nil when absent; when present, a name or cmap table that fails to
// parse (including a cmap with no format-4 subtable) fails the parse too.
func ParseInfo(flavor string, tables map[string][]byte) (*Info, error) {
	info := &Info{Flavor: flavor, Tables: tables}

	var err error
	if info.Head, err = parseHeadTable(tables["head"]); err != nil {
		return nil, err
	}
	if info.Maxp, err = parseMaxpTable(tables["maxp"], flavor == flavorTrueType); err != nil {
		return nil, err
	}
	if info.Hhea, err = parseHheaTable(tables["hhea"], info.Maxp); err != nil {
		return nil, err
	}
	if info.Hmtx, err = parseHmtxTable(tables["hmtx"], info.Hhea, info.Maxp); err != nil {
		return nil, err
	}
	if name, ok := tables["name"]; ok {
		if info.Name, err = parseNameTable(name); err != nil {
			return nil, err
		}
	}
	if cmap, ok := tables["cmap"]; ok {
		if info.Cmap, err = parseCmapFormat4(cmap); err != nil {
			return nil, err
		}
	}
	return info, nil
}

// HeadTable is font header (OpenType "head").
type HeadTable struct {
	FontRevision           uint32
	UnitsPerEm             uint16
	Created, Modified      time.Time
	XMin, YMin, XMax, YMax int16
	LowestRecPPEM          uint16
	IndexToLocFormat       int16
}

func parseHeadTable(b []byte) (*HeadTable, error) {
	if b == nil {
		return nil, invalidf("head: missing table")
	}
	if len(b) != 54 {
		return nil, invalidf("head: bad table length")
	}

	r := parse.NewBinaryReader(b)
	majorVersion := r.ReadUint16()
	minorVersion := r.ReadUint16()
	if majorVersion != 1 || minorVersion != 0 {
		return nil, invalidf("head: bad version")
	}

	h := &HeadTable{}
	h.FontRevision = r.ReadUint32()
	_ = r.ReadUint32() // checkSumAdjustment, patched separately by the writer
	if r.ReadUint32() != 0x5F0F3CF5 {
		return nil, invalidf("head: bad magic number")
	}
	_ = r.ReadUint16() // flags
	h.UnitsPerEm = r.ReadUint16()
	created := r.ReadUint64()
	modified := r.ReadUint64()
	if math.MaxInt64 < created || math.MaxInt64 < modified {
		return nil, invalidf("head: created/modified dates too large")
	}
	epoch := time.Date(1904, 1, 1, 0, 0, 0, 0, time.UTC)
	h.Created = epoch.Add(time.Second * time.Duration(created))
	h.Modified = epoch.Add(time.Second * time.Duration(modified))
	h.XMin = r.ReadInt16()
	h.YMin = r.ReadInt16()
	h.XMax = r.ReadInt16()
	h.YMax = r.ReadInt16()
	_ = r.ReadUint16() // macStyle
	h.LowestRecPPEM = r.ReadUint16()
	_ = r.ReadInt16() // fontDirectionHint
	h.IndexToLocFormat = r.ReadInt16()
	if h.IndexToLocFormat != 0 && h.IndexToLocFormat != 1 {
		return nil, invalidf("head: bad indexToLocFormat")
	}
	return h, nil
}

// HheaTable is the horizontal header ("hhea").
type HheaTable struct {
	Ascender         int16
	Descender        int16
	LineGap          int16
	AdvanceWidthMax  uint16
	NumberOfHMetrics uint16
}

func parseHheaTable(b []byte, maxp *MaxpTable) (*HheaTable, error) {
	if b == nil {
		return nil, invalidf("hhea: missing table")
	}
	if len(b) != 36 {
		return nil, invalidf("hhea: bad table length")
	}

	r := parse.NewBinaryReader(b)
	majorVersion := r.ReadUint16()
	minorVersion := r.ReadUint16()
	if majorVersion != 1 || minorVersion != 0 {
		return nil, invalidf("hhea: bad version")
	}

	h := &HheaTable{}
	h.Ascender = r.ReadInt16()
	h.Descender = r.ReadInt16()
	h.LineGap = r.ReadInt16()
	h.AdvanceWidthMax = r.ReadUint16()
	_ = r.ReadInt16() // minLeftSideBearing
	_ = r.ReadInt16() // minRightSideBearing
	_ = r.ReadInt16() // xMaxExtent
	_ = r.ReadInt16() // caretSlopeRise
	_ = r.ReadInt16() // caretSlopeRun
	_ = r.ReadInt16() // caretOffset
	_ = r.ReadInt16() // reserved
	_ = r.ReadInt16() // reserved
	_ = r.ReadInt16() // reserved
	_ = r.ReadInt16() // reserved
	_ = r.ReadInt16() // metricDataFormat
	h.NumberOfHMetrics = r.ReadUint16()
	if maxp != nil && (maxp.NumGlyphs < h.NumberOfHMetrics || h.NumberOfHMetrics == 0) {
		return nil, invalidf("hhea: bad numberOfHMetrics")
	}
	return h, nil
}

// MaxpTable is the maximum-profile table ("maxp"), in either its
// CFF-minimal (version 0.5) or TrueType-full (version 1.0) form.
type MaxpTable struct {
	NumGlyphs   uint16
	MaxPoints   uint16
	MaxContours uint16
}

func parseMaxpTable(b []byte, isTrueType bool) (*MaxpTable, error) {
	if b == nil {
		return nil, invalidf("maxp: missing table")
	}
	if len(b) < 6 {
		return nil, invalidf("maxp: bad table length")
	}

	r := parse.NewBinaryReader(b)
	version := r.ReadUint32()
	m := &MaxpTable{NumGlyphs: r.ReadUint16()}

	switch {
	case version == 0x00005000 && !isTrueType && len(b) == 6:
		return m, nil
	case version == 0x00010000 && isTrueType && len(b) == 32:
		m.MaxPoints = r.ReadUint16()
		m.MaxContours = r.ReadUint16()
		return m, nil
	}
	return nil, invalidf("maxp: bad table (version 0x%08x, len %d, isTrueType %v)", version, len(b), isTrueType)
}

// HmtxTable is the horizontal metrics table ("hmtx"): one (advanceWidth,
// leftSideBearing) pair per glyph up to NumberOfHMetrics, after which only
// leftSideBearing repeats (with the final advanceWidth carried forward).
type HmtxTable struct {
	AdvanceWidths    []uint16
	LeftSideBearings []int16
}

// Advance returns a glyph's advance width, clamping to the last explicit
// entry for glyph IDs beyond NumberOfHMetrics (monospace convention).
func (t *HmtxTable) Advance(glyphID uint16) uint16 {
	if int(glyphID) >= len(t.AdvanceWidths) {
		glyphID = uint16(len(t.AdvanceWidths) - 1)
	}
	return t.AdvanceWidths[glyphID]
}

func parseHmtxTable(b []byte, hhea *HheaTable, maxp *MaxpTable) (*HmtxTable, error) {
	if hhea == nil || maxp == nil {
		return nil, nil
	}
	if maxp.NumGlyphs < hhea.NumberOfHMetrics {
		return nil, invalidf("hmtx: numberOfHMetrics exceeds numGlyphs")
	}
	tail := maxp.NumGlyphs - hhea.NumberOfHMetrics
	wantLen := 4*uint32(hhea.NumberOfHMetrics) + 2*uint32(tail)
	if b == nil {
		return nil, invalidf("hmtx: missing table")
	}
	if uint32(len(b)) != wantLen {
		return nil, invalidf("hmtx: bad table length")
	}

	t := &HmtxTable{
		AdvanceWidths:    make([]uint16, maxp.NumGlyphs),
		LeftSideBearings: make([]int16, maxp.NumGlyphs),
	}
	r := parse.NewBinaryReader(b)
	var lastAdvance uint16
	for i := 0; i < int(hhea.NumberOfHMetrics); i++ {
		lastAdvance = r.ReadUint16()
		t.AdvanceWidths[i] = lastAdvance
		t.LeftSideBearings[i] = r.ReadInt16()
	}
	for i := int(hhea.NumberOfHMetrics); i < int(maxp.NumGlyphs); i++ {
		t.AdvanceWidths[i] = lastAdvance
		t.LeftSideBearings[i] = r.ReadInt16()
	}
	return t, nil
}

// PlatformID and EncodingID identify a name/cmap record's character
// encoding per the OpenType spec. NameID identifies what the string
// represents (family name, copyright notice, and so on).
type (
	PlatformID uint16
	EncodingID uint16
	NameID     uint16
)

// Platform IDs used by name and cmap records.
const (
	PlatformUnicode   PlatformID = 0
	PlatformMacintosh PlatformID = 1
	PlatformWindows   PlatformID = 3
)

// EncodingMacintoshRoman is the sole Macintosh-platform encoding this
// package decodes; other Macintosh encodings are returned as raw bytes.
const EncodingMacintoshRoman EncodingID = 0

// Name IDs this package has a use for; the full registry has over two
// dozen, most irrelevant to font identification.
const (
	NameCopyright  NameID = 0
	NameFamily     NameID = 1
	NameSubfamily  NameID = 2
	NameUniqueID   NameID = 3
	NameFull       NameID = 4
	NameVersion    NameID = 5
	NamePostScript NameID = 6
)

// NameRecord is one entry of the "name" table.
type NameRecord struct {
	Platform PlatformID
	Encoding EncodingID
	Language uint16
	Name     NameID
	Value    []byte
}

// String decodes Value according to Platform/Encoding, falling back to the
// raw bytes as a string if no decoder applies or decoding fails. Grounded on
// the teacher's nameRecord.String (sfnt.go), which uses the same
// golang.org/x/text decoders.
func (r NameRecord) String() string {
	var decoder *encoding.Decoder
	switch {
	case r.Platform == PlatformUnicode || r.Platform == PlatformWindows:
		decoder = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()
	case r.Platform == PlatformMacintosh && r.Encoding == EncodingMacintoshRoman:
		decoder = charmap.Macintosh.NewDecoder()
	}
	if decoder == nil {
		return string(r.Value)
	}
	s, _, err := transform.String(decoder, string(r.Value))
	if err != nil {
		return string(r.Value)
	}
	return s
}

// NameTable is the "name" table.
type NameTable struct {
	Records []NameRecord
}

// Get returns every record for the given NameID, across all
// platform/encoding/language combinations present.
func (t *NameTable) Get(name NameID) []NameRecord {
	var out []NameRecord
	for _, r := range t.Records {
		if r.Name == name {
			out = append(out, r)
		}
	}
	return out
}

// PreferredString returns the first value for name, preferring the first
// Windows-platform record (platform 3, of any encoding), then any record at
// all.
func (t *NameTable) PreferredString(name NameID) (string, bool) {
	records := t.Get(name)
	for _, r := range records {
		if r.Platform == PlatformWindows {
			return r.String(), true
		}
	}
	if len(records) > 0 {
		return records[0].String(), true
	}
	return "", false
}

// parseNameTable reads the "name" table's format 0 and format 1 layouts,
// grounded on the teacher's parseName (sfnt.go), trimmed of its
// lazy-parsing TODO and its lang-tag table (which this inspector does not
// expose, since nothing in SPEC_FULL.md's CLI surface needs Mac/Windows
// language-tag strings beyond what Language already identifies numerically).
func parseNameTable(b []byte) (*NameTable, error) {
	if len(b) < 6 {
		return nil, invalidf("name: bad table length")
	}

	r := parse.NewBinaryReader(b)
	version := r.ReadUint16()
	if version != 0 && version != 1 {
		return nil, invalidf("name: bad version")
	}
	count := r.ReadUint16()
	storageOffset := r.ReadUint16()
	if uint32(len(b)) < 6+12*uint32(count) || uint16(len(b)) < storageOffset {
		return nil, invalidf("name: bad table")
	}

	t := &NameTable{Records: make([]NameRecord, count)}
	for i := 0; i < int(count); i++ {
		t.Records[i].Platform = PlatformID(r.ReadUint16())
		t.Records[i].Encoding = EncodingID(r.ReadUint16())
		t.Records[i].Language = r.ReadUint16()
		t.Records[i].Name = NameID(r.ReadUint16())

		length := r.ReadUint16()
		offset := r.ReadUint16()
		if uint16(len(b))-storageOffset < offset || uint16(len(b))-storageOffset-offset < length {
			return nil, invalidf("name: bad record range")
		}
		t.Records[i].Value = b[storageOffset+offset : storageOffset+offset+length]
	}
	return t, nil
}

// CmapFormat4 is a parsed format-4 ("Segment mapping to delta values")
// cmap subtable, the format virtually every Windows-targeted TrueType font
// uses for its Unicode BMP mapping. Grounded on the teacher's cmapFormat4
// (sfnt_cmap.go), trimmed to what rune-to-glyph lookups need.
type CmapFormat4 struct {
	startCode     []uint16
	endCode       []uint16
	idDelta       []int16
	idRangeOffset []uint16
	glyphIDArray  []uint16
}

// maxCmapSegments caps how many segments parseCmapFormat4 will accept,
// mirroring the teacher's MaxCmapSegments guard against pathological input.
const maxCmapSegments = 20000

// parseCmapFormat4 scans the cmap table's subtable directory for a format-4
// subtable (any platform/encoding) and parses it.
func parseCmapFormat4(b []byte) (*CmapFormat4, error) {
	if len(b) < 4 {
		return nil, invalidf("cmap: bad table length")
	}
	r := parse.NewBinaryReader(b)
	_ = r.ReadUint16() // version
	numTables := r.ReadUint16()
	if uint32(len(b)) < 4+8*uint32(numTables) {
		return nil, invalidf("cmap: bad table")
	}

	var subtableOffset uint32
	found := false
	for i := 0; i < int(numTables); i++ {
		_ = r.ReadUint16() // platformID
		_ = r.ReadUint16() // encodingID
		offset := r.ReadUint32()
		if !found && offset < uint32(len(b)) {
			sub := parse.NewBinaryReader(b[offset:])
			if sub.ReadUint16() == 4 {
				subtableOffset = offset
				found = true
			}
		}
	}
	if !found {
		return nil, unsupportedf("cmap without a format 4 subtable")
	}

	sub := parse.NewBinaryReader(b[subtableOffset:])
	_ = sub.ReadUint16() // format
	length := sub.ReadUint16()
	_ = sub.ReadUint16() // language
	segCountX2 := sub.ReadUint16()
	segCount := int(segCountX2 / 2)
	if segCount == 0 || maxCmapSegments < segCount {
		return nil, invalidf("cmap: bad segCount")
	}
	_ = sub.ReadUint16() // searchRange
	_ = sub.ReadUint16() // entrySelector
	_ = sub.ReadUint16() // rangeShift

	t := &CmapFormat4{
		endCode:       make([]uint16, segCount),
		idDelta:       make([]int16, segCount),
		idRangeOffset: make([]uint16, segCount),
		startCode:     make([]uint16, segCount),
	}
	for i := 0; i < segCount; i++ {
		t.endCode[i] = sub.ReadUint16()
	}
	_ = sub.ReadUint16() // reservedPad
	for i := 0; i < segCount; i++ {
		t.startCode[i] = sub.ReadUint16()
	}
	for i := 0; i < segCount; i++ {
		t.idDelta[i] = sub.ReadInt16()
	}
	for i := 0; i < segCount; i++ {
		t.idRangeOffset[i] = sub.ReadUint16()
	}
	if uint32(length) <= uint32(sub.Pos()) {
		return t, nil
	}
	glyphIDArrayLen := (uint32(length) - uint32(sub.Pos())) / 2
	t.glyphIDArray = make([]uint16, glyphIDArrayLen)
	for i := range t.glyphIDArray {
		t.glyphIDArray[i] = sub.ReadUint16()
	}
	return t, nil
}

// Lookup returns the glyph ID mapped to the given Unicode code point, or
// (0, false) if unmapped — 0 is the conventional ".notdef" glyph.
func (t *CmapFormat4) Lookup(r rune) (uint16, bool) {
	if r < 0 || 0xFFFF < r {
		return 0, false
	}
	code := uint16(r)
	for i, end := range t.endCode {
		if code > end {
			continue
		}
		if code < t.startCode[i] {
			return 0, false
		}
		if t.idRangeOffset[i] == 0 {
			return uint16(int32(code) + int32(t.idDelta[i])), true
		}
		glyphArrayIdx := int(t.idRangeOffset[i])/2 + int(code-t.startCode[i]) - (len(t.idRangeOffset) - i)
		if glyphArrayIdx < 0 || len(t.glyphIDArray) <= glyphArrayIdx {
			return 0, false
		}
		gid := t.glyphIDArray[glyphArrayIdx]
		if gid == 0 {
			return 0, false
		}
		return uint16(int32(gid) + int32(t.idDelta[i])), true
	}
	return 0, false
}
