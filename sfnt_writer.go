package font

import (
	"math/bits"
	"sort"
)

// sfntTableRecord is one entry of an SFNT output table directory: the tag,
// per-table checksum, and its byte range within the output file.
type sfntTableRecord struct {
	Tag      string
	Checksum uint32
	Offset   uint32
	Length   uint32
}

// calculateTableDirectorySize returns the byte size of an SFNT table
// directory header (12 bytes) plus numTables 16-byte records.
func calculateTableDirectorySize(numTables int) int {
	return 12 + 16*numTables
}

// searchHints computes the three binary-search hint fields an SFNT table
// directory header carries, per SPEC_FULL.md §4.7.
func searchHints(numTables int) (searchRange, entrySelector, rangeShift uint16) {
	if numTables == 0 {
		return 0, 0, 0
	}
	entrySelector = uint16(bits.Len(uint(numTables)) - 1)
	searchRange = (1 << entrySelector) * 16
	rangeShift = uint16(numTables)*16 - searchRange
	return
}

// writeSfntTableDirectory sorts records by tag (byte-lexically ascending)
// and writes the 12-byte header plus one 16-byte record per table.
// Grounded on the teacher's offset-table-writing block in woff2.go's
// SFNT.WriteWOFF2 (search_range/entry_selector/range_shift emission) and on
// original_source/src/ttf_header.rs's TableDirectory::new/write_to_buf.
func writeSfntTableDirectory(w *bufWriter, flavor string, records []sfntTableRecord) {
	sorted := make([]sfntTableRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Tag < sorted[j].Tag })

	searchRange, entrySelector, rangeShift := searchHints(len(sorted))

	w.writeFourCC(flavor)
	w.writeUint16(uint16(len(sorted)))
	w.writeUint16(searchRange)
	w.writeUint16(entrySelector)
	w.writeUint16(rangeShift)
	for _, r := range sorted {
		w.writeFourCC(r.Tag)
		w.writeUint32(r.Checksum)
		w.writeUint32(r.Offset)
		w.writeUint32(r.Length)
	}
}

// writeCollectionHeader emits the OpenType Font Collection header: the
// 'ttcf' tag, an unconditional version 1 (DSIG fields, which only exist in
// v2, are never preserved — see DESIGN.md), the font count, one directory
// offset per font, and then each font's own (sorted) table directory.
// Grounded on original_source/src/woff2/collection_directory.rs's
// CollectionHeader::write_to_buf.
func writeCollectionHeader(w *bufWriter, h *collectionHeader, tables []sfntTableRecord) {
	w.writeFourCC(flavorCollection)
	w.writeUint32(collectionHeaderVersionV1)
	w.writeUint32(uint32(len(h.Fonts)))

	fontDirectoryLen := len(h.Fonts) * 4
	tableDirectoryOffset := 12 + fontDirectoryLen
	for _, font := range h.Fonts {
		w.writeUint32(uint32(tableDirectoryOffset))
		tableDirectoryOffset += calculateTableDirectorySize(len(font.TableIndices))
	}

	for _, font := range h.Fonts {
		fontTables := make([]sfntTableRecord, len(font.TableIndices))
		for i, idx := range font.TableIndices {
			fontTables[i] = tables[idx]
		}
		writeSfntTableDirectory(w, font.Flavor, fontTables)
	}
}

// findTableRecord returns the record for tag, or nil.
func findTableRecord(records []sfntTableRecord, tag string) *sfntTableRecord {
	for i := range records {
		if records[i].Tag == tag {
			return &records[i]
		}
	}
	return nil
}
