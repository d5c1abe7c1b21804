package font

// Flavor FourCCs a WOFF2 file's header may declare. Grounded on
// original_source/src/magic_numbers.rs.
const (
	flavorCollection = "ttcf"
	flavorCFF        = "OTTO"
	flavorTrueType   = "\x00\x01\x00\x00"
	woff2Signature   = "wOF2"
)

// woff2Header is the fixed 48-byte WOFF2 file header. Field layout grounded
// on original_source/src/woff2/header.rs's Woff2Header and the teacher's
// inline header-parsing block in woff2.go's ParseWOFF2.
type woff2Header struct {
	Signature           string
	Flavor              string
	Length              uint32
	NumTables           uint16
	Reserved            uint16
	TotalSfntSize       uint32
	TotalCompressedSize uint32
	MajorVersion        uint16
	MinorVersion        uint16
	MetaOffset          uint32
	MetaLength          uint32
	MetaOrigLength      uint32
	PrivOffset          uint32
	PrivLength          uint32
}

// IsWOFF2 is the cheap format-sniffing predicate from SPEC_FULL.md §6: it
// reports whether prefix begins with the WOFF2 magic signature.
func IsWOFF2(prefix []byte) bool {
	return len(prefix) >= 4 && string(prefix[:4]) == woff2Signature
}

func parseWoff2Header(r *bufReader) (*woff2Header, error) {
	if r.remaining() < 48 {
		return nil, invalidf("header: truncated, need 48 bytes")
	}
	h := &woff2Header{}
	var err error
	if h.Signature, err = r.readFourCC(); err != nil {
		return nil, invalidErr("header: truncated", err)
	}
	if h.Flavor, err = r.readFourCC(); err != nil {
		return nil, invalidErr("header: truncated", err)
	}
	if h.Length, err = r.readUint32(); err != nil {
		return nil, invalidErr("header: truncated", err)
	}
	if h.NumTables, err = r.readUint16(); err != nil {
		return nil, invalidErr("header: truncated", err)
	}
	if h.Reserved, err = r.readUint16(); err != nil {
		return nil, invalidErr("header: truncated", err)
	}
	if h.TotalSfntSize, err = r.readUint32(); err != nil {
		return nil, invalidErr("header: truncated", err)
	}
	if h.TotalCompressedSize, err = r.readUint32(); err != nil {
		return nil, invalidErr("header: truncated", err)
	}
	if h.MajorVersion, err = r.readUint16(); err != nil {
		return nil, invalidErr("header: truncated", err)
	}
	if h.MinorVersion, err = r.readUint16(); err != nil {
		return nil, invalidErr("header: truncated", err)
	}
	if h.MetaOffset, err = r.readUint32(); err != nil {
		return nil, invalidErr("header: truncated", err)
	}
	if h.MetaLength, err = r.readUint32(); err != nil {
		return nil, invalidErr("header: truncated", err)
	}
	if h.MetaOrigLength, err = r.readUint32(); err != nil {
		return nil, invalidErr("header: truncated", err)
	}
	if h.PrivOffset, err = r.readUint32(); err != nil {
		return nil, invalidErr("header: truncated", err)
	}
	if h.PrivLength, err = r.readUint32(); err != nil {
		return nil, invalidErr("header: truncated", err)
	}
	return h, nil
}

// validate enforces the mandatory signature check plus the recommended
// meta/private block bounds check that original_source/src/woff2/header.rs
// leaves as a TODO (SPEC_FULL.md §4.3). It never rejects a well-formed file:
// both blocks are optional (length 0 means absent).
func (h *woff2Header) validate() error {
	if h.Signature != woff2Signature {
		return invalidf("header: invalid magic word")
	}
	if h.MetaLength != 0 {
		end, ok := addUint32(h.MetaOffset, h.MetaLength)
		if !ok || h.Length < end {
			return invalidf("header: metadata block out of bounds")
		}
	}
	if h.PrivLength != 0 {
		end, ok := addUint32(h.PrivOffset, h.PrivLength)
		if !ok || h.Length < end {
			return invalidf("header: private block out of bounds")
		}
	}
	return nil
}

func addUint32(a, b uint32) (uint32, bool) {
	sum := a + b
	return sum, sum >= a
}
