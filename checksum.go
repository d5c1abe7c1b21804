package font

import "encoding/binary"

// checksumAdjustmentMagic is the constant an SFNT file's whole-file checksum
// must equal once head.checkSumAdjustment has been patched in.
const checksumAdjustmentMagic uint32 = 0xB1B0AFBA

// tableChecksum sums b as big-endian 32-bit words, wrapping at 2^32. If len(b)
// is not a multiple of four, the trailing partial word is treated as if
// zero-padded to four bytes, per the OpenType/WOFF2 checksum algorithm.
// Deliberately does not reuse the teacher's calcChecksum (util.go), which
// panics on non-multiple-of-4 input instead of zero-padding; grounded on
// original_source/src/checksum.rs's calculate_checksum (chunks_exact(4) plus
// a zero-padded remainder).
func tableChecksum(b []byte) uint32 {
	var sum uint32
	n := len(b) - len(b)%4
	for i := 0; i < n; i += 4 {
		sum += binary.BigEndian.Uint32(b[i : i+4])
	}
	if rem := len(b) % 4; rem != 0 {
		var tail [4]byte
		copy(tail[:], b[n:])
		sum += binary.BigEndian.Uint32(tail[:])
	}
	return sum
}

// fontChecksumAdjustment computes the value that must be written into
// head.checkSumAdjustment so that tableChecksum(wholeFont) == 0xB1B0AFBA.
// wholeFont must already have its head.checkSumAdjustment field zeroed.
func fontChecksumAdjustment(wholeFont []byte) uint32 {
	return checksumAdjustmentMagic - tableChecksum(wholeFont)
}

// setChecksumAdjustment writes value, big-endian, into head[8:12].
func setChecksumAdjustment(head []byte, value uint32) error {
	if len(head) < 12 {
		return invalidf("head table too short to hold checkSumAdjustment")
	}
	binary.BigEndian.PutUint32(head[8:12], value)
	return nil
}
