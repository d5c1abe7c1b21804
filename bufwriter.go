package font

import "encoding/binary"

// bufWriter is a growable big-endian byte buffer, mirroring the write-side
// surface of parse.BinaryWriter (github.com/tdewolff/parse/v2) as used by the
// teacher's SFNT encoder, trimmed to what the SfntWriter needs.
type bufWriter struct {
	buf []byte
}

func newBufWriter(capacity int) *bufWriter {
	return &bufWriter{buf: make([]byte, 0, capacity)}
}

func (w *bufWriter) bytes() []byte {
	return w.buf
}

func (w *bufWriter) len() int {
	return len(w.buf)
}

func (w *bufWriter) writeBytes(b []byte) {
	w.buf = append(w.buf, b...)
}

func (w *bufWriter) writeByte(b byte) {
	w.buf = append(w.buf, b)
}

func (w *bufWriter) writeUint16(v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *bufWriter) writeInt16(v int16) {
	w.writeUint16(uint16(v))
}

func (w *bufWriter) writeUint32(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *bufWriter) writeFourCC(s string) {
	w.buf = append(w.buf, s[:4]...)
}

// writeUint255 writes v using the WOFF2 "255UInt16" encoding. Not required by
// the decoder's public surface (the spec's SfntWriter never re-emits WOFF2
// varints, only plain SFNT scalars) but kept alongside writeBase128 for
// symmetry and exercised by the round-trip varint tests.
func (w *bufWriter) writeUint255(v uint16) {
	switch {
	case v < 253:
		w.writeByte(byte(v))
	case v < 253+256:
		w.writeByte(255)
		w.writeByte(byte(v - 253))
	case v < 253*2+256:
		w.writeByte(254)
		w.writeByte(byte(v - 253*2))
	default:
		w.writeByte(253)
		w.writeUint16(v)
	}
}

// writeBase128 writes v using the WOFF2 "UIntBase128" encoding (big-endian
// base-128 groups, continuation bit set on every group but the last).
func (w *bufWriter) writeBase128(v uint32) {
	var groups [5]byte
	n := 0
	groups[0] = byte(v & 0x7F)
	v >>= 7
	n = 1
	for v != 0 {
		groups[n] = byte(v&0x7F) | 0x80
		v >>= 7
		n++
	}
	for i := n - 1; 0 <= i; i-- {
		w.writeByte(groups[i])
	}
}

// padTo4 appends zero bytes until the buffer length is a multiple of four.
func (w *bufWriter) padTo4() {
	for len(w.buf)%4 != 0 {
		w.writeByte(0)
	}
}
