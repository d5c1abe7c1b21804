// The 128-entry coordinate lookup table below is copied from the Allsorts
// Rust package (https://github.com/yeslogic/allsorts/blob/master/src/woff2/lut.rs),
// which is itself a direct transcription of the table in the WOFF2
// specification (https://www.w3.org/TR/WOFF2/#glyf_table_format). Reproduced
// here bit-for-bit since WOFF2 glyph coordinate decoding must be bit-exact.
//
// Copyright 2019 YesLogic Pty. Ltd. <info@yeslogic.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package font

// xyTriplet describes how to decode one glyf-transform coordinate pair: how
// many bytes of packed data follow the flag byte, how those bits split
// between x and y, the bias to add to each, and each axis' sign.
type xyTriplet struct {
	byteCount               uint8
	xBits, yBits            uint8
	deltaX, deltaY          uint16
	xIsNegative, yIsNegative bool
}

// dx extracts and signs the x component of data (a big-endian packed integer
// byteCount bytes wide) per this triplet's bit layout.
func (t xyTriplet) dx(data uint32) int16 {
	mask := uint32(1)<<t.xBits - 1
	shift := uint32(t.byteCount)*8 - uint32(t.xBits)
	dx := int16((data>>shift)&mask) + int16(t.deltaX)
	if t.xIsNegative {
		return -dx
	}
	return dx
}

// dy extracts and signs the y component of data per this triplet's bit
// layout.
func (t xyTriplet) dy(data uint32) int16 {
	mask := uint32(1)<<t.yBits - 1
	shift := uint32(t.byteCount)*8 - uint32(t.xBits) - uint32(t.yBits)
	dy := int16((data>>shift)&mask) + int16(t.deltaY)
	if t.yIsNegative {
		return -dy
	}
	return dy
}

// coordLUT is indexed by the low 7 bits of a simple-glyph point flag byte.
var coordLUT = [128]xyTriplet{
	{byteCount: 1, xBits: 0, yBits: 8, deltaX: 0, deltaY: 0, xIsNegative: false, yIsNegative: true},
	{byteCount: 1, xBits: 0, yBits: 8, deltaX: 0, deltaY: 0, xIsNegative: false, yIsNegative: false},
	{byteCount: 1, xBits: 0, yBits: 8, deltaX: 0, deltaY: 256, xIsNegative: false, yIsNegative: true},
	{byteCount: 1, xBits: 0, yBits: 8, deltaX: 0, deltaY: 256, xIsNegative: false, yIsNegative: false},
	{byteCount: 1, xBits: 0, yBits: 8, deltaX: 0, deltaY: 512, xIsNegative: false, yIsNegative: true},
	{byteCount: 1, xBits: 0, yBits: 8, deltaX: 0, deltaY: 512, xIsNegative: false, yIsNegative: false},
	{byteCount: 1, xBits: 0, yBits: 8, deltaX: 0, deltaY: 768, xIsNegative: false, yIsNegative: true},
	{byteCount: 1, xBits: 0, yBits: 8, deltaX: 0, deltaY: 768, xIsNegative: false, yIsNegative: false},
	{byteCount: 1, xBits: 0, yBits: 8, deltaX: 0, deltaY: 1024, xIsNegative: false, yIsNegative: true},
	{byteCount: 1, xBits: 0, yBits: 8, deltaX: 0, deltaY: 1024, xIsNegative: false, yIsNegative: false},
	{byteCount: 1, xBits: 8, yBits: 0, deltaX: 0, deltaY: 0, xIsNegative: true, yIsNegative: false},
	{byteCount: 1, xBits: 8, yBits: 0, deltaX: 0, deltaY: 0, xIsNegative: false, yIsNegative: false},
	{byteCount: 1, xBits: 8, yBits: 0, deltaX: 256, deltaY: 0, xIsNegative: true, yIsNegative: false},
	{byteCount: 1, xBits: 8, yBits: 0, deltaX: 256, deltaY: 0, xIsNegative: false, yIsNegative: false},
	{byteCount: 1, xBits: 8, yBits: 0, deltaX: 512, deltaY: 0, xIsNegative: true, yIsNegative: false},
	{byteCount: 1, xBits: 8, yBits: 0, deltaX: 512, deltaY: 0, xIsNegative: false, yIsNegative: false},
	{byteCount: 1, xBits: 8, yBits: 0, deltaX: 768, deltaY: 0, xIsNegative: true, yIsNegative: false},
	{byteCount: 1, xBits: 8, yBits: 0, deltaX: 768, deltaY: 0, xIsNegative: false, yIsNegative: false},
	{byteCount: 1, xBits: 8, yBits: 0, deltaX: 1024, deltaY: 0, xIsNegative: true, yIsNegative: false},
	{byteCount: 1, xBits: 8, yBits: 0, deltaX: 1024, deltaY: 0, xIsNegative: false, yIsNegative: false},
	{byteCount: 1, xBits: 4, yBits: 4, deltaX: 1, deltaY: 1, xIsNegative: true, yIsNegative: true},
	{byteCount: 1, xBits: 4, yBits: 4, deltaX: 1, deltaY: 1, xIsNegative: false, yIsNegative: true},
	{byteCount: 1, xBits: 4, yBits: 4, deltaX: 1, deltaY: 1, xIsNegative: true, yIsNegative: false},
	{byteCount: 1, xBits: 4, yBits: 4, deltaX: 1, deltaY: 1, xIsNegative: false, yIsNegative: false},
	{byteCount: 1, xBits: 4, yBits: 4, deltaX: 1, deltaY: 17, xIsNegative: true, yIsNegative: true},
	{byteCount: 1, xBits: 4, yBits: 4, deltaX: 1, deltaY: 17, xIsNegative: false, yIsNegative: true},
	{byteCount: 1, xBits: 4, yBits: 4, deltaX: 1, deltaY: 17, xIsNegative: true, yIsNegative: false},
	{byteCount: 1, xBits: 4, yBits: 4, deltaX: 1, deltaY: 17, xIsNegative: false, yIsNegative: false},
	{byteCount: 1, xBits: 4, yBits: 4, deltaX: 1, deltaY: 33, xIsNegative: true, yIsNegative: true},
	{byteCount: 1, xBits: 4, yBits: 4, deltaX: 1, deltaY: 33, xIsNegative: false, yIsNegative: true},
	{byteCount: 1, xBits: 4, yBits: 4, deltaX: 1, deltaY: 33, xIsNegative: true, yIsNegative: false},
	{byteCount: 1, xBits: 4, yBits: 4, deltaX: 1, deltaY: 33, xIsNegative: false, yIsNegative: false},
	{byteCount: 1, xBits: 4, yBits: 4, deltaX: 1, deltaY: 49, xIsNegative: true, yIsNegative: true},
	{byteCount: 1, xBits: 4, yBits: 4, deltaX: 1, deltaY: 49, xIsNegative: false, yIsNegative: true},
	{byteCount: 1, xBits: 4, yBits: 4, deltaX: 1, deltaY: 49, xIsNegative: true, yIsNegative: false},
	{byteCount: 1, xBits: 4, yBits: 4, deltaX: 1, deltaY: 49, xIsNegative: false, yIsNegative: false},
	{byteCount: 1, xBits: 4, yBits: 4, deltaX: 17, deltaY: 1, xIsNegative: true, yIsNegative: true},
	{byteCount: 1, xBits: 4, yBits: 4, deltaX: 17, deltaY: 1, xIsNegative: false, yIsNegative: true},
	{byteCount: 1, xBits: 4, yBits: 4, deltaX: 17, deltaY: 1, xIsNegative: true, yIsNegative: false},
	{byteCount: 1, xBits: 4, yBits: 4, deltaX: 17, deltaY: 1, xIsNegative: false, yIsNegative: false},
	{byteCount: 1, xBits: 4, yBits: 4, deltaX: 17, deltaY: 17, xIsNegative: true, yIsNegative: true},
	{byteCount: 1, xBits: 4, yBits: 4, deltaX: 17, deltaY: 17, xIsNegative: false, yIsNegative: true},
	{byteCount: 1, xBits: 4, yBits: 4, deltaX: 17, deltaY: 17, xIsNegative: true, yIsNegative: false},
	{byteCount: 1, xBits: 4, yBits: 4, deltaX: 17, deltaY: 17, xIsNegative: false, yIsNegative: false},
	{byteCount: 1, xBits: 4, yBits: 4, deltaX: 17, deltaY: 33, xIsNegative: true, yIsNegative: true},
	{byteCount: 1, xBits: 4, yBits: 4, deltaX: 17, deltaY: 33, xIsNegative: false, yIsNegative: true},
	{byteCount: 1, xBits: 4, yBits: 4, deltaX: 17, deltaY: 33, xIsNegative: true, yIsNegative: false},
	{byteCount: 1, xBits: 4, yBits: 4, deltaX: 17, deltaY: 33, xIsNegative: false, yIsNegative: false},
	{byteCount: 1, xBits: 4, yBits: 4, deltaX: 17, deltaY: 49, xIsNegative: true, yIsNegative: true},
	{byteCount: 1, xBits: 4, yBits: 4, deltaX: 17, deltaY: 49, xIsNegative: false, yIsNegative: true},
	{byteCount: 1, xBits: 4, yBits: 4, deltaX: 17, deltaY: 49, xIsNegative: true, yIsNegative: false},
	{byteCount: 1, xBits: 4, yBits: 4, deltaX: 17, deltaY: 49, xIsNegative: false, yIsNegative: false},
	{byteCount: 1, xBits: 4, yBits: 4, deltaX: 33, deltaY: 1, xIsNegative: true, yIsNegative: true},
	{byteCount: 1, xBits: 4, yBits: 4, deltaX: 33, deltaY: 1, xIsNegative: false, yIsNegative: true},
	{byteCount: 1, xBits: 4, yBits: 4, deltaX: 33, deltaY: 1, xIsNegative: true, yIsNegative: false},
	{byteCount: 1, xBits: 4, yBits: 4, deltaX: 33, deltaY: 1, xIsNegative: false, yIsNegative: false},
	{byteCount: 1, xBits: 4, yBits: 4, deltaX: 33, deltaY: 17, xIsNegative: true, yIsNegative: true},
	{byteCount: 1, xBits: 4, yBits: 4, deltaX: 33, deltaY: 17, xIsNegative: false, yIsNegative: true},
	{byteCount: 1, xBits: 4, yBits: 4, deltaX: 33, deltaY: 17, xIsNegative: true, yIsNegative: false},
	{byteCount: 1, xBits: 4, yBits: 4, deltaX: 33, deltaY: 17, xIsNegative: false, yIsNegative: false},
	{byteCount: 1, xBits: 4, yBits: 4, deltaX: 33, deltaY: 33, xIsNegative: true, yIsNegative: true},
	{byteCount: 1, xBits: 4, yBits: 4, deltaX: 33, deltaY: 33, xIsNegative: false, yIsNegative: true},
	{byteCount: 1, xBits: 4, yBits: 4, deltaX: 33, deltaY: 33, xIsNegative: true, yIsNegative: false},
	{byteCount: 1, xBits: 4, yBits: 4, deltaX: 33, deltaY: 33, xIsNegative: false, yIsNegative: false},
	{byteCount: 1, xBits: 4, yBits: 4, deltaX: 33, deltaY: 49, xIsNegative: true, yIsNegative: true},
	{byteCount: 1, xBits: 4, yBits: 4, deltaX: 33, deltaY: 49, xIsNegative: false, yIsNegative: true},
	{byteCount: 1, xBits: 4, yBits: 4, deltaX: 33, deltaY: 49, xIsNegative: true, yIsNegative: false},
	{byteCount: 1, xBits: 4, yBits: 4, deltaX: 33, deltaY: 49, xIsNegative: false, yIsNegative: false},
	{byteCount: 1, xBits: 4, yBits: 4, deltaX: 49, deltaY: 1, xIsNegative: true, yIsNegative: true},
	{byteCount: 1, xBits: 4, yBits: 4, deltaX: 49, deltaY: 1, xIsNegative: false, yIsNegative: true},
	{byteCount: 1, xBits: 4, yBits: 4, deltaX: 49, deltaY: 1, xIsNegative: true, yIsNegative: false},
	{byteCount: 1, xBits: 4, yBits: 4, deltaX: 49, deltaY: 1, xIsNegative: false, yIsNegative: false},
	{byteCount: 1, xBits: 4, yBits: 4, deltaX: 49, deltaY: 17, xIsNegative: true, yIsNegative: true},
	{byteCount: 1, xBits: 4, yBits: 4, deltaX: 49, deltaY: 17, xIsNegative: false, yIsNegative: true},
	{byteCount: 1, xBits: 4, yBits: 4, deltaX: 49, deltaY: 17, xIsNegative: true, yIsNegative: false},
	{byteCount: 1, xBits: 4, yBits: 4, deltaX: 49, deltaY: 17, xIsNegative: false, yIsNegative: false},
	{byteCount: 1, xBits: 4, yBits: 4, deltaX: 49, deltaY: 33, xIsNegative: true, yIsNegative: true},
	{byteCount: 1, xBits: 4, yBits: 4, deltaX: 49, deltaY: 33, xIsNegative: false, yIsNegative: true},
	{byteCount: 1, xBits: 4, yBits: 4, deltaX: 49, deltaY: 33, xIsNegative: true, yIsNegative: false},
	{byteCount: 1, xBits: 4, yBits: 4, deltaX: 49, deltaY: 33, xIsNegative: false, yIsNegative: false},
	{byteCount: 1, xBits: 4, yBits: 4, deltaX: 49, deltaY: 49, xIsNegative: true, yIsNegative: true},
	{byteCount: 1, xBits: 4, yBits: 4, deltaX: 49, deltaY: 49, xIsNegative: false, yIsNegative: true},
	{byteCount: 1, xBits: 4, yBits: 4, deltaX: 49, deltaY: 49, xIsNegative: true, yIsNegative: false},
	{byteCount: 1, xBits: 4, yBits: 4, deltaX: 49, deltaY: 49, xIsNegative: false, yIsNegative: false},
	{byteCount: 2, xBits: 8, yBits: 8, deltaX: 1, deltaY: 1, xIsNegative: true, yIsNegative: true},
	{byteCount: 2, xBits: 8, yBits: 8, deltaX: 1, deltaY: 1, xIsNegative: false, yIsNegative: true},
	{byteCount: 2, xBits: 8, yBits: 8, deltaX: 1, deltaY: 1, xIsNegative: true, yIsNegative: false},
	{byteCount: 2, xBits: 8, yBits: 8, deltaX: 1, deltaY: 1, xIsNegative: false, yIsNegative: false},
	{byteCount: 2, xBits: 8, yBits: 8, deltaX: 1, deltaY: 257, xIsNegative: true, yIsNegative: true},
	{byteCount: 2, xBits: 8, yBits: 8, deltaX: 1, deltaY: 257, xIsNegative: false, yIsNegative: true},
	{byteCount: 2, xBits: 8, yBits: 8, deltaX: 1, deltaY: 257, xIsNegative: true, yIsNegative: false},
	{byteCount: 2, xBits: 8, yBits: 8, deltaX: 1, deltaY: 257, xIsNegative: false, yIsNegative: false},
	{byteCount: 2, xBits: 8, yBits: 8, deltaX: 1, deltaY: 513, xIsNegative: true, yIsNegative: true},
	{byteCount: 2, xBits: 8, yBits: 8, deltaX: 1, deltaY: 513, xIsNegative: false, yIsNegative: true},
	{byteCount: 2, xBits: 8, yBits: 8, deltaX: 1, deltaY: 513, xIsNegative: true, yIsNegative: false},
	{byteCount: 2, xBits: 8, yBits: 8, deltaX: 1, deltaY: 513, xIsNegative: false, yIsNegative: false},
	{byteCount: 2, xBits: 8, yBits: 8, deltaX: 257, deltaY: 1, xIsNegative: true, yIsNegative: true},
	{byteCount: 2, xBits: 8, yBits: 8, deltaX: 257, deltaY: 1, xIsNegative: false, yIsNegative: true},
	{byteCount: 2, xBits: 8, yBits: 8, deltaX: 257, deltaY: 1, xIsNegative: true, yIsNegative: false},
	{byteCount: 2, xBits: 8, yBits: 8, deltaX: 257, deltaY: 1, xIsNegative: false, yIsNegative: false},
	{byteCount: 2, xBits: 8, yBits: 8, deltaX: 257, deltaY: 257, xIsNegative: true, yIsNegative: true},
	{byteCount: 2, xBits: 8, yBits: 8, deltaX: 257, deltaY: 257, xIsNegative: false, yIsNegative: true},
	{byteCount: 2, xBits: 8, yBits: 8, deltaX: 257, deltaY: 257, xIsNegative: true, yIsNegative: false},
	{byteCount: 2, xBits: 8, yBits: 8, deltaX: 257, deltaY: 257, xIsNegative: false, yIsNegative: false},
	{byteCount: 2, xBits: 8, yBits: 8, deltaX: 257, deltaY: 513, xIsNegative: true, yIsNegative: true},
	{byteCount: 2, xBits: 8, yBits: 8, deltaX: 257, deltaY: 513, xIsNegative: false, yIsNegative: true},
	{byteCount: 2, xBits: 8, yBits: 8, deltaX: 257, deltaY: 513, xIsNegative: true, yIsNegative: false},
	{byteCount: 2, xBits: 8, yBits: 8, deltaX: 257, deltaY: 513, xIsNegative: false, yIsNegative: false},
	{byteCount: 2, xBits: 8, yBits: 8, deltaX: 513, deltaY: 1, xIsNegative: true, yIsNegative: true},
	{byteCount: 2, xBits: 8, yBits: 8, deltaX: 513, deltaY: 1, xIsNegative: false, yIsNegative: true},
	{byteCount: 2, xBits: 8, yBits: 8, deltaX: 513, deltaY: 1, xIsNegative: true, yIsNegative: false},
	{byteCount: 2, xBits: 8, yBits: 8, deltaX: 513, deltaY: 1, xIsNegative: false, yIsNegative: false},
	{byteCount: 2, xBits: 8, yBits: 8, deltaX: 513, deltaY: 257, xIsNegative: true, yIsNegative: true},
	{byteCount: 2, xBits: 8, yBits: 8, deltaX: 513, deltaY: 257, xIsNegative: false, yIsNegative: true},
	{byteCount: 2, xBits: 8, yBits: 8, deltaX: 513, deltaY: 257, xIsNegative: true, yIsNegative: false},
	{byteCount: 2, xBits: 8, yBits: 8, deltaX: 513, deltaY: 257, xIsNegative: false, yIsNegative: false},
	{byteCount: 2, xBits: 8, yBits: 8, deltaX: 513, deltaY: 513, xIsNegative: true, yIsNegative: true},
	{byteCount: 2, xBits: 8, yBits: 8, deltaX: 513, deltaY: 513, xIsNegative: false, yIsNegative: true},
	{byteCount: 2, xBits: 8, yBits: 8, deltaX: 513, deltaY: 513, xIsNegative: true, yIsNegative: false},
	{byteCount: 2, xBits: 8, yBits: 8, deltaX: 513, deltaY: 513, xIsNegative: false, yIsNegative: false},
	{byteCount: 3, xBits: 12, yBits: 12, deltaX: 0, deltaY: 0, xIsNegative: true, yIsNegative: true},
	{byteCount: 3, xBits: 12, yBits: 12, deltaX: 0, deltaY: 0, xIsNegative: false, yIsNegative: true},
	{byteCount: 3, xBits: 12, yBits: 12, deltaX: 0, deltaY: 0, xIsNegative: true, yIsNegative: false},
	{byteCount: 3, xBits: 12, yBits: 12, deltaX: 0, deltaY: 0, xIsNegative: false, yIsNegative: false},
	{byteCount: 4, xBits: 16, yBits: 16, deltaX: 0, deltaY: 0, xIsNegative: true, yIsNegative: true},
	{byteCount: 4, xBits: 16, yBits: 16, deltaX: 0, deltaY: 0, xIsNegative: false, yIsNegative: true},
	{byteCount: 4, xBits: 16, yBits: 16, deltaX: 0, deltaY: 0, xIsNegative: true, yIsNegative: false},
	{byteCount: 4, xBits: 16, yBits: 16, deltaX: 0, deltaY: 0, xIsNegative: false, yIsNegative: false},
}
