// Copyright 2026 go-rawpix Authors
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

package packed

import "github.com/ajroetker/go-rawpix/pix"

const (
	minWidthNEONPacked   = 32
	minWidthNEONUnpacked = 16
)

func (c conv) minWidthNEON() int {
	if c.kind == kindUnpack {
		return minWidthNEONPacked
	}
	return minWidthNEONUnpacked
}

// split12 turns de-interleaved group bytes a, b, c into the left-justified
// even and odd samples of each group.
type split12 func(a, b, c pix.U16x8) (even, odd pix.U16x8)

var (
	lowNibble  = pix.SetU16x8(0x0F)
	highNibble = pix.SetU16x8(0xF0)
)

var splits12 = map[pix.Layout]split12{
	pix.Layout12Packed: func(a, b, c pix.U16x8) (pix.U16x8, pix.U16x8) {
		even := pix.OrU16(pix.ShiftLeftU16(a, 8), pix.ShiftLeftU16(pix.AndU16(b, lowNibble), 4))
		odd := pix.OrU16(pix.ShiftLeftU16(c, 8), pix.AndU16(b, highNibble))
		return even, odd
	},
	pix.Layout12MIPI: func(a, b, c pix.U16x8) (pix.U16x8, pix.U16x8) {
		even := pix.OrU16(pix.ShiftLeftU16(a, 8), pix.ShiftLeftU16(pix.AndU16(c, lowNibble), 4))
		odd := pix.OrU16(pix.ShiftLeftU16(b, 8), pix.AndU16(c, highNibble))
		return even, odd
	},
	pix.Layout12Spacked: func(a, b, c pix.U16x8) (pix.U16x8, pix.U16x8) {
		even := pix.OrU16(pix.ShiftLeftU16(a, 4), pix.ShiftLeftU16(pix.AndU16(b, lowNibble), 12))
		odd := pix.OrU16(pix.AndU16(b, highNibble), pix.ShiftLeftU16(c, 8))
		return even, odd
	},
}

// unpack12RowNEON handles 32 samples (48 bytes) per step with a 3-way
// de-interleaving load.
func unpack12RowNEON(split split12, co *codec, dst, src []byte, width int, outBits uint) {
	x, g := 0, 0
	for ; x+32 <= width; x, g = x+32, g+48 {
		a, b, c := pix.LoadInterleaved3U8(src[g:])
		eLo, oLo := split(pix.PromoteLowerU8ToU16(a), pix.PromoteLowerU8ToU16(b), pix.PromoteLowerU8ToU16(c))
		eHi, oHi := split(pix.PromoteUpperU8ToU16(a), pix.PromoteUpperU8ToU16(b), pix.PromoteUpperU8ToU16(c))
		switch outBits {
		case 8:
			even := pix.DemoteTwoU16ToU8(pix.ShiftRightU16(eLo, 8), pix.ShiftRightU16(eHi, 8))
			odd := pix.DemoteTwoU16ToU8(pix.ShiftRightU16(oLo, 8), pix.ShiftRightU16(oHi, 8))
			pix.StoreInterleaved2U8(dst[x:], even, odd)
		case 12:
			pix.StoreInterleaved2U16(dst[2*x:], pix.ShiftRightU16(eLo, 4), pix.ShiftRightU16(oLo, 4))
			pix.StoreInterleaved2U16(dst[2*x+32:], pix.ShiftRightU16(eHi, 4), pix.ShiftRightU16(oHi, 4))
		default:
			pix.StoreInterleaved2U16(dst[2*x:], eLo, oLo)
			pix.StoreInterleaved2U16(dst[2*x+32:], eHi, oHi)
		}
	}
	baseUnpackRow(co, dst[x*outBytes(outBits):], src[g:], width-x, outBits)
}

// unpack10MIPIRowNEON gathers the four high bytes and the shared low byte of
// 8 groups with strided loads. Unpacking to 8 bits only needs the high
// bytes and handles 16 groups per step.
func unpack10MIPIRowNEON(dst, src []byte, width int, outBits uint) {
	co := codecs[pix.Layout10MIPI]
	x, g := 0, 0
	if outBits == 8 {
		for ; x+64 <= width; x, g = x+64, g+80 {
			var h [4]pix.U8x16
			for i := range h {
				h[i] = pix.DemoteTwoU16ToU8(
					pix.LoadStridedU8ToU16(src[g+i:], 5),
					pix.LoadStridedU8ToU16(src[g+40+i:], 5))
			}
			pix.StoreInterleaved4U8(dst[x:], h[0], h[1], h[2], h[3])
		}
	} else {
		three := pix.SetU16x8(3)
		for ; x+32 <= width; x, g = x+32, g+40 {
			lo := pix.LoadStridedU8ToU16(src[g+4:], 5)
			var p [4]pix.U16x8
			for i := range p {
				hi := pix.LoadStridedU8ToU16(src[g+i:], 5)
				bits := pix.AndU16(pix.ShiftRightU16(lo, uint(2*i)), three)
				p[i] = pix.OrU16(pix.ShiftLeftU16(hi, 8), pix.ShiftLeftU16(bits, 6))
			}
			pix.StoreInterleaved4U16(dst[2*x:], p[0], p[1], p[2], p[3])
		}
	}
	baseUnpackRow(co, dst[x*outBytes(outBits):], src[g:], width-x, outBits)
}

func (c conv) rowNEON() rowFunc {
	switch c.kind {
	case kindUnpack:
		if c.codec.layout == pix.Layout10MIPI {
			return func(dst, src []byte, width int) {
				unpack10MIPIRowNEON(dst, src, width, c.outBits)
			}
		}
		split := splits12[c.codec.layout]
		if split == nil {
			return nil
		}
		return func(dst, src []byte, width int) {
			unpack12RowNEON(split, c.codec, dst, src, width, c.outBits)
		}
	case kindCells:
		return func(dst, src []byte, width int) {
			cellsRowLanes(dst, src, width, c.inBits, c.outBits)
		}
	case kindBytes:
		return bytesRowLanes
	}
	return nil
}
