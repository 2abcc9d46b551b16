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

// minWidthSSSE3 is the narrowest row the SSSE3 kernels accept.
const minWidthSSSE3 = 8

// shuffleKernel unpacks 8 samples per 16-byte load. A byte shuffle moves
// the two source bytes holding each sample into a 16-bit lane, then
//
//	v16 = (v & keep) | ((v * mul) & mask)
//
// left-justifies the sample. mul is a per-lane power of two standing in for
// a per-lane shift.
type shuffleKernel struct {
	codec    *codec
	srcBytes int // bytes consumed per 8 samples
	shuf     pix.U8x16
	mul      pix.U16x8
	keep     pix.U16x8
	mask     pix.U16x8
}

// newShuffleKernel builds the tables from the byte pair {lo, hi} holding
// each sample of a group, relative to the group start.
func newShuffleKernel(c *codec, pairs [][2]byte, mul []uint16, keep, mask uint16) *shuffleKernel {
	k := &shuffleKernel{codec: c, srcBytes: 8 / c.group * c.bytes}
	for j := range 8 {
		g, i := j/c.group, j%c.group
		base := byte(g * c.bytes)
		k.shuf[2*j] = base + pairs[i][0]
		k.shuf[2*j+1] = base + pairs[i][1]
		k.mul[j] = mul[i]
		k.keep[j] = keep
		k.mask[j] = mask
	}
	return k
}

var shuffleKernels = map[pix.Layout]*shuffleKernel{
	pix.Layout12Packed: newShuffleKernel(codecs[pix.Layout12Packed],
		[][2]byte{{1, 0}, {1, 2}}, []uint16{16, 1}, 0xFF00, 0x00F0),
	pix.Layout12MIPI: newShuffleKernel(codecs[pix.Layout12MIPI],
		[][2]byte{{2, 0}, {2, 1}}, []uint16{16, 1}, 0xFF00, 0x00F0),
	pix.Layout12Spacked: newShuffleKernel(codecs[pix.Layout12Spacked],
		[][2]byte{{0, 1}, {1, 2}}, []uint16{16, 1}, 0x0000, 0xFFF0),
	pix.Layout10Spacked: newShuffleKernel(codecs[pix.Layout10Spacked],
		[][2]byte{{0, 1}, {1, 2}, {2, 3}, {3, 4}}, []uint16{64, 16, 4, 1}, 0x0000, 0xFFC0),
}

// load16 returns 8 left-justified samples from the block at src.
func (k *shuffleKernel) load16(src []byte) pix.U16x8 {
	v := pix.BitcastU8ToU16(pix.TableLookupBytes(pix.LoadU8x16(src), k.shuf))
	return pix.OrU16(pix.AndU16(v, k.keep), pix.AndU16(pix.MulLoU16(v, k.mul), k.mask))
}

func (k *shuffleKernel) unpackRow(dst, src []byte, width int, outBits uint) {
	x, g := 0, 0
	// The load reads 16 bytes, more than one block consumes.
	for ; x+8 <= width && g+16 <= len(src); x, g = x+8, g+k.srcBytes {
		v := k.load16(src[g:])
		switch outBits {
		case 8:
			pix.ShiftRightU16(v, 8).StoreU8(dst[x:])
		case 12:
			pix.ShiftRightU16(v, 4).Store(dst[2*x:])
		default:
			v.Store(dst[2*x:])
		}
	}
	baseUnpackRow(k.codec, dst[x*outBytes(outBits):], src[g:], width-x, outBits)
}

// cellsRowLanes converts 16-bit cells 8 lanes at a time.
func cellsRowLanes(dst, src []byte, width int, inBits, outBits uint) {
	mask := pix.SetU16x8(uint16(1<<inBits - 1))
	x := 0
	for ; x+8 <= width; x += 8 {
		v := pix.AndU16(pix.LoadU16x8(src[2*x:]), mask)
		switch outBits {
		case 8:
			pix.ShiftRightU16(v, inBits-8).StoreU8(dst[x:])
		case 16:
			pix.ShiftLeftU16(v, 16-inBits).Store(dst[2*x:])
		default:
			pix.ShiftRightU16(v, inBits-outBits).Store(dst[2*x:])
		}
	}
	baseCellsRow(dst[x*outBytes(outBits):], src[2*x:], width-x, inBits, outBits)
}

// bytesRowLanes widens 16 bytes per step.
func bytesRowLanes(dst, src []byte, width int) {
	x := 0
	for ; x+16 <= width; x += 16 {
		v := pix.LoadU8x16(src[x:])
		pix.ShiftLeftU16(pix.PromoteLowerU8ToU16(v), 8).Store(dst[2*x:])
		pix.ShiftLeftU16(pix.PromoteUpperU8ToU16(v), 8).Store(dst[2*x+16:])
	}
	baseBytesRow(dst[2*x:], src[x:], width-x)
}

func (c conv) rowSSSE3() rowFunc {
	switch c.kind {
	case kindUnpack:
		k := shuffleKernels[c.codec.layout]
		if k == nil {
			return nil
		}
		return func(dst, src []byte, width int) {
			k.unpackRow(dst, src, width, c.outBits)
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
