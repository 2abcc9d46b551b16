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

// This file holds the reference implementation. Every block kernel calls
// these functions for the samples after its last full block.

// putSample stores an inBits wide sample as outBits: left-justified for 16,
// top 8 bits for 8 and low-justified otherwise.
func putSample(dst []byte, x int, v uint16, inBits, outBits uint) {
	switch outBits {
	case 8:
		dst[x] = byte(v >> (inBits - 8))
	case 16:
		pix.PutUint16(dst, x, v<<(16-inBits))
	default:
		pix.PutUint16(dst, x, v>>(inBits-outBits))
	}
}

func outBytes(outBits uint) int {
	if outBits == 8 {
		return 1
	}
	return 2
}

// baseUnpackRow unpacks width samples of a packed row. width must be a
// multiple of the layout group size.
func baseUnpackRow(c *codec, dst, src []byte, width int, outBits uint) {
	var v [4]uint16
	for x, g := 0, 0; x < width; x, g = x+c.group, g+c.bytes {
		c.decode(v[:c.group], src[g:g+c.bytes])
		for i := range c.group {
			putSample(dst, x+i, v[i], c.bits, outBits)
		}
	}
}

// baseCellsRow converts 16-bit cells holding inBits valid bits.
func baseCellsRow(dst, src []byte, width int, inBits, outBits uint) {
	mask := uint16(1<<inBits - 1)
	for x := range width {
		putSample(dst, x, pix.Uint16(src, x)&mask, inBits, outBits)
	}
}

// baseBytesRow widens 8-bit samples to 16 bits.
func baseBytesRow(dst, src []byte, width int) {
	for x, v := range src[:width] {
		pix.PutUint16(dst, x, uint16(v)<<8)
	}
}

// basePackRow packs the top c.bits of each left-justified 16-bit sample.
func basePackRow(c *codec, dst, src []byte, width int) {
	var v [4]uint16
	shift := 16 - c.bits
	for x, g := 0, 0; x < width; x, g = x+c.group, g+c.bytes {
		for i := range c.group {
			v[i] = pix.Uint16(src, x+i) >> shift
		}
		c.encode(dst[g:g+c.bytes], v[:c.group])
	}
}

func (c conv) rowReference() rowFunc {
	switch c.kind {
	case kindUnpack:
		return func(dst, src []byte, width int) {
			baseUnpackRow(c.codec, dst, src, width, c.outBits)
		}
	case kindCells:
		return func(dst, src []byte, width int) {
			baseCellsRow(dst, src, width, c.inBits, c.outBits)
		}
	case kindBytes:
		return baseBytesRow
	case kindPack:
		return func(dst, src []byte, width int) {
			basePackRow(c.codec, dst, src, width)
		}
	}
	return nil
}

// UnpackSample returns sample x of a packed row left-justified to 16 bits.
// It is meant for random access; whole rows go through Get.
func UnpackSample(l pix.Layout, row []byte, x int) uint16 {
	c := codecFor(l)
	if c == nil {
		return 0
	}
	var v [4]uint16
	g := x / c.group * c.bytes
	c.decode(v[:c.group], row[g:g+c.bytes])
	return v[x%c.group] << (16 - c.bits)
}
