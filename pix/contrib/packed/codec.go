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

import (
	"encoding/binary"

	"github.com/ajroetker/go-rawpix/pix"
)

// codec decodes and encodes one packing group of a layout. Values are the
// native samples, bits wide and low-justified.
type codec struct {
	layout pix.Layout
	bits   uint
	group  int // samples per group
	bytes  int // bytes per group
	decode func(v []uint16, g []byte)
	encode func(g []byte, v []uint16)
}

var codecs = [...]*codec{
	pix.Layout10MIPI:    {pix.Layout10MIPI, 10, 4, 5, decode10MIPI, encode10MIPI},
	pix.Layout10Spacked: {pix.Layout10Spacked, 10, 4, 5, decode10Spacked, encode10Spacked},
	pix.Layout12Packed:  {pix.Layout12Packed, 12, 2, 3, decode12Packed, encode12Packed},
	pix.Layout12MIPI:    {pix.Layout12MIPI, 12, 2, 3, decode12MIPI, encode12MIPI},
	pix.Layout12Spacked: {pix.Layout12Spacked, 12, 2, 3, decode12Spacked, encode12Spacked},
}

// codecFor returns the codec of a packed layout, or nil.
func codecFor(l pix.Layout) *codec {
	if int(l) < len(codecs) {
		return codecs[l]
	}
	return nil
}

// [p0 hi][p0 lo | p1 lo<<4][p1 hi]
func decode12Packed(v []uint16, g []byte) {
	_ = g[2]
	v[0] = uint16(g[0])<<4 | uint16(g[1]&0x0F)
	v[1] = uint16(g[2])<<4 | uint16(g[1]>>4)
}

func encode12Packed(g []byte, v []uint16) {
	_ = g[2]
	g[0] = byte(v[0] >> 4)
	g[1] = byte(v[0]&0x0F) | byte(v[1]&0x0F)<<4
	g[2] = byte(v[1] >> 4)
}

// [p0 hi][p1 hi][p0 lo | p1 lo<<4]
func decode12MIPI(v []uint16, g []byte) {
	_ = g[2]
	v[0] = uint16(g[0])<<4 | uint16(g[2]&0x0F)
	v[1] = uint16(g[1])<<4 | uint16(g[2]>>4)
}

func encode12MIPI(g []byte, v []uint16) {
	_ = g[2]
	g[0] = byte(v[0] >> 4)
	g[1] = byte(v[1] >> 4)
	g[2] = byte(v[0]&0x0F) | byte(v[1]&0x0F)<<4
}

// 24-bit little-endian stream: v0 = bits 0..11, v1 = bits 12..23.
func decode12Spacked(v []uint16, g []byte) {
	_ = g[2]
	v[0] = uint16(g[0]) | uint16(g[1]&0x0F)<<8
	v[1] = uint16(g[1]>>4) | uint16(g[2])<<4
}

func encode12Spacked(g []byte, v []uint16) {
	_ = g[2]
	g[0] = byte(v[0])
	g[1] = byte(v[0]>>8)&0x0F | byte(v[1]&0x0F)<<4
	g[2] = byte(v[1] >> 4)
}

// [p0 hi][p1 hi][p2 hi][p3 hi][p0 lo | p1 lo<<2 | p2 lo<<4 | p3 lo<<6]
func decode10MIPI(v []uint16, g []byte) {
	_ = g[4]
	lo := g[4]
	v[0] = uint16(g[0])<<2 | uint16(lo&0x03)
	v[1] = uint16(g[1])<<2 | uint16(lo>>2&0x03)
	v[2] = uint16(g[2])<<2 | uint16(lo>>4&0x03)
	v[3] = uint16(g[3])<<2 | uint16(lo>>6)
}

func encode10MIPI(g []byte, v []uint16) {
	_ = g[4]
	g[0] = byte(v[0] >> 2)
	g[1] = byte(v[1] >> 2)
	g[2] = byte(v[2] >> 2)
	g[3] = byte(v[3] >> 2)
	g[4] = byte(v[0]&3) | byte(v[1]&3)<<2 | byte(v[2]&3)<<4 | byte(v[3]&3)<<6
}

// 40-bit little-endian stream of four 10-bit values.
func decode10Spacked(v []uint16, g []byte) {
	_ = g[4]
	u := uint64(binary.LittleEndian.Uint32(g)) | uint64(g[4])<<32
	v[0] = uint16(u & 0x3FF)
	v[1] = uint16(u >> 10 & 0x3FF)
	v[2] = uint16(u >> 20 & 0x3FF)
	v[3] = uint16(u >> 30 & 0x3FF)
}

func encode10Spacked(g []byte, v []uint16) {
	_ = g[4]
	u := uint64(v[0]&0x3FF) | uint64(v[1]&0x3FF)<<10 | uint64(v[2]&0x3FF)<<20 | uint64(v[3]&0x3FF)<<30
	binary.LittleEndian.PutUint32(g, uint32(u))
	g[4] = byte(u >> 32)
}
