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

package pix

import "encoding/binary"

// This file provides fixed-width 128-bit lane types and the operations the
// block kernels of the SIMD tiers are written in. Each operation corresponds
// to one SSE or NEON instruction (named in the doc comment) so a kernel
// reads like its intrinsic counterpart. The types are plain arrays: they
// live on the stack and never allocate.

// U8x16 is a 128-bit vector of 16 uint8 lanes.
type U8x16 [16]uint8

// U16x8 is a 128-bit vector of 8 uint16 lanes.
type U16x8 [8]uint16

// I32x8 is a pair of 128-bit vectors holding 8 int32 lanes, the widened form
// of a U16x8.
type I32x8 [8]int32

// LoadU8x16 loads 16 bytes (movdqu / vld1q_u8). src must hold 16 bytes.
func LoadU8x16(src []byte) U8x16 {
	return U8x16(src[:16])
}

// Store writes the 16 lanes to dst.
func (v U8x16) Store(dst []byte) {
	copy(dst[:16], v[:])
}

// StoreLower writes the lower 8 lanes to dst (movq / vst1_u8).
func (v U8x16) StoreLower(dst []byte) {
	copy(dst[:8], v[:8])
}

// SetU8x16 broadcasts x to all lanes.
func SetU8x16(x uint8) U8x16 {
	var v U8x16
	for i := range v {
		v[i] = x
	}
	return v
}

// TableLookupBytes selects bytes of tbl by idx (pshufb). An index with the
// high bit set yields 0; otherwise its low 4 bits select the lane.
func TableLookupBytes(tbl, idx U8x16) U8x16 {
	var r U8x16
	for i, j := range idx {
		if j&0x80 == 0 {
			r[i] = tbl[j&0x0F]
		}
	}
	return r
}

// LoadInterleaved2U8 loads 32 bytes and splits even and odd bytes (vld2q_u8).
func LoadInterleaved2U8(src []byte) (a, b U8x16) {
	src = src[:32]
	for i := range 16 {
		a[i] = src[2*i]
		b[i] = src[2*i+1]
	}
	return a, b
}

// LoadInterleaved3U8 loads 48 bytes and splits them into three planes
// (vld3q_u8).
func LoadInterleaved3U8(src []byte) (a, b, c U8x16) {
	src = src[:48]
	for i := range 16 {
		a[i] = src[3*i]
		b[i] = src[3*i+1]
		c[i] = src[3*i+2]
	}
	return a, b, c
}

// StoreInterleaved2U8 writes a0 b0 a1 b1 ... (vst2q_u8).
func StoreInterleaved2U8(dst []byte, a, b U8x16) {
	dst = dst[:32]
	for i := range 16 {
		dst[2*i] = a[i]
		dst[2*i+1] = b[i]
	}
}

// StoreInterleaved3U8 writes a0 b0 c0 a1 b1 c1 ... (vst3q_u8).
func StoreInterleaved3U8(dst []byte, a, b, c U8x16) {
	dst = dst[:48]
	for i := range 16 {
		dst[3*i] = a[i]
		dst[3*i+1] = b[i]
		dst[3*i+2] = c[i]
	}
}

// StoreInterleaved4U8 writes a0 b0 c0 d0 a1 ... (vst4q_u8).
func StoreInterleaved4U8(dst []byte, a, b, c, d U8x16) {
	dst = dst[:64]
	for i := range 16 {
		dst[4*i] = a[i]
		dst[4*i+1] = b[i]
		dst[4*i+2] = c[i]
		dst[4*i+3] = d[i]
	}
}

// PromoteLowerU8ToU16 zero-extends lanes 0..7 (pmovzxbw / vmovl_u8).
func PromoteLowerU8ToU16(v U8x16) U16x8 {
	var r U16x8
	for i := range r {
		r[i] = uint16(v[i])
	}
	return r
}

// PromoteUpperU8ToU16 zero-extends lanes 8..15 (punpckhbw / vmovl_high_u8).
func PromoteUpperU8ToU16(v U8x16) U16x8 {
	var r U16x8
	for i := range r {
		r[i] = uint16(v[i+8])
	}
	return r
}

// DemoteTwoU16ToU8 narrows lo and hi with unsigned saturation (packuswb on
// non-negative input / vqmovn_u16).
func DemoteTwoU16ToU8(lo, hi U16x8) U8x16 {
	var r U8x16
	for i := range 8 {
		r[i] = uint8(min(lo[i], 0xFF))
		r[i+8] = uint8(min(hi[i], 0xFF))
	}
	return r
}

// ZipU16ToU8 narrows a and b with unsigned saturation and interleaves them:
// a0 b0 a1 b1 ... (packuswb + punpcklbw / vqmovn_u16 + vzip1q_u8).
func ZipU16ToU8(a, b U16x8) U8x16 {
	var r U8x16
	for i := range 8 {
		r[2*i] = uint8(min(a[i], 0xFF))
		r[2*i+1] = uint8(min(b[i], 0xFF))
	}
	return r
}

// BitcastU8ToU16 reinterprets 16 bytes as 8 little-endian uint16 lanes.
func BitcastU8ToU16(v U8x16) U16x8 {
	var r U16x8
	for i := range r {
		r[i] = uint16(v[2*i]) | uint16(v[2*i+1])<<8
	}
	return r
}

// LoadU16x8 loads 8 little-endian uint16 lanes from 16 bytes.
func LoadU16x8(src []byte) U16x8 {
	src = src[:16]
	var r U16x8
	for i := range r {
		r[i] = binary.LittleEndian.Uint16(src[2*i:])
	}
	return r
}

// Store writes the lanes to dst as 16 little-endian bytes.
func (v U16x8) Store(dst []byte) {
	dst = dst[:16]
	for i, x := range v {
		binary.LittleEndian.PutUint16(dst[2*i:], x)
	}
}

// StoreU8 narrows the lanes with saturation and writes 8 bytes
// (packuswb + movq / vqmovn_u16 + vst1_u8).
func (v U16x8) StoreU8(dst []byte) {
	dst = dst[:8]
	for i, x := range v {
		dst[i] = uint8(min(x, 0xFF))
	}
}

// SetU16x8 broadcasts x to all lanes.
func SetU16x8(x uint16) U16x8 {
	return U16x8{x, x, x, x, x, x, x, x}
}

// LoadStridedU8ToU16 gathers src[0], src[stride], ... src[7*stride] into
// zero-extended lanes. It models a table lookup over a wider load.
func LoadStridedU8ToU16(src []byte, stride int) U16x8 {
	_ = src[7*stride]
	var r U16x8
	for i := range r {
		r[i] = uint16(src[i*stride])
	}
	return r
}

// StoreInterleaved2U16 writes a0 b0 a1 b1 ... as little-endian words
// (vst2q_u16).
func StoreInterleaved2U16(dst []byte, a, b U16x8) {
	dst = dst[:32]
	for i := range 8 {
		binary.LittleEndian.PutUint16(dst[4*i:], a[i])
		binary.LittleEndian.PutUint16(dst[4*i+2:], b[i])
	}
}

// StoreInterleaved4U16 writes a0 b0 c0 d0 a1 ... as little-endian words
// (vst4q_u16).
func StoreInterleaved4U16(dst []byte, a, b, c, d U16x8) {
	dst = dst[:64]
	for i := range 8 {
		binary.LittleEndian.PutUint16(dst[8*i:], a[i])
		binary.LittleEndian.PutUint16(dst[8*i+2:], b[i])
		binary.LittleEndian.PutUint16(dst[8*i+4:], c[i])
		binary.LittleEndian.PutUint16(dst[8*i+6:], d[i])
	}
}

// AddU16 performs lane-wise wrapping addition (paddw).
func AddU16(a, b U16x8) U16x8 {
	for i := range a {
		a[i] += b[i]
	}
	return a
}

// SubU16 performs lane-wise wrapping subtraction (psubw).
func SubU16(a, b U16x8) U16x8 {
	for i := range a {
		a[i] -= b[i]
	}
	return a
}

// AndU16 is the lane-wise bitwise and (pand).
func AndU16(a, b U16x8) U16x8 {
	for i := range a {
		a[i] &= b[i]
	}
	return a
}

// OrU16 is the lane-wise bitwise or (por).
func OrU16(a, b U16x8) U16x8 {
	for i := range a {
		a[i] |= b[i]
	}
	return a
}

// ShiftLeftU16 shifts every lane left by n bits (psllw).
func ShiftLeftU16(v U16x8, n uint) U16x8 {
	for i := range v {
		v[i] <<= n
	}
	return v
}

// ShiftRightU16 shifts every lane right by n bits (psrlw).
func ShiftRightU16(v U16x8, n uint) U16x8 {
	for i := range v {
		v[i] >>= n
	}
	return v
}

// MulLoU16 keeps the low 16 bits of each product (pmullw). Multiplying by a
// power of two per lane is how a lane-varying left shift is expressed.
func MulLoU16(a, b U16x8) U16x8 {
	for i := range a {
		a[i] *= b[i]
	}
	return a
}

// MulHiU16 keeps the high 16 bits of each unsigned product (pmulhuw).
// Multiplying by 1<<(16-n) shifts a lane right by n.
func MulHiU16(a, b U16x8) U16x8 {
	for i := range a {
		a[i] = uint16((uint32(a[i]) * uint32(b[i])) >> 16)
	}
	return a
}

// MinU16 returns the lane-wise minimum (pminuw).
func MinU16(a, b U16x8) U16x8 {
	for i := range a {
		a[i] = min(a[i], b[i])
	}
	return a
}

// AbsDiffU16 returns |a - b| per lane (psubusw twice + por).
func AbsDiffU16(a, b U16x8) U16x8 {
	for i := range a {
		if a[i] > b[i] {
			a[i] -= b[i]
		} else {
			a[i] = b[i] - a[i]
		}
	}
	return a
}

// LessThanU16 returns an all-ones lane where a < b, zero elsewhere.
func LessThanU16(a, b U16x8) U16x8 {
	var m U16x8
	for i := range a {
		if a[i] < b[i] {
			m[i] = 0xFFFF
		}
	}
	return m
}

// IfThenElseU16 selects a where mask is set and b elsewhere (pblendvb).
func IfThenElseU16(mask, a, b U16x8) U16x8 {
	for i := range mask {
		a[i] = a[i]&mask[i] | b[i]&^mask[i]
	}
	return a
}

// PromoteU16ToI32 widens 8 lanes to int32 (pmovzxwd on both halves).
func PromoteU16ToI32(v U16x8) I32x8 {
	var r I32x8
	for i := range r {
		r[i] = int32(v[i])
	}
	return r
}

// MulAddI32 returns acc + v*k lane-wise (pmulld + paddd).
func MulAddI32(acc, v I32x8, k int32) I32x8 {
	for i := range acc {
		acc[i] += v[i] * k
	}
	return acc
}

// ShiftRightI32 shifts arithmetically (psrad).
func ShiftRightI32(v I32x8, n uint) I32x8 {
	for i := range v {
		v[i] >>= n
	}
	return v
}

// ClampI32ToU8 clamps every lane to [0, 255] and narrows to 16 bits
// (packusdw + pminuw).
func ClampI32ToU8(v I32x8) U16x8 {
	var r U16x8
	for i, x := range v {
		r[i] = uint16(max(0, min(x, 0xFF)))
	}
	return r
}
