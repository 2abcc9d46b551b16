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

//go:build amd64 && goexperiment.simd

package whitebalance

import (
	"simd/archsimd"
	"unsafe"

	"github.com/ajroetker/go-rawpix/pix"
)

func init() {
	if pix.CanRun(pix.TierAVX2) {
		row8AVX2 = row8Vec
		row16AVX2 = row16Vec
	}
}

func words(b []byte, x int) []int32 {
	_ = b[x+31]
	return unsafe.Slice((*int32)(unsafe.Pointer(&b[x])), 8)
}

// row8Vec scales 32 samples per step. Byte i of every word is sample 4k+i,
// so the even bytes take f0 and the odd bytes f1.
func row8Vec(dst, src []byte, width int, f0, f1 uint8) {
	bytes := archsimd.BroadcastInt32x8(0xFF)
	even := archsimd.BroadcastInt32x8(int32(f0))
	odd := archsimd.BroadcastInt32x8(int32(f1))
	scale := func(v, f archsimd.Int32x8) archsimd.Int32x8 {
		return v.And(bytes).Mul(f).ShiftAllRight(6).Min(bytes)
	}
	x := 0
	for ; x+32 <= width; x += 32 {
		v := archsimd.LoadInt32x8Slice(words(src, x))
		b0 := scale(v, even)
		b1 := scale(v.ShiftAllRight(8), odd)
		b2 := scale(v.ShiftAllRight(16), even)
		b3 := scale(v.ShiftAllRight(24), odd)
		r := b0.Or(b1.ShiftAllLeft(8)).Or(b2.ShiftAllLeft(16)).Or(b3.ShiftAllLeft(24))
		r.StoreSlice(words(dst, x))
	}
	baseRow8(dst[x:], src[x:], width-x, f0, f1)
}

// row16Vec scales 16 samples per step, the low half of every word taking f0.
func row16Vec(dst, src []byte, width int, f0, f1 uint8) {
	halves := archsimd.BroadcastInt32x8(0xFFFF)
	even := archsimd.BroadcastInt32x8(int32(f0))
	odd := archsimd.BroadcastInt32x8(int32(f1))
	scale := func(v, f archsimd.Int32x8) archsimd.Int32x8 {
		return v.And(halves).Mul(f).ShiftAllRight(6).Min(halves)
	}
	x := 0
	for ; x+16 <= width; x += 16 {
		v := archsimd.LoadInt32x8Slice(words(src, 2*x))
		lo := scale(v, even)
		hi := scale(v.ShiftAllRight(16), odd)
		lo.Or(hi.ShiftAllLeft(16)).StoreSlice(words(dst, 2*x))
	}
	baseRow16(dst[2*x:], src[2*x:], width-x, f0, f1)
}
