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

package whitebalance

import "github.com/ajroetker/go-rawpix/pix"

// The SSSE3 and NEON tiers share these kernels: 16 bytes per step for 8-bit
// samples, 8 cells per step for 16-bit samples.

func alternating(f0, f1 uint8) pix.U16x8 {
	a, b := uint16(f0), uint16(f1)
	return pix.U16x8{a, b, a, b, a, b, a, b}
}

// row8Lanes widens to 16 bits, where in*f cannot overflow, and narrows back
// with saturation.
func row8Lanes(dst, src []byte, width int, f0, f1 uint8) {
	fac := alternating(f0, f1)
	x := 0
	for ; x+16 <= width; x += 16 {
		v := pix.LoadU8x16(src[x:])
		lo := pix.ShiftRightU16(pix.MulLoU16(pix.PromoteLowerU8ToU16(v), fac), 6)
		hi := pix.ShiftRightU16(pix.MulLoU16(pix.PromoteUpperU8ToU16(v), fac), 6)
		pix.DemoteTwoU16ToU8(lo, hi).Store(dst[x:])
	}
	baseRow8(dst[x:], src[x:], width-x, f0, f1)
}

// row16Lanes builds in*f >> 6 from the high and low halves of the 32-bit
// product. The result fits 16 bits exactly when the high half is below 64.
func row16Lanes(dst, src []byte, width int, f0, f1 uint8) {
	fac := alternating(f0, f1)
	limit := pix.SetU16x8(64)
	saturated := pix.SetU16x8(0xFFFF)
	x := 0
	for ; x+8 <= width; x += 8 {
		v := pix.LoadU16x8(src[2*x:])
		hi := pix.MulHiU16(v, fac)
		lo := pix.MulLoU16(v, fac)
		r := pix.OrU16(pix.ShiftLeftU16(hi, 10), pix.ShiftRightU16(lo, 6))
		pix.IfThenElseU16(pix.LessThanU16(hi, limit), r, saturated).Store(dst[2*x:])
	}
	baseRow16(dst[2*x:], src[2*x:], width-x, f0, f1)
}
