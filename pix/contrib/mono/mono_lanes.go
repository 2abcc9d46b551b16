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

package mono

import "github.com/ajroetker/go-rawpix/pix"

// The SSSE3 and NEON tiers share these kernels. Each finishes its row with
// the reference function.

func lanesMono8ToBGR24(dst, src []byte, width int) {
	x := 0
	for ; x+16 <= width; x += 16 {
		v := pix.LoadU8x16(src[x:])
		pix.StoreInterleaved3U8(dst[3*x:], v, v, v)
	}
	baseMono8ToBGR24(dst[3*x:], src[x:], width-x)
}

func lanesMono8ToBGRA32(dst, src []byte, width int) {
	alpha := pix.SetU8x16(0xFF)
	x := 0
	for ; x+16 <= width; x += 16 {
		v := pix.LoadU8x16(src[x:])
		pix.StoreInterleaved4U8(dst[4*x:], v, v, v, alpha)
	}
	baseMono8ToBGRA32(dst[4*x:], src[x:], width-x)
}

func lanesMono8ToBGRA64(dst, src []byte, width int) {
	alpha := pix.SetU16x8(0xFFFF)
	x := 0
	for ; x+16 <= width; x += 16 {
		v := pix.LoadU8x16(src[x:])
		lo := pix.ShiftLeftU16(pix.PromoteLowerU8ToU16(v), 8)
		hi := pix.ShiftLeftU16(pix.PromoteUpperU8ToU16(v), 8)
		pix.StoreInterleaved4U16(dst[8*x:], lo, lo, lo, alpha)
		pix.StoreInterleaved4U16(dst[8*x+64:], hi, hi, hi, alpha)
	}
	baseMono8ToBGRA64(dst[8*x:], src[x:], width-x)
}

// high16 loads 16 samples and keeps their high bytes.
func high16(src []byte) pix.U8x16 {
	lo := pix.ShiftRightU16(pix.LoadU16x8(src), 8)
	hi := pix.ShiftRightU16(pix.LoadU16x8(src[16:]), 8)
	return pix.DemoteTwoU16ToU8(lo, hi)
}

func lanesMono16ToBGR24(dst, src []byte, width int) {
	x := 0
	for ; x+16 <= width; x += 16 {
		v := high16(src[2*x:])
		pix.StoreInterleaved3U8(dst[3*x:], v, v, v)
	}
	baseMono16ToBGR24(dst[3*x:], src[2*x:], width-x)
}

func lanesMono16ToBGRA32(dst, src []byte, width int) {
	alpha := pix.SetU8x16(0xFF)
	x := 0
	for ; x+16 <= width; x += 16 {
		v := high16(src[2*x:])
		pix.StoreInterleaved4U8(dst[4*x:], v, v, v, alpha)
	}
	baseMono16ToBGRA32(dst[4*x:], src[2*x:], width-x)
}

func lanesMono16ToBGRA64(dst, src []byte, width int) {
	alpha := pix.SetU16x8(0xFFFF)
	x := 0
	for ; x+8 <= width; x += 8 {
		v := pix.LoadU16x8(src[2*x:])
		pix.StoreInterleaved4U16(dst[8*x:], v, v, v, alpha)
	}
	baseMono16ToBGRA64(dst[8*x:], src[2*x:], width-x)
}
