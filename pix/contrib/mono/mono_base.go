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

func baseMono8ToBGR24(dst, src []byte, width int) {
	for x, v := range src[:width] {
		dst[3*x], dst[3*x+1], dst[3*x+2] = v, v, v
	}
}

func baseMono8ToBGRA32(dst, src []byte, width int) {
	for x, v := range src[:width] {
		dst[4*x], dst[4*x+1], dst[4*x+2], dst[4*x+3] = v, v, v, 0xFF
	}
}

func putBGRA64(dst []byte, x int, v uint16) {
	pix.PutUint16(dst, 4*x, v)
	pix.PutUint16(dst, 4*x+1, v)
	pix.PutUint16(dst, 4*x+2, v)
	pix.PutUint16(dst, 4*x+3, 0xFFFF)
}

func baseMono8ToBGRA64(dst, src []byte, width int) {
	for x, v := range src[:width] {
		putBGRA64(dst, x, uint16(v)<<8)
	}
}

func baseMono16ToBGR24(dst, src []byte, width int) {
	for x := range width {
		v := uint8(pix.Uint16(src, x) >> 8)
		dst[3*x], dst[3*x+1], dst[3*x+2] = v, v, v
	}
}

func baseMono16ToBGRA32(dst, src []byte, width int) {
	for x := range width {
		v := uint8(pix.Uint16(src, x) >> 8)
		dst[4*x], dst[4*x+1], dst[4*x+2], dst[4*x+3] = v, v, v, 0xFF
	}
}

func baseMono16ToBGRA64(dst, src []byte, width int) {
	for x := range width {
		putBGRA64(dst, x, pix.Uint16(src, x))
	}
}
