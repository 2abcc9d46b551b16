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

func baseRow8(dst, src []byte, width int, f0, f1 uint8) {
	f := [2]uint32{uint32(f0), uint32(f1)}
	for x, v := range src[:width] {
		dst[x] = uint8(min(uint32(v)*f[x&1]>>6, 0xFF))
	}
}

func baseRow16(dst, src []byte, width int, f0, f1 uint8) {
	f := [2]uint32{uint32(f0), uint32(f1)}
	for x := range width {
		v := uint32(pix.Uint16(src, x))
		pix.PutUint16(dst, x, uint16(min(v*f[x&1]>>6, 0xFFFF)))
	}
}

func baseRowFloat(dst, src []byte, width int, f0, f1 uint8) {
	g := [2]float32{float32(f0) / Unity, float32(f1) / Unity}
	for x := range width {
		pix.PutFloat32(dst, x, min(1, pix.Float32(src, x)*g[x&1]))
	}
}
