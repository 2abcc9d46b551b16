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

package demosaic

import "github.com/ajroetker/go-rawpix/pix"

// strided gathers the even columns around x of a row: x-1+2i, x+2i, x+1+2i
// and x+2+2i for i in [0, 8).
func strided(row []byte, x int) (m1, e0, e1, e2 pix.U16x8) {
	return pix.LoadStridedU8ToU16(row[x-1:], 2),
		pix.LoadStridedU8ToU16(row[x:], 2),
		pix.LoadStridedU8ToU16(row[x+1:], 2),
		pix.LoadStridedU8ToU16(row[x+2:], 2)
}

// blocksSSE41 converts 16 pixels per step. A step reads up to column x+16
// and must end before column w-2.
func blocksSSE41(k *kernel, out []byte, w *window, p pix.Pattern, x int) int {
	width := len(w.cur)
	for ; x+18 <= width; x += 16 {
		pm, p0, p1, p2 := strided(w.prev, x)
		cm, c0, c1, c2 := strided(w.cur, x)
		nm, n0, n1, n2 := strided(w.next, x)
		even := taps{pm, p0, p1, cm, c0, c1, nm, n0, n1}
		odd := taps{p0, p1, p2, c0, c1, c2, n0, n1, n2}
		k.block16(out, x, p, &even, &odd)
	}
	return x
}
