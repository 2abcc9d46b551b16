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

// deinterleave splits the 33 bytes from column x-1 of a row into the four
// column phases x-1+2i, x+2i, x+1+2i and x+2+2i for i in [0, 16).
func deinterleave(row []byte, x int) (m1, e0, e1, e2 pix.U8x16) {
	m1, e0 = pix.LoadInterleaved2U8(row[x-1:])
	e1, e2 = pix.LoadInterleaved2U8(row[x+1:])
	return m1, e0, e1, e2
}

var halves = [2]func(pix.U8x16) pix.U16x8{pix.PromoteLowerU8ToU16, pix.PromoteUpperU8ToU16}

// blocksNEON converts 32 pixels per step as two 16-pixel halves of the same
// loads. A step reads up to column x+32 and must end before column w-2.
func blocksNEON(k *kernel, out []byte, w *window, p pix.Pattern, x int) int {
	width := len(w.cur)
	for ; x+34 <= width; x += 32 {
		pm, p0, p1, p2 := deinterleave(w.prev, x)
		cm, c0, c1, c2 := deinterleave(w.cur, x)
		nm, n0, n1, n2 := deinterleave(w.next, x)
		for i, wide := range halves {
			even := taps{
				wide(pm), wide(p0), wide(p1),
				wide(cm), wide(c0), wide(c1),
				wide(nm), wide(n0), wide(n1),
			}
			odd := taps{
				wide(p0), wide(p1), wide(p2),
				wide(c0), wide(c1), wide(c2),
				wide(n0), wide(n1), wide(n2),
			}
			k.block16(out, x+16*i, p, &even, &odd)
		}
	}
	return x
}
