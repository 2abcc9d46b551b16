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

// taps holds the 3x3 neighbourhoods of eight sites of the same color, one
// site per lane: l, 0 and r are the columns x-1, x and x+1.
type taps struct {
	pl, p0, pr pix.U16x8
	cl, c0, cr pix.U16x8
	nl, n0, nr pix.U16x8
}

func avg2(a, b pix.U16x8) pix.U16x8 {
	return pix.ShiftRightU16(pix.AddU16(a, b), 1)
}

func diag(t *taps) pix.U16x8 {
	s := pix.AddU16(pix.AddU16(t.pl, t.pr), pix.AddU16(t.nl, t.nr))
	return pix.ShiftRightU16(s, 2)
}

// aroundGreenLanes is aroundGreen on eight sites.
func (k *kernel) aroundGreenLanes(t *taps) pix.U16x8 {
	all := pix.ShiftRightU16(pix.AddU16(pix.AddU16(t.cl, t.cr), pix.AddU16(t.p0, t.n0)), 2)
	if k.simpleGreen {
		return all
	}
	dh, dv := pix.AbsDiffU16(t.cl, t.cr), pix.AbsDiffU16(t.p0, t.n0)
	vertical := pix.IfThenElseU16(pix.LessThanU16(dv, dh), avg2(t.p0, t.n0), all)
	return pix.IfThenElseU16(pix.LessThanU16(dh, dv), avg2(t.cl, t.cr), vertical)
}

// onGreenLanes is onGreen on eight sites.
func (k *kernel) onGreenLanes(t *taps) pix.U16x8 {
	if !k.avgGreen {
		return t.c0
	}
	th := pix.SetU16x8(greenThreshold)
	flat := pix.AndU16(
		pix.LessThanU16(pix.AbsDiffU16(t.pl, t.pr), th),
		pix.LessThanU16(pix.AbsDiffU16(t.pl, t.nl), th))
	s := pix.AddU16(pix.AddU16(t.pl, t.pr), pix.AddU16(t.nl, t.nr))
	s = pix.ShiftRightU16(pix.AddU16(s, pix.ShiftLeftU16(t.c0, 2)), 3)
	return pix.IfThenElseU16(flat, s, t.c0)
}

// lanes is pixel on eight sites of pattern p.
func (k *kernel) lanes(p pix.Pattern, t *taps) (r, g, b pix.U16x8) {
	switch p {
	case pix.PatternGR:
		r, g, b = avg2(t.cl, t.cr), k.onGreenLanes(t), avg2(t.p0, t.n0)
	case pix.PatternGB:
		r, g, b = avg2(t.p0, t.n0), k.onGreenLanes(t), avg2(t.cl, t.cr)
	case pix.PatternRG:
		r, g, b = t.c0, k.aroundGreenLanes(t), diag(t)
	default:
		r, g, b = diag(t), k.aroundGreenLanes(t), t.c0
	}
	if k.useMatrix {
		r, g, b = k.matrixLanes(r, g, b)
	}
	return r, g, b
}

// matrixLanes applies the color matrix in 32-bit lanes. The arithmetic shift
// rounds negative sums down where the scalar division truncates; both clip to
// the same 0.
func (k *kernel) matrixLanes(r, g, b pix.U16x8) (pix.U16x8, pix.U16x8, pix.U16x8) {
	ri, gi, bi := pix.PromoteU16ToI32(r), pix.PromoteU16ToI32(g), pix.PromoteU16ToI32(b)
	m := &k.matrix
	channel := func(m0, m1, m2 int16) pix.U16x8 {
		var acc pix.I32x8
		acc = pix.MulAddI32(acc, ri, int32(m0))
		acc = pix.MulAddI32(acc, gi, int32(m1))
		acc = pix.MulAddI32(acc, bi, int32(m2))
		return pix.ClampI32ToU8(pix.ShiftRightI32(acc, 6))
	}
	return channel(m[0], m[1], m[2]), channel(m[3], m[4], m[5]), channel(m[6], m[7], m[8])
}

// block16 converts the 16 pixels from the even column x: even holds the
// sites x, x+2, ... and odd the sites x+1, x+3, ...
func (k *kernel) block16(out []byte, x int, p pix.Pattern, even, odd *taps) {
	re, ge, be := k.lanes(p, even)
	ro, gO, bo := k.lanes(p.NextPixel(), odd)
	b, g, r := pix.ZipU16ToU8(be, bo), pix.ZipU16ToU8(ge, gO), pix.ZipU16ToU8(re, ro)
	if k.alpha {
		pix.StoreInterleaved4U8(out[4*x:], b, g, r, pix.SetU8x16(0xFF))
		return
	}
	pix.StoreInterleaved3U8(out[3*x:], b, g, r)
}
