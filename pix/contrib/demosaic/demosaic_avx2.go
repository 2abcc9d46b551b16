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

package demosaic

import (
	"encoding/binary"
	"simd/archsimd"
	"unsafe"

	"github.com/ajroetker/go-rawpix/pix"
)

// Each 32-byte load is read as eight int32 lanes holding four pixels each.
// Byte plane i of a load from column o holds the pixels o+4k+i, so the
// planes of the loads from x-1, x and x+1 are the left, centre and right
// taps of the same 8 sites. Planes 0 and 2 have the color of column x,
// planes 1 and 3 the other one.

type vtaps struct {
	pl, p0, pr archsimd.Int32x8
	cl, c0, cr archsimd.Int32x8
	nl, n0, nr archsimd.Int32x8
}

// vconst holds the broadcast constants of a row.
type vconst struct {
	bytes     archsimd.Int32x8
	threshold archsimd.Int32x8
	zero      archsimd.Int32x8
	max       archsimd.Int32x8
	alpha     archsimd.Int32x8
	matrix    [9]archsimd.Int32x8
}

func (k *kernel) constants() *vconst {
	c := &vconst{
		bytes:     archsimd.BroadcastInt32x8(0xFF),
		threshold: archsimd.BroadcastInt32x8(greenThreshold),
		zero:      archsimd.BroadcastInt32x8(0),
		max:       archsimd.BroadcastInt32x8(0xFF),
		alpha:     archsimd.BroadcastInt32x8(-0x1000000),
	}
	for i, m := range k.matrix {
		c.matrix[i] = archsimd.BroadcastInt32x8(int32(m))
	}
	return c
}

// load32 reads row[x:x+32] as eight little-endian words.
func load32(row []byte, x int) archsimd.Int32x8 {
	_ = row[x+31]
	return archsimd.LoadInt32x8Slice(unsafe.Slice((*int32)(unsafe.Pointer(&row[x])), 8))
}

// planes splits the four pixels of every lane.
func planes(v, bytes archsimd.Int32x8) [4]archsimd.Int32x8 {
	return [4]archsimd.Int32x8{
		v.And(bytes),
		v.ShiftAllRight(8).And(bytes),
		v.ShiftAllRight(16).And(bytes),
		v.ShiftAllRight(24).And(bytes),
	}
}

func vavg2(a, b archsimd.Int32x8) archsimd.Int32x8 {
	return a.Add(b).ShiftAllRight(1)
}

func vabsDiff(a, b archsimd.Int32x8) archsimd.Int32x8 {
	return a.Sub(b).Max(b.Sub(a))
}

func vdiag(t *vtaps) archsimd.Int32x8 {
	return t.pl.Add(t.pr).Add(t.nl.Add(t.nr)).ShiftAllRight(2)
}

func (k *kernel) aroundGreenVec(t *vtaps) archsimd.Int32x8 {
	all := t.cl.Add(t.cr).Add(t.p0.Add(t.n0)).ShiftAllRight(2)
	if k.simpleGreen {
		return all
	}
	dh, dv := vabsDiff(t.cl, t.cr), vabsDiff(t.p0, t.n0)
	vertical := vavg2(t.p0, t.n0).Merge(all, dv.Less(dh))
	return vavg2(t.cl, t.cr).Merge(vertical, dh.Less(dv))
}

func (k *kernel) onGreenVec(t *vtaps, c *vconst) archsimd.Int32x8 {
	if !k.avgGreen {
		return t.c0
	}
	flat := vabsDiff(t.pl, t.pr).Max(vabsDiff(t.pl, t.nl)).Less(c.threshold)
	s := t.pl.Add(t.pr).Add(t.nl.Add(t.nr)).Add(t.c0.ShiftAllLeft(2)).ShiftAllRight(3)
	return s.Merge(t.c0, flat)
}

// vec is pixel on the 8 sites of t, packed as B | G<<8 | R<<16 (| A<<24).
func (k *kernel) vec(p pix.Pattern, t *vtaps, c *vconst) archsimd.Int32x8 {
	var r, g, b archsimd.Int32x8
	switch p {
	case pix.PatternGR:
		r, g, b = vavg2(t.cl, t.cr), k.onGreenVec(t, c), vavg2(t.p0, t.n0)
	case pix.PatternGB:
		r, g, b = vavg2(t.p0, t.n0), k.onGreenVec(t, c), vavg2(t.cl, t.cr)
	case pix.PatternRG:
		r, g, b = t.c0, k.aroundGreenVec(t), vdiag(t)
	default:
		r, g, b = vdiag(t), k.aroundGreenVec(t), t.c0
	}
	if k.useMatrix {
		m := &c.matrix
		channel := func(m0, m1, m2 archsimd.Int32x8) archsimd.Int32x8 {
			acc := r.Mul(m0).Add(g.Mul(m1)).Add(b.Mul(m2))
			return acc.Max(c.zero).ShiftAllRight(6).Min(c.max)
		}
		r, g, b = channel(m[0], m[1], m[2]), channel(m[3], m[4], m[5]), channel(m[6], m[7], m[8])
	}
	px := b.Or(g.ShiftAllLeft(8)).Or(r.ShiftAllLeft(16))
	if k.alpha {
		px = px.Or(c.alpha)
	}
	return px
}

// blocksAVX2Vec converts 32 pixels per step. A step reads up to column x+32
// and must end before column w-2.
func blocksAVX2Vec(k *kernel, out []byte, w *window, p pix.Pattern, x int) int {
	width := len(w.cur)
	if x+34 > width {
		return x
	}
	c := k.constants()
	var words [4][8]int32
	for ; x+34 <= width; x += 32 {
		var rows [3][3][4]archsimd.Int32x8
		for r, row := range [3][]byte{w.prev, w.cur, w.next} {
			for d := range 3 {
				rows[r][d] = planes(load32(row, x-1+d), c.bytes)
			}
		}
		for i := range 4 {
			t := vtaps{
				rows[0][0][i], rows[0][1][i], rows[0][2][i],
				rows[1][0][i], rows[1][1][i], rows[1][2][i],
				rows[2][0][i], rows[2][1][i], rows[2][2][i],
			}
			k.vec(p.At(i, 0), &t, c).Store(&words[i])
		}
		for j := range 8 {
			for i := range 4 {
				v := uint32(words[i][j])
				px := x + 4*j + i
				if k.alpha {
					binary.LittleEndian.PutUint32(out[4*px:], v)
				} else {
					o := out[3*px : 3*px+3]
					o[0], o[1], o[2] = byte(v), byte(v>>8), byte(v>>16)
				}
			}
		}
	}
	return x
}
