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

package packed

import (
	"github.com/ajroetker/go-rawpix/pix"
	"github.com/ajroetker/go-rawpix/pix/contrib/whitebalance"
)

// Func converts src into dst. Both descriptors must have the types the
// function was looked up for.
type Func func(dst, src pix.ImageDescriptor)

// WBFunc unpacks src to 8 bits and applies whitebalance factors in one pass.
type WBFunc func(dst, src pix.ImageDescriptor, f whitebalance.Factors)

// rowFunc converts one row of width samples.
type rowFunc func(dst, src []byte, width int)

type kind uint8

const (
	kindNone   kind = iota
	kindUnpack      // packed layout to 8/12/16-bit cells
	kindCells       // 16-bit cells to 8/12/16-bit cells
	kindBytes       // 8-bit samples to 16-bit cells
	kindPack        // 16-bit cells to a packed layout
)

// conv is a classified conversion.
type conv struct {
	kind    kind
	codec   *codec // packed side of kindUnpack and kindPack
	inBits  uint   // valid bits of a kindCells source
	outBits uint   // 8, 12 or 16
	width   int
}

// equivalent12 returns the low-justified 12-bit format matching f.
func equivalent12(f pix.Fourcc) pix.Fourcc {
	switch {
	case f.IsPWL():
		return pix.FccPWLRG12
	case f.IsMono():
		return pix.FccMono12
	case f.IsBayer():
		p, _ := f.BayerPattern()
		return [...]pix.Fourcc{pix.FccBGGR12, pix.FccGBRG12, pix.FccGRBG12, pix.FccRGGB12}[p&3]
	default:
		return pix.FccNull
	}
}

// unpackBits returns the bit depth written to dst when unpacking an
// inBits wide src, or 0 when dst is no valid target.
func unpackBits(dst, src pix.Fourcc, inBits uint) uint {
	if src.IsPWL() {
		if inBits == 12 && dst == pix.FccPWLRG12 {
			return 12
		}
		return 0
	}
	switch {
	case dst == src.Equivalent8() || dst == pix.FccRAW8:
		return 8
	case dst == src.Equivalent16() || dst == pix.FccRAW16:
		return 16
	case inBits == 12 && src.IsPacked() && dst == equivalent12(src):
		return 12
	}
	return 0
}

// classify decides which conversion turns src into dst.
func classify(dst, src pix.ImgType) conv {
	if !dst.Valid() || !src.Valid() || dst.Dim != src.Dim {
		return conv{}
	}
	s, d, w := src.Fourcc, dst.Fourcc, src.Dim.Width

	switch sl := s.Layout(); {
	case sl.IsPacked():
		c := codecFor(sl)
		if w%c.group != 0 {
			return conv{}
		}
		if out := unpackBits(d, s, c.bits); out != 0 {
			return conv{kind: kindUnpack, codec: c, inBits: c.bits, outBits: out, width: w}
		}
	case sl == pix.Layout16H12:
		if d == equivalent12(s) {
			return conv{kind: kindCells, inBits: 16, outBits: 12, width: w}
		}
	case sl == pix.Layout16 && !s.IsPWL():
		in := uint(s.SampleBits())
		if out := unpackBits(d, s, in); out != 0 {
			return conv{kind: kindCells, inBits: in, outBits: out, width: w}
		}
	case sl == pix.Layout8:
		if d == s.Equivalent16() || d == pix.FccRAW16 {
			return conv{kind: kindBytes, inBits: 8, outBits: 16, width: w}
		}
	}

	if dl := d.Layout(); dl.IsPacked() && !d.IsPWL() && (s == d.Equivalent16() || s == pix.FccRAW16) {
		c := codecFor(dl)
		if w%c.group == 0 {
			return conv{kind: kindPack, codec: c, inBits: 16, outBits: c.bits, width: w}
		}
	}
	return conv{}
}

func (c conv) image(row rowFunc) Func {
	if row == nil {
		return nil
	}
	return func(dst, src pix.ImageDescriptor) {
		for y := range src.Height() {
			row(dst.Row(y), src.Row(y), c.width)
		}
	}
}

// Get returns the conversion from src to dst implemented by tier, or nil
// when the tier does not implement the pair or the width is below its
// minimum.
func Get(tier pix.Tier, dst, src pix.ImgType) Func {
	c := classify(dst, src)
	if c.kind == kindNone {
		return nil
	}
	return c.image(c.row(tier))
}

// Best returns the conversion from src to dst of the best available tier.
func Best(dst, src pix.ImgType) Func {
	for t := range pix.Tiers() {
		if fn := Get(t, dst, src); fn != nil {
			return fn
		}
	}
	return nil
}

// row returns the row function of tier for c.
func (c conv) row(tier pix.Tier) rowFunc {
	switch tier {
	case pix.TierReference:
		return c.rowReference()
	case pix.TierSSSE3:
		if c.width >= minWidthSSSE3 {
			return c.rowSSSE3()
		}
	case pix.TierNEON:
		if c.width >= c.minWidthNEON() {
			return c.rowNEON()
		}
	}
	return nil
}

// GetWB returns a function unpacking src to the 8-bit equivalent dst and
// applying whitebalance factors to the result. The output equals Get
// followed by whitebalance.Apply with the same factors.
func GetWB(tier pix.Tier, dst, src pix.ImgType) WBFunc {
	c := classify(dst, src)
	if c.outBits != 8 || dst.Fourcc != src.Fourcc.Equivalent8() {
		return nil
	}
	row := c.row(tier)
	wb := whitebalance.GetRow(tier, dst.Fourcc)
	if row == nil || wb == nil {
		return nil
	}
	return func(dst, src pix.ImageDescriptor, f whitebalance.Factors) {
		q := f.Quadrants(dst.Fourcc)
		identity := f.IsIdentity()
		for y := range src.Height() {
			d := dst.Row(y)
			row(d, src.Row(y), c.width)
			if !identity {
				wb(d, d, c.width, q[2*(y&1)], q[2*(y&1)+1])
			}
		}
	}
}

// BestWB returns GetWB of the best available tier.
func BestWB(dst, src pix.ImgType) WBFunc {
	for t := range pix.Tiers() {
		if fn := GetWB(t, dst, src); fn != nil {
			return fn
		}
	}
	return nil
}
