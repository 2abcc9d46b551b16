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

// Func demosaics src into dst. Both descriptors must have the types the
// function was looked up for.
type Func func(dst, src pix.ImageDescriptor, opts pix.DemosaicOptions)

// MinHeight is the smallest image height any tier accepts.
const MinHeight = 2

// MinWidth returns the smallest image width tier accepts, or 0 when the tier
// has no demosaic.
func MinWidth(tier pix.Tier) int {
	switch tier {
	case pix.TierReference:
		return 4
	case pix.TierSSE41:
		return 18
	case pix.TierNEON:
		return 32
	case pix.TierAVX2:
		if blocksAVX2 != nil {
			return 36
		}
	}
	return 0
}

// blocksAVX2 is set by z_demosaic_amd64.go when the vector kernel is built
// and the CPU runs it.
var blocksAVX2 blockFunc

// Supports reports whether some tier can demosaic src into dst.
func Supports(dst, src pix.ImgType) bool {
	return Best(dst, src) != nil
}

// Get returns the demosaic of tier from src to dst, or nil when the tier
// does not implement the pair or the geometry is outside its limits.
func Get(tier pix.Tier, dst, src pix.ImgType) Func {
	if !src.Fourcc.IsBayer8() || dst.Dim != src.Dim {
		return nil
	}
	if dst.Fourcc != pix.FccBGR24 && dst.Fourcc != pix.FccBGRA32 {
		return nil
	}
	minWidth := MinWidth(tier)
	w, h := src.Dim.Width, src.Dim.Height
	if minWidth == 0 || w < minWidth || h < MinHeight || w%2 != 0 || h%2 != 0 {
		return nil
	}

	var blocks blockFunc
	switch tier {
	case pix.TierSSE41:
		blocks = blocksSSE41
	case pix.TierNEON:
		blocks = blocksNEON
	case pix.TierAVX2:
		blocks = blocksAVX2
	}
	alpha := dst.Fourcc == pix.FccBGRA32
	return func(dst, src pix.ImageDescriptor, opts pix.DemosaicOptions) {
		k := newKernel(&opts, alpha)
		k.image(dst, src, blocks)
	}
}

// Best returns the demosaic from src to dst of the best available tier.
func Best(dst, src pix.ImgType) Func {
	for t := range pix.Tiers() {
		if fn := Get(t, dst, src); fn != nil {
			return fn
		}
	}
	return nil
}

// kernel is the per-call state derived from the options.
type kernel struct {
	matrix      pix.ColorMatrix
	useMatrix   bool
	avgGreen    bool
	simpleGreen bool
	alpha       bool
}

func newKernel(opts *pix.DemosaicOptions, alpha bool) kernel {
	return kernel{
		matrix:      opts.ColorMatrix,
		useMatrix:   opts.UseColorMatrix,
		avgGreen:    opts.UseAvgGreen,
		simpleGreen: opts.SimpleGreen,
		alpha:       alpha,
	}
}

// window is the neighbourhood of the row being converted.
type window struct {
	prev, cur, next []byte
}

// blockFunc converts pixels from x on in blocks while a whole block fits in
// front of the last two columns, and returns the first pixel it left.
type blockFunc func(k *kernel, out []byte, w *window, p pix.Pattern, x int) int

// image walks the rows in pattern pairs. The first and last row mirror the
// missing neighbour row unless the flags say the real row exists.
func (k *kernel) image(dst, src pix.ImageDescriptor, blocks blockFunc) {
	cur, _ := src.Fourcc.BayerPattern()
	nxt := cur.NextLine()
	h := src.Height()

	line := func(y, above, below int, p pix.Pattern) {
		w := window{prev: src.Row(y + above), cur: src.Row(y), next: src.Row(y + below)}
		k.row(dst.Row(y), &w, p, blocks)
	}

	if src.Flags&pix.FlagNoWrapBegin != 0 {
		line(0, -1, 1, cur)
	} else {
		line(0, 1, 1, cur)
	}
	y := 1
	for ; y < h-1; y += 2 {
		line(y, -1, 1, nxt)
		line(y+1, -1, 1, cur)
	}
	if src.Flags&pix.FlagNoWrapEnd != 0 {
		line(y, -1, 1, nxt)
	} else {
		line(y, -1, -1, nxt)
	}
}

// row converts one row whose first pixel has pattern p. Columns 0 and 1 take
// the value computed at column 1, columns w-2 and w-1 the value at w-2.
func (k *kernel) row(out []byte, w *window, p pix.Pattern, blocks blockFunc) {
	width := len(w.cur)
	odd := p.NextPixel()

	px := k.pixel(odd, w, 1)
	k.put(out, 0, px)
	k.put(out, 1, px)

	x := 2
	if blocks != nil {
		x = blocks(k, out, w, p, x)
	}
	for ; x < width-2; x += 2 {
		k.put(out, x, k.pixel(p, w, x))
		k.put(out, x+1, k.pixel(odd, w, x+1))
	}

	px = k.pixel(p, w, x)
	k.put(out, x, px)
	k.put(out, x+1, px)
}

func (k *kernel) put(out []byte, x int, px rgb) {
	if k.alpha {
		o := out[4*x : 4*x+4]
		o[0], o[1], o[2], o[3] = px.b, px.g, px.r, 0xFF
		return
	}
	o := out[3*x : 3*x+3]
	o[0], o[1], o[2] = px.b, px.g, px.r
}
