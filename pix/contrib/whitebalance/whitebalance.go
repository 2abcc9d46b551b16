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

// Func applies factors to img in place.
type Func func(img pix.ImageDescriptor, f Factors)

// CopyFunc applies factors to src and writes the result to dst.
type CopyFunc func(dst, src pix.ImageDescriptor, f Factors)

// RowFunc applies f0 to the even and f1 to the odd samples of a row.
// dst and src may be the same row.
type RowFunc func(dst, src []byte, width int, f0, f1 uint8)

type depth uint8

const (
	depthNone depth = iota
	depth8
	depth16
	depthFloat
)

func depthOf(fcc pix.Fourcc) depth {
	if !fcc.IsBayer() && !fcc.IsMono() && !fcc.IsRAW() {
		return depthNone
	}
	switch fcc.Layout() {
	case pix.Layout8:
		return depth8
	case pix.Layout16:
		if fcc.SampleBits() == 16 {
			return depth16
		}
	case pix.LayoutFloat:
		return depthFloat
	}
	return depthNone
}

// GetRow returns the row function of tier for samples of format fcc.
func GetRow(tier pix.Tier, fcc pix.Fourcc) RowFunc {
	d := depthOf(fcc)
	switch tier {
	case pix.TierReference:
		switch d {
		case depth8:
			return baseRow8
		case depth16:
			return baseRow16
		case depthFloat:
			return baseRowFloat
		}
	case pix.TierSSSE3, pix.TierNEON:
		switch d {
		case depth8:
			return row8Lanes
		case depth16:
			return row16Lanes
		}
	case pix.TierAVX2:
		switch d {
		case depth8:
			if row8AVX2 != nil {
				return row8AVX2
			}
		case depth16:
			if row16AVX2 != nil {
				return row16AVX2
			}
		}
	}
	return nil
}

// row8AVX2 and row16AVX2 are set when the vector rows are built and the CPU
// runs them.
var row8AVX2, row16AVX2 RowFunc

// apply runs row over the image. Row y uses the factors of quadrant row y&1,
// so an odd last row or column uses the factors of row or column 0.
func apply(row RowFunc, dst, src pix.ImageDescriptor, f Factors) {
	q := f.Quadrants(src.Fourcc)
	w := src.Width()
	for y := range src.Height() {
		i := 2 * (y & 1)
		row(dst.Row(y), src.Row(y), w, q[i], q[i+1])
	}
}

// Get returns the in-place whitebalance of tier for images of type t, or
// nil when the tier does not implement the format.
func Get(tier pix.Tier, t pix.ImgType) Func {
	row := GetRow(tier, t.Fourcc)
	if row == nil || !t.Valid() {
		return nil
	}
	return func(img pix.ImageDescriptor, f Factors) {
		if f.IsIdentity() {
			return
		}
		apply(row, img, img, f)
	}
}

// GetCopy returns the copying whitebalance of tier from src to dst, which
// must have the same type.
func GetCopy(tier pix.Tier, dst, src pix.ImgType) CopyFunc {
	row := GetRow(tier, src.Fourcc)
	if row == nil || dst != src || !src.Valid() {
		return nil
	}
	return func(dst, src pix.ImageDescriptor, f Factors) {
		if f.IsIdentity() {
			for y := range src.Height() {
				copy(dst.Row(y), src.Row(y))
			}
			return
		}
		apply(row, dst, src, f)
	}
}

// Apply whitebalances img in place with the best available tier. It does
// nothing for formats no tier supports.
func Apply(img pix.ImageDescriptor, f Factors) {
	for t := range pix.Tiers() {
		if fn := Get(t, img.Type()); fn != nil {
			fn(img, f)
			return
		}
	}
}

// ApplyCopy whitebalances src into dst with the best available tier. It
// reports false when no tier supports the format.
func ApplyCopy(dst, src pix.ImageDescriptor, f Factors) bool {
	for t := range pix.Tiers() {
		if fn := GetCopy(t, dst.Type(), src.Type()); fn != nil {
			fn(dst, src, f)
			return true
		}
	}
	return false
}
