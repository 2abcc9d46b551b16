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

// Package mono expands MONO8 and MONO16 images to gray BGR24, BGRA32 and
// BGRA64. Alpha is always opaque; 8-bit samples move to the high byte of a
// 64-bit pixel and 16-bit samples keep their high byte in a 24 or 32-bit one.
package mono

import "github.com/ajroetker/go-rawpix/pix"

// Func converts src into dst. Both descriptors must have the types the
// function was looked up for.
type Func func(dst, src pix.ImageDescriptor)

type rowFunc func(dst, src []byte, width int)

// minWidthLanes is the smallest width the block tiers accept.
const minWidthLanes = 16

type pair struct {
	dst, src pix.Fourcc
}

type rows struct {
	base, lanes rowFunc
}

var conversions = map[pair]rows{
	{pix.FccBGR24, pix.FccMono8}:   {baseMono8ToBGR24, lanesMono8ToBGR24},
	{pix.FccBGRA32, pix.FccMono8}:  {baseMono8ToBGRA32, lanesMono8ToBGRA32},
	{pix.FccBGRA64, pix.FccMono8}:  {baseMono8ToBGRA64, lanesMono8ToBGRA64},
	{pix.FccBGR24, pix.FccMono16}:  {baseMono16ToBGR24, lanesMono16ToBGR24},
	{pix.FccBGRA32, pix.FccMono16}: {baseMono16ToBGRA32, lanesMono16ToBGRA32},
	{pix.FccBGRA64, pix.FccMono16}: {baseMono16ToBGRA64, lanesMono16ToBGRA64},
}

// Outputs returns the formats a mono format expands to.
func Outputs(src pix.Fourcc) []pix.Fourcc {
	var out []pix.Fourcc
	for _, dst := range []pix.Fourcc{pix.FccBGR24, pix.FccBGRA32, pix.FccBGRA64} {
		if _, ok := conversions[pair{dst, src}]; ok {
			out = append(out, dst)
		}
	}
	return out
}

// Get returns the expansion of tier from src to dst, or nil.
func Get(tier pix.Tier, dst, src pix.ImgType) Func {
	r, ok := conversions[pair{dst.Fourcc, src.Fourcc}]
	if !ok || dst.Dim != src.Dim || !src.Valid() {
		return nil
	}
	var row rowFunc
	switch tier {
	case pix.TierReference:
		row = r.base
	case pix.TierSSSE3, pix.TierNEON:
		if src.Dim.Width >= minWidthLanes {
			row = r.lanes
		}
	}
	if row == nil {
		return nil
	}
	return func(dst, src pix.ImageDescriptor) {
		w := src.Width()
		for y := range src.Height() {
			row(dst.Row(y), src.Row(y), w)
		}
	}
}

// Best returns the expansion from src to dst of the best available tier.
func Best(dst, src pix.ImgType) Func {
	for t := range pix.Tiers() {
		if fn := Get(t, dst, src); fn != nil {
			return fn
		}
	}
	return nil
}
