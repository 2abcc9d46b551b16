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

package pwl

import "github.com/ajroetker/go-rawpix/pix"

// Func converts src into dst. Both descriptors must have the types the
// function was looked up for.
type Func func(dst, src pix.ImageDescriptor)

// CacheFunc converts src into dst through the tables of a MapCache.
type CacheFunc func(dst, src pix.ImageDescriptor, cache *MapCache)

// GetToFloat returns the decode of a PWL src to its float equivalent
// (RGGBFloat), or nil.
func GetToFloat(dst, src pix.ImgType) Func {
	code := codeFunc(src.Fourcc)
	if code == nil || dst.Dim != src.Dim || dst.Fourcc != src.Fourcc.EquivalentFloat() || !src.Valid() {
		return nil
	}
	return func(dst, src pix.ImageDescriptor) {
		lut := Table()
		w := src.Width()
		for y := range src.Height() {
			in, out := src.Row(y), dst.Row(y)
			for x := range w {
				pix.PutFloat32(out, x, lut[code(in, x)])
			}
		}
	}
}

// ToFloat decodes a PWL image to RGGBFloat. It reports false when the pair
// is not supported.
func ToFloat(dst, src pix.ImageDescriptor) bool {
	fn := GetToFloat(dst.Type(), src.Type())
	if fn == nil {
		return false
	}
	fn(dst, src)
	return true
}

func floatSource(f pix.Fourcc) bool {
	return f.Layout() == pix.LayoutFloat && (f.IsBayer() || f.IsMono() || f.IsRAW())
}

// getFloatTo returns the quantization of a float src to dst, which must be
// the equivalent 8 or 16-bit format.
func getFloatTo(dst, src pix.ImgType, equivalent pix.Fourcc, put func(row []byte, x int, v float32)) Func {
	if !floatSource(src.Fourcc) || dst.Fourcc != equivalent || dst.Dim != src.Dim {
		return nil
	}
	return func(dst, src pix.ImageDescriptor) {
		w := src.Width()
		for y := range src.Height() {
			in, out := src.Row(y), dst.Row(y)
			for x := range w {
				put(out, x, pix.Float32(in, x))
			}
		}
	}
}

// GetFloatTo8 returns the conversion of a float mono, RAW or Bayer image to
// its 8-bit equivalent: clip(floor(v*255 + 0.5)).
func GetFloatTo8(dst, src pix.ImgType) Func {
	return getFloatTo(dst, src, src.Fourcc.Equivalent8(), func(row []byte, x int, v float32) {
		row[x] = uint8(Quantize(float64(v), 0xFF))
	})
}

// GetFloatTo16 is GetFloatTo8 for the 16-bit equivalent, scaled by 65535.
func GetFloatTo16(dst, src pix.ImgType) Func {
	return getFloatTo(dst, src, src.Fourcc.Equivalent16(), func(row []byte, x int, v float32) {
		pix.PutUint16(row, x, uint16(Quantize(float64(v), 0xFFFF)))
	})
}

// FloatTo8 quantizes src to its 8-bit equivalent dst. It reports false when
// the pair is not supported.
func FloatTo8(dst, src pix.ImageDescriptor) bool {
	fn := GetFloatTo8(dst.Type(), src.Type())
	if fn == nil {
		return false
	}
	fn(dst, src)
	return true
}

// FloatTo16 quantizes src to its 16-bit equivalent dst.
func FloatTo16(dst, src pix.ImageDescriptor) bool {
	fn := GetFloatTo16(dst.Type(), src.Type())
	if fn == nil {
		return false
	}
	fn(dst, src)
	return true
}

// GetToFcc8WB returns the conversion of a PWL src to the 8-bit Bayer dst
// (RGGB8) through the per-quadrant tables of a MapCache. The cache must be
// updated before the call.
func GetToFcc8WB(dst, src pix.ImgType) CacheFunc {
	code := codeFunc(src.Fourcc)
	if code == nil || dst.Dim != src.Dim || dst.Fourcc != src.Fourcc.Equivalent8() || !src.Valid() {
		return nil
	}
	return func(dst, src pix.ImageDescriptor, cache *MapCache) {
		w := src.Width()
		for y := range src.Height() {
			in, out := src.Row(y), dst.Row(y)
			even, odd := cache.Table(2*(y&1)), cache.Table(2*(y&1)+1)
			for x := 0; x < w; x++ {
				t := even
				if x&1 != 0 {
					t = odd
				}
				out[x] = t[code(in, x)]
			}
		}
	}
}

// ToFcc8WB converts a PWL image to RGGB8 with cache, which is updated
// to params and wb first.
func ToFcc8WB(dst, src pix.ImageDescriptor, cache *MapCache, params pix.PWLParams, wb pix.WhitebalanceParams) bool {
	fn := GetToFcc8WB(dst.Type(), src.Type())
	if fn == nil {
		return false
	}
	cache.Update(params, wb)
	fn(dst, src, cache)
	return true
}
