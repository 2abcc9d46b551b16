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

// Package pwl decodes piecewise-linear compressed HDR samples.
//
// A PWL sensor compresses a 20-bit linear signal into 12-bit codes along a
// fixed curve of 10 control points. Decoding goes through a 4096-entry float
// table built on first use: codes map to linear light in [0, 1], which can be
// written as RGGBFloat or mapped to 8-bit display values with an HDR gain
// and whitebalance folded into per-channel tables (MapCache).
package pwl

import (
	"math"
	"sync"

	"github.com/ajroetker/go-rawpix/pix"
	"github.com/ajroetker/go-rawpix/pix/contrib/packed"
)

// Codes is the number of distinct 12-bit PWL codes.
const Codes = 4096

// maxLinear is the linear value of the last control point.
const maxLinear = 1<<20 - 1

// Control points of the compression curve: code -> 20-bit linear value.
var (
	curveCodes  = [...]int{0, 512, 1024, 1536, 2048, 2560, 3072, 3584, 3840, 4095}
	curveLinear = [...]float64{0, 512, 2048, 8192, 32768, 98304, 262144, 524288, 786432, maxLinear}
)

// linearize interpolates the curve at code.
func linearize(code int) float64 {
	for i := 1; i < len(curveCodes); i++ {
		if code <= curveCodes[i] {
			c0, c1 := curveCodes[i-1], curveCodes[i]
			l0, l1 := curveLinear[i-1], curveLinear[i]
			return l0 + float64(code-c0)*(l1-l0)/float64(c1-c0)
		}
	}
	return maxLinear
}

// Table returns the decode table: entry c is the linear value of code c,
// normalised to [0, 1]. The table is built once and must not be modified.
var Table = sync.OnceValue(func() *[Codes]float32 {
	var lut [Codes]float32
	for c := range lut {
		lut[c] = float32(linearize(c) / maxLinear)
	}
	pix.Logger().Debug("pwl decode table built", "codes", Codes)
	return &lut
})

// Decode returns the linear value of a 12-bit code. Bits above the low 12
// are ignored.
func Decode(code uint16) float32 {
	return Table()[code&(Codes-1)]
}

// Code12 returns the 12-bit code of pixel x of a PWL_RG12 row.
func Code12(row []byte, x int) uint16 {
	return pix.Uint16(row, x) & (Codes - 1)
}

// Code16H12 returns the 12-bit code of pixel x of a PWL_RG16H12 row.
func Code16H12(row []byte, x int) uint16 {
	return pix.Uint16(row, x) >> 4
}

// Code12MIPI returns the 12-bit code of pixel x of a PWL_RG12_MIPI row. The
// last pixel of a row with odd width is stored in a whole group whose second
// pixel is padding.
func Code12MIPI(row []byte, x int) uint16 {
	return packed.UnpackSample(pix.Layout12MIPI, row, x) >> 4
}

// PixelPWL12 decodes pixel x of a PWL_RG12 row.
func PixelPWL12(row []byte, x int) float32 { return Decode(Code12(row, x)) }

// PixelPWL12MIPI decodes pixel x of a PWL_RG12_MIPI row.
func PixelPWL12MIPI(row []byte, x int) float32 { return Decode(Code12MIPI(row, x)) }

// PixelPWL16H12 decodes pixel x of a PWL_RG16H12 row.
func PixelPWL16H12(row []byte, x int) float32 { return Decode(Code16H12(row, x)) }

// codeFunc returns the code reader of a PWL format.
func codeFunc(f pix.Fourcc) func(row []byte, x int) uint16 {
	switch f {
	case pix.FccPWLRG12:
		return Code12
	case pix.FccPWLRG12MIPI:
		return Code12MIPI
	case pix.FccPWLRG16H12:
		return Code16H12
	}
	return nil
}

// GainFactor returns the linear multiplier of an HDR gain in dB, clipped to
// [0, 120] dB.
func GainFactor(hdrGain float32) float64 {
	g := min(max(float64(hdrGain), 0), 120)
	return math.Pow(10, g/20)
}

// Quantize maps v in [0, 1] to [0, maxVal] rounding half up. Values outside
// the range (and NaN) clip.
func Quantize(v float64, maxVal float64) float64 {
	q := math.Floor(v*maxVal + 0.5)
	if !(q > 0) {
		return 0
	}
	return min(q, maxVal)
}
