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

// Package whitebalance multiplies the samples of Bayer, mono and RAW images
// by per-channel gains in fixed point.
//
// A gain is stored as a factor with Unity (64) meaning 1.0. Each of the four
// pixels of a 2x2 Bayer cell gets the factor of its color:
//
//	8-bit:  out = min(255, in*f >> 6)
//	16-bit: out = min(65535, in*f >> 6)
//	float:  out = min(1, in*f/64)
//
// Applying the identity factors is a true no-op: the image is not written.
package whitebalance

import (
	"fmt"

	"github.com/ajroetker/go-rawpix/pix"
)

// Unity is the factor of a gain of 1.0.
const Unity = 64

// maxGain is the largest gain a factor represents.
const maxGain = 4

// Factors are the fixed point gains of the four Bayer channels.
type Factors struct {
	R, GR, B, GB uint8
}

// Identity returns factors that leave every sample unchanged.
func Identity() Factors {
	return Factors{Unity, Unity, Unity, Unity}
}

// FactorFromGain converts a gain to a factor. The gain is clipped to [0, 4]
// and the factor saturates at 255.
func FactorFromGain(g float32) uint8 {
	g = max(0, min(g, maxGain))
	return uint8(min(255, int(g*Unity)))
}

// NewFactors converts four gains to factors.
func NewFactors(r, gr, b, gb float32) Factors {
	return Factors{
		R:  FactorFromGain(r),
		GR: FactorFromGain(gr),
		B:  FactorFromGain(b),
		GB: FactorFromGain(gb),
	}
}

// FactorsFromParams converts whitebalance parameters. Parameters with Apply
// unset give the identity.
func FactorsFromParams(p pix.WhitebalanceParams) Factors {
	if !p.Apply {
		return Identity()
	}
	return NewFactors(p.R, p.GR, p.B, p.GB)
}

// IsIdentity reports whether f leaves every sample unchanged.
func (f Factors) IsIdentity() bool {
	return f == Identity()
}

func (f Factors) String() string {
	return fmt.Sprintf("wb(r=%d gr=%d b=%d gb=%d)", f.R, f.GR, f.B, f.GB)
}

// of returns the factor of the color at a pixel with pattern p.
func (f Factors) of(p pix.Pattern) uint8 {
	switch p {
	case pix.PatternBG:
		return f.B
	case pix.PatternGB:
		return f.GB
	case pix.PatternGR:
		return f.GR
	default:
		return f.R
	}
}

// Quadrants returns the factors of the 2x2 cell of fcc, indexed by
// (y&1)<<1 | x&1. Formats without a mosaic use R for every pixel.
func (f Factors) Quadrants(fcc pix.Fourcc) [4]uint8 {
	p, ok := fcc.BayerPattern()
	if !ok {
		return [4]uint8{f.R, f.R, f.R, f.R}
	}
	var q [4]uint8
	for i := range q {
		q[i] = f.of(p.At(i&1, i>>1))
	}
	return q
}
