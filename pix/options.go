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

package pix

// WhitebalanceParams holds per-channel gains. Gains are normalised so 1.0 is
// neutral; values outside [0, 4] are clipped when the gains are converted to
// fixed point. Apply false means the gains are ignored.
type WhitebalanceParams struct {
	Apply bool
	R     float32
	GR    float32
	B     float32
	GB    float32
}

// NeutralWhitebalance returns gains of 1.0 with Apply unset.
func NeutralWhitebalance() WhitebalanceParams {
	return WhitebalanceParams{R: 1, GR: 1, B: 1, GB: 1}
}

// ColorMatrix is a 3x3 color correction matrix in fixed point, 64 = 1.0.
// Rows produce R, G and B from the (R, G, B) input:
//
//	r' = (r*M[0] + g*M[1] + b*M[2]) / 64
type ColorMatrix [9]int16

// DefaultColorMatrix boosts saturation slightly.
func DefaultColorMatrix() ColorMatrix {
	return ColorMatrix{
		90, -13, -13,
		-13, 90, -13,
		-13, -13, 90,
	}
}

// NeutralColorMatrix is the identity.
func NeutralColorMatrix() ColorMatrix {
	return ColorMatrix{
		64, 0, 0,
		0, 64, 0,
		0, 0, 64,
	}
}

// Apply transforms one pixel and clips each channel to [0, 255].
func (m *ColorMatrix) Apply(r, g, b uint8) (uint8, uint8, uint8) {
	ri, gi, bi := int32(r), int32(g), int32(b)
	rr := (ri*int32(m[0]) + gi*int32(m[1]) + bi*int32(m[2])) / 64
	gg := (ri*int32(m[3]) + gi*int32(m[4]) + bi*int32(m[5])) / 64
	bb := (ri*int32(m[6]) + gi*int32(m[7]) + bi*int32(m[8])) / 64
	return ClipU8(rr), ClipU8(gg), ClipU8(bb)
}

// DemosaicOptions select the variants of the edge-sensing demosaic.
type DemosaicOptions struct {
	ColorMatrix    ColorMatrix
	UseColorMatrix bool

	// UseAvgGreen smooths green sites toward their diagonal neighbours when
	// the local gradients are below the noise threshold.
	UseAvgGreen bool

	// SimpleGreen estimates green at red and blue sites as the plain average
	// of the four green neighbours instead of following the lower gradient.
	SimpleGreen bool
}

// DefaultDemosaicOptions returns the options used by the capture pipeline.
func DefaultDemosaicOptions() DemosaicOptions {
	return DemosaicOptions{
		ColorMatrix: DefaultColorMatrix(),
		UseAvgGreen: true,
	}
}

// PWLParams parameterise the PWL to display conversion.
type PWLParams struct {
	// HDRGain in dB, [0, 120]. The linear value is multiplied by
	// 10^(HDRGain/20) before it is scaled to 8 bits.
	HDRGain float32
}

// ClipU8 clips v to [0, 255].
func ClipU8(v int32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 0xFF {
		return 0xFF
	}
	return uint8(v)
}
