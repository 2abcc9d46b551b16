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

// Pattern names the colors of the first two pixels of a Bayer row.
// The pattern of a whole image is the pattern of its top-left pixel.
type Pattern uint8

const (
	PatternBG Pattern = iota
	PatternGB
	PatternGR
	PatternRG
)

// String returns the two-letter name of the pattern.
func (p Pattern) String() string {
	switch p {
	case PatternBG:
		return "BG"
	case PatternGB:
		return "GB"
	case PatternGR:
		return "GR"
	case PatternRG:
		return "RG"
	default:
		return "??"
	}
}

// NextPixel returns the pattern seen one pixel to the right.
func (p Pattern) NextPixel() Pattern {
	switch p {
	case PatternBG:
		return PatternGB
	case PatternGB:
		return PatternBG
	case PatternGR:
		return PatternRG
	default:
		return PatternGR
	}
}

// NextLine returns the pattern seen one row down.
func (p Pattern) NextLine() Pattern {
	switch p {
	case PatternBG:
		return PatternGR
	case PatternGB:
		return PatternRG
	case PatternGR:
		return PatternBG
	default:
		return PatternGB
	}
}

// At returns the pattern of pixel (x, y) of an image whose top-left pixel has
// pattern p.
func (p Pattern) At(x, y int) Pattern {
	if y&1 != 0 {
		p = p.NextLine()
	}
	if x&1 != 0 {
		p = p.NextPixel()
	}
	return p
}

// IsGreen reports whether the first pixel of the pattern is a green sample.
func (p Pattern) IsGreen() bool {
	return p == PatternGB || p == PatternGR
}

// Bayer8 returns the 8-bit fourcc with this pattern.
func (p Pattern) Bayer8() Fourcc {
	return [...]Fourcc{FccBGGR8, FccGBRG8, FccGRBG8, FccRGGB8}[p&3]
}

// Bayer16 returns the 16-bit fourcc with this pattern.
func (p Pattern) Bayer16() Fourcc {
	return [...]Fourcc{FccBGGR16, FccGBRG16, FccGRBG16, FccRGGB16}[p&3]
}

// BayerFloat returns the float fourcc with this pattern.
func (p Pattern) BayerFloat() Fourcc {
	return [...]Fourcc{FccBGGRFloat, FccGBRGFloat, FccGRBGFloat, FccRGGBFloat}[p&3]
}
