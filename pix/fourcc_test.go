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

import (
	"errors"
	"testing"
)

func TestFourccCodes(t *testing.T) {
	tests := []struct {
		fcc  Fourcc
		code string
		name string
		bpp  int
	}{
		{FccBGRA32, "BGR4", "BGRA32", 32},
		{FccBGR24, "BGR3", "BGR24", 24},
		{FccMono8, "Y800", "MONO8", 8},
		{FccMono16, "Y16 ", "MONO16", 16},
		{FccBGGR8, "BA81", "BGGR8", 8},
		{FccGRBG16, "BA16", "GRBG16", 16},
		{FccRGGB12MIPI, "RGDP", "RGGB12_MIPI_PACKED", 12},
		{FccMono10Spacked, "Y10p", "MONO10_SPACKED", 10},
		{FccRGGBFloat, "RGf0", "RGGBFloat", 32},
		{FccPWLRG16H12, "PWL3", "PWL_RG16H12", 16},
		{FccBGRFloat, "BGrf", "BGRFloat", 96},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fcc.Code(); got != tt.code {
				t.Errorf("Code() = %q, want %q", got, tt.code)
			}
			if got := tt.fcc.String(); got != tt.name {
				t.Errorf("String() = %q, want %q", got, tt.name)
			}
			if got := tt.fcc.BitsPerPixel(); got != tt.bpp {
				t.Errorf("BitsPerPixel() = %d, want %d", got, tt.bpp)
			}
		})
	}
}

func TestFourccTableUnique(t *testing.T) {
	seen := map[Fourcc]string{}
	for _, f := range KnownFourccs() {
		if prev, ok := seen[f]; ok {
			t.Fatalf("fourcc %q used by %s and %s", f.Code(), prev, f)
		}
		seen[f] = f.String()
	}
	if FccNull.IsKnown() {
		t.Error("FccNull must not be known")
	}
}

func TestParseFourcc(t *testing.T) {
	for _, s := range []string{"rggb12_mipi_packed", "RGDP"} {
		f, err := ParseFourcc(s)
		if err != nil || f != FccRGGB12MIPI {
			t.Errorf("ParseFourcc(%q) = %v, %v", s, f, err)
		}
	}
	if _, err := ParseFourcc("XXXX"); !errors.Is(err, ErrUnsupported) {
		t.Errorf("ParseFourcc(XXXX) error = %v, want ErrUnsupported", err)
	}
}

func TestFourccClasses(t *testing.T) {
	if !FccGRBG8.IsBayer8() || FccGRBG8.IsBayer16() {
		t.Error("GRBG8 class mismatch")
	}
	if !FccRGGB16.IsBayer16() || FccRGGB12.IsBayer16() {
		t.Error("16-bit Bayer class mismatch")
	}
	if !FccMono12Packed.IsMono() || !FccMono12Packed.IsPacked() {
		t.Error("MONO12_PACKED class mismatch")
	}
	if !FccPWLRG12.IsPWL() || FccPWLRG12.IsBayer() {
		t.Error("PWL formats are not plain Bayer")
	}
	if p, ok := FccPWLRG12MIPI.BayerPattern(); !ok || p != PatternRG {
		t.Errorf("PWL pattern = %v, %v", p, ok)
	}
	if _, ok := FccMono8.BayerPattern(); ok {
		t.Error("MONO8 has no pattern")
	}
	if !FccRGGBFloat.IsFloat() || !FccBGRA32.IsBottomUp() {
		t.Error("float / bottom-up mismatch")
	}
}

func TestEquivalents(t *testing.T) {
	tests := []struct {
		src           Fourcc
		want8, want16 Fourcc
	}{
		{FccGBRG12Spacked, FccGBRG8, FccGBRG16},
		{FccBGGR10MIPI, FccBGGR8, FccBGGR16},
		{FccMono10, FccMono8, FccMono16},
		{FccRAW16, FccRAW8, FccRAW16},
		{FccPWLRG12, FccRGGB8, FccRGGB16},
		{FccBGRA32, FccNull, FccNull},
	}
	for _, tt := range tests {
		if got := tt.src.Equivalent8(); got != tt.want8 {
			t.Errorf("%s.Equivalent8() = %s, want %s", tt.src, got, tt.want8)
		}
		if got := tt.src.Equivalent16(); got != tt.want16 {
			t.Errorf("%s.Equivalent16() = %s, want %s", tt.src, got, tt.want16)
		}
	}
	if got := FccGRBG12.EquivalentFloat(); got != FccGRBGFloat {
		t.Errorf("EquivalentFloat() = %s", got)
	}
}

func TestMinimumPitch(t *testing.T) {
	tests := []struct {
		fcc   Fourcc
		width int
		want  int
	}{
		{FccRGGB8, 640, 640},
		{FccRGGB16, 640, 1280},
		{FccRGGB12Packed, 640, 960},
		{FccRGGB10MIPI, 640, 800},
		{FccBGR24, 7, 21},
		{FccRGGB12MIPI, 3, 6},
		{FccPWLRG12MIPI, 3, 6},
		{FccRGGB12Packed, 1, 3},
		{FccRGGB10MIPI, 6, 10},
		{FccMono10Spacked, 4, 5},
	}
	for _, tt := range tests {
		if got := MinimumPitch(tt.fcc, tt.width); got != tt.want {
			t.Errorf("MinimumPitch(%s, %d) = %d, want %d", tt.fcc, tt.width, got, tt.want)
		}
	}
}

func TestPattern(t *testing.T) {
	for _, p := range []Pattern{PatternBG, PatternGB, PatternGR, PatternRG} {
		if p.NextPixel().NextPixel() != p {
			t.Errorf("%s: NextPixel is not an involution", p)
		}
		if p.NextLine().NextLine() != p {
			t.Errorf("%s: NextLine is not an involution", p)
		}
		if p.At(1, 1) != p.NextLine().NextPixel() {
			t.Errorf("%s: At(1,1) mismatch", p)
		}
	}
	if PatternRG.NextPixel() != PatternGR || PatternRG.NextLine() != PatternGB {
		t.Error("RG neighbours mismatch")
	}
	if PatternBG.Bayer8() != FccBGGR8 || PatternGR.Bayer16() != FccGRBG16 {
		t.Error("pattern to fourcc mismatch")
	}
}
