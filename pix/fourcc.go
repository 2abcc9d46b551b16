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
	"fmt"
	"strings"
)

// Fourcc identifies one concrete pixel encoding. Values are built from four
// ASCII bytes in little-endian order, so FccRGGB8 reads "RGGB" in memory.
//
// The set of valid values is closed: only the constants declared in this
// file are known to the library. FccNull is the invalid sentinel.
type Fourcc uint32

const (
	FccNull Fourcc = 0

	FccBGR24    Fourcc = 'B' | 'G'<<8 | 'R'<<16 | '3'<<24
	FccBGRA32   Fourcc = 'B' | 'G'<<8 | 'R'<<16 | '4'<<24
	FccBGRA64   Fourcc = 'R' | 'G'<<8 | 'B'<<16 | '6'<<24
	FccBGRFloat Fourcc = 'B' | 'G'<<8 | 'r'<<16 | 'f'<<24

	FccRAW8     Fourcc = 'R' | 'A'<<8 | 'W'<<16 | '1'<<24
	FccRAW16    Fourcc = 'R' | 'A'<<8 | 'W'<<16 | '2'<<24
	FccRAWFloat Fourcc = 'R' | 'A'<<8 | 'W'<<16 | 'f'<<24

	FccMono8     Fourcc = 'Y' | '8'<<8 | '0'<<16 | '0'<<24
	FccMono10    Fourcc = 'Y' | '1'<<8 | '0'<<16 | ' '<<24
	FccMono12    Fourcc = 'Y' | '1'<<8 | '2'<<16 | ' '<<24
	FccMono16    Fourcc = 'Y' | '1'<<8 | '6'<<16 | ' '<<24
	FccMonoFloat Fourcc = 'M' | 'O'<<8 | 'N'<<16 | 'f'<<24

	FccBGGR8 Fourcc = 'B' | 'A'<<8 | '8'<<16 | '1'<<24
	FccGBRG8 Fourcc = 'G' | 'B'<<8 | 'R'<<16 | 'G'<<24
	FccGRBG8 Fourcc = 'G' | 'R'<<8 | 'B'<<16 | 'G'<<24
	FccRGGB8 Fourcc = 'R' | 'G'<<8 | 'G'<<16 | 'B'<<24

	FccBGGR10 Fourcc = 'B' | 'G'<<8 | '1'<<16 | '0'<<24
	FccGBRG10 Fourcc = 'G' | 'B'<<8 | '1'<<16 | '0'<<24
	FccGRBG10 Fourcc = 'B' | 'A'<<8 | '1'<<16 | '0'<<24
	FccRGGB10 Fourcc = 'R' | 'G'<<8 | '1'<<16 | '0'<<24

	FccBGGR12 Fourcc = 'B' | 'G'<<8 | '1'<<16 | '2'<<24
	FccGBRG12 Fourcc = 'G' | 'B'<<8 | '1'<<16 | '2'<<24
	FccGRBG12 Fourcc = 'B' | 'A'<<8 | '1'<<16 | '2'<<24
	FccRGGB12 Fourcc = 'R' | 'G'<<8 | '1'<<16 | '2'<<24

	FccBGGR16 Fourcc = 'B' | 'G'<<8 | '1'<<16 | '6'<<24
	FccGBRG16 Fourcc = 'G' | 'B'<<8 | '1'<<16 | '6'<<24
	FccGRBG16 Fourcc = 'B' | 'A'<<8 | '1'<<16 | '6'<<24
	FccRGGB16 Fourcc = 'R' | 'G'<<8 | '1'<<16 | '6'<<24

	FccBGGRFloat Fourcc = 'B' | 'G'<<8 | 'f'<<16 | '0'<<24
	FccGBRGFloat Fourcc = 'G' | 'B'<<8 | 'f'<<16 | '0'<<24
	FccGRBGFloat Fourcc = 'B' | 'A'<<8 | 'f'<<16 | '0'<<24
	FccRGGBFloat Fourcc = 'R' | 'G'<<8 | 'f'<<16 | '0'<<24

	FccMono10MIPI Fourcc = 'Y' | '1'<<8 | '0'<<16 | 'P'<<24
	FccGRBG10MIPI Fourcc = 'G' | 'R'<<8 | 'A'<<16 | 'P'<<24
	FccRGGB10MIPI Fourcc = 'R' | 'G'<<8 | 'A'<<16 | 'P'<<24
	FccGBRG10MIPI Fourcc = 'G' | 'B'<<8 | 'A'<<16 | 'P'<<24
	FccBGGR10MIPI Fourcc = 'B' | 'G'<<8 | 'A'<<16 | 'P'<<24

	FccMono10Spacked Fourcc = 'Y' | '1'<<8 | '0'<<16 | 'p'<<24
	FccGRBG10Spacked Fourcc = 'G' | 'R'<<8 | 'A'<<16 | 'p'<<24
	FccRGGB10Spacked Fourcc = 'R' | 'G'<<8 | 'A'<<16 | 'p'<<24
	FccGBRG10Spacked Fourcc = 'G' | 'B'<<8 | 'A'<<16 | 'p'<<24
	FccBGGR10Spacked Fourcc = 'B' | 'G'<<8 | 'A'<<16 | 'p'<<24

	FccMono12Packed Fourcc = 'Y' | '1'<<8 | '2'<<16 | 'P'<<24
	FccGRBG12Packed Fourcc = 'G' | 'R'<<8 | 'C'<<16 | 'P'<<24
	FccRGGB12Packed Fourcc = 'R' | 'G'<<8 | 'C'<<16 | 'P'<<24
	FccGBRG12Packed Fourcc = 'G' | 'B'<<8 | 'C'<<16 | 'P'<<24
	FccBGGR12Packed Fourcc = 'B' | 'G'<<8 | 'C'<<16 | 'P'<<24

	FccMono12Spacked Fourcc = 'Y' | '1'<<8 | '2'<<16 | 'p'<<24
	FccGRBG12Spacked Fourcc = 'G' | 'R'<<8 | 'C'<<16 | 'p'<<24
	FccRGGB12Spacked Fourcc = 'R' | 'G'<<8 | 'C'<<16 | 'p'<<24
	FccGBRG12Spacked Fourcc = 'G' | 'B'<<8 | 'C'<<16 | 'p'<<24
	FccBGGR12Spacked Fourcc = 'B' | 'G'<<8 | 'C'<<16 | 'p'<<24

	FccMono12MIPI Fourcc = 'Y' | '1'<<8 | 'D'<<16 | 'P'<<24
	FccGRBG12MIPI Fourcc = 'G' | 'R'<<8 | 'D'<<16 | 'P'<<24
	FccRGGB12MIPI Fourcc = 'R' | 'G'<<8 | 'D'<<16 | 'P'<<24
	FccGBRG12MIPI Fourcc = 'G' | 'B'<<8 | 'D'<<16 | 'P'<<24
	FccBGGR12MIPI Fourcc = 'B' | 'G'<<8 | 'D'<<16 | 'P'<<24

	FccPWLRG12MIPI Fourcc = 'P' | 'W'<<8 | 'L'<<16 | '1'<<24
	FccPWLRG12     Fourcc = 'P' | 'W'<<8 | 'L'<<16 | '2'<<24
	FccPWLRG16H12  Fourcc = 'P' | 'W'<<8 | 'L'<<16 | '3'<<24
)

// Layout describes how the samples of a format are laid out in a row.
type Layout uint8

const (
	// LayoutNone is the layout of unknown formats.
	LayoutNone Layout = iota

	// LayoutInterleaved holds packed color pixels (BGR24, BGRA32, ...).
	LayoutInterleaved

	// Layout8 stores one sample per byte.
	Layout8

	// Layout16 stores one sample per little-endian 16-bit cell. The sample is
	// low-justified, SampleBits tells how many of the 16 bits are valid.
	Layout16

	// Layout16H12 stores 12 valid bits in the high bits of a 16-bit cell.
	Layout16H12

	// LayoutFloat stores one float32 sample per 4 bytes.
	LayoutFloat

	// Layout10MIPI packs 4 samples in 5 bytes: four high bytes, then the
	// low 2 bits of each sample.
	Layout10MIPI

	// Layout10Spacked packs 4 samples in 5 bytes as a little-endian bit stream.
	Layout10Spacked

	// Layout12Packed packs 2 samples in 3 bytes: [p0 hi][p0 lo | p1 lo<<4][p1 hi].
	Layout12Packed

	// Layout12MIPI packs 2 samples in 3 bytes: [p0 hi][p1 hi][p0 lo | p1 lo<<4].
	Layout12MIPI

	// Layout12Spacked packs 2 samples in 3 bytes as a little-endian bit stream.
	Layout12Spacked
)

// GroupSize is the number of samples that share one packing group.
func (l Layout) GroupSize() int {
	switch l {
	case Layout10MIPI, Layout10Spacked:
		return 4
	case Layout12Packed, Layout12MIPI, Layout12Spacked:
		return 2
	default:
		return 1
	}
}

// GroupBytes is the number of bytes of one packing group.
func (l Layout) GroupBytes() int {
	switch l {
	case Layout10MIPI, Layout10Spacked:
		return 5
	case Layout12Packed, Layout12MIPI, Layout12Spacked:
		return 3
	case Layout16, Layout16H12:
		return 2
	case LayoutFloat:
		return 4
	default:
		return 1
	}
}

// IsPacked reports whether samples share bytes.
func (l Layout) IsPacked() bool {
	return l.GroupSize() > 1
}

type fccClass uint8

const (
	classNone fccClass = iota
	classRGB
	classRAW
	classMono
	classBayer
	classPWL
)

type fourccInfo struct {
	fcc        Fourcc
	name       string
	bpp        int
	sampleBits int
	class      fccClass
	layout     Layout
	pattern    Pattern
}

var fourccTable = []fourccInfo{
	{FccBGR24, "BGR24", 24, 8, classRGB, LayoutInterleaved, 0},
	{FccBGRA32, "BGRA32", 32, 8, classRGB, LayoutInterleaved, 0},
	{FccBGRA64, "BGRA64", 64, 16, classRGB, LayoutInterleaved, 0},
	{FccBGRFloat, "BGRFloat", 96, 32, classRGB, LayoutInterleaved, 0},

	{FccRAW8, "RAW8", 8, 8, classRAW, Layout8, 0},
	{FccRAW16, "RAW16", 16, 16, classRAW, Layout16, 0},
	{FccRAWFloat, "RAWFloat", 32, 32, classRAW, LayoutFloat, 0},

	{FccMono8, "MONO8", 8, 8, classMono, Layout8, 0},
	{FccMono10, "MONO10", 16, 10, classMono, Layout16, 0},
	{FccMono12, "MONO12", 16, 12, classMono, Layout16, 0},
	{FccMono16, "MONO16", 16, 16, classMono, Layout16, 0},
	{FccMonoFloat, "MONOFloat", 32, 32, classMono, LayoutFloat, 0},

	{FccBGGR8, "BGGR8", 8, 8, classBayer, Layout8, PatternBG},
	{FccGBRG8, "GBRG8", 8, 8, classBayer, Layout8, PatternGB},
	{FccGRBG8, "GRBG8", 8, 8, classBayer, Layout8, PatternGR},
	{FccRGGB8, "RGGB8", 8, 8, classBayer, Layout8, PatternRG},

	{FccBGGR10, "BGGR10", 16, 10, classBayer, Layout16, PatternBG},
	{FccGBRG10, "GBRG10", 16, 10, classBayer, Layout16, PatternGB},
	{FccGRBG10, "GRBG10", 16, 10, classBayer, Layout16, PatternGR},
	{FccRGGB10, "RGGB10", 16, 10, classBayer, Layout16, PatternRG},

	{FccBGGR12, "BGGR12", 16, 12, classBayer, Layout16, PatternBG},
	{FccGBRG12, "GBRG12", 16, 12, classBayer, Layout16, PatternGB},
	{FccGRBG12, "GRBG12", 16, 12, classBayer, Layout16, PatternGR},
	{FccRGGB12, "RGGB12", 16, 12, classBayer, Layout16, PatternRG},

	{FccBGGR16, "BGGR16", 16, 16, classBayer, Layout16, PatternBG},
	{FccGBRG16, "GBRG16", 16, 16, classBayer, Layout16, PatternGB},
	{FccGRBG16, "GRBG16", 16, 16, classBayer, Layout16, PatternGR},
	{FccRGGB16, "RGGB16", 16, 16, classBayer, Layout16, PatternRG},

	{FccBGGRFloat, "BGGRFloat", 32, 32, classBayer, LayoutFloat, PatternBG},
	{FccGBRGFloat, "GBRGFloat", 32, 32, classBayer, LayoutFloat, PatternGB},
	{FccGRBGFloat, "GRBGFloat", 32, 32, classBayer, LayoutFloat, PatternGR},
	{FccRGGBFloat, "RGGBFloat", 32, 32, classBayer, LayoutFloat, PatternRG},

	{FccMono10MIPI, "MONO10_MIPI_PACKED", 10, 10, classMono, Layout10MIPI, 0},
	{FccBGGR10MIPI, "BGGR10_MIPI_PACKED", 10, 10, classBayer, Layout10MIPI, PatternBG},
	{FccGBRG10MIPI, "GBRG10_MIPI_PACKED", 10, 10, classBayer, Layout10MIPI, PatternGB},
	{FccGRBG10MIPI, "GRBG10_MIPI_PACKED", 10, 10, classBayer, Layout10MIPI, PatternGR},
	{FccRGGB10MIPI, "RGGB10_MIPI_PACKED", 10, 10, classBayer, Layout10MIPI, PatternRG},

	{FccMono10Spacked, "MONO10_SPACKED", 10, 10, classMono, Layout10Spacked, 0},
	{FccBGGR10Spacked, "BGGR10_SPACKED", 10, 10, classBayer, Layout10Spacked, PatternBG},
	{FccGBRG10Spacked, "GBRG10_SPACKED", 10, 10, classBayer, Layout10Spacked, PatternGB},
	{FccGRBG10Spacked, "GRBG10_SPACKED", 10, 10, classBayer, Layout10Spacked, PatternGR},
	{FccRGGB10Spacked, "RGGB10_SPACKED", 10, 10, classBayer, Layout10Spacked, PatternRG},

	{FccMono12Packed, "MONO12_PACKED", 12, 12, classMono, Layout12Packed, 0},
	{FccBGGR12Packed, "BGGR12_PACKED", 12, 12, classBayer, Layout12Packed, PatternBG},
	{FccGBRG12Packed, "GBRG12_PACKED", 12, 12, classBayer, Layout12Packed, PatternGB},
	{FccGRBG12Packed, "GRBG12_PACKED", 12, 12, classBayer, Layout12Packed, PatternGR},
	{FccRGGB12Packed, "RGGB12_PACKED", 12, 12, classBayer, Layout12Packed, PatternRG},

	{FccMono12MIPI, "MONO12_MIPI_PACKED", 12, 12, classMono, Layout12MIPI, 0},
	{FccBGGR12MIPI, "BGGR12_MIPI_PACKED", 12, 12, classBayer, Layout12MIPI, PatternBG},
	{FccGBRG12MIPI, "GBRG12_MIPI_PACKED", 12, 12, classBayer, Layout12MIPI, PatternGB},
	{FccGRBG12MIPI, "GRBG12_MIPI_PACKED", 12, 12, classBayer, Layout12MIPI, PatternGR},
	{FccRGGB12MIPI, "RGGB12_MIPI_PACKED", 12, 12, classBayer, Layout12MIPI, PatternRG},

	{FccMono12Spacked, "MONO12_SPACKED", 12, 12, classMono, Layout12Spacked, 0},
	{FccBGGR12Spacked, "BGGR12_SPACKED", 12, 12, classBayer, Layout12Spacked, PatternBG},
	{FccGBRG12Spacked, "GBRG12_SPACKED", 12, 12, classBayer, Layout12Spacked, PatternGB},
	{FccGRBG12Spacked, "GRBG12_SPACKED", 12, 12, classBayer, Layout12Spacked, PatternGR},
	{FccRGGB12Spacked, "RGGB12_SPACKED", 12, 12, classBayer, Layout12Spacked, PatternRG},

	{FccPWLRG12MIPI, "PWL_RG12_MIPI", 12, 12, classPWL, Layout12MIPI, PatternRG},
	{FccPWLRG12, "PWL_RG12", 16, 12, classPWL, Layout16, PatternRG},
	{FccPWLRG16H12, "PWL_RG16H12", 16, 12, classPWL, Layout16H12, PatternRG},
}

var fourccIndex = func() map[Fourcc]*fourccInfo {
	m := make(map[Fourcc]*fourccInfo, len(fourccTable))
	for i := range fourccTable {
		m[fourccTable[i].fcc] = &fourccTable[i]
	}
	return m
}()

func (f Fourcc) info() *fourccInfo {
	return fourccIndex[f]
}

// KnownFourccs returns every format known to the library, in table order.
func KnownFourccs() []Fourcc {
	out := make([]Fourcc, len(fourccTable))
	for i := range fourccTable {
		out[i] = fourccTable[i].fcc
	}
	return out
}

// IsKnown reports whether f is part of the closed format set.
func (f Fourcc) IsKnown() bool {
	return f.info() != nil
}

// Code returns the four ASCII bytes of f.
func (f Fourcc) Code() string {
	b := [4]byte{byte(f), byte(f >> 8), byte(f >> 16), byte(f >> 24)}
	return string(b[:])
}

// String returns the symbolic name of f, e.g. "GRBG12_MIPI_PACKED".
func (f Fourcc) String() string {
	if f == FccNull {
		return "NULL"
	}
	if info := f.info(); info != nil {
		return info.name
	}
	return fmt.Sprintf("Fourcc(%q)", f.Code())
}

// ParseFourcc accepts either a symbolic name ("RGGB12_MIPI_PACKED",
// case-insensitive) or a four character code ("RGDP").
func ParseFourcc(s string) (Fourcc, error) {
	for i := range fourccTable {
		if strings.EqualFold(fourccTable[i].name, s) {
			return fourccTable[i].fcc, nil
		}
	}
	if len(s) == 4 {
		f := Fourcc(uint32(s[0]) | uint32(s[1])<<8 | uint32(s[2])<<16 | uint32(s[3])<<24)
		if f.IsKnown() {
			return f, nil
		}
	}
	return FccNull, fmt.Errorf("%w: unknown fourcc %q", ErrUnsupported, s)
}

// BitsPerPixel returns the storage bits per pixel of f, or 0 for unknown formats.
func (f Fourcc) BitsPerPixel() int {
	if info := f.info(); info != nil {
		return info.bpp
	}
	return 0
}

// SampleBits returns the number of significant bits per sample.
func (f Fourcc) SampleBits() int {
	if info := f.info(); info != nil {
		return info.sampleBits
	}
	return 0
}

// Layout returns the row layout of f.
func (f Fourcc) Layout() Layout {
	if info := f.info(); info != nil {
		return info.layout
	}
	return LayoutNone
}

func (f Fourcc) class() fccClass {
	if info := f.info(); info != nil {
		return info.class
	}
	return classNone
}

// IsBayer reports whether f carries a Bayer mosaic (PWL formats excluded).
func (f Fourcc) IsBayer() bool { return f.class() == classBayer }

// IsBayer8 reports whether f is one of the four 8-bit Bayer formats.
func (f Fourcc) IsBayer8() bool { return f.IsBayer() && f.Layout() == Layout8 }

// IsBayer16 reports whether f is one of the four full 16-bit Bayer formats.
func (f Fourcc) IsBayer16() bool {
	return f.IsBayer() && f.Layout() == Layout16 && f.SampleBits() == 16
}

// IsBayerFloat reports whether f is one of the four float Bayer formats.
func (f Fourcc) IsBayerFloat() bool { return f.IsBayer() && f.Layout() == LayoutFloat }

// IsMono reports whether f is a monochrome format.
func (f Fourcc) IsMono() bool { return f.class() == classMono }

// IsRAW reports whether f is a pattern-less RAW format.
func (f Fourcc) IsRAW() bool { return f.class() == classRAW }

// IsPWL reports whether f is a piecewise-linear HDR format.
func (f Fourcc) IsPWL() bool { return f.class() == classPWL }

// IsRGB reports whether f is an interleaved color format.
func (f Fourcc) IsRGB() bool { return f.class() == classRGB }

// IsPacked reports whether samples of f share bytes.
func (f Fourcc) IsPacked() bool { return f.Layout().IsPacked() }

// IsFloat reports whether f stores float32 samples.
func (f Fourcc) IsFloat() bool { return f.Layout() == LayoutFloat || f == FccBGRFloat }

// IsBottomUp reports whether f is conventionally stored bottom-up.
func (f Fourcc) IsBottomUp() bool {
	return f == FccBGR24 || f == FccBGRA32 || f == FccBGRA64
}

// BayerPattern returns the phase of the top-left pixel. The second result is
// false for formats that carry no mosaic.
func (f Fourcc) BayerPattern() (Pattern, bool) {
	switch f.class() {
	case classBayer, classPWL:
		return f.info().pattern, true
	default:
		return 0, false
	}
}

// Equivalent8 returns the 8-bit format with the same mosaic (or mono/raw
// class) as f, or FccNull when there is none.
func (f Fourcc) Equivalent8() Fourcc {
	switch f.class() {
	case classMono:
		return FccMono8
	case classRAW:
		return FccRAW8
	case classBayer, classPWL:
		return f.info().pattern.Bayer8()
	default:
		return FccNull
	}
}

// Equivalent16 returns the 16-bit format with the same mosaic as f.
func (f Fourcc) Equivalent16() Fourcc {
	switch f.class() {
	case classMono:
		return FccMono16
	case classRAW:
		return FccRAW16
	case classBayer, classPWL:
		return f.info().pattern.Bayer16()
	default:
		return FccNull
	}
}

// EquivalentFloat returns the float format with the same mosaic as f.
func (f Fourcc) EquivalentFloat() Fourcc {
	switch f.class() {
	case classMono:
		return FccMonoFloat
	case classRAW:
		return FccRAWFloat
	case classBayer, classPWL:
		return f.info().pattern.BayerFloat()
	default:
		return FccNull
	}
}

// MinimumPitch returns the smallest number of bytes a row of width pixels
// occupies in format f. Rows of packed layouts hold whole groups, so a
// trailing partial group keeps the bytes its samples' low bits live in.
func MinimumPitch(f Fourcc, width int) int {
	if l := f.Layout(); l.IsPacked() {
		n := l.GroupSize()
		return (width + n - 1) / n * l.GroupBytes()
	}
	return (width*f.BitsPerPixel() + 7) / 8
}

// ImageSize returns the byte size of a tightly packed image.
func ImageSize(f Fourcc, dim Dim) int {
	return MinimumPitch(f, dim.Width) * dim.Height
}
