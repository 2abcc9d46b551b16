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

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ajroetker/go-rawpix/pix"
)

func TestTable(t *testing.T) {
	lut := Table()
	if lut[0] != 0 || lut[Codes-1] != 1 {
		t.Fatalf("lut[0] = %v, lut[4095] = %v, want 0 and 1", lut[0], lut[Codes-1])
	}
	for c := 1; c < Codes; c++ {
		if lut[c] < lut[c-1] {
			t.Fatalf("table not monotonic at %d: %v < %v", c, lut[c], lut[c-1])
		}
	}
	for i, c := range curveCodes {
		want := float32(curveLinear[i] / maxLinear)
		if lut[c] != want {
			t.Errorf("lut[%d] = %v, want %v", c, lut[c], want)
		}
	}
	if Table() != lut {
		t.Errorf("Table() rebuilt the table")
	}
}

func TestDecodeIgnoresHighBits(t *testing.T) {
	if got, want := Decode(0xF200), Decode(0x200); got != want {
		t.Errorf("Decode(0xF200) = %v, want %v", got, want)
	}
}

func TestCodeReaders(t *testing.T) {
	// 0xABC and 0x123 as a MIPI pair, then 0x456 in a padded group.
	mipi := []byte{0xAB, 0x12, 0x3C, 0x45, 0x00, 0x06}
	for x, want := range []uint16{0xABC, 0x123, 0x456} {
		if got := Code12MIPI(mipi, x); got != want {
			t.Errorf("Code12MIPI(%d) = %#x, want %#x", x, got, want)
		}
	}

	cells := make([]byte, 4)
	pix.PutUint16(cells, 0, 0xFABC)
	pix.PutUint16(cells, 1, 0xABC0)
	if got := Code12(cells, 0); got != 0xABC {
		t.Errorf("Code12 = %#x, want 0xabc", got)
	}
	if got := Code16H12(cells, 1); got != 0xABC {
		t.Errorf("Code16H12 = %#x, want 0xabc", got)
	}
	if got, want := PixelPWL12MIPI(mipi, 2), Decode(0x456); got != want {
		t.Errorf("PixelPWL12MIPI = %v, want %v", got, want)
	}
}

func TestOddWidthMIPIRow(t *testing.T) {
	dim := pix.Dim{Width: 3, Height: 1}
	img := pix.Alloc(pix.FccPWLRG12MIPI, dim)
	if img.Planes[0].Pitch != 6 {
		t.Fatalf("pitch = %d, want 6", img.Planes[0].Pitch)
	}
	copy(img.Row(0), []byte{0x12, 0x34, 0x65, 0x78, 0xEE, 0x09})
	want := []uint16{0x125, 0x346, 0x789}
	for x, c := range want {
		if got := Code12MIPI(img.Row(0), x); got != c {
			t.Errorf("Code12MIPI(%d) = %#x, want %#x", x, got, c)
		}
	}

	dst := pix.Alloc(pix.FccRGGBFloat, dim)
	if !ToFloat(dst, img) {
		t.Fatal("ToFloat unsupported")
	}
	if got, want := pix.Float32(dst.Row(0), 2), Table()[0x789]; got != want {
		t.Errorf("trailing pixel = %v, want %v", got, want)
	}
}

func TestToFloat(t *testing.T) {
	codes := []uint16{0, 512, 1024, 4095, 3840, 77}
	dim := pix.Dim{Width: 3, Height: 2}

	h12 := pix.Alloc(pix.FccPWLRG16H12, dim)
	l12 := pix.Alloc(pix.FccPWLRG12, dim)
	for i, c := range codes {
		y, x := i/3, i%3
		pix.PutUint16(h12.Row(y), x, c<<4|0xF)
		pix.PutUint16(l12.Row(y), x, c)
	}
	mipi := pix.Alloc(pix.FccPWLRG12MIPI, dim)
	for y := range 2 {
		row := mipi.Row(y)
		c0, c1, c2 := codes[3*y], codes[3*y+1], codes[3*y+2]
		row[0], row[1], row[2] = byte(c0>>4), byte(c1>>4), byte(c0&0xF|(c1&0xF)<<4)
		row[3], row[4], row[5] = byte(c2>>4), 0, byte(c2&0xF)
	}

	want := make([]float32, len(codes))
	for i, c := range codes {
		want[i] = Table()[c]
	}
	for _, src := range []pix.ImageDescriptor{h12, l12, mipi} {
		dst := pix.Alloc(pix.FccRGGBFloat, dim)
		if !ToFloat(dst, src) {
			t.Fatalf("ToFloat(%v) unsupported", src.Fourcc)
		}
		got := make([]float32, 0, len(codes))
		for y := range 2 {
			for x := range 3 {
				got = append(got, pix.Float32(dst.Row(y), x))
			}
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("%v: ToFloat mismatch (-want +got):\n%s", src.Fourcc, diff)
		}
	}

	if GetToFloat(pix.ImgType{Fourcc: pix.FccGRBGFloat, Dim: dim}, l12.Type()) != nil {
		t.Errorf("GetToFloat accepted a GRBG destination")
	}
}

func TestFloatTo8And16(t *testing.T) {
	in := []float32{0, 1, 1.5, -0.1, 0.5, float32(math.NaN())}
	dim := pix.Dim{Width: len(in), Height: 1}
	src := pix.Alloc(pix.FccMonoFloat, dim)
	for x, v := range in {
		pix.PutFloat32(src.Row(0), x, v)
	}

	d8 := pix.Alloc(pix.FccMono8, dim)
	if !FloatTo8(d8, src) {
		t.Fatal("FloatTo8 unsupported")
	}
	if diff := cmp.Diff([]byte{0, 255, 255, 0, 128, 0}, d8.Row(0)); diff != "" {
		t.Errorf("FloatTo8 mismatch (-want +got):\n%s", diff)
	}

	d16 := pix.Alloc(pix.FccMono16, dim)
	if !FloatTo16(d16, src) {
		t.Fatal("FloatTo16 unsupported")
	}
	var got []uint16
	for x := range in {
		got = append(got, pix.Uint16(d16.Row(0), x))
	}
	if diff := cmp.Diff([]uint16{0, 0xFFFF, 0xFFFF, 0, 0x8000, 0}, got); diff != "" {
		t.Errorf("FloatTo16 mismatch (-want +got):\n%s", diff)
	}

	if FloatTo8(pix.Alloc(pix.FccRAW8, dim), src) {
		t.Errorf("FloatTo8 accepted MONO float to RAW8")
	}
}

func TestMapCacheRebuildsOnlyOnChange(t *testing.T) {
	var c MapCache
	params := pix.PWLParams{HDRGain: 6}
	wb := pix.WhitebalanceParams{Apply: true, R: 1.5, GR: 1, B: 2, GB: 1}

	if !c.Update(params, wb) {
		t.Fatal("first Update did not build")
	}
	before := *c.Table(0)
	if c.Update(params, wb) {
		t.Error("Update rebuilt for an identical key")
	}
	if c.Rebuilds() != 1 {
		t.Errorf("Rebuilds() = %d, want 1", c.Rebuilds())
	}
	if *c.Table(0) != before {
		t.Error("tables changed without a rebuild")
	}

	params.HDRGain = 7
	c.Update(params, wb)
	wb.GB = 1.25
	c.Update(params, wb)
	wb.Apply = false
	c.Update(params, wb)
	if c.Rebuilds() != 4 {
		t.Errorf("Rebuilds() = %d, want 4", c.Rebuilds())
	}
}

func TestMapCacheValues(t *testing.T) {
	var c MapCache
	c.Update(pix.PWLParams{}, pix.WhitebalanceParams{Apply: true, R: 2, GR: 1, GB: 1, B: 0.5})

	// Code 2048 decodes to 32768/1048575.
	lin := 32768.0 / maxLinear
	tests := []struct {
		q    int
		gain float64
	}{
		{0, 2}, {1, 1}, {2, 1}, {3, 0.5},
	}
	for _, tt := range tests {
		want := uint8(math.Floor(lin*tt.gain*255 + 0.5))
		if got := c.Table(tt.q)[2048]; got != want {
			t.Errorf("table %d [2048] = %d, want %d", tt.q, got, want)
		}
	}
	if got := c.Table(1)[Codes-1]; got != 255 {
		t.Errorf("table 1 [4095] = %d, want 255", got)
	}
	if got := c.Table(0)[0]; got != 0 {
		t.Errorf("table 0 [0] = %d, want 0", got)
	}

	c.Update(pix.PWLParams{HDRGain: 20}, pix.WhitebalanceParams{})
	want := uint8(math.Floor(lin*10*255 + 0.5))
	if got := c.Table(3)[2048]; got != want {
		t.Errorf("20 dB table [2048] = %d, want %d", got, want)
	}
}

func TestToFcc8WB(t *testing.T) {
	dim := pix.Dim{Width: 4, Height: 2}
	src := pix.Alloc(pix.FccPWLRG12, dim)
	for y := range 2 {
		for x := range 4 {
			pix.PutUint16(src.Row(y), x, uint16(1000*y+300*x))
		}
	}
	dst := pix.Alloc(pix.FccRGGB8, dim)
	var c MapCache
	wb := pix.WhitebalanceParams{Apply: true, R: 1.2, GR: 1, GB: 0.9, B: 1.7}
	if !ToFcc8WB(dst, src, &c, pix.PWLParams{HDRGain: 30}, wb) {
		t.Fatal("ToFcc8WB unsupported")
	}
	for y := range 2 {
		for x := range 4 {
			code := uint16(1000*y + 300*x)
			if got, want := dst.Row(y)[x], c.Table(2*y + x%2)[code]; got != want {
				t.Errorf("(%d, %d) = %d, want %d", x, y, got, want)
			}
		}
	}
	if GetToFcc8WB(pix.ImgType{Fourcc: pix.FccGRBG8, Dim: dim}, src.Type()) != nil {
		t.Errorf("GetToFcc8WB accepted a GRBG8 destination")
	}
}
