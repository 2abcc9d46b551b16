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

package transform

import (
	"bytes"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ajroetker/go-rawpix/pix"
	"github.com/ajroetker/go-rawpix/pix/contrib/demosaic"
	"github.com/ajroetker/go-rawpix/pix/contrib/packed"
	"github.com/ajroetker/go-rawpix/pix/contrib/pwl"
	"github.com/ajroetker/go-rawpix/pix/contrib/whitebalance"
	"github.com/ajroetker/go-rawpix/pix/contrib/workerpool"
)

func randomImage(rng *rand.Rand, fcc pix.Fourcc, dim pix.Dim) pix.ImageDescriptor {
	img := pix.Alloc(fcc, dim)
	rng.Read(img.Planes[0].Data)
	return img
}

// pwlImage fills a PWL_RG12 image with valid 12-bit codes.
func pwlImage(rng *rand.Rand, dim pix.Dim) pix.ImageDescriptor {
	img := pix.Alloc(pix.FccPWLRG12, dim)
	for y := range dim.Height {
		for x := range dim.Width {
			pix.PutUint16(img.Row(y), x, uint16(rng.Intn(pwl.Codes)))
		}
	}
	return img
}

func balancedOptions() Options {
	opts := DefaultOptions()
	opts.Whitebalance = pix.WhitebalanceParams{Apply: true, R: 1.6, GR: 1, B: 1.9, GB: 1.05}
	opts.Demosaic.UseColorMatrix = true
	opts.PWL.HDRGain = 12
	return opts
}

func TestSupportedOutputs(t *testing.T) {
	tests := []struct {
		src  pix.Fourcc
		want []pix.Fourcc
	}{
		{pix.FccMono8, []pix.Fourcc{pix.FccMono8, pix.FccBGRA32, pix.FccBGR24, pix.FccMono16}},
		{pix.FccMono12Packed, []pix.Fourcc{pix.FccMono8, pix.FccMono16, pix.FccBGRA32}},
		{pix.FccGRBG8, []pix.Fourcc{pix.FccGRBG8, pix.FccBGR24, pix.FccBGRA32}},
		{pix.FccRGGB12MIPI, []pix.Fourcc{pix.FccRGGB8, pix.FccRGGB16, pix.FccBGR24, pix.FccBGRA32}},
		{pix.FccBGGR16, []pix.Fourcc{pix.FccBGGR8, pix.FccBGR24, pix.FccBGRA32}},
		{pix.FccPWLRG12MIPI, []pix.Fourcc{pix.FccRGGBFloat, pix.FccRGGB8, pix.FccBGRA32}},
	}
	for _, tt := range tests {
		got := SupportedOutputs(tt.src)
		for _, want := range tt.want {
			require.Contains(t, got, want, "outputs of %v", tt.src)
		}
	}
	require.Empty(t, SupportedOutputs(pix.FccBGRA32))
	require.NotContains(t, SupportedOutputs(pix.FccGRBG8), pix.FccBGRA64)

	inputs := SupportedInputs()
	require.Contains(t, inputs, pix.FccGRBG10Spacked)
	require.Contains(t, inputs, pix.FccPWLRG16H12)
	require.NotContains(t, inputs, pix.FccBGR24)
}

func TestConvertErrors(t *testing.T) {
	p := NewPipeline(pix.TierReference, DefaultOptions())
	dim := pix.Dim{Width: 16, Height: 4}

	err := p.Convert(pix.Alloc(pix.FccMono8, dim), pix.Alloc(pix.FccBGRA32, dim))
	require.ErrorIs(t, err, pix.ErrUnsupported)

	err = p.Convert(pix.Alloc(pix.FccBGRA32, dim), pix.Alloc(pix.FccGRBG8, pix.Dim{Width: 16, Height: 2}))
	require.ErrorIs(t, err, pix.ErrUnsupported)

	short := pix.NewDescriptor(make([]byte, 10), pix.FccGRBG8, dim, 0)
	err = p.Convert(pix.Alloc(pix.FccBGRA32, dim), short)
	require.ErrorIs(t, err, pix.ErrInvalidDescriptor)
	require.ErrorContains(t, err, "source")
}

func TestPackedBayerToBGRA(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	dim := pix.Dim{Width: 64, Height: 16}
	src16 := randomImage(rng, pix.FccGRBG16, dim)
	src := pix.Alloc(pix.FccGRBG12Packed, dim)
	packed.Get(pix.TierReference, src.Type(), src16.Type())(src, src16)

	opts := balancedOptions()
	got := pix.Alloc(pix.FccBGRA32, dim)
	require.NoError(t, NewPipeline(pix.TierReference, opts).Convert(got, src))

	b8 := pix.Alloc(pix.FccGRBG8, dim)
	packed.Get(pix.TierReference, b8.Type(), src.Type())(b8, src)
	whitebalance.Apply(b8, whitebalance.FactorsFromParams(opts.Whitebalance))
	want := pix.Alloc(pix.FccBGRA32, dim)
	demosaic.Get(pix.TierReference, want.Type(), b8.Type())(want, b8, opts.Demosaic)

	require.True(t, bytes.Equal(want.Planes[0].Data, got.Planes[0].Data))
}

func TestBayer8WhitebalanceLeavesSourceIntact(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	dim := pix.Dim{Width: 48, Height: 8}
	src := randomImage(rng, pix.FccRGGB8, dim)
	orig := bytes.Clone(src.Planes[0].Data)

	opts := balancedOptions()
	got := pix.Alloc(pix.FccBGR24, dim)
	require.NoError(t, NewPipeline(pix.TierReference, opts).Convert(got, src))
	require.Equal(t, orig, src.Planes[0].Data)

	b8 := pix.Alloc(pix.FccRGGB8, dim)
	require.True(t, whitebalance.ApplyCopy(b8, src, whitebalance.FactorsFromParams(opts.Whitebalance)))
	want := pix.Alloc(pix.FccBGR24, dim)
	demosaic.Get(pix.TierReference, want.Type(), b8.Type())(want, b8, opts.Demosaic)
	require.Equal(t, want.Planes[0].Data, got.Planes[0].Data)
}

func TestPWLToBGRA(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	dim := pix.Dim{Width: 40, Height: 6}
	src := pwlImage(rng, dim)
	opts := balancedOptions()

	p := NewPipeline(pix.TierReference, opts)
	got := pix.Alloc(pix.FccBGRA32, dim)
	require.NoError(t, p.Convert(got, src))
	require.NoError(t, p.Convert(got, src))
	require.Equal(t, 1, p.Cache().Rebuilds())

	var cache pwl.MapCache
	b8 := pix.Alloc(pix.FccRGGB8, dim)
	require.True(t, pwl.ToFcc8WB(b8, src, &cache, opts.PWL, opts.Whitebalance))
	want := pix.Alloc(pix.FccBGRA32, dim)
	demosaic.Get(pix.TierReference, want.Type(), b8.Type())(want, b8, opts.Demosaic)
	require.Equal(t, want.Planes[0].Data, got.Planes[0].Data)

	opts.PWL.HDRGain = 0
	p.SetOptions(opts)
	require.NoError(t, p.Convert(got, src))
	require.Equal(t, 2, p.Cache().Rebuilds())
}

func TestMonoThroughMono8(t *testing.T) {
	dim := pix.Dim{Width: 4, Height: 1}
	src := pix.Alloc(pix.FccMono12, dim)
	for x, v := range []uint16{0, 0x10, 0x800, 0xFFF} {
		pix.PutUint16(src.Row(0), x, v)
	}
	dst := pix.Alloc(pix.FccBGRA32, dim)
	require.NoError(t, NewPipeline(pix.TierReference, DefaultOptions()).Convert(dst, src))
	require.Equal(t, []byte{
		0, 0, 0, 0xFF,
		1, 1, 1, 0xFF,
		0x80, 0x80, 0x80, 0xFF,
		0xFF, 0xFF, 0xFF, 0xFF,
	}, dst.Planes[0].Data)
}

func TestScratchReused(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	dim := pix.Dim{Width: 32, Height: 8}
	src := randomImage(rng, pix.FccBGGR16, dim)
	dst := pix.Alloc(pix.FccBGRA32, dim)
	p := NewPipeline(pix.TierReference, DefaultOptions())

	require.NoError(t, p.Convert(dst, src))
	first := &p.env.scratch[0]
	require.NoError(t, p.Convert(dst, src))
	require.Same(t, first, &p.env.scratch[0])
}

// parallelCases are conversions whose stages read neighbour rows.
var parallelCases = []struct {
	name     string
	src, dst pix.Fourcc
}{
	{"bayer8", pix.FccGRBG8, pix.FccBGRA32},
	{"packed", pix.FccRGGB12Packed, pix.FccBGRA32},
	{"unpacked 16", pix.FccGBRG16, pix.FccBGR24},
	{"pwl", pix.FccPWLRG12, pix.FccBGRA32},
	{"mono", pix.FccMono10MIPI, pix.FccBGRA32},
	{"depth only", pix.FccBGGR10Spacked, pix.FccBGGR16},
}

func source(rng *rand.Rand, fcc pix.Fourcc, dim pix.Dim) pix.ImageDescriptor {
	if fcc.IsPWL() {
		return pwlImage(rng, dim)
	}
	return randomImage(rng, fcc, dim)
}

func TestConvertParallelMatchesConvert(t *testing.T) {
	pool := workerpool.New(4)
	defer pool.Close()
	rng := rand.New(rand.NewSource(5))
	dim := pix.Dim{Width: 64, Height: 38}

	for _, tc := range parallelCases {
		t.Run(tc.name, func(t *testing.T) {
			src := source(rng, tc.src, dim)
			want := pix.Alloc(tc.dst, dim)
			require.NoError(t, NewPipeline(pix.TierReference, balancedOptions()).Convert(want, src))

			for _, tier := range pix.AllTiers() {
				p := NewPipeline(tier, balancedOptions())
				got := pix.Alloc(tc.dst, dim)
				require.NoError(t, p.ConvertParallel(pool, got, src))
				require.True(t, bytes.Equal(want.Planes[0].Data, got.Planes[0].Data), "tier %v", tier)
			}
		})
	}
}

func TestConvertBatch(t *testing.T) {
	pool := workerpool.New(3)
	defer pool.Close()
	rng := rand.New(rand.NewSource(6))

	var frames, want []Frame
	for i, tc := range parallelCases {
		dim := pix.Dim{Width: 32 + 8*i, Height: 4 + 2*i}
		src := source(rng, tc.src, dim)
		frames = append(frames, Frame{Dst: pix.Alloc(tc.dst, dim), Src: src})
		want = append(want, Frame{Dst: pix.Alloc(tc.dst, dim), Src: src})
	}
	p := NewPipeline(pix.BestTier(), balancedOptions())
	require.NoError(t, p.ConvertBatch(pool, frames))

	ref := NewPipeline(pix.TierReference, balancedOptions())
	for i, f := range want {
		require.NoError(t, ref.Convert(f.Dst, f.Src))
		require.Equal(t, f.Dst.Planes[0].Data, frames[i].Dst.Planes[0].Data, "frame %d", i)
	}

	bad := append(frames, Frame{Dst: pix.Alloc(pix.FccMono8, pix.Dim{Width: 8, Height: 2}), Src: pix.Alloc(pix.FccBGR24, pix.Dim{Width: 8, Height: 2})})
	err := p.ConvertBatch(pool, bad)
	require.ErrorIs(t, err, pix.ErrUnsupported)
	require.ErrorContains(t, err, "frame 6")
}

func TestCrossTierVGA(t *testing.T) {
	rng := rand.New(rand.NewSource(640))
	dim := pix.Dim{Width: 640, Height: 480}
	src := randomImage(rng, pix.FccGRBG8, dim)
	opts := pix.DefaultDemosaicOptions()

	want := pix.Alloc(pix.FccBGRA32, dim)
	Get(pix.TierReference, want.Type(), src.Type())(want, src, &Env{Options: Options{Demosaic: opts}})
	for _, tier := range pix.AllTiers() {
		got := pix.Alloc(pix.FccBGRA32, dim)
		fn := Get(tier, got.Type(), src.Type())
		require.NotNil(t, fn, "tier %v", tier)
		fn(got, src, NewEnv(Options{Demosaic: opts}))
		require.True(t, bytes.Equal(want.Planes[0].Data, got.Planes[0].Data), "tier %v", tier)
	}
}

func TestGetHonorsTierLimits(t *testing.T) {
	at := func(fcc pix.Fourcc, w int) pix.ImgType {
		return pix.ImgType{Fourcc: fcc, Dim: pix.Dim{Width: w, Height: 4}}
	}
	for _, tier := range []pix.Tier{pix.TierSSE41, pix.TierNEON, pix.TierAVX2} {
		minWidth := demosaic.MinWidth(tier)
		if minWidth == 0 {
			continue
		}
		for _, w := range []int{4, 8, 16, minWidth - 2} {
			require.Nil(t, Get(tier, at(pix.FccBGRA32, w), at(pix.FccGRBG8, w)), "tier %v width %d", tier, w)
		}
		require.NotNil(t, Get(tier, at(pix.FccBGRA32, minWidth), at(pix.FccGRBG8, minWidth)), "tier %v", tier)
		require.NotNil(t, Get(tier, at(pix.FccBGRA32, 64), at(pix.FccGRBG8, 64)), "tier %v", tier)
	}
	require.NotNil(t, Get(pix.TierReference, at(pix.FccBGRA32, 4), at(pix.FccGRBG8, 4)))

	// SSSE3 has no demosaic, so the reference demosaic stands in at any width.
	require.NotNil(t, Get(pix.TierSSSE3, at(pix.FccBGRA32, 4), at(pix.FccGRBG8, 4)))
}

func TestPipelineFallsBackBelowTierLimits(t *testing.T) {
	dim := pix.Dim{Width: 16, Height: 4}
	src := pix.Alloc(pix.FccGRBG8, dim)
	for i := range src.Planes[0].Data {
		src.Planes[0].Data[i] = 90
	}
	want := pix.Alloc(pix.FccBGRA32, dim)
	require.NoError(t, NewPipeline(pix.TierReference, DefaultOptions()).Convert(want, src))
	for _, tier := range pix.AllTiers() {
		got := pix.Alloc(pix.FccBGRA32, dim)
		require.NoError(t, NewPipeline(tier, DefaultOptions()).Convert(got, src), "tier %v", tier)
		require.Equal(t, want.Planes[0].Data, got.Planes[0].Data, "tier %v", tier)
	}
}

func TestBandWithSingleRowAbove(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	dim := pix.Dim{Width: 64, Height: 10}
	opts := balancedOptions()
	sources := []pix.ImageDescriptor{
		randomImage(rng, pix.FccGRBG16, dim),
		randomImage(rng, pix.FccGRBG8, dim),
		randomImage(rng, pix.FccRGGB12MIPI, dim),
		pwlImage(rng, dim),
	}
	for _, src := range sources {
		fcc := src.Fourcc
		whole := pix.Alloc(pix.FccBGRA32, dim)
		require.NoError(t, NewPipeline(pix.TierReference, opts).Convert(whole, src))

		// Rows 4 to 7 over a buffer that starts at row 3.
		pitch := src.Planes[0].Pitch
		band := pix.NewDescriptor(src.Planes[0].Data[3*pitch:], fcc, pix.Dim{Width: 64, Height: 4}, pitch)
		band.Planes[0].Offset = pitch
		band.Flags = pix.FlagNoWrapBegin | pix.FlagNoWrapEnd
		require.True(t, band.HasRow(-1))
		require.False(t, band.HasRow(-2))

		got := pix.Alloc(pix.FccBGRA32, band.Dim)
		require.NoError(t, NewPipeline(pix.TierReference, opts).Convert(got, band))
		for y := range 4 {
			require.Equal(t, whole.Row(4+y), got.Row(y), "%v row %d", fcc, 4+y)
		}
	}
}

func TestBest(t *testing.T) {
	dim := pix.Dim{Width: 8, Height: 2}
	require.NotNil(t, Best(pix.ImgType{Fourcc: pix.FccBGRA32, Dim: dim}, pix.ImgType{Fourcc: pix.FccBGGR8, Dim: dim}))
	require.Nil(t, Best(pix.ImgType{Fourcc: pix.FccBGRA64, Dim: dim}, pix.ImgType{Fourcc: pix.FccBGGR8, Dim: dim}))
}

func TestResolutionIsLogged(t *testing.T) {
	orig := pix.Logger()
	t.Cleanup(func() { pix.SetLogger(orig) })
	var buf bytes.Buffer
	pix.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	dim := pix.Dim{Width: 16, Height: 4}
	p := NewPipeline(pix.TierReference, DefaultOptions())
	require.NoError(t, p.Convert(pix.Alloc(pix.FccBGRA32, dim), pix.Alloc(pix.FccGRBG12MIPI, dim)))
	require.Contains(t, buf.String(), "pipeline resolved")
	require.Contains(t, buf.String(), "demosaic")
}
