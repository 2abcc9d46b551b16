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

// Package transform composes the contrib packages into conversions between
// any two advertised formats.
//
// A conversion has at most two stages joined by an 8-bit scratch image: for
// example a packed 12-bit Bayer frame is unpacked (with whitebalance) into
// Bayer8 and then demosaiced into BGRA32. Get resolves a conversion for one
// tier; each stage uses the best implementation along tier.Implied().
// Pipeline adds validation, scratch reuse and banded parallel execution.
package transform

import (
	"github.com/samber/lo"

	"github.com/ajroetker/go-rawpix/pix"
	"github.com/ajroetker/go-rawpix/pix/contrib/demosaic"
	"github.com/ajroetker/go-rawpix/pix/contrib/mono"
	"github.com/ajroetker/go-rawpix/pix/contrib/packed"
	"github.com/ajroetker/go-rawpix/pix/contrib/pwl"
	"github.com/ajroetker/go-rawpix/pix/contrib/whitebalance"
)

// Options are the settings a conversion reads when it runs.
type Options struct {
	Whitebalance pix.WhitebalanceParams
	Demosaic     pix.DemosaicOptions
	PWL          pix.PWLParams
}

// DefaultOptions returns neutral whitebalance, the default demosaic options
// and no HDR gain.
func DefaultOptions() Options {
	return Options{
		Whitebalance: pix.NeutralWhitebalance(),
		Demosaic:     pix.DefaultDemosaicOptions(),
	}
}

// Env is the state a running conversion uses: the options, the PWL map
// cache and scratch memory for intermediate images. An Env must not be used
// by two conversions at once, except that several Envs may share a Cache
// that is already up to date.
type Env struct {
	Options Options
	Cache   *pwl.MapCache
	scratch []byte
	edge    []byte
}

// NewEnv returns an Env with its own map cache.
func NewEnv(opts Options) *Env {
	return &Env{Options: opts, Cache: new(pwl.MapCache)}
}

func (e *Env) factors() whitebalance.Factors {
	return whitebalance.FactorsFromParams(e.Options.Whitebalance)
}

// scratchImage returns an image over the scratch buffer, growing it only
// when it is too small.
func (e *Env) scratchImage(fcc pix.Fourcc, dim pix.Dim) pix.ImageDescriptor {
	n := pix.ImageSize(fcc, dim)
	if cap(e.scratch) < n {
		e.scratch = make([]byte, n)
	}
	return pix.NewDescriptor(e.scratch[:n], fcc, dim, 0)
}

// convertAbove runs f on row -1 of src alone and stores the result in out.
// The row is converted as the second row of a two-row copy so that stages
// indexing the mosaic by row parity see it at its real phase.
func (e *Env) convertAbove(f Func, out []byte, fcc pix.Fourcc, src pix.ImageDescriptor) {
	dim := pix.Dim{Width: src.Width(), Height: 2}
	ns, nd := pix.ImageSize(src.Fourcc, dim), pix.ImageSize(fcc, dim)
	if cap(e.edge) < ns+nd {
		e.edge = make([]byte, ns+nd)
	}
	in := pix.NewDescriptor(e.edge[:ns], src.Fourcc, dim, 0)
	tmp := pix.NewDescriptor(e.edge[ns:ns+nd], fcc, dim, 0)
	above := src.Row(-1)
	copy(in.Row(0), above)
	copy(in.Row(1), above)
	f(tmp, in, e)
	copy(out, tmp.Row(1))
}

// Func converts src into dst.
type Func func(dst, src pix.ImageDescriptor, env *Env)

// plan is a resolved conversion and the names of its stages.
type plan struct {
	fn     Func
	stages []string
}

// Get returns the conversion from src to dst for tier, or nil when the pair
// is not supported or the geometry is invalid for every tier tier implies.
func Get(tier pix.Tier, dst, src pix.ImgType) Func {
	return resolve(tier, dst, src).fn
}

// Best returns the conversion from src to dst for the best available tier.
func Best(dst, src pix.ImgType) Func {
	for t := range pix.Tiers() {
		if fn := Get(t, dst, src); fn != nil {
			return fn
		}
	}
	return nil
}

// nominal is a geometry every stage of every tier accepts.
var nominal = pix.Dim{Width: 64, Height: 4}

func atNominal(t pix.ImgType) pix.ImgType {
	t.Dim = nominal
	return t
}

// SupportedOutputs returns the formats src converts to.
func SupportedOutputs(src pix.Fourcc) []pix.Fourcc {
	return lo.Filter(pix.KnownFourccs(), func(dst pix.Fourcc, _ int) bool {
		return Get(pix.TierReference, pix.ImgType{Fourcc: dst, Dim: nominal}, pix.ImgType{Fourcc: src, Dim: nominal}) != nil
	})
}

// SupportedInputs returns the formats with at least one output.
func SupportedInputs() []pix.Fourcc {
	return lo.Filter(pix.KnownFourccs(), func(src pix.Fourcc, _ int) bool {
		return len(SupportedOutputs(src)) > 0
	})
}

func isRGB(f pix.Fourcc) bool {
	return f == pix.FccBGR24 || f == pix.FccBGRA32 || f == pix.FccBGRA64
}

func resolve(tier pix.Tier, dst, src pix.ImgType) plan {
	if !dst.Valid() || !src.Valid() || dst.Dim != src.Dim {
		return plan{}
	}
	s, d := src.Fourcc, dst.Fourcc
	switch {
	case s.IsPWL():
		return resolvePWL(tier, dst, src)
	case isRGB(d) && s.IsMono():
		return resolveMonoRGB(tier, dst, src)
	case isRGB(d) && s.IsBayer():
		return resolveDemosaic(tier, dst, src)
	case isRGB(d):
		return plan{}
	case d == s:
		return resolveCopy(tier, src)
	default:
		return resolveDepth(tier, dst, src)
	}
}

// resolveCopy copies an image, whitebalancing Bayer data on the way.
func resolveCopy(tier pix.Tier, t pix.ImgType) plan {
	f := t.Fourcc
	if !f.IsBayer() && !f.IsMono() && !f.IsRAW() {
		return plan{}
	}
	if f.IsBayer() {
		if wb := whitebalanceCopy(tier, t, t); wb != nil {
			return plan{
				fn:     func(dst, src pix.ImageDescriptor, env *Env) { wb(dst, src, env.factors()) },
				stages: []string{"whitebalance-copy"},
			}
		}
	}
	return plan{
		fn: func(dst, src pix.ImageDescriptor, _ *Env) {
			for y := range src.Height() {
				copy(dst.Row(y), src.Row(y))
			}
		},
		stages: []string{"copy"},
	}
}

// inPlaceWB returns the whitebalance applied to dst after a depth stage, or
// nil when dst carries no mosaic.
func inPlaceWB(tier pix.Tier, dst pix.ImgType) whitebalance.Func {
	if !dst.Fourcc.IsBayer() {
		return nil
	}
	return whitebalanceFunc(tier, dst)
}

// withWB appends an in-place whitebalance of dst to fn.
func withWB(p plan, wb whitebalance.Func) plan {
	if wb == nil {
		return p
	}
	fn := p.fn
	return plan{
		fn: func(dst, src pix.ImageDescriptor, env *Env) {
			fn(dst, src, env)
			wb(dst, env.factors())
		},
		stages: append(p.stages, "whitebalance"),
	}
}

// resolveDepth changes bit depth or packing within one color class.
func resolveDepth(tier pix.Tier, dst, src pix.ImgType) plan {
	s, d := src.Fourcc, dst.Fourcc
	if s.IsBayer() && d == s.Equivalent8() {
		if fn := packedWB(tier, dst, src); fn != nil {
			return plan{
				fn:     func(dst, src pix.ImageDescriptor, env *Env) { fn(dst, src, env.factors()) },
				stages: []string{"unpack+whitebalance"},
			}
		}
	}
	if fn := packedFunc(tier, dst, src); fn != nil {
		p := plan{
			fn:     func(dst, src pix.ImageDescriptor, _ *Env) { fn(dst, src) },
			stages: []string{"unpack"},
		}
		return withWB(p, inPlaceWB(tier, dst))
	}
	fq := pwl.GetFloatTo8(dst, src)
	if fq == nil {
		fq = pwl.GetFloatTo16(dst, src)
	}
	if fq != nil {
		p := plan{
			fn:     func(dst, src pix.ImageDescriptor, _ *Env) { fq(dst, src) },
			stages: []string{"quantize"},
		}
		return withWB(p, inPlaceWB(tier, dst))
	}
	return plan{}
}

// halo returns how many neighbour rows of src an intermediate stage converts
// above and below src, so a demosaic of the intermediate sees the rows the
// flags of src announce. Rows above come in pairs to keep the mosaic phase
// when the buffer holds both; a lone row above is converted on its own.
func halo(src pix.ImageDescriptor) (top, bottom int) {
	if src.Flags&pix.FlagNoWrapBegin != 0 {
		switch {
		case src.HasRow(-2):
			top = 2
		case src.HasRow(-1):
			top = 1
		}
	}
	if src.Flags&pix.FlagNoWrapEnd != 0 && src.HasRow(src.Height()) {
		bottom = 1
	}
	return top, bottom
}

// viaScratch runs first into a scratch image of format fcc and second from
// the scratch image into dst.
func viaScratch(fcc pix.Fourcc, first, second plan) plan {
	if first.fn == nil || second.fn == nil {
		return plan{}
	}
	f, g := first.fn, second.fn
	return plan{
		fn: func(dst, src pix.ImageDescriptor, env *Env) {
			top, bottom := halo(src)
			h := src.Height()
			tmp := env.scratchImage(fcc, pix.Dim{Width: src.Width(), Height: top + h + bottom})
			if top == 1 {
				env.convertAbove(f, tmp.Row(0), fcc, src)
				f(tmp.Band(1, 1+h+bottom), src.Band(0, h+bottom), env)
			} else {
				f(tmp, src.Band(-top, h+bottom), env)
			}
			g(dst, tmp.Band(top, top+h), env)
		},
		stages: append(append([]string{}, first.stages...), second.stages...),
	}
}

func demosaicPlan(tier pix.Tier, dst, src pix.ImgType) plan {
	fn := demosaicFunc(tier, dst, src)
	if fn == nil {
		return plan{}
	}
	return plan{
		fn:     func(dst, src pix.ImageDescriptor, env *Env) { fn(dst, src, env.Options.Demosaic) },
		stages: []string{"demosaic"},
	}
}

// resolveDemosaic converts a Bayer image to BGR24 or BGRA32.
func resolveDemosaic(tier pix.Tier, dst, src pix.ImgType) plan {
	t8 := pix.ImgType{Fourcc: src.Fourcc.Equivalent8(), Dim: src.Dim}
	dm := demosaicPlan(tier, dst, t8)
	if dm.fn == nil {
		return plan{}
	}
	if src.Fourcc != t8.Fourcc {
		return viaScratch(t8.Fourcc, resolveDepth(tier, t8, src), dm)
	}

	// Bayer8 is demosaiced in place of the caller's buffer unless it has to
	// be whitebalanced first.
	wb := whitebalanceCopy(tier, t8, t8)
	if wb == nil {
		return plan{}
	}
	balanced := viaScratch(t8.Fourcc, plan{
		fn:     func(dst, src pix.ImageDescriptor, env *Env) { wb(dst, src, env.factors()) },
		stages: []string{"whitebalance-copy"},
	}, dm)
	direct, viaWB := dm.fn, balanced.fn
	return plan{
		fn: func(dst, src pix.ImageDescriptor, env *Env) {
			if env.factors().IsIdentity() {
				direct(dst, src, env)
				return
			}
			viaWB(dst, src, env)
		},
		stages: balanced.stages,
	}
}

// resolveMonoRGB expands a mono image to gray RGB, going through MONO8 for
// sources mono cannot expand directly.
func resolveMonoRGB(tier pix.Tier, dst, src pix.ImgType) plan {
	if fn := monoFunc(tier, dst, src); fn != nil {
		return plan{
			fn:     func(dst, src pix.ImageDescriptor, _ *Env) { fn(dst, src) },
			stages: []string{"mono"},
		}
	}
	if dst.Fourcc == pix.FccBGRA64 {
		return plan{}
	}
	t8 := pix.ImgType{Fourcc: pix.FccMono8, Dim: src.Dim}
	fn := monoFunc(tier, dst, t8)
	if fn == nil {
		return plan{}
	}
	return viaScratch(pix.FccMono8, resolveDepth(tier, t8, src), plan{
		fn:     func(dst, src pix.ImageDescriptor, _ *Env) { fn(dst, src) },
		stages: []string{"mono"},
	})
}

// resolvePWL decodes PWL to float, to RGGB8 through the map cache, or on to
// RGB through RGGB8.
func resolvePWL(tier pix.Tier, dst, src pix.ImgType) plan {
	s, d := src.Fourcc, dst.Fourcc
	switch {
	case d == s.EquivalentFloat():
		fn := pwl.GetToFloat(dst, src)
		if fn == nil {
			return plan{}
		}
		p := plan{
			fn:     func(dst, src pix.ImageDescriptor, _ *Env) { fn(dst, src) },
			stages: []string{"pwl-float"},
		}
		return withWB(p, inPlaceWB(tier, dst))
	case d == s.Equivalent8():
		fn := pwl.GetToFcc8WB(dst, src)
		if fn == nil {
			return plan{}
		}
		return plan{
			fn: func(dst, src pix.ImageDescriptor, env *Env) {
				env.Cache.Update(env.Options.PWL, env.Options.Whitebalance)
				fn(dst, src, env.Cache)
			},
			stages: []string{"pwl-map"},
		}
	case d == pix.FccBGR24 || d == pix.FccBGRA32:
		t8 := pix.ImgType{Fourcc: s.Equivalent8(), Dim: src.Dim}
		return viaScratch(t8.Fourcc, resolvePWL(tier, t8, src), demosaicPlan(tier, dst, t8))
	}
	return plan{}
}

// stage walks tier.Implied() and returns the first implementation of a
// stage. A tier that implements the stage for the formats but refuses their
// geometry ends the walk: lower tiers only stand in for stages a tier lacks.
func stage[F any](tier pix.Tier, dst, src pix.ImgType, get func(t pix.Tier, dst, src pix.ImgType) (F, bool)) F {
	var none F
	for _, t := range tier.Implied() {
		if fn, ok := get(t, dst, src); ok {
			return fn
		}
		if _, ok := get(t, atNominal(dst), atNominal(src)); ok {
			return none
		}
	}
	return none
}

func packedFunc(tier pix.Tier, dst, src pix.ImgType) packed.Func {
	return stage(tier, dst, src, func(t pix.Tier, dst, src pix.ImgType) (packed.Func, bool) {
		fn := packed.Get(t, dst, src)
		return fn, fn != nil
	})
}

func packedWB(tier pix.Tier, dst, src pix.ImgType) packed.WBFunc {
	return stage(tier, dst, src, func(t pix.Tier, dst, src pix.ImgType) (packed.WBFunc, bool) {
		fn := packed.GetWB(t, dst, src)
		return fn, fn != nil
	})
}

func whitebalanceFunc(tier pix.Tier, img pix.ImgType) whitebalance.Func {
	return stage(tier, img, img, func(t pix.Tier, img, _ pix.ImgType) (whitebalance.Func, bool) {
		fn := whitebalance.Get(t, img)
		return fn, fn != nil
	})
}

func whitebalanceCopy(tier pix.Tier, dst, src pix.ImgType) whitebalance.CopyFunc {
	return stage(tier, dst, src, func(t pix.Tier, dst, src pix.ImgType) (whitebalance.CopyFunc, bool) {
		fn := whitebalance.GetCopy(t, dst, src)
		return fn, fn != nil
	})
}

func demosaicFunc(tier pix.Tier, dst, src pix.ImgType) demosaic.Func {
	return stage(tier, dst, src, func(t pix.Tier, dst, src pix.ImgType) (demosaic.Func, bool) {
		fn := demosaic.Get(t, dst, src)
		return fn, fn != nil
	})
}

func monoFunc(tier pix.Tier, dst, src pix.ImgType) mono.Func {
	return stage(tier, dst, src, func(t pix.Tier, dst, src pix.ImgType) (mono.Func, bool) {
		fn := mono.Get(t, dst, src)
		return fn, fn != nil
	})
}
