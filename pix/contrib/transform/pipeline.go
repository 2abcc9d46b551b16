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
	"fmt"
	"slices"

	"github.com/samber/lo"

	"github.com/ajroetker/go-rawpix/pix"
	"github.com/ajroetker/go-rawpix/pix/contrib/pwl"
	"github.com/ajroetker/go-rawpix/pix/contrib/workerpool"
)

// Pipeline converts frames with fixed options on one tier. It remembers the
// last resolved conversion and keeps its scratch memory between frames, so
// a stream of frames with the same geometry allocates nothing after the
// first.
//
// A Pipeline is not safe for concurrent use.
type Pipeline struct {
	tier pix.Tier
	env  Env

	last struct {
		dst, src pix.ImgType
		fn       Func
	}

	// bands holds one Env per band of ConvertParallel.
	bands []Env
}

// NewPipeline returns a pipeline running on tier.
func NewPipeline(tier pix.Tier, opts Options) *Pipeline {
	return &Pipeline{
		tier: tier,
		env:  Env{Options: opts, Cache: new(pwl.MapCache)},
	}
}

// Tier returns the tier the pipeline resolves conversions for.
func (p *Pipeline) Tier() pix.Tier { return p.tier }

// Options returns the current options.
func (p *Pipeline) Options() Options { return p.env.Options }

// SetOptions replaces the options used by the next conversion.
func (p *Pipeline) SetOptions(opts Options) { p.env.Options = opts }

// Cache returns the PWL map cache of the pipeline.
func (p *Pipeline) Cache() *pwl.MapCache { return p.env.Cache }

// lookup validates dst and src and resolves their conversion on the first
// tier of p.tier.Implied() that serves their geometry.
func (p *Pipeline) lookup(dst, src pix.ImageDescriptor) (Func, error) {
	if err := src.Validate(); err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	if err := dst.Validate(); err != nil {
		return nil, fmt.Errorf("destination: %w", err)
	}
	if p.last.fn != nil && p.last.dst == dst.ImgType && p.last.src == src.ImgType {
		return p.last.fn, nil
	}
	var (
		pl   plan
		used pix.Tier
	)
	for _, t := range p.tier.Implied() {
		if pl = resolve(t, dst.ImgType, src.ImgType); pl.fn != nil {
			used = t
			break
		}
	}
	if pl.fn == nil {
		pix.Logger().Warn("tier cannot serve conversion",
			"src", src.ImgType.String(), "dst", dst.ImgType.String(), "tier", p.tier.String())
		return nil, fmt.Errorf("%w: %s to %s on tier %s", pix.ErrUnsupported, src.ImgType, dst.ImgType, p.tier)
	}
	if used != p.tier {
		pix.Logger().Info("geometry outside tier limits",
			"src", src.ImgType.String(), "tier", p.tier.String(), "using", used.String())
	}
	p.last.dst, p.last.src, p.last.fn = dst.ImgType, src.ImgType, pl.fn
	pix.Logger().Debug("pipeline resolved",
		"src", src.ImgType.String(),
		"dst", dst.ImgType.String(),
		"tier", used.String(),
		"stages", pl.stages)
	return pl.fn, nil
}

// Convert converts src into dst. It returns an error wrapping
// pix.ErrInvalidDescriptor or pix.ErrUnsupported when the conversion cannot
// run; no pixel is written in that case.
func (p *Pipeline) Convert(dst, src pix.ImageDescriptor) error {
	fn, err := p.lookup(dst, src)
	if err != nil {
		return err
	}
	fn(dst, src, &p.env)
	return nil
}

// ConvertParallel is Convert split into bands of even height, one per
// worker of pool. Each band sees its neighbour rows, so the result equals
// Convert.
func (p *Pipeline) ConvertParallel(pool *workerpool.Pool, dst, src pix.ImageDescriptor) error {
	fn, err := p.lookup(dst, src)
	if err != nil {
		return err
	}
	// Bands share the cache; it must not be rebuilt while they run.
	if src.Fourcc.IsPWL() {
		p.env.Cache.Update(p.env.Options.PWL, p.env.Options.Whitebalance)
	}

	const align = 2
	bounds := pool.Bands(src.Height(), align)
	for len(p.bands) < len(bounds)-1 {
		p.bands = append(p.bands, Env{})
	}
	for i := range len(bounds) - 1 {
		p.bands[i].Options = p.env.Options
		p.bands[i].Cache = p.env.Cache
	}

	pool.ParallelBands(src.Height(), align, func(y0, y1 int) {
		env := &p.bands[slices.Index(bounds, y0)]
		fn(dst.Band(y0, y1), src.Band(y0, y1), env)
	})
	return nil
}

// Frame is one conversion of a batch.
type Frame struct {
	Dst, Src pix.ImageDescriptor
}

// ConvertBatch converts independent frames concurrently on pool. Frames may
// differ in format and size. Every frame is validated before any is
// converted; the first error is returned with the index of its frame.
func (p *Pipeline) ConvertBatch(pool *workerpool.Pool, frames []Frame) error {
	fns := make([]Func, len(frames))
	for i, f := range frames {
		fn, err := p.lookup(f.Dst, f.Src)
		if err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		fns[i] = fn
	}
	if lo.SomeBy(frames, func(f Frame) bool { return f.Src.Fourcc.IsPWL() }) {
		p.env.Cache.Update(p.env.Options.PWL, p.env.Options.Whitebalance)
	}

	pool.ParallelForAtomicBatched(len(frames), 1, func(start, end int) {
		env := Env{Options: p.env.Options, Cache: p.env.Cache}
		for i := start; i < end; i++ {
			fns[i](frames[i].Dst, frames[i].Src, &env)
		}
	})
	return nil
}
