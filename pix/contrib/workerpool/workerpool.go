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

// Package workerpool provides a persistent worker pool that splits frames
// into horizontal bands. A Pool is created once per capture stream and
// reused for every frame, so per-frame conversion spawns no goroutines and
// allocates no channels.
//
// Usage:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	for frame := range frames {
//	    pool.ParallelBands(frame.Height(), 2, func(y0, y1 int) {
//	        convert(dst.Band(y0, y1), frame.Band(y0, y1))
//	    })
//	}
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a persistent worker pool. Workers are spawned once at creation.
type Pool struct {
	numWorkers int
	workC      chan workItem
	closeOnce  sync.Once
	closed     atomic.Bool
}

type workItem struct {
	fn      func()
	barrier *sync.WaitGroup
}

// New creates a pool with numWorkers workers. If numWorkers <= 0, uses
// GOMAXPROCS.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		workC:      make(chan workItem, numWorkers*2),
	}
	for range numWorkers {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	for item := range p.workC {
		item.fn()
		item.barrier.Done()
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Close shuts the pool down after pending work completes. Calling Close
// multiple times is safe. A closed pool runs work on the calling goroutine.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// run hands fn to count workers and blocks until all of them return.
func (p *Pool) run(count int, fn func(worker int)) {
	var wg sync.WaitGroup
	wg.Add(count)
	for i := range count {
		p.workC <- workItem{
			fn:      func() { fn(i) },
			barrier: &wg,
		}
	}
	wg.Wait()
}

// ParallelFor executes fn over [0, n) split into one contiguous range per
// worker. Blocks until all work completes.
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	workers := min(p.numWorkers, n)
	if workers == 1 || p.closed.Load() {
		fn(0, n)
		return
	}

	chunk := (n + workers - 1) / workers
	workers = (n + chunk - 1) / chunk
	p.run(workers, func(i int) {
		fn(i*chunk, min((i+1)*chunk, n))
	})
}

// ParallelForAtomicBatched executes fn over batches of batchSize indices,
// distributed by atomic work stealing. It balances load when the cost per
// index varies, e.g. frames of a batch with different sizes.
func (p *Pool) ParallelForAtomicBatched(n int, batchSize int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	batchSize = max(batchSize, 1)

	numBatches := (n + batchSize - 1) / batchSize
	workers := min(p.numWorkers, numBatches)
	if workers == 1 || p.closed.Load() {
		fn(0, n)
		return
	}

	var nextBatch atomic.Int32
	p.run(workers, func(int) {
		for {
			start := int(nextBatch.Add(1)-1) * batchSize
			if start >= n {
				return
			}
			fn(start, min(start+batchSize, n))
		}
	})
}

// ParallelBands splits the rows [0, height) into one band per worker and
// runs fn on each band. Every band starts at a multiple of align, so a
// Bayer frame split with align 2 keeps its pattern in every band. Blocks
// until all bands complete.
func (p *Pool) ParallelBands(height, align int, fn func(y0, y1 int)) {
	if height <= 0 {
		return
	}
	align = max(align, 1)

	units := (height + align - 1) / align
	p.ParallelFor(units, func(start, end int) {
		fn(start*align, min(end*align, height))
	})
}

// Bands returns the band boundaries ParallelBands would use for height rows:
// band i covers [b[i], b[i+1]).
func (p *Pool) Bands(height, align int) []int {
	if height <= 0 {
		return nil
	}
	align = max(align, 1)
	units := (height + align - 1) / align
	workers := min(p.numWorkers, units)
	if workers <= 1 || p.closed.Load() {
		return []int{0, height}
	}
	chunk := (units + workers - 1) / workers
	b := []int{0}
	for u := chunk; u < units; u += chunk {
		b = append(b, u*align)
	}
	return append(b, height)
}
