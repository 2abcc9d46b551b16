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

package workerpool

import (
	"runtime"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
)

func TestNew(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	if pool.NumWorkers() != 4 {
		t.Errorf("NumWorkers() = %d, want 4", pool.NumWorkers())
	}
}

func TestNewDefault(t *testing.T) {
	pool := New(0)
	defer pool.Close()

	if pool.NumWorkers() != runtime.GOMAXPROCS(0) {
		t.Errorf("NumWorkers() = %d, want %d", pool.NumWorkers(), runtime.GOMAXPROCS(0))
	}
}

func TestParallelFor(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	for _, n := range []int{1, 3, 4, 5, 100, 101} {
		results := make([]int, n)
		pool.ParallelFor(n, func(start, end int) {
			for i := start; i < end; i++ {
				results[i]++
			}
		})
		for i, r := range results {
			if r != 1 {
				t.Errorf("n=%d: index %d visited %d times, want 1", n, i, r)
			}
		}
	}
}

func TestParallelForZeroN(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	var called bool
	pool.ParallelFor(0, func(start, end int) {
		called = true
	})
	if called {
		t.Error("ParallelFor with n=0 should not call fn")
	}
}

func TestParallelForAtomicBatched(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	n := 100
	var visited [100]atomic.Int32
	pool.ParallelForAtomicBatched(n, 7, func(start, end int) {
		for i := start; i < end; i++ {
			visited[i].Add(1)
		}
	})
	for i := range n {
		if got := visited[i].Load(); got != 1 {
			t.Errorf("index %d visited %d times, want 1", i, got)
		}
	}
}

func TestParallelBands(t *testing.T) {
	tests := []struct {
		workers, height, align int
	}{
		{4, 480, 2},
		{4, 7, 2},
		{3, 10, 2},
		{8, 6, 2},
		{1, 480, 2},
		{5, 33, 1},
	}
	for _, tt := range tests {
		pool := New(tt.workers)

		var mu sync.Mutex
		var got [][2]int
		pool.ParallelBands(tt.height, tt.align, func(y0, y1 int) {
			mu.Lock()
			got = append(got, [2]int{y0, y1})
			mu.Unlock()
		})
		pool.Close()

		slices.SortFunc(got, func(a, b [2]int) int { return a[0] - b[0] })
		next := 0
		for _, b := range got {
			if b[0] != next || b[1] <= b[0] || b[0]%tt.align != 0 {
				t.Errorf("%+v: bad band %v after %d", tt, b, next)
			}
			next = b[1]
		}
		if next != tt.height {
			t.Errorf("%+v: bands end at %d", tt, next)
		}
	}
}

func TestBandsMatchesParallelBands(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	var mu sync.Mutex
	starts := []int{}
	pool.ParallelBands(100, 2, func(y0, y1 int) {
		mu.Lock()
		starts = append(starts, y0)
		mu.Unlock()
	})
	slices.Sort(starts)

	b := pool.Bands(100, 2)
	if !slices.Equal(b[:len(b)-1], starts) || b[len(b)-1] != 100 {
		t.Errorf("Bands() = %v, ParallelBands starts = %v", b, starts)
	}
}

func TestCloseMultipleTimes(t *testing.T) {
	pool := New(4)
	pool.Close()
	pool.Close()
}

func TestClosedPoolFallback(t *testing.T) {
	pool := New(4)
	pool.Close()

	var calls int
	pool.ParallelBands(64, 2, func(y0, y1 int) {
		calls++
		if y0 != 0 || y1 != 64 {
			t.Errorf("closed pool band = [%d, %d), want [0, 64)", y0, y1)
		}
	})
	if calls != 1 {
		t.Errorf("closed pool ran %d bands, want 1", calls)
	}
}

func BenchmarkParallelBands(b *testing.B) {
	pool := New(0)
	defer pool.Close()

	rows := make([]byte, 1080*1920)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pool.ParallelBands(1080, 2, func(y0, y1 int) {
			for j := y0 * 1920; j < y1*1920; j++ {
				rows[j]++
			}
		})
	}
}
