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

//go:generate go tool stringer -type=Tier -trimprefix=Tier

import (
	"fmt"
	"iter"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"
)

// Tier is one implementation level of the transforms. Every tier computes
// byte-identical results for integer formats; they differ in block width and
// in the geometry they accept.
//
// TierSSSE3, TierSSE41 and TierNEON are lane models: portable Go written in
// the block structure of their instruction sets on the lane types of this
// package. They run on every host and fix the block algorithms bit for bit,
// but they are never selected by Best since they do not run vector
// instructions. TierAVX2 runs simd/archsimd kernels and only exists in
// amd64 builds with GOEXPERIMENT=simd.
type Tier int

const (
	// TierReference is the portable per-pixel implementation. It accepts
	// every advertised conversion.
	TierReference Tier = iota

	// TierSSSE3 processes 16-byte blocks with byte shuffles (x86-64 model).
	TierSSSE3

	// TierSSE41 processes 16-pixel blocks with widening arithmetic (x86-64
	// model).
	TierSSE41

	// TierNEON processes 32-pixel blocks with de-interleaving loads (arm64
	// model).
	TierNEON

	// TierAVX2 processes 32-pixel blocks in 256-bit registers.
	TierAVX2

	numTiers
)

// Width returns the block width of the tier in bytes.
// For example: 16 for SSSE3/SSE4.1, 32 for NEON double-register blocks.
func (t Tier) Width() int {
	switch t {
	case TierSSSE3, TierSSE41:
		return 16
	case TierNEON, TierAVX2:
		return 32
	default:
		return 1
	}
}

// IsVector reports whether t runs vector instructions rather than modelling
// them.
func (t Tier) IsVector() bool {
	return t == TierAVX2
}

// Implied returns t followed by the tiers whose kernels t may use for
// stages it does not implement, ending with TierReference. A multi-stage
// conversion looks each stage up along this chain. A vector tier goes
// straight to the reference tier, which is faster than any lane model.
func (t Tier) Implied() []Tier {
	switch t {
	case TierSSE41:
		return []Tier{TierSSE41, TierSSSE3, TierReference}
	case TierSSSE3:
		return []Tier{TierSSSE3, TierReference}
	case TierNEON:
		return []Tier{TierNEON, TierReference}
	case TierAVX2:
		return []Tier{TierAVX2, TierReference}
	default:
		return []Tier{TierReference}
	}
}

// runnableTiers lists the tiers this process can execute, best first. The
// vector tiers are prepended by the init() of dispatch_*.go files.
var runnableTiers = []Tier{TierNEON, TierSSE41, TierSSSE3, TierReference}

// AllTiers returns every tier this process can run, best first: the vector
// tiers the CPU supports followed by the lane models and the reference.
// Cross-tier tests iterate it.
func AllTiers() []Tier {
	return slices.Clone(runnableTiers)
}

// CanRun reports whether t can be executed by this process.
func CanRun(t Tier) bool {
	return slices.Contains(runnableTiers, t)
}

// CPUSupports reports whether the CPU has the instruction set t runs or
// models.
func CPUSupports(t Tier) bool {
	return t == TierReference || cpuSupports(t)
}

// ParseTier parses a tier name as printed by Tier.String, case-insensitive.
func ParseTier(s string) (Tier, error) {
	if s == "" || strings.EqualFold(s, "best") {
		return BestTier(), nil
	}
	for t := range numTiers {
		if strings.EqualFold(t.String(), s) {
			return t, nil
		}
	}
	return TierReference, fmt.Errorf("pix: unknown tier %q", s)
}

// availableTiers is the list Best resolves through, best first, always
// ending with TierReference. It holds only vector tiers besides the
// reference. Set by init() in dispatch_*.go files.
var availableTiers = []Tier{TierReference}

// AvailableTiers returns the tiers Best resolves through, best first. The
// last entry is always TierReference.
func AvailableTiers() []Tier {
	return slices.Clone(availableTiers)
}

// BestTier returns the preferred tier on this CPU.
func BestTier() Tier {
	return availableTiers[0]
}

// Tiers iterates the selectable tiers, best first, without copying the list.
// The contrib packages resolve their Best functions through it.
func Tiers() iter.Seq[Tier] {
	logTiers()
	return slices.Values(availableTiers)
}

var logTiers = sync.OnceFunc(func() {
	Logger().Debug("pixel transform tiers detected",
		"tiers", availableTiers,
		"runnable", runnableTiers,
		"best", availableTiers[0],
		"no_simd", NoSimdEnv())
})

// HasTier reports whether t is selectable by Best.
func HasTier(t Tier) bool {
	return slices.Contains(availableTiers, t)
}

// setTiers installs the selectable vector tiers, best first.
func setTiers(vector ...Tier) {
	availableTiers = append(slices.Clone(vector), TierReference)
}

// NoSimdEnv checks if the RAWPIX_NO_SIMD environment variable is set.
// When set, only the reference tier is used regardless of CPU capabilities.
// This is useful for testing and debugging.
func NoSimdEnv() bool {
	val := os.Getenv("RAWPIX_NO_SIMD")
	if val == "" {
		return false
	}
	// Any non-empty value is considered true, but also parse as bool
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}
