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

//go:build amd64 && !goexperiment.simd

package pix

import "golang.org/x/sys/cpu"

func init() {
	// Without GOEXPERIMENT=simd no kernel runs vector instructions: the lane
	// models of SSSE3 and SSE4.1 stay runnable for cross checks, but the
	// reference tier is the one selected.
	setTiers()
}

func cpuSupports(t Tier) bool {
	switch t {
	case TierSSSE3:
		return cpu.X86.HasSSSE3
	case TierSSE41:
		return cpu.X86.HasSSE41
	case TierAVX2:
		return cpu.X86.HasAVX2
	}
	return false
}
