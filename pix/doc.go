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

// Package pix is the core of go-rawpix: the data model shared by all
// transforms (formats, geometry, image descriptors, options) and the tier
// dispatch that selects between the portable reference implementation and
// the block-vectorised implementations.
//
// The transforms themselves live in the contrib packages:
//
//	packed        packed 10/12-bit codecs and bit-depth conversion
//	whitebalance  per-quadrant channel gains
//	demosaic      edge-sensing Bayer to BGR24/BGRA32
//	pwl           piecewise-linear HDR decode
//	mono          mono to BGR expansion
//	transform     registry and pipelines composing the above
//
// Basic usage:
//
//	src := pix.NewDescriptor(raw, pix.FccGRBG8, pix.Dim{Width: 640, Height: 480}, 0)
//	dst := pix.Alloc(pix.FccBGRA32, src.Dim)
//	if fn := demosaic.Best(dst.Type(), src.Type()); fn != nil {
//	    fn(dst, src, pix.DefaultDemosaicOptions())
//	}
//
// The best tier is selected once at start-up. Only tiers running vector
// instructions compete with the reference tier: AVX2 kernels built on
// simd/archsimd when compiled with GOEXPERIMENT=simd. The SSSE3, SSE4.1 and
// NEON tiers are lane models that run anywhere and are reached through Get.
// Set RAWPIX_NO_SIMD=1 to force the reference tier.
package pix
