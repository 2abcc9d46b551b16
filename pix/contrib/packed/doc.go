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

// Package packed converts between the packed 10 and 12-bit sensor layouts
// and planar 8 and 16-bit samples.
//
// Supported layouts (see pix.Layout for the byte order of each):
//   - 12-bit packed, MIPI and spacked: 2 samples in 3 bytes
//   - 10-bit MIPI and spacked: 4 samples in 5 bytes
//   - unpacked 16-bit cells holding 10, 12 or 16 valid bits
//   - 16-bit cells holding 12 valid bits in the high bits (16H12)
//
// Unpacking to 16 bits left-justifies the valid bits, unpacking to 8 bits
// keeps the top 8 bits and unpacking to 12 bits low-justifies them.
// Packing takes the top bits of a left-justified 16-bit sample, so a
// pack/unpack round trip is lossless for every representable value.
//
// Conversions are looked up per tier with Get. The block kernels of the
// SSSE3 and NEON tiers finish each row with the reference group functions,
// so every tier writes identical bytes.
package packed
