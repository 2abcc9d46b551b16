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

// Package demosaic interpolates 8-bit Bayer mosaics to BGR24 and BGRA32
// with an edge-sensing filter over a 3-row window.
//
// At red and blue sites green follows the smaller of the horizontal and
// vertical gradients; the two missing colors of every site are averages of
// their nearest samples. At green sites the sample is kept, or smoothed
// toward its diagonal neighbours when DemosaicOptions.UseAvgGreen is set and
// the area is flat. The two outer columns repeat their inner neighbour and
// rows outside the image are mirrored unless the descriptor flags announce
// real neighbour rows.
//
// Every tier writes identical bytes for every option combination. The SSE4.1
// and NEON tiers process 16 and 32 pixels per step and finish each row with
// the reference pixel function.
package demosaic
