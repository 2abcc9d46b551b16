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

package pwl

import "github.com/ajroetker/go-rawpix/pix"

// cacheKey identifies the inputs a MapCache was built from.
type cacheKey struct {
	params pix.PWLParams
	wb     pix.WhitebalanceParams
}

// MapCache holds one code -> 8-bit table per Bayer quadrant (00, 01, 10, 11
// of the RGGB mosaic: R, GR, GB, B). Each table folds the HDR gain and the
// channel gain into the decode so a conversion is one lookup per pixel.
//
// The tables are rebuilt only when Update sees a different key. A MapCache
// is not safe for concurrent use; the zero value is ready to use.
type MapCache struct {
	key      cacheKey
	built    bool
	rebuilds int
	tables   [4][Codes]uint8
}

// Update makes the tables match params and wb. It reports whether the
// tables were rebuilt.
func (c *MapCache) Update(params pix.PWLParams, wb pix.WhitebalanceParams) bool {
	key := cacheKey{params: params, wb: wb}
	if c.built && c.key == key {
		return false
	}
	c.key, c.built = key, true
	c.rebuilds++

	gains := [4]float32{1, 1, 1, 1}
	if wb.Apply {
		gains = [4]float32{wb.R, wb.GR, wb.GB, wb.B}
	}
	lut := Table()
	hdr := GainFactor(params.HDRGain)
	for q, g := range gains {
		scale := hdr * float64(min(max(g, 0), 4))
		t := &c.tables[q]
		for code := range t {
			t[code] = uint8(Quantize(float64(lut[code])*scale, 0xFF))
		}
	}
	pix.Logger().Debug("pwl map tables rebuilt", "hdr_gain", params.HDRGain, "wb", wb.Apply, "rebuilds", c.rebuilds)
	return true
}

// Table returns the table of quadrant q in [0, 4).
func (c *MapCache) Table(q int) *[Codes]uint8 {
	return &c.tables[q&3]
}

// Rebuilds returns how often the tables have been built.
func (c *MapCache) Rebuilds() int {
	return c.rebuilds
}
