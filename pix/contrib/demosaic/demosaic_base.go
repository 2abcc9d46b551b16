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

package demosaic

import "github.com/ajroetker/go-rawpix/pix"

// greenThreshold is the gradient below which a green site counts as flat.
const greenThreshold = 7

type rgb struct {
	r, g, b uint8
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

// pixel interpolates the site x of the current row, whose color is given by
// p. It reads the columns x-1, x and x+1 of the three rows.
func (k *kernel) pixel(p pix.Pattern, w *window, x int) rgb {
	c, cl, cr := int(w.cur[x]), int(w.cur[x-1]), int(w.cur[x+1])
	p0, pl, pr := int(w.prev[x]), int(w.prev[x-1]), int(w.prev[x+1])
	n0, nl, nr := int(w.next[x]), int(w.next[x-1]), int(w.next[x+1])

	var r, g, b int
	switch p {
	case pix.PatternGR:
		r, g, b = (cl+cr)/2, k.onGreen(c, pl, pr, nl, nr), (p0+n0)/2
	case pix.PatternGB:
		r, g, b = (p0+n0)/2, k.onGreen(c, pl, pr, nl, nr), (cl+cr)/2
	case pix.PatternRG:
		r, g, b = c, k.aroundGreen(cl, cr, p0, n0), (pl+pr+nl+nr)/4
	default:
		r, g, b = (pl+pr+nl+nr)/4, k.aroundGreen(cl, cr, p0, n0), c
	}

	px := rgb{uint8(r), uint8(g), uint8(b)}
	if k.useMatrix {
		px.r, px.g, px.b = k.matrix.Apply(px.r, px.g, px.b)
	}
	return px
}

// aroundGreen estimates green at a red or blue site from its four green
// neighbours.
func (k *kernel) aroundGreen(cl, cr, p0, n0 int) int {
	if k.simpleGreen {
		return (cl + cr + p0 + n0) / 4
	}
	dh, dv := absDiff(cl, cr), absDiff(p0, n0)
	switch {
	case dh < dv:
		return (cl + cr) / 2
	case dh > dv:
		return (p0 + n0) / 2
	}
	return (cl + cr + p0 + n0) / 4
}

// onGreen returns the green of a green site.
func (k *kernel) onGreen(c, pl, pr, nl, nr int) int {
	if !k.avgGreen {
		return c
	}
	if absDiff(pl, pr) < greenThreshold && absDiff(pl, nl) < greenThreshold {
		return (pl + pr + nl + nr + 4*c) / 8
	}
	return c
}
