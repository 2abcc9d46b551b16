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

import "fmt"

// Point is a pixel position.
type Point struct {
	X, Y int
}

// Dim is the size of an image in pixels.
type Dim struct {
	Width, Height int
}

// IsNull reports whether both extents are zero.
func (d Dim) IsNull() bool {
	return d.Width == 0 && d.Height == 0
}

// Empty reports whether the dimension covers no pixel.
func (d Dim) Empty() bool {
	return d.Width <= 0 || d.Height <= 0
}

// Area returns Width*Height.
func (d Dim) Area() int {
	return d.Width * d.Height
}

func (d Dim) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// Rect is a half-open pixel rectangle [Left, Right) x [Top, Bottom).
//
// The all-zero Rect is a sentinel meaning "the full image": Clip expands it
// to the image bounds.
type Rect struct {
	Left, Top, Right, Bottom int
}

// IsNull reports whether r is the all-zero sentinel.
func (r Rect) IsNull() bool {
	return r == Rect{}
}

// Normalize returns r with Left <= Right and Top <= Bottom.
func (r Rect) Normalize() Rect {
	if r.Left > r.Right {
		r.Left, r.Right = r.Right, r.Left
	}
	if r.Top > r.Bottom {
		r.Top, r.Bottom = r.Bottom, r.Top
	}
	return r
}

// Size returns the extent of r.
func (r Rect) Size() Dim {
	return Dim{Width: r.Right - r.Left, Height: r.Bottom - r.Top}
}

// TopLeft returns the first pixel covered by r.
func (r Rect) TopLeft() Point {
	return Point{X: r.Left, Y: r.Top}
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X < r.Right && p.Y >= r.Top && p.Y < r.Bottom
}

// Clip returns r intersected with the image bounds [0, dim). The null rect
// clips to the full image. When r does not overlap the image the result is
// the null rect and ok is false, since the null rect would otherwise read
// back as "full image". Clip is idempotent on every rect it accepts.
func (r Rect) Clip(dim Dim) (clipped Rect, ok bool) {
	if r.IsNull() {
		return Rect{Right: dim.Width, Bottom: dim.Height}, !dim.Empty()
	}
	r = r.Normalize()
	if r.Right <= 0 || r.Bottom <= 0 || r.Left >= dim.Width || r.Top >= dim.Height {
		return Rect{}, false
	}
	r.Left = max(r.Left, 0)
	r.Top = max(r.Top, 0)
	r.Right = min(r.Right, dim.Width)
	r.Bottom = min(r.Bottom, dim.Height)
	return r, r.Left < r.Right && r.Top < r.Bottom
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.Left, r.Top, r.Right, r.Bottom)
}
