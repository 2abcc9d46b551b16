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

import "testing"

func TestRectClip(t *testing.T) {
	dim := Dim{Width: 640, Height: 480}
	tests := []struct {
		name   string
		in     Rect
		want   Rect
		wantOK bool
	}{
		{"null is full image", Rect{}, Rect{0, 0, 640, 480}, true},
		{"inside", Rect{10, 20, 30, 40}, Rect{10, 20, 30, 40}, true},
		{"overlapping left top", Rect{-10, -10, 5, 5}, Rect{0, 0, 5, 5}, true},
		{"overlapping right bottom", Rect{600, 400, 700, 500}, Rect{600, 400, 640, 480}, true},
		{"reversed corners", Rect{30, 40, 10, 20}, Rect{10, 20, 30, 40}, true},
		{"outside right", Rect{700, 0, 800, 10}, Rect{}, false},
		{"outside above", Rect{0, -20, 10, -10}, Rect{}, false},
		{"degenerate", Rect{5, 5, 5, 9}, Rect{5, 5, 5, 9}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.in.Clip(dim)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Clip(%v) = %v, %v, want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
			}
			if !ok {
				return
			}
			again, ok2 := got.Clip(dim)
			if again != got || !ok2 {
				t.Errorf("Clip is not idempotent: %v -> %v", got, again)
			}
		})
	}
}

func TestRectHelpers(t *testing.T) {
	r := Rect{2, 4, 10, 8}
	if got := r.Size(); got != (Dim{8, 4}) {
		t.Errorf("Size() = %v, want 8x4", got)
	}
	if !r.Contains(Point{2, 4}) || r.Contains(Point{10, 4}) {
		t.Error("Contains() must be half-open")
	}
	if got := r.TopLeft(); got != (Point{2, 4}) {
		t.Errorf("TopLeft() = %v", got)
	}
	if !(Rect{}).IsNull() || r.IsNull() {
		t.Error("IsNull() mismatch")
	}
}

func TestDim(t *testing.T) {
	if !(Dim{}).IsNull() || !(Dim{0, 3}).Empty() || (Dim{2, 2}).Empty() {
		t.Error("Dim predicates mismatch")
	}
	if got := (Dim{3, 5}).Area(); got != 15 {
		t.Errorf("Area() = %d, want 15", got)
	}
	if got := (Dim{640, 480}).String(); got != "640x480" {
		t.Errorf("String() = %q", got)
	}
}
