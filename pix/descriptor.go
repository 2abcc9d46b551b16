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

import (
	"encoding/binary"
	"fmt"
	"math"
)

// MaxPlanes is the largest number of planes a descriptor can carry.
const MaxPlanes = 4

// Flags qualify how a descriptor may be accessed.
type Flags uint32

const (
	// FlagNoWrapBegin marks that the row above row 0 holds real sensor data.
	// Filters with a vertical window read it instead of mirroring row 1.
	FlagNoWrapBegin Flags = 1 << iota

	// FlagNoWrapEnd marks that the row below the last row holds real data.
	FlagNoWrapEnd

	// FlagReadOnly marks a buffer that must not be written.
	FlagReadOnly
)

// ImgType is the format and size of an image.
type ImgType struct {
	Fourcc Fourcc
	Dim    Dim
}

// MinimumPitch returns the smallest valid row pitch in bytes.
func (t ImgType) MinimumPitch() int {
	return MinimumPitch(t.Fourcc, t.Dim.Width)
}

// BufferLength returns the byte size of a tightly packed image of this type.
func (t ImgType) BufferLength() int {
	return ImageSize(t.Fourcc, t.Dim)
}

// Valid reports whether the format is known and the size non-empty.
func (t ImgType) Valid() bool {
	return t.Fourcc.IsKnown() && !t.Dim.Empty()
}

func (t ImgType) String() string {
	return fmt.Sprintf("%s %s", t.Fourcc, t.Dim)
}

// Plane is one buffer of an image. Row y of the plane starts at byte
// Offset + y*Pitch of Data. Pitch is negative for bottom-up images, in which
// case Offset points at the last row of the buffer.
type Plane struct {
	Data   []byte
	Offset int
	Pitch  int
}

// ImageDescriptor is a view of a caller owned image. It is a small value and
// is meant to be created per call.
type ImageDescriptor struct {
	ImgType
	Planes     [MaxPlanes]Plane
	PlaneCount int
	Flags      Flags
}

// NewDescriptor describes a single plane image stored in data. A pitch of 0
// selects the minimum pitch of the format.
func NewDescriptor(data []byte, fcc Fourcc, dim Dim, pitch int) ImageDescriptor {
	if pitch == 0 {
		pitch = MinimumPitch(fcc, dim.Width)
	}
	d := ImageDescriptor{
		ImgType:    ImgType{Fourcc: fcc, Dim: dim},
		PlaneCount: 1,
	}
	d.Planes[0] = Plane{Data: data, Pitch: pitch}
	return d
}

// Alloc returns a descriptor over a freshly allocated, tightly packed buffer.
func Alloc(fcc Fourcc, dim Dim) ImageDescriptor {
	return NewDescriptor(make([]byte, ImageSize(fcc, dim)), fcc, dim, 0)
}

// Width returns the image width in pixels.
func (d ImageDescriptor) Width() int { return d.Dim.Width }

// Height returns the image height in pixels.
func (d ImageDescriptor) Height() int { return d.Dim.Height }

// Pitch returns the row pitch of the first plane.
func (d ImageDescriptor) Pitch() int { return d.Planes[0].Pitch }

// Type returns the format and size of the image.
func (d ImageDescriptor) Type() ImgType { return d.ImgType }

// WithFlags returns a copy of d with flags added.
func (d ImageDescriptor) WithFlags(flags Flags) ImageDescriptor {
	d.Flags |= flags
	return d
}

// rowStart returns the byte offset of row y of the first plane.
func (d ImageDescriptor) rowStart(y int) int {
	return d.Planes[0].Offset + y*d.Planes[0].Pitch
}

// Row returns the bytes of row y, exactly MinimumPitch long. Rows -1 and
// Height are valid when the backing buffer extends over them, which is the
// case for bands cut out of a larger image.
func (d ImageDescriptor) Row(y int) []byte {
	start := d.rowStart(y)
	return d.Planes[0].Data[start : start+d.MinimumPitch() : start+d.MinimumPitch()]
}

// HasRow reports whether row y lies inside the backing buffer.
func (d ImageDescriptor) HasRow(y int) bool {
	start := d.rowStart(y)
	return start >= 0 && start+d.MinimumPitch() <= len(d.Planes[0].Data)
}

// Flipped returns a view of d with the row order reversed. Only the offset
// and pitch change; no pixel is moved.
func (d ImageDescriptor) Flipped() ImageDescriptor {
	for i := 0; i < max(d.PlaneCount, 1); i++ {
		p := &d.Planes[i]
		p.Offset += (d.Dim.Height - 1) * p.Pitch
		p.Pitch = -p.Pitch
	}
	d.Flags = d.Flags&^(FlagNoWrapBegin|FlagNoWrapEnd) |
		(d.Flags&FlagNoWrapBegin)<<1 | (d.Flags&FlagNoWrapEnd)>>1
	return d
}

// Band returns rows [y0, y1) of d as a descriptor sharing the buffer.
// Neighbour rows that exist in d are announced with the no-wrap flags, so a
// banded filter reads the same window as a single pass over d.
func (d ImageDescriptor) Band(y0, y1 int) ImageDescriptor {
	b := d
	for i := 0; i < max(d.PlaneCount, 1); i++ {
		b.Planes[i].Offset += y0 * b.Planes[i].Pitch
	}
	b.Dim.Height = y1 - y0
	if y0 > 0 {
		b.Flags |= FlagNoWrapBegin
	}
	if y1 < d.Dim.Height {
		b.Flags |= FlagNoWrapEnd
	}
	return b
}

// Crop returns the part of d covered by r. Only formats with whole bytes per
// pixel can be cropped. Bayer images must be cropped at even coordinates to
// keep their pattern.
func (d ImageDescriptor) Crop(r Rect) (ImageDescriptor, bool) {
	r, ok := r.Clip(d.Dim)
	bpp := d.Fourcc.BitsPerPixel()
	if !ok || bpp%8 != 0 {
		return ImageDescriptor{}, false
	}
	if _, bayer := d.Fourcc.BayerPattern(); bayer && (r.Left|r.Top)&1 != 0 {
		return ImageDescriptor{}, false
	}
	c := d.Band(r.Top, r.Bottom)
	c.Planes[0].Offset += r.Left * bpp / 8
	c.Dim.Width = r.Right - r.Left
	return c, true
}

// Validate checks that d describes a usable image: a known format, a
// non-empty size, a pitch of at least the minimum and a buffer covering every
// row.
func (d ImageDescriptor) Validate() error {
	if !d.Fourcc.IsKnown() {
		return fmt.Errorf("%w: unknown fourcc %s", ErrInvalidDescriptor, d.Fourcc)
	}
	if d.Dim.Empty() {
		return fmt.Errorf("%w: empty dimension %s", ErrInvalidDescriptor, d.Dim)
	}
	if d.PlaneCount < 1 {
		return fmt.Errorf("%w: no plane", ErrInvalidDescriptor)
	}
	minPitch := d.MinimumPitch()
	if p := d.Pitch(); p < minPitch && -p < minPitch {
		return fmt.Errorf("%w: pitch %d below minimum %d for %s", ErrInvalidDescriptor, p, minPitch, d.ImgType)
	}
	if !d.HasRow(0) || !d.HasRow(d.Dim.Height-1) {
		return fmt.Errorf("%w: buffer of %d bytes too small for %s with pitch %d",
			ErrInvalidDescriptor, len(d.Planes[0].Data), d.ImgType, d.Pitch())
	}
	return nil
}

// Uint16 reads the little-endian 16-bit sample x of a row.
func Uint16(row []byte, x int) uint16 {
	return binary.LittleEndian.Uint16(row[2*x:])
}

// PutUint16 writes the little-endian 16-bit sample x of a row.
func PutUint16(row []byte, x int, v uint16) {
	binary.LittleEndian.PutUint16(row[2*x:], v)
}

// Float32 reads float sample x of a row.
func Float32(row []byte, x int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(row[4*x:]))
}

// PutFloat32 writes float sample x of a row.
func PutFloat32(row []byte, x int, v float32) {
	binary.LittleEndian.PutUint32(row[4*x:], math.Float32bits(v))
}
