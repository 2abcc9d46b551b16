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

import "errors"

// Pixel loops never fail: an unsupported conversion is a nil function from a
// getter. The errors below are returned by the outer layers (descriptor
// validation, pipelines, the command line tool).
var (
	// ErrUnsupported reports a format pair or geometry no tier can convert.
	ErrUnsupported = errors.New("pix: unsupported conversion")

	// ErrInvalidDescriptor reports a descriptor whose buffer, pitch or
	// dimensions do not describe a usable image.
	ErrInvalidDescriptor = errors.New("pix: invalid image descriptor")
)
