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

package main

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/ajroetker/go-rawpix/pix"
)

const (
	testWidth  = 32
	testHeight = 16
)

// run executes the command line and returns its standard output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() { pix.SetLogger(nil) })
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// writeFlatFrame writes a GRBG8 frame where every sample is v.
func writeFlatFrame(t *testing.T, dir, name string, v byte, compress bool) string {
	t.Helper()
	data := bytes.Repeat([]byte{v}, testWidth*testHeight)
	if compress {
		enc, err := zstd.NewWriter(nil)
		require.NoError(t, err)
		data = enc.EncodeAll(data, nil)
		require.NoError(t, enc.Close())
	}
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func frameArgs(outDir string) []string {
	return []string{"convert", "--fourcc", "GRBG8", "--width", "32", "--height", "16", "-o", outDir}
}

func TestConvertTIFF(t *testing.T) {
	dir := t.TempDir()
	plain := writeFlatFrame(t, dir, "plain.raw", 128, false)
	packed := writeFlatFrame(t, dir, "packed.raw.zst", 128, true)
	outDir := filepath.Join(dir, "out")

	_, err := run(t, append(frameArgs(outDir), "--jobs", "2", plain, packed)...)
	require.NoError(t, err)

	for _, name := range []string{"plain.tiff", "packed.tiff"} {
		f, err := os.Open(filepath.Join(outDir, name))
		require.NoError(t, err)
		img, err := tiff.Decode(f)
		require.NoError(t, f.Close())
		require.NoError(t, err, name)

		require.Equal(t, testWidth, img.Bounds().Dx())
		require.Equal(t, testHeight, img.Bounds().Dy())
		for _, p := range [][2]int{{0, 0}, {13, 7}, {31, 15}} {
			got := color.NRGBAModel.Convert(img.At(p[0], p[1]))
			require.Equal(t, color.NRGBA{R: 128, G: 128, B: 128, A: 255}, got, "%s at %v", name, p)
		}
	}
}

func TestConvertBMPWithGains(t *testing.T) {
	dir := t.TempDir()
	in := writeFlatFrame(t, dir, "frame.raw", 64, false)

	_, err := run(t, append(frameArgs(dir), "--out-format", "bmp", "--wb", "2,1,1,1", "--avg-green=false", in)...)
	require.NoError(t, err)

	f, err := os.Open(filepath.Join(dir, "frame.bmp"))
	require.NoError(t, err)
	defer f.Close()
	img, err := bmp.Decode(f)
	require.NoError(t, err)

	r, g, b, _ := img.At(10, 10).RGBA()
	require.Equal(t, uint32(128), r>>8)
	require.Equal(t, uint32(64), g>>8)
	require.Equal(t, uint32(64), b>>8)
}

func TestConvertRaw(t *testing.T) {
	dir := t.TempDir()
	in := writeFlatFrame(t, dir, "frame.raw", 200, false)

	_, err := run(t, append(frameArgs(dir), "--out-format", "raw", "--out-fourcc", "BGR24", "--tier", "Reference", in)...)
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(dir, "frame.raw"))
	require.NoError(t, err)
	require.Equal(t, bytes.Repeat([]byte{200}, 3*testWidth*testHeight), got)
}

func TestConvertErrors(t *testing.T) {
	dir := t.TempDir()
	in := writeFlatFrame(t, dir, "frame.raw", 1, false)

	_, err := run(t, append(frameArgs(dir), "--out-format", "raw", "--out-fourcc", "Mono8", in)...)
	require.ErrorIs(t, err, pix.ErrUnsupported)

	_, err = run(t, append(frameArgs(dir), "--out-format", "png", in)...)
	require.ErrorContains(t, err, "out-format")

	_, err = run(t, append(frameArgs(dir), "--wb", "1,2", in)...)
	require.ErrorContains(t, err, "4 gains")

	_, err = run(t, append(frameArgs(dir), filepath.Join(dir, "missing.raw"))...)
	require.ErrorIs(t, err, os.ErrNotExist)

	short := filepath.Join(dir, "short.raw")
	require.NoError(t, os.WriteFile(short, make([]byte, 100), 0o644))
	_, err = run(t, append(frameArgs(dir), short)...)
	require.ErrorIs(t, err, pix.ErrInvalidDescriptor)

	_, err = run(t, "--log-level", "loud", "tiers")
	require.ErrorContains(t, err, "log-level")
}

func TestFormats(t *testing.T) {
	out, err := run(t, "formats")
	require.NoError(t, err)
	require.Contains(t, out, "PWL_RG12_MIPI")

	out, err = run(t, "formats", "--input", "GRBG8")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1)
	require.True(t, strings.HasPrefix(lines[0], "GRBG8"), lines[0])
	require.Contains(t, lines[0], pix.FccBGRA32.String())
}

func TestTiers(t *testing.T) {
	out, err := run(t, "tiers")
	require.NoError(t, err)
	for _, tier := range pix.AllTiers() {
		require.Contains(t, out, tier.String())
	}
	require.Contains(t, out, "best")
}

func TestParseGains(t *testing.T) {
	wb, err := parseGains("")
	require.NoError(t, err)
	require.False(t, wb.Apply)

	wb, err = parseGains("1.5, 1,2 ,0.5")
	require.NoError(t, err)
	require.Equal(t, pix.WhitebalanceParams{Apply: true, R: 1.5, GR: 1, B: 2, GB: 0.5}, wb)

	_, err = parseGains("1,x,1,1")
	require.Error(t, err)
}
