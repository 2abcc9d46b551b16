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
	"context"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/spf13/cobra"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/sync/errgroup"

	"github.com/ajroetker/go-rawpix/pix"
	"github.com/ajroetker/go-rawpix/pix/contrib/transform"
)

// zstdMagic starts every zstd frame.
var zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

type convertOptions struct {
	fourcc      string
	width       int
	height      int
	pitch       int
	outFormat   string
	outFourcc   string
	outDir      string
	tier        string
	wb          string
	avgGreen    bool
	colorMatrix bool
	hdrGain     float32
	flip        bool
	jobs        int
}

func newConvertCmd() *cobra.Command {
	var o convertOptions
	cmd := &cobra.Command{
		Use:   "convert [flags] FILE...",
		Short: "Convert raw frames to TIFF, BMP or raw images",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd.Context(), &o, args)
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.fourcc, "fourcc", "", "input format, e.g. GRBG12_PACKED (see 'rawconv formats')")
	f.IntVar(&o.width, "width", 0, "frame width in pixels")
	f.IntVar(&o.height, "height", 0, "frame height in pixels")
	f.IntVar(&o.pitch, "pitch", 0, "input row pitch in bytes, 0 for the minimum")
	f.StringVar(&o.outFormat, "out-format", "tiff", "output container: tiff, bmp or raw")
	f.StringVar(&o.outFourcc, "out-fourcc", "BGRA32", "output format for --out-format raw")
	f.StringVarP(&o.outDir, "output", "o", ".", "output directory")
	f.StringVar(&o.tier, "tier", "best", "transform tier (Reference, SSSE3, SSE41, NEON or best)")
	f.StringVar(&o.wb, "wb", "", "whitebalance gains r,gr,b,gb; empty disables whitebalance")
	f.BoolVar(&o.avgGreen, "avg-green", true, "smooth green sites in flat areas while demosaicing")
	f.BoolVar(&o.colorMatrix, "color-matrix", false, "apply the default color correction matrix")
	f.Float32Var(&o.hdrGain, "hdr-gain", 0, "PWL HDR gain in dB [0, 120]")
	f.BoolVar(&o.flip, "flip", false, "write the image bottom-up")
	f.IntVarP(&o.jobs, "jobs", "j", 4, "number of frames converted concurrently")
	_ = cmd.MarkFlagRequired("fourcc")
	_ = cmd.MarkFlagRequired("width")
	_ = cmd.MarkFlagRequired("height")
	return cmd
}

// parseGains parses "r,gr,b,gb".
func parseGains(s string) (pix.WhitebalanceParams, error) {
	wb := pix.NeutralWhitebalance()
	if s == "" {
		return wb, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return wb, fmt.Errorf("--wb wants 4 gains r,gr,b,gb, got %q", s)
	}
	var g [4]float32
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return wb, fmt.Errorf("--wb gain %d: %w", i, err)
		}
		g[i] = float32(v)
	}
	return pix.WhitebalanceParams{Apply: true, R: g[0], GR: g[1], B: g[2], GB: g[3]}, nil
}

// job is the resolved configuration shared by all frames.
type job struct {
	src     pix.ImgType
	pitch   int
	dst     pix.Fourcc
	format  string
	outDir  string
	tier    pix.Tier
	options transform.Options
	flip    bool
	decoder *zstd.Decoder
}

func (o *convertOptions) job() (*job, error) {
	fcc, err := pix.ParseFourcc(o.fourcc)
	if err != nil {
		return nil, err
	}
	tier, err := pix.ParseTier(o.tier)
	if err != nil {
		return nil, err
	}
	wb, err := parseGains(o.wb)
	if err != nil {
		return nil, err
	}

	j := &job{
		src:    pix.ImgType{Fourcc: fcc, Dim: pix.Dim{Width: o.width, Height: o.height}},
		pitch:  o.pitch,
		format: strings.ToLower(o.outFormat),
		outDir: o.outDir,
		tier:   tier,
		flip:   o.flip,
	}
	switch j.format {
	case "tiff", "bmp":
		j.dst = pix.FccBGRA32
	case "raw":
		if j.dst, err = pix.ParseFourcc(o.outFourcc); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown --out-format %q", o.outFormat)
	}
	if !j.src.Valid() {
		return nil, fmt.Errorf("invalid input geometry %s", j.src)
	}
	if transform.Get(tier, pix.ImgType{Fourcc: j.dst, Dim: j.src.Dim}, j.src) == nil {
		return nil, fmt.Errorf("%w: %s to %s on tier %s", pix.ErrUnsupported, j.src, j.dst, tier)
	}

	j.options = transform.DefaultOptions()
	j.options.Whitebalance = wb
	j.options.Demosaic.UseAvgGreen = o.avgGreen
	j.options.Demosaic.UseColorMatrix = o.colorMatrix
	j.options.PWL.HDRGain = o.hdrGain
	return j, nil
}

func runConvert(ctx context.Context, o *convertOptions, files []string) error {
	j, err := o.job()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(j.outDir, 0o755); err != nil {
		return err
	}
	// DecodeAll is safe for concurrent use; one decoder serves every frame.
	j.decoder, err = zstd.NewReader(nil)
	if err != nil {
		return err
	}
	defer j.decoder.Close()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(o.jobs, 1))
	for _, name := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return j.convertFile(name)
		})
	}
	return g.Wait()
}

// readFrame reads a frame file, decompressing zstd frames.
func (j *job) readFrame(name string) ([]byte, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	if !bytes.HasPrefix(data, zstdMagic) {
		return data, nil
	}
	data, err = j.decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decode %s: %w", name, err)
	}
	return data, nil
}

// outputName strips the compression and raw extensions of name and adds
// the one of the output format.
func (j *job) outputName(name string) string {
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, ".zst")
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(j.outDir, base+"."+j.format)
}

func (j *job) convertFile(name string) error {
	data, err := j.readFrame(name)
	if err != nil {
		return err
	}
	src := pix.NewDescriptor(data, j.src.Fourcc, j.src.Dim, j.pitch)
	dst := pix.Alloc(j.dst, j.src.Dim)
	view := dst
	if j.flip {
		view = dst.Flipped()
	}

	p := transform.NewPipeline(j.tier, j.options)
	if err := p.Convert(view, src); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	out := j.outputName(name)
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := j.encode(f, dst); err != nil {
		_ = f.Close()
		return fmt.Errorf("%s: %w", out, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	slog.Info("frame converted", "input", name, "output", out, "format", j.src.Fourcc.String(), "tier", p.Tier().String())
	return nil
}

func (j *job) encode(w io.Writer, img pix.ImageDescriptor) error {
	switch j.format {
	case "tiff":
		return tiff.Encode(w, toRGBA(img), &tiff.Options{Compression: tiff.Deflate})
	case "bmp":
		return bmp.Encode(w, toRGBA(img))
	default:
		_, err := w.Write(img.Planes[0].Data)
		return err
	}
}

// toRGBA copies a tightly packed BGRA32 image into an image.RGBA.
func toRGBA(img pix.ImageDescriptor) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, img.Width(), img.Height()))
	for y := range img.Height() {
		in := img.Row(y)
		row := out.Pix[y*out.Stride : y*out.Stride+4*img.Width()]
		for x := 0; x < len(row); x += 4 {
			row[x], row[x+1], row[x+2], row[x+3] = in[x+2], in[x+1], in[x], in[x+3]
		}
	}
	return out
}
