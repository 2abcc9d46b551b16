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

// Command rawconv converts raw sensor frames to images.
//
// Usage:
//
//	rawconv convert --fourcc GRBG12_PACKED --width 1920 --height 1080 -o out/ frame.raw
//	rawconv convert --fourcc PWL_RG12_MIPI --width 1280 --height 960 --hdr-gain 24 --out-format bmp *.raw.zst
//	rawconv formats
//	rawconv tiers
//
// Input frames are headerless and may be zstd compressed; compression is
// detected from the frame magic. Images are written as TIFF or BMP, or as
// raw buffers of any supported output format.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ajroetker/go-rawpix/pix"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var logLevel string
	root := &cobra.Command{
		Use:          "rawconv",
		Short:        "Convert raw camera frames with the go-rawpix transforms",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var level slog.Level
			if err := level.UnmarshalText([]byte(logLevel)); err != nil {
				return fmt.Errorf("invalid --log-level %q: %w", logLevel, err)
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			slog.SetDefault(logger)
			pix.SetLogger(logger)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(newConvertCmd(), newFormatsCmd(), newTiersCmd())
	return root
}
