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
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/ajroetker/go-rawpix/pix"
	"github.com/ajroetker/go-rawpix/pix/contrib/transform"
)

func newFormatsCmd() *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "formats",
		Short: "List the input formats and the outputs each converts to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			inputs := transform.SupportedInputs()
			if input != "" {
				fcc, err := pix.ParseFourcc(input)
				if err != nil {
					return err
				}
				inputs = []pix.Fourcc{fcc}
			}
			w := cmd.OutOrStdout()
			for _, src := range inputs {
				outs := formatNames(transform.SupportedOutputs(src))
				if len(outs) == 0 {
					return fmt.Errorf("%w: %s has no outputs", pix.ErrUnsupported, src)
				}
				fmt.Fprintf(w, "%-20s -> %s\n", src, strings.Join(outs, ", "))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "only list the outputs of this format")
	return cmd
}

// formatNames returns the sorted, de-duplicated names of fccs.
func formatNames(fccs []pix.Fourcc) []string {
	names := lo.Uniq(lo.Map(fccs, func(f pix.Fourcc, _ int) string { return f.String() }))
	slices.Sort(names)
	return names
}
