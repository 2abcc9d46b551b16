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

	"github.com/spf13/cobra"

	"github.com/ajroetker/go-rawpix/pix"
)

func newTiersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tiers",
		Short: "List the transform tiers and which of them Best selects",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			best := pix.BestTier()
			for _, t := range pix.AllTiers() {
				kind := "lane model"
				switch {
				case t == pix.TierReference:
					kind = "per pixel"
				case t.IsVector():
					kind = "vector"
				}
				status := "cpu: no"
				if pix.CPUSupports(t) {
					status = "cpu: yes"
				}
				if pix.HasTier(t) {
					status += ", selectable"
				}
				if t == best {
					status += ", best"
				}
				fmt.Fprintf(w, "%-10s %2d-byte blocks  %-10s  %s\n", t, t.Width(), kind, status)
			}
			if pix.NoSimdEnv() {
				fmt.Fprintln(w, "RAWPIX_NO_SIMD is set: only the reference tier is selected")
			}
		},
	}
}
