// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-jwtkit.
//
// go-jwtkit is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-jwtkit/pkg/jwa"
)

func (a *app) algorithmsCmd() *cobra.Command {
	var family string

	cmd := &cobra.Command{
		Use:   "algorithms",
		Short: "List supported signature algorithms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := a.registry(nil)
			if family == "" {
				return a.printer().PrintAlgorithms(registry.Algorithms())
			}
			for _, f := range jwa.Default().Families() {
				if f.Equals(family) {
					return a.printer().PrintAlgorithms(registry.AlgorithmsByFamily(f))
				}
			}
			return fmt.Errorf("unknown algorithm family: %s", family)
		},
	}
	cmd.Flags().StringVar(&family, "family", "", "only list one family (RSA, RSA-PSS, HMAC, EC, EdDSA)")
	return cmd
}
