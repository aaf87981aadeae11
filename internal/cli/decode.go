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
	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-jwtkit/pkg/encoding/jwt"
)

func (a *app) decodeCmd() *cobra.Command {
	var allow []string

	cmd := &cobra.Command{
		Use:   "decode [TOKEN]",
		Short: "Verify a compact JWT and print its header and claims",
		Long: `Verify the token signature against the loaded keys and print the
header and claims. The token is read from stdin when TOKEN is omitted
or "-". Time-based claims (exp, nbf, iat) are not checked.`,
		Example: `  jwtkit decode --key published.jwks --allow RS256,ES256 eyJhbGciOi...`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readToken(cmd, args)
			if err != nil {
				return err
			}
			set, err := a.keySet()
			if err != nil {
				return err
			}

			decoder := jwt.NewDecoder(
				jwt.WithRegistry(a.registry(allow)),
				jwt.WithLogger(a.log),
			)
			token, err := decoder.Decode(raw, set)
			if err != nil {
				return err
			}
			return a.printer().PrintDecoded(token, true)
		},
	}
	cmd.Flags().StringSliceVar(&allow, "allow", nil, "accepted algorithms (default: all configured)")
	return cmd
}

func (a *app) inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [TOKEN]",
		Short: "Print the header and claims of a JWT without verifying it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readToken(cmd, args)
			if err != nil {
				return err
			}
			token, err := jwt.NewDecoder(jwt.WithLogger(a.log)).DecodeUnsafe(raw)
			if err != nil {
				return err
			}
			return a.printer().PrintDecoded(token, false)
		},
	}
}
