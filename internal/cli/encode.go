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
	"maps"
	"os"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-jwtkit/pkg/claims"
	"github.com/jeremyhahn/go-jwtkit/pkg/encoding/jwt"
)

type encodeFlags struct {
	headers       []string
	claims        []string
	claimsFile    string
	jti           bool
	issuedAt      bool
	expiresIn     time.Duration
	escapeSlashes bool
}

func (a *app) encodeCmd() *cobra.Command {
	var f encodeFlags

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Sign claims into a compact JWT",
		Long: `Sign a claim set with the first loaded key compatible with the
algorithm (and kid, when given). Claims come from --claims-file and
--claim name=value; values that parse as JSON keep their JSON type.`,
		Example: `  jwtkit encode --key signing.pem --alg ES256 --claim sub=alice --claim admin=true --jti
  jwtkit encode --key hmac.key --key-format secret --alg HS256 --claims-file claims.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runEncode(f)
		},
	}

	flags := cmd.Flags()
	flags.String("alg", "", "signature algorithm (default from config, RS256)")
	flags.String("kid", "", "key id to sign with; written to the header")
	flags.StringArrayVar(&f.headers, "header", nil, "extra header name=value (repeatable)")
	flags.StringArrayVar(&f.claims, "claim", nil, "claim name=value (repeatable)")
	flags.StringVar(&f.claimsFile, "claims-file", "", "JSON object file with initial claims")
	flags.BoolVar(&f.jti, "jti", false, "add a random jti claim")
	flags.BoolVar(&f.issuedAt, "iat", false, "add an iat claim with the current time")
	flags.DurationVar(&f.expiresIn, "exp", 0, "add an exp claim this far in the future")
	flags.BoolVar(&f.escapeSlashes, "escape-slashes", false, `serialize "/" as "\/" in the payload`)
	_ = a.v.BindPFlag(keyEncodeAlg, flags.Lookup("alg"))
	_ = a.v.BindPFlag(keyEncodeKid, flags.Lookup("kid"))

	return cmd
}

func (a *app) runEncode(f encodeFlags) error {
	set, err := a.keySet()
	if err != nil {
		return err
	}

	payload, err := f.claimSet()
	if err != nil {
		return err
	}

	opts := jwt.NewEncodingOptions(set).
		SetAlgorithm(a.cfg.Encode.Algorithm).
		SetKid(a.cfg.Encode.KeyID)
	for _, name := range slices.Sorted(maps.Keys(a.cfg.Encode.Headers)) {
		opts.SetHeader(name, a.cfg.Encode.Headers[name])
	}
	headers, err := parseAssignments(f.headers)
	if err != nil {
		return err
	}
	for _, h := range headers {
		opts.SetHeader(h.name, h.value)
	}

	encoder := jwt.NewEncoder(
		jwt.WithRegistry(a.registry(nil)),
		jwt.WithLogger(a.log),
	)
	token, err := encoder.Encode(payload, opts)
	if err != nil {
		return err
	}
	return a.printer().PrintToken(token)
}

// claimSet assembles the payload from the claims file and flags, in that
// order. Later assignments replace earlier values in place.
func (f encodeFlags) claimSet() (*claims.Set, error) {
	var opts []claims.Option
	if f.escapeSlashes {
		opts = append(opts, claims.WithEscapedSlashes())
	}

	set := claims.New(opts...)
	if f.claimsFile != "" {
		data, err := os.ReadFile(f.claimsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read claims file: %w", err)
		}
		set, err = claims.DecodeObject(data, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to parse claims file: %w", err)
		}
	}

	assignments, err := parseAssignments(f.claims)
	if err != nil {
		return nil, err
	}
	for _, c := range assignments {
		if err := set.Set(c.name, c.value); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	if f.issuedAt {
		_ = set.Set("iat", now.Unix())
	}
	if f.expiresIn > 0 {
		_ = set.Set("exp", now.Add(f.expiresIn).Unix())
	}
	if f.jti {
		_ = set.Set("jti", uuid.NewString())
	}
	return set, nil
}
