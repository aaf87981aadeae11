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
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-jwtkit/pkg/adapters/logger"
	"github.com/jeremyhahn/go-jwtkit/pkg/encoding"
	"github.com/jeremyhahn/go-jwtkit/pkg/encoding/jwk"
)

func (a *app) keysCmd() *cobra.Command {
	var (
		publish     bool
		exportPEM   bool
		private     bool
		pemPassword string
	)

	cmd := &cobra.Command{
		Use:   "keys",
		Short: "List loaded keys",
		Long: `List the loaded keys with their kid, type, use, algorithm and
RFC 7638 thumbprint. With --jwks the public JWKS document is printed
instead; HMAC secrets are never included.

With --pem each asymmetric key is written as a PEM "PUBLIC KEY" block.
Adding --private writes the private keys as PKCS#8 blocks instead,
encrypted when --pem-password is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := a.keySet()
			if err != nil {
				return err
			}
			if private && !exportPEM {
				return errors.New("--private requires --pem")
			}
			if exportPEM {
				return a.exportPEM(set, private, []byte(pemPassword))
			}
			if publish {
				data, err := set.Public().MarshalJSON()
				if err != nil {
					return err
				}
				return a.printer().PrintRaw(data)
			}

			infos := make([]KeyInfo, 0, set.Len())
			for _, key := range set.Keys() {
				thumbprint, err := jwk.Thumbprint(key)
				if err != nil {
					return err
				}
				infos = append(infos, KeyInfo{
					KeyID:      key.KeyID,
					KeyType:    string(jwk.KeyTypeOf(key)),
					Use:        key.Use,
					Algorithm:  key.Algorithm,
					Private:    jwk.CanSign(key),
					Thumbprint: thumbprint,
				})
			}
			return a.printer().PrintKeyList(infos)
		},
	}
	cmd.Flags().BoolVar(&publish, "jwks", false, "print the public JWKS document")
	cmd.Flags().BoolVar(&exportPEM, "pem", false, "write keys as PEM blocks")
	cmd.Flags().BoolVar(&private, "private", false, "with --pem, write private keys as PKCS#8")
	cmd.Flags().StringVar(&pemPassword, "pem-password", "", "password to encrypt exported private keys")
	cmd.MarkFlagsMutuallyExclusive("jwks", "pem")
	return cmd
}

// exportPEM writes one PEM block per exportable key. Secrets are skipped,
// as are public keys and signers when private blocks are requested.
func (a *app) exportPEM(set *jwk.Set, private bool, password []byte) error {
	written := 0
	for _, key := range set.Keys() {
		if jwk.IsSymmetric(key) {
			continue
		}
		var (
			data []byte
			err  error
		)
		if private {
			if !encoding.IsPrivateKey(key.Key) {
				continue
			}
			data, err = jwk.MarshalPrivatePEM(key, password)
		} else {
			data, err = jwk.MarshalPublicPEM(key)
		}
		if err != nil {
			return fmt.Errorf("failed to export key %q: %w", key.KeyID, err)
		}
		if _, err := a.out.Write(data); err != nil {
			return err
		}
		written++
	}
	if written == 0 {
		return errors.New("no exportable keys")
	}
	a.log.Debug("exported keys", logger.Int("keys", written), logger.Bool("private", private))
	return nil
}
