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
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jeremyhahn/go-jwtkit/internal/config"
	"github.com/jeremyhahn/go-jwtkit/pkg/adapters/logger"
)

// Setting keys shared by flags and JWTKIT_* environment variables
const (
	keyConfig      = "config"
	keyOutput      = "output"
	keyVerbose     = "verbose"
	keyLogLevel    = "log-level"
	keyLogFormat   = "log-format"
	keyKeys        = "key"
	keyKeyFormat   = "key-format"
	keyKeyPassword = "key-password"
	keyEncodeAlg   = "encode.alg"
	keyEncodeKid   = "encode.kid"
)

// app carries the state of one command invocation.
type app struct {
	v      *viper.Viper
	cfg    *config.Config
	log    logger.Logger
	runID  string
	out    io.Writer
	errOut io.Writer
}

// NewRootCommand builds the jwtkit command tree writing to out and errOut.
func NewRootCommand(out, errOut io.Writer) *cobra.Command {
	a := &app{
		v:      newViper(),
		cfg:    config.Default(),
		log:    logger.NewNoOpLogger(),
		out:    out,
		errOut: errOut,
	}

	rootCmd := &cobra.Command{
		Use:   "jwtkit",
		Short: "jwtkit CLI - JSON Web Token signing and verification tool",
		Long: `jwtkit signs and verifies compact JWS tokens (JWT) with keys loaded
from PEM files, JWKS documents or raw HMAC secrets.

Supported algorithm families:
  - RSA:     RS256, RS384, RS512
  - RSA-PSS: PS256, PS384, PS512
  - HMAC:    HS256, HS384, HS512
  - EC:      ES256, ES384, ES512
  - EdDSA:   EdDSA (Ed25519)

Every flag may also be set through a JWTKIT_ environment variable,
for example JWTKIT_LOG_LEVEL=debug or JWTKIT_ENCODE_ALG=ES256.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	flags := rootCmd.PersistentFlags()
	flags.String(keyConfig, "", "config file (YAML)")
	flags.StringP(keyOutput, "o", "text", "output format (text, json, table)")
	flags.BoolP(keyVerbose, "v", false, "verbose output (debug logging)")
	flags.String(keyLogLevel, "", "log level (debug, info, warn, error)")
	flags.String(keyLogFormat, "", "log format (text, json)")
	flags.StringSliceP(keyKeys, "k", nil, "key file (PEM, JWKS or secret); replaces configured keys")
	flags.String(keyKeyFormat, "", "format of --key files (pem, jwks, secret)")
	flags.String(keyKeyPassword, "", "password for encrypted PKCS#8 --key files")
	_ = a.v.BindPFlags(flags)

	rootCmd.AddCommand(a.versionCmd())
	rootCmd.AddCommand(a.encodeCmd())
	rootCmd.AddCommand(a.decodeCmd())
	rootCmd.AddCommand(a.inspectCmd())
	rootCmd.AddCommand(a.keysCmd())
	rootCmd.AddCommand(a.algorithmsCmd())

	return rootCmd
}

// Execute runs the root command against the process streams
func Execute() error {
	rootCmd := NewRootCommand(os.Stdout, os.Stderr)
	if err := rootCmd.Execute(); err != nil {
		printer := NewPrinter(rootCmd.Flag(keyOutput).Value.String(), os.Stderr)
		_ = printer.PrintError(err) // Error printing to stderr is best-effort
		return err
	}
	return nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("JWTKIT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

// setup loads the config file and applies flag and environment overrides.
func (a *app) setup() error {
	if path := a.v.GetString(keyConfig); path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}

	if a.v.IsSet(keyLogLevel) {
		a.cfg.Logging.Level = a.v.GetString(keyLogLevel)
	}
	if a.v.GetBool(keyVerbose) {
		a.cfg.Logging.Level = "debug"
	}
	if a.v.IsSet(keyLogFormat) {
		a.cfg.Logging.Format = a.v.GetString(keyLogFormat)
	}
	if a.v.IsSet(keyEncodeAlg) {
		a.cfg.Encode.Algorithm = a.v.GetString(keyEncodeAlg)
	}
	if a.v.IsSet(keyEncodeKid) {
		a.cfg.Encode.KeyID = a.v.GetString(keyEncodeKid)
	}
	if paths := a.v.GetStringSlice(keyKeys); len(paths) > 0 {
		keys := make([]config.KeyConfig, 0, len(paths))
		for _, path := range paths {
			keys = append(keys, config.KeyConfig{
				Path:     path,
				Format:   a.v.GetString(keyKeyFormat),
				Password: a.v.GetString(keyKeyPassword),
			})
		}
		a.cfg.Keys = keys
	}

	if err := a.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	level, err := logger.ParseLevel(a.cfg.Logging.Level)
	if err != nil {
		return err
	}
	a.runID = uuid.NewString()
	a.log = logger.NewSlogAdapter(&logger.SlogConfig{
		Level:  level,
		Format: a.cfg.Logging.Format,
		Output: a.errOut,
	}).With(logger.String("run_id", a.runID))

	a.printVerbose("configuration loaded (run %s)", a.runID)
	return nil
}

// printer returns a Printer for the selected output format
func (a *app) printer() *Printer {
	return NewPrinter(a.v.GetString(keyOutput), a.out)
}

// printVerbose prints a message if verbose mode is enabled
func (a *app) printVerbose(format string, args ...interface{}) {
	if a.v.GetBool(keyVerbose) {
		fmt.Fprintf(a.errOut, "[VERBOSE] "+format+"\n", args...)
	}
}
