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
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-jwtkit/internal/config"
	"github.com/jeremyhahn/go-jwtkit/pkg/encoding/jwk"
	"github.com/jeremyhahn/go-jwtkit/pkg/jwa"
	"github.com/jeremyhahn/go-jwtkit/pkg/validation"
)

// keySet loads the configured keys. At least one key is required.
func (a *app) keySet() (*jwk.Set, error) {
	if len(a.cfg.Keys) == 0 {
		return nil, fmt.Errorf("no keys configured: pass --key or set keys in the config file")
	}
	set, err := config.LoadKeys(a.cfg.Keys)
	if err != nil {
		return nil, err
	}
	a.printVerbose("loaded %d key(s)", set.Len())
	return set, nil
}

// registry returns the algorithms allowed by the configuration, narrowed
// further by allow when it is not empty.
func (a *app) registry(allow []string) *jwa.Registry {
	registry := a.cfg.Registry()
	if len(allow) > 0 {
		registry = registry.Narrow(allow...)
	}
	return registry
}

// readToken takes the token from the first argument, or from stdin when
// the argument is missing or "-".
func readToken(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 && args[0] != "-" {
		return strings.TrimSpace(args[0]), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", fmt.Errorf("no token given")
	}
	return token, nil
}

// parseAssignments parses name=value pairs. Values that are valid JSON
// keep their JSON type; anything else is a string.
func parseAssignments(pairs []string) ([]assignment, error) {
	out := make([]assignment, 0, len(pairs))
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid assignment %q: expected name=value", pair)
		}
		if err := validation.ValidateMemberName(name); err != nil {
			return nil, fmt.Errorf("invalid assignment %q: %w", pair, err)
		}
		out = append(out, assignment{name: name, value: parseValue(raw)})
	}
	return out, nil
}

type assignment struct {
	name  string
	value any
}

func parseValue(raw string) any {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil || dec.InputOffset() != int64(len(raw)) {
		return raw
	}
	if n, ok := v.(json.Number); ok {
		if i, err := n.Int64(); err == nil {
			return i
		}
		if f, err := n.Float64(); err == nil {
			return f
		}
	}
	return v
}
