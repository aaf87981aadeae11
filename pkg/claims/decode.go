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

package claims

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"math/big"
	"sort"
	"strconv"
	"strings"
)

// DecodeObject parses a JSON object into a claim set, keeping the member
// order of the input. Integral numbers decode as int64, or uint64 above
// the int64 range; other numbers decode as float64. Numbers float64
// cannot hold exactly stay json.Number. Anything other than a single JSON
// object fails with ErrNotObject.
func DecodeObject(data []byte, opts ...Option) (*Set, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotObject, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, ErrNotObject
	}

	s := New(opts...)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNotObject, err)
		}
		name, ok := tok.(string)
		if !ok {
			return nil, ErrNotObject
		}

		var raw any
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNotObject, err)
		}

		// Empty member names from the wire are kept.
		if _, exists := s.values[name]; !exists {
			s.names = append(s.names, name)
		}
		s.values[name] = normalize(raw)
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotObject, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after object", ErrNotObject)
	}

	return s, nil
}

// DecodeMap is DecodeObject returning a plain map.
func DecodeMap(data []byte) (map[string]any, error) {
	s, err := DecodeObject(data)
	if err != nil {
		return nil, err
	}
	return s.values, nil
}

func normalize(v any) any {
	switch t := v.(type) {
	case json.Number:
		return normalizeNumber(t)
	case map[string]any:
		for k, item := range t {
			t[k] = normalize(item)
		}
		return t
	case []any:
		for i, item := range t {
			t[i] = normalize(item)
		}
		return t
	default:
		return v
	}
}

// normalizeNumber picks the Go type that holds n without loss: int64,
// then uint64, then float64. An integer literal no float64 holds exactly
// stays a json.Number, which encodes back to the same digits.
func normalizeNumber(n json.Number) any {
	lit := n.String()
	if i, err := strconv.ParseInt(lit, 10, 64); err == nil {
		return i
	}
	if u, err := strconv.ParseUint(lit, 10, 64); err == nil {
		return u
	}
	if isIntegerLiteral(lit) {
		if i, ok := new(big.Int).SetString(lit, 10); ok {
			if f, acc := new(big.Float).SetInt(i).Float64(); acc == big.Exact && !math.IsInf(f, 0) {
				return f
			}
		}
		return n
	}
	f, err := n.Float64()
	if err != nil || math.IsInf(f, 0) {
		return n
	}
	return f
}

func isIntegerLiteral(lit string) bool {
	return !strings.ContainsAny(lit, ".eE")
}

func sortedNames(m map[string]any) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
