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
	"fmt"
)

// Claims is implemented by payload types that control their own JSON form.
// The encoder uses ToJSON instead of generic serialization when a payload
// implements it.
type Claims interface {
	// ToMap exports every claim. The returned map is a copy.
	ToMap() map[string]any

	// ToJSON exports every claim as a JSON object.
	ToJSON() ([]byte, error)
}

// Option configures a Set
type Option func(*Set)

// WithEscapedSlashes makes ToJSON escape forward slashes as "\/"
func WithEscapedSlashes() Option {
	return func(s *Set) {
		s.escapeSlashes = true
	}
}

// Set is an ordered collection of uniquely named claims.
// A Set is not safe for concurrent mutation.
type Set struct {
	names         []string
	values        map[string]any
	escapeSlashes bool
}

var _ Claims = (*Set)(nil)

// New creates an empty claim set.
func New(opts ...Option) *Set {
	s := &Set{
		names:  make([]string, 0),
		values: make(map[string]any),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FromMap creates a claim set holding the entries of m. Since Go maps are
// unordered, entries are inserted in lexical order of their names.
// An entry with an empty name is rejected with ErrInvalidOperation.
func FromMap(m map[string]any, opts ...Option) (*Set, error) {
	s := New(opts...)
	for _, name := range sortedNames(m) {
		if err := s.Set(name, m[name]); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Get returns the value of the named claim, or nil when it is absent.
func (s *Set) Get(name string) any {
	v, _ := s.Lookup(name)
	return v
}

// GetOr returns the value of the named claim, or def when it is absent.
func (s *Set) GetOr(name string, def any) any {
	if v, ok := s.Lookup(name); ok {
		return v
	}
	return def
}

// Lookup returns the value of the named claim and whether it is present.
// A nil set holds no claims.
func (s *Set) Lookup(name string) (any, bool) {
	if s == nil {
		return nil, false
	}
	v, ok := s.values[name]
	return v, ok
}

// Set stores a claim. Replacing an existing claim keeps its position.
// The name is required: an empty name fails with ErrInvalidOperation.
func (s *Set) Set(name string, value any) error {
	if name == "" {
		return fmt.Errorf("%w: cannot store a claim without a name", ErrInvalidOperation)
	}
	if _, ok := s.values[name]; !ok {
		s.names = append(s.names, name)
	}
	s.values[name] = value
	return nil
}

// Remove deletes the named claim. Removing an absent claim is a no-op.
func (s *Set) Remove(name string) {
	if _, ok := s.values[name]; !ok {
		return
	}
	delete(s.values, name)
	for i, n := range s.names {
		if n == name {
			s.names = append(s.names[:i], s.names[i+1:]...)
			break
		}
	}
}

// Exists reports whether the named claim is present.
func (s *Set) Exists(name string) bool {
	_, ok := s.Lookup(name)
	return ok
}

// Len returns the number of claims
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.names)
}

// Names returns the claim names in insertion order
func (s *Set) Names() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.names...)
}

// EscapesSlashes reports whether ToJSON escapes forward slashes
func (s *Set) EscapesSlashes() bool {
	return s != nil && s.escapeSlashes
}

// ToMap returns a copy of all claims. Nested objects and arrays are
// copied too, so changes to the result never reach the set.
func (s *Set) ToMap() map[string]any {
	if s == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(s.values))
	for k, v := range s.values {
		out[k] = CopyValue(v)
	}
	return out
}

// Clone returns an independent deep copy of the set, including its
// options. Cloning a nil set yields an empty set.
func (s *Set) Clone() *Set {
	if s == nil {
		return New()
	}
	c := &Set{
		names:         append(make([]string, 0, len(s.names)), s.names...),
		values:        s.ToMap(),
		escapeSlashes: s.escapeSlashes,
	}
	return c
}

// CopyValue returns v with every nested JSON object and array copied.
// Other values are returned as they are.
func CopyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = CopyValue(item)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = CopyValue(item)
		}
		return out
	case *Set:
		return t.Clone()
	default:
		return v
	}
}

// ToJSON encodes the claims as a JSON object in insertion order.
// A nil set fails with ErrNilSet.
func (s *Set) ToJSON() ([]byte, error) {
	if s == nil {
		return nil, ErrNilSet
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range s.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeValue(&buf, name); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeValue(&buf, s.values[name]); err != nil {
			return nil, fmt.Errorf("claims: failed to encode claim %q: %w", name, err)
		}
	}
	buf.WriteByte('}')

	out := buf.Bytes()
	if s.escapeSlashes {
		// A '/' can only occur inside JSON strings, so a plain replace is exact.
		out = bytes.ReplaceAll(out, []byte("/"), []byte(`\/`))
	}
	return out, nil
}

// MarshalJSON implements json.Marshaler
func (s *Set) MarshalJSON() ([]byte, error) {
	return s.ToJSON()
}

// UnmarshalJSON implements json.Unmarshaler. The previous content is
// replaced and the member order of data is preserved.
func (s *Set) UnmarshalJSON(data []byte) error {
	decoded, err := DecodeObject(data)
	if err != nil {
		return err
	}
	s.names = decoded.names
	s.values = decoded.values
	return nil
}

// writeValue encodes v without HTML escaping and without the trailing
// newline json.Encoder appends.
func writeValue(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Truncate(buf.Len() - 1)
	return nil
}
