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
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet_GetSetRemove(t *testing.T) {
	s, err := FromMap(map[string]any{"foo": "bar"})
	require.NoError(t, err)

	assert.True(t, s.Exists("foo"))
	assert.Equal(t, "bar", s.Get("foo"))
	assert.Equal(t, "bar", s.GetOr("foo", "zzz"))
	assert.Nil(t, s.Get("a"))
	assert.Equal(t, "zzz", s.GetOr("a", "zzz"))

	require.NoError(t, s.Set("foo", "baz"))
	assert.Equal(t, "baz", s.Get("foo"))

	s.Remove("foo")
	assert.False(t, s.Exists("foo"))
	assert.Equal(t, 0, s.Len())

	// removing twice is a no-op
	s.Remove("foo")
	assert.Equal(t, 0, s.Len())
}

func TestSet_SetWithoutNameFails(t *testing.T) {
	s := New()
	err := s.Set("", "baz")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidOperation)
	assert.Equal(t, 0, s.Len())

	_, err = FromMap(map[string]any{"": "x"})
	assert.ErrorIs(t, err, ErrInvalidOperation)
}

func TestSet_LookupDistinguishesNull(t *testing.T) {
	s := New()
	require.NoError(t, s.Set("nil", nil))

	v, ok := s.Lookup("nil")
	assert.True(t, ok)
	assert.Nil(t, v)
	assert.True(t, s.Exists("nil"))
	assert.Equal(t, "def", s.GetOr("missing", "def"))
	assert.Nil(t, s.GetOr("nil", "def"))
}

func TestSet_ToJSON(t *testing.T) {
	s, err := FromMap(map[string]any{"foo": "bar"})
	require.NoError(t, err)

	out, err := s.ToJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"foo":"bar"}`, string(out))

	require.NoError(t, s.Set("iss", "http://foo.bar"))
	out, err = s.ToJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"foo":"bar","iss":"http://foo.bar"}`, string(out))

	escaped := New(WithEscapedSlashes())
	require.NoError(t, escaped.Set("iss", "http://foo.bar"))
	out, err = escaped.ToJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"iss":"http:\/\/foo.bar"}`, string(out))
}

func TestSet_ToJSONKeepsInsertionOrder(t *testing.T) {
	s := New()
	require.NoError(t, s.Set("z", 1))
	require.NoError(t, s.Set("a", 2))
	require.NoError(t, s.Set("m", 3))
	require.NoError(t, s.Set("z", 4))

	out, err := s.ToJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"z":4,"a":2,"m":3}`, string(out))
	assert.Equal(t, []string{"z", "a", "m"}, s.Names())
}

func TestSet_ToJSONDoesNotEscapeHTML(t *testing.T) {
	s := New()
	require.NoError(t, s.Set("q", "a<b&c>d"))

	out, err := s.ToJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"q":"a<b&c>d"}`, string(out))
}

func TestSet_ToJSONUnsupportedValue(t *testing.T) {
	s := New()
	require.NoError(t, s.Set("ch", make(chan int)))

	_, err := s.ToJSON()
	assert.Error(t, err)
}

func TestSet_ToMapIsCopy(t *testing.T) {
	s, err := FromMap(map[string]any{"foo": "bar"})
	require.NoError(t, err)

	m := s.ToMap()
	assert.Equal(t, map[string]any{"foo": "bar"}, m)

	m["foo"] = "changed"
	m["new"] = true
	assert.Equal(t, "bar", s.Get("foo"))
	assert.False(t, s.Exists("new"))
}

func TestSet_ToMapCopiesNestedValues(t *testing.T) {
	s, err := DecodeObject([]byte(`{"nested":{"role":"user"},"list":[{"a":1}]}`))
	require.NoError(t, err)

	m := s.ToMap()
	m["nested"].(map[string]any)["role"] = "admin"
	m["list"].([]any)[0].(map[string]any)["a"] = int64(2)

	assert.Equal(t, map[string]any{"role": "user"}, s.Get("nested"))
	assert.Equal(t, []any{map[string]any{"a": int64(1)}}, s.Get("list"))

	c := s.Clone()
	c.Get("nested").(map[string]any)["role"] = "admin"
	assert.Equal(t, map[string]any{"role": "user"}, s.Get("nested"))
}

func TestSet_NilSet(t *testing.T) {
	var s *Set

	assert.Nil(t, s.Get("sub"))
	assert.Equal(t, "def", s.GetOr("sub", "def"))
	assert.False(t, s.Exists("sub"))
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Names())
	assert.False(t, s.EscapesSlashes())
	assert.Equal(t, map[string]any{}, s.ToMap())
	assert.Equal(t, 0, s.Clone().Len())

	_, err := s.ToJSON()
	assert.ErrorIs(t, err, ErrNilSet)
}

func TestSet_Clone(t *testing.T) {
	s := New(WithEscapedSlashes())
	require.NoError(t, s.Set("a", "b"))

	c := s.Clone()
	require.NoError(t, c.Set("c", "d"))

	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 2, c.Len())
	assert.True(t, c.EscapesSlashes())
}

func TestDecodeObject(t *testing.T) {
	s, err := DecodeObject([]byte(`{"sub":"1234567890","name":"John Doe","iat":1516239022,"ratio":0.5,"nested":{"n":2},"list":[1,"x"]}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"sub", "name", "iat", "ratio", "nested", "list"}, s.Names())
	assert.Equal(t, int64(1516239022), s.Get("iat"))
	assert.Equal(t, 0.5, s.Get("ratio"))
	assert.Equal(t, map[string]any{"n": int64(2)}, s.Get("nested"))
	assert.Equal(t, []any{int64(1), "x"}, s.Get("list"))
}

func TestDecodeObject_LargeIntegers(t *testing.T) {
	s := New()
	require.NoError(t, s.Set("max_uint", uint64(math.MaxUint64)))
	require.NoError(t, s.Set("min_int", int64(math.MinInt64)))
	require.NoError(t, s.Set("max_int_plus_one", uint64(math.MaxInt64)+1))

	data, err := s.ToJSON()
	require.NoError(t, err)
	decoded, err := DecodeObject(data)
	require.NoError(t, err)

	assert.Equal(t, uint64(math.MaxUint64), decoded.Get("max_uint"))
	assert.Equal(t, int64(math.MinInt64), decoded.Get("min_int"))
	assert.Equal(t, uint64(math.MaxInt64)+1, decoded.Get("max_int_plus_one"))

	again, err := decoded.ToJSON()
	require.NoError(t, err)
	assert.Equal(t, string(data), string(again))
}

func TestDecodeObject_BeyondUint64(t *testing.T) {
	data := []byte(`{"exact":100000000000000000000,"inexact":100000000000000000001,"huge":1e400}`)

	s, err := DecodeObject(data)
	require.NoError(t, err)

	assert.Equal(t, 1e20, s.Get("exact"))
	assert.Equal(t, json.Number("100000000000000000001"), s.Get("inexact"))
	assert.Equal(t, json.Number("1e400"), s.Get("huge"))

	out, err := s.ToJSON()
	require.NoError(t, err)
	assert.Contains(t, string(out), `"inexact":100000000000000000001`)
	assert.Contains(t, string(out), `"huge":1e400`)
}

func TestDecodeObject_RejectsNonObjects(t *testing.T) {
	inputs := []string{
		``,
		`123`,
		`"str"`,
		`null`,
		`[1,2]`,
		`{"a":1`,
		`{"a":1}{"b":2}`,
		`{"a":1} x`,
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, err := DecodeObject([]byte(in))
			assert.ErrorIs(t, err, ErrNotObject)
		})
	}
}

func TestSet_JSONRoundTripThroughEncodingJSON(t *testing.T) {
	s := New()
	require.NoError(t, s.Set("b", "x"))
	require.NoError(t, s.Set("a", []any{"y"}))

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Equal(t, `{"b":"x","a":["y"]}`, string(data))

	decoded := New()
	require.NoError(t, json.Unmarshal(data, decoded))
	assert.Equal(t, s.Names(), decoded.Names())
	assert.Equal(t, s.ToMap(), decoded.ToMap())
}
