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

package jwa

// Registry is an ordered, immutable set of algorithms.
type Registry struct {
	algorithms []Algorithm
	index      map[string]int
}

var defaultRegistry = NewRegistry(Known()...)

// Default returns the registry holding every known algorithm.
func Default() *Registry {
	return defaultRegistry
}

// NewRegistry creates a registry from algs. Duplicate identifiers keep
// their first occurrence.
func NewRegistry(algs ...Algorithm) *Registry {
	r := &Registry{
		algorithms: make([]Algorithm, 0, len(algs)),
		index:      make(map[string]int, len(algs)),
	}
	for _, alg := range algs {
		if _, dup := r.index[alg.ID]; dup || alg.ID == "" {
			continue
		}
		r.index[alg.ID] = len(r.algorithms)
		r.algorithms = append(r.algorithms, alg)
	}
	return r
}

// Contains reports whether id is registered.
func (r *Registry) Contains(id string) bool {
	_, ok := r.index[id]
	return ok
}

// Resolve returns the registered algorithm named id. An unknown id fails
// with an *UnsupportedAlgorithmError.
func (r *Registry) Resolve(id string) (Algorithm, error) {
	i, ok := r.index[id]
	if !ok {
		return Algorithm{}, &UnsupportedAlgorithmError{Algorithm: id}
	}
	return r.algorithms[i], nil
}

// AlgorithmsByFamily returns the identifiers of a family in registration
// order. The result is empty, never nil, when the family has no members.
func (r *Registry) AlgorithmsByFamily(family Family) []string {
	ids := make([]string, 0)
	for _, alg := range r.algorithms {
		if alg.Family == family {
			ids = append(ids, alg.ID)
		}
	}
	return ids
}

// Algorithms returns every registered identifier in registration order.
func (r *Registry) Algorithms() []string {
	ids := make([]string, len(r.algorithms))
	for i, alg := range r.algorithms {
		ids[i] = alg.ID
	}
	return ids
}

// Families returns the families present in the registry, in order of
// first appearance.
func (r *Registry) Families() []Family {
	seen := make(map[Family]bool)
	families := make([]Family, 0)
	for _, alg := range r.algorithms {
		if !seen[alg.Family] {
			seen[alg.Family] = true
			families = append(families, alg.Family)
		}
	}
	return families
}

// Len returns the number of registered algorithms
func (r *Registry) Len() int {
	return len(r.algorithms)
}

// Narrow returns a new registry holding the algorithms present both in r
// and in allowed, in r's order. An empty intersection is not an error;
// resolving against the result fails instead.
func (r *Registry) Narrow(allowed ...string) *Registry {
	keep := make(map[string]bool, len(allowed))
	for _, id := range allowed {
		keep[id] = true
	}

	algs := make([]Algorithm, 0, len(allowed))
	for _, alg := range r.algorithms {
		if keep[alg.ID] {
			algs = append(algs, alg)
		}
	}
	return NewRegistry(algs...)
}
