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

import "errors"

var (
	// ErrInvalidOperation is returned when a claim is stored without a name
	ErrInvalidOperation = errors.New("claims: invalid operation")

	// ErrNotObject is returned when decoded JSON is not an object
	ErrNotObject = errors.New("claims: JSON value is not an object")

	// ErrNilSet is returned when a nil *Set is serialized
	ErrNilSet = errors.New("claims: nil claim set")
)
