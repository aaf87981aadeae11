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

// Package claims stores the named values carried in a JWT payload.
//
// A Set keeps claims in insertion order so that its JSON form is
// deterministic, and it refuses to store a claim without a name.
// Forward slashes are written unescaped unless the Set was created
// with WithEscapedSlashes.
package claims
