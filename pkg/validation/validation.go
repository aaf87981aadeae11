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

// Package validation checks identifiers that reach jwtkit from
// configuration files, flags and untrusted token headers.
package validation

import (
	"fmt"
	"strings"
)

const (
	// MaxKeyIDLength bounds configured kid values
	MaxKeyIDLength = 255

	// MaxLogValueLength bounds values copied from tokens into log records
	MaxLogValueLength = 256
)

// ValidateKeyID validates a kid value from configuration.
// A kid is a case-sensitive string; only emptiness, control characters
// and length are rejected.
func ValidateKeyID(keyID string) error {
	if keyID == "" {
		return fmt.Errorf("key ID cannot be empty")
	}

	// Check length before scanning
	if len(keyID) > MaxKeyIDLength {
		return fmt.Errorf("key ID too long (max %d characters)", MaxKeyIDLength)
	}

	if hasControl(keyID) {
		return fmt.Errorf("key ID contains control characters")
	}
	return nil
}

// ValidateMemberName validates a header or claim name given on the
// command line or in configuration.
func ValidateMemberName(name string) error {
	if name == "" {
		return fmt.Errorf("member name cannot be empty")
	}
	if hasControl(name) {
		return fmt.Errorf("member name %q contains control characters", name)
	}
	return nil
}

// ValidatePath validates a key file path.
func ValidatePath(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	// Null bytes truncate paths in some syscalls
	if strings.Contains(path, "\x00") {
		return fmt.Errorf("path contains null byte")
	}
	return nil
}

// SanitizeForLog sanitizes a string for safe logging (prevents log injection).
func SanitizeForLog(s string) string {
	// Remove control characters and null bytes
	s = strings.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return -1
		}
		return r
	}, s)

	// Limit length to prevent log flooding
	if len(s) > MaxLogValueLength {
		s = s[:MaxLogValueLength] + "...[truncated]"
	}

	return s
}

func hasControl(s string) bool {
	for _, r := range s {
		if r < 32 || r == 127 {
			return true
		}
	}
	return false
}
