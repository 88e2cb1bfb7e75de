// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize canonicalizes title strings for duplicate comparison.
package normalize

import (
	"strings"
	"unicode"
)

// Title lower-cases s, collapses whitespace runs to a single space, strips
// characters outside [a-z0-9 -:/], and trims. Idempotent; empty input
// yields the empty string.
func Title(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9',
			r == '-', r == ':', r == '/':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
