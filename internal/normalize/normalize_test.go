// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import "testing"

func TestTitle(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"lower-cases", "GaN HEMT", "gan hemt"},
		{"collapses whitespace", "gan \t hemt\n study", "gan hemt study"},
		{"strips punctuation", "GaN  HEMT!!", "gan hemt"},
		{"keeps hyphen colon slash", "E-mode: GaN/AlGaN", "e-mode: gan/algan"},
		{"trims", "  gan hemt  ", "gan hemt"},
		{"unicode stripped", "GaN–HEMT résumé", "ganhemt rsum"},
		{"only punctuation", "!!??", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Title(tt.in)
			if got != tt.want {
				t.Errorf("Title(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTitleIdempotent(t *testing.T) {
	inputs := []string{"GaN  HEMT!!", "gan hemt", "  E-mode: GaN/AlGaN stacks  ", ""}
	for _, in := range inputs {
		once := Title(in)
		twice := Title(once)
		if once != twice {
			t.Errorf("Title not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestTitleCaseWhitespaceInsensitive(t *testing.T) {
	if Title("GaN  HEMT!!") != Title("gan hemt") {
		t.Errorf("Title(%q) != Title(%q)", "GaN  HEMT!!", "gan hemt")
	}
}
