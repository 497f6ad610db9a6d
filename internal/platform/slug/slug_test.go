package slug

import (
	"strings"
	"testing"
)

func TestMake(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"Acid-Base Titration", "acid-base-titration"},
		{"  Ohm's Law: V = I·R  ", "ohm-s-law-v-i-r"},
		{"Pendulum (2)", "pendulum-2"},
		{"Électrolyse", "lectrolyse"},
		{"!!!", "lab"},
		{"", "lab"},
	}
	for _, tt := range tests {
		if got := Make(tt.in); got != tt.want {
			t.Errorf("Make(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMakeTruncatesOnDash(t *testing.T) {
	t.Parallel()

	got := Make(strings.Repeat("spectro ", 10))
	if len(got) > MaxLen {
		t.Fatalf("len = %d, want <= %d", len(got), MaxLen)
	}
	if strings.HasSuffix(got, "-") || strings.Contains(got, "--") {
		t.Fatalf("bad slug %q", got)
	}
	if !strings.HasPrefix(got, "spectro-spectro") {
		t.Fatalf("slug = %q", got)
	}
}
