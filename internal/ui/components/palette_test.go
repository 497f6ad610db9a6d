package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func typeInto(p Palette, s string) Palette {
	for _, r := range s {
		p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return p
}

func TestPaletteSuggestionsFollowCommandWord(t *testing.T) {
	t.Parallel()

	p := NewPalette()
	p.Open()
	if got := len(p.Suggestions()); got != maxSuggestions {
		t.Fatalf("empty input suggestions = %d, want %d", got, maxSuggestions)
	}

	p = typeInto(p, "res")
	got := p.Suggestions()
	if len(got) != 2 || got[0] != "results:export <dir>" || got[1] != "results:reload" {
		t.Fatalf("suggestions = %v", got)
	}

	p = typeInto(p, "ults:export /tmp/out")
	if got := p.Suggestions(); len(got) != 1 || got[0] != "results:export <dir>" {
		t.Fatalf("suggestions with argument = %v", got)
	}
}

func TestPaletteTabCompletesSelection(t *testing.T) {
	t.Parallel()

	p := NewPalette()
	p.Open()
	p = typeInto(p, "settings:")
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyDown})
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyTab})
	p = typeInto(p, "18")

	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected submit command")
	}
	msg, ok := cmd().(PaletteSubmitMsg)
	if !ok {
		t.Fatal("expected PaletteSubmitMsg")
	}
	if msg.Input != "settings:font 18" {
		t.Fatalf("input = %q", msg.Input)
	}
}

func TestPaletteEscCancels(t *testing.T) {
	t.Parallel()

	p := NewPalette()
	p.Open()
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if p.Visible() {
		t.Fatal("palette still visible")
	}
	if _, ok := cmd().(PaletteCancelMsg); !ok {
		t.Fatal("expected PaletteCancelMsg")
	}
}
