package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"vlx/internal/ui/theme"
)

// PaletteSubmitMsg is emitted when the user confirms a command.
type PaletteSubmitMsg struct{ Input string }

// PaletteCancelMsg is emitted when the user presses esc.
type PaletteCancelMsg struct{}

// hints must stay in sync with the switch in app/model.go executePalette.
var paletteHints = []string{
	"lab:enter",
	"lab:workplace",
	"workplace:complete <score>",
	"workplace:reset",
	"workplace:pause",
	"results:export <dir>",
	"results:reload",
	"settings:contrast",
	"settings:font <14-20>",
	"settings:haptic <0-2>",
}

const maxSuggestions = 5

// Palette is a command-palette overlay backed by bubbles/textinput. Up and
// down move through the matching commands; tab completes the highlighted one.
type Palette struct {
	input    textinput.Model
	visible  bool
	width    int
	selected int
}

// NewPalette creates an inactive Palette ready to be opened.
func NewPalette() Palette {
	ti := textinput.New()
	ti.Placeholder = "type a command…"
	ti.CharLimit = 256
	return Palette{input: ti}
}

// Visible reports whether the palette is currently shown.
func (p Palette) Visible() bool { return p.visible }

// Open shows the palette, clears the input, and returns the focus command.
func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.selected = 0
	p.input.SetValue("")
	return p.input.Focus()
}

// SetWidth sets the render width for the overlay.
func (p *Palette) SetWidth(w int) { p.width = w }

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			p.visible = false
			p.input.Blur()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "enter":
			val := strings.TrimSpace(p.input.Value())
			p.visible = false
			p.input.Blur()
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: val} }
		case "up":
			if p.selected > 0 {
				p.selected--
			}
			return p, nil
		case "down":
			if p.selected < len(p.Suggestions())-1 {
				p.selected++
			}
			return p, nil
		case "tab":
			if s := p.Suggestions(); len(s) > 0 {
				p.input.SetValue(commandOf(s[p.selected]) + " ")
				p.input.CursorEnd()
				p.selected = 0
			}
			return p, nil
		}
	}
	before := p.input.Value()
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	if p.input.Value() != before {
		p.selected = 0
	}
	return p, cmd
}

// Suggestions returns the hints whose command starts with the typed command
// word.
func (p Palette) Suggestions() []string {
	typed := strings.ToLower(strings.TrimSpace(p.input.Value()))
	if f := strings.Fields(typed); len(f) > 0 {
		typed = f[0]
	}
	var out []string
	for _, h := range paletteHints {
		if strings.HasPrefix(commandOf(h), typed) {
			out = append(out, h)
			if len(out) == maxSuggestions {
				break
			}
		}
	}
	return out
}

func commandOf(hint string) string {
	if i := strings.IndexByte(hint, ' '); i >= 0 {
		return hint[:i]
	}
	return hint
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	matching := p.Suggestions()

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Command Palette") + "\n")
	sb.WriteString(": " + p.input.View() + "\n")
	if len(matching) > 0 {
		sb.WriteString("\n")
		for i, h := range matching {
			if i == p.selected {
				sb.WriteString(theme.Hot.Render("> "+h) + "\n")
				continue
			}
			sb.WriteString(theme.Muted.Render("  "+h) + "\n")
		}
	}

	w := p.width
	if w < 20 {
		w = 64
	}
	style := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Peach).
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(0, 1)
	return style.Width(w - 2).Render(sb.String())
}
