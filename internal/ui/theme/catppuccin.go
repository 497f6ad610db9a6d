package theme

import "github.com/charmbracelet/lipgloss"

type palette struct {
	Base, Mantle, Surface0, Surface1      lipgloss.Color
	Text, Subtext0                        lipgloss.Color
	Lavender, Sapphire, Green, Peach, Red lipgloss.Color
}

var mocha = palette{
	Base:     "#1e1e2e",
	Mantle:   "#181825",
	Surface0: "#313244",
	Surface1: "#45475a",
	Text:     "#cdd6f4",
	Subtext0: "#a6adc8",
	Lavender: "#b4befe",
	Sapphire: "#74c7ec",
	Green:    "#a6e3a1",
	Peach:    "#fab387",
	Red:      "#f38ba8",
}

var highContrast = palette{
	Base:     "#000000",
	Mantle:   "#000000",
	Surface0: "#3a3a3a",
	Surface1: "#ffffff",
	Text:     "#ffffff",
	Subtext0: "#e0e0e0",
	Lavender: "#ffff00",
	Sapphire: "#00ffff",
	Green:    "#00ff00",
	Peach:    "#ffaf00",
	Red:      "#ff5f5f",
}

var (
	Base, Mantle, Surface0, Surface1      lipgloss.Color
	Text, Subtext0                        lipgloss.Color
	Lavender, Sapphire, Green, Peach, Red lipgloss.Color

	App, Pane, PaneActive, Title, Muted, Hot, Good, Bad lipgloss.Style

	highContrastOn bool
)

func init() {
	use(mocha)
}

// SetHighContrast swaps every color and style for the high contrast palette
// or back. Views read the package variables on each render.
func SetHighContrast(on bool) {
	highContrastOn = on
	if on {
		use(highContrast)
		return
	}
	use(mocha)
}

func HighContrast() bool {
	return highContrastOn
}

func use(p palette) {
	Base, Mantle, Surface0, Surface1 = p.Base, p.Mantle, p.Surface0, p.Surface1
	Text, Subtext0 = p.Text, p.Subtext0
	Lavender, Sapphire, Green, Peach, Red = p.Lavender, p.Sapphire, p.Green, p.Peach, p.Red

	App = lipgloss.NewStyle().
		Background(Base).
		Foreground(Text).
		Padding(1, 2)

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Background(Mantle).
		Foreground(Text).
		Padding(1)

	PaneActive = Pane.BorderForeground(Lavender)

	Title = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext0)
	Hot = lipgloss.NewStyle().Foreground(Peach).Bold(true)
	Good = lipgloss.NewStyle().Foreground(Green).Bold(true)
	Bad = lipgloss.NewStyle().Foreground(Red)
}
