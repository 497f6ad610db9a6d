package entrance

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	catalogdto "vlx/internal/modules/catalog/dto"
	entrancedto "vlx/internal/modules/entrance/dto"
	apperrors "vlx/internal/platform/errors"
	"vlx/internal/ui/theme"
)

type EntrancePort interface {
	Show(ctx context.Context, labID string) (entrancedto.ConfigOutput, error)
	Set(ctx context.Context, labID string, mode *string, difficulty *int, skipTutorial, sustainability *bool, toggleTools []string) (entrancedto.ConfigOutput, error)
	Enter(ctx context.Context, input entrancedto.EnterInput) (entrancedto.ConfigOutput, error)
}

// ConfigMsg carries the configuration after a load or a field change.
type ConfigMsg struct {
	Config entrancedto.ConfigOutput
	Err    error
}

// EnteredMsg reports the outcome of pressing enter. Err is ErrMissingMode
// when no mode has been chosen.
type EnteredMsg struct {
	Config entrancedto.ConfigOutput
	Err    error
}

const maxTools = 3

type Model struct {
	port   EntrancePort
	lab    catalogdto.LabDetailOutput
	config entrancedto.ConfigOutput
	notice string
	width  int
	height int
}

func New(port EntrancePort) Model {
	return Model{port: port}
}

// Load switches the form to lab and fetches its saved configuration.
func (m *Model) Load(lab catalogdto.LabDetailOutput) tea.Cmd {
	m.lab = lab
	m.config = entrancedto.ConfigOutput{LabID: lab.ID}
	m.notice = ""
	id := lab.ID
	return func() tea.Msg {
		cfg, err := m.port.Show(context.Background(), id)
		return ConfigMsg{Config: cfg, Err: err}
	}
}

func (m Model) LabID() string { return m.lab.ID }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case ConfigMsg:
		if msg.Err != nil {
			m.notice = theme.Bad.Render(msg.Err.Error())
			return m, nil
		}
		m.config = msg.Config
		m.notice = ""

	case EnteredMsg:
		switch {
		case errors.Is(msg.Err, apperrors.ErrMissingMode):
			m.notice = theme.Bad.Render("choose solo or team before entering")
		case msg.Err != nil:
			m.notice = theme.Bad.Render(msg.Err.Error())
		}

	case tea.KeyMsg:
		if m.lab.ID == "" {
			return m, nil
		}
		return m, m.handleKey(msg.String())
	}
	return m, nil
}

func (m Model) handleKey(k string) tea.Cmd {
	switch k {
	case "m":
		mode := "solo"
		if m.config.Mode == "solo" {
			mode = "team"
		}
		return m.setCmd(&mode, nil, nil, nil, nil)
	case "d":
		d := (m.config.Difficulty + 1) % 3
		return m.setCmd(nil, &d, nil, nil, nil)
	case "t":
		v := !m.config.SkipTutorial
		return m.setCmd(nil, nil, &v, nil, nil)
	case "s":
		v := !m.config.Sustainability
		return m.setCmd(nil, nil, nil, &v, nil)
	case "enter":
		cfg := m.config
		return func() tea.Msg {
			out, err := m.port.Enter(context.Background(), entrancedto.EnterInput{
				LabID:          m.lab.ID,
				Mode:           cfg.Mode,
				Difficulty:     cfg.Difficulty,
				Tools:          cfg.Tools,
				SkipTutorial:   cfg.SkipTutorial,
				Sustainability: cfg.Sustainability,
			})
			return EnteredMsg{Config: out, Err: err}
		}
	}
	if len(k) == 1 && k[0] >= '1' && k[0] <= '9' {
		idx := int(k[0] - '1')
		if idx < len(m.lab.Tools) {
			return m.setCmd(nil, nil, nil, nil, []string{m.lab.Tools[idx].ID})
		}
	}
	return nil
}

func (m Model) setCmd(mode *string, difficulty *int, skip, sustainability *bool, tools []string) tea.Cmd {
	labID := m.lab.ID
	return func() tea.Msg {
		cfg, err := m.port.Set(context.Background(), labID, mode, difficulty, skip, sustainability, tools)
		return ConfigMsg{Config: cfg, Err: err}
	}
}

func (m Model) View() string {
	if m.lab.ID == "" {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.Muted.Render("Pick a lab from the catalog first"))
	}
	c := m.config
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Entrance: "+m.lab.Title) + "\n\n")

	mode := c.Mode
	if mode == "" {
		mode = theme.Bad.Render("not set")
	}
	sb.WriteString(row("m", "mode", mode))
	sb.WriteString(row("d", "difficulty", []string{"intro", "standard", "advanced"}[clamp(c.Difficulty)]))
	sb.WriteString(row("t", "skip tutorial", onOff(c.SkipTutorial)))
	sb.WriteString(row("s", "sustainability", onOff(c.Sustainability)))

	sb.WriteString(fmt.Sprintf("\n%s %d/%d\n", theme.Title.Render("Loadout"), len(c.Tools), maxTools))
	selected := map[string]bool{}
	for _, id := range c.Tools {
		selected[id] = true
	}
	for i, tool := range m.lab.Tools {
		mark := "[ ]"
		if selected[tool.ID] {
			mark = theme.Good.Render("[x]")
		}
		name := tool.Name
		if name == "" {
			name = tool.ID
		}
		sb.WriteString(fmt.Sprintf("  %d %s %s\n", i+1, mark, name))
	}
	if m.notice != "" {
		sb.WriteString("\n" + m.notice + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("1-9: toggle tool  enter: start session"))
	return theme.Pane.Width(max(m.width-4, 20)).Render(sb.String())
}

func row(key, label, value string) string {
	return fmt.Sprintf("  %s %-15s %s\n", theme.Hot.Render(key), label, value)
}

func onOff(v bool) string {
	if v {
		return theme.Good.Render("on")
	}
	return theme.Muted.Render("off")
}

func clamp(d int) int {
	if d < 0 {
		return 0
	}
	if d > 2 {
		return 2
	}
	return d
}
