package workplace

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	catalogdto "vlx/internal/modules/catalog/dto"
	workplacedto "vlx/internal/modules/workplace/dto"
	apperrors "vlx/internal/platform/errors"
	"vlx/internal/ui/theme"
)

type WorkplacePort interface {
	Show(ctx context.Context, labID string) (workplacedto.StateOutput, error)
	ToggleTools(ctx context.Context, labID string, tools []string) (workplacedto.StateOutput, error)
	SetParameter(ctx context.Context, labID string, index int, value float64) (workplacedto.StateOutput, error)
	TogglePause(ctx context.Context, labID string) (workplacedto.StateOutput, error)
	Reset(ctx context.Context, labID string) (workplacedto.StateOutput, error)
	Complete(ctx context.Context, labID string, score int) (workplacedto.CompleteOutput, error)
}

type StateMsg struct {
	State workplacedto.StateOutput
	Err   error
}

// CompletedMsg is emitted after a completion attempt. Err is ErrNotReady
// while progress is below the threshold.
type CompletedMsg struct {
	Out workplacedto.CompleteOutput
	Err error
}

// steps is the number of arrow presses that move a parameter across its range.
const steps = 20

type Model struct {
	port   WorkplacePort
	lab    catalogdto.LabDetailOutput
	state  workplacedto.StateOutput
	loaded bool
	cursor int
	bar    progress.Model
	notice string
	width  int
	height int
}

func New(port WorkplacePort) Model {
	return Model{port: port, bar: newBar()}
}

func newBar() progress.Model {
	return progress.New(progress.WithSolidFill(string(theme.Green)), progress.WithoutPercentage())
}

// Load opens the workplace of lab.
func (m *Model) Load(lab catalogdto.LabDetailOutput) tea.Cmd {
	m.lab = lab
	m.loaded = false
	m.cursor = 0
	m.notice = ""
	id := lab.ID
	return func() tea.Msg {
		state, err := m.port.Show(context.Background(), id)
		return StateMsg{State: state, Err: err}
	}
}

func (m Model) LabID() string { return m.lab.ID }

// Progress is the current progress, used as the default completion score.
func (m Model) Progress() int { return m.state.Progress }

// Restyle rebuilds theme-dependent components.
func (m *Model) Restyle() {
	width := m.bar.Width
	m.bar = newBar()
	m.bar.Width = width
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = max(m.width-24, 10)

	case StateMsg:
		if msg.Err != nil {
			m.notice = theme.Bad.Render(msg.Err.Error())
			return m, nil
		}
		m.state = msg.State
		m.loaded = true
		m.notice = ""
		if m.cursor >= len(m.state.Parameters) {
			m.cursor = 0
		}

	case CompletedMsg:
		switch {
		case errors.Is(msg.Err, apperrors.ErrNotReady):
			m.notice = theme.Bad.Render("not ready: reach 80% to finish")
		case msg.Err != nil:
			m.notice = theme.Bad.Render(msg.Err.Error())
		default:
			m.state = msg.Out.State
			m.notice = theme.Good.Render(fmt.Sprintf("Experiment complete. Score %d", msg.Out.Score))
		}

	case tea.KeyMsg:
		if !m.loaded {
			return m, nil
		}
		cmd := m.handleKey(msg.String())
		return m, cmd
	}
	return m, nil
}

// Complete attempts to finish the session with score.
func (m Model) Complete(score int) tea.Cmd {
	labID := m.lab.ID
	return func() tea.Msg {
		out, err := m.port.Complete(context.Background(), labID, score)
		return CompletedMsg{Out: out, Err: err}
	}
}

func (m *Model) handleKey(k string) tea.Cmd {
	labID := m.lab.ID
	switch k {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return nil
	case "down", "j":
		if m.cursor < len(m.state.Parameters)-1 {
			m.cursor++
		}
		return nil
	case "left", "h":
		return m.nudge(-1)
	case "right", "l":
		return m.nudge(1)
	case "p":
		return m.stateCmd(func(ctx context.Context) (workplacedto.StateOutput, error) {
			return m.port.TogglePause(ctx, labID)
		})
	case "r":
		return m.stateCmd(func(ctx context.Context) (workplacedto.StateOutput, error) {
			return m.port.Reset(ctx, labID)
		})
	case "c":
		return m.Complete(m.state.Progress)
	}
	if len(k) == 1 && k[0] >= '1' && k[0] <= '9' {
		idx := int(k[0] - '1')
		if idx < len(m.lab.Tools) {
			tool := m.lab.Tools[idx].ID
			return m.stateCmd(func(ctx context.Context) (workplacedto.StateOutput, error) {
				return m.port.ToggleTools(ctx, labID, []string{tool})
			})
		}
	}
	return nil
}

func (m Model) nudge(dir float64) tea.Cmd {
	if m.cursor >= len(m.state.Parameters) {
		return nil
	}
	p := m.state.Parameters[m.cursor]
	value := p.Value + dir*(p.Max-p.Min)/steps
	labID, index := m.lab.ID, m.cursor
	return m.stateCmd(func(ctx context.Context) (workplacedto.StateOutput, error) {
		return m.port.SetParameter(ctx, labID, index, value)
	})
}

func (m Model) stateCmd(fn func(context.Context) (workplacedto.StateOutput, error)) tea.Cmd {
	return func() tea.Msg {
		state, err := fn(context.Background())
		return StateMsg{State: state, Err: err}
	}
}

func (m Model) View() string {
	if m.lab.ID == "" || !m.loaded {
		msg := "Enter a lab to open its workplace"
		if m.notice != "" {
			msg = m.notice
		}
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, theme.Muted.Render(msg))
	}
	s := m.state
	var sb strings.Builder
	title := "Workplace: " + s.LabTitle
	if s.Paused {
		title += theme.Hot.Render("  [paused]")
	}
	if s.SustainabilityEnabled {
		title += theme.Good.Render("  ♻")
	}
	sb.WriteString(theme.Title.Render(title) + "\n\n")

	progressLabel := fmt.Sprintf(" %3d%%", s.Progress)
	if s.Ready {
		progressLabel = theme.Good.Render(progressLabel)
	}
	sb.WriteString("progress " + m.bar.ViewAs(float64(s.Progress)/100) + progressLabel + "\n")

	sb.WriteString("\n" + theme.Title.Render("Tools") + "\n")
	selected := map[string]bool{}
	for _, id := range s.SelectedTools {
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

	if len(s.Parameters) > 0 {
		sb.WriteString("\n" + theme.Title.Render("Parameters") + "\n")
		for i, p := range s.Parameters {
			cursor := "  "
			if i == m.cursor {
				cursor = theme.Hot.Render("▸ ")
			}
			sb.WriteString(fmt.Sprintf("%s%-14s %8.2f %s  %s\n", cursor, p.Name, p.Value, p.Unit,
				theme.Muted.Render(fmt.Sprintf("[%g, %g]", p.Min, p.Max))))
		}
	}
	if m.notice != "" {
		sb.WriteString("\n" + m.notice + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("1-9: tool  ↑/↓: parameter  ←/→: adjust  p: pause  r: reset  c: complete"))
	return theme.Pane.Width(max(m.width-4, 20)).Render(sb.String())
}
