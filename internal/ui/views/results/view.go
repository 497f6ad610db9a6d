package results

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	resultsdto "vlx/internal/modules/results/dto"
	"vlx/internal/ui/theme"
)

type ResultsPort interface {
	List(ctx context.Context) ([]resultsdto.RecordOutput, error)
	Export(ctx context.Context, dir string) (resultsdto.ExportOutput, error)
}

type LoadedMsg struct {
	Records []resultsdto.RecordOutput
	Err     error
}

type ExportedMsg struct {
	Out resultsdto.ExportOutput
	Err error
}

type Model struct {
	port    ResultsPort
	table   table.Model
	records []resultsdto.RecordOutput
	err     error
	width   int
	height  int
}

func New(port ResultsPort) Model {
	t := table.New(
		table.WithColumns(columns(60)),
		table.WithFocused(true),
	)
	m := Model{port: port, table: t}
	m.Restyle()
	return m
}

func columns(width int) []table.Column {
	title := max(width-42, 12)
	return []table.Column{
		{Title: "#", Width: 3},
		{Title: "Completed", Width: 17},
		{Title: "Lab", Width: title},
		{Title: "Score", Width: 6},
	}
}

func (m Model) Init() tea.Cmd {
	return m.Reload()
}

// Reload fetches the history again.
func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		records, err := m.port.List(context.Background())
		return LoadedMsg{Records: records, Err: err}
	}
}

func (m Model) Export(dir string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Export(context.Background(), dir)
		return ExportedMsg{Out: out, Err: err}
	}
}

// Restyle applies the current theme to the table.
func (m *Model) Restyle() {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Surface1).
		BorderBottom(true).
		Foreground(theme.Sapphire).
		Bold(true)
	s.Selected = s.Selected.Foreground(theme.Base).Background(theme.Lavender)
	m.table.SetStyles(s)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetColumns(columns(m.width - 8))
		m.table.SetHeight(max(m.height-8, 3))
		return m, nil

	case LoadedMsg:
		m.err = msg.Err
		if msg.Err == nil {
			m.records = msg.Records
			m.table.SetRows(rows(msg.Records))
			m.table.GotoTop()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// rows lists records newest first.
func rows(records []resultsdto.RecordOutput) []table.Row {
	out := make([]table.Row, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		out = append(out, table.Row{
			fmt.Sprintf("%d", len(records)-i),
			r.Timestamp.Local().Format("2006-01-02 15:04"),
			r.LabTitle,
			fmt.Sprintf("%d", r.Score),
		})
	}
	return out
}

func (m Model) View() string {
	header := theme.Title.Render("Results") + theme.Muted.Render(fmt.Sprintf("  last %d sessions", len(m.records)))
	body := m.table.View()
	switch {
	case m.err != nil:
		body = theme.Bad.Render(m.err.Error())
	case len(m.records) == 0:
		body = theme.Muted.Render("No completed sessions yet")
	}
	return theme.Pane.Width(max(m.width-4, 20)).Render(header + "\n\n" + body)
}
