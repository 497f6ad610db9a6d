package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	catalogdto "vlx/internal/modules/catalog/dto"
	"vlx/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type CatalogPort interface {
	ListLabs(ctx context.Context, branch string) ([]catalogdto.LabOutput, error)
	GetLab(ctx context.Context, labID string) (catalogdto.LabDetailOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LabsLoadedMsg struct {
	Labs []catalogdto.LabOutput
	Err  error
}

type DetailLoadedMsg struct {
	Detail catalogdto.LabDetailOutput
	Err    error
}

// ─── list item ───────────────────────────────────────────────────────────────

var difficultyLabels = []string{"intro", "standard", "advanced"}

func difficultyLabel(d int) string {
	if d >= 0 && d < len(difficultyLabels) {
		return difficultyLabels[d]
	}
	return fmt.Sprintf("level %d", d)
}

type labItem struct {
	lab catalogdto.LabOutput
}

func (i labItem) Title() string       { return i.lab.Title }
func (i labItem) Description() string { return i.lab.Branch + "  " + difficultyLabel(i.lab.Difficulty) }
func (i labItem) FilterValue() string { return i.lab.Title + " " + i.lab.Branch }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    CatalogPort
	list    list.Model
	detail  catalogdto.LabDetailOutput
	preview viewport.Model
	spinner spinner.Model
	loading bool
	width   int
	height  int
}

func New(port CatalogPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Labs"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{port: port, list: l, preview: vp, spinner: sp, loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadLabsCmd(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case LabsLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "Labs: " + msg.Err.Error()
			return m, nil
		}
		items := make([]list.Item, len(msg.Labs))
		for i, lab := range msg.Labs {
			items[i] = labItem{lab: lab}
		}
		cmds = append(cmds, m.list.SetItems(items))
		if len(msg.Labs) > 0 {
			cmds = append(cmds, m.loadDetailCmd(msg.Labs[0].ID))
		}

	case DetailLoadedMsg:
		if msg.Err == nil {
			m.detail = msg.Detail
			m.preview.SetContent(m.renderDetail())
		}

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if !m.loading {
		prev := m.list.Index()
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		cmds = append(cmds, cmd)
		if m.list.Index() != prev {
			if item, ok := m.list.SelectedItem().(labItem); ok {
				cmds = append(cmds, m.loadDetailCmd(item.lab.ID))
			}
		}
		m.preview, cmd = m.preview.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading labs…")
	}
	listW := m.width * 4 / 10
	listPane := lipgloss.NewStyle().Width(listW).Height(m.height).Render(m.list.View())
	detailPane := theme.Pane.
		Width(m.width-listW-2).
		Height(m.height-2).
		Padding(0, 1).
		Render(m.preview.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// Selected returns the detail of the highlighted lab once it has loaded.
func (m Model) Selected() (catalogdto.LabDetailOutput, bool) {
	item, ok := m.list.SelectedItem().(labItem)
	if !ok || m.detail.ID != item.lab.ID {
		return catalogdto.LabDetailOutput{}, false
	}
	return m.detail, true
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// Refresh redraws the detail pane, e.g. after a theme change.
func (m *Model) Refresh() {
	m.preview.SetContent(m.renderDetail())
}

func (m *Model) resize() {
	listW := m.width * 4 / 10
	m.list.SetSize(listW, m.height)
	m.preview.Width = m.width - listW - 6
	m.preview.Height = m.height - 4
}

func (m Model) renderDetail() string {
	d := m.detail
	if d.ID == "" {
		return theme.Muted.Render("Select a lab to see details")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(d.Title) + "\n\n")
	sb.WriteString(theme.Muted.Render("id:      ") + d.ID + "\n")
	sb.WriteString(theme.Muted.Render("branch:  ") + d.Branch + "\n")
	sb.WriteString(theme.Muted.Render("level:   ") + difficultyLabel(d.Difficulty) + "\n")
	if d.Summary != "" {
		sb.WriteString("\n" + d.Summary + "\n")
	}
	if len(d.Prerequisites) > 0 {
		sb.WriteString("\n" + theme.Muted.Render("before you start: ") + strings.Join(d.Prerequisites, ", ") + "\n")
	}
	sb.WriteString("\n" + theme.Title.Render("Tools") + "\n")
	for _, t := range d.Tools {
		sb.WriteString("  • " + t.Name + theme.Muted.Render(" ("+t.ID+")") + "\n")
	}
	if len(d.Parameters) > 0 {
		sb.WriteString("\n" + theme.Title.Render("Parameters") + "\n")
		for _, p := range d.Parameters {
			sb.WriteString(fmt.Sprintf("  • %s  %g–%g %s\n", p.Name, p.Min, p.Max, p.Unit))
		}
	}
	sb.WriteString("\n" + theme.Muted.Render("enter: lab entrance"))
	return sb.String()
}

func (m Model) loadLabsCmd() tea.Cmd {
	return func() tea.Msg {
		labs, err := m.port.ListLabs(context.Background(), "")
		return LabsLoadedMsg{Labs: labs, Err: err}
	}
}

func (m Model) loadDetailCmd(id string) tea.Cmd {
	return func() tea.Msg {
		detail, err := m.port.GetLab(context.Background(), id)
		return DetailLoadedMsg{Detail: detail, Err: err}
	}
}
