package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	settingsdto "vlx/internal/modules/settings/dto"
	"vlx/internal/ui/components"
	"vlx/internal/ui/theme"
	catalogview "vlx/internal/ui/views/catalog"
	entranceview "vlx/internal/ui/views/entrance"
	resultsview "vlx/internal/ui/views/results"
	workplaceview "vlx/internal/ui/views/workplace"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type settingsPort interface {
	Get(ctx context.Context) (settingsdto.SettingsOutput, error)
	Update(ctx context.Context, input settingsdto.UpdateInput) (settingsdto.SettingsOutput, error)
	Subscribe(fn func(settingsdto.SettingsOutput)) (unsubscribe func())
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabCatalog tabID = iota
	tabEntrance
	tabWorkplace
	tabResults
	tabCount
)

var tabLabels = [tabCount]string{"Catalog", "Entrance", "Workplace", "Results"}

// completionDelay is how long the completion banner stays up before the
// results tab is shown. The session is already recorded when it starts.
const completionDelay = 1200 * time.Millisecond

// ─── async messages ──────────────────────────────────────────────────────────

type settingsMsg struct {
	settings settingsdto.SettingsOutput
	err      error
}

type settingsChangedMsg struct {
	settings settingsdto.SettingsOutput
}

type showResultsMsg struct{}

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	Tab      key.Binding
	Help     key.Binding
	Palette  key.Binding
	Quit     key.Binding
	Enter    key.Binding
	Tools    key.Binding
	Adjust   key.Binding
	Complete key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette:  key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open lab / start session")),
		Tools:    key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "toggle tool")),
		Adjust:   key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "adjust parameter")),
		Complete: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "complete experiment")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Enter},
		{k.Tools, k.Adjust, k.Complete},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It routes between the lab tabs, owns
// the help overlay and the command palette, and follows the accessibility
// settings.
type Model struct {
	settings settingsPort
	updates  chan settingsdto.SettingsOutput
	stop     func()

	catalogView   catalogview.Model
	entranceView  entranceview.Model
	workplaceView workplaceview.Model
	resultsView   resultsview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	access    settingsdto.SettingsOutput
	status    string
	width     int
	height    int
}

func NewModel(
	catalog catalogview.CatalogPort,
	entrance entranceview.EntrancePort,
	workplace workplaceview.WorkplacePort,
	results resultsview.ResultsPort,
	settings settingsPort,
) Model {
	m := Model{
		settings:      settings,
		catalogView:   catalogview.New(catalog),
		entranceView:  entranceview.New(entrance),
		workplaceView: workplaceview.New(workplace),
		resultsView:   resultsview.New(results),
		activeTab:     tabCatalog,
		keys:          defaultKeys(),
		help:          help.New(),
		palette:       components.NewPalette(),
		status:        "ready",
	}
	if settings != nil {
		updates := make(chan settingsdto.SettingsOutput, 1)
		m.updates = updates
		m.stop = settings.Subscribe(func(s settingsdto.SettingsOutput) {
			// Keep only the newest change when the UI falls behind.
			select {
			case <-updates:
			default:
			}
			updates <- s
		})
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.catalogView.Init(),
		m.resultsView.Init(),
		m.loadSettingsCmd(),
		m.waitForSettings(),
	)
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette takes all key input while open.
	if _, ok := msg.(tea.KeyMsg); ok && m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case settingsMsg:
		if msg.err != nil {
			m.status = "settings: " + msg.err.Error()
			return m, nil
		}
		m.applySettings(msg.settings)
		return m, nil

	case settingsChangedMsg:
		m.applySettings(msg.settings)
		m.status = "settings updated"
		return m, m.waitForSettings()

	case entranceview.EnteredMsg:
		var cmd tea.Cmd
		m.entranceView, cmd = m.entranceView.Update(msg)
		if msg.Err != nil {
			m.status = "entrance: " + msg.Err.Error()
			return m, cmd
		}
		lab, ok := m.catalogView.Selected()
		if !ok || lab.ID != msg.Config.LabID {
			m.status = "entered " + msg.Config.LabID
			return m, cmd
		}
		m.status = "session started: " + lab.Title
		m.activeTab = tabWorkplace
		load := m.workplaceView.Load(lab)
		return m, tea.Batch(cmd, load)

	case workplaceview.CompletedMsg:
		var cmd tea.Cmd
		m.workplaceView, cmd = m.workplaceView.Update(msg)
		if msg.Err != nil {
			m.status = "complete: " + msg.Err.Error()
			return m, cmd
		}
		m.status = fmt.Sprintf("recorded %s with score %d", msg.Out.State.LabTitle, msg.Out.Score)
		return m, tea.Batch(cmd, tea.Tick(completionDelay, func(time.Time) tea.Msg { return showResultsMsg{} }))

	case showResultsMsg:
		m.activeTab = tabResults
		return m, m.resultsView.Reload()

	case resultsview.ExportedMsg:
		if msg.Err != nil {
			m.status = "export: " + msg.Err.Error()
		} else {
			m.status = fmt.Sprintf("exported %d results to %s", len(msg.Out.Notes), msg.Out.Dir)
		}
		return m, nil

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case entranceview.ConfigMsg, workplaceview.StateMsg:
		return m.routeTo(msg)

	case catalogview.LabsLoadedMsg, catalogview.DetailLoadedMsg:
		var cmd tea.Cmd
		m.catalogView, cmd = m.catalogView.Update(msg)
		return m, cmd

	case resultsview.LoadedMsg:
		var cmd tea.Cmd
		m.resultsView, cmd = m.resultsView.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		if m.activeTab == tabCatalog && m.catalogView.Filtering() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			if m.stop != nil {
				m.stop()
			}
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":":
			cmd := m.palette.Open()
			return m, cmd
		case "enter":
			if m.activeTab == tabCatalog {
				return m.openEntrance()
			}
		}
	}

	// Everything else goes to the active tab.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabCatalog:
		m.catalogView, tabCmd = m.catalogView.Update(msg)
	case tabEntrance:
		m.entranceView, tabCmd = m.entranceView.Update(msg)
	case tabWorkplace:
		m.workplaceView, tabCmd = m.workplaceView.Update(msg)
	case tabResults:
		m.resultsView, tabCmd = m.resultsView.Update(msg)
	}
	cmds = append(cmds, tabCmd)
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// routeTo delivers an async result to the view that asked for it, whichever
// tab is active.
func (m Model) routeTo(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg.(type) {
	case entranceview.ConfigMsg:
		m.entranceView, cmd = m.entranceView.Update(msg)
	case workplaceview.StateMsg:
		m.workplaceView, cmd = m.workplaceView.Update(msg)
	}
	return m, cmd
}

func (m Model) openEntrance() (tea.Model, tea.Cmd) {
	lab, ok := m.catalogView.Selected()
	if !ok {
		m.status = "no lab selected"
		return m, nil
	}
	m.activeTab = tabEntrance
	m.status = "entrance: " + lab.Title
	cmd := m.entranceView.Load(lab)
	return m, cmd
}

func (m *Model) applySettings(s settingsdto.SettingsOutput) {
	m.access = s
	if theme.HighContrast() != s.HighContrast {
		theme.SetHighContrast(s.HighContrast)
		m.resultsView.Restyle()
		m.workplaceView.Restyle()
		m.catalogView.Refresh()
	}
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(tabBar) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}
	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabCatalog:
		return m.catalogView.View()
	case tabEntrance:
		return m.entranceView.View()
	case tabWorkplace:
		return m.workplaceView.View()
	case tabResults:
		return m.resultsView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + tabLabels[i] + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + tabLabels[i] + " ")
		}
	}
	bar := "vlx  " + strings.Join(parts, theme.Muted.Render(" │ "))
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	right := theme.Muted.Render(fmt.Sprintf("font %d  haptic %d  ?:help  tab:switch  :::palette  q:quit",
		m.access.FontSize, m.access.HapticIntensity))
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(left+strings.Repeat(" ", gap)+right)
}

// ─── palette execution ───────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}

	switch parts[0] {
	case "lab:enter":
		return m.openEntrance()

	case "lab:workplace":
		lab, ok := m.catalogView.Selected()
		if !ok {
			m.status = "no lab selected"
			return m, nil
		}
		m.activeTab = tabWorkplace
		cmd := m.workplaceView.Load(lab)
		return m, cmd

	case "workplace:complete":
		if m.workplaceView.LabID() == "" {
			m.status = "no workplace open"
			return m, nil
		}
		score := m.workplaceView.Progress()
		if len(parts) >= 2 {
			n, err := strconv.Atoi(parts[1])
			if err != nil {
				m.status = "usage: workplace:complete <score>"
				return m, nil
			}
			score = n
		}
		m.activeTab = tabWorkplace
		return m, m.workplaceView.Complete(score)

	case "workplace:reset", "workplace:pause":
		if m.workplaceView.LabID() == "" {
			m.status = "no workplace open"
			return m, nil
		}
		m.activeTab = tabWorkplace
		k := "r"
		if parts[0] == "workplace:pause" {
			k = "p"
		}
		var cmd tea.Cmd
		m.workplaceView, cmd = m.workplaceView.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
		return m, cmd

	case "results:export":
		if len(parts) < 2 {
			m.status = "usage: results:export <dir>"
			return m, nil
		}
		return m, m.resultsView.Export(parts[1])

	case "results:reload":
		m.activeTab = tabResults
		return m, m.resultsView.Reload()

	case "settings:contrast":
		v := !m.access.HighContrast
		return m, m.updateSettingsCmd(settingsdto.UpdateInput{HighContrast: &v})

	case "settings:font", "settings:haptic":
		if len(parts) < 2 {
			m.status = "usage: " + parts[0] + " <value>"
			return m, nil
		}
		n, err := strconv.Atoi(parts[1])
		if err != nil {
			m.status = "invalid value: " + parts[1]
			return m, nil
		}
		input := settingsdto.UpdateInput{FontSize: &n}
		if parts[0] == "settings:haptic" {
			input = settingsdto.UpdateInput{HapticIntensity: &n}
		}
		return m, m.updateSettingsCmd(input)

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.catalogView, _ = m.catalogView.Update(sz)
	m.entranceView, _ = m.entranceView.Update(sz)
	m.workplaceView, _ = m.workplaceView.Update(sz)
	m.resultsView, _ = m.resultsView.Update(sz)
}

// ─── async commands ──────────────────────────────────────────────────────────

func (m Model) loadSettingsCmd() tea.Cmd {
	if m.settings == nil {
		return nil
	}
	return func() tea.Msg {
		s, err := m.settings.Get(context.Background())
		return settingsMsg{settings: s, err: err}
	}
}

// waitForSettings blocks until the settings service publishes a change.
func (m Model) waitForSettings() tea.Cmd {
	if m.updates == nil {
		return nil
	}
	updates := m.updates
	return func() tea.Msg {
		return settingsChangedMsg{settings: <-updates}
	}
}

// updateSettingsCmd saves a change; the subscription delivers the result.
func (m Model) updateSettingsCmd(input settingsdto.UpdateInput) tea.Cmd {
	if m.settings == nil {
		return nil
	}
	return func() tea.Msg {
		if _, err := m.settings.Update(context.Background(), input); err != nil {
			return settingsMsg{err: err}
		}
		return nil
	}
}
