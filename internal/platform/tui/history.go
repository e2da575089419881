package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/catan-dice/internal/device"
	"github.com/vovakirdan/catan-dice/internal/storage"
)

// History layout constants
const (
	maxHistoryRolls = 200 // Max rolls to load per device
	historyChrome   = 9   // Rows used by title, tabs, summary, borders and help
)

// HistoryStore is the read side of the roll log.
type HistoryStore interface {
	RecentRolls(deviceID string, limit int) ([]storage.RollRecord, error)
	RollSummaries() (map[string]*storage.RollSummary, error)
}

// HistoryKeyMap defines the key bindings for the roll history.
type HistoryKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextDevice key.Binding
	PrevDevice key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextDevice, k.PrevDevice, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextDevice, k.PrevDevice, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextDevice: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next device"),
		),
		PrevDevice: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev device"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for browsing the roll log.
type HistoryModel struct {
	store     HistoryStore
	devices   []string
	cursor    int
	summaries map[string]*storage.RollSummary
	rolls     []storage.RollRecord
	loadErr   error
	table     table.Model
	help      help.Model
	keys      HistoryKeyMap
	width     int
	height    int
	quitting  bool
}

// NewHistoryModel creates a history browser starting at deviceID.
func NewHistoryModel(store HistoryStore, deviceID string, width, height int) HistoryModel {
	m := HistoryModel{
		store:  store,
		keys:   DefaultHistoryKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}

	m.loadDevices(deviceID)
	m.table = m.createTable()
	m.loadRolls()

	return m
}

// loadDevices lists every device with rolls, always including current.
func (m *HistoryModel) loadDevices(current string) {
	summaries, err := m.store.RollSummaries()
	if err != nil {
		m.loadErr = err
		summaries = nil
	}
	m.summaries = summaries

	seen := map[string]bool{current: true}
	m.devices = []string{current}
	for id := range summaries {
		if !seen[id] {
			seen[id] = true
			m.devices = append(m.devices, id)
		}
	}
	sort.Strings(m.devices[1:])
}

// createTable creates a new table sized to the window.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 6},
		{Title: "Sum", Width: 4},
		{Title: "White", Width: 6},
		{Title: "Red", Width: 4},
		{Title: "Event", Width: 13},
		{Title: "Variant", Width: 8},
		{Title: "Mode", Width: 10},
		{Title: "Time", Width: 13},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-historyChrome, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// CurrentDevice returns the device whose rolls are shown.
func (m HistoryModel) CurrentDevice() string {
	return m.devices[m.cursor]
}

// Rolls returns the rolls currently loaded.
func (m HistoryModel) Rolls() []storage.RollRecord {
	return m.rolls
}

// loadRolls loads the rolls of the current device.
func (m *HistoryModel) loadRolls() {
	rolls, err := m.store.RecentRolls(m.CurrentDevice(), maxHistoryRolls)
	if err != nil {
		m.loadErr = err
		m.rolls = nil
	} else {
		m.rolls = rolls
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded rolls.
func (m *HistoryModel) updateTableRows() {
	rows := make([]table.Row, len(m.rolls))
	for i, r := range m.rolls {
		rows[i] = table.Row{
			fmt.Sprintf("%d", r.ID),
			fmt.Sprintf("%d", r.Sum()),
			fmt.Sprintf("%d", r.White),
			fmt.Sprintf("%d", r.Red),
			device.EventLabel(r.Variant, r.Event),
			r.Variant.Short(),
			r.Mode.String(),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history browser.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextDevice):
			m.cursor = (m.cursor + 1) % len(m.devices)
			m.loadRolls()
			return m, nil

		case key.Matches(msg, m.keys.PrevDevice):
			m.cursor--
			if m.cursor < 0 {
				m.cursor = len(m.devices) - 1
			}
			m.loadRolls()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history browser.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(centerText("ROLL HISTORY", m.width)))
	b.WriteString("\n\n")

	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(m.renderSummary(), m.width))
	b.WriteString("\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTabs renders one tab per device.
func (m HistoryModel) renderTabs() string {
	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(m.devices))
	for i, id := range m.devices {
		if i == m.cursor {
			tabs[i] = activeTabStyle.Render(id)
		} else {
			tabs[i] = tabStyle.Render(" " + id + " ")
		}
	}

	tabLine := strings.Join(tabs, " ")
	if lipgloss.Width(tabLine) > m.width-4 {
		tabLine = fmt.Sprintf("< %s >", m.CurrentDevice())
	}
	return tabLine
}

// renderSummary renders the aggregate line for the current device.
func (m HistoryModel) renderSummary() string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	sum, ok := m.summaries[m.CurrentDevice()]
	if !ok {
		return style.Render("no rolls")
	}
	return style.Render(fmt.Sprintf("%d rolls, average sum %.2f, last %s",
		sum.Rolls, sum.AvgSum, sum.LastRolled.Format("Jan 02 15:04")))
}

// renderTableContent renders the table or an empty message.
func (m HistoryModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	if m.loadErr != nil {
		return emptyStyle.Render(fmt.Sprintf("Could not load history:\n%v", m.loadErr))
	}
	if len(m.rolls) == 0 {
		return emptyStyle.Render("No rolls recorded yet.\nPress space on the device to roll!")
	}
	return m.table.View()
}

// RunHistory runs the roll history browser.
func RunHistory(store HistoryStore, deviceID string, width, height int) error {
	p := tea.NewProgram(
		NewHistoryModel(store, deviceID, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
