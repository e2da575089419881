package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/catan-dice/internal/core"
	"github.com/vovakirdan/catan-dice/internal/device"
	"github.com/vovakirdan/catan-dice/internal/storage"
)

// Rows reserved below the device screen for the short and full help.
const (
	shortHelpHeight = 1
	fullHelpHeight  = 3
)

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model for one simulated device.
type Model struct {
	device    *device.Device
	screen    *core.Screen
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	help      help.Model
	quitting  bool
}

// NewDevice creates a device persisted in store. A nil store runs the
// device without persistence.
func NewDevice(store *storage.Store, opts device.Options) *device.Device {
	if store != nil {
		opts.Settings = store
		opts.Stats = store
		opts.Rolls = store
	}
	return device.New(opts)
}

// NewModel creates a new Bubble Tea model for dev.
func NewModel(dev *device.Device, cfg core.RuntimeConfig) Model {
	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		device:    dev,
		screen:    core.NewScreen(cfg.ScreenW, core.Max(cfg.ScreenH-shortHelpHeight, 0)),
		config:    cfg,
		keyMapper: NewKeyMapper(),
		help:      h,
	}
}

// resizeScreen fits the device screen above the help footer.
func (m Model) resizeScreen() {
	rows := shortHelpHeight
	if m.help.ShowAll {
		rows = fullHelpHeight
	}
	m.screen.Resize(m.config.ScreenW, core.Max(m.config.ScreenH-rows, 0))
}

// Device returns the simulated device.
func (m Model) Device() *device.Device {
	return m.device
}

// Init starts the housekeeping tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		m.device.Tick(time.Time(msg))
		return m, tickCmd(m.config.TickRate)

	case FrameMsg:
		if m.device.AdvanceFrame() {
			return m, frameCmd(m.device.FrameDelay())
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keyMapper.Keys().Help) {
		m.help.ShowAll = !m.help.ShowAll
		m.resizeScreen()
		return m, nil
	}
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	press, ok, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}
	if !ok {
		return m, nil
	}

	wasRolling := m.device.View() == device.ViewRolling
	m.device.Press(press)

	// Start playback only for a roll that began with this press.
	if !wasRolling && m.device.View() == device.ViewRolling {
		return m, frameCmd(m.device.FrameDelay())
	}
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.resizeScreen()
	m.help.Width = msg.Width
	return m, nil
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.device.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".catandice", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.device.ID(), timestamp))

	//nolint:errcheck // Best-effort save, device continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.device.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keyMapper.Keys()))
}

// Run starts the Bubble Tea program for dev.
func Run(dev *device.Device, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewModel(dev, cfg),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
