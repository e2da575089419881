package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/catan-dice/internal/core"
)

// KeyMap defines the keyboard stand-ins for the device buttons.
type KeyMap struct {
	Roll  key.Binding // Main click
	Stats key.Binding // Main long press
	Menu  key.Binding // Menu click
	Reset key.Binding // Menu long press
	Help  key.Binding
	Quit  key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Roll, k.Menu, k.Stats, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Roll, k.Stats},
		{k.Menu, k.Reset},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Roll: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "roll / select"),
		),
		Stats: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "statistics"),
		),
		Menu: key.NewBinding(
			key.WithKeys("m", "tab"),
			key.WithHelp("m/tab", "menu / next page"),
		),
		Reset: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "reset statistics"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to device button gestures.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys KeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{keys: DefaultKeyMap()}
}

// Keys returns the bindings used by the mapper.
func (km *KeyMapper) Keys() KeyMap {
	return km.keys
}

// MapKey translates a key message to a button press.
// ok is false for keys that are not device buttons.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (press core.Press, ok bool, isQuit bool) {
	switch {
	case key.Matches(msg, km.keys.Quit):
		return core.Press{}, false, true
	case key.Matches(msg, km.keys.Roll):
		return core.Press{Button: core.ButtonMain, Gesture: core.GestureClick}, true, false
	case key.Matches(msg, km.keys.Stats):
		return core.Press{Button: core.ButtonMain, Gesture: core.GestureLongPress}, true, false
	case key.Matches(msg, km.keys.Menu):
		return core.Press{Button: core.ButtonMenu, Gesture: core.GestureClick}, true, false
	case key.Matches(msg, km.keys.Reset):
		return core.Press{Button: core.ButtonMenu, Gesture: core.GestureLongPress}, true, false
	}
	return core.Press{}, false, false
}
