package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/catan-dice/internal/core"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeyMapperMapKey(t *testing.T) {
	mainClick := core.Press{Button: core.ButtonMain, Gesture: core.GestureClick}
	mainLong := core.Press{Button: core.ButtonMain, Gesture: core.GestureLongPress}
	menuClick := core.Press{Button: core.ButtonMenu, Gesture: core.GestureClick}
	menuLong := core.Press{Button: core.ButtonMenu, Gesture: core.GestureLongPress}

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		press  core.Press
		ok     bool
		isQuit bool
	}{
		{"space rolls", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, mainClick, true, false},
		{"enter rolls", tea.KeyMsg{Type: tea.KeyEnter}, mainClick, true, false},
		{"s holds main", runeKey("s"), mainLong, true, false},
		{"m clicks menu", runeKey("m"), menuClick, true, false},
		{"tab clicks menu", tea.KeyMsg{Type: tea.KeyTab}, menuClick, true, false},
		{"x holds menu", runeKey("x"), menuLong, true, false},
		{"q quits", runeKey("q"), core.Press{}, false, true},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, core.Press{}, false, true},
		{"unbound key", runeKey("z"), core.Press{}, false, false},
	}

	km := NewKeyMapper()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			press, ok, isQuit := km.MapKey(tc.msg)
			if press != tc.press || ok != tc.ok || isQuit != tc.isQuit {
				t.Errorf("MapKey(%q) = %+v, %v, %v; expected %+v, %v, %v",
					tc.msg.String(), press, ok, isQuit, tc.press, tc.ok, tc.isQuit)
			}
		})
	}
}

func TestKeyMapHelpCoversButtons(t *testing.T) {
	keys := DefaultKeyMap()
	total := 0
	for _, col := range keys.FullHelp() {
		total += len(col)
	}
	if total != 6 {
		t.Errorf("FullHelp lists %d bindings, expected 6", total)
	}
	if len(keys.ShortHelp()) == 0 {
		t.Error("ShortHelp is empty")
	}
}
