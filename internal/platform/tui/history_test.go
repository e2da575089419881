package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/catan-dice/internal/dice"
	"github.com/vovakirdan/catan-dice/internal/storage"
)

type fakeHistory struct {
	rolls map[string][]storage.RollRecord
	err   error
}

func (f *fakeHistory) RecentRolls(deviceID string, limit int) ([]storage.RollRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	rolls := f.rolls[deviceID]
	if len(rolls) > limit {
		rolls = rolls[:limit]
	}
	return rolls, nil
}

func (f *fakeHistory) RollSummaries() (map[string]*storage.RollSummary, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string]*storage.RollSummary)
	for id, rolls := range f.rolls {
		total := 0
		for _, r := range rolls {
			total += r.Sum()
		}
		out[id] = &storage.RollSummary{
			DeviceID: id,
			Rolls:    len(rolls),
			AvgSum:   float64(total) / float64(len(rolls)),
		}
	}
	return out, nil
}

func newFakeHistory() *fakeHistory {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return &fakeHistory{rolls: map[string][]storage.RollRecord{
		"local": {
			{ID: 2, DeviceID: "local", Variant: dice.VariantCitiesAndKnights, Mode: dice.ModeRealistic, White: 4, Red: 2, Event: 5, CreatedAt: now},
			{ID: 1, DeviceID: "local", Variant: dice.VariantBase, Mode: dice.ModeRealistic, White: 3, Red: 4, CreatedAt: now},
		},
		"ssh-bob": {
			{ID: 3, DeviceID: "ssh-bob", Variant: dice.VariantTradersAndBarbarians, Mode: dice.ModeEqual, White: 6, Red: 6, Event: 1, CreatedAt: now},
		},
	}}
}

func TestHistoryModelSwitchesDevices(t *testing.T) {
	m := NewHistoryModel(newFakeHistory(), "local", 100, 30)

	if m.CurrentDevice() != "local" || len(m.Rolls()) != 2 {
		t.Fatalf("device %q rolls %d", m.CurrentDevice(), len(m.Rolls()))
	}
	view := m.View()
	if !strings.Contains(view, "castle gold") || !strings.Contains(view, "2 rolls") {
		t.Errorf("view missing roll details:\n%s", view)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(HistoryModel)
	if m.CurrentDevice() != "ssh-bob" || len(m.Rolls()) != 1 {
		t.Errorf("after tab: device %q rolls %d", m.CurrentDevice(), len(m.Rolls()))
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(HistoryModel)
	if m.CurrentDevice() != "local" {
		t.Errorf("after shift+tab: device %q", m.CurrentDevice())
	}
}

func TestHistoryModelUnknownDevice(t *testing.T) {
	m := NewHistoryModel(newFakeHistory(), "fresh", 100, 30)
	if m.CurrentDevice() != "fresh" {
		t.Errorf("current device = %q, expected fresh", m.CurrentDevice())
	}
	if !strings.Contains(m.View(), "No rolls recorded yet.") {
		t.Errorf("expected empty message:\n%s", m.View())
	}
}

func TestHistoryModelLoadError(t *testing.T) {
	store := newFakeHistory()
	store.err = errors.New("database is locked")

	m := NewHistoryModel(store, "local", 100, 30)
	if !strings.Contains(m.View(), "database is locked") {
		t.Errorf("expected load error in view:\n%s", m.View())
	}
}

func TestHistoryModelQuit(t *testing.T) {
	m := NewHistoryModel(newFakeHistory(), "local", 100, 30)
	next, cmd := m.Update(runeKey("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if next.(HistoryModel).View() != "" {
		t.Error("view should be empty after quit")
	}
}
