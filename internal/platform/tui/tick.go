// Package tui provides the Bubble Tea integration for the dice device.
// It handles the terminal UI loop, key mapping, and roll playback.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger device housekeeping (battery, power save).
type TickMsg time.Time

// FrameMsg advances roll playback by one frame.
type FrameMsg struct{}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 1
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// frameCmd schedules the next roll frame after delay.
func frameCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return FrameMsg{}
	})
}
