// Package tui provides the Bubble Tea integration for sandfall.
// It handles the terminal UI loop, input mapping, menus and the SSH server.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick. Owner is the id of the
// model that scheduled it; a model drops ticks it does not own.
type TickMsg struct {
	Time  time.Time
	Owner uint64
}

var modelIDs atomic.Uint64

func nextModelID() uint64 {
	return modelIDs.Add(1)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int, owner uint64) tea.Cmd {
	interval := time.Second / time.Duration(max(tickRate, 1))
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Owner: owner}
	})
}
