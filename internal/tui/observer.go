package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/tiffin/internal/controller"
)

// StateChange is one view state transition reported by the controller
type StateChange struct {
	From controller.State
	To   controller.State
}

// ChannelObserver adapts controller.Observer to a channel for Bubble Tea.
type ChannelObserver struct {
	controller.NoOpObserver
	ch chan<- StateChange
}

// NewChannelObserver creates a new channel-based observer.
func NewChannelObserver(ch chan<- StateChange) *ChannelObserver {
	return &ChannelObserver{ch: ch}
}

// OnStateChange sends the transition to the channel (non-blocking if full).
func (o *ChannelObserver) OnStateChange(from, to controller.State) {
	select {
	case o.ch <- StateChange{From: from, To: to}:
	default: // Non-blocking if channel full
	}
}

// StateChangedMsg wraps a transition for the update loop
type StateChangedMsg StateChange

// WaitForStateChangeCmd waits for the next transition on ch
func WaitForStateChangeCmd(ch <-chan StateChange) tea.Cmd {
	return func() tea.Msg {
		change, ok := <-ch
		if !ok {
			return nil
		}
		return StateChangedMsg(change)
	}
}
