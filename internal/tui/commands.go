package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/tiffin/internal/controller"
)

// Command factories for async operations

// FetchListingCmd runs a fetch started by Controller.StartFetch off the UI
// loop; the result is applied in Update.
func FetchListingCmd(fetch func() controller.FetchResult) tea.Cmd {
	return func() tea.Msg {
		return ListingFetchedMsg{Result: fetch()}
	}
}

// TickCmd returns a command that sends a tick after a delay
func TickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}

// Refresher re-checks connectivity; satisfied by *connectivity.Probe
type Refresher interface {
	Refresh() bool
}

// CheckConnectivityCmd refreshes the probe after a delay
func CheckConnectivityCmd(r Refresher, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ConnectivityCheckedMsg{Online: r.Refresh()}
	})
}

// ClearStatusCmd clears status seq after a delay
func ClearStatusCmd(seq int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{Seq: seq}
	})
}
