package tui

import "github.com/mmcdole/tiffin/internal/controller"

// Message types for the TUI

// ListingFetchedMsg carries a finished listing fetch back to the UI loop
type ListingFetchedMsg struct {
	Result controller.FetchResult
}

// TickMsg drives the spinner and periodic re-renders
type TickMsg struct{}

// ConnectivityCheckedMsg signals that the probe refreshed its answer
type ConnectivityCheckedMsg struct {
	Online bool
}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}

// ClearStatusMsg clears the status bar message set with sequence Seq
type ClearStatusMsg struct {
	Seq int
}
