package cli

import (
	"time"
)

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	// Day currently focused by the calendar views. The dashboard resets
	// this to today on load; command center and month navigate it.
	FocusDay time.Time

	// Terminal dimensions
	Width  int
	Height int
}

// Location returns the configured display timezone.
func (s *SharedState) Location() *time.Location {
	return s.App.Config.Location()
}

// Today returns the current instant in the display timezone.
func (s *SharedState) Today() time.Time {
	return time.Now().In(s.Location())
}

// ContentHeight returns the available height for view content,
// accounting for the header (2 lines: title + separator) and the
// status bar (2 lines: separator + hints).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 4
	if h < 1 {
		return 1
	}
	return h
}
