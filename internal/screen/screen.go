package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/checkin/internal/ui/layout"
)

// Screen is the contract every application screen satisfies. Screens own
// their key handling, including Esc; the root model only intercepts
// Ctrl+C.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns the updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface screens implement to supply
// their own footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// ProgressReporter is an optional interface screens implement to show
// answered/limit counts in the header.
type ProgressReporter interface {
	Progress() (answered, limit int)
}
