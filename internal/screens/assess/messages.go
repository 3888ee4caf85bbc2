package assess

import "github.com/abhisek/checkin/internal/cat"

// sessionReadyMsg is sent when the adaptive session has been built and
// its first question selected.
type sessionReadyMsg struct {
	Session *cat.Session
	Err     error
}
