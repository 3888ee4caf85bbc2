package cat

import (
	"errors"
	"fmt"
)

// ErrSingularMatrix indicates a covariance inversion hit a pivot too
// small to divide by. Inversion is a reporting utility, never part of
// the per-answer update path, so this always surfaces loudly.
type ErrSingularMatrix struct {
	Pivot int
}

func (e *ErrSingularMatrix) Error() string {
	return fmt.Sprintf("matrix numerically singular at pivot %d", e.Pivot)
}

// ErrWrongItem indicates an answer arrived for an item other than the
// pending one.
type ErrWrongItem struct {
	Got  string
	Want string
}

func (e *ErrWrongItem) Error() string {
	return fmt.Sprintf("answer for item %q but %q is pending", e.Got, e.Want)
}

// ErrSessionFinished indicates an operation that requires a live
// session was called after termination.
var ErrSessionFinished = errors.New("session already finished")

// ErrNothingToRollback indicates RollbackLast was called on a session
// with an empty response log.
var ErrNothingToRollback = errors.New("no responses to roll back")

// ResponseClamped reports that a raw response index fell outside the
// item's category range and was clamped before scoring. It is a
// warning, not a failure: Answer proceeds with the clamped value.
type ResponseClamped struct {
	ItemID  string
	Raw     int
	Clamped int
}

func (w *ResponseClamped) String() string {
	return fmt.Sprintf("response %d for item %q clamped to %d", w.Raw, w.ItemID, w.Clamped)
}
