package cat

import (
	"errors"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/checkin/internal/bank"
	"github.com/abhisek/checkin/internal/irt"
)

// Phase represents the session state machine position.
type Phase int

const (
	PhaseCreated          Phase = iota // Constructed, first item not yet offered
	PhaseAwaitingResponse              // An item is pending an answer
	PhaseFinished                      // Terminal; results frozen
)

// Response is one ordered log entry of the session.
type Response struct {
	ItemID   string
	Domain   string
	Response int
	At       time.Time
}

// Session runs one adaptive check-in from first item to results. It is
// a plain value owned by a single caller; all mutation goes through
// Answer, RollbackLast and Finish. Collaborators treat it as opaque
// beyond its exported operations.
type Session struct {
	// ID names the session in logs and exports.
	ID string

	bank        *bank.Bank
	constraints *bank.Constraints
	norms       NormProvider
	selector    Selector

	// seed reproduces every tie-break and bootstrap draw; stored so a
	// session can replay itself exactly.
	seed uint64
	rng  *rand.Rand
	now  func() time.Time

	phase     Phase
	theta     []float64
	sigma     Covariance
	responses []Response

	remaining    []string
	administered map[string]bool
	counts       []int
	pending      string

	stopReason string
	results    *Results
}

// New builds a session over a validated bank: zeroed ability vector,
// prior covariance copy, full remaining pool, and the first item
// selected. The seed drives all session randomness and is retained for
// deterministic replay. norms may be nil; results then fall back to
// normal-curve percentiles and carry no severity labels.
func New(b *bank.Bank, cons *bank.Constraints, norms NormProvider, seed uint64) (*Session, error) {
	if b == nil {
		return nil, errors.New("nil bank")
	}
	s := &Session{
		ID:           uuid.NewString(),
		bank:         b,
		constraints:  cons,
		norms:        norms,
		selector:     AOptimalSelector{},
		seed:         seed,
		rng:          rand.New(rand.NewPCG(seed, seed)),
		now:          time.Now,
		phase:        PhaseCreated,
		theta:        make([]float64, len(b.Domains)),
		sigma:        newCovariance(b.Prior),
		remaining:    b.ItemIDs(),
		administered: make(map[string]bool, len(b.Items)),
		counts:       make([]int, len(b.Domains)),
	}

	id, ok := s.selector.Next(s)
	if !ok {
		return nil, errors.New("no selectable items at session start")
	}
	s.pending = id
	s.phase = PhaseAwaitingResponse
	return s, nil
}

// CurrentItem returns the pending item, selecting one first if none is
// pending. Calling it repeatedly without answering returns the same
// item.
func (s *Session) CurrentItem() (*bank.Item, error) {
	if s.phase == PhaseFinished {
		return nil, ErrSessionFinished
	}
	if s.pending == "" {
		id, ok := s.selector.Next(s)
		if !ok {
			s.finishWith(StopBankExhausted)
			return nil, ErrSessionFinished
		}
		s.pending = id
		s.phase = PhaseAwaitingResponse
	}
	return s.bank.Item(s.pending)
}

// Answer records the response to the pending item, updates the
// posterior and ability estimate, and either selects the next item or
// finishes the session. The returned warning is non-nil when the raw
// response index had to be clamped into the item's category range.
func (s *Session) Answer(itemID string, response int) (*ResponseClamped, error) {
	if s.phase == PhaseFinished {
		return nil, ErrSessionFinished
	}
	if s.pending == "" {
		if _, err := s.CurrentItem(); err != nil {
			return nil, err
		}
	}
	if itemID != s.pending {
		return nil, &ErrWrongItem{Got: itemID, Want: s.pending}
	}
	return s.answerAt(itemID, response, s.now())
}

// answerAt is the replay-capable core of Answer: it trusts the item ID
// and carries an explicit timestamp so rollback reproduces the original
// log exactly.
func (s *Session) answerAt(itemID string, response int, at time.Time) (*ResponseClamped, error) {
	it, err := s.bank.Item(itemID)
	if err != nil {
		return nil, err
	}
	d, ok := s.bank.DomainIndex(it.Domain)
	if !ok {
		return nil, errors.New("item domain missing from bank: " + it.Domain)
	}

	var warn *ResponseClamped
	clamped := irt.ClampCategory(response, it.Categories)
	if clamped != response {
		warn = &ResponseClamped{ItemID: itemID, Raw: response, Clamped: clamped}
	}

	s.responses = append(s.responses, Response{ItemID: itemID, Domain: it.Domain, Response: clamped, At: at})
	s.removeRemaining(itemID)
	s.administered[itemID] = true
	s.counts[d]++
	s.pending = ""

	// Posterior first at the pre-update estimate, then the full MAP
	// re-estimate over the whole log.
	s.sigma.Absorb(d, irt.Information(s.theta[d], it.Discrimination, it.Thresholds))
	estimateMAP(s.bank, s.responses, s.theta)

	anyEligible := len(s.eligibleItems()) > 0
	if reason, stop := s.stopDecision(anyEligible); stop {
		s.finishWith(reason)
		return warn, nil
	}

	id, ok := s.selector.Next(s)
	if !ok {
		s.finishWith(StopBankExhausted)
		return warn, nil
	}
	s.pending = id
	return warn, nil
}

// RollbackLast undoes the most recent answer by rebuilding the session
// from its prior and replaying all but the last log entry with the
// original timestamps and seed. The rank-one covariance update has no
// cheap exact inverse once accumulated in floating point; full replay
// is O(n) and exact.
func (s *Session) RollbackLast() error {
	if len(s.responses) == 0 {
		return ErrNothingToRollback
	}
	replay := s.responses[:len(s.responses)-1]

	fresh, err := New(s.bank, s.constraints, s.norms, s.seed)
	if err != nil {
		return err
	}
	fresh.ID = s.ID
	fresh.now = s.now
	fresh.selector = s.selector
	for _, r := range replay {
		if _, err := fresh.answerAt(r.ItemID, r.Response, r.At); err != nil {
			return err
		}
	}
	*s = *fresh
	return nil
}

// Finish freezes the session and returns its results. The first call
// on a live session records the supplied reason, defaulting to aborted;
// every later call returns the same Results value and ignores the
// argument.
func (s *Session) Finish(reason string) *Results {
	if s.phase != PhaseFinished {
		if reason == "" {
			reason = StopAborted
		}
		s.finishWith(reason)
	}
	return s.results
}

func (s *Session) finishWith(reason string) {
	s.stopReason = reason
	s.pending = ""
	s.phase = PhaseFinished
	s.results = s.buildResults()
}

// GlobalSE is the root mean square of all per-domain standard errors.
func (s *Session) GlobalSE() float64 {
	return rmsOf(s.sigma.StandardErrors())
}

// Phase returns the state machine position.
func (s *Session) Phase() Phase { return s.phase }

// Finished reports whether the session reached its terminal state.
func (s *Session) Finished() bool { return s.phase == PhaseFinished }

// StopReason returns the recorded termination reason, empty while live.
func (s *Session) StopReason() string { return s.stopReason }

// Administered returns how many items have been answered.
func (s *Session) Administered() int { return len(s.responses) }

// Seed returns the seed driving this session's randomness.
func (s *Session) Seed() uint64 { return s.seed }

// Theta returns a copy of the current ability estimates in bank domain
// order.
func (s *Session) Theta() []float64 {
	out := make([]float64, len(s.theta))
	copy(out, s.theta)
	return out
}

// StandardErrors returns the current per-domain standard errors.
func (s *Session) StandardErrors() []float64 {
	return s.sigma.StandardErrors()
}

// Covariance returns a copy of the current posterior covariance.
func (s *Session) Covariance() Covariance {
	return s.sigma.Clone()
}

// Responses returns a copy of the ordered response log.
func (s *Session) Responses() []Response {
	out := make([]Response, len(s.responses))
	copy(out, s.responses)
	return out
}

// Bank returns the bank this session runs over.
func (s *Session) Bank() *bank.Bank { return s.bank }

func (s *Session) removeRemaining(id string) {
	for i, r := range s.remaining {
		if r == id {
			s.remaining = append(s.remaining[:i], s.remaining[i+1:]...)
			return
		}
	}
}
