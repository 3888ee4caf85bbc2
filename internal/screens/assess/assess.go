package assess

import (
	"errors"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/checkin/internal/bank"
	"github.com/abhisek/checkin/internal/cat"
	"github.com/abhisek/checkin/internal/norms"
	"github.com/abhisek/checkin/internal/router"
	"github.com/abhisek/checkin/internal/screen"
	"github.com/abhisek/checkin/internal/screens/summary"
	"github.com/abhisek/checkin/internal/ui/components"
	"github.com/abhisek/checkin/internal/ui/layout"
)

// AssessScreen runs one adaptive check-in: it asks the engine for the
// next question, collects an answer on the response scale, and hands
// off to the summary screen when the session finishes. The probed
// domain is deliberately not shown while answering.
type AssessScreen struct {
	bank        *bank.Bank
	constraints *bank.Constraints
	norms       *norms.Table
	seed        uint64

	session *cat.Session
	item    *bank.Item
	picker  components.ScalePicker

	confirmQuit bool
	notice      string
	errMsg      string
}

var _ screen.Screen = (*AssessScreen)(nil)
var _ screen.KeyHintProvider = (*AssessScreen)(nil)
var _ screen.ProgressReporter = (*AssessScreen)(nil)

// New creates an AssessScreen over a validated bank. The session itself
// is built asynchronously in Init.
func New(b *bank.Bank, cons *bank.Constraints, n *norms.Table, seed uint64) *AssessScreen {
	return &AssessScreen{
		bank:        b,
		constraints: cons,
		norms:       n,
		seed:        seed,
	}
}

func (s *AssessScreen) Init() tea.Cmd {
	b, cons, n, seed := s.bank, s.constraints, s.norms, s.seed
	return func() tea.Msg {
		sess, err := cat.New(b, cons, n, seed)
		return sessionReadyMsg{Session: sess, Err: err}
	}
}

func (s *AssessScreen) Title() string {
	return "Check-In"
}

// Progress reports answered count against the session cap for the
// header indicator.
func (s *AssessScreen) Progress() (int, int) {
	if s.session == nil {
		return 0, 0
	}
	return s.session.Administered(), s.bank.Config.MaxItems
}

func (s *AssessScreen) KeyHints() []layout.KeyHint {
	if s.errMsg != "" {
		return []layout.KeyHint{
			{Key: "any key", Description: "Back"},
		}
	}
	if s.confirmQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "End now"},
			{Key: "N", Description: "Keep going"},
		}
	}
	return []layout.KeyHint{
		{Key: "1-9", Description: "Answer"},
		{Key: "↑↓", Description: "Select"},
		{Key: "Enter", Description: "Submit"},
		{Key: "U", Description: "Take back"},
		{Key: "Esc", Description: "End"},
	}
}

func (s *AssessScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, height, s.errMsg)
	}
	if s.session == nil || s.item == nil {
		return renderLoading(width, height)
	}
	if s.confirmQuit {
		return renderQuitConfirm(width, height)
	}
	return s.renderQuestionView(width, height)
}

func (s *AssessScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionReadyMsg:
		return s.handleReady(msg)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *AssessScreen) handleReady(msg sessionReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	s.session = msg.Session
	return s.advance()
}

func (s *AssessScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	// Error state: any key goes back.
	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.session == nil || s.item == nil {
		return s, nil
	}

	// Quit confirmation dialog.
	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.confirmQuit = false
			return s, s.handOff(cat.StopAborted)
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	switch key {
	case "esc":
		s.confirmQuit = true
		return s, nil
	case "enter":
		return s.submit()
	case "u", "U":
		return s.rollback()
	case "up", "k", "down", "j":
		var cmd tea.Cmd
		s.picker, cmd = s.picker.Update(msg)
		return s, cmd
	}

	// Digit keys jump to that category and submit in one stroke.
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		if i := int(key[0] - '1'); i < len(s.picker.Labels) {
			s.picker.Selected = i
			return s.submit()
		}
	}

	return s, nil
}

// submit records the selected category and moves to the next question
// or to the summary when the engine decides to stop.
func (s *AssessScreen) submit() (screen.Screen, tea.Cmd) {
	warn, err := s.session.Answer(s.item.ID, s.picker.Choice())
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	s.notice = ""
	if warn != nil {
		s.notice = warn.String()
	}
	return s.advance()
}

// rollback withdraws the most recent answer and re-offers its question
// with the withdrawn answer preselected.
func (s *AssessScreen) rollback() (screen.Screen, tea.Cmd) {
	prior := s.session.Responses()
	if err := s.session.RollbackLast(); err != nil {
		if errors.Is(err, cat.ErrNothingToRollback) {
			s.notice = "Nothing to take back yet."
			return s, nil
		}
		s.errMsg = err.Error()
		return s, nil
	}

	s.notice = "Answer withdrawn."
	scr, cmd := s.advance()
	if last := prior[len(prior)-1]; s.item != nil && s.item.ID == last.ItemID {
		s.picker.Selected = last.Response
	}
	return scr, cmd
}

// advance loads the engine's current question, or hands off to the
// summary once the session has finished.
func (s *AssessScreen) advance() (screen.Screen, tea.Cmd) {
	if s.session.Finished() {
		return s, s.handOff("")
	}

	it, err := s.session.CurrentItem()
	if err != nil {
		// Selection can exhaust the pool, finishing the session.
		if s.session.Finished() {
			return s, s.handOff("")
		}
		s.errMsg = err.Error()
		return s, nil
	}

	s.item = it
	s.picker = components.NewScalePicker("", s.bank.ScaleFor(it))
	return s, nil
}

// handOff freezes the session and replaces this screen with the
// summary, so backing out of the summary lands on home.
func (s *AssessScreen) handOff(reason string) tea.Cmd {
	results := s.session.Finish(reason)
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(results)}
	}
}
