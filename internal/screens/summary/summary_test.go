package summary

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/checkin/internal/cat"
	"github.com/abhisek/checkin/internal/norms"
)

func testResults() *cat.Results {
	return &cat.Results{
		TotalItems: 9,
		StopReason: cat.StopPrecisionGroup,
		GlobalSE:   0.31,
		Domains: []cat.DomainResult{
			{Domain: "depression", Theta: 0.74, SE: 0.29, TScore: 57.4, Percentile: 77, Severity: norms.SeverityMild},
			{Domain: "anxiety", Theta: -0.12, SE: 0.33, TScore: 48.8, Percentile: 45, Severity: norms.SeverityNone},
			{Domain: "sleep_disturbance", Theta: 1.62, SE: 0.38, TScore: 66.2, Percentile: 95, Severity: norms.SeveritySevere},
		},
		Items: []cat.AdministeredItem{
			{ItemID: "dep_worthless", Domain: "depression", Stem: "I felt worthless", Response: 2},
		},
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testResults())
	if s.Title() != "Results" {
		t.Errorf("Title = %q, want %q", s.Title(), "Results")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testResults())
	view := s.View(80, 24)
	if view == "" {
		t.Error("expected non-empty summary view")
	}
}

func TestSummaryScreen_Navigation_Enter(t *testing.T) {
	s := New(testResults())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Error("expected a command on Enter (pop)")
	}
}

func TestSummaryScreen_Navigation_Esc(t *testing.T) {
	s := New(testResults())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Error("expected a command on Esc (pop)")
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	s := New(testResults())
	hints := s.KeyHints()
	if len(hints) != 2 {
		t.Errorf("KeyHints length = %d, want 2", len(hints))
	}
}
