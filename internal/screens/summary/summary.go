package summary

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/checkin/internal/cat"
	"github.com/abhisek/checkin/internal/norms"
	"github.com/abhisek/checkin/internal/router"
	"github.com/abhisek/checkin/internal/screen"
	"github.com/abhisek/checkin/internal/ui/components"
	"github.com/abhisek/checkin/internal/ui/layout"
	"github.com/abhisek/checkin/internal/ui/theme"
)

// SummaryScreen displays the scored results of a finished check-in.
type SummaryScreen struct {
	results *cat.Results
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(results *cat.Results) *SummaryScreen {
	return &SummaryScreen{results: results}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Results"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Home"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	res := s.results
	if res == nil {
		return ""
	}

	var b strings.Builder

	// Title.
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Check-in complete"))
	b.WriteString("\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(stopReasonText(res.StopReason)))
	b.WriteString("\n\n")

	// Stats line.
	statsLine := fmt.Sprintf("Questions: %d        Precision: ±%.2f",
		res.TotalItems, res.GlobalSE)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(statsLine))
	b.WriteString("\n\n")

	// Domains divider.
	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("How you scored")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	// Per-domain results.
	for _, dr := range res.Domains {
		bar := components.ProgressBar{
			Percent: dr.Percentile / 100,
			Width:   16,
		}

		sevStyle := lipgloss.NewStyle().Foreground(severityColor(dr.Severity))
		line := fmt.Sprintf("  %-18s %s  T %5.1f  %3.0fth  %s",
			displayDomain(dr.Domain),
			bar.View(),
			dr.TScore,
			dr.Percentile,
			sevStyle.Render(fmt.Sprintf("%-8s", dr.Severity)),
		)

		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Text).Render(line)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Scores compare to general-population norms; they are not a diagnosis."))

	return b.String()
}

// stopReasonText humanizes the engine's termination reason.
func stopReasonText(reason string) string {
	switch reason {
	case cat.StopMaxItems:
		return "Question limit reached"
	case cat.StopPrecisionAll:
		return "Every area measured precisely"
	case cat.StopPrecisionGroup:
		return "Core areas measured precisely"
	case cat.StopBankExhausted:
		return "No further questions to ask"
	case cat.StopAborted:
		return "Ended early — partial results"
	default:
		return reason
	}
}

// displayDomain turns a snake_case domain name into display form.
func displayDomain(name string) string {
	return strings.ReplaceAll(name, "_", " ")
}

// severityColor returns the theme color for a severity band.
func severityColor(sev string) color.Color {
	switch sev {
	case norms.SeverityNone:
		return theme.SeverityNone
	case norms.SeverityMild:
		return theme.SeverityMild
	case norms.SeverityModerate:
		return theme.SeverityModerate
	case norms.SeveritySevere:
		return theme.SeveritySevere
	default:
		return theme.TextDim
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
