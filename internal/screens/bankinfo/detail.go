package bankinfo

import (
	"fmt"
	"math"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/checkin/internal/bank"
	"github.com/abhisek/checkin/internal/router"
	"github.com/abhisek/checkin/internal/screen"
	"github.com/abhisek/checkin/internal/ui/layout"
	"github.com/abhisek/checkin/internal/ui/theme"
)

// ItemDetailScreen shows the full calibration of a single question.
type ItemDetailScreen struct {
	bank     *bank.Bank
	item     *bank.Item
	partners []string
}

var _ screen.Screen = (*ItemDetailScreen)(nil)
var _ screen.KeyHintProvider = (*ItemDetailScreen)(nil)

func newItemDetail(b *bank.Bank, cons *bank.Constraints, it *bank.Item) *ItemDetailScreen {
	return &ItemDetailScreen{bank: b, item: it, partners: cons.Partners(it.ID)}
}

func (d *ItemDetailScreen) Init() tea.Cmd { return nil }
func (d *ItemDetailScreen) Title() string { return d.item.ID }

func (d *ItemDetailScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "esc", "q":
			return d, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return d, nil
}

func (d *ItemDetailScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (d *ItemDetailScreen) View(width, height int) string {
	it := d.item
	contentWidth := width - 8
	if contentWidth > 70 {
		contentWidth = 70
	}

	var b strings.Builder

	// Stem.
	b.WriteString(lipgloss.NewStyle().
		Width(contentWidth).
		Foreground(theme.Primary).
		Bold(true).
		PaddingLeft(2).
		Render(it.Stem))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("  %s · %s", it.ID, it.Domain)))
	b.WriteString("\n\n")

	// Calibration.
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	valStyle := lipgloss.NewStyle().Foreground(theme.Text)

	b.WriteString(dimStyle.Render("  Discrimination:  ") + valStyle.Render(fmt.Sprintf("%.3f", it.Discrimination)) + "\n")
	b.WriteString(dimStyle.Render("  Categories:      ") + valStyle.Render(fmt.Sprintf("%d", it.Categories)) + "\n")
	if it.Reversed {
		b.WriteString(dimStyle.Render("  Scored:          ") + valStyle.Render("reverse") + "\n")
	}
	b.WriteString("\n")

	// Thresholds.
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  Thresholds"))
	b.WriteString("\n")
	k := 0
	for _, th := range it.Thresholds {
		if math.IsNaN(th) || math.IsInf(th, 0) {
			continue
		}
		k++
		b.WriteString(dimStyle.Render(fmt.Sprintf("  b%-2d  %+.3f", k, th)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// Response scale.
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  Response Scale"))
	b.WriteString("\n")
	for i, label := range d.bank.ScaleFor(it) {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  %d)  %s", i+1, label)))
		b.WriteString("\n")
	}

	// Exclusions.
	if len(d.partners) > 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Bold(true).
			Render("  Never Paired With"))
		b.WriteString("\n")
		for _, p := range d.partners {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  → %s", p)))
			b.WriteString("\n")
		}
	}

	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top,
		"\n"+b.String())
}
