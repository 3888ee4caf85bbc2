package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/checkin/internal/ui/theme"
)

// ScalePicker selects one category on an ordinal response scale. The
// labels run from the lowest category to the highest; Selected is the
// zero-based category index.
type ScalePicker struct {
	Prompt   string
	Labels   []string
	Selected int
}

// NewScalePicker creates a picker positioned on the first category.
func NewScalePicker(prompt string, labels []string) ScalePicker {
	return ScalePicker{
		Prompt: prompt,
		Labels: labels,
	}
}

// Init returns nil.
func (p ScalePicker) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation. Digit keys jump straight to that
// category; arrows and j/k step.
func (p ScalePicker) Update(msg tea.Msg) (ScalePicker, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if p.Selected > 0 {
			p.Selected--
		}
	case "down", "j":
		if p.Selected < len(p.Labels)-1 {
			p.Selected++
		}
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < len(p.Labels) {
				p.Selected = i
			}
		}
	}

	return p, nil
}

// View renders the prompt and the numbered scale.
func (p ScalePicker) View() string {
	var s string
	if p.Prompt != "" {
		s = lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(p.Prompt) + "\n\n"
	}

	for i, label := range p.Labels {
		prefix := "  "
		if i == p.Selected {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, label)

		if i == p.Selected {
			s += theme.Selected.Render(line) + "\n"
		} else {
			s += theme.Unselected.Render(line) + "\n"
		}
	}

	return s
}

// Choice returns the selected zero-based category index.
func (p ScalePicker) Choice() int {
	return p.Selected
}
