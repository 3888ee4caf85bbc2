package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/checkin/internal/bank"
	"github.com/abhisek/checkin/internal/ui/theme"
)

const wordmark = "C H E C K I N"

// contentWidth returns the uniform inner width used for all sections,
// so the boxes visually align.
func contentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 56 {
		w = 56
	}
	if w < 20 {
		w = 20
	}
	return w
}

// renderTitle returns the wordmark with its tagline.
func renderTitle(cw int, compact bool) string {
	title := lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(theme.Title.Render(wordmark))
	if compact {
		return title
	}
	tagline := lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(theme.Subtitle.Render("an adaptive wellbeing check-in"))
	return title + "\n" + tagline
}

// renderBankCard summarizes the loaded bank in a bordered box.
func renderBankCard(b *bank.Bank, cw int) string {
	nameStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	counts := fmt.Sprintf("%d domains  ·  %d questions  ·  at most %d asked",
		len(b.Domains), len(b.Items), b.Config.MaxItems)

	content := nameStyle.Render(b.Name) + "\n" + dimStyle.Render(counts)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw - 2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(content)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 24

// renderMenuButtons renders each menu item as a fixed-width button.
func renderMenuButtons(items []string, selected int, cw int) string {
	selectedBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.Primary).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Padding(0, 1)

	normalBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	var buttons []string
	for i, label := range items {
		if i == selected {
			buttons = append(buttons, selectedBtn.Render("▸ "+label))
		} else {
			buttons = append(buttons, normalBtn.Render(label))
		}
	}
	block := strings.Join(buttons, "\n")

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(block)
}

// renderSeedLine shows the seed the next check-in will run with.
func renderSeedLine(seed uint64, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(cw).
		Align(lipgloss.Center).
		Render(fmt.Sprintf("seed %d — press s to change", seed))
}

// renderSeedEntry shows the inline seed input field.
func renderSeedEntry(field string, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render("seed: " + field)
}

// renderHomeFrame wraps the home content in a rounded border, centered
// in the available area.
func renderHomeFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).   // account for border chars
		Height(height - 2). // account for border chars
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
