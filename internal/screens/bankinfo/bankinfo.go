package bankinfo

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/checkin/internal/bank"
	"github.com/abhisek/checkin/internal/router"
	"github.com/abhisek/checkin/internal/screen"
	"github.com/abhisek/checkin/internal/ui/layout"
	"github.com/abhisek/checkin/internal/ui/theme"
)

type rowKind int

const (
	rowDomainHeader rowKind = iota
	rowItem
)

type row struct {
	kind   rowKind
	domain string
	item   *bank.Item
}

// BankScreen lists every question in the loaded bank, grouped by domain.
type BankScreen struct {
	bank        *bank.Bank
	constraints *bank.Constraints

	rows         []row
	cursor       int
	scrollOffset int
}

var _ screen.Screen = (*BankScreen)(nil)
var _ screen.KeyHintProvider = (*BankScreen)(nil)

// New creates a BankScreen over a validated bank.
func New(b *bank.Bank, cons *bank.Constraints) *BankScreen {
	var rows []row
	for _, d := range b.Domains {
		rows = append(rows, row{kind: rowDomainHeader, domain: d.Name})
		for _, id := range b.DomainItems(d.Name) {
			it, err := b.Item(id)
			if err != nil {
				continue
			}
			rows = append(rows, row{kind: rowItem, domain: d.Name, item: it})
		}
	}

	s := &BankScreen{bank: b, constraints: cons, rows: rows}

	// Set cursor to first item row
	for i, r := range s.rows {
		if r.kind == rowItem {
			s.cursor = i
			break
		}
	}

	return s
}

func (s *BankScreen) Init() tea.Cmd {
	return nil
}

func (s *BankScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			s.moveCursor(-1)
		case "down", "j":
			s.moveCursor(1)
		case "tab":
			s.nextDomain()
		case "shift+tab":
			s.prevDomain()
		case "enter":
			return s, s.selectItem()
		case "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *BankScreen) View(width, height int) string {
	if len(s.rows) == 0 {
		return ""
	}

	// Ensure cursor is visible within the scroll window
	s.adjustScroll(height)

	var lines []string
	visible := 0
	for i, r := range s.rows {
		if i < s.scrollOffset {
			continue
		}
		if visible >= height {
			break
		}

		switch r.kind {
		case rowDomainHeader:
			lines = append(lines, s.renderDomainHeader(r.domain, width))
		case rowItem:
			lines = append(lines, s.renderItemRow(r, i == s.cursor, width))
		}
		visible++
	}

	return strings.Join(lines, "\n")
}

func (s *BankScreen) Title() string {
	return "Item Bank"
}

// KeyHints returns the key binding hints for the footer.
func (s *BankScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Tab", Description: "Domain"},
		{Key: "Enter", Description: "Details"},
		{Key: "Esc", Description: "Back"},
	}
}

// moveCursor moves the cursor by delta, skipping domain headers.
func (s *BankScreen) moveCursor(delta int) {
	next := s.cursor + delta
	for next >= 0 && next < len(s.rows) {
		if s.rows[next].kind == rowItem {
			s.cursor = next
			return
		}
		next += delta
	}
}

// nextDomain jumps the cursor to the first item of the next domain.
func (s *BankScreen) nextDomain() {
	current := s.rows[s.cursor].domain
	for i := s.cursor + 1; i < len(s.rows); i++ {
		if s.rows[i].kind == rowItem && s.rows[i].domain != current {
			s.cursor = i
			return
		}
	}
}

// prevDomain jumps the cursor to the first item of the previous domain.
func (s *BankScreen) prevDomain() {
	current := s.rows[s.cursor].domain

	// Find the end of the previous domain
	prevStart := -1
	var prev string
	for i := s.cursor - 1; i >= 0; i-- {
		if s.rows[i].kind == rowItem && s.rows[i].domain != current {
			prev = s.rows[i].domain
			prevStart = i
			break
		}
	}
	if prevStart < 0 {
		return
	}

	// Go to the first item of that domain
	for i := prevStart; i >= 0; i-- {
		if s.rows[i].kind != rowItem || s.rows[i].domain != prev {
			s.cursor = i + 1
			return
		}
	}
	s.cursor = 0
	if s.rows[0].kind != rowItem {
		s.moveCursor(1)
	}
}

// adjustScroll ensures the cursor is visible within the viewport.
func (s *BankScreen) adjustScroll(height int) {
	if height <= 0 {
		return
	}
	// Also show the domain header above the cursor if possible
	headerRow := s.cursor
	for headerRow > 0 && s.rows[headerRow-1].kind == rowDomainHeader {
		headerRow--
	}

	if headerRow < s.scrollOffset {
		s.scrollOffset = headerRow
	}
	if s.cursor >= s.scrollOffset+height {
		s.scrollOffset = s.cursor - height + 1
	}
}

// selectItem handles enter on the current item.
func (s *BankScreen) selectItem() tea.Cmd {
	r := s.rows[s.cursor]
	if r.kind != rowItem || r.item == nil {
		return nil
	}

	detail := newItemDetail(s.bank, s.constraints, r.item)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: detail}
	}
}

// renderDomainHeader renders a domain section header with its
// scoring parameters.
func (s *BankScreen) renderDomainHeader(name string, width int) string {
	idx, ok := s.bank.DomainIndex(name)
	meta := ""
	if ok {
		d := s.bank.Domains[idx]
		meta = fmt.Sprintf("  weight %.1f · min %d · %d questions",
			d.Weight, d.MinItems, len(s.bank.DomainItems(name)))
	}

	header := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(strings.ToUpper(name))
	dim := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(meta)

	return lipgloss.NewStyle().
		Width(width).
		Padding(1, 0, 0, 2).
		Render(header + dim)
}

// renderItemRow renders a single item row.
func (s *BankScreen) renderItemRow(r row, selected bool, width int) string {
	if r.item == nil {
		return ""
	}
	it := r.item

	// Calculate column widths
	padding := 4 // left indent
	idWidth := 10
	paramWidth := 18
	spacing := 4
	stemWidth := width - padding - idWidth - paramWidth - spacing
	if stemWidth < 12 {
		stemWidth = 12
	}

	// Truncate stem if needed
	stem := it.Stem
	if len(stem) > stemWidth {
		stem = stem[:stemWidth-1] + "…"
	}

	reversed := " "
	if it.Reversed {
		reversed = "R"
	}
	params := fmt.Sprintf("a=%.2f  K=%d  %s", it.Discrimination, it.Categories, reversed)

	var idStyle, stemStyle, paramStyle lipgloss.Style
	if selected {
		idStyle = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		stemStyle = lipgloss.NewStyle().Foreground(theme.Primary)
		paramStyle = lipgloss.NewStyle().Foreground(theme.Primary)
	} else {
		idStyle = lipgloss.NewStyle().Foreground(theme.Text)
		stemStyle = lipgloss.NewStyle().Foreground(theme.TextDim)
		paramStyle = lipgloss.NewStyle().Foreground(theme.TextDim)
	}

	cursor := "  "
	if selected {
		cursor = "▸ "
	}

	idPadded := fmt.Sprintf("%-*s", idWidth, it.ID)
	stemPadded := fmt.Sprintf("%-*s", stemWidth, stem)
	return fmt.Sprintf("  %s%s  %s  %s",
		cursor,
		idStyle.Render(idPadded),
		stemStyle.Render(stemPadded),
		paramStyle.Render(params),
	)
}
