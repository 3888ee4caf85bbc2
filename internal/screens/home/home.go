package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/checkin/internal/bank"
	"github.com/abhisek/checkin/internal/norms"
	"github.com/abhisek/checkin/internal/router"
	"github.com/abhisek/checkin/internal/screen"
	"github.com/abhisek/checkin/internal/screens/assess"
	"github.com/abhisek/checkin/internal/screens/bankinfo"
	"github.com/abhisek/checkin/internal/ui/components"
	"github.com/abhisek/checkin/internal/ui/layout"
)

// HomeScreen is the main menu: start a check-in, browse the loaded
// bank, or leave. It also owns the session seed, which the user can
// override to reproduce a run exactly.
type HomeScreen struct {
	bank        *bank.Bank
	constraints *bank.Constraints
	norms       *norms.Table
	seed        uint64

	menu        components.Menu
	menuLabels  []string
	seedInput   components.TextInput
	editingSeed bool
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a HomeScreen over a validated bank.
func New(b *bank.Bank, cons *bank.Constraints, n *norms.Table, seed uint64) *HomeScreen {
	h := &HomeScreen{
		bank:        b,
		constraints: cons,
		norms:       n,
		seed:        seed,
	}

	h.menuLabels = []string{"BEGIN CHECK-IN", "ITEM BANK", "EXIT"}
	items := []components.MenuItem{
		{Label: h.menuLabels[0], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: assess.New(h.bank, h.constraints, h.norms, h.seed),
				}
			}
		}},
		{Label: h.menuLabels[1], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: bankinfo.New(h.bank, h.constraints)}
			}
		}},
		{Label: h.menuLabels[2], Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if h.editingSeed {
		return h.updateSeedEntry(msg)
	}

	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "s" {
		h.editingSeed = true
		h.seedInput = components.NewTextInput("session seed", true, 20)
		return h, h.seedInput.Init()
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

// updateSeedEntry routes messages to the seed field until it is applied
// or cancelled. An unparseable or empty value keeps the current seed.
func (h *HomeScreen) updateSeedEntry(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter":
			if v, err := h.seedInput.Uint64Value(); err == nil {
				h.seed = v
			}
			h.editingSeed = false
			return h, nil
		case "esc":
			h.editingSeed = false
			return h, nil
		}
	}

	var cmd tea.Cmd
	h.seedInput, cmd = h.seedInput.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := contentWidth(width)
	compact := layout.IsCompactWidth(width) || layout.IsCompactHeight(height+layout.HeaderHeight+layout.FooterHeight)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	sections = append(sections, renderBankCard(h.bank, cw))
	sections = append(sections, renderMenuButtons(h.menuLabels, h.menu.Selected, cw))

	if h.editingSeed {
		sections = append(sections, renderSeedEntry(h.seedInput.View(), cw))
	} else {
		sections = append(sections, renderSeedLine(h.seed, cw))
	}

	content := strings.Join(sections, "\n\n")
	return renderHomeFrame(content, width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	if h.editingSeed {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Apply seed"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "S", Description: "Seed"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
