// Package status renders the bottom bar shared by the dashboard views.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/custodia-labs/devsync-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/devsync-cli/internal/adapters/driving/tui/styles"
)

// State selects what the left side of the bar shows.
type State string

// Bar states.
const (
	StateReady   State = "ready"
	StateLoading State = "loading"
	StateError   State = "error"
	StateList    State = "list"
)

// Bar shows the view state on the left and key hints on the right.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	help    help.Model
	state   State
	message string
	count   int
	noun    string
	extra   []key.Binding
	width   int
}

// NewBar creates a bar. Nil arguments fall back to the defaults.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	h := help.New()
	h.ShortSeparator = " | "
	h.Styles.ShortKey = s.Muted.Bold(true)
	h.Styles.ShortDesc = s.Muted
	h.Styles.ShortSeparator = s.Muted
	h.Styles.Ellipsis = s.Muted

	return &Bar{
		styles: s,
		keymap: km,
		help:   h,
		state:  StateReady,
		noun:   "items",
		width:  80,
	}
}

func (s *Bar) status() string {
	switch s.state {
	case StateLoading:
		return s.styles.Muted.Render(s.messageOr("Loading..."))
	case StateError:
		if s.message == "" {
			return s.styles.Error.Render("Error")
		}
		return s.styles.Error.Render("Error: " + s.message)
	case StateList:
		return s.styles.Normal.Render(fmt.Sprintf("%d %s", s.count, s.noun))
	}
	if s.message != "" {
		return s.styles.Success.Render(s.message)
	}
	return s.styles.Muted.Render("Ready")
}

func (s *Bar) messageOr(fallback string) string {
	if s.message != "" {
		return s.message
	}
	return fallback
}

func (s *Bar) bindings() []key.Binding {
	base := s.keymap.ShortHelp()
	if s.state == StateList {
		base = s.keymap.ListHelp()
	}
	return append(append([]key.Binding(nil), base...), s.extra...)
}

// View renders the bar on a single line at its current width. Hints that do
// not fit are cut with an ellipsis.
func (s *Bar) View() string {
	style := s.styles.StatusBar
	inner := s.width - style.GetHorizontalFrameSize()
	left := s.status()
	if lipgloss.Width(left) > inner {
		left = ansi.Truncate(left, max(inner, 0), "…")
	}

	s.help.Width = inner - lipgloss.Width(left) - 1
	if s.help.Width < 1 {
		s.help.Width = 1
	}
	// help keeps an item it cannot replace with an ellipsis, so drop
	// trailing bindings until the hints fit.
	bindings := s.bindings()
	right := s.help.ShortHelpView(bindings)
	for len(bindings) > 0 && lipgloss.Width(right) > s.help.Width {
		bindings = bindings[:len(bindings)-1]
		right = s.help.ShortHelpView(bindings)
	}

	gap := max(inner-lipgloss.Width(left)-lipgloss.Width(right), 0)
	if right != "" && gap < 1 {
		gap = 1
	}
	return style.Width(s.width).Render(left + strings.Repeat(" ", gap) + right)
}

// SetState switches the bar state.
func (s *Bar) SetState(state State) { s.state = state }

// State returns the bar state.
func (s *Bar) State() State { return s.state }

// SetMessage sets the text shown for the ready, loading and error states.
func (s *Bar) SetMessage(message string) { s.message = message }

// Message returns the current message.
func (s *Bar) Message() string { return s.message }

// SetCount shows "count noun" and switches to StateList.
func (s *Bar) SetCount(count int, noun string) {
	s.state = StateList
	s.count = count
	s.noun = noun
}

// Count returns the item count.
func (s *Bar) Count() int { return s.count }

// SetExtraHints appends view-specific bindings to the standard hints.
func (s *Bar) SetExtraHints(bindings ...key.Binding) { s.extra = bindings }

// SetWidth sets the rendered width.
func (s *Bar) SetWidth(width int) { s.width = width }

// Width returns the rendered width.
func (s *Bar) Width() int { return s.width }

// Clear returns the bar to the ready state.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
	s.count = 0
	s.extra = nil
}
