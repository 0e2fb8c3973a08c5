// Package menu is the dashboard's landing screen.
package menu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/devsync-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/devsync-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/devsync-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/devsync-cli/internal/core/domain"
)

// Item is one entry of the menu. Provider is empty for non-provider
// entries; Quit marks the exit entry.
type Item struct {
	Label    string
	Hint     string
	Provider domain.Provider
	View     messages.ViewType
	Quit     bool
}

// View is the landing menu model.
type View struct {
	styles   *styles.Styles
	keys     *keymap.KeyMap
	items    []Item
	selected int
	width    int
	height   int
	ready    bool
}

func entries(withConfluence bool) []Item {
	items := []Item{
		{Label: "GitHub", Hint: "repositories, issues, pull requests", Provider: domain.ProviderGitHub, View: messages.ViewGitHub},
		{Label: "Jira", Hint: "projects and tickets", Provider: domain.ProviderJira, View: messages.ViewJira},
	}
	if withConfluence {
		items = append(items, Item{
			Label: "Confluence", Hint: "spaces and pages",
			Provider: domain.ProviderConfluence, View: messages.ViewConfluence,
		})
	}
	return append(items,
		Item{Label: "Settings", Hint: "theme, notifications, sound", View: messages.ViewSettings},
		Item{Label: "Help", View: messages.ViewHelp},
		Item{Label: "Quit", Quit: true},
	)
}

// NewView builds the menu. The Confluence entry is only present when
// withConfluence is set.
func NewView(s *styles.Styles, withConfluence bool) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles: s,
		keys:   keymap.DefaultKeyMap(),
		items:  entries(withConfluence),
		width:  80,
		height: 24,
	}
}

// Init implements the bubbletea model contract.
func (v *View) Init() tea.Cmd { return nil }

// Update moves the cursor and activates entries. Digits 1-9 activate the
// matching entry directly.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
	case tea.KeyMsg:
		k := msg.String()
		switch {
		case keymap.Matches(k, v.keys.Up):
			v.move(-1)
		case keymap.Matches(k, v.keys.Down):
			v.move(1)
		case keymap.Matches(k, v.keys.Select):
			return v, v.activate(v.selected)
		case k == "q":
			return v, tea.Quit
		case len(k) == 1 && k[0] >= '1' && k[0] <= '9':
			idx := int(k[0] - '1')
			if idx < len(v.items) {
				v.selected = idx
				return v, v.activate(idx)
			}
		}
	}
	return v, nil
}

func (v *View) move(delta int) {
	next := v.selected + delta
	if next >= 0 && next < len(v.items) {
		v.selected = next
	}
}

func (v *View) activate(idx int) tea.Cmd {
	item := v.items[idx]
	if item.Quit {
		return tea.Quit
	}
	target := item.View
	return func() tea.Msg { return messages.ViewChanged{View: target} }
}

func (v *View) label(i int, item Item) string {
	if i != v.selected {
		return v.styles.Normal.Render(item.Label)
	}
	if item.Provider != "" {
		return v.styles.Accent(item.Provider).Render(item.Label)
	}
	return v.styles.Subtitle.Render(item.Label)
}

// subtitle names the wired providers, e.g. "GitHub and Jira in one place".
func (v *View) subtitle() string {
	var names []string
	for _, item := range v.items {
		if item.Provider != "" {
			names = append(names, item.Label)
		}
	}
	if len(names) > 1 {
		names = append(names[:len(names)-2], names[len(names)-2]+" and "+names[len(names)-1])
	}
	return strings.Join(names, ", ") + " in one place"
}

// View renders the menu.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	lines := []string{
		v.styles.Title.Render("DevSync"),
		"",
		v.styles.Muted.Render(v.subtitle()),
		"",
	}
	for i, item := range v.items {
		cursor := "  "
		if i == v.selected {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%s %s", cursor, v.styles.Muted.Render(fmt.Sprintf("%d", i+1)), v.label(i, item))
		if item.Hint != "" {
			line += "  " + v.styles.Muted.Render(item.Hint)
		}
		lines = append(lines, line)
	}
	lines = append(lines, "", v.styles.Help.Render("[j/k] Navigate  [Enter/1-9] Select  [q] Quit"))

	return strings.Join(lines, "\n")
}

// SetDimensions records the terminal size and marks the view ready.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Selected returns the cursor index.
func (v *View) Selected() int { return v.selected }

// Items returns the menu entries.
func (v *View) Items() []Item { return v.items }
