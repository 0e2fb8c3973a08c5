// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/devsync-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/devsync-cli/internal/adapters/driving/tui/styles"
)

// Item is one row of a List.
type Item struct {
	// Title is the main text.
	Title string

	// Meta is shown muted after the title, e.g. a key or a count.
	Meta string

	// Detail is an optional second line.
	Detail string
}

// List displays items in a navigable, scrolling list.
type List struct {
	title    string
	items    []Item
	selected int
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	width    int
	height   int
}

// New creates a new list component.
func New(s *styles.Styles, title string) *List {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &List{
		title:  title,
		styles: s,
		keymap: keymap.DefaultKeyMap(),
		width:  80,
		height: 20,
	}
}

// Init initialises the list.
func (l *List) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *List) Update(msg tea.Msg) (*List, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		k := msg.String()
		switch {
		case keymap.Matches(k, l.keymap.Up):
			l.MoveUp()
		case keymap.Matches(k, l.keymap.Down):
			l.MoveDown()
		case keymap.Matches(k, l.keymap.PageUp):
			l.selected = max(0, l.selected-l.visibleCount())
		case keymap.Matches(k, l.keymap.PageDown):
			l.selected = min(len(l.items)-1, l.selected+l.visibleCount())
			l.selected = max(0, l.selected)
		}
	}
	return l, nil
}

// View renders the list.
func (l *List) View() string {
	lines := make([]string, 0, len(l.items)*2+2)

	header := l.styles.Subtitle.Render(fmt.Sprintf("%s (%d)", l.title, len(l.items)))
	lines = append(lines, header, "")

	if len(l.items) == 0 {
		lines = append(lines, l.styles.Muted.Render("Nothing here"))
		return strings.Join(lines, "\n")
	}

	visibleCount := l.visibleCount()
	start := 0
	if l.selected >= visibleCount {
		start = l.selected - visibleCount + 1
	}
	end := min(start+visibleCount, len(l.items))

	for i := start; i < end; i++ {
		lines = append(lines, l.renderItem(i, &l.items[i]))
	}

	return strings.Join(lines, "\n")
}

// visibleCount is the number of items that fit, counting two lines per item.
func (l *List) visibleCount() int {
	return max(1, (l.height-4)/2)
}

// renderItem formats a single row.
func (l *List) renderItem(index int, item *Item) string {
	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	maxTitleLen := max(10, l.width-len(item.Meta)-8)
	title := truncate(item.Title, maxTitleLen)

	var line string
	if index == l.selected {
		line = l.styles.Selected.Render(indicator+title) + " " + l.styles.Muted.Render(item.Meta)
	} else {
		line = l.styles.Normal.Render(indicator+title) + " " + l.styles.Muted.Render(item.Meta)
	}

	if item.Detail != "" {
		line += "\n" + l.styles.Muted.Render("    "+truncate(item.Detail, max(20, l.width-6)))
	}
	return line
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-3]) + "..."
}

// SetItems replaces the items and resets the selection.
func (l *List) SetItems(items []Item) {
	l.items = items
	l.selected = 0
}

// Items returns the current items.
func (l *List) Items() []Item {
	return l.items
}

// SetTitle sets the header text.
func (l *List) SetTitle(title string) {
	l.title = title
}

// Selected returns the index of the selected item.
func (l *List) Selected() int {
	return l.selected
}

// SetSelected sets the selected index.
func (l *List) SetSelected(index int) {
	if index >= 0 && index < len(l.items) {
		l.selected = index
	}
}

// MoveUp moves selection up.
func (l *List) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *List) MoveDown() {
	if l.selected < len(l.items)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *List) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of items.
func (l *List) Count() int {
	return len(l.items)
}

// IsEmpty returns whether the list is empty.
func (l *List) IsEmpty() bool {
	return len(l.items) == 0
}
