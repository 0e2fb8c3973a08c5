// Package confluence provides the Confluence spaces and pages view for the TUI.
package confluence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/custodia-labs/devsync-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/devsync-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/devsync-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/devsync-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/devsync-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/devsync-cli/internal/core/domain"
	"github.com/custodia-labs/devsync-cli/internal/core/ports/driving"
	"github.com/custodia-labs/devsync-cli/internal/logger"
	"github.com/custodia-labs/devsync-cli/internal/markup"
)

// Mode is the level the view is showing.
type Mode int

const (
	ModeSpaces Mode = iota
	ModePages
	ModePage
)

// View is the Confluence view.
type View struct {
	styles     *styles.Styles
	keymap     *keymap.KeyMap
	confluence driving.ConfluenceService

	spaceList *list.List
	pageList  *list.List
	reader    viewport.Model
	bar       *status.Bar

	spaces  []domain.Space
	pages   []domain.Page
	page    *domain.Page
	space   string
	mode    Mode
	loading bool
	err     error
}

// NewView creates a new Confluence view.
func NewView(s *styles.Styles, confluence driving.ConfluenceService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()

	return &View{
		styles:     s,
		keymap:     km,
		confluence: confluence,
		spaceList:  list.New(s, "Spaces"),
		pageList:   list.New(s, "Pages"),
		reader:     viewport.New(80, 18),
		bar:        status.NewBar(s, km),
	}
}

// Init loads the spaces.
func (v *View) Init() tea.Cmd {
	v.mode = ModeSpaces
	v.startLoading("Loading spaces...")
	return v.loadSpaces()
}

func (v *View) startLoading(message string) {
	v.loading = true
	v.err = nil
	v.bar.SetState(status.StateLoading)
	v.bar.SetMessage(message)
}

func (v *View) loadSpaces() tea.Cmd {
	return func() tea.Msg {
		if v.confluence == nil {
			return messages.SpacesLoaded{Err: errors.New("confluence service not available")}
		}
		spaces, err := v.confluence.ListSpaces(context.Background())
		return messages.SpacesLoaded{Spaces: spaces, Err: err}
	}
}

func (v *View) loadPages(spaceKey string) tea.Cmd {
	return func() tea.Msg {
		pages, err := v.confluence.ListPages(context.Background(), spaceKey)
		return messages.PagesLoaded{SpaceKey: spaceKey, Pages: pages, Err: err}
	}
}

func (v *View) loadPage(id string) tea.Cmd {
	return func() tea.Msg {
		page, err := v.confluence.GetPage(context.Background(), id)
		return messages.PageLoaded{Page: page, Err: err}
	}
}

// Update handles messages for the Confluence view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SpacesLoaded:
		v.loading = false
		if msg.Err != nil {
			v.setError(msg.Err)
			return v, nil
		}
		v.spaces = msg.Spaces
		v.spaceList.SetItems(spaceItems(msg.Spaces))
		v.bar.SetCount(len(msg.Spaces), "spaces")
		return v, nil

	case messages.PagesLoaded:
		v.loading = false
		if msg.Err != nil {
			v.setError(msg.Err)
			return v, nil
		}
		v.space = msg.SpaceKey
		v.pages = msg.Pages
		v.pageList.SetTitle(msg.SpaceKey + " pages")
		v.pageList.SetItems(pageItems(msg.Pages))
		v.mode = ModePages
		v.bar.SetCount(len(msg.Pages), "pages")
		return v, nil

	case messages.PageLoaded:
		v.loading = false
		if msg.Err != nil {
			v.setError(msg.Err)
			return v, nil
		}
		v.page = msg.Page
		v.reader.SetContent(v.renderPage(msg.Page))
		v.reader.GotoTop()
		v.mode = ModePage
		v.bar.SetState(status.StateReady)
		v.bar.SetMessage(fmt.Sprintf("Version %d", msg.Page.Version))
		return v, nil

	case messages.StoreChanged:
		return v, v.refresh()
	}

	return v, nil
}

func (v *View) setError(err error) {
	v.err = err
	v.bar.SetState(status.StateError)
	v.bar.SetMessage(status.ErrorText(domain.ProviderConfluence, err))
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()

	if keymap.Matches(k, v.keymap.Back) {
		return v, v.back()
	}
	if keymap.Matches(k, v.keymap.Refresh) {
		return v, v.refresh()
	}
	if v.loading {
		return v, nil
	}

	switch v.mode {
	case ModeSpaces:
		if keymap.Matches(k, v.keymap.Select) && !v.spaceList.IsEmpty() {
			sp := v.spaces[v.spaceList.Selected()]
			v.startLoading(fmt.Sprintf("Loading %s pages...", sp.Key))
			return v, v.loadPages(sp.Key)
		}
		v.spaceList, _ = v.spaceList.Update(msg)

	case ModePages:
		if keymap.Matches(k, v.keymap.Select) && !v.pageList.IsEmpty() {
			p := v.pages[v.pageList.Selected()]
			v.startLoading(fmt.Sprintf("Loading %s...", p.Title))
			return v, v.loadPage(p.ID)
		}
		v.pageList, _ = v.pageList.Update(msg)

	case ModePage:
		var cmd tea.Cmd
		v.reader, cmd = v.reader.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *View) back() tea.Cmd {
	v.err = nil
	switch v.mode {
	case ModePage:
		v.mode = ModePages
		v.bar.SetCount(len(v.pages), "pages")
		return nil
	case ModePages:
		v.mode = ModeSpaces
		v.bar.SetCount(len(v.spaces), "spaces")
		return nil
	case ModeSpaces:
	}
	return func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }
}

func (v *View) refresh() tea.Cmd {
	switch v.mode {
	case ModePage:
		if v.page != nil {
			v.startLoading(fmt.Sprintf("Loading %s...", v.page.Title))
			return v.loadPage(v.page.ID)
		}
	case ModePages:
		v.startLoading(fmt.Sprintf("Loading %s pages...", v.space))
		return v.loadPages(v.space)
	case ModeSpaces:
	}
	return v.Init()
}

// View renders the Confluence view.
func (v *View) View() string {
	var b strings.Builder

	switch v.mode {
	case ModeSpaces:
		b.WriteString(v.styles.Title.Render("Confluence"))
		b.WriteString("\n\n")
		switch {
		case v.loading && v.spaceList.IsEmpty():
			b.WriteString(v.styles.Muted.Render("Loading spaces..."))
		case v.err != nil && v.spaceList.IsEmpty():
			b.WriteString(v.styles.Error.Render(status.ErrorText(domain.ProviderConfluence, v.err)))
		default:
			b.WriteString(v.spaceList.View())
		}
	case ModePages:
		b.WriteString(v.styles.Title.Render("Confluence / " + v.space))
		b.WriteString("\n\n")
		b.WriteString(v.pageList.View())
	case ModePage:
		b.WriteString(v.reader.View())
	}

	b.WriteString("\n\n")
	b.WriteString(v.bar.View())
	return b.String()
}

func (v *View) renderPage(p *domain.Page) string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render(p.Title))
	b.WriteString("\n")
	if p.WebURL != "" {
		b.WriteString(v.styles.Muted.Render(p.WebURL))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	text := v.renderBody(p)
	if text == "" {
		b.WriteString(v.styles.Muted.Render("This page is empty."))
		return b.String()
	}
	b.WriteString(text)
	return b.String()
}

// renderBody draws the page through glamour in the current palette,
// falling back to plain text when glamour fails.
func (v *View) renderBody(p *domain.Page) string {
	md := markup.Markdown(p.Body, p.WebURL)
	if md == "" {
		return ""
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(v.styles.Theme().Glamour),
		glamour.WithWordWrap(max(20, v.reader.Width-2)),
	)
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			return strings.Trim(out, "\n")
		}
	}
	logger.Debug("confluence: glamour render failed: %v", err)
	return v.styles.Normal.Render(markup.PlainText(p.Body))
}

func spaceItems(spaces []domain.Space) []list.Item {
	items := make([]list.Item, len(spaces))
	for i, s := range spaces {
		items[i] = list.Item{Title: s.Name, Meta: s.Key, Detail: s.Type}
	}
	return items
}

func pageItems(pages []domain.Page) []list.Item {
	items := make([]list.Item, len(pages))
	for i, p := range pages {
		items[i] = list.Item{Title: p.Title, Meta: fmt.Sprintf("v%d", p.Version)}
	}
	return items
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.spaceList.SetDimensions(width, height-4)
	v.pageList.SetDimensions(width, height-4)
	v.reader.Width = width
	v.reader.Height = max(4, height-4)
	v.bar.SetWidth(width)
}

// Mode returns the level on display.
func (v *View) Mode() Mode {
	return v.mode
}

// Page returns the page shown in page mode.
func (v *View) Page() *domain.Page {
	return v.page
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
