package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/devsync-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/devsync-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/devsync-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/devsync-cli/internal/adapters/driving/tui/views/confluence"
	"github.com/custodia-labs/devsync-cli/internal/adapters/driving/tui/views/github"
	"github.com/custodia-labs/devsync-cli/internal/adapters/driving/tui/views/jira"
	"github.com/custodia-labs/devsync-cli/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/devsync-cli/internal/adapters/driving/tui/views/settings"
	"github.com/custodia-labs/devsync-cli/internal/core/domain"
	"github.com/custodia-labs/devsync-cli/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles is shared by every view and restyled in place on theme changes.
	styles *styles.Styles
	theme  domain.Theme

	menuView       *menu.View
	githubView     *github.View
	jiraView       *jira.View
	confluenceView *confluence.View // nil when Confluence is not wired
	settingsView   *settings.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has received its first window size.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	app := &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		theme:        domain.ThemeDark,
		menuView:     menu.NewView(s, ports.Confluence != nil),
		githubView:   github.NewView(s, ports.GitHub, ports.Settings),
		jiraView:     jira.NewView(s, ports.Jira),
		settingsView: settings.NewView(s, ports.Settings),
		currentView:  messages.ViewMenu,
	}
	if ports.Confluence != nil {
		app.confluenceView = confluence.NewView(s, ports.Confluence)
	}
	return app, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model. It applies the stored theme.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("devsync"),
		a.loadTheme(),
	)
}

func (a *App) loadTheme() tea.Cmd {
	return func() tea.Msg {
		s, err := a.ports.Settings.Get(a.ctx)
		if err != nil {
			logger.Warn("loading settings: %v", err)
			return nil
		}
		return messages.ThemeChanged{Theme: s.Theme}
	}
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.currentView == messages.ViewHelp {
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
			}
			return a, nil
		}
		return a, a.forward(a.currentView, msg)

	case messages.ViewChanged:
		return a, a.switchTo(msg.View)

	case messages.ThemeChanged:
		a.applyTheme(msg.Theme)
		return a, nil

	case messages.StoreChanged:
		// Another process changed credentials or settings.
		return a, tea.Batch(a.loadTheme(), a.forward(a.currentView, msg))

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, nil

	case messages.Quit:
		return a, tea.Quit

	// Async results go to the view that asked for them, even after the
	// user has navigated away.
	case messages.RepositoriesLoaded, messages.SummaryLoaded:
		a.githubView, cmd = a.githubView.Update(msg)
		return a, cmd

	case messages.ProjectsLoaded, messages.TicketsLoaded, messages.TicketLoaded, messages.TicketMoved:
		a.jiraView, cmd = a.jiraView.Update(msg)
		return a, cmd

	case messages.SpacesLoaded, messages.PagesLoaded, messages.PageLoaded:
		if a.confluenceView != nil {
			a.confluenceView, cmd = a.confluenceView.Update(msg)
		}
		return a, cmd

	case messages.SettingsLoaded, messages.SettingsSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd
	}

	return a, a.forward(a.currentView, msg)
}

// forward hands msg to the view of type target.
func (a *App) forward(target messages.ViewType, msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch target {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewGitHub:
		a.githubView, cmd = a.githubView.Update(msg)
	case messages.ViewJira:
		a.jiraView, cmd = a.jiraView.Update(msg)
	case messages.ViewConfluence:
		if a.confluenceView != nil {
			a.confluenceView, cmd = a.confluenceView.Update(msg)
		}
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
	}
	return cmd
}

// switchTo makes target the active view and starts its initial load.
func (a *App) switchTo(target messages.ViewType) tea.Cmd {
	if target == messages.ViewConfluence && a.confluenceView == nil {
		return nil
	}
	a.currentView = target

	switch target {
	case messages.ViewGitHub:
		return a.githubView.Init()
	case messages.ViewJira:
		return a.jiraView.Init()
	case messages.ViewConfluence:
		return a.confluenceView.Init()
	case messages.ViewSettings:
		return a.settingsView.Init()
	case messages.ViewMenu, messages.ViewHelp:
	}
	return nil
}

// applyTheme restyles every view by replacing the shared styles in place.
func (a *App) applyTheme(t domain.Theme) {
	if !t.IsValid() || t == a.theme {
		return
	}
	a.theme = t
	*a.styles = *styles.NewStyles(styles.ForTheme(t))
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewGitHub:
		return a.githubView.View()
	case messages.ViewJira:
		return a.jiraView.View()
	case messages.ViewConfluence:
		if a.confluenceView != nil {
			return a.confluenceView.View()
		}
	case messages.ViewSettings:
		return a.settingsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	case messages.ViewMenu:
	}
	return a.menuView.View()
}

// viewHelp renders every binding in columns with the bubbles help component.
func (a *App) viewHelp() string {
	h := help.New()
	h.Styles.FullKey = a.styles.Subtitle
	h.Styles.FullDesc = a.styles.Normal
	h.Styles.FullSeparator = a.styles.Muted

	return a.styles.Title.Render("Help") + "\n\n" +
		h.FullHelpView(keymap.DefaultKeyMap().FullHelp()) + "\n\n" +
		a.styles.Help.Render("[esc] back to menu")
}

// NewProgram wraps the app in a Bubbletea program bound to the app context.
func (a *App) NewProgram(opts ...tea.ProgramOption) *tea.Program {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(a.ctx)}, opts...)
	return tea.NewProgram(a, opts...)
}

// Run starts the TUI application.
func (a *App) Run() error {
	_, err := a.NewProgram().Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Theme returns the applied theme.
func (a *App) Theme() domain.Theme {
	return a.theme
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.githubView.SetDimensions(width, height)
	a.jiraView.SetDimensions(width, height)
	if a.confluenceView != nil {
		a.confluenceView.SetDimensions(width, height)
	}
	a.settingsView.SetWidth(width)
}
