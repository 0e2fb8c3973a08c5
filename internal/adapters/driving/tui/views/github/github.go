// Package github provides the GitHub repositories view for the TUI.
package github

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/devsync-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/devsync-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/devsync-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/devsync-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/devsync-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/devsync-cli/internal/core/domain"
	"github.com/custodia-labs/devsync-cli/internal/core/ports/driving"
	"github.com/custodia-labs/devsync-cli/internal/logger"
)

// Mode is the level the view is showing.
type Mode int

const (
	// ModeRepositories lists the user's repositories.
	ModeRepositories Mode = iota
	// ModeSummary shows one repository.
	ModeSummary
)

// Tab is the summary section on display.
type Tab int

const (
	TabIssues Tab = iota
	TabPullRequests
	TabCommits
)

var tabNames = []string{"Issues", "Pull requests", "Commits"}

// View is the GitHub view.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	github   driving.GitHubService
	settings driving.SettingsService

	repoList *list.List
	itemList *list.List
	bar      *status.Bar

	repositories []domain.RepositoryListing
	summary      *domain.RepositorySummary
	current      domain.RepoRef
	mode         Mode
	tab          Tab
	width        int
	height       int
	loading      bool
	err          error
}

// NewView creates a new GitHub view. settings may be nil, in which case the
// selected repository is not remembered.
func NewView(s *styles.Styles, github driving.GitHubService, settings driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()

	return &View{
		styles:   s,
		keymap:   km,
		github:   github,
		settings: settings,
		repoList: list.New(s, "Repositories"),
		itemList: list.New(s, tabNames[TabIssues]),
		bar:      status.NewBar(s, km),
		width:    80,
		height:   24,
	}
}

// Init loads the repositories.
func (v *View) Init() tea.Cmd {
	v.mode = ModeRepositories
	v.loading = true
	v.err = nil
	v.bar.SetState(status.StateLoading)
	v.bar.SetMessage("Loading repositories...")
	return v.loadRepositories()
}

func (v *View) loadRepositories() tea.Cmd {
	return func() tea.Msg {
		if v.github == nil {
			return messages.RepositoriesLoaded{Err: errors.New("github service not available")}
		}

		ctx := context.Background()
		repos, err := v.github.ListRepositories(ctx)
		if err != nil {
			return messages.RepositoriesLoaded{Err: err}
		}

		msg := messages.RepositoriesLoaded{Repositories: repos}
		if v.settings != nil {
			if ref, ok, err := v.settings.SelectedRepo(ctx); err == nil && ok {
				msg.Selected = ref.String()
			}
		}
		return msg
	}
}

func (v *View) loadSummary(ref domain.RepoRef) tea.Cmd {
	return func() tea.Msg {
		if v.github == nil {
			return messages.SummaryLoaded{Repo: ref, Err: errors.New("github service not available")}
		}

		ctx := context.Background()
		summary, err := v.github.RepositorySummary(ctx, ref.Owner, ref.Name)
		if err != nil {
			return messages.SummaryLoaded{Repo: ref, Err: err}
		}
		if v.settings != nil {
			if err := v.settings.SetSelectedRepo(ctx, ref); err != nil {
				logger.Warn("remembering %s: %v", ref, err)
			}
		}
		return messages.SummaryLoaded{Repo: ref, Summary: summary}
	}
}

// Update handles messages for the GitHub view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.RepositoriesLoaded:
		v.loading = false
		if msg.Err != nil {
			v.setError(msg.Err)
			return v, nil
		}
		v.err = nil
		v.repositories = msg.Repositories
		v.repoList.SetItems(repositoryItems(msg.Repositories))
		for i := range msg.Repositories {
			if msg.Repositories[i].FullName == msg.Selected {
				v.repoList.SetSelected(i)
				break
			}
		}
		v.bar.SetCount(len(msg.Repositories), "repositories")
		return v, nil

	case messages.SummaryLoaded:
		v.loading = false
		if msg.Err != nil {
			v.setError(msg.Err)
			return v, nil
		}
		v.err = nil
		v.current = msg.Repo
		v.summary = msg.Summary
		v.mode = ModeSummary
		v.setTab(v.tab)
		return v, nil

	case messages.StoreChanged:
		if v.mode == ModeSummary && !v.current.IsZero() {
			return v, v.refresh()
		}
		return v, v.Init()
	}

	return v, nil
}

func (v *View) setError(err error) {
	v.err = err
	v.bar.SetState(status.StateError)
	v.bar.SetMessage(status.ErrorText(domain.ProviderGitHub, err))
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()

	if keymap.Matches(k, v.keymap.Back) {
		if v.mode == ModeSummary {
			v.mode = ModeRepositories
			v.err = nil
			v.bar.SetCount(len(v.repositories), "repositories")
			return v, nil
		}
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }
	}
	if keymap.Matches(k, v.keymap.Refresh) {
		return v, v.refresh()
	}
	if v.loading {
		return v, nil
	}

	if v.mode == ModeSummary {
		switch {
		case keymap.Matches(k, v.keymap.NextTab):
			v.setTab((v.tab + 1) % Tab(len(tabNames)))
			return v, nil
		case keymap.Matches(k, v.keymap.PrevTab):
			v.setTab((v.tab + Tab(len(tabNames)) - 1) % Tab(len(tabNames)))
			return v, nil
		}
		v.itemList, _ = v.itemList.Update(msg)
		return v, nil
	}

	if keymap.Matches(k, v.keymap.Select) {
		if v.repoList.IsEmpty() {
			return v, nil
		}
		repo := v.repositories[v.repoList.Selected()]
		ref, err := domain.ParseRepoRef(repo.FullName)
		if err != nil {
			v.setError(err)
			return v, nil
		}
		return v, v.openRepository(ref)
	}

	v.repoList, _ = v.repoList.Update(msg)
	return v, nil
}

func (v *View) openRepository(ref domain.RepoRef) tea.Cmd {
	v.loading = true
	v.bar.SetState(status.StateLoading)
	v.bar.SetMessage(fmt.Sprintf("Loading %s...", ref))
	return v.loadSummary(ref)
}

func (v *View) refresh() tea.Cmd {
	if v.mode == ModeSummary {
		return v.openRepository(v.current)
	}
	return v.Init()
}

func (v *View) setTab(tab Tab) {
	v.tab = tab
	v.itemList.SetTitle(tabNames[tab])
	if v.summary == nil {
		v.itemList.SetItems(nil)
		return
	}

	var items []list.Item
	switch tab {
	case TabIssues:
		items = issueItems(v.summary.Issues)
	case TabPullRequests:
		items = pullRequestItems(v.summary.PRs)
	case TabCommits:
		items = commitItems(v.summary.Commits)
	}
	v.itemList.SetItems(items)
	v.bar.SetCount(len(items), strings.ToLower(tabNames[tab]))
}

// View renders the GitHub view.
func (v *View) View() string {
	var b strings.Builder

	if v.mode == ModeSummary && v.summary != nil {
		b.WriteString(v.renderSummaryHeader())
		b.WriteString("\n\n")
		b.WriteString(v.renderTabs())
		b.WriteString("\n\n")
		b.WriteString(v.itemList.View())
	} else {
		b.WriteString(v.styles.Title.Render("GitHub"))
		b.WriteString("\n\n")
		switch {
		case v.loading && v.repoList.IsEmpty():
			b.WriteString(v.styles.Muted.Render("Loading repositories..."))
		case v.err != nil && v.repoList.IsEmpty():
			b.WriteString(v.styles.Error.Render(status.ErrorText(domain.ProviderGitHub, v.err)))
		default:
			b.WriteString(v.repoList.View())
		}
	}

	b.WriteString("\n\n")
	b.WriteString(v.bar.View())
	return b.String()
}

func (v *View) renderSummaryHeader() string {
	r := &v.summary.RepoInfo
	lines := []string{
		v.styles.Title.Render(r.FullName),
	}
	if r.Description != "" {
		lines = append(lines, v.styles.Normal.Render(r.Description))
	}
	lines = append(lines, v.styles.Muted.Render(fmt.Sprintf(
		"★ %d  forks %d  watchers %d  %s  branch %s  pushed %s",
		r.Stars, r.Forks, r.Watchers, orDash(r.Language), r.DefaultBranch, age(r.LastCommit))))
	return strings.Join(lines, "\n")
}

func (v *View) renderTabs() string {
	tabs := make([]string, len(tabNames))
	for i, name := range tabNames {
		if Tab(i) == v.tab {
			tabs[i] = v.styles.Selected.Render(" " + name + " ")
		} else {
			tabs[i] = v.styles.Muted.Render(" " + name + " ")
		}
	}
	return strings.Join(tabs, " ") + v.styles.Help.Render("   [tab] switch")
}

func repositoryItems(repos []domain.RepositoryListing) []list.Item {
	items := make([]list.Item, len(repos))
	for i := range repos {
		r := &repos[i]
		meta := fmt.Sprintf("★ %d  %s  %s", r.StargazersCount, orDash(r.Language), age(r.UpdatedAt))
		if r.Private {
			meta = "private  " + meta
		}
		items[i] = list.Item{Title: r.FullName, Meta: meta, Detail: r.Description}
	}
	return items
}

func issueItems(issues []domain.Issue) []list.Item {
	items := make([]list.Item, len(issues))
	for i := range issues {
		is := &issues[i]
		detail := is.User.Login
		if len(is.Labels) > 0 {
			detail += "  [" + strings.Join(is.Labels, ", ") + "]"
		}
		items[i] = list.Item{
			Title:  fmt.Sprintf("#%d %s", is.Number, is.Title),
			Meta:   age(is.UpdatedAt),
			Detail: detail,
		}
	}
	return items
}

func pullRequestItems(prs []domain.PullRequest) []list.Item {
	items := make([]list.Item, len(prs))
	for i := range prs {
		pr := &prs[i]
		items[i] = list.Item{
			Title:  fmt.Sprintf("#%d %s", pr.Number, pr.Title),
			Meta:   age(pr.UpdatedAt),
			Detail: pr.User.Login,
		}
	}
	return items
}

func commitItems(commits []domain.Commit) []list.Item {
	items := make([]list.Item, len(commits))
	for i := range commits {
		c := &commits[i]
		message, _, _ := strings.Cut(c.Message, "\n")
		sha := c.SHA
		if len(sha) > 7 {
			sha = sha[:7]
		}
		items[i] = list.Item{
			Title:  message,
			Meta:   sha,
			Detail: fmt.Sprintf("%s, %s", c.Author.Name, age(c.Author.Date)),
		}
	}
	return items
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func age(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	d := time.Since(t)
	switch {
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("2006-01-02")
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.repoList.SetDimensions(width, height-4)
	v.itemList.SetDimensions(width, height-10)
	v.bar.SetWidth(width)
}

// Mode returns the level on display.
func (v *View) Mode() Mode {
	return v.mode
}

// Tab returns the summary section on display.
func (v *View) Tab() Tab {
	return v.tab
}

// Current returns the repository shown in summary mode.
func (v *View) Current() domain.RepoRef {
	return v.current
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
