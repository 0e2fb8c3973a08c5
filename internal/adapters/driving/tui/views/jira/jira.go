// Package jira provides the Jira projects and tickets view for the TUI.
package jira

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/devsync-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/devsync-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/devsync-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/devsync-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/devsync-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/devsync-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/devsync-cli/internal/core/domain"
	"github.com/custodia-labs/devsync-cli/internal/core/ports/driving"
)

// Mode is the level the view is showing.
type Mode int

const (
	ModeProjects Mode = iota
	ModeTickets
	ModeDetail
)

// View is the Jira view.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	jira   driving.JiraService

	projectList *list.List
	ticketList  *list.List
	detail      viewport.Model
	prompt      *input.Prompt
	bar         *status.Bar

	projects []domain.Project
	tickets  []domain.Ticket
	ticket   *domain.Ticket
	project  string
	mode     Mode
	moving   bool
	width    int
	height   int
	loading  bool
	err      error
}

// NewView creates a new Jira view.
func NewView(s *styles.Styles, jira driving.JiraService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()

	return &View{
		styles:      s,
		keymap:      km,
		jira:        jira,
		projectList: list.New(s, "Projects"),
		ticketList:  list.New(s, "Tickets"),
		detail:      viewport.New(80, 16),
		prompt:      input.NewPrompt(s, "Move to:", "status name, e.g. In Progress"),
		bar:         status.NewBar(s, km),
		width:       80,
		height:      24,
	}
}

// Init loads the projects.
func (v *View) Init() tea.Cmd {
	v.mode = ModeProjects
	v.moving = false
	v.prompt.Blur()
	v.startLoading("Loading projects...")
	return v.loadProjects()
}

func (v *View) startLoading(message string) {
	v.loading = true
	v.err = nil
	v.bar.SetState(status.StateLoading)
	v.bar.SetMessage(message)
}

func (v *View) loadProjects() tea.Cmd {
	return func() tea.Msg {
		if v.jira == nil {
			return messages.ProjectsLoaded{Err: errors.New("jira service not available")}
		}
		projects, err := v.jira.ListProjects(context.Background())
		return messages.ProjectsLoaded{Projects: projects, Err: err}
	}
}

func (v *View) loadTickets(projectKey string) tea.Cmd {
	return func() tea.Msg {
		tickets, err := v.jira.SearchIssues(context.Background(), projectKey, domain.DefaultSearchLimit)
		return messages.TicketsLoaded{ProjectKey: projectKey, Tickets: tickets, Err: err}
	}
}

func (v *View) loadTicket(key string) tea.Cmd {
	return func() tea.Msg {
		ticket, err := v.jira.GetIssue(context.Background(), key)
		return messages.TicketLoaded{Ticket: ticket, Err: err}
	}
}

func (v *View) moveTicket(key, target string) tea.Cmd {
	return func() tea.Msg {
		err := v.jira.UpdateIssueStatus(context.Background(), key, target)
		return messages.TicketMoved{Key: key, Status: target, Err: err}
	}
}

// Update handles messages for the Jira view.
//
//nolint:gocyclo // message dispatch
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		if v.moving {
			return v.handlePromptKey(msg)
		}
		return v.handleKeyMsg(msg)

	case messages.ProjectsLoaded:
		v.loading = false
		if msg.Err != nil {
			v.setError(msg.Err)
			return v, nil
		}
		v.projects = msg.Projects
		v.projectList.SetItems(projectItems(msg.Projects))
		v.bar.SetCount(len(msg.Projects), "projects")
		return v, nil

	case messages.TicketsLoaded:
		v.loading = false
		if msg.Err != nil {
			v.setError(msg.Err)
			return v, nil
		}
		v.project = msg.ProjectKey
		v.tickets = msg.Tickets
		v.ticketList.SetTitle(msg.ProjectKey + " tickets")
		v.ticketList.SetItems(ticketItems(msg.Tickets))
		v.mode = ModeTickets
		v.bar.SetCount(len(msg.Tickets), "tickets")
		v.bar.SetExtraHints(v.keymap.Move)
		return v, nil

	case messages.TicketLoaded:
		v.loading = false
		if msg.Err != nil {
			v.setError(msg.Err)
			return v, nil
		}
		v.ticket = msg.Ticket
		v.detail.SetContent(v.renderTicket(msg.Ticket))
		v.detail.GotoTop()
		v.mode = ModeDetail
		v.bar.SetState(status.StateReady)
		v.bar.SetMessage("")
		v.bar.SetExtraHints(v.keymap.Move)
		return v, nil

	case messages.TicketMoved:
		v.loading = false
		if msg.Err != nil {
			v.setError(msg.Err)
			return v, nil
		}
		v.updateTicketStatus(msg.Key, msg.Status)
		v.bar.SetState(status.StateReady)
		v.bar.SetMessage(fmt.Sprintf("Moved %s to %s", msg.Key, msg.Status))
		if v.mode == ModeDetail {
			return v, v.loadTicket(msg.Key)
		}
		return v, nil

	case messages.StoreChanged:
		return v, v.refresh()
	}

	return v, nil
}

func (v *View) setError(err error) {
	v.err = err
	v.bar.SetState(status.StateError)

	var te *domain.TransitionError
	if errors.As(err, &te) {
		v.bar.SetMessage(fmt.Sprintf("%s cannot move to %q. Available: %s",
			te.IssueKey, te.Target, strings.Join(te.Available, ", ")))
		return
	}
	v.bar.SetMessage(status.ErrorText(domain.ProviderJira, err))
}

// updateTicketStatus reflects a successful move in the ticket list.
func (v *View) updateTicketStatus(key, target string) {
	for i := range v.tickets {
		if v.tickets[i].Key == key {
			v.tickets[i].Status = target
			selected := v.ticketList.Selected()
			v.ticketList.SetItems(ticketItems(v.tickets))
			v.ticketList.SetSelected(selected)
			return
		}
	}
}

func (v *View) handlePromptKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type { //nolint:exhaustive // only prompt control keys
	case tea.KeyEsc:
		v.moving = false
		v.prompt.Blur()
		return v, nil
	case tea.KeyEnter:
		target := strings.TrimSpace(v.prompt.Value())
		key := v.selectedKey()
		v.moving = false
		v.prompt.Blur()
		if target == "" || key == "" {
			return v, nil
		}
		v.startLoading(fmt.Sprintf("Moving %s to %s...", key, target))
		return v, v.moveTicket(key, target)
	}

	var cmd tea.Cmd
	v.prompt, cmd = v.prompt.Update(msg)
	return v, cmd
}

// selectedKey is the ticket a move applies to.
func (v *View) selectedKey() string {
	switch v.mode {
	case ModeDetail:
		if v.ticket != nil {
			return v.ticket.Key
		}
	case ModeTickets:
		if !v.ticketList.IsEmpty() {
			return v.tickets[v.ticketList.Selected()].Key
		}
	case ModeProjects:
	}
	return ""
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

	if keymap.Matches(k, v.keymap.Move) && v.selectedKey() != "" {
		v.moving = true
		v.prompt.Reset()
		return v, v.prompt.Focus()
	}

	switch v.mode {
	case ModeProjects:
		if keymap.Matches(k, v.keymap.Select) && !v.projectList.IsEmpty() {
			p := v.projects[v.projectList.Selected()]
			v.startLoading(fmt.Sprintf("Loading %s tickets...", p.Key))
			return v, v.loadTickets(p.Key)
		}
		v.projectList, _ = v.projectList.Update(msg)

	case ModeTickets:
		if keymap.Matches(k, v.keymap.Select) && !v.ticketList.IsEmpty() {
			t := v.tickets[v.ticketList.Selected()]
			v.startLoading(fmt.Sprintf("Loading %s...", t.Key))
			return v, v.loadTicket(t.Key)
		}
		v.ticketList, _ = v.ticketList.Update(msg)

	case ModeDetail:
		var cmd tea.Cmd
		v.detail, cmd = v.detail.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *View) back() tea.Cmd {
	v.err = nil
	switch v.mode {
	case ModeDetail:
		v.mode = ModeTickets
		v.bar.SetCount(len(v.tickets), "tickets")
		return nil
	case ModeTickets:
		v.mode = ModeProjects
		v.bar.SetExtraHints()
		v.bar.SetCount(len(v.projects), "projects")
		return nil
	case ModeProjects:
	}
	return func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }
}

func (v *View) refresh() tea.Cmd {
	switch v.mode {
	case ModeDetail:
		if v.ticket != nil {
			v.startLoading(fmt.Sprintf("Loading %s...", v.ticket.Key))
			return v.loadTicket(v.ticket.Key)
		}
	case ModeTickets:
		v.startLoading(fmt.Sprintf("Loading %s tickets...", v.project))
		return v.loadTickets(v.project)
	case ModeProjects:
	}
	return v.Init()
}

// View renders the Jira view.
func (v *View) View() string {
	var b strings.Builder

	switch v.mode {
	case ModeProjects:
		b.WriteString(v.styles.Title.Render("Jira"))
		b.WriteString("\n\n")
		switch {
		case v.loading && v.projectList.IsEmpty():
			b.WriteString(v.styles.Muted.Render("Loading projects..."))
		case v.err != nil && v.projectList.IsEmpty():
			b.WriteString(v.styles.Error.Render(status.ErrorText(domain.ProviderJira, v.err)))
		default:
			b.WriteString(v.projectList.View())
		}
	case ModeTickets:
		b.WriteString(v.styles.Title.Render("Jira / " + v.project))
		b.WriteString("\n\n")
		b.WriteString(v.ticketList.View())
	case ModeDetail:
		b.WriteString(v.detail.View())
	}

	if v.moving {
		b.WriteString("\n\n")
		b.WriteString(v.prompt.View())
	}
	b.WriteString("\n\n")
	b.WriteString(v.bar.View())
	return b.String()
}

func (v *View) renderTicket(t *domain.Ticket) string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(t.Key + "  " + t.Summary))
	b.WriteString("\n\n")
	rows := [][2]string{
		{"Status", t.Status},
		{"Priority", t.Priority},
		{"Assignee", assigneeText(t.Assignee)},
		{"Created", t.Created},
		{"Updated", t.Updated},
	}
	if t.DueDate != "" {
		rows = append(rows, [2]string{"Due", t.DueDate})
	}
	for _, row := range rows {
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("%-10s", row[0])))
		b.WriteString(v.styles.Normal.Render(row[1]))
		b.WriteString("\n")
	}

	if t.Description != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Normal.Render(t.Description))
		b.WriteString("\n")
	}

	if len(t.Comments) > 0 {
		b.WriteString("\n")
		b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("Comments (%d)", len(t.Comments))))
		b.WriteString("\n")
		for _, c := range t.Comments {
			b.WriteString("\n")
			b.WriteString(v.styles.Muted.Render(fmt.Sprintf("[%s] %s, %s", c.Avatar, c.Author, c.Timestamp)))
			b.WriteString("\n")
			b.WriteString(v.styles.Normal.Render(c.Content))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func assigneeText(a *domain.TicketAssignee) string {
	if a == nil {
		return "Unassigned"
	}
	return fmt.Sprintf("%s (%s)", a.Name, a.Initials)
}

func projectItems(projects []domain.Project) []list.Item {
	items := make([]list.Item, len(projects))
	for i, p := range projects {
		items[i] = list.Item{Title: p.Name, Meta: p.Key}
	}
	return items
}

func ticketItems(tickets []domain.Ticket) []list.Item {
	items := make([]list.Item, len(tickets))
	for i := range tickets {
		t := &tickets[i]
		assignee := "Unassigned"
		if t.Assignee != nil {
			assignee = t.Assignee.Name
		}
		items[i] = list.Item{
			Title:  t.Key + "  " + t.Summary,
			Meta:   "[" + t.Status + "]",
			Detail: fmt.Sprintf("%s priority, %s", t.Priority, assignee),
		}
	}
	return items
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.projectList.SetDimensions(width, height-4)
	v.ticketList.SetDimensions(width, height-4)
	v.detail.Width = width
	v.detail.Height = max(4, height-4)
	v.prompt.SetWidth(width)
	v.bar.SetWidth(width)
}

// Mode returns the level on display.
func (v *View) Mode() Mode {
	return v.mode
}

// Moving reports whether the move prompt is open.
func (v *View) Moving() bool {
	return v.moving
}

// Ticket returns the ticket shown in detail mode.
func (v *View) Ticket() *domain.Ticket {
	return v.ticket
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
