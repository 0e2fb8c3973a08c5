package jira

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/devsync-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/devsync-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/devsync-cli/internal/core/domain"
	"github.com/custodia-labs/devsync-cli/internal/core/ports/driving"
)

// mockJiraService implements the methods of driving.JiraService the view uses.
type mockJiraService struct {
	driving.JiraService
	projects  []domain.Project
	tickets   []domain.Ticket
	ticket    *domain.Ticket
	err       error
	moveErr   error
	searched  string
	movedKey  string
	movedTo   string
	fetchedID string
}

func (m *mockJiraService) ListProjects(_ context.Context) ([]domain.Project, error) {
	return m.projects, m.err
}

func (m *mockJiraService) SearchIssues(_ context.Context, projectKey string, _ int) ([]domain.Ticket, error) {
	m.searched = projectKey
	return m.tickets, m.err
}

func (m *mockJiraService) GetIssue(_ context.Context, key string) (*domain.Ticket, error) {
	m.fetchedID = key
	return m.ticket, m.err
}

func (m *mockJiraService) UpdateIssueStatus(_ context.Context, key, target string) error {
	m.movedKey = key
	m.movedTo = target
	return m.moveErr
}

func sampleTickets() []domain.Ticket {
	return []domain.Ticket{
		{Key: "DEV-1", Summary: "Set up CI", Status: "To Do", Priority: "High"},
		{Key: "DEV-2", Summary: "Write docs", Status: "In Progress", Priority: "Low",
			Assignee: &domain.TicketAssignee{Name: "Ada Lovelace", Initials: "AL"}},
	}
}

func newLoadedView(t *testing.T, svc *mockJiraService) *View {
	t.Helper()
	v := NewView(styles.DefaultStyles(), svc)
	v.SetDimensions(200, 40)
	v.Init()
	v, _ = v.Update(messages.ProjectsLoaded{Projects: svc.projects})
	return v
}

func key(r string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(r)}
}

func TestNewView_NilStyles(t *testing.T) {
	v := NewView(nil, nil)
	require.NotNil(t, v)
	assert.Equal(t, ModeProjects, v.Mode())
}

func TestView_Init_LoadsProjects(t *testing.T) {
	svc := &mockJiraService{projects: []domain.Project{{Key: "DEV", Name: "Development"}}}
	v := NewView(styles.DefaultStyles(), svc)
	v.SetDimensions(200, 40)

	cmd := v.Init()
	require.NotNil(t, cmd)
	msg, ok := cmd().(messages.ProjectsLoaded)
	require.True(t, ok)
	assert.Len(t, msg.Projects, 1)
	assert.Contains(t, v.View(), "Loading projects")
}

func TestView_Init_NilService(t *testing.T) {
	v := NewView(styles.DefaultStyles(), nil)
	v.SetDimensions(200, 40)
	msg, ok := v.Init()().(messages.ProjectsLoaded)
	require.True(t, ok)
	assert.Error(t, msg.Err)
}

func TestView_ProjectsLoaded_Error(t *testing.T) {
	v := NewView(styles.DefaultStyles(), &mockJiraService{})
	v.SetDimensions(200, 40)
	v.Init()
	v, _ = v.Update(messages.ProjectsLoaded{Err: domain.ErrNotInitialized})

	assert.ErrorIs(t, v.Err(), domain.ErrNotInitialized)
	assert.Contains(t, v.View(), "devsync credentials set jira")
}

func TestView_SelectProject_LoadsTickets(t *testing.T) {
	svc := &mockJiraService{
		projects: []domain.Project{{Key: "DEV", Name: "Development"}},
		tickets:  sampleTickets(),
	}
	v := newLoadedView(t, svc)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg := cmd()
	assert.Equal(t, "DEV", svc.searched)

	v, _ = v.Update(msg)
	assert.Equal(t, ModeTickets, v.Mode())
	view := v.View()
	assert.Contains(t, view, "DEV-1")
	assert.Contains(t, view, "Unassigned")
	assert.Contains(t, view, "Ada Lovelace")
}

func TestView_SelectTicket_ShowsDetail(t *testing.T) {
	ticket := &domain.Ticket{
		Key: "DEV-1", Summary: "Set up CI", Status: "To Do", Priority: "High",
		Description: "Pipeline for every push",
		Comments:    []domain.TicketComment{{Author: "Ada Lovelace", Avatar: "AL", Content: "On it"}},
	}
	svc := &mockJiraService{
		projects: []domain.Project{{Key: "DEV", Name: "Development"}},
		tickets:  sampleTickets(),
		ticket:   ticket,
	}
	v := newLoadedView(t, svc)
	v, _ = v.Update(messages.TicketsLoaded{ProjectKey: "DEV", Tickets: svc.tickets})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	v, _ = v.Update(cmd())

	assert.Equal(t, ModeDetail, v.Mode())
	assert.Equal(t, "DEV-1", svc.fetchedID)
	view := v.View()
	assert.Contains(t, view, "Pipeline for every push")
	assert.Contains(t, view, "Comments (1)")
	assert.Contains(t, view, "On it")
}

func TestView_MoveTicket(t *testing.T) {
	svc := &mockJiraService{tickets: sampleTickets()}
	v := NewView(styles.DefaultStyles(), svc)
	v.SetDimensions(200, 40)
	v, _ = v.Update(messages.TicketsLoaded{ProjectKey: "DEV", Tickets: svc.tickets})

	v, _ = v.Update(key("m"))
	require.True(t, v.Moving())
	for _, r := range "Done" {
		v, _ = v.Update(key(string(r)))
	}

	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, v.Moving())
	require.NotNil(t, cmd)
	msg, ok := cmd().(messages.TicketMoved)
	require.True(t, ok)
	assert.Equal(t, "DEV-1", svc.movedKey)
	assert.Equal(t, "Done", svc.movedTo)

	v, _ = v.Update(msg)
	view := v.View()
	assert.Contains(t, view, "[Done]")
	assert.Contains(t, view, "Moved DEV-1 to Done")
}

func TestView_MoveTicket_EmptyTargetIgnored(t *testing.T) {
	svc := &mockJiraService{tickets: sampleTickets()}
	v := NewView(styles.DefaultStyles(), svc)
	v.SetDimensions(200, 40)
	v, _ = v.Update(messages.TicketsLoaded{ProjectKey: "DEV", Tickets: svc.tickets})

	v, _ = v.Update(key("m"))
	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.False(t, v.Moving())
	assert.Empty(t, svc.movedKey)
}

func TestView_MoveTicket_Cancel(t *testing.T) {
	svc := &mockJiraService{tickets: sampleTickets()}
	v := NewView(styles.DefaultStyles(), svc)
	v.SetDimensions(200, 40)
	v, _ = v.Update(messages.TicketsLoaded{ProjectKey: "DEV", Tickets: svc.tickets})

	v, _ = v.Update(key("m"))
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, v.Moving())
	assert.Equal(t, ModeTickets, v.Mode())
}

func TestView_TicketMoved_TransitionError(t *testing.T) {
	v := NewView(styles.DefaultStyles(), &mockJiraService{})
	v.SetDimensions(200, 40)
	v, _ = v.Update(messages.TicketsLoaded{ProjectKey: "DEV", Tickets: sampleTickets()})

	v, _ = v.Update(messages.TicketMoved{
		Key: "DEV-1", Status: "Shipped",
		Err: &domain.TransitionError{IssueKey: "DEV-1", Target: "Shipped", Available: []string{"In Progress", "Done"}},
	})

	assert.ErrorIs(t, v.Err(), domain.ErrTransitionNotAvailable)
	assert.Contains(t, v.View(), "Available: In Progress, Done")
}

func TestView_TicketMoved_InDetailReloads(t *testing.T) {
	svc := &mockJiraService{ticket: &domain.Ticket{Key: "DEV-1", Status: "Done"}}
	v := NewView(styles.DefaultStyles(), svc)
	v.SetDimensions(200, 40)
	v, _ = v.Update(messages.TicketLoaded{Ticket: &domain.Ticket{Key: "DEV-1", Status: "To Do"}})
	require.Equal(t, ModeDetail, v.Mode())

	_, cmd := v.Update(messages.TicketMoved{Key: "DEV-1", Status: "Done"})
	require.NotNil(t, cmd)
	msg, ok := cmd().(messages.TicketLoaded)
	require.True(t, ok)
	assert.Equal(t, "Done", msg.Ticket.Status)
}

func TestView_Back(t *testing.T) {
	v := NewView(styles.DefaultStyles(), &mockJiraService{})
	v.SetDimensions(200, 40)
	v, _ = v.Update(messages.TicketsLoaded{ProjectKey: "DEV", Tickets: sampleTickets()})
	v, _ = v.Update(messages.TicketLoaded{Ticket: &domain.Ticket{Key: "DEV-1"}})
	require.Equal(t, ModeDetail, v.Mode())

	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, cmd)
	assert.Equal(t, ModeTickets, v.Mode())

	v, cmd = v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, cmd)
	assert.Equal(t, ModeProjects, v.Mode())

	_, cmd = v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func TestView_StoreChanged_ReloadsTickets(t *testing.T) {
	svc := &mockJiraService{tickets: sampleTickets()}
	v := NewView(styles.DefaultStyles(), svc)
	v.SetDimensions(200, 40)
	v, _ = v.Update(messages.TicketsLoaded{ProjectKey: "OPS", Tickets: svc.tickets})

	_, cmd := v.Update(messages.StoreChanged{})
	require.NotNil(t, cmd)
	_, ok := cmd().(messages.TicketsLoaded)
	assert.True(t, ok)
	assert.Equal(t, "OPS", svc.searched)
}
