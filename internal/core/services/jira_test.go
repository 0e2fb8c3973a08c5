package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/devsync-cli/internal/core/domain"
)

func devJiraAPI() *mockJiraAPI {
	return &mockJiraAPI{
		user:     &domain.JiraUser{AccountID: "abc", DisplayName: "Jane Doe"},
		projects: []domain.Project{{ID: "1", Key: "DEV", Name: "Development"}},
		tickets: []domain.Ticket{
			{Key: "DEV-1", Summary: "Fix login", Status: "To Do", Priority: "High"},
		},
		transitions: domain.Transitions{
			{ID: "11", Name: "Start", To: "In Progress"},
			{ID: "31", Name: "Done", To: "Done"},
		},
	}
}

func initializedJira(t *testing.T, api *mockJiraAPI) (*JiraService, *mockFactory) {
	t.Helper()
	factory := &mockFactory{jira: api}
	svc := NewJiraService(factory)
	require.NoError(t, svc.Initialize(context.Background(), validJiraFields()))
	return svc, factory
}

func TestJiraService_Initialize_Invalid(t *testing.T) {
	factory := &mockFactory{jira: devJiraAPI()}
	svc := NewJiraService(factory)

	fields := validJiraFields()
	fields[domain.FieldEmail] = ""
	err := svc.Initialize(context.Background(), fields)

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Equal(t, int32(0), factory.calls.Load())
	assert.False(t, svc.IsInitialized())
}

func TestJiraService_Initialize_PassesCredentials(t *testing.T) {
	_, factory := initializedJira(t, devJiraAPI())

	assert.Equal(t, "acme.atlassian.net", factory.lastCreds.Domain)
	assert.Equal(t, "dev@acme.io", factory.lastCreds.Email)
	assert.Equal(t, "https://acme.atlassian.net", factory.lastCreds.BaseURL())
}

func TestJiraService_NotInitialized(t *testing.T) {
	ctx := context.Background()
	svc := NewJiraService(&mockFactory{})

	_, err := svc.SearchIssues(ctx, "DEV", 0)
	assert.ErrorIs(t, err, domain.ErrNotInitialized)
	assert.ErrorIs(t, svc.UpdateIssueStatus(ctx, "DEV-1", "Done"), domain.ErrNotInitialized)
	_, err = svc.AddComment(ctx, "DEV-1", "hi")
	assert.ErrorIs(t, err, domain.ErrNotInitialized)
}

func TestJiraService_TestConnection_AuthFailureResets(t *testing.T) {
	api := devJiraAPI()
	api.userErr = fmt.Errorf("jira: HTTP 403: %w", domain.ErrAuthInvalid)
	svc, _ := initializedJira(t, api)

	_, err := svc.TestConnection(context.Background())

	assert.ErrorIs(t, err, domain.ErrAuthInvalid)
	assert.False(t, svc.IsInitialized())
}

func TestJiraService_TestConnection(t *testing.T) {
	svc, _ := initializedJira(t, devJiraAPI())

	user, err := svc.TestConnection(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", user.DisplayName)
}

func TestJiraService_SearchIssues_DefaultLimit(t *testing.T) {
	api := devJiraAPI()
	svc, _ := initializedJira(t, api)

	tickets, err := svc.SearchIssues(context.Background(), " DEV ", 0)

	require.NoError(t, err)
	assert.Len(t, tickets, 1)
	assert.Equal(t, "DEV", api.searchKey)
	assert.Equal(t, 50, api.searchLimit)

	_, err = svc.SearchIssues(context.Background(), "DEV", 10)
	require.NoError(t, err)
	assert.Equal(t, 10, api.searchLimit)

	_, err = svc.SearchIssues(context.Background(), "", 10)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestJiraService_UpdateIssueStatus(t *testing.T) {
	api := devJiraAPI()
	svc, _ := initializedJira(t, api)

	require.NoError(t, svc.UpdateIssueStatus(context.Background(), "DEV-1", "in progress"))

	assert.Equal(t, []string{"11"}, api.posted)
}

func TestJiraService_UpdateIssueStatus_NoSuchStatus(t *testing.T) {
	api := devJiraAPI()
	svc, _ := initializedJira(t, api)

	err := svc.UpdateIssueStatus(context.Background(), "DEV-1", "NoSuchStatus")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTransitionNotAvailable)
	var terr *domain.TransitionError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, []string{"In Progress", "Done"}, terr.Available)
	assert.Empty(t, api.posted, "no transition must be submitted")
}

func TestJiraService_CreateIssue_Defaults(t *testing.T) {
	api := devJiraAPI()
	svc, _ := initializedJira(t, api)

	created, err := svc.CreateIssue(context.Background(), domain.NewTicket{ProjectKey: "DEV", Summary: "New"})

	require.NoError(t, err)
	assert.Equal(t, "DEV-1", created.Key)
	assert.Equal(t, "Medium", api.created.Priority)
	assert.Equal(t, "Task", api.created.IssueType)

	_, err = svc.CreateIssue(context.Background(), domain.NewTicket{ProjectKey: "DEV"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestJiraService_AddComment(t *testing.T) {
	api := devJiraAPI()
	svc, _ := initializedJira(t, api)

	_, err := svc.AddComment(context.Background(), "DEV-1", "Looks good")
	require.NoError(t, err)
	assert.Equal(t, []string{"Looks good"}, api.comments)

	_, err = svc.AddComment(context.Background(), "DEV-1", "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestJiraService_GetIssue(t *testing.T) {
	svc, _ := initializedJira(t, devJiraAPI())

	ticket, err := svc.GetIssue(context.Background(), "DEV-1")
	require.NoError(t, err)
	assert.Equal(t, "Fix login", ticket.Summary)

	_, err = svc.GetIssue(context.Background(), "DEV-404")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
