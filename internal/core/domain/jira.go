package domain

import (
	"fmt"
	"strings"
)

// JiraUser is the authenticated principal returned by /myself.
type JiraUser struct {
	AccountID    string `json:"accountId"`
	DisplayName  string `json:"displayName"`
	EmailAddress string `json:"emailAddress,omitempty"`
	Active       bool   `json:"active"`
	TimeZone     string `json:"timeZone,omitempty"`
}

// Project is a Jira project.
type Project struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
	Type string `json:"projectTypeKey,omitempty"`
}

// TicketAssignee is the assignee block of a ticket view model.
type TicketAssignee struct {
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Avatar   string `json:"avatar"`
	Initials string `json:"initials"`
}

// TicketComment is a flattened Jira comment.
type TicketComment struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	Author    string `json:"author"`
	Timestamp string `json:"timestamp"`
	Avatar    string `json:"avatar"`
}

// Ticket is the Jira issue view model.
type Ticket struct {
	Key         string          `json:"id"`
	Summary     string          `json:"summary"`
	Description string          `json:"description"`
	Status      string          `json:"status"`
	Priority    string          `json:"priority"`
	Assignee    *TicketAssignee `json:"assignee"`
	Created     string          `json:"created"`
	Updated     string          `json:"updated"`
	DueDate     string          `json:"dueDate"`
	Comments    []TicketComment `json:"comments"`
}

// Defaults applied when a ticket lacks optional fields.
const (
	DefaultTicketStatus   = "Unknown"
	DefaultTicketPriority = "Medium"
	DefaultIssueType      = "Task"
	DefaultSearchLimit    = 50
)

// NewTicket holds the fields for creating a Jira issue.
type NewTicket struct {
	ProjectKey  string `json:"projectKey"`
	Summary     string `json:"summary"`
	Description string `json:"description"`
	Priority    string `json:"priority,omitempty"`
	IssueType   string `json:"issueType,omitempty"`
}

// Validate checks the required fields and applies defaults.
func (t *NewTicket) Validate() error {
	if strings.TrimSpace(t.ProjectKey) == "" {
		return fmt.Errorf("%w: project key is required", ErrInvalidInput)
	}
	if strings.TrimSpace(t.Summary) == "" {
		return fmt.Errorf("%w: summary is required", ErrInvalidInput)
	}
	if t.Priority == "" {
		t.Priority = DefaultTicketPriority
	}
	if t.IssueType == "" {
		t.IssueType = DefaultIssueType
	}
	return nil
}

// CreatedTicket is the response to a successful issue creation.
type CreatedTicket struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Self string `json:"self"`
}

// CreatedComment is the response to a successful comment creation.
type CreatedComment struct {
	ID      string `json:"id"`
	Self    string `json:"self"`
	Created string `json:"created"`
}

// Transition is an outgoing workflow edge from an issue's current status.
type Transition struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// To is the name of the status the transition leads to.
	To string `json:"to"`
}

// Transitions is the set of edges available from an issue's current status.
// Jira models a status change as a graph traversal, so a target status is
// reachable only when one of these edges leads to it.
type Transitions []Transition

// Find returns the transition leading to status, compared case-insensitively.
func (ts Transitions) Find(status string) (Transition, bool) {
	for _, t := range ts {
		if strings.EqualFold(t.To, status) {
			return t, true
		}
	}
	return Transition{}, false
}

// Targets returns the reachable status names.
func (ts Transitions) Targets() []string {
	names := make([]string, len(ts))
	for i, t := range ts {
		names[i] = t.To
	}
	return names
}

// TransitionError reports a status with no edge from the issue's current state.
type TransitionError struct {
	IssueKey  string
	Target    string
	Available []string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("transition to status %q not available for %s (available: %s)",
		e.Target, e.IssueKey, strings.Join(e.Available, ", "))
}

// Is makes TransitionError match ErrTransitionNotAvailable.
func (e *TransitionError) Is(target error) bool {
	return target == ErrTransitionNotAvailable
}

// Resolve finds the edge to status or returns a *TransitionError.
func (ts Transitions) Resolve(issueKey, status string) (Transition, error) {
	if t, ok := ts.Find(status); ok {
		return t, nil
	}
	return Transition{}, &TransitionError{
		IssueKey:  issueKey,
		Target:    status,
		Available: ts.Targets(),
	}
}

// AvatarText returns the two-letter badge derived from a display name.
func AvatarText(displayName string) string {
	r := []rune(displayName)
	if len(r) > 2 {
		r = r[:2]
	}
	return strings.ToUpper(string(r))
}

// Initials returns the first letter of every word in a display name.
func Initials(displayName string) string {
	var b strings.Builder
	for _, word := range strings.Fields(displayName) {
		b.WriteRune([]rune(word)[0])
	}
	return b.String()
}
