package jira

import "github.com/custodia-labs/devsync-cli/internal/core/domain"

func toUser(u *userJSON) *domain.JiraUser {
	return &domain.JiraUser{
		AccountID:    u.AccountID,
		DisplayName:  u.DisplayName,
		EmailAddress: u.EmailAddress,
		Active:       u.Active,
		TimeZone:     u.TimeZone,
	}
}

func toProject(p projectJSON) domain.Project {
	return domain.Project{
		ID:   p.ID,
		Key:  p.Key,
		Name: p.Name,
		Type: p.ProjectTypeKey,
	}
}

func nameOr(n *namedJSON, fallback string) string {
	if n == nil || n.Name == "" {
		return fallback
	}
	return n.Name
}

// toTicket flattens an issue into the dashboard ticket.
func toTicket(issue issueJSON) domain.Ticket {
	f := issue.Fields
	ticket := domain.Ticket{
		Key:         issue.Key,
		Summary:     f.Summary,
		Description: f.Description.firstText(),
		Status:      nameOr(f.Status, domain.DefaultTicketStatus),
		Priority:    nameOr(f.Priority, domain.DefaultTicketPriority),
		Created:     f.Created,
		Updated:     f.Updated,
		DueDate:     f.DueDate,
		Comments:    []domain.TicketComment{},
	}

	if f.Assignee != nil {
		ticket.Assignee = &domain.TicketAssignee{
			Name:     f.Assignee.DisplayName,
			Email:    f.Assignee.EmailAddress,
			Avatar:   domain.AvatarText(f.Assignee.DisplayName),
			Initials: domain.Initials(f.Assignee.DisplayName),
		}
	}

	if f.Comment != nil {
		for _, c := range f.Comment.Comments {
			ticket.Comments = append(ticket.Comments, toComment(c))
		}
	}
	return ticket
}

func toComment(c commentJSON) domain.TicketComment {
	var author string
	if c.Author != nil {
		author = c.Author.DisplayName
	}
	return domain.TicketComment{
		ID:        c.ID,
		Content:   c.Body.firstText(),
		Author:    author,
		Timestamp: c.Created,
		Avatar:    domain.AvatarText(author),
	}
}

func toTransitions(in []transitionJSON) domain.Transitions {
	out := make(domain.Transitions, 0, len(in))
	for _, t := range in {
		out = append(out, domain.Transition{ID: t.ID, Name: t.Name, To: t.To.Name})
	}
	return out
}
