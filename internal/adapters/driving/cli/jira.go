package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/devsync-cli/internal/core/domain"
)

var jiraCmd = &cobra.Command{
	Use:   "jira",
	Short: "Browse and update Jira tickets",
}

var jiraProjectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List projects",
	Args:  cobra.NoArgs,
	RunE:  runJiraProjects,
}

var jiraIssuesCmd = &cobra.Command{
	Use:   "issues [project]",
	Short: "List a project's tickets, most recently updated first",
	Args:  cobra.ExactArgs(1),
	RunE:  runJiraIssues,
}

var jiraIssueCmd = &cobra.Command{
	Use:   "issue [key]",
	Short: "Show one ticket with its comments",
	Args:  cobra.ExactArgs(1),
	RunE:  runJiraIssue,
}

var jiraCreateCmd = &cobra.Command{
	Use:   "create [project]",
	Short: "Create a ticket",
	Example: `  devsync jira create DEV --summary "Fix login" --priority High
  devsync jira create DEV -s "Write docs" -d "Cover the OAuth flow" -t Story`,
	Args: cobra.ExactArgs(1),
	RunE: runJiraCreate,
}

var jiraMoveCmd = &cobra.Command{
	Use:   "move [key] [status]",
	Short: "Move a ticket to another status",
	Long: `Move a ticket to another status through its workflow.

Only statuses reachable from the ticket's current status are accepted;
the error lists the ones that are.`,
	Example: `  devsync jira move DEV-42 "In Progress"`,
	Args:    cobra.ExactArgs(2),
	RunE:    runJiraMove,
}

var jiraCommentCmd = &cobra.Command{
	Use:   "comment [key] [body]",
	Short: "Comment on a ticket",
	Args:  cobra.ExactArgs(2),
	RunE:  runJiraComment,
}

// Flags for jira commands.
var (
	jiraLimit       int
	jiraSummary     string
	jiraDescription string
	jiraPriority    string
	jiraIssueType   string
)

func init() {
	jiraIssuesCmd.Flags().IntVarP(&jiraLimit, "limit", "n", domain.DefaultSearchLimit, "maximum tickets to fetch")

	jiraCreateCmd.Flags().StringVarP(&jiraSummary, "summary", "s", "", "ticket summary (required)")
	jiraCreateCmd.Flags().StringVarP(&jiraDescription, "description", "d", "", "ticket description")
	jiraCreateCmd.Flags().StringVarP(&jiraPriority, "priority", "p", "", "priority (default Medium)")
	jiraCreateCmd.Flags().StringVarP(&jiraIssueType, "type", "t", "", "issue type (default Task)")

	jiraCmd.AddCommand(jiraProjectsCmd)
	jiraCmd.AddCommand(jiraIssuesCmd)
	jiraCmd.AddCommand(jiraIssueCmd)
	jiraCmd.AddCommand(jiraCreateCmd)
	jiraCmd.AddCommand(jiraMoveCmd)
	jiraCmd.AddCommand(jiraCommentCmd)
	rootCmd.AddCommand(jiraCmd)
}

func requireJira() error {
	if jiraService == nil {
		return errors.New("jira service not configured")
	}
	return nil
}

func runJiraProjects(cmd *cobra.Command, _ []string) error {
	if err := requireJira(); err != nil {
		return err
	}

	projects, err := jiraService.ListProjects(cmd.Context())
	if err != nil {
		return withHint(domain.ProviderJira, err)
	}
	if jsonOutput {
		return printJSON(cmd, projects)
	}

	if len(projects) == 0 {
		cmd.Println("No projects found.")
		return nil
	}
	for _, p := range projects {
		cmd.Printf("  %-10s %s\n", p.Key, p.Name)
	}
	return nil
}

func runJiraIssues(cmd *cobra.Command, args []string) error {
	if err := requireJira(); err != nil {
		return err
	}

	projectKey := strings.ToUpper(strings.TrimSpace(args[0]))
	tickets, err := jiraService.SearchIssues(cmd.Context(), projectKey, jiraLimit)
	if err != nil {
		return withHint(domain.ProviderJira, err)
	}
	if jsonOutput {
		return printJSON(cmd, tickets)
	}

	if len(tickets) == 0 {
		cmd.Printf("No tickets in %s\n", projectKey)
		return nil
	}
	for i := range tickets {
		t := &tickets[i]
		cmd.Printf("  %-10s [%s] %s  (%s, %s)\n", t.Key, t.Status, t.Summary, t.Priority, assigneeName(t.Assignee))
	}
	cmd.Printf("\nTotal: %d tickets\n", len(tickets))
	return nil
}

func runJiraIssue(cmd *cobra.Command, args []string) error {
	if err := requireJira(); err != nil {
		return err
	}

	ticket, err := jiraService.GetIssue(cmd.Context(), args[0])
	if err != nil {
		return withHint(domain.ProviderJira, err)
	}
	if jsonOutput {
		return printJSON(cmd, ticket)
	}

	cmd.Printf("%s: %s\n", ticket.Key, ticket.Summary)
	cmd.Printf("  Status: %s\n", ticket.Status)
	cmd.Printf("  Priority: %s\n", ticket.Priority)
	cmd.Printf("  Assignee: %s\n", assigneeName(ticket.Assignee))
	cmd.Printf("  Created: %s\n", ticket.Created)
	cmd.Printf("  Updated: %s\n", ticket.Updated)
	if ticket.DueDate != "" {
		cmd.Printf("  Due: %s\n", ticket.DueDate)
	}
	if ticket.Description != "" {
		cmd.Println()
		cmd.Println(ticket.Description)
	}

	if len(ticket.Comments) > 0 {
		cmd.Println()
		cmd.Printf("Comments (%d)\n", len(ticket.Comments))
		for _, c := range ticket.Comments {
			cmd.Printf("  %s, %s\n", c.Author, c.Timestamp)
			for _, line := range strings.Split(c.Content, "\n") {
				cmd.Printf("    %s\n", line)
			}
		}
	}
	return nil
}

func runJiraCreate(cmd *cobra.Command, args []string) error {
	if err := requireJira(); err != nil {
		return err
	}

	ticket := domain.NewTicket{
		ProjectKey:  strings.ToUpper(strings.TrimSpace(args[0])),
		Summary:     jiraSummary,
		Description: jiraDescription,
		Priority:    jiraPriority,
		IssueType:   jiraIssueType,
	}
	if err := ticket.Validate(); err != nil {
		return err
	}

	created, err := jiraService.CreateIssue(cmd.Context(), ticket)
	if err != nil {
		return withHint(domain.ProviderJira, err)
	}
	if jsonOutput {
		return printJSON(cmd, created)
	}

	cmd.Printf("Created %s\n", created.Key)
	return nil
}

func runJiraMove(cmd *cobra.Command, args []string) error {
	if err := requireJira(); err != nil {
		return err
	}

	if err := jiraService.UpdateIssueStatus(cmd.Context(), args[0], args[1]); err != nil {
		return withHint(domain.ProviderJira, err)
	}
	cmd.Printf("%s moved to %s\n", args[0], args[1])
	return nil
}

func runJiraComment(cmd *cobra.Command, args []string) error {
	if err := requireJira(); err != nil {
		return err
	}
	if strings.TrimSpace(args[1]) == "" {
		return fmt.Errorf("%w: comment body is empty", domain.ErrInvalidInput)
	}

	comment, err := jiraService.AddComment(cmd.Context(), args[0], args[1])
	if err != nil {
		return withHint(domain.ProviderJira, err)
	}
	if jsonOutput {
		return printJSON(cmd, comment)
	}

	cmd.Printf("Commented on %s (comment %s)\n", args[0], comment.ID)
	return nil
}

func assigneeName(a *domain.TicketAssignee) string {
	if a == nil {
		return "Unassigned"
	}
	return a.Name
}
