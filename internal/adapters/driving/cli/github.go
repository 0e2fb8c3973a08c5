package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/devsync-cli/internal/core/domain"
)

var githubCmd = &cobra.Command{
	Use:     "github",
	Aliases: []string{"gh"},
	Short:   "Browse GitHub repositories",
	Long: `Browse repositories, issues, pull requests and commits.

Commands that work on a repository take --repo owner/repo (or a GitHub URL).
Without it they use the repository last chosen with 'devsync github select'
or 'devsync github summary'.`,
}

var githubUserCmd = &cobra.Command{
	Use:   "user",
	Short: "Show the authenticated user",
	Args:  cobra.NoArgs,
	RunE:  runGitHubUser,
}

var githubReposCmd = &cobra.Command{
	Use:   "repos",
	Short: "List your repositories, most recently updated first",
	Args:  cobra.NoArgs,
	RunE:  runGitHubRepos,
}

var githubSelectCmd = &cobra.Command{
	Use:   "select [repository]",
	Short: "Remember a repository for later commands",
	Args:  cobra.ExactArgs(1),
	RunE:  runGitHubSelect,
}

var githubSummaryCmd = &cobra.Command{
	Use:   "summary [repository]",
	Short: "Show repository details, open issues, open pull requests and recent commits",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runGitHubSummary,
}

var githubIssuesCmd = &cobra.Command{
	Use:   "issues",
	Short: "List issues",
	Args:  cobra.NoArgs,
	RunE:  runGitHubIssues,
}

var githubPullsCmd = &cobra.Command{
	Use:     "prs",
	Aliases: []string{"pulls"},
	Short:   "List pull requests",
	Args:    cobra.NoArgs,
	RunE:    runGitHubPulls,
}

var githubCommitsCmd = &cobra.Command{
	Use:   "commits",
	Short: "List recent commits",
	Args:  cobra.NoArgs,
	RunE:  runGitHubCommits,
}

var githubBranchesCmd = &cobra.Command{
	Use:   "branches",
	Short: "List branches",
	Args:  cobra.NoArgs,
	RunE:  runGitHubBranches,
}

var githubIssueCmd = &cobra.Command{
	Use:   "issue",
	Short: "Create, close, reopen or comment on issues",
}

var githubIssueCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Open a new issue",
	Args:  cobra.NoArgs,
	RunE:  runGitHubIssueCreate,
}

var githubIssueCloseCmd = &cobra.Command{
	Use:   "close [number]",
	Short: "Close an issue",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGitHubIssueState(cmd, args[0], domain.IssueStateClosed)
	},
}

var githubIssueReopenCmd = &cobra.Command{
	Use:   "reopen [number]",
	Short: "Reopen an issue",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGitHubIssueState(cmd, args[0], domain.IssueStateOpen)
	},
}

var githubIssueCommentCmd = &cobra.Command{
	Use:   "comment [number] [body]",
	Short: "Comment on an issue or pull request",
	Args:  cobra.ExactArgs(2),
	RunE:  runGitHubIssueComment,
}

// Flags for github commands.
var (
	ghRepo       string
	ghState      string
	ghBranch     string
	ghLimit      int
	ghIssueTitle string
	ghIssueBody  string
	ghIssueLabel []string
)

func init() {
	githubCmd.PersistentFlags().StringVarP(&ghRepo, "repo", "r", "", "repository as owner/repo or GitHub URL")

	githubReposCmd.Flags().IntVarP(&ghLimit, "limit", "n", 0, "maximum repositories to show (0 = all)")
	githubIssuesCmd.Flags().StringVarP(&ghState, "state", "s", domain.IssueStateOpen, "open, closed or all")
	githubPullsCmd.Flags().StringVarP(&ghState, "state", "s", domain.IssueStateOpen, "open, closed or all")
	githubCommitsCmd.Flags().StringVarP(&ghBranch, "branch", "b", "", "branch (default branch when empty)")

	githubIssueCreateCmd.Flags().StringVarP(&ghIssueTitle, "title", "t", "", "issue title")
	githubIssueCreateCmd.Flags().StringVarP(&ghIssueBody, "body", "b", "", "issue body")
	githubIssueCreateCmd.Flags().StringSliceVarP(&ghIssueLabel, "label", "l", nil, "labels (repeatable)")

	githubIssueCmd.AddCommand(githubIssueCreateCmd)
	githubIssueCmd.AddCommand(githubIssueCloseCmd)
	githubIssueCmd.AddCommand(githubIssueReopenCmd)
	githubIssueCmd.AddCommand(githubIssueCommentCmd)

	githubCmd.AddCommand(githubUserCmd)
	githubCmd.AddCommand(githubReposCmd)
	githubCmd.AddCommand(githubSelectCmd)
	githubCmd.AddCommand(githubSummaryCmd)
	githubCmd.AddCommand(githubIssuesCmd)
	githubCmd.AddCommand(githubPullsCmd)
	githubCmd.AddCommand(githubCommitsCmd)
	githubCmd.AddCommand(githubBranchesCmd)
	githubCmd.AddCommand(githubIssueCmd)
	rootCmd.AddCommand(githubCmd)
}

func requireGitHub() error {
	if githubService == nil {
		return errors.New("github service not configured")
	}
	return nil
}

// resolveRepo picks the repository from arg, --repo or the remembered selection.
func resolveRepo(cmd *cobra.Command, arg string) (domain.RepoRef, error) {
	if arg == "" {
		arg = ghRepo
	}
	if arg != "" {
		return domain.ParseRepoRef(arg)
	}

	if settingsService != nil {
		ref, ok, err := settingsService.SelectedRepo(cmd.Context())
		if err != nil {
			return domain.RepoRef{}, err
		}
		if ok {
			return ref, nil
		}
	}
	return domain.RepoRef{}, fmt.Errorf("%w: no repository given; use --repo owner/repo or 'devsync github select'",
		domain.ErrInvalidInput)
}

func runGitHubUser(cmd *cobra.Command, _ []string) error {
	if err := requireGitHub(); err != nil {
		return err
	}

	user, err := githubService.GetUser(cmd.Context())
	if err != nil {
		return withHint(domain.ProviderGitHub, err)
	}
	if jsonOutput {
		return printJSON(cmd, user)
	}

	cmd.Printf("Login: %s\n", user.Login)
	if user.Name != "" {
		cmd.Printf("Name: %s\n", user.Name)
	}
	if user.Email != "" {
		cmd.Printf("Email: %s\n", user.Email)
	}
	cmd.Printf("Profile: %s\n", user.HTMLURL)
	return nil
}

func runGitHubRepos(cmd *cobra.Command, _ []string) error {
	if err := requireGitHub(); err != nil {
		return err
	}

	repos, err := githubService.ListRepositories(cmd.Context())
	if err != nil {
		return withHint(domain.ProviderGitHub, err)
	}
	if ghLimit > 0 && len(repos) > ghLimit {
		repos = repos[:ghLimit]
	}
	if jsonOutput {
		return printJSON(cmd, repos)
	}

	if len(repos) == 0 {
		cmd.Println("No repositories found.")
		return nil
	}

	for i := range repos {
		r := &repos[i]
		visibility := ""
		if r.Private {
			visibility = " (private)"
		}
		cmd.Printf("  %s%s\n", r.FullName, visibility)
		if r.Description != "" {
			cmd.Printf("    %s\n", r.Description)
		}
		cmd.Printf("    ★ %d  forks %d  issues %d  %s  updated %s\n",
			r.StargazersCount, r.ForksCount, r.OpenIssuesCount, orDash(r.Language), formatAge(r.UpdatedAt))
	}
	cmd.Printf("\nTotal: %d repositories\n", len(repos))
	return nil
}

func runGitHubSelect(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	ref, err := domain.ParseRepoRef(args[0])
	if err != nil {
		return err
	}
	if err := settingsService.SetSelectedRepo(cmd.Context(), ref); err != nil {
		return fmt.Errorf("failed to save selection: %w", err)
	}
	cmd.Printf("Selected %s\n", ref)
	return nil
}

func runGitHubSummary(cmd *cobra.Command, args []string) error {
	if err := requireGitHub(); err != nil {
		return err
	}

	arg := ""
	if len(args) == 1 {
		arg = args[0]
	}
	ref, err := resolveRepo(cmd, arg)
	if err != nil {
		return err
	}

	summary, err := githubService.RepositorySummary(cmd.Context(), ref.Owner, ref.Name)
	if err != nil {
		return withHint(domain.ProviderGitHub, err)
	}
	if settingsService != nil {
		if err := settingsService.SetSelectedRepo(cmd.Context(), ref); err != nil {
			cmd.PrintErrf("Warning: could not remember %s: %v\n", ref, err)
		}
	}
	if jsonOutput {
		return printJSON(cmd, summary)
	}

	repo := &summary.RepoInfo
	cmd.Printf("%s\n", repo.FullName)
	if repo.Description != "" {
		cmd.Printf("  %s\n", repo.Description)
	}
	cmd.Printf("  ★ %d  forks %d  watchers %d  %s\n", repo.Stars, repo.Forks, repo.Watchers, orDash(repo.Language))
	cmd.Printf("  Default branch: %s  Last push: %s\n", repo.DefaultBranch, formatAge(repo.LastCommit))
	cmd.Println()

	cmd.Printf("Open issues (%d)\n", len(summary.Issues))
	for i := range summary.Issues {
		printIssue(cmd, &summary.Issues[i])
	}
	cmd.Println()

	cmd.Printf("Open pull requests (%d)\n", len(summary.PRs))
	for i := range summary.PRs {
		pr := &summary.PRs[i]
		cmd.Printf("  #%-5d %s  (%s, %s)\n", pr.Number, pr.Title, pr.User.Login, formatAge(pr.UpdatedAt))
	}
	cmd.Println()

	cmd.Printf("Recent commits (%d)\n", len(summary.Commits))
	for i := range summary.Commits {
		printCommit(cmd, &summary.Commits[i])
	}
	return nil
}

func runGitHubIssues(cmd *cobra.Command, _ []string) error {
	if err := requireGitHub(); err != nil {
		return err
	}
	ref, err := resolveRepo(cmd, "")
	if err != nil {
		return err
	}

	issues, err := githubService.ListIssues(cmd.Context(), ref.Owner, ref.Name, ghState)
	if err != nil {
		return withHint(domain.ProviderGitHub, err)
	}
	issues = domain.WithoutPullRequests(issues)
	if jsonOutput {
		return printJSON(cmd, issues)
	}

	if len(issues) == 0 {
		cmd.Printf("No %s issues in %s\n", ghState, ref)
		return nil
	}
	for i := range issues {
		printIssue(cmd, &issues[i])
	}
	cmd.Printf("\nTotal: %d issues\n", len(issues))
	return nil
}

func runGitHubPulls(cmd *cobra.Command, _ []string) error {
	if err := requireGitHub(); err != nil {
		return err
	}
	ref, err := resolveRepo(cmd, "")
	if err != nil {
		return err
	}

	prs, err := githubService.ListPullRequests(cmd.Context(), ref.Owner, ref.Name, ghState)
	if err != nil {
		return withHint(domain.ProviderGitHub, err)
	}
	if jsonOutput {
		return printJSON(cmd, prs)
	}

	if len(prs) == 0 {
		cmd.Printf("No %s pull requests in %s\n", ghState, ref)
		return nil
	}
	for i := range prs {
		pr := &prs[i]
		state := pr.State
		if pr.MergedAt != nil {
			state = "merged"
		}
		cmd.Printf("  #%-5d %s  [%s] (%s, %s)\n", pr.Number, pr.Title, state, pr.User.Login, formatAge(pr.UpdatedAt))
	}
	cmd.Printf("\nTotal: %d pull requests\n", len(prs))
	return nil
}

func runGitHubCommits(cmd *cobra.Command, _ []string) error {
	if err := requireGitHub(); err != nil {
		return err
	}
	ref, err := resolveRepo(cmd, "")
	if err != nil {
		return err
	}

	commits, err := githubService.ListCommits(cmd.Context(), ref.Owner, ref.Name, ghBranch)
	if err != nil {
		return withHint(domain.ProviderGitHub, err)
	}
	if jsonOutput {
		return printJSON(cmd, commits)
	}

	for i := range commits {
		printCommit(cmd, &commits[i])
	}
	cmd.Printf("\nTotal: %d commits\n", len(commits))
	return nil
}

func runGitHubBranches(cmd *cobra.Command, _ []string) error {
	if err := requireGitHub(); err != nil {
		return err
	}
	ref, err := resolveRepo(cmd, "")
	if err != nil {
		return err
	}

	branches, err := githubService.ListBranches(cmd.Context(), ref.Owner, ref.Name)
	if err != nil {
		return withHint(domain.ProviderGitHub, err)
	}
	if jsonOutput {
		return printJSON(cmd, branches)
	}

	for _, b := range branches {
		protected := ""
		if b.Protected {
			protected = " (protected)"
		}
		cmd.Printf("  %s  %s%s\n", shortSHA(b.CommitSHA), b.Name, protected)
	}
	return nil
}

func runGitHubIssueCreate(cmd *cobra.Command, _ []string) error {
	if err := requireGitHub(); err != nil {
		return err
	}
	if strings.TrimSpace(ghIssueTitle) == "" {
		return fmt.Errorf("%w: --title is required", domain.ErrInvalidInput)
	}
	ref, err := resolveRepo(cmd, "")
	if err != nil {
		return err
	}

	issue, err := githubService.CreateIssue(cmd.Context(), ref.Owner, ref.Name, domain.NewIssue{
		Title:  ghIssueTitle,
		Body:   ghIssueBody,
		Labels: ghIssueLabel,
	})
	if err != nil {
		return withHint(domain.ProviderGitHub, err)
	}
	if jsonOutput {
		return printJSON(cmd, issue)
	}

	cmd.Printf("Created #%d: %s\n", issue.Number, issue.HTMLURL)
	return nil
}

func runGitHubIssueState(cmd *cobra.Command, arg, state string) error {
	if err := requireGitHub(); err != nil {
		return err
	}
	number, err := parseIssueNumber(arg)
	if err != nil {
		return err
	}
	ref, err := resolveRepo(cmd, "")
	if err != nil {
		return err
	}

	issue, err := githubService.UpdateIssueState(cmd.Context(), ref.Owner, ref.Name, number, state)
	if err != nil {
		return withHint(domain.ProviderGitHub, err)
	}
	cmd.Printf("#%d is now %s\n", issue.Number, issue.State)
	return nil
}

func runGitHubIssueComment(cmd *cobra.Command, args []string) error {
	if err := requireGitHub(); err != nil {
		return err
	}
	number, err := parseIssueNumber(args[0])
	if err != nil {
		return err
	}
	ref, err := resolveRepo(cmd, "")
	if err != nil {
		return err
	}

	comment, err := githubService.AddComment(cmd.Context(), ref.Owner, ref.Name, number, args[1])
	if err != nil {
		return withHint(domain.ProviderGitHub, err)
	}
	cmd.Printf("Commented on #%d: %s\n", number, comment.HTMLURL)
	return nil
}

func parseIssueNumber(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(s, "#"))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: issue number %q", domain.ErrInvalidInput, s)
	}
	return n, nil
}

func printIssue(cmd *cobra.Command, issue *domain.Issue) {
	labels := ""
	if len(issue.Labels) > 0 {
		labels = " [" + strings.Join(issue.Labels, ", ") + "]"
	}
	cmd.Printf("  #%-5d %s%s  (%s, %s)\n", issue.Number, issue.Title, labels, issue.User.Login, formatAge(issue.UpdatedAt))
}

func printCommit(cmd *cobra.Command, c *domain.Commit) {
	message, _, _ := strings.Cut(c.Message, "\n")
	cmd.Printf("  %s  %s  (%s, %s)\n", shortSHA(c.SHA), message, c.Author.Name, formatAge(c.Author.Date))
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// formatAge renders t relative to now.
func formatAge(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
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
