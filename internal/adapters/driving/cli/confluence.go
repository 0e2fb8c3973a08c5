package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/devsync-cli/internal/core/domain"
	"github.com/custodia-labs/devsync-cli/internal/markup"
)

var confluenceCmd = &cobra.Command{
	Use:     "confluence",
	Aliases: []string{"wiki"},
	Short:   "Browse Confluence spaces and pages",
	Long: `Browse Confluence spaces and pages.

Confluence takes the same site, email and API token as Jira:
  devsync credentials set confluence`,
}

var confluenceSpacesCmd = &cobra.Command{
	Use:   "spaces",
	Short: "List spaces",
	Args:  cobra.NoArgs,
	RunE:  runConfluenceSpaces,
}

var confluencePagesCmd = &cobra.Command{
	Use:   "pages [space]",
	Short: "List the pages of a space",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfluencePages,
}

var confluencePageMarkdown bool

var confluencePageCmd = &cobra.Command{
	Use:   "page [id]",
	Short: "Show a page with its storage-format body",
	Long: `Show a page. The body is printed as plain text, or as Markdown with
--markdown. --json prints the raw storage-format body.`,
	Args: cobra.ExactArgs(1),
	RunE: runConfluencePage,
}

func init() {
	confluencePageCmd.Flags().BoolVar(&confluencePageMarkdown, "markdown", false, "print the body as Markdown")
	confluenceCmd.AddCommand(confluenceSpacesCmd)
	confluenceCmd.AddCommand(confluencePagesCmd)
	confluenceCmd.AddCommand(confluencePageCmd)
	rootCmd.AddCommand(confluenceCmd)
}

func requireConfluence() error {
	if confluenceService == nil {
		return errors.New("confluence service not configured")
	}
	return nil
}

func runConfluenceSpaces(cmd *cobra.Command, _ []string) error {
	if err := requireConfluence(); err != nil {
		return err
	}

	spaces, err := confluenceService.ListSpaces(cmd.Context())
	if err != nil {
		return withHint(domain.ProviderConfluence, err)
	}
	if jsonOutput {
		return printJSON(cmd, spaces)
	}

	if len(spaces) == 0 {
		cmd.Println("No spaces found.")
		return nil
	}
	for i := range spaces {
		s := &spaces[i]
		cmd.Printf("  %-12s %s (%s)\n", s.Key, s.Name, s.Type)
	}
	return nil
}

func runConfluencePages(cmd *cobra.Command, args []string) error {
	if err := requireConfluence(); err != nil {
		return err
	}

	pages, err := confluenceService.ListPages(cmd.Context(), args[0])
	if err != nil {
		return withHint(domain.ProviderConfluence, err)
	}
	if jsonOutput {
		return printJSON(cmd, pages)
	}

	if len(pages) == 0 {
		cmd.Printf("No pages in %s\n", args[0])
		return nil
	}
	for i := range pages {
		p := &pages[i]
		cmd.Printf("  %-12s %s\n", p.ID, p.Title)
	}
	cmd.Printf("\nTotal: %d pages\n", len(pages))
	return nil
}

func runConfluencePage(cmd *cobra.Command, args []string) error {
	if err := requireConfluence(); err != nil {
		return err
	}

	page, err := confluenceService.GetPage(cmd.Context(), args[0])
	if err != nil {
		return withHint(domain.ProviderConfluence, err)
	}
	if jsonOutput {
		return printJSON(cmd, page)
	}

	cmd.Printf("%s\n", page.Title)
	cmd.Printf("  ID: %s  Space: %s  Version: %d\n", page.ID, orDash(page.SpaceKey), page.Version)
	if page.WebURL != "" {
		cmd.Printf("  %s\n", page.WebURL)
	}
	text := markup.PlainText(page.Body)
	if confluencePageMarkdown {
		text = markup.Markdown(page.Body, page.WebURL)
	}
	if text != "" {
		cmd.Println()
		cmd.Println(text)
	}
	return nil
}
