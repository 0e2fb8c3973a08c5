package cli

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/devsync-cli/internal/adapters/driving/tui"
	"github.com/custodia-labs/devsync-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/devsync-cli/internal/logger"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Open the DevSync dashboard in the terminal.

GitHub repositories come with their issues, pull requests and commits,
Jira projects with their tickets, and Confluence spaces with their pages
when Confluence is connected. Credentials or settings saved by another
devsync process are applied while the dashboard is open.

Press ? inside the dashboard for the full list of keys. The essentials:
j/k to move, enter to open, tab to switch GitHub tabs, m to move a Jira
ticket, r to refresh, esc to go back and q to quit.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func newTUIPorts() *tui.Ports {
	return tui.NewPorts(githubService, jiraService, confluenceService, settingsService)
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	app, err := tui.NewApp(newTUIPorts())
	if err != nil {
		return fmt.Errorf("starting dashboard: %w", err)
	}
	app.WithContext(cmd.Context())

	defer func() {
		if r := recover(); r != nil {
			logger.Warn("dashboard panic: %v\n%s", r, debug.Stack())
			err = fmt.Errorf("dashboard crashed: %v", r)
		}
	}()

	program := app.NewProgram()
	stop := watchForChanges(cmd, func() { program.Send(messages.StoreChanged{}) })
	defer stop()

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}
	return nil
}
