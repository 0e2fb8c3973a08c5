package cli

import (
	"fmt"
	"net"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/devsync-cli/internal/adapters/driving/mcp"
	"github.com/custodia-labs/devsync-cli/internal/logger"
)

var (
	mcpPort int
	mcpHost string
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Model Context Protocol integration",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve repositories, tickets and pages to MCP clients",
	Long: `Serve the connected providers to AI assistants over the Model Context
Protocol.

Without --port the server speaks JSON-RPC on stdin/stdout, which is what
desktop assistants expect. With --port it serves the streamable HTTP
transport instead, for the MCP Inspector or remote clients.

Credentials saved by another devsync process while the server runs are
picked up without a restart.

Examples:
  devsync mcp serve
  devsync mcp serve --port 8080
  devsync mcp serve --port 8080 --host 0.0.0.0

Assistant configuration:
  {
    "mcpServers": {
      "devsync": { "command": "/path/to/devsync", "args": ["mcp", "serve"] }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntVarP(&mcpPort, "port", "p", 0, "serve HTTP on this port instead of stdio")
	mcpServeCmd.Flags().StringVar(&mcpHost, "host", "localhost", "interface to bind in HTTP mode")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

// mcpPorts collects the session services the server exposes.
func mcpPorts() *mcp.Ports {
	return &mcp.Ports{
		GitHub:     githubService,
		Jira:       jiraService,
		Confluence: confluenceService,
	}
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	if mcpPort < 0 || mcpPort > 65535 {
		return fmt.Errorf("invalid port %d", mcpPort)
	}

	server, err := mcp.NewServer(mcpPorts())
	if err != nil {
		return err
	}

	stop := watchForChanges(cmd, func() {
		logger.Debug("mcp: credential store changed, sessions restored")
	})
	defer stop()

	if mcpPort == 0 {
		return server.Run(cmd.Context())
	}

	addr := net.JoinHostPort(mcpHost, strconv.Itoa(mcpPort))
	cmd.PrintErrf("MCP server listening on http://%s\n", addr)
	return server.RunHTTP(cmd.Context(), addr)
}
