package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/folio/internal/adapters/driving/mcp"
)

var mcpPort int

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Model Context Protocol server",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the library to MCP clients",
	Long: `Serve exposes parse_document, import_novel, list_novels and read_chapter
tools plus the folio://novels resources. It speaks MCP over stdio unless
--port is given, in which case it serves streamable HTTP on localhost.`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntVar(&mcpPort, "port", 0, "serve HTTP on this port instead of stdio")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	if importService == nil {
		return errNotConfigured("import")
	}
	if libraryService == nil {
		return errNotConfigured("library")
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Import:  importService,
		Library: libraryService,
	})
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if mcpPort > 0 {
		return server.RunHTTP(ctx, fmt.Sprintf("127.0.0.1:%d", mcpPort))
	}
	return server.Run(ctx)
}
