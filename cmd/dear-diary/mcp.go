package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Muzzu8421/dear-diary/pkg/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Dear Diary MCP server (stdio)",
	Long: `Start a Model Context Protocol (MCP) server that exposes diary entries,
statistics, and month groupings as MCP tools via STDIO.

The --db flag is optional. If not provided, a system-specific default location will be used:
- Windows: %USERPROFILE%\AppData\Roaming\dear-diary\dear-diary.db
- macOS: ~/Library/Application Support/dear-diary/dear-diary.db
- Linux: ~/.local/share/dear-diary/dear-diary.db

Example:
  dear-diary mcp
  dear-diary mcp --db diary.db --quota 10485760`,
	RunE: func(cmd *cobra.Command, args []string) error {
		srv, err := mcp.NewDiaryMCPServer(dbPath, walMode, syncMode, quotaBytes)
		if err != nil {
			return err
		}
		defer srv.Close()

		store := srv.Store()
		s := srv.MCPRawServer()

		mcp.RegisterPingTool(s)
		mcp.RegisterSaveEntryTool(s, store)
		mcp.RegisterGetEntryTool(s, store)
		mcp.RegisterListEntriesTool(s, store)
		mcp.RegisterDeleteEntryTool(s, store)
		mcp.RegisterGetStatsTool(s, store)
		mcp.RegisterListMonthsTool(s, store)

		// Log to stderr so we don't contaminate the JSON-RPC stream on stdout.
		fmt.Fprintf(os.Stderr, "Dear Diary MCP server started. DB: %s (WAL: %t, Sync: %s)\n", srv.DBPath, walMode, syncMode)
		fmt.Fprintln(os.Stderr, "Available tools: ping, save_entry, get_entry, list_entries, delete_entry, get_stats, list_months")
		fmt.Fprintln(os.Stderr, "Listening for MCP JSON-RPC on STDIN/STDOUT ... (Ctrl+C to quit)")

		// Run the server (blocks until stdio closes).
		return srv.Start()
	},
}
