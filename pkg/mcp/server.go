package mcp

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	diary "github.com/Muzzu8421/dear-diary/pkg"
	"github.com/Muzzu8421/dear-diary/pkg/journal"
	"github.com/Muzzu8421/dear-diary/pkg/storage"
	"github.com/Muzzu8421/dear-diary/pkg/utils"
)

// DiaryMCPServer exposes the diary entry store over MCP stdio, backed by the
// SQLite key-value store at DBPath.
type DiaryMCPServer struct {
	mcpServer *server.MCPServer
	db        *sql.DB
	store     *journal.EntryStore
	DBPath    string
}

// NewDiaryMCPServer opens (creating and migrating if necessary) the database
// at dbPath and wraps it in an MCP server. quotaBytes of 0 disables the
// storage quota.
func NewDiaryMCPServer(dbPath string, walMode bool, syncMode string, quotaBytes int64) (*DiaryMCPServer, error) {
	resolvedPath, err := utils.ResolveAndEnsureDBPath(dbPath)
	if err != nil {
		return nil, err
	}

	s := server.NewMCPServer(
		"Dear Diary MCP Server",
		diary.Version,
		server.WithResourceCapabilities(true, true),
		server.WithLogging(),
		server.WithRecovery(),
	)

	dbConn, err := storage.OpenDBConnection(resolvedPath, walMode, syncMode)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := storage.UpgradeDB(dbConn, resolvedPath, storage.TargetSchemaVersion); err != nil {
		dbConn.Close()
		return nil, fmt.Errorf("failed to initialize/upgrade database schema for '%s': %w", resolvedPath, err)
	}

	store := journal.NewEntryStore(storage.NewSQLiteStore(dbConn, quotaBytes))

	return &DiaryMCPServer{
		mcpServer: s,
		db:        dbConn,
		store:     store,
		DBPath:    resolvedPath,
	}, nil
}

// Start runs the stdio event loop. Make sure to register tools beforehand.
func (s *DiaryMCPServer) Start() error {
	return server.ServeStdio(s.mcpServer)
}

// Store returns the entry store shared by all tool handlers.
func (s *DiaryMCPServer) Store() *journal.EntryStore {
	return s.store
}

// MCPRawServer exposes the raw mcp-go server (useful for additional configuration).
func (s *DiaryMCPServer) MCPRawServer() *server.MCPServer {
	return s.mcpServer
}

// Close cleans up allocated resources.
func (s *DiaryMCPServer) Close() error {
	if s.db != nil {
		// TRUNCATE mode waits for transactions and writes the WAL back to the main DB.
		_, err := s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE);")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: WAL checkpoint failed during close: %v\n", err)
		}
		return s.db.Close()
	}
	return nil
}
