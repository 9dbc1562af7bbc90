package main

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Muzzu8421/dear-diary/pkg/journal"
	"github.com/Muzzu8421/dear-diary/pkg/storage"
	"github.com/Muzzu8421/dear-diary/pkg/utils"
)

// Shared flag variables, bound to persistent flags on rootCmd.
var (
	dbPath     string
	walMode    bool
	syncMode   string
	quotaBytes int64
)

// defaultQuotaBytes is 5 MiB, roughly what a browser grants localStorage.
const defaultQuotaBytes int64 = 5 * 1024 * 1024

// openStore resolves the database path, opens the connection, runs any
// pending schema migrations, and wraps the result in an entry store.
// The caller must close the returned *sql.DB.
func openStore() (*journal.EntryStore, *sql.DB, error) {
	resolvedPath, err := utils.ResolveAndEnsureDBPath(dbPath)
	if err != nil {
		return nil, nil, err
	}

	dbConn, err := storage.OpenDBConnection(resolvedPath, walMode, syncMode)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := storage.UpgradeDB(dbConn, resolvedPath, storage.TargetSchemaVersion); err != nil {
		dbConn.Close()
		return nil, nil, fmt.Errorf("failed to initialize/upgrade database schema for '%s': %w", resolvedPath, err)
	}

	return journal.NewEntryStore(storage.NewSQLiteStore(dbConn, quotaBytes)), dbConn, nil
}

func formatTimestamp(t time.Time) string {
	return t.Format(time.RFC3339)
}

func printEntry(entry journal.Entry) {
	fmt.Println("Entry Details:")
	fmt.Printf("ID:         %s\n", entry.ID)
	fmt.Printf("Date:       %s\n", formatTimestamp(entry.Date))
	fmt.Printf("Title:      %s\n", entry.Title)
	if entry.Mood != "" {
		fmt.Printf("Mood:       %s\n", entry.Mood)
	}
	fmt.Printf("Favorite:   %t\n", entry.Favorite)

	if len(entry.Tags) > 0 {
		fmt.Printf("Tags:       %s\n", strings.Join(entry.Tags, ", "))
	}
	if len(entry.Images) > 0 {
		names := make([]string, len(entry.Images))
		for i, img := range entry.Images {
			names[i] = fmt.Sprintf("%s (%s)", img.Name, img.ID)
		}
		fmt.Printf("Images:     %s\n", strings.Join(names, ", "))
	}

	fmt.Printf("Created At: %s\n", formatTimestamp(entry.CreatedAt))
	fmt.Printf("Updated At: %s\n", formatTimestamp(entry.UpdatedAt))
	fmt.Println("\nContent:")
	fmt.Println("------------------------------------------------------------")
	fmt.Println(entry.Content)
	fmt.Println("------------------------------------------------------------")
}
