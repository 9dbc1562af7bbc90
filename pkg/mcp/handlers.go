package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/Muzzu8421/dear-diary/pkg/journal"
	"github.com/Muzzu8421/dear-diary/pkg/storage"
)

// RegisterPingTool registers the simple ping tool.
func RegisterPingTool(s *server.MCPServer) {
	pingTool := mcp.NewTool("ping",
		mcp.WithDescription("Responds with 'pong' to check if the Dear Diary MCP server is alive."),
	)
	s.AddTool(pingTool, pingHandler)
}

func pingHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText("pong_diary"), nil
}

// RegisterSaveEntryTool registers the save_entry tool. Saving with an id that
// already exists replaces that entry wholesale; omitting the id creates a new
// entry.
func RegisterSaveEntryTool(s *server.MCPServer, store *journal.EntryStore) {
	saveEntry := mcp.NewTool("save_entry",
		mcp.WithDescription("Creates or replaces a diary entry. Omit 'id' to create a new entry."),
		mcp.WithString("id", mcp.Description("Identifier of an existing entry to replace. A fresh one is generated when omitted.")),
		mcp.WithString("title", mcp.Description("Entry title. Defaults to a placeholder when empty.")),
		mcp.WithString("content", mcp.Description("Entry body text.")),
		mcp.WithString("mood", mcp.Description(fmt.Sprintf("Optional mood, one of: %s.", strings.Join(journal.Moods, ", ")))),
		mcp.WithString("tags", mcp.Description("Comma-separated list of tags.")),
		mcp.WithString("date", mcp.Description("Diary date in RFC 3339 format. Defaults to now.")),
		mcp.WithBoolean("favorite", mcp.Description("Marks the entry as a favorite.")),
	)
	s.AddTool(saveEntry, saveEntryHandler(store))
}

func saveEntryHandler(store *journal.EntryStore) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		entry := journal.Entry{}

		if id, ok := request.Params.Arguments["id"].(string); ok && id != "" {
			existing, found, err := store.FindByID(id)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to look up entry '%s': %v", id, err)), nil
			}
			if found {
				entry = existing
			} else {
				entry.ID = id
			}
		} else {
			entry.ID = uuid.NewString()
		}

		if title, ok := request.Params.Arguments["title"].(string); ok {
			entry.Title = title
		}
		if content, ok := request.Params.Arguments["content"].(string); ok {
			entry.Content = content
		}
		if mood, ok := request.Params.Arguments["mood"].(string); ok {
			if mood != "" && !journal.ValidMood(mood) {
				return mcp.NewToolResultError(fmt.Sprintf("Invalid 'mood' value '%s'; valid moods are: %s.", mood, strings.Join(journal.Moods, ", "))), nil
			}
			entry.Mood = mood
		}
		if tagsStr, ok := request.Params.Arguments["tags"].(string); ok && tagsStr != "" {
			entry.Tags = nil
			for _, tag := range strings.Split(tagsStr, ",") {
				if t := strings.TrimSpace(tag); t != "" {
					entry.Tags = append(entry.Tags, t)
				}
			}
		}
		if favorite, ok := request.Params.Arguments["favorite"].(bool); ok {
			entry.Favorite = favorite
		}
		if dateStr, ok := request.Params.Arguments["date"].(string); ok && dateStr != "" {
			date, err := time.Parse(time.RFC3339, dateStr)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Invalid 'date' value '%s': %v", dateStr, err)), nil
			}
			entry.Date = date
		}

		saved, err := store.Upsert(entry)
		if err != nil {
			if errors.Is(err, storage.ErrQuotaExceeded) {
				return mcp.NewToolResultError("Storage quota exceeded; the entry was not saved. Delete entries or images to free space."), nil
			}
			return mcp.NewToolResultError(fmt.Sprintf("Failed to save entry: %v", err)), nil
		}

		jsonResult, err := json.Marshal(saved)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize entry to JSON: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonResult)), nil
	}
}

// RegisterGetEntryTool registers the get_entry tool.
func RegisterGetEntryTool(s *server.MCPServer, store *journal.EntryStore) {
	getEntry := mcp.NewTool("get_entry",
		mcp.WithDescription("Retrieves a diary entry by its id."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Identifier of the entry to retrieve.")),
	)
	s.AddTool(getEntry, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, idOk := request.Params.Arguments["id"].(string)
		if !idOk || id == "" {
			return mcp.NewToolResultError("'id' parameter is required and must be a non-empty string."), nil
		}

		entry, found, err := store.FindByID(id)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get entry: %v", err)), nil
		}
		if !found {
			return mcp.NewToolResultError(fmt.Sprintf("Entry with id '%s' not found.", id)), nil
		}

		jsonResult, err := json.Marshal(entry)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize entry to JSON: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonResult)), nil
	})
}

// RegisterListEntriesTool registers the list_entries tool.
func RegisterListEntriesTool(s *server.MCPServer, store *journal.EntryStore) {
	listEntries := mcp.NewTool("list_entries",
		mcp.WithDescription("Lists all diary entries, newest first."),
	)
	s.AddTool(listEntries, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		entries, err := store.LoadAll()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list entries: %v", err)), nil
		}

		if len(entries) == 0 {
			return mcp.NewToolResultText("[]"), nil
		}

		jsonResult, err := json.Marshal(entries)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize entries to JSON: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonResult)), nil
	})
}

// RegisterDeleteEntryTool registers the delete_entry tool.
func RegisterDeleteEntryTool(s *server.MCPServer, store *journal.EntryStore) {
	deleteEntry := mcp.NewTool("delete_entry",
		mcp.WithDescription("Deletes a diary entry by its id. Deleting an unknown id is a no-op."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Identifier of the entry to delete.")),
	)
	s.AddTool(deleteEntry, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, idOk := request.Params.Arguments["id"].(string)
		if !idOk || id == "" {
			return mcp.NewToolResultError("'id' parameter is required and must be a non-empty string."), nil
		}

		if err := store.Delete(id); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to delete entry: %v", err)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Entry '%s' deleted.", id)), nil
	})
}

// RegisterGetStatsTool registers the get_stats tool.
func RegisterGetStatsTool(s *server.MCPServer, store *journal.EntryStore) {
	getStats := mcp.NewTool("get_stats",
		mcp.WithDescription("Returns journaling statistics: totals, streaks, and this-month count."),
	)
	s.AddTool(getStats, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		stats, err := store.Stats()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to read stats: %v", err)), nil
		}

		jsonResult, err := json.Marshal(stats)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize stats to JSON: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonResult)), nil
	})
}

// RegisterListMonthsTool registers the list_months tool.
func RegisterListMonthsTool(s *server.MCPServer, store *journal.EntryStore) {
	listMonths := mcp.NewTool("list_months",
		mcp.WithDescription("Lists entries grouped by calendar month."),
		mcp.WithString("sort", mcp.Description("Sort mode: 'date' (default) or 'favorite'.")),
	)
	s.AddTool(listMonths, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		mode := journal.SortByDate
		if sortStr, ok := request.Params.Arguments["sort"].(string); ok && sortStr != "" {
			switch journal.SortMode(sortStr) {
			case journal.SortByDate, journal.SortByFavorite:
				mode = journal.SortMode(sortStr)
			default:
				return mcp.NewToolResultError(fmt.Sprintf("Invalid 'sort' value '%s'; use 'date' or 'favorite'.", sortStr)), nil
			}
		}

		entries, err := store.LoadAll()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list entries: %v", err)), nil
		}

		groups := journal.GroupByMonth(entries, mode)
		if len(groups) == 0 {
			return mcp.NewToolResultText("[]"), nil
		}

		jsonResult, err := json.Marshal(groups)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize groups to JSON: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonResult)), nil
	})
}
