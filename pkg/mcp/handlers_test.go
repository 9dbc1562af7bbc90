package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Muzzu8421/dear-diary/pkg/journal"
	"github.com/Muzzu8421/dear-diary/pkg/storage"
)

func callSaveEntry(t *testing.T, store *journal.EntryStore, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()

	request := mcp.CallToolRequest{}
	request.Params.Name = "save_entry"
	request.Params.Arguments = args

	result, err := saveEntryHandler(store)(context.Background(), request)
	if err != nil {
		t.Fatalf("save_entry handler returned transport error: %v", err)
	}
	return result
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()

	if len(result.Content) == 0 {
		t.Fatalf("Expected tool result content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("Expected text content, got %T", result.Content[0])
	}
	return text.Text
}

func TestSaveEntryRejectsUnknownMood(t *testing.T) {
	store := journal.NewEntryStore(storage.NewMemoryStore())

	result := callSaveEntry(t, store, map[string]interface{}{
		"content": "a grumpy day",
		"mood":    "grumpy",
	})
	if !result.IsError {
		t.Fatalf("Expected an error result for an unknown mood")
	}
	text := resultText(t, result)
	if !strings.Contains(text, "grumpy") || !strings.Contains(text, "happy") {
		t.Errorf("Expected the error to name the bad mood and list valid ones, got %q", text)
	}

	entries, err := store.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected nothing saved after a rejected mood, got %d entries", len(entries))
	}
}

func TestSaveEntryAcceptsKnownMood(t *testing.T) {
	store := journal.NewEntryStore(storage.NewMemoryStore())

	result := callSaveEntry(t, store, map[string]interface{}{
		"content": "sunny walk",
		"mood":    "peaceful",
	})
	if result.IsError {
		t.Fatalf("Expected success for a valid mood, got: %s", resultText(t, result))
	}

	entries, err := store.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Mood != "peaceful" {
		t.Fatalf("Expected one saved entry with the mood set, got %d entries", len(entries))
	}
}
