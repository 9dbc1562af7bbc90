package main

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Muzzu8421/dear-diary/pkg/journal"
	"github.com/Muzzu8421/dear-diary/pkg/storage"
)

var sortModeFlag string

var entriesCmd = &cobra.Command{
	Use:   "entries",
	Short: "Manage diary entries",
	Long:  `Create, list, update, and delete diary entries, and manage their tags and images.`,
}

var saveEntryCmd = &cobra.Command{
	Use:   "save",
	Short: "Create or update a diary entry",
	Long: `Create a new diary entry, or update an existing one when --id is provided.
Updating only changes the fields whose flags are set; the rest are kept as stored.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, dbConn, err := openStore()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		entry := journal.Entry{}

		idFlag, _ := cmd.Flags().GetString("id")
		if idFlag != "" {
			existing, found, err := store.FindByID(idFlag)
			if err != nil {
				return fmt.Errorf("failed to look up entry: %w", err)
			}
			if found {
				entry = existing
			} else {
				entry.ID = idFlag
			}
		} else {
			entry.ID = uuid.NewString()
		}

		if cmd.Flags().Changed("title") {
			entry.Title, _ = cmd.Flags().GetString("title")
		}
		if cmd.Flags().Changed("content") {
			entry.Content, _ = cmd.Flags().GetString("content")
		}
		if cmd.Flags().Changed("mood") {
			mood, _ := cmd.Flags().GetString("mood")
			if mood != "" && !journal.ValidMood(mood) {
				return fmt.Errorf("invalid mood '%s'; valid moods are: %s", mood, strings.Join(journal.Moods, ", "))
			}
			entry.Mood = mood
		}
		if cmd.Flags().Changed("favorite") {
			entry.Favorite, _ = cmd.Flags().GetBool("favorite")
		}
		if cmd.Flags().Changed("tags") {
			tagsStr, _ := cmd.Flags().GetString("tags")
			entry.Tags = nil
			for _, tag := range strings.Split(tagsStr, ",") {
				if t := strings.TrimSpace(tag); t != "" {
					entry.Tags = append(entry.Tags, t)
				}
			}
		}
		if cmd.Flags().Changed("date") {
			dateStr, _ := cmd.Flags().GetString("date")
			date, err := time.Parse(time.RFC3339, dateStr)
			if err != nil {
				return fmt.Errorf("invalid date '%s' (expected RFC 3339): %w", dateStr, err)
			}
			entry.Date = date
		}

		saved, err := store.Upsert(entry)
		if errors.Is(err, storage.ErrQuotaExceeded) {
			return errors.New("storage quota exceeded; the entry was not saved")
		}
		if err != nil {
			return fmt.Errorf("failed to save entry: %w", err)
		}

		printEntry(saved)
		return nil
	},
}

var getEntryCmd = &cobra.Command{
	Use:   "get [entry-id]",
	Short: "Get an entry by ID",
	Long:  `Retrieve a diary entry by its ID.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, dbConn, err := openStore()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		entry, found, err := store.FindByID(args[0])
		if err != nil {
			return fmt.Errorf("failed to get entry: %w", err)
		}
		if !found {
			return fmt.Errorf("entry not found: %s", args[0])
		}

		printEntry(entry)
		return nil
	},
}

var listEntriesCmd = &cobra.Command{
	Use:   "list",
	Short: "List all diary entries",
	Long:  `List all diary entries, newest first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, dbConn, err := openStore()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		entries, err := store.LoadAll()
		if err != nil {
			return fmt.Errorf("failed to list entries: %w", err)
		}

		if len(entries) == 0 {
			fmt.Println("No entries yet.")
			return nil
		}

		fmt.Println("Entries:")
		fmt.Println("ID | Date | Title | Mood | Favorite | Tags")
		fmt.Println("------------------------------------------------------------")
		for _, e := range entries {
			tags := "none"
			if len(e.Tags) > 0 {
				tags = strings.Join(e.Tags, ", ")
			}
			fmt.Printf("%s | %s | %s | %s | %t | %s\n",
				e.ID, e.Date.Format("2006-01-02"), e.Title, e.Mood, e.Favorite, tags)
		}
		return nil
	},
}

var deleteEntryCmd = &cobra.Command{
	Use:   "delete [entry-id]",
	Short: "Delete an entry",
	Long:  `Delete a diary entry by its ID. Deleting an unknown ID is a no-op.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, dbConn, err := openStore()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		if err := store.Delete(args[0]); err != nil {
			return fmt.Errorf("failed to delete entry: %w", err)
		}

		fmt.Printf("Entry %s deleted.\n", args[0])
		return nil
	},
}

var tagEntryCmd = &cobra.Command{
	Use:   "tag [entry-id] [tag]...",
	Short: "Tag an entry",
	Long:  `Add one or more tags to an entry. Duplicate tags are ignored.`,
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, dbConn, err := openStore()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		entry, found, err := store.FindByID(args[0])
		if err != nil {
			return fmt.Errorf("failed to look up entry: %w", err)
		}
		if !found {
			return fmt.Errorf("entry not found: %s", args[0])
		}

		entry.Tags = append(entry.Tags, args[1:]...)
		if _, err := store.Upsert(entry); err != nil {
			return fmt.Errorf("failed to tag entry: %w", err)
		}

		fmt.Printf("Entry %s tagged with: %s\n", args[0], strings.Join(args[1:], ", "))
		return nil
	},
}

var untagEntryCmd = &cobra.Command{
	Use:   "untag [entry-id] [tag]...",
	Short: "Remove tags from an entry",
	Long:  `Remove one or more tags from an entry. Tags not present are reported but not treated as errors.`,
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, dbConn, err := openStore()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		entry, found, err := store.FindByID(args[0])
		if err != nil {
			return fmt.Errorf("failed to look up entry: %w", err)
		}
		if !found {
			return fmt.Errorf("entry not found: %s", args[0])
		}

		remove := make(map[string]bool, len(args)-1)
		for _, tag := range args[1:] {
			remove[tag] = true
		}

		kept := entry.Tags[:0]
		removed := []string{}
		for _, tag := range entry.Tags {
			if remove[tag] {
				removed = append(removed, tag)
			} else {
				kept = append(kept, tag)
			}
		}
		entry.Tags = kept

		if _, err := store.Upsert(entry); err != nil {
			return fmt.Errorf("failed to update entry tags: %w", err)
		}

		if len(removed) == 0 {
			fmt.Printf("No matching tags on entry %s.\n", args[0])
		} else {
			fmt.Printf("Tags removed from entry %s: %s\n", args[0], strings.Join(removed, ", "))
		}
		return nil
	},
}

var attachImageCmd = &cobra.Command{
	Use:   "attach-image [entry-id] [file]",
	Short: "Attach an image to an entry",
	Long: fmt.Sprintf(`Attach an image file to a diary entry. The image is stored inline,
base64-encoded, alongside the entry. An entry holds at most %d images.`, journal.MaxImagesPerEntry),
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("failed to read image file: %w", err)
		}

		store, dbConn, err := openStore()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		entry, found, err := store.FindByID(args[0])
		if err != nil {
			return fmt.Errorf("failed to look up entry: %w", err)
		}
		if !found {
			return fmt.Errorf("entry not found: %s", args[0])
		}

		image := journal.Image{
			ID:         uuid.NewString(),
			Name:       filepath.Base(args[1]),
			Data:       base64.StdEncoding.EncodeToString(data),
			CapturedAt: time.Now(),
		}
		entry.Images = append(entry.Images, image)

		if _, err := store.Upsert(entry); err != nil {
			if errors.Is(err, journal.ErrTooManyImages) {
				return fmt.Errorf("entry %s already holds the maximum of %d images", args[0], journal.MaxImagesPerEntry)
			}
			if errors.Is(err, storage.ErrQuotaExceeded) {
				return errors.New("storage quota exceeded; the image was not attached")
			}
			return fmt.Errorf("failed to attach image: %w", err)
		}

		fmt.Printf("Image %s attached to entry %s as %s.\n", image.Name, args[0], image.ID)
		return nil
	},
}

var removeImageCmd = &cobra.Command{
	Use:   "remove-image [entry-id] [image-id]",
	Short: "Remove an image from an entry",
	Long:  `Remove an attached image from a diary entry by its image ID.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, dbConn, err := openStore()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		entry, found, err := store.FindByID(args[0])
		if err != nil {
			return fmt.Errorf("failed to look up entry: %w", err)
		}
		if !found {
			return fmt.Errorf("entry not found: %s", args[0])
		}

		kept := entry.Images[:0]
		removed := false
		for _, img := range entry.Images {
			if img.ID == args[1] {
				removed = true
			} else {
				kept = append(kept, img)
			}
		}
		if !removed {
			return fmt.Errorf("image not found on entry %s: %s", args[0], args[1])
		}
		entry.Images = kept

		if _, err := store.Upsert(entry); err != nil {
			return fmt.Errorf("failed to remove image: %w", err)
		}

		fmt.Printf("Image %s removed from entry %s.\n", args[1], args[0])
		return nil
	},
}

var listMonthsCmd = &cobra.Command{
	Use:   "months",
	Short: "List entries grouped by month",
	Long:  `List diary entries grouped by calendar month, with favorites optionally sorted first within each group.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		mode := journal.SortMode(sortModeFlag)
		if mode != journal.SortByDate && mode != journal.SortByFavorite {
			return fmt.Errorf("invalid sort mode '%s'; use 'date' or 'favorite'", sortModeFlag)
		}

		store, dbConn, err := openStore()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		entries, err := store.LoadAll()
		if err != nil {
			return fmt.Errorf("failed to list entries: %w", err)
		}

		groups := journal.GroupByMonth(entries, mode)
		if len(groups) == 0 {
			fmt.Println("No entries yet.")
			return nil
		}

		for _, group := range groups {
			fmt.Printf("%s (%d entries)\n", group.Label, len(group.Entries))
			for _, e := range group.Entries {
				marker := " "
				if e.Favorite {
					marker = "*"
				}
				fmt.Printf("  %s %s | %s | %s\n", marker, e.Date.Format("2006-01-02"), e.ID, e.Title)
			}
		}
		return nil
	},
}

func initEntriesCmd() {
	saveEntryCmd.Flags().String("id", "", "ID of an existing entry to update (a fresh one is generated when omitted)")
	saveEntryCmd.Flags().String("title", "", "Title of the entry (a placeholder is used when empty)")
	saveEntryCmd.Flags().String("content", "", "Content of the entry")
	saveEntryCmd.Flags().String("mood", "", fmt.Sprintf("Mood of the entry (one of: %s)", strings.Join(journal.Moods, ", ")))
	saveEntryCmd.Flags().String("tags", "", "Comma-separated list of tags for the entry")
	saveEntryCmd.Flags().String("date", "", "Diary date in RFC 3339 format (defaults to now)")
	saveEntryCmd.Flags().Bool("favorite", false, "Mark the entry as a favorite")

	listMonthsCmd.Flags().StringVar(&sortModeFlag, "sort", string(journal.SortByDate), "Sort mode within each month: 'date' or 'favorite'")

	entriesCmd.AddCommand(
		saveEntryCmd,
		getEntryCmd,
		listEntriesCmd,
		deleteEntryCmd,
		tagEntryCmd,
		untagEntryCmd,
		attachImageCmd,
		removeImageCmd,
		listMonthsCmd,
	)
}
