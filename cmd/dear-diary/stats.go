package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show journaling statistics",
	Long: `Show derived journaling statistics: total entries, writing streaks,
entries this month, and the date of the most recent entry.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, dbConn, err := openStore()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		stats, err := store.Stats()
		if err != nil {
			return fmt.Errorf("failed to read stats: %w", err)
		}

		fmt.Println("Diary Statistics:")
		fmt.Printf("Total Entries:      %d\n", stats.TotalEntries)
		fmt.Printf("Current Streak:     %d\n", stats.CurrentStreak)
		fmt.Printf("Longest Streak:     %d\n", stats.LongestStreak)
		fmt.Printf("Entries This Month: %d\n", stats.EntriesThisMonth)
		if stats.LastEntryDate != nil {
			fmt.Printf("Last Entry:         %s\n", formatTimestamp(*stats.LastEntryDate))
		} else {
			fmt.Println("Last Entry:         none")
		}
		return nil
	},
}
