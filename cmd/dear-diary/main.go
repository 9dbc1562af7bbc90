package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	diary "github.com/Muzzu8421/dear-diary/pkg"
	"github.com/Muzzu8421/dear-diary/pkg/storage"
)

var rootCmd = &cobra.Command{
	Use:     "dear-diary",
	Short:   "A local-first diary: dated entries with moods, tags, images, and streaks.",
	Long:    ``,
	Version: fmt.Sprintf("v%s", diary.Version),
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var completionShells = []string{"bash", "zsh", "fish", "powershell"}

var completionCmd = &cobra.Command{
	Use:   fmt.Sprintf("completion %s", strings.Join(completionShells, "|")),
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for dear-diary.

The command prints a completion script to stdout. You can source it in your shell
or install it to the appropriate location for your shell to enable completions permanently.

Examples:

  Bash (current shell):
    $ source <(dear-diary completion bash)

  Bash (persist):
    $ dear-diary completion bash > /etc/bash_completion.d/dear-diary

  Zsh:
    $ dear-diary completion zsh > "${fpath[1]}/_dear-diary"

  Fish:
    $ dear-diary completion fish | source
    $ dear-diary completion fish > ~/.config/fish/completions/dear-diary.fish

  PowerShell:
    PS> dear-diary completion powershell | Out-String | Invoke-Expression`,
	DisableFlagsInUseLine: true,
	ValidArgs:             completionShells,
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(cmd.OutOrStdout())
		case "zsh":
			return rootCmd.GenZshCompletion(cmd.OutOrStdout())
		case "fish":
			return rootCmd.GenFishCompletion(cmd.OutOrStdout(), true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(cmd.OutOrStdout())
		default:
			return fmt.Errorf("unsupported shell: %s", args[0])
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of dear-diary",
	Long:  `All software has versions. This is dear-diary's`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(diary.Version)
	},
}

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the diary database",
	Long:  `Provides commands for managing the diary SQLite database, including schema upgrades.`,
}

var dbUpgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Upgrade the diary database schema to the latest version for the diarydb component",
	Long: `Connects to the SQLite database at the specified path (provided with the --db flag) and applies any necessary
schema migrations to bring the diarydb component up to the current application schema version.
If the database does not exist or is uninitialized for this component, it will be created
and initialized with the latest schema for the diarydb component.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if dbPath == "" {
			return errors.New("database path is required")
		}

		fmt.Printf("Attempting to upgrade diarydb component in database at: %s (WAL: %t, Sync: %s)\n", dbPath, walMode, syncMode)

		dbConn, err := storage.OpenDBConnection(dbPath, walMode, syncMode)
		if err != nil {
			return err
		}
		defer dbConn.Close()

		if err := storage.UpgradeDB(dbConn, dbPath, storage.TargetSchemaVersion); err != nil {
			return err
		}
		return nil
	},
}

func initCmd() {
	// Persistent DB flags on rootCmd so all commands can use them.
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the database file (uses a system-specific default if not provided)")
	rootCmd.PersistentFlags().BoolVar(&walMode, "wal", true, "Enable SQLite WAL (Write-Ahead Logging) mode")
	rootCmd.PersistentFlags().StringVar(&syncMode, "sync", "NORMAL", "SQLite synchronous pragma (OFF, NORMAL, FULL, EXTRA)")
	rootCmd.PersistentFlags().Int64Var(&quotaBytes, "quota", defaultQuotaBytes, "Storage quota in bytes; writes past it fail atomically (0 = unlimited)")

	dbUpgradeCmd.MarkFlagRequired("db")
	dbCmd.AddCommand(dbUpgradeCmd)

	initEntriesCmd()
	rootCmd.AddCommand(completionCmd, versionCmd, dbCmd, entriesCmd, statsCmd, mcpCmd)
}

func main() {
	initCmd()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
