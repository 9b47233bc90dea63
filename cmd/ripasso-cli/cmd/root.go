package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ripasso/internal/adapters/filesystem"
	"ripasso/internal/adapters/sqlite"
	"ripasso/internal/config"
	"ripasso/internal/storage"
)

var (
	vaultPath string
	dbPath    string
	repo      *storage.Repository
)

var rootCmd = &cobra.Command{
	Use:   "ripasso-cli",
	Short: "CLI for the ripasso snippet database",
	Long: `ripasso-cli operates on the spaced-repetition snippet database that
the ripasso plugin keeps inside a notes vault.

It provides commands to add, list, review, and dismiss snippets, plus raw
query and exec access to the underlying SQLite file.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		vault := filesystem.NewVault(vaultPath)
		r, err := storage.Open(cmd.Context(), vault, sqlite.Runtime(), dbPath, storage.Schema, nil)
		if err != nil {
			return err
		}
		repo = r
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if repo != nil {
			repo.Close()
		}
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cfg := config.Load()
	rootCmd.PersistentFlags().StringVarP(&vaultPath, "vault", "v", cfg.Vault, "path to the vault")
	rootCmd.PersistentFlags().StringVar(&dbPath, "database", cfg.Database, "vault-relative database file")
}
