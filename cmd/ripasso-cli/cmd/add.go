package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"ripasso/internal/application/commands"
)

var addDueInDays int

var addCmd = &cobra.Command{
	Use:   "add <reference> <content>",
	Short: "Add a snippet for a note",
	Long: `Add a snippet anchored to a vault-relative note path. The snippet
becomes due after --due-in days (default: immediately).`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		due := time.Now().Add(time.Duration(addDueInDays) * 24 * time.Hour).Unix()
		snippet, err := commands.NewAddSnippetCommand(repo, args[0], args[1], due).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Added snippet %s (%s)\n", snippet.ID, snippet.Reference)
		return nil
	},
}

func init() {
	addCmd.Flags().IntVar(&addDueInDays, "due-in", 0, "days until the snippet is due")
	rootCmd.AddCommand(addCmd)
}
