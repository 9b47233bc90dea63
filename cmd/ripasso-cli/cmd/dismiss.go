package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"ripasso/internal/application/commands"
)

var dismissCmd = &cobra.Command{
	Use:   "dismiss <id>",
	Short: "Dismiss a snippet from review",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := commands.NewDismissCommand(repo, args[0]).Execute(cmd.Context()); err != nil {
			return err
		}
		fmt.Printf("Dismissed %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dismissCmd)
}
