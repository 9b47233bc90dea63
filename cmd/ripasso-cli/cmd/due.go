package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"ripasso/internal/application/commands"
)

var dueReference string

var dueCmd = &cobra.Command{
	Use:   "due",
	Short: "List snippets due for review",
	RunE: func(cmd *cobra.Command, args []string) error {
		snippets := commands.NewListDueCommand(repo, time.Now().Unix(), dueReference).Execute(cmd.Context())
		if len(snippets) == 0 {
			fmt.Println("Nothing due.")
			return nil
		}
		for _, s := range snippets {
			fmt.Printf("%s  %s  due %s\n  %s\n",
				s.ID, s.Reference, time.Unix(s.Due, 0).Format("2006-01-02"), s.Content)
		}
		return nil
	},
}

func init() {
	dueCmd.Flags().StringVar(&dueReference, "reference", "", "restrict to one note path")
	rootCmd.AddCommand(dueCmd)
}
