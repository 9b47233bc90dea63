package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var execCmd = &cobra.Command{
	Use:   "exec <sql> [param...]",
	Short: "Run a mutating SQL statement",
	Long: `Run a mutating SQL statement against the snippet database. The change
is persisted to the vault before the command returns.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, err := repo.Mutate(cmd.Context(), args[0], toParams(args[1:])...)
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(execCmd)
}
