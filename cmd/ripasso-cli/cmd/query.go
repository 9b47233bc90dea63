package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var queryCmd = &cobra.Command{
	Use:   "query <sql> [param...]",
	Short: "Run a read-only SQL statement",
	Long: `Run a read-only SQL statement against the snippet database and print
the rows as JSON. Extra arguments bind positionally. A failed statement
prints zero rows.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rows := repo.Query(cmd.Context(), args[0], toParams(args[1:])...)
		out, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func toParams(args []string) []any {
	params := make([]any, len(args))
	for i, a := range args {
		params[i] = a
	}
	return params
}

func init() {
	rootCmd.AddCommand(queryCmd)
}
