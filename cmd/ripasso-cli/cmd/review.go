package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"ripasso/internal/application/commands"
)

var (
	reviewInterval float64
	reviewEase     float64
)

var reviewCmd = &cobra.Command{
	Use:   "review <id> <rating>",
	Short: "Record a review of a snippet",
	Long: `Record a review with a rating from 0 (forgot) to 3 (easy). The next
due date is the review time plus --interval days; scheduling beyond that
simple arithmetic is left to the plugin's scheduler.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rating, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid rating %q: %w", args[1], err)
		}

		now := time.Now()
		nextDue := now.Add(time.Duration(reviewInterval*24) * time.Hour).Unix()
		review, err := commands.NewReviewCommand(repo, args[0], rating,
			now.Unix(), nextDue, reviewInterval, reviewEase).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Recorded review %s, next due %s\n",
			review.ID, time.Unix(nextDue, 0).Format("2006-01-02"))
		return nil
	},
}

func init() {
	reviewCmd.Flags().Float64Var(&reviewInterval, "interval", 1, "days until next review")
	reviewCmd.Flags().Float64Var(&reviewEase, "ease", 2.5, "ease factor to store")
	rootCmd.AddCommand(reviewCmd)
}
