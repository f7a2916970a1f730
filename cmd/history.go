package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/dsaintel/dsaiq/internal/analytics"
	"github.com/dsaintel/dsaiq/internal/store"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List submitted quizzes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		all, _ := cmd.Flags().GetBool("all")

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		ctx := cmd.Context()
		opts := store.QueryOpts{Limit: limit}
		if !all {
			userID, err := d.identity.UserID(ctx)
			if err != nil {
				return err
			}
			opts.UserID = userID
		}
		return listAttempts(ctx, cmd.OutOrStdout(), d.store.AttemptRepo(), opts)
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of attempts to show (0 = all)")
	historyCmd.Flags().Bool("all", false, "Show attempts of every user")
}

func listAttempts(ctx context.Context, w io.Writer, repo store.AttemptRepo, opts store.QueryOpts) error {
	attempts, err := repo.QueryAttempts(ctx, opts)
	if err != nil {
		return err
	}
	if len(attempts) == 0 {
		_, err := fmt.Fprintln(w, "No quizzes submitted yet.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tUSER\tANSWERED\tSCORED\tACCURACY\tTIME SPENT\tSESSION")
	for _, a := range attempts {
		scored, accuracy := "-", "-"
		if a.TotalQuestions != nil {
			scored = strconv.Itoa(*a.TotalQuestions)
		}
		if a.Accuracy != nil {
			accuracy = analytics.FormatPercent(*a.Accuracy*100, 1)
		}
		var spent int
		for _, r := range a.Responses {
			spent += r.TimeTaken
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%ds\t%s\n",
			a.Timestamp.Local().Format(time.DateTime),
			a.UserID,
			len(a.Responses),
			scored,
			accuracy,
			spent,
			a.SessionID,
		)
	}
	return tw.Flush()
}
