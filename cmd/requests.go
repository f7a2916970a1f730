package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/dsaintel/dsaiq/internal/store"
	"github.com/spf13/cobra"
)

var requestsCmd = &cobra.Command{
	Use:   "requests",
	Short: "List recorded scoring service requests",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		prune, _ := cmd.Flags().GetInt("prune")

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		ctx := cmd.Context()
		repo := d.store.EventRepo()
		if cmd.Flags().Changed("prune") {
			if prune < 0 {
				return fmt.Errorf("--prune must not be negative")
			}
			n, err := repo.PruneRequests(ctx, prune)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d request events.\n", n)
			return nil
		}
		return listRequests(ctx, cmd.OutOrStdout(), repo, limit)
	},
}

func init() {
	requestsCmd.Flags().Int("limit", 20, "Maximum number of events to show (0 = all)")
	requestsCmd.Flags().Int("prune", 0, "Delete all but the N most recent events")
}

func listRequests(ctx context.Context, w io.Writer, repo store.EventRepo, limit int) error {
	events, err := repo.QueryRequests(ctx, store.QueryOpts{Limit: limit})
	if err != nil {
		return err
	}
	if len(events) == 0 {
		_, err := fmt.Fprintln(w, "No requests recorded.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTIME\tREQUEST\tUSER\tSTATUS\tLATENCY\tERROR")
	for _, e := range events {
		status := "-"
		if e.StatusCode != 0 {
			status = strconv.Itoa(e.StatusCode)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s %s\t%s\t%s\t%dms\t%s\n",
			e.ID,
			e.Timestamp.Local().Format(time.DateTime),
			e.Method, e.Endpoint,
			orDash(e.UserID),
			status,
			e.LatencyMs,
			e.ErrorMessage,
		)
	}
	return tw.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
