package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dsaintel/dsaiq/internal/analytics"
	"github.com/spf13/cobra"
)

const incompleteReportText = "Analytics are not complete yet. Try again after finishing a quiz."

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print mastery analytics as plain text",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		ctx := cmd.Context()
		userID, err := d.identity.UserID(ctx)
		if err != nil {
			return err
		}
		if userID == "" {
			return writeReport(cmd.OutOrStdout(), "", analytics.Classify(false, false, nil, nil))
		}

		res, err := d.client.FetchAnalytics(ctx, userID)
		view := analytics.Classify(true, false, res, err)
		if view.State == analytics.ViewFailed {
			return fmt.Errorf("fetch analytics: %w", view.Err)
		}
		return writeReport(cmd.OutOrStdout(), userID, view)
	},
}

// writeReport prints a dashboard view. Failed views are the caller's concern.
func writeReport(w io.Writer, userID string, v analytics.DashboardView) error {
	switch v.State {
	case analytics.ViewReady:
	case analytics.ViewIncomplete:
		_, err := fmt.Fprintln(w, incompleteReportText)
		return err
	default:
		_, err := fmt.Fprintln(w, v.Message)
		return err
	}

	fmt.Fprintf(w, "DSA Intelligence report for %s\n", userID)
	fmt.Fprintf(w, "Overall mastery: %s\n", v.Overall)

	writeSection(w, "Concept Mastery", analytics.ConceptChartSubtitle)
	writePoints(w, v.Concepts)

	writeSection(w, "Sub-concept Mastery", analytics.SubConceptChartSubtitle)
	writePoints(w, v.SubConcepts)

	writeSection(w, "Weak Areas", "")
	if len(v.WeakAreas) == 0 {
		fmt.Fprintf(w, "  %s\n", analytics.NoWeakAreasText)
	} else {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, wa := range v.WeakAreas {
			fmt.Fprintf(tw, "  %s\t%s\t[%s]\n", wa.SubConcept, analytics.FormatPercent(wa.Score.OrZero(), 1), wa.Label)
		}
		tw.Flush()
	}

	writeSection(w, "Recommendations", "")
	if len(v.Recommendations) == 0 {
		_, err := fmt.Fprintf(w, "  %s\n", analytics.NoRecommendationsText)
		return err
	}
	for _, r := range v.Recommendations {
		line := "  " + r.SubConcept
		if r.Classification != "" {
			line += " [" + r.Classification + "]"
		}
		fmt.Fprintln(w, line)
		fmt.Fprintf(w, "    %s\n", r.Practice.Summary())
		if r.ResourceLink != "" {
			fmt.Fprintf(w, "    %s\n", r.ResourceLink)
		}
	}
	return nil
}

func writeSection(w io.Writer, title, subtitle string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, title)
	if subtitle != "" {
		fmt.Fprintln(w, subtitle)
	}
	fmt.Fprintln(w, strings.Repeat("─", 40))
}

func writePoints(w io.Writer, points []analytics.Point) {
	if len(points) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, p := range points {
		fmt.Fprintf(tw, "  %s\t%s\n", p.Name, analytics.FormatPercent(p.Value, 1))
	}
	tw.Flush()
}
