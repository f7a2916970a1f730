package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dsaintel/dsaiq/internal/release"
	"github.com/spf13/cobra"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "dsaiq", version)

		if check, _ := cmd.Flags().GetBool("check"); !check {
			return nil
		}
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		checker := release.NewChecker(release.WithRepo(cfg.ReleaseOwner, cfg.ReleaseRepo))
		return reportRelease(cmd.Context(), out, checker, version)
	},
}

func init() {
	versionCmd.Flags().Bool("check", false, "Check whether a newer release is available")
}

type releaseChecker interface {
	Check(ctx context.Context, input *release.CheckInput) (*release.CheckResult, error)
}

func reportRelease(ctx context.Context, w io.Writer, c releaseChecker, current string) error {
	res, err := c.Check(ctx, &release.CheckInput{Version: current})
	if errors.Is(err, release.ErrDevBuild) {
		_, err := fmt.Fprintln(w, "Development build, skipping update check.")
		return err
	}
	if err != nil {
		return fmt.Errorf("check for updates: %w", err)
	}
	if !res.UpdateAvailable {
		_, err := fmt.Fprintf(w, "Up to date (latest is %s).\n", res.LatestVersion)
		return err
	}
	fmt.Fprintf(w, "A new version is available: %s -> %s\n", res.CurrentVersion, res.LatestVersion)
	if res.ReleaseURL != "" {
		fmt.Fprintln(w, res.ReleaseURL)
	}
	return nil
}
