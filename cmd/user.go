package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/dsaintel/dsaiq/internal/identity"
	"github.com/dsaintel/dsaiq/internal/store"
	"github.com/spf13/cobra"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Show or change the stored user id",
}

var userShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the user id analytics are fetched for",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()
		return showUser(cmd.Context(), cmd.OutOrStdout(), d.identity)
	},
}

var userSetCmd = &cobra.Command{
	Use:   "set <id>",
	Short: "Store the user id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()
		return setUser(cmd.Context(), cmd.OutOrStdout(), d.store.SettingsRepo(), args[0])
	},
}

var userClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget the stored user id",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()
		if err := identity.Clear(cmd.Context(), d.store.SettingsRepo()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "User cleared.")
		return nil
	},
}

func init() {
	userCmd.AddCommand(userShowCmd)
	userCmd.AddCommand(userSetCmd)
	userCmd.AddCommand(userClearCmd)
}

func showUser(ctx context.Context, w io.Writer, p identity.Provider) error {
	id, err := p.UserID(ctx)
	if err != nil {
		return err
	}
	if id == "" {
		id = "(not set)"
	}
	_, err = fmt.Fprintln(w, id)
	return err
}

func setUser(ctx context.Context, w io.Writer, repo store.SettingsRepo, id string) error {
	if err := identity.Save(ctx, repo, id); err != nil {
		return err
	}
	p := identity.StoreProvider{Repo: repo}
	saved, err := p.UserID(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "User set to %s.\n", saved)
	return err
}
