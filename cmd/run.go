package cmd

import (
	"github.com/dsaintel/dsaiq/internal/app"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds dependencies, and launches the TUI at route.
func runApp(cmd *cobra.Command, route string) error {
	d, err := openDeps(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	return app.Run(app.Options{
		Client:   d.client,
		Identity: d.identity,
		Settings: d.store.SettingsRepo(),
		Attempts: d.store.AttemptRepo(),
		Route:    route,
	})
}
