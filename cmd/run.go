package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rheo/rheo/internal/app"
	"github.com/rheo/rheo/internal/screen"
)

// runApp opens the learner's data and launches the TUI. initial, when
// set, builds the root screen in place of the journey.
func runApp(cmd *cobra.Command, initial func(*env) (screen.Screen, error)) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	opts := app.Options{
		Service:  e.service,
		Catalog:  e.catalog,
		Events:   e.store.EventRepo(),
		Logger:   e.logger,
		Language: e.cfg.Language,
	}
	if initial != nil {
		s, err := initial(e)
		if err != nil {
			return err
		}
		opts.Initial = s
	}

	return app.Run(opts)
}
