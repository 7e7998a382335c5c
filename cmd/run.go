package cmd

import (
	"github.com/spf13/cobra"

	"github.com/saaquiz/saaquiz/internal/app"
	"github.com/saaquiz/saaquiz/internal/session"
)

// runApp opens the store, builds the session and launches the TUI. A
// question set that fails to load is shown inline rather than aborting.
func runApp(cmd *cobra.Command, start int, hasStart, direct bool) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	d, err := openDeps(ctx, cfg, depsOptions{logToFile: true})
	if err != nil {
		return err
	}
	defer d.Close()

	attempts := d.store.AttemptRepo()
	sessOpts := []session.Option{
		session.WithAttempts(attempts),
		session.WithLogger(d.log),
	}
	var sess *session.Session
	if d.setErr != nil {
		sess = session.Failed(d.setErr, sessOpts...)
	} else {
		sess = session.New(d.set, d.progress, sessOpts...)
	}

	return app.Run(app.Options{
		Session:   sess,
		Attempts:  attempts,
		StartQNum: start,
		HasStart:  hasStart,
		Direct:    direct,
		Context:   ctx,
	})
}
