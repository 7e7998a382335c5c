package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/saaquiz/saaquiz/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the quiz as a JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		d, err := openDeps(ctx, cfg, depsOptions{requireSet: true})
		if err != nil {
			return err
		}
		defer d.Close()

		srv := api.New(d.set, d.progress,
			api.WithAttempts(d.store.AttemptRepo()),
			api.WithLogger(d.log),
			api.WithAllowedOrigins(cfg.Server.AllowedOrigins),
			api.WithSource(cfg.Data.Path),
		)
		return srv.ListenAndServe(ctx, cfg.Server.Addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default from server.addr, :8080)")
}
