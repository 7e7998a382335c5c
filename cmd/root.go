package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/saaquiz/saaquiz/internal/config"
	"github.com/saaquiz/saaquiz/internal/session"
	"github.com/saaquiz/saaquiz/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "saaquiz [QNUM|#QNUM]",
	Short: "Terminal quiz browser for SAA exam questions",
	Long: `saaquiz: browse a preloaded AWS SAA question set in the terminal.
Jump to a question number, step forward and back, answer with a letter
and reveal the explanation. Answers persist across runs.

An optional QNUM (or #QNUM) opens the quiz on that question.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		start, hasStart, err := startQuestion(cmd, args)
		if err != nil {
			return err
		}
		return runApp(cmd, start, hasStart, false)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx available to every
// subcommand through cmd.Context().
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides SAAQUIZ_DB env var)")
	rootCmd.PersistentFlags().String("data", "", "Path to the question set (.json or .js)")
	rootCmd.PersistentFlags().String("config", "", "Path to a config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.Flags().Int("start", 0, "Question number to open on launch")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads configuration with the persistent flags bound over
// env, file and defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	file, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(config.Options{
		File: file,
		Flags: map[string]*pflag.Flag{
			"db.path":   cmd.Flags().Lookup("db"),
			"data.path": cmd.Flags().Lookup("data"),
			"log.level": cmd.Flags().Lookup("log-level"),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// resolveDBPath returns the database path using the configured path
// (--db flag or db.path) first, then SAAQUIZ_DB, then the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if p := cfg.DB.Path; p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// startQuestion reads the deep-link question from the positional argument
// or --start. The argument wins.
func startQuestion(cmd *cobra.Command, args []string) (int, bool, error) {
	if len(args) == 1 {
		n, err := session.ParseQNum(args[0])
		if err != nil {
			return 0, false, fmt.Errorf("invalid question number %q", args[0])
		}
		return n, true, nil
	}
	if cmd.Flags().Changed("start") {
		n, _ := cmd.Flags().GetInt("start")
		return n, true, nil
	}
	return 0, false, nil
}
