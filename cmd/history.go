package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/saaquiz/saaquiz/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent answer attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		qNum, _ := cmd.Flags().GetInt("q")
		since, _ := cmd.Flags().GetDuration("since")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		dbPath, err := resolveDBPath(cfg)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		opts := store.QueryOpts{Limit: limit, QNum: qNum}
		if since > 0 {
			opts.From = time.Now().Add(-since)
		}
		attempts, err := s.AttemptRepo().QueryAttempts(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query attempts: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(attempts) == 0 {
			fmt.Fprintln(out, "No attempts found.")
			return nil
		}

		// Header.
		fmt.Fprintf(out, "%-6s  %-19s  %-6s  %-6s  %-7s  %-9s  %s\n",
			"Seq", "Timestamp", "Q", "Choice", "Correct", "Outcome", "Session")
		fmt.Fprintln(out, strings.Repeat("─", 80))

		for _, a := range attempts {
			correct := a.CorrectChoice
			if correct == "" {
				correct = "?"
			}
			sid := a.SessionID
			if len(sid) > 8 {
				sid = sid[:8]
			}
			fmt.Fprintf(out, "%-6d  %-19s  %-6d  %-6s  %-7s  %-9s  %s\n",
				a.Sequence,
				a.Timestamp.Local().Format("2006-01-02 15:04:05"),
				a.QNum,
				a.Choice,
				correct,
				a.Outcome,
				sid,
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 50, "Maximum number of attempts to show (0 = all)")
	historyCmd.Flags().Int("q", 0, "Only show attempts for this question number")
	historyCmd.Flags().Duration("since", 0, "Only show attempts newer than this (e.g. 24h)")
}
