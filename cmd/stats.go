package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saaquiz/saaquiz/internal/session"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show progress statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		d, err := openDeps(cmd.Context(), cfg, depsOptions{requireSet: true})
		if err != nil {
			return err
		}
		defer d.Close()

		sum := session.BuildSummary(d.set, d.progress)
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Questions:  %d\n", sum.TotalQuestions)
		fmt.Fprintf(out, "Answered:   %d\n", sum.Answered)
		fmt.Fprintf(out, "Correct:    %d\n", sum.TotalCorrect)
		fmt.Fprintf(out, "Incorrect:  %d\n", sum.TotalIncorrect)
		fmt.Fprintf(out, "Ungraded:   %d\n", sum.Ungraded)
		fmt.Fprintf(out, "Accuracy:   %.1f%%\n", sum.Accuracy*100)
		return nil
	},
}
