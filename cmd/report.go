package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/saaquiz/saaquiz/internal/report"
	"github.com/saaquiz/saaquiz/internal/session"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write a PDF progress sheet",
	RunE: func(cmd *cobra.Command, args []string) error {
		outPath, _ := cmd.Flags().GetString("output")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		d, err := openDeps(cmd.Context(), cfg, depsOptions{requireSet: true})
		if err != nil {
			return err
		}
		defer d.Close()

		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create %s: %w", outPath, err)
		}
		sum := session.BuildSummary(d.set, d.progress)
		if err := report.Write(f, sum, report.Meta{Source: cfg.Data.Path}); err != nil {
			f.Close()
			return fmt.Errorf("write report: %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("close %s: %w", outPath, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d answered of %d)\n", outPath, sum.Answered, sum.TotalQuestions)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringP("output", "o", "saaquiz-progress.pdf", "Output PDF path")
}
