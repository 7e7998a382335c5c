package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saaquiz/saaquiz/internal/importer"
)

var importCmd = &cobra.Command{
	Use:   "import <in.txt|in.html> [out]",
	Short: "Convert an extracted question dump into the question set format",
	Long: `Parse Q<n> headed sections from extracted text or an HTML export and
write the question set as JSON. With --js (or an out path ending in .js)
the output is the browser data file form: window.__QA__ = {...};`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJS, _ := cmd.Flags().GetBool("js")

		in := args[0]
		out := "qa.json"
		if asJS {
			out = "qa.js"
		}
		if len(args) == 2 {
			out = args[1]
		}

		format := importer.FormatFor(out)
		if asJS {
			format = importer.FormatJS
		}

		entries, err := importer.Convert(in, out, format)
		if err != nil {
			return fmt.Errorf("import %s: %w", in, err)
		}

		withChoice := 0
		for _, e := range entries {
			if e.AnswerChoice != nil {
				withChoice++
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d questions to %s (%d with an answer letter)\n",
			len(entries), out, withChoice)
		if missing := len(entries) - withChoice; missing > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "%d questions will be saved but not graded.\n", missing)
		}
		return nil
	},
}

func init() {
	importCmd.Flags().Bool("js", false, "Write the window.__QA__ JS data file instead of JSON")
}
