package cmd

import (
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play [QNUM|#QNUM]",
	Short: "Open the quiz directly, skipping the home screen",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		start, hasStart, err := startQuestion(cmd, args)
		if err != nil {
			return err
		}
		return runApp(cmd, start, hasStart, true)
	},
}

func init() {
	playCmd.Flags().Int("start", 0, "Question number to open on launch")
}
