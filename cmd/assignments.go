package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/smart-hire/internal/render"
)

var assignmentsCmd = &cobra.Command{
	Use:   "assignments",
	Short: "List the most recent role assignments",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		d := prepare(cmd)

		history, closeStore, err := d.openAssignments()
		if err != nil {
			d.logger.Fatal("opening assignments", zap.Error(err))
		}
		defer closeStore()

		list, err := history.List(cmd.Context())
		if err != nil {
			d.logger.Fatal("listing assignments", zap.Error(err))
		}

		d.write(list, render.RenderAssignments(list))
	},
}

func init() {
	rootCmd.AddCommand(assignmentsCmd)
}
