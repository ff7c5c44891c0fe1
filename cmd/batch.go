package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/smart-hire/internal/batch"
	"github.com/spigell/smart-hire/internal/filtering"
	"github.com/spigell/smart-hire/internal/render"
)

var batchCmd = &cobra.Command{
	Use:   "batch FILE...",
	Short: "Analyze several resume files",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runBatch(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntP("concurrency", "c", 2, "how many files are analyzed at once")

	viper.BindPFlag("batch.concurrency", batchCmd.Flags().Lookup("concurrency"))
}

func runBatch(cmd *cobra.Command, files []string) {
	ctx := cmd.Context()
	d := prepare(cmd)

	d.logger.Info("starting the batch", zap.Int("files", len(files)), zap.Int("concurrency", d.config.Batch.Concurrency))

	items := batch.Run(ctx, d.logger, d.client, files, d.config.Batch.Concurrency)

	steps := filtering.New(d.config.Filters)
	d.logger.Debug("filter status", zap.Any("filters", filtering.Describe(steps)))

	failed := 0
	for i := range items {
		if items[i].Error != "" {
			failed++
			continue
		}

		roles, err := filtering.Run(ctx, d.logger, steps, items[i].Result.TopRoles)
		if err != nil {
			d.logger.Fatal("filtering roles", zap.Error(err))
		}

		filtered := *items[i].Result
		filtered.TopRoles = roles
		items[i].Result = &filtered
	}

	d.logger.Info("batch completed", zap.Int("analyzed", len(items)-failed), zap.Int("failed", failed))

	d.write(items, render.RenderBatch(items))
}
