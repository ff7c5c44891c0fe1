package cmd

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/smart-hire/internal/render"
	"github.com/spigell/smart-hire/internal/utils"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check whether the backend and its model are available",
	Run: func(cmd *cobra.Command, _ []string) {
		status(cmd)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().DurationP("watch", "w", 0, "repeat the check with the given interval (e.g. 30s) until interrupted")
}

func status(cmd *cobra.Command) {
	d := prepare(cmd)
	watch, _ := cmd.Flags().GetDuration("watch")

	err := utils.Poll(cmd.Context(), watch, func(ctx context.Context) {
		health := d.client.Health(ctx)
		d.logger.Debug("backend status", zap.String("status", health.Status), zap.Bool("online", health.Online()))
		d.write(health, render.RenderHealth(d.client.Profile(), d.client.APIURL, health))
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		d.logger.Fatal("watching backend status", zap.Error(err))
	}

	if watch > 0 {
		d.logger.Info("stopped watching", zap.Duration("interval", watch.Round(time.Second)))
	}
}
