// Package batch analyzes several resume files with a bounded number of workers.
package batch

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/smart-hire/internal/render"
	"github.com/spigell/smart-hire/internal/smarthire"
)

const DefaultConcurrency = 4

// Analyzer analyzes one resume file.
type Analyzer interface {
	AnalyzeFile(ctx context.Context, path string) (*smarthire.Result, error)
}

// Run analyzes every file and returns one item per file in input order. A failing
// file is reported in its item and never stops the others.
func Run(ctx context.Context, logger *zap.Logger, analyzer Analyzer, files []string, concurrency int) []render.BatchItem {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	items := make([]render.BatchItem, len(files))

	var g errgroup.Group
	g.SetLimit(concurrency)

	for i, file := range files {
		items[i].File = file

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				items[i].Error = err.Error()
				return nil
			}

			result, err := analyzer.AnalyzeFile(ctx, file)
			if err != nil {
				logger.Warn("file analysis failed", zap.String("file", file), zap.Error(err))
				items[i].Error = err.Error()
				return nil
			}

			logger.Debug("file analyzed", zap.String("file", file), zap.Int("roles", len(result.TopRoles)))
			items[i].Result = result
			return nil
		})
	}

	_ = g.Wait()

	return items
}
