package main

import (
	"context"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/compliance-cli/internal/assessment"
	"github.com/sells-group/compliance-cli/internal/store"
)

var (
	batchFile  string
	batchLimit int
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Assess and persist a batch of questionnaire submissions",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("assess"); err != nil {
			return err
		}

		inputs, err := readBatchFile(batchFile)
		if err != nil {
			return err
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		engine := assessment.New(newLoader())
		return processBatch(ctx, inputs, batchLimit, cfg.Assess.MaxConcurrent, engine, st)
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchFile, "file", "", "path to a JSON array of questionnaire submissions (required)")
	batchCmd.Flags().IntVar(&batchLimit, "limit", 0, "max number of submissions to process (0 = all)")
	_ = batchCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(batchCmd)
}

// processBatch applies limit, then assesses submissions concurrently.
// Individual failures are logged and counted without aborting the batch.
func processBatch(ctx context.Context, inputs []assessmentInput, limit, concurrency int, engine *assessment.Engine, st store.Store) error {
	if len(inputs) == 0 {
		zap.L().Info("no submissions found")
		return nil
	}

	if limit > 0 && len(inputs) > limit {
		inputs = inputs[:limit]
	}

	zap.L().Info("processing batch",
		zap.Int("submissions", len(inputs)),
		zap.Int("concurrency", concurrency),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var succeeded, failed atomic.Int64

	for i, in := range inputs {
		g.Go(func() error {
			log := zap.L().With(zap.Int("index", i), zap.String("category", string(in.Category)))

			if err := in.validate(); err != nil {
				failed.Add(1)
				log.Error("invalid submission", zap.Error(err))
				return nil // don't abort batch on individual failure
			}

			result, err := engine.Run(in.Category, in.Answers)
			if err != nil {
				failed.Add(1)
				log.Error("assessment failed", zap.Error(err))
				return nil
			}

			rec, err := st.SaveAssessment(gctx, result)
			if err != nil {
				failed.Add(1)
				log.Error("save failed", zap.Error(err))
				return nil
			}

			succeeded.Add(1)
			log.Info("assessment saved",
				zap.String("id", rec.ID),
				zap.Int("score", result.Score),
				zap.String("tier", string(result.Tier)),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return eris.Wrap(err, "batch processing")
	}

	zap.L().Info("batch complete",
		zap.Int64("succeeded", succeeded.Load()),
		zap.Int64("failed", failed.Load()),
	)
	return nil
}
