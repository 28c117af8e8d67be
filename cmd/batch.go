package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/kgraph-cli/internal/batch"
	"github.com/sells-group/kgraph-cli/internal/export"
	"github.com/sells-group/kgraph-cli/internal/model"
	"github.com/sells-group/kgraph-cli/internal/pipeline"
	"github.com/sells-group/kgraph-cli/internal/store"
)

var batchFlags struct {
	input      string
	output     string
	patterns   string
	maxWorkers int
	report     bool
	noPersist  bool
}

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Process every matching document in a directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		runner, err := newRunner()
		if err != nil {
			return err
		}

		formats, err := export.ParseFormats(strings.Join(cfg.Export.Formats, ","))
		if err != nil {
			return err
		}

		sink, err := newSink(ctx, cfg.Neo4j.Enabled)
		if err != nil {
			return err
		}
		if sink != nil {
			defer sink.Close(ctx) //nolint:errcheck
		}

		opts := []pipeline.Option{pipeline.WithFormats(formats)}
		if sink != nil {
			opts = append(opts, pipeline.WithSink(sink, cfg.Neo4j.ClearExisting))
		}
		p := pipeline.New(runner, opts...)

		var st store.Store
		if !batchFlags.noPersist {
			st, err = initStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close() //nolint:errcheck
			if err := st.Migrate(ctx); err != nil {
				return eris.Wrap(err, "migrate store")
			}
		}

		return runBatch(ctx, p, st)
	},
}

func runBatch(ctx context.Context, p *pipeline.Pipeline, st store.Store) error {
	var run *model.Run
	if st != nil {
		var err error
		run, err = st.CreateRun(ctx, batchFlags.input, batchFlags.output)
		if err != nil {
			return err
		}
		if err := st.UpdateRunStatus(ctx, run.ID, model.RunStatusRunning); err != nil {
			return err
		}
	}

	maxWorkers := batchFlags.maxWorkers
	if maxWorkers <= 0 {
		maxWorkers = cfg.Batch.MaxWorkers
	}
	patterns := splitList(batchFlags.patterns)
	if len(patterns) == 0 {
		patterns = cfg.Batch.FilePatterns
	}

	processor := batch.NewProcessor(p.ProcessDocument, maxWorkers)
	summary, err := processor.ProcessDirectory(ctx, batchFlags.input, batchFlags.output, patterns)
	if err != nil {
		if st != nil && run != nil {
			if uerr := st.UpdateRunStatus(ctx, run.ID, model.RunStatusFailed); uerr != nil {
				zap.L().Error("update run status", zap.Error(uerr))
			}
		}
		return err
	}

	if st != nil && run != nil {
		for _, res := range summary.Results {
			if rerr := st.RecordDocument(ctx, run.ID, res); rerr != nil {
				zap.L().Error("record document", zap.String("path", res.Path), zap.Error(rerr))
			}
		}
		if uerr := st.UpdateRunSummary(ctx, run.ID, &summary); uerr != nil {
			zap.L().Error("update run summary", zap.Error(uerr))
		}
	}

	if batchFlags.report {
		reportPath := filepath.Join(batchFlags.output, "performance_report.md")
		if rerr := batch.WriteReport(summary, reportPath); rerr != nil {
			if errors.Is(rerr, batch.ErrNoSuccessfulResults) {
				zap.L().Warn("no successful results to report")
			} else {
				return rerr
			}
		} else {
			fmt.Printf("Performance report written to %s\n", reportPath)
		}
	}

	fmt.Printf("Batch complete: %d/%d succeeded in %s\n",
		summary.Succeeded, summary.TotalFiles, summary.TotalTime.Round(1e6))
	if summary.Succeeded == 0 {
		return eris.New("batch: every document failed")
	}
	return nil
}

func init() {
	f := batchCmd.Flags()
	f.StringVar(&batchFlags.input, "input", "", "input directory (required)")
	f.StringVar(&batchFlags.output, "output", "", "output directory (required)")
	f.StringVar(&batchFlags.patterns, "patterns", "", "comma-separated glob patterns (default from config)")
	f.IntVar(&batchFlags.maxWorkers, "max-workers", 0, "parallel workers (default from config)")
	f.BoolVar(&batchFlags.report, "report", false, "write performance_report.md after the batch")
	f.BoolVar(&batchFlags.noPersist, "no-persist", false, "skip recording the run in the store")

	_ = batchCmd.MarkFlagRequired("input")
	_ = batchCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(batchCmd)
}
