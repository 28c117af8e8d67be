// Package batch runs the document pipeline over many files with a bounded
// worker pool and aggregates per-file outcomes into a run summary.
package batch

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/kgraph-cli/internal/model"
)

// ErrNoInputFiles is returned when a directory scan matches nothing.
var ErrNoInputFiles = eris.New("batch: no input files matched")

// DefaultPatterns are the glob patterns used when the caller gives none.
var DefaultPatterns = []string{"*.txt", "*.md"}

const summaryFileName = "batch_summary.json"

// DocumentFunc processes one document, writing its artifacts under
// outputBase, and reports a terminal DocumentResult. It must not panic;
// failures are expressed through the result's status and error fields.
type DocumentFunc func(ctx context.Context, inputPath, outputBase string) model.DocumentResult

// Processor fans document work out to a bounded pool of workers.
type Processor struct {
	process    DocumentFunc
	maxWorkers int
}

// NewProcessor builds a Processor. maxWorkers below 1 is clamped to 1.
func NewProcessor(process DocumentFunc, maxWorkers int) *Processor {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &Processor{process: process, maxWorkers: maxWorkers}
}

// ProcessDirectory scans inputDir for files matching patterns and processes
// every match. Matches are processed in sorted path order of submission,
// though completion order is free.
func (p *Processor) ProcessDirectory(ctx context.Context, inputDir, outputDir string, patterns []string) (model.BatchSummary, error) {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}

	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(filepath.Join(inputDir, pattern))
		if err != nil {
			return model.BatchSummary{}, eris.Wrapf(err, "batch: bad pattern %q", pattern)
		}
		files = append(files, matches...)
	}
	sort.Strings(files)

	if len(files) == 0 {
		zap.L().Warn("batch: nothing to do",
			zap.String("input_dir", inputDir),
			zap.Strings("patterns", patterns),
		)
		return model.BatchSummary{}, ErrNoInputFiles
	}
	return p.ProcessFiles(ctx, files, outputDir)
}

// ProcessFiles processes an explicit file list. A failing document never
// aborts the batch; its failure is recorded in the summary's result for
// that path. The summary is also persisted as batch_summary.json in
// outputDir.
func (p *Processor) ProcessFiles(ctx context.Context, files []string, outputDir string) (model.BatchSummary, error) {
	if len(files) == 0 {
		return model.BatchSummary{}, ErrNoInputFiles
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return model.BatchSummary{}, eris.Wrap(err, "batch: create output dir")
	}

	zap.L().Info("batch: starting",
		zap.Int("files", len(files)),
		zap.Int("workers", p.maxWorkers),
	)

	started := time.Now()
	results := make(map[string]model.DocumentResult, len(files))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.maxWorkers)
	for _, file := range files {
		g.Go(func() error {
			outputBase := filepath.Join(outputDir, stem(file))
			res := p.process(gctx, file, outputBase)
			res.Path = file

			mu.Lock()
			results[file] = res
			mu.Unlock()

			if res.Status == model.DocStatusSucceeded {
				zap.L().Info("batch: document done",
					zap.String("path", file),
					zap.Int("triples", res.TriplesExtracted),
					zap.Duration("took", res.Duration),
				)
			} else {
				zap.L().Error("batch: document failed",
					zap.String("path", file),
					zap.String("reason", res.Error),
				)
			}
			return nil
		})
	}
	// Workers only report nil; Wait still observes context cancellation.
	if err := g.Wait(); err != nil {
		return model.BatchSummary{}, eris.Wrap(err, "batch: wait")
	}

	completed := time.Now()
	summary := summarize(results, started, completed)

	if err := writeSummary(summary, filepath.Join(outputDir, summaryFileName)); err != nil {
		return summary, err
	}
	zap.L().Info("batch: completed",
		zap.Int("successful", summary.Succeeded),
		zap.Int("failed", summary.Failed),
		zap.Duration("took", summary.TotalTime),
	)
	return summary, nil
}

// summarize folds terminal document results into a BatchSummary. TotalTime
// is batch wall-clock, not the sum of per-file durations: with parallel
// workers the two deliberately differ.
func summarize(results map[string]model.DocumentResult, started, completed time.Time) model.BatchSummary {
	summary := model.BatchSummary{
		TotalFiles:  len(results),
		Results:     results,
		TotalTime:   completed.Sub(started),
		StartedAt:   started,
		CompletedAt: completed,
	}
	for _, res := range results {
		if res.Status == model.DocStatusSucceeded {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
	}
	if summary.TotalFiles > 0 {
		summary.AvgTimePerFile = summary.TotalTime / time.Duration(summary.TotalFiles)
	}
	return summary
}

func writeSummary(summary model.BatchSummary, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "batch: create summary file")
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		return eris.Wrap(err, "batch: encode summary")
	}
	return nil
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
