// Package pipeline runs the full document flow: read, extract triples,
// filter, export, and optionally push to an external graph sink.
package pipeline

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/kgraph-cli/internal/export"
	"github.com/sells-group/kgraph-cli/internal/extract"
	"github.com/sells-group/kgraph-cli/internal/graph"
	"github.com/sells-group/kgraph-cli/internal/model"
	"github.com/sells-group/kgraph-cli/pkg/neo4j"
)

// Sink receives the final filtered graph. A nil sink skips that stage.
type Sink interface {
	ImportGraph(ctx context.Context, triples []model.Triple, clearFirst bool) (neo4j.ImportStats, error)
}

// Pipeline holds the per-document processing dependencies.
type Pipeline struct {
	runner   *extract.Runner
	criteria graph.Criteria
	formats  []export.Format

	sink      Sink
	clearSink bool
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithCriteria sets the filter criteria applied after extraction.
func WithCriteria(c graph.Criteria) Option {
	return func(p *Pipeline) { p.criteria = c }
}

// WithFormats sets the export formats. Defaults apply when empty.
func WithFormats(formats []export.Format) Option {
	return func(p *Pipeline) { p.formats = formats }
}

// WithSink attaches an external graph sink.
func WithSink(sink Sink, clearFirst bool) Option {
	return func(p *Pipeline) {
		p.sink = sink
		p.clearSink = clearFirst
	}
}

// New builds a Pipeline around an extraction runner.
func New(runner *extract.Runner, opts ...Option) *Pipeline {
	p := &Pipeline{runner: runner}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ProcessDocument runs one document end to end and always returns a terminal
// DocumentResult; failures are reported in the result, not as an error.
func (p *Pipeline) ProcessDocument(ctx context.Context, inputPath, outputBase string) model.DocumentResult {
	started := time.Now()
	fail := func(msg string) model.DocumentResult {
		return model.DocumentResult{
			Path:     inputPath,
			Status:   model.DocStatusFailed,
			Error:    msg,
			Duration: time.Since(started),
		}
	}

	raw, err := os.ReadFile(inputPath)
	if err != nil {
		return fail(eris.Wrap(err, "pipeline: read input").Error())
	}
	text := string(raw)
	if strings.TrimSpace(text) == "" {
		return fail("empty file")
	}

	triples, err := p.runner.ExtractDocument(ctx, text)
	if err != nil {
		return fail(eris.Wrap(err, "pipeline: extract").Error())
	}
	if len(triples) == 0 {
		return fail("no triples extracted")
	}

	filtered := p.criteria.Apply(triples)
	if len(filtered) == 0 {
		return fail("all triples filtered out")
	}

	exports := export.WriteAll(filtered, outputBase, p.formats)
	outcomes := make(map[string]model.ExportOutcome, len(exports))
	for f, res := range exports {
		outcomes[string(f)] = model.ExportOutcome{
			Status: res.Status,
			Path:   res.Path,
			Error:  res.Err,
		}
	}

	if p.sink != nil {
		if _, err := p.sink.ImportGraph(ctx, filtered, p.clearSink); err != nil {
			zap.L().Error("pipeline: sink import failed",
				zap.String("path", inputPath),
				zap.Error(err),
			)
			outcomes["neo4j"] = model.ExportOutcome{Status: "error", Error: err.Error()}
		} else {
			outcomes["neo4j"] = model.ExportOutcome{Status: "success"}
		}
	}

	return model.DocumentResult{
		Path:             inputPath,
		Status:           model.DocStatusSucceeded,
		TriplesExtracted: len(filtered),
		Stats:            model.ComputeStats(filtered),
		Exports:          outcomes,
		Duration:         time.Since(started),
	}
}
