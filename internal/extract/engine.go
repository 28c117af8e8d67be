package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/kgraph-cli/internal/model"
)

// Engine is the opaque reasoning engine that turns a text chunk into raw
// output suspected to contain a JSON array of triples. Its transport,
// retries, and failure modes are the implementation's concern.
type Engine interface {
	Extract(ctx context.Context, system, prompt string) (string, error)
}

const extractionSystem = "You are a knowledge graph extraction engine. Extract factual (subject, predicate, object) triples from the provided text. Return ONLY a JSON array of objects with keys subject, predicate, object. Use short noun phrases for entities and short verb phrases for predicates."

const extractionPrompt = `Extract subject-predicate-object triples from the following text.

Text:
%s

Return a JSON array: [{"subject": "...", "predicate": "...", "object": "..."}, ...]`

// Runner drives chunked extraction of one document through an Engine,
// recovering structured records from each raw response. A shared rate
// limiter bounds engine call frequency across concurrent documents.
type Runner struct {
	engine    Engine
	limiter   *rate.Limiter
	chunkSize int
	overlap   int
}

// NewRunner builds a Runner. chunkSize and overlap are measured in words;
// non-positive values fall back to defaults. limiter may be nil.
func NewRunner(engine Engine, limiter *rate.Limiter, chunkSize, overlap int) *Runner {
	if chunkSize <= 0 {
		chunkSize = 500
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = 50
	}
	return &Runner{engine: engine, limiter: limiter, chunkSize: chunkSize, overlap: overlap}
}

// ExtractDocument splits text into overlapping word chunks, runs the engine
// on each, and recovers triples tagged with their chunk index. A chunk whose
// engine call fails or whose response yields no array contributes zero
// triples; only context cancellation aborts the document.
func (r *Runner) ExtractDocument(ctx context.Context, text string) ([]model.Triple, error) {
	chunks := ChunkText(text, r.chunkSize, r.overlap)

	var triples []model.Triple
	for i, chunk := range chunks {
		if r.limiter != nil {
			if err := r.limiter.Wait(ctx); err != nil {
				return nil, eris.Wrap(err, "extract: rate limit wait")
			}
		}

		raw, err := r.engine.Extract(ctx, extractionSystem, fmt.Sprintf(extractionPrompt, chunk))
		if err != nil {
			if ctx.Err() != nil {
				return nil, eris.Wrap(err, "extract: engine call")
			}
			zap.L().Warn("extract: chunk failed",
				zap.Int("chunk", i),
				zap.Error(err),
			)
			continue
		}

		records, ok := RecoverArray(raw)
		if !ok {
			zap.L().Warn("extract: no array recovered from response", zap.Int("chunk", i))
			continue
		}
		triples = append(triples, DecodeTriples(records, i)...)
	}

	zap.L().Info("extract: document complete",
		zap.Int("chunks", len(chunks)),
		zap.Int("triples", len(triples)),
	)
	return triples, nil
}

// ChunkText splits text into word-based chunks of chunkSize words with the
// given overlap between consecutive chunks. Whitespace runs collapse.
func ChunkText(text string, chunkSize, overlap int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if len(words) <= chunkSize {
		return []string{strings.Join(words, " ")}
	}

	step := chunkSize - overlap
	var chunks []string
	for start := 0; start < len(words); start += step {
		end := start + chunkSize
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))
		if end == len(words) {
			break
		}
	}
	return chunks
}
