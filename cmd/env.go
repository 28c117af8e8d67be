package main

import (
	"context"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/kgraph-cli/internal/extract"
	"github.com/sells-group/kgraph-cli/internal/store"
	"github.com/sells-group/kgraph-cli/pkg/anthropic"
	"github.com/sells-group/kgraph-cli/pkg/neo4j"
)

// initStore opens the run-history backend selected by config.
func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, nil)
	case "sqlite", "":
		return store.NewSQLite(cfg.Store.DatabaseURL)
	default:
		return nil, eris.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// newRunner wires the Anthropic extractor with the configured rate limit
// and chunking parameters.
func newRunner() (*extract.Runner, error) {
	if cfg.Anthropic.Key == "" {
		return nil, eris.New("KGRAPH_ANTHROPIC_KEY is not set")
	}

	client := anthropic.NewClient(cfg.Anthropic.Key)
	temp := cfg.Anthropic.Temperature
	extractor := anthropic.NewExtractor(client, cfg.Anthropic.Model, cfg.Anthropic.MaxTokens, &temp)

	var limiter *rate.Limiter
	if rpm := cfg.Anthropic.RequestsPerMin; rpm > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), 1)
	}

	return extract.NewRunner(extractor, limiter, cfg.Chunking.ChunkSize, cfg.Chunking.Overlap), nil
}

// newSink connects to Neo4j when requested. Returns nil when disabled.
func newSink(ctx context.Context, enabled bool) (*neo4j.Client, error) {
	if !enabled {
		return nil, nil
	}
	client, err := neo4j.New(ctx, neo4j.Config{
		URI:       cfg.Neo4j.URI,
		User:      cfg.Neo4j.User,
		Password:  cfg.Neo4j.Password,
		Database:  cfg.Neo4j.Database,
		Timeout:   cfg.Neo4j.Timeout,
		BatchSize: cfg.Neo4j.BatchSize,
	})
	if err != nil {
		return nil, err
	}
	zap.L().Info("neo4j sink enabled", zap.String("uri", cfg.Neo4j.URI))
	return client, nil
}

// splitList parses a comma-separated flag value into trimmed entries.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
