package anthropic

import (
	"context"

	"github.com/sells-group/kgraph-cli/internal/resilience"
)

// Extractor bridges the Client to the per-chunk extraction loop, pinning
// model parameters and caching the system prompt across chunks. Transient
// API failures (rate limits, overloaded) are retried with backoff.
type Extractor struct {
	client      Client
	model       string
	maxTokens   int64
	temperature *float64
	retry       resilience.Policy
}

// NewExtractor builds an Extractor for the given model.
func NewExtractor(client Client, model string, maxTokens int64, temperature *float64) *Extractor {
	retry := resilience.DefaultPolicy()
	retry.OnRetry = resilience.LogRetries("anthropic.create_message")
	return &Extractor{
		client:      client,
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		retry:       retry,
	}
}

// Extract sends one chunk prompt and returns the raw text of the response.
func (e *Extractor) Extract(ctx context.Context, system, prompt string) (string, error) {
	req := MessageRequest{
		Model:     e.model,
		MaxTokens: e.maxTokens,
		System: []SystemBlock{
			{Text: system, CacheControl: &CacheControl{TTL: "5m"}},
		},
		Messages:    []Message{{Role: "user", Content: prompt}},
		Temperature: e.temperature,
	}
	resp, err := resilience.Do(ctx, e.retry, func(ctx context.Context) (*MessageResponse, error) {
		return e.client.CreateMessage(ctx, req)
	})
	if err != nil {
		return "", err
	}
	resp.Usage.LogCost(e.model, "extract")
	return resp.Text(), nil
}
