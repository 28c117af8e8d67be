package extract

import (
	"context"
	"strings"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockEngine returns canned responses in call order.
type mockEngine struct {
	responses []string
	errs      []error
	calls     int
}

func (m *mockEngine) Extract(ctx context.Context, system, prompt string) (string, error) {
	i := m.calls
	m.calls++
	var err error
	if i < len(m.errs) {
		err = m.errs[i]
	}
	if err != nil {
		return "", err
	}
	if i < len(m.responses) {
		return m.responses[i], nil
	}
	return "[]", nil
}

func TestChunkText(t *testing.T) {
	words := make([]string, 120)
	for i := range words {
		words[i] = "w"
	}
	text := strings.Join(words, " ")

	chunks := ChunkText(text, 50, 10)
	require.Len(t, chunks, 3)
	assert.Len(t, strings.Fields(chunks[0]), 50)
	assert.Len(t, strings.Fields(chunks[1]), 50)
	// last chunk: words 80..119
	assert.Len(t, strings.Fields(chunks[2]), 40)
}

func TestChunkTextShortInput(t *testing.T) {
	chunks := ChunkText("one two three", 500, 50)
	require.Len(t, chunks, 1)
	assert.Equal(t, "one two three", chunks[0])
}

func TestChunkTextEmpty(t *testing.T) {
	assert.Nil(t, ChunkText("   ", 500, 50))
}

func TestExtractDocumentTagsChunks(t *testing.T) {
	eng := &mockEngine{responses: []string{
		`[{"subject": "A", "predicate": "p", "object": "B"}]`,
		`[{"subject": "B", "predicate": "q", "object": "C"}]`,
	}}
	r := NewRunner(eng, nil, 5, 0)

	triples, err := r.ExtractDocument(context.Background(), "a b c d e f g h")
	require.NoError(t, err)
	require.Len(t, triples, 2)
	assert.Equal(t, 0, triples[0].Chunk)
	assert.Equal(t, 1, triples[1].Chunk)
}

func TestExtractDocumentChunkFailureIsolated(t *testing.T) {
	eng := &mockEngine{
		responses: []string{"", `[{"subject": "B", "predicate": "q", "object": "C"}]`},
		errs:      []error{eris.New("engine unavailable"), nil},
	}
	r := NewRunner(eng, nil, 5, 0)

	triples, err := r.ExtractDocument(context.Background(), "a b c d e f g h")
	require.NoError(t, err)
	require.Len(t, triples, 1)
	assert.Equal(t, "B", triples[0].Subject)
}

func TestExtractDocumentCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	eng := &mockEngine{errs: []error{context.Canceled}}
	r := NewRunner(eng, nil, 5, 0)

	_, err := r.ExtractDocument(ctx, "a b c")
	assert.Error(t, err)
}
