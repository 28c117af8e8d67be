package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/kgraph-cli/internal/model"
)

func TestRecoverArrayCleanJSON(t *testing.T) {
	records, ok := RecoverArray(`[{"subject": "A", "predicate": "p", "object": "B"}]`)
	require.True(t, ok)
	require.Len(t, records, 1)
	assert.Equal(t, "A", records[0]["subject"])
}

func TestRecoverArrayFencedBlock(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{
			name: "json fence",
			text: "Here are the triples:\n```json\n[{\"subject\": \"A\", \"predicate\": \"p\", \"object\": \"B\"}]\n```\nDone.",
		},
		{
			name: "bare fence",
			text: "```\n[{\"subject\": \"A\", \"predicate\": \"p\", \"object\": \"B\"}]\n```",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			records, ok := RecoverArray(tc.text)
			require.True(t, ok)
			require.Len(t, records, 1)
			assert.Equal(t, "A", records[0]["subject"])
		})
	}
}

func TestRecoverArraySurroundingProse(t *testing.T) {
	text := `Sure! Based on the text, the triples are: [{"subject": "A", "predicate": "p", "object": "B"}, {"subject": "B", "predicate": "q", "object": "C"}] — let me know if you need more.`
	records, ok := RecoverArray(text)
	require.True(t, ok)
	assert.Len(t, records, 2)
}

func TestRecoverArrayBareKeys(t *testing.T) {
	text := `[{subject: "A", predicate: "p", object: "B"}]`
	records, ok := RecoverArray(text)
	require.True(t, ok)
	require.Len(t, records, 1)
	assert.Equal(t, "B", records[0]["object"])
}

func TestRecoverArrayTrailingCommas(t *testing.T) {
	text := `[{"subject": "A", "predicate": "p", "object": "B"},]`
	records, ok := RecoverArray(text)
	require.True(t, ok)
	assert.Len(t, records, 1)
}

func TestRecoverArrayTruncated(t *testing.T) {
	// Truncated mid-object: only the two complete objects survive, in order.
	text := `[{"subject": "A", "predicate": "p", "object": "B"}, {"subject": "B", "predicate": "q", "object": "C"}, {"subject": "C", "pre`
	records, ok := RecoverArray(text)
	require.True(t, ok)
	require.Len(t, records, 2)
	assert.Equal(t, "A", records[0]["subject"])
	assert.Equal(t, "B", records[1]["subject"])
}

func TestRecoverArrayTruncatedWithBareKeys(t *testing.T) {
	text := `[{subject: "A", predicate: "p", object: "B"}, {subject: "B", pred`
	records, ok := RecoverArray(text)
	require.True(t, ok)
	require.Len(t, records, 1)
	assert.Equal(t, "A", records[0]["subject"])
}

func TestRecoverArrayNoStructure(t *testing.T) {
	for _, text := range []string{
		"no json here at all",
		"",
		"[",
		"[not an object",
	} {
		records, ok := RecoverArray(text)
		assert.False(t, ok, "input %q", text)
		assert.Nil(t, records)
	}
}

func TestDecodeTriples(t *testing.T) {
	records := []map[string]any{
		{"subject": "A", "predicate": "p", "object": "B"},
		{"subject": "B", "predicate": "q", "object": "C", "inferred": true, "confidence": 0.6},
		{"subject": "", "predicate": "p", "object": "B"}, // skipped
		{"predicate": "p"}, // skipped
	}

	triples := DecodeTriples(records, 3)
	require.Len(t, triples, 2)
	assert.Equal(t, model.Triple{Subject: "A", Predicate: "p", Object: "B", Chunk: 3, Confidence: 1.0}, triples[0])
	assert.Equal(t, model.Triple{Subject: "B", Predicate: "q", Object: "C", Inferred: true, Chunk: 3, Confidence: 0.6}, triples[1])
}

func TestDecodeTriplesChunkOverride(t *testing.T) {
	records := []map[string]any{
		{"subject": "A", "predicate": "p", "object": "B", "chunk": float64(7)},
	}
	triples := DecodeTriples(records, 0)
	require.Len(t, triples, 1)
	assert.Equal(t, 7, triples[0].Chunk)
}
