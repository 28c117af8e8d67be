package neo4j

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/kgraph-cli/internal/model"
)

func TestEntityRowsDeduplicates(t *testing.T) {
	triples := []model.Triple{
		{Subject: "A", Predicate: "p", Object: "B"},
		{Subject: "B", Predicate: "q", Object: "C"},
		{Subject: "A", Predicate: "r", Object: "C"},
	}

	rows := entityRows(triples)
	require.Len(t, rows, 3)
	assert.Equal(t, "A", rows[0]["name"])
	assert.Equal(t, "B", rows[1]["name"])
	assert.Equal(t, "C", rows[2]["name"])
}

func TestRelationshipRowsCarryProvenance(t *testing.T) {
	triples := []model.Triple{
		{Subject: "A", Predicate: "p", Object: "B", Inferred: true, Chunk: 3, Confidence: 0.6},
	}

	rows := relationshipRows(triples)
	require.Len(t, rows, 1)
	assert.Equal(t, "p", rows[0]["predicate"])
	assert.Equal(t, true, rows[0]["inferred"])
	assert.Equal(t, 3, rows[0]["chunk"])
	assert.Equal(t, 0.6, rows[0]["confidence"])
}

func TestBatches(t *testing.T) {
	rows := make([]map[string]any, 2500)
	for i := range rows {
		rows[i] = map[string]any{"name": i}
	}

	chunks := batches(rows, 1000)
	require.Len(t, chunks, 3)
	assert.Len(t, chunks[0], 1000)
	assert.Len(t, chunks[1], 1000)
	assert.Len(t, chunks[2], 500)

	assert.Nil(t, batches(nil, 1000))
}
