package graph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/kgraph-cli/internal/model"
)

func sampleTriples() []model.Triple {
	return []model.Triple{
		{Subject: "Alan Turing", Predicate: "worked at", Object: "Bletchley Park", Chunk: 0, Confidence: 1.0},
		{Subject: "Bletchley Park", Predicate: "located in", Object: "England", Chunk: 1, Confidence: 0.9},
		{Subject: "Alan Turing", Predicate: "influenced", Object: "Computer Science", Inferred: true, Chunk: 1, Confidence: 0.6},
		{Subject: "Computer Science", Predicate: "studies", Object: "Algorithms", Chunk: 2, Confidence: 0.8},
	}
}

func TestFilterEntitiesInclude(t *testing.T) {
	got := FilterEntities(sampleTriples(), []string{"alan turing"}, true)
	require.Len(t, got, 2)
	for _, tr := range got {
		matches := strings.EqualFold(tr.Subject, "Alan Turing") || strings.EqualFold(tr.Object, "Alan Turing")
		assert.True(t, matches)
	}
}

func TestFilterEntitiesExclude(t *testing.T) {
	got := FilterEntities(sampleTriples(), []string{"Alan Turing"}, false)
	require.Len(t, got, 2)
	for _, tr := range got {
		assert.NotEqual(t, "Alan Turing", tr.Subject)
		assert.NotEqual(t, "Alan Turing", tr.Object)
	}
}

func TestFilterEntitiesPreservesOrder(t *testing.T) {
	in := sampleTriples()
	got := FilterEntities(in, []string{"Bletchley Park"}, true)
	require.Len(t, got, 2)
	assert.Equal(t, in[0], got[0])
	assert.Equal(t, in[1], got[1])
}

func TestFilterEntitiesDoesNotMutateInput(t *testing.T) {
	in := sampleTriples()
	_ = FilterEntities(in, []string{"England"}, false)
	assert.Equal(t, sampleTriples(), in)
}

func TestFilterRelationships(t *testing.T) {
	got := FilterRelationships(sampleTriples(), []string{"WORKED AT"}, true)
	require.Len(t, got, 1)
	assert.Equal(t, "worked at", got[0].Predicate)

	got = FilterRelationships(sampleTriples(), []string{"worked at"}, false)
	assert.Len(t, got, 3)
}

func TestFilterInferenceStatus(t *testing.T) {
	tests := []struct {
		name            string
		includeInferred bool
		includeOriginal bool
		wantLen         int
	}{
		{"both", true, true, 4},
		{"only inferred", true, false, 1},
		{"only original", false, true, 3},
		{"neither", false, false, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterInferenceStatus(sampleTriples(), tc.includeInferred, tc.includeOriginal)
			assert.Len(t, got, tc.wantLen)
		})
	}
}

func TestFilterConfidenceInclusive(t *testing.T) {
	got := FilterConfidence(sampleTriples(), 0.8, 1.0)
	assert.Len(t, got, 3)

	// Boundaries are inclusive.
	got = FilterConfidence(sampleTriples(), 0.6, 0.6)
	require.Len(t, got, 1)
	assert.True(t, got[0].Inferred)
}

func TestFilterConfidenceIdempotent(t *testing.T) {
	once := FilterConfidence(sampleTriples(), 0.7, 1.0)
	twice := FilterConfidence(once, 0.7, 1.0)
	assert.Equal(t, once, twice)
}

func TestFilterChunks(t *testing.T) {
	got := FilterChunks(sampleTriples(), []int{1})
	assert.Len(t, got, 2)

	got = FilterChunks(sampleTriples(), []int{5})
	assert.Empty(t, got)
}

func TestCriteriaApplyOrder(t *testing.T) {
	// Exclusion runs before neighborhood, so the neighborhood is computed on
	// the already-reduced set: excluding England removes the bridge triple and
	// the 2-hop neighborhood of Alan Turing no longer reaches it.
	c := Criteria{
		ExcludeEntities: []string{"England"},
		Neighborhood:    &NeighborhoodSpec{Center: "Alan Turing", MaxHops: 2},
	}
	got := c.Apply(sampleTriples())
	for _, tr := range got {
		assert.NotEqual(t, "England", tr.Object)
	}
	assert.Len(t, got, 3)
}

func TestCriteriaApplyZero(t *testing.T) {
	c := Criteria{}
	assert.True(t, c.IsZero())
	in := sampleTriples()
	assert.Equal(t, in, c.Apply(in))
}

func TestCriteriaConfidenceDefaultsUpperBound(t *testing.T) {
	c := Criteria{MinConfidence: 0.8}
	got := c.Apply(sampleTriples())
	assert.Len(t, got, 3)
}
