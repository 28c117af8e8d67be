// Package graph implements pure, order-preserving filters over triple lists
// and bounded-hop neighborhood extraction. Every operation returns a new
// slice; inputs are never mutated, so independent workers may filter
// independent lists concurrently.
package graph

import (
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/kgraph-cli/internal/model"
)

// FilterEntities keeps (include=true) or drops (include=false) triples whose
// subject OR object matches one of the given entity names, case-insensitively.
func FilterEntities(triples []model.Triple, entities []string, include bool) []model.Triple {
	set := lowerSet(entities)
	out := make([]model.Triple, 0, len(triples))
	for _, t := range triples {
		_, subjHit := set[strings.ToLower(t.Subject)]
		_, objHit := set[strings.ToLower(t.Object)]
		hit := subjHit || objHit
		if hit == include {
			out = append(out, t)
		}
	}
	logFiltered("entities", len(triples), len(out))
	return out
}

// FilterRelationships keeps or drops triples whose predicate matches one of
// the given relationship names, case-insensitively.
func FilterRelationships(triples []model.Triple, relationships []string, include bool) []model.Triple {
	set := lowerSet(relationships)
	out := make([]model.Triple, 0, len(triples))
	for _, t := range triples {
		_, hit := set[strings.ToLower(t.Predicate)]
		if hit == include {
			out = append(out, t)
		}
	}
	logFiltered("relationships", len(triples), len(out))
	return out
}

// FilterInferenceStatus keeps a triple iff its inference flag is selected.
// Both selectors false legitimately yields an empty result.
func FilterInferenceStatus(triples []model.Triple, includeInferred, includeOriginal bool) []model.Triple {
	out := make([]model.Triple, 0, len(triples))
	for _, t := range triples {
		if (t.Inferred && includeInferred) || (!t.Inferred && includeOriginal) {
			out = append(out, t)
		}
	}
	logFiltered("inference status", len(triples), len(out))
	return out
}

// FilterConfidence keeps triples whose confidence lies in [min, max] inclusive.
func FilterConfidence(triples []model.Triple, min, max float64) []model.Triple {
	out := make([]model.Triple, 0, len(triples))
	for _, t := range triples {
		if t.Confidence >= min && t.Confidence <= max {
			out = append(out, t)
		}
	}
	logFiltered("confidence", len(triples), len(out))
	return out
}

// FilterChunks keeps triples whose chunk index is in the given set.
func FilterChunks(triples []model.Triple, chunks []int) []model.Triple {
	set := make(map[int]struct{}, len(chunks))
	for _, c := range chunks {
		set[c] = struct{}{}
	}
	out := make([]model.Triple, 0, len(triples))
	for _, t := range triples {
		if _, ok := set[t.Chunk]; ok {
			out = append(out, t)
		}
	}
	logFiltered("chunks", len(triples), len(out))
	return out
}

func lowerSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[strings.ToLower(n)] = struct{}{}
	}
	return set
}

func logFiltered(stage string, before, after int) {
	zap.L().Debug("graph: filtered",
		zap.String("stage", stage),
		zap.Int("before", before),
		zap.Int("after", after),
	)
}
