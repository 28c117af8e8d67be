package model

import "strings"

// Triple is a single (subject, predicate, object) assertion extracted from a
// document, plus provenance flags. Identity is structural; duplicates are kept.
// Filters and exporters treat triples as values and never mutate in place.
type Triple struct {
	Subject    string  `json:"subject"`
	Predicate  string  `json:"predicate"`
	Object     string  `json:"object"`
	Inferred   bool    `json:"inferred"`
	Chunk      int     `json:"chunk"`
	Confidence float64 `json:"confidence"`
}

// GraphStats summarizes a triple list.
type GraphStats struct {
	TotalTriples        int `json:"total_triples"`
	UniqueEntities      int `json:"unique_entities"`
	UniqueRelationships int `json:"unique_relationships"`
	InferredTriples     int `json:"inferred_triples"`
}

// ComputeStats derives aggregate statistics from a triple list. Empty subjects
// and objects do not count as entities.
func ComputeStats(triples []Triple) GraphStats {
	entities := make(map[string]struct{})
	relationships := make(map[string]struct{})
	inferred := 0

	for _, t := range triples {
		if t.Subject != "" {
			entities[t.Subject] = struct{}{}
		}
		if t.Object != "" {
			entities[t.Object] = struct{}{}
		}
		if t.Predicate != "" {
			relationships[t.Predicate] = struct{}{}
		}
		if t.Inferred {
			inferred++
		}
	}

	return GraphStats{
		TotalTriples:        len(triples),
		UniqueEntities:      len(entities),
		UniqueRelationships: len(relationships),
		InferredTriples:     inferred,
	}
}

// Entities returns the deterministic discovery-ordered list of unique entity
// names (subjects first, then objects, in input order).
func Entities(triples []Triple) []string {
	seen := make(map[string]struct{}, len(triples)*2)
	var out []string
	add := func(name string) {
		if name == "" {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	for _, t := range triples {
		add(t.Subject)
		add(t.Object)
	}
	return out
}

// NormalizeEntity lowercases an entity name for case-insensitive matching.
func NormalizeEntity(name string) string {
	return strings.ToLower(name)
}
