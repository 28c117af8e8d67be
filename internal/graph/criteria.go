package graph

import "github.com/sells-group/kgraph-cli/internal/model"

// NeighborhoodSpec selects a bounded-hop subgraph around a center entity.
type NeighborhoodSpec struct {
	Center  string `yaml:"center" mapstructure:"center"`
	MaxHops int    `yaml:"max_hops" mapstructure:"max_hops"`
}

// Criteria is an ordered, composable filter pipeline. Stages run in the fixed
// order below; each stage consumes the previous stage's output, so
// non-commuting operations (neighborhood after exclusion, for example) act on
// an already-reduced set.
type Criteria struct {
	IncludeEntities      []string
	ExcludeEntities      []string
	IncludeRelationships []string
	ExcludeRelationships []string

	// OnlyInferred and OnlyOriginal are mutually exclusive selectors; when
	// neither is set the inference stage is skipped.
	OnlyInferred bool
	OnlyOriginal bool

	MinConfidence float64
	MaxConfidence float64 // zero means "no upper bound" (treated as 1.0)

	Chunks []int

	Neighborhood *NeighborhoodSpec
}

// IsZero reports whether no stage is configured.
func (c Criteria) IsZero() bool {
	return len(c.IncludeEntities) == 0 &&
		len(c.ExcludeEntities) == 0 &&
		len(c.IncludeRelationships) == 0 &&
		len(c.ExcludeRelationships) == 0 &&
		!c.OnlyInferred && !c.OnlyOriginal &&
		c.MinConfidence == 0 && c.MaxConfidence == 0 &&
		len(c.Chunks) == 0 &&
		c.Neighborhood == nil
}

// Apply runs the configured stages in order over a copy of the input.
func (c Criteria) Apply(triples []model.Triple) []model.Triple {
	out := triples

	if len(c.IncludeEntities) > 0 {
		out = FilterEntities(out, c.IncludeEntities, true)
	}
	if len(c.ExcludeEntities) > 0 {
		out = FilterEntities(out, c.ExcludeEntities, false)
	}
	if len(c.IncludeRelationships) > 0 {
		out = FilterRelationships(out, c.IncludeRelationships, true)
	}
	if len(c.ExcludeRelationships) > 0 {
		out = FilterRelationships(out, c.ExcludeRelationships, false)
	}
	if c.OnlyInferred {
		out = FilterInferenceStatus(out, true, false)
	} else if c.OnlyOriginal {
		out = FilterInferenceStatus(out, false, true)
	}
	if c.MinConfidence > 0 || c.MaxConfidence > 0 {
		max := c.MaxConfidence
		if max == 0 {
			max = 1.0
		}
		out = FilterConfidence(out, c.MinConfidence, max)
	}
	if len(c.Chunks) > 0 {
		out = FilterChunks(out, c.Chunks)
	}
	if c.Neighborhood != nil {
		out = Neighborhood(out, c.Neighborhood.Center, c.Neighborhood.MaxHops)
	}

	return out
}
