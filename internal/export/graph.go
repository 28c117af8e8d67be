package export

import "github.com/sells-group/kgraph-cli/internal/model"

type graphEdge struct {
	Source     string
	Target     string
	Predicate  string
	Inferred   bool
	Chunk      int
	Confidence float64
	Weight     float64
}

// projectGraph collapses triples into a directed graph. Nodes keep discovery
// order. Parallel edges between the same ordered (source, target) pair
// collapse to the last triple seen, matching single-edge graph tools.
func projectGraph(triples []model.Triple) (nodes []string, edges []graphEdge) {
	seenNode := make(map[string]struct{})
	addNode := func(name string) {
		if _, ok := seenNode[name]; ok {
			return
		}
		seenNode[name] = struct{}{}
		nodes = append(nodes, name)
	}

	edgeIdx := make(map[[2]string]int)
	for _, t := range triples {
		addNode(t.Subject)
		addNode(t.Object)

		weight := 1.0
		if t.Inferred {
			weight = 0.5
		}
		e := graphEdge{
			Source:     t.Subject,
			Target:     t.Object,
			Predicate:  t.Predicate,
			Inferred:   t.Inferred,
			Chunk:      t.Chunk,
			Confidence: t.Confidence,
			Weight:     weight,
		}

		key := [2]string{t.Subject, t.Object}
		if i, ok := edgeIdx[key]; ok {
			edges[i] = e
			continue
		}
		edgeIdx[key] = len(edges)
		edges = append(edges, e)
	}
	return nodes, edges
}
