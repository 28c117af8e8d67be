package graph

import (
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/kgraph-cli/internal/model"
)

// Neighborhood extracts the subgraph within maxHops undirected hops of the
// center entity. Adjacency is built over ALL input triples; BFS visits each
// entity once in discovery order, so the result is deterministic for a fixed
// input ordering. The returned triples are those whose subject AND object are
// both within the visited set. An absent center yields an empty result.
func Neighborhood(triples []model.Triple, center string, maxHops int) []model.Triple {
	center = strings.ToLower(center)

	// Undirected adjacency in discovery order.
	adjacency := make(map[string][]string)
	present := make(map[string]struct{})
	addEdge := func(a, b string) {
		adjacency[a] = append(adjacency[a], b)
		present[a] = struct{}{}
	}
	for _, t := range triples {
		s := strings.ToLower(t.Subject)
		o := strings.ToLower(t.Object)
		addEdge(s, o)
		addEdge(o, s)
	}

	if _, ok := present[center]; !ok {
		zap.L().Debug("graph: neighborhood center not found", zap.String("center", center))
		return []model.Triple{}
	}

	type frontier struct {
		entity string
		depth  int
	}
	visited := map[string]struct{}{center: {}}
	queue := []frontier{{center, 0}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.depth >= maxHops {
			continue
		}
		for _, next := range adjacency[cur.entity] {
			if _, seen := visited[next]; seen {
				continue
			}
			visited[next] = struct{}{}
			queue = append(queue, frontier{next, cur.depth + 1})
		}
	}

	out := make([]model.Triple, 0, len(triples))
	for _, t := range triples {
		_, subjIn := visited[strings.ToLower(t.Subject)]
		_, objIn := visited[strings.ToLower(t.Object)]
		if subjIn && objIn {
			out = append(out, t)
		}
	}

	zap.L().Debug("graph: neighborhood extracted",
		zap.String("center", center),
		zap.Int("max_hops", maxHops),
		zap.Int("entities", len(visited)),
		zap.Int("triples", len(out)),
	)
	return out
}
