package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/kgraph-cli/internal/export"
	"github.com/sells-group/kgraph-cli/internal/graph"
	"github.com/sells-group/kgraph-cli/internal/model"
	"github.com/sells-group/kgraph-cli/internal/pipeline"
)

var processFlags struct {
	input         string
	exportBase    string
	exportFormats string

	filterEntities       string
	excludeEntities      string
	filterRelationships  string
	excludeRelationships string
	onlyInferred         bool
	onlyOriginal         bool
	minConfidence        float64
	maxConfidence        float64
	chunks               []int
	subgraphEntity       string
	subgraphHops         int

	neo4jExport bool
	neo4jClear  bool
}

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Extract, filter, and export a knowledge graph from one document",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		runner, err := newRunner()
		if err != nil {
			return err
		}

		formats, err := export.ParseFormats(processFlags.exportFormats)
		if err != nil {
			return err
		}

		criteria, err := buildCriteria()
		if err != nil {
			return err
		}

		sink, err := newSink(ctx, processFlags.neo4jExport)
		if err != nil {
			return err
		}
		if sink != nil {
			defer sink.Close(ctx) //nolint:errcheck
		}

		opts := []pipeline.Option{
			pipeline.WithCriteria(criteria),
			pipeline.WithFormats(formats),
		}
		if sink != nil {
			opts = append(opts, pipeline.WithSink(sink, processFlags.neo4jClear))
		}
		p := pipeline.New(runner, opts...)

		base := processFlags.exportBase
		if base == "" {
			base = strings.TrimSuffix(processFlags.input, filepath.Ext(processFlags.input))
		}

		res := p.ProcessDocument(ctx, processFlags.input, base)
		if res.Status != model.DocStatusSucceeded {
			return eris.Errorf("process %s: %s", processFlags.input, res.Error)
		}

		printDocumentResult(res)
		return nil
	},
}

// buildCriteria translates the filter flags into graph filter criteria.
func buildCriteria() (graph.Criteria, error) {
	if processFlags.onlyInferred && processFlags.onlyOriginal {
		return graph.Criteria{}, eris.New("--only-inferred and --only-original are mutually exclusive")
	}

	c := graph.Criteria{
		IncludeEntities:      splitList(processFlags.filterEntities),
		ExcludeEntities:      splitList(processFlags.excludeEntities),
		IncludeRelationships: splitList(processFlags.filterRelationships),
		ExcludeRelationships: splitList(processFlags.excludeRelationships),
		OnlyInferred:         processFlags.onlyInferred,
		OnlyOriginal:         processFlags.onlyOriginal,
		MinConfidence:        processFlags.minConfidence,
		MaxConfidence:        processFlags.maxConfidence,
		Chunks:               processFlags.chunks,
	}
	if processFlags.subgraphEntity != "" {
		c.Neighborhood = &graph.NeighborhoodSpec{
			Center:  processFlags.subgraphEntity,
			MaxHops: processFlags.subgraphHops,
		}
	}
	return c, nil
}

func printDocumentResult(res model.DocumentResult) {
	fmt.Printf("Processed %s in %s\n", res.Path, res.Duration.Round(1e6))
	fmt.Printf("  triples: %d  entities: %d  relationships: %d  inferred: %d\n",
		res.Stats.TotalTriples, res.Stats.UniqueEntities,
		res.Stats.UniqueRelationships, res.Stats.InferredTriples)
	for name, outcome := range res.Exports {
		if outcome.Status == "success" {
			if outcome.Path != "" {
				fmt.Printf("  %-8s -> %s\n", name, outcome.Path)
			} else {
				fmt.Printf("  %-8s -> ok\n", name)
			}
		} else {
			fmt.Fprintf(os.Stderr, "  %-8s FAILED: %s\n", name, outcome.Error)
		}
	}
}

func init() {
	f := processCmd.Flags()
	f.StringVar(&processFlags.input, "input", "", "input document path (required)")
	f.StringVar(&processFlags.exportBase, "export-base", "", "output base path (default: input path without extension)")
	f.StringVar(&processFlags.exportFormats, "export-formats", "json,csv,graphml", "comma-separated export formats (json,csv,graphml,gexf,turtle)")

	f.StringVar(&processFlags.filterEntities, "filter-entities", "", "keep only triples mentioning these entities")
	f.StringVar(&processFlags.excludeEntities, "exclude-entities", "", "drop triples mentioning these entities")
	f.StringVar(&processFlags.filterRelationships, "filter-relationships", "", "keep only these predicates")
	f.StringVar(&processFlags.excludeRelationships, "exclude-relationships", "", "drop these predicates")
	f.BoolVar(&processFlags.onlyInferred, "only-inferred", false, "keep only inferred triples")
	f.BoolVar(&processFlags.onlyOriginal, "only-original", false, "keep only directly extracted triples")
	f.Float64Var(&processFlags.minConfidence, "min-confidence", 0, "minimum confidence (inclusive)")
	f.Float64Var(&processFlags.maxConfidence, "max-confidence", 0, "maximum confidence (inclusive, 0 means 1.0)")
	f.IntSliceVar(&processFlags.chunks, "chunks", nil, "keep only triples from these chunk indexes")
	f.StringVar(&processFlags.subgraphEntity, "subgraph-entity", "", "center entity for neighborhood extraction")
	f.IntVar(&processFlags.subgraphHops, "subgraph-hops", 1, "neighborhood radius in hops")

	f.BoolVar(&processFlags.neo4jExport, "neo4j-export", false, "push the filtered graph to Neo4j")
	f.BoolVar(&processFlags.neo4jClear, "neo4j-clear", false, "clear previously imported entities first")

	_ = processCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(processCmd)
}
