package export

import (
	"encoding/json"
	"os"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/kgraph-cli/internal/model"
)

type jsonDocument struct {
	Triples    []model.Triple   `json:"triples"`
	Statistics model.GraphStats `json:"statistics"`
	Metadata   jsonMetadata     `json:"metadata"`
}

type jsonMetadata struct {
	ExportedAt    time.Time `json:"export_timestamp"`
	FormatVersion string    `json:"format_version"`
	Generator     string    `json:"generator"`
}

func writeJSON(triples []model.Triple, path string) (Stats, error) {
	doc := jsonDocument{
		Triples:    triples,
		Statistics: model.ComputeStats(triples),
		Metadata: jsonMetadata{
			ExportedAt:    time.Now().UTC(),
			FormatVersion: "1.0",
			Generator:     "kgraph-cli",
		},
	}

	f, err := os.Create(path)
	if err != nil {
		return Stats{}, eris.Wrap(err, "export: create json file")
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return Stats{}, eris.Wrap(err, "export: encode json")
	}
	return Stats{TotalTriples: len(triples)}, nil
}
