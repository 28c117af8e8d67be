package export

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/sells-group/kgraph-cli/internal/model"
)

var csvHeader = []string{"subject", "predicate", "object", "inferred", "chunk", "confidence"}

func writeCSV(triples []model.Triple, path string) (Stats, error) {
	f, err := os.Create(path)
	if err != nil {
		return Stats{}, eris.Wrap(err, "export: create csv file")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return Stats{}, eris.Wrap(err, "export: write csv header")
	}
	for _, t := range triples {
		row := []string{
			t.Subject,
			t.Predicate,
			t.Object,
			strconv.FormatBool(t.Inferred),
			strconv.Itoa(t.Chunk),
			strconv.FormatFloat(t.Confidence, 'f', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return Stats{}, eris.Wrap(err, "export: write csv row")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return Stats{}, eris.Wrap(err, "export: flush csv")
	}
	return Stats{TotalTriples: len(triples)}, nil
}
