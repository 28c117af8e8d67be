// Package export serializes a triple list into independent file formats.
// Formats are isolated: one format's failure is recorded in its own Result
// and never aborts the others.
package export

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/kgraph-cli/internal/model"
)

// Format identifies a supported export encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatCSV     Format = "csv"
	FormatGraphML Format = "graphml"
	FormatGEXF    Format = "gexf"
	FormatTurtle  Format = "turtle"
)

// DefaultFormats is the export set used when the caller specifies none.
var DefaultFormats = []Format{FormatJSON, FormatCSV, FormatGraphML}

// ParseFormats parses a comma-separated format list, rejecting unknown names.
func ParseFormats(s string) ([]Format, error) {
	var formats []Format
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if part == "" {
			continue
		}
		f := Format(part)
		switch f {
		case FormatJSON, FormatCSV, FormatGraphML, FormatGEXF, FormatTurtle:
			formats = append(formats, f)
		default:
			return nil, eris.Errorf("export: unknown format %q", part)
		}
	}
	return formats, nil
}

// Stats holds per-format serialization statistics. TotalTriples is reported
// by record-shaped formats; Nodes/Edges by graph-shaped formats after
// parallel-edge deduplication.
type Stats struct {
	TotalTriples int `json:"total_triples,omitempty"`
	Nodes        int `json:"total_nodes,omitempty"`
	Edges        int `json:"total_edges,omitempty"`
}

// Result is the outcome of exporting one format.
type Result struct {
	Status string `json:"status"` // "success" or "error"
	Path   string `json:"file_path,omitempty"`
	Stats  Stats  `json:"statistics,omitempty"`
	Err    string `json:"error,omitempty"`
}

// Succeeded reports whether the export completed.
func (r Result) Succeeded() bool { return r.Status == "success" }

// WriteAll exports triples to every requested format, producing one artifact
// named <base>.<format> per format and one Result per format. Failures are
// captured per format and never propagate.
func WriteAll(triples []model.Triple, base string, formats []Format) map[Format]Result {
	if len(formats) == 0 {
		formats = DefaultFormats
	}

	results := make(map[Format]Result, len(formats))
	for _, f := range formats {
		path := fmt.Sprintf("%s.%s", base, f)

		var stats Stats
		var err error
		switch f {
		case FormatJSON:
			stats, err = writeJSON(triples, path)
		case FormatCSV:
			stats, err = writeCSV(triples, path)
		case FormatGraphML:
			stats, err = writeGraphML(triples, path)
		case FormatGEXF:
			stats, err = writeGEXF(triples, path)
		case FormatTurtle:
			stats, err = writeTurtle(triples, path)
		}

		if err != nil {
			zap.L().Error("export: format failed",
				zap.String("format", string(f)),
				zap.String("path", path),
				zap.Error(err),
			)
			results[f] = Result{Status: "error", Err: err.Error()}
			continue
		}

		zap.L().Info("export: wrote artifact",
			zap.String("format", string(f)),
			zap.String("path", path),
			zap.Int("triples", len(triples)),
		)
		results[f] = Result{Status: "success", Path: path, Stats: stats}
	}
	return results
}
