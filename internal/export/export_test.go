package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/kgraph-cli/internal/model"
)

func sampleTriples() []model.Triple {
	return []model.Triple{
		{Subject: "Alan Turing", Predicate: "worked at", Object: "Bletchley Park", Chunk: 0, Confidence: 0.95},
		{Subject: "Alan Turing", Predicate: "pioneered", Object: "Computer Science", Inferred: true, Chunk: 1, Confidence: 0.7},
		{Subject: "Bletchley Park", Predicate: "located in", Object: "England", Chunk: 0, Confidence: 1.0},
	}
}

func TestParseFormats(t *testing.T) {
	formats, err := ParseFormats("json, CSV,graphml")
	require.NoError(t, err)
	assert.Equal(t, []Format{FormatJSON, FormatCSV, FormatGraphML}, formats)

	_, err = ParseFormats("json,xlsx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xlsx")
}

func TestWriteAllProducesEveryFormat(t *testing.T) {
	base := filepath.Join(t.TempDir(), "graph")
	formats := []Format{FormatJSON, FormatCSV, FormatGraphML, FormatGEXF, FormatTurtle}

	results := WriteAll(sampleTriples(), base, formats)
	require.Len(t, results, len(formats))
	for _, f := range formats {
		res := results[f]
		require.True(t, res.Succeeded(), "format %s: %s", f, res.Err)
		assert.Equal(t, base+"."+string(f), res.Path)
		_, err := os.Stat(res.Path)
		require.NoError(t, err)
	}
}

func TestWriteAllIsolatesFormatFailure(t *testing.T) {
	base := filepath.Join(t.TempDir(), "graph")
	// A directory squatting on the csv output path makes os.Create fail
	// for that format only.
	require.NoError(t, os.Mkdir(base+".csv", 0o755))

	results := WriteAll(sampleTriples(), base, []Format{FormatJSON, FormatCSV})

	require.True(t, results[FormatJSON].Succeeded())
	require.False(t, results[FormatCSV].Succeeded())
	assert.NotEmpty(t, results[FormatCSV].Err)
	assert.Empty(t, results[FormatCSV].Path)
}

func TestWriteJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	stats, err := writeJSON(sampleTriples(), path)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalTriples)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc jsonDocument
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Len(t, doc.Triples, 3)
	assert.Equal(t, 3, doc.Statistics.TotalTriples)
	assert.Equal(t, 4, doc.Statistics.UniqueEntities)
	assert.Equal(t, 1, doc.Statistics.InferredTriples)
	assert.Equal(t, "1.0", doc.Metadata.FormatVersion)
	assert.Equal(t, "kgraph-cli", doc.Metadata.Generator)
	assert.False(t, doc.Metadata.ExportedAt.IsZero())
}

func TestWriteCSVHeaderAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.csv")
	_, err := writeCSV(sampleTriples(), path)
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, []string{"Alan Turing", "worked at", "Bletchley Park", "false", "0", "0.95"}, rows[1])
	assert.Equal(t, []string{"Alan Turing", "pioneered", "Computer Science", "true", "1", "0.7"}, rows[2])
}

func TestProjectGraphDeduplicatesParallelEdges(t *testing.T) {
	triples := []model.Triple{
		{Subject: "A", Predicate: "first", Object: "B", Confidence: 1.0},
		{Subject: "A", Predicate: "second", Object: "B", Inferred: true, Confidence: 0.5},
		{Subject: "B", Predicate: "back", Object: "A", Confidence: 1.0},
	}

	nodes, edges := projectGraph(triples)
	assert.Equal(t, []string{"A", "B"}, nodes)
	require.Len(t, edges, 2)

	// Parallel edge collapsed to the last triple seen; the reverse
	// direction is a distinct edge.
	assert.Equal(t, "second", edges[0].Predicate)
	assert.True(t, edges[0].Inferred)
	assert.Equal(t, 0.5, edges[0].Weight)
	assert.Equal(t, "back", edges[1].Predicate)
	assert.Equal(t, 1.0, edges[1].Weight)
}

func TestWriteGraphMLStructure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.graphml")
	stats, err := writeGraphML(sampleTriples(), path)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Nodes)
	assert.Equal(t, 3, stats.Edges)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(raw)
	assert.Contains(t, content, `<?xml`)
	assert.Contains(t, content, `edgedefault="directed"`)
	assert.Contains(t, content, `<node id="Alan Turing"`)
	assert.Contains(t, content, `source="Alan Turing" target="Bletchley Park"`)
	assert.Contains(t, content, `<data key="relationship">worked at</data>`)
	assert.Contains(t, content, `<data key="weight">0.5</data>`)
}

func TestWriteGEXFStructure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.gexf")
	stats, err := writeGEXF(sampleTriples(), path)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Nodes)
	assert.Equal(t, 3, stats.Edges)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(raw)
	assert.Contains(t, content, `version="1.2"`)
	assert.Contains(t, content, `defaultedgetype="directed"`)
	assert.Contains(t, content, `label="Alan Turing"`)
	assert.Contains(t, content, `label="pioneered" weight="0.5"`)
}

func TestWriteTurtleSanitizesTerms(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.ttl")
	triples := []model.Triple{
		{Subject: "Ada Lovelace (mathematician)", Predicate: "co-authored", Object: "Analytical Engine notes", Confidence: 1.0},
	}
	_, err := writeTurtle(triples, path)
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(raw)
	assert.True(t, strings.HasPrefix(content, "@prefix kg:"))
	assert.Contains(t, content, "@prefix rdf:")
	assert.Contains(t, content, "@prefix rdfs:")
	assert.Contains(t, content, "kg:Ada_Lovelace_mathematician kg:co_authored kg:Analytical_Engine_notes .")
}

func TestWriteAllEmptyTriples(t *testing.T) {
	base := filepath.Join(t.TempDir(), "empty")
	results := WriteAll(nil, base, nil)
	require.Len(t, results, len(DefaultFormats))
	for f, res := range results {
		require.True(t, res.Succeeded(), "format %s", f)
		assert.Equal(t, 0, res.Stats.TotalTriples)
		assert.Equal(t, 0, res.Stats.Edges)
	}
}
