package export

import (
	"encoding/xml"
	"os"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/sells-group/kgraph-cli/internal/model"
)

type gexfDoc struct {
	XMLName xml.Name  `xml:"gexf"`
	Xmlns   string    `xml:"xmlns,attr"`
	Version string    `xml:"version,attr"`
	Graph   gexfGraph `xml:"graph"`
}

type gexfGraph struct {
	DefaultEdgeType string    `xml:"defaultedgetype,attr"`
	Nodes           gexfNodes `xml:"nodes"`
	Edges           gexfEdges `xml:"edges"`
}

type gexfNodes struct {
	Nodes []gexfNode `xml:"node"`
}

type gexfNode struct {
	ID    string `xml:"id,attr"`
	Label string `xml:"label,attr"`
}

type gexfEdges struct {
	Edges []gexfEdge `xml:"edge"`
}

type gexfEdge struct {
	ID     string `xml:"id,attr"`
	Source string `xml:"source,attr"`
	Target string `xml:"target,attr"`
	Label  string `xml:"label,attr"`
	Weight string `xml:"weight,attr"`
}

func writeGEXF(triples []model.Triple, path string) (Stats, error) {
	nodes, edges := projectGraph(triples)

	doc := gexfDoc{
		Xmlns:   "http://www.gexf.net/1.2draft",
		Version: "1.2",
		Graph:   gexfGraph{DefaultEdgeType: "directed"},
	}
	for _, n := range nodes {
		doc.Graph.Nodes.Nodes = append(doc.Graph.Nodes.Nodes, gexfNode{ID: n, Label: n})
	}
	for i, e := range edges {
		doc.Graph.Edges.Edges = append(doc.Graph.Edges.Edges, gexfEdge{
			ID:     strconv.Itoa(i),
			Source: e.Source,
			Target: e.Target,
			Label:  e.Predicate,
			Weight: strconv.FormatFloat(e.Weight, 'f', -1, 64),
		})
	}

	f, err := os.Create(path)
	if err != nil {
		return Stats{}, eris.Wrap(err, "export: create gexf file")
	}
	defer f.Close()

	if _, err := f.WriteString(xml.Header); err != nil {
		return Stats{}, eris.Wrap(err, "export: write gexf header")
	}
	enc := xml.NewEncoder(f)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return Stats{}, eris.Wrap(err, "export: encode gexf")
	}
	return Stats{Nodes: len(nodes), Edges: len(edges)}, nil
}
