package export

import (
	"encoding/xml"
	"os"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/sells-group/kgraph-cli/internal/model"
)

type graphmlDoc struct {
	XMLName xml.Name     `xml:"graphml"`
	Xmlns   string       `xml:"xmlns,attr"`
	Keys    []graphmlKey `xml:"key"`
	Graph   graphmlGraph `xml:"graph"`
}

type graphmlKey struct {
	ID       string `xml:"id,attr"`
	For      string `xml:"for,attr"`
	AttrName string `xml:"attr.name,attr"`
	AttrType string `xml:"attr.type,attr"`
}

type graphmlGraph struct {
	EdgeDefault string        `xml:"edgedefault,attr"`
	Nodes       []graphmlNode `xml:"node"`
	Edges       []graphmlEdge `xml:"edge"`
}

type graphmlNode struct {
	ID string `xml:"id,attr"`
}

type graphmlEdge struct {
	Source string         `xml:"source,attr"`
	Target string         `xml:"target,attr"`
	Data   []graphmlDatum `xml:"data"`
}

type graphmlDatum struct {
	Key   string `xml:"key,attr"`
	Value string `xml:",chardata"`
}

func writeGraphML(triples []model.Triple, path string) (Stats, error) {
	nodes, edges := projectGraph(triples)

	doc := graphmlDoc{
		Xmlns: "http://graphml.graphdrawing.org/xmlns",
		Keys: []graphmlKey{
			{ID: "relationship", For: "edge", AttrName: "relationship", AttrType: "string"},
			{ID: "inferred", For: "edge", AttrName: "inferred", AttrType: "boolean"},
			{ID: "chunk", For: "edge", AttrName: "chunk", AttrType: "int"},
			{ID: "confidence", For: "edge", AttrName: "confidence", AttrType: "double"},
			{ID: "weight", For: "edge", AttrName: "weight", AttrType: "double"},
		},
		Graph: graphmlGraph{EdgeDefault: "directed"},
	}
	for _, n := range nodes {
		doc.Graph.Nodes = append(doc.Graph.Nodes, graphmlNode{ID: n})
	}
	for _, e := range edges {
		doc.Graph.Edges = append(doc.Graph.Edges, graphmlEdge{
			Source: e.Source,
			Target: e.Target,
			Data: []graphmlDatum{
				{Key: "relationship", Value: e.Predicate},
				{Key: "inferred", Value: strconv.FormatBool(e.Inferred)},
				{Key: "chunk", Value: strconv.Itoa(e.Chunk)},
				{Key: "confidence", Value: strconv.FormatFloat(e.Confidence, 'f', -1, 64)},
				{Key: "weight", Value: strconv.FormatFloat(e.Weight, 'f', -1, 64)},
			},
		})
	}

	f, err := os.Create(path)
	if err != nil {
		return Stats{}, eris.Wrap(err, "export: create graphml file")
	}
	defer f.Close()

	if _, err := f.WriteString(xml.Header); err != nil {
		return Stats{}, eris.Wrap(err, "export: write graphml header")
	}
	enc := xml.NewEncoder(f)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return Stats{}, eris.Wrap(err, "export: encode graphml")
	}
	return Stats{Nodes: len(nodes), Edges: len(edges)}, nil
}
