package export

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/kgraph-cli/internal/model"
)

const turtleHeader = `@prefix kg: <http://example.org/kg/> .
@prefix rdf: <http://www.w3.org/1999/02/22-rdf-syntax-ns#> .
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .

`

var turtleSanitizer = strings.NewReplacer(
	" ", "_",
	"-", "_",
	"(", "",
	")", "",
)

// turtleTerm maps an entity or predicate name onto a kg:-prefixed local name.
func turtleTerm(name string) string {
	return "kg:" + turtleSanitizer.Replace(name)
}

func writeTurtle(triples []model.Triple, path string) (Stats, error) {
	f, err := os.Create(path)
	if err != nil {
		return Stats{}, eris.Wrap(err, "export: create turtle file")
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if _, err := w.WriteString(turtleHeader); err != nil {
		return Stats{}, eris.Wrap(err, "export: write turtle header")
	}
	for _, t := range triples {
		line := fmt.Sprintf("%s %s %s .\n",
			turtleTerm(t.Subject), turtleTerm(t.Predicate), turtleTerm(t.Object))
		if _, err := w.WriteString(line); err != nil {
			return Stats{}, eris.Wrap(err, "export: write turtle triple")
		}
	}
	if err := w.Flush(); err != nil {
		return Stats{}, eris.Wrap(err, "export: flush turtle")
	}
	return Stats{TotalTriples: len(triples)}, nil
}
