package extract

import (
	"encoding/json"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/kgraph-cli/internal/model"
)

// fencedBlockRe matches the first fenced code block, optionally tagged json.
var fencedBlockRe = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)```")

// RecoverArray extracts a JSON array of records from free text that may be
// fenced, truncated, or syntactically corrupted. It tries, in order:
//
//  1. unwrap the first fenced code block, if any
//  2. direct parse of the (possibly unwrapped) text
//  3. balanced-bracket extraction of the first [...] span, with repairs
//  4. salvage of complete {...} objects from a truncated array, with repairs
//
// Malformed input is never an error: the second return value is false when no
// array could be recovered, and callers treat that as zero records.
func RecoverArray(text string) ([]map[string]any, bool) {
	if m := fencedBlockRe.FindStringSubmatch(text); m != nil {
		text = strings.TrimSpace(m[1])
	}

	if records, ok := parseRecords(text); ok {
		return records, true
	}

	start := strings.Index(text, "[")
	if start < 0 {
		return nil, false
	}

	end := matchingBracket(text, start)
	if end >= 0 {
		span := text[start : end+1]
		if records, ok := parseRecords(span); ok {
			return records, true
		}
		if records, ok := parseRecords(repairJSON(span)); ok {
			return records, true
		}
		return nil, false
	}

	// Truncated array: recover every syntactically complete top-level object
	// after the array start and synthesize a new array from just those.
	objects := completeObjects(text[start+1:])
	if len(objects) == 0 {
		return nil, false
	}
	rebuilt := "[\n" + strings.Join(objects, ",\n") + "\n]"
	if records, ok := parseRecords(rebuilt); ok {
		zap.L().Debug("recovered truncated array", zap.Int("objects", len(objects)))
		return records, true
	}
	if records, ok := parseRecords(repairJSON(rebuilt)); ok {
		return records, true
	}
	return nil, false
}

// matchingBracket returns the index of the ] matching the [ at start, using
// naive balanced-bracket counting, or -1 if the array is never closed.
func matchingBracket(text string, start int) int {
	depth := 0
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// parseRecords attempts a strict parse of text as an array of objects.
func parseRecords(text string) ([]map[string]any, bool) {
	var records []map[string]any
	if err := json.Unmarshal([]byte(text), &records); err != nil {
		return nil, false
	}
	return records, true
}

// completeObjects scans forward collecting each balanced top-level {...}
// substring. A dangling partial object at the end is discarded.
func completeObjects(text string) []string {
	var objects []string
	depth := 0
	objStart := -1
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '{':
			if depth == 0 {
				objStart = i
			}
			depth++
		case '}':
			depth--
			if depth == 0 && objStart >= 0 {
				objects = append(objects, text[objStart:i+1])
				objStart = -1
			}
		}
	}
	return objects
}

// DecodeTriples converts generic recovered records into Triples tagged with
// the given chunk index. Records missing any of subject/predicate/object are
// skipped. Defaults: inferred=false, confidence=1.0.
func DecodeTriples(records []map[string]any, chunk int) []model.Triple {
	var triples []model.Triple
	for _, rec := range records {
		subject, _ := rec["subject"].(string)
		predicate, _ := rec["predicate"].(string)
		object, _ := rec["object"].(string)
		if subject == "" || predicate == "" || object == "" {
			continue
		}

		t := model.Triple{
			Subject:    subject,
			Predicate:  predicate,
			Object:     object,
			Chunk:      chunk,
			Confidence: 1.0,
		}
		if inferred, ok := rec["inferred"].(bool); ok {
			t.Inferred = inferred
		}
		if conf, ok := toFloat64(rec["confidence"]); ok {
			t.Confidence = conf
		}
		if c, ok := toFloat64(rec["chunk"]); ok {
			t.Chunk = int(c)
		}
		triples = append(triples, t)
	}
	return triples
}

// toFloat64 attempts to convert an any value to float64.
func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
