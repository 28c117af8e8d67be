package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/kgraph-cli/internal/model"
)

// ErrNoSuccessfulResults is returned when every document in a batch failed,
// leaving nothing to analyze.
var ErrNoSuccessfulResults = eris.New("batch: no successful results")

// PerformanceMetrics aggregates per-document processing times over the
// successful subset of a batch.
type PerformanceMetrics struct {
	AvgProcessingTime time.Duration `json:"avg_processing_time_ns"`
	MinProcessingTime time.Duration `json:"min_processing_time_ns"`
	MaxProcessingTime time.Duration `json:"max_processing_time_ns"`
	SumProcessingTime time.Duration `json:"total_processing_time_ns"`
}

// ExtractionMetrics aggregates triple and entity yield per document.
type ExtractionMetrics struct {
	AvgTriplesPerFile       float64 `json:"avg_triples_per_file"`
	MinTriplesPerFile       int     `json:"min_triples_per_file"`
	MaxTriplesPerFile       int     `json:"max_triples_per_file"`
	TotalTriples            int     `json:"total_triples"`
	AvgEntitiesPerFile      float64 `json:"avg_entities_per_file"`
	AvgRelationshipsPerFile float64 `json:"avg_relationships_per_file"`
}

// ThroughputMetrics expresses batch yield as rates. Rates are computed
// against the sum of per-file times, not wall clock, so they are stable
// under different worker counts.
type ThroughputMetrics struct {
	FilesPerHour     float64 `json:"files_per_hour"`
	TriplesPerMinute float64 `json:"triples_per_minute"`
}

// Analysis is the derived performance view of a completed batch.
type Analysis struct {
	Performance PerformanceMetrics `json:"performance_metrics"`
	Extraction  ExtractionMetrics  `json:"extraction_metrics"`
	Throughput  ThroughputMetrics  `json:"throughput_metrics"`
}

// Analyze computes batch metrics from the successful documents only.
// Returns ErrNoSuccessfulResults when the batch had no successes.
func Analyze(summary model.BatchSummary) (Analysis, error) {
	var ok []model.DocumentResult
	for _, res := range summary.Results {
		if res.Status == model.DocStatusSucceeded {
			ok = append(ok, res)
		}
	}
	if len(ok) == 0 {
		return Analysis{}, ErrNoSuccessfulResults
	}

	var a Analysis
	a.Performance.MinProcessingTime = ok[0].Duration
	a.Extraction.MinTriplesPerFile = ok[0].TriplesExtracted

	var sumEntities, sumRelationships int
	for _, res := range ok {
		a.Performance.SumProcessingTime += res.Duration
		if res.Duration < a.Performance.MinProcessingTime {
			a.Performance.MinProcessingTime = res.Duration
		}
		if res.Duration > a.Performance.MaxProcessingTime {
			a.Performance.MaxProcessingTime = res.Duration
		}

		a.Extraction.TotalTriples += res.TriplesExtracted
		if res.TriplesExtracted < a.Extraction.MinTriplesPerFile {
			a.Extraction.MinTriplesPerFile = res.TriplesExtracted
		}
		if res.TriplesExtracted > a.Extraction.MaxTriplesPerFile {
			a.Extraction.MaxTriplesPerFile = res.TriplesExtracted
		}
		sumEntities += res.Stats.UniqueEntities
		sumRelationships += res.Stats.UniqueRelationships
	}

	n := float64(len(ok))
	a.Performance.AvgProcessingTime = a.Performance.SumProcessingTime / time.Duration(len(ok))
	a.Extraction.AvgTriplesPerFile = float64(a.Extraction.TotalTriples) / n
	a.Extraction.AvgEntitiesPerFile = float64(sumEntities) / n
	a.Extraction.AvgRelationshipsPerFile = float64(sumRelationships) / n

	if secs := a.Performance.SumProcessingTime.Seconds(); secs > 0 {
		a.Throughput.FilesPerHour = n / (secs / 3600)
		a.Throughput.TriplesPerMinute = float64(a.Extraction.TotalTriples) / (secs / 60)
	}
	return a, nil
}

// FormatReport renders a markdown performance report for a batch.
func FormatReport(summary model.BatchSummary, analysis Analysis) string {
	var b strings.Builder

	successRate := 0.0
	if summary.TotalFiles > 0 {
		successRate = float64(summary.Succeeded) / float64(summary.TotalFiles) * 100
	}

	fmt.Fprintf(&b, "# Batch Processing Performance Report\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", time.Now().Format(time.RFC3339))

	fmt.Fprintf(&b, "## Summary\n")
	fmt.Fprintf(&b, "- Total files processed: %d\n", summary.TotalFiles)
	fmt.Fprintf(&b, "- Successful: %d\n", summary.Succeeded)
	fmt.Fprintf(&b, "- Failed: %d\n", summary.Failed)
	fmt.Fprintf(&b, "- Success rate: %.1f%%\n\n", successRate)

	fmt.Fprintf(&b, "## Performance Metrics\n")
	fmt.Fprintf(&b, "- Average processing time: %.2fs\n", analysis.Performance.AvgProcessingTime.Seconds())
	fmt.Fprintf(&b, "- Fastest file: %.2fs\n", analysis.Performance.MinProcessingTime.Seconds())
	fmt.Fprintf(&b, "- Slowest file: %.2fs\n", analysis.Performance.MaxProcessingTime.Seconds())
	fmt.Fprintf(&b, "- Total processing time: %.2fs\n\n", analysis.Performance.SumProcessingTime.Seconds())

	fmt.Fprintf(&b, "## Extraction Quality\n")
	fmt.Fprintf(&b, "- Average triples per file: %.1f\n", analysis.Extraction.AvgTriplesPerFile)
	fmt.Fprintf(&b, "- Total triples extracted: %d\n", analysis.Extraction.TotalTriples)
	fmt.Fprintf(&b, "- Average entities per file: %.1f\n", analysis.Extraction.AvgEntitiesPerFile)
	fmt.Fprintf(&b, "- Average relationships per file: %.1f\n\n", analysis.Extraction.AvgRelationshipsPerFile)

	fmt.Fprintf(&b, "## Throughput\n")
	fmt.Fprintf(&b, "- Files per hour: %.1f\n", analysis.Throughput.FilesPerHour)
	fmt.Fprintf(&b, "- Triples per minute: %.1f\n\n", analysis.Throughput.TriplesPerMinute)

	fmt.Fprintf(&b, "## File-by-File Results\n")
	paths := make([]string, 0, len(summary.Results))
	for path := range summary.Results {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		res := summary.Results[path]
		name := filepath.Base(path)
		if res.Status == model.DocStatusSucceeded {
			fmt.Fprintf(&b, "- %s: %d triples, %.2fs\n", name, res.TriplesExtracted, res.Duration.Seconds())
		} else {
			fmt.Fprintf(&b, "- %s: FAILED - %s\n", name, res.Error)
		}
	}
	return b.String()
}

// WriteReport analyzes a batch and saves the markdown report to path.
func WriteReport(summary model.BatchSummary, path string) error {
	analysis, err := Analyze(summary)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(FormatReport(summary, analysis)), 0o644); err != nil {
		return eris.Wrap(err, "batch: write report")
	}
	return nil
}
