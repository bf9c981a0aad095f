package pipeline

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/yumyai/planktable/logger"
	"github.com/yumyai/planktable/pkg/model"
	"go.uber.org/zap"
)

// Result is everything one input file produces: the five named views plus
// the per-file reporting (dropped-column warnings, lookup-miss summary).
// A Result is only returned when every view was fully computed.
type Result struct {
	RunID    string
	Source   string
	Columns  []model.SampleColumn
	Views    []*model.Table
	Warnings []string
	Summary  model.ClassifySummary
}

// View fetches a named view from the result set.
func (r *Result) View(name string) (*model.Table, bool) {
	for _, t := range r.Views {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

func readRawRows(csvPath string) ([][]string, error) {

	f, err := os.Open(csvPath)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // header and data rows differ in width

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	return rows, nil
}

// Run processes one input file end-to-end: header parse, taxon
// reconstruction, reference classification, aggregation, view building.
// Stages run synchronously on in-memory data; each invocation is
// independent so callers may process many files without coordination.
func Run(csvPath string, ref *model.ReferenceTable) (*Result, error) {

	runID := uuid.NewString()
	source := filepath.Base(csvPath)

	rows, err := readRawRows(csvPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}

	header, err := model.ParseHeader(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}

	for _, w := range header.Warnings {
		logger.Warn("Header column dropped",
			zap.String("file", source),
			zap.String("run_id", runID),
			zap.String("warning", w),
		)
	}

	taxa, err := model.ReconstructTaxa(rows, header.Columns)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}

	classified, summary := model.ClassifyTaxa(taxa, ref)

	if summary.Misses > 0 {
		// Misses are recovered as unclassified, reported, never dropped.
		logger.Warn("Reference lookup misses",
			zap.String("file", source),
			zap.String("run_id", runID),
			zap.Int("misses", summary.Misses),
			zap.Int("total", summary.Total),
		)
	}

	agg := model.Aggregate(classified, header.Columns)

	views, err := model.BuildViews(classified, agg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}

	logger.Debug("Pipeline run finished",
		zap.String("file", source),
		zap.String("run_id", runID),
		zap.Int("columns", len(header.Columns)),
		zap.Int("taxa", summary.Total),
	)

	return &Result{
		RunID:    runID,
		Source:   source,
		Columns:  header.Columns,
		Views:    views,
		Warnings: header.Warnings,
		Summary:  summary,
	}, nil
}
