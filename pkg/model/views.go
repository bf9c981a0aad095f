package model

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// The five named output views, in the order they are emitted.
const (
	ViewAllClassified          = "all_classified"
	ViewMixoplankton           = "mixoplankton"
	ViewMixoplanktonWithHeader = "mixoplankton_with_header"
	ViewTotals                 = "totals"
	ViewPretty                 = "pretty"
)

// Placeholder rendered where a value is undefined (unclassified biomass,
// missing reference constants). Never silently omitted.
const Placeholder = "NA"

func formatCount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatEvidence(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// Column order used by the multi-header views: by date, then station, then
// depth, so columns group naturally under their month.
func presentationOrder(cols []SampleColumn) []SampleColumn {
	ordered := make([]SampleColumn, len(cols))
	copy(ordered, cols)
	sort.SliceStable(ordered, func(a, b int) bool {
		ca, cb := ordered[a], ordered[b]
		if !ca.Date.Equal(cb.Date) {
			return ca.Date.Before(cb.Date)
		}
		if ca.Station != cb.Station {
			return ca.Station < cb.Station
		}
		return ca.Depth < cb.Depth
	})
	return ordered
}

// positionOf maps a presentation column back to its index in the original
// column slice, which is what TaxonRow counts are aligned with.
func positionOf(cols []SampleColumn, target SampleColumn) int {
	for i, c := range cols {
		if c.Key() == target.Key() {
			return i
		}
	}
	return -1
}

func mixoplanktonOnly(taxa []ClassifiedTaxon) []ClassifiedTaxon {
	var out []ClassifiedTaxon
	for _, ct := range taxa {
		if ct.FunctionalTypeOf() == FunctionalMixoplankton {
			out = append(out, ct)
		}
	}
	return out
}

// stackedHeader builds the two header rows of the month-grouped views:
// month names over station/date labels. extra columns are appended to the
// right of the sample columns on both rows.
func stackedHeader(ordered []SampleColumn, extra ...string) [][]string {
	top := []string{"", "", ""}
	bottom := []string{"Phylum", "Genus", "Species"}
	for _, c := range ordered {
		top = append(top, c.Date.Month().String())
		bottom = append(bottom, c.Label())
	}
	for _, e := range extra {
		top = append(top, "")
		bottom = append(bottom, e)
	}
	return [][]string{top, bottom}
}

// BuildAllClassified flattens every (taxon, sample column) pair into one
// row. Unclassified taxa are present with their counts preserved.
func BuildAllClassified(taxa []ClassifiedTaxon, cols []SampleColumn) (*Table, error) {

	if len(taxa) == 0 {
		return nil, fmt.Errorf("%s: %w", ViewAllClassified, ErrEmptyInput)
	}

	table := &Table{
		Name: ViewAllClassified,
		Header: [][]string{{
			"Phylum", "Genus", "Species", "Functional Type",
			"Station", "Depth", "Date", "Cell Count",
		}},
	}

	for _, ct := range taxa {
		for i, col := range cols {
			table.Rows = append(table.Rows, []string{
				ct.Key.Phylum,
				ct.Key.Genus,
				ct.Key.Species,
				ct.FunctionalTypeOf().String(),
				col.Station,
				col.Depth.String(),
				col.Date.Format("2006-01-02"),
				formatCount(ct.CountAt(i)),
			})
		}
	}

	return table, nil
}

// BuildMixoplankton is the flat view restricted to mixoplankton, with the
// per-cell volume and the derived biomass added per sample column.
func BuildMixoplankton(taxa []ClassifiedTaxon, cols []SampleColumn) (*Table, error) {

	if len(taxa) == 0 {
		return nil, fmt.Errorf("%s: %w", ViewMixoplankton, ErrEmptyInput)
	}

	table := &Table{
		Name: ViewMixoplankton,
		Header: [][]string{{
			"Phylum", "Genus", "Species", "Size Class", "Evidence",
			"Station", "Depth", "Date", "Cell Count",
			"Cell Volume (um3)", "Biomass (pgC)",
		}},
	}

	for _, ct := range mixoplanktonOnly(taxa) {
		for i, col := range cols {

			volume := Placeholder
			if ct.Traits.CellVolume > 0 {
				volume = formatCount(ct.Traits.CellVolume)
			}

			biomass := Placeholder
			if b, ok := ct.BiomassAt(i); ok {
				biomass = formatCount(b)
			}

			table.Rows = append(table.Rows, []string{
				ct.Key.Phylum,
				ct.Key.Genus,
				ct.Key.Species,
				ct.Traits.SizeClass,
				formatEvidence(ct.Traits.MixotrophyEvidence),
				col.Station,
				col.Depth.String(),
				col.Date.Format("2006-01-02"),
				formatCount(ct.CountAt(i)),
				volume,
				biomass,
			})
		}
	}

	return table, nil
}

// BuildMixoplanktonWithHeader reshapes the mixoplankton rows under a
// stacked station/date header grouped by month: one row per taxon, one
// column per sample.
func BuildMixoplanktonWithHeader(taxa []ClassifiedTaxon, cols []SampleColumn) (*Table, error) {

	if len(taxa) == 0 {
		return nil, fmt.Errorf("%s: %w", ViewMixoplanktonWithHeader, ErrEmptyInput)
	}

	ordered := presentationOrder(cols)

	table := &Table{
		Name:   ViewMixoplanktonWithHeader,
		Header: stackedHeader(ordered),
	}

	for _, ct := range mixoplanktonOnly(taxa) {
		row := []string{ct.Key.Phylum, ct.Key.Genus, ct.Key.Species}
		for _, col := range ordered {
			row = append(row, formatCount(ct.CountAt(positionOf(cols, col))))
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// BuildTotals reports phylum-level cell count totals: the year aggregate
// and every per-station-per-date sample column.
func BuildTotals(agg *Aggregates) (*Table, error) {

	if len(agg.PhylumOrder) == 0 {
		return nil, fmt.Errorf("%s: %w", ViewTotals, ErrEmptyInput)
	}

	ordered := presentationOrder(agg.Columns)

	header := []string{"Phylum", "Year Total"}
	for _, c := range ordered {
		header = append(header, c.Label())
	}

	table := &Table{
		Name:   ViewTotals,
		Header: [][]string{header},
	}

	for _, phylum := range agg.PhylumOrder {
		row := []string{phylum, formatCount(agg.PhylumYear[phylum].CellCount)}
		perSample := agg.PhylumSample[phylum]
		for _, col := range ordered {
			row = append(row, formatCount(perSample[positionOf(agg.Columns, col)].CellCount))
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

func totalLabel(phylum string) string {
	return "TOTAL " + strings.ToUpper(phylum) + "S"
}

// BuildPretty is the presentation view: the month-grouped mixoplankton
// table with phylum-level total count and total biomass rows appended
// after each phylum block, plus a blank spacer row between blocks. Totals
// cover every taxon of the phylum (unclassified counts included); biomass
// sums exclude unclassified taxa and render as a placeholder when nothing
// contributed.
func BuildPretty(taxa []ClassifiedTaxon, agg *Aggregates) (*Table, error) {

	if len(taxa) == 0 {
		return nil, fmt.Errorf("%s: %w", ViewPretty, ErrEmptyInput)
	}

	cols := agg.Columns
	ordered := presentationOrder(cols)
	width := 3 + len(ordered) + 1

	table := &Table{
		Name:   ViewPretty,
		Header: stackedHeader(ordered, "Year Total"),
	}

	mixo := mixoplanktonOnly(taxa)

	// Group mixoplankton rows by phylum, keeping first-seen order.
	var phylumOrder []string
	byPhylum := make(map[string][]ClassifiedTaxon)
	for _, ct := range mixo {
		if _, ok := byPhylum[ct.Key.Phylum]; !ok {
			phylumOrder = append(phylumOrder, ct.Key.Phylum)
		}
		byPhylum[ct.Key.Phylum] = append(byPhylum[ct.Key.Phylum], ct)
	}

	for _, phylum := range phylumOrder {

		for _, ct := range byPhylum[phylum] {
			row := []string{ct.Key.Phylum, ct.Key.Genus, ct.Key.Species}
			var yearSum float64
			for _, col := range ordered {
				v := ct.CountAt(positionOf(cols, col))
				yearSum += v
				row = append(row, formatCount(v))
			}
			row = append(row, formatCount(yearSum))
			table.Rows = append(table.Rows, row)
		}

		perSample := agg.PhylumSample[phylum]
		year := agg.PhylumYear[phylum]

		countRow := []string{totalLabel(phylum), "", ""}
		for _, col := range ordered {
			countRow = append(countRow, formatCount(perSample[positionOf(cols, col)].CellCount))
		}
		countRow = append(countRow, formatCount(year.CellCount))
		table.Rows = append(table.Rows, countRow)

		biomassRow := []string{totalLabel(phylum) + " (pgC)", "", ""}
		for _, col := range ordered {
			rec := perSample[positionOf(cols, col)]
			if rec.HasBiomass {
				biomassRow = append(biomassRow, formatCount(rec.Biomass))
			} else {
				biomassRow = append(biomassRow, Placeholder)
			}
		}
		if year.HasBiomass {
			biomassRow = append(biomassRow, formatCount(year.Biomass))
		} else {
			biomassRow = append(biomassRow, Placeholder)
		}
		table.Rows = append(table.Rows, biomassRow)

		table.Rows = append(table.Rows, make([]string, width))
	}

	return table, nil
}

// BuildViews assembles all five views in their emission order.
func BuildViews(taxa []ClassifiedTaxon, agg *Aggregates) ([]*Table, error) {

	cols := agg.Columns

	allClassified, err := BuildAllClassified(taxa, cols)
	if err != nil {
		return nil, err
	}
	mixo, err := BuildMixoplankton(taxa, cols)
	if err != nil {
		return nil, err
	}
	mixoHeader, err := BuildMixoplanktonWithHeader(taxa, cols)
	if err != nil {
		return nil, err
	}
	totals, err := BuildTotals(agg)
	if err != nil {
		return nil, err
	}
	pretty, err := BuildPretty(taxa, agg)
	if err != nil {
		return nil, err
	}

	return []*Table{allClassified, mixo, mixoHeader, totals, pretty}, nil
}
