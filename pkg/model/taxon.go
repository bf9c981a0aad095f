package model

import (
	"fmt"
	"strconv"
	"strings"
)

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// Measurement cells may carry thousands separators and stray spaces
// ("1,200 "). Empty after cleanup means no sample was taken.
func parseMeasurement(raw string) (*float64, error) {
	cleaned := strings.NewReplacer(",", "", " ", "").Replace(raw)
	if cleaned == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil, fmt.Errorf("bad measurement %q", raw)
	}
	return &v, nil
}

// ReconstructTaxa walks the data rows (everything after the three header
// rows) and resolves the sparse phylum/genus labels into full taxon keys.
//
// A fully blank row closes the current phylum block. Inside a block the
// first non-blank row names the phylum (it carries no genus and no data);
// after that, a non-blank first column sets the current genus and blank
// ones inherit the previous genus. The species column is read per row and
// is never inherited. Rows with a blank species cell carry no data and are
// skipped.
func ReconstructTaxa(rows [][]string, cols []SampleColumn) ([]TaxonRow, error) {

	var (
		taxa   []TaxonRow
		phylum string
		genus  string
	)

	for i := HeaderRows; i < len(rows); i++ {

		row := rows[i]
		line := i + 1

		if blankRow(row) {
			// Block boundary. Nothing from this block may leak into the next.
			phylum = ""
			genus = ""
			continue
		}

		var label, species string
		if len(row) > 0 {
			label = strings.TrimSpace(row[0])
		}
		if len(row) > 1 {
			species = strings.TrimSpace(row[1])
		}

		// Source sheets sometimes carry their own pre-computed TOTAL rows.
		// Those are derived data, not taxa; skip them.
		if strings.Contains(strings.ToUpper(label), "TOTAL") {
			continue
		}

		if phylum == "" {
			// First non-blank row of a block must declare the phylum.
			if label == "" {
				return nil, &UnresolvedTaxonError{Line: line, Msg: "block starts without a phylum name"}
			}
			if species != "" {
				return nil, &UnresolvedTaxonError{
					Line: line,
					Msg:  fmt.Sprintf("species %q on the phylum declaration row has no genus", species),
				}
			}
			phylum = label
			continue
		}

		if label != "" {
			genus = label
		}

		if species == "" {
			// Genus-only or annotation row, nothing to record.
			continue
		}

		if genus == "" {
			return nil, &UnresolvedTaxonError{
				Line: line,
				Msg:  fmt.Sprintf("species %q has no resolvable genus in phylum %q", species, phylum),
			}
		}

		counts := make([]*float64, len(cols))
		for j, col := range cols {
			var raw string
			if col.Index < len(row) {
				raw = row[col.Index]
			}
			v, err := parseMeasurement(raw)
			if err != nil {
				return nil, fmt.Errorf("line %d col %d (%s): %w", line, col.Index+1, col.Label(), err)
			}
			counts[j] = v
		}

		taxa = append(taxa, TaxonRow{
			Key:    TaxonKey{Phylum: phylum, Genus: genus, Species: species},
			Counts: counts,
			Line:   line,
		})
	}

	return taxa, nil
}
