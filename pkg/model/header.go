package model

import (
	"fmt"
	"strings"
	"time"
)

// The first two columns of every row are labels (phylum/genus and species);
// measurements start after them.
const LabelColumns = 2

// Header rows: station+depth codes, sample dates, then the column marker row.
const HeaderRows = 3

// Date layouts accepted in the second header row. Input files use US-style
// month/day; first layout that parses wins.
var dateLayouts = []string{
	"1/2/2006",
	"01/02/2006",
	"2006-01-02",
	"1/2/06",
}

// HeaderResult is the parsed column schema plus anything worth reporting
// about columns that were dropped on the way.
type HeaderResult struct {
	Columns  []SampleColumn
	Warnings []string
}

func parseSampleDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty date cell")
	}
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, raw); err == nil {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", raw)
}

// ParseHeader interprets the three stacked header rows into an ordered
// sequence of SampleColumn. Row 1 carries <Station><S|B> codes, row 2 the
// sample dates. A column whose date does not parse is dropped with a
// warning; a bad depth suffix or disagreeing row widths abort the parse.
func ParseHeader(rows [][]string) (*HeaderResult, error) {

	if len(rows) < HeaderRows {
		return nil, &MalformedHeaderError{Msg: fmt.Sprintf("need %d header rows, got %d", HeaderRows, len(rows))}
	}

	codeRow := rows[0]
	dateRow := rows[1]

	if len(codeRow) != len(dateRow) {
		return nil, &MalformedHeaderError{
			Msg: fmt.Sprintf("station row has %d columns but date row has %d", len(codeRow), len(dateRow)),
		}
	}

	result := &HeaderResult{}
	seen := make(map[string]int) // column key -> 1-based col, for uniqueness

	for i := LabelColumns; i < len(codeRow); i++ {

		code := strings.TrimSpace(codeRow[i])
		rawDate := strings.TrimSpace(dateRow[i])

		// Fully blank column (trailing commas and the like), skip quietly.
		if code == "" && rawDate == "" {
			continue
		}

		if code == "" {
			return nil, &MalformedHeaderError{Row: 1, Col: i + 1, Msg: "date without a station code"}
		}

		if len(code) < 2 {
			return nil, &MalformedHeaderError{Row: 1, Col: i + 1, Msg: fmt.Sprintf("station code %q too short", code)}
		}

		suffix := code[len(code)-1:]
		depth, ok := ParseDepth(suffix)
		if !ok {
			return nil, &MalformedHeaderError{
				Row: 1, Col: i + 1,
				Msg: fmt.Sprintf("depth suffix %q of %q is not S or B", suffix, code),
			}
		}

		date, err := parseSampleDate(rawDate)
		if err != nil {
			// Drop the column instead of aborting the whole file.
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("column %d (%s) dropped: %v", i+1, code, err))
			continue
		}

		col := SampleColumn{
			Station: code[:len(code)-1],
			Depth:   depth,
			Date:    date,
			Index:   i,
		}

		if prev, dup := seen[col.Key()]; dup {
			return nil, &MalformedHeaderError{
				Row: 1, Col: i + 1,
				Msg: fmt.Sprintf("duplicate sample column %s (already at col %d)", col.Label(), prev),
			}
		}
		seen[col.Key()] = i + 1

		result.Columns = append(result.Columns, col)
	}

	if len(result.Columns) == 0 {
		return nil, &MalformedHeaderError{Msg: "no usable sample columns"}
	}

	return result, nil
}
