package model

import (
	"errors"
	"fmt"
)

// Raised by every view builder when no classified rows survived parsing.
var ErrEmptyInput = errors.New("no classified rows")

// MalformedHeaderError reports an unusable or inconsistent header section.
// Row/Col are 1-based positions in the raw CSV; zero means the problem is
// with the header as a whole.
type MalformedHeaderError struct {
	Row int
	Col int
	Msg string
}

func (e *MalformedHeaderError) Error() string {
	if e.Row == 0 && e.Col == 0 {
		return fmt.Sprintf("malformed header: %s", e.Msg)
	}
	return fmt.Sprintf("malformed header at row %d col %d: %s", e.Row, e.Col, e.Msg)
}

// UnresolvedTaxonError reports a data row that cannot be assigned a full
// (phylum, genus, species) key.
type UnresolvedTaxonError struct {
	Line int // 1-based line in the source CSV
	Msg  string
}

func (e *UnresolvedTaxonError) Error() string {
	return fmt.Sprintf("unresolved taxon at line %d: %s", e.Line, e.Msg)
}
