package model

import (
	"fmt"
	"time"
)

// SampleColumn identifies one data column of the input: a station sampled at
// one depth on one date. Index is the absolute column position in the raw
// CSV rows, so measurement cells can be read back from the same row slice.
type SampleColumn struct {
	Station string    `json:"station"`
	Depth   Depth     `json:"depth"`
	Date    time.Time `json:"date"`
	Index   int       `json:"-"`
}

// Key uniquely identifies the column (station+depth+date is unique per file).
func (c SampleColumn) Key() string {
	return fmt.Sprintf("%s|%s|%s", c.Station, c.Depth.Code(), c.Date.Format("2006-01-02"))
}

// Label is the short form used in rendered headers, e.g. "ST1S 01/15".
func (c SampleColumn) Label() string {
	return fmt.Sprintf("%s%s %s", c.Station, c.Depth.Code(), c.Date.Format("01/02"))
}

type TaxonKey struct {
	Phylum  string `json:"phylum"`
	Genus   string `json:"genus"`
	Species string `json:"species"`
}

// TaxonRow is one species-level record after reconstruction. Counts is
// aligned with the SampleColumn slice; a nil entry means "no sample", which
// contributes zero to every sum but is distinct from an explicit 0.
type TaxonRow struct {
	Key    TaxonKey
	Counts []*float64
	Line   int // 1-based line in the source CSV, for error context
}

// CountAt returns the measurement for column i, with nil collapsing to 0.
func (t TaxonRow) CountAt(i int) float64 {
	if i < 0 || i >= len(t.Counts) || t.Counts[i] == nil {
		return 0
	}
	return *t.Counts[i]
}

// TraitRecord holds the per-taxon reference attributes.
type TraitRecord struct {
	FunctionalType     FunctionalType
	SizeClass          string
	MixotrophyEvidence bool
	CellVolume         float64 // µm³ per cell
	CellBiomass        float64 // pgC per cell
}

// Match source for a classified taxon.
const (
	MatchSpecies = "species"
	MatchGenus   = "genus"
)

type ClassifiedTaxon struct {
	TaxonRow
	Traits     TraitRecord
	Classified bool   // false = reference lookup miss, functional type unclassified
	MatchedBy  string // MatchSpecies or MatchGenus, empty on a miss
}

// BiomassAt is count × per-cell biomass. The second return is false when the
// taxon is unclassified or carries no biomass constant; such cells are
// excluded from biomass sums rather than counted as zero.
func (ct ClassifiedTaxon) BiomassAt(i int) (float64, bool) {
	if !ct.Classified || ct.Traits.CellBiomass <= 0 {
		return 0, false
	}
	return ct.CountAt(i) * ct.Traits.CellBiomass, true
}

// ReferenceTable is the immutable species/genus → trait mapping injected
// into the classifier. Built once by pkg/db, read-only afterwards.
type ReferenceTable struct {
	bySpecies map[string]TraitRecord
	byGenus   map[string]TraitRecord
}

func NewReferenceTable() *ReferenceTable {
	return &ReferenceTable{
		bySpecies: make(map[string]TraitRecord),
		byGenus:   make(map[string]TraitRecord),
	}
}

func (rt *ReferenceTable) AddSpecies(name string, tr TraitRecord) {
	rt.bySpecies[name] = tr
}

// AddGenusDefault registers a genus-level fallback used when no exact
// species entry exists.
func (rt *ReferenceTable) AddGenusDefault(name string, tr TraitRecord) {
	rt.byGenus[name] = tr
}

func (rt *ReferenceTable) Size() int {
	return len(rt.bySpecies) + len(rt.byGenus)
}

// Table is a named output view: stacked header rows on top of string cells.
// Views are built once and never mutated afterwards.
type Table struct {
	Name   string
	Header [][]string
	Rows   [][]string
}
