package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yumyai/planktable/logger"
	"github.com/yumyai/planktable/pkg/model"
	"go.uber.org/zap"
)

// Defining possible error
var ErrNoReferenceEntries = errors.New("reference table has no entries")

type BadReferenceRowError struct {
	Name string
	Msg  string
}

func (e *BadReferenceRowError) Error() string {
	return fmt.Sprintf("bad reference row %q: %s", e.Name, e.Msg)
}

// Entry ranks accepted in the reference source. A species row is an exact
// match target; a genus row is the fallback default for its whole genus.
const (
	RankSpecies = "species"
	RankGenus   = "genus"
)

// RefDB serves the mixoplankton trait table out of a SQLite database with a
// single reference_taxa table.
type RefDB struct {
	DB *sql.DB
}

func NewRefDB(sqldb *sql.DB) *RefDB {
	// Check for db schema version here later
	return &RefDB{DB: sqldb}
}

// Reference names sometimes end in a bare "sp"; normalize to "sp." so
// lookups against input species spellings agree.
func normalizeRefName(name string) string {
	name = strings.TrimSpace(name)
	if strings.HasSuffix(name, " sp") {
		name = name + "."
	}
	return name
}

// LoadReference reads every row of reference_taxa into an immutable
// in-memory ReferenceTable.
func (rdb *RefDB) LoadReference() (*model.ReferenceTable, error) {

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	qstring := `SELECT rank, name, functional_type, size_class,
		mixotrophy_evidence, cell_volume_um3, cell_biomass_pgc
		FROM reference_taxa;`

	stm, err := rdb.DB.PrepareContext(ctx, qstring)
	if err != nil {
		return nil, fmt.Errorf("prepare reference query: %w", err)
	}
	defer stm.Close()

	rows, err := stm.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("reference query execution failed: %w", err)
	}
	defer rows.Close()

	ref := model.NewReferenceTable()

	for rows.Next() {

		var (
			rank, name, ftype, sizeClass string
			evidence                     bool
			volume, biomass              float64
		)

		if err := rows.Scan(&rank, &name, &ftype, &sizeClass, &evidence, &volume, &biomass); err != nil {
			return nil, fmt.Errorf("failed to scan reference row: %w", err)
		}

		name = normalizeRefName(name)
		if name == "" {
			return nil, &BadReferenceRowError{Name: name, Msg: "empty name"}
		}

		trait := model.TraitRecord{
			FunctionalType:     model.ParseFunctionalType(ftype),
			SizeClass:          sizeClass,
			MixotrophyEvidence: evidence,
			CellVolume:         volume,
			CellBiomass:        biomass,
		}

		switch strings.ToLower(strings.TrimSpace(rank)) {
		case RankSpecies:
			ref.AddSpecies(name, trait)
		case RankGenus:
			ref.AddGenusDefault(name, trait)
		default:
			return nil, &BadReferenceRowError{Name: name, Msg: fmt.Sprintf("unknown rank %q", rank)}
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reference rows error: %w", err)
	}

	if ref.Size() == 0 {
		return nil, ErrNoReferenceEntries
	}

	logger.Debug("Reference table loaded from sqlite", zap.Int("entries", ref.Size()))

	return ref, nil
}
