package db

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yumyai/planktable/logger"
	"github.com/yumyai/planktable/pkg/model"
	"go.uber.org/zap"
)

// Flat reference file layout, one header row then one entry per line:
// rank, name, functional_type, size_class, mixotrophy_evidence,
// cell_volume_um3, cell_biomass_pgc
const refCSVColumns = 7

func parseEvidence(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "y", "yes", "true":
		return true
	default:
		return false
	}
}

func parseRefFloat(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseFloat(raw, 64)
}

// LoadReferenceCSV reads the trait table from a flat CSV file. Same result
// shape as RefDB.LoadReference, for setups that ship the reference data as
// a plain file instead of a database.
func LoadReferenceCSV(path string) (*model.ReferenceTable, error) {

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open reference csv: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read reference csv: %w", err)
	}

	if len(records) < 2 {
		return nil, ErrNoReferenceEntries
	}

	ref := model.NewReferenceTable()

	// records[0] is the header row.
	for n, rec := range records[1:] {

		line := n + 2

		if len(rec) < refCSVColumns {
			return nil, &BadReferenceRowError{
				Name: strings.Join(rec, ","),
				Msg:  fmt.Sprintf("line %d has %d columns, want %d", line, len(rec), refCSVColumns),
			}
		}

		name := normalizeRefName(rec[1])
		if name == "" {
			return nil, &BadReferenceRowError{Name: name, Msg: fmt.Sprintf("empty name at line %d", line)}
		}

		volume, err := parseRefFloat(rec[5])
		if err != nil {
			return nil, &BadReferenceRowError{Name: name, Msg: fmt.Sprintf("bad cell volume %q", rec[5])}
		}

		biomass, err := parseRefFloat(rec[6])
		if err != nil {
			return nil, &BadReferenceRowError{Name: name, Msg: fmt.Sprintf("bad cell biomass %q", rec[6])}
		}

		trait := model.TraitRecord{
			FunctionalType:     model.ParseFunctionalType(rec[2]),
			SizeClass:          strings.TrimSpace(rec[3]),
			MixotrophyEvidence: parseEvidence(rec[4]),
			CellVolume:         volume,
			CellBiomass:        biomass,
		}

		switch strings.ToLower(strings.TrimSpace(rec[0])) {
		case RankSpecies:
			ref.AddSpecies(name, trait)
		case RankGenus:
			ref.AddGenusDefault(name, trait)
		default:
			return nil, &BadReferenceRowError{Name: name, Msg: fmt.Sprintf("unknown rank %q", rec[0])}
		}
	}

	if ref.Size() == 0 {
		return nil, ErrNoReferenceEntries
	}

	logger.Debug("Reference table loaded from csv", zap.String("path", path), zap.Int("entries", ref.Size()))

	return ref, nil
}
