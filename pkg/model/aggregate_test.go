package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classifiedFixture(t *testing.T) ([]ClassifiedTaxon, []SampleColumn) {
	t.Helper()

	cols := testColumns()
	taxa, err := ReconstructTaxa(dataFixture(), cols)
	require.NoError(t, err)

	classified, _ := ClassifyTaxa(taxa, testReference())
	return classified, cols
}

func TestPhylumYearEqualsSumOfAllCells(t *testing.T) {

	classified, cols := classifiedFixture(t)
	agg := Aggregate(classified, cols)

	require.Equal(t, []string{"Diatom", "Dinoflagellate"}, agg.PhylumOrder)

	// total(p) = sum over taxa of p, columns c of count(t, c)
	for _, phylum := range agg.PhylumOrder {
		var manual float64
		for _, ct := range classified {
			if ct.Key.Phylum != phylum {
				continue
			}
			for i := range cols {
				manual += ct.CountAt(i)
			}
		}
		assert.Equal(t, manual, agg.PhylumYear[phylum].CellCount, phylum)
	}

	assert.Equal(t, 1585.0, agg.PhylumYear["Diatom"].CellCount)
	assert.Equal(t, 100.0, agg.PhylumYear["Dinoflagellate"].CellCount)
}

func TestPerSampleRollups(t *testing.T) {

	classified, cols := classifiedFixture(t)
	agg := Aggregate(classified, cols)

	diatom := agg.PhylumSample["Diatom"]
	require.Len(t, diatom, len(cols))

	// ST1S: costatum 1200 + menzelii 50
	assert.Equal(t, 1250.0, diatom[0].CellCount)
	// ST1B: costatum 300 + menzelii null (counts as 0)
	assert.Equal(t, 300.0, diatom[1].CellCount)
}

func TestStationDateCombinesDepths(t *testing.T) {

	classified, cols := classifiedFixture(t)
	agg := Aggregate(classified, cols)

	require.Len(t, agg.StationDateOrder, 2)

	st1 := agg.StationDate["ST1|2020-01-15"]
	require.NotNil(t, st1)
	// Surface + bottom across every phylum.
	assert.Equal(t, 1580.0, st1.CellCount)
}

func TestUnclassifiedCountsInBiomassOut(t *testing.T) {

	classified, cols := classifiedFixture(t)

	// One unclassified taxon inside the Diatom phylum.
	classified = append(classified, ClassifiedTaxon{
		TaxonRow: TaxonRow{
			Key:    TaxonKey{"Diatom", "Mystery", "Mystery cells"},
			Counts: []*float64{fptr(100), nil, nil, nil},
		},
	})

	agg := Aggregate(classified, cols)

	// Counts include the unclassified taxon.
	assert.Equal(t, 1685.0, agg.PhylumYear["Diatom"].CellCount)

	// Biomass only sums classified taxa: 1585 cells x 80 pgC (genus default).
	assert.True(t, agg.PhylumYear["Diatom"].HasBiomass)
	assert.Equal(t, 1585.0*80, agg.PhylumYear["Diatom"].Biomass)
}

func TestAllUnclassifiedPhylumHasNoBiomass(t *testing.T) {

	cols := testColumns()
	classified := []ClassifiedTaxon{
		{TaxonRow: TaxonRow{
			Key:    TaxonKey{"Cryptophyte", "Teleaulax", "Teleaulax amphioxeia"},
			Counts: []*float64{fptr(5), nil, nil, nil},
		}},
	}

	agg := Aggregate(classified, cols)

	rec := agg.PhylumYear["Cryptophyte"]
	assert.Equal(t, 5.0, rec.CellCount)
	assert.False(t, rec.HasBiomass)
}
