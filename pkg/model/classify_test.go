package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testReference() *ReferenceTable {
	ref := NewReferenceTable()
	ref.AddSpecies("Ceratium furca", TraitRecord{
		FunctionalType:     FunctionalMixoplankton,
		SizeClass:          "micro",
		MixotrophyEvidence: true,
		CellVolume:         35000,
		CellBiomass:        2500,
	})
	ref.AddGenusDefault("Skeletonema", TraitRecord{
		FunctionalType: FunctionalOther,
		SizeClass:      "nano",
		CellBiomass:    80,
	})
	return ref
}

func fptr(v float64) *float64 { return &v }

func TestClassifySpeciesMatchWins(t *testing.T) {

	ref := testReference()
	// Genus default that disagrees with the species entry.
	ref.AddGenusDefault("Ceratium", TraitRecord{FunctionalType: FunctionalOther})

	rows := []TaxonRow{
		{Key: TaxonKey{"Dinoflagellate", "Ceratium", "Ceratium furca"}},
	}

	classified, summary := ClassifyTaxa(rows, ref)
	require.Len(t, classified, 1)

	assert.True(t, classified[0].Classified)
	assert.Equal(t, MatchSpecies, classified[0].MatchedBy)
	assert.Equal(t, FunctionalMixoplankton, classified[0].FunctionalTypeOf())
	assert.Equal(t, 1, summary.Classified)
	assert.Equal(t, 0, summary.Misses)
}

func TestClassifyGenusFallback(t *testing.T) {

	rows := []TaxonRow{
		{Key: TaxonKey{"Diatom", "Skeletonema", "Skeletonema menzelii"}},
	}

	classified, _ := ClassifyTaxa(rows, testReference())
	require.Len(t, classified, 1)

	assert.True(t, classified[0].Classified)
	assert.Equal(t, MatchGenus, classified[0].MatchedBy)
	assert.Equal(t, FunctionalOther, classified[0].FunctionalTypeOf())
	assert.Equal(t, 80.0, classified[0].Traits.CellBiomass)
}

func TestClassifyMissIsKeptNotDropped(t *testing.T) {

	rows := []TaxonRow{
		{Key: TaxonKey{"Diatom", "Skeletonema", "Skeletonema menzelii"}},
		{Key: TaxonKey{"Cryptophyte", "Teleaulax", "Teleaulax amphioxeia"}, Counts: []*float64{fptr(7)}},
	}

	classified, summary := ClassifyTaxa(rows, testReference())
	require.Len(t, classified, 2)

	miss := classified[1]
	assert.False(t, miss.Classified)
	assert.Equal(t, FunctionalUnclassified, miss.FunctionalTypeOf())
	assert.Equal(t, 7.0, miss.CountAt(0)) // counts preserved on a miss

	_, ok := miss.BiomassAt(0)
	assert.False(t, ok) // biomass undefined for unclassified taxa

	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 1, summary.Classified)
	assert.Equal(t, 1, summary.Misses)
}
