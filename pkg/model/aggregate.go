package model

// AggregateRecord is one rollup bucket: summed cell count and summed
// biomass. Cell counts include unclassified taxa; biomass only ever sums
// over classified taxa that carry a biomass constant. HasBiomass is false
// when nothing contributed to the biomass side, so a view can render the
// gap explicitly instead of showing a misleading zero.
type AggregateRecord struct {
	CellCount  float64
	Biomass    float64
	HasBiomass bool
}

func (r *AggregateRecord) add(count float64, biomass float64, hasBiomass bool) {
	r.CellCount += count
	if hasBiomass {
		r.Biomass += biomass
		r.HasBiomass = true
	}
}

// Aggregates holds every rollup the views need, computed in one pass.
// Slices indexed by column are aligned with Columns.
type Aggregates struct {
	Columns     []SampleColumn
	PhylumOrder []string // first-seen order, kept so output blocks match input order

	PhylumYear          map[string]*AggregateRecord            // {phylum} across the whole year
	PhylumSample        map[string][]*AggregateRecord          // {phylum, station+depth+date}
	PhylumStationTotals map[string]map[string]*AggregateRecord // {phylum, station}
	PhylumDateTotals    map[string]map[string]*AggregateRecord // {phylum, ISO date}
	StationDate         map[string]*AggregateRecord            // {station, ISO date}, depths combined
	StationDateOrder    []string
}

func stationDateKey(c SampleColumn) string {
	return c.Station + "|" + c.Date.Format("2006-01-02")
}

// Aggregate computes the rollups over the classified rows. Null counts
// contribute zero; unclassified taxa contribute their counts but never
// their (undefined) biomass.
func Aggregate(taxa []ClassifiedTaxon, cols []SampleColumn) *Aggregates {

	agg := &Aggregates{
		Columns:             cols,
		PhylumYear:          make(map[string]*AggregateRecord),
		PhylumSample:        make(map[string][]*AggregateRecord),
		PhylumStationTotals: make(map[string]map[string]*AggregateRecord),
		PhylumDateTotals:    make(map[string]map[string]*AggregateRecord),
		StationDate:         make(map[string]*AggregateRecord),
	}

	for _, ct := range taxa {
		phylum := ct.Key.Phylum

		if _, ok := agg.PhylumYear[phylum]; !ok {
			agg.PhylumOrder = append(agg.PhylumOrder, phylum)
			agg.PhylumYear[phylum] = &AggregateRecord{}
			perSample := make([]*AggregateRecord, len(cols))
			for i := range perSample {
				perSample[i] = &AggregateRecord{}
			}
			agg.PhylumSample[phylum] = perSample
			agg.PhylumStationTotals[phylum] = make(map[string]*AggregateRecord)
			agg.PhylumDateTotals[phylum] = make(map[string]*AggregateRecord)
		}

		for i, col := range cols {
			count := ct.CountAt(i)
			biomass, hasBiomass := ct.BiomassAt(i)

			agg.PhylumYear[phylum].add(count, biomass, hasBiomass)
			agg.PhylumSample[phylum][i].add(count, biomass, hasBiomass)

			if _, ok := agg.PhylumStationTotals[phylum][col.Station]; !ok {
				agg.PhylumStationTotals[phylum][col.Station] = &AggregateRecord{}
			}
			agg.PhylumStationTotals[phylum][col.Station].add(count, biomass, hasBiomass)

			isoDate := col.Date.Format("2006-01-02")
			if _, ok := agg.PhylumDateTotals[phylum][isoDate]; !ok {
				agg.PhylumDateTotals[phylum][isoDate] = &AggregateRecord{}
			}
			agg.PhylumDateTotals[phylum][isoDate].add(count, biomass, hasBiomass)

			sdKey := stationDateKey(col)
			if _, ok := agg.StationDate[sdKey]; !ok {
				agg.StationDate[sdKey] = &AggregateRecord{}
				agg.StationDateOrder = append(agg.StationDateOrder, sdKey)
			}
			agg.StationDate[sdKey].add(count, biomass, hasBiomass)
		}
	}

	return agg
}
