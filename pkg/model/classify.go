package model

// Reference lookup: exact species match wins, then the genus-level default,
// otherwise the taxon stays unclassified. A miss is not an error; it is
// counted in the summary and the row is kept with its counts.

type ClassifySummary struct {
	Total      int
	Classified int
	Misses     int
}

// Lookup resolves a taxon key against the reference table. The string
// return names the match level (MatchSpecies or MatchGenus).
func (rt *ReferenceTable) Lookup(key TaxonKey) (TraitRecord, string, bool) {
	if tr, ok := rt.bySpecies[key.Species]; ok {
		return tr, MatchSpecies, true
	}
	if tr, ok := rt.byGenus[key.Genus]; ok {
		return tr, MatchGenus, true
	}
	return TraitRecord{}, "", false
}

// ClassifyTaxa enriches every reconstructed row with its reference traits.
// Pure function of (rows, reference table); input rows are not mutated.
func ClassifyTaxa(rows []TaxonRow, ref *ReferenceTable) ([]ClassifiedTaxon, ClassifySummary) {

	classified := make([]ClassifiedTaxon, 0, len(rows))
	summary := ClassifySummary{Total: len(rows)}

	for _, row := range rows {
		ct := ClassifiedTaxon{TaxonRow: row}

		if traits, matchedBy, ok := ref.Lookup(row.Key); ok {
			ct.Traits = traits
			ct.MatchedBy = matchedBy
			ct.Classified = true
			summary.Classified++
		} else {
			// Functional type stays FunctionalUnclassified (zero value).
			summary.Misses++
		}

		classified = append(classified, ct)
	}

	return classified, summary
}

// FunctionalTypeOf is the reported functional type: the reference value for
// a classified taxon, unclassified otherwise.
func (ct ClassifiedTaxon) FunctionalTypeOf() FunctionalType {
	if !ct.Classified {
		return FunctionalUnclassified
	}
	return ct.Traits.FunctionalType
}
