// Package pipeline runs one record through enrichment, clamping, scoring and
// recommendation.
package pipeline

import (
	"greenhalal/backend/internal/enrich"
	"greenhalal/backend/internal/scoring"
)

// Evaluation is the outcome of one pass through the pipeline.
type Evaluation struct {
	Record          scoring.Record `json:"record"`
	Result          scoring.Result `json:"result"`
	Recommendations []string       `json:"recommendations"`
	Reference       *enrich.Entry  `json:"reference,omitempty"`
}

// Enriched reports whether a reference entry overrode the record.
func (e Evaluation) Enriched() bool {
	return e.Reference != nil
}

// Run validates raw, applies the reference entry for its company, clamps every
// number into range and scores the result. Clamping follows enrichment so
// reference values obey the same ranges as submitted ones.
func Run(table *enrich.Table, raw scoring.Record) (Evaluation, error) {
	if err := raw.Validate(); err != nil {
		return Evaluation{}, err
	}

	rec := raw
	var reference *enrich.Entry
	if entry, ok := table.Lookup(rec.CompanyName); ok {
		reference = &entry
		rec = table.Enrich(rec)
	}
	rec = rec.Clamp()

	res := scoring.Evaluate(rec)
	return Evaluation{
		Record:          rec,
		Result:          res,
		Recommendations: scoring.Recommend(rec, res),
		Reference:       reference,
	}, nil
}
