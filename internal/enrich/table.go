package enrich

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"greenhalal/backend/internal/scoring"
)

// Entry is the partial override a reference company contributes to a record.
// Nil fields leave the record untouched.
type Entry struct {
	CompanyName           string   `json:"company_name" yaml:"company_name"`
	CarbonEmissionPerUnit *float64 `json:"carbon_emission_per_unit,omitempty" yaml:"carbon_emission_per_unit,omitempty"`
	HalalCertified        *bool    `json:"halal_certified,omitempty" yaml:"halal_certified,omitempty"`
	CertificationID       string   `json:"certification_id,omitempty" yaml:"certification_id,omitempty"`
}

// Table is the read-only reference table keyed by exact company name.
type Table struct {
	entries map[string]Entry
}

// NewTable builds a table from the provided entries. Later entries win on duplicate names.
func NewTable(entries []Entry) *Table {
	m := make(map[string]Entry, len(entries))
	for _, e := range entries {
		if strings.TrimSpace(e.CompanyName) == "" {
			continue
		}
		m[e.CompanyName] = e
	}
	return &Table{entries: m}
}

// DefaultEntries returns the illustrative public-database seed.
func DefaultEntries() []Entry {
	return []Entry{
		{CompanyName: "EcoMeat Ltd", CarbonEmissionPerUnit: float64Ptr(2.5), HalalCertified: boolPtr(true), CertificationID: "H12345"},
		{CompanyName: "PureFoods Co", CarbonEmissionPerUnit: float64Ptr(4.0), HalalCertified: boolPtr(true), CertificationID: "H98765"},
	}
}

// Enrich overrides the emission and certification attributes of a known company.
// Unknown companies are returned unchanged.
func (t *Table) Enrich(rec scoring.Record) scoring.Record {
	entry, ok := t.Lookup(rec.CompanyName)
	if !ok {
		return rec
	}
	if entry.CarbonEmissionPerUnit != nil && scoring.Finite(*entry.CarbonEmissionPerUnit) {
		rec.CarbonEmissionPerUnit = *entry.CarbonEmissionPerUnit
	}
	if entry.HalalCertified != nil {
		rec.HalalCertified = *entry.HalalCertified
	}
	return rec
}

// Lookup returns the reference entry for a company.
func (t *Table) Lookup(company string) (Entry, bool) {
	if t == nil {
		return Entry{}, false
	}
	entry, ok := t.entries[company]
	return entry, ok
}

// Len reports the number of reference companies.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Entries returns a copy of all entries sorted by company name.
func (t *Table) Entries() []Entry {
	if t == nil {
		return nil
	}
	out := make([]Entry, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CompanyName < out[j].CompanyName })
	return out
}

// LoadFile reads reference entries from a YAML (or JSON) list.
func LoadFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read reference file: %w", err)
	}
	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("unmarshal reference file: %w", err)
	}
	for i, e := range entries {
		if strings.TrimSpace(e.CompanyName) == "" {
			return nil, fmt.Errorf("reference entry %d: company_name is required", i)
		}
		if c := e.CarbonEmissionPerUnit; c != nil && !scoring.Finite(*c) {
			return nil, fmt.Errorf("reference entry %q: carbon_emission_per_unit must be a finite number", e.CompanyName)
		}
	}
	return entries, nil
}

func float64Ptr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool          { return &v }
