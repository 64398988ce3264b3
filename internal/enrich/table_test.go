package enrich

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greenhalal/backend/internal/scoring"
)

func TestEnrichKnownCompanyOverridesInput(t *testing.T) {
	table := NewTable(DefaultEntries())
	rec := scoring.Record{
		CompanyName:           "EcoMeat Ltd",
		HalalCertified:        false,
		CarbonEmissionPerUnit: 17,
		Country:               "UAE",
	}

	got := table.Enrich(rec)
	assert.Equal(t, 2.5, got.CarbonEmissionPerUnit)
	assert.True(t, got.HalalCertified)
	assert.Equal(t, "UAE", got.Country)

	assert.Equal(t, 17.0, rec.CarbonEmissionPerUnit, "input record must not be mutated")
	assert.False(t, rec.HalalCertified)
}

func TestEnrichUnknownCompanyIsNoop(t *testing.T) {
	table := NewTable(DefaultEntries())
	rec := scoring.Record{CompanyName: "ecomeat ltd", CarbonEmissionPerUnit: 9}
	assert.Equal(t, rec, table.Enrich(rec))

	var nilTable *Table
	assert.Equal(t, rec, nilTable.Enrich(rec))
}

func TestEnrichPartialEntry(t *testing.T) {
	table := NewTable([]Entry{{CompanyName: "Halal Only", HalalCertified: boolPtr(true)}})
	rec := scoring.Record{CompanyName: "Halal Only", CarbonEmissionPerUnit: 11}

	got := table.Enrich(rec)
	assert.True(t, got.HalalCertified)
	assert.Equal(t, 11.0, got.CarbonEmissionPerUnit)
}

func TestTableEntriesSorted(t *testing.T) {
	table := NewTable(append(DefaultEntries(), Entry{CompanyName: "Alpha Dairy"}, Entry{CompanyName: " "}))
	entries := table.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "Alpha Dairy", entries[0].CompanyName)
	assert.Equal(t, "EcoMeat Ltd", entries[1].CompanyName)
	assert.Equal(t, 3, table.Len())

	entry, ok := table.Lookup("PureFoods Co")
	require.True(t, ok)
	assert.Equal(t, "H98765", entry.CertificationID)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reference.yaml")
	content := `
- company_name: Desert Dates
  carbon_emission_per_unit: 1.2
  halal_certified: true
  certification_id: H55555
- company_name: Coastal Fish
  halal_certified: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	entries, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 1.2, *entries[0].CarbonEmissionPerUnit)
	assert.Nil(t, entries[1].CarbonEmissionPerUnit)
	assert.False(t, *entries[1].HalalCertified)
}

func TestLoadFileRejectsMissingName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reference.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- halal_certified: true\n"), 0o600))

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "company_name")
}

func TestLoadFileRejectsNonFiniteCarbon(t *testing.T) {
	for _, value := range []string{".nan", ".inf", "-.inf"} {
		t.Run(value, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "reference.yaml")
			content := "- company_name: Broken Co\n  carbon_emission_per_unit: " + value + "\n"
			require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

			_, err := LoadFile(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "carbon_emission_per_unit")
		})
	}
}

func TestEnrichSkipsNonFiniteCarbon(t *testing.T) {
	table := NewTable([]Entry{{CompanyName: "Broken Co", CarbonEmissionPerUnit: float64Ptr(math.NaN()), HalalCertified: boolPtr(true)}})
	got := table.Enrich(scoring.Record{CompanyName: "Broken Co", CarbonEmissionPerUnit: 6})
	assert.Equal(t, 6.0, got.CarbonEmissionPerUnit)
	assert.True(t, got.HalalCertified)
}
