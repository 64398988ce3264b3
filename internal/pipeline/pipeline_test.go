package pipeline

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greenhalal/backend/internal/enrich"
	"greenhalal/backend/internal/scoring"
)

func intPtr(v int) *int             { return &v }
func float64Ptr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool          { return &v }

func record(company string) scoring.Record {
	return scoring.Record{
		CompanyName:               company,
		Category:                  scoring.CategoryMeat,
		HalalCertified:            true,
		ZabihaRequired:            true,
		AnimalWelfareCertified:    true,
		EnergySource:              scoring.EnergySolar,
		RenewablePercentage:       intPtr(100),
		CarbonEmissionPerUnit:     2.5,
		WaterUsagePerUnit:         50,
		WasteManagement:           scoring.WasteRecycling,
		PackagingType:             scoring.PackagingBiodegradable,
		SupplierTransparencyScore: 1,
		FairLabourCertified:       boolPtr(true),
		CSRInitiatives:            "community program",
	}
}

func TestRunUnknownCompany(t *testing.T) {
	got, err := Run(enrich.NewTable(enrich.DefaultEntries()), record("Crescent Farms"))
	require.NoError(t, err)
	assert.False(t, got.Enriched())
	assert.Equal(t, 93.0, got.Result.GreenHalalScore)
	assert.Equal(t, scoring.RatingExcellent, got.Result.Rating)
	assert.NotNil(t, got.Recommendations)
	assert.Empty(t, got.Recommendations)
}

func TestRunEnrichesKnownCompany(t *testing.T) {
	rec := record("EcoMeat Ltd")
	rec.HalalCertified = false
	rec.CarbonEmissionPerUnit = 17

	got, err := Run(enrich.NewTable(enrich.DefaultEntries()), rec)
	require.NoError(t, err)
	require.True(t, got.Enriched())
	assert.Equal(t, "H12345", got.Reference.CertificationID)
	assert.True(t, got.Record.HalalCertified)
	assert.Equal(t, 2.5, got.Record.CarbonEmissionPerUnit)
	assert.Equal(t, 100.0, got.Result.HalalScore)
}

func TestRunClampsReferenceValues(t *testing.T) {
	table := enrich.NewTable([]enrich.Entry{{CompanyName: "Heavy Co", CarbonEmissionPerUnit: float64Ptr(45)}})
	rec := record("Heavy Co")
	rec.CrossContaminationRisk = 3

	got, err := Run(table, rec)
	require.NoError(t, err)
	assert.Equal(t, 20.0, got.Record.CarbonEmissionPerUnit)
	assert.Equal(t, 1.0, got.Record.CrossContaminationRisk)
	assert.Contains(t, got.Recommendations, scoring.AdviceEmissions)
}

func TestRunRejectsNonFiniteInput(t *testing.T) {
	rec := record("Crescent Farms")
	rec.CrossContaminationRisk = math.NaN()

	require.NotPanics(t, func() {
		_, err := Run(enrich.NewTable(nil), rec)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cross_contamination_risk")
	})
}

func TestRunIgnoresNonFiniteReferenceCarbon(t *testing.T) {
	table := enrich.NewTable([]enrich.Entry{{CompanyName: "Broken Co", CarbonEmissionPerUnit: float64Ptr(math.NaN())}})

	require.NotPanics(t, func() {
		got, err := Run(table, record("Broken Co"))
		require.NoError(t, err)
		assert.Equal(t, 2.5, got.Record.CarbonEmissionPerUnit)
	})
}
