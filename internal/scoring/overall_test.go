package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

// exemplaryRecord is a meat product that satisfies every rule.
func exemplaryRecord() Record {
	return Record{
		CompanyName:               "EcoMeat Ltd",
		ProductName:               "Lamb Mince",
		Country:                   "UAE",
		Category:                  CategoryMeat,
		HalalCertified:            true,
		ZabihaRequired:            true,
		UsesNonHalalIngredients:   false,
		CrossContaminationRisk:    0,
		AnimalWelfareCertified:    true,
		EnergySource:              EnergySolar,
		RenewablePercentage:       intPtr(100),
		CarbonEmissionPerUnit:     2.5,
		WaterUsagePerUnit:         50,
		WasteManagement:           WasteRecycling,
		PackagingType:             PackagingBiodegradable,
		SupplierTransparencyScore: 0.8,
		FairLabourCertified:       boolPtr(true),
		CSRInitiatives:            "community program",
	}
}

func TestRate(t *testing.T) {
	tests := []struct {
		name     string
		score    float64
		expected Rating
	}{
		{"excellent just above threshold", 80.01, RatingExcellent},
		{"exactly eighty is good", 80.00, RatingGood},
		{"good just above threshold", 60.01, RatingGood},
		{"exactly sixty needs improvement", 60.00, RatingNeedsImprovement},
		{"zero", 0, RatingNeedsImprovement},
		{"perfect", 100, RatingExcellent},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Rate(tc.score))
		})
	}
}

func TestCombine(t *testing.T) {
	tests := []struct {
		name     string
		halal    float64
		sust     float64
		ethical  float64
		weights  Weights
		expected float64
	}{
		{"with ethics", 100, 100, 30, WeightsWithEthics, 93},
		{"without ethics", 80, 68, 0, WeightsWithoutEthics, 74},
		{"half rounds away from zero", 80.01, 80, 0, WeightsWithoutEthics, 80.01},
		{"fractional weights", 100, 98, 30, WeightsWithEthics, 92.2},
		{"all zero", 0, 0, 0, WeightsWithEthics, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Combine(tc.halal, tc.sust, tc.ethical, tc.weights))
		})
	}
}

func TestEvaluateExemplaryRecord(t *testing.T) {
	rec := exemplaryRecord()
	rec.SupplierTransparencyScore = 1

	res := Evaluate(rec)
	assert.Equal(t, 100.0, res.HalalScore)
	assert.Equal(t, 100.0, res.SustainabilityScore)
	assert.Equal(t, 30.0, res.EthicalScore)
	assert.Equal(t, 93.0, res.GreenHalalScore)
	assert.Equal(t, RatingExcellent, res.Rating)
	assert.True(t, res.EthicsModeled)
	assert.Equal(t, WeightsWithEthics, res.Weights)
	assert.Empty(t, Recommend(rec, res))
}

func TestEvaluatePartialTransparency(t *testing.T) {
	rec := exemplaryRecord()

	res := Evaluate(rec)
	assert.Equal(t, 100.0, res.HalalScore)
	assert.Equal(t, 98.0, res.SustainabilityScore)
	assert.Equal(t, 92.2, res.GreenHalalScore)
	assert.Equal(t, RatingExcellent, res.Rating)
}

func TestEvaluateUncertifiedMeat(t *testing.T) {
	rec := exemplaryRecord()
	rec.HalalCertified = false
	rec.UsesNonHalalIngredients = true

	res := Evaluate(rec)
	assert.Equal(t, 20.0, res.HalalScore)

	advice := Recommend(rec, res)
	require.Equal(t, []string{AdviceHalalCertification, AdviceZabiha, AdviceIngredients}, advice)
}

func TestEvaluateWithoutEthics(t *testing.T) {
	rec := Record{
		CompanyName:               "Legacy Foods",
		Country:                   "UAE",
		HalalCertified:            true,
		AnimalWelfareCertified:    true,
		EnergySource:              EnergySolar,
		CarbonEmissionPerUnit:     2.5,
		WaterUsagePerUnit:         50,
		WasteManagement:           WasteRecycling,
		SupplierTransparencyScore: 0.8,
	}

	res := Evaluate(rec)
	assert.False(t, res.EthicsModeled)
	assert.Equal(t, WeightsWithoutEthics, res.Weights)
	assert.Equal(t, 80.0, res.HalalScore)
	assert.Equal(t, 68.0, res.SustainabilityScore)
	assert.Zero(t, res.EthicalScore)
	assert.Equal(t, 74.0, res.GreenHalalScore)
	assert.Equal(t, RatingGood, res.Rating)
}

func TestEvaluateIsDeterministic(t *testing.T) {
	rec := exemplaryRecord()
	rec.CrossContaminationRisk = 0.37
	rec.SupplierTransparencyScore = 0.33
	assert.Equal(t, Evaluate(rec), Evaluate(rec))
}

func TestRatingMessage(t *testing.T) {
	assert.Contains(t, RatingExcellent.Message(), "strong halal integrity")
	assert.Contains(t, RatingGood.Message(), "Good compliance level")
	assert.Contains(t, RatingNeedsImprovement.Message(), "Needs improvement")
}
