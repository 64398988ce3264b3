package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSustainabilityScore(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Record)
		expected float64
	}{
		{"baseline", func(r *Record) {}, 98},
		{"full transparency", func(r *Record) { r.SupplierTransparencyScore = 1 }, 100},
		{"fossil energy", func(r *Record) { r.EnergySource = EnergyCoal }, 78},
		{"mixed energy", func(r *Record) { r.EnergySource = EnergyMixed }, 78},
		{"renewable share scales", func(r *Record) { r.RenewablePercentage = intPtr(37) }, 85.4},
		{"renewable share absent", func(r *Record) { r.RenewablePercentage = nil }, 78},
		{"carbon at threshold earns nothing", func(r *Record) { r.CarbonEmissionPerUnit = 5 }, 78},
		{"water at threshold earns nothing", func(r *Record) { r.WaterUsagePerUnit = 100 }, 88},
		{"landfill", func(r *Record) { r.WasteManagement = WasteLandfill }, 88},
		{"recycled paper packaging", func(r *Record) { r.PackagingType = PackagingRecycledPaper }, 98},
		{"plastic packaging", func(r *Record) { r.PackagingType = PackagingPlastic }, 88},
		{"packaging absent", func(r *Record) { r.PackagingType = "" }, 88},
		{"nothing sustainable", func(r *Record) {
			r.EnergySource = EnergyGas
			r.RenewablePercentage = intPtr(0)
			r.CarbonEmissionPerUnit = 12
			r.WaterUsagePerUnit = 300
			r.WasteManagement = WasteNone
			r.PackagingType = PackagingGlass
			r.SupplierTransparencyScore = 0
		}, 0},
		{"ceiling at one hundred", func(r *Record) {
			r.RenewablePercentage = intPtr(400)
			r.SupplierTransparencyScore = 1
		}, 100},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := exemplaryRecord()
			tc.mutate(&rec)
			assert.Equal(t, tc.expected, SustainabilityScore(rec))
		})
	}
}

func TestScoresStayInRange(t *testing.T) {
	risks := []float64{0, 0.25, 0.5, 1}
	transparencies := []float64{0, 0.5, 1}
	for _, certified := range []bool{true, false} {
		for _, risk := range risks {
			for _, transparency := range transparencies {
				rec := exemplaryRecord()
				rec.HalalCertified = certified
				rec.CrossContaminationRisk = risk
				rec.SupplierTransparencyScore = transparency
				res := Evaluate(rec)
				for _, score := range []float64{res.HalalScore, res.SustainabilityScore, res.EthicalScore, res.GreenHalalScore} {
					assert.GreaterOrEqual(t, score, 0.0)
					assert.LessOrEqual(t, score, 100.0)
				}
			}
		}
	}
}
