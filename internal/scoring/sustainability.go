package scoring

import "github.com/shopspring/decimal"

var (
	renewableFactor    = decimal.NewFromFloat(0.2)
	transparencyFactor = decimal.NewFromInt(10)
)

const (
	lowCarbonThreshold = 5.0
	lowWaterThreshold  = 100.0
)

// SustainabilityScore rates environmental practice on a 0-100 scale.
func SustainabilityScore(rec Record) float64 {
	score := decimal.Zero
	if rec.EnergySource.Renewable() {
		score = score.Add(decimal.NewFromInt(20))
	}
	if rec.RenewablePercentage != nil {
		score = score.Add(decimal.NewFromInt(int64(*rec.RenewablePercentage)).Mul(renewableFactor))
	}
	if rec.CarbonEmissionPerUnit < lowCarbonThreshold {
		score = score.Add(decimal.NewFromInt(20))
	}
	if rec.WaterUsagePerUnit < lowWaterThreshold {
		score = score.Add(decimal.NewFromInt(10))
	}
	if rec.WasteManagement == WasteRecycling {
		score = score.Add(decimal.NewFromInt(10))
	}
	if rec.PackagingType.Sustainable() {
		score = score.Add(decimal.NewFromInt(10))
	}
	score = score.Add(decimal.NewFromFloat(rec.SupplierTransparencyScore).Mul(transparencyFactor))
	return finalize(score)
}

// Renewable reports whether the energy source counts as renewable.
func (e EnergySource) Renewable() bool {
	switch e {
	case EnergySolar, EnergyWind, EnergyHydro:
		return true
	default:
		return false
	}
}

// Sustainable reports whether the packaging is biodegradable or recycled paper.
func (p PackagingType) Sustainable() bool {
	return p == PackagingBiodegradable || p == PackagingRecycledPaper
}
