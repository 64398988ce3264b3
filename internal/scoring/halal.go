package scoring

import "github.com/shopspring/decimal"

var (
	scoreFloor   = decimal.Zero
	scoreCeiling = decimal.NewFromInt(100)
)

// HalalScore rates halal integrity on a 0-100 scale.
// Zabiha points are only awarded once the halal certification backs them.
func HalalScore(rec Record) float64 {
	score := decimal.Zero
	if rec.HalalCertified {
		score = score.Add(decimal.NewFromInt(40))
	}
	if rec.ZabihaVerified() {
		score = score.Add(decimal.NewFromInt(20))
	}
	if !rec.UsesNonHalalIngredients {
		score = score.Add(decimal.NewFromInt(20))
	}
	if rec.AnimalWelfareCertified {
		score = score.Add(decimal.NewFromInt(20))
	}
	score = score.Sub(decimal.NewFromFloat(rec.CrossContaminationRisk).Mul(decimal.NewFromInt(20)))
	return finalize(score)
}

// finalize clamps a component to [0,100] and rounds it half away from zero to two places.
func finalize(score decimal.Decimal) float64 {
	score = decimal.Min(decimal.Max(score, scoreFloor), scoreCeiling)
	return score.Round(2).InexactFloat64()
}
