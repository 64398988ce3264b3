package scoring

import "github.com/shopspring/decimal"

// Rating is the three-tier label derived from the combined score.
type Rating string

const (
	RatingExcellent        Rating = "Excellent"
	RatingGood             Rating = "Good"
	RatingNeedsImprovement Rating = "Needs Improvement"
)

const (
	excellentThreshold = 80.0
	goodThreshold      = 60.0
)

// Weights is the fixed linear combination applied to the component scores.
type Weights struct {
	Halal          float64 `json:"halal"`
	Sustainability float64 `json:"sustainability"`
	Ethical        float64 `json:"ethical"`
}

var (
	// WeightsWithEthics applies when the record carries ethical attributes.
	WeightsWithEthics = Weights{Halal: 0.5, Sustainability: 0.4, Ethical: 0.1}
	// WeightsWithoutEthics applies to records with no ethical attributes.
	WeightsWithoutEthics = Weights{Halal: 0.5, Sustainability: 0.5}
)

// Result is the immutable outcome of one evaluation.
type Result struct {
	HalalScore          float64 `json:"halal_score"`
	SustainabilityScore float64 `json:"sustainability_score"`
	EthicalScore        float64 `json:"ethical_score"`
	GreenHalalScore     float64 `json:"greenhalal_score"`
	Rating              Rating  `json:"rating"`
	EthicsModeled       bool    `json:"ethics_modeled"`
	Weights             Weights `json:"weights"`
}

// Evaluate scores a record in a single pass.
func Evaluate(rec Record) Result {
	weights := WeightsWithoutEthics
	if rec.EthicsModeled() {
		weights = WeightsWithEthics
	}
	res := Result{
		HalalScore:          HalalScore(rec),
		SustainabilityScore: SustainabilityScore(rec),
		EthicalScore:        EthicalScore(rec),
		EthicsModeled:       rec.EthicsModeled(),
		Weights:             weights,
	}
	res.GreenHalalScore = Combine(res.HalalScore, res.SustainabilityScore, res.EthicalScore, weights)
	res.Rating = Rate(res.GreenHalalScore)
	return res
}

// Combine computes the weighted score rounded half away from zero to two places.
func Combine(halal, sustainability, ethical float64, w Weights) float64 {
	total := decimal.NewFromFloat(halal).Mul(decimal.NewFromFloat(w.Halal)).
		Add(decimal.NewFromFloat(sustainability).Mul(decimal.NewFromFloat(w.Sustainability))).
		Add(decimal.NewFromFloat(ethical).Mul(decimal.NewFromFloat(w.Ethical)))
	return total.Round(2).InexactFloat64()
}

// Rate maps a combined score to its rating. Both thresholds are strict.
func Rate(score float64) Rating {
	switch {
	case score > excellentThreshold:
		return RatingExcellent
	case score > goodThreshold:
		return RatingGood
	default:
		return RatingNeedsImprovement
	}
}

// Message returns the dashboard banner shown for a rating.
func (r Rating) Message() string {
	switch r {
	case RatingExcellent:
		return "This company demonstrates strong halal integrity and sustainable practices."
	case RatingGood:
		return "Good compliance level. Some areas can be improved for full certification."
	default:
		return "Needs improvement. Review halal sourcing or sustainability metrics."
	}
}
