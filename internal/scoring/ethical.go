package scoring

import "github.com/shopspring/decimal"

// EthicalScore rates labour and CSR practice. Records without ethical attributes score 0.
func EthicalScore(rec Record) float64 {
	if !rec.EthicsModeled() {
		return 0
	}
	score := decimal.Zero
	if rec.fairLabour() {
		score = score.Add(decimal.NewFromInt(20))
	}
	if rec.hasCSR() {
		score = score.Add(decimal.NewFromInt(10))
	}
	return finalize(score)
}
