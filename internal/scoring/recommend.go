package scoring

// Advisory texts, one per rule.
const (
	AdviceHalalCertification = "Obtain halal certification from a recognised certifying body."
	AdviceZabiha             = "Ensure zabiha slaughter compliance is verified through halal certification."
	AdviceContamination      = "Reduce cross-contamination risk by segregating halal production lines."
	AdviceIngredients        = "Replace non-halal ingredients with certified halal alternatives."
	AdviceRenewable          = "Increase the share of renewable energy to at least 50%."
	AdviceEmissions          = "Reduce carbon emissions below 5 kg CO2 per kg of product."
	AdviceWater              = "Reduce water usage below 100 litres per kg of product."
	AdvicePackaging          = "Switch to biodegradable or recycled paper packaging."
	AdviceRecycling          = "Introduce a recycling programme for production waste."
	AdviceFairLabour         = "Obtain fair labour certification for the workforce and suppliers."
	AdviceCSR                = "Publish corporate social responsibility initiatives."
)

const (
	contaminationAdviceThreshold = 0.3
	renewableAdviceThreshold     = 50
)

type rule struct {
	applies func(Record, Result) bool
	advice  string
}

// rules are evaluated independently in this order: halal, sustainability, ethical.
// Rules on absent optional attributes never fire.
var rules = []rule{
	{func(r Record, _ Result) bool { return !r.HalalCertified }, AdviceHalalCertification},
	{func(r Record, _ Result) bool {
		return r.Category == CategoryMeat && r.ZabihaRequired && !r.HalalCertified
	}, AdviceZabiha},
	{func(r Record, _ Result) bool { return r.CrossContaminationRisk > contaminationAdviceThreshold }, AdviceContamination},
	{func(r Record, _ Result) bool { return r.UsesNonHalalIngredients }, AdviceIngredients},
	{func(r Record, _ Result) bool {
		return r.RenewablePercentage != nil && *r.RenewablePercentage < renewableAdviceThreshold
	}, AdviceRenewable},
	{func(r Record, _ Result) bool { return r.CarbonEmissionPerUnit > lowCarbonThreshold }, AdviceEmissions},
	{func(r Record, _ Result) bool { return r.WaterUsagePerUnit > lowWaterThreshold }, AdviceWater},
	{func(r Record, _ Result) bool { return r.PackagingType != "" && !r.PackagingType.Sustainable() }, AdvicePackaging},
	{func(r Record, _ Result) bool { return r.WasteManagement != WasteRecycling }, AdviceRecycling},
	{func(r Record, res Result) bool { return res.EthicsModeled && !r.fairLabour() }, AdviceFairLabour},
	{func(r Record, res Result) bool { return res.EthicsModeled && !r.hasCSR() }, AdviceCSR},
}

// Recommend lists the advisories that apply to a scored record. An empty slice means
// no improvement is needed.
func Recommend(rec Record, res Result) []string {
	out := make([]string, 0, len(rules))
	for _, r := range rules {
		if r.applies(rec, res) {
			out = append(out, r.advice)
		}
	}
	return out
}
