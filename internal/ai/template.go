package ai

import (
	"context"
	"fmt"
	"strings"

	"greenhalal/backend/internal/scoring"
)

const templateMaxPriorities = 3

// TemplateExplainer produces a deterministic narrative without any outbound call.
type TemplateExplainer struct{}

// Enabled always reports true.
func (TemplateExplainer) Enabled() bool { return true }

// Explain summarises the strongest and weakest components and the top advisories.
func (TemplateExplainer) Explain(_ context.Context, input ExplanationInput) (Narrative, error) {
	res := input.Result
	subject := strings.TrimSpace(input.Record.CompanyName)
	if product := strings.TrimSpace(input.Record.ProductName); product != "" {
		subject = fmt.Sprintf("%s (%s)", subject, product)
	}

	strongest, weakest := extremes(res)
	var b strings.Builder
	fmt.Fprintf(&b, "%s scores %.2f and is rated %s.", subject, res.GreenHalalScore, res.Rating)
	if strongest != weakest {
		fmt.Fprintf(&b, " Its strongest area is %s and its weakest is %s.", strongest, weakest)
	}
	if len(input.Recommendations) == 0 {
		b.WriteString(" No improvements are required.")
	}

	priorities := input.Recommendations
	if len(priorities) > templateMaxPriorities {
		priorities = priorities[:templateMaxPriorities]
	}
	return Narrative{
		Summary:    b.String(),
		Priorities: append([]string(nil), priorities...),
		Source:     "template",
	}, nil
}

func extremes(res scoring.Result) (string, string) {
	type component struct {
		name  string
		score float64
	}
	components := []component{
		{"halal integrity", res.HalalScore},
		{"sustainability", res.SustainabilityScore},
	}
	if res.EthicsModeled {
		components = append(components, component{"ethical practice", res.EthicalScore})
	}
	best, worst := components[0], components[0]
	for _, c := range components[1:] {
		if c.score > best.score {
			best = c
		}
		if c.score < worst.score {
			worst = c
		}
	}
	return best.name, worst.name
}
