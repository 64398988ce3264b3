package ai

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
)

// chain asks each enabled explainer in turn and keeps the first usable narrative.
type chain []Explainer

// WithFallback tries primary first and answers with fallback when primary is
// disabled, fails or returns a blank summary.
func WithFallback(primary, fallback Explainer) Explainer {
	switch {
	case primary == nil:
		return fallback
	case fallback == nil:
		return primary
	}
	return chain{primary, fallback}
}

func (c chain) Enabled() bool {
	for _, e := range c {
		if e != nil && e.Enabled() {
			return true
		}
	}
	return false
}

func (c chain) Explain(ctx context.Context, input ExplanationInput) (Narrative, error) {
	last := len(c) - 1
	for i, e := range c {
		if e == nil || !e.Enabled() {
			continue
		}
		narrative, err := e.Explain(ctx, input)
		if i == last {
			return narrative, err
		}
		if err != nil {
			logrus.WithError(err).Debug("explainer failed, trying next")
			continue
		}
		if strings.TrimSpace(narrative.Summary) != "" {
			return narrative, nil
		}
	}
	return Narrative{}, ErrDisabled
}
