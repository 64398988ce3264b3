package api

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"greenhalal/backend/internal/ai"
	"greenhalal/backend/internal/metrics"
	"greenhalal/backend/internal/pipeline"
	"greenhalal/backend/internal/scoring"
	"greenhalal/backend/internal/util"
)

const (
	channelHTTP        = "http"
	channelStream      = "stream"
	channelCertificate = "certificate"
)

// evaluation is one pipeline pass plus the time it took.
type evaluation struct {
	pipeline.Evaluation
	elapsedMs int64
}

// evaluate runs the pipeline for a record and records its metrics.
func (s *Server) evaluate(raw scoring.Record, channel string) (evaluation, error) {
	timer := util.StartTimer()

	out, err := pipeline.Run(s.table, raw)
	if err != nil {
		return evaluation{}, err
	}
	if out.Enriched() {
		metrics.EnrichmentHits.Inc()
	}

	elapsed := timer.Elapsed()
	res := out.Result
	metrics.EvaluationsTotal.WithLabelValues(string(res.Rating), channel).Inc()
	metrics.GreenHalalScore.Observe(res.GreenHalalScore)
	metrics.EvaluationDuration.WithLabelValues(channel).Observe(elapsed.Seconds())

	logrus.WithFields(logrus.Fields{
		"company":  out.Record.CompanyName,
		"channel":  channel,
		"enriched": out.Enriched(),
		"score":    res.GreenHalalScore,
		"rating":   res.Rating,
		"advice":   len(out.Recommendations),
	}).Debug("evaluated record")

	return evaluation{Evaluation: out, elapsedMs: elapsed.Milliseconds()}, nil
}

func (e evaluation) response() EvaluationResponse {
	return EvaluationResponse{
		Record:               e.Record,
		Result:               e.Result,
		Recommendations:      e.Recommendations,
		Message:              e.Result.Rating.Message(),
		Reference:            e.Reference,
		CertificateAvailable: e.Result.Rating == scoring.RatingExcellent,
		ProcessingTimeMs:     e.elapsedMs,
	}
}

func (s *Server) explain(r *http.Request, e evaluation) (ai.Narrative, error) {
	ctx, cancel := context.WithTimeout(r.Context(), s.explainTimeout)
	defer cancel()

	input := ai.ExplanationInput{
		Record:          e.Record,
		Result:          e.Result,
		Recommendations: e.Recommendations,
	}
	if e.Reference != nil {
		input.CertificationID = e.Reference.CertificationID
	}
	return s.explainer.Explain(ctx, input)
}
