package api

import (
	"greenhalal/backend/internal/ai"
	"greenhalal/backend/internal/enrich"
	"greenhalal/backend/internal/scoring"
)

// EvaluationResponse is the API representation of one evaluation.
type EvaluationResponse struct {
	Record               scoring.Record `json:"record"`
	Result               scoring.Result `json:"result"`
	Recommendations      []string       `json:"recommendations"`
	Message              string         `json:"message"`
	Reference            *enrich.Entry  `json:"reference,omitempty"`
	Narrative            *ai.Narrative  `json:"narrative,omitempty"`
	CertificateAvailable bool           `json:"certificate_available"`
	ProcessingTimeMs     int64          `json:"processing_time_ms"`
}

// ConfigResponse lists the form options and scoring weights for the dashboard.
type ConfigResponse struct {
	Categories          []scoring.Category           `json:"categories"`
	EnergySources       []scoring.EnergySource       `json:"energy_sources"`
	WastePractices      []scoring.WasteManagement    `json:"waste_practices"`
	PackagingTypes      []scoring.PackagingType      `json:"packaging_types"`
	TransportationModes []scoring.TransportationMode `json:"transportation_modes"`
	WeightsWithEthics   scoring.Weights              `json:"weights_with_ethics"`
	WeightsWithout      scoring.Weights              `json:"weights_without_ethics"`
	ReferenceCompanies  int                          `json:"reference_companies"`
	AINarrative         bool                         `json:"ai_narrative"`
}

// ReferenceResponse lists the reference table.
type ReferenceResponse struct {
	Items []enrich.Entry `json:"items"`
	Total int            `json:"total"`
}
