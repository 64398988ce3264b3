package ai

// Narrative is the plain-language commentary attached to an evaluation.
// It never alters the computed scores.
type Narrative struct {
	Summary    string   `json:"summary"`
	Priorities []string `json:"priorities,omitempty"`
	Source     string   `json:"source"`
}
