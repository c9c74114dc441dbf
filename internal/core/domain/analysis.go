package domain

import (
	"encoding/json"
	"time"
)

const (
	// DefaultUserID is used when a caller does not say which account it acts for.
	DefaultUserID int64 = 1
	// PlaceholderFileName is stored when an analysis request carries no upload.
	PlaceholderFileName = "Mock Script"
)

// Character is a single role extracted from a screenplay.
type Character struct {
	Name       string `json:"name"`
	Traits     string `json:"traits"`
	Importance string `json:"importance"`
	Casting    string `json:"casting"`
}

// Location is a shooting location referenced by a screenplay.
type Location struct {
	Name       string `json:"name"`
	Atmosphere string `json:"atmosphere"`
	Complexity int    `json:"complexity"`
}

// ScriptBreakdown is the document returned to the client and persisted as
// the analysis payload.
type ScriptBreakdown struct {
	Characters   []Character `json:"characters"`
	Locations    []Location  `json:"locations"`
	RiskScore    int         `json:"riskScore"`
	CastingNotes string      `json:"castingNotes"`
}

// ScriptAnalysis is what an analyzer produces for one upload.
type ScriptAnalysis struct {
	Tone      string
	Breakdown ScriptBreakdown
}

// AnalysisRecord is a persisted script analysis. AnalysisData holds the
// serialized ScriptBreakdown exactly as it was stored.
type AnalysisRecord struct {
	ID           int64           `json:"id"`
	UserID       int64           `json:"user_id"`
	FileName     string          `json:"file_name"`
	Tone         string          `json:"tone"`
	RiskScore    int             `json:"risk_score"`
	AnalysisData json.RawMessage `json:"analysis_data"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Breakdown decodes the stored payload.
func (r *AnalysisRecord) Breakdown() (ScriptBreakdown, error) {
	var b ScriptBreakdown
	err := json.Unmarshal(r.AnalysisData, &b)
	return b, err
}
