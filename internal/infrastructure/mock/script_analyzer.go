// Package mock provides the canned studio capabilities: script breakdown,
// footage search and preview rendering. They return fixed data and are meant
// to be swapped for real implementations behind the same ports.
package mock

import (
	"context"

	"github.com/cinemind/studio-api/internal/core/domain"
	"github.com/cinemind/studio-api/internal/core/ports"
)

// AnalyzedTone is the tone stored with every mock analysis.
const AnalyzedTone = "Neo-Noir"

// ScriptAnalyzer returns the same breakdown for every upload.
type ScriptAnalyzer struct{}

// NewScriptAnalyzer creates a ScriptAnalyzer.
func NewScriptAnalyzer() ports.ScriptAnalyzer {
	return ScriptAnalyzer{}
}

// Analyze ignores the upload contents.
func (ScriptAnalyzer) Analyze(ctx context.Context, _ *ports.ScriptUpload) (*domain.ScriptAnalysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &domain.ScriptAnalysis{Tone: AnalyzedTone, Breakdown: Breakdown()}, nil
}

// Breakdown returns a fresh copy of the canned breakdown.
func Breakdown() domain.ScriptBreakdown {
	return domain.ScriptBreakdown{
		Characters: []domain.Character{
			{Name: "Elias", Traits: "Enigmatic, Driven", Importance: "High", Casting: "Suggested: Timothée Chalamet or similar"},
			{Name: "Sarah", Traits: "Determined, Technical", Importance: "High", Casting: "Suggested: Zendaya or similar"},
			{Name: "The Guard", Traits: "Hostile", Importance: "Minor", Casting: "Open Casting"},
		},
		Locations: []domain.Location{
			{Name: "Subway Platform", Atmosphere: "Dark, Neon", Complexity: 8},
			{Name: "Control Room", Atmosphere: "Sterile, Blue", Complexity: 5},
		},
		RiskScore:    35,
		CastingNotes: "High-contrast character profiles detected. Priority on expressive facial movements for Elias.",
	}
}
