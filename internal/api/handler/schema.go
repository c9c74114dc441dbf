package handler

import (
	"encoding/json"

	"github.com/cinemind/studio-api/internal/core/domain"
)

type loginRequest struct {
	Email    string `json:"email"    validate:"required,max=255"`
	Password string `json:"password" validate:"required,max=255"`
}

// userView is the public part of an account.
type userView struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type loginResponse struct {
	Success bool     `json:"success"`
	User    userView `json:"user"`
	Token   string   `json:"token"`
}

type analyzeResponse struct {
	Success bool `json:"success"`
	domain.ScriptBreakdown
	Message string `json:"message"`
}

type historyResponse struct {
	Success bool                    `json:"success"`
	History []domain.AnalysisRecord `json:"history"`
}

type statsResponse struct {
	Success bool                   `json:"success"`
	Stats   []domain.DashboardStat `json:"stats"`
}

type footageSearchRequest struct {
	Query string `json:"query" validate:"max=500"`
}

type footageSearchResponse struct {
	Success bool                 `json:"success"`
	Results []domain.FootageClip `json:"results"`
}

type videoGenerateRequest struct {
	SceneID flexString `json:"sceneId"`
	Prompt  string     `json:"prompt" validate:"max=4000"`
}

type videoGenerateResponse struct {
	Success  bool                  `json:"success"`
	VideoURL string                `json:"videoUrl"`
	Metadata domain.RenderMetadata `json:"metadata"`
}

type creativeIntentRequest struct {
	Snippet string `json:"snippet" validate:"max=20000"`
}

// creativeIntentDoc documents the creative-intent response for swagger.
type creativeIntentDoc struct {
	Mood       string `json:"mood"`
	Subtext    string `json:"subtext"`
	VisualTone string `json:"visualTone"`
	Lighting   string `json:"lighting"`
	Soundscape string `json:"soundscape"`
}

// errorResponse mirrors the envelope rendered by the central error handler.
type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// flexString accepts either a JSON string or a JSON number.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}
