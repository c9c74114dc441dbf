package domain

import "encoding/json"

// IntentSource tells where a creative-intent document came from.
type IntentSource string

const (
	IntentSourceModel    IntentSource = "model"
	IntentSourceFallback IntentSource = "fallback"
)

// IntentReason qualifies an IntentSource.
type IntentReason string

const (
	IntentReasonLive         IntentReason = "live"
	IntentReasonCache        IntentReason = "cache"
	IntentReasonNoCredential IntentReason = "no_credential"
	IntentReasonModelError   IntentReason = "model_error"
)

// fallbackIntent is served whenever no model output is available.
const fallbackIntent = `{"mood":"Noir","lighting":"Low-key, High contrast","visualTone":"Cyberpunk Aesthetic","soundscape":"Rhythmic, Industrial"}`

// FallbackIntentDocument returns a fresh copy of the fixed fallback document.
func FallbackIntentDocument() json.RawMessage {
	return json.RawMessage(fallbackIntent)
}

// CreativeIntent is the outcome of one creative-intent extraction. The caller
// only ever sees Document; Source and Reason exist for telemetry.
type CreativeIntent struct {
	Document json.RawMessage
	Source   IntentSource
	Reason   IntentReason
	Provider string
	// Cause is the model error that triggered a fallback, if any.
	Cause error
}

// IsFallback reports whether the fixed document was served.
func (ci *CreativeIntent) IsFallback() bool {
	return ci.Source == IntentSourceFallback
}
