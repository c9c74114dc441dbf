package domain

import "time"

// ActivityKind names an auditable user action.
type ActivityKind string

const (
	ActivityLogin          ActivityKind = "login"
	ActivityScriptAnalysis ActivityKind = "script_analysis"
	ActivityFootageSearch  ActivityKind = "footage_search"
	ActivityVideoRender    ActivityKind = "video_render"
	ActivityCreativeIntent ActivityKind = "creative_intent"
)

// Activity is a single entry of the append-only activity log.
type Activity struct {
	Kind       ActivityKind
	AccountID  int64 // zero when the action is anonymous
	Details    map[string]string
	OccurredAt time.Time
}
