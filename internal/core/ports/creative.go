package ports

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cinemind/studio-api/internal/core/domain"
)

// IntentModel is an external completion model that extracts creative intent.
type IntentModel interface {
	Provider() string
	// Extract returns the model's JSON document for the snippet.
	Extract(ctx context.Context, snippet string) (json.RawMessage, error)
}

// IntentCache stores model outputs keyed by snippet.
type IntentCache interface {
	Get(ctx context.Context, snippet string) (json.RawMessage, bool, error)
	Put(ctx context.Context, snippet string, doc json.RawMessage, ttl time.Duration) error
}

// CreativeService resolves creative intent. It never fails: any problem is
// masked by the fallback document.
type CreativeService interface {
	ExtractIntent(ctx context.Context, snippet string) domain.CreativeIntent
}
