package service

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/cinemind/studio-api/internal/core/domain"
	"github.com/cinemind/studio-api/internal/core/ports"
	"github.com/cinemind/studio-api/internal/pkg/metrics"
)

type creativeService struct {
	model    ports.IntentModel // nil when no credential is configured
	cache    ports.IntentCache // nil when caching is disabled
	cacheTTL time.Duration
	activity ports.ActivityRecorder
	log      zerolog.Logger
}

// NewCreativeService returns a CreativeService. A nil model means every call
// is answered with the fallback document.
func NewCreativeService(
	model ports.IntentModel,
	cache ports.IntentCache,
	cacheTTL time.Duration,
	activity ports.ActivityRecorder,
	log zerolog.Logger,
) ports.CreativeService {
	return &creativeService{
		model:    model,
		cache:    cache,
		cacheTTL: cacheTTL,
		activity: orNop(activity),
		log:      log,
	}
}

// ExtractIntent decides once per call between model output and the fallback
// document, then records the decision.
func (s *creativeService) ExtractIntent(ctx context.Context, snippet string) domain.CreativeIntent {
	start := time.Now()
	intent := s.resolve(ctx, snippet)
	s.observe(ctx, intent, time.Since(start))
	return intent
}

func (s *creativeService) resolve(ctx context.Context, snippet string) domain.CreativeIntent {
	if s.model == nil {
		return fallback(domain.IntentReasonNoCredential, "", domain.ErrModelUnavailable)
	}
	provider := s.model.Provider()

	if s.cache != nil {
		doc, ok, err := s.cache.Get(ctx, snippet)
		if err != nil {
			s.log.Warn().Err(err).Msg("intent cache read failed")
		} else if ok && isJSONObject(doc) {
			return domain.CreativeIntent{Document: doc, Source: domain.IntentSourceModel, Reason: domain.IntentReasonCache, Provider: provider}
		}
	}

	doc, err := s.model.Extract(ctx, snippet)
	if err != nil {
		return fallback(domain.IntentReasonModelError, provider, err)
	}
	if !isJSONObject(doc) {
		return fallback(domain.IntentReasonModelError, provider, domain.ErrInvalidModelOutput)
	}

	if s.cache != nil && s.cacheTTL > 0 {
		if err := s.cache.Put(ctx, snippet, doc, s.cacheTTL); err != nil {
			s.log.Warn().Err(err).Msg("intent cache write failed")
		}
	}
	return domain.CreativeIntent{Document: doc, Source: domain.IntentSourceModel, Reason: domain.IntentReasonLive, Provider: provider}
}

func (s *creativeService) observe(ctx context.Context, intent domain.CreativeIntent, took time.Duration) {
	metrics.CreativeIntentTotal.WithLabelValues(string(intent.Source), string(intent.Reason)).Inc()
	metrics.CreativeIntentDuration.WithLabelValues(string(intent.Source)).Observe(took.Seconds())

	ev := s.log.Info()
	if intent.Reason == domain.IntentReasonModelError {
		ev = s.log.Warn().Err(intent.Cause)
	}
	ev.Str("source", string(intent.Source)).
		Str("reason", string(intent.Reason)).
		Str("provider", intent.Provider).
		Dur("took", took).
		Msg("creative intent resolved")

	s.activity.Record(domain.Activity{
		Kind:      domain.ActivityCreativeIntent,
		AccountID: domain.AccountIDFrom(ctx),
		Details: map[string]string{
			"source":   string(intent.Source),
			"reason":   string(intent.Reason),
			"provider": intent.Provider,
		},
		OccurredAt: time.Now().UTC(),
	})
}

func fallback(reason domain.IntentReason, provider string, cause error) domain.CreativeIntent {
	return domain.CreativeIntent{
		Document: domain.FallbackIntentDocument(),
		Source:   domain.IntentSourceFallback,
		Reason:   reason,
		Provider: provider,
		Cause:    cause,
	}
}

// isJSONObject reports whether doc is a syntactically valid JSON object.
func isJSONObject(doc []byte) bool {
	trimmed := bytes.TrimSpace(doc)
	return len(trimmed) > 0 && trimmed[0] == '{' && json.Valid(trimmed)
}
