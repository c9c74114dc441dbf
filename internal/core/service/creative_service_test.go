package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/cinemind/studio-api/internal/core/domain"
)

type stubModel struct {
	doc   json.RawMessage
	err   error
	calls int
}

func (m *stubModel) Provider() string { return "stub" }

func (m *stubModel) Extract(context.Context, string) (json.RawMessage, error) {
	m.calls++
	return m.doc, m.err
}

type memoryIntentCache struct {
	docs   map[string]json.RawMessage
	getErr error
}

func (c *memoryIntentCache) Get(_ context.Context, snippet string) (json.RawMessage, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	doc, ok := c.docs[snippet]
	return doc, ok, nil
}

func (c *memoryIntentCache) Put(_ context.Context, snippet string, doc json.RawMessage, _ time.Duration) error {
	c.docs[snippet] = doc
	return nil
}

func TestCreativeService_NoCredential_FallbackForAnySnippet(t *testing.T) {
	svc := NewCreativeService(nil, nil, 0, nil, zerolog.Nop())
	want := string(domain.FallbackIntentDocument())

	for _, snippet := range []string{"", "INT. SUBWAY - NIGHT", "{\"mood\":\"x\"}"} {
		got := svc.ExtractIntent(context.Background(), snippet)
		if string(got.Document) != want {
			t.Fatalf("snippet %q: expected fallback byte-for-byte, got %s", snippet, got.Document)
		}
		if got.Source != domain.IntentSourceFallback || got.Reason != domain.IntentReasonNoCredential {
			t.Fatalf("unexpected decision: %s/%s", got.Source, got.Reason)
		}
	}
}

func TestCreativeService_ModelOutputVerbatim(t *testing.T) {
	doc := json.RawMessage(`{"mood":"Melancholy","subtext":"grief","visualTone":"Muted","lighting":"Soft","soundscape":"Rain","extra":1}`)
	activity := &recordingActivity{}
	svc := NewCreativeService(&stubModel{doc: doc}, nil, 0, activity, zerolog.Nop())

	got := svc.ExtractIntent(context.Background(), "She leaves without a word.")
	if string(got.Document) != string(doc) {
		t.Fatalf("expected model output verbatim, got %s", got.Document)
	}
	if got.Source != domain.IntentSourceModel || got.Reason != domain.IntentReasonLive || got.Provider != "stub" {
		t.Fatalf("unexpected decision: %+v", got)
	}
	if kinds := activity.kinds(); len(kinds) != 1 || kinds[0] != domain.ActivityCreativeIntent {
		t.Fatalf("unexpected activity: %v", kinds)
	}
}

func TestCreativeService_ModelErrorFallsBack(t *testing.T) {
	svc := NewCreativeService(&stubModel{err: errBoom}, nil, 0, nil, zerolog.Nop())

	got := svc.ExtractIntent(context.Background(), "x")
	if !got.IsFallback() || got.Reason != domain.IntentReasonModelError {
		t.Fatalf("expected model_error fallback, got %s/%s", got.Source, got.Reason)
	}
	if !errors.Is(got.Cause, errBoom) {
		t.Fatalf("expected cause preserved, got %v", got.Cause)
	}
}

func TestCreativeService_NonObjectOutputFallsBack(t *testing.T) {
	for _, doc := range []string{`["mood"]`, `not json`, ``, `{"mood":`} {
		svc := NewCreativeService(&stubModel{doc: json.RawMessage(doc)}, nil, 0, nil, zerolog.Nop())
		got := svc.ExtractIntent(context.Background(), "x")
		if !got.IsFallback() || !errors.Is(got.Cause, domain.ErrInvalidModelOutput) {
			t.Fatalf("output %q: expected invalid-output fallback, got %+v", doc, got)
		}
	}
}

func TestCreativeService_CachesModelOutputOnly(t *testing.T) {
	cache := &memoryIntentCache{docs: map[string]json.RawMessage{}}
	model := &stubModel{doc: json.RawMessage(`{"mood":"Tense"}`)}
	svc := NewCreativeService(model, cache, time.Minute, nil, zerolog.Nop())

	first := svc.ExtractIntent(context.Background(), "snippet")
	second := svc.ExtractIntent(context.Background(), "snippet")

	if first.Reason != domain.IntentReasonLive || second.Reason != domain.IntentReasonCache {
		t.Fatalf("expected live then cache, got %s then %s", first.Reason, second.Reason)
	}
	if model.calls != 1 {
		t.Fatalf("expected a single model call, got %d", model.calls)
	}

	model.err = errBoom
	_ = svc.ExtractIntent(context.Background(), "other")
	if _, cached := cache.docs["other"]; cached {
		t.Fatalf("fallback documents must never be cached")
	}
}

func TestCreativeService_CacheErrorStillCallsModel(t *testing.T) {
	cache := &memoryIntentCache{docs: map[string]json.RawMessage{}, getErr: errBoom}
	model := &stubModel{doc: json.RawMessage(`{"mood":"Tense"}`)}
	svc := NewCreativeService(model, cache, time.Minute, nil, zerolog.Nop())

	got := svc.ExtractIntent(context.Background(), "snippet")
	if got.Source != domain.IntentSourceModel || model.calls != 1 {
		t.Fatalf("expected live model call, got %+v (calls=%d)", got, model.calls)
	}
}
