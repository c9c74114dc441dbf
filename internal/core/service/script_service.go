package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/cinemind/studio-api/internal/core/domain"
	"github.com/cinemind/studio-api/internal/core/ports"
	"github.com/cinemind/studio-api/internal/pkg/metrics"
)

// ScriptDeps groups the collaborators of ScriptService. Uploads and
// Idempotency are optional.
type ScriptDeps struct {
	Analyzer    ports.ScriptAnalyzer
	Records     ports.AnalysisRepository
	Uploads     ports.UploadStore
	Idempotency ports.IdempotencyStore
	Activity    ports.ActivityRecorder
}

type scriptService struct {
	deps  ScriptDeps
	delay time.Duration
	log   zerolog.Logger
}

// NewScriptService returns a ScriptService. Successful analyses are answered
// after delay.
func NewScriptService(deps ScriptDeps, delay time.Duration, log zerolog.Logger) ports.ScriptService {
	deps.Activity = orNop(deps.Activity)
	return &scriptService{deps: deps, delay: delay, log: log}
}

// Analyze runs the analyzer, persists the record and answers after the
// configured delay. A repeated idempotency key returns the original record.
func (s *scriptService) Analyze(ctx context.Context, in ports.AnalyzeScriptInput) (result *ports.AnalyzeScriptResult, err error) {
	if in.UserID <= 0 {
		return nil, domain.ErrInvalidUserID
	}

	// 1. Idempotency: replay or claim the key.
	reserved := false
	if in.IdempotencyKey != "" && s.deps.Idempotency != nil {
		recordID, ok, rerr := s.deps.Idempotency.Reserve(ctx, in.IdempotencyKey)
		switch {
		case errors.Is(rerr, domain.ErrRequestInProgress):
			return nil, rerr
		case rerr != nil:
			s.log.Warn().Err(rerr).Str("idempotency_key", in.IdempotencyKey).Msg("idempotency check failed, analyzing anyway")
		case !ok:
			return s.replay(ctx, in.IdempotencyKey, recordID)
		default:
			reserved = true
		}
	}
	defer func() {
		if reserved && err != nil {
			if relErr := s.deps.Idempotency.Release(context.WithoutCancel(ctx), in.IdempotencyKey); relErr != nil {
				s.log.Warn().Err(relErr).Str("idempotency_key", in.IdempotencyKey).Msg("failed to release idempotency key")
			}
		}
	}()

	// 2. Analyze.
	analysis, err := s.deps.Analyzer.Analyze(ctx, in.Upload)
	if err != nil {
		return nil, fmt.Errorf("analyze script: %w", err)
	}

	// 3. Keep the upload.
	fileName := domain.PlaceholderFileName
	if in.Upload != nil {
		if in.Upload.FileName != "" {
			fileName = in.Upload.FileName
		}
		if s.deps.Uploads != nil {
			key, serr := s.deps.Uploads.Save(ctx, *in.Upload)
			if serr != nil {
				return nil, fmt.Errorf("analyze script: store upload: %w", serr)
			}
			s.log.Debug().Str("file_name", fileName).Str("key", key).Msg("upload stored")
		}
	}

	// 4. Persist.
	payload, err := json.Marshal(analysis.Breakdown)
	if err != nil {
		return nil, fmt.Errorf("analyze script: encode breakdown: %w", err)
	}
	record, err := s.deps.Records.Create(ctx, &domain.AnalysisRecord{
		UserID:       in.UserID,
		FileName:     fileName,
		Tone:         analysis.Tone,
		RiskScore:    analysis.Breakdown.RiskScore,
		AnalysisData: payload,
	})
	if err != nil {
		s.log.Error().Err(err).Int64("user_id", in.UserID).Msg("failed to save analysis")
		return nil, fmt.Errorf("analyze script: save record: %w", err)
	}

	// The record exists now: the key must stay bound even if the caller
	// goes away during the delay.
	if reserved {
		reserved = false
		if cerr := s.deps.Idempotency.Complete(context.WithoutCancel(ctx), in.IdempotencyKey, record.ID); cerr != nil {
			s.log.Warn().Err(cerr).Str("idempotency_key", in.IdempotencyKey).Msg("failed to bind idempotency key")
		}
	}

	metrics.AnalysesTotal.WithLabelValues("created").Inc()
	s.deps.Activity.Record(domain.Activity{
		Kind:       domain.ActivityScriptAnalysis,
		AccountID:  in.UserID,
		Details:    map[string]string{"file_name": fileName, "record_id": fmt.Sprint(record.ID)},
		OccurredAt: time.Now().UTC(),
	})
	s.log.Info().Int64("record_id", record.ID).Int64("user_id", in.UserID).Str("file_name", fileName).Msg("script analyzed")

	// 5. Answer after the artificial delay.
	if err := pause(ctx, s.delay); err != nil {
		return nil, err
	}
	return &ports.AnalyzeScriptResult{Record: record, Breakdown: analysis.Breakdown}, nil
}

func (s *scriptService) replay(ctx context.Context, key string, recordID int64) (*ports.AnalyzeScriptResult, error) {
	record, err := s.deps.Records.FindByID(ctx, recordID)
	if err != nil {
		return nil, fmt.Errorf("analyze script: replay %d: %w", recordID, err)
	}
	breakdown, err := record.Breakdown()
	if err != nil {
		return nil, fmt.Errorf("analyze script: decode record %d: %w", recordID, err)
	}

	metrics.AnalysesTotal.WithLabelValues("replayed").Inc()
	s.log.Info().Str("idempotency_key", key).Int64("record_id", recordID).Msg("idempotent replay")

	if err := pause(ctx, s.delay); err != nil {
		return nil, err
	}
	return &ports.AnalyzeScriptResult{Record: record, Breakdown: breakdown, Replayed: true}, nil
}

// History lists the account's analyses, newest first.
func (s *scriptService) History(ctx context.Context, userID int64) ([]domain.AnalysisRecord, error) {
	if userID <= 0 {
		return nil, domain.ErrInvalidUserID
	}
	records, err := s.deps.Records.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("script history: %w", err)
	}
	return records, nil
}
