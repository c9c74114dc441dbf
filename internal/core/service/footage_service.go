package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/cinemind/studio-api/internal/core/domain"
	"github.com/cinemind/studio-api/internal/core/ports"
	"github.com/cinemind/studio-api/internal/pkg/metrics"
)

type footageService struct {
	index    ports.FootageIndex
	activity ports.ActivityRecorder
	delay    time.Duration
	log      zerolog.Logger
}

// NewFootageService returns a FootageService that answers after delay.
func NewFootageService(index ports.FootageIndex, activity ports.ActivityRecorder, delay time.Duration, log zerolog.Logger) ports.FootageService {
	return &footageService{index: index, activity: orNop(activity), delay: delay, log: log}
}

func (s *footageService) Search(ctx context.Context, query string) ([]domain.FootageClip, error) {
	s.log.Info().Str("query", query).Msg("searching footage")

	clips, err := s.index.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("footage search: %w", err)
	}

	metrics.FootageResults.Observe(float64(len(clips)))
	s.activity.Record(domain.Activity{
		Kind:       domain.ActivityFootageSearch,
		AccountID:  domain.AccountIDFrom(ctx),
		Details:    map[string]string{"query": query, "results": strconv.Itoa(len(clips))},
		OccurredAt: time.Now().UTC(),
	})

	if err := pause(ctx, s.delay); err != nil {
		return nil, err
	}
	return clips, nil
}
