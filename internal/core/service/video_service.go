package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/cinemind/studio-api/internal/core/domain"
	"github.com/cinemind/studio-api/internal/core/ports"
	"github.com/cinemind/studio-api/internal/pkg/metrics"
)

type videoService struct {
	renderer ports.VideoRenderer
	activity ports.ActivityRecorder
	delay    time.Duration
	log      zerolog.Logger
}

// NewVideoService returns a VideoService that answers after delay.
func NewVideoService(renderer ports.VideoRenderer, activity ports.ActivityRecorder, delay time.Duration, log zerolog.Logger) ports.VideoService {
	return &videoService{renderer: renderer, activity: orNop(activity), delay: delay, log: log}
}

func (s *videoService) Generate(ctx context.Context, req domain.VideoRequest) (*domain.VideoRender, error) {
	s.log.Info().Str("scene_id", req.SceneID).Str("prompt", req.Prompt).Msg("generating preview")

	render, err := s.renderer.Render(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("video generate: %w", err)
	}

	metrics.VideoRendersTotal.Inc()
	s.activity.Record(domain.Activity{
		Kind:       domain.ActivityVideoRender,
		AccountID:  domain.AccountIDFrom(ctx),
		Details:    map[string]string{"scene_id": req.SceneID, "prompt": req.Prompt},
		OccurredAt: time.Now().UTC(),
	})

	if err := pause(ctx, s.delay); err != nil {
		return nil, err
	}
	return render, nil
}
