package service

import (
	"context"
	"time"

	"github.com/cinemind/studio-api/internal/core/domain"
	"github.com/cinemind/studio-api/internal/core/ports"
)

type nopRecorder struct{}

func (nopRecorder) Record(domain.Activity) {}

func orNop(r ports.ActivityRecorder) ports.ActivityRecorder {
	if r == nil {
		return nopRecorder{}
	}
	return r
}

// pause holds the response for d, returning early with the context error if
// the request goes away first.
func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
