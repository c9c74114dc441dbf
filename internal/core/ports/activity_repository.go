package ports

import (
	"context"

	"github.com/cinemind/studio-api/internal/core/domain"
)

// ActivityRepository persists activity log entries.
type ActivityRepository interface {
	Insert(ctx context.Context, activity domain.Activity) error
}
