package ports

import "github.com/cinemind/studio-api/internal/core/domain"

// ActivityRecorder accepts activity entries without blocking the caller.
type ActivityRecorder interface {
	Record(activity domain.Activity)
}
