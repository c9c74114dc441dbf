package ports

import (
	"context"

	"github.com/cinemind/studio-api/internal/core/domain"
)

// ScriptAnalyzer breaks a screenplay down into characters and locations.
// upload is nil when the caller sent no file.
type ScriptAnalyzer interface {
	Analyze(ctx context.Context, upload *ScriptUpload) (*domain.ScriptAnalysis, error)
}

// FootageIndex searches shot footage by description.
type FootageIndex interface {
	Search(ctx context.Context, query string) ([]domain.FootageClip, error)
}

// VideoRenderer produces preview renders for scenes.
type VideoRenderer interface {
	Render(ctx context.Context, req domain.VideoRequest) (*domain.VideoRender, error)
}

// DashboardService aggregates the dashboard tiles.
type DashboardService interface {
	Stats(ctx context.Context) ([]domain.DashboardStat, error)
}

// FootageService is the footage search use case.
type FootageService interface {
	Search(ctx context.Context, query string) ([]domain.FootageClip, error)
}

// VideoService is the preview-render use case.
type VideoService interface {
	Generate(ctx context.Context, req domain.VideoRequest) (*domain.VideoRender, error)
}
