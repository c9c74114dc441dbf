package mock

import (
	"context"

	"github.com/cinemind/studio-api/internal/core/domain"
	"github.com/cinemind/studio-api/internal/core/ports"
)

const previewURL = "https://assets.mixkit.co/videos/preview/mixkit-futuristic-city-street-at-night-with-neon-lights-25164-large.mp4"

// VideoRenderer hands back the same stock preview for every scene.
type VideoRenderer struct{}

// NewVideoRenderer creates a VideoRenderer.
func NewVideoRenderer() ports.VideoRenderer {
	return VideoRenderer{}
}

func (VideoRenderer) Render(ctx context.Context, _ domain.VideoRequest) (*domain.VideoRender, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &domain.VideoRender{
		VideoURL: previewURL,
		Metadata: domain.RenderMetadata{
			RenderTime: "4.2s",
			FrameRate:  24,
			Resolution: "1080p (Neural Upscaled)",
		},
	}, nil
}
