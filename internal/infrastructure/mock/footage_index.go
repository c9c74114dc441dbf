package mock

import (
	"context"
	"strings"

	"github.com/cinemind/studio-api/internal/core/domain"
	"github.com/cinemind/studio-api/internal/core/ports"
)

var footageCatalogue = []domain.FootageClip{
	{
		Timestamp:   "00:14:22",
		Description: "Elias enters the subway with a black coat",
		Thumbnail:   "https://images.unsplash.com/photo-1514467953516-ec483e58c65f?auto=format&fit=crop&w=400&q=80",
	},
	{
		Timestamp:   "00:21:05",
		Description: "Close up of the mysterious briefcase",
		Thumbnail:   "https://images.unsplash.com/photo-1543269664-76bc3997d9ea?auto=format&fit=crop&w=400&q=80",
	},
	{
		Timestamp:   "01:05:44",
		Description: "The train departing into the tunnel",
		Thumbnail:   "https://images.unsplash.com/photo-1474487056269-ac41b32bb398?auto=format&fit=crop&w=400&q=80",
	},
	{
		Timestamp:   "00:05:12",
		Description: "Neon signs flickering in the rain",
		Thumbnail:   "https://images.unsplash.com/photo-1514565131-fce0801e5785?auto=format&fit=crop&w=400&q=80",
	},
}

// FootageIndex filters a fixed catalogue by description.
type FootageIndex struct {
	clips []domain.FootageClip
}

// NewFootageIndex creates an index over the built-in catalogue.
func NewFootageIndex() ports.FootageIndex {
	return &FootageIndex{clips: footageCatalogue}
}

// Search returns the clips whose description contains query, ignoring case.
// Only the empty query matches nothing; whitespace is part of the needle.
func (f *FootageIndex) Search(ctx context.Context, query string) ([]domain.FootageClip, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results := make([]domain.FootageClip, 0, len(f.clips))
	if query == "" {
		return results, nil
	}
	needle := strings.ToLower(query)
	for _, clip := range f.clips {
		if strings.Contains(strings.ToLower(clip.Description), needle) {
			results = append(results, clip)
		}
	}
	return results, nil
}
