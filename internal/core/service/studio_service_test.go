package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/cinemind/studio-api/internal/core/domain"
)

type stubIndex struct {
	clips []domain.FootageClip
	err   error
	query string
}

func (s *stubIndex) Search(_ context.Context, q string) ([]domain.FootageClip, error) {
	s.query = q
	return s.clips, s.err
}

type stubRenderer struct {
	got domain.VideoRequest
	err error
}

func (s *stubRenderer) Render(_ context.Context, req domain.VideoRequest) (*domain.VideoRender, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &domain.VideoRender{VideoURL: "https://example.test/clip.mp4", Metadata: domain.RenderMetadata{FrameRate: 24}}, nil
}

func TestFootageService_Search(t *testing.T) {
	index := &stubIndex{clips: []domain.FootageClip{{Timestamp: "00:00:01", Description: "train"}}}
	activity := &recordingActivity{}
	svc := NewFootageService(index, activity, 0, zerolog.Nop())

	clips, err := svc.Search(context.Background(), "TRAIN")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if index.query != "TRAIN" {
		t.Fatalf("query not forwarded, got %q", index.query)
	}
	if len(clips) != 1 {
		t.Fatalf("expected 1 clip, got %d", len(clips))
	}
	if kinds := activity.kinds(); len(kinds) != 1 || kinds[0] != domain.ActivityFootageSearch {
		t.Fatalf("unexpected activity: %v", kinds)
	}
}

func TestFootageService_Search_Error(t *testing.T) {
	svc := NewFootageService(&stubIndex{err: errBoom}, nil, 0, zerolog.Nop())
	if _, err := svc.Search(context.Background(), "x"); !errors.Is(err, errBoom) {
		t.Fatalf("expected index error, got %v", err)
	}
}

func TestVideoService_Generate(t *testing.T) {
	renderer := &stubRenderer{}
	svc := NewVideoService(renderer, nil, 10*time.Millisecond, zerolog.Nop())

	start := time.Now()
	render, err := svc.Generate(context.Background(), domain.VideoRequest{SceneID: "12", Prompt: "neon rain"})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if time.Since(start) < 10*time.Millisecond {
		t.Fatalf("expected the artificial delay to apply")
	}
	if renderer.got.SceneID != "12" || renderer.got.Prompt != "neon rain" {
		t.Fatalf("request not forwarded: %+v", renderer.got)
	}
	if render.Metadata.FrameRate != 24 {
		t.Fatalf("unexpected render: %+v", render)
	}
}

func TestVideoService_Generate_Error(t *testing.T) {
	svc := NewVideoService(&stubRenderer{err: errBoom}, nil, time.Hour, zerolog.Nop())
	if _, err := svc.Generate(context.Background(), domain.VideoRequest{}); !errors.Is(err, errBoom) {
		t.Fatalf("expected renderer error, got %v", err)
	}
}
