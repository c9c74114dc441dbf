package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/cinemind/studio-api/internal/core/domain"
	"github.com/cinemind/studio-api/internal/core/ports"
)

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

type stubAuthService struct {
	loginFn func(ctx context.Context, email, password string) (*ports.LoginResult, error)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, password)
}

type stubScriptService struct {
	analyzeFn func(ctx context.Context, in ports.AnalyzeScriptInput) (*ports.AnalyzeScriptResult, error)
	historyFn func(ctx context.Context, userID int64) ([]domain.AnalysisRecord, error)
}

func (s *stubScriptService) Analyze(ctx context.Context, in ports.AnalyzeScriptInput) (*ports.AnalyzeScriptResult, error) {
	return s.analyzeFn(ctx, in)
}

func (s *stubScriptService) History(ctx context.Context, userID int64) ([]domain.AnalysisRecord, error) {
	return s.historyFn(ctx, userID)
}

type stubDashboard struct {
	stats []domain.DashboardStat
	err   error
}

func (s *stubDashboard) Stats(context.Context) ([]domain.DashboardStat, error) {
	return s.stats, s.err
}

type stubFootage struct {
	gotQuery string
	clips    []domain.FootageClip
}

func (s *stubFootage) Search(_ context.Context, query string) ([]domain.FootageClip, error) {
	s.gotQuery = query
	return s.clips, nil
}

type stubVideo struct {
	got domain.VideoRequest
}

func (s *stubVideo) Generate(_ context.Context, req domain.VideoRequest) (*domain.VideoRender, error) {
	s.got = req
	return &domain.VideoRender{
		VideoURL: "https://cdn.example/preview.mp4",
		Metadata: domain.RenderMetadata{RenderTime: "4.2s", FrameRate: 24, Resolution: "1080p"},
	}, nil
}

type stubCreative struct {
	intent  domain.CreativeIntent
	snippet string
}

func (s *stubCreative) ExtractIntent(_ context.Context, snippet string) domain.CreativeIntent {
	s.snippet = snippet
	return s.intent
}
