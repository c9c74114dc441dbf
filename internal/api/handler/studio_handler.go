package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cinemind/studio-api/internal/core/domain"
	"github.com/cinemind/studio-api/internal/core/ports"
)

// StudioHandler serves the dashboard and the mock production tools.
type StudioHandler struct {
	dashboard ports.DashboardService
	footage   ports.FootageService
	video     ports.VideoService
}

func NewStudioHandler(dashboard ports.DashboardService, footage ports.FootageService, video ports.VideoService) *StudioHandler {
	return &StudioHandler{dashboard: dashboard, footage: footage, video: video}
}

// Stats returns the dashboard tiles.
//
// @Summary      Dashboard statistics
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  statsResponse
// @Failure      500  {object}  errorResponse
// @Router       /dashboard/stats [get]
func (h *StudioHandler) Stats(c echo.Context) error {
	stats, err := h.dashboard.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statsResponse{Success: true, Stats: stats})
}

// SearchFootage finds clips whose description matches the query.
//
// @Summary      Search footage
// @Tags         footage
// @Accept       json
// @Produce      json
// @Param        body  body      footageSearchRequest  true  "Search query"
// @Success      200   {object}  footageSearchResponse
// @Failure      400   {object}  errorResponse
// @Router       /footage/search [post]
func (h *StudioHandler) SearchFootage(c echo.Context) error {
	var req footageSearchRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	clips, err := h.footage.Search(c.Request().Context(), req.Query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, footageSearchResponse{Success: true, Results: clips})
}

// GenerateVideo returns a preview render for a scene.
//
// @Summary      Generate a preview video
// @Tags         video
// @Accept       json
// @Produce      json
// @Param        body  body      videoGenerateRequest  true  "Scene and prompt"
// @Success      200   {object}  videoGenerateResponse
// @Failure      400   {object}  errorResponse
// @Router       /video/generate [post]
func (h *StudioHandler) GenerateVideo(c echo.Context) error {
	var req videoGenerateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	render, err := h.video.Generate(c.Request().Context(), domain.VideoRequest{
		SceneID: string(req.SceneID),
		Prompt:  req.Prompt,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, videoGenerateResponse{
		Success:  true,
		VideoURL: render.VideoURL,
		Metadata: render.Metadata,
	})
}
