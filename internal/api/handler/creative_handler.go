package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cinemind/studio-api/internal/core/ports"
)

const headerIntentSource = "X-Intent-Source"

type CreativeHandler struct {
	creative ports.CreativeService
}

func NewCreativeHandler(creative ports.CreativeService) *CreativeHandler {
	return &CreativeHandler{creative: creative}
}

// Intent extracts mood, subtext, visual tone, lighting and soundscape from a
// script snippet. The body is the model's JSON document, or the fixed
// fallback when no model answer is available.
//
// @Summary      Creative intent of a script snippet
// @Tags         creative
// @Accept       json
// @Produce      json
// @Param        body  body      creativeIntentRequest  true  "Script snippet"
// @Success      200   {object}  creativeIntentDoc
// @Failure      400   {object}  errorResponse
// @Router       /creative/intent [post]
func (h *CreativeHandler) Intent(c echo.Context) error {
	var req creativeIntentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	intent := h.creative.ExtractIntent(c.Request().Context(), req.Snippet)

	c.Response().Header().Set(headerIntentSource, string(intent.Source))
	return c.JSONBlob(http.StatusOK, intent.Document)
}
