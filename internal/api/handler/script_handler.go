package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/cinemind/studio-api/internal/core/ports"
)

const (
	scriptFormField      = "script"
	headerIdempotencyKey = "Idempotency-Key"
	headerReplayed       = "Idempotent-Replayed"
	analyzeMessage       = "Analysis complete and saved"
)

type ScriptHandler struct {
	scripts ports.ScriptService
}

func NewScriptHandler(scripts ports.ScriptService) *ScriptHandler {
	return &ScriptHandler{scripts: scripts}
}

// Analyze breaks an uploaded screenplay down and stores the result.
//
// @Summary      Analyze a screenplay
// @Tags         script
// @Accept       mpfd
// @Produce      json
// @Param        script           formData  file    false  "Screenplay file"
// @Param        userId           formData  int     false  "Account id (default 1)"
// @Param        Idempotency-Key  header    string  false  "Replays the first result for repeated keys"
// @Success      200  {object}  analyzeResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /script/analyze [post]
func (h *ScriptHandler) Analyze(c echo.Context) error {
	userID, err := userIDParam(c)
	if err != nil {
		return err
	}

	input := ports.AnalyzeScriptInput{
		UserID:         userID,
		IdempotencyKey: c.Request().Header.Get(headerIdempotencyKey),
	}

	fh, err := c.FormFile(scriptFormField)
	switch {
	case err == nil:
		f, err := fh.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "unreadable script upload")
		}
		defer f.Close()
		input.Upload = &ports.ScriptUpload{
			FileName:    fh.Filename,
			ContentType: fh.Header.Get(echo.HeaderContentType),
			Size:        fh.Size,
			Content:     f,
		}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		// No file: the analysis is stored under the placeholder name.
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "invalid multipart payload")
	}

	res, err := h.scripts.Analyze(c.Request().Context(), input)
	if err != nil {
		return err
	}

	if input.IdempotencyKey != "" {
		c.Response().Header().Set(headerReplayed, strconv.FormatBool(res.Replayed))
	}
	return c.JSON(http.StatusOK, analyzeResponse{
		Success:         true,
		ScriptBreakdown: res.Breakdown,
		Message:         analyzeMessage,
	})
}

// History lists an account's analyses, newest first.
//
// @Summary      Script analysis history
// @Tags         script
// @Produce      json
// @Param        userId  query     int  false  "Account id (default 1)"
// @Success      200     {object}  historyResponse
// @Failure      400     {object}  errorResponse
// @Failure      500     {object}  errorResponse
// @Router       /script/history [get]
func (h *ScriptHandler) History(c echo.Context) error {
	userID, err := userIDParam(c)
	if err != nil {
		return err
	}

	records, err := h.scripts.History(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, historyResponse{Success: true, History: records})
}
