package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cinemind/studio-api/internal/core/domain"
)

// userIDParam reads userId from the form or query string. Absent means the
// default account; anything that is not an integer is rejected with 400.
// Range checks belong to the services.
func userIDParam(c echo.Context) (int64, error) {
	raw := strings.TrimSpace(c.FormValue("userId"))
	if raw == "" {
		raw = strings.TrimSpace(c.QueryParam("userId"))
	}
	if raw == "" {
		return domain.DefaultUserID, nil
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "userId must be an integer")
	}
	return id, nil
}
