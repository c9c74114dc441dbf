package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cinemind/studio-api/internal/api/handler"
	"github.com/cinemind/studio-api/internal/core/domain"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), 400, "invalid payload"},
		{"validation", &handler.ValidationError{Fields: []string{"email is required"}}, 422, "email is required"},
		{"invalid user", fmt.Errorf("history: %w", domain.ErrInvalidUserID), 400, "userId must be a positive integer"},
		{"unknown account", domain.ErrAccountNotFound, 404, "account not found"},
		{"in progress", domain.ErrRequestInProgress, 409, "a request with this Idempotency-Key is still in progress"},
		{"cancelled", fmt.Errorf("analyze: %w", context.Canceled), 499, "request cancelled"},
		{"driver error", errors.New(`pq: password authentication failed for user "root"`), 500, "internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var logs bytes.Buffer
			e := echo.New()
			h := NewHTTPErrorHandler(zerolog.New(&logs))

			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/x", nil), rec)
			h(tc.err, c)

			if rec.Code != tc.code {
				t.Fatalf("status = %d, want %d", rec.Code, tc.code)
			}
			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp.Success || resp.Message != tc.msg {
				t.Fatalf("body = %+v, want message %q", resp, tc.msg)
			}
			if tc.code == 500 {
				if strings.Contains(rec.Body.String(), "password") {
					t.Fatal("driver message leaked to client")
				}
				if !strings.Contains(logs.String(), "unhandled error") {
					t.Fatal("unexpected error was not logged")
				}
			}
		})
	}
}

func TestHTTPErrorHandler_CommittedResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	_ = c.String(http.StatusOK, "done")

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("late"), c)
	if rec.Body.String() != "done" {
		t.Fatalf("body rewritten: %q", rec.Body.String())
	}
}
