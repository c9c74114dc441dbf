package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/cinemind/studio-api/internal/pkg/config"
)

func testConfig(t *testing.T) *config.Config {
	dir := t.TempDir()
	return &config.Config{
		Port: "0",
		Env:  "test",
		DB: config.DBConfig{
			Driver: "sqlite",
			Path:   filepath.Join(dir, "db", "cinemind.db"),
		},
		Storage: config.StorageConfig{UploadDir: filepath.Join(dir, "uploads")},
	}
}

// New registers HTTP metrics on the default registry, so the whole flow runs
// against a single App.
func TestApp_EndToEnd(t *testing.T) {
	ctx := context.Background()
	a, err := New(ctx, testConfig(t), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { a.Close(context.Background()) })

	h := a.Handler()
	do := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		if body != "" {
			req.Header.Set("Content-Type", "application/json")
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	rec := do(http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"db":"connected"`)

	rec = do(http.MethodPost, "/api/auth/login", `{"email":"director@studio.io","password":"secret"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var login struct {
		Success bool `json:"success"`
		User    struct {
			ID   int64  `json:"id"`
			Name string `json:"name"`
			Role string `json:"role"`
		} `json:"user"`
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	require.True(t, login.Success)
	require.Equal(t, int64(1), login.User.ID)
	require.Equal(t, "director", login.User.Name)
	require.Equal(t, "Director", login.User.Role)
	require.Equal(t, "mock-jwt-token", login.Token)

	rec = do(http.MethodPost, "/api/script/analyze", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Contains(t, rec.Body.String(), `"message":"Analysis complete and saved"`)

	rec = do(http.MethodGet, "/api/script/history?userId=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var history struct {
		History []struct {
			FileName string `json:"file_name"`
			Tone     string `json:"tone"`
		} `json:"history"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	require.Len(t, history.History, 1)
	require.Equal(t, "Mock Script", history.History[0].FileName)
	require.Equal(t, "Neo-Noir", history.History[0].Tone)

	rec = do(http.MethodPost, "/api/creative/intent", `{"snippet":"INT. DINER - NIGHT"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "fallback", rec.Header().Get("X-Intent-Source"))

	rec = do(http.MethodGet, "/api/health/ready", "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	cfg := testConfig(t)
	cfg.DB.Driver = "oracle"
	_, err := OpenStore(cfg)
	require.Error(t, err)
}

func TestRequestBaseContext_SurvivesShutdownSignal(t *testing.T) {
	type key struct{}
	parent, cancel := context.WithCancel(context.WithValue(context.Background(), key{}, "cinemind"))

	base := requestBaseContext(parent)(nil)
	cancel()

	require.NoError(t, base.Err())
	require.Equal(t, "cinemind", base.Value(key{}))
}
