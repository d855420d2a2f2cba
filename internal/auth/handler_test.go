package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/mnzmnz10/yeter-sub001/internal/testing/guard"
)

func newTestRouter(t *testing.T) (chi.Router, *Service) {
	t.Helper()
	svc, _ := newTestService(t, time.Hour)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(logger, svc)

	r := chi.NewRouter()
	handler.MountRoutes(r)
	r.Group(func(pr chi.Router) {
		pr.Use(svc.RequireSession(logger))
		handler.MountProtectedRoutes(pr)
	})
	return r, svc
}

func postJSON(t *testing.T, router chi.Router, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestLoginHandlerIssuesToken(t *testing.T) {
	router, svc := newTestRouter(t)

	rec := postJSON(t, router, "/auth/login", `{"password":"`+testPassword+`"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)

	ok, err := svc.Validate(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLoginHandlerWrongPassword(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := postJSON(t, router, "/auth/login", `{"password":"yanlis"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginHandlerMalformedBody(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := postJSON(t, router, "/auth/login", `{not json`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginHandlerMissingPassword(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := postJSON(t, router, "/auth/login", `{}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogoutHandlerRevokesSession(t *testing.T) {
	router, svc := newTestRouter(t)

	rec := postJSON(t, router, "/auth/login", `{"password":"`+testPassword+`"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	rec = postJSON(t, router, "/auth/logout", ``, resp.Token)
	require.Equal(t, http.StatusNoContent, rec.Code)

	ok, err := svc.Validate(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLogoutHandlerWithoutSession(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := postJSON(t, router, "/auth/logout", ``, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
