package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DreamWeaver-code/Market/internal/handlers"
	"github.com/DreamWeaver-code/Market/internal/middlewares"
	"github.com/DreamWeaver-code/Market/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

// withUser attaches an authenticated identity to the request, the way
// the auth middleware would.
func withUser(r *http.Request, user *models.AuthUser) *http.Request {
	return r.WithContext(middlewares.SetUserToContext(r.Context(), user))
}

// withPathParam installs a chi route context carrying one URL parameter.
func withPathParam(r *http.Request, name, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(name, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handlers.ErrorResponse {
	t.Helper()
	var body handlers.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}
