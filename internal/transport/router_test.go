package transport_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanyang/promptvault/internal/adapter/memory"
	domainprompt "github.com/alanyang/promptvault/internal/domain/prompt"
	"github.com/alanyang/promptvault/internal/service/library"
	"github.com/alanyang/promptvault/internal/transport"
)

func init() { gin.SetMode(gin.TestMode) }

func newApp(t *testing.T) (*gin.Engine, *library.Service) {
	t.Helper()
	ctx := context.Background()
	bus := memory.NewBus()
	svc := library.NewService(ctx, memory.NewSlotStore(), bus, "prompts")
	r := transport.NewRouter(ctx, svc, nil, bus, memory.NewCache())
	return r, svc
}

func TestHealthz(t *testing.T) {
	r, _ := newApp(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, "/healthz", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestCORS_PreflightShortCircuits(t *testing.T) {
	r, _ := newApp(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequestWithContext(context.Background(), http.MethodOptions, "/api/prompts", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, 204, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func createReq(key string) *http.Request {
	body, _ := json.Marshal(map[string]any{"title": "t", "content": "c", "category": "g"})
	req, _ := http.NewRequestWithContext(context.Background(), http.MethodPost, "/api/prompts", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set("Idempotency-Key", key)
	}
	return req
}

func TestIdempotency_ReplaysDuplicateCreate(t *testing.T) {
	r, svc := newApp(t)

	w1 := httptest.NewRecorder()
	r.ServeHTTP(w1, createReq("abc"))
	require.Equal(t, http.StatusCreated, w1.Code)

	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, createReq("abc"))
	require.Equal(t, http.StatusCreated, w2.Code)

	var p1, p2 domainprompt.Prompt
	require.NoError(t, json.Unmarshal(w1.Body.Bytes(), &p1))
	require.NoError(t, json.Unmarshal(w2.Body.Bytes(), &p2))
	assert.Equal(t, p1.ID, p2.ID, "retry must replay, not re-create")

	assert.Len(t, svc.List(context.Background()), 1)
}

func TestIdempotency_DistinctKeysCreateDistinctRecords(t *testing.T) {
	r, svc := newApp(t)

	w1 := httptest.NewRecorder()
	r.ServeHTTP(w1, createReq("one"))
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, createReq("two"))
	w3 := httptest.NewRecorder()
	r.ServeHTTP(w3, createReq(""))

	assert.Len(t, svc.List(context.Background()), 3)
}
