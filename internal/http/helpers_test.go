package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/techieonvacation/ex-earning/internal/cache"
	"github.com/techieonvacation/ex-earning/internal/cart"
	"github.com/techieonvacation/ex-earning/internal/events"
	"github.com/techieonvacation/ex-earning/internal/pricing"
	"github.com/techieonvacation/ex-earning/internal/repository"
	"github.com/techieonvacation/ex-earning/internal/service"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type testServer struct {
	handler  http.Handler
	catalog  *service.CatalogService
	sessions *cart.Sessions
	logs     *observer.ObservedLogs
}

func newTestServer(t *testing.T) *testServer {
	core, logs := observer.New(zap.DebugLevel)
	log := zap.New(core)

	repo := repository.NewFileRepository(filepath.Join(t.TempDir(), "catalog.json"))
	catalog := service.NewCatalogService(repo, cache.Nop{}, events.Nop{}, log)
	sessions := cart.NewSessions(cart.NewReducer(pricing.Default()), time.Hour, log)

	return &testServer{
		handler: NewRouter(catalog, sessions, log, RouterConfig{
			RequestTimeout:     5 * time.Second,
			MaxRequestBodySize: 1 << 20,
		}),
		catalog:  catalog,
		sessions: sessions,
		logs:     logs,
	}
}

// do sends a request, optionally with a JSON body and cart session id.
func (s *testServer) do(t *testing.T, method, path string, body any, session string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if session != "" {
		req.Header.Set(CartSessionHeader, session)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

// envelope decodes a response with data decoded into T.
type envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error"`
	Message string `json:"message"`
	Count   *int   `json:"count"`
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var env envelope[T]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}
