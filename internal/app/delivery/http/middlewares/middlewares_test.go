package middlewares

import (
	"io"
	"net/http"
	"net/http/httptest"
	"patient-registry-service/internal/app/config"
	"patient-registry-service/internal/pkg/constvars"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestMiddlewares(bodyLimitInMB int) *Middlewares {
	return NewMiddlewares(zap.NewNop(), &config.InternalConfig{
		App: config.App{RequestBodyLimitInMegabyte: bodyLimitInMB},
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	m := newTestMiddlewares(1)
	var seen string
	handler := m.RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	}))

	t.Run("Generates When Absent", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/patients", nil))

		assert.True(t, strings.HasPrefix(seen, constvars.REQUEST_ID_PREFIX))
		assert.Equal(t, seen, rr.Header().Get(constvars.HeaderXRequestID))
	})

	t.Run("Keeps Client Value", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/patients", nil)
		req.Header.Set(constvars.HeaderXRequestID, "client-id-1")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, "client-id-1", seen)
		assert.Equal(t, "client-id-1", rr.Header().Get(constvars.HeaderXRequestID))
	})
}

func TestErrorHandler(t *testing.T) {
	m := newTestMiddlewares(1)
	handler := m.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, constvars.ErrClientSomethingWrongWithApplication, body["message"])
}

func TestLogging_RecordsStatus(t *testing.T) {
	m := newTestMiddlewares(1)
	handler := m.Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTeapot, rr.Code)
}

func TestLimitRequestBody(t *testing.T) {
	m := newTestMiddlewares(1)
	var readErr error
	handler := m.LimitRequestBody(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, readErr = io.ReadAll(r.Body)
	}))

	t.Run("Within Limit", func(t *testing.T) {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader("small")))
		assert.NoError(t, readErr)
	})

	t.Run("Over Limit", func(t *testing.T) {
		big := strings.Repeat("x", 2<<20)
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader(big)))

		var maxBytesErr *http.MaxBytesError
		assert.ErrorAs(t, readErr, &maxBytesErr)
	})
}
