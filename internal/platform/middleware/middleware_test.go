package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"credito/internal/platform/metrics"
	"credito/pkg/requestcontext"
)

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestcontext.RequestID(r.Context())
	}))

	t.Run("keeps incoming id", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set(RequestIDHeader, "abc-123")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		assert.Equal(t, "abc-123", seen)
		assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	})

	t.Run("generates id when missing or oversized", func(t *testing.T) {
		for _, incoming := range []string{"", strings.Repeat("x", 500)} {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.Header.Set(RequestIDHeader, incoming)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)

			assert.Len(t, seen, 36)
			assert.Equal(t, seen, w.Header().Get(RequestIDHeader))
		}
	})
}

func TestRecovery(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	h := Recovery(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal_error")
	assert.Contains(t, buf.String(), "panic recovered")
}

func TestContentTypeJSON(t *testing.T) {
	h := ContentTypeJSON(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name        string
		method      string
		contentType string
		body        string
		want        int
	}{
		{"json body", http.MethodPost, "application/json; charset=utf-8", `{}`, http.StatusNoContent},
		{"form body", http.MethodPost, "application/x-www-form-urlencoded", `a=b`, http.StatusBadRequest},
		{"missing type", http.MethodPost, "", `{}`, http.StatusBadRequest},
		{"get without body", http.MethodGet, "", "", http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(tt.method, "/", strings.NewReader(tt.body))
			if tt.contentType != "" {
				r.Header.Set("Content-Type", tt.contentType)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestLoggerAndLatency(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	var buf bytes.Buffer
	r := chi.NewRouter()
	r.Use(Logger(slog.New(slog.NewJSONHandler(&buf, nil))))
	r.Use(Latency(m))
	r.Get("/cpf/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cpf/1", nil))

	require.Equal(t, http.StatusTeapot, w.Code)
	assert.Contains(t, buf.String(), `"status":418`)
	assert.Contains(t, buf.String(), `"device":"unknown"`)
	assert.Equal(t, 1, testutil.CollectAndCount(m.RequestDuration, "credito_http_request_duration_seconds"))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.InFlight))
}
