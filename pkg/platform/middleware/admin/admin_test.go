package admin

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequireAdminToken(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name     string
		expected string
		sent     string
		want     int
	}{
		{name: "matching token", expected: "s3cret", sent: "s3cret", want: http.StatusNoContent},
		{name: "wrong token", expected: "s3cret", sent: "guess", want: http.StatusUnauthorized},
		{name: "missing token", expected: "s3cret", sent: "", want: http.StatusUnauthorized},
		{name: "check disabled", expected: "", sent: "", want: http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodDelete, "/cpf/cache", nil)
			if tt.sent != "" {
				req.Header.Set(HeaderToken, tt.sent)
			}
			rr := httptest.NewRecorder()

			RequireAdminToken(tt.expected, logger)(ok).ServeHTTP(rr, req)

			assert.Equal(t, tt.want, rr.Code)
			if tt.want == http.StatusUnauthorized {
				assert.JSONEq(t, `{"error":"unauthorized","error_description":"admin token required"}`, rr.Body.String())
			}
		})
	}
}
