package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"dating-backend/internal/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticValidator map[string]string

func (v staticValidator) ValidateToken(token string) (string, error) {
	if id, ok := v[token]; ok {
		return id, nil
	}
	return "", errors.New("invalid")
}

func TestAuthMiddleware(t *testing.T) {
	h := AuthMiddleware(staticValidator{"good": "u1"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(GetUserID(r.Context())))
	}))

	tests := []struct {
		name   string
		header string
		code   int
		body   string
	}{
		{"missing header", "", http.StatusUnauthorized, `{"error":"Authorization header required"}` + "\n"},
		{"wrong scheme", "Basic good", http.StatusUnauthorized, `{"error":"Invalid authorization header format"}` + "\n"},
		{"empty token", "Bearer ", http.StatusUnauthorized, `{"error":"Invalid authorization header format"}` + "\n"},
		{"bad token", "Bearer bad", http.StatusUnauthorized, `{"error":"Invalid token"}` + "\n"},
		{"ok", "Bearer good", http.StatusOK, "u1"},
		{"lowercase scheme", "bearer good", http.StatusOK, "u1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, tt.body, rec.Body.String())
		})
	}
}

func TestValidateWebSocketToken(t *testing.T) {
	v := staticValidator{"good": "u1"}

	_, err := ValidateWebSocketToken("", v)
	require.ErrorIs(t, err, ErrTokenRequired)

	id, err := ValidateWebSocketToken("good", v)
	require.NoError(t, err)
	assert.Equal(t, "u1", id)
}

func TestMetricsUsesRoutePattern(t *testing.T) {
	m := metrics.New()
	r := chi.NewRouter()
	r.Use(Metrics(m))
	r.Get("/dates/{userId}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	for _, id := range []string{"a", "b", "c"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/dates/"+id, nil))
	}

	assert.Equal(t, 3.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues(http.MethodGet, "/dates/{userId}", "418")))
}
