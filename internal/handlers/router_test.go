package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dating-backend/internal/metrics"
	"dating-backend/internal/models"
	"dating-backend/internal/repository/memory"
	"dating-backend/internal/services"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "handler-secret-handler-secret-xx"

type stubPresigner struct{}

func (stubPresigner) PresignPutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.PresignOptions)) (*services.PresignedRequest, error) {
	return &services.PresignedRequest{URL: "https://signed.example/" + *in.Key}, nil
}

type testServer struct {
	store   *memory.Store
	auth    *services.AuthService
	handler http.Handler
}

func newTestServer(t *testing.T, policy models.TransitionPolicy) *testServer {
	t.Helper()
	store := memory.New()
	auth := services.NewAuthService(store, store, testSecret, time.Hour)
	hub := services.NewWSHub()

	return &testServer{
		store: store,
		auth:  auth,
		handler: NewRouter(Services{
			Auth:    auth,
			Users:   services.NewUserService(store, store),
			Dates:   services.NewDateService(store, policy),
			Photos:  services.NewPhotoServiceWithPresigner(store, stubPresigner{}, "photos", "https://cdn.example", time.Minute),
			Hub:     hub,
			Metrics: metrics.New(),
		}),
	}
}

func (s *testServer) do(t *testing.T, method, path string, body any, headers ...string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var out map[string]any
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}

func (s *testServer) putDate(t *testing.T, id, a, b string, status models.Status) {
	t.Helper()
	require.NoError(t, s.store.CreateDate(context.Background(), &models.DateSuggestion{
		ID: id, UserAID: a, UserBID: b, Status: status, Timestamp: time.Now().UTC(),
	}))
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, models.PolicyIdempotent)

	rec, body := s.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "Server is up and running!", body["message"])
}

func TestSignupLoginFlow(t *testing.T) {
	s := newTestServer(t, models.PolicyIdempotent)

	rec, body := s.do(t, http.MethodPost, "/auth/signup", map[string]string{
		"email": "ann@example.com", "password": "password123", "name": "Ann",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "User registered successfully", body["message"])
	userID, _ := body["user_id"].(string)
	require.NotEmpty(t, userID)
	assert.NotEmpty(t, body["token"])

	rec, body = s.do(t, http.MethodPost, "/auth/signup", map[string]string{
		"email": "ann@example.com", "password": "password123",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Email already registered", body["error"])

	rec, body = s.do(t, http.MethodPost, "/auth/login", map[string]string{
		"email": "ann@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User logged in successfully", body["message"])
	assert.Equal(t, userID, body["user_id"])

	rec, body = s.do(t, http.MethodPost, "/auth/login", map[string]string{
		"email": "ann@example.com", "password": "nope-nope",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found or incorrect credentials", body["error"])
}

func TestSignupLoginValidation(t *testing.T) {
	s := newTestServer(t, models.PolicyIdempotent)

	rec, body := s.do(t, http.MethodPost, "/auth/signup", map[string]string{"email": "a@b.com"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "missing password", body["error"])

	rec, _ = s.do(t, http.MethodPost, "/auth/login", map[string]string{"password": "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader("{not json"))
	raw := httptest.NewRecorder()
	s.handler.ServeHTTP(raw, req)
	assert.Equal(t, http.StatusBadRequest, raw.Code)
}

func TestUserCRUD(t *testing.T) {
	s := newTestServer(t, models.PolicyIdempotent)
	_, body := s.do(t, http.MethodPost, "/auth/signup", map[string]string{
		"email": "bob@example.com", "password": "password123", "name": "Bob",
	})
	userID := body["user_id"].(string)

	rec, body := s.do(t, http.MethodGet, "/users/"+userID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bob", body["name"])
	assert.Equal(t, []any{}, body["interests"])
	assert.Nil(t, body["age"])
	_, hasPassword := body["password_hash"]
	assert.False(t, hasPassword)

	rec, body = s.do(t, http.MethodPut, "/users/"+userID, map[string]any{"bio": "hi", "age": 30, "interests": []string{"chess"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User updated successfully", body["message"])

	_, body = s.do(t, http.MethodGet, "/users/"+userID, nil)
	assert.Equal(t, "hi", body["bio"])
	assert.Equal(t, 30.0, body["age"])
	assert.Equal(t, []any{"chess"}, body["interests"])

	rec, _ = s.do(t, http.MethodPut, "/users/"+userID, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, body = s.do(t, http.MethodDelete, "/users/"+userID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User deleted successfully", body["message"])

	rec, body = s.do(t, http.MethodGet, "/users/"+userID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found", body["error"])

	rec, _ = s.do(t, http.MethodDelete, "/users/"+userID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDateRoutes(t *testing.T) {
	s := newTestServer(t, models.PolicyIdempotent)
	s.putDate(t, "d1", "a", "b", models.StatusSuggested)
	s.putDate(t, "d2", "c", "a", models.StatusSuggested)
	s.putDate(t, "d3", "b", "c", models.StatusSuggested)

	rec, body := s.do(t, http.MethodGet, "/dates/suggested/d1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a", body["user_a_id"])
	assert.Equal(t, "suggested", body["status"])

	rec, body = s.do(t, http.MethodGet, "/dates/suggested/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Date not found", body["error"])

	rec, body = s.do(t, http.MethodPost, "/dates/accept/d1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "Date accepted successfully", body["message"])

	// repeat is a no-op under the idempotent policy
	rec, _ = s.do(t, http.MethodPost, "/dates/accept/d1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, body = s.do(t, http.MethodPost, "/dates/decline/d1", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "error", body["status"])

	rec, body = s.do(t, http.MethodPost, "/dates/decline/d2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Date declined successfully", body["message"])

	rec, body = s.do(t, http.MethodPost, "/dates/decline/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "Date not found", body["message"])

	rec, body = s.do(t, http.MethodGet, "/dates/a", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", body["status"])
	assert.Len(t, body["dates"], 2)
	assert.NotContains(t, body, "message")

	rec, body = s.do(t, http.MethodGet, "/dates/user/a/accepted", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	dates := body["dates"].([]any)
	require.Len(t, dates, 1)
	assert.Equal(t, "d1", dates[0].(map[string]any)["id"])

	rec, body = s.do(t, http.MethodGet, "/dates/user/a/Accepted", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, body["dates"])
	assert.Equal(t, "No Accepted dates found", body["message"])

	rec, body = s.do(t, http.MethodGet, "/dates/nobody", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, body["dates"])
	assert.Equal(t, "No suggested dates found", body["message"])
}

func TestDateAdminRoutes(t *testing.T) {
	s := newTestServer(t, models.PolicyReject)
	s.putDate(t, "d1", "a", "b", models.StatusDeclined)

	rec, body := s.do(t, http.MethodPut, "/dates/suggested/d1", map[string]string{"status": "suggested"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Date updated successfully", body["message"])

	_, body = s.do(t, http.MethodGet, "/dates/suggested/d1", nil)
	assert.Equal(t, "suggested", body["status"])

	rec, _ = s.do(t, http.MethodPut, "/dates/suggested/d1", map[string]string{"user_b_id": "a"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = s.do(t, http.MethodPut, "/dates/suggested/d1", map[string]string{"status": "maybe"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, body = s.do(t, http.MethodDelete, "/dates/suggested/d1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Date deleted successfully", body["message"])

	rec, _ = s.do(t, http.MethodDelete, "/dates/suggested/d1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPhotoPresignRoute(t *testing.T) {
	s := newTestServer(t, models.PolicyIdempotent)
	_, body := s.do(t, http.MethodPost, "/auth/signup", map[string]string{
		"email": "p@example.com", "password": "password123",
	})
	userID := body["user_id"].(string)
	token := body["token"].(string)
	req := map[string]string{"filename": "me.jpg", "content_type": "image/jpeg"}

	rec, _ := s.do(t, http.MethodPost, "/users/"+userID+"/photos/presign", req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	other, err := s.auth.IssueToken("someone-else")
	require.NoError(t, err)
	rec, _ = s.do(t, http.MethodPost, "/users/"+userID+"/photos/presign", req, "Authorization", "Bearer "+other)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, body = s.do(t, http.MethodPost, "/users/"+userID+"/photos/presign", req, "Authorization", "Bearer "+token)
	require.Equal(t, http.StatusOK, rec.Code)
	photoURL := body["photo_url"].(string)
	assert.True(t, strings.HasPrefix(photoURL, "https://cdn.example/users/"+userID+"/"))
	assert.Equal(t, 60.0, body["expires_in"])

	_, body = s.do(t, http.MethodGet, "/users/"+userID, nil)
	assert.Equal(t, []any{photoURL}, body["photo_urls"])
}

func TestClassifyHidesInternalErrors(t *testing.T) {
	code, msg := classify(errors.New("pq: password authentication failed for user root"), "x")
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Internal server error", msg)

	code, _ = classify(services.ErrNotConfigured, "x")
	assert.Equal(t, http.StatusServiceUnavailable, code)

	code, msg = classify(services.ErrNotFound, "Thing not found")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Thing not found", msg)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, models.PolicyIdempotent)
	s.do(t, http.MethodGet, "/health", nil)

	rec, _ := s.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `dating_http_requests_total{code="200",method="GET",route="/health"} 1`)
}
