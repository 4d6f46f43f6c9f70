package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/campus-events-hub/internal/domain/user"
	"github.com/campushub/campus-events-hub/internal/infrastructure/persistence/memory"
)

func newTestServer(t *testing.T) (*Server, *memory.Store) {
	t.Helper()

	store := memory.NewStore()
	cfg := DefaultConfig()
	cfg.RateLimitPerMinute = 0 // not under test
	s := NewServer(cfg, Dependencies{
		Store:  store,
		Tokens: NewTokenService("test-secret", time.Hour),
	})
	return s, store
}

func doJSON(t *testing.T, s *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestRegisterAndLogin(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"first_name": "Mia",
		"last_name":  "Member",
		"email":      "mia@hub.test",
		"password":   "longenough",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		Success bool `json:"success"`
		Data    struct {
			Token string  `json:"token"`
			User  UserDTO `json:"user"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.True(t, created.Success)
	assert.NotEmpty(t, created.Data.Token)
	assert.Equal(t, "mia@hub.test", created.Data.User.Email)

	rec = doJSON(t, s, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "mia@hub.test",
		"password": "longenough",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, s, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "mia@hub.test",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegister_DuplicateEmailConflicts(t *testing.T) {
	s, _ := newTestServer(t)
	body := map[string]string{
		"first_name": "Mia", "last_name": "Member",
		"email": "mia@hub.test", "password": "longenough",
	}

	rec := doJSON(t, s, http.MethodPost, "/api/v1/auth/register", "", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, s, http.MethodPost, "/api/v1/auth/register", "", body)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreateEvent_StatusMapping(t *testing.T) {
	s, store := newTestServer(t)

	organizer := user.New("Oskar", "Organizer", "oskar@hub.test", "hash", time.Now())
	organizer.IsOrganizer = true
	member := user.New("Mia", "Member", "mia@hub.test", "hash", time.Now())
	require.NoError(t, store.Seed(context.Background(), organizer, member))

	organizerToken, err := s.deps.Tokens.Issue(organizer)
	require.NoError(t, err)
	memberToken, err := s.deps.Tokens.Issue(member)
	require.NoError(t, err)

	body := map[string]any{
		"title":       "Chess Night",
		"description": "weekly blitz",
		"category":    "culture",
		"start_date":  time.Now().Add(24 * time.Hour),
		"end_date":    time.Now().Add(26 * time.Hour),
		"location":    "main hall",
	}

	// anonymous: 401
	rec := doJSON(t, s, http.MethodPost, "/api/v1/events", "", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// signed in without the organizer role: 403
	rec = doJSON(t, s, http.MethodPost, "/api/v1/events", memberToken, body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, s, http.MethodPost, "/api/v1/events", organizerToken, body)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		Data EventDTO `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	// events are publicly readable
	rec = doJSON(t, s, http.MethodGet, "/api/v1/events/"+created.Data.ID.String(), "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// unknown ids map to 404
	rec = doJSON(t, s, http.MethodGet, "/api/v1/events/00000000-0000-0000-0000-00000000dead", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAuthMiddleware_BadToken(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListEvents_Meta(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/api/v1/events?page_size=5", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Meta *ResponseMeta `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 0, resp.Meta.TotalCount)
	assert.Equal(t, 5, resp.Meta.PageSize)
}
