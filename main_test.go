package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/toninews/logbook-back/config"
	"github.com/toninews/logbook-back/controllers"
	"github.com/toninews/logbook-back/database"
	appmiddleware "github.com/toninews/logbook-back/middleware"
	"github.com/toninews/logbook-back/models"
	"github.com/toninews/logbook-back/repositories"
	"github.com/toninews/logbook-back/services"
)

const testWriteToken = "itest-write-token"

type testServer struct {
	router *chi.Mux
	repos  *repositories.Repositories
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := database.Initialize(filepath.Join(t.TempDir(), "itest.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{
		Environment:     "test",
		FrontOrigin:     "http://localhost:3000",
		WriteToken:      testWriteToken,
		JWTSecret:       "itest-jwt-secret",
		JWTTTL:          time.Hour,
		RateLimitWindow: time.Minute,
		RateLimitMax:    5,
	}

	repos := repositories.NewRepositories(db)
	srvs, err := services.NewServices(repos, cfg)
	require.NoError(t, err)
	ctrl := controllers.NewControllers(srvs, cfg)
	limiter := appmiddleware.NewRateLimiter(cfg.RateLimitWindow, cfg.RateLimitMax)

	return &testServer{
		router: setupRouter(ctrl, srvs, limiter, cfg),
		repos:  repos,
	}
}

func (ts *testServer) do(t *testing.T, method, path, body string, setup func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if setup != nil {
		setup(req)
	}

	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func withWriteToken(r *http.Request) {
	r.Header.Set("X-Write-Token", testWriteToken)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Meta    *struct {
		CurrentPage int `json:"currentPage"`
		TotalPages  int `json:"totalPages"`
	} `json:"meta"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestGetListEmpty(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/logs/getList", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 1, env.Meta.CurrentPage)
	assert.Equal(t, 0, env.Meta.TotalPages)
	assert.Equal(t, "[]", strings.TrimSpace(string(env.Data)))
}

func TestGetListRejectsBadPage(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/logs/getList?page=abc", "", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_QUERY", decodeEnvelope(t, rec).Error.Code)
}

func TestCreateRequiresWriteToken(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/logs/insertTask", `{"title":"T","content":"C"}`, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "TOKEN_MISSING", decodeEnvelope(t, rec).Error.Code)

	rec = ts.do(t, http.MethodPost, "/logs/insertTask", `{"title":"T","content":"C"}`, func(r *http.Request) {
		r.Header.Set("X-Write-Token", "wrong")
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "TOKEN_INVALID", decodeEnvelope(t, rec).Error.Code)
}

func TestCreateAndListRoundTrip(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/logs/insertTask",
		`{"title":"T","content":"C","tags":["x"]}`, withWriteToken)
	require.Equal(t, http.StatusCreated, rec.Code)

	env := decodeEnvelope(t, rec)
	require.True(t, env.Success)

	var created models.Log
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Len(t, created.ID, 24)
	assert.Equal(t, "T", created.Title)

	rec = ts.do(t, http.MethodGet, "/logs/getList", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	env = decodeEnvelope(t, rec)
	var listed []models.Log
	require.NoError(t, json.Unmarshal(env.Data, &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)
	assert.Equal(t, []string{"x"}, listed[0].Tags)
	assert.False(t, listed[0].IsDeleted)
}

func TestCreateRejectsStringTags(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/logs/insertTask",
		`{"title":"T","content":"C","tags":"invalid"}`, withWriteToken)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeEnvelope(t, rec).Error.Code)

	// No record was persisted
	rec = ts.do(t, http.MethodGet, "/logs/getList", "", nil)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "[]", strings.TrimSpace(string(env.Data)))
}

func TestCreateRateLimited(t *testing.T) {
	ts := newTestServer(t)

	for i := 0; i < 5; i++ {
		rec := ts.do(t, http.MethodPost, "/logs/insertTask",
			fmt.Sprintf(`{"title":"T%d","content":"C"}`, i), withWriteToken)
		require.Equal(t, http.StatusCreated, rec.Code, "request %d should pass the limiter", i+1)
	}

	rec := ts.do(t, http.MethodPost, "/logs/insertTask",
		`{"title":"T6","content":"C"}`, withWriteToken)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Equal(t, "TOO_MANY_REQUESTS", decodeEnvelope(t, rec).Error.Code)
}

func TestDeleteFlow(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/logs/insertTask",
		`{"title":"T","content":"C"}`, withWriteToken)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Log
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &created))

	// Malformed id fails before any persistence access
	rec = ts.do(t, http.MethodDelete, "/logs/1", "", withWriteToken)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_ID", decodeEnvelope(t, rec).Error.Code)

	// Missing token fails before validation reaches the use case
	rec = ts.do(t, http.MethodDelete, "/logs/"+created.ID, "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(t, http.MethodDelete, "/logs/"+created.ID, "", withWriteToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeEnvelope(t, rec).Success)

	// Soft-deleted records disappear from the list
	rec = ts.do(t, http.MethodGet, "/logs/getList", "", nil)
	assert.Equal(t, "[]", strings.TrimSpace(string(decodeEnvelope(t, rec).Data)))

	// A second delete reports not found
	rec = ts.do(t, http.MethodDelete, "/logs/"+created.ID, "", withWriteToken)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "LOG_NOT_FOUND", decodeEnvelope(t, rec).Error.Code)
}

func TestUnknownRouteEnvelope(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/nope", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "ROUTE_NOT_FOUND", decodeEnvelope(t, rec).Error.Code)
}

func TestAuthFlow(t *testing.T) {
	ts := newTestServer(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2!"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{Email: "user@example.com", PasswordHash: string(hash), Role: "editor"}
	require.NoError(t, ts.repos.User.Create(context.Background(), user))

	// Wrong password
	rec := ts.do(t, http.MethodPost, "/auth/login",
		`{"email":"user@example.com","password":"nope"}`, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", decodeEnvelope(t, rec).Error.Code)

	// Successful login sets the session cookie
	rec = ts.do(t, http.MethodPost, "/auth/login",
		`{"email":"user@example.com","password":"hunter2!"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var sessionCookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == appmiddleware.SessionCookieName {
			sessionCookie = c
		}
	}
	require.NotNil(t, sessionCookie)
	assert.True(t, sessionCookie.HttpOnly)

	// The cookie grants access to the protected endpoint
	rec = ts.do(t, http.MethodGet, "/auth/me", "", func(r *http.Request) {
		r.AddCookie(sessionCookie)
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var me map[string]string
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &me))
	assert.Equal(t, user.ID, me["usId"])
	assert.Equal(t, "editor", me["usRole"])

	// Without the cookie the endpoint is unauthenticated
	rec = ts.do(t, http.MethodGet, "/auth/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHENTICATED", decodeEnvelope(t, rec).Error.Code)
}
