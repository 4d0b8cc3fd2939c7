package admin

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iteranya/restaurant-pos/internal/entities/session"
	"github.com/iteranya/restaurant-pos/internal/metrics"
	"github.com/iteranya/restaurant-pos/internal/utils"
	"github.com/iteranya/restaurant-pos/internal/web"
)

type memSessions struct {
	rows map[string]*session.Session
	err  error
}

func (m *memSessions) Create(_ context.Context, s *session.Session) error {
	m.rows[s.Id] = s
	return nil
}

func (m *memSessions) GetByID(_ context.Context, id string) (*session.Session, error) {
	if m.err != nil {
		return nil, m.err
	}
	if s, ok := m.rows[id]; ok {
		return s, nil
	}
	return nil, session.ErrSessionNotFound
}

func (m *memSessions) Delete(_ context.Context, id string) error {
	if _, ok := m.rows[id]; !ok {
		return session.ErrSessionNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memSessions) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	return 0, nil
}

type recordingRenderer struct {
	name string
	page web.Page
}

func (r *recordingRenderer) Render(w http.ResponseWriter, status int, name string, page web.Page) {
	r.name, r.page = name, page
	w.WriteHeader(status)
}

type harness struct {
	router   *mux.Router
	render   *recordingRenderer
	sessions *memSessions
	logs     *bytes.Buffer
	cookie   *http.Cookie
}

func newHarness(t *testing.T, loginsPerMinute int) *harness {
	t.Helper()
	svc := NewAdminService(&memRepo{})
	_, err := svc.EnsureSeeded(context.Background(), "admin", "admin")
	require.NoError(t, err)

	repo := &memSessions{rows: map[string]*session.Session{}}
	sessions := session.NewSessionService(repo, utils.NewTokenSigner("test-secret"), session.Lifetimes{
		Default:  12 * time.Hour,
		Remember: 30 * 24 * time.Hour,
	})
	rr := &recordingRenderer{}
	logs := &bytes.Buffer{}
	h := NewAdminHandler(svc, sessions, web.NewRateLimiter(loginsPerMinute, loginsPerMinute), rr, metrics.New(), zerolog.New(logs), false)

	router := mux.NewRouter()
	h.RegisterRoutes(router)
	protected := router.NewRoute().Subrouter()
	protected.Use(utils.RequireAuth(sessions, LoginPath, h.SessionStoreFailure))
	h.RegisterProtectedRoutes(protected)
	protected.HandleFunc("/menu", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	return &harness{router: router, render: rr, sessions: repo, logs: logs}
}

func (h *harness) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.RemoteAddr = "10.1.1.1:3000"
	if h.cookie != nil {
		req.AddCookie(h.cookie)
	}
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		if c.Name == utils.SessionCookieName {
			h.cookie = c
		}
	}
	return rec
}

func (h *harness) login(t *testing.T, password string, remember bool) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{"username": {"admin"}, "password": {password}}
	if remember {
		form.Set("remember", "1")
	}
	return h.do(http.MethodPost, LoginPath, form)
}

func TestAdminHandler_ProtectedRouteRedirectsToLogin(t *testing.T) {
	h := newHarness(t, 60)

	rec := h.do(http.MethodGet, "/menu", nil)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, LoginPath, rec.Header().Get("Location"))
}

func TestAdminHandler_SeededLoginThenLogout(t *testing.T) {
	h := newHarness(t, 60)

	rec := h.login(t, "admin", false)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	require.NotNil(t, h.cookie)
	assert.True(t, h.cookie.HttpOnly)
	assert.Zero(t, h.cookie.MaxAge)
	assert.Len(t, h.sessions.rows, 1)

	assert.Equal(t, http.StatusOK, h.do(http.MethodGet, "/menu", nil).Code)

	rec = h.do(http.MethodGet, LoginPath, nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	h.do(http.MethodGet, "/", nil)
	assert.Equal(t, "home", h.render.name)

	token := h.cookie.Value
	rec = h.do(http.MethodGet, "/logout", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, LoginPath, rec.Header().Get("Location"))
	assert.Empty(t, h.sessions.rows)

	// a replayed cookie is dead too
	h.cookie = &http.Cookie{Name: utils.SessionCookieName, Value: token}
	rec = h.do(http.MethodGet, "/menu", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, LoginPath, rec.Header().Get("Location"))
}

func TestAdminHandler_LogoutLogsSessionID(t *testing.T) {
	h := newHarness(t, 60)
	h.login(t, "admin", false)
	require.Len(t, h.sessions.rows, 1)
	var sid string
	for id := range h.sessions.rows {
		sid = id
	}
	h.logs.Reset()

	h.do(http.MethodGet, "/logout", nil)

	assert.Contains(t, h.logs.String(), `"id":"`+sid+`"`)
	assert.Contains(t, h.logs.String(), "admin logged out")
}

func TestAdminHandler_RememberSetsPersistentCookie(t *testing.T) {
	h := newHarness(t, 60)

	h.login(t, "admin", true)

	require.NotNil(t, h.cookie)
	assert.Equal(t, int((30 * 24 * time.Hour).Seconds()), h.cookie.MaxAge)
	for _, s := range h.sessions.rows {
		assert.True(t, s.Remember)
	}
}

func TestAdminHandler_BadCredentials(t *testing.T) {
	h := newHarness(t, 60)

	rec := h.login(t, "nope", false)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "login", h.render.name)
	assert.Equal(t, msgBadCredentials, h.render.page.Error)
	assert.Equal(t, "admin", h.render.page.Data.(LoginView).Username)
	assert.Nil(t, h.cookie)
}

func TestAdminHandler_LoginThrottled(t *testing.T) {
	h := newHarness(t, 2)

	h.login(t, "nope", false)
	h.login(t, "nope", false)
	rec := h.login(t, "admin", false)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, msgThrottled, h.render.page.Error)
	assert.Nil(t, h.cookie)
}

func TestAdminHandler_HomeWithoutSessionShowsLogin(t *testing.T) {
	h := newHarness(t, 60)

	rec := h.do(http.MethodGet, "/", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "login", h.render.name)
}

func TestAdminHandler_ChangePassword(t *testing.T) {
	h := newHarness(t, 60)
	h.login(t, "admin", false)

	rec := h.do(http.MethodPost, "/change_password", url.Values{"current_password": {"wrong"}, "new_password": {"s3cret!"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, msgWrongPassword, h.render.page.Error)

	rec = h.do(http.MethodPost, "/change_password", url.Values{"current_password": {"admin"}, "new_password": {"abc"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Password must be between 6 and 72 characters", h.render.page.Error)

	rec = h.do(http.MethodPost, "/change_password", url.Values{"current_password": {"admin"}, "new_password": {"s3cret!"}})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Password updated.", h.render.page.Notice)

	h.do(http.MethodGet, "/logout", nil)
	h.cookie = nil

	assert.Equal(t, http.StatusUnauthorized, h.login(t, "admin", false).Code)
	assert.Equal(t, http.StatusSeeOther, h.login(t, "s3cret!", false).Code)
}

func TestAdminHandler_ChangePasswordRequiresSession(t *testing.T) {
	h := newHarness(t, 60)

	rec := h.do(http.MethodPost, "/change_password", url.Values{"current_password": {"admin"}, "new_password": {"s3cret!"}})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, LoginPath, rec.Header().Get("Location"))
}

func TestAdminHandler_SessionStoreDownIsNotALogout(t *testing.T) {
	h := newHarness(t, 60)
	h.login(t, "admin", false)
	require.NotNil(t, h.cookie)
	h.sessions.err = errors.New("connection refused")

	for _, path := range []string{"/menu", "/", LoginPath} {
		rec := h.do(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusInternalServerError, rec.Code, path)
		assert.Empty(t, rec.Header().Get("Location"), path)
		assert.Equal(t, "error", h.render.name, path)
		assert.Equal(t, web.GenericFailure, h.render.page.Error, path)
	}
}
