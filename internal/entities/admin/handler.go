package admin

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/iteranya/restaurant-pos/internal/entities/session"
	"github.com/iteranya/restaurant-pos/internal/logging"
	"github.com/iteranya/restaurant-pos/internal/metrics"
	"github.com/iteranya/restaurant-pos/internal/utils"
	"github.com/iteranya/restaurant-pos/internal/web"
)

const (
	LoginPath = "/admin_login"

	msgBadCredentials = "Invalid username or password"
	msgThrottled      = "Too many login attempts. Please wait a minute and try again."
	msgWrongPassword  = "Current password is incorrect"
)

// Sessions is the session lifecycle the login flow drives.
type Sessions interface {
	utils.Authenticator
	Start(ctx context.Context, adminID int, remember bool) (string, *session.Session, error)
	End(ctx context.Context, token string) error
}

type LoginView struct {
	Username string
}

type AdminHandler struct {
	service      AdminService
	sessions     Sessions
	limiter      *web.RateLimiter
	render       web.Renderer
	metrics      *metrics.Metrics
	log          zerolog.Logger
	secureCookie bool
}

func NewAdminHandler(
	service AdminService,
	sessions Sessions,
	limiter *web.RateLimiter,
	render web.Renderer,
	m *metrics.Metrics,
	log zerolog.Logger,
	secureCookie bool,
) *AdminHandler {
	return &AdminHandler{
		service:      service,
		sessions:     sessions,
		limiter:      limiter,
		render:       render,
		metrics:      m,
		log:          log,
		secureCookie: secureCookie,
	}
}

// RegisterRoutes registers the routes reachable without a session.
func (h *AdminHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/", h.HandleHome).Methods(http.MethodGet)
	r.HandleFunc(LoginPath, h.HandleLoginPage).Methods(http.MethodGet)
	r.HandleFunc(LoginPath, h.HandleLogin).Methods(http.MethodPost)
	r.HandleFunc("/logout", h.HandleLogout).Methods(http.MethodGet)
}

// RegisterProtectedRoutes registers the routes that sit behind utils.RequireAuth.
func (h *AdminHandler) RegisterProtectedRoutes(r *mux.Router) {
	r.HandleFunc("/change_password", h.HandleChangePassword).Methods(http.MethodPost)
}

// SessionStoreFailure answers a request whose session could not be checked.
// It is the failure handler given to utils.RequireAuth.
func (h *AdminHandler) SessionStoreFailure(w http.ResponseWriter, r *http.Request, err error) {
	h.log.Error().Err(err).Str("path", r.URL.Path).Msg("failed to check session")
	web.ServerError(w, h.render, false)
}

func (h *AdminHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	_, err := utils.Authenticated(r, h.sessions)
	switch {
	case errors.Is(err, utils.ErrUnauthenticated):
		h.renderLogin(w, http.StatusOK, "", "")
	case err != nil:
		h.SessionStoreFailure(w, r, err)
	default:
		h.renderHome(w, http.StatusOK, "", "")
	}
}

func (h *AdminHandler) HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	_, err := utils.Authenticated(r, h.sessions)
	switch {
	case errors.Is(err, utils.ErrUnauthenticated):
		h.renderLogin(w, http.StatusOK, "", "")
	case err != nil:
		h.SessionStoreFailure(w, r, err)
	default:
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func (h *AdminHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	username := r.PostFormValue("username")

	if !h.limiter.Allow(r) {
		h.metrics.RecordLogin(metrics.LoginThrottled)
		h.log.Warn().Str("client", web.ClientAddr(r)).Msg("login throttled")
		h.renderLogin(w, http.StatusTooManyRequests, msgThrottled, username)
		return
	}

	a, err := h.service.Login(r.Context(), username, r.PostFormValue("password"))
	if errors.Is(err, ErrInvalidCredentials) {
		h.metrics.RecordLogin(metrics.LoginFailure)
		h.log.Info().Str("client", web.ClientAddr(r)).Msg("login rejected")
		h.renderLogin(w, http.StatusUnauthorized, msgBadCredentials, username)
		return
	}
	if err != nil {
		h.log.Error().Err(err).Msg("failed to look up admin")
		web.ServerError(w, h.render, false)
		return
	}

	remember := r.PostFormValue("remember") != ""
	token, sess, err := h.sessions.Start(r.Context(), a.Id, remember)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to start session")
		web.ServerError(w, h.render, false)
		return
	}

	http.SetCookie(w, h.sessionCookie(token, sess))
	h.metrics.RecordLogin(metrics.LoginSuccess)
	h.log.Info().Int("admin", a.Id).Bool("remember", remember).Msg("admin logged in")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AdminHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if ctx, err := utils.Authenticated(r, h.sessions); err == nil {
		h.log.Info().
			Str(logging.ID, utils.GetSessionID(ctx)).
			Int("admin", utils.GetAdminID(ctx)).
			Msg("admin logged out")
	}

	if token := utils.SessionToken(r); token != "" {
		if err := h.sessions.End(r.Context(), token); err != nil {
			h.log.Error().Err(err).Msg("failed to end session")
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     utils.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, LoginPath, http.StatusSeeOther)
}

func (h *AdminHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	id := utils.GetAdminID(r.Context())

	err := h.service.ChangePassword(r.Context(), id, r.PostFormValue("current_password"), r.PostFormValue("new_password"))
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		h.renderHome(w, http.StatusBadRequest, msgWrongPassword, "")
		return
	case errors.Is(err, utils.ErrValidation):
		h.renderHome(w, http.StatusBadRequest, utils.ValidationMessage(err), "")
		return
	case err != nil:
		h.log.Error().Err(err).Int("admin", id).Msg("failed to change password")
		web.ServerError(w, h.render, true)
		return
	}

	h.log.Info().
		Int("admin", id).
		Str(logging.ID, utils.GetSessionID(r.Context())).
		Msg("admin password changed")
	h.renderHome(w, http.StatusOK, "", "Password updated.")
}

func (h *AdminHandler) sessionCookie(token string, sess *session.Session) *http.Cookie {
	c := &http.Cookie{
		Name:     utils.SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
	// without remember the cookie dies with the browser session
	if sess.Remember {
		c.Expires = sess.ExpiresAt
		c.MaxAge = int(sess.ExpiresAt.Sub(sess.CreatedAt) / time.Second)
	}
	return c
}

func (h *AdminHandler) renderLogin(w http.ResponseWriter, status int, msg, username string) {
	h.render.Render(w, status, "login", web.Page{
		Title: "Admin Login",
		Error: msg,
		Data:  LoginView{Username: username},
	})
}

func (h *AdminHandler) renderHome(w http.ResponseWriter, status int, msg, notice string) {
	h.render.Render(w, status, "home", web.Page{
		Title:  "Home",
		Nav:    true,
		Error:  msg,
		Notice: notice,
	})
}
