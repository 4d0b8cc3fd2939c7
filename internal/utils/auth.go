package utils

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Context keys to avoid collisions
type contextKey string

const (
	SessionIDKey contextKey = "sessionID"
	AdminIDKey   contextKey = "adminID"
)

// SessionCookieName is the cookie that carries the signed session token.
const SessionCookieName = "pos_session"

const tokenIssuer = "restaurant-pos"

var (
	// ErrUnauthenticated is matched by every "no live session" outcome. Any other
	// error from an Authenticator is a store failure.
	ErrUnauthenticated = errors.New("not authenticated")
	ErrInvalidToken    = fmt.Errorf("invalid token: %w", ErrUnauthenticated)
)

// --- Password Hashing ---

// HashPassword generates a bcrypt hash of the password.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword compares a bcrypt hash with a plaintext password.
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// --- Session Tokens ---

// Claims identify a server-side session. The token alone grants nothing;
// the session row it names must still exist.
type Claims struct {
	jwt.RegisteredClaims
}

type TokenSigner struct {
	secret []byte
}

func NewTokenSigner(secret string) *TokenSigner {
	return &TokenSigner{secret: []byte(secret)}
}

// Sign creates an HS256 token naming sessionID that expires with the session.
func (s *TokenSigner) Sign(sessionID string, issuedAt, expiresAt time.Time) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse verifies signature, issuer and expiry and returns the claims.
func (s *TokenSigner) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(tokenIssuer))

	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid && claims.ID != "" {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

// --- Middleware ---

// Authenticator resolves a session token to the session id and admin id it belongs to.
// A missing, forged, expired or revoked session yields an error matching ErrUnauthenticated.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (sessionID string, adminID int, err error)
}

// SessionToken returns the raw session token sent with r, or "".
func SessionToken(r *http.Request) string {
	c, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// Authenticated resolves the request's session and loads it into the returned context.
// The error matches ErrUnauthenticated when there is no live session.
func Authenticated(r *http.Request, auth Authenticator) (context.Context, error) {
	token := SessionToken(r)
	if token == "" {
		return r.Context(), ErrUnauthenticated
	}

	sessionID, adminID, err := auth.Authenticate(r.Context(), token)
	if err != nil {
		return r.Context(), err
	}

	ctx := context.WithValue(r.Context(), SessionIDKey, sessionID)
	ctx = context.WithValue(ctx, AdminIDKey, adminID)
	return ctx, nil
}

// RequireAuth redirects any request without a live session to loginPath and hands
// store failures to onError. It loads the session id and admin id into the request context.
func RequireAuth(auth Authenticator, loginPath string, onError func(http.ResponseWriter, *http.Request, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, err := Authenticated(r, auth)
			if errors.Is(err, ErrUnauthenticated) {
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}
			if err != nil {
				onError(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// --- Context Helpers ---

// GetSessionID retrieves the session id from context. Returns "" if not found.
func GetSessionID(ctx context.Context) string {
	if v, ok := ctx.Value(SessionIDKey).(string); ok {
		return v
	}
	return ""
}

// GetAdminID retrieves the admin id from context. Returns 0 if not found.
func GetAdminID(ctx context.Context) int {
	if v, ok := ctx.Value(AdminIDKey).(int); ok {
		return v
	}
	return 0
}
