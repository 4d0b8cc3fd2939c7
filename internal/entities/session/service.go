package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iteranya/restaurant-pos/internal/utils"
)

type SessionService interface {
	// Start opens a session for adminID and returns the signed cookie token.
	Start(ctx context.Context, adminID int, remember bool) (string, *Session, error)
	// Authenticate implements utils.Authenticator.
	Authenticate(ctx context.Context, token string) (string, int, error)
	// End revokes the session named by token. Unknown or forged tokens are not an error.
	End(ctx context.Context, token string) error
	PurgeExpired(ctx context.Context) (int64, error)
}

// Lifetimes configures how long a session lives.
type Lifetimes struct {
	Default  time.Duration
	Remember time.Duration
}

type sessionService struct {
	repo   SessionRepository
	signer *utils.TokenSigner
	ttl    Lifetimes
	now    func() time.Time
}

func NewSessionService(repo SessionRepository, signer *utils.TokenSigner, ttl Lifetimes) SessionService {
	return &sessionService{repo: repo, signer: signer, ttl: ttl, now: time.Now}
}

func (s *sessionService) Start(ctx context.Context, adminID int, remember bool) (string, *Session, error) {
	now := s.now()
	lifetime := s.ttl.Default
	if remember {
		lifetime = s.ttl.Remember
	}

	sess := &Session{
		Id:        uuid.NewString(),
		AdminId:   adminID,
		Remember:  remember,
		CreatedAt: now,
		ExpiresAt: now.Add(lifetime),
	}

	if err := s.repo.Create(ctx, sess); err != nil {
		return "", nil, err
	}

	token, err := s.signer.Sign(sess.Id, sess.CreatedAt, sess.ExpiresAt)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	return token, sess, nil
}

func (s *sessionService) Authenticate(ctx context.Context, token string) (string, int, error) {
	claims, err := s.signer.Parse(token)
	if err != nil {
		return "", 0, err
	}

	sess, err := s.repo.GetByID(ctx, claims.ID)
	if err != nil {
		return "", 0, err
	}

	if sess.Expired(s.now()) {
		return "", 0, ErrSessionExpired
	}

	return sess.Id, sess.AdminId, nil
}

func (s *sessionService) End(ctx context.Context, token string) error {
	claims, err := s.signer.Parse(token)
	if err != nil {
		return nil
	}

	err = s.repo.Delete(ctx, claims.ID)
	if err != nil && !errors.Is(err, ErrSessionNotFound) {
		return err
	}
	return nil
}

func (s *sessionService) PurgeExpired(ctx context.Context) (int64, error) {
	return s.repo.DeleteExpired(ctx, s.now())
}
