package admin

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/iteranya/restaurant-pos/internal/utils"
)

// dummyHash is compared against when the username is unknown, so both
// rejection paths pay for one bcrypt comparison.
var dummyHash = sync.OnceValue(func() string {
	h, _ := utils.HashPassword("no-such-admin-password")
	return h
})

type AdminService interface {
	// EnsureSeeded creates the admin row from the given credential when the table
	// is empty. It reports whether a row was created.
	EnsureSeeded(ctx context.Context, username, password string) (bool, error)
	// Login returns the admin whose credential matches, or ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (*Admin, error)
	ChangePassword(ctx context.Context, id int, current, next string) error
}

type adminService struct {
	repo  AdminRepository
	check func(password, hash string) bool
}

func NewAdminService(repo AdminRepository) AdminService {
	return &adminService{repo: repo, check: utils.CheckPassword}
}

func (s *adminService) EnsureSeeded(ctx context.Context, username, password string) (bool, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	a := &Admin{Username: username}
	if err := a.SetPassword(password); err != nil {
		return false, err
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return false, err
	}

	return true, nil
}

func (s *adminService) Login(ctx context.Context, username, password string) (*Admin, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	a, err := s.repo.GetByUsername(ctx, username)
	if errors.Is(err, ErrAdminNotFound) {
		s.check(password, dummyHash())
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !s.check(password, a.Hash) {
		return nil, ErrInvalidCredentials
	}

	return a, nil
}

func (s *adminService) ChangePassword(ctx context.Context, id int, current, next string) error {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !a.CheckPassword(current) {
		return ErrInvalidCredentials
	}

	password, err := utils.ValidatePassword(next)
	if err != nil {
		return err
	}

	if err := a.SetPassword(password); err != nil {
		return err
	}

	return s.repo.UpdatePassword(ctx, a.Id, a.Hash)
}
