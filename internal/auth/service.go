// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/carterperez-dev/school-opinions/internal/core"
)

const tracerName = "auth"

const (
	RoleAdmin   = "admin"
	RoleRegular = "regular"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type Credential struct {
	AccountID    int64
	Username     string
	PasswordHash string
	IsAdmin      bool
}

type CredentialProvider interface {
	GetCredential(ctx context.Context, username string) (*Credential, error)
	UpdatePassword(ctx context.Context, accountID int64, passwordHash string) error
}

type Service struct {
	provider CredentialProvider
}

func NewService(provider CredentialProvider) *Service {
	return &Service{provider: provider}
}

// Login returns the role of the account matching username and password.
// An unknown username and a wrong password produce the same error.
func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (_ string, err error) {
	ctx, span := core.StartSpan(ctx, tracerName, "auth.Login")
	defer func() {
		if errors.Is(err, ErrInvalidCredentials) {
			core.EndSpan(span, nil)
			return
		}
		core.EndSpan(span, err)
	}()

	if req.Username == "" || req.Password == "" {
		core.BurnPasswordCheck(req.Password)
		return "", ErrInvalidCredentials
	}

	cred, err := s.provider.GetCredential(ctx, req.Username)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.BurnPasswordCheck(req.Password)
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("get credential: %w", err)
	}

	valid, newHash, err := core.VerifyStoredPassword(req.Password, cred.PasswordHash)
	if err != nil {
		return "", fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		return "", ErrInvalidCredentials
	}

	if newHash != "" {
		if err := s.provider.UpdatePassword(ctx, cred.AccountID, newHash); err != nil {
			slog.WarnContext(ctx, "password rehash not persisted",
				"account_id", cred.AccountID,
				"error", err,
			)
		}
	}

	if cred.IsAdmin {
		return RoleAdmin, nil
	}
	return RoleRegular, nil
}
