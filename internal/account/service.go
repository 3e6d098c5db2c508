// AngelaMos | 2026
// service.go

package account

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/school-opinions/internal/auth"
	"github.com/carterperez-dev/school-opinions/internal/core"
)

const tracerName = "account"

type Service struct {
	repo Repository
	hash func(password string) (string, error)
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		hash: core.HashPassword,
	}
}

func (s *Service) List(
	ctx context.Context,
	params ListAccountsParams,
) ([]Account, error) {
	return s.repo.List(ctx, params)
}

func (s *Service) Get(ctx context.Context, id int64) (*Account, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *Service) Create(
	ctx context.Context,
	req CreateAccountRequest,
) (_ *Account, err error) {
	ctx, span := core.StartSpan(ctx, tracerName, "account.Create",
		attribute.String("account.role", req.Role),
	)
	defer func() { core.EndSpan(span, err) }()

	passwordHash, err := s.hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	a := &Account{
		Username:     req.Username,
		PasswordHash: passwordHash,
		Name:         req.Name,
		Surname:      req.Surname,
		Document:     req.Document,
		Role:         req.Role,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

// Update overwrites every field of the account. The stored password hash is
// kept when no new password is given.
func (s *Service) Update(
	ctx context.Context,
	req UpdateAccountRequest,
) (_ *Account, err error) {
	ctx, span := core.StartSpan(ctx, tracerName, "account.Update",
		attribute.Int64("account.id", req.ID),
	)
	defer func() { core.EndSpan(span, err) }()

	a, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	a.Username = req.Username
	a.Name = req.Name
	a.Surname = req.Surname
	a.Document = req.Document
	a.Role = req.Role

	if req.Password != "" {
		passwordHash, err := s.hash(req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		a.PasswordHash = passwordHash
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

func (s *Service) Delete(ctx context.Context, id int64) (err error) {
	ctx, span := core.StartSpan(ctx, tracerName, "account.Delete",
		attribute.Int64("account.id", id),
	)
	defer func() { core.EndSpan(span, err) }()

	return s.repo.Delete(ctx, id)
}

func (s *Service) GetCredential(
	ctx context.Context,
	username string,
) (*auth.Credential, error) {
	a, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	return &auth.Credential{
		AccountID:    a.ID,
		Username:     a.Username,
		PasswordHash: a.PasswordHash,
		IsAdmin:      a.IsAdmin(),
	}, nil
}

func (s *Service) UpdatePassword(
	ctx context.Context,
	accountID int64,
	passwordHash string,
) error {
	return s.repo.UpdatePassword(ctx, accountID, passwordHash)
}
