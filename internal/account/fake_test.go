// AngelaMos | 2026
// fake_test.go

package account

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/carterperez-dev/school-opinions/internal/core"
)

type fakeRepo struct {
	mu       sync.Mutex
	accounts []Account
	nextID   int64
	failWith error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{}
}

func (f *fakeRepo) Create(_ context.Context, a *Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failWith != nil {
		return fmt.Errorf("create account: %w", f.failWith)
	}
	for _, existing := range f.accounts {
		if existing.Username == a.Username {
			return fmt.Errorf("create account: %w", core.ErrDuplicateKey)
		}
	}

	f.nextID++
	a.ID = f.nextID
	a.CreatedAt = time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	a.UpdatedAt = a.CreatedAt
	f.accounts = append(f.accounts, *a)
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failWith != nil {
		return nil, fmt.Errorf("get account: %w", f.failWith)
	}
	for _, a := range f.accounts {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, fmt.Errorf("get account: %w", core.ErrNotFound)
}

func (f *fakeRepo) GetByUsername(_ context.Context, username string) (*Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failWith != nil {
		return nil, fmt.Errorf("get account by username: %w", f.failWith)
	}
	for _, a := range f.accounts {
		if a.Username == username {
			return &a, nil
		}
	}
	return nil, fmt.Errorf("get account by username: %w", core.ErrNotFound)
}

func (f *fakeRepo) Update(_ context.Context, a *Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failWith != nil {
		return fmt.Errorf("update account: %w", f.failWith)
	}
	for _, existing := range f.accounts {
		if existing.Username == a.Username && existing.ID != a.ID {
			return fmt.Errorf("update account: %w", core.ErrDuplicateKey)
		}
	}
	for i := range f.accounts {
		if f.accounts[i].ID == a.ID {
			f.accounts[i] = *a
			return nil
		}
	}
	return fmt.Errorf("update account: %w", core.ErrNotFound)
}

func (f *fakeRepo) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.accounts {
		if f.accounts[i].ID == id {
			f.accounts[i].PasswordHash = passwordHash
			return nil
		}
	}
	return fmt.Errorf("update password: %w", core.ErrNotFound)
}

func (f *fakeRepo) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failWith != nil {
		return fmt.Errorf("delete account: %w", f.failWith)
	}
	before := len(f.accounts)
	f.accounts = slices.DeleteFunc(f.accounts, func(a Account) bool {
		return a.ID == id
	})
	if len(f.accounts) == before {
		return fmt.Errorf("delete account: %w", core.ErrNotFound)
	}
	return nil
}

func (f *fakeRepo) List(_ context.Context, params ListAccountsParams) ([]Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failWith != nil {
		return nil, fmt.Errorf("list accounts: %w", f.failWith)
	}

	out := []Account{}
	search := strings.ToLower(params.Search)
	for _, a := range f.accounts {
		if params.Role != "" && a.Role != params.Role {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(
			a.Username+" "+a.Name+" "+a.Surname+" "+a.Document,
		), search) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeRepo) Count(_ context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failWith != nil {
		return 0, fmt.Errorf("count accounts: %w", f.failWith)
	}
	return len(f.accounts), nil
}

func newTestService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	svc := NewService(repo)
	svc.hash = func(password string) (string, error) {
		return "hashed:" + password, nil
	}
	return svc, repo
}

var errStoreDown = errors.New("connection refused")
