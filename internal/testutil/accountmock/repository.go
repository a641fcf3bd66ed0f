package accountmock

import (
	"context"

	domain "verification-platform/internal/domain/account"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	TxFn            func(ctx context.Context, fn func(repo domain.Repository) error) error
	CreateFn        func(ctx context.Context, a *domain.Account) error
	GetByUsernameFn func(ctx context.Context, username string) (*domain.Account, error)
	SaveFn          func(ctx context.Context, a *domain.Account) error
}

var _ domain.Repository = (*Repo)(nil)

// Tx defaults to running fn against m itself.
func (m *Repo) Tx(ctx context.Context, fn func(repo domain.Repository) error) error {
	if m.TxFn != nil {
		return m.TxFn(ctx, fn)
	}
	return fn(m)
}

func (m *Repo) Create(ctx context.Context, a *domain.Account) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

// GetByUsername defaults to ErrNotFound.
func (m *Repo) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	if m.GetByUsernameFn != nil {
		return m.GetByUsernameFn(ctx, username)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) Save(ctx context.Context, a *domain.Account) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, a)
	}
	return nil
}
