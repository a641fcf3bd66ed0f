package account

import "context"

type Repository interface {
	// Tx runs fn against a repository bound to one transaction.
	Tx(ctx context.Context, fn func(repo Repository) error) error
	Create(ctx context.Context, a *Account) error
	GetByUsername(ctx context.Context, username string) (*Account, error)
	Save(ctx context.Context, a *Account) error
}
