package mysql

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	accountDomain "verification-platform/internal/domain/account"
)

type AccountRepository struct{ db *gorm.DB }

var _ accountDomain.Repository = (*AccountRepository)(nil)

func NewAccountRepository(db *gorm.DB) *AccountRepository { return &AccountRepository{db: db} }

// Migrate creates or updates the accounts table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&accountDomain.Account{})
}

func (r *AccountRepository) Tx(ctx context.Context, fn func(repo accountDomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AccountRepository{db: tx})
	})
}

func (r *AccountRepository) Create(ctx context.Context, a *accountDomain.Account) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AccountRepository) Save(ctx context.Context, a *accountDomain.Account) error {
	return r.db.WithContext(ctx).Save(a).Error
}

// GetByUsername matches case-insensitively; usernames are stored lowercase.
func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*accountDomain.Account, error) {
	var out accountDomain.Account
	res := r.db.WithContext(ctx).
		Where("username = ?", strings.ToLower(strings.TrimSpace(username))).
		First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, accountDomain.ErrNotFound
	}
	if res.Error != nil {
		return nil, res.Error
	}
	return &out, nil
}
