package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"verification-platform/internal/domain/account"
)

type Usecase struct {
	repo account.Repository
	log  logrus.FieldLogger
	cost int
}

func NewUsecase(r account.Repository, log logrus.FieldLogger) *Usecase {
	return &Usecase{repo: r, log: log, cost: bcrypt.DefaultCost}
}

// WithCost overrides the bcrypt cost; tests use bcrypt.MinCost.
func (u *Usecase) WithCost(cost int) *Usecase {
	u.cost = cost
	return u
}

func normalizeUsername(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// Authenticate checks the credentials. Unknown users and wrong passwords
// are indistinguishable to the caller.
func (u *Usecase) Authenticate(ctx context.Context, username, password string) (*account.Account, error) {
	name := normalizeUsername(username)
	if name == "" || password == "" {
		return nil, account.ErrInvalidCredentials
	}
	a, err := u.repo.GetByUsername(ctx, name)
	if errors.Is(err, account.ErrNotFound) {
		return nil, account.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("load account: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return nil, account.ErrInvalidCredentials
	}
	return a, nil
}

// EnsureAccount creates the account when missing and rotates its hash when
// the password changed. The lookup and the write share one transaction.
func (u *Usecase) EnsureAccount(ctx context.Context, username, password string) error {
	name := normalizeUsername(username)
	if name == "" || password == "" {
		return errors.New("username and password are required")
	}

	var outcome string
	err := u.repo.Tx(ctx, func(repo account.Repository) error {
		a, err := repo.GetByUsername(ctx, name)
		switch {
		case errors.Is(err, account.ErrNotFound):
			hash, err := u.hash(password)
			if err != nil {
				return err
			}
			if err := repo.Create(ctx, &account.Account{Username: name, PasswordHash: hash}); err != nil {
				return fmt.Errorf("create account %s: %w", name, err)
			}
			outcome = "account created"
			return nil
		case err != nil:
			return fmt.Errorf("load account: %w", err)
		}

		if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) == nil {
			return nil
		}
		hash, err := u.hash(password)
		if err != nil {
			return err
		}
		a.PasswordHash = hash
		if err := repo.Save(ctx, a); err != nil {
			return fmt.Errorf("rotate password for %s: %w", name, err)
		}
		outcome = "account password rotated"
		return nil
	})
	if err != nil {
		return err
	}
	if outcome != "" {
		u.log.WithField("username", name).Info(outcome)
	}
	return nil
}

func (u *Usecase) hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), u.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}
