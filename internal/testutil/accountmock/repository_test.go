package accountmock

import (
	"context"
	"errors"
	"testing"

	domain "verification-platform/internal/domain/account"
)

func TestRepo_Defaults(t *testing.T) {
	ctx := context.Background()
	m := &Repo{}
	if err := m.Create(ctx, &domain.Account{}); err != nil {
		t.Fatalf("Create default: want nil, got %v", err)
	}
	if err := m.Save(ctx, &domain.Account{}); err != nil {
		t.Fatalf("Save default: want nil, got %v", err)
	}
	if _, err := m.GetByUsername(ctx, "x"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GetByUsername default: want ErrNotFound, got %v", err)
	}
}

func TestRepo_UsesProvidedFuncs(t *testing.T) {
	ctx := context.Background()
	want := &domain.Account{Username: "admin"}
	boom := errors.New("boom")
	var saved *domain.Account

	m := &Repo{
		CreateFn: func(context.Context, *domain.Account) error { return boom },
		GetByUsernameFn: func(_ context.Context, username string) (*domain.Account, error) {
			if username != "admin" {
				t.Fatalf("username arg mismatch: %q", username)
			}
			return want, nil
		},
		SaveFn: func(_ context.Context, a *domain.Account) error { saved = a; return nil },
	}
	if err := m.Create(ctx, want); !errors.Is(err, boom) {
		t.Fatalf("Create: want boom, got %v", err)
	}
	got, err := m.GetByUsername(ctx, "admin")
	if err != nil || got != want {
		t.Fatalf("GetByUsername: got %v, %v", got, err)
	}
	if err := m.Save(ctx, want); err != nil || saved != want {
		t.Fatalf("Save: saved=%v err=%v", saved, err)
	}
}

func TestRepo_TxDefaultsToSelf(t *testing.T) {
	m := &Repo{}
	var got domain.Repository
	if err := m.Tx(context.Background(), func(r domain.Repository) error { got = r; return nil }); err != nil {
		t.Fatalf("Tx: %v", err)
	}
	if got != m {
		t.Fatalf("default Tx should pass the mock itself")
	}
}
