package sessionmock

import (
	"context"
	"errors"
	"testing"

	domain "verification-platform/internal/domain/session"
)

func TestStore_Defaults(t *testing.T) {
	ctx := context.Background()
	m := &Store{}
	if err := m.Create(ctx, &domain.Session{}); err != nil {
		t.Fatalf("Create default: %v", err)
	}
	if err := m.Save(ctx, &domain.Session{}); err != nil {
		t.Fatalf("Save default: %v", err)
	}
	if err := m.Delete(ctx, "x"); err != nil {
		t.Fatalf("Delete default: %v", err)
	}
	if _, err := m.Get(ctx, "x"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Get default: want ErrNotFound, got %v", err)
	}
}

func TestMemory(t *testing.T) {
	ctx := context.Background()
	m, data := Memory()

	if err := m.Save(ctx, &domain.Session{ID: "a"}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Save before Create: want ErrNotFound, got %v", err)
	}
	if err := m.Create(ctx, &domain.Session{ID: "a", Username: "admin"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := m.Get(ctx, "a")
	if err != nil || got.Username != "admin" {
		t.Fatalf("Get: %+v %v", got, err)
	}
	got.Username = "changed"
	if data["a"].Username != "admin" {
		t.Fatalf("Get must return a copy")
	}
	if err := m.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(data) != 0 {
		t.Fatalf("Delete left %d entries", len(data))
	}
}
