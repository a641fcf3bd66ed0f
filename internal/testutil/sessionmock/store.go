package sessionmock

import (
	"context"

	domain "verification-platform/internal/domain/session"
)

// Store is a function-backed mock that satisfies domain.Store.
type Store struct {
	CreateFn func(ctx context.Context, s *domain.Session) error
	GetFn    func(ctx context.Context, id string) (*domain.Session, error)
	SaveFn   func(ctx context.Context, s *domain.Session) error
	DeleteFn func(ctx context.Context, id string) error
}

var _ domain.Store = (*Store)(nil)

func (m *Store) Create(ctx context.Context, s *domain.Session) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, s)
	}
	return nil
}

// Get defaults to ErrNotFound.
func (m *Store) Get(ctx context.Context, id string) (*domain.Session, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *Store) Save(ctx context.Context, s *domain.Session) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, s)
	}
	return nil
}

func (m *Store) Delete(ctx context.Context, id string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

// Memory wires the Fn fields to a map, for tests that need state across
// calls. Sessions are stored by pointer.
func Memory() (*Store, map[string]*domain.Session) {
	data := map[string]*domain.Session{}
	return &Store{
		CreateFn: func(_ context.Context, s *domain.Session) error { data[s.ID] = s; return nil },
		GetFn: func(_ context.Context, id string) (*domain.Session, error) {
			s, ok := data[id]
			if !ok {
				return nil, domain.ErrNotFound
			}
			cp := *s
			return &cp, nil
		},
		SaveFn: func(_ context.Context, s *domain.Session) error {
			if _, ok := data[s.ID]; !ok {
				return domain.ErrNotFound
			}
			data[s.ID] = s
			return nil
		},
		DeleteFn: func(_ context.Context, id string) error {
			if _, ok := data[id]; !ok {
				return domain.ErrNotFound
			}
			delete(data, id)
			return nil
		},
	}, data
}
