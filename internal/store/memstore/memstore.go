// Package memstore provides an in-memory store.Store used by unit tests and
// local development. It mirrors the mongo driver's semantics, including the
// atomicity of dream create/delete against the owner's dreams list.
package memstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/dreamshare/dreams-backend/internal/model"
	"github.com/dreamshare/dreams-backend/internal/store"
)

// Store is an in-memory store.Store implementation.
//
// FaultHook, when set, runs between the two writes of an atomic dream
// create/delete. A non-nil error aborts the operation and rolls back the
// first write, simulating a mid-transaction fault.
type Store struct {
	mu     sync.RWMutex
	users  map[string]*model.User
	dreams map[string]*model.Dream
	emails map[string]string // email -> user id

	FaultHook func(op string) error
}

func New() *Store {
	return &Store{
		users:  make(map[string]*model.User),
		dreams: make(map[string]*model.Dream),
		emails: make(map[string]string),
	}
}

func (s *Store) Users() store.Users   { return &users{s: s} }
func (s *Store) Dreams() store.Dreams { return &dreams{s: s} }

func (s *Store) Ping(ctx context.Context) error { return nil }

func cloneUser(u *model.User) *model.User {
	out := *u
	out.Dreams = append([]string(nil), u.Dreams...)
	return &out
}

func cloneDream(d *model.Dream) *model.Dream {
	out := *d
	return &out
}

// --- Users ---

type users struct{ s *Store }

func (u *users) Create(ctx context.Context, m *model.User) (*model.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	if _, exists := u.s.emails[m.Email]; exists {
		return nil, fmt.Errorf("email %s already registered: %w", m.Email, model.ErrConflict)
	}
	out := cloneUser(m)
	out.ID = uuid.New().String()
	out.Dreams = []string{}
	u.s.users[out.ID] = out
	u.s.emails[out.Email] = out.ID
	return cloneUser(out), nil
}

func (u *users) GetByID(ctx context.Context, userID string) (*model.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()

	m, ok := u.s.users[userID]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", userID, model.ErrNotFound)
	}
	return cloneUser(m), nil
}

func (u *users) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()

	id, ok := u.s.emails[email]
	if !ok {
		return nil, fmt.Errorf("email %s: %w", email, model.ErrNotFound)
	}
	return cloneUser(u.s.users[id]), nil
}

func (u *users) List(ctx context.Context) ([]*model.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()

	res := make([]*model.User, 0, len(u.s.users))
	for _, m := range u.s.users {
		res = append(res, cloneUser(m))
	}
	return res, nil
}

// --- Dreams ---

type dreams struct{ s *Store }

func (d *dreams) Create(ctx context.Context, m *model.Dream) (*model.Dream, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()

	owner, ok := d.s.users[m.Creator]
	if !ok {
		return nil, fmt.Errorf("owner %s: %w", m.Creator, model.ErrNotFound)
	}

	out := cloneDream(m)
	out.ID = uuid.New().String()
	d.s.dreams[out.ID] = out

	if d.s.FaultHook != nil {
		if err := d.s.FaultHook("create"); err != nil {
			delete(d.s.dreams, out.ID)
			return nil, err
		}
	}

	owner.Dreams = append(owner.Dreams, out.ID)
	return cloneDream(out), nil
}

func (d *dreams) GetByID(ctx context.Context, dreamID string) (*model.Dream, error) {
	d.s.mu.RLock()
	defer d.s.mu.RUnlock()

	m, ok := d.s.dreams[dreamID]
	if !ok {
		return nil, fmt.Errorf("dream %s: %w", dreamID, model.ErrNotFound)
	}
	return cloneDream(m), nil
}

func (d *dreams) ListByOwner(ctx context.Context, ownerID string) ([]*model.Dream, error) {
	d.s.mu.RLock()
	defer d.s.mu.RUnlock()

	owner, ok := d.s.users[ownerID]
	if !ok {
		return nil, fmt.Errorf("owner %s: %w", ownerID, model.ErrNotFound)
	}
	res := make([]*model.Dream, 0, len(owner.Dreams))
	for _, id := range owner.Dreams {
		if m, ok := d.s.dreams[id]; ok {
			res = append(res, cloneDream(m))
		}
	}
	return res, nil
}

func (d *dreams) Update(ctx context.Context, m *model.Dream) (*model.Dream, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()

	cur, ok := d.s.dreams[m.ID]
	if !ok {
		return nil, fmt.Errorf("dream %s: %w", m.ID, model.ErrNotFound)
	}
	cur.Title = m.Title
	cur.Description = m.Description
	return cloneDream(cur), nil
}

func (d *dreams) Delete(ctx context.Context, dreamID, ownerID string) error {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()

	cur, ok := d.s.dreams[dreamID]
	if !ok {
		return fmt.Errorf("dream %s: %w", dreamID, model.ErrNotFound)
	}
	delete(d.s.dreams, dreamID)

	if d.s.FaultHook != nil {
		if err := d.s.FaultHook("delete"); err != nil {
			d.s.dreams[dreamID] = cur
			return err
		}
	}

	if owner, ok := d.s.users[ownerID]; ok {
		kept := owner.Dreams[:0]
		for _, id := range owner.Dreams {
			if id != dreamID {
				kept = append(kept, id)
			}
		}
		owner.Dreams = kept
	}
	return nil
}
