package store

import (
	"context"

	"github.com/dreamshare/dreams-backend/internal/model"
)

// Store exposes persistence operations required by services.
// Implementations live under internal/store/<driver>/ (e.g., mongo, memstore).
type Store interface {
	Users() Users
	Dreams() Dreams

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}

type Users interface {
	// Create persists a new user. Returns model.ErrConflict when the email
	// is already registered.
	Create(ctx context.Context, u *model.User) (*model.User, error)
	GetByID(ctx context.Context, userID string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
}

type Dreams interface {
	// Create inserts the dream and appends its id to the owner's dreams list
	// as a single atomic unit. Returns model.ErrNotFound when the owner does
	// not exist. On any failure neither write is visible.
	Create(ctx context.Context, d *model.Dream) (*model.Dream, error)
	GetByID(ctx context.Context, dreamID string) (*model.Dream, error)
	// ListByOwner returns the owner's dreams in the order of the owner's
	// dreams list. Returns model.ErrNotFound when the owner does not exist;
	// an owner with zero dreams yields an empty slice.
	ListByOwner(ctx context.Context, ownerID string) ([]*model.Dream, error)
	// Update persists title and description only. Creator and image are
	// immutable after creation.
	Update(ctx context.Context, d *model.Dream) (*model.Dream, error)
	// Delete removes the dream and pulls its id from the owner's dreams list
	// as a single atomic unit. Returns model.ErrNotFound when the dream is
	// already gone; the owner's list is left untouched in that case.
	Delete(ctx context.Context, dreamID, ownerID string) error
}
