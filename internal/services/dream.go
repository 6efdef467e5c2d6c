package services

import (
	"context"
	"fmt"

	"github.com/dreamshare/dreams-backend/internal/model"
	"github.com/dreamshare/dreams-backend/internal/store"
)

// defaultDreamImage is the placeholder every new dream starts with; the
// image is immutable after creation.
const defaultDreamImage = "https://cdn.mos.cms.futurecdn.net/aymFyPP7sSKEXJpqtfDs4R.jpg"

// DreamService handles dream CRUD. Mutations require the caller identity to
// have been resolved from a verified token already; this service only checks
// ownership, never the token itself.
type DreamService struct {
	store store.Store
}

func NewDreamService(s store.Store) *DreamService { return &DreamService{store: s} }

func (s *DreamService) Get(ctx context.Context, dreamID string) (*model.Dream, error) {
	return s.store.Dreams().GetByID(ctx, dreamID)
}

// ListByOwner returns the owner's dreams in the order of the owner's list. An owner
// with zero dreams is reported the same as a missing owner: NotFound.
func (s *DreamService) ListByOwner(ctx context.Context, ownerID string) ([]*model.Dream, error) {
	dreams, err := s.store.Dreams().ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(dreams) == 0 {
		return nil, fmt.Errorf("could not find dreams for the provided user id: %w", model.ErrNotFound)
	}
	return dreams, nil
}

// Create inserts a dream owned by ownerID and appends it to the owner's
// dreams list atomically.
func (s *DreamService) Create(ctx context.Context, ownerID, title, description string) (*model.Dream, error) {
	return s.store.Dreams().Create(ctx, &model.Dream{
		Title:       title,
		Description: description,
		Image:       defaultDreamImage,
		Creator:     ownerID,
	})
}

// Update mutates title and description. Only the owner may update.
func (s *DreamService) Update(ctx context.Context, callerID, dreamID, title, description string) (*model.Dream, error) {
	d, err := s.store.Dreams().GetByID(ctx, dreamID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(d, callerID); err != nil {
		return nil, err
	}
	d.Title = title
	d.Description = description
	return s.store.Dreams().Update(ctx, d)
}

// Delete removes the dream and its entry in the owner's list atomically. Only
// the owner may delete; a repeat delete reports NotFound.
func (s *DreamService) Delete(ctx context.Context, callerID, dreamID string) error {
	d, err := s.store.Dreams().GetByID(ctx, dreamID)
	if err != nil {
		return err
	}
	if err := requireOwner(d, callerID); err != nil {
		return err
	}
	return s.store.Dreams().Delete(ctx, d.ID, d.Creator)
}

// requireOwner is the single canonical ownership check: opaque id equality.
func requireOwner(d *model.Dream, callerID string) error {
	if d.Creator != callerID {
		return fmt.Errorf("you are not allowed to modify this dream: %w", model.ErrForbidden)
	}
	return nil
}
