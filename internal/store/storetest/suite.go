package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/dreamshare/dreams-backend/internal/model"
	"github.com/dreamshare/dreams-backend/internal/store"
)

// Run exercises a compliance suite against a store.Store implementation.
// Implementations should provide a clean, isolated store from makeStore.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()

	// Unique identifiers so the suite can run against a shared database.
	suffix := uuid.New().String()
	email := "owner-" + suffix + "@example.test"

	// Users
	u, err := s.Users().Create(ctx, &model.User{Name: "Owner", Email: email, PasswordHash: "hash", Image: "img"})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if u.ID == "" {
		t.Fatal("CreateUser: empty user id")
	}
	if len(u.Dreams) != 0 {
		t.Fatalf("CreateUser: dreams list must start empty, got %v", u.Dreams)
	}
	if got, err := s.Users().GetByID(ctx, u.ID); err != nil || got.Email != email {
		t.Fatalf("GetByID: got=%v err=%v", got, err)
	}
	if got, err := s.Users().GetByEmail(ctx, email); err != nil || got.ID != u.ID {
		t.Fatalf("GetByEmail: got=%v err=%v", got, err)
	}
	if got, err := s.Users().GetByEmail(ctx, "nobody-"+suffix+"@example.test"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetByEmail unknown: got=%v err=%v", got, err)
	}

	// Duplicate email must conflict.
	if _, err := s.Users().Create(ctx, &model.User{Name: "Clone", Email: email, PasswordHash: "hash"}); !errors.Is(err, model.ErrConflict) {
		t.Fatalf("duplicate email: want ErrConflict, got %v", err)
	}

	if lst, err := s.Users().List(ctx); err != nil || len(lst) == 0 {
		t.Fatalf("ListUsers: n=%d err=%v", len(lst), err)
	}

	// Dreams: create appends to the owner's list in order.
	d1, err := s.Dreams().Create(ctx, &model.Dream{Title: "Fly", Description: "I dreamed of flying", Image: "img", Creator: u.ID})
	if err != nil {
		t.Fatalf("CreateDream d1: %v", err)
	}
	d2, err := s.Dreams().Create(ctx, &model.Dream{Title: "Fall", Description: "falling slowly", Image: "img", Creator: u.ID})
	if err != nil {
		t.Fatalf("CreateDream d2: %v", err)
	}
	if _, err := s.Dreams().Create(ctx, &model.Dream{Title: "Orphan", Description: "no owner here", Creator: missingID()}); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("CreateDream missing owner: want ErrNotFound, got %v", err)
	}

	if got, err := s.Dreams().GetByID(ctx, d1.ID); err != nil || got.Title != "Fly" || got.Creator != u.ID {
		t.Fatalf("GetDream: got=%v err=%v", got, err)
	}

	CheckOwnershipInvariant(t, s, u.ID)

	lst, err := s.Dreams().ListByOwner(ctx, u.ID)
	if err != nil || len(lst) != 2 {
		t.Fatalf("ListByOwner: n=%d err=%v", len(lst), err)
	}
	if lst[0].ID != d1.ID || lst[1].ID != d2.ID {
		t.Fatalf("ListByOwner order: got %s,%s want %s,%s", lst[0].ID, lst[1].ID, d1.ID, d2.ID)
	}
	if _, err := s.Dreams().ListByOwner(ctx, missingID()); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("ListByOwner missing owner: want ErrNotFound, got %v", err)
	}

	// Update mutates title/description only.
	upd, err := s.Dreams().Update(ctx, &model.Dream{ID: d1.ID, Title: "Soar", Description: "higher and higher"})
	if err != nil || upd.Title != "Soar" || upd.Description != "higher and higher" {
		t.Fatalf("UpdateDream: got=%v err=%v", upd, err)
	}
	if upd.Creator != u.ID || upd.Image != d1.Image {
		t.Fatalf("UpdateDream must not touch creator/image: %+v", upd)
	}
	if _, err := s.Dreams().Update(ctx, &model.Dream{ID: missingID(), Title: "x", Description: "yyyyy"}); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("UpdateDream missing: want ErrNotFound, got %v", err)
	}

	// Delete removes both the dream and its index entry; a second delete is
	// NotFound and leaves the index untouched.
	if err := s.Dreams().Delete(ctx, d1.ID, u.ID); err != nil {
		t.Fatalf("DeleteDream: %v", err)
	}
	if _, err := s.Dreams().GetByID(ctx, d1.ID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetDream after delete: want ErrNotFound, got %v", err)
	}
	if err := s.Dreams().Delete(ctx, d1.ID, u.ID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("second delete: want ErrNotFound, got %v", err)
	}
	CheckOwnershipInvariant(t, s, u.ID)

	lst, err = s.Dreams().ListByOwner(ctx, u.ID)
	if err != nil || len(lst) != 1 || lst[0].ID != d2.ID {
		t.Fatalf("ListByOwner after delete: got=%v err=%v", lst, err)
	}
}

// CheckOwnershipInvariant asserts that the owner's dreams list and the dreams
// collection agree: same id set, and every listed dream names the owner as
// creator.
func CheckOwnershipInvariant(t *testing.T, s store.Store, ownerID string) {
	t.Helper()
	ctx := context.Background()

	owner, err := s.Users().GetByID(ctx, ownerID)
	if err != nil {
		t.Fatalf("invariant: load owner: %v", err)
	}
	dreams, err := s.Dreams().ListByOwner(ctx, ownerID)
	if err != nil {
		t.Fatalf("invariant: list dreams: %v", err)
	}
	if len(owner.Dreams) != len(dreams) {
		t.Fatalf("invariant: index has %d ids but %d dreams resolve", len(owner.Dreams), len(dreams))
	}
	indexed := make(map[string]bool, len(owner.Dreams))
	for _, id := range owner.Dreams {
		if indexed[id] {
			t.Fatalf("invariant: id %s appears twice in the index", id)
		}
		indexed[id] = true
	}
	for _, d := range dreams {
		if !indexed[d.ID] {
			t.Fatalf("invariant: dream %s missing from index", d.ID)
		}
		if d.Creator != ownerID {
			t.Fatalf("invariant: dream %s creator=%s want %s", d.ID, d.Creator, ownerID)
		}
	}
}

// missingID returns a well-formed id that matches no document. Hex so it
// parses as an ObjectID under the mongo driver.
func missingID() string { return "ffffffffffffffffffffffff" }
