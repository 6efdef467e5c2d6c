package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamshare/dreams-backend/internal/model"
	"github.com/dreamshare/dreams-backend/internal/store/memstore"
	"github.com/dreamshare/dreams-backend/internal/store/storetest"
)

func seedUser(t *testing.T, st *memstore.Store, email string) *model.User {
	t.Helper()
	u, err := st.Users().Create(context.Background(), &model.User{
		Name: "Owner", Email: email, PasswordHash: "hash",
	})
	require.NoError(t, err)
	return u
}

func TestCreateAndGetRoundTrip(t *testing.T) {
	st := memstore.New()
	svc := NewDreamService(st)
	ctx := context.Background()
	owner := seedUser(t, st, "ana@x.com")

	created, err := svc.Create(ctx, owner.ID, "Fly", "I dreamed of flying")
	require.NoError(t, err)
	assert.Equal(t, defaultDreamImage, created.Image)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, got.Title)
	assert.Equal(t, created.Description, got.Description)
	assert.Equal(t, owner.ID, got.Creator)

	storetest.CheckOwnershipInvariant(t, st, owner.ID)
}

func TestCreate_MissingOwner(t *testing.T) {
	svc := NewDreamService(memstore.New())
	_, err := svc.Create(context.Background(), "ffffffffffffffffffffffff", "Fly", "flying")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

// An owner with zero dreams and a missing owner both read as NotFound; the
// API does not distinguish them, and this test pins that down.
func TestListByOwner_NotFoundCases(t *testing.T) {
	st := memstore.New()
	svc := NewDreamService(st)
	ctx := context.Background()
	owner := seedUser(t, st, "ana@x.com")

	_, errEmpty := svc.ListByOwner(ctx, owner.ID)
	_, errMissing := svc.ListByOwner(ctx, "ffffffffffffffffffffffff")

	assert.ErrorIs(t, errEmpty, model.ErrNotFound)
	assert.ErrorIs(t, errMissing, model.ErrNotFound)
}

func TestListByOwner_IndexOrder(t *testing.T) {
	st := memstore.New()
	svc := NewDreamService(st)
	ctx := context.Background()
	owner := seedUser(t, st, "ana@x.com")

	first, err := svc.Create(ctx, owner.ID, "First", "first dream")
	require.NoError(t, err)
	second, err := svc.Create(ctx, owner.ID, "Second", "second dream")
	require.NoError(t, err)

	dreams, err := svc.ListByOwner(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, dreams, 2)
	assert.Equal(t, first.ID, dreams[0].ID)
	assert.Equal(t, second.ID, dreams[1].ID)
}

func TestUpdate_OwnerOnly(t *testing.T) {
	st := memstore.New()
	svc := NewDreamService(st)
	ctx := context.Background()
	ana := seedUser(t, st, "ana@x.com")
	ben := seedUser(t, st, "ben@x.com")

	d, err := svc.Create(ctx, ana.ID, "Fly", "I dreamed of flying")
	require.NoError(t, err)

	_, err = svc.Update(ctx, ben.ID, d.ID, "Hijacked", "not yours")
	assert.ErrorIs(t, err, model.ErrForbidden)

	// The record is unmodified after the forbidden attempt.
	got, err := svc.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fly", got.Title)
	assert.Equal(t, "I dreamed of flying", got.Description)

	upd, err := svc.Update(ctx, ana.ID, d.ID, "Soar", "higher and higher")
	require.NoError(t, err)
	assert.Equal(t, "Soar", upd.Title)
	assert.Equal(t, ana.ID, upd.Creator)
	assert.Equal(t, d.Image, upd.Image)
}

func TestUpdate_NotFound(t *testing.T) {
	svc := NewDreamService(memstore.New())
	_, err := svc.Update(context.Background(), "caller", "ffffffffffffffffffffffff", "x", "yyyyy")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestDelete_OwnerOnly(t *testing.T) {
	st := memstore.New()
	svc := NewDreamService(st)
	ctx := context.Background()
	ana := seedUser(t, st, "ana@x.com")
	ben := seedUser(t, st, "ben@x.com")

	d, err := svc.Create(ctx, ana.ID, "Fly", "I dreamed of flying")
	require.NoError(t, err)

	err = svc.Delete(ctx, ben.ID, d.ID)
	assert.ErrorIs(t, err, model.ErrForbidden)
	_, err = svc.Get(ctx, d.ID)
	assert.NoError(t, err)
	storetest.CheckOwnershipInvariant(t, st, ana.ID)

	require.NoError(t, svc.Delete(ctx, ana.ID, d.ID))
	_, err = svc.Get(ctx, d.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
	storetest.CheckOwnershipInvariant(t, st, ana.ID)
}

// Deleting twice: the second call is NotFound, not a crash, and leaves the
// owner's dreams list unchanged.
func TestDelete_Idempotence(t *testing.T) {
	st := memstore.New()
	svc := NewDreamService(st)
	ctx := context.Background()
	ana := seedUser(t, st, "ana@x.com")

	keep, err := svc.Create(ctx, ana.ID, "Keep", "kept dream")
	require.NoError(t, err)
	d, err := svc.Create(ctx, ana.ID, "Fly", "I dreamed of flying")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, ana.ID, d.ID))

	err = svc.Delete(ctx, ana.ID, d.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)

	owner, err := st.Users().GetByID(ctx, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{keep.ID}, owner.Dreams)
	storetest.CheckOwnershipInvariant(t, st, ana.ID)
}

// A fault injected between the two writes of create/delete must never leave
// the index and the collection out of sync.
func TestAtomicity_FaultInjection(t *testing.T) {
	st := memstore.New()
	svc := NewDreamService(st)
	ctx := context.Background()
	ana := seedUser(t, st, "ana@x.com")

	boom := errors.New("boom")
	st.FaultHook = func(op string) error { return boom }

	_, err := svc.Create(ctx, ana.ID, "Fly", "I dreamed of flying")
	require.ErrorIs(t, err, boom)
	st.FaultHook = nil
	storetest.CheckOwnershipInvariant(t, st, ana.ID)

	d, err := svc.Create(ctx, ana.ID, "Fly", "I dreamed of flying")
	require.NoError(t, err)

	st.FaultHook = func(op string) error { return boom }
	require.ErrorIs(t, svc.Delete(ctx, ana.ID, d.ID), boom)
	st.FaultHook = nil
	storetest.CheckOwnershipInvariant(t, st, ana.ID)

	// The aborted delete left the dream in place; a retry succeeds.
	require.NoError(t, svc.Delete(ctx, ana.ID, d.ID))
	storetest.CheckOwnershipInvariant(t, st, ana.ID)
}
