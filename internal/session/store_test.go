package session

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zappabad/poketrade/internal/logger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	logger.Discard()

	store, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "7",
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestStore_EmptyLoad(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestStore_SaveLoadClear(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	want := New(signedToken(t, time.Now().Add(time.Hour)), 7)
	require.NoError(t, store.Save(ctx, want))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, store.Clear(ctx))
	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, ErrNoSession)

	// idempotent
	require.NoError(t, store.Clear(ctx))
}

func TestStore_SaveReplaces(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, New("opaque-1", 1)))
	require.NoError(t, store.Save(ctx, New("opaque-2", 2)))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, New("opaque-2", 2), got)
}

func TestStore_ExpiredTokenDropped(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, New(signedToken(t, time.Now().Add(-time.Minute)), 7)))

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, ErrExpired)
	assert.ErrorIs(t, err, ErrNoSession)

	// the expired row is gone
	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, ErrNoSession)
	assert.NotErrorIs(t, err, ErrExpired)
}

func TestStore_RejectsEmptyToken(t *testing.T) {
	store := newTestStore(t)
	assert.Error(t, store.Save(context.Background(), New("", 3)))
}

func TestSession_ExpiresAt(t *testing.T) {
	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)

	got, ok := ExpiresAt(signedToken(t, exp))
	require.True(t, ok)
	assert.True(t, got.Equal(exp))

	_, ok = ExpiresAt("not-a-jwt")
	assert.False(t, ok)

	assert.False(t, New("not-a-jwt", 1).Expired(time.Now()), "opaque tokens are kept")
}

func TestSession_Predicates(t *testing.T) {
	var zero Session
	assert.False(t, zero.Authenticated())
	assert.False(t, zero.HasTrainer())

	s := New("tok", 4)
	assert.True(t, s.Authenticated())
	assert.True(t, s.HasTrainer())
}
