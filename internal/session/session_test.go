package session_test

import (
	"context"
	"testing"
	"time"

	errorvalues "github.com/limbo/gratudiary/internal/error_values"
	"github.com/limbo/gratudiary/internal/repository"
	"github.com/limbo/gratudiary/internal/session"
	"github.com/limbo/gratudiary/internal/storage"
	"github.com/limbo/gratudiary/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	m := session.NewManager(store, 0)
	sess := m.Open("")

	user, err := sess.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)

	ann := &entity.User{
		ID:       "u1",
		Name:     "Ann",
		Email:    "ann@example.com",
		JoinedAt: time.Date(2025, 1, 15, 8, 0, 0, 0, time.UTC),
	}
	require.NoError(t, sess.Set(ctx, ann))

	// Another handle on the same slot sees the user.
	user, err = m.Open("").Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, ann.ID, user.ID)
	assert.True(t, ann.JoinedAt.Equal(user.JoinedAt))

	raw, err := store.Get(ctx, repository.CurrentUserKey)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"joinedAt"`)

	require.NoError(t, sess.Clear(ctx))
	user, err = sess.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)

	// Clearing twice is fine.
	assert.NoError(t, sess.Clear(ctx))
}

func TestScopedSessionsAreIndependent(t *testing.T) {
	ctx := context.Background()
	m := session.NewManager(storage.NewMemoryStore(), 0)
	a := m.OpenNew()
	b := m.OpenNew()
	assert.NotEqual(t, a.Scope(), b.Scope())

	require.NoError(t, a.Set(ctx, &entity.User{ID: "u1"}))
	user, err := b.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)

	user, err = m.Open(a.Scope()).Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "u1", user.ID)
}

func TestMalformedSessionIsNoSession(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(ctx, repository.CurrentUserKey, []byte("not json")))
	user, err := session.NewManager(store, 0).Open("").Load(ctx)
	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestSetNilUser(t *testing.T) {
	sess := session.NewManager(storage.NewMemoryStore(), 0).Open("")
	assert.Error(t, sess.Set(context.Background(), nil))
}

// plainStore hides SetWithTTL so only the stored deadline applies.
type plainStore struct {
	storage.KVStore
}

func TestSessionExpires(t *testing.T) {
	ctx := context.Background()
	testCases := []struct {
		Desc  string
		Store storage.KVStore
	}{
		{
			Desc:  "store with ttl support",
			Store: storage.NewMemoryStore(),
		},
		{
			Desc:  "store without ttl support",
			Store: plainStore{storage.NewMemoryStore()},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			sess := session.NewManager(tc.Store, 20*time.Millisecond).OpenNew()
			require.NoError(t, sess.Set(ctx, &entity.User{ID: "u1", Name: "Ann"}))

			user, err := sess.Load(ctx)
			require.NoError(t, err)
			require.NotNil(t, user)
			assert.Equal(t, "Ann", user.Name)

			time.Sleep(50 * time.Millisecond)
			user, err = sess.Load(ctx)
			require.NoError(t, err)
			assert.Nil(t, user)

			_, err = tc.Store.Get(ctx, repository.SessionKey(sess.Scope()))
			assert.ErrorIs(t, err, errorvalues.ErrKeyNotFound)
		})
	}
}

func TestExpiredSessionsArePurged(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	m := session.NewManager(store, 20*time.Millisecond)
	for i := 0; i < 3; i++ {
		require.NoError(t, m.OpenNew().Set(ctx, &entity.User{ID: "u1"}))
	}
	assert.Equal(t, 3, store.Len())

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, m.OpenNew().Set(ctx, &entity.User{ID: "u2"}))
	assert.Equal(t, 1, store.Len())
}

func TestUnscopedSessionKeepsPlainUserRecord(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, session.NewManager(store, 0).Open("").Set(ctx, &entity.User{ID: "u1"}))
	raw, err := store.Get(ctx, repository.CurrentUserKey)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "expiresAt")
}
