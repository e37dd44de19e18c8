// Package session keeps the "currently logged in user" slot. The CLI
// works with the single unscoped slot, the HTTP API opens one scoped
// slot per login.
package session

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	errorvalues "github.com/limbo/gratudiary/internal/error_values"
	"github.com/limbo/gratudiary/internal/repository"
	"github.com/limbo/gratudiary/internal/storage"
	"github.com/limbo/gratudiary/pkg/entity"
)

type Manager struct {
	store storage.KVStore
	ttl   time.Duration
}

// NewManager returns a manager whose sessions live for ttl after they
// are set. Zero ttl keeps them until cleared.
func NewManager(store storage.KVStore, ttl time.Duration) *Manager {
	return &Manager{
		store: store,
		ttl:   ttl,
	}
}

// Open returns a handle to the slot named by scope. Nothing is read or
// written until the handle is used.
func (m *Manager) Open(scope string) *Session {
	return &Session{
		store: m.store,
		ttl:   m.ttl,
		scope: scope,
		key:   repository.SessionKey(scope),
	}
}

// OpenNew opens a slot under a freshly generated scope.
func (m *Manager) OpenNew() *Session {
	return m.Open(uuid.NewString())
}

// record is the stored form: the user itself plus an optional deadline.
type record struct {
	entity.User
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

type Session struct {
	store storage.KVStore
	ttl   time.Duration
	scope string
	key   string
}

func (s *Session) Scope() string {
	return s.scope
}

// Load returns the stored user or nil when there is none. A malformed
// or expired value counts as no session.
func (s *Session) Load(ctx context.Context) (*entity.User, error) {
	raw, err := s.store.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, errorvalues.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, errors.New("loading session error: " + err.Error())
	}
	var rec record
	if err := sonic.Unmarshal(raw, &rec); err != nil || rec.ID == "" {
		slog.Warn("stored session is unreadable", slog.String("scope", s.scope))
		return nil, nil
	}
	if rec.ExpiresAt != nil && !time.Now().Before(*rec.ExpiresAt) {
		if err := s.store.Delete(ctx, s.key); err != nil {
			slog.Warn("removing expired session error", slog.String("scope", s.scope), slog.String("error", err.Error()))
		}
		return nil, nil
	}
	user := rec.User
	return &user, nil
}

func (s *Session) Set(ctx context.Context, user *entity.User) error {
	if user == nil {
		return errors.New("user is nil")
	}
	rec := record{User: *user}
	if s.ttl > 0 {
		expiresAt := time.Now().Add(s.ttl).UTC()
		rec.ExpiresAt = &expiresAt
	}
	raw, err := sonic.Marshal(rec)
	if err != nil {
		return errors.New("encoding session error: " + err.Error())
	}
	if expiring, ok := s.store.(storage.ExpiringStore); ok && s.ttl > 0 {
		err = expiring.SetWithTTL(ctx, s.key, raw, s.ttl)
	} else {
		err = s.store.Set(ctx, s.key, raw)
	}
	if err != nil {
		return errors.New("saving session error: " + err.Error())
	}
	return nil
}

func (s *Session) Clear(ctx context.Context) error {
	if err := s.store.Delete(ctx, s.key); err != nil {
		return errors.New("clearing session error: " + err.Error())
	}
	return nil
}
