package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/bytedance/sonic"
	errorvalues "github.com/limbo/gratudiary/internal/error_values"
	"github.com/limbo/gratudiary/internal/storage"
	"github.com/limbo/gratudiary/pkg/entity"
)

// CredentialsRepository keeps every registered account in one list
// under UsersKey.
type CredentialsRepository struct {
	store storage.KVStore
	// Serializes read-modify-write of the list inside this process
	mu sync.Mutex
}

func NewCredentialsRepo(store storage.KVStore) *CredentialsRepository {
	return &CredentialsRepository{
		store: store,
	}
}

func (cr *CredentialsRepository) list(ctx context.Context) ([]entity.Credentials, error) {
	raw, err := cr.store.Get(ctx, UsersKey)
	if err != nil {
		if errors.Is(err, errorvalues.ErrKeyNotFound) {
			return []entity.Credentials{}, nil
		}
		return nil, errors.New("loading users error: " + err.Error())
	}
	var users []entity.Credentials
	if err := sonic.Unmarshal(raw, &users); err != nil {
		// Registry is never rewritten from a list that failed to decode
		return nil, errors.Join(errorvalues.ErrCorruptUsers, err)
	}
	return users, nil
}

func (cr *CredentialsRepository) Create(ctx context.Context, creds *entity.Credentials) error {
	if creds == nil {
		return errors.New("credentials are nil")
	}
	cr.mu.Lock()
	defer cr.mu.Unlock()
	users, err := cr.list(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		if u.Email == creds.Email {
			return errorvalues.ErrUserExists
		}
	}
	users = append(users, *creds)
	raw, err := sonic.Marshal(users)
	if err != nil {
		return errors.New("encoding users error: " + err.Error())
	}
	if err := cr.store.Set(ctx, UsersKey, raw); err != nil {
		return errors.New("saving users error: " + err.Error())
	}
	return nil
}

func (cr *CredentialsRepository) FindByEmail(ctx context.Context, email string) (*entity.Credentials, error) {
	users, err := cr.list(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email {
			return &users[i], nil
		}
	}
	return nil, errorvalues.ErrUserNotFound
}

func (cr *CredentialsRepository) FindByID(ctx context.Context, id string) (*entity.Credentials, error) {
	users, err := cr.list(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, errorvalues.ErrUserNotFound
}
