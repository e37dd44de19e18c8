package repository

import (
	"context"
	"time"

	"github.com/limbo/gratudiary/pkg/entity"
)

// Storage keys. Values are JSON documents replaced as a whole on write.
const (
	UsersKey             = "gratuDiary_users"
	EntriesKeyPrefix     = "gratuDiary_entries_"
	LastBackupKeyPrefix  = "gratuDiary_lastBackup_"
	CurrentUserKey       = "gratuDiary_currentUser"
	currentUserKeyPrefix = CurrentUserKey + "_"
)

type CredentialsRepositoryI interface {
	// Appends credentials to the registry. Email must be unique
	Create(ctx context.Context, creds *entity.Credentials) error
	// Looks up credentials by email. Can be used for login
	FindByEmail(ctx context.Context, email string) (*entity.Credentials, error)
	// Looks up credentials by user id. Can be used for authorization middleware
	FindByID(ctx context.Context, id string) (*entity.Credentials, error)
}

type EntriesRepositoryI interface {
	// Returns user's collection. Missing or unreadable collection is empty
	LoadEntries(ctx context.Context, uid string) (entity.Entries, error)
	// Replaces user's whole collection
	SaveEntries(ctx context.Context, uid string, entries entity.Entries) error
	// Returns stored collection as is
	ExportBackup(ctx context.Context, uid string) ([]byte, error)
	// Validates blob and replaces user's collection with it. Returns count of imported entries
	ImportBackup(ctx context.Context, uid string, blob []byte) (int, error)
	// Returns time of last export or nil if there was none
	LastBackup(ctx context.Context, uid string) (*time.Time, error)
	SetLastBackup(ctx context.Context, uid string, t time.Time) error
}

func entriesKey(uid string) string {
	return EntriesKeyPrefix + uid
}

func lastBackupKey(uid string) string {
	return LastBackupKeyPrefix + uid
}

// SessionKey addresses the current-user slot. Empty scope is the
// single process-wide slot.
func SessionKey(scope string) string {
	if scope == "" {
		return CurrentUserKey
	}
	return currentUserKeyPrefix + scope
}
