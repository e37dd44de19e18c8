package service

import (
	"context"

	"github.com/limbo/gratudiary/pkg/entity"
)

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,notblank,max=100"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=6,maxbytes=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// EntryRequest carries the editable part of a journal entry.
type EntryRequest struct {
	WorkedWell  []string `json:"workedWell" validate:"max=3,dive,notblank,max=500"`
	MadeHappy   []string `json:"madeHappy" validate:"max=3,dive,notblank,max=500"`
	GratefulFor []string `json:"gratefulFor" validate:"max=3,dive,notblank,max=500"`
	Mood        int      `json:"mood" validate:"min=1,max=5"`
	MoodNote    string   `json:"moodNote" validate:"max=2000"`
}

// Session is the current-user slot services read and write.
type Session interface {
	Load(ctx context.Context) (*entity.User, error)
	Set(ctx context.Context, user *entity.User) error
	Clear(ctx context.Context) error
}

type UserServiceI interface {
	// Validates request, stores hashed credentials and logs the new user in
	Register(ctx context.Context, sess Session, req *RegisterRequest) (*entity.User, error)
	// Compares given credentials. If ok, puts user into session
	Login(ctx context.Context, sess Session, email, password string) (*entity.User, error)
	// Clears session only. Journal stays intact
	Logout(ctx context.Context, sess Session) error
	// Returns user held by session or errorvalues.ErrNoSession, also when the account is gone
	Current(ctx context.Context, sess Session) (*entity.User, error)
}

type JournalServiceI interface {
	Entries(ctx context.Context, uid string) (entity.Entries, error)
	Entry(ctx context.Context, uid, id string) (*entity.JournalEntry, error)
	// Returns entry written today or errorvalues.ErrEntryNotFound
	TodayEntry(ctx context.Context, uid string) (*entity.JournalEntry, error)
	AddEntry(ctx context.Context, uid string, req *EntryRequest) (*entity.JournalEntry, error)
	// Replaces contents of entry with id. Unknown id is reported with matched=false, not an error
	UpdateEntry(ctx context.Context, uid, id string, req *EntryRequest) (*entity.JournalEntry, bool, error)
	Stats(ctx context.Context, user *entity.User) (entity.UserStats, error)
	Dashboard(ctx context.Context, uid string) (*entity.Dashboard, error)
	Insights(ctx context.Context, uid string) (*entity.InsightsResult, error)
	// Returns stored collection as is, named after the export day, and remembers export time
	ExportBackup(ctx context.Context, uid string) (*entity.Backup, error)
	ImportBackup(ctx context.Context, uid string, blob []byte) (int, error)
	BackupStatus(ctx context.Context, uid string) (*entity.BackupStatus, error)
}
