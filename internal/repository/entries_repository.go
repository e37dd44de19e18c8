package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/bytedance/sonic"
	errorvalues "github.com/limbo/gratudiary/internal/error_values"
	"github.com/limbo/gratudiary/internal/storage"
	"github.com/limbo/gratudiary/pkg/entity"
)

type EntriesRepository struct {
	store storage.KVStore
}

func NewEntriesRepo(store storage.KVStore) *EntriesRepository {
	return &EntriesRepository{
		store: store,
	}
}

func (er *EntriesRepository) LoadEntries(ctx context.Context, uid string) (entity.Entries, error) {
	raw, err := er.store.Get(ctx, entriesKey(uid))
	if err != nil {
		if errors.Is(err, errorvalues.ErrKeyNotFound) {
			return entity.Entries{}, nil
		}
		return nil, errors.New("loading entries error: " + err.Error())
	}
	var entries entity.Entries
	if err := sonic.Unmarshal(raw, &entries); err != nil {
		slog.Warn("stored entries are unreadable, treating as empty",
			slog.String("uid", uid),
			slog.String("error", err.Error()))
		return entity.Entries{}, nil
	}
	if entries == nil {
		entries = entity.Entries{}
	}
	return entries, nil
}

func (er *EntriesRepository) SaveEntries(ctx context.Context, uid string, entries entity.Entries) error {
	if entries == nil {
		entries = entity.Entries{}
	}
	raw, err := sonic.Marshal(entries)
	if err != nil {
		return errors.New("encoding entries error: " + err.Error())
	}
	if err := er.store.Set(ctx, entriesKey(uid), raw); err != nil {
		return errors.New("saving entries error: " + err.Error())
	}
	return nil
}

func (er *EntriesRepository) ExportBackup(ctx context.Context, uid string) ([]byte, error) {
	raw, err := er.store.Get(ctx, entriesKey(uid))
	if err != nil {
		if errors.Is(err, errorvalues.ErrKeyNotFound) {
			return nil, errorvalues.ErrNothingToExport
		}
		return nil, errors.New("exporting entries error: " + err.Error())
	}
	return raw, nil
}

func (er *EntriesRepository) ImportBackup(ctx context.Context, uid string, blob []byte) (int, error) {
	entries, err := ParseBackup(blob)
	if err != nil {
		return 0, err
	}
	// Validated file is kept as written, fields unknown to JournalEntry included
	if err := er.store.Set(ctx, entriesKey(uid), blob); err != nil {
		return 0, errors.New("saving entries error: " + err.Error())
	}
	return len(entries), nil
}

// ParseBackup checks that blob is a JSON array of journal entries.
func ParseBackup(blob []byte) (entity.Entries, error) {
	var root any
	if err := sonic.Unmarshal(blob, &root); err != nil {
		return nil, errorvalues.ErrBackupParse
	}
	items, ok := root.([]any)
	if !ok {
		return nil, errorvalues.ErrBackupFormat
	}
	for _, item := range items {
		if _, ok := item.(map[string]any); !ok {
			return nil, errorvalues.ErrBackupFormat
		}
	}
	entries := make(entity.Entries, 0, len(items))
	if err := sonic.Unmarshal(blob, &entries); err != nil {
		return nil, errorvalues.ErrBackupFormat
	}
	return entries, nil
}

func (er *EntriesRepository) LastBackup(ctx context.Context, uid string) (*time.Time, error) {
	raw, err := er.store.Get(ctx, lastBackupKey(uid))
	if err != nil {
		if errors.Is(err, errorvalues.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, errors.New("loading last backup error: " + err.Error())
	}
	t, err := time.Parse(time.RFC3339Nano, string(raw))
	if err != nil {
		slog.Warn("stored last backup time is unreadable", slog.String("uid", uid))
		return nil, nil
	}
	return &t, nil
}

func (er *EntriesRepository) SetLastBackup(ctx context.Context, uid string, t time.Time) error {
	err := er.store.Set(ctx, lastBackupKey(uid), []byte(t.UTC().Format(time.RFC3339Nano)))
	if err != nil {
		return errors.New("saving last backup error: " + err.Error())
	}
	return nil
}
