package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/gratudiary/internal/error_values"
	"github.com/limbo/gratudiary/internal/insights"
	"github.com/limbo/gratudiary/internal/repository"
	"github.com/limbo/gratudiary/internal/stats"
	"github.com/limbo/gratudiary/pkg/entity"
)

// Exports older than this are reported as due.
const BackupInterval = 7 * 24 * time.Hour

// BackupFilename names an export made at now, dated in now's location.
func BackupFilename(now time.Time) string {
	return "gratudiary_backup_" + now.Format(time.DateOnly) + ".json"
}

type JournalService struct {
	repo       repository.EntriesRepositoryI
	engine     *stats.Engine
	summarizer insights.SummaryProvider
	// Serializes read-modify-write of collections
	mu sync.Mutex
}

func NewJournalService(entriesRepo repository.EntriesRepositoryI, engine *stats.Engine, summarizer insights.SummaryProvider) *JournalService {
	if engine == nil {
		engine = stats.NewEngine(time.Local, time.Now)
	}
	if summarizer == nil {
		summarizer = insights.Unavailable{}
	}
	return &JournalService{
		repo:       entriesRepo,
		engine:     engine,
		summarizer: summarizer,
	}
}

func (js *JournalService) Entries(ctx context.Context, uid string) (entity.Entries, error) {
	entries, err := js.repo.LoadEntries(ctx, uid)
	if err != nil {
		return nil, errors.New("repository error: " + err.Error())
	}
	return entries, nil
}

func (js *JournalService) Entry(ctx context.Context, uid, id string) (*entity.JournalEntry, error) {
	entries, err := js.Entries(ctx, uid)
	if err != nil {
		return nil, err
	}
	e, ok := entries.FindByID(id)
	if !ok {
		return nil, errorvalues.ErrEntryNotFound
	}
	return e, nil
}

func (js *JournalService) TodayEntry(ctx context.Context, uid string) (*entity.JournalEntry, error) {
	entries, err := js.Entries(ctx, uid)
	if err != nil {
		return nil, err
	}
	e, ok := entries.OnDay(js.engine.Now(), js.engine.Location())
	if !ok {
		return nil, errorvalues.ErrEntryNotFound
	}
	return e, nil
}

func (js *JournalService) AddEntry(ctx context.Context, uid string, req *EntryRequest) (*entity.JournalEntry, error) {
	clean, err := cleanEntryRequest(req)
	if err != nil {
		return nil, err
	}
	entry := entity.JournalEntry{
		ID:   uuid.NewString(),
		Date: js.engine.Now(),
	}
	clean.applyTo(&entry)

	js.mu.Lock()
	defer js.mu.Unlock()
	entries, err := js.repo.LoadEntries(ctx, uid)
	if err != nil {
		return nil, errors.New("repository error: " + err.Error())
	}
	if err := js.repo.SaveEntries(ctx, uid, entries.Add(entry)); err != nil {
		return nil, errors.New("repository error: " + err.Error())
	}
	return &entry, nil
}

func (js *JournalService) UpdateEntry(ctx context.Context, uid, id string, req *EntryRequest) (*entity.JournalEntry, bool, error) {
	clean, err := cleanEntryRequest(req)
	if err != nil {
		return nil, false, err
	}

	js.mu.Lock()
	defer js.mu.Unlock()
	entries, err := js.repo.LoadEntries(ctx, uid)
	if err != nil {
		return nil, false, errors.New("repository error: " + err.Error())
	}
	existing, ok := entries.FindByID(id)
	if !ok {
		return nil, false, nil
	}
	updated := *existing
	clean.applyTo(&updated)
	entries, _ = entries.Update(updated)
	if err := js.repo.SaveEntries(ctx, uid, entries); err != nil {
		return nil, false, errors.New("repository error: " + err.Error())
	}
	return &updated, true, nil
}

func (js *JournalService) Stats(ctx context.Context, user *entity.User) (entity.UserStats, error) {
	if user == nil {
		return entity.UserStats{}, errorvalues.ErrNoSession
	}
	entries, err := js.Entries(ctx, user.ID)
	if err != nil {
		return entity.UserStats{}, err
	}
	var joined *time.Time
	if !user.JoinedAt.IsZero() {
		joined = &user.JoinedAt
	}
	return js.engine.Stats(entries, joined), nil
}

func (js *JournalService) Dashboard(ctx context.Context, uid string) (*entity.Dashboard, error) {
	entries, err := js.Entries(ctx, uid)
	if err != nil {
		return nil, err
	}
	d := js.engine.Dashboard(entries)
	return &d, nil
}

func (js *JournalService) Insights(ctx context.Context, uid string) (*entity.InsightsResult, error) {
	entries, err := js.Entries(ctx, uid)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return &entity.InsightsResult{Status: entity.InsightsEmpty}, nil
	}
	res, err := js.summarizer.Summarize(ctx, insights.Reduce(entries))
	if err != nil {
		if errors.Is(err, errorvalues.ErrInsightsUnavailable) {
			return &entity.InsightsResult{Status: entity.InsightsUnavailable}, nil
		}
		slog.Warn("insights generation failed", slog.String("uid", uid), slog.String("error", err.Error()))
		return &entity.InsightsResult{Status: entity.InsightsFailed}, nil
	}
	return &entity.InsightsResult{
		Status:   entity.InsightsOK,
		Insights: res,
	}, nil
}

func (js *JournalService) ExportBackup(ctx context.Context, uid string) (*entity.Backup, error) {
	blob, err := js.repo.ExportBackup(ctx, uid)
	if err != nil {
		if errors.Is(err, errorvalues.ErrNothingToExport) {
			return nil, err
		}
		return nil, errors.New("repository error: " + err.Error())
	}
	now := js.engine.Now()
	if err := js.repo.SetLastBackup(ctx, uid, now); err != nil {
		slog.Warn("remembering backup time failed", slog.String("uid", uid), slog.String("error", err.Error()))
	}
	return &entity.Backup{
		Filename:   BackupFilename(now),
		Data:       blob,
		ExportedAt: now,
	}, nil
}

func (js *JournalService) ImportBackup(ctx context.Context, uid string, blob []byte) (int, error) {
	js.mu.Lock()
	defer js.mu.Unlock()
	n, err := js.repo.ImportBackup(ctx, uid, blob)
	if err != nil {
		if errors.Is(err, errorvalues.ErrBackupParse) || errors.Is(err, errorvalues.ErrBackupFormat) {
			return 0, err
		}
		return 0, errors.New("repository error: " + err.Error())
	}
	return n, nil
}

func (js *JournalService) BackupStatus(ctx context.Context, uid string) (*entity.BackupStatus, error) {
	last, err := js.repo.LastBackup(ctx, uid)
	if err != nil {
		return nil, errors.New("repository error: " + err.Error())
	}
	return &entity.BackupStatus{
		LastBackup:  last,
		NeedsBackup: last == nil || js.engine.Now().Sub(*last) > BackupInterval,
	}, nil
}

func cleanEntryRequest(req *EntryRequest) (*EntryRequest, error) {
	if req == nil {
		return nil, errors.New("entry request is nil")
	}
	clean := &EntryRequest{
		WorkedWell:  trimItems(req.WorkedWell),
		MadeHappy:   trimItems(req.MadeHappy),
		GratefulFor: trimItems(req.GratefulFor),
		Mood:        req.Mood,
		MoodNote:    req.MoodNote,
	}
	if err := validateStruct(clean); err != nil {
		return nil, err
	}
	if clean.Mood > entity.LowMoodThreshold {
		clean.MoodNote = ""
	}
	return clean, nil
}

func (r *EntryRequest) applyTo(e *entity.JournalEntry) {
	e.WorkedWell = r.WorkedWell
	e.MadeHappy = r.MadeHappy
	e.GratefulFor = r.GratefulFor
	e.Mood = r.Mood
	e.MoodNote = r.MoodNote
}
