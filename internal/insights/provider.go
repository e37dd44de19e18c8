// Package insights produces short AI summaries of recent journal
// entries.
package insights

import (
	"context"
	"time"

	errorvalues "github.com/limbo/gratudiary/internal/error_values"
	"github.com/limbo/gratudiary/pkg/entity"
)

// Only the newest entries are sent to the model.
const MaxEntries = 30

type SummaryProvider interface {
	Summarize(ctx context.Context, entries []SummaryInput) (*entity.Insights, error)
}

// SummaryInput is a journal entry stripped down to what the model needs.
type SummaryInput struct {
	Date        string   `json:"dt"`
	WorkedWell  []string `json:"w"`
	MadeHappy   []string `json:"h"`
	GratefulFor []string `json:"g"`
	Mood        int      `json:"m"`
	MoodNote    string   `json:"n,omitempty"`
}

// Reduce keeps the first MaxEntries entries of the collection, which is
// stored newest first.
func Reduce(entries []entity.JournalEntry) []SummaryInput {
	n := min(len(entries), MaxEntries)
	res := make([]SummaryInput, 0, n)
	for _, e := range entries[:n] {
		res = append(res, SummaryInput{
			Date:        e.Date.UTC().Format(time.DateOnly),
			WorkedWell:  nonNil(e.WorkedWell),
			MadeHappy:   nonNil(e.MadeHappy),
			GratefulFor: nonNil(e.GratefulFor),
			Mood:        e.Mood,
			MoodNote:    e.MoodNote,
		})
	}
	return res
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// Unavailable is used when no model credential is configured.
type Unavailable struct{}

func (Unavailable) Summarize(ctx context.Context, entries []SummaryInput) (*entity.Insights, error) {
	return nil, errorvalues.ErrInsightsUnavailable
}
