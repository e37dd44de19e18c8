package entity

import "time"

// Mood ratings at or below this value carry an optional note.
const LowMoodThreshold = 3

type JournalEntry struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	WorkedWell  []string  `json:"workedWell"`
	MadeHappy   []string  `json:"madeHappy"`
	GratefulFor []string  `json:"gratefulFor"`
	Mood        int       `json:"mood"`
	MoodNote    string    `json:"moodNote,omitempty"`
}

// Entries is a journal collection, newest first by convention.
type Entries []JournalEntry

// Add prepends e to the collection.
func (es Entries) Add(e JournalEntry) Entries {
	res := make(Entries, 0, len(es)+1)
	res = append(res, e)
	return append(res, es...)
}

// Update replaces the entry with the same ID. When nothing matches the
// collection is returned unchanged and matched is false.
func (es Entries) Update(e JournalEntry) (Entries, bool) {
	idx := -1
	for i := range es {
		if es[i].ID == e.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return es, false
	}
	res := make(Entries, len(es))
	copy(res, es)
	res[idx] = e
	return res, true
}

func (es Entries) FindByID(id string) (*JournalEntry, bool) {
	for i := range es {
		if es[i].ID == id {
			e := es[i]
			return &e, true
		}
	}
	return nil, false
}

// OnDay returns the first entry written on the calendar day of day,
// both evaluated in loc.
func (es Entries) OnDay(day time.Time, loc *time.Location) (*JournalEntry, bool) {
	y, m, d := day.In(loc).Date()
	for i := range es {
		ey, em, ed := es[i].Date.In(loc).Date()
		if ey == y && em == m && ed == d {
			e := es[i]
			return &e, true
		}
	}
	return nil, false
}
