// Package stats derives streaks and dashboard figures from a journal.
// Nothing here is persisted; every figure is recomputed from entries.
package stats

import (
	"sort"
	"time"

	"github.com/limbo/gratudiary/pkg/entity"
)

const (
	memberSinceLayout = "January 2006"
	JustJoined        = "Just now"
)

// Compute derives user stats from entries as of now. Calendar days are
// taken in now's location.
func Compute(entries []entity.JournalEntry, joinedAt *time.Time, now time.Time) entity.UserStats {
	res := entity.UserStats{
		TotalEntries: len(entries),
		MemberSince:  MemberSince(joinedAt, now.Location()),
	}
	if len(entries) == 0 {
		return res
	}
	loc := now.Location()
	days := distinctDays(entries, loc)
	today := dayNumber(now, loc)

	current := 0
	if days[0] == today || days[0] == today-1 {
		current = 1
		for i := 0; i < len(days)-1; i++ {
			if days[i]-days[i+1] != 1 {
				break
			}
			current++
		}
	}

	longest, run := 1, 1
	for i := 0; i < len(days)-1; i++ {
		if days[i]-days[i+1] == 1 {
			run++
		} else {
			run = 1
		}
		longest = max(longest, run)
	}

	res.CurrentStreak = current
	res.LongestStreak = max(longest, current)
	return res
}

func MemberSince(joinedAt *time.Time, loc *time.Location) string {
	if joinedAt == nil || joinedAt.IsZero() {
		return JustJoined
	}
	return joinedAt.In(loc).Format(memberSinceLayout)
}

// dayNumber maps the civil date of t in loc to a day count, so that
// adjacent calendar days always differ by exactly one regardless of
// DST transitions.
func dayNumber(t time.Time, loc *time.Location) int64 {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
}

// distinctDays returns the set of entry days, newest first.
func distinctDays(entries []entity.JournalEntry, loc *time.Location) []int64 {
	seen := make(map[int64]struct{}, len(entries))
	days := make([]int64, 0, len(entries))
	for _, e := range entries {
		n := dayNumber(e.Date, loc)
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		days = append(days, n)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i] > days[j]
	})
	return days
}

// Engine evaluates stats against an injected clock and location.
type Engine struct {
	loc   *time.Location
	clock func() time.Time
}

func NewEngine(loc *time.Location, clock func() time.Time) *Engine {
	if loc == nil {
		loc = time.Local
	}
	if clock == nil {
		clock = time.Now
	}
	return &Engine{
		loc:   loc,
		clock: clock,
	}
}

func (e *Engine) Now() time.Time {
	return e.clock().In(e.loc)
}

func (e *Engine) Location() *time.Location {
	return e.loc
}

func (e *Engine) Stats(entries []entity.JournalEntry, joinedAt *time.Time) entity.UserStats {
	return Compute(entries, joinedAt, e.Now())
}

func (e *Engine) Dashboard(entries []entity.JournalEntry) entity.Dashboard {
	return entity.Dashboard{
		Consistency:      Consistency(entries),
		Keywords:         Keywords(entries, DefaultKeywordLimit),
		MoodTrend:        MoodTrend(entries, e.loc),
		MoodDistribution: MoodDistribution(entries),
		Reflections:      Reflections(entries),
	}
}
