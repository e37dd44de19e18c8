package stats

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/limbo/gratudiary/pkg/entity"
)

const (
	DefaultKeywordLimit = 8
	consistencyWindow   = 30
	moodTrendSize       = 7
	reflectionsSize     = 3
	minKeywordLen       = 4
)

// Consistency is the share of a 30-day window covered by entries, in
// percent, capped at 100.
func Consistency(entries []entity.JournalEntry) int {
	if len(entries) == 0 {
		return 0
	}
	pct := int(math.Round(float64(len(entries)) / consistencyWindow * 100))
	return min(pct, 100)
}

// Keywords counts words of the "worked well" and "made happy" lists.
// Ties keep the order of first appearance.
func Keywords(entries []entity.JournalEntry, limit int) []entity.KeywordMetric {
	counts := make(map[string]int)
	order := make([]string, 0)
	add := func(phrase string) {
		for _, w := range strings.Split(phrase, " ") {
			if utf8.RuneCountInString(w) < minKeywordLen {
				continue
			}
			clean := cleanWord(w)
			if clean == "" {
				continue
			}
			if _, ok := counts[clean]; !ok {
				order = append(order, clean)
			}
			counts[clean]++
		}
	}
	for _, e := range entries {
		for _, p := range e.WorkedWell {
			add(p)
		}
		for _, p := range e.MadeHappy {
			add(p)
		}
	}
	res := make([]entity.KeywordMetric, 0, len(order))
	for _, w := range order {
		res = append(res, entity.KeywordMetric{
			Text:  w,
			Count: counts[w],
			Type:  entity.KeywordPositive,
		})
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].Count > res[j].Count
	})
	if limit > 0 && len(res) > limit {
		res = res[:limit]
	}
	return res
}

func cleanWord(w string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(w) {
		if r >= 'a' && r <= 'z' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// MoodTrend returns moods of the latest seven entries, oldest first,
// labelled with the short weekday in loc.
func MoodTrend(entries []entity.JournalEntry, loc *time.Location) []entity.MoodPoint {
	sorted := make([]entity.JournalEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	if len(sorted) > moodTrendSize {
		sorted = sorted[len(sorted)-moodTrendSize:]
	}
	res := make([]entity.MoodPoint, 0, len(sorted))
	for _, e := range sorted {
		res = append(res, entity.MoodPoint{
			Day:  e.Date.In(loc).Format("Mon"),
			Mood: e.Mood,
		})
	}
	return res
}

// MoodDistribution counts entries per mood rating. Ratings nobody used
// are left out.
func MoodDistribution(entries []entity.JournalEntry) []entity.MoodBucket {
	var dist [5]int
	for _, e := range entries {
		if e.Mood >= 1 && e.Mood <= 5 {
			dist[e.Mood-1]++
		}
	}
	res := make([]entity.MoodBucket, 0, len(dist))
	for i, n := range dist {
		if n == 0 {
			continue
		}
		res = append(res, entity.MoodBucket{
			Name:  fmt.Sprintf("Mood %d", i+1),
			Value: n,
		})
	}
	return res
}

// Reflections returns the newest low-mood entries that carry a note.
func Reflections(entries []entity.JournalEntry) []entity.JournalEntry {
	sorted := make([]entity.JournalEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	res := make([]entity.JournalEntry, 0, reflectionsSize)
	for _, e := range sorted {
		if e.Mood > entity.LowMoodThreshold || e.MoodNote == "" {
			continue
		}
		res = append(res, e)
		if len(res) == reflectionsSize {
			break
		}
	}
	return res
}
