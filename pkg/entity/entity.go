package entity

import (
	"time"
)

type User struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	JoinedAt time.Time `json:"joinedAt"`
}

// Credentials is the stored registration record. JoinedAt is nil for
// records written before it was tracked.
type Credentials struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"passwordHash"`
	JoinedAt     *time.Time `json:"joinedAt,omitempty"`
}

// User rebuilds the public user record, backfilling JoinedAt with now
// when the stored record has none.
func (c *Credentials) User(now time.Time) *User {
	joined := now
	if c.JoinedAt != nil {
		joined = *c.JoinedAt
	}
	return &User{
		ID:       c.ID,
		Name:     c.Name,
		Email:    c.Email,
		JoinedAt: joined,
	}
}

type UserStats struct {
	TotalEntries  int    `json:"totalEntries"`
	CurrentStreak int    `json:"currentStreak"`
	LongestStreak int    `json:"longestStreak"`
	MemberSince   string `json:"memberSince"`
}

type KeywordType string

const KeywordPositive KeywordType = "positive"

type KeywordMetric struct {
	Text  string      `json:"text"`
	Count int         `json:"count"`
	Type  KeywordType `json:"type"`
}

type MoodPoint struct {
	Day  string `json:"day"`
	Mood int    `json:"mood"`
}

type MoodBucket struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type Dashboard struct {
	Consistency      int             `json:"consistency"`
	Keywords         []KeywordMetric `json:"keywords"`
	MoodTrend        []MoodPoint     `json:"moodTrend"`
	MoodDistribution []MoodBucket    `json:"moodDistribution"`
	Reflections      []JournalEntry  `json:"reflections"`
}

type Insights struct {
	WorkedWellSummary string `json:"workedWellSummary"`
	ChallengesSummary string `json:"challengesSummary"`
}

type InsightsStatus string

const (
	InsightsOK          InsightsStatus = "ok"
	InsightsEmpty       InsightsStatus = "empty"
	InsightsUnavailable InsightsStatus = "unavailable"
	InsightsFailed      InsightsStatus = "failed"
)

type InsightsResult struct {
	Status   InsightsStatus `json:"status"`
	Insights *Insights      `json:"insights,omitempty"`
}

// Backup is one export of a journal. Data is the stored collection as is.
type Backup struct {
	Filename   string
	Data       []byte
	ExportedAt time.Time
}

type BackupStatus struct {
	LastBackup  *time.Time `json:"lastBackup,omitempty"`
	NeedsBackup bool       `json:"needsBackup"`
}
