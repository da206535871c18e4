// Package leaderboard records players and their level completions.
// The game core only hands it finished runs; persistence is behind Store.
package leaderboard

import (
	"context"
	"errors"
	"time"
)

// Validation errors returned by Service.
var (
	ErrMissingField = errors.New("leaderboard: required field missing")
	ErrInvalidLevel = errors.New("leaderboard: invalid level name")
	ErrInvalidTime  = errors.New("leaderboard: completion time must be a non-negative number")
	ErrUserNotFound = errors.New("leaderboard: user not found")
)

// DefaultLimit is the page size used when a query does not set one.
const DefaultLimit = 50

// AvatarCount is the number of selectable avatars, numbered from 1.
const AvatarCount = 8

// User is a player identified by a device fingerprint.
type User struct {
	ID              string
	FingerprintHash string
	AvatarID        int
	Name            string // empty until the player picks one
	CreatedAt       time.Time
	LastSeenAt      time.Time
}

// DisplayName returns the player's name or a placeholder.
func (u User) DisplayName() string {
	if u.Name == "" {
		return "Anonymous"
	}
	return u.Name
}

// DeviceInfo describes the client a session came from. Stored as JSON.
type DeviceInfo struct {
	Client    string    `json:"client"`
	Remote    string    `json:"remote,omitempty"`
	Term      string    `json:"term,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is one visit by a user.
type Session struct {
	ID         string
	UserID     string
	DeviceInfo DeviceInfo
	CreatedAt  time.Time
}

// Score is one recorded run.
type Score struct {
	ID             string
	UserID         string
	Level          string
	CompletionTime float64 // seconds
	Points         int
	Won            bool
	CreatedAt      time.Time
}

// Entry is a ranked score joined with its player.
type Entry struct {
	Rank int
	Score
	AvatarID int
	UserName string
}

// DisplayName returns the player's name or a placeholder.
func (e Entry) DisplayName() string {
	return User{Name: e.UserName}.DisplayName()
}

// Query selects a leaderboard page. An empty Level means all levels.
type Query struct {
	Level  string
	Limit  int
	Offset int
}

// Page is one slice of the leaderboard.
type Page struct {
	Entries []Entry
	Limit   int
	Offset  int
	HasMore bool
}

// Submission is a finished run reported by a game client.
type Submission struct {
	UserID         string
	Level          string
	CompletionTime float64
	Won            bool
}

// LevelStats aggregates the recorded runs of one level.
type LevelStats struct {
	Level      string
	Runs       int
	Wins       int
	BestPoints int
	BestTime   float64 // fastest winning time, 0 when nobody won
	LastPlayed time.Time
}

// Store persists users, sessions and scores.
// Lookups return (nil, nil) when nothing matches.
type Store interface {
	UserByFingerprint(ctx context.Context, hash string) (*User, error)
	UserByID(ctx context.Context, id string) (*User, error)
	CreateUser(ctx context.Context, u User) error
	TouchUser(ctx context.Context, id string, at time.Time) error
	RenameUser(ctx context.Context, id, name string, at time.Time) error
	AddSession(ctx context.Context, s Session) error
	SaveScore(ctx context.Context, s Score) error
	// Scores returns entries ordered by points desc, completion time asc.
	// Rank is left unset.
	Scores(ctx context.Context, q Query) ([]Entry, error)
	LevelStats(ctx context.Context, level string) (*LevelStats, error)
}
