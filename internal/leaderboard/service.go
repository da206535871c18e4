package leaderboard

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Service validates requests and applies them to a Store.
type Service struct {
	store  Store
	levels []Level
	now    func() time.Time
	avatar func() int
	logger *log.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLevels replaces the ranked levels. An empty list keeps the defaults.
func WithLevels(levels []Level) Option {
	return func(s *Service) {
		if len(levels) > 0 {
			s.levels = slices.Clone(levels)
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithAvatarPicker overrides how new users get an avatar.
func WithAvatarPicker(pick func() int) Option {
	return func(s *Service) { s.avatar = pick }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// NewService creates a service over store.
func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		now:    time.Now,
		avatar: func() int { return rand.Intn(AvatarCount) + 1 },
		logger: log.Default(),
	}
	WithLevels(DefaultLevels)(s)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IsRanked reports whether runs of level are accepted.
func (s *Service) IsRanked(level string) bool {
	_, ok := FindLevel(s.levels, level)
	return ok
}

// Levels returns the ranked level names in menu order.
func (s *Service) Levels() []string {
	return LevelNames(s.levels)
}

// Points scores a winning run of level with its configured multiplier.
func (s *Service) Points(completionTime float64, level string) int {
	l, ok := FindLevel(s.levels, level)
	if !ok {
		return Points(completionTime, 1.0)
	}
	return Points(completionTime, l.Multiplier)
}

// EnsureUser returns the user with the given fingerprint, creating one with a
// random avatar if needed. Every call records a session and bumps last-seen.
func (s *Service) EnsureUser(ctx context.Context, fingerprint string, info DeviceInfo) (*User, error) {
	if fingerprint == "" {
		return nil, fmt.Errorf("fingerprint: %w", ErrMissingField)
	}
	now := s.now()
	if info.Timestamp.IsZero() {
		info.Timestamp = now
	}

	u, err := s.store.UserByFingerprint(ctx, fingerprint)
	if err != nil {
		return nil, err
	}
	if u != nil {
		if err := s.store.TouchUser(ctx, u.ID, now); err != nil {
			return nil, err
		}
		u.LastSeenAt = now
	} else {
		u = &User{
			ID:              uuid.NewString(),
			FingerprintHash: fingerprint,
			AvatarID:        s.avatar(),
			CreatedAt:       now,
			LastSeenAt:      now,
		}
		if err := s.store.CreateUser(ctx, *u); err != nil {
			return nil, err
		}
		s.logger.Info("new player", "user", u.ID, "avatar", u.AvatarID)
	}

	err = s.store.AddSession(ctx, Session{
		ID:         uuid.NewString(),
		UserID:     u.ID,
		DeviceInfo: info,
		CreatedAt:  now,
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Rename sets a user's display name. The name is trimmed and must not be empty.
func (s *Service) Rename(ctx context.Context, userID, name string) (*User, error) {
	name = strings.TrimSpace(name)
	if userID == "" || name == "" {
		return nil, fmt.Errorf("user id and name: %w", ErrMissingField)
	}
	u, err := s.store.UserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("%s: %w", userID, ErrUserNotFound)
	}
	now := s.now()
	if err := s.store.RenameUser(ctx, userID, name, now); err != nil {
		return nil, err
	}
	u.Name = name
	u.LastSeenAt = now
	return u, nil
}

// Submit records a finished run. Lost runs are kept with zero points.
func (s *Service) Submit(ctx context.Context, sub Submission) (*Score, error) {
	level := strings.TrimSpace(sub.Level)
	if sub.UserID == "" || level == "" {
		return nil, fmt.Errorf("user id and level: %w", ErrMissingField)
	}
	if math.IsNaN(sub.CompletionTime) || math.IsInf(sub.CompletionTime, 0) || sub.CompletionTime < 0 {
		return nil, fmt.Errorf("%v: %w", sub.CompletionTime, ErrInvalidTime)
	}
	if !s.IsRanked(level) {
		return nil, fmt.Errorf("%q: %w", level, ErrInvalidLevel)
	}

	u, err := s.store.UserByID(ctx, sub.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("%s: %w", sub.UserID, ErrUserNotFound)
	}

	points := 0
	if sub.Won {
		points = s.Points(sub.CompletionTime, level)
	}
	score := &Score{
		ID:             uuid.NewString(),
		UserID:         sub.UserID,
		Level:          level,
		CompletionTime: sub.CompletionTime,
		Points:         points,
		Won:            sub.Won,
		CreatedAt:      s.now(),
	}
	if err := s.store.SaveScore(ctx, *score); err != nil {
		return nil, err
	}
	return score, nil
}

// Leaderboard returns one ranked page. An unknown level filter is ignored and
// the global board is returned instead.
func (s *Service) Leaderboard(ctx context.Context, q Query) (*Page, error) {
	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	if q.Level != "" && !s.IsRanked(q.Level) {
		q.Level = ""
	}

	entries, err := s.store.Scores(ctx, q)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Rank = q.Offset + i + 1
	}
	return &Page{
		Entries: entries,
		Limit:   q.Limit,
		Offset:  q.Offset,
		HasMore: len(entries) == q.Limit,
	}, nil
}

// Stats returns aggregated results for a level.
func (s *Service) Stats(ctx context.Context, level string) (*LevelStats, error) {
	if !s.IsRanked(level) {
		return nil, fmt.Errorf("%q: %w", level, ErrInvalidLevel)
	}
	return s.store.LevelStats(ctx, level)
}
