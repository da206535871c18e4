package leaderboard

import (
	"context"
	"errors"
	"io"
	"math"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// memStore is an in-memory Store.
type memStore struct {
	mu       sync.Mutex
	users    map[string]User
	sessions []Session
	scores   []Score
	failSave error
}

func newMemStore() *memStore {
	return &memStore{users: make(map[string]User)}
}

func (m *memStore) UserByFingerprint(_ context.Context, hash string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.FingerprintHash == hash {
			return &u, nil
		}
	}
	return nil, nil
}

func (m *memStore) UserByID(_ context.Context, id string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (m *memStore) CreateUser(_ context.Context, u User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
	return nil
}

func (m *memStore) TouchUser(_ context.Context, id string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := m.users[id]
	u.LastSeenAt = at
	m.users[id] = u
	return nil
}

func (m *memStore) RenameUser(_ context.Context, id, name string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := m.users[id]
	u.Name = name
	u.LastSeenAt = at
	m.users[id] = u
	return nil
}

func (m *memStore) AddSession(_ context.Context, s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions = append(m.sessions, s)
	return nil
}

func (m *memStore) SaveScore(_ context.Context, s Score) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSave != nil {
		return m.failSave
	}
	m.scores = append(m.scores, s)
	return nil
}

func (m *memStore) Scores(_ context.Context, q Query) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Entry
	for _, s := range m.scores {
		if q.Level != "" && s.Level != q.Level {
			continue
		}
		u := m.users[s.UserID]
		out = append(out, Entry{Score: s, AvatarID: u.AvatarID, UserName: u.Name})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		return out[i].CompletionTime < out[j].CompletionTime
	})
	if q.Offset >= len(out) {
		return nil, nil
	}
	out = out[q.Offset:]
	if len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (m *memStore) LevelStats(_ context.Context, level string) (*LevelStats, error) {
	return &LevelStats{Level: level}, nil
}

func (m *memStore) savedScores() []Score {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Score(nil), m.scores...)
}

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestService(store Store) *Service {
	return NewService(store,
		WithClock(func() time.Time { return fixedNow }),
		WithAvatarPicker(func() int { return 4 }),
		WithLogger(log.New(io.Discard)),
	)
}

func TestServicePoints(t *testing.T) {
	tests := []struct {
		name  string
		time  float64
		level string
		want  int
	}{
		{"half time penalty", 50, "CRAFTER STATION", 5000},
		{"penalty floors at zero", 150, "INSPIRA TECH", 0},
		{"instant win", 0, "HACKEANDO PRODUCTOS", 15000},
		{"unknown level uses 1.0", 10, "PRACTICE", 9000},
		{"fraction floors", 12.345, "CRAFTER STATION", 8765},
	}

	svc := newTestService(newMemStore())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.Points(tt.time, tt.level))
		})
	}
}

func TestServiceDefaultLevels(t *testing.T) {
	svc := newTestService(newMemStore())
	assert.Equal(t, LevelNames(DefaultLevels), svc.Levels())
	for _, l := range DefaultLevels {
		assert.True(t, svc.IsRanked(l.Name), l.Name)
	}
	assert.False(t, svc.IsRanked("crafter station"))
	assert.False(t, svc.IsRanked(""))
}

func TestServiceConfiguredLevels(t *testing.T) {
	store := newMemStore()
	svc := NewService(store,
		WithLevels([]Level{{Name: "HI", Multiplier: 2}, {Name: "CRAFTER STATION", Multiplier: 1}}),
		WithLogger(log.New(io.Discard)),
	)
	ctx := context.Background()

	assert.Equal(t, []string{"HI", "CRAFTER STATION"}, svc.Levels())
	assert.True(t, svc.IsRanked("HI"))
	assert.False(t, svc.IsRanked("INSPIRA TECH"))

	u, err := svc.EnsureUser(ctx, "fp", DeviceInfo{})
	require.NoError(t, err)
	sc, err := svc.Submit(ctx, Submission{UserID: u.ID, Level: "HI", CompletionTime: 10, Won: true})
	require.NoError(t, err)
	assert.Equal(t, 18000, sc.Points)

	_, err = svc.Submit(ctx, Submission{UserID: u.ID, Level: "INSPIRA TECH", CompletionTime: 10, Won: true})
	assert.ErrorIs(t, err, ErrInvalidLevel)

	empty := NewService(store, WithLevels(nil))
	assert.Equal(t, LevelNames(DefaultLevels), empty.Levels())
}

func TestLevelYAML(t *testing.T) {
	var levels []Level
	require.NoError(t, yaml.Unmarshal([]byte("- HI\n- name: BYE\n  multiplier: 1.5\n- name: SO LONG\n"), &levels))
	assert.Equal(t, []Level{
		{Name: "HI", Multiplier: 1},
		{Name: "BYE", Multiplier: 1.5},
		{Name: "SO LONG", Multiplier: 1},
	}, levels)
}

func TestEnsureUserCreatesThenFetches(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)
	ctx := context.Background()

	first, err := svc.EnsureUser(ctx, "SHA256:abc", DeviceInfo{Client: "ssh"})
	require.NoError(t, err)
	assert.Equal(t, 4, first.AvatarID)
	assert.NotEmpty(t, first.ID)

	second, err := svc.EnsureUser(ctx, "SHA256:abc", DeviceInfo{Client: "terminal"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, store.users, 1)
	require.Len(t, store.sessions, 2, "each visit records a session")
	assert.Equal(t, "terminal", store.sessions[1].DeviceInfo.Client)
	assert.Equal(t, fixedNow, store.sessions[1].DeviceInfo.Timestamp)

	_, err = svc.EnsureUser(ctx, "", DeviceInfo{})
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestDefaultAvatarInRange(t *testing.T) {
	svc := NewService(newMemStore(), WithLogger(log.New(io.Discard)))
	for i := 0; i < 50; i++ {
		a := svc.avatar()
		assert.GreaterOrEqual(t, a, 1)
		assert.LessOrEqual(t, a, AvatarCount)
	}
}

func TestRename(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)
	ctx := context.Background()
	u, err := svc.EnsureUser(ctx, "fp", DeviceInfo{})
	require.NoError(t, err)

	renamed, err := svc.Rename(ctx, u.ID, "  Lola  ")
	require.NoError(t, err)
	assert.Equal(t, "Lola", renamed.Name)
	assert.Equal(t, "Lola", store.users[u.ID].Name)

	_, err = svc.Rename(ctx, u.ID, "   ")
	assert.ErrorIs(t, err, ErrMissingField)

	_, err = svc.Rename(ctx, "nobody", "Lola")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSubmitValidation(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)
	ctx := context.Background()
	u, err := svc.EnsureUser(ctx, "fp", DeviceInfo{})
	require.NoError(t, err)

	tests := []struct {
		name string
		sub  Submission
		want error
	}{
		{"missing user", Submission{Level: "CRAFTER STATION", CompletionTime: 10}, ErrMissingField},
		{"missing level", Submission{UserID: u.ID, CompletionTime: 10}, ErrMissingField},
		{"negative time", Submission{UserID: u.ID, Level: "CRAFTER STATION", CompletionTime: -1}, ErrInvalidTime},
		{"nan time", Submission{UserID: u.ID, Level: "CRAFTER STATION", CompletionTime: math.NaN()}, ErrInvalidTime},
		{"unknown level", Submission{UserID: u.ID, Level: "HI", CompletionTime: 10}, ErrInvalidLevel},
		{"unknown user", Submission{UserID: "ghost", Level: "CRAFTER STATION", CompletionTime: 10}, ErrUserNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Submit(ctx, tt.sub)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Empty(t, store.savedScores())
}

func TestSubmitPoints(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)
	ctx := context.Background()
	u, err := svc.EnsureUser(ctx, "fp", DeviceInfo{})
	require.NoError(t, err)

	won, err := svc.Submit(ctx, Submission{UserID: u.ID, Level: " CRAFTER STATION ", CompletionTime: 50, Won: true})
	require.NoError(t, err)
	assert.Equal(t, 5000, won.Points)
	assert.Equal(t, "CRAFTER STATION", won.Level)
	assert.True(t, won.Won)

	lost, err := svc.Submit(ctx, Submission{UserID: u.ID, Level: "CRAFTER STATION", CompletionTime: 5})
	require.NoError(t, err)
	assert.Equal(t, 0, lost.Points)
	assert.False(t, lost.Won)
	assert.Len(t, store.savedScores(), 2)
}

func TestLeaderboardRankingAndPaging(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)
	ctx := context.Background()
	u, err := svc.EnsureUser(ctx, "fp", DeviceInfo{})
	require.NoError(t, err)
	_, err = svc.Rename(ctx, u.ID, "Lola")
	require.NoError(t, err)

	for _, secs := range []float64{30, 10, 20, 10.5} {
		_, err := svc.Submit(ctx, Submission{UserID: u.ID, Level: "CRAFTER STATION", CompletionTime: secs, Won: true})
		require.NoError(t, err)
	}
	_, err = svc.Submit(ctx, Submission{UserID: u.ID, Level: "IA PLAYGROUNDS", CompletionTime: 99})
	require.NoError(t, err)

	page, err := svc.Leaderboard(ctx, Query{Level: "CRAFTER STATION", Limit: 2})
	require.NoError(t, err)
	require.Len(t, page.Entries, 2)
	assert.True(t, page.HasMore)
	assert.Equal(t, 1, page.Entries[0].Rank)
	assert.InDelta(t, 10.0, page.Entries[0].CompletionTime, 1e-9)
	assert.InDelta(t, 10.5, page.Entries[1].CompletionTime, 1e-9)
	assert.Equal(t, "Lola", page.Entries[0].UserName)
	assert.Equal(t, 4, page.Entries[0].AvatarID)

	next, err := svc.Leaderboard(ctx, Query{Level: "CRAFTER STATION", Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, next.Entries, 2)
	assert.Equal(t, 3, next.Entries[0].Rank)
	assert.Equal(t, 4, next.Entries[1].Rank)

	all, err := svc.Leaderboard(ctx, Query{})
	require.NoError(t, err)
	assert.Equal(t, DefaultLimit, all.Limit)
	assert.Len(t, all.Entries, 5)
	assert.False(t, all.HasMore)
	assert.Equal(t, 0, all.Entries[4].Points, "lost runs sink to the bottom")

	bogus, err := svc.Leaderboard(ctx, Query{Level: "NOPE"})
	require.NoError(t, err)
	assert.Len(t, bogus.Entries, 5, "unknown level filter falls back to global board")
}

type blockingSubmitter struct {
	release chan struct{}
	got     chan Submission
}

func (b *blockingSubmitter) Submit(_ context.Context, s Submission) (*Score, error) {
	<-b.release
	b.got <- s
	return &Score{Level: s.Level}, nil
}

func TestOutboxDropsWhenFull(t *testing.T) {
	sub := &blockingSubmitter{release: make(chan struct{}), got: make(chan Submission, 4)}
	ob := NewOutbox(sub, 2, log.New(io.Discard))

	assert.True(t, ob.Enqueue(Submission{Level: "A"}))
	assert.True(t, ob.Enqueue(Submission{Level: "B"}))
	assert.False(t, ob.Enqueue(Submission{Level: "C"}), "full outbox drops instead of blocking")
	assert.Equal(t, 2, ob.Pending())

	close(sub.release)
	ob.Flush(context.Background())
	assert.Equal(t, 0, ob.Pending())
	assert.Equal(t, "A", (<-sub.got).Level)
	assert.Equal(t, "B", (<-sub.got).Level)
}

func TestOutboxRunSubmitsAndLogsFailures(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)
	u, err := svc.EnsureUser(context.Background(), "fp", DeviceInfo{})
	require.NoError(t, err)

	ob := NewOutbox(svc, 4, log.New(io.Discard))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		ob.Run(ctx)
		close(done)
	}()

	ob.Enqueue(Submission{UserID: u.ID, Level: "HI", CompletionTime: 1, Won: true})
	ob.Enqueue(Submission{UserID: u.ID, Level: "YAVENDIO!", CompletionTime: 1, Won: true})

	assert.Eventually(t, func() bool { return len(store.savedScores()) == 1 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done
	assert.Equal(t, "YAVENDIO!", store.savedScores()[0].Level)
}

func TestSubmitStoreError(t *testing.T) {
	store := newMemStore()
	store.failSave = errors.New("disk full")
	svc := newTestService(store)
	u, err := svc.EnsureUser(context.Background(), "fp", DeviceInfo{})
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), Submission{UserID: u.ID, Level: "YAVENDIO!", CompletionTime: 1, Won: true})
	assert.EqualError(t, err, "disk full")
}

type slowSubmitter struct {
	started chan string
	release chan struct{}

	mu    sync.Mutex
	saved []string
}

func (s *slowSubmitter) Submit(ctx context.Context, sub Submission) (*Score, error) {
	s.started <- sub.Level
	<-s.release
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = append(s.saved, sub.Level)
	return &Score{Level: sub.Level}, nil
}

func (s *slowSubmitter) savedLevels() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.saved...)
}

func TestOutboxCloseWaitsForInFlightSubmission(t *testing.T) {
	sub := &slowSubmitter{started: make(chan string, 4), release: make(chan struct{})}
	ob := NewOutbox(sub, 4, log.New(io.Discard))
	ob.Start(context.Background())

	require.True(t, ob.Enqueue(Submission{Level: "A"}))
	assert.Equal(t, "A", <-sub.started)
	require.True(t, ob.Enqueue(Submission{Level: "B"}))

	closed := make(chan struct{})
	go func() {
		ob.Close(context.Background())
		close(closed)
	}()

	assert.Never(t, func() bool {
		select {
		case <-closed:
			return true
		default:
			return false
		}
	}, 50*time.Millisecond, 5*time.Millisecond, "close returned while a submission was running")

	close(sub.release)
	select {
	case <-closed:
	case <-time.After(time.Second):
		t.Fatal("close did not return")
	}
	assert.Equal(t, []string{"A", "B"}, sub.savedLevels())
	assert.Zero(t, ob.Pending())
}

func TestOutboxCloseWithoutStartFlushes(t *testing.T) {
	sub := &slowSubmitter{started: make(chan string, 1), release: make(chan struct{})}
	close(sub.release)
	ob := NewOutbox(sub, 2, log.New(io.Discard))

	ob.Enqueue(Submission{Level: "A"})
	ob.Close(context.Background())
	assert.Equal(t, []string{"A"}, sub.savedLevels())
}
