// Package storage provides SQLite-based persistence for players and scores.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/llama-arcade/internal/leaderboard"
)

// timeLayout is how timestamps are written. Reads accept any layout in timeLayouts.
const timeLayout = "2006-01-02 15:04:05.000"

var timeLayouts = []string{
	timeLayout,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
}

// Store manages the SQLite database connection for player and score persistence.
type Store struct {
	db *sql.DB
}

// Ensure Store implements leaderboard.Store
var _ leaderboard.Store = (*Store)(nil)

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// SQLite allows one writer; the outbox worker and the UI share this handle.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		PRAGMA foreign_keys = ON;

		CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			fingerprint_hash TEXT NOT NULL UNIQUE,
			avatar_id INTEGER NOT NULL DEFAULT 1,
			name TEXT,
			created_at TEXT NOT NULL,
			last_seen_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS user_sessions (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			device_info TEXT,
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_user ON user_sessions(user_id);

		CREATE TABLE IF NOT EXISTS scores (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			level_name TEXT NOT NULL,
			completion_time REAL NOT NULL,
			points INTEGER NOT NULL,
			won INTEGER NOT NULL DEFAULT 1,
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_scores_level ON scores(level_name);
		CREATE INDEX IF NOT EXISTS idx_scores_rank ON scores(points DESC, completion_time ASC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// UserByFingerprint looks up a user by device fingerprint.
// Returns nil, nil if there is none.
func (s *Store) UserByFingerprint(ctx context.Context, hash string) (*leaderboard.User, error) {
	return s.queryUser(ctx, "fingerprint_hash", hash)
}

// UserByID looks up a user by ID. Returns nil, nil if there is none.
func (s *Store) UserByID(ctx context.Context, id string) (*leaderboard.User, error) {
	return s.queryUser(ctx, "id", id)
}

func (s *Store) queryUser(ctx context.Context, column, value string) (*leaderboard.User, error) {
	var (
		u                 leaderboard.User
		name              sql.NullString
		created, lastSeen any
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, fingerprint_hash, avatar_id, name, created_at, last_seen_at
		 FROM users WHERE `+column+` = ?`,
		value,
	).Scan(&u.ID, &u.FingerprintHash, &u.AvatarID, &name, &created, &lastSeen)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query user: %w", err)
	}

	u.Name = name.String
	u.CreatedAt = parseTime(created)
	u.LastSeenAt = parseTime(lastSeen)
	return &u, nil
}

// CreateUser inserts a new user.
func (s *Store) CreateUser(ctx context.Context, u leaderboard.User) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, fingerprint_hash, avatar_id, name, created_at, last_seen_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID, u.FingerprintHash, u.AvatarID, nullString(u.Name),
		formatTime(u.CreatedAt), formatTime(u.LastSeenAt),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot create user: %w", err)
	}
	return nil
}

// TouchUser updates a user's last-seen time.
func (s *Store) TouchUser(ctx context.Context, id string, at time.Time) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE users SET last_seen_at = ? WHERE id = ?",
		formatTime(at), id,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot update user: %w", err)
	}
	return nil
}

// RenameUser sets a user's display name and last-seen time.
func (s *Store) RenameUser(ctx context.Context, id, name string, at time.Time) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE users SET name = ?, last_seen_at = ? WHERE id = ?",
		name, formatTime(at), id,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot rename user: %w", err)
	}
	return nil
}

// AddSession records a user visit.
func (s *Store) AddSession(ctx context.Context, sess leaderboard.Session) error {
	info, err := json.Marshal(sess.DeviceInfo)
	if err != nil {
		return fmt.Errorf("storage: cannot encode device info: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO user_sessions (id, user_id, device_info, created_at) VALUES (?, ?, ?, ?)",
		sess.ID, sess.UserID, string(info), formatTime(sess.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save session: %w", err)
	}
	return nil
}

// Sessions returns a user's visits, newest first.
func (s *Store) Sessions(ctx context.Context, userID string, limit int) ([]leaderboard.Session, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, device_info, created_at
		 FROM user_sessions
		 WHERE user_id = ?
		 ORDER BY created_at DESC
		 LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []leaderboard.Session
	for rows.Next() {
		var (
			sess    leaderboard.Session
			info    sql.NullString
			created any
		)
		if err := rows.Scan(&sess.ID, &sess.UserID, &info, &created); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if info.Valid {
			if err := json.Unmarshal([]byte(info.String), &sess.DeviceInfo); err != nil {
				return nil, fmt.Errorf("storage: cannot decode device info: %w", err)
			}
		}
		sess.CreatedAt = parseTime(created)
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return sessions, nil
}

// SaveScore records a finished run.
func (s *Store) SaveScore(ctx context.Context, sc leaderboard.Score) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO scores (id, user_id, level_name, completion_time, points, won, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sc.ID, sc.UserID, sc.Level, sc.CompletionTime, sc.Points, sc.Won, formatTime(sc.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save score: %w", err)
	}
	return nil
}

// Scores returns leaderboard entries ordered by points descending, then
// completion time ascending. An empty level selects every level.
func (s *Store) Scores(ctx context.Context, q leaderboard.Query) ([]leaderboard.Entry, error) {
	if q.Limit <= 0 {
		q.Limit = leaderboard.DefaultLimit
	}

	query := `SELECT s.id, s.user_id, s.level_name, s.completion_time, s.points, s.won, s.created_at,
		        u.avatar_id, u.name
		 FROM scores s
		 JOIN users u ON u.id = s.user_id`
	args := []any{}
	if q.Level != "" {
		query += " WHERE s.level_name = ?"
		args = append(args, q.Level)
	}
	query += " ORDER BY s.points DESC, s.completion_time ASC LIMIT ? OFFSET ?"
	args = append(args, q.Limit, q.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []leaderboard.Entry
	for rows.Next() {
		var (
			e       leaderboard.Entry
			name    sql.NullString
			created any
		)
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.Level, &e.CompletionTime, &e.Points, &e.Won, &created,
			&e.AvatarID, &name,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(created)
		e.UserName = name.String
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// ClearScores deletes all scores for a level, or every score when level is empty.
func (s *Store) ClearScores(ctx context.Context, level string) error {
	var err error
	if level == "" {
		_, err = s.db.ExecContext(ctx, "DELETE FROM scores")
	} else {
		_, err = s.db.ExecContext(ctx, "DELETE FROM scores WHERE level_name = ?", level)
	}
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// LevelStats retrieves aggregated statistics for a level.
func (s *Store) LevelStats(ctx context.Context, level string) (*leaderboard.LevelStats, error) {
	stats := &leaderboard.LevelStats{Level: level}

	var lastPlayed sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(won), 0),
		        COALESCE(MAX(points), 0),
		        COALESCE(MIN(CASE WHEN won THEN completion_time END), 0),
		        MAX(created_at)
		 FROM scores WHERE level_name = ?`,
		level,
	).Scan(&stats.Runs, &stats.Wins, &stats.BestPoints, &stats.BestTime, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	if lastPlayed.Valid {
		stats.LastPlayed = parseTime(lastPlayed.String)
	}

	return stats, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// parseTime handles both time.Time and string values, depending on how the
// driver decoded the column.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		for _, layout := range timeLayouts {
			if parsed, err := time.Parse(layout, v); err == nil {
				return parsed
			}
		}
	case []byte:
		return parseTime(string(v))
	}
	return time.Time{}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
