package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"os/user"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/llama-arcade/internal/leaderboard"
	"github.com/vovakirdan/llama-arcade/internal/platform/tui"
	"github.com/vovakirdan/llama-arcade/internal/storage"
)

// localSession is the leaderboard wiring of a local (non-SSH) run.
type localSession struct {
	store  *storage.Store
	svc    *leaderboard.Service
	outbox *leaderboard.Outbox
	user   *leaderboard.User
	logger *log.Logger
}

// fileLogger logs to ~/.llama/llama.log so output does not corrupt the
// alternate screen. It falls back to stderr.
func fileLogger() (*log.Logger, func()) {
	opts := log.Options{ReportTimestamp: true, Prefix: "llama", Level: log.GetLevel()}

	home, err := os.UserHomeDir()
	if err == nil {
		dir := filepath.Join(home, ".llama")
		if err = os.MkdirAll(dir, 0o755); err == nil {
			var f *os.File
			f, err = os.OpenFile(filepath.Join(dir, "llama.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
			if err == nil {
				return log.NewWithOptions(f, opts), func() { f.Close() }
			}
		}
	}
	return log.NewWithOptions(os.Stderr, opts), func() {}
}

// localFingerprint identifies this machine and OS account.
func localFingerprint() string {
	name := "unknown"
	if u, err := user.Current(); err == nil {
		name = u.Username
	}
	host, _ := os.Hostname()
	sum := sha256.Sum256([]byte(name + "@" + host))
	return "LOCAL:" + hex.EncodeToString(sum[:])
}

// openLocal opens the leaderboard, identifies the local player and starts the
// score outbox. When the database cannot be opened the session plays unranked.
func openLocal(logger *log.Logger) *localSession {
	s := &localSession{logger: logger}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open leaderboard database, playing unranked", "error", err)
		return s
	}
	s.store = store
	s.svc = leaderboard.NewService(store,
		leaderboard.WithLevels(rankedLevels(logger)),
		leaderboard.WithLogger(logger),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	host, _ := os.Hostname()
	u, err := s.svc.EnsureUser(ctx, localFingerprint(), leaderboard.DeviceInfo{
		Client: "terminal",
		Remote: host,
		Term:   os.Getenv("TERM"),
	})
	if err != nil {
		logger.Warn("cannot identify player, playing unranked", "error", err)
		return s
	}
	s.user = u

	s.outbox = leaderboard.NewOutbox(s.svc, leaderboard.DefaultOutboxSize, logger)
	s.outbox.Start(context.Background())

	return s
}

// reporter returns where finished runs go, or nil when playing unranked.
func (s *localSession) reporter() tui.Reporter {
	if s.outbox == nil || s.user == nil {
		return nil
	}
	return tui.NewLeaderboardReporter(s.svc, s.outbox, s.user.ID, s.logger)
}

func (s *localSession) deps() tui.SessionDeps {
	d := tui.SessionDeps{Logger: s.logger}
	if s.user != nil {
		d.Service, d.Outbox, d.User = s.svc, s.outbox, s.user
	}
	return d
}

// Close stops the outbox worker, submits what is still queued and closes the
// database.
func (s *localSession) Close() {
	if s.outbox != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		s.outbox.Close(ctx)
		cancel()
	}
	if s.store != nil {
		//nolint:errcheck // Closing on exit
		s.store.Close()
	}
}
