package tui

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/llama-arcade/internal/core"
	"github.com/vovakirdan/llama-arcade/internal/leaderboard"
)

// Reporter receives runs that ended during play.
type Reporter interface {
	Report(c core.Completion)
}

// LeaderboardReporter queues one player's ranked runs on a score outbox.
// Runs of levels the leaderboard does not know are practice runs and are
// only logged.
type LeaderboardReporter struct {
	svc    *leaderboard.Service
	outbox *leaderboard.Outbox
	userID string
	logger *log.Logger
}

// NewLeaderboardReporter creates a reporter for the given user.
func NewLeaderboardReporter(svc *leaderboard.Service, outbox *leaderboard.Outbox, userID string, logger *log.Logger) *LeaderboardReporter {
	if logger == nil {
		logger = log.Default()
	}
	return &LeaderboardReporter{
		svc:    svc,
		outbox: outbox,
		userID: userID,
		logger: logger,
	}
}

// Report queues c for submission. It never blocks.
func (r *LeaderboardReporter) Report(c core.Completion) {
	if r.userID == "" {
		r.logger.Warn("no player identity, run not recorded", "level", c.Level)
		return
	}
	if !r.svc.IsRanked(c.Level) {
		r.logger.Info("practice run", "level", c.Level, "time", c.ElapsedSecs, "won", c.Won)
		return
	}
	r.outbox.Enqueue(leaderboard.Submission{
		UserID:         r.userID,
		Level:          c.Level,
		CompletionTime: c.ElapsedSecs,
		Won:            c.Won,
	})
}
