package journey

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rheo/rheo/internal/session"
)

// Storage keys.
const (
	KeyProgress       = "rheo_progress"
	KeyStats          = "rheo_stats"
	KeyOnboardingDone = "rheo_onboarding_done"
)

// Repo is the key-value storage the service persists into.
type Repo interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// PutAll writes every key in one atomic operation.
	PutAll(ctx context.Context, values map[string]string) error
	Delete(ctx context.Context, keys ...string) error
}

// ErrDailyClaimed is returned when today's reward was already taken.
var ErrDailyClaimed = errors.New("daily reward already claimed today")

// Option configures a Service.
type Option func(*Service)

// WithClock sets the time source used to decide the current day.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// Record is what RecordLesson did.
type Record struct {
	Outcome
	// XP credited to today's total.
	XP int
	// Saved is false when the write failed; the in-memory state is
	// still updated.
	Saved bool
}

// Service owns the learner's progress and stats for the running app.
type Service struct {
	repo   Repo
	path   Path
	logger *zap.Logger
	now    func() time.Time

	mu       sync.Mutex
	progress Progress
	stats    Stats
}

// NewService creates a Service over repo. Call Load before reading.
func NewService(repo Repo, path Path, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		repo:     repo,
		path:     path,
		logger:   logger,
		now:      time.Now,
		progress: Seed(path),
		stats:    DefaultStats(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the journey path.
func (s *Service) Path() Path {
	return s.path
}

// Load restores saved progress and stats. Missing or unreadable data
// falls back to defaults.
func (s *Service) Load(ctx context.Context) {
	progress := Seed(s.path)
	if raw, ok := s.get(ctx, KeyProgress); ok {
		saved, err := DecodeProgress([]byte(raw))
		if err != nil {
			s.logger.Warn("discarding saved progress", zap.Error(err))
		} else {
			progress = Restore(s.path, saved)
		}
	}

	stats := DefaultStats()
	if raw, ok := s.get(ctx, KeyStats); ok {
		saved, err := DecodeStats([]byte(raw))
		if err != nil {
			s.logger.Warn("discarding saved stats", zap.Error(err))
		} else {
			stats = saved
		}
	}

	s.mu.Lock()
	s.progress = progress
	s.stats = stats
	s.mu.Unlock()
}

func (s *Service) get(ctx context.Context, key string) (string, bool) {
	v, ok, err := s.repo.Get(ctx, key)
	if err != nil {
		s.logger.Warn("read failed", zap.String("key", key), zap.Error(err))
		return "", false
	}
	return v, ok
}

// Progress returns a copy of the current progress.
func (s *Service) Progress() Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress.Clone()
}

// Stats returns the current stats.
func (s *Service) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// RecordLesson applies a finished lesson to the journey. Only completed
// lessons change anything; they mark the node, unlock the next one,
// extend the day streak, credit XP and persist progress and stats
// together.
func (s *Service) RecordLesson(ctx context.Context, nodeID int, sum session.Summary) (Record, error) {
	if !sum.Completed {
		return Record{}, nil
	}

	s.mu.Lock()
	progress, out, err := Complete(s.progress, s.path, nodeID, sum.Result)
	if err != nil {
		s.mu.Unlock()
		return Record{}, err
	}
	now := s.now()
	stats := s.stats.extendStreak(now).creditXP(now, sum.TotalXP())
	s.progress = progress
	s.stats = stats
	s.mu.Unlock()

	rec := Record{Outcome: out, XP: sum.TotalXP()}
	if err := s.save(ctx, progress, stats); err != nil {
		s.logger.Error("progress not saved", zap.Int("node", nodeID), zap.Error(err))
		return rec, nil
	}
	rec.Saved = true

	s.logger.Info("lesson recorded",
		zap.Int("node", nodeID),
		zap.Int("stars", out.Stars),
		zap.Int("unlocked", out.Unlocked),
		zap.Bool("chapter_complete", out.ChapterComplete),
		zap.Int("streak", stats.Streak),
	)
	return rec, nil
}

// ClaimDaily credits the daily reward, at most once per day. Unlike
// lessons, a claim that cannot be saved is undone and reported.
func (s *Service) ClaimDaily(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if s.stats.ClaimedDaily(now) {
		return 0, ErrDailyClaimed
	}
	stats := s.stats.creditXP(now, DailyRewardXP)
	stats.LastDaily = now.Format(dayLayout)

	sb, err := EncodeStats(stats)
	if err != nil {
		return 0, err
	}
	if err := s.repo.PutAll(ctx, map[string]string{KeyStats: string(sb)}); err != nil {
		return 0, fmt.Errorf("save daily reward: %w", err)
	}
	s.stats = stats
	s.logger.Info("daily reward claimed", zap.Int("xp", DailyRewardXP))
	return DailyRewardXP, nil
}

func (s *Service) save(ctx context.Context, p Progress, st Stats) error {
	pb, err := EncodeProgress(p)
	if err != nil {
		return err
	}
	sb, err := EncodeStats(st)
	if err != nil {
		return err
	}
	return s.repo.PutAll(ctx, map[string]string{
		KeyProgress: string(pb),
		KeyStats:    string(sb),
	})
}

// Reset clears saved progress and stats. Onboarding stays done.
func (s *Service) Reset(ctx context.Context) error {
	if err := s.repo.Delete(ctx, KeyProgress, KeyStats); err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	s.mu.Lock()
	s.progress = Seed(s.path)
	s.stats = DefaultStats()
	s.mu.Unlock()
	return nil
}

// OnboardingDone reports whether the learner has finished onboarding.
func (s *Service) OnboardingDone(ctx context.Context) bool {
	v, ok := s.get(ctx, KeyOnboardingDone)
	return ok && v == "true"
}

// MarkOnboardingDone records that onboarding is finished. Failures are
// logged; onboarding will simply show again next launch.
func (s *Service) MarkOnboardingDone(ctx context.Context) {
	if err := s.repo.PutAll(ctx, map[string]string{KeyOnboardingDone: "true"}); err != nil {
		s.logger.Warn("onboarding flag not saved", zap.Error(err))
	}
}
