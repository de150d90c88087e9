package scheduler

import (
	"sync"
	"sync/atomic"
	"time"

	"curalink-backend/internal/auth/repository"

	"go.uber.org/zap"
)

const DefaultInterval = time.Hour

// ResetTokenJanitor periodically clears password reset tokens past their deadline
type ResetTokenJanitor struct {
	userRepo repository.UserRepository
	interval time.Duration
	now      func() time.Time
	logger   *zap.Logger
	stopChan chan struct{}
	stopOnce sync.Once
	started  atomic.Bool
	done     chan struct{}
}

func NewResetTokenJanitor(userRepo repository.UserRepository, interval time.Duration, logger *zap.Logger) *ResetTokenJanitor {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResetTokenJanitor{
		userRepo: userRepo,
		interval: interval,
		now:      time.Now,
		logger:   logger.Named("reset-token-janitor"),
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start begins the scheduler loop
func (s *ResetTokenJanitor) Start() {
	if !s.started.CompareAndSwap(false, true) {
		return
	}
	s.logger.Info("starting reset token janitor", zap.Duration("interval", s.interval))

	go func() {
		defer close(s.done)
		// Run immediately on start
		s.sweep()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.sweep()
			case <-s.stopChan:
				s.logger.Info("reset token janitor stopped")
				return
			}
		}
	}()
}

// Stop stops the loop and waits for a running sweep to finish
func (s *ResetTokenJanitor) Stop() {
	s.stopOnce.Do(func() { close(s.stopChan) })
	if s.started.Load() {
		<-s.done
	}
}

func (s *ResetTokenJanitor) sweep() {
	n, err := s.userRepo.ClearExpiredResetTokens(s.now())
	if err != nil {
		s.logger.Error("failed to clear expired reset tokens", zap.Error(err))
		return
	}
	if n > 0 {
		s.logger.Info("cleared expired reset tokens", zap.Int64("count", n))
	}
}
