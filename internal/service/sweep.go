package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"tablebot/internal/repository"
)

// SweepService evicts idle sessions in the background so abandoned
// conversations do not pin memory or block a fresh greeting
type SweepService struct {
	sessions repository.SessionStore
	interval time.Duration
	logger   *zap.Logger
}

// NewSweepService creates the sweeper. interval controls how often idle
// sessions are collected.
func NewSweepService(sessions repository.SessionStore, interval time.Duration, logger *zap.Logger) *SweepService {
	return &SweepService{sessions: sessions, interval: interval, logger: logger}
}

// Run sweeps on a ticker until the context is cancelled
func (s *SweepService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("session sweeper started", zap.Duration("interval", s.interval))
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("session sweeper stopped")
			return
		case now := <-ticker.C:
			s.RunOnce(now)
		}
	}
}

// RunOnce performs a single sweep pass
func (s *SweepService) RunOnce(now time.Time) {
	removed, err := s.sessions.Sweep(now)
	if err != nil {
		s.logger.Error("session sweep failed", zap.Error(err))
		return
	}
	if removed > 0 {
		s.logger.Info("swept idle sessions", zap.Int("removed", removed))
	}
}
