package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"TickerBoard/internal/board"
)

// Searcher is the part of the board controller the refresh job drives.
type Searcher interface {
	Search(ctx context.Context, raw string) (*board.Result, error)
	LastTicker() string
}

// Scheduler manages the chart refresh cron task.
type Scheduler struct {
	Cron  *cron.Cron
	Board Searcher
	Ctx   context.Context

	mu      sync.Mutex
	entry   cron.EntryID
	enabled bool
}

// NewScheduler creates a new Scheduler. Expressions carry a leading seconds field.
func NewScheduler(ctx context.Context, b Searcher) *Scheduler {
	return &Scheduler{
		Cron:  cron.New(cron.WithSeconds()),
		Board: b,
		Ctx:   ctx,
	}
}

// Register installs the refresh task. An empty expression leaves the scheduler idle.
func (s *Scheduler) Register(refreshCron string) error {
	if refreshCron == "" {
		log.Info().Msg("chart refresh disabled")
		return nil
	}
	id, err := s.Cron.AddFunc(refreshCron, s.refreshTask)
	if err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	s.mu.Lock()
	s.entry, s.enabled = id, true
	s.mu.Unlock()
	log.Info().Str("cron", refreshCron).Msg("chart refresh registered")
	return nil
}

// Enabled reports whether a refresh task is registered.
func (s *Scheduler) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Int("entries", len(s.Cron.Entries())).Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for a running refresh to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Info().Msg("scheduler stopped")
}

// RefreshNow runs the refresh task immediately.
func (s *Scheduler) RefreshNow() {
	s.refreshTask()
}

// refreshTask re-runs the last successful search. Every run fetches again.
func (s *Scheduler) refreshTask() {
	ticker := s.Board.LastTicker()
	if ticker == "" {
		log.Debug().Msg("refresh skipped: nothing charted yet")
		return
	}
	if s.Ctx.Err() != nil {
		return
	}
	log.Info().Str("ticker", ticker).Msg("running chart refresh")
	res, err := s.Board.Search(s.Ctx, ticker)
	if err != nil {
		// the controller has already raised the notification
		log.Error().Err(err).Str("ticker", ticker).Msg("chart refresh failed")
		return
	}
	if res.Superseded {
		log.Debug().Str("ticker", ticker).Msg("refresh superseded by a newer search")
	}
}
