package session

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Sweeper periodically removes expired session records from the registry.
type Sweeper struct {
	cron  *cron.Cron
	store Store
}

func NewSweeper(store Store) *Sweeper {
	return &Sweeper{cron: cron.New(), store: store}
}

// Start registers the sweep job at the given interval and starts the
// scheduler.
func (s *Sweeper) Start(interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("sweep interval must be positive")
	}
	_, err := s.cron.AddFunc(fmt.Sprintf("@every %s", interval), s.sweep)
	if err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop halts the scheduler and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Sweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	deleted, err := s.store.DeleteExpired(ctx)
	if err != nil {
		log.Printf("[session] sweep failed: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("[session] swept %d expired sessions", deleted)
	}
}
