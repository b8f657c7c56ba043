// Package sweeper periodically scans for late-portfolio tickets that nobody
// picked up, so stalled high-risk work surfaces in the logs and on the
// attention endpoint even when no operator is looking at the dashboard.
package sweeper

import (
	"context"
	"log"
	"time"

	"collections-assign-backend/config"
	"collections-assign-backend/internal/availability"
	"collections-assign-backend/internal/model"
	"collections-assign-backend/internal/store"
)

// Service runs the periodic attention sweep.
type Service struct {
	cfg   *config.Config
	store store.Store
}

// NewService creates a sweeper over the given store.
func NewService(cfg *config.Config, s store.Store) *Service {
	return &Service{cfg: cfg, store: s}
}

// Run loops until the context is cancelled, sweeping once per interval.
func (s *Service) Run(ctx context.Context) {
	if !s.cfg.Sweeper.Enabled {
		log.Println("attention sweeper is disabled")
		return
	}

	log.Printf("attention sweeper started, interval %s", s.cfg.Sweeper.Interval)
	ticker := time.NewTicker(s.cfg.Sweeper.Interval)
	defer ticker.Stop()

	for {
		s.SweepOnce(ctx)
		select {
		case <-ticker.C:
		case <-ctx.Done():
			log.Println("attention sweeper shutting down")
			return
		}
	}
}

// SweepOnce performs a single scan and logs any unattended late tickets.
func (s *Service) SweepOnce(ctx context.Context) {
	tickets, err := s.store.ListUnassignedBySegment(ctx, model.SegmentLate)
	if err != nil {
		log.Printf("attention sweep failed: %v", err)
		return
	}

	flagged := availability.NeedsAttention(tickets)
	if len(flagged) == 0 {
		return
	}

	ids := make([]string, len(flagged))
	for i, t := range flagged {
		ids[i] = t.ID
	}
	log.Printf("attention: %d late-portfolio tickets with no assigned agent: %v", len(ids), ids)
}
