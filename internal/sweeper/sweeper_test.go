package sweeper

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"collections-assign-backend/config"
	"collections-assign-backend/internal/db"
	"collections-assign-backend/internal/model"
	"collections-assign-backend/internal/store"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	gormDB, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.Migrate(gormDB))
	return store.NewGormStore(gormDB)
}

func TestSweepOnce(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.DB().Create(&model.Ticket{
		ID: "T-1", ClientID: "C-1", Segment: model.SegmentLate, State: model.StatePending,
	}).Error)

	cfg := &config.Config{}
	cfg.Sweeper.Enabled = true
	cfg.Sweeper.Interval = time.Minute

	// Only observable through logs; the point is that a sweep over real rows
	// completes without error.
	NewService(cfg, s).SweepOnce(context.Background())
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	s := newTestStore(t)
	cfg := &config.Config{}
	cfg.Sweeper.Enabled = true
	cfg.Sweeper.Interval = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		NewService(cfg, s).Run(ctx)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop on context cancel")
	}
}

func TestRun_DisabledReturnsImmediately(t *testing.T) {
	s := newTestStore(t)
	cfg := &config.Config{}
	cfg.Sweeper.Enabled = false

	done := make(chan struct{})
	go func() {
		NewService(cfg, s).Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("disabled sweeper should not loop")
	}
}
