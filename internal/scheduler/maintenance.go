package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/librarium/internal/config"
	"github.com/mrlokans/librarium/internal/database"
)

// MaintenanceScheduler runs periodic housekeeping on the SQLite database:
// integrity checks and query planner statistics refresh.
type MaintenanceScheduler struct {
	db     *database.Database
	config config.Maintenance

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewMaintenanceScheduler creates a new scheduler instance
func NewMaintenanceScheduler(db *database.Database, cfg config.Maintenance) *MaintenanceScheduler {
	return &MaintenanceScheduler{
		db:     db,
		config: cfg,
		cron:   cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler if maintenance is enabled
func (s *MaintenanceScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.config.Enabled {
		log.Printf("Maintenance scheduler: disabled")
		return nil
	}

	entryID, err := s.cron.AddFunc(s.config.Schedule, func() {
		s.runMaintenance()
	})
	if err != nil {
		return fmt.Errorf("failed to schedule maintenance job: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Maintenance scheduler: started with schedule '%s'", s.config.Schedule)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler
func (s *MaintenanceScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	// Stop accepting new jobs and wait for running jobs to complete
	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Maintenance scheduler: stopped")
}

// RunNow triggers an immediate maintenance pass
func (s *MaintenanceScheduler) RunNow() error {
	go s.runMaintenance()
	return nil
}

// IsRunning returns whether the scheduler is active
func (s *MaintenanceScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRunTime returns when the next maintenance pass will occur
func (s *MaintenanceScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

func (s *MaintenanceScheduler) runMaintenance() {
	log.Printf("Maintenance: starting")
	startTime := time.Now()

	var result string
	if err := s.db.DB.Raw("PRAGMA quick_check").Scan(&result).Error; err != nil {
		log.Printf("Maintenance: quick_check failed: %v", err)
		return
	}
	if result != "ok" {
		log.Printf("Maintenance: quick_check reported problems: %s", result)
		return
	}

	if err := s.db.DB.Exec("PRAGMA optimize").Error; err != nil {
		log.Printf("Maintenance: optimize failed: %v", err)
		return
	}

	log.Printf("Maintenance: completed in %v", time.Since(startTime).Round(time.Millisecond))
}
