package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/fan-faceoff/internal/storage"
)

// QuotaJanitor prunes stale quota days from the in-memory store on a
// nightly schedule. Day rollover itself needs no sweep (a new day is just
// a missing key), this only keeps old counters from accumulating for the
// process lifetime. Redis-backed quotas expire on their own.
type QuotaJanitor struct {
	store     *storage.MemoryQuotaStore
	logger    *logrus.Logger
	cron      *cron.Cron
	mu        sync.Mutex
	isRunning bool
}

// NewQuotaJanitor creates a janitor for the memory quota store.
func NewQuotaJanitor(store *storage.MemoryQuotaStore, logger *logrus.Logger) *QuotaJanitor {
	return &QuotaJanitor{
		store:  store,
		logger: logger,
		cron:   cron.New(),
	}
}

// Start schedules the nightly prune shortly after the UTC day boundary.
func (j *QuotaJanitor) Start() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.isRunning {
		return fmt.Errorf("quota janitor is already running")
	}

	if _, err := j.cron.AddFunc("5 0 * * *", j.prune); err != nil {
		return fmt.Errorf("failed to schedule quota janitor: %w", err)
	}

	j.cron.Start()
	j.isRunning = true
	j.logger.Info("Quota janitor started")
	return nil
}

// Stop halts the schedule and waits for a running prune to finish.
func (j *QuotaJanitor) Stop() {
	j.mu.Lock()
	defer j.mu.Unlock()

	if !j.isRunning {
		return
	}
	ctx := j.cron.Stop()
	<-ctx.Done()
	j.isRunning = false
	j.logger.Info("Quota janitor stopped")
}

func (j *QuotaJanitor) prune() {
	today := time.Now().UTC().Format("2006-01-02")
	removed := j.store.PruneBefore(today)
	j.logger.WithFields(logrus.Fields{
		"component": "quota_janitor",
		"removed":   removed,
		"before":    today,
	}).Info("Pruned stale quota records")
}
