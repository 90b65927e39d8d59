package services

import (
	"context"
	"time"

	"github.com/jstittsworth/fan-faceoff/internal/storage"
	"github.com/jstittsworth/fan-faceoff/pkg/metrics"
)

// DefaultPullCap is the fixed number of pulls each identity gets per
// calendar day.
const DefaultPullCap = 3

// QuotaStatus reports an identity's standing for the current day.
type QuotaStatus struct {
	PullsUsed      int  `json:"pullsUsed"`
	RemainingPulls int  `json:"remainingPulls"`
	CanPull        bool `json:"canPull"`
}

// QuotaLedger enforces the per-identity daily pull cap over an injected
// store. The identity is the caller-supplied email string — a lookup key
// only, never verified for ownership. The quota day is anchored to UTC
// calendar-day boundaries.
type QuotaLedger struct {
	store storage.QuotaStore
	cap   int
	now   func() time.Time
}

// NewQuotaLedger creates a ledger with the given cap (0 or negative falls
// back to DefaultPullCap).
func NewQuotaLedger(store storage.QuotaStore, cap int) *QuotaLedger {
	if cap <= 0 {
		cap = DefaultPullCap
	}
	return &QuotaLedger{
		store: store,
		cap:   cap,
		now:   time.Now,
	}
}

// Today returns the ledger's current UTC ISO day.
func (l *QuotaLedger) Today() string {
	return l.now().UTC().Format("2006-01-02")
}

// CheckQuota reports the identity's usage for today. A never-seen
// identity/day reads as zero used.
func (l *QuotaLedger) CheckQuota(ctx context.Context, identity string) (QuotaStatus, error) {
	used, err := l.store.PullsUsed(ctx, identity, l.Today())
	if err != nil {
		return QuotaStatus{}, err
	}
	return l.status(used), nil
}

// RecordPull consumes one pull. The increment is atomic in the store, so
// a caller that checked earlier and lost the race still gets
// storage.ErrQuotaExceeded from here — the check is advisory only.
func (l *QuotaLedger) RecordPull(ctx context.Context, identity string) (QuotaStatus, error) {
	used, err := l.store.RecordPull(ctx, identity, l.Today(), l.cap)
	if err != nil {
		if err == storage.ErrQuotaExceeded {
			metrics.Pulls.WithLabelValues("quota_exceeded").Inc()
			return l.status(used), err
		}
		return QuotaStatus{}, err
	}
	metrics.Pulls.WithLabelValues("ok").Inc()
	return l.status(used), nil
}

func (l *QuotaLedger) status(used int) QuotaStatus {
	remaining := l.cap - used
	if remaining < 0 {
		remaining = 0
	}
	return QuotaStatus{
		PullsUsed:      used,
		RemainingPulls: remaining,
		CanPull:        remaining > 0,
	}
}
