package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstittsworth/fan-faceoff/internal/storage"
)

func fixedClock(day string) func() time.Time {
	date, _ := time.Parse("2006-01-02", day)
	return func() time.Time { return date }
}

func TestQuotaLedgerFreshIdentityHasFullAllowance(t *testing.T) {
	ledger := NewQuotaLedger(storage.NewMemoryQuotaStore(), DefaultPullCap)
	ledger.now = fixedClock("2024-03-15")

	status, err := ledger.CheckQuota(context.Background(), "fan@example.com")
	require.NoError(t, err)
	assert.Equal(t, QuotaStatus{PullsUsed: 0, RemainingPulls: 3, CanPull: true}, status)
}

func TestQuotaLedgerRecordPullConsumesAllowance(t *testing.T) {
	ledger := NewQuotaLedger(storage.NewMemoryQuotaStore(), DefaultPullCap)
	ledger.now = fixedClock("2024-03-15")
	ctx := context.Background()

	for want := 1; want <= 3; want++ {
		status, err := ledger.RecordPull(ctx, "fan@example.com")
		require.NoError(t, err)
		assert.Equal(t, want, status.PullsUsed)
		assert.Equal(t, 3-want, status.RemainingPulls)
		assert.Equal(t, want < 3, status.CanPull)
	}

	// Fourth pull fails and the count stays put.
	status, err := ledger.RecordPull(ctx, "fan@example.com")
	assert.ErrorIs(t, err, storage.ErrQuotaExceeded)
	assert.Equal(t, 3, status.PullsUsed)
	assert.False(t, status.CanPull)

	status, err = ledger.CheckQuota(ctx, "fan@example.com")
	require.NoError(t, err)
	assert.Equal(t, 3, status.PullsUsed)
}

func TestQuotaLedgerIdentitiesAreIndependent(t *testing.T) {
	ledger := NewQuotaLedger(storage.NewMemoryQuotaStore(), DefaultPullCap)
	ledger.now = fixedClock("2024-03-15")
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := ledger.RecordPull(ctx, "first@example.com")
		require.NoError(t, err)
	}

	status, err := ledger.CheckQuota(ctx, "second@example.com")
	require.NoError(t, err)
	assert.True(t, status.CanPull)
	assert.Equal(t, 0, status.PullsUsed)
}

func TestQuotaLedgerResetsAtUTCDayBoundary(t *testing.T) {
	ledger := NewQuotaLedger(storage.NewMemoryQuotaStore(), DefaultPullCap)
	ledger.now = fixedClock("2024-03-15")
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := ledger.RecordPull(ctx, "fan@example.com")
		require.NoError(t, err)
	}

	ledger.now = fixedClock("2024-03-16")
	status, err := ledger.RecordPull(ctx, "fan@example.com")
	require.NoError(t, err)
	assert.Equal(t, 1, status.PullsUsed)
	assert.Equal(t, 2, status.RemainingPulls)
}

func TestQuotaLedgerConcurrentPullsNeverExceedCap(t *testing.T) {
	ledger := NewQuotaLedger(storage.NewMemoryQuotaStore(), DefaultPullCap)
	ledger.now = fixedClock("2024-03-15")
	ctx := context.Background()

	const workers = 20
	var wg sync.WaitGroup
	results := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := ledger.RecordPull(ctx, "fan@example.com")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, storage.ErrQuotaExceeded)
		}
	}
	assert.Equal(t, 3, succeeded)

	status, err := ledger.CheckQuota(ctx, "fan@example.com")
	require.NoError(t, err)
	assert.Equal(t, 3, status.PullsUsed)
}

func TestQuotaLedgerZeroCapFallsBackToDefault(t *testing.T) {
	ledger := NewQuotaLedger(storage.NewMemoryQuotaStore(), 0)
	ledger.now = fixedClock("2024-03-15")

	status, err := ledger.CheckQuota(context.Background(), "fan@example.com")
	require.NoError(t, err)
	assert.Equal(t, DefaultPullCap, status.RemainingPulls)
}
