package storage

import (
	"context"
	"errors"
	"time"
)

// ErrQuotaExceeded is returned by RecordPull when an identity has no
// pulls remaining for the day. The counter is never mutated on this path.
var ErrQuotaExceeded = errors.New("no pulls remaining for today")

// Pick is one finalized athlete choice. Picks are append-only: they are
// never mutated or deleted, and the leaderboard is a read-side projection.
type Pick struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	Sport          string    `json:"sport"`
	Challenge      string    `json:"challenge"`
	SelectedPlayer string    `json:"selected_player"`
	CreatedAt      time.Time `json:"created_at"`
}

// QuotaStore tracks pulls used per (identity, calendar day).
//
// Lookup contract: a (identity, day) key that does not exist reads as
// used=0. Day rollover is implicit — a new day simply starts from a
// missing key; nothing resets old records.
type QuotaStore interface {
	// PullsUsed returns the counter for the identity on the given day.
	PullsUsed(ctx context.Context, identity, day string) (int, error)
	// RecordPull atomically increments the counter and returns the new
	// value. When the counter is already at cap it returns
	// ErrQuotaExceeded and performs no mutation. Concurrent callers on
	// the same identity must never over-spend the cap.
	RecordPull(ctx context.Context, identity, day string, cap int) (int, error)
}

// PickStore is the append-only pick log.
type PickStore interface {
	// Append adds a pick to the log. Safe for concurrent writers.
	Append(ctx context.Context, pick Pick) error
	// List returns all picks in insertion order.
	List(ctx context.Context) ([]Pick, error)
}
