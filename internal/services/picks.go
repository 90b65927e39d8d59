package services

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/jstittsworth/fan-faceoff/internal/sports"
	"github.com/jstittsworth/fan-faceoff/internal/storage"
	"github.com/jstittsworth/fan-faceoff/pkg/metrics"
)

// emailPattern is the reference local@domain check. It gates the lookup
// key's shape only; ownership of the address is never verified.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidationReason classifies pick validation failures.
type ValidationReason string

const (
	MissingField      ValidationReason = "missing_field"
	MalformedIdentity ValidationReason = "malformed_identity"
)

// ValidationError reports a rejected pick submission. Surfaced verbatim
// to the caller so the input can be corrected.
type ValidationError struct {
	Field  string
	Reason ValidationReason
}

func (e *ValidationError) Error() string {
	switch e.Reason {
	case MalformedIdentity:
		return "invalid email format"
	default:
		return fmt.Sprintf("missing required field: %s", e.Field)
	}
}

// PickRequest is a pick submission from the presentation layer.
type PickRequest struct {
	Username       string `json:"username"`
	Email          string `json:"email"`
	Sport          string `json:"sport"`
	Challenge      string `json:"challenge"`
	SelectedPlayer string `json:"selectedPlayer"`
}

// PickService owns the append-only pick log and the leaderboard
// projection over it.
type PickService struct {
	store storage.PickStore
	now   func() time.Time
}

// NewPickService creates a pick service over the injected store.
func NewPickService(store storage.PickStore) *PickService {
	return &PickService{
		store: store,
		now:   time.Now,
	}
}

// SavePick validates and appends a pick. Validation failures are
// *ValidationError (or sports.ErrUnsupportedSport for a bad sport key);
// nothing is written on any failure path.
func (s *PickService) SavePick(ctx context.Context, req PickRequest) (storage.Pick, error) {
	for field, value := range map[string]string{
		"username":       req.Username,
		"email":          req.Email,
		"sport":          req.Sport,
		"challenge":      req.Challenge,
		"selectedPlayer": req.SelectedPlayer,
	} {
		if value == "" {
			return storage.Pick{}, &ValidationError{Field: field, Reason: MissingField}
		}
	}
	if !emailPattern.MatchString(req.Email) {
		return storage.Pick{}, &ValidationError{Field: "email", Reason: MalformedIdentity}
	}
	sport, err := sports.Parse(req.Sport)
	if err != nil {
		return storage.Pick{}, err
	}

	pick := storage.Pick{
		ID:             uuid.NewString(),
		Username:       req.Username,
		Email:          req.Email,
		Sport:          sport.Code(),
		Challenge:      req.Challenge,
		SelectedPlayer: req.SelectedPlayer,
		CreatedAt:      s.now().UTC(),
	}
	if err := s.store.Append(ctx, pick); err != nil {
		return storage.Pick{}, err
	}

	metrics.PicksSaved.Inc()
	return pick, nil
}

// Leaderboard returns the deduplicated-by-username view of the pick log:
// each username keeps only its most recent pick, and entries are ordered
// by where that surviving pick sits in the log. The log itself is never
// truncated — this is a participation view, not a ranked scoreboard.
func (s *PickService) Leaderboard(ctx context.Context) ([]storage.Pick, error) {
	picks, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(picks))
	deduped := make([]storage.Pick, 0, len(picks))
	for i := len(picks) - 1; i >= 0; i-- {
		pick := picks[i]
		if _, ok := seen[pick.Username]; ok {
			continue
		}
		seen[pick.Username] = struct{}{}
		deduped = append(deduped, pick)
	}

	// Restore log order.
	for i, j := 0, len(deduped)-1; i < j; i, j = i+1, j-1 {
		deduped[i], deduped[j] = deduped[j], deduped[i]
	}
	return deduped, nil
}
