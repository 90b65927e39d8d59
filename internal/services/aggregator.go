package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/jstittsworth/fan-faceoff/internal/providers"
	"github.com/jstittsworth/fan-faceoff/internal/sports"
	"github.com/jstittsworth/fan-faceoff/pkg/metrics"
)

// PlayerAggregator is the composition root for the daily eligibility
// pipeline: primary provider, fallback provider, game filter, roster
// extraction.
//
// Per request the state machine is TryPrimary -> TryFallback -> Done. The
// fallback runs when the primary errors or parses to zero usable events;
// after the fallback there is no third source. The terminal result is
// always a (possibly empty) roster — "no games today" is a business state,
// never an error. Rosters are computed fresh on every request; today's
// slate can change intraday, so nothing is cached.
type PlayerAggregator struct {
	primary  providers.Client
	fallback providers.Client
	breaker  *gobreaker.CircuitBreaker
	logger   *logrus.Logger
	now      func() time.Time
}

// NewPlayerAggregator wires the provider chain. primary may be nil, in
// which case every sport goes straight to the fallback.
func NewPlayerAggregator(primary, fallback providers.Client, logger *logrus.Logger) *PlayerAggregator {
	settings := gobreaker.Settings{
		Name: "primary-provider",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"component": "circuit_breaker",
				"service":   name,
				"from":      from.String(),
				"to":        to.String(),
			}).Info("Circuit breaker state changed")
		},
	}

	return &PlayerAggregator{
		primary:  primary,
		fallback: fallback,
		breaker:  gobreaker.NewCircuitBreaker(settings),
		logger:   logger,
		now:      time.Now,
	}
}

// TodayPlayers returns the deduplicated roster of athletes appearing in
// today's regular-season games for the sport. An empty roster is a valid
// result meaning no eligible athletes today.
func (a *PlayerAggregator) TodayPlayers(ctx context.Context, sport sports.Sport) ([]string, error) {
	games, err := a.TodayGames(ctx, sport)
	if err != nil {
		return nil, err
	}
	return ExtractRoster(games), nil
}

// HasGamesToday reports whether the sport has any qualifying games today.
// Drives per-sport availability display and auto-switching away from a
// sport with no slate.
func (a *PlayerAggregator) HasGamesToday(ctx context.Context, sport sports.Sport) (bool, error) {
	games, err := a.TodayGames(ctx, sport)
	if err != nil {
		return false, err
	}
	return len(games) > 0, nil
}

// TodayGames runs the provider chain and the game filter for the sport.
// The only error it can return is sports.ErrUnsupportedSport.
func (a *PlayerAggregator) TodayGames(ctx context.Context, sport sports.Sport) ([]sports.GameEvent, error) {
	if !sport.Valid() {
		return nil, sports.ErrUnsupportedSport
	}

	// "today" is pinned once per request so every event-date comparison
	// in the pipeline uses the same calendar day.
	today := a.now().UTC().Format("2006-01-02")

	events := a.fetchEvents(ctx, sport)
	filtered := FilterTodaysGames(events, today)

	a.logger.WithFields(logrus.Fields{
		"sport":    sport,
		"today":    today,
		"events":   len(events),
		"eligible": len(filtered),
	}).Debug("Filtered today's games")

	return filtered, nil
}

// fetchEvents walks the fallback chain. Provider failures are absorbed
// here: the worst outcome is an empty slice, never an error.
func (a *PlayerAggregator) fetchEvents(ctx context.Context, sport sports.Sport) []sports.GameEvent {
	if a.primary != nil && a.primary.Supports(sport) {
		events, err := a.fetchPrimary(ctx, sport)
		if err == nil && len(events) > 0 {
			return events
		}
		if err != nil {
			a.logger.WithFields(logrus.Fields{
				"provider": a.primary.Name(),
				"sport":    sport,
			}).Warnf("Primary provider failed, falling back to %s: %v", a.fallback.Name(), err)
		}
		metrics.ProviderFallbacks.WithLabelValues(string(sport)).Inc()
	}

	events, err := a.fallback.FetchEvents(ctx, sport)
	observeFetch(a.fallback.Name(), sport, err)
	if err != nil {
		a.logger.WithFields(logrus.Fields{
			"provider": a.fallback.Name(),
			"sport":    sport,
		}).Warnf("Fallback provider failed: %v", err)
		return nil
	}
	return events
}

// fetchPrimary guards the metered primary with the circuit breaker; an
// open breaker reads as the provider being unavailable.
func (a *PlayerAggregator) fetchPrimary(ctx context.Context, sport sports.Sport) ([]sports.GameEvent, error) {
	result, err := a.breaker.Execute(func() (interface{}, error) {
		return a.primary.FetchEvents(ctx, sport)
	})
	observeFetch(a.primary.Name(), sport, err)
	if err != nil {
		return nil, err
	}
	return result.([]sports.GameEvent), nil
}

func observeFetch(provider string, sport sports.Sport, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "unavailable"
		if pe, ok := providers.IsProviderError(err); ok {
			outcome = pe.Kind.String()
		}
	}
	metrics.ProviderRequests.WithLabelValues(provider, string(sport), outcome).Inc()
}
