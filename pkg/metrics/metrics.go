package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ProviderRequests counts upstream fetches by provider, sport, and
	// outcome (ok, unavailable, bad_response).
	ProviderRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fanfaceoff_provider_requests_total",
		Help: "Upstream provider fetches by outcome",
	}, []string{"provider", "sport", "outcome"})

	// ProviderFallbacks counts requests where the primary provider was
	// abandoned for the fallback.
	ProviderFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fanfaceoff_provider_fallbacks_total",
		Help: "Requests that fell back to the secondary provider",
	}, []string{"sport"})

	// Pulls counts recorded pull attempts by outcome (ok, quota_exceeded).
	Pulls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fanfaceoff_pulls_total",
		Help: "Pull attempts by outcome",
	}, []string{"outcome"})

	// PicksSaved counts successfully persisted picks.
	PicksSaved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fanfaceoff_picks_saved_total",
		Help: "Picks appended to the log",
	})
)
