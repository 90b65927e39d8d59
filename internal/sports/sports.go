package sports

import (
	"errors"
	"fmt"
	"strings"
)

// Sport represents a supported league
type Sport string

const (
	SportNBA  Sport = "nba"
	SportNFL  Sport = "nfl"
	SportMLB  Sport = "mlb"
	SportWNBA Sport = "wnba"
)

// ErrUnsupportedSport is returned for any sport key outside the supported set.
// Callers must never get a silent empty result for a bad key.
var ErrUnsupportedSport = errors.New("unsupported sport")

// All lists the supported sports in display order.
func All() []Sport {
	return []Sport{SportNBA, SportNFL, SportMLB, SportWNBA}
}

// Parse converts a sport string from an API request into a Sport.
// Accepts any casing ("NBA", "nba"); rejects everything else.
func Parse(s string) (Sport, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nba":
		return SportNBA, nil
	case "nfl":
		return SportNFL, nil
	case "mlb":
		return SportMLB, nil
	case "wnba":
		return SportWNBA, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedSport, s)
	}
}

// Valid reports whether the sport is one of the supported leagues.
func (s Sport) Valid() bool {
	switch s {
	case SportNBA, SportNFL, SportMLB, SportWNBA:
		return true
	}
	return false
}

// Code returns the upper-case league code ("NBA", "WNBA").
// Used for display and for the daily challenge seed.
func (s Sport) Code() string {
	return strings.ToUpper(string(s))
}
