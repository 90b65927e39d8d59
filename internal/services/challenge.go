package services

import (
	"time"

	"github.com/jstittsworth/fan-faceoff/internal/sports"
)

// challengeCatalogs holds the fixed, ordered challenge labels per sport.
// Order matters: the daily selection indexes into these slices.
var challengeCatalogs = map[sports.Sport][]string{
	sports.SportNBA:  {"Most Points", "Most Assists", "Most Rebounds", "Most Steals"},
	sports.SportNFL:  {"Most Passing Yards", "Most Touchdowns", "Most Tackles", "Most Sacks"},
	sports.SportMLB:  {"Most Hits", "Most Home Runs", "Most RBIs", "Most Strikeouts"},
	sports.SportWNBA: {"Most Points", "Most Assists", "Most Rebounds", "Most Blocks"},
}

// SelectChallenge picks the day's challenge label for a sport. Pure
// function of (date, sport): the ISO day string concatenated with the
// upper-case sport code is summed byte-wise and taken modulo the catalog
// length, so every user sees the same challenge on a given day and the
// same inputs always reproduce the same label.
func SelectChallenge(sport sports.Sport, date time.Time) (string, error) {
	catalog, ok := challengeCatalogs[sport]
	if !ok {
		return "", sports.ErrUnsupportedSport
	}

	seed := date.UTC().Format("2006-01-02") + sport.Code()
	sum := 0
	for _, ch := range seed {
		sum += int(ch)
	}

	return catalog[sum%len(catalog)], nil
}

// ChallengeCatalog returns the fixed label list for a sport.
func ChallengeCatalog(sport sports.Sport) ([]string, error) {
	catalog, ok := challengeCatalogs[sport]
	if !ok {
		return nil, sports.ErrUnsupportedSport
	}
	out := make([]string, len(catalog))
	copy(out, catalog)
	return out, nil
}
