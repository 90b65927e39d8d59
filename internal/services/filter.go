package services

import (
	"github.com/jstittsworth/fan-faceoff/internal/sports"
)

// FilterTodaysGames keeps only events scheduled for the given UTC ISO day
// that are tagged regular season. Events with an unknown season phase are
// dropped: upstream scoreboards keep listing exhibition and playoff games,
// and an untagged event must never be treated as regular season.
func FilterTodaysGames(events []sports.GameEvent, today string) []sports.GameEvent {
	filtered := make([]sports.GameEvent, 0, len(events))
	for _, event := range events {
		if event.Season != sports.SeasonRegular {
			continue
		}
		if event.Day() != today {
			continue
		}
		filtered = append(filtered, event)
	}
	return filtered
}
