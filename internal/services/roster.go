package services

import (
	"github.com/jstittsworth/fan-faceoff/internal/sports"
)

// ExtractRoster walks every event's leader and competitor structures and
// returns the deduplicated athlete names in first-seen order.
//
// Both nesting shapes are visited because upstreams disagree by sport:
// NBA/NFL/MLB report leaders at the event level, WNBA nests them inside
// each competitor. An event that contributes no names is fine; a sport
// with no qualifying events yields an empty (non-error) roster.
func ExtractRoster(events []sports.GameEvent) []string {
	roster := make([]string, 0)
	seen := make(map[string]struct{})

	add := func(name string) {
		if name == "" {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		roster = append(roster, name)
	}

	for _, event := range events {
		for _, category := range event.Leaders {
			for _, athlete := range category.Athletes {
				add(athlete.FullName)
			}
		}
		for _, competitor := range event.Competitors {
			for _, category := range competitor.Leaders {
				for _, athlete := range category.Athletes {
					add(athlete.FullName)
				}
			}
			for _, athlete := range competitor.Athletes {
				add(athlete.FullName)
			}
		}
	}

	return roster
}
