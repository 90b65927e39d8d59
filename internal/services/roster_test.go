package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jstittsworth/fan-faceoff/internal/sports"
)

func leaders(names ...string) []sports.LeaderCategory {
	category := sports.LeaderCategory{Name: "points"}
	for _, name := range names {
		category.Athletes = append(category.Athletes, sports.Athlete{FullName: name})
	}
	return []sports.LeaderCategory{category}
}

func TestExtractRosterDeduplicatesAcrossEvents(t *testing.T) {
	events := []sports.GameEvent{
		{Leaders: leaders("A", "B")},
		{Leaders: leaders("B", "C")},
	}

	assert.Equal(t, []string{"A", "B", "C"}, ExtractRoster(events))
}

func TestExtractRosterVisitsCompetitorAthletes(t *testing.T) {
	events := []sports.GameEvent{
		{
			Leaders: leaders("LeBron James"),
			Competitors: []sports.Competitor{
				{Athletes: []sports.Athlete{{FullName: "Anthony Davis"}, {FullName: "LeBron James"}}},
				{Athletes: []sports.Athlete{{FullName: "Stephen Curry"}}},
			},
		},
	}

	assert.Equal(t, []string{"LeBron James", "Anthony Davis", "Stephen Curry"}, ExtractRoster(events))
}

func TestExtractRosterVisitsCompetitorNestedLeaders(t *testing.T) {
	// WNBA nests leaders inside each competitor instead of on the event.
	events := []sports.GameEvent{
		{
			Competitors: []sports.Competitor{
				{Leaders: leaders("A'ja Wilson")},
				{Leaders: leaders("Breanna Stewart", "A'ja Wilson")},
			},
		},
	}

	assert.Equal(t, []string{"A'ja Wilson", "Breanna Stewart"}, ExtractRoster(events))
}

func TestExtractRosterNamesAreCaseSensitive(t *testing.T) {
	events := []sports.GameEvent{
		{Leaders: leaders("luka doncic", "Luka Doncic")},
	}

	assert.Equal(t, []string{"luka doncic", "Luka Doncic"}, ExtractRoster(events))
}

func TestExtractRosterSkipsEmptyNames(t *testing.T) {
	events := []sports.GameEvent{
		{Leaders: leaders("", "A")},
		{},
	}

	assert.Equal(t, []string{"A"}, ExtractRoster(events))
}

func TestExtractRosterEmptyEventsYieldEmptyRoster(t *testing.T) {
	assert.Empty(t, ExtractRoster(nil))
	assert.Empty(t, ExtractRoster([]sports.GameEvent{{}}))
}
