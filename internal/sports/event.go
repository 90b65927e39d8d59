package sports

import "time"

// SeasonType classifies the season phase a game belongs to.
// Upstream scoreboards keep listing preseason and playoff games, so the
// phase must be carried explicitly; an event whose phase could not be
// determined stays SeasonUnknown and is filtered out downstream.
type SeasonType int

const (
	SeasonUnknown SeasonType = iota
	SeasonPreseason
	SeasonRegular
	SeasonPostseason
)

// Athlete is a single participant discovered in an event payload.
type Athlete struct {
	FullName string `json:"fullName"`
}

// LeaderCategory groups the statistical leaders for one category
// (points, passing yards, ...) as reported by a provider.
type LeaderCategory struct {
	Name     string    `json:"name"`
	Athletes []Athlete `json:"athletes"`
}

// Competitor is one side of a contest. Depending on the provider and
// sport, leader data is nested here (WNBA) or at the event level.
type Competitor struct {
	Team     string           `json:"team"`
	HomeAway string           `json:"homeAway,omitempty"`
	Leaders  []LeaderCategory `json:"leaders,omitempty"`
	Athletes []Athlete        `json:"athletes,omitempty"`
}

// GameEvent is the canonical representation of one scheduled contest.
// Every provider adapter normalizes into this shape before the game
// filter or roster extraction ever runs, so shape differences between
// upstreams stay inside the provider package.
type GameEvent struct {
	ID          string           `json:"id"`
	Name        string           `json:"name,omitempty"`
	Date        time.Time        `json:"date"`
	Season      SeasonType       `json:"season"`
	Leaders     []LeaderCategory `json:"leaders,omitempty"`
	Competitors []Competitor     `json:"competitors,omitempty"`
}

// Day returns the event's calendar day as a UTC ISO string (YYYY-MM-DD).
// All same-day comparisons use this form so providers reporting different
// offsets are compared at calendar-day granularity.
func (e GameEvent) Day() string {
	return e.Date.UTC().Format("2006-01-02")
}
