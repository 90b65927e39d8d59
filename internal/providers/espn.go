package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/fan-faceoff/internal/sports"
)

const espnBaseURL = "https://site.api.espn.com/apis/site/v2/sports"

// espnRegularSeason is the season.type value ESPN uses for regular-season
// games (1 = preseason, 2 = regular, 3 = postseason).
const espnRegularSeason = 2

// ESPNClient fetches scoreboard data from the public ESPN site API.
// It is the fallback provider: free, unkeyed, and available for every
// supported sport including WNBA.
type ESPNClient struct {
	httpClient *http.Client
	logger     *logrus.Logger
	baseURL    string
}

// NewESPNClient creates a new ESPN scoreboard client.
func NewESPNClient(logger *logrus.Logger, timeout time.Duration) *ESPNClient {
	return &ESPNClient{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
		baseURL:    espnBaseURL,
	}
}

// ESPN scoreboard response structures. Leader nesting differs by sport:
// NBA/NFL/MLB report leaders on the competition, WNBA reports them on
// each competitor.
type espnScoreboardResponse struct {
	Events []espnEvent `json:"events"`
}

type espnEvent struct {
	ID     string `json:"id"`
	Date   string `json:"date"`
	Name   string `json:"name"`
	Season struct {
		Type int `json:"type"`
	} `json:"season"`
	Competitions []espnCompetition `json:"competitions"`
}

type espnCompetition struct {
	ID          string               `json:"id"`
	Leaders     []espnLeaderCategory `json:"leaders"`
	Competitors []espnCompetitor     `json:"competitors"`
}

type espnLeaderCategory struct {
	Name    string `json:"name"`
	Leaders []struct {
		Athlete espnAthlete `json:"athlete"`
	} `json:"leaders"`
}

type espnCompetitor struct {
	HomeAway string `json:"homeAway"`
	Team     struct {
		Abbreviation string `json:"abbreviation"`
		DisplayName  string `json:"displayName"`
	} `json:"team"`
	Leaders  []espnLeaderCategory `json:"leaders"`
	Athletes []espnAthlete        `json:"athletes"`
}

type espnAthlete struct {
	FullName string `json:"fullName"`
}

func (c *ESPNClient) Name() string {
	return "espn"
}

// Supports reports true for every sport: ESPN is the catch-all fallback.
func (c *ESPNClient) Supports(sport sports.Sport) bool {
	return sport.Valid()
}

// FetchEvents fetches today's scoreboard for the sport and normalizes it.
func (c *ESPNClient) FetchEvents(ctx context.Context, sport sports.Sport) ([]sports.GameEvent, error) {
	url, err := c.scoreboardURL(sport)
	if err != nil {
		return nil, err
	}

	var scoreboard espnScoreboardResponse
	if err := c.getJSON(ctx, url, &scoreboard); err != nil {
		return nil, err
	}

	events := make([]sports.GameEvent, 0, len(scoreboard.Events))
	for _, raw := range scoreboard.Events {
		events = append(events, normalizeESPNEvent(raw))
	}

	c.logger.WithFields(logrus.Fields{
		"provider": c.Name(),
		"sport":    sport,
		"events":   len(events),
	}).Debug("Fetched scoreboard events")

	return events, nil
}

// getJSON performs a single GET and decodes the body. No retries: the
// aggregator's fallback chain owns the recovery policy.
func (c *ESPNClient) getJSON(ctx context.Context, url string, target interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &Error{Provider: c.Name(), Kind: BadResponse, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Provider: c.Name(), Kind: Unavailable, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return &Error{Provider: c.Name(), Kind: Unavailable, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}
	if resp.StatusCode != http.StatusOK {
		return &Error{Provider: c.Name(), Kind: BadResponse, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return &Error{Provider: c.Name(), Kind: BadResponse, Err: err}
	}
	return nil
}

func (c *ESPNClient) scoreboardURL(sport sports.Sport) (string, error) {
	switch sport {
	case sports.SportNBA:
		return fmt.Sprintf("%s/basketball/nba/scoreboard", c.baseURL), nil
	case sports.SportNFL:
		return fmt.Sprintf("%s/football/nfl/scoreboard", c.baseURL), nil
	case sports.SportMLB:
		return fmt.Sprintf("%s/baseball/mlb/scoreboard", c.baseURL), nil
	case sports.SportWNBA:
		return fmt.Sprintf("%s/basketball/wnba/scoreboard", c.baseURL), nil
	default:
		return "", &Error{Provider: c.Name(), Kind: BadResponse, Err: fmt.Errorf("%w: %q", sports.ErrUnsupportedSport, sport)}
	}
}

// normalizeESPNEvent maps one scoreboard event into the canonical shape.
// Only the first competition matters; ESPN lists exactly one per event.
func normalizeESPNEvent(raw espnEvent) sports.GameEvent {
	event := sports.GameEvent{
		ID:     raw.ID,
		Name:   raw.Name,
		Date:   parseESPNDate(raw.Date),
		Season: espnSeasonType(raw.Season.Type),
	}

	if len(raw.Competitions) == 0 {
		return event
	}
	comp := raw.Competitions[0]

	event.Leaders = normalizeESPNLeaders(comp.Leaders)
	for _, rawComp := range comp.Competitors {
		competitor := sports.Competitor{
			Team:     rawComp.Team.Abbreviation,
			HomeAway: rawComp.HomeAway,
			Leaders:  normalizeESPNLeaders(rawComp.Leaders),
		}
		for _, athlete := range rawComp.Athletes {
			competitor.Athletes = append(competitor.Athletes, sports.Athlete{FullName: athlete.FullName})
		}
		event.Competitors = append(event.Competitors, competitor)
	}

	return event
}

func normalizeESPNLeaders(raw []espnLeaderCategory) []sports.LeaderCategory {
	var categories []sports.LeaderCategory
	for _, cat := range raw {
		category := sports.LeaderCategory{Name: cat.Name}
		for _, leader := range cat.Leaders {
			category.Athletes = append(category.Athletes, sports.Athlete{FullName: leader.Athlete.FullName})
		}
		categories = append(categories, category)
	}
	return categories
}

func espnSeasonType(t int) sports.SeasonType {
	switch t {
	case 1:
		return sports.SeasonPreseason
	case espnRegularSeason:
		return sports.SeasonRegular
	case 3:
		return sports.SeasonPostseason
	default:
		return sports.SeasonUnknown
	}
}

// parseESPNDate handles both timestamp layouts ESPN emits
// ("2024-03-15T23:00Z" and full RFC 3339). An unparsable date yields the
// zero time, which the day filter excludes.
func parseESPNDate(s string) time.Time {
	for _, layout := range []string{"2006-01-02T15:04Z07:00", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
