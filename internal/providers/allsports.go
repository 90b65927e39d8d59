package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/jstittsworth/fan-faceoff/internal/sports"
)

const allSportsBaseURL = "https://allsportsapi2.p.rapidapi.com"
const allSportsHost = "allsportsapi2.p.rapidapi.com"

// AllSports tournament/season identifiers for the metered endpoints.
const (
	nbaTournamentID = 138
	nbaSeasonID     = 42914
	nflTournamentID = 19510
	nflSeasonID     = 46788
)

// AllSportsClient fetches match and best-player data from the AllSports
// RapidAPI. It is the primary provider, but only covers NBA and NFL; the
// metered plan makes throttling mandatory, so every request goes through
// a rate limiter.
type AllSportsClient struct {
	httpClient *http.Client
	logger     *logrus.Logger
	limiter    *rate.Limiter
	apiKey     string
	baseURL    string
	host       string
	now        func() time.Time
}

// NewAllSportsClient creates the primary RapidAPI client.
func NewAllSportsClient(apiKey string, logger *logrus.Logger, timeout time.Duration) *AllSportsClient {
	return &AllSportsClient{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
		limiter:    rate.NewLimiter(rate.Every(time.Second), 2),
		apiKey:     apiKey,
		baseURL:    allSportsBaseURL,
		host:       allSportsHost,
		now:        time.Now,
	}
}

type allSportsMatchesResponse struct {
	Result []allSportsMatch `json:"result"`
}

type allSportsMatch struct {
	EventKey  json.Number `json:"event_key"`
	EventDate string      `json:"event_date"`
	HomeTeam  string      `json:"event_home_team"`
	AwayTeam  string      `json:"event_away_team"`
}

type allSportsPlayersResponse struct {
	Result []struct {
		PlayerName string `json:"player_name"`
	} `json:"result"`
}

func (c *AllSportsClient) Name() string {
	return "allsports"
}

// Supports reports true only for the leagues the AllSports plan carries.
func (c *AllSportsClient) Supports(sport sports.Sport) bool {
	return sport == sports.SportNBA || sport == sports.SportNFL
}

// FetchEvents fetches today's matches and, when any exist, the
// regular-season best-players list, attached to the first event as an
// event-level leader category so roster extraction sees one shape.
func (c *AllSportsClient) FetchEvents(ctx context.Context, sport sports.Sport) ([]sports.GameEvent, error) {
	if !c.Supports(sport) {
		return nil, &Error{Provider: c.Name(), Kind: BadResponse, Err: fmt.Errorf("%w: %q", sports.ErrUnsupportedSport, sport)}
	}

	var matches allSportsMatchesResponse
	if err := c.getJSON(ctx, c.matchesURL(sport), &matches); err != nil {
		return nil, err
	}

	events := make([]sports.GameEvent, 0, len(matches.Result))
	for _, match := range matches.Result {
		events = append(events, sports.GameEvent{
			ID:   match.EventKey.String(),
			Name: fmt.Sprintf("%s at %s", match.AwayTeam, match.HomeTeam),
			Date: parseAllSportsDate(match.EventDate),
			// Matches come from regular-season scoped endpoints; the
			// payload itself carries no phase tag.
			Season: sports.SeasonRegular,
			Competitors: []sports.Competitor{
				{Team: match.HomeTeam, HomeAway: "home"},
				{Team: match.AwayTeam, HomeAway: "away"},
			},
		})
	}
	if len(events) == 0 {
		return events, nil
	}

	var players allSportsPlayersResponse
	if err := c.getJSON(ctx, c.bestPlayersURL(sport), &players); err != nil {
		// Leaders are optional enrichment; matches alone are still a
		// usable result.
		c.logger.WithFields(logrus.Fields{
			"provider": c.Name(),
			"sport":    sport,
		}).Warnf("Best-players fetch failed: %v", err)
		return events, nil
	}

	category := sports.LeaderCategory{Name: "bestPlayers"}
	for _, player := range players.Result {
		if player.PlayerName == "" {
			continue
		}
		category.Athletes = append(category.Athletes, sports.Athlete{FullName: player.PlayerName})
	}
	if len(category.Athletes) > 0 {
		events[0].Leaders = append(events[0].Leaders, category)
	}

	return events, nil
}

func (c *AllSportsClient) getJSON(ctx context.Context, url string, target interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &Error{Provider: c.Name(), Kind: Unavailable, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &Error{Provider: c.Name(), Kind: BadResponse, Err: err}
	}
	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", c.host)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Provider: c.Name(), Kind: Unavailable, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests {
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

// matchesURL targets today's match list; AllSports uses day/month/year
// path segments.
func (c *AllSportsClient) matchesURL(sport sports.Sport) string {
	today := c.now().UTC()
	day, month, year := today.Day(), int(today.Month()), today.Year()
	switch sport {
	case sports.SportNFL:
		return fmt.Sprintf("%s/api/american-football/matches/%d/%d/%d", c.baseURL, day, month, year)
	default:
		return fmt.Sprintf("%s/api/basketball/matches/%d/%d/%d", c.baseURL, day, month, year)
	}
}

func (c *AllSportsClient) bestPlayersURL(sport sports.Sport) string {
	switch sport {
	case sports.SportNFL:
		return fmt.Sprintf("%s/api/american-football/tournament/%d/season/%d/team-events/total", c.baseURL, nflTournamentID, nflSeasonID)
	default:
		return fmt.Sprintf("%s/api/basketball/tournament/%d/season/%d/best-players/per-game/regularSeason", c.baseURL, nbaTournamentID, nbaSeasonID)
	}
}

// parseAllSportsDate accepts the plain-day and timestamp forms seen in
// AllSports payloads.
func parseAllSportsDate(s string) time.Time {
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
