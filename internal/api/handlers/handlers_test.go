package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstittsworth/fan-faceoff/internal/services"
	"github.com/jstittsworth/fan-faceoff/internal/sports"
	"github.com/jstittsworth/fan-faceoff/internal/storage"
)

type stubAggregator struct {
	players []string
	games   []sports.GameEvent
}

func (s *stubAggregator) TodayPlayers(ctx context.Context, sport sports.Sport) ([]string, error) {
	if !sport.Valid() {
		return nil, sports.ErrUnsupportedSport
	}
	return s.players, nil
}

func (s *stubAggregator) HasGamesToday(ctx context.Context, sport sports.Sport) (bool, error) {
	if !sport.Valid() {
		return false, sports.ErrUnsupportedSport
	}
	return len(s.games) > 0, nil
}

func (s *stubAggregator) TodayGames(ctx context.Context, sport sports.Sport) ([]sports.GameEvent, error) {
	if !sport.Valid() {
		return nil, sports.ErrUnsupportedSport
	}
	return s.games, nil
}

func testRouter(agg Aggregator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	ledger := services.NewQuotaLedger(storage.NewMemoryQuotaStore(), services.DefaultPullCap)
	picks := services.NewPickService(storage.NewMemoryPickStore())

	playerHandler := NewPlayerHandler(agg)
	gameHandler := NewGameHandler(agg)
	pullHandler := NewPullHandler(ledger)
	pickHandler := NewPickHandler(picks)

	router.GET("/today-players", playerHandler.GetTodayPlayers)
	router.GET("/games-today", playerHandler.GetGamesToday)
	router.GET("/live-games", gameHandler.GetLiveGames)
	router.GET("/today-date", gameHandler.GetTodayDate)
	router.GET("/today-challenge", gameHandler.GetTodayChallenge)
	router.GET("/user-pulls", pullHandler.GetUserPulls)
	router.POST("/record-pull", pullHandler.RecordPull)
	router.POST("/save-pick", pickHandler.SavePick)
	router.GET("/leaderboard", pickHandler.GetLeaderboard)

	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var parsed map[string]interface{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &parsed))
	}
	return rec, parsed
}

func TestGetTodayPlayers(t *testing.T) {
	router := testRouter(&stubAggregator{players: []string{"LeBron James", "Stephen Curry"}})

	rec, body := doJSON(t, router, http.MethodGet, "/today-players?sport=nba", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []interface{}{"LeBron James", "Stephen Curry"}, body["players"])
}

func TestGetTodayPlayersEmptyRosterIsEmptyArray(t *testing.T) {
	router := testRouter(&stubAggregator{})

	rec, body := doJSON(t, router, http.MethodGet, "/today-players", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	players, ok := body["players"].([]interface{})
	require.True(t, ok, "players must serialize as an array, not null")
	assert.Empty(t, players)
}

func TestGetTodayPlayersRejectsUnknownSport(t *testing.T) {
	router := testRouter(&stubAggregator{})

	rec, body := doJSON(t, router, http.MethodGet, "/today-players?sport=nhl", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "UNSUPPORTED_SPORT", body["code"])
}

func TestGetGamesToday(t *testing.T) {
	router := testRouter(&stubAggregator{games: []sports.GameEvent{{ID: "1"}}})

	rec, body := doJSON(t, router, http.MethodGet, "/games-today?sport=NBA", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["hasGames"])

	router = testRouter(&stubAggregator{})
	rec, body = doJSON(t, router, http.MethodGet, "/games-today?sport=NBA", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["hasGames"])
}

func TestGetLiveGames(t *testing.T) {
	router := testRouter(&stubAggregator{games: []sports.GameEvent{{ID: "401584701", Name: "LAL at GSW"}}})

	rec, body := doJSON(t, router, http.MethodGet, "/live-games", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	games, ok := body["games"].([]interface{})
	require.True(t, ok)
	require.Len(t, games, 1)
}

func TestGetTodayDateShape(t *testing.T) {
	router := testRouter(&stubAggregator{})

	rec, body := doJSON(t, router, http.MethodGet, "/today-date", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, body["isoDate"])
	assert.NotEmpty(t, body["date"])
}

func TestGetTodayChallenge(t *testing.T) {
	router := testRouter(&stubAggregator{})

	rec, body := doJSON(t, router, http.MethodGet, "/today-challenge?sport=nba", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	catalog, err := services.ChallengeCatalog(sports.SportNBA)
	require.NoError(t, err)
	assert.Contains(t, catalog, body["challenge"])
}

func TestUserPullsRequiresEmail(t *testing.T) {
	router := testRouter(&stubAggregator{})

	rec, body := doJSON(t, router, http.MethodGet, "/user-pulls", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
}

func TestUserPullsFreshIdentity(t *testing.T) {
	router := testRouter(&stubAggregator{})

	rec, body := doJSON(t, router, http.MethodGet, "/user-pulls?email=fan@example.com", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), body["pullsUsed"])
	assert.Equal(t, float64(3), body["remainingPulls"])
	assert.Equal(t, true, body["canPull"])
}

func TestRecordPullLifecycle(t *testing.T) {
	router := testRouter(&stubAggregator{})
	payload := `{"email": "fan@example.com"}`

	for want := 1; want <= 3; want++ {
		rec, body := doJSON(t, router, http.MethodPost, "/record-pull", payload)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, float64(want), body["pullsUsed"])
	}

	rec, body := doJSON(t, router, http.MethodPost, "/record-pull", payload)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "QUOTA_EXCEEDED", body["code"])
	assert.Equal(t, "No pulls remaining for today", body["error"])
}

func TestRecordPullRequiresEmail(t *testing.T) {
	router := testRouter(&stubAggregator{})

	rec, _ := doJSON(t, router, http.MethodPost, "/record-pull", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = doJSON(t, router, http.MethodPost, "/record-pull", "not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSavePickAndLeaderboard(t *testing.T) {
	router := testRouter(&stubAggregator{})

	pick := `{"username":"alice","email":"alice@example.com","sport":"NBA","challenge":"Most Points","selectedPlayer":"LeBron James"}`
	rec, body := doJSON(t, router, http.MethodPost, "/save-pick", pick)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Pick saved successfully!", body["message"])

	rec, body = doJSON(t, router, http.MethodGet, "/leaderboard", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	board, ok := body["leaderboard"].([]interface{})
	require.True(t, ok)
	require.Len(t, board, 1)
	entry := board[0].(map[string]interface{})
	assert.Equal(t, "alice", entry["username"])
	assert.Equal(t, "LeBron James", entry["selected_player"])
}

func TestSavePickValidationErrors(t *testing.T) {
	router := testRouter(&stubAggregator{})

	tests := []struct {
		name    string
		payload string
		message string
	}{
		{
			"missing username",
			`{"email":"a@b.com","sport":"NBA","challenge":"Most Points","selectedPlayer":"X"}`,
			"missing required field: username",
		},
		{
			"malformed email",
			`{"username":"alice","email":"nope","sport":"NBA","challenge":"Most Points","selectedPlayer":"X"}`,
			"invalid email format",
		},
	}

	for _, tt := range tests {
		rec, body := doJSON(t, router, http.MethodPost, "/save-pick", tt.payload)
		assert.Equal(t, http.StatusBadRequest, rec.Code, tt.name)
		assert.Equal(t, "VALIDATION_ERROR", body["code"], tt.name)
		assert.Equal(t, tt.message, body["error"], tt.name)
	}
}

func TestSavePickUnknownSport(t *testing.T) {
	router := testRouter(&stubAggregator{})

	payload := `{"username":"alice","email":"a@b.com","sport":"curling","challenge":"Most Points","selectedPlayer":"X"}`
	rec, body := doJSON(t, router, http.MethodPost, "/save-pick", payload)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "UNSUPPORTED_SPORT", body["code"])
}

func TestLeaderboardEmptyIsEmptyArray(t *testing.T) {
	router := testRouter(&stubAggregator{})

	rec, body := doJSON(t, router, http.MethodGet, "/leaderboard", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	board, ok := body["leaderboard"].([]interface{})
	require.True(t, ok, "leaderboard must serialize as an array, not null")
	assert.Empty(t, board)
}
