package api_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/battleship-go/internal/api"
	"github.com/mcoot/battleship-go/internal/api/apierr"
	"github.com/mcoot/battleship-go/internal/api/feed"
	"github.com/mcoot/battleship-go/internal/api/response"
	"github.com/mcoot/battleship-go/internal/factory"
	"github.com/mcoot/battleship-go/internal/model"
	"github.com/mcoot/battleship-go/internal/storage"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	app := factory.NewTestApp()
	return newTestServerWithStorage(t, app, app.Storage)
}

func newTestServerWithStorage(t *testing.T, app *factory.TestApp, store storage.Storage) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	router := api.NewRouter(api.RouterConfig{
		Logger:          logger,
		Storage:         store,
		MatchController: app.MatchController,
		Events:          app.Events,
	})

	return &testServer{
		handler: router,
		app:     app,
	}
}

func (ts *testServer) request(method, path string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) apierr.APIError {
	t.Helper()
	var resp apierr.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Error
}

func simulate(t *testing.T, ts *testServer, body any) response.Match {
	t.Helper()
	rr := ts.request(http.MethodPost, "/api/v1/simulations", body)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var resp response.Match
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
}

type downStorage struct {
	storage.Storage
}

func (downStorage) Ping(context.Context) error {
	return errors.New("connection refused")
}

func TestHealthCheckStorageDown(t *testing.T) {
	app := factory.NewTestApp()
	ts := newTestServerWithStorage(t, app, downStorage{app.Storage})

	rr := ts.request(http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Equal(t, apierr.CodeStorageUnavailable, decodeError(t, rr).Code)
}

func TestSimulateDefaults(t *testing.T) {
	ts := newTestServer(t)

	resp := simulate(t, ts, nil)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, model.DefaultBoardSize, resp.BoardSize)
	require.Len(t, resp.Players, 2)
	assert.Equal(t, model.BotStrategyHunt, resp.Players[0].Strategy)
	assert.Equal(t, "Hunt/Target", resp.Players[0].StrategyName)
	assert.True(t, resp.Players[resp.Winner].Victorious)
	assert.Equal(t, len(resp.Moves), resp.Turns)
	assert.Equal(t, "victory", resp.Moves[len(resp.Moves)-1].Result)
	require.Len(t, resp.Placements, 2)
	assert.Len(t, resp.Placements[0], len(model.StandardFleet()))
}

func TestSimulateWithSeedIsReproducible(t *testing.T) {
	ts := newTestServer(t)
	body := map[string]any{
		"board_size": 8,
		"strategies": []string{"hunt", "random"},
		"names":      []string{"Alice", "Bob"},
		"seed":       12345,
	}

	first := simulate(t, ts, body)
	second := simulate(t, ts, body)

	require.NotNil(t, first.Seed)
	assert.Equal(t, uint64(12345), *first.Seed)
	assert.Equal(t, "Alice", first.Players[0].Name)
	assert.Equal(t, "Bob", first.Players[1].Name)
	assert.Equal(t, 8, first.BoardSize)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, first.Moves, second.Moves)
	assert.Equal(t, first.Placements, second.Placements)
}

func TestSimulateCustomFleet(t *testing.T) {
	ts := newTestServer(t)

	resp := simulate(t, ts, map[string]any{
		"board_size": 4,
		"fleet":      []map[string]any{{"name": "Dinghy", "length": 1}, {"name": "Skiff", "length": 2}},
	})

	assert.Len(t, resp.Placements[0], 2)
	assert.Equal(t, 3, resp.Players[resp.Winner].ShotsHit)
}

func TestSimulateValidation(t *testing.T) {
	ts := newTestServer(t)

	cases := []struct {
		name   string
		body   any
		status int
		code   string
	}{
		{"bad json", "not an object", http.StatusBadRequest, apierr.CodeInvalidRequest},
		{"board too small", map[string]any{"board_size": 1}, http.StatusBadRequest, apierr.CodeInvalidBoardSize},
		{"fleet does not fit", map[string]any{"board_size": 3}, http.StatusBadRequest, apierr.CodeInvalidFleet},
		{"unknown strategy", map[string]any{"strategies": []string{"hunt", "psychic"}}, http.StatusBadRequest, apierr.CodeUnknownStrategy},
		{"one strategy", map[string]any{"strategies": []string{"hunt"}}, http.StatusBadRequest, apierr.CodeInvalidRequest},
		{"three names", map[string]any{"names": []string{"a", "b", "c"}}, http.StatusBadRequest, apierr.CodeInvalidRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := ts.request(http.MethodPost, "/api/v1/simulations", tc.body)
			assert.Equal(t, tc.status, rr.Code)
			assert.Equal(t, tc.code, decodeError(t, rr).Code)
		})
	}
}

func TestListAndGetMatches(t *testing.T) {
	ts := newTestServer(t)

	first := simulate(t, ts, map[string]any{"seed": 1})
	second := simulate(t, ts, map[string]any{"seed": 2})

	rr := ts.request(http.MethodGet, "/api/v1/matches", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var list response.MatchList
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	require.Len(t, list.Matches, 2)
	assert.Equal(t, second.ID, list.Matches[0].ID)
	assert.Equal(t, first.ID, list.Matches[1].ID)

	rr = ts.request(http.MethodGet, "/api/v1/matches?limit=1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	assert.Len(t, list.Matches, 1)

	rr = ts.request(http.MethodGet, "/api/v1/matches/"+first.ID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var got response.Match
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, first.Moves, got.Moves)
}

func TestListMatchesBadLimit(t *testing.T) {
	ts := newTestServer(t)

	for _, limit := range []string{"0", "-3", "abc", "101"} {
		rr := ts.request(http.MethodGet, "/api/v1/matches?limit="+limit, nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code, "limit %s", limit)
	}
}

func TestGetMatchNotFound(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/matches/does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeMatchNotFound, decodeError(t, rr).Code)
}

func TestDeleteMatch(t *testing.T) {
	ts := newTestServer(t)
	m := simulate(t, ts, nil)

	rr := ts.request(http.MethodDelete, "/api/v1/matches/"+m.ID, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/matches/"+m.ID, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = ts.request(http.MethodDelete, "/api/v1/matches/"+m.ID, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestSummary(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/summary", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var empty response.Summary
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &empty))
	assert.Equal(t, 0, empty.Matches)
	assert.Empty(t, empty.Strategies)

	for range 3 {
		simulate(t, ts, map[string]any{"strategies": []string{"hunt", "random"}})
	}

	rr = ts.request(http.MethodGet, "/api/v1/summary", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var summary response.Summary
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &summary))

	assert.Equal(t, 3, summary.Matches)
	assert.Greater(t, summary.AvgTurns, 0.0)
	require.Len(t, summary.Strategies, 2)
	wins := 0
	for _, s := range summary.Strategies {
		assert.Equal(t, 3, s.Played)
		wins += s.Won
	}
	assert.Equal(t, 3, wins)
}

func TestMethodNotAllowed(t *testing.T) {
	ts := newTestServer(t)

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodPut, "/api/v1/simulations"},
		{http.MethodGet, "/api/v1/simulations"},
		{http.MethodPost, "/api/v1/matches"},
		{http.MethodPatch, "/api/v1/matches/abc"},
		{http.MethodDelete, "/api/v1/summary"},
	}

	for _, tc := range cases {
		rr := ts.request(tc.method, tc.path, nil)
		assert.Equal(t, http.StatusMethodNotAllowed, rr.Code, "%s %s", tc.method, tc.path)
	}
}

func TestUnknownRouteNotFound(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/nope", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestEventsStream(t *testing.T) {
	ts := newTestServer(t)
	server := httptest.NewServer(ts.handler)
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/api/v1/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	reader := bufio.NewReader(resp.Body)
	nextEvent := func() string {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		for strings.HasPrefix(line, "data: ") || line == "\n" {
			line, err = reader.ReadString('\n')
			require.NoError(t, err)
		}
		return strings.TrimSpace(strings.TrimPrefix(line, "event: "))
	}

	assert.Equal(t, "connected", nextEvent())
	require.Eventually(t, func() bool { return ts.app.Events.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	m := simulate(t, ts, nil)
	assert.Equal(t, "match-finished", nextEvent())

	rr := ts.request(http.MethodDelete, "/api/v1/matches/"+m.ID, nil)
	require.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "match-deleted", nextEvent())
}

func TestWebSocketFeed(t *testing.T) {
	ts := newTestServer(t)
	server := httptest.NewServer(ts.handler)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/v1/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, http.Header{"X-Request-ID": {"ws-req-1"}})
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()
	assert.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)
	assert.Equal(t, "ws-req-1", resp.Header.Get("X-Request-ID"))

	next := func() feed.Message {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		var msg feed.Message
		require.NoError(t, conn.ReadJSON(&msg))
		return msg
	}

	assert.Equal(t, "connected", next().Event)
	require.Eventually(t, func() bool { return ts.app.Events.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	m := simulate(t, ts, nil)
	msg := next()
	assert.Equal(t, "match-finished", msg.Event)
	var item response.MatchListItem
	require.NoError(t, json.Unmarshal(msg.Data, &item))
	assert.Equal(t, m.ID, item.ID)

	rr := ts.request(http.MethodDelete, "/api/v1/matches/"+m.ID, nil)
	require.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "match-deleted", next().Event)
}
