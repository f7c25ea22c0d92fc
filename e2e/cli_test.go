package e2e_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/battleship-go/internal/api"
	"github.com/mcoot/battleship-go/internal/factory"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(t.TempDir(), "battleship-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/battleship")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	return r.runWithOutput("json", args...)
}

func (r *cliRunner) runWithOutput(format string, args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--output", format,
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	server   *http.Server
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	// Create application
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	app, err := factory.New(factory.Config{
		Logger:      logger,
		StorageType: factory.StorageTypeMemory,
	})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:          logger,
		Storage:         app.Storage,
		MatchController: app.MatchController,
		Events:          app.Events,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	// Wait for server to be ready
	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/api/v1/health")

	return &testServer{
		server: server,
		addr:   serverURL,
		shutdown: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
			_ = app.Close()
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing
type playerResponse struct {
	Name       string `json:"name"`
	Strategy   string `json:"strategy"`
	ShotsHit   int    `json:"shots_hit"`
	Victorious bool   `json:"victorious"`
}

type matchResponse struct {
	ID        string           `json:"id"`
	BoardSize int              `json:"board_size"`
	Seed      *uint64          `json:"seed"`
	Players   []playerResponse `json:"players"`
	Winner    int              `json:"winner"`
	Turns     int              `json:"turns"`
	Moves     []struct {
		Player     int    `json:"player"`
		Coordinate string `json:"coordinate"`
		Result     string `json:"result"`
	} `json:"moves"`
}

type matchListResponse struct {
	Matches []struct {
		ID    string `json:"id"`
		Turns int    `json:"turns"`
	} `json:"matches"`
}

type summaryResponse struct {
	Matches    int `json:"matches"`
	Strategies []struct {
		Strategy string `json:"strategy"`
		Played   int    `json:"played"`
		Won      int    `json:"won"`
	} `json:"strategies"`
}

type healthResponse struct {
	Status string `json:"status"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)

	var resp healthResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestCLI_SimulateAndBrowse(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Run a seeded match
	output, err := cli.run("simulate", "--strategies", "hunt,random", "--names", "Alice,Bob", "--seed", "77")
	require.NoError(t, err, "output: %s", output)

	var match matchResponse
	require.NoError(t, json.Unmarshal([]byte(output), &match))
	assert.NotEmpty(t, match.ID)
	assert.Equal(t, 10, match.BoardSize)
	require.NotNil(t, match.Seed)
	assert.Equal(t, uint64(77), *match.Seed)
	require.Len(t, match.Players, 2)
	assert.Equal(t, "Alice", match.Players[0].Name)
	assert.True(t, match.Players[match.Winner].Victorious)
	assert.Equal(t, len(match.Moves), match.Turns)
	assert.Equal(t, "victory", match.Moves[len(match.Moves)-1].Result)
	t.Logf("Match %s won by %s in %d turns", match.ID, match.Players[match.Winner].Name, match.Turns)

	// The same seed replays the same shots
	output, err = cli.run("simulate", "--strategies", "hunt,random", "--names", "Alice,Bob", "--seed", "77")
	require.NoError(t, err, "output: %s", output)
	var replay matchResponse
	require.NoError(t, json.Unmarshal([]byte(output), &replay))
	assert.NotEqual(t, match.ID, replay.ID)
	assert.Equal(t, match.Moves, replay.Moves)

	// List shows both, newest first
	output, err = cli.run("matches", "list")
	require.NoError(t, err, "output: %s", output)
	var list matchListResponse
	require.NoError(t, json.Unmarshal([]byte(output), &list))
	require.Len(t, list.Matches, 2)
	assert.Equal(t, replay.ID, list.Matches[0].ID)

	// Get one back with boards in text mode
	output, err = cli.runWithOutput("text", "matches", "get", match.ID, "--boards")
	require.NoError(t, err, "output: %s", output)
	assert.Contains(t, output, "Match: "+match.ID)
	assert.Contains(t, output, "Alice's fleet:")
	assert.Contains(t, output, "Bob's fleet:")

	// Summary aggregates both matches
	output, err = cli.run("summary")
	require.NoError(t, err, "output: %s", output)
	var summary summaryResponse
	require.NoError(t, json.Unmarshal([]byte(output), &summary))
	assert.Equal(t, 2, summary.Matches)
	require.Len(t, summary.Strategies, 2)
	for _, s := range summary.Strategies {
		assert.Equal(t, 2, s.Played)
	}

	// Delete one
	output, err = cli.run("matches", "delete", match.ID)
	require.NoError(t, err, "output: %s", output)
	var msg messageResponse
	require.NoError(t, json.Unmarshal([]byte(output), &msg))
	assert.Contains(t, msg.Message, "Deleted match")

	output, err = cli.run("matches", "list")
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &list))
	assert.Len(t, list.Matches, 1)
}

func TestCLI_Local(t *testing.T) {
	// No server needed; the URL is never contacted
	cli := newCLIRunner(t, "http://127.0.0.1:1")

	output, err := cli.runWithOutput("text", "local", "--board-size", "8", "--seed", "4")
	require.NoError(t, err, "output: %s", output)
	assert.Contains(t, output, "Board: 8x8")
	assert.Contains(t, output, "Winner: ")
	assert.Contains(t, output, "Bot 1's fleet:")
}

func TestCLI_ErrorHandling(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Unknown match
	output, err := cli.run("matches", "get", "missing")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "not found")

	// Board too small for the standard fleet
	output, err = cli.run("simulate", "--board-size", "3")
	assert.Error(t, err)
	assert.Contains(t, output, "INVALID_FLEET")

	// Unknown strategy
	output, err = cli.run("simulate", "--strategies", "hunt,psychic")
	assert.Error(t, err)
	assert.Contains(t, output, "UNKNOWN_STRATEGY")
}
