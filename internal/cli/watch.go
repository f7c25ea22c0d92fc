package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mcoot/battleship-go/internal/api/feed"
	"github.com/mcoot/battleship-go/internal/api/response"
)

func newWatchCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stream matches as the server records them",
		Long: `Connect to the server's live match feed and print events as they arrive.

Events:
  - match-finished: A simulation was recorded
  - match-deleted: A match was removed from history

Press Ctrl+C to disconnect.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			return streamEvents(ctx, cfg.ServerURL, count, out)
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 0, "Exit after this many match events (0 streams until interrupted)")
	return cmd
}

// FeedEvent is one event read from the match feed
type FeedEvent struct {
	Time  time.Time       `json:"time"`
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

func streamEvents(ctx context.Context, serverURL string, count int, out *Output) error {
	url := strings.TrimSuffix(serverURL, "/") + "/api/v1/events"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	// No timeout for SSE
	resp, err := (&http.Client{}).Do(req)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	seen := 0
	err = readEvents(resp.Body, func(event, data string) bool {
		if event != feed.EventMatchFinished && event != feed.EventMatchDeleted {
			return true
		}
		out.printEvent(event, data)
		seen++
		return count <= 0 || seen < count
	})
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("stream error: %w", err)
	}
	return nil
}

// readEvents parses an SSE stream, calling fn per event until it returns false
func readEvents(r io.Reader, fn func(event, data string) bool) error {
	scanner := bufio.NewScanner(r)
	var currentEvent string
	var dataLines []string

	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case strings.HasPrefix(line, "event: "):
			currentEvent = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			dataLines = append(dataLines, strings.TrimPrefix(line, "data: "))
		case line == "":
			if currentEvent != "" && !fn(currentEvent, strings.Join(dataLines, "\n")) {
				return nil
			}
			currentEvent = ""
			dataLines = nil
		}
	}
	return scanner.Err()
}

func (o *Output) printEvent(event, data string) {
	now := time.Now()

	if o.IsJSON() {
		evt := FeedEvent{Time: now, Event: event, Data: json.RawMessage(data)}
		line, _ := json.Marshal(evt)
		fmt.Fprintln(o.w, string(line))
		return
	}

	timestamp := now.Format("2006-01-02 15:04:05")
	switch event {
	case feed.EventMatchFinished:
		var m response.MatchListItem
		if err := json.Unmarshal([]byte(data), &m); err == nil && m.Winner >= 0 && m.Winner < len(m.Players) {
			fmt.Fprintf(o.w, "[%s] %s: %s won in %d turns (%s)\n",
				timestamp, event, m.Players[m.Winner].Name, m.Turns, m.ID)
			return
		}
	case feed.EventMatchDeleted:
		var d feed.MatchDeleted
		if err := json.Unmarshal([]byte(data), &d); err == nil {
			fmt.Fprintf(o.w, "[%s] %s: %s\n", timestamp, event, d.ID)
			return
		}
	}
	fmt.Fprintf(o.w, "[%s] %s: %s\n", timestamp, event, data)
}
