package feed

import (
	"encoding/json"
	"log/slog"

	"github.com/mcoot/battleship-go/internal/api/response"
	"github.com/mcoot/battleship-go/internal/model"
)

// Event names on the match feed
const (
	EventConnected     = "connected"
	EventMatchFinished = "match-finished"
	EventMatchDeleted  = "match-deleted"
)

// connectedData greets every new subscriber
const connectedData = `{"status":"connected"}`

// MatchDeleted is the payload of a match-deleted event
type MatchDeleted struct {
	ID string `json:"id"`
}

// Broadcaster publishes match history changes to the feed
type Broadcaster struct {
	hub    *Hub
	logger *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hub *Hub, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hub:    hub,
		logger: logger.With(slog.String("component", "feed-broadcaster")),
	}
}

// BroadcastMatchFinished announces a newly recorded match in its list form
func (b *Broadcaster) BroadcastMatchFinished(m *model.Match) {
	b.broadcastJSON(EventMatchFinished, response.MatchListItemFromModel(m))
}

// BroadcastMatchDeleted announces that a match was removed from history
func (b *Broadcaster) BroadcastMatchDeleted(id model.MatchID) {
	b.broadcastJSON(EventMatchDeleted, MatchDeleted{ID: string(id)})
}

func (b *Broadcaster) broadcastJSON(event string, payload any) {
	if b == nil || b.hub == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		b.logger.Error("feed failed to encode event",
			slog.String("event", event),
			slog.Any("error", err))
		return
	}
	b.hub.BroadcastEvent(event, string(data))
}
