package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/battleship-go/internal/api/feed"
	"github.com/mcoot/battleship-go/internal/api/request"
	"github.com/mcoot/battleship-go/internal/api/response"
	"github.com/mcoot/battleship-go/internal/model"
	"github.com/mcoot/battleship-go/internal/services/match"
)

// MaxListLimit caps the number of matches returned by a single listing
const MaxListLimit = 100

// MatchHandler handles simulation and match history endpoints
type MatchHandler struct {
	matchController *match.Controller
	broadcaster     *feed.Broadcaster
}

// NewMatchHandler creates a new match handler.
// A nil broadcaster disables the live match feed.
func NewMatchHandler(matchController *match.Controller, broadcaster *feed.Broadcaster) *MatchHandler {
	return &MatchHandler{
		matchController: matchController,
		broadcaster:     broadcaster,
	}
}

// Simulate handles POST /api/v1/simulations
func (h *MatchHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	var req request.SimulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	simReq, err := toSimulationRequest(req)
	if err != nil {
		WriteError(w, err)
		return
	}

	m, err := h.matchController.Simulate(r.Context(), simReq)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcaster.BroadcastMatchFinished(m)
	response.JSON(w, http.StatusCreated, response.MatchFromModel(m))
}

func toSimulationRequest(req request.SimulateRequest) (match.SimulationRequest, error) {
	out := match.SimulationRequest{
		BoardSize: req.BoardSize,
		Seed:      req.Seed,
	}
	if out.BoardSize == 0 {
		out.BoardSize = model.DefaultBoardSize
	}

	switch len(req.Strategies) {
	case 0:
	case model.MatchPlayers:
		copy(out.Strategies[:], req.Strategies)
	default:
		return out, NewInvalidRequestError("strategies must name one strategy per player")
	}

	switch len(req.Names) {
	case 0:
	case model.MatchPlayers:
		copy(out.Names[:], req.Names)
	default:
		return out, NewInvalidRequestError("names must name both players")
	}

	if len(req.Fleet) > 0 {
		out.Fleet = make(model.Fleet, len(req.Fleet))
		for i, ship := range req.Fleet {
			out.Fleet[i] = model.ShipKind{Name: ship.Name, Length: ship.Length}
		}
	}
	return out, nil
}

// List handles GET /api/v1/matches
func (h *MatchHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > MaxListLimit {
			WriteError(w, NewInvalidRequestError("limit must be between 1 and "+strconv.Itoa(MaxListLimit)))
			return
		}
		limit = n
	}

	matches, err := h.matchController.ListMatches(r.Context(), limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MatchListFromModel(matches))
}

// Get handles GET /api/v1/matches/{id}
func (h *MatchHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.MatchID(mux.Vars(r)["id"])

	m, err := h.matchController.GetMatch(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MatchFromModel(m))
}

// Delete handles DELETE /api/v1/matches/{id}
func (h *MatchHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := model.MatchID(mux.Vars(r)["id"])

	if err := h.matchController.DeleteMatch(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}
	h.broadcaster.BroadcastMatchDeleted(id)

	response.NoContent(w)
}

// Summary handles GET /api/v1/summary
func (h *MatchHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.matchController.Summary(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SummaryFromModel(summary))
}
