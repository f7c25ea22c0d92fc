package request

// FleetShip is one ship kind in a custom fleet
type FleetShip struct {
	Name   string `json:"name"`
	Length int    `json:"length"`
}

// SimulateRequest is the request body for running a bot-versus-bot match
type SimulateRequest struct {
	// BoardSize defaults to 10 when omitted
	BoardSize int `json:"board_size,omitempty"`
	// Strategies holds one strategy name per player; omit for the default strategy
	Strategies []string `json:"strategies,omitempty"`
	// Names optionally labels the two players
	Names []string `json:"names,omitempty"`
	// Seed makes the match reproducible
	Seed *uint64 `json:"seed,omitempty"`
	// Fleet overrides the standard fleet
	Fleet []FleetShip `json:"fleet,omitempty"`
}
