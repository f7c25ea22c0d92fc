package model

import "errors"

// Common errors used across the application.
// Expected game outcomes (misses, duplicate shots, overlapping placements) are
// result values, not errors.
var (
	// Input errors
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	ErrInvalidDirection  = errors.New("invalid direction")
	ErrInvalidBoardSize  = errors.New("invalid board size")
	ErrInvalidFleet      = errors.New("invalid fleet")

	// Bot errors
	ErrUnknownStrategy = errors.New("unknown bot strategy")
	ErrPoolExhausted   = errors.New("no coordinates left to fire at")

	// Placement errors
	ErrPlacementFailed = errors.New("could not place fleet")

	// Match errors
	ErrMatchNotFound   = errors.New("match not found")
	ErrMatchIncomplete = errors.New("match ended without a victory")
)
