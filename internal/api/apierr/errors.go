package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/battleship-go/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeInvalidBoardSize   = "INVALID_BOARD_SIZE"
	CodeInvalidFleet       = "INVALID_FLEET"
	CodeInvalidCoordinate  = "INVALID_COORDINATE"
	CodeUnknownStrategy    = "UNKNOWN_STRATEGY"
	CodeMatchNotFound      = "MATCH_NOT_FOUND"
	CodePlacementFailed    = "PLACEMENT_FAILED"
	CodeMatchIncomplete    = "MATCH_INCOMPLETE"
	CodeStorageUnavailable = "STORAGE_UNAVAILABLE"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors; input errors carry the wrapped detail in their message
	switch {
	case errors.Is(err, model.ErrMatchNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeMatchNotFound, "Match not found"}}
	case errors.Is(err, model.ErrInvalidBoardSize):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidBoardSize, err.Error()}}
	case errors.Is(err, model.ErrInvalidFleet):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidFleet, err.Error()}}
	case errors.Is(err, model.ErrInvalidCoordinate):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidCoordinate, err.Error()}}
	case errors.Is(err, model.ErrUnknownStrategy):
		return &httpError{http.StatusBadRequest, APIError{CodeUnknownStrategy, err.Error()}}
	case errors.Is(err, model.ErrPlacementFailed):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodePlacementFailed, "Could not place the fleet on this board"}}
	case errors.Is(err, model.ErrMatchIncomplete):
		return &httpError{http.StatusInternalServerError, APIError{CodeMatchIncomplete, "Match ended without a winner"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewStorageUnavailableError creates a service unavailable error
func NewStorageUnavailableError() error {
	return &httpError{http.StatusServiceUnavailable, APIError{CodeStorageUnavailable, "Storage is unavailable"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
