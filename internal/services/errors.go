package services

import (
	"errors"
	"net/http"
)

// Expected, user-facing failure kinds. Handlers map these onto HTTP statuses
// and the response envelope; anything else is an internal error.
var (
	ErrNotFound            = errors.New("not-found")
	ErrNotJoinable         = errors.New("room-not-joinable")
	ErrInvalidState        = errors.New("invalid-state")
	ErrForbidden           = errors.New("forbidden")
	ErrValidation          = errors.New("validation-error")
	ErrInsufficientPlayers = errors.New("insufficient-players")
	ErrInsufficientContent = errors.New("insufficient-content")
	ErrWindowExpired       = errors.New("challenge-window-expired")
	ErrAlreadyResolved     = errors.New("answer-already-resolved")
	ErrSelfChallenge       = errors.New("self-challenge")
	ErrConflict            = errors.New("version-conflict")
	ErrUnconfigured        = errors.New("storage-unavailable")
)

func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrInsufficientPlayers),
		errors.Is(err, ErrInsufficientContent):
		return http.StatusBadRequest
	case errors.Is(err, ErrForbidden), errors.Is(err, ErrSelfChallenge):
		return http.StatusForbidden
	case errors.Is(err, ErrNotJoinable),
		errors.Is(err, ErrInvalidState),
		errors.Is(err, ErrAlreadyResolved),
		errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrWindowExpired):
		return http.StatusGone
	case errors.Is(err, ErrUnconfigured):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Expected reports whether err is a business outcome safe to echo to clients.
func Expected(err error) bool {
	return HTTPStatus(err) != http.StatusInternalServerError
}
