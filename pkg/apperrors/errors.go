package apperrors

import (
	"errors"
	"strings"
)

// Domain rule violations. Each kind is a distinct sentinel so handlers can
// map it to a distinct response code instead of a flat message.
var (
	ErrNotFound         = errors.New("not found")
	ErrForbidden        = errors.New("forbidden")
	ErrSelfRequest      = errors.New("you can't send a friend request to yourself")
	ErrAlreadyFriends   = errors.New("you are already friends with this user")
	ErrDuplicateRequest = errors.New("a friend request already exists between these users")
)

// ValidationError reports which required fields were missing from a payload.
type ValidationError struct {
	MissingFields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.MissingFields, ", ")
}
