// Package common holds the sentinel errors shared by the repository,
// service and transport layers.
package common

import "errors"

var (
	// ErrNotFound is returned when a row does not exist or is not owned by the caller.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned on unique-key conflicts (e.g. email taken).
	ErrAlreadyExists = errors.New("already exists")
	// ErrValidation marks malformed input.
	ErrValidation = errors.New("validation error")

	// quota errors
	ErrCollectionLimit = errors.New("You have reached the maximum number of collections")
	ErrCardLimit       = errors.New("You have reached the maximum number of cards")

	// auth errors
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInvalidToken   = errors.New("invalid token")
	ErrTokenRevoked   = errors.New("token revoked")
	ErrResetExpired   = errors.New("reset token expired")
	ErrInvalidLogin   = errors.New("invalid login/password")
	ErrNoUserID       = errors.New("no user id")
	ErrWeakPassword   = errors.New("password too short")
	ErrInvalidAuthHdr = errors.New("invalid auth header format")
)

const (
	// MaxCollectionsPerUser caps how many collections one owner may hold.
	MaxCollectionsPerUser = 3
	// MaxCardsPerCollection caps how many cards one collection may hold.
	MaxCardsPerCollection = 20
)
