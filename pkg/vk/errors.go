package vk

import "errors"

var (
	// ErrInvalidCode is returned when the authorization code cannot be exchanged
	ErrInvalidCode = errors.New("vk: invalid authorization code")

	// ErrProfileFetch is returned when users.get fails or returns no profile
	ErrProfileFetch = errors.New("vk: failed to fetch user profile")
)
