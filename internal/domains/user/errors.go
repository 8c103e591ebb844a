package user

import "errors"

var (
	ErrUserNotFound = errors.New("user not found")

	// Conflict
	ErrEmailAlreadyExists    = errors.New("email already exists")
	ErrUsernameAlreadyExists = errors.New("username already exists")

	// Authentication
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountLocked      = errors.New("account has been locked")

	ErrCannotFollowSelf = errors.New("cannot follow yourself")
)
