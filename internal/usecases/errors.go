package usecases

import "errors"

var (
	ErrPersistSeenUsers   = errors.New("persist seen users")
	ErrNoMessenger        = errors.New("no messaging client available")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
