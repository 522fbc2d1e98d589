package domain

import "errors"

var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrProviderFailure = errors.New("provider send failed")
	ErrInvalidConfig   = errors.New("invalid config")
)
