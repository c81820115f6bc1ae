package domain

import "errors"

var (
	ErrNoAccounts         = errors.New("no accounts configured")
	ErrAccountNotFound    = errors.New("account not found")
	ErrSessionInvalid     = errors.New("session invalid")
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)
