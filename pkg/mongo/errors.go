package mongo

import "errors"

var (
	// ErrFailedToConnect indicates the client could not reach the server
	// within the configured retry budget.
	ErrFailedToConnect = errors.New("mongo: failed to connect")
)
