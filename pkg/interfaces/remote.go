package interfaces

import "context"

// RemoteSource retrieves the canonical schema text from an upstream
// endpoint. A single successful call returns the full document body.
type RemoteSource interface {
	Fetch(ctx context.Context) ([]byte, error)
}
