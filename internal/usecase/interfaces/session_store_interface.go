package interfaces

import (
	"context"

	"sevabazar/internal/domain/entities"
)

// ISessionStore resolves a bearer session token to the Caller it belongs to.
//
// Get returns a zero-value Caller (empty ID) when the token is unknown or
// expired; errors are reserved for store failures.

type ISessionStore interface {
	Get(ctx context.Context, token string) (entities.Caller, error)
}
