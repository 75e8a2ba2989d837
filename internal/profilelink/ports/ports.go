// Package ports declares what profile link resolution needs from the outside
// world.
package ports

import (
	"context"

	"gliblio/internal/profilelink/models"
)

// ProfileStore looks up at most one profile by normalized handle.
//
// Implementations return sentinel.ErrNotFound when no record matches and an
// error wrapping sentinel.ErrConflict when more than one does.
type ProfileStore interface {
	FindByHandle(ctx context.Context, handle string) (*models.Profile, error)
}

// Pinger is implemented by stores that can report their own health.
type Pinger interface {
	Ping(ctx context.Context) error
}
