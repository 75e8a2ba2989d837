// Package memory is an in-process profile store for local development and tests.
package memory

import (
	"context"
	"sync"

	"gliblio/internal/profilelink/models"
	"gliblio/pkg/platform/sentinel"
)

// InMemoryStore maps normalized handles to identity IDs.
type InMemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]string
}

// New builds a store seeded with handle → identity ID pairs.
func New(seed map[string]string) *InMemoryStore {
	profiles := make(map[string]string, len(seed))
	for handle, id := range seed {
		profiles[handle] = id
	}
	return &InMemoryStore{profiles: profiles}
}

// Put adds or replaces a profile.
func (s *InMemoryStore) Put(handle, identityID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[handle] = identityID
}

func (s *InMemoryStore) FindByHandle(ctx context.Context, handle string) (*models.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.profiles[handle]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &models.Profile{Handle: handle, IdentityID: id}, nil
}

func (s *InMemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}
