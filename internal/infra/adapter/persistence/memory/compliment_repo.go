// Package memory provides in-process implementations of repository
// interfaces. They are the last line of defence when the configured store is
// unreachable, and the default store in development.
package memory

import (
	"context"
	"slices"
	"sync"

	"quirkit/internal/domain/entity"
	"quirkit/internal/repository"
)

type ComplimentRepo struct {
	mu          sync.RWMutex
	compliments []entity.Compliment
}

func NewComplimentRepo() *ComplimentRepo {
	return &ComplimentRepo{}
}

var _ repository.ComplimentRepository = (*ComplimentRepo)(nil)

func (repo *ComplimentRepo) Append(_ context.Context, c entity.Compliment) error {
	c.ModerationFlags = slices.Clone(c.ModerationFlags)

	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.compliments = append(repo.compliments, c)
	return nil
}

func (repo *ComplimentRepo) Filter(_ context.Context, keep func(entity.Compliment) bool) ([]entity.Compliment, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	out := make([]entity.Compliment, 0, len(repo.compliments))
	for _, c := range repo.compliments {
		if keep(c) {
			c.ModerationFlags = slices.Clone(c.ModerationFlags)
			out = append(out, c)
		}
	}
	return out, nil
}

// Len returns the number of stored compliments.
func (repo *ComplimentRepo) Len() int {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	return len(repo.compliments)
}
