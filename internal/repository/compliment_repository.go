package repository

import (
	"context"

	"quirkit/internal/domain/entity"
)

// ComplimentRepository persists user-submitted compliments.
// Implementations must be safe for concurrent use.
type ComplimentRepository interface {
	Append(ctx context.Context, c entity.Compliment) error
	// Filter returns every stored compliment for which keep returns true.
	Filter(ctx context.Context, keep func(entity.Compliment) bool) ([]entity.Compliment, error)
}
