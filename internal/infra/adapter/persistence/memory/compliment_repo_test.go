package memory_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quirkit/internal/domain/entity"
	"quirkit/internal/infra/adapter/persistence/memory"
)

func TestComplimentRepo_AppendFilter(t *testing.T) {
	repo := memory.NewComplimentRepo()
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, entity.Compliment{ID: "a", Message: "nice", IsApproved: true}))
	require.NoError(t, repo.Append(ctx, entity.Compliment{ID: "b", Message: "rude", ModerationFlags: []string{"profanity"}}))

	approved, err := repo.Filter(ctx, entity.Compliment.Approved)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, "a", approved[0].ID)

	all, err := repo.Filter(ctx, func(entity.Compliment) bool { return true })
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestComplimentRepo_ReturnsCopies(t *testing.T) {
	repo := memory.NewComplimentRepo()
	ctx := context.Background()
	require.NoError(t, repo.Append(ctx, entity.Compliment{ID: "a", ModerationFlags: []string{"profanity"}}))

	got, err := repo.Filter(ctx, func(entity.Compliment) bool { return true })
	require.NoError(t, err)
	got[0].ModerationFlags[0] = "changed"

	again, err := repo.Filter(ctx, func(entity.Compliment) bool { return true })
	require.NoError(t, err)
	assert.Equal(t, []string{"profanity"}, again[0].ModerationFlags)
}

func TestComplimentRepo_ConcurrentAppend(t *testing.T) {
	repo := memory.NewComplimentRepo()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = repo.Append(ctx, entity.Compliment{ID: fmt.Sprintf("c-%d", i), IsApproved: i%2 == 0})
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, repo.Len())
	approved, err := repo.Filter(ctx, entity.Compliment.Approved)
	require.NoError(t, err)
	assert.Len(t, approved, 25)
}
