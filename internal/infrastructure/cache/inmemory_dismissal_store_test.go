package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryDismissalStore(t *testing.T) {
	store := NewInMemoryDismissalStore()
	ctx := context.Background()
	billID := uuid.New()

	dismissed, err := store.IsDismissed(ctx, "session-a", billID)
	require.NoError(t, err)
	assert.False(t, dismissed)

	require.NoError(t, store.Dismiss(ctx, "session-a", billID))

	dismissed, err = store.IsDismissed(ctx, "session-a", billID)
	require.NoError(t, err)
	assert.True(t, dismissed)

	// Dismissals are scoped to the session
	dismissed, err = store.IsDismissed(ctx, "session-b", billID)
	require.NoError(t, err)
	assert.False(t, dismissed)
}

func TestInMemoryDismissalStore_Expiry(t *testing.T) {
	store := NewInMemoryDismissalStore()
	store.ttl = -time.Second
	ctx := context.Background()
	billID := uuid.New()

	require.NoError(t, store.Dismiss(ctx, "session-a", billID))

	dismissed, err := store.IsDismissed(ctx, "session-a", billID)
	require.NoError(t, err)
	assert.False(t, dismissed)
}

func TestInMemoryDismissalStore_Concurrent(t *testing.T) {
	store := NewInMemoryDismissalStore()
	ctx := context.Background()
	billID := uuid.New()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			_ = store.Dismiss(ctx, "session-a", billID)
		}
	}()
	for i := 0; i < 100; i++ {
		_, _ = store.IsDismissed(ctx, "session-a", billID)
	}
	<-done

	dismissed, err := store.IsDismissed(ctx, "session-a", billID)
	require.NoError(t, err)
	assert.True(t, dismissed)
}
