package kv

import (
	"context"
	"testing"

	"skincare-storefront/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestMemory_SetGetRemove(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory()

	_, err := repo.Get(ctx, "cart:a")
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, repo.Set(ctx, "cart:a", `{"items":[]}`))
	got, err := repo.Get(ctx, "cart:a")
	require.NoError(t, err)
	require.Equal(t, `{"items":[]}`, got)

	require.NoError(t, repo.Set(ctx, "cart:a", `{"items":[1]}`))
	got, err = repo.Get(ctx, "cart:a")
	require.NoError(t, err)
	require.Equal(t, `{"items":[1]}`, got)

	require.NoError(t, repo.Remove(ctx, "cart:a"))
	_, err = repo.Get(ctx, "cart:a")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMemory_RemoveMissingKey(t *testing.T) {
	repo := NewMemory()
	require.NoError(t, repo.Remove(context.Background(), "missing"))
}
