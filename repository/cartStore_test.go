package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Kariqs/decorshop/models"
	"github.com/Kariqs/decorshop/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func addOne(productID string) func(cart *models.Cart) error {
	return func(cart *models.Cart) error {
		if i := cart.IndexOf(productID); i >= 0 {
			cart.Items[i].Qty++
			return nil
		}
		cart.Items = append(cart.Items, models.CartItem{ProductID: productID, Qty: 1})
		return nil
	}
}

func TestMemoryCartStore_GetMissing(t *testing.T) {
	store := repository.NewMemoryCartStore(time.Hour)

	cart, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Nil(t, cart)
}

func TestMemoryCartStore_UpdateAndGet(t *testing.T) {
	store := repository.NewMemoryCartStore(time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Update(ctx, "k", addOne("p-1")))
	require.NoError(t, store.Update(ctx, "k", addOne("p-1")))

	cart, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Qty)
}

func TestMemoryCartStore_EmptyCartIsDeleted(t *testing.T) {
	store := repository.NewMemoryCartStore(time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Update(ctx, "k", addOne("p-1")))
	require.NoError(t, store.Update(ctx, "k", func(cart *models.Cart) error {
		cart.Items = nil
		return nil
	}))

	_, err := store.Get(ctx, "k")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestMemoryCartStore_FailedUpdateWritesNothing(t *testing.T) {
	store := repository.NewMemoryCartStore(time.Hour)
	ctx := context.Background()
	boom := errors.New("boom")

	err := store.Update(ctx, "k", func(cart *models.Cart) error {
		cart.Items = append(cart.Items, models.CartItem{ProductID: "p-1", Qty: 1})
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestMemoryCartStore_Expires(t *testing.T) {
	store := repository.NewMemoryCartStore(time.Millisecond)
	ctx := context.Background()

	require.NoError(t, store.Update(ctx, "k", addOne("p-1")))
	time.Sleep(5 * time.Millisecond)

	_, err := store.Get(ctx, "k")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestMemoryCartStore_ConcurrentUpdates(t *testing.T) {
	store := repository.NewMemoryCartStore(time.Hour)
	ctx := context.Background()

	const writers = 50
	var g errgroup.Group
	for i := 0; i < writers; i++ {
		g.Go(func() error {
			return store.Update(ctx, "shared", addOne("p-1"))
		})
	}
	require.NoError(t, g.Wait())

	cart, err := store.Get(ctx, "shared")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, writers, cart.Items[0].Qty)
}
