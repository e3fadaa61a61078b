package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Kariqs/decorshop/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCartStore_LocksAreReleased(t *testing.T) {
	store := NewMemoryCartStore(time.Hour)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("cart-%d", i%4)
			err := store.Update(ctx, key, func(cart *models.Cart) error {
				cart.Items = append(cart.Items, models.CartItem{ProductID: "p-1", Qty: 1})
				return nil
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	require.NoError(t, store.Delete(ctx, "cart-0"))

	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Empty(t, store.locks)
	assert.Len(t, store.carts, 3)
}
