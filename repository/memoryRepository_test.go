package repository_test

import (
	"context"
	"testing"

	"github.com/Kariqs/decorshop/models"
	"github.com/Kariqs/decorshop/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedProducts(t *testing.T, repo repository.ProductRepository, products ...models.Product) []models.Product {
	t.Helper()
	for i := range products {
		require.NoError(t, repo.Create(context.Background(), &products[i]))
	}
	return products
}

func TestMemoryProduct_DuplicateName(t *testing.T) {
	repo := repository.NewMemoryProductRepository()
	seedProducts(t, repo, models.Product{Name: "lamp", Price: 400, Category: models.CategoryLamp})

	err := repo.Create(context.Background(), &models.Product{Name: "lamp", Price: 1, Category: models.CategoryLamp})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestMemoryProduct_TopSellingPutsUnsoldLast(t *testing.T) {
	repo := repository.NewMemoryProductRepository()
	ctx := context.Background()
	seedProducts(t, repo,
		models.Product{Name: "a", Price: 1, Category: models.CategorySofa},
		models.Product{Name: "b", Price: 1, Category: models.CategorySofa},
		models.Product{Name: "c", Price: 1, Category: models.CategorySofa},
	)
	require.NoError(t, repo.IncrementSales(ctx, "c", 5))
	require.NoError(t, repo.IncrementSales(ctx, "b", 2))
	require.NoError(t, repo.IncrementSales(ctx, "b", 1))

	top, err := repo.TopSelling(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "c", top[0].Name)
	assert.Equal(t, "b", top[1].Name)
	assert.Equal(t, 3, top[1].Sold())
}

func TestMemoryUser_AppendOrder(t *testing.T) {
	repo := repository.NewMemoryUserRepository()
	ctx := context.Background()
	user := &models.User{Username: "shopper1"}
	require.NoError(t, repo.Create(ctx, user))

	require.NoError(t, repo.AppendOrder(ctx, user.ID, "o-1"))
	require.NoError(t, repo.AppendOrder(ctx, user.ID, "o-2"))

	stored, err := repo.FindByUsername(ctx, "shopper1")
	require.NoError(t, err)
	assert.Equal(t, []string{"o-1", "o-2"}, []string(stored.OrderIDs))

	assert.ErrorIs(t, repo.AppendOrder(ctx, "ghost", "o-3"), repository.ErrNotFound)
}
