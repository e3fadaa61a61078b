package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Kariqs/decorshop/models"
	"github.com/Kariqs/decorshop/repository"
	"github.com/Kariqs/decorshop/services"
	"github.com/Kariqs/decorshop/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupCatalog(t *testing.T) (*services.CatalogService, *MockImageStore) {
	t.Helper()
	images := &MockImageStore{}
	return services.NewCatalogService(repository.NewMemoryProductRepository(), images), images
}

func TestShop_CategoryFilter(t *testing.T) {
	svc, _ := setupCatalog(t)
	ctx := context.Background()
	newProduct(t, svc.Products, "sofa a", 200, models.CategorySofa)
	newProduct(t, svc.Products, "desk a", 300, models.CategoryDesk)
	newProduct(t, svc.Products, "sofa b", 4000, models.CategorySofa)

	for _, category := range models.Categories {
		products, err := svc.Shop(ctx, category, "", "")
		require.NoError(t, err)
		for _, p := range products {
			assert.Equal(t, category, p.Category)
		}
	}

	sofas, err := svc.Shop(ctx, models.CategorySofa, "", "")
	require.NoError(t, err)
	assert.Len(t, sofas, 2)
}

func TestShop_PriceBounds(t *testing.T) {
	svc, _ := setupCatalog(t)
	ctx := context.Background()
	newProduct(t, svc.Products, "cheap", 200, models.CategoryLamp)
	newProduct(t, svc.Products, "mid", 400, models.CategoryLamp)
	newProduct(t, svc.Products, "dear", 8000, models.CategoryLamp)

	products, err := svc.Shop(ctx, "", "200", "400")
	require.NoError(t, err)
	assert.Len(t, products, 2)

	products, err = svc.Shop(ctx, "", "401", "")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "dear", products[0].Name)

	products, err = svc.Shop(ctx, "", "", "399")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "cheap", products[0].Name)

	_, err = svc.Shop(ctx, "", "abc", "")
	var validationErr *services.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestFeatured_LimitsToFour(t *testing.T) {
	svc, _ := setupCatalog(t)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		newProduct(t, svc.Products, name, 100, models.CategoryDesk)
	}

	products, err := svc.Featured(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 4)
}

func TestCreateProduct(t *testing.T) {
	svc, images := setupCatalog(t)
	ctx := context.Background()
	images.On("Save", mock.Anything, mock.Anything).
		Return(utils.StoredImage{URL: "/static/uploads/products/x.jpg", Key: "products/x.jpg"}, nil).Once()

	product, err := svc.Create(ctx, models.ProductForm{Name: " New lamp ", Price: "1500", Category: "lamp"}, strings.NewReader("img"))
	require.NoError(t, err)
	assert.Equal(t, "New lamp", product.Name)
	assert.Equal(t, int64(1500), product.Price)
	assert.Equal(t, "products/x.jpg", product.ImageKey)
	assert.Nil(t, product.SalesQty)
	images.AssertExpectations(t)
}

func TestCreateProduct_Validation(t *testing.T) {
	svc, images := setupCatalog(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		form  models.ProductForm
		field string
	}{
		{"name", models.ProductForm{Price: "10", Category: "lamp"}, "productName"},
		{"price missing", models.ProductForm{Name: "x", Category: "lamp"}, "productPrice"},
		{"price negative", models.ProductForm{Name: "x", Price: "-5", Category: "lamp"}, "productPrice"},
		{"price text", models.ProductForm{Name: "x", Price: "ten", Category: "lamp"}, "productPrice"},
		{"category missing", models.ProductForm{Name: "x", Price: "10"}, "productCategory"},
		{"category unknown", models.ProductForm{Name: "x", Price: "10", Category: "bed"}, "productCategory"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.form, strings.NewReader("img"))
			var validationErr *services.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)
		})
	}

	_, err := svc.Create(ctx, models.ProductForm{Name: "x", Price: "10", Category: "lamp"}, nil)
	var validationErr *services.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "productImg", validationErr.Field)

	images.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCreateProduct_DuplicateNameDiscardsImage(t *testing.T) {
	svc, images := setupCatalog(t)
	ctx := context.Background()
	newProduct(t, svc.Products, "lamp", 400, models.CategoryLamp)

	images.On("Save", mock.Anything, mock.Anything).
		Return(utils.StoredImage{URL: "/u/dup.jpg", Key: "products/dup.jpg"}, nil).Once()
	images.On("Delete", mock.Anything, "products/dup.jpg").Return(nil).Once()

	_, err := svc.Create(ctx, models.ProductForm{Name: "lamp", Price: "10", Category: "lamp"}, strings.NewReader("img"))
	var validationErr *services.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "productName", validationErr.Field)
	images.AssertExpectations(t)
}

func TestUpdateProduct_ReplacesImage(t *testing.T) {
	svc, images := setupCatalog(t)
	ctx := context.Background()
	existing := &models.Product{Name: "desk", Price: 300, Category: "desk", ImageURL: "/u/old.jpg", ImageKey: "products/old.jpg"}
	require.NoError(t, svc.Products.Create(ctx, existing))

	images.On("Save", mock.Anything, mock.Anything).
		Return(utils.StoredImage{URL: "/u/new.jpg", Key: "products/new.jpg"}, nil).Once()
	images.On("Delete", mock.Anything, "products/old.jpg").Return(nil).Once()

	updated, err := svc.Update(ctx, existing.ID, models.ProductForm{Name: "desk", Price: "350", Category: "desk"}, strings.NewReader("img"))
	require.NoError(t, err)
	assert.Equal(t, int64(350), updated.Price)
	assert.Equal(t, "products/new.jpg", updated.ImageKey)
	images.AssertExpectations(t)
}

func TestUpdateProduct_KeepsImageWhenNoneGiven(t *testing.T) {
	svc, images := setupCatalog(t)
	ctx := context.Background()
	existing := &models.Product{Name: "desk", Price: 300, Category: "desk", ImageKey: "products/old.jpg"}
	require.NoError(t, svc.Products.Create(ctx, existing))

	updated, err := svc.Update(ctx, existing.ID, models.ProductForm{Name: "desk 2", Price: "300", Category: "desk"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "products/old.jpg", updated.ImageKey)
	images.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)

	_, err = svc.Update(ctx, "missing", models.ProductForm{Name: "x", Price: "1", Category: "desk"}, nil)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestDeleteProduct(t *testing.T) {
	svc, images := setupCatalog(t)
	ctx := context.Background()
	existing := &models.Product{Name: "lamp", Price: 400, Category: "lamp", ImageKey: "products/lamp.jpg"}
	require.NoError(t, svc.Products.Create(ctx, existing))

	images.On("Delete", mock.Anything, "products/lamp.jpg").Return(nil).Once()
	require.NoError(t, svc.Delete(ctx, existing.ID))

	_, err := svc.Product(ctx, existing.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, existing.ID), services.ErrNotFound)
}

func TestDeleteProduct_ImageFailureKeepsProduct(t *testing.T) {
	svc, images := setupCatalog(t)
	ctx := context.Background()
	existing := &models.Product{Name: "lamp", Price: 400, Category: "lamp", ImageKey: "products/lamp.jpg"}
	require.NoError(t, svc.Products.Create(ctx, existing))

	images.On("Delete", mock.Anything, "products/lamp.jpg").Return(errors.New("s3 down"))
	assert.Error(t, svc.Delete(ctx, existing.ID))

	_, err := svc.Product(ctx, existing.ID)
	assert.NoError(t, err)
}

func TestSeed_SkipsExisting(t *testing.T) {
	svc, _ := setupCatalog(t)
	ctx := context.Background()
	newProduct(t, svc.Products, "lamp", 400, models.CategoryLamp)

	added, err := svc.Seed(ctx, []models.Product{
		{Name: "lamp", Price: 400, Category: models.CategoryLamp},
		{Name: "sofa", Price: 200, Category: models.CategorySofa},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, added)
}
