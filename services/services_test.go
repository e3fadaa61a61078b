package services_test

import (
	"context"
	"io"
	"testing"

	"github.com/Kariqs/decorshop/models"
	"github.com/Kariqs/decorshop/repository"
	"github.com/Kariqs/decorshop/utils"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockImageStore struct {
	mock.Mock
}

func (m *MockImageStore) Save(ctx context.Context, r io.Reader) (utils.StoredImage, error) {
	args := m.Called(ctx, r)
	return args.Get(0).(utils.StoredImage), args.Error(1)
}

func (m *MockImageStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyOrderPlaced(ctx context.Context, user *models.User, order *models.Order) error {
	args := m.Called(ctx, user, order)
	return args.Error(0)
}

func newProduct(t *testing.T, repo repository.ProductRepository, name string, price int64, category string) *models.Product {
	t.Helper()
	p := &models.Product{Name: name, Price: price, Category: category, ImageURL: "/static/" + name + ".jpg"}
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}
