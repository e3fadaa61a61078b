package repository

import (
	"context"
	"errors"

	"github.com/Kariqs/decorshop/models"
	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.User, error)
	AppendOrder(ctx context.Context, userID, orderID string) error
}

// ProductFilter narrows a catalog query. Zero values mean no constraint.
type ProductFilter struct {
	Category string
	MinPrice *int64
	MaxPrice *int64
	Limit    int
}

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*models.Product, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.Product, error)
	Find(ctx context.Context, filter ProductFilter) ([]models.Product, error)
	// IncrementSales adds qty to the sales counter of the product with the
	// given name, starting the counter at zero when it is unset.
	IncrementSales(ctx context.Context, name string, qty int) error
	TopSelling(ctx context.Context, limit int) ([]models.Product, error)
}

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id string) (*models.Order, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.Order, error)
	FindAll(ctx context.Context) ([]models.Order, error)
	MarkDelivered(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// Repositories groups the stores backing one database connection.
type Repositories struct {
	Users    UserRepository
	Products ProductRepository
	Orders   OrderRepository
}

func newID() string {
	return uuid.NewString()
}

// sortByIDs returns items reordered to follow ids, dropping ids with no match.
func sortByIDs[T any](ids []string, items []T, idOf func(T) string) []T {
	byID := make(map[string]T, len(items))
	for _, item := range items {
		byID[idOf(item)] = item
	}
	sorted := make([]T, 0, len(ids))
	for _, id := range ids {
		if item, ok := byID[id]; ok {
			sorted = append(sorted, item)
		}
	}
	return sorted
}
