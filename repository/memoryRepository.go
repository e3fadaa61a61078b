package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Kariqs/decorshop/models"
)

// NewMemoryRepositories returns process-local stores. They back the
// "memory" database driver used for local runs and tests.
func NewMemoryRepositories() *Repositories {
	return &Repositories{
		Users:    NewMemoryUserRepository(),
		Products: NewMemoryProductRepository(),
		Orders:   NewMemoryOrderRepository(),
	}
}

type MemoryUserRepository struct {
	mu    sync.RWMutex
	users []models.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{}
}

func (r *MemoryUserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == user.Username {
			return ErrDuplicate
		}
	}
	if user.ID == "" {
		user.ID = newID()
	}
	if user.OrderIDs == nil {
		user.OrderIDs = []string{}
	}
	now := time.Now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now
	r.users = append(r.users, cloneUser(*user))
	return nil
}

func (r *MemoryUserRepository) FindByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.ID == id {
			user := cloneUser(u)
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryUserRepository) FindByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Username == username {
			user := cloneUser(u)
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryUserRepository) FindByIDs(_ context.Context, ids []string) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := toSet(ids)
	users := []models.User{}
	for _, u := range r.users {
		if wanted[u.ID] {
			users = append(users, cloneUser(u))
		}
	}
	return users, nil
}

func (r *MemoryUserRepository) AppendOrder(_ context.Context, userID, orderID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.users {
		if r.users[i].ID == userID {
			r.users[i].OrderIDs = append(r.users[i].OrderIDs, orderID)
			r.users[i].UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return ErrNotFound
}

type MemoryProductRepository struct {
	mu       sync.RWMutex
	products []models.Product
}

func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{}
}

func (r *MemoryProductRepository) Create(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.products {
		if p.Name == product.Name {
			return ErrDuplicate
		}
	}
	if product.ID == "" {
		product.ID = newID()
	}
	now := time.Now().UTC()
	product.CreatedAt, product.UpdatedAt = now, now
	r.products = append(r.products, cloneProduct(*product))
	return nil
}

func (r *MemoryProductRepository) Update(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := -1
	for i, p := range r.products {
		if p.ID == product.ID {
			idx = i
		} else if p.Name == product.Name {
			return ErrDuplicate
		}
	}
	if idx < 0 {
		return ErrNotFound
	}
	stored := &r.products[idx]
	stored.Name = product.Name
	stored.Price = product.Price
	stored.Category = product.Category
	stored.ImageURL = product.ImageURL
	stored.ImageKey = product.ImageKey
	stored.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *MemoryProductRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *MemoryProductRepository) FindByID(_ context.Context, id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.ID == id {
			product := cloneProduct(p)
			return &product, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryProductRepository) FindByIDs(_ context.Context, ids []string) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := toSet(ids)
	products := []models.Product{}
	for _, p := range r.products {
		if wanted[p.ID] {
			products = append(products, cloneProduct(p))
		}
	}
	return products, nil
}

func (r *MemoryProductRepository) Find(_ context.Context, filter ProductFilter) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := []models.Product{}
	for _, p := range r.products {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.MinPrice != nil && p.Price < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && p.Price > *filter.MaxPrice {
			continue
		}
		products = append(products, cloneProduct(p))
		if filter.Limit > 0 && len(products) == filter.Limit {
			break
		}
	}
	return products, nil
}

func (r *MemoryProductRepository) IncrementSales(_ context.Context, name string, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.products {
		if r.products[i].Name == name {
			sold := r.products[i].Sold() + qty
			r.products[i].SalesQty = &sold
			return nil
		}
	}
	return ErrNotFound
}

func (r *MemoryProductRepository) TopSelling(_ context.Context, limit int) ([]models.Product, error) {
	r.mu.RLock()
	products := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		products = append(products, cloneProduct(p))
	}
	r.mu.RUnlock()

	sort.SliceStable(products, func(i, j int) bool {
		a, b := products[i].SalesQty, products[j].SalesQty
		if a == nil || b == nil {
			return a != nil && b == nil
		}
		return *a > *b
	})
	if len(products) > limit {
		products = products[:limit]
	}
	return products, nil
}

type MemoryOrderRepository struct {
	mu     sync.RWMutex
	orders []models.Order
}

func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{}
}

func (r *MemoryOrderRepository) Create(_ context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == "" {
		order.ID = newID()
	}
	order.CreatedAt = time.Now().UTC()
	r.orders = append(r.orders, cloneOrder(*order))
	return nil
}

func (r *MemoryOrderRepository) FindByID(_ context.Context, id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, o := range r.orders {
		if o.ID == id {
			order := cloneOrder(o)
			return &order, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryOrderRepository) FindByIDs(_ context.Context, ids []string) ([]models.Order, error) {
	r.mu.RLock()
	orders := make([]models.Order, 0, len(r.orders))
	for _, o := range r.orders {
		orders = append(orders, cloneOrder(o))
	}
	r.mu.RUnlock()

	return sortByIDs(ids, orders, func(o models.Order) string { return o.ID }), nil
}

func (r *MemoryOrderRepository) FindAll(_ context.Context) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]models.Order, 0, len(r.orders))
	for _, o := range r.orders {
		orders = append(orders, cloneOrder(o))
	}
	return orders, nil
}

func (r *MemoryOrderRepository) MarkDelivered(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.orders {
		if r.orders[i].ID == id {
			r.orders[i].Delivered = true
			return nil
		}
	}
	return ErrNotFound
}

func (r *MemoryOrderRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, o := range r.orders {
		if o.ID == id {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func cloneUser(u models.User) models.User {
	u.OrderIDs = append([]string{}, u.OrderIDs...)
	return u
}

func cloneProduct(p models.Product) models.Product {
	if p.SalesQty != nil {
		sold := *p.SalesQty
		p.SalesQty = &sold
	}
	return p
}

func cloneOrder(o models.Order) models.Order {
	o.Items = append([]models.LineItem{}, o.Items...)
	o.ProductIDs = append([]string{}, o.ProductIDs...)
	return o
}
