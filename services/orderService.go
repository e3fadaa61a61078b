package services

import (
	"context"

	"github.com/Kariqs/decorshop/models"
	"github.com/Kariqs/decorshop/repository"
	"github.com/Kariqs/decorshop/utils"
	"golang.org/x/sync/errgroup"
)

const topSellerCount = 5

// MonthlyRevenue sums order totals into one bucket per Jalali month; index 0
// is Farvardin. Orders with an unreadable date are skipped.
func MonthlyRevenue(orders []models.Order) [12]int64 {
	var buckets [12]int64
	for i := range orders {
		month, ok := utils.JalaliMonth(orders[i].Date)
		if !ok {
			continue
		}
		buckets[month-1] += orders[i].Total()
	}
	return buckets
}

// AdminOrder is an order with its customer and products resolved. Entries
// in Products are nil for products deleted since the order was placed.
type AdminOrder struct {
	models.Order
	User     *models.User
	Products []*models.Product
}

type Dashboard struct {
	Products       []models.Product
	Orders         []AdminOrder
	MonthlyRevenue [12]int64
	TopNames       []string
	TopQuantities  []int
}

// ProfileLine is one still-existing product of a past order.
type ProfileLine struct {
	ImageURL string
	Name     string
	Price    int64
	Qty      int
	Total    int64
}

type ProfileOrder struct {
	Order models.Order
	Lines []ProfileLine
}

type OrderService struct {
	Orders   repository.OrderRepository
	Products repository.ProductRepository
	Users    repository.UserRepository
}

func NewOrderService(repos *repository.Repositories) *OrderService {
	return &OrderService{Orders: repos.Orders, Products: repos.Products, Users: repos.Users}
}

// Dashboard gathers everything the admin page shows. It re-reads all orders
// on every call.
func (s *OrderService) Dashboard(ctx context.Context) (*Dashboard, error) {
	var (
		products []models.Product
		orders   []models.Order
		top      []models.Product
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		products, err = s.Products.Find(gctx, repository.ProductFilter{})
		return err
	})
	g.Go(func() (err error) {
		orders, err = s.Orders.FindAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		top, err = s.Products.TopSelling(gctx, topSellerCount)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	adminOrders, err := s.resolveOrders(ctx, orders)
	if err != nil {
		return nil, err
	}

	dashboard := &Dashboard{
		Products:       products,
		Orders:         adminOrders,
		MonthlyRevenue: MonthlyRevenue(orders),
		TopNames:       make([]string, 0, len(top)),
		TopQuantities:  make([]int, 0, len(top)),
	}
	for _, p := range top {
		dashboard.TopNames = append(dashboard.TopNames, p.Name)
		dashboard.TopQuantities = append(dashboard.TopQuantities, p.Sold())
	}
	return dashboard, nil
}

func (s *OrderService) resolveOrders(ctx context.Context, orders []models.Order) ([]AdminOrder, error) {
	userIDs := make([]string, 0, len(orders))
	productIDs := []string{}
	for _, o := range orders {
		userIDs = append(userIDs, o.UserID)
		productIDs = append(productIDs, o.ProductIDs...)
	}

	users, err := s.Users.FindByIDs(ctx, unique(userIDs))
	if err != nil {
		return nil, err
	}
	products, err := s.Products.FindByIDs(ctx, unique(productIDs))
	if err != nil {
		return nil, err
	}

	usersByID := make(map[string]*models.User, len(users))
	for i := range users {
		usersByID[users[i].ID] = &users[i]
	}
	productsByID := make(map[string]*models.Product, len(products))
	for i := range products {
		productsByID[products[i].ID] = &products[i]
	}

	resolved := make([]AdminOrder, 0, len(orders))
	for _, o := range orders {
		ao := AdminOrder{Order: o, User: usersByID[o.UserID]}
		for _, id := range o.ProductIDs {
			ao.Products = append(ao.Products, productsByID[id])
		}
		resolved = append(resolved, ao)
	}
	return resolved, nil
}

// UserOrders lists the user's orders oldest first. Lines whose product has
// been deleted are left out; prices are the current catalog prices.
func (s *OrderService) UserOrders(ctx context.Context, user *models.User) ([]ProfileOrder, error) {
	orders, err := s.Orders.FindByIDs(ctx, user.OrderIDs)
	if err != nil {
		return nil, err
	}

	productIDs := []string{}
	for _, o := range orders {
		productIDs = append(productIDs, o.ProductIDs...)
	}
	products, err := s.Products.FindByIDs(ctx, unique(productIDs))
	if err != nil {
		return nil, err
	}
	productsByID := make(map[string]models.Product, len(products))
	for _, p := range products {
		productsByID[p.ID] = p
	}

	result := make([]ProfileOrder, 0, len(orders))
	for _, o := range orders {
		po := ProfileOrder{Order: o}
		for i, id := range o.ProductIDs {
			product, ok := productsByID[id]
			if !ok || i >= len(o.Items) {
				continue
			}
			item := o.Items[i]
			po.Lines = append(po.Lines, ProfileLine{
				ImageURL: product.ImageURL,
				Name:     product.Name,
				Price:    product.Price,
				Qty:      item.Qty,
				Total:    item.Price * int64(item.Qty),
			})
		}
		result = append(result, po)
	}
	return result, nil
}

func (s *OrderService) MarkDelivered(ctx context.Context, id string) error {
	return s.Orders.MarkDelivered(ctx, id)
}

func (s *OrderService) Delete(ctx context.Context, id string) error {
	return s.Orders.Delete(ctx, id)
}

func unique(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
