package services_test

import (
	"context"
	"testing"

	"github.com/Kariqs/decorshop/models"
	"github.com/Kariqs/decorshop/repository"
	"github.com/Kariqs/decorshop/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthlyRevenue(t *testing.T) {
	orders := []models.Order{
		{Date: "1403/1/5", Items: []models.LineItem{{Qty: 2, Price: 100, Total: 200}, {Qty: 1, Price: 50, Total: 50}}},
		{Date: "1403/1/28", Items: []models.LineItem{{Qty: 1, Price: 10, Total: 10}}},
		{Date: "1402/12/29", Items: []models.LineItem{{Qty: 3, Price: 100, Total: 300}}},
		{Date: "1403/7/1", Items: []models.LineItem{{Qty: 1, Price: 7, Total: 7}}},
		{Date: "garbage", Items: []models.LineItem{{Qty: 1, Price: 999, Total: 999}}},
	}

	got := services.MonthlyRevenue(orders)

	want := [12]int64{260, 0, 0, 0, 0, 0, 7, 0, 0, 0, 0, 300}
	assert.Equal(t, want, got)
}

func TestMonthlyRevenue_Empty(t *testing.T) {
	assert.Equal(t, [12]int64{}, services.MonthlyRevenue(nil))
}

func seedOrder(t *testing.T, repos *repository.Repositories, user *models.User, date string, products ...*models.Product) *models.Order {
	t.Helper()
	ctx := context.Background()
	order := &models.Order{Username: user.Username, UserID: user.ID, Date: date}
	for _, p := range products {
		order.Items = append(order.Items, models.LineItem{Qty: 1, Price: p.Price, Total: p.Price})
		order.ProductIDs = append(order.ProductIDs, p.ID)
		require.NoError(t, repos.Products.IncrementSales(ctx, p.Name, 1))
	}
	require.NoError(t, repos.Orders.Create(ctx, order))
	require.NoError(t, repos.Users.AppendOrder(ctx, user.ID, order.ID))
	return order
}

func TestDashboard(t *testing.T) {
	repos := repository.NewMemoryRepositories()
	ctx := context.Background()
	user := &models.User{Username: "shopper1"}
	require.NoError(t, repos.Users.Create(ctx, user))

	sofa := newProduct(t, repos.Products, "sofa", 200, models.CategorySofa)
	lamp := newProduct(t, repos.Products, "lamp", 400, models.CategoryLamp)
	newProduct(t, repos.Products, "desk", 300, models.CategoryDesk)
	seedOrder(t, repos, user, "1403/2/1", lamp, sofa)
	seedOrder(t, repos, user, "1403/2/9", lamp)
	require.NoError(t, repos.Products.Delete(ctx, sofa.ID))

	svc := services.NewOrderService(repos)
	dashboard, err := svc.Dashboard(ctx)
	require.NoError(t, err)

	assert.Len(t, dashboard.Products, 2)
	assert.Equal(t, int64(1000), dashboard.MonthlyRevenue[1])
	assert.Equal(t, []string{"lamp", "desk"}, dashboard.TopNames)
	assert.Equal(t, []int{2, 0}, dashboard.TopQuantities)

	require.Len(t, dashboard.Orders, 2)
	first := dashboard.Orders[0]
	require.NotNil(t, first.User)
	assert.Equal(t, "shopper1", first.User.Username)
	require.Len(t, first.Products, 2)
	assert.Equal(t, "lamp", first.Products[0].Name)
	assert.Nil(t, first.Products[1])
}

func TestUserOrders_SkipsDeletedProducts(t *testing.T) {
	repos := repository.NewMemoryRepositories()
	ctx := context.Background()
	user := &models.User{Username: "shopper1"}
	require.NoError(t, repos.Users.Create(ctx, user))

	sofa := newProduct(t, repos.Products, "sofa", 200, models.CategorySofa)
	lamp := newProduct(t, repos.Products, "lamp", 400, models.CategoryLamp)
	seedOrder(t, repos, user, "1403/2/1", sofa, lamp)
	require.NoError(t, repos.Products.Delete(ctx, sofa.ID))

	stored, err := repos.Users.FindByID(ctx, user.ID)
	require.NoError(t, err)

	orders, err := services.NewOrderService(repos).UserOrders(ctx, stored)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Len(t, orders[0].Lines, 1)
	assert.Equal(t, services.ProfileLine{ImageURL: "/static/lamp.jpg", Name: "lamp", Price: 400, Qty: 1, Total: 400}, orders[0].Lines[0])
}

func TestMarkDeliveredAndDelete(t *testing.T) {
	repos := repository.NewMemoryRepositories()
	ctx := context.Background()
	user := &models.User{Username: "shopper1"}
	require.NoError(t, repos.Users.Create(ctx, user))
	order := seedOrder(t, repos, user, "1403/2/1", newProduct(t, repos.Products, "lamp", 400, models.CategoryLamp))

	svc := services.NewOrderService(repos)
	require.NoError(t, svc.MarkDelivered(ctx, order.ID))
	stored, err := repos.Orders.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, stored.Delivered)

	require.NoError(t, svc.Delete(ctx, order.ID))
	assert.ErrorIs(t, svc.Delete(ctx, order.ID), services.ErrNotFound)
	assert.ErrorIs(t, svc.MarkDelivered(ctx, order.ID), services.ErrNotFound)
}
