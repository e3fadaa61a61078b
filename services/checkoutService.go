package services

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/Kariqs/decorshop/logger"
	"github.com/Kariqs/decorshop/models"
	"github.com/Kariqs/decorshop/repository"
	"github.com/Kariqs/decorshop/utils"
	"go.uber.org/zap"
)

const (
	postcodeLength = 10
	phoneLength    = 11
)

const (
	msgFirstNameRequired = "نام خود را وارد کنید"
	msgLastNameRequired  = "نام خانوادگی خود را وارد کنید"
	msgCityRequired      = "شهر خود را وارد کنید"
	msgPostcodeInvalid   = "کد پستی خود را وارد کنید یا کد پستی شما کمتر یا بیشتر از 10 رقم است"
	msgPhoneInvalid      = "شماره تلفن خود را وارد کنید یا شماره تلفن شما کمتر یا بیشتر از 11 رقم است"
	msgAddressRequired   = "آدرس خود را وارد کنید"
)

// OrderNotifier is told about every order that was stored successfully.
type OrderNotifier interface {
	NotifyOrderPlaced(ctx context.Context, user *models.User, order *models.Order) error
}

type CheckoutService struct {
	Products repository.ProductRepository
	Orders   repository.OrderRepository
	Users    repository.UserRepository
	Carts    repository.CartStore
	Notifier OrderNotifier
	Now      func() time.Time
}

func NewCheckoutService(repos *repository.Repositories, carts repository.CartStore, notifier OrderNotifier) *CheckoutService {
	return &CheckoutService{
		Products: repos.Products,
		Orders:   repos.Orders,
		Users:    repos.Users,
		Carts:    carts,
		Notifier: notifier,
		Now:      time.Now,
	}
}

// Validate checks the shipping fields in display order and reports the
// first one that fails.
func (s *CheckoutService) Validate(form models.CheckoutForm) error {
	switch {
	case form.FirstName == "":
		return invalid("firstname", msgFirstNameRequired)
	case form.LastName == "":
		return invalid("lastname", msgLastNameRequired)
	case form.City == "":
		return invalid("city", msgCityRequired)
	case utf8.RuneCountInString(form.Postcode) != postcodeLength:
		return invalid("postcode", msgPostcodeInvalid)
	case utf8.RuneCountInString(form.Phone) != phoneLength:
		return invalid("phone", msgPhoneInvalid)
	case form.Address == "":
		return invalid("address", msgAddressRequired)
	}
	return nil
}

// PlaceOrder turns the session cart into an order for user.
//
// The writes are independent: sales counters first, then the order, then
// the user's order list, then the cart. A failure stops the sequence and
// leaves the earlier writes in place.
func (s *CheckoutService) PlaceOrder(ctx context.Context, user *models.User, cartKey string, form models.CheckoutForm) (*models.Order, error) {
	if err := s.Validate(form); err != nil {
		return nil, err
	}

	cart, err := s.Carts.Get(ctx, cartKey)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if cart.IsEmpty() {
		return nil, ErrCartEmpty
	}

	for _, item := range cart.Items {
		if err := s.Products.IncrementSales(ctx, item.Name, item.Qty); err != nil {
			logger.Error(ctx, "Failed to update sales counter", err, zap.String("product", item.Name))
			return nil, fmt.Errorf("increment sales for %q: %w", item.Name, err)
		}
	}

	order := &models.Order{
		OrderNumber: utils.GenerateOrderNumber(),
		Username:    user.Username,
		FirstName:   form.FirstName,
		LastName:    form.LastName,
		City:        form.City,
		Postcode:    form.Postcode,
		Phone:       form.Phone,
		Address:     form.Address,
		Date:        utils.JalaliDate(s.Now()),
		UserID:      user.ID,
		Items:       make([]models.LineItem, 0, len(cart.Items)),
		ProductIDs:  make([]string, 0, len(cart.Items)),
	}
	for _, item := range cart.Items {
		order.Items = append(order.Items, models.LineItem{
			Qty:   item.Qty,
			Price: item.Price,
			Total: item.Total(),
		})
		order.ProductIDs = append(order.ProductIDs, item.ProductID)
	}

	if err := s.Orders.Create(ctx, order); err != nil {
		logger.Error(ctx, "Failed to save order after updating sales counters", err,
			zap.String("user_id", user.ID))
		return nil, fmt.Errorf("create order: %w", err)
	}

	if err := s.Users.AppendOrder(ctx, user.ID, order.ID); err != nil {
		logger.Error(ctx, "Order saved but not linked to user", err,
			zap.String("user_id", user.ID), zap.String("order_id", order.ID))
		return nil, fmt.Errorf("link order to user: %w", err)
	}

	if err := s.Carts.Delete(ctx, cartKey); err != nil {
		logger.Error(ctx, "Order saved but cart not cleared", err, zap.String("order_id", order.ID))
		return nil, fmt.Errorf("clear cart: %w", err)
	}

	if s.Notifier != nil {
		if err := s.Notifier.NotifyOrderPlaced(ctx, user, order); err != nil {
			logger.Warn(ctx, "Order confirmation not sent",
				zap.String("order_id", order.ID), zap.Error(err))
		}
	}

	logger.Info(ctx, "Order placed",
		zap.String("order_id", order.ID),
		zap.Int("order_number", order.OrderNumber),
		zap.Int64("total", order.Total()))
	return order, nil
}
