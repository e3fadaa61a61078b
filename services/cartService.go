package services

import (
	"context"
	"errors"

	"github.com/Kariqs/decorshop/models"
	"github.com/Kariqs/decorshop/repository"
)

const (
	CartActionAdd    = "add"
	CartActionRemove = "remove"
	CartActionClear  = "clear"
)

type CartService struct {
	Products repository.ProductRepository
	Carts    repository.CartStore
}

func NewCartService(products repository.ProductRepository, carts repository.CartStore) *CartService {
	return &CartService{Products: products, Carts: carts}
}

// Get returns the session's cart, or an empty cart when there is none.
func (s *CartService) Get(ctx context.Context, cartKey string) (*models.Cart, error) {
	if cartKey == "" {
		return &models.Cart{}, nil
	}
	cart, err := s.Carts.Get(ctx, cartKey)
	if errors.Is(err, repository.ErrNotFound) {
		return &models.Cart{}, nil
	}
	return cart, err
}

// Add puts one unit of the product in the cart, merging with an existing
// entry for the same product.
func (s *CartService) Add(ctx context.Context, cartKey, productID string) error {
	product, err := s.Products.FindByID(ctx, productID)
	if err != nil {
		return err
	}

	return s.Carts.Update(ctx, cartKey, func(cart *models.Cart) error {
		if i := cart.IndexOf(product.ID); i >= 0 {
			cart.Items[i].Qty++
			return nil
		}
		cart.Items = append(cart.Items, models.CartItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Category:  product.Category,
			ImageURL:  product.ImageURL,
			Qty:       1,
		})
		return nil
	})
}

// Update applies action to the product's entry and then drops every entry
// left with no quantity. An unknown action changes nothing on the entry but
// the pruning still happens and ErrUnknownAction is returned.
func (s *CartService) Update(ctx context.Context, cartKey, productID, action string) error {
	var result error
	err := s.Carts.Update(ctx, cartKey, func(cart *models.Cart) error {
		result = nil
		if cart.IsEmpty() {
			return ErrCartEmpty
		}

		i := cart.IndexOf(productID)
		if i < 0 {
			result = ErrNotInCart
		} else {
			switch action {
			case CartActionAdd:
				cart.Items[i].Qty++
			case CartActionRemove:
				cart.Items[i].Qty--
			case CartActionClear:
				cart.Items[i].Qty = 0
			default:
				result = ErrUnknownAction
			}
		}

		cart.Prune()
		return nil
	})
	if err != nil {
		return err
	}
	return result
}

func (s *CartService) Clear(ctx context.Context, cartKey string) error {
	return s.Carts.Delete(ctx, cartKey)
}
