package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Kariqs/decorshop/logger"
	"github.com/Kariqs/decorshop/models"
	"github.com/Kariqs/decorshop/repository"
	"github.com/Kariqs/decorshop/utils"
	"go.uber.org/zap"
)

const featuredCount = 4

const (
	msgImageRequired    = "عکس خود را انتخاب کنید"
	msgImageInvalid     = "فایل انتخاب شده تصویر معتبری نیست"
	msgNameRequired     = "نام محصول خود را وارد کنید"
	msgPriceRequired    = "قیمت محصول خود را وارد کنید"
	msgPriceInvalid     = "قیمت محصول باید یک عدد مثبت باشد"
	msgCategoryRequired = "دسته بندی محصول خود را وارد کنید"
	msgCategoryInvalid  = "دسته بندی محصول معتبر نیست"
	msgProductExists    = "محصولی با این نام قبلا ثبت شده است"
	msgPriceFilter      = "بازه قیمت وارد شده معتبر نیست"
)

type CatalogService struct {
	Products repository.ProductRepository
	Images   utils.ImageStore
}

func NewCatalogService(products repository.ProductRepository, images utils.ImageStore) *CatalogService {
	return &CatalogService{Products: products, Images: images}
}

func (s *CatalogService) Featured(ctx context.Context) ([]models.Product, error) {
	return s.Products.Find(ctx, repository.ProductFilter{Limit: featuredCount})
}

func (s *CatalogService) All(ctx context.Context) ([]models.Product, error) {
	return s.Products.Find(ctx, repository.ProductFilter{})
}

// Shop lists products matching the optional category and inclusive price
// bounds. Bounds arrive as raw query values.
func (s *CatalogService) Shop(ctx context.Context, category, minPrice, maxPrice string) ([]models.Product, error) {
	filter := repository.ProductFilter{Category: strings.TrimSpace(category)}

	var err error
	if filter.MinPrice, err = parseBound(minPrice); err != nil {
		return nil, err
	}
	if filter.MaxPrice, err = parseBound(maxPrice); err != nil {
		return nil, err
	}
	return s.Products.Find(ctx, filter)
}

func parseBound(raw string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, invalid("price", msgPriceFilter)
	}
	return &v, nil
}

func (s *CatalogService) Product(ctx context.Context, id string) (*models.Product, error) {
	return s.Products.FindByID(ctx, id)
}

// validateProductForm checks the fields in form order and returns the
// parsed price.
func validateProductForm(form models.ProductForm) (int64, error) {
	if strings.TrimSpace(form.Name) == "" {
		return 0, invalid("productName", msgNameRequired)
	}
	if strings.TrimSpace(form.Price) == "" {
		return 0, invalid("productPrice", msgPriceRequired)
	}
	price, err := strconv.ParseInt(strings.TrimSpace(form.Price), 10, 64)
	if err != nil || price <= 0 {
		return 0, invalid("productPrice", msgPriceInvalid)
	}
	if form.Category == "" {
		return 0, invalid("productCategory", msgCategoryRequired)
	}
	if !models.IsCategory(form.Category) {
		return 0, invalid("productCategory", msgCategoryInvalid)
	}
	return price, nil
}

func (s *CatalogService) storeImage(ctx context.Context, image io.Reader) (utils.StoredImage, error) {
	stored, err := s.Images.Save(ctx, image)
	if errors.Is(err, utils.ErrInvalidImage) {
		return stored, invalid("productImg", msgImageInvalid)
	}
	return stored, err
}

func (s *CatalogService) discardImage(ctx context.Context, key string) {
	if err := s.Images.Delete(ctx, key); err != nil {
		logger.Warn(ctx, "Failed to delete product image", zap.String("key", key), zap.Error(err))
	}
}

// Create stores a new product. The image is required.
func (s *CatalogService) Create(ctx context.Context, form models.ProductForm, image io.Reader) (*models.Product, error) {
	if image == nil {
		return nil, invalid("productImg", msgImageRequired)
	}
	price, err := validateProductForm(form)
	if err != nil {
		return nil, err
	}

	stored, err := s.storeImage(ctx, image)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:     strings.TrimSpace(form.Name),
		Price:    price,
		Category: form.Category,
		ImageURL: stored.URL,
		ImageKey: stored.Key,
	}
	if err := s.Products.Create(ctx, product); err != nil {
		s.discardImage(ctx, stored.Key)
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, invalid("productName", msgProductExists)
		}
		return nil, fmt.Errorf("create product: %w", err)
	}
	return product, nil
}

// Update edits a product. A nil image keeps the current one; a new image
// replaces it and the old file is removed.
func (s *CatalogService) Update(ctx context.Context, id string, form models.ProductForm, image io.Reader) (*models.Product, error) {
	product, err := s.Products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	price, err := validateProductForm(form)
	if err != nil {
		return nil, err
	}

	oldKey := ""
	if image != nil {
		stored, err := s.storeImage(ctx, image)
		if err != nil {
			return nil, err
		}
		oldKey = product.ImageKey
		product.ImageURL, product.ImageKey = stored.URL, stored.Key
	}

	product.Name = strings.TrimSpace(form.Name)
	product.Price = price
	product.Category = form.Category
	if err := s.Products.Update(ctx, product); err != nil {
		if image != nil {
			s.discardImage(ctx, product.ImageKey)
		}
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, invalid("productName", msgProductExists)
		}
		return nil, err
	}

	if oldKey != "" {
		s.discardImage(ctx, oldKey)
	}
	return product, nil
}

// Delete removes the product's image and then the product. Orders that
// reference the product keep their recorded totals.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	product, err := s.Products.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Images.Delete(ctx, product.ImageKey); err != nil {
		return fmt.Errorf("delete image: %w", err)
	}
	return s.Products.Delete(ctx, id)
}

// Seed inserts products that are not in the catalog yet and returns how
// many were added.
func (s *CatalogService) Seed(ctx context.Context, products []models.Product) (int, error) {
	added := 0
	for i := range products {
		err := s.Products.Create(ctx, &products[i])
		if errors.Is(err, repository.ErrDuplicate) {
			continue
		}
		if err != nil {
			return added, fmt.Errorf("seed %q: %w", products[i].Name, err)
		}
		added++
	}
	return added, nil
}
