package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/Kariqs/decorshop/logger"
	"github.com/Kariqs/decorshop/middlewares"
	"github.com/Kariqs/decorshop/repository"
	"github.com/Kariqs/decorshop/services"
	"github.com/Kariqs/decorshop/utils"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

const msgSomethingWentWrong = "خطایی رخ داده است"

// Controller holds the services behind every page handler.
type Controller struct {
	Catalog  *services.CatalogService
	Carts    *services.CartService
	Checkout *services.CheckoutService
	Auth     *services.AuthService
	Orders   *services.OrderService

	// HealthCheck reports whether the backing stores are reachable.
	HealthCheck func(ctx context.Context) error
}

func NewController(repos *repository.Repositories, carts repository.CartStore, images utils.ImageStore, notifier services.OrderNotifier) *Controller {
	return &Controller{
		Catalog:  services.NewCatalogService(repos.Products, images),
		Carts:    services.NewCartService(repos.Products, carts),
		Checkout: services.NewCheckoutService(repos, carts, notifier),
		Auth:     services.NewAuthService(repos.Users),
		Orders:   services.NewOrderService(repos),
	}
}

// render adds the data every page needs, consumes pending flashes and
// writes the page.
func (ctl *Controller) render(c *gin.Context, page string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["User"] = middlewares.CurrentUser(c)
	data["Flashes"] = middlewares.Flashes(c)
	data["CSRFField"] = csrf.TemplateField(c.Request)
	data["CartCount"] = ctl.cartCount(c)

	middlewares.SaveSession(c)
	c.HTML(http.StatusOK, page, data)
}

func (ctl *Controller) cartCount(c *gin.Context) int {
	if middlewares.CurrentUser(c) == nil {
		return 0
	}
	cart, err := ctl.Carts.Get(c.Request.Context(), middlewares.CartKey(c))
	if err != nil {
		logger.Warn(c, "Failed to load cart for header", zap.Error(err))
		return 0
	}
	return cart.Count()
}

// fail logs err and redirects with message. Validation errors replace
// message with their own text and are not logged.
func fail(c *gin.Context, err error, location, message string) {
	if userMessage := services.UserMessage(err); userMessage != "" {
		message = userMessage
	} else {
		logger.Error(c, message, err)
	}
	middlewares.RedirectWithFlash(c, location, middlewares.FlashError, message)
}

func succeed(c *gin.Context, location, message string) {
	middlewares.RedirectWithFlash(c, location, middlewares.FlashSuccess, message)
}

func isNotFound(err error) bool {
	return errors.Is(err, services.ErrNotFound)
}

// abort hands err to the error handler as a 500.
func abort(c *gin.Context, err error) {
	_ = c.Error(utils.NewAppError(http.StatusInternalServerError, msgSomethingWentWrong, err))
	c.Abort()
}
