package controllers

import (
	"errors"

	"github.com/Kariqs/decorshop/middlewares"
	"github.com/Kariqs/decorshop/models"
	"github.com/Kariqs/decorshop/services"
	"github.com/gin-gonic/gin"
)

const (
	msgCartEmptyCheckout  = "ابتدا یک محصول را در سبد خرید خود قرار دهید"
	msgOrderPlaced        = "سفارش شما با موفقیت ثبت شد"
	msgOrderFailed        = "خطا در ارسال سفارش"
	msgOrderLookupFailed  = "خطا در پیدا کردن سفارش مورد نظر شما"
	msgOrderDelivered     = "وضعیت سفارش مورد نظر شما تغییر کرد"
	msgOrderDeliverFailed = "خطا در ثبت وضعیت سفارش"
	msgOrderDeleted       = "سفارش شما با موفقیت حذف شد"
	msgOrderDeleteFailed  = "خطا در حذف سفارش"
)

func (ctl *Controller) GetCheckout(ctx *gin.Context) {
	cart, err := ctl.Carts.Get(ctx.Request.Context(), middlewares.CartKey(ctx))
	if err != nil {
		fail(ctx, err, "/shop", msgSomethingWentWrong)
		return
	}
	if cart.IsEmpty() {
		middlewares.RedirectWithFlash(ctx, "/shop", middlewares.FlashError, msgCartEmptyCheckout)
		return
	}
	ctl.render(ctx, "checkout.html", gin.H{"Title": "تکمیل سفارش", "Cart": cart})
}

// CreateOrder places the order for the signed-in user from their session cart.
func (ctl *Controller) CreateOrder(ctx *gin.Context) {
	var form models.CheckoutForm
	if err := ctx.ShouldBind(&form); err != nil {
		fail(ctx, err, "/checkout", msgOrderFailed)
		return
	}

	user := middlewares.CurrentUser(ctx)
	_, err := ctl.Checkout.PlaceOrder(ctx.Request.Context(), user, middlewares.CartKey(ctx), form)

	var validationErr *services.ValidationError
	switch {
	case err == nil:
		succeed(ctx, "/", msgOrderPlaced)
	case errors.As(err, &validationErr):
		middlewares.RedirectWithFlash(ctx, "/checkout", middlewares.FlashError, validationErr.Message)
	case errors.Is(err, services.ErrCartEmpty):
		middlewares.RedirectWithFlash(ctx, "/shop", middlewares.FlashError, msgCartEmptyCheckout)
	default:
		fail(ctx, err, "/", msgOrderFailed)
	}
}

func (ctl *Controller) GetProfile(ctx *gin.Context) {
	user := middlewares.CurrentUser(ctx)
	orders, err := ctl.Orders.UserOrders(ctx.Request.Context(), user)
	if err != nil {
		abort(ctx, err)
		return
	}
	ctl.render(ctx, "profile.html", gin.H{"Title": user.Username, "Orders": orders})
}

func (ctl *Controller) GetAdminDashboard(ctx *gin.Context) {
	dashboard, err := ctl.Orders.Dashboard(ctx.Request.Context())
	if err != nil {
		abort(ctx, err)
		return
	}
	ctl.render(ctx, "adminDashboard.html", gin.H{"Title": "پنل مدیریت", "Dashboard": dashboard})
}

func (ctl *Controller) MarkOrderDelivered(ctx *gin.Context) {
	if err := ctl.Orders.MarkDelivered(ctx.Request.Context(), ctx.Param("id")); err != nil {
		if isNotFound(err) {
			middlewares.RedirectWithFlash(ctx, "/adminDashboard", middlewares.FlashError, msgOrderLookupFailed)
			return
		}
		fail(ctx, err, "/adminDashboard", msgOrderDeliverFailed)
		return
	}
	succeed(ctx, "/adminDashboard", msgOrderDelivered)
}

func (ctl *Controller) DeleteOrder(ctx *gin.Context) {
	if err := ctl.Orders.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		if isNotFound(err) {
			middlewares.RedirectWithFlash(ctx, "/adminDashboard", middlewares.FlashError, msgOrderLookupFailed)
			return
		}
		fail(ctx, err, "/adminDashboard", msgOrderDeleteFailed)
		return
	}
	succeed(ctx, "/adminDashboard", msgOrderDeleted)
}
