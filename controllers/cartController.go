package controllers

import (
	"errors"

	"github.com/Kariqs/decorshop/middlewares"
	"github.com/Kariqs/decorshop/services"
	"github.com/gin-gonic/gin"
)

const (
	msgCartProductNotFound = "محصول درخواستی شما یافت نشد"
	msgCartItemAdded       = "محصول به سبد خرید اضافه شد"
	msgCartUpdateFailed    = "خطار در آپدیت سبد خرید شما"
	msgCartUpdated         = "سبد خرید شما آپدیت شد"
)

func (ctl *Controller) AddToCart(ctx *gin.Context) {
	cartKey := middlewares.EnsureCartKey(ctx)

	err := ctl.Carts.Add(ctx.Request.Context(), cartKey, ctx.Param("id"))
	switch {
	case isNotFound(err):
		middlewares.AddFlash(ctx, middlewares.FlashError, msgCartProductNotFound)
	case err != nil:
		fail(ctx, err, "/", msgSomethingWentWrong)
		return
	default:
		middlewares.AddFlash(ctx, middlewares.FlashSuccess, msgCartItemAdded)
	}
	middlewares.RedirectBack(ctx, "/")
}

func (ctl *Controller) GetCart(ctx *gin.Context) {
	cart, err := ctl.Carts.Get(ctx.Request.Context(), middlewares.CartKey(ctx))
	if err != nil {
		abort(ctx, err)
		return
	}
	ctl.render(ctx, "cart.html", gin.H{"Title": "سبد خرید", "Cart": cart})
}

// UpdateCart applies ?action=add|remove|clear to one cart entry.
func (ctl *Controller) UpdateCart(ctx *gin.Context) {
	err := ctl.Carts.Update(ctx.Request.Context(), middlewares.CartKey(ctx), ctx.Param("id"), ctx.Query("action"))
	switch {
	case err == nil:
		succeed(ctx, "/cart", msgCartUpdated)
	case errors.Is(err, services.ErrCartEmpty), errors.Is(err, services.ErrNotInCart), errors.Is(err, services.ErrUnknownAction):
		middlewares.RedirectWithFlash(ctx, "/cart", middlewares.FlashError, msgCartUpdateFailed)
	default:
		fail(ctx, err, "/cart", msgCartUpdateFailed)
	}
}
