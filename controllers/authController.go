package controllers

import (
	"errors"

	"github.com/Kariqs/decorshop/logger"
	"github.com/Kariqs/decorshop/middlewares"
	"github.com/Kariqs/decorshop/models"
	"github.com/Kariqs/decorshop/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	msgUserCreated        = "حساب شما با موفقیت ساخته شد"
	msgInvalidCredentials = "نام کاربری یا رمز عبور شما اشتباه است"
	msgLoggedIn           = "شما با موفقیت وارد حساب خود شدید"
	msgLoggedOut          = "شما با موفقیت از حساب خود خارج شدید"
)

func (ctl *Controller) GetAuthentication(ctx *gin.Context) {
	ctl.render(ctx, "authentication.html", gin.H{"Title": "ورود / ثبت نام"})
}

// RedirectToAuthentication serves the legacy /login, /register, /signin and
// /signup paths.
func (ctl *Controller) RedirectToAuthentication(ctx *gin.Context) {
	middlewares.Redirect(ctx, "/authentication")
}

func (ctl *Controller) Signup(ctx *gin.Context) {
	var data models.RegisterData
	if err := ctx.ShouldBind(&data); err != nil {
		fail(ctx, err, "/authentication", msgSomethingWentWrong)
		return
	}

	user, err := ctl.Auth.Register(ctx.Request.Context(), data)
	if err != nil {
		fail(ctx, err, "/authentication", msgSomethingWentWrong)
		return
	}

	middlewares.SetSessionUser(ctx, user.ID)
	logger.Info(ctx, "User registered", zap.String("user_id", user.ID))
	succeed(ctx, "/", msgUserCreated)
}

func (ctl *Controller) Login(ctx *gin.Context) {
	var data models.LoginData
	if err := ctx.ShouldBind(&data); err != nil {
		fail(ctx, err, "/authentication", msgSomethingWentWrong)
		return
	}

	user, err := ctl.Auth.Login(ctx.Request.Context(), data)
	if errors.Is(err, services.ErrInvalidCredentials) {
		middlewares.RedirectWithFlash(ctx, "/authentication", middlewares.FlashError, msgInvalidCredentials)
		return
	}
	if err != nil {
		fail(ctx, err, "/authentication", msgSomethingWentWrong)
		return
	}

	middlewares.SetSessionUser(ctx, user.ID)
	succeed(ctx, "/", msgLoggedIn)
}

func (ctl *Controller) Logout(ctx *gin.Context) {
	middlewares.ClearSessionUser(ctx)
	succeed(ctx, "/", msgLoggedOut)
}
