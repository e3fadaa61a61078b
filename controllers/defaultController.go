package controllers

import (
	"net/http"

	"github.com/Kariqs/decorshop/utils"
	"github.com/gin-gonic/gin"
)

func (ctl *Controller) GetHome(ctx *gin.Context) {
	products, err := ctl.Catalog.Featured(ctx.Request.Context())
	if err != nil {
		abort(ctx, err)
		return
	}
	ctl.render(ctx, "index.html", gin.H{"Products": products})
}

func (ctl *Controller) GetAbout(ctx *gin.Context) {
	ctl.render(ctx, "about.html", gin.H{"Title": "درباره ما"})
}

func (ctl *Controller) GetContact(ctx *gin.Context) {
	ctl.render(ctx, "contact.html", gin.H{"Title": "تماس با ما"})
}

func (ctl *Controller) GetHealth(ctx *gin.Context) {
	if ctl.HealthCheck != nil {
		if err := ctl.HealthCheck(ctx.Request.Context()); err != nil {
			ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (ctl *Controller) NotFound(ctx *gin.Context) {
	_ = ctx.Error(utils.NotFound())
}
