package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/Kariqs/decorshop/middlewares"
	"github.com/Kariqs/decorshop/models"
	"github.com/gin-gonic/gin"
)

const (
	msgProductNotFound     = "محصول یافت نشد"
	msgProductCreated      = "محصول شما با موفقیت ثبت شد"
	msgProductCreateFailed = "خطا در ثبت محصول"
	msgProductLookupFailed = "خطا در پیدا کردن محصول مورد نظر شما"
	msgProductUpdateFailed = "خطا در ویرایش محصول"
	msgProductUpdated      = "محصول شما با موفقیت ویرایش شد"
	msgProductDeleted      = "محصول شما با موفقیت حذف شد"
	msgProductDeleteFailed = "خطا در حذف محصول"
)

func (ctl *Controller) GetShop(ctx *gin.Context) {
	category := ctx.Query("category")
	minPrice := ctx.Query("minPrice")
	maxPrice := ctx.Query("maxPrice")

	products, err := ctl.Catalog.Shop(ctx.Request.Context(), category, minPrice, maxPrice)
	if err != nil {
		fail(ctx, err, "/", msgSomethingWentWrong)
		return
	}

	ctl.render(ctx, "shop.html", gin.H{
		"Title":      "فروشگاه",
		"Products":   products,
		"Categories": models.Categories,
		"Category":   category,
		"MinPrice":   minPrice,
		"MaxPrice":   maxPrice,
	})
}

func (ctl *Controller) GetProduct(ctx *gin.Context) {
	product, err := ctl.Catalog.Product(ctx.Request.Context(), ctx.Param("id"))
	if isNotFound(err) {
		middlewares.RedirectWithFlash(ctx, "/", middlewares.FlashError, msgProductNotFound)
		return
	}
	if err != nil {
		fail(ctx, err, "/", msgSomethingWentWrong)
		return
	}
	ctl.render(ctx, "productInfo.html", gin.H{"Title": product.Name, "Product": product})
}

func (ctl *Controller) GetAddProduct(ctx *gin.Context) {
	ctl.render(ctx, "addProduct.html", gin.H{"Title": "افزودن محصول", "Categories": models.Categories})
}

// productImage returns the uploaded "productImg" file, or a nil reader when
// the form carries none. The caller closes the file.
func productImage(ctx *gin.Context) (io.Reader, io.Closer, error) {
	header, err := ctx.FormFile("productImg")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	file, err := header.Open()
	if err != nil {
		return nil, nil, err
	}
	return file, file, nil
}

// bindProductForm parses the multipart form and its optional image. The
// body size limit is applied before routing.
func bindProductForm(ctx *gin.Context) (models.ProductForm, io.Reader, io.Closer, error) {
	var form models.ProductForm
	if err := ctx.ShouldBind(&form); err != nil {
		return form, nil, nil, err
	}
	image, closer, err := productImage(ctx)
	return form, image, closer, err
}

func (ctl *Controller) CreateProduct(ctx *gin.Context) {
	const formPage = "/adminDashboard/addProduct"

	form, image, closer, err := bindProductForm(ctx)
	if err != nil {
		fail(ctx, err, formPage, msgProductCreateFailed)
		return
	}
	if closer != nil {
		defer closer.Close()
	}

	if _, err := ctl.Catalog.Create(ctx.Request.Context(), form, image); err != nil {
		fail(ctx, err, formPage, msgProductCreateFailed)
		return
	}
	succeed(ctx, "/adminDashboard", msgProductCreated)
}

func (ctl *Controller) GetEditProduct(ctx *gin.Context) {
	product, err := ctl.Catalog.Product(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if isNotFound(err) {
			middlewares.RedirectWithFlash(ctx, "/adminDashboard", middlewares.FlashError, msgProductLookupFailed)
			return
		}
		fail(ctx, err, "/adminDashboard", msgProductUpdateFailed)
		return
	}
	ctl.render(ctx, "editProduct.html", gin.H{
		"Title":      "ویرایش محصول",
		"Product":    product,
		"Categories": models.Categories,
	})
}

func (ctl *Controller) UpdateProduct(ctx *gin.Context) {
	id := ctx.Param("id")
	formPage := "/adminDashboard/editProduct/" + id

	form, image, closer, err := bindProductForm(ctx)
	if err != nil {
		fail(ctx, err, formPage, msgProductUpdateFailed)
		return
	}
	if closer != nil {
		defer closer.Close()
	}

	if _, err := ctl.Catalog.Update(ctx.Request.Context(), id, form, image); err != nil {
		if isNotFound(err) {
			middlewares.RedirectWithFlash(ctx, "/adminDashboard", middlewares.FlashError, msgProductLookupFailed)
			return
		}
		fail(ctx, err, formPage, msgProductUpdateFailed)
		return
	}
	succeed(ctx, "/adminDashboard", msgProductUpdated)
}

func (ctl *Controller) DeleteProduct(ctx *gin.Context) {
	if err := ctl.Catalog.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		if isNotFound(err) {
			middlewares.RedirectWithFlash(ctx, "/adminDashboard", middlewares.FlashError, msgProductLookupFailed)
			return
		}
		fail(ctx, err, "/adminDashboard", msgProductDeleteFailed)
		return
	}
	succeed(ctx, "/adminDashboard", msgProductDeleted)
}
