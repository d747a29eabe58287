package controllers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/Kariqs/chapaquente-api/models"
	"github.com/Kariqs/chapaquente-api/services"
	"github.com/Kariqs/chapaquente-api/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	msgProductFetchFailed  = "Failed to fetch products"
	msgProductCreateFailed = "Failed to create product"
	msgProductUpdateFailed = "Failed to update product"
	msgProductDeleteFailed = "Failed to delete product"
	msgImageUploadFailed   = "Failed to upload image"
	msgStorageDisabled     = "Image storage is not configured"
)

type ProductController struct {
	products *services.ProductService
	images   utils.ImageStore
	log      *zap.Logger
}

// NewProductController wires the catalogue handlers. images may be nil, in
// which case uploads answer 503.
func NewProductController(products *services.ProductService, images utils.ImageStore, log *zap.Logger) *ProductController {
	return &ProductController{products: products, images: images, log: log}
}

func (c *ProductController) GetProducts(ctx *gin.Context) {
	category := models.Category(ctx.Query("category"))
	activeOnly := ctx.DefaultQuery("active_only", "true") != "false"

	products, err := c.products.List(ctx.Request.Context(), category, activeOnly)
	if err != nil {
		handleServiceError(ctx, c.log, err, msgProductFetchFailed)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, products)
}

func (c *ProductController) GetProduct(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	product, err := c.products.Get(ctx.Request.Context(), id)
	if err != nil {
		handleServiceError(ctx, c.log, err, msgProductFetchFailed)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, product)
}

func (c *ProductController) CreateProduct(ctx *gin.Context) {
	var input models.CreateProductInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, services.ErrInvalidProduct.Error())
		return
	}

	product, err := c.products.Create(ctx.Request.Context(), input)
	if err != nil {
		handleServiceError(ctx, c.log, err, msgProductCreateFailed)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, product)
}

func (c *ProductController) UpdateProduct(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var input models.UpdateProductInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	product, err := c.products.Update(ctx.Request.Context(), id, input)
	if err != nil {
		handleServiceError(ctx, c.log, err, msgProductUpdateFailed)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, product)
}

// DeleteProduct deactivates; order history still references the row.
func (c *ProductController) DeleteProduct(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.products.Deactivate(ctx.Request.Context(), id); err != nil {
		handleServiceError(ctx, c.log, err, msgProductDeleteFailed)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Product deactivated"})
}

func (c *ProductController) UploadProductImage(ctx *gin.Context) {
	if c.images == nil {
		sendErrorResponse(ctx, http.StatusServiceUnavailable, msgStorageDisabled)
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	file, err := ctx.FormFile("image")
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "No image uploaded")
		return
	}

	if _, err := c.products.Get(ctx.Request.Context(), id); err != nil {
		handleServiceError(ctx, c.log, err, msgImageUploadFailed)
		return
	}

	f, err := file.Open()
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid form data")
		return
	}
	defer f.Close()

	// Unique key so re-uploads never overwrite a cached picture.
	key := fmt.Sprintf("%d-%s-%s", id, time.Now().Format("20060102150405"), filepath.Base(file.Filename))
	url, err := c.images.Upload(ctx.Request.Context(), key, f, file.Header.Get("Content-Type"))
	if err != nil {
		handleServiceError(ctx, c.log, err, msgImageUploadFailed)
		return
	}

	product, err := c.products.SetImage(ctx.Request.Context(), id, url)
	if err != nil {
		handleServiceError(ctx, c.log, err, msgImageUploadFailed)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, product)
}
