package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/rakeshgadupudi-git/ImperialHub/internal/domain"
	"github.com/rakeshgadupudi-git/ImperialHub/internal/service"
)

type ProductHandler struct {
	productService *service.ProductService
	logger         *zap.Logger
}

func NewProductHandler(productService *service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		logger:         logger,
	}
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	filter := parseProductFilter(c)
	sort := domain.ParseProductSort(c.Query("sort"))

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))

	listing, err := h.productService.List(c.Request.Context(), filter, sort, limit, skip)
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch products",
		})
		return
	}

	c.JSON(http.StatusOK, listing)
}

func (h *ProductHandler) FeaturedProducts(c *gin.Context) {
	products, err := h.productService.Featured(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list featured products", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch featured products",
		})
		return
	}

	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := objectIDParam(c, "id", "Invalid product ID format")
	if !ok {
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
			return
		}

		h.logger.Error("Failed to get product",
			zap.String("product_id", id.Hex()),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch product",
		})
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) GetProductBySlug(c *gin.Context) {
	slug := c.Param("slug")

	product, err := h.productService.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
			return
		}

		h.logger.Error("Failed to get product by slug",
			zap.String("slug", slug),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch product",
		})
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) SellerProducts(c *gin.Context) {
	sellerID, ok := objectIDParam(c, "userId", "Invalid user ID format")
	if !ok {
		return
	}

	products, err := h.productService.SellerProducts(c.Request.Context(), sellerID)
	if err != nil {
		h.logger.Error("Failed to list seller products",
			zap.String("seller_id", sellerID.Hex()),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch products",
		})
		return
	}

	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req domain.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	product, err := h.productService.Create(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCategory):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid category",
			})
		case errors.Is(err, service.ErrSlugTaken):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "A product with this name already exists",
			})
		default:
			h.logger.Error("Failed to create product",
				zap.String("name", req.Name),
				zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to create product",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := objectIDParam(c, "id", "Invalid product ID format")
	if !ok {
		return
	}

	var req domain.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	product, err := h.productService.Update(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
		case errors.Is(err, service.ErrInvalidCategory):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid category",
			})
		case errors.Is(err, service.ErrSlugTaken):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "A product with this name already exists",
			})
		default:
			h.logger.Error("Failed to update product",
				zap.String("product_id", id.Hex()),
				zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to update product",
			})
		}
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) AddReview(c *gin.Context) {
	id, ok := objectIDParam(c, "id", "Invalid product ID format")
	if !ok {
		return
	}

	var req domain.AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	product, err := h.productService.AddReview(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
			return
		}

		h.logger.Error("Failed to add review",
			zap.String("product_id", id.Hex()),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to add review",
		})
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) SeedProducts(c *gin.Context) {
	products, err := h.productService.Seed(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to seed products", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to seed products",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Database seeded successfully",
		"count":   len(products),
	})
}

func parseProductFilter(c *gin.Context) domain.ProductFilter {
	filter := domain.ProductFilter{
		Category:    c.Query("category"),
		Brand:       c.Query("brand"),
		Condition:   c.Query("condition"),
		Tag:         c.Query("tags"),
		Search:      c.Query("search"),
		HasDiscount: c.Query("hasDiscount") == "true",
	}

	if v := c.Query("minRating"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MinRating = &f
		}
	}
	if v := c.Query("minPrice"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MinPrice = &f
		}
	}
	if v := c.Query("maxPrice"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MaxPrice = &f
		}
	}
	if v := c.Query("inStock"); v != "" {
		b := v == "true"
		filter.InStock = &b
	}
	if v := c.Query("isUserProduct"); v != "" {
		b := v == "true"
		filter.IsUserProduct = &b
	}

	return filter
}

// objectIDParam parses a hex ObjectID path parameter, writing a 400
// response itself when the value is malformed.
func objectIDParam(c *gin.Context, name, message string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": message,
		})
		return primitive.NilObjectID, false
	}
	return id, true
}
