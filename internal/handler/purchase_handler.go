package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rakeshgadupudi-git/ImperialHub/internal/domain"
	"github.com/rakeshgadupudi-git/ImperialHub/internal/service"
)

type PurchaseHandler struct {
	purchaseService *service.PurchaseService
	logger          *zap.Logger
}

func NewPurchaseHandler(purchaseService *service.PurchaseService, logger *zap.Logger) *PurchaseHandler {
	return &PurchaseHandler{
		purchaseService: purchaseService,
		logger:          logger,
	}
}

func (h *PurchaseHandler) CreatePurchase(c *gin.Context) {
	var req domain.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	purchase, err := h.purchaseService.Create(c.Request.Context(), req)
	if err != nil {
		h.logger.Error("Failed to create purchase", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create purchase",
		})
		return
	}

	c.JSON(http.StatusCreated, purchase)
}

func (h *PurchaseHandler) ProductPurchases(c *gin.Context) {
	productID, ok := objectIDParam(c, "productId", "Invalid product ID format")
	if !ok {
		return
	}

	purchases, err := h.purchaseService.ProductPurchases(c.Request.Context(), productID)
	if err != nil {
		h.logger.Error("Failed to list product purchases",
			zap.String("product_id", productID.Hex()),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch purchases",
		})
		return
	}

	c.JSON(http.StatusOK, purchases)
}

func (h *PurchaseHandler) SellerAnalytics(c *gin.Context) {
	sellerID, ok := objectIDParam(c, "sellerId", "Invalid seller ID format")
	if !ok {
		return
	}

	analytics, err := h.purchaseService.SellerAnalytics(c.Request.Context(), sellerID)
	if err != nil {
		h.logger.Error("Failed to compute seller analytics",
			zap.String("seller_id", sellerID.Hex()),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch analytics",
		})
		return
	}

	c.JSON(http.StatusOK, analytics)
}
