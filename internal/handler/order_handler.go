package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rakeshgadupudi-git/ImperialHub/internal/service"
)

type OrderHandler struct {
	orderService *service.OrderService
	logger       *zap.Logger
}

func NewOrderHandler(orderService *service.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		logger:       logger,
	}
}

func (h *OrderHandler) BuyerOrders(c *gin.Context) {
	buyerID, ok := objectIDParam(c, "userId", "Invalid user ID format")
	if !ok {
		return
	}

	orders, err := h.orderService.BuyerOrders(c.Request.Context(), buyerID)
	if err != nil {
		h.logger.Error("Failed to list buyer orders",
			zap.String("buyer_id", buyerID.Hex()),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch orders",
		})
		return
	}

	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) SellerOrders(c *gin.Context) {
	sellerID, ok := objectIDParam(c, "sellerId", "Invalid seller ID format")
	if !ok {
		return
	}

	view, err := h.orderService.SellerOrders(c.Request.Context(), sellerID)
	if err != nil {
		h.logger.Error("Failed to list seller orders",
			zap.String("seller_id", sellerID.Hex()),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch orders",
		})
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	orderID := c.Param("orderId")

	order, err := h.orderService.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
			return
		}

		h.logger.Error("Failed to get order",
			zap.String("order_id", orderID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch order",
		})
		return
	}

	c.JSON(http.StatusOK, order)
}
