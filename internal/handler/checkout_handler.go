package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rakeshgadupudi-git/ImperialHub/internal/domain"
	"github.com/rakeshgadupudi-git/ImperialHub/internal/service"
	"github.com/rakeshgadupudi-git/ImperialHub/pkg/middleware"
)

type CheckoutHandler struct {
	checkoutService *service.CheckoutService
	logger          *zap.Logger
}

func NewCheckoutHandler(checkoutService *service.CheckoutService, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		logger:          logger,
	}
}

func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req domain.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request", zap.Error(err))
		middleware.RecordCheckout("rejected")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	order, err := h.checkoutService.Checkout(c.Request.Context(), req)
	if err != nil {
		if businessRuleViolation(err) {
			middleware.RecordCheckout("rejected")
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   err.Error(),
				"details": err.Error(),
			})
			return
		}

		h.logger.Error("Checkout failed",
			zap.String("buyer_id", req.BuyerID.Hex()),
			zap.Error(err))
		middleware.RecordCheckout("failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to process checkout",
		})
		return
	}

	middleware.RecordCheckout("placed")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"order":   order,
		"message": "Order placed successfully",
	})
}

// businessRuleViolation reports whether the checkout failed on the
// request's own content rather than on the backend.
func businessRuleViolation(err error) bool {
	var stockErr *service.InsufficientStockError
	return errors.Is(err, service.ErrEmptyCart) ||
		errors.Is(err, service.ErrInvalidPaymentMethod) ||
		errors.Is(err, service.ErrProductNotFound) ||
		errors.As(err, &stockErr)
}
