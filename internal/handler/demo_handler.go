package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rakeshgadupudi-git/ImperialHub/internal/domain"
	"github.com/rakeshgadupudi-git/ImperialHub/internal/service"
)

type DemoHandler struct {
	demoService *service.DemoService
	logger      *zap.Logger
}

func NewDemoHandler(demoService *service.DemoService, logger *zap.Logger) *DemoHandler {
	return &DemoHandler{
		demoService: demoService,
		logger:      logger,
	}
}

func (h *DemoHandler) CreateRequest(c *gin.Context) {
	var req domain.CreateDemoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	request, err := h.demoService.Create(c.Request.Context(), req)
	if err != nil {
		h.logger.Error("Failed to create demo request", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create demo request",
		})
		return
	}

	c.JSON(http.StatusCreated, request)
}

func (h *DemoHandler) SellerRequests(c *gin.Context) {
	sellerID, ok := objectIDParam(c, "sellerId", "Invalid seller ID format")
	if !ok {
		return
	}

	requests, err := h.demoService.SellerRequests(c.Request.Context(), sellerID)
	if err != nil {
		h.logger.Error("Failed to list demo requests",
			zap.String("seller_id", sellerID.Hex()),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch demo requests",
		})
		return
	}

	c.JSON(http.StatusOK, requests)
}

func (h *DemoHandler) UpdateStatus(c *gin.Context) {
	id, ok := objectIDParam(c, "id", "Invalid demo request ID format")
	if !ok {
		return
	}

	var req domain.UpdateDemoStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	request, err := h.demoService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid status",
			})
		case errors.Is(err, service.ErrDemoRequestNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Demo request not found",
			})
		default:
			h.logger.Error("Failed to update demo request",
				zap.String("demo_request_id", id.Hex()),
				zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to update demo request",
			})
		}
		return
	}

	c.JSON(http.StatusOK, request)
}
